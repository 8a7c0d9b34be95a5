package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Rana718/csvmigrate/internal/migration"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFile(t *testing.T, content string) *Config {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := Load()
	require.NoError(t, err)
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "postgresql", cfg.Database.Provider)
	assert.Equal(t, "DATABASE_URL", cfg.Database.URLEnv)
	assert.Equal(t, ".", cfg.CSV.BaseDir)
	assert.Equal(t, "phinx/db/files", cfg.CSV.FilesDir)
	assert.Equal(t, ",", cfg.CSV.Delimiter)
	assert.Equal(t, "SKIP_FAKE", cfg.CSV.SkipEnv)
	assert.Equal(t, 100, cfg.CSV.BatchSize)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromFile(t *testing.T) {
	cfg := loadFile(t, `{
		"database": {"provider": "sqlite", "url_env": "SEED_DB"},
		"csv": {"files_dir": "seeds", "delimiter": ";", "skip_rows": 1},
		"fake": {"rows": 5, "seed": 7},
		"migrations": [
			{"version": 1, "table": "users"},
			{"version": 2, "table": "posts", "import_both": true}
		]
	}`)

	assert.Equal(t, "sqlite", cfg.Database.Provider)
	assert.Equal(t, "SEED_DB", cfg.Database.URLEnv)
	assert.Equal(t, "seeds", cfg.CSV.FilesDir)
	assert.Equal(t, ".", cfg.CSV.BaseDir)
	assert.Equal(t, 100, cfg.CSV.BatchSize)
	assert.Equal(t, 5, cfg.Fake.Rows)
	assert.Equal(t, []migration.Spec{
		{Version: 1, Table: "users"},
		{Version: 2, Table: "posts", ImportBoth: true},
	}, cfg.Migrations)
	require.NoError(t, cfg.Validate())

	opts := cfg.ResolverOptions()
	assert.Equal(t, ';', opts.CSV.Delimiter)
	assert.Equal(t, 1, opts.CSV.SkipRows)
	assert.NotNil(t, cfg.Hooks().Fake)
	assert.Nil(t, cfg.Hooks().Real)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"unsupported provider", func(c *Config) { c.Database.Provider = "mongodb" }, "unsupported database provider"},
		{"multi char delimiter", func(c *Config) { c.CSV.Delimiter = ";;" }, "single character"},
		{"newline delimiter", func(c *Config) { c.CSV.Delimiter = "\n" }, "delimiter"},
		{"negative skip rows", func(c *Config) { c.CSV.SkipRows = -1 }, "skip"},
		{"negative fake rows", func(c *Config) { c.Fake.Rows = -1 }, "fake.rows"},
		{"duplicate versions", func(c *Config) {
			c.Migrations = []migration.Spec{{Version: 3, Table: "a"}, {Version: 3, Table: "b"}}
		}, "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestGetDatabaseURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Database.URLEnv = "CSVMIGRATE_TEST_URL"

	t.Setenv("CSVMIGRATE_TEST_URL", "")
	_, err := cfg.GetDatabaseURL()
	assert.ErrorContains(t, err, "CSVMIGRATE_TEST_URL")

	t.Setenv("CSVMIGRATE_TEST_URL", "sqlite://dev.db")
	url, err := cfg.GetDatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "sqlite://dev.db", url)
}

func TestSkipFakeData(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv("SKIP_FAKE", "true")
	assert.True(t, cfg.SkipFakeData())
	assert.True(t, cfg.ResolverOptions().SkipFake)

	t.Setenv("SKIP_FAKE", "yes")
	assert.False(t, cfg.SkipFakeData())
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	cfg := DefaultConfig()
	cfg.Migrations = []migration.Spec{{Version: 1, Table: "users"}}
	require.NoError(t, cfg.Write(path))

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
