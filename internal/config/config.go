package config

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/Rana718/csvmigrate/internal/csvfile"
	"github.com/Rana718/csvmigrate/internal/database/common"
	"github.com/Rana718/csvmigrate/internal/migration"
	"github.com/Rana718/csvmigrate/internal/seeder"
	"github.com/spf13/viper"
)

const DefaultConfigFile = "csvmigrate.config.json"

type Config struct {
	Database   Database         `json:"database" mapstructure:"database"`
	CSV        CSV              `json:"csv" mapstructure:"csv"`
	Fake       Fake             `json:"fake" mapstructure:"fake"`
	Migrations []migration.Spec `json:"migrations" mapstructure:"migrations"`
}

type Database struct {
	Provider string `json:"provider" mapstructure:"provider"`
	URLEnv   string `json:"url_env" mapstructure:"url_env"`
}

type CSV struct {
	BaseDir   string `json:"base_dir" mapstructure:"base_dir"`
	FilesDir  string `json:"files_dir" mapstructure:"files_dir"`
	Delimiter string `json:"delimiter" mapstructure:"delimiter"`
	SkipEnv   string `json:"skip_env" mapstructure:"skip_env"`
	BatchSize int    `json:"batch_size" mapstructure:"batch_size"`
	SkipRows  int    `json:"skip_rows" mapstructure:"skip_rows"`
}

// Fake configures generated rows for tables that have a real seed file but
// no fake one. Rows == 0 turns generation off.
type Fake struct {
	Rows int   `json:"rows,omitempty" mapstructure:"rows"`
	Seed int64 `json:"seed,omitempty" mapstructure:"seed"`
}

func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Provider == "" {
		c.Database.Provider = "postgresql"
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}
	if c.CSV.BaseDir == "" {
		c.CSV.BaseDir = seeder.DefaultBaseDir
	}
	if c.CSV.FilesDir == "" {
		c.CSV.FilesDir = seeder.DefaultFilesDir
	}
	if c.CSV.Delimiter == "" {
		c.CSV.Delimiter = ","
	}
	if c.CSV.SkipEnv == "" {
		c.CSV.SkipEnv = seeder.DefaultSkipEnv
	}
	if c.CSV.BatchSize == 0 {
		c.CSV.BatchSize = common.DefaultBatchSize
	}
}

func (c *Config) GetDatabaseURL() (string, error) {
	dbURL := os.Getenv(c.Database.URLEnv)
	if dbURL == "" {
		return "", fmt.Errorf("database URL not found in environment variable %s", c.Database.URLEnv)
	}
	return dbURL, nil
}

func (c *Config) Validate() error {
	if _, err := common.DialectFor(c.Database.Provider); err != nil {
		return fmt.Errorf("%w. Supported providers: [postgresql postgres mysql sqlite sqlite3]", err)
	}

	if utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv.delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	if err := c.csvOptions().Validate(); err != nil {
		return err
	}

	if c.CSV.BatchSize < 0 {
		return fmt.Errorf("csv.batch_size cannot be negative")
	}
	if c.Fake.Rows < 0 {
		return fmt.Errorf("fake.rows cannot be negative")
	}

	if len(c.Migrations) > 0 {
		if err := migration.ValidateSpecs(c.Migrations); err != nil {
			return err
		}
	}

	return nil
}

// SkipFakeData reports whether the skip environment variable asks to leave
// fake data out.
func (c *Config) SkipFakeData() bool {
	return seeder.ParseSkipFlag(os.Getenv(c.CSV.SkipEnv))
}

func (c *Config) csvOptions() csvfile.Options {
	delimiter, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return csvfile.Options{Delimiter: delimiter, SkipRows: c.CSV.SkipRows}
}

func (c *Config) ResolverOptions() seeder.Options {
	return seeder.Options{
		BaseDir:  c.CSV.BaseDir,
		FilesDir: c.CSV.FilesDir,
		CSV:      c.csvOptions(),
		SkipFake: c.SkipFakeData(),
	}
}

func (c *Config) Hooks() seeder.Hooks {
	if c.Fake.Rows <= 0 {
		return seeder.Hooks{}
	}
	return seeder.Hooks{Fake: seeder.SyntheticFake(c.ResolverOptions(), c.Fake.Rows, c.Fake.Seed)}
}

// NewResolver builds a resolver from the CSV and fake settings.
func (c *Config) NewResolver() *seeder.Resolver {
	return seeder.New(c.ResolverOptions(), c.Hooks())
}

// Write stores the config as indented JSON at path.
func (c *Config) Write(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
