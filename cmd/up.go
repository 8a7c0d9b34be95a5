package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Rana718/csvmigrate/internal/config"
	"github.com/Rana718/csvmigrate/internal/database"
	"github.com/Rana718/csvmigrate/internal/database/common"
	"github.com/Rana718/csvmigrate/internal/migration"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending seed migrations",
	Long: `
Apply every seed migration listed under "migrations" in the config that has
not been applied yet, in version order. Each migration imports its table's
seed files inside a transaction and records its version on success.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := context.Background()
		adapter, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		runner, err := newRunner(cfg, adapter)
		if err != nil {
			return err
		}
		defer runner.Close()

		color.Cyan("🚀 Applying seed migrations...")
		results, err := runner.Up(ctx)
		for _, res := range results {
			color.Green("✅ %d %s: %s (%s)", res.Version, res.Table, res.Decision, res.Duration.Round(time.Millisecond))
		}
		if err != nil {
			return err
		}
		if len(results) == 0 {
			color.Green("✅ No pending seed migrations")
		}
		return nil
	},
}

func newRunner(cfg *config.Config, adapter database.DatabaseAdapter) (*migration.Runner, error) {
	if len(cfg.Migrations) == 0 {
		return nil, fmt.Errorf("no seed migrations configured in %s", config.DefaultConfigFile)
	}
	dialect, err := common.DialectFor(cfg.Database.Provider)
	if err != nil {
		return nil, err
	}
	return migration.NewRunner(adapter.DB(), dialect, cfg.NewResolver(), cfg.Migrations, cfg.CSV.BatchSize)
}

func init() {
	rootCmd.AddCommand(upCmd)
}
