package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var seedBoth bool

var seedCmd = &cobra.Command{
	Use:   "seed <table> [table...]",
	Short: "Import seed CSV files into tables",
	Long: `
Import {table}.csv and, unless SKIP_FAKE is set, {table}_fake.csv into each
table. Use --both to import fake data regardless of SKIP_FAKE.

Examples:
  csvmigrate seed users
  csvmigrate seed users posts --both`,
	Args: cobra.MinimumNArgs(1),
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

		resolver := cfg.NewResolver()
		for _, table := range args {
			if _, err := resolver.Resolve(ctx, adapter, table, seedBoth); err != nil {
				return fmt.Errorf("failed to seed %s: %w", table, err)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&seedBoth, "both", false, "Import fake data even when SKIP_FAKE is set")
}
