package cmd

import (
	"context"

	"github.com/Rana718/csvmigrate/internal/database/common"
	"github.com/Rana718/csvmigrate/internal/export"
	"github.com/Rana718/csvmigrate/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	exportFake bool
	exportGzip bool
)

var exportCmd = &cobra.Command{
	Use:   "export <table> [table...]",
	Short: "Write table rows back to seed files",
	Long: `
Dump the current rows of each table into {table}.csv (or {table}_fake.csv
with --fake) in the seed directory, overwriting any existing file.

Examples:
  csvmigrate export users
  csvmigrate export users --fake --gzip`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dialect, err := common.DialectFor(cfg.Database.Provider)
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
		variant := types.Real
		if exportFake {
			variant = types.Fake
		}
		opts := export.Options{Delimiter: resolver.Options().CSV.Delimiter, Gzip: exportGzip}

		for _, table := range args {
			path := resolver.Path(table, variant)
			color.Cyan("📦 Exporting %s to %s", table, path)
			n, err := export.Table(ctx, adapter.DB(), dialect, table, path, opts)
			if err != nil {
				return err
			}
			color.Green("✅ Exported %d rows", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolVar(&exportFake, "fake", false, "Write {table}_fake.csv instead of {table}.csv")
	exportCmd.Flags().BoolVar(&exportGzip, "gzip", false, "Gzip the written file")
}
