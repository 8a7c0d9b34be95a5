package cmd

import (
	"fmt"
	"os"

	"github.com/Rana718/csvmigrate/internal/csvfile"
	"github.com/Rana718/csvmigrate/internal/database/common"
	"github.com/Rana718/csvmigrate/internal/types"
	"github.com/Rana718/csvmigrate/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	previewFake  bool
	previewLimit int
)

var previewCmd = &cobra.Command{
	Use:   "preview <table>",
	Short: "Print the rows of a table's seed file",
	Long: `
Parse a seed file exactly as 'seed' would and print its rows. Empty fields
show as NULL.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		resolver := cfg.NewResolver()

		variant := types.Real
		if previewFake {
			variant = types.Fake
		}
		path := resolver.Path(args[0], variant)

		if !common.IsValidTableName(args[0]) {
			return fmt.Errorf("invalid table name: %s", args[0])
		}
		if !resolver.Exists(args[0], variant) {
			color.Yellow("⚠️  %s not found", path)
			return nil
		}

		header, err := csvfile.ReadHeader(path, resolver.Options().CSV)
		if err != nil {
			return err
		}
		records, err := csvfile.Parse(path, resolver.Options().CSV)
		if err != nil {
			return err
		}

		total := len(records)
		if previewLimit > 0 && len(records) > previewLimit {
			records = records[:previewLimit]
		}

		rows := make([]map[string]interface{}, len(records))
		for i, record := range records {
			rows[i] = record.Map()
		}

		color.Cyan("📄 %s (%d rows)", path, total)
		utils.RenderTable(os.Stdout, header, rows)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().BoolVar(&previewFake, "fake", false, "Preview {table}_fake.csv")
	previewCmd.Flags().IntVarP(&previewLimit, "limit", "n", 20, "Maximum rows to print (0 for all)")
}
