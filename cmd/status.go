package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Rana718/csvmigrate/internal/types"
	"github.com/Rana718/csvmigrate/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show seed migration status",
	Long: `
Show every configured seed migration with its table, whether it has been
applied and when.`,
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

		items, err := runner.Status(ctx)
		if err != nil {
			return err
		}

		return printStatus(items, statusOutput)
	},
}

func printStatus(items []types.MigrationStatusItem, output string) error {
	switch output {
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(items)
	case "text", "":
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}

	applied := 0
	rows := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		if item.Status == "applied" {
			applied++
		}
		appliedAt := "-"
		if item.AppliedAt != nil {
			appliedAt = item.AppliedAt.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, map[string]interface{}{
			"version":    item.Version,
			"table":      item.Table,
			"status":     item.Status,
			"applied at": appliedAt,
		})
	}

	color.Cyan("📊 Seed migrations: %d total, %d applied, %d pending", len(items), applied, len(items)-applied)
	utils.RenderTable(os.Stdout, []string{"version", "table", "status", "applied at"}, rows)
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "text", "Output format (text|yaml)")
}
