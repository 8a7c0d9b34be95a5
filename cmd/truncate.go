package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/csvmigrate/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var truncateCmd = &cobra.Command{
	Use:   "truncate <table>",
	Short: "Empty a seeded table",
	Long: `
Remove every row from a table and reset its identity counter. On PostgreSQL
the truncate cascades to dependent tables; on MySQL foreign key checks are
disabled for the duration of the statement.

⚠️  WARNING: This permanently deletes the table's data, seeded or not.

Use --force to skip the confirmation prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table := args[0]
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		input := utils.NewInputUtils()
		if !input.AskConfirmation(fmt.Sprintf("⚠️  Delete all rows from %s?", table), force) {
			color.Yellow("Truncate cancelled")
			return nil
		}

		ctx := context.Background()
		adapter, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer adapter.Close()

		return cfg.NewResolver().Rollback(ctx, adapter, table)
	},
}

func init() {
	rootCmd.AddCommand(truncateCmd)
}
