package cmd

import (
	"context"
	"fmt"

	"github.com/Rana718/csvmigrate/internal/utils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the last applied seed migration",
	Long: `
Revert the most recently applied seed migration by truncating its table.

⚠️  The table is emptied completely, including rows that did not come from
the seed files.

Examples:
  csvmigrate down            # Revert last seed migration
  csvmigrate down --force    # Skip confirmation prompt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		if !utils.NewInputUtils().AskConfirmation("⚠️  Revert the last seed migration and truncate its table?", force) {
			color.Yellow("Rollback cancelled")
			return nil
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

		res, err := runner.Down(ctx)
		if err != nil {
			return err
		}
		if res == nil {
			color.Yellow("⚠️  No applied seed migrations to revert")
			return nil
		}
		fmt.Println()
		color.Green("✅ Reverted %d %s", res.Version, res.Table)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(downCmd)
}
