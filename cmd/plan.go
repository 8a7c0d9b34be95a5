package cmd

import (
	"fmt"
	"os"

	"github.com/Rana718/csvmigrate/internal/seeder"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	planBoth   bool
	planOutput string
)

var planCmd = &cobra.Command{
	Use:   "plan <table> [table...]",
	Short: "Preview which seed files would be imported",
	Long: `
Show, for each table, which seed files exist and what 'seed' would do with
them. Nothing is read from or written to the database.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		resolver := cfg.NewResolver()

		plans := make([]seeder.Plan, 0, len(args))
		for _, table := range args {
			plan, err := resolver.Plan(table, planBoth)
			if err != nil {
				return err
			}
			plans = append(plans, plan)
		}

		switch planOutput {
		case "yaml":
			enc := yaml.NewEncoder(os.Stdout)
			defer enc.Close()
			return enc.Encode(plans)
		case "text", "":
			for _, plan := range plans {
				printPlan(plan)
			}
			return nil
		default:
			return fmt.Errorf("unsupported output format: %s", planOutput)
		}
	},
}

func printPlan(plan seeder.Plan) {
	color.Cyan("📋 %s", plan.Table)
	for _, step := range plan.Steps {
		switch step.Action {
		case seeder.ActionImportFile:
			color.Green("   %-5s import %s", step.Variant, step.Path)
		case seeder.ActionManualHook:
			color.Yellow("   %-5s fallback (%s not found)", step.Variant, step.Path)
		case seeder.ActionSkip:
			color.Yellow("   %-5s skipped by skip flag", step.Variant)
		default:
			fmt.Printf("   %-5s nothing to do (%s not found)\n", step.Variant, step.Path)
		}
	}
	fmt.Printf("   decision: %s\n", plan.Decision)
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().BoolVar(&planBoth, "both", false, "Plan as if fake data were forced")
	planCmd.Flags().StringVarP(&planOutput, "output", "o", "text", "Output format (text|yaml)")
}
