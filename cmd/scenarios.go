package cmd

import (
	"fmt"

	"asset-forecast/cli"

	"github.com/spf13/cobra"
)

var flagTop int

var scenariosCmd = &cobra.Command{
	Use:   "scenarios",
	Short: "List impact scenarios in priority order",
	RunE:  runScenarios,
}

func init() {
	scenariosCmd.Flags().IntVarP(&flagTop, "top", "n", 0, "Show only the first N scenarios")
	rootCmd.AddCommand(scenariosCmd)
}

func runScenarios(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	scenarios, err := a.service.GetImpactScenarios(cmd.Context())
	if err != nil {
		return err
	}
	if flagTop > 0 && flagTop < len(scenarios) {
		scenarios = scenarios[:flagTop]
	}

	rows := make([][]string, 0, len(scenarios))
	for _, s := range scenarios {
		rows = append(rows, []string{
			s.ID,
			s.Action,
			cli.Signed(s.FinancialImpact, cli.FormatMoney(s.FinancialImpact)),
			cli.FormatProbability(s.Probability),
			string(s.Category),
			string(s.Urgency),
			s.Timeframe,
		})
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("IMPACT SCENARIOS"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"#", "Action", "Impact", "Prob.", "Category", "Urgency", "Horizon"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}
