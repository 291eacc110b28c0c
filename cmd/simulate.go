package cmd

import (
	"fmt"

	"asset-forecast/cli"
	"asset-forecast/domain"

	"github.com/spf13/cobra"
)

var (
	flagScenarioType string
	flagBaseValue    float64
	flagMultiplier   float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Estimate the cost impact of a what-if scenario",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&flagScenarioType, "type", "t", "", "Scenario type")
	simulateCmd.Flags().Float64VarP(&flagBaseValue, "base", "b", 0, "Base value")
	simulateCmd.Flags().Float64VarP(&flagMultiplier, "multiplier", "m", 1, "Multiplier applied to the base value")
	_ = simulateCmd.MarkFlagRequired("type")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.service.RunSimulation(domain.SimulationInput{
		ScenarioType: flagScenarioType,
		Parameters: domain.SimulationParameters{
			BaseValue:  flagBaseValue,
			Multiplier: flagMultiplier,
		},
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SIMULATION  %s", result.ScenarioType)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Item", "Value"},
		Rows: [][]string{
			{"Estimated impact", cli.Signed(result.EstimatedImpact, cli.FormatMoney(result.EstimatedImpact))},
			{"Confidence", cli.FormatProbability(result.Confidence)},
			{"Labor", cli.FormatMoney(result.Breakdown.Labor)},
			{"Materials", cli.FormatMoney(result.Breakdown.Materials)},
			{"Overhead", cli.FormatMoney(result.Breakdown.Overhead)},
		},
	}))
	fmt.Println()

	rows := make([][]string, 0, len(result.Recommendations))
	for _, r := range result.Recommendations {
		rows = append(rows, []string{"-", r})
	}
	fmt.Print(cli.RenderTable(cli.Table{Title: "Recommendations", Rows: rows}))
	fmt.Println()
	fmt.Println("  " + cli.Muted("run "+result.RunID))
	return nil
}
