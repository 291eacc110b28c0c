package cmd

import (
	"fmt"

	"asset-forecast/cli"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Project next quarter and next year costs from history",
	RunE:  runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	prediction, err := a.service.GetBudgetPrediction(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET FORECAST"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Horizon", "Projected cost"},
		Rows: [][]string{
			{"Next quarter", cli.FormatMoney(prediction.NextQuarter)},
			{"Next 12 months", cli.FormatMoney(prediction.NextYear)},
		},
	}))
	fmt.Println()

	rows := make([][]string, 0, len(prediction.Factors))
	for i, f := range prediction.Factors {
		rows = append(rows, []string{fmt.Sprintf("%d.", i+1), f})
	}
	fmt.Print(cli.RenderTable(cli.Table{Title: "Drivers", Rows: rows}))

	if prediction.Explanation != "" {
		fmt.Println()
		fmt.Println("  " + cli.Muted(prediction.Explanation))
	}
	fmt.Println()
	return nil
}
