package cmd

import (
	"fmt"

	"asset-forecast/cli"
	"asset-forecast/domain"

	"github.com/spf13/cobra"
)

var (
	flagInvestment float64
	flagReturns    []float64
	flagPeriods    int
)

var roiCmd = &cobra.Command{
	Use:   "roi",
	Short: "Analyse an investment: ROI, payback, NPV and IRR",
	RunE:  runROI,
}

func init() {
	roiCmd.Flags().Float64VarP(&flagInvestment, "investment", "i", 0, "Initial investment")
	roiCmd.Flags().Float64SliceVarP(&flagReturns, "returns", "r", nil, "Expected return per period, comma separated")
	roiCmd.Flags().IntVarP(&flagPeriods, "periods", "p", 0, "Timeframe in periods (payback default)")
	_ = roiCmd.MarkFlagRequired("investment")
	rootCmd.AddCommand(roiCmd)
}

func runROI(cmd *cobra.Command, _ []string) error {
	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	periods := flagPeriods
	if periods == 0 {
		periods = len(flagReturns)
	}

	result, err := a.service.CalculateROI(domain.ROIInput{
		InitialInvestment:  flagInvestment,
		ExpectedReturns:    flagReturns,
		TimeframeInPeriods: periods,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("INVESTMENT ANALYSIS"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"ROI", cli.Signed(result.ROI, cli.FormatPercent(result.ROI))},
			{"Payback", fmt.Sprintf("%d periods", result.PaybackPeriod)},
			{"NPV", cli.Signed(result.NPV, cli.FormatMoney(result.NPV))},
			{"IRR", cli.FormatPercent(result.IRR)},
		},
	}))
	fmt.Println()
	return nil
}
