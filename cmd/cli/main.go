package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"goqval/adapters/render"
	"goqval/app"
	"goqval/domain/qvalue"
	"goqval/internal"
	"goqval/internal/testkit"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "goqval-cli",
		Short: "Console summaries of multiple-hypothesis-testing results",
	}

	rootCmd.AddCommand(
		newSummarizeCmd(),
		newDemoCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSummarizeCmd() *cobra.Command {
	var thresholds []float64
	var digits int

	cmd := &cobra.Command{
		Use:   "summarize <result.json>",
		Short: "Print the significance summary of an analysis result",
		Long: `Read an analysis result (call, pi0, pvalues, qvalues, lfdr; missing
entries encoded as null) from a JSON file and print its cumulative
significance table.

Example: goqval-cli summarize result.json --thresholds 0.01,0.05 --digits 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("cannot read result file: %w", err)
			}

			var result qvalue.AnalysisResult
			if err := json.Unmarshal(data, &result); err != nil {
				return fmt.Errorf("cannot parse result file: %w", err)
			}

			return runSummarize(cmd, &result, thresholds, digits)
		},
	}

	cmd.Flags().Float64SliceVar(&thresholds, "thresholds", nil, "Significance cuts, in display order")
	cmd.Flags().IntVar(&digits, "digits", 0, "Significant digits for pi0 (default 2)")

	return cmd
}

func newDemoCmd() *cobra.Command {
	var n int
	var pi0 float64
	var seed int64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Summarize a synthetic analysis result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := testkit.DefaultSyntheticConfig()
			cfg.N = n
			cfg.Pi0 = pi0
			cfg.Seed = seed

			result, err := testkit.NewSyntheticResult(cfg)
			if err != nil {
				return err
			}

			pstats, err := testkit.DescribeScores(result.PValues)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d hypotheses (mean p = %.3f, median p = %.3f)\n\n",
				pstats.Present, pstats.Mean, pstats.Median)

			return runSummarize(cmd, result, nil, 0)
		},
	}

	cmd.Flags().IntVar(&n, "n", 500, "Number of synthetic hypotheses")
	cmd.Flags().Float64Var(&pi0, "pi0", 0.8, "True null proportion of the synthetic mixture")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic generation")

	return cmd
}

func runSummarize(cmd *cobra.Command, result *qvalue.AnalysisResult, thresholds []float64, digits int) error {
	summarizer := app.NewSignificanceSummarizer(internal.NewDefaultLogger())

	res, err := summarizer.Summarize(cmd.Context(), app.SummaryRequest{
		Result:     result,
		Thresholds: thresholds,
		Digits:     digits,
	})
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), render.Text(res.Report))
	return nil
}
