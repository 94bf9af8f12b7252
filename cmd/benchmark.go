package cmd

import (
	"context"
	"fmt"
	"io"

	"lsmc/internal/domain"
	"lsmc/internal/lsmc"

	"github.com/spf13/cobra"
)

// ClassicPaths is the 8 path, 3 step example from Longstaff and Schwartz
// (2001), priced as a put with K=1.10, r=0.06 and one year per step
func ClassicPaths() domain.Matrix {
	return domain.Matrix{
		{1.00, 1.09, 1.08, 1.34},
		{1.00, 1.16, 1.26, 1.54},
		{1.00, 1.22, 1.07, 1.03},
		{1.00, 0.93, 0.97, 0.92},
		{1.00, 1.11, 1.56, 1.52},
		{1.00, 0.76, 0.77, 0.90},
		{1.00, 0.92, 0.84, 1.01},
		{1.00, 0.88, 1.22, 1.34},
	}
}

func ClassicInput() lsmc.PriceInput {
	return lsmc.PriceInput{
		Paths:  ClassicPaths(),
		Tenor:  3,
		Rate:   0.06,
		Strike: 1.10,
		Type:   domain.OptionTypePut,
		Degree: lsmc.DefaultDegree,
	}
}

// RunBenchmark prices the classic example and prints the cashflow matrix
func RunBenchmark(ctx context.Context, w io.Writer) (*domain.PricingResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result, err := lsmc.Price(ClassicInput())
	if err != nil {
		return nil, fmt.Errorf("failed to price benchmark: %w", err)
	}

	fmt.Fprintf(w, "price: %.10f\n", result.Price)
	fmt.Fprintln(w, "cashflows:")
	for p, row := range result.Cashflows {
		fmt.Fprintf(w, "  path %d:", p+1)
		for _, v := range row[1:] {
			fmt.Fprintf(w, " %.4f", v)
		}
		fmt.Fprintln(w)
	}
	return result, nil
}

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Price the classic 8 path example",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := RunBenchmark(cmd.Context(), cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(benchmarkCmd)
}
