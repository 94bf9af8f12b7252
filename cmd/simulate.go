package cmd

import (
	"fmt"

	"lsmc/internal/service"

	"github.com/spf13/cobra"
)

var simulateFlags struct {
	out        string
	spot       float64
	rate       float64
	volatility float64
	tenor      float64
	steps      int
	numPaths   int
	seed       uint64
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate geometric brownian motion paths to csv",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := loadDependencies(cmd)
		if err != nil {
			return err
		}

		input := service.SimulateInput{
			Spot:       simulateFlags.spot,
			Volatility: simulateFlags.volatility,
			Tenor:      simulateFlags.tenor,
			Steps:      simulateFlags.steps,
			Paths:      simulateFlags.numPaths,
		}
		if cmd.Flags().Changed("rate") {
			input.Rate = &simulateFlags.rate
		}
		if cmd.Flags().Changed("seed") {
			input.Seed = &simulateFlags.seed
		}

		paths, err := deps.PricingService.Simulate(cmd.Context(), input)
		if err != nil {
			return err
		}

		if simulateFlags.out == "" {
			return deps.PathRepository.Write(cmd.OutOrStdout(), paths)
		}
		if err := deps.PathRepository.Save(simulateFlags.out, paths); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d paths x %d steps to %s\n", paths.Rows(), paths.Cols()-1, simulateFlags.out)
		return nil
	},
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simulateFlags.out, "out", "", "output csv (default stdout)")
	f.Float64Var(&simulateFlags.spot, "spot", 100, "initial price")
	f.Float64Var(&simulateFlags.rate, "rate", 0, "risk free drift (default from config)")
	f.Float64Var(&simulateFlags.volatility, "volatility", 0.2, "annualised volatility")
	f.Float64Var(&simulateFlags.tenor, "tenor", 1, "horizon in years")
	f.IntVar(&simulateFlags.steps, "steps", 50, "time steps")
	f.IntVar(&simulateFlags.numPaths, "num-paths", 1000, "number of paths")
	f.Uint64Var(&simulateFlags.seed, "seed", 0, "seed (default from config)")

	rootCmd.AddCommand(simulateCmd)
}
