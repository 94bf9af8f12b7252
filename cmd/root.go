package cmd

import (
	"fmt"

	"lsmc/internal/logger"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lsmc",
	Short: "Price american options with the Longstaff-Schwartz method",
	Long: `lsmc prices american calls and puts from a matrix of simulated price
paths by least squares regression of the continuation value, and reports the
per path cashflows and exposures of the optimal exercise strategy.

Commands:
  price     - price an option from a path csv or freshly simulated paths
  simulate  - write geometric brownian motion paths to csv
  serve     - run the http api
  benchmark - price the classic 8 path example`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $LSMC_CONFIG or ./configs/lsmc.toml)")
}

func loadDependencies(cmd *cobra.Command) (*Dependencies, error) {
	cfg, err := LoadConfig(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	deps, err := InitializeDependencies(cfg)
	if err != nil {
		return nil, err
	}
	cmd.SetContext(logger.NewContext(cmd.Context(), logger.New()))
	return deps, nil
}
