package cmd

import (
	"fmt"
	"io"

	"lsmc/internal/domain"
	"lsmc/internal/logger"
	"lsmc/internal/service"

	"github.com/spf13/cobra"
)

var priceFlags struct {
	pathsFile   string
	resultFile  string
	optionType  string
	strike      float64
	tenor       float64
	rate        float64
	degree      int
	dt          string
	sparseFit   string
	spot        float64
	volatility  float64
	steps       int
	numPaths    int
	seed        uint64
	pfeQuantile float64
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price an american option",
	Long: `Price an american option from a long format csv of paths (path,step,price)
given with --paths, or from paths simulated with --spot, --volatility, --steps
and --num-paths.`,
	RunE: runPrice,
}

func init() {
	f := priceCmd.Flags()
	f.StringVar(&priceFlags.pathsFile, "paths", "", "path csv to price")
	f.StringVar(&priceFlags.resultFile, "out", "", "write cashflows and exposures to this csv")
	f.StringVar(&priceFlags.optionType, "type", "put", "call or put")
	f.Float64Var(&priceFlags.strike, "strike", 0, "strike price")
	f.Float64Var(&priceFlags.tenor, "tenor", 1, "time to maturity in years")
	f.Float64Var(&priceFlags.rate, "rate", 0, "continuously compounded risk free rate (default from config)")
	f.IntVar(&priceFlags.degree, "degree", 0, "regression polynomial degree (default from config)")
	f.StringVar(&priceFlags.dt, "dt", "", "dt convention: intervals, columns or unit (default from config)")
	f.StringVar(&priceFlags.sparseFit, "sparse-fit", "", "sparse regression policy: fail or zero (default from config)")
	f.Float64Var(&priceFlags.spot, "spot", 0, "spot for simulated paths and the european reference")
	f.Float64Var(&priceFlags.volatility, "volatility", 0, "volatility for simulated paths and the european reference")
	f.IntVar(&priceFlags.steps, "steps", 50, "time steps for simulated paths")
	f.IntVar(&priceFlags.numPaths, "num-paths", 10000, "number of simulated paths")
	f.Uint64Var(&priceFlags.seed, "seed", 0, "simulation seed (default from config)")
	f.Float64Var(&priceFlags.pfeQuantile, "pfe-quantile", 0, "quantile for potential future exposure (default from config)")
	_ = priceCmd.MarkFlagRequired("strike")

	rootCmd.AddCommand(priceCmd)
}

func runPrice(cmd *cobra.Command, args []string) error {
	deps, err := loadDependencies(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	flags := cmd.Flags()

	optionType, err := domain.ParseOptionType(priceFlags.optionType)
	if err != nil {
		return err
	}
	contract := domain.OptionContract{
		Type:   optionType,
		Strike: priceFlags.strike,
		Tenor:  priceFlags.tenor,
	}

	var rate *float64
	if flags.Changed("rate") {
		rate = &priceFlags.rate
	}
	var pfeQuantile *float64
	if flags.Changed("pfe-quantile") {
		pfeQuantile = &priceFlags.pfeQuantile
	}
	var degree *int
	if flags.Changed("degree") {
		degree = &priceFlags.degree
	}

	var result *service.PriceOptionResult
	if priceFlags.pathsFile != "" {
		paths, err := deps.PathRepository.Load(priceFlags.pathsFile)
		if err != nil {
			return err
		}
		input := service.PriceOptionInput{
			Paths:           paths,
			Contract:        contract,
			Rate:            rate,
			Degree:          degree,
			DtConvention:    priceFlags.dt,
			SparseFitPolicy: priceFlags.sparseFit,
			PFEQuantile:     pfeQuantile,
		}
		if flags.Changed("spot") && flags.Changed("volatility") {
			input.Spot = &priceFlags.spot
			input.Volatility = &priceFlags.volatility
		}
		result, err = deps.PricingService.PriceOption(ctx, input)
		if err != nil {
			return err
		}
	} else {
		var seed *uint64
		if flags.Changed("seed") {
			seed = &priceFlags.seed
		}
		result, err = deps.PricingService.SimulateAndPrice(ctx, service.SimulateAndPriceInput{
			Spot:            priceFlags.spot,
			Volatility:      priceFlags.volatility,
			Steps:           priceFlags.steps,
			NumPaths:        priceFlags.numPaths,
			Seed:            seed,
			Contract:        contract,
			Rate:            rate,
			Degree:          degree,
			DtConvention:    priceFlags.dt,
			SparseFitPolicy: priceFlags.sparseFit,
			PFEQuantile:     pfeQuantile,
		})
		if err != nil {
			return err
		}
	}

	if priceFlags.resultFile != "" {
		if err := deps.ResultRepository.Save(priceFlags.resultFile, *result.Pricing); err != nil {
			return err
		}
		logger.FromContext(ctx).Infow("wrote result", "file", priceFlags.resultFile)
	}

	printResult(cmd.OutOrStdout(), result)
	return nil
}

func printResult(w io.Writer, result *service.PriceOptionResult) {
	fmt.Fprintf(w, "run:        %s\n", result.RunID)
	fmt.Fprintf(w, "option:     %s K=%v T=%v r=%v degree=%d\n", result.Contract.Type, result.Contract.Strike, result.Contract.Tenor, result.Rate, result.Degree)
	fmt.Fprintf(w, "paths:      %d x %d steps (dt=%v)\n", result.NumPaths, result.NumSteps, result.Pricing.Dt)
	fmt.Fprintf(w, "price:      %s\n", result.Price)
	if result.EuropeanPrice != nil {
		fmt.Fprintf(w, "european:   %s\n", result.EuropeanPrice)
		fmt.Fprintf(w, "premium:    %s\n", result.EarlyExercisePremium)
	}
	fmt.Fprintf(w, "exercised:  %d of %d paths\n", result.Pricing.NumExercised(), result.NumPaths)
	if len(result.Pricing.FallbackSteps) > 0 {
		fmt.Fprintf(w, "fallbacks:  %v\n", result.Pricing.FallbackSteps)
	}
	if result.Exposure != nil {
		fmt.Fprintf(w, "peak pfe:   %.6f at step %d (q=%v)\n", result.Exposure.PeakPFE, result.Exposure.PeakPFEStep, result.Exposure.Quantile)
		fmt.Fprintf(w, "avg epe:    %.6f\n", result.Exposure.AverageEPE)
	}
}
