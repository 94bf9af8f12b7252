package main

import (
	"context"
	"log"
	"os"

	"lsmc/cmd"
	"lsmc/internal/config"
	"lsmc/internal/domain"
	"lsmc/internal/logger"
	"lsmc/internal/service"
)

// prints the classic example, then how the price of an at the money put
// settles as the path count grows
func main() {
	ctx := context.Background()
	lg := logger.New()
	ctx = logger.NewContext(ctx, lg)

	_, err := cmd.RunBenchmark(ctx, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.Default()
	cfg.Pricing.SparseFitPolicy = "zero"
	cfg.Pricing.Workers = 4
	deps, err := cmd.InitializeDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}

	rate := 0.05
	for _, numPaths := range []int{1_000, 5_000, 20_000, 50_000} {
		out, err := deps.PricingService.SimulateAndPrice(ctx, service.SimulateAndPriceInput{
			Spot:       100,
			Volatility: 0.2,
			Steps:      50,
			NumPaths:   numPaths,
			Contract: domain.OptionContract{
				Type:   domain.OptionTypePut,
				Strike: 100,
				Tenor:  1,
			},
			Rate: &rate,
		})
		if err != nil {
			log.Fatal(err)
		}
		lg.Infow(
			"convergence",
			"paths", numPaths,
			"american", out.Price.String(),
			"european", out.EuropeanPrice.String(),
			"premium", out.EarlyExercisePremium.String(),
		)
	}
}
