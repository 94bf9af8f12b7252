package cmd

import (
	"fmt"

	"lsmc/api"
	"lsmc/internal/config"
	"lsmc/internal/logger"
	"lsmc/internal/repository"
	"lsmc/internal/service"
)

type Dependencies struct {
	Config           *config.Config
	ApiHandler       *api.ApiHandler
	PricingService   service.PricingService
	PathRepository   repository.PathRepository
	ResultRepository repository.ResultRepository
}

// LoadConfig reads path when given, otherwise LSMC_CONFIG and the default
// locations
func LoadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

func InitializeDependencies(cfg *config.Config) (*Dependencies, error) {
	if cfg == nil {
		return nil, fmt.Errorf("failed to initialize dependencies: missing config")
	}

	pricingService := service.NewPricingService(cfg)

	apiHandler := &api.ApiHandler{
		PricingService: pricingService,
		Logger:         logger.New(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}

	return &Dependencies{
		Config:           cfg,
		ApiHandler:       apiHandler,
		PricingService:   pricingService,
		PathRepository:   repository.NewPathRepository(),
		ResultRepository: repository.NewResultRepository(),
	}, nil
}
