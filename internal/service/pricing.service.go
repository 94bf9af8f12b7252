package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lsmc/internal/calculator"
	"lsmc/internal/config"
	"lsmc/internal/domain"
	"lsmc/internal/logger"
	"lsmc/internal/lsmc"
	"lsmc/internal/simulation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PricingService validates pricing requests against the configured limits,
// runs the LSMC engine and summarises the result
type PricingService interface {
	PriceOption(ctx context.Context, input PriceOptionInput) (*PriceOptionResult, error)
	SimulateAndPrice(ctx context.Context, input SimulateAndPriceInput) (*PriceOptionResult, error)
	Simulate(ctx context.Context, input SimulateInput) (domain.Matrix, error)
}

// PriceOptionInput leaves optional fields nil or empty to use the
// configured defaults
type PriceOptionInput struct {
	Paths    domain.Matrix
	Contract domain.OptionContract
	Rate     *float64

	Degree          *int
	DtConvention    string
	SparseFitPolicy string
	PFEQuantile     *float64

	// both are needed for the european reference price
	Spot       *float64
	Volatility *float64
}

type SimulateInput struct {
	Spot       float64
	Rate       *float64
	Volatility float64
	Tenor      float64
	Steps      int
	Paths      int
	Seed       *uint64
}

type SimulateAndPriceInput struct {
	Spot       float64
	Volatility float64
	Steps      int
	NumPaths   int
	Seed       *uint64

	Contract        domain.OptionContract
	Rate            *float64
	Degree          *int
	DtConvention    string
	SparseFitPolicy string
	PFEQuantile     *float64
}

type PriceOptionResult struct {
	RunID    uuid.UUID
	Contract domain.OptionContract
	Rate     float64
	Degree   int
	// Price rounded for display, Pricing.Price keeps full precision
	Price   decimal.Decimal
	Pricing *domain.PricingResult

	Exposure *calculator.ExposureProfile

	EuropeanPrice        *decimal.Decimal
	EarlyExercisePremium *decimal.Decimal

	NumPaths int
	NumSteps int
	Profile  *domain.Profile
}

const displayPlaces = 6

type pricingServiceHandler struct {
	PricingConfig    config.PricingConfig
	SimulationConfig config.SimulationConfig
}

func NewPricingService(cfg *config.Config) PricingService {
	return pricingServiceHandler{
		PricingConfig:    cfg.Pricing,
		SimulationConfig: cfg.Simulation,
	}
}

func (h pricingServiceHandler) PriceOption(ctx context.Context, input PriceOptionInput) (*PriceOptionResult, error) {
	runID := uuid.New()
	log := logger.FromContext(ctx).With("runID", runID.String())

	profile := domain.ProfileFromContext(ctx)
	_, endSpan := profile.StartNewSpan("validate")

	optionType := input.Contract.Type
	if err := optionType.Validate(); err != nil {
		PricingRuns.WithLabelValues(string(optionType), outcomeInvalid).Inc()
		return nil, err
	}
	if err := h.checkLimits(input.Paths.Rows(), input.Paths.Cols()-1); err != nil {
		PricingRuns.WithLabelValues(string(optionType), outcomeInvalid).Inc()
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		PricingRuns.WithLabelValues(string(optionType), outcomeCanceled).Inc()
		return nil, err
	}

	pricingInput := lsmc.PriceInput{
		Paths:           input.Paths,
		Tenor:           input.Contract.Tenor,
		Rate:            h.rate(input.Rate),
		Strike:          input.Contract.Strike,
		Type:            optionType,
		Degree:          h.degree(input.Degree),
		DtConvention:    lsmc.DtConvention(orDefault(input.DtConvention, h.PricingConfig.DtConvention)),
		SparseFitPolicy: lsmc.SparseFitPolicy(orDefault(input.SparseFitPolicy, h.PricingConfig.SparseFitPolicy)),
		Workers:         h.PricingConfig.Workers,
	}
	quantile := h.quantile(input.PFEQuantile)
	if !(quantile > 0 && quantile <= 1) {
		PricingRuns.WithLabelValues(string(optionType), outcomeInvalid).Inc()
		return nil, fmt.Errorf("%w: pfe quantile must be in (0, 1], got %v", domain.ErrInvalidInput, quantile)
	}
	endSpan()

	_, endSpan = profile.StartNewSpan("price")
	start := time.Now()
	result, err := lsmc.Price(pricingInput)
	elapsed := time.Since(start)
	endSpan()

	PricingDuration.WithLabelValues(string(optionType)).Observe(float64(elapsed.Microseconds()) / 1000)
	if err != nil {
		outcome := outcomeFromError(err)
		PricingRuns.WithLabelValues(string(optionType), outcome).Inc()
		if outcome == outcomeError {
			log.Errorw("pricing failed", "error", err)
		} else {
			log.Warnw("pricing rejected", "outcome", outcome, "error", err)
		}
		return nil, fmt.Errorf("failed to price option: %w", err)
	}
	if len(result.FallbackSteps) > 0 {
		RegressionFallbacks.WithLabelValues(string(optionType)).Add(float64(len(result.FallbackSteps)))
		log.Warnw("regression fell back to zero continuation", "steps", result.FallbackSteps)
	}

	_, endSpan = profile.StartNewSpan("exposure")
	exposure, err := calculator.CalculateExposureProfile(result.PositiveExposure, result.NegativeExposure, result.Dt, quantile)
	endSpan()
	if err != nil {
		PricingRuns.WithLabelValues(string(optionType), outcomeFromError(err)).Inc()
		log.Errorw("exposure profile failed", "error", err)
		return nil, fmt.Errorf("failed to compute exposure profile: %w", err)
	}

	out := &PriceOptionResult{
		RunID:    runID,
		Contract: input.Contract,
		Rate:     pricingInput.Rate,
		Degree:   pricingInput.Degree,
		Price:    decimal.NewFromFloat(result.Price).Round(displayPlaces),
		Pricing:  result,
		Exposure: exposure,
		NumPaths: input.Paths.Rows(),
		NumSteps: input.Paths.Cols() - 1,
		Profile:  profile,
	}

	if input.Spot != nil && input.Volatility != nil && *input.Volatility > 0 {
		european, err := calculator.BlackScholes(optionType, *input.Spot, input.Contract.Strike, input.Contract.Tenor, pricingInput.Rate, *input.Volatility)
		if err != nil {
			PricingRuns.WithLabelValues(string(optionType), outcomeFromError(err)).Inc()
			return nil, fmt.Errorf("failed to compute european reference: %w", err)
		}
		europeanPrice := decimal.NewFromFloat(european).Round(displayPlaces)
		premium := decimal.NewFromFloat(result.Price - european).Round(displayPlaces)
		out.EuropeanPrice = &europeanPrice
		out.EarlyExercisePremium = &premium
	}

	PricingRuns.WithLabelValues(string(optionType), outcomeOK).Inc()
	log.Infow(
		"priced option",
		"type", string(optionType),
		"strike", input.Contract.Strike,
		"paths", out.NumPaths,
		"steps", out.NumSteps,
		"price", out.Price.String(),
		"exercised", result.NumExercised(),
		"elapsedMs", elapsed.Milliseconds(),
	)

	return out, nil
}

func (h pricingServiceHandler) SimulateAndPrice(ctx context.Context, input SimulateAndPriceInput) (*PriceOptionResult, error) {
	profile := domain.ProfileFromContext(ctx)
	ctx = domain.NewCtxWithProfile(ctx, profile)

	if err := input.Contract.Type.Validate(); err != nil {
		return nil, err
	}

	paths, err := h.Simulate(ctx, SimulateInput{
		Spot:       input.Spot,
		Rate:       input.Rate,
		Volatility: input.Volatility,
		Tenor:      input.Contract.Tenor,
		Steps:      input.Steps,
		Paths:      input.NumPaths,
		Seed:       input.Seed,
	})
	if err != nil {
		return nil, err
	}

	spot, vol := input.Spot, input.Volatility
	return h.PriceOption(ctx, PriceOptionInput{
		Paths:           paths,
		Contract:        input.Contract,
		Rate:            input.Rate,
		Degree:          input.Degree,
		DtConvention:    input.DtConvention,
		SparseFitPolicy: input.SparseFitPolicy,
		PFEQuantile:     input.PFEQuantile,
		Spot:            &spot,
		Volatility:      &vol,
	})
}

func (h pricingServiceHandler) Simulate(ctx context.Context, input SimulateInput) (domain.Matrix, error) {
	if err := h.checkLimits(input.Paths, input.Steps); err != nil {
		return nil, err
	}

	profile := domain.ProfileFromContext(ctx)
	_, endSpan := profile.StartNewSpan("simulate")
	defer endSpan()

	seed := uint64(1)
	if h.SimulationConfig.Seed != nil {
		seed = *h.SimulationConfig.Seed
	}
	if input.Seed != nil {
		seed = *input.Seed
	}

	gbm := simulation.GBM{
		Spot:       input.Spot,
		Rate:       h.rate(input.Rate),
		Volatility: input.Volatility,
		Tenor:      input.Tenor,
		Steps:      input.Steps,
		Paths:      input.Paths,
		Seed:       seed,
		Workers:    h.SimulationConfig.Workers,
	}
	paths, err := gbm.Simulate(ctx)
	if err != nil {
		return nil, err
	}
	SimulatedPaths.Add(float64(paths.Rows()))

	logger.FromContext(ctx).Debugw("simulated paths", "paths", gbm.Paths, "steps", gbm.Steps, "seed", seed)

	return paths, nil
}

// checkLimits rejects requests larger than the service is configured to
// handle. a zero limit means unbounded
func (h pricingServiceHandler) checkLimits(numPaths, numSteps int) error {
	if h.PricingConfig.MaxPaths > 0 && numPaths > h.PricingConfig.MaxPaths {
		return fmt.Errorf("%w: %d paths exceeds the limit of %d", domain.ErrInvalidInput, numPaths, h.PricingConfig.MaxPaths)
	}
	if h.PricingConfig.MaxSteps > 0 && numSteps > h.PricingConfig.MaxSteps {
		return fmt.Errorf("%w: %d steps exceeds the limit of %d", domain.ErrInvalidInput, numSteps, h.PricingConfig.MaxSteps)
	}
	return nil
}

func (h pricingServiceHandler) rate(r *float64) float64 {
	if r != nil {
		return *r
	}
	return h.PricingConfig.Rate
}

func (h pricingServiceHandler) degree(d *int) int {
	if d != nil {
		return *d
	}
	if h.PricingConfig.Degree != nil {
		return *h.PricingConfig.Degree
	}
	return lsmc.DefaultDegree
}

func (h pricingServiceHandler) quantile(q *float64) float64 {
	if q != nil {
		return *q
	}
	if h.PricingConfig.PFEQuantile > 0 {
		return h.PricingConfig.PFEQuantile
	}
	return calculator.DefaultPFEQuantile
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func outcomeFromError(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientRegressionData):
		return outcomeInsufficientData
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownOptionType):
		return outcomeInvalid
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	}
	return outcomeError
}
