package service

import (
	"context"
	"errors"
	"testing"

	"lsmc/internal/config"
	"lsmc/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func classicPaths() domain.Matrix {
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

func newTestService(modify func(cfg *config.Config)) pricingServiceHandler {
	cfg := config.Default()
	cfg.Pricing.Rate = 0.06
	if modify != nil {
		modify(cfg)
	}
	return NewPricingService(cfg).(pricingServiceHandler)
}

func floatPtr(f float64) *float64 {
	return &f
}

func uint64Ptr(u uint64) *uint64 {
	return &u
}

func Test_pricingServiceHandler_PriceOption(t *testing.T) {
	put := domain.OptionContract{Type: domain.OptionTypePut, Strike: 1.10, Tenor: 3}

	t.Run("classic example with configured defaults", func(t *testing.T) {
		handler := newTestService(nil)
		okBefore := testutil.ToFloat64(PricingRuns.WithLabelValues("put", outcomeOK))

		profile, endProfile := domain.NewProfile()
		ctx := domain.NewCtxWithProfile(context.Background(), profile)
		out, err := handler.PriceOption(ctx, PriceOptionInput{
			Paths:    classicPaths(),
			Contract: put,
		})
		endProfile()
		require.NoError(t, err)

		require.True(t, decimal.RequireFromString("0.114434").Equal(out.Price), out.Price.String())
		require.InDelta(t, 0.1144343300450570, out.Pricing.Price, 1e-12)
		require.Equal(t, 0.06, out.Rate)
		require.Equal(t, 2, out.Degree)
		require.Equal(t, 8, out.NumPaths)
		require.Equal(t, 3, out.NumSteps)
		require.Nil(t, out.EuropeanPrice)
		require.Len(t, out.Exposure.Steps, 4)
		require.Equal(t, 0.95, out.Exposure.Quantile)

		spanNames := []string{}
		for _, s := range out.Profile.Spans {
			spanNames = append(spanNames, s.Name)
		}
		diff := cmp.Diff([]string{"validate", "price", "exposure"}, spanNames)
		require.Empty(t, diff)
		require.NotNil(t, out.Profile.TotalMs)

		require.Equal(t, okBefore+1, testutil.ToFloat64(PricingRuns.WithLabelValues("put", outcomeOK)))
	})

	t.Run("request overrides config", func(t *testing.T) {
		handler := newTestService(func(cfg *config.Config) {
			cfg.Pricing.Rate = 0.5
			cfg.Pricing.DtConvention = "unit"
		})
		out, err := handler.PriceOption(context.Background(), PriceOptionInput{
			Paths:        classicPaths(),
			Contract:     put,
			Rate:         floatPtr(0.06),
			DtConvention: "intervals",
		})
		require.NoError(t, err)
		require.InDelta(t, 0.1144343300450570, out.Pricing.Price, 1e-12)
		require.Equal(t, 1.0, out.Pricing.Dt)
	})

	t.Run("too many paths", func(t *testing.T) {
		handler := newTestService(func(cfg *config.Config) {
			cfg.Pricing.MaxPaths = 4
		})
		_, err := handler.PriceOption(context.Background(), PriceOptionInput{
			Paths:    classicPaths(),
			Contract: put,
		})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown option type", func(t *testing.T) {
		_, err := newTestService(nil).PriceOption(context.Background(), PriceOptionInput{
			Paths:    classicPaths(),
			Contract: domain.OptionContract{Type: "straddle", Strike: 1, Tenor: 1},
		})
		require.ErrorIs(t, err, domain.ErrUnknownOptionType)
	})

	t.Run("sparse regression fails by default", func(t *testing.T) {
		handler := newTestService(nil)
		before := testutil.ToFloat64(PricingRuns.WithLabelValues("call", outcomeInsufficientData))

		call := domain.OptionContract{Type: domain.OptionTypeCall, Strike: 1.2, Tenor: 3}
		_, err := handler.PriceOption(context.Background(), PriceOptionInput{
			Paths:    classicPaths(),
			Contract: call,
		})
		require.ErrorIs(t, err, domain.ErrInsufficientRegressionData)
		require.Equal(t, before+1, testutil.ToFloat64(PricingRuns.WithLabelValues("call", outcomeInsufficientData)))

		fallbacksBefore := testutil.ToFloat64(RegressionFallbacks.WithLabelValues("call"))
		out, err := handler.PriceOption(context.Background(), PriceOptionInput{
			Paths:           classicPaths(),
			Contract:        call,
			SparseFitPolicy: "zero",
		})
		require.NoError(t, err)
		require.Equal(t, []int{1}, out.Pricing.FallbackSteps)
		require.Equal(t, fallbacksBefore+1, testutil.ToFloat64(RegressionFallbacks.WithLabelValues("call")))
	})

	t.Run("low quantile over few paths", func(t *testing.T) {
		handler := newTestService(nil)
		okBefore := testutil.ToFloat64(PricingRuns.WithLabelValues("put", outcomeOK))

		out, err := handler.PriceOption(context.Background(), PriceOptionInput{
			Paths:       classicPaths(),
			Contract:    put,
			PFEQuantile: floatPtr(0.05),
		})
		require.NoError(t, err)
		require.Equal(t, 0.05, out.Exposure.Quantile)
		require.Equal(t, okBefore+1, testutil.ToFloat64(PricingRuns.WithLabelValues("put", outcomeOK)))

		// the profile was never ended by a caller, each stage still closes its span
		for _, s := range out.Profile.Spans {
			require.NotNil(t, s.ElapsedMs, s.Name)
		}
	})

	t.Run("bad quantile", func(t *testing.T) {
		_, err := newTestService(nil).PriceOption(context.Background(), PriceOptionInput{
			Paths:       classicPaths(),
			Contract:    put,
			PFEQuantile: floatPtr(1.5),
		})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newTestService(nil).PriceOption(ctx, PriceOptionInput{
			Paths:    classicPaths(),
			Contract: put,
		})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func Test_pricingServiceHandler_SimulateAndPrice(t *testing.T) {
	handler := newTestService(func(cfg *config.Config) {
		cfg.Pricing.SparseFitPolicy = "zero"
		cfg.Pricing.Workers = 4
	})

	input := SimulateAndPriceInput{
		Spot:       100,
		Volatility: 0.2,
		Steps:      50,
		NumPaths:   5000,
		Seed:       uint64Ptr(42),
		Contract:   domain.OptionContract{Type: domain.OptionTypePut, Strike: 100, Tenor: 1},
		Rate:       floatPtr(0.05),
	}
	out, err := handler.SimulateAndPrice(context.Background(), input)
	require.NoError(t, err)

	require.NotNil(t, out.EuropeanPrice)
	require.InDelta(t, 5.5735, out.EuropeanPrice.InexactFloat64(), 1e-3)
	require.True(t, out.EarlyExercisePremium.IsPositive(), out.EarlyExercisePremium.String())
	require.Equal(t, 51, out.Pricing.Cashflows.Cols())

	again, err := handler.SimulateAndPrice(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, out.Pricing.Price, again.Pricing.Price)
	require.NotEqual(t, out.RunID, again.RunID)

	t.Run("invalid simulation", func(t *testing.T) {
		bad := input
		bad.Spot = -1
		_, err := handler.SimulateAndPrice(context.Background(), bad)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func Test_pricingServiceHandler_Simulate(t *testing.T) {
	handler := newTestService(func(cfg *config.Config) {
		cfg.Simulation.Seed = uint64Ptr(11)
		cfg.Pricing.MaxSteps = 10
	})
	input := SimulateInput{Spot: 50, Volatility: 0.3, Tenor: 1, Steps: 10, Paths: 20}

	a, err := handler.Simulate(context.Background(), input)
	require.NoError(t, err)
	b, err := handler.Simulate(context.Background(), input)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(a, b))

	input.Seed = uint64Ptr(12)
	c, err := handler.Simulate(context.Background(), input)
	require.NoError(t, err)
	require.NotEqual(t, a[0][10], c[0][10])

	input.Steps = 11
	_, err = handler.Simulate(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func Test_outcomeFromError(t *testing.T) {
	require.Equal(t, outcomeInvalid, outcomeFromError(domain.ErrInvalidInput))
	require.Equal(t, outcomeInsufficientData, outcomeFromError(errors.Join(errors.New("step 2"), domain.ErrInsufficientRegressionData)))
	require.Equal(t, outcomeCanceled, outcomeFromError(context.Canceled))
	require.Equal(t, outcomeError, outcomeFromError(errors.New("boom")))
}
