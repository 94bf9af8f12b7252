package simulation

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"

	"lsmc/internal/domain"
)

func TestGBM_Simulate(t *testing.T) {
	g := GBM{
		Spot:       100,
		Rate:       0.03,
		Volatility: 0.2,
		Tenor:      1,
		Steps:      12,
		Paths:      20000,
		Seed:       42,
	}

	t.Run("shape and starting column", func(t *testing.T) {
		paths, err := g.Simulate(context.Background())
		require.NoError(t, err)
		require.Equal(t, 20000, paths.Rows())
		require.Equal(t, 13, paths.Cols())
		for _, row := range paths {
			require.Equal(t, 100.0, row[0])
		}
		require.NoError(t, paths.ValidatePaths())
	})

	t.Run("independent of worker count", func(t *testing.T) {
		single := g
		single.Workers = 1
		a, err := single.Simulate(context.Background())
		require.NoError(t, err)

		many := g
		many.Workers = 8
		b, err := many.Simulate(context.Background())
		require.NoError(t, err)

		require.Equal(t, a, b)
	})

	t.Run("discounted terminal mean is the spot", func(t *testing.T) {
		paths, err := g.Simulate(context.Background())
		require.NoError(t, err)

		mean, err := stats.Mean(paths.Column(12))
		require.NoError(t, err)
		// 20k paths, sd of the mean is about 0.14
		require.InDelta(t, 100.0, mean*math.Exp(-0.03), 1.0)
	})

	t.Run("zero volatility is deterministic growth", func(t *testing.T) {
		flat := g
		flat.Volatility = 0
		flat.Paths = 3
		paths, err := flat.Simulate(context.Background())
		require.NoError(t, err)
		require.InDelta(t, 100*math.Exp(0.03), paths[2][12], 1e-9)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := g.Simulate(ctx)
		require.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("invalid", func(t *testing.T) {
		bad := g
		bad.Steps = 0
		_, err := bad.Simulate(context.Background())
		require.True(t, errors.Is(err, domain.ErrInvalidInput))

		bad = g
		bad.Spot = -1
		_, err = bad.Simulate(context.Background())
		require.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
}
