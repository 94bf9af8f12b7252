package lsmc

import (
	"errors"
	"testing"

	"github.com/montanaflynn/stats"
	"github.com/stretchr/testify/require"

	"lsmc/internal/domain"
)

func TestContinuationEstimator_estimate(t *testing.T) {
	paths := domain.Matrix{
		{1, 0.90},
		{1, 1.30},
		{1, 0.80},
		{1, 0.95},
		{1, 1.40},
	}
	signal := []float64{0.12, 0.50, 0.25, 0.05, 0.70}

	t.Run("degree 0 is the mean over in the money paths", func(t *testing.T) {
		itm := []bool{true, false, true, true, false}
		dst := make([]float64, len(itm))

		e := continuationEstimator{degree: 0, policy: SparseFitFail}
		fellBack, err := e.estimate(paths, 1, signal, itm, dst)
		require.NoError(t, err)
		require.False(t, fellBack)

		mean, err := stats.Mean([]float64{0.12, 0.25, 0.05})
		require.NoError(t, err)
		for p := range dst {
			require.InDelta(t, mean, dst[p], 1e-12)
		}
	})

	t.Run("no path in the money", func(t *testing.T) {
		itm := make([]bool, 5)
		dst := []float64{9, 9, 9, 9, 9}

		e := continuationEstimator{degree: 2, policy: SparseFitFail}
		fellBack, err := e.estimate(paths, 1, signal, itm, dst)
		require.NoError(t, err)
		require.False(t, fellBack)
		require.Equal(t, make([]float64, 5), dst)
	})

	t.Run("too few in the money paths", func(t *testing.T) {
		itm := []bool{true, false, true, false, false}
		dst := []float64{9, 9, 9, 9, 9}

		failing := continuationEstimator{degree: 2, policy: SparseFitFail}
		_, err := failing.estimate(paths, 1, signal, itm, dst)
		require.True(t, errors.Is(err, domain.ErrInsufficientRegressionData))

		zero := continuationEstimator{degree: 2, policy: SparseFitZero}
		fellBack, err := zero.estimate(paths, 1, signal, itm, dst)
		require.NoError(t, err)
		require.True(t, fellBack)
		require.Equal(t, make([]float64, 5), dst)
	})

	t.Run("evaluated on out of the money paths too", func(t *testing.T) {
		itm := []bool{true, false, true, true, false}
		dst := make([]float64, len(itm))

		e := continuationEstimator{degree: 1, policy: SparseFitFail}
		_, err := e.estimate(paths, 1, signal, itm, dst)
		require.NoError(t, err)
		require.NotZero(t, dst[1])
		require.NotZero(t, dst[4])
	})
}
