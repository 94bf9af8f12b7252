package lsmc

import (
	"fmt"

	"lsmc/internal/domain"
	"lsmc/internal/regression"
)

type continuationEstimator struct {
	degree  int
	policy  SparseFitPolicy
	workers int
}

// estimate fits the discounted future value against the underlying price on
// in-the-money paths only, then evaluates the fit on every path at time t.
// it reports whether the step fell back to a zero estimate
func (e continuationEstimator) estimate(paths domain.Matrix, t int, signal []float64, itm []bool, dst []float64) (bool, error) {
	x := []float64{}
	y := []float64{}
	for p, inTheMoney := range itm {
		if inTheMoney {
			x = append(x, paths[p][t])
			y = append(y, signal[p])
		}
	}

	// nothing to learn from, this is not a sparse fit
	if len(x) == 0 {
		e.evaluate(regression.Zero, paths, t, dst)
		return false, nil
	}

	if len(x) < e.degree+1 {
		err := fmt.Errorf(
			"time step %d: %d in-the-money paths for a degree %d fit: %w",
			t, len(x), e.degree, domain.ErrInsufficientRegressionData,
		)
		return e.fallback(paths, t, dst, err)
	}

	poly, err := regression.Fit(x, y, e.degree)
	if err != nil {
		return e.fallback(paths, t, dst, fmt.Errorf("time step %d: %w: %w", t, domain.ErrInsufficientRegressionData, err))
	}

	e.evaluate(poly, paths, t, dst)
	return false, nil
}

// fallback applies the sparse fit policy to a step that could not be fitted
func (e continuationEstimator) fallback(paths domain.Matrix, t int, dst []float64, err error) (bool, error) {
	if e.policy != SparseFitZero {
		return false, err
	}
	e.evaluate(regression.Zero, paths, t, dst)
	return true, nil
}

func (e continuationEstimator) evaluate(poly regression.Polynomial, paths domain.Matrix, t int, dst []float64) {
	forEachChunk(len(dst), e.workers, func(lo, hi int) {
		for p := lo; p < hi; p++ {
			dst[p] = poly.Eval(paths[p][t])
		}
	})
}
