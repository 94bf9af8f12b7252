// Package lsmc prices american options from simulated price paths with the
// Longstaff-Schwartz least squares regression, and records the per path
// cashflows and exposures the exercise policy implies.
package lsmc

import (
	"fmt"
	"math"

	"lsmc/internal/domain"
)

// Price runs the backward sweep from the last column down to column 1 and
// discounts the resulting cashflows to time 0. the input matrix is never
// modified
func Price(in PriceInput) (*domain.PricingResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	numPaths, numSteps := in.Paths.Rows(), in.Paths.Cols()
	dt := in.dtConvention().Dt(in.Tenor, numSteps)
	tracker := newPathStateTracker(numPaths, numSteps, math.Exp(-in.Rate*dt))
	estimator := continuationEstimator{
		degree:  in.Degree,
		policy:  in.sparseFitPolicy(),
		workers: in.Workers,
	}

	exercise := make([]float64, numPaths)
	continuation := make([]float64, numPaths)
	signal := make([]float64, numPaths)
	itm := make([]bool, numPaths)
	fallbackSteps := []int{}

	for t := numSteps - 1; t > 0; t-- {
		forEachChunk(numPaths, in.Workers, func(lo, hi int) {
			exerciseValues(in.Paths, t, in.Type, in.Strike, exercise, itm, lo, hi)
			tracker.discountedSignal(signal, lo, hi)
		})

		if t == numSteps-1 {
			// nothing to continue into at maturity
			clear(continuation)
		} else {
			fellBack, err := estimator.estimate(in.Paths, t, signal, itm, continuation)
			if err != nil {
				return nil, err
			}
			if fellBack {
				fallbackSteps = append(fallbackSteps, t)
			}
		}

		forEachChunk(numPaths, in.Workers, func(lo, hi int) {
			tracker.apply(t, exercise, continuation, itm, lo, hi)
		})
	}

	price, err := discountedPrice(tracker.cashflows, dt, in.Rate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate price: %w", err)
	}

	return &domain.PricingResult{
		Price:            price,
		Dt:               dt,
		Cashflows:        tracker.cashflows,
		PositiveExposure: tracker.positive,
		NegativeExposure: tracker.negative,
		ExerciseStep:     tracker.exerciseStep,
		FallbackSteps:    fallbackSteps,
	}, nil
}
