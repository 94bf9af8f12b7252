package lsmc

import "lsmc/internal/domain"

// pathStateTracker owns every mutable matrix of one pricing call. rows are
// per path, so disjoint path ranges can be updated concurrently
type pathStateTracker struct {
	numSteps int
	// one step discount factor exp(-r*dt)
	df float64

	cashflows domain.Matrix
	positive  domain.Matrix
	negative  domain.Matrix

	// state is either the cashflow the path exercised into or its future
	// cashflow carried back step by step
	state        []float64
	exerciseStep []int
}

func newPathStateTracker(numPaths, numSteps int, df float64) *pathStateTracker {
	exerciseStep := make([]int, numPaths)
	for i := range exerciseStep {
		exerciseStep[i] = domain.NotExercised
	}
	return &pathStateTracker{
		numSteps:     numSteps,
		df:           df,
		cashflows:    domain.NewMatrix(numPaths, numSteps),
		positive:     domain.NewMatrix(numPaths, numSteps),
		negative:     domain.NewMatrix(numPaths, numSteps),
		state:        make([]float64, numPaths),
		exerciseStep: exerciseStep,
	}
}

// discountedSignal is the regression target: the carried state discounted
// one more step
func (s *pathStateTracker) discountedSignal(dst []float64, lo, hi int) {
	for p := lo; p < hi; p++ {
		dst[p] = s.state[p] * s.df
	}
}

// apply records exposure, takes the exercise decision and updates the
// carried state at time t for paths [lo, hi)
func (s *pathStateTracker) apply(t int, exercise, continuation []float64, itm []bool, lo, hi int) {
	for p := lo; p < hi; p++ {
		exposure := max(exercise[p], continuation[p])
		s.positive[p][t] = max(exposure, 0)
		s.negative[p][t] = min(exposure, 0)

		if itm[p] && exercise[p] > continuation[p] {
			s.cashflows[p][t] = exercise[p]
			s.clearAfter(p, t)
			s.exerciseStep[p] = t
		} else {
			s.cashflows[p][t] = 0
		}

		if s.cashflows[p][t] != 0 {
			s.state[p] = s.cashflows[p][t]
		} else {
			s.state[p] *= s.df
		}
	}
}

// clearAfter zeroes everything the path recorded after t. anything past a
// previous exercise point was already zeroed when that exercise happened
func (s *pathStateTracker) clearAfter(p, t int) {
	last := s.numSteps - 1
	if prev := s.exerciseStep[p]; prev != domain.NotExercised {
		last = prev
	}
	for k := t + 1; k <= last; k++ {
		s.cashflows[p][k] = 0
		s.positive[p][k] = 0
		s.negative[p][k] = 0
	}
}
