package domain

// PricingResult is everything one LSMC pricing call produces. the matrices
// have the same shape as the input path matrix and belong to the caller
type PricingResult struct {
	Price float64
	// Dt is the year fraction between two adjacent columns used for discounting
	Dt float64

	Cashflows        Matrix
	PositiveExposure Matrix
	NegativeExposure Matrix

	// ExerciseStep is the column each path exercises at, or -1 if it expires
	// worthless
	ExerciseStep []int
	// FallbackSteps lists the time steps where the regression was skipped
	// because too few paths were in the money
	FallbackSteps []int
}

const NotExercised = -1

func (r PricingResult) NumExercised() int {
	n := 0
	for _, s := range r.ExerciseStep {
		if s != NotExercised {
			n++
		}
	}
	return n
}
