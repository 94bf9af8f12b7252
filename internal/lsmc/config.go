package lsmc

import (
	"fmt"
	"math"

	"lsmc/internal/domain"
)

const DefaultDegree = 2

// DtConvention decides how the year fraction between two columns is derived
// from the tenor. drafts of this algorithm disagreed on it, so the caller
// picks explicitly
type DtConvention string

const (
	// DtIntervals treats the n columns as n-1 intervals: dt = T/(n-1)
	DtIntervals DtConvention = "intervals"
	// DtColumns counts time 0 as a step: dt = T/n
	DtColumns DtConvention = "columns"
	// DtUnit ignores the tenor and uses dt = 1 per column
	DtUnit DtConvention = "unit"
)

// SparseFitPolicy decides what happens when a step has fewer in-the-money
// paths than regression coefficients. the same policy applies to every step
// of a call
type SparseFitPolicy string

const (
	SparseFitFail SparseFitPolicy = "fail"
	// SparseFitZero uses a continuation value of 0 for the step, which makes
	// every in-the-money path exercise
	SparseFitZero SparseFitPolicy = "zero"
)

type PriceInput struct {
	Paths  domain.Matrix
	Tenor  float64
	Rate   float64
	Strike float64
	Type   domain.OptionType
	// Degree of the regression polynomial, DefaultDegree is 2
	Degree int

	// empty values mean DtIntervals and SparseFitFail
	DtConvention    DtConvention
	SparseFitPolicy SparseFitPolicy

	// Workers > 1 splits the per-path work of each step into chunks
	Workers int
}

func (in PriceInput) dtConvention() DtConvention {
	if in.DtConvention == "" {
		return DtIntervals
	}
	return in.DtConvention
}

func (in PriceInput) sparseFitPolicy() SparseFitPolicy {
	if in.SparseFitPolicy == "" {
		return SparseFitFail
	}
	return in.SparseFitPolicy
}

func (in PriceInput) Validate() error {
	if err := in.Type.Validate(); err != nil {
		return err
	}
	if err := in.Paths.ValidatePaths(); err != nil {
		return err
	}
	if !(in.Tenor > 0) || math.IsInf(in.Tenor, 0) {
		return fmt.Errorf("%w: tenor must be positive, got %v", domain.ErrInvalidInput, in.Tenor)
	}
	if math.IsNaN(in.Rate) || math.IsInf(in.Rate, 0) {
		return fmt.Errorf("%w: rate must be finite", domain.ErrInvalidInput)
	}
	if math.IsNaN(in.Strike) || math.IsInf(in.Strike, 0) {
		return fmt.Errorf("%w: strike must be finite", domain.ErrInvalidInput)
	}
	if in.Degree < 0 {
		return fmt.Errorf("%w: regression degree must be >= 0, got %d", domain.ErrInvalidInput, in.Degree)
	}
	switch in.dtConvention() {
	case DtIntervals, DtColumns, DtUnit:
	default:
		return fmt.Errorf("%w: unknown dt convention %q", domain.ErrInvalidInput, in.DtConvention)
	}
	switch in.sparseFitPolicy() {
	case SparseFitFail, SparseFitZero:
	default:
		return fmt.Errorf("%w: unknown sparse fit policy %q", domain.ErrInvalidInput, in.SparseFitPolicy)
	}
	return nil
}

// Dt returns the year fraction between adjacent columns for a matrix with
// numSteps columns
func (c DtConvention) Dt(tenor float64, numSteps int) float64 {
	switch c {
	case DtColumns:
		return tenor / float64(numSteps)
	case DtUnit:
		return 1
	}
	return tenor / float64(numSteps-1)
}
