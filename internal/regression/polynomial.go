package regression

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNoData       = errors.New("no data to fit")
	ErrFitFailed    = errors.New("least squares fit failed")
	ErrInvalidShape = errors.New("x and y must have the same length")
)

// Polynomial holds coefficients in ascending order: p[0] + p[1]x + p[2]x^2 ...
type Polynomial []float64

// Zero is the polynomial that evaluates to 0 everywhere
var Zero = Polynomial{0}

func (p Polynomial) Eval(x float64) float64 {
	out := 0.0
	for i := len(p) - 1; i >= 0; i-- {
		out = out*x + p[i]
	}
	return out
}

// Fit returns the least squares polynomial of the given degree through
// (x, y). the vandermonde columns are scaled to unit norm and solved with a
// rank revealing SVD, so duplicated or collinear x values give the minimum
// norm solution instead of blowing up
func Fit(x, y []float64, degree int) (Polynomial, error) {
	if degree < 0 {
		return nil, fmt.Errorf("%w: negative degree %d", ErrFitFailed, degree)
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("%w: got %d and %d", ErrInvalidShape, len(x), len(y))
	}
	if len(x) == 0 {
		return nil, ErrNoData
	}

	m, n := len(x), degree+1
	a := mat.NewDense(m, n, nil)
	for i, xi := range x {
		v := 1.0
		for j := 0; j < n; j++ {
			a.Set(i, j, v)
			v *= xi
		}
	}

	scale := make([]float64, n)
	for j := 0; j < n; j++ {
		norm := mat.Norm(a.ColView(j), 2)
		if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
			norm = 1
		}
		scale[j] = norm
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, a.At(i, j)/scale[j])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%w: svd did not converge", ErrFitFailed)
	}
	// same cutoff numpy's polyfit uses
	rcond := float64(m) * epsilon
	rank := svd.Rank(rcond)
	if rank == 0 {
		return nil, fmt.Errorf("%w: design matrix has rank 0", ErrFitFailed)
	}

	b := mat.NewVecDense(m, append([]float64(nil), y...))
	var coef mat.VecDense
	svd.SolveVecTo(&coef, b, rank)

	p := make(Polynomial, n)
	for j := range p {
		p[j] = coef.AtVec(j) / scale[j]
		if math.IsNaN(p[j]) || math.IsInf(p[j], 0) {
			return nil, fmt.Errorf("%w: non-finite coefficient %d", ErrFitFailed, j)
		}
	}
	return p, nil
}

const epsilon = 2.220446049250313e-16
