package lsmc

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"lsmc/internal/domain"
)

// discountedPrice discounts column i by exp(-i*dt*r) and averages the total
// over all paths
func discountedPrice(cashflows domain.Matrix, dt, rate float64) (float64, error) {
	numPaths := cashflows.Rows()
	if numPaths == 0 {
		return 0, fmt.Errorf("%w: empty cashflow matrix", domain.ErrInvalidInput)
	}

	total := 0.0
	column := make([]float64, numPaths)
	for i := 0; i < cashflows.Cols(); i++ {
		for p, row := range cashflows {
			column[p] = row[i]
		}
		sum, err := stats.Sum(column)
		if err != nil {
			return 0, fmt.Errorf("failed to sum cashflows at step %d: %w", i, err)
		}
		total += sum * math.Exp(-float64(i)*dt*rate)
	}

	return total / float64(numPaths), nil
}
