package repository

import (
	"fmt"
	"io"
	"os"

	"lsmc/internal/domain"

	"github.com/gocarina/gocsv"
)

// ResultRow is one (path, step) cell of a pricing result
type ResultRow struct {
	Path             int     `csv:"path"`
	Step             int     `csv:"step"`
	Cashflow         float64 `csv:"cashflow"`
	PositiveExposure float64 `csv:"positive_exposure"`
	NegativeExposure float64 `csv:"negative_exposure"`
	Exercised        bool    `csv:"exercised"`
}

// ResultRepository exports the cashflow and exposure matrices of a pricing
// run so they can be inspected outside the service
type ResultRepository interface {
	Write(w io.Writer, result domain.PricingResult) error
	Save(filename string, result domain.PricingResult) error
}

type resultRepositoryHandler struct{}

func NewResultRepository() ResultRepository {
	return resultRepositoryHandler{}
}

func (h resultRepositoryHandler) Write(w io.Writer, result domain.PricingResult) error {
	if !result.Cashflows.SameShape(result.PositiveExposure) || !result.Cashflows.SameShape(result.NegativeExposure) {
		return fmt.Errorf("%w: result matrices have different shapes", domain.ErrInvalidInput)
	}
	if len(result.ExerciseStep) != result.Cashflows.Rows() {
		return fmt.Errorf("%w: %d exercise steps for %d paths", domain.ErrInvalidInput, len(result.ExerciseStep), result.Cashflows.Rows())
	}

	rows := make([]ResultRow, 0, result.Cashflows.Rows()*result.Cashflows.Cols())
	for p, row := range result.Cashflows {
		for t, cf := range row {
			rows = append(rows, ResultRow{
				Path:             p,
				Step:             t,
				Cashflow:         cf,
				PositiveExposure: result.PositiveExposure[p][t],
				NegativeExposure: result.NegativeExposure[p][t],
				Exercised:        result.ExerciseStep[p] == t,
			})
		}
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("failed to write result csv: %w", err)
	}
	return nil
}

func (h resultRepositoryHandler) Save(filename string, result domain.PricingResult) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer f.Close()

	if err := h.Write(f, result); err != nil {
		return err
	}
	return f.Close()
}
