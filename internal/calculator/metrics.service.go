package calculator

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"lsmc/internal/domain"
)

const DefaultPFEQuantile = 0.95

// ExposureMetrics summarises the exposure distribution across paths at a
// single time step
type ExposureMetrics struct {
	Step int     `json:"step"`
	Time float64 `json:"time"`
	// expected exposure, mean of pos+neg
	EE  float64 `json:"ee"`
	EPE float64 `json:"epe"`
	ENE float64 `json:"ene"`
	// potential future exposure, quantile of the positive exposure
	PFE float64 `json:"pfe"`
}

type ExposureProfile struct {
	Quantile    float64           `json:"quantile"`
	Steps       []ExposureMetrics `json:"steps"`
	PeakPFE     float64           `json:"peakPfe"`
	PeakPFEStep int               `json:"peakPfeStep"`
	// average EPE over steps 1..n, column 0 is never populated by the sweep
	AverageEPE float64 `json:"averageEpe"`
}

// CalculateExposureProfile reduces the per path exposure matrices of a
// pricing run to one row of metrics per time step
func CalculateExposureProfile(positive, negative domain.Matrix, dt, quantile float64) (*ExposureProfile, error) {
	if !positive.SameShape(negative) {
		return nil, fmt.Errorf("%w: exposure matrices have different shapes", domain.ErrInvalidInput)
	}
	if positive.Rows() == 0 || positive.Cols() == 0 {
		return nil, fmt.Errorf("%w: empty exposure matrix", domain.ErrInvalidInput)
	}
	if !(quantile > 0 && quantile <= 1) {
		return nil, fmt.Errorf("%w: pfe quantile must be in (0, 1], got %v", domain.ErrInvalidInput, quantile)
	}

	profile := &ExposureProfile{
		Quantile: quantile,
		Steps:    make([]ExposureMetrics, 0, positive.Cols()),
	}

	total := make([]float64, positive.Rows())
	for step := 0; step < positive.Cols(); step++ {
		pos := positive.Column(step)
		neg := negative.Column(step)
		for i := range total {
			total[i] = pos[i] + neg[i]
		}

		ee, err := stats.Mean(total)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate EE at step %d: %w", step, err)
		}
		epe, err := stats.Mean(pos)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate EPE at step %d: %w", step, err)
		}
		ene, err := stats.Mean(neg)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate ENE at step %d: %w", step, err)
		}
		pfe, err := stats.PercentileNearestRank(pos, quantile*100)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate PFE at step %d: %w", step, err)
		}

		profile.Steps = append(profile.Steps, ExposureMetrics{
			Step: step,
			Time: float64(step) * dt,
			EE:   ee,
			EPE:  epe,
			ENE:  ene,
			PFE:  pfe,
		})
		if pfe > profile.PeakPFE {
			profile.PeakPFE = pfe
			profile.PeakPFEStep = step
		}
	}

	if len(profile.Steps) > 1 {
		epes := []float64{}
		for _, m := range profile.Steps[1:] {
			epes = append(epes, m.EPE)
		}
		avg, err := stats.Mean(epes)
		if err != nil {
			return nil, fmt.Errorf("failed to average EPE: %w", err)
		}
		profile.AverageEPE = avg
	}

	return profile, nil
}
