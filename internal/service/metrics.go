package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK               = "ok"
	outcomeInvalid          = "invalid"
	outcomeInsufficientData = "insufficient_data"
	outcomeCanceled         = "canceled"
	outcomeError            = "error"
)

// PricingDuration is the wall time of the backward sweep in milliseconds
var PricingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "lsmc",
		Subsystem: "pricing",
		Name:      "duration_ms",
		Help:      "Time spent in the backward induction sweep in milliseconds",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	},
	[]string{"option_type"},
)

var PricingRuns = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "lsmc",
		Subsystem: "pricing",
		Name:      "runs_total",
		Help:      "Total number of pricing runs by outcome",
	},
	[]string{"option_type", "outcome"},
)

// RegressionFallbacks counts time steps priced with a zero continuation
// because too few paths were in the money
var RegressionFallbacks = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "lsmc",
		Subsystem: "pricing",
		Name:      "regression_fallbacks_total",
		Help:      "Total number of time steps where the regression fell back to zero",
	},
	[]string{"option_type"},
)

var SimulatedPaths = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "lsmc",
		Subsystem: "simulation",
		Name:      "paths_total",
		Help:      "Total number of simulated price paths",
	},
)
