// Package simulation generates underlying price paths for the pricer.
package simulation

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"lsmc/internal/domain"
)

// GBM simulates geometric brownian motion under the risk neutral measure
type GBM struct {
	Spot       float64
	Rate       float64
	Volatility float64
	// Tenor in years, split into Steps equal intervals
	Tenor float64
	Steps int
	Paths int
	Seed  uint64
	// Workers defaults to GOMAXPROCS
	Workers int
}

func (g GBM) Validate() error {
	if !(g.Spot > 0) || math.IsInf(g.Spot, 0) {
		return fmt.Errorf("%w: spot must be positive", domain.ErrInvalidInput)
	}
	if !(g.Tenor > 0) || math.IsInf(g.Tenor, 0) {
		return fmt.Errorf("%w: tenor must be positive", domain.ErrInvalidInput)
	}
	if g.Volatility < 0 || math.IsNaN(g.Volatility) || math.IsInf(g.Volatility, 0) {
		return fmt.Errorf("%w: volatility must be >= 0", domain.ErrInvalidInput)
	}
	if math.IsNaN(g.Rate) || math.IsInf(g.Rate, 0) {
		return fmt.Errorf("%w: rate must be finite", domain.ErrInvalidInput)
	}
	if g.Steps < 1 {
		return fmt.Errorf("%w: need at least 1 step, got %d", domain.ErrInvalidInput, g.Steps)
	}
	if g.Paths < 1 {
		return fmt.Errorf("%w: need at least 1 path, got %d", domain.ErrInvalidInput, g.Paths)
	}
	return nil
}

// Simulate returns a Paths x (Steps+1) matrix whose first column is the spot.
// each path draws from its own stream seeded by (Seed, path index), so the
// output does not depend on how the work is scheduled
func (g GBM) Simulate(ctx context.Context) (domain.Matrix, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	dt := g.Tenor / float64(g.Steps)
	drift := (g.Rate - 0.5*g.Volatility*g.Volatility) * dt
	diffusion := g.Volatility * math.Sqrt(dt)

	workers := g.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := domain.NewMatrix(g.Paths, g.Steps+1)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	chunk := (g.Paths + workers - 1) / workers
	for lo := 0; lo < g.Paths; lo += chunk {
		lo, hi := lo, min(lo+chunk, g.Paths)
		eg.Go(func() error {
			for p := lo; p < hi; p++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				rng := rand.New(rand.NewPCG(g.Seed, uint64(p)))
				row := out[p]
				row[0] = g.Spot
				for t := 1; t <= g.Steps; t++ {
					row[t] = row[t-1] * math.Exp(drift+diffusion*rng.NormFloat64())
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to simulate paths: %w", err)
	}

	return out, nil
}
