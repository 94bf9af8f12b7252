package lsmc

import "golang.org/x/sync/errgroup"

// minChunk keeps tiny matrices on the calling goroutine
const minChunk = 512

// forEachChunk runs fn over [0, n) split into contiguous chunks. chunks never
// overlap so fn may write to per-path state without locking. it returns once
// every chunk finished, which is the barrier between two time steps
func forEachChunk(n, workers int, fn func(lo, hi int)) {
	if workers <= 1 || n < 2*minChunk {
		fn(0, n)
		return
	}
	size := (n + workers - 1) / workers
	if size < minChunk {
		size = minChunk
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += size {
		lo, hi := lo, min(lo+size, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	// chunks never fail, Wait is only the barrier
	_ = g.Wait()
}
