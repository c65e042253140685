package bench

import (
	"fmt"
	mathrand "math/rand"
	"time"

	"golang.org/x/sync/errgroup"
)

// Run builds numjobs workers sharing dev, executes them concurrently,
// and joins them all before returning. per-worker seeds are drawn from
// a root rng seeded with seed, so a fixed seed reproduces every
// worker's offset sequence. the returned span is the wall clock of the
// whole concurrent run, first launch to last join.
//
// cursor-based operation kinds contend on the descriptor's shared file
// position, so they are rejected outright for numjobs > 1 rather than
// left to produce undefined interleavings.
func Run(cfg *Config, dev Device, numjobs int, seed int64) ([]Result, time.Duration, error) {
	if numjobs < 1 {
		return nil, 0, fmt.Errorf("numjobs must be at least 1, got %d", numjobs)
	}
	if cfg.Op.CursorBased() && numjobs > 1 {
		return nil, 0, fmt.Errorf("%s consumes the shared file cursor and supports only 1 job, got %d", cfg.Op, numjobs)
	}

	// build all workers up front so construction cost stays out of the
	// measured span
	rng := mathrand.New(mathrand.NewSource(seed))
	workers := make([]*Worker, numjobs)
	for i := range workers {
		workers[i] = NewWorker(cfg, dev, rng.Int63())
	}

	var g errgroup.Group
	start := time.Now()
	for _, w := range workers {
		w := w
		g.Go(w.Run)
	}
	err := g.Wait()
	span := time.Since(start)
	if err != nil {
		return nil, 0, err
	}

	results := make([]Result, numjobs)
	for i, w := range workers {
		results[i] = Result{IOTime: w.IOTime(), RunTime: w.RunTime()}
	}
	return results, span, nil
}
