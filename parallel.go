package oscfr

import (
	"context"
	"math/rand"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// ComputeParallel runs the same outer iteration loop as Compute, fanned
// out across a fixed pool of workers via golang.org/x/sync/errgroup.
// Each worker owns an independent, thread-local *rand.Rand seeded from
// baseSeed mixed with the worker's index. The regret tables are shared
// via regret.Table's sharded locking, which guarantees per-key
// atomicity but no cross-key ordering, and every worker derives its
// sampling policy from tables the other workers are updating, so the
// sampled trajectories depend on goroutine scheduling: two runs with
// the same arguments are not guaranteed to produce the same tables.
//
// The per-player iteration counters are advanced with atomic.AddInt64
// and are a coarse progress signal only in this mode, as the spec
// allows.
func (s *Solver[S, A, O]) ComputeParallel(ctx context.Context, iterations int, epsilon float64, workers int, baseSeed int64) error {
	if workers <= 0 {
		workers = 1
	}
	glog.Infof("oscfr: starting parallel compute: iterations=%d workers=%d epsilon=%v", iterations, workers, epsilon)

	g, ctx := errgroup.WithContext(ctx)
	perWorker := iterations / workers
	remainder := iterations % workers

	for w := 0; w < workers; w++ {
		w := w
		n := perWorker
		if w < remainder {
			n++
		}

		g.Go(func() error {
			rng := rand.New(rand.NewSource(baseSeed + int64(w)))
			pool := &floatSlicePool{}
			for i := 0; i < n; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				for p := 0; p < len(s.tables); p++ {
					s.addIter(p)
					h := s.game.Start()
					s.sampleRec(pool, rng, p, h, 1.0, 1.0, 1.0, epsilon)
				}
			}
			return nil
		})
	}

	err := g.Wait()
	glog.Infof("oscfr: parallel compute done, regret-table sizes: %v", s.tableSizes())
	return err
}

func (s *Solver[S, A, O]) tableSizes() []int {
	sizes := make([]int, len(s.tables))
	for i, t := range s.tables {
		sizes[i] = t.Size()
	}
	return sizes
}
