package oscfr

import (
	"math/rand"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/kcermak/oscfr/dist"
	"github.com/kcermak/oscfr/regret"
)

// Solver holds the game reference, the per-player iteration counters,
// and one regret.Table per player. It implements outcome-sampling
// MCCFR: each iteration walks a single sampled trajectory and applies
// importance-weighted regret and average-strategy updates along it.
type Solver[S, A, O any] struct {
	game   Game[S, A, O]
	tables []*regret.Table
	iters  []int64
}

// New allocates a Solver with an empty regret table per player.
func New[S, A, O any](game Game[S, A, O]) *Solver[S, A, O] {
	n := game.Players()
	s := &Solver[S, A, O]{
		game:   game,
		tables: make([]*regret.Table, n),
		iters:  make([]int64, n),
	}
	for p := range s.tables {
		s.tables[p] = regret.NewTable()
	}
	return s
}

// Iterations returns the number of outer iterations started for player
// p. The counter is advanced before each sampled walk, so once Compute
// or ComputeParallel has returned it equals the number completed.
func (s *Solver[S, A, O]) Iterations(p int) int64 {
	return atomic.LoadInt64(&s.iters[p])
}

// addIter atomically advances player p's iteration counter, safe for
// concurrent callers such as ComputeParallel.
func (s *Solver[S, A, O]) addIter(p int) {
	atomic.AddInt64(&s.iters[p], 1)
}

// Compute runs the sequential driver for the given number of outer
// iterations: for each iteration, for each player in turn, it
// increments that player's counter and samples one trajectory updating
// that player. Deterministic given rng's seed.
func (s *Solver[S, A, O]) Compute(iterations int, epsilon float64, rng *rand.Rand) {
	pool := &floatSlicePool{}
	for i := 0; i < iterations; i++ {
		for p := 0; p < len(s.tables); p++ {
			s.iters[p]++
			h := s.game.Start()
			s.sampleRec(pool, rng, p, h, 1.0, 1.0, 1.0, epsilon)
		}
	}
}

// Strategy returns a handle for querying player p's average strategy.
func (s *Solver[S, A, O]) Strategy(player int) *Strategy[S, A, O] {
	return &Strategy[S, A, O]{table: s.tables[player]}
}

// sampleRec is the outcome-sampling walk of §4.7. It returns
// (payoff, p_tail, p_sample_leaf): the utility to updatedPlayer at the
// reached leaf, the probability of the path from this node onward
// under the current strategy profile, and the probability of the
// entire sampled trajectory under the sampling distribution.
func (s *Solver[S, A, O]) sampleRec(
	pool *floatSlicePool,
	rng *rand.Rand,
	updatedPlayer int,
	h History[S, A, O],
	pReachUpdated, pReachOthers, pSample, epsilon float64,
) (payoff, pTail, pSampleLeaf float64) {
	switch h.Active.Role {
	case Terminal:
		return h.Active.Utilities[updatedPlayer], 1.0, pSample

	case Chance:
		a := h.Active.Dist.SampleIndex(rng)
		nh := Advance(s.game, h, a)
		return s.sampleRec(pool, rng, updatedPlayer, nh, pReachUpdated, pReachOthers, pSample, epsilon)

	default: // Decision
		return s.sampleDecision(pool, rng, updatedPlayer, h, pReachUpdated, pReachOthers, pSample, epsilon)
	}
}

func (s *Solver[S, A, O]) sampleDecision(
	pool *floatSlicePool,
	rng *rand.Rand,
	updatedPlayer int,
	h History[S, A, O],
	pReachUpdated, pReachOthers, pSample, epsilon float64,
) (payoff, pTail, pSampleLeaf float64) {
	player := h.Active.Player
	n := h.Active.NumActions()
	obsStream := h.Obs[player]
	key := InfosetKey(obsStream)

	_, regretSum, ok := s.tables[player].Lookup(key)
	var policy []float64
	if ok {
		if len(regretSum) != n {
			panic(errorMismatch(player, key, len(regretSum), n))
		}
		policy = regret.RegretMatching(regretSum)
	} else {
		policy = regret.UniformPolicy(n)
	}

	epsPrime := 0.0
	if player == updatedPlayer {
		epsPrime = epsilon
	}

	var a int
	if rng.Float64() < epsPrime {
		a = rng.Intn(n)
	} else {
		a = dist.SampleIndexCDF(policy, rng)
	}

	pSigma := policy[a]
	pEps := epsPrime/float64(n) + (1-epsPrime)*pSigma

	nh := Advance(s.game, h, a)

	if player == updatedPlayer {
		w, childPTail, childPLeaf := s.sampleRec(pool, rng, updatedPlayer, nh,
			pReachUpdated*pSigma, pReachOthers, pSample*pEps, epsilon)

		deltaRegret := pool.alloc(n)
		u := w * pReachOthers / childPLeaf
		for i := range deltaRegret {
			if i == a {
				deltaRegret[i] = u * (childPTail - childPTail*pSigma)
			} else {
				deltaRegret[i] = -u * childPTail * pSigma
			}
		}
		s.tables[player].Update(key, deltaRegret, nil)
		pool.free(deltaRegret)

		return w, childPTail * pSigma, childPLeaf
	}

	w, childPTail, childPLeaf := s.sampleRec(pool, rng, updatedPlayer, nh,
		pReachUpdated, pReachOthers*pSigma, pSample*pEps, epsilon)

	deltaStrategy := pool.alloc(n)
	scale := pReachUpdated / childPLeaf
	for i := range deltaStrategy {
		deltaStrategy[i] = policy[i] * scale
	}
	s.tables[player].Update(key, nil, deltaStrategy)
	pool.free(deltaStrategy)

	return w, childPTail * pSigma, childPLeaf
}

func errorMismatch(player int, key regret.Key, got, want int) error {
	glog.Errorf("infoset action-count mismatch: player=%d key=%q got=%d want=%d", player, key, got, want)
	return actionCountMismatchError{player: player, got: got, want: want}
}

type actionCountMismatchError struct {
	player   int
	got, want int
}

func (e actionCountMismatchError) Error() string {
	return "oscfr: infoset for player visited with two different action counts (regret-table invariant violated)"
}
