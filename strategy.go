package oscfr

import (
	"fmt"

	"github.com/kcermak/oscfr/dist"
	"github.com/kcermak/oscfr/regret"
)

// Strategy is a read-only handle onto one player's learned average
// strategy, backed directly by that player's regret.Table. It is safe
// for concurrent use (regret.Table.Lookup is) and reflects updates made
// by a Solver that is still running, so it may be queried mid-compute
// for progress inspection as well as after Compute/ComputeParallel
// returns.
type Strategy[S, A, O any] struct {
	table *regret.Table
}

// Policy returns the average strategy at the infoset identified by
// obsStream, as a Categorical over the node-local action indices
// 0..active.NumActions()-1. Infosets never visited during solving fall
// back to uniform, per the average-strategy extraction rule.
//
// Policy panics if active is not a Decision node: querying a strategy
// only makes sense where a player actually chooses.
func (s *Strategy[S, A, O]) Policy(active ActivePlayer[A], obsStream []PlayerObservation[A, O]) *dist.Categorical[int] {
	if active.Role != Decision {
		panic(fmt.Errorf("oscfr: Strategy.Policy called on a non-decision active role (%v)", active.Role))
	}

	n := active.NumActions()
	key := InfosetKey(obsStream)

	strategySum, _, ok := s.table.Lookup(key)
	var probs []float64
	if ok {
		if len(strategySum) != n {
			panic(fmt.Errorf("oscfr: Strategy.Policy: infoset action count mismatch, got %d want %d", len(strategySum), n))
		}
		probs = regret.AverageStrategy(strategySum, n)
	} else {
		probs = regret.UniformPolicy(n)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return dist.New(probs, indices)
}
