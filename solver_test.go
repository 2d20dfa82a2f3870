package oscfr_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/kcermak/oscfr"
	"github.com/kcermak/oscfr/goofspiel"
)

func TestGoofspielThreeCardConvergenceSequential(t *testing.T) {
	g := goofspiel.New(3, goofspiel.ZeroSum)
	s := oscfr.New[goofspiel.State, int, int](g)
	s.Compute(5000, 0.6, rand.New(rand.NewSource(1)))

	h0 := g.Start()
	h1 := oscfr.Advance[goofspiel.State, int, int](g, h0, 1)

	p0 := s.Strategy(0).Policy(h1.Active, h1.Obs[0])
	if got := p0.ProbabilityOf(1); got <= 0.8 {
		t.Errorf("player 0's probability on action index 1 = %v, want > 0.8", got)
	}

	h2 := oscfr.Advance[goofspiel.State, int, int](g, h1, 1)
	p1 := s.Strategy(1).Policy(h2.Active, h2.Obs[1])
	if got := p1.ProbabilityOf(1); got <= 0.8 {
		t.Errorf("player 1's probability on action index 1 = %v, want > 0.8", got)
	}
}

func TestGoofspielThreeCardConvergenceParallel(t *testing.T) {
	g := goofspiel.New(3, goofspiel.ZeroSum)
	s := oscfr.New[goofspiel.State, int, int](g)
	if err := s.ComputeParallel(context.Background(), 5000, 0.6, 4, 42); err != nil {
		t.Fatalf("ComputeParallel: %v", err)
	}

	h0 := g.Start()
	h1 := oscfr.Advance[goofspiel.State, int, int](g, h0, 1)

	p0 := s.Strategy(0).Policy(h1.Active, h1.Obs[0])
	if got := p0.ProbabilityOf(1); got <= 0.8 {
		t.Errorf("player 0's probability on action index 1 = %v, want > 0.8", got)
	}

	h2 := oscfr.Advance[goofspiel.State, int, int](g, h1, 1)
	p1 := s.Strategy(1).Policy(h2.Active, h2.Obs[1])
	if got := p1.ProbabilityOf(1); got <= 0.8 {
		t.Errorf("player 1's probability on action index 1 = %v, want > 0.8", got)
	}
}

func TestIterationsCounterAdvancesPerPlayer(t *testing.T) {
	g := goofspiel.New(3, goofspiel.Absolute)
	s := oscfr.New[goofspiel.State, int, int](g)
	s.Compute(10, 0.6, rand.New(rand.NewSource(7)))

	for p := 0; p < g.Players(); p++ {
		if got, want := s.Iterations(p), int64(10); got != want {
			t.Errorf("player %d: Iterations() = %d, want %d", p, got, want)
		}
	}
}
