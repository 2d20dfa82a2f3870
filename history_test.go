package oscfr_test

import (
	"testing"

	"github.com/kcermak/oscfr"
	"github.com/kcermak/oscfr/goofspiel"
)

func TestAdvanceObservationStreamsGrowMonotonically(t *testing.T) {
	g := goofspiel.New(3, goofspiel.Absolute)
	h := g.Start()
	prevLens := streamLens(h)

	actions := []int{1, 2, 1, 1, 1, 0, 0, 0, 0}
	for _, idx := range actions {
		h = oscfr.Advance[goofspiel.State, int, int](g, h, idx)
		lens := streamLens(h)
		for k, l := range lens {
			delta := l - prevLens[k]
			if delta < 0 || delta > 2 {
				t.Fatalf("stream %d grew by %d entries in one step, want 0, 1, or 2", k, delta)
			}
		}
		prevLens = lens
	}
}

func streamLens(h oscfr.History[goofspiel.State, int, int]) []int {
	lens := make([]int, len(h.Obs))
	for i, s := range h.Obs {
		lens[i] = len(s)
	}
	return lens
}

func TestAdvancePanicsOnTerminalHistory(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for Advance on a terminal history")
		}
	}()

	g := goofspiel.New(1, goofspiel.Absolute)
	h := g.Start()
	h = oscfr.Advance[goofspiel.State, int, int](g, h, 0)
	h = oscfr.Advance[goofspiel.State, int, int](g, h, 0)
	h = oscfr.Advance[goofspiel.State, int, int](g, h, 0)
	if h.Active.Role != oscfr.Terminal {
		t.Fatalf("expected Terminal after one card each, got %v", h.Active.Role)
	}
	oscfr.Advance[goofspiel.State, int, int](g, h, 0)
}

func TestInfosetKeyDistinguishesDifferentStreams(t *testing.T) {
	streamA := []oscfr.PlayerObservation[int, int]{oscfr.OwnAction[int, int](1), oscfr.Observed[int, int](2)}
	streamB := []oscfr.PlayerObservation[int, int]{oscfr.OwnAction[int, int](1), oscfr.Observed[int, int](3)}

	keyA := oscfr.InfosetKey(streamA)
	keyB := oscfr.InfosetKey(streamB)
	if keyA == keyB {
		t.Fatal("expected distinct streams to produce distinct infoset keys")
	}

	streamA2 := []oscfr.PlayerObservation[int, int]{oscfr.OwnAction[int, int](1), oscfr.Observed[int, int](2)}
	if oscfr.InfosetKey(streamA2) != keyA {
		t.Fatal("expected equal streams to produce equal infoset keys")
	}
}
