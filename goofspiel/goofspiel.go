// Package goofspiel implements the Goofspiel card-bidding game used
// throughout the solver's test suite as a worked example: not a module
// the solver depends on, but the fixed reference game its test vectors
// are defined against.
//
// Three players act in strict rotation: chance (index 2) reveals a
// public prize card, then player 0 and player 1 each secretly bid a
// card from their own hand. Whoever bids higher wins the prize card's
// point value; ties award nobody. After Cards rounds every hand is
// exhausted and the game is Terminal.
package goofspiel

import (
	"fmt"
	"sort"

	"github.com/kcermak/oscfr"
	"github.com/kcermak/oscfr/dist"
)

// Scoring selects how the per-round point totals are turned into final
// utilities.
type Scoring int

const (
	// Absolute reports each player's raw accumulated point total.
	Absolute Scoring = iota
	// WinLoss reports only the sign of the point differential.
	WinLoss
	// ZeroSum reports the point differential and its negation.
	ZeroSum
)

// Goofspiel is an oscfr.Game[State, int, int]: both actions and
// observations are plain ints (card values and round-outcome/reveal
// signals, respectively).
type Goofspiel struct {
	Cards   int
	Scoring Scoring
	// Values holds the point value of card i+1; defaults to i+1 (so
	// card 1 is worth 1 point, card Cards is worth Cards points) when
	// built with New.
	Values []float64
}

// New builds a standard Goofspiel where card i is worth i points.
func New(cards int, scoring Scoring) *Goofspiel {
	if cards <= 0 {
		panic(fmt.Errorf("goofspiel: cards must be positive, got %d", cards))
	}
	values := make([]float64, cards)
	for i := range values {
		values[i] = float64(i + 1)
	}
	return &Goofspiel{Cards: cards, Scoring: scoring, Values: values}
}

// State is the opaque game state threaded through History: the cards
// each of the three roles (player 0, player 1, chance's undealt pool)
// still holds, the running scores, and the bookkeeping needed to
// resolve a round when player 1 bids.
type State struct {
	hands      [3][]int
	scores     [2]float64
	step       int
	lastReveal int
	lastP0Bid  int
}

func fullHand(cards int) []int {
	h := make([]int, cards)
	for i := range h {
		h[i] = i + 1
	}
	return h
}

func (s State) clone() State {
	ns := s
	for i := range ns.hands {
		ns.hands[i] = append([]int(nil), s.hands[i]...)
	}
	return ns
}

func removeCard(hand []int, value int) []int {
	for i, c := range hand {
		if c == value {
			out := append([]int(nil), hand[:i]...)
			return append(out, hand[i+1:]...)
		}
	}
	panic(fmt.Errorf("goofspiel: card %d not found in hand %v", value, hand))
}

func signInt(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func signFloat(x float64) float64 {
	return float64(signInt(x))
}

// Players always returns 2: chance is a third role internally but is
// not a strategic player.
func (g *Goofspiel) Players() int { return 2 }

// Start deals every role a full hand and sets chance to reveal the
// first prize card, uniformly at random over the undealt pool.
func (g *Goofspiel) Start() oscfr.History[State, int, int] {
	hand := fullHand(g.Cards)
	state := State{hands: [3][]int{
		append([]int(nil), hand...),
		append([]int(nil), hand...),
		append([]int(nil), hand...),
	}}
	active := oscfr.NewChance(dist.Uniform(append([]int(nil), state.hands[2]...)))
	return oscfr.NewHistory[State, int, int](2, state, active)
}

// Transition plays one card: chance reveals, player 0 or player 1
// bids, or (every third action) a round resolves and the winner's
// score is credited. Rounds repeat for Cards turns each, after which
// the game is Terminal.
func (g *Goofspiel) Transition(h oscfr.History[State, int, int], action int) (State, oscfr.ActivePlayer[int], []*int) {
	prevPlayer := (h.State.step + 2) % 3
	nextPlayer := h.State.step % 3

	ns := h.State.clone()
	ns.hands[prevPlayer] = removeCard(ns.hands[prevPlayer], action)
	ns.step = h.State.step + 1

	env := make([]*int, 3)
	switch prevPlayer {
	case 2: // chance just revealed the prize card
		ns.lastReveal = action
		v := action
		env[0], env[1], env[2] = &v, &v, &v

	case 0: // player 0 bid secretly; no observation is revealed
		ns.lastP0Bid = action

	case 1: // player 1 bid; the round resolves
		bet := g.Values[ns.lastReveal-1]
		winner := signInt(float64(ns.lastP0Bid - action))
		switch winner {
		case 1:
			ns.scores[0] += bet
		case -1:
			ns.scores[1] += bet
		}
		v := winner
		env[0], env[1], env[2] = &v, &v, &v
	}

	if ns.step == g.Cards*3 {
		d := ns.scores[0] - ns.scores[1]
		var utilities []float64
		switch g.Scoring {
		case Absolute:
			utilities = []float64{ns.scores[0], ns.scores[1]}
		case ZeroSum:
			utilities = []float64{d, -d}
		case WinLoss:
			utilities = []float64{signFloat(d), -signFloat(d)}
		default:
			panic(fmt.Errorf("goofspiel: unknown scoring %v", g.Scoring))
		}
		return ns, oscfr.NewTerminal[int](utilities), env
	}

	if nextPlayer == 2 {
		return ns, oscfr.NewChance(dist.Uniform(append([]int(nil), ns.hands[2]...))), env
	}
	hand := sortedCopy(ns.hands[nextPlayer])
	return ns, oscfr.NewDecision(nextPlayer, hand), env
}

func sortedCopy(hand []int) []int {
	out := append([]int(nil), hand...)
	sort.Ints(out)
	return out
}

// ActionIndex finds the node-local action index that plays card
// value among active's available actions, for callers that think in
// terms of card values rather than positional indices (as the test
// vectors do). It panics if value is not currently available.
func ActionIndex(active oscfr.ActivePlayer[int], value int) int {
	for i, v := range active.Actions {
		if v == value {
			return i
		}
	}
	panic(fmt.Errorf("goofspiel: card %d is not available among %v", value, active.Actions))
}
