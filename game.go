// Package oscfr computes approximate Nash equilibrium strategies for
// two-player (and, in principle, N-player) extensive-form
// imperfect-information games via outcome-sampling Monte Carlo
// counterfactual regret minimization (OS-MCCFR).
//
// The package is organized around three collaborators: a Game the
// caller supplies (this package only consumes the interface below), a
// History that threads per-player observation streams through the
// tree as the solver walks it, and a Solver that owns one regret.Table
// per player and performs the sampling walk.
package oscfr

import (
	"fmt"

	"github.com/kcermak/oscfr/dist"
)

// Role distinguishes the three kinds of node an ActivePlayer can
// describe.
type Role uint8

const (
	// Decision means a player must choose among Actions.
	Decision Role = iota
	// Chance means nature acts, drawing from Dist.
	Chance
	// Terminal means the game is over; Utilities holds the payoffs.
	Terminal
)

func (r Role) String() string {
	switch r {
	case Decision:
		return "Decision"
	case Chance:
		return "Chance"
	case Terminal:
		return "Terminal"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// ActivePlayer is a sum type attached to every non-initial History: it
// is exactly one of Decision(player, actions), Chance(dist), or
// Terminal(utilities). Exactly one group of fields is meaningful,
// selected by Role.
type ActivePlayer[A any] struct {
	Role Role

	// Valid when Role == Decision.
	Player  int
	Actions []A

	// Valid when Role == Chance. Actions is also populated (from
	// Dist.Payload()) so that NumActions/ActionAt work uniformly.
	Dist *dist.Categorical[A]

	// Valid when Role == Terminal, one entry per player.
	Utilities []float64
}

// NewDecision builds a Decision ActivePlayer. actions must be
// non-empty.
func NewDecision[A any](player int, actions []A) ActivePlayer[A] {
	if len(actions) == 0 {
		panic(fmt.Errorf("oscfr: decision node for player %d has no actions", player))
	}
	return ActivePlayer[A]{Role: Decision, Player: player, Actions: actions}
}

// NewChance builds a Chance ActivePlayer over d.
func NewChance[A any](d *dist.Categorical[A]) ActivePlayer[A] {
	return ActivePlayer[A]{Role: Chance, Dist: d, Actions: d.Payload()}
}

// NewTerminal builds a Terminal ActivePlayer with the given per-player
// utilities.
func NewTerminal[A any](utilities []float64) ActivePlayer[A] {
	return ActivePlayer[A]{Role: Terminal, Utilities: utilities}
}

// NumActions returns len(Actions) for a Decision or Chance node, and 0
// for a Terminal node.
func (a ActivePlayer[A]) NumActions() int {
	return len(a.Actions)
}

// ActionAt resolves the action value at a node-local action index. It
// panics (a fatal contract violation, per the error taxonomy) if the
// active role is Terminal or the index is out of range.
func (a ActivePlayer[A]) ActionAt(actionIndex int) A {
	if a.Role == Terminal {
		panic(fmt.Errorf("oscfr: play in terminal history"))
	}
	if actionIndex < 0 || actionIndex >= len(a.Actions) {
		panic(fmt.Errorf("oscfr: action index %d out of range [0, %d)", actionIndex, len(a.Actions)))
	}
	return a.Actions[actionIndex]
}

// Game is the contract the solver consumes. Implementations provide
// the generative game's initial state and its per-action transition;
// the generic history bookkeeping of Advance (append to the action and
// observation streams in the order the spec requires) is done once, by
// this package, rather than by every Game.
//
// S is the (opaque, game-defined) state type, A is the action type,
// and O is the observation type. Transition is deterministic given
// (history, action): randomness at chance nodes is modeled by the
// probabilities on the Chance ActivePlayer, not drawn internally here.
type Game[S, A, O any] interface {
	// Players returns the number of players (>= 1).
	Players() int

	// Start returns the initial History, with Players()+1 empty
	// observation streams and the active role set by the game.
	Start() History[S, A, O]

	// Transition computes the new state, new active role, and
	// per-player environment observations that result from playing
	// action at h. env must have length Players()+1; a nil entry
	// means no observation is revealed to that stream this step.
	Transition(h History[S, A, O], action A) (newState S, newActive ActivePlayer[A], env []*O)
}
