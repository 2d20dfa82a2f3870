package oscfr

import (
	"bytes"
	"encoding/gob"

	"github.com/pkg/errors"

	"github.com/kcermak/oscfr/regret"
)

// ObservationKind distinguishes the two kinds of entry in a player's
// observation stream.
type ObservationKind uint8

const (
	// OwnActionKind records what this player just played.
	OwnActionKind ObservationKind = iota
	// EnvObservationKind records an environment-revealed signal.
	EnvObservationKind
)

// PlayerObservation is one element of a player's observation stream:
// either OwnAction(a) or Observation(o).
type PlayerObservation[A, O any] struct {
	Kind   ObservationKind
	Action A
	Obs    O
}

// OwnAction builds a PlayerObservation recording the player's own
// action.
func OwnAction[A, O any](a A) PlayerObservation[A, O] {
	return PlayerObservation[A, O]{Kind: OwnActionKind, Action: a}
}

// Observed builds a PlayerObservation recording an environment signal.
func Observed[A, O any](o O) PlayerObservation[A, O] {
	return PlayerObservation[A, O]{Kind: EnvObservationKind, Obs: o}
}

// History is an ordered, append-only record of an extensive-form game
// trajectory: the action indices and action values taken, the current
// opaque game state, the current active role, and one observation
// stream per player plus one public stream at index Players().
//
// History values are immutable: Advance returns a fresh History, and
// the one it was built from remains valid and usable (required so
// that tree enumeration can branch from a single prefix).
type History[S, A, O any] struct {
	ActionIndices []int
	Actions       []A
	State         S
	Active        ActivePlayer[A]

	// Obs has length Players()+1: one stream per player, plus a
	// trailing "public" stream.
	Obs [][]PlayerObservation[A, O]
}

// NewHistory returns the zero-length-stream initial History for a game
// with players players, to be returned from a Game's Start method.
func NewHistory[S, A, O any](players int, state S, active ActivePlayer[A]) History[S, A, O] {
	return History[S, A, O]{
		State:  state,
		Active: active,
		Obs:    make([][]PlayerObservation[A, O], players+1),
	}
}

// Advance implements the history advancement protocol: it resolves the
// action value at actionIndex, asks the game to transition, and builds
// the new History with the action and observation streams extended in
// the required order (a decision node's own player records its
// OwnAction before any subsequent environment Observation in the same
// step). It panics on the documented contract violations: playing in a
// Terminal history, or an out-of-range actionIndex.
func Advance[S, A, O any](g Game[S, A, O], h History[S, A, O], actionIndex int) History[S, A, O] {
	if h.Active.Role == Terminal {
		panic(errors.New("oscfr: Advance called on a terminal history"))
	}

	action := h.Active.ActionAt(actionIndex)
	newState, newActive, env := g.Transition(h, action)
	if len(env) != len(h.Obs) {
		panic(errors.Errorf("oscfr: Transition returned %d observations, want %d", len(env), len(h.Obs)))
	}

	decisionPlayer := -1
	if h.Active.Role == Decision {
		decisionPlayer = h.Active.Player
	}

	newObs := make([][]PlayerObservation[A, O], len(h.Obs))
	for k, stream := range h.Obs {
		next := stream
		if k == decisionPlayer {
			next = append(append([]PlayerObservation[A, O](nil), next...), OwnAction[A, O](action))
		} else {
			next = append([]PlayerObservation[A, O](nil), next...)
		}
		if env[k] != nil {
			next = append(next, Observed[A, O](*env[k]))
		}
		newObs[k] = next
	}

	return History[S, A, O]{
		ActionIndices: append(append([]int(nil), h.ActionIndices...), actionIndex),
		Actions:       append(append([]A(nil), h.Actions...), action),
		State:         newState,
		Active:        newActive,
		Obs:           newObs,
	}
}

// InfosetKey canonically encodes a player's observation stream into
// the opaque, comparable key the regret table is keyed by. Two
// histories share an infoset for a player iff their streams for that
// player are element-wise equal, which gob's canonical struct encoding
// preserves. Action and Observation types must be gob-encodable
// (exported fields; gob.Register any interface-typed payloads they
// use) for this to hold.
func InfosetKey[A, O any](stream []PlayerObservation[A, O]) regret.Key {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(stream); err != nil {
		panic(errors.Wrap(err, "oscfr: encoding infoset key"))
	}
	return regret.Key(buf.String())
}
