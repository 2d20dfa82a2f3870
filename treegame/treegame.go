// Package treegame amortizes a generative oscfr.Game's per-step cost by
// walking it once, eagerly, and caching the resulting tree as plain
// garbage-collected *Node pointers. Go has no need for the
// arena/index scheme a non-GC host would require here: a *Node is
// already a stable, shareable reference, and the garbage collector
// retires unreachable subtrees for free.
package treegame

import (
	"github.com/golang/glog"

	"github.com/kcermak/oscfr"
	"github.com/kcermak/oscfr/dist"
)

// Node is one position in the cached tree. Its action space is
// remapped to the dense indices 0..NumActions()-1 regardless of what
// the original game's action type looked like, so TreeGame can
// implement oscfr.Game[*Node, int, int] generically over any source
// game.
type Node struct {
	active oscfr.ActivePlayer[int]

	// children holds the node reached by each action index, populated
	// for Decision and Chance nodes only.
	children []*Node

	// env[a] holds the interned per-player (+public) environment
	// observations revealed by taking action a from this node, one
	// *int per stream, nil where nothing was revealed that step. Same
	// indexing as children.
	env [][]*int
}

// TreeGame wraps a pre-built Node tree and exposes it as an
// oscfr.Game[*Node, int, int], so any Solver can run against it exactly
// as it would against the generative game it was built from.
type TreeGame struct {
	players int
	root    *Node
	nodes   int
}

// Players returns the number of players in the wrapped game.
func (g *TreeGame) Players() int { return g.players }

// Start returns the cached root position.
func (g *TreeGame) Start() oscfr.History[*Node, int, int] {
	return oscfr.NewHistory[*Node, int, int](g.players, g.root, g.root.active)
}

// Transition looks the child up directly; no generative work happens
// here, which is the entire point of the cache.
func (g *TreeGame) Transition(h oscfr.History[*Node, int, int], action int) (*Node, oscfr.ActivePlayer[int], []*int) {
	cur := h.State
	child := cur.children[action]
	return child, child.active, cur.env[action]
}

// Nodes reports the number of positions the cached tree holds,
// including the root.
func (g *TreeGame) Nodes() int { return g.nodes }

// internTable assigns a dense int to each distinct observation value
// encountered during the traversal, the way a symbol table assigns
// codes to repeated strings.
type internTable[O comparable] struct {
	ids map[O]int
}

func newInternTable[O comparable]() *internTable[O] {
	return &internTable[O]{ids: make(map[O]int)}
}

func (t *internTable[O]) intern(o O) int {
	if id, ok := t.ids[o]; ok {
		return id
	}
	id := len(t.ids)
	t.ids[o] = id
	return id
}

// FromGame eagerly walks g via depth-first search from its Start
// history, building one treegame.Node per distinct History reached,
// and returns the resulting TreeGame. O must be comparable so that
// repeated observation values intern to the same code.
//
// g is walked exactly once: every edge is followed exactly once
// regardless of how many times a game-specific History might
// otherwise be reconstructed, trading the traversal's one-time memory
// cost for zero generative overhead on every later solve.
func FromGame[S, A any, O comparable](g oscfr.Game[S, A, O]) *TreeGame {
	tg := &TreeGame{players: g.Players()}
	obsIntern := newInternTable[O]()

	glog.Infof("treegame: building cached tree")
	tg.root = buildNode(g, g.Start(), tg, obsIntern)
	glog.Infof("treegame: built %d nodes", tg.nodes)
	return tg
}

func buildNode[S, A any, O comparable](g oscfr.Game[S, A, O], h oscfr.History[S, A, O], tg *TreeGame, obsIntern *internTable[O]) *Node {
	tg.nodes++

	switch h.Active.Role {
	case oscfr.Terminal:
		return &Node{active: oscfr.NewTerminal[int](h.Active.Utilities)}

	case oscfr.Chance:
		n := h.Active.NumActions()
		node := &Node{
			children: make([]*Node, n),
			env:      make([][]*int, n),
		}
		probs := make([]float64, n)
		for a := 0; a < n; a++ {
			probs[a] = h.Active.Dist.ProbabilityOf(a)
			child, env := step(g, h, a, obsIntern)
			node.env[a] = env
			node.children[a] = buildNode(g, child, tg, obsIntern)
		}
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		node.active = oscfr.NewChance(dist.New(probs, idx))
		return node

	default: // Decision
		n := h.Active.NumActions()
		node := &Node{
			children: make([]*Node, n),
			env:      make([][]*int, n),
		}
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		node.active = oscfr.NewDecision(h.Active.Player, idx)
		for a := 0; a < n; a++ {
			child, env := step(g, h, a, obsIntern)
			node.env[a] = env
			node.children[a] = buildNode(g, child, tg, obsIntern)
		}
		return node
	}
}

// step advances h by action index a and returns the resulting History
// plus the interned environment observations that oscfr.Advance would
// have appended, recovered by diffing each stream's length before and
// after and interning the stream's new last entry when it is an
// environment Observation.
func step[S, A any, O comparable](g oscfr.Game[S, A, O], h oscfr.History[S, A, O], a int, obsIntern *internTable[O]) (oscfr.History[S, A, O], []*int) {
	before := make([]int, len(h.Obs))
	for k, stream := range h.Obs {
		before[k] = len(stream)
	}

	nh := oscfr.Advance(g, h, a)

	env := make([]*int, len(nh.Obs))
	for k, stream := range nh.Obs {
		if len(stream) <= before[k] {
			continue
		}
		last := stream[len(stream)-1]
		if last.Kind != oscfr.EnvObservationKind {
			continue
		}
		id := obsIntern.intern(last.Obs)
		env[k] = &id
	}
	return nh, env
}
