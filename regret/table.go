// Package regret implements the concurrent regret/strategy-sum table
// shared by the solver's per-player accumulators, and the
// regret-matching / average-strategy policy derivations that read it.
package regret

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

// Key identifies an information set: a player's full observation
// stream, canonically encoded by the caller (see the root package's
// infoset keying).
type Key string

const shardCount = 128

type entry struct {
	mu          sync.Mutex
	strategySum []float64
	regretSum   []float64
}

type shard struct {
	mu      sync.RWMutex
	entries map[Key]*entry
}

// Table is a sharded, concurrency-safe map from infoset Key to
// (strategy_sum, regret_sum). Entries are created with zero vectors on
// first update and never resized afterwards.
type Table struct {
	shards [shardCount]shard
}

// NewTable returns an empty Table ready for concurrent use.
func NewTable() *Table {
	t := &Table{}
	for i := range t.shards {
		t.shards[i].entries = make(map[Key]*entry)
	}
	return t
}

func (t *Table) shardFor(key Key) *shard {
	h := xxhash.Sum64String(string(key))
	return &t.shards[h%uint64(shardCount)]
}

func (t *Table) lookupEntry(key Key) (*entry, bool) {
	sh := t.shardFor(key)
	sh.mu.RLock()
	e, ok := sh.entries[key]
	sh.mu.RUnlock()
	return e, ok
}

// Lookup returns copies of the strategy-sum and regret-sum vectors for
// key, or ok=false if no update has touched this infoset yet. The
// returned slices are independent copies: callers may hold them across
// a recursive call without holding any table lock.
func (t *Table) Lookup(key Key) (strategySum, regretSum []float64, ok bool) {
	e, ok := t.lookupEntry(key)
	if !ok {
		return nil, nil, false
	}

	e.mu.Lock()
	strategySum = append([]float64(nil), e.strategySum...)
	regretSum = append([]float64(nil), e.regretSum...)
	e.mu.Unlock()
	return strategySum, regretSum, true
}

// Update adds deltaRegret and/or deltaStrategy (element-wise) into the
// entry for key, creating it with zero vectors of the appropriate
// length on first touch. Passing both nil is a contract violation.
// A non-nil delta whose length disagrees with an existing entry's
// length is a fatal contract violation (regret-table invariant: an
// infoset's action count never changes after its record is created).
func (t *Table) Update(key Key, deltaRegret, deltaStrategy []float64) {
	n := len(deltaRegret)
	if n == 0 {
		n = len(deltaStrategy)
	}
	if n == 0 {
		panic(errors.Errorf("regret: Update(%q) called with no deltas", key))
	}

	sh := t.shardFor(key)
	sh.mu.Lock()
	e, ok := sh.entries[key]
	if !ok {
		e = &entry{
			strategySum: make([]float64, n),
			regretSum:   make([]float64, n),
		}
		sh.entries[key] = e
	}
	sh.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if deltaRegret != nil && len(deltaRegret) != len(e.regretSum) {
		panic(errors.Errorf("regret: Update(%q) regret delta length %d does not match existing entry length %d",
			key, len(deltaRegret), len(e.regretSum)))
	}
	if deltaStrategy != nil && len(deltaStrategy) != len(e.strategySum) {
		panic(errors.Errorf("regret: Update(%q) strategy delta length %d does not match existing entry length %d",
			key, len(deltaStrategy), len(e.strategySum)))
	}

	for i, d := range deltaRegret {
		e.regretSum[i] += d
	}
	for i, d := range deltaStrategy {
		e.strategySum[i] += d
	}
}

// Size returns the number of distinct infosets tracked.
func (t *Table) Size() int {
	total := 0
	for i := range t.shards {
		sh := &t.shards[i]
		sh.mu.RLock()
		total += len(sh.entries)
		sh.mu.RUnlock()
	}
	return total
}
