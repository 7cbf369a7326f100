// Package tt implements the bounded, concurrent transposition table of
// spec.md §4.E. Grounded on the sharded/atomic replacement strategy in
// herohde-morlock's pkg/search/transposition.go (other_examples), adapted
// from that chess engine's bound/ply/depth metadata word to spec.md's
// simpler (score, depth, age) entry and its specific eviction policy
// (age-window eviction, then drop-half-arbitrary).
package tt

import (
	"sync"
)

const shardCount = 32

// Entry is the cached result for one board hash: the score, the depth it
// was searched to, and the table-wide age at which it was last written.
type Entry struct {
	Score float64
	Depth int
	Age   int64
}

type shard struct {
	mu      sync.RWMutex
	entries map[uint64]Entry
}

// Table is a bounded, concurrent map from board hash to Entry, shared across
// one turn's search workers. Capacity is enforced per shard (capacity /
// shardCount each) so Store never needs to acquire a second shard's lock
// while holding its own.
type Table struct {
	shardCapacity int
	age           int64 // current age; incremented once per turn via NewAge.
	shards        [shardCount]*shard
}

// New creates a Table bounded at approximately capacity entries in total
// (spec.md default ~1e5), spread evenly across shards.
func New(capacity int) *Table {
	perShard := capacity / shardCount
	if perShard < 1 {
		perShard = 1
	}
	t := &Table{shardCapacity: perShard}
	for i := range t.shards {
		t.shards[i] = &shard{entries: make(map[uint64]Entry)}
	}
	return t
}

// NewAge increments the table's age counter; called once at the start of
// each turn's search, per spec.md §4.E.
func (t *Table) NewAge() {
	t.age++
}

func (t *Table) shardFor(hash uint64) *shard {
	return t.shards[hash%shardCount]
}

// Probe returns the stored score for hash only if it was computed at depth
// >= requiredDepth, per spec.md §4.E.
func (t *Table) Probe(hash uint64, requiredDepth int) (float64, bool) {
	s := t.shardFor(hash)
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[hash]
	if !ok || e.Depth < requiredDepth {
		return 0, false
	}
	return e.Score, true
}

// Store inserts or replaces the entry for hash, per spec.md §4.E: if an
// entry exists with a lower stored depth, replace it; if no entry exists and
// the table is full, evict entries older than currentAge-100 first, then
// (if still full) drop half of the shard's entries arbitrarily.
func (t *Table) Store(hash uint64, score float64, depth int) {
	s := t.shardFor(hash)
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[hash]; ok {
		if depth >= existing.Depth {
			s.entries[hash] = Entry{Score: score, Depth: depth, Age: t.age}
		}
		return
	}

	if len(s.entries) >= t.shardCapacity {
		t.evictOld(s)
		if len(s.entries) >= t.shardCapacity {
			t.evictHalf(s)
		}
	}
	s.entries[hash] = Entry{Score: score, Depth: depth, Age: t.age}
}

// Len returns the total number of entries currently stored, for tests and
// diagnostics.
func (t *Table) Len() int {
	total := 0
	for _, sh := range t.shards {
		sh.mu.RLock()
		total += len(sh.entries)
		sh.mu.RUnlock()
	}
	return total
}

func (t *Table) evictOld(s *shard) {
	cutoff := t.age - 100
	for h, e := range s.entries {
		if e.Age < cutoff {
			delete(s.entries, h)
		}
	}
}

func (t *Table) evictHalf(s *shard) {
	n := len(s.entries) / 2
	if n == 0 {
		n = 1
	}
	for h := range s.entries {
		delete(s.entries, h)
		n--
		if n <= 0 {
			break
		}
	}
}
