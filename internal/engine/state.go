// Package engine implements the deadline coordinator and top-level decision
// entry point of spec.md §4.I/§4.J: the iterative-deepening driver that
// repeatedly invokes internal/search at increasing depth until the turn's
// time budget is spent, and SharedSearchState, the lock-free "anytime"
// result each iteration publishes.
//
// Grounded on the teacher's MCTS worker pool (mcts.go): multiple goroutines
// racing to improve a shared best-result value via atomic compare-and-swap,
// generalized from MCTS visit-count accumulation to iterative-deepening
// monotonic score improvement.
package engine

import (
	"math"
	"sync/atomic"

	"github.com/brensch/snakecore/internal/game"
)

// SharedSearchState is the single word iterative-deepening workers publish
// their best-known result to. A reader can load it at any time and get a
// valid, if not necessarily final, answer (the "anytime" guarantee of
// spec.md §4.I/§9): the packed word only ever moves towards a strictly
// better score, never backwards, so a concurrent reader never observes a
// torn or regressing update.
type SharedSearchState struct {
	word      atomic.Uint64
	completed atomic.Bool
	depth     atomic.Int32
}

// NewSharedSearchState returns a state with no result recorded yet.
func NewSharedSearchState() *SharedSearchState {
	s := &SharedSearchState{}
	s.word.Store(pack(negInfScore, 0))
	return s
}

const negInfScore = math.MinInt32

// pack encodes score (rounded and clamped to an i32) and move (0-3) into one
// 64-bit word: the high 32 bits are the i32 score, the low 8 bits are the
// move index, per spec.md §3's best_score/best_move packing. The evaluator
// itself still computes in float64 (internal/eval); this rounding only
// affects the published anytime result, never a search comparison.
func pack(score float64, move game.Direction) uint64 {
	s := int32(clampToInt32(score))
	return uint64(uint32(s))<<32 | uint64(byte(move))
}

func unpack(word uint64) (float64, game.Direction) {
	bits := uint32(word >> 32)
	move := game.Direction(byte(word))
	return float64(int32(bits)), move
}

func clampToInt32(score float64) float64 {
	rounded := math.Round(score)
	if rounded > math.MaxInt32 {
		return math.MaxInt32
	}
	if rounded < math.MinInt32 {
		return math.MinInt32
	}
	return rounded
}

// Update publishes (score, move) if score strictly improves on the
// currently recorded score. It returns whether the update was applied.
// Safe for concurrent use by multiple search workers.
func (s *SharedSearchState) Update(score float64, move game.Direction) bool {
	next := pack(score, move)
	for {
		old := s.word.Load()
		oldScore, _ := unpack(old)
		if score <= oldScore {
			return false
		}
		if s.word.CompareAndSwap(old, next) {
			return true
		}
	}
}

// Best returns the best (score, move) published so far, and whether any
// result has been published at all.
func (s *SharedSearchState) Best() (float64, game.Direction, bool) {
	score, move := unpack(s.word.Load())
	return score, move, score > negInfScore
}

// SetDepth records the depth the current iteration is searching to, for
// diagnostics and logging.
func (s *SharedSearchState) SetDepth(d int) {
	s.depth.Store(int32(d))
}

// Depth returns the most recently recorded search depth.
func (s *SharedSearchState) Depth() int {
	return int(s.depth.Load())
}

// MarkComplete records that the current iteration finished searching every
// root move without being interrupted by the deadline.
func (s *SharedSearchState) MarkComplete() {
	s.completed.Store(true)
}

// ResetIteration clears the completed flag at the start of a new
// iterative-deepening iteration; the best-result word is left untouched,
// since it must never regress.
func (s *SharedSearchState) ResetIteration() {
	s.completed.Store(false)
}

// Completed reports whether the most recent iteration ran to completion.
func (s *SharedSearchState) Completed() bool {
	return s.completed.Load()
}
