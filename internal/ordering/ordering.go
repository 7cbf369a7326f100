// Package ordering implements the move-ordering tables of spec.md §4.F:
// killer moves per depth and a history heuristic per (cell, direction),
// plus the PV-first/killers/history ordering function search calls at every
// node. Grounded on the killer/history bookkeeping idiom used by the
// AdamGriffiths31-ChessEngine iterative-deepening driver (other_examples),
// adapted to spec.md's exact bonus/penalty formulas.
package ordering

import "github.com/brensch/snakecore/internal/game"

// KillerTable holds, for each search depth, up to K directions that recently
// caused a cutoff at that depth.
type KillerTable struct {
	perDepth int
	table    map[int][]game.Direction
}

// NewKillerTable creates a table holding up to perDepth killers per depth
// (spec.md default 2).
func NewKillerTable(perDepth int) *KillerTable {
	return &KillerTable{perDepth: perDepth, table: make(map[int][]game.Direction)}
}

// At returns the killer directions recorded for depth, in most-recent-first
// order.
func (k *KillerTable) At(depth int) []game.Direction {
	return k.table[depth]
}

// Record inserts dir at the head of depth's killer list, bumping older
// entries and deduplicating, per spec.md §4.F.
func (k *KillerTable) Record(depth int, dir game.Direction) {
	existing := k.table[depth]
	filtered := existing[:0:0]
	for _, d := range existing {
		if d != dir {
			filtered = append(filtered, d)
		}
	}
	updated := append([]game.Direction{dir}, filtered...)
	if len(updated) > k.perDepth {
		updated = updated[:k.perDepth]
	}
	k.table[depth] = updated
}

// Clear discards every recorded killer, done at the start of each fresh
// iterative-deepening iteration (spec.md §4.I).
func (k *KillerTable) Clear() {
	k.table = make(map[int][]game.Direction)
}

// HistoryTable holds a saturating integer score per (cell, direction) pair.
type HistoryTable struct {
	scores map[historyKey]int64
}

type historyKey struct {
	cell game.Coord
	dir  game.Direction
}

// NewHistoryTable creates an empty history table.
func NewHistoryTable() *HistoryTable {
	return &HistoryTable{scores: make(map[historyKey]int64)}
}

// Score returns the recorded history score for (cell, dir), or 0.
func (h *HistoryTable) Score(cell game.Coord, dir game.Direction) int64 {
	return h.scores[historyKey{cell: cell, dir: dir}]
}

const historyMax = int64(1) << 40

// RecordCutoff applies the on-cutoff bonus +2^min(depth,10) at (cell, dir),
// per spec.md §4.F, using saturating arithmetic.
func (h *HistoryTable) RecordCutoff(cell game.Coord, dir game.Direction, depth int) {
	exp := depth
	if exp > 10 {
		exp = 10
	}
	h.add(cell, dir, int64(1)<<uint(exp))
}

// RecordNonCutoff applies the non-cutoff penalty -2^min(depth/2,5) at
// (cell, dir), per spec.md §4.F.
func (h *HistoryTable) RecordNonCutoff(cell game.Coord, dir game.Direction, depth int) {
	exp := depth / 2
	if exp > 5 {
		exp = 5
	}
	h.add(cell, dir, -(int64(1) << uint(exp)))
}

func (h *HistoryTable) add(cell game.Coord, dir game.Direction, delta int64) {
	k := historyKey{cell: cell, dir: dir}
	v := h.scores[k] + delta
	if v > historyMax {
		v = historyMax
	}
	if v < -historyMax {
		v = -historyMax
	}
	h.scores[k] = v
}

// Clear discards every recorded history score, done at the start of each
// fresh iterative-deepening iteration (spec.md §4.I).
func (h *HistoryTable) Clear() {
	h.scores = make(map[historyKey]int64)
}

// Order returns moves reordered PV-first, then killers (in recorded order),
// then the remainder sorted by descending history score at headCell. It is
// always a permutation of moves: nothing is added or dropped.
func Order(moves []game.Direction, pv *game.Direction, killers []game.Direction, history *HistoryTable, headCell game.Coord) []game.Direction {
	if len(moves) == 0 {
		return moves
	}
	remaining := make(map[game.Direction]bool, len(moves))
	for _, m := range moves {
		remaining[m] = true
	}

	result := make([]game.Direction, 0, len(moves))
	take := func(d game.Direction) {
		if remaining[d] {
			result = append(result, d)
			delete(remaining, d)
		}
	}

	if pv != nil {
		take(*pv)
	}
	for _, k := range killers {
		take(k)
	}

	var rest []game.Direction
	for m := range remaining {
		rest = append(rest, m)
	}
	if history != nil {
		sortByHistoryDesc(rest, history, headCell)
	}
	result = append(result, rest...)
	return result
}

func sortByHistoryDesc(moves []game.Direction, history *HistoryTable, headCell game.Coord) {
	// Simple insertion sort: move lists are at most four elements long.
	for i := 1; i < len(moves); i++ {
		j := i
		for j > 0 && history.Score(headCell, moves[j-1]) < history.Score(headCell, moves[j]) {
			moves[j-1], moves[j] = moves[j], moves[j-1]
			j--
		}
	}
}
