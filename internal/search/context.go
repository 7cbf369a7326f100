// Package search implements the two search kernels of spec.md §4.H:
// alpha-beta for two active snakes, and MaxN for three or more, sharing the
// evaluator, transposition table, and move-ordering tables. Grounded on the
// teacher's maxn.go (joint-move MaxN) generalized to spec.md's rotating,
// per-player-node MaxN with a pessimistic tie-break, and on the
// negamax/alpha-beta shape used throughout other_examples (e.g.
// AdamGriffiths31-ChessEngine's game/ai/search package).
package search

import (
	"math"

	"github.com/brensch/snakecore/internal/config"
	"github.com/brensch/snakecore/internal/eval"
	"github.com/brensch/snakecore/internal/game"
	"github.com/brensch/snakecore/internal/locality"
	"github.com/brensch/snakecore/internal/moves"
	"github.com/brensch/snakecore/internal/ordering"
	"github.com/brensch/snakecore/internal/tt"
)

// NegativeInf stands in for "dead, or as bad as it gets" in scalar scores.
const NegativeInf = -math.MaxFloat64

// Context bundles everything a search node needs beyond the board itself:
// the shared transposition table, this worker's own killer/history tables
// (never shared across parallel root-split workers, per spec.md §4.I/§9),
// the configuration, and the PV line carried from the previous
// iterative-deepening iteration.
type Context struct {
	TT      *tt.Table
	Killers *ordering.KillerTable
	History *ordering.HistoryTable
	Cfg     config.Config

	// PVLine holds the root moves chosen by earlier ID iterations, most
	// recent first: PVLine[0] is the previous iteration's root choice. A
	// node where our snake moves at ply p from the root uses PVLine[p] as an
	// ordering hint, so entries past index 0 are older root choices, not the
	// continuation of a principal variation below the root. May be nil or
	// shorter than the search.
	PVLine []game.Direction
}

func (c *Context) pvAt(ply int) *game.Direction {
	if !c.Cfg.EnablePVOrdering || c.PVLine == nil || ply >= len(c.PVLine) {
		return nil
	}
	d := c.PVLine[ply]
	return &d
}

func (c *Context) killersAt(depth int) []game.Direction {
	if !c.Cfg.EnableKillerHeuristic || c.Killers == nil {
		return nil
	}
	return c.Killers.At(depth)
}

func legalMoves(b game.Board, idx int) []game.Direction {
	safe := moves.Safe(b, idx)
	if len(safe) > 0 {
		return safe
	}
	basic := moves.BasicLegal(b, idx)
	if len(basic) > 0 {
		return basic
	}
	return game.AllDirections[:]
}

func activeSet(b game.Board, ourIndex, remainingDepth int, cfg config.Config) []int {
	return locality.ActiveSet(b, ourIndex, remainingDepth, cfg.HeadDistanceMultiplier, cfg.MaxLocalityDistance)
}

func evaluateFor(b game.Board, ourIndex int, active []int, cfg config.Config) float64 {
	return eval.Evaluate(b, ourIndex, active, cfg)[ourIndex]
}
