package search

import (
	"github.com/brensch/snakecore/internal/eval"
	"github.com/brensch/snakecore/internal/game"
	"github.com/brensch/snakecore/internal/ordering"
)

// MaxN runs the N-player search of spec.md §4.H for three or more active
// snakes, rotating per-player decision nodes through board order once per
// ply. When a lap's active set narrows to exactly two snakes with ourIndex
// among them, it falls back to AlphaBeta on a board where every inactive
// snake has been marked dead, per spec.md's explicit two-active-snake
// fallback. It returns the full ScoreTuple and the move ourIndex should take
// at the root.
func MaxN(b game.Board, ourIndex, remainingDepth int, sc *Context) (game.ScoreTuple, game.Direction) {
	order := rootOrder(b)
	active := activeSet(b, ourIndex, remainingDepth, sc.Cfg)

	if len(active) == 2 && contains(active, ourIndex) {
		other := active[0]
		if other == ourIndex {
			other = active[1]
		}
		reduced := markInactiveDead(b, active)
		score, move := AlphaBeta(reduced, ourIndex, other, remainingDepth, sc)
		tuple := make(game.ScoreTuple, len(b.Snakes))
		tuple[ourIndex] = score
		return tuple, move
	}

	best := game.ScoreTuple(nil)
	var bestMove game.Direction
	moves := legalMoves(b, ourIndex)
	ordered := ordering.Order(moves, sc.pvAt(0), sc.killersAt(remainingDepth), sc.History, b.Snakes[ourIndex].Head())

	for _, m := range ordered {
		child := b.Clone()
		game.ApplyMove(&child, ourIndex, m, sc.Cfg.HealthOnFood, sc.Cfg.HealthLossPerTurn)
		game.KillIfOutOfBounds(&child, ourIndex)

		var result game.ScoreTuple
		if !child.Snakes[ourIndex].Alive() {
			result = deadTuple(child, ourIndex, sc)
		} else {
			result = rotatePly(child, order, nextIndex(order, ourIndex), ourIndex, remainingDepth, sc)
		}

		if best == nil || betterFor(ourIndex, result, best) {
			best = result
			bestMove = m
		}
	}
	return best, bestMove
}

// MaxNRootMove scores a single fixed root move for ourIndex, for use by the
// parallel root-split strategy (spec.md §4.I), mirroring AlphaBetaRootMove.
func MaxNRootMove(b game.Board, ourIndex, remainingDepth int, move game.Direction, sc *Context) game.ScoreTuple {
	order := rootOrder(b)
	child := b.Clone()
	game.ApplyMove(&child, ourIndex, move, sc.Cfg.HealthOnFood, sc.Cfg.HealthLossPerTurn)
	game.KillIfOutOfBounds(&child, ourIndex)
	if !child.Snakes[ourIndex].Alive() {
		return deadTuple(child, ourIndex, sc)
	}
	return rotatePly(child, order, nextIndex(order, ourIndex), ourIndex, remainingDepth, sc)
}

// rotatePly advances the rotation one snake at a time, applying idx's move
// (if idx is active and alive), then recursing to the next board-order
// index. When the rotation wraps back to its starting point, it resolves
// collisions for the whole ply via AdvanceGameState and decrements
// remainingDepth.
func rotatePly(b game.Board, order []int, idx, ourIndex, remainingDepth int, sc *Context) game.ScoreTuple {
	if remainingDepth <= 0 || game.Terminal(b) || !b.Snakes[ourIndex].Alive() {
		active := activeSet(b, ourIndex, remainingDepth, sc.Cfg)
		return eval.Evaluate(b, ourIndex, active, sc.Cfg)
	}

	active := activeSet(b, ourIndex, remainingDepth, sc.Cfg)
	if len(active) == 2 && contains(active, ourIndex) {
		other := active[0]
		if other == ourIndex {
			other = active[1]
		}
		reduced := markInactiveDead(b, active)
		score, _ := AlphaBeta(reduced, ourIndex, other, remainingDepth, sc)
		t := make(game.ScoreTuple, len(b.Snakes))
		t[ourIndex] = score
		return t
	}

	if idx == ourIndex {
		// Completed a full lap: resolve the ply and descend one depth level.
		game.AdvanceGameState(&b)
		if remainingDepth-1 <= 0 || game.Terminal(b) {
			return eval.Evaluate(b, ourIndex, activeSet(b, ourIndex, remainingDepth-1, sc.Cfg), sc.Cfg)
		}
		return rotatePly(b, order, idx, ourIndex, remainingDepth-1, sc)
	}

	s := b.Snakes[idx]
	if !s.Alive() || !contains(active, idx) {
		return rotatePly(b, order, nextIndex(order, idx), ourIndex, remainingDepth, sc)
	}

	moves := legalMoves(b, idx)
	ordered := ordering.Order(moves, nil, sc.killersAt(remainingDepth), sc.History, s.Head())

	var best game.ScoreTuple
	for _, m := range ordered {
		child := b.Clone()
		game.ApplyMove(&child, idx, m, sc.Cfg.HealthOnFood, sc.Cfg.HealthLossPerTurn)
		game.KillIfOutOfBounds(&child, idx)

		result := rotatePly(child, order, nextIndex(order, idx), ourIndex, remainingDepth, sc)

		if best == nil || betterFor(idx, result, best) {
			best = result
		}
	}
	if best == nil {
		// Every candidate move was illegal/empty: evaluate in place.
		return eval.Evaluate(b, ourIndex, active, sc.Cfg)
	}
	return best
}

// betterFor reports whether candidate is a better outcome for player than
// current, using spec.md's pessimistic tie-break: ties on player's own score
// are broken in favor of the candidate that minimizes the sum of every other
// player's score.
func betterFor(player int, candidate, current game.ScoreTuple) bool {
	if candidate[player] != current[player] {
		return candidate[player] > current[player]
	}
	return sumOthers(candidate, player) < sumOthers(current, player)
}

func sumOthers(sc game.ScoreTuple, player int) float64 {
	var sum float64
	for i, v := range sc {
		if i != player {
			sum += v
		}
	}
	return sum
}

func deadTuple(b game.Board, ourIndex int, sc *Context) game.ScoreTuple {
	t := make(game.ScoreTuple, len(b.Snakes))
	t[ourIndex] = sc.Cfg.Eval.DeadSnakeScore
	return t
}

func rootOrder(b game.Board) []int {
	order := make([]int, 0, len(b.Snakes))
	for i := range b.Snakes {
		order = append(order, i)
	}
	return order
}

func nextIndex(order []int, cur int) int {
	pos := 0
	for i, v := range order {
		if v == cur {
			pos = i
			break
		}
	}
	return order[(pos+1)%len(order)]
}

func contains(active []int, idx int) bool {
	for _, a := range active {
		if a == idx {
			return true
		}
	}
	return false
}

func markInactiveDead(b game.Board, active []int) game.Board {
	c := b.Clone()
	for i := range c.Snakes {
		if !contains(active, i) {
			c.Snakes[i].Body = nil
			c.Snakes[i].Health = 0
		}
	}
	return c
}
