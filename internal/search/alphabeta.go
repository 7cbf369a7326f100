package search

import (
	"github.com/brensch/snakecore/internal/game"
	"github.com/brensch/snakecore/internal/ordering"
)

// AlphaBeta runs a fail-hard alpha-beta search from b's perspective, scoring
// for ourIndex, with oppIndex as the sole opponent (spec.md §4.H: used
// directly when exactly two snakes are active, and as the MaxN fallback when
// a rotating lap narrows to two active snakes). It returns ourIndex's score
// and the move ourIndex should take at the root.
func AlphaBeta(b game.Board, ourIndex, oppIndex, remainingDepth int, sc *Context) (float64, game.Direction) {
	moves := legalMoves(b, ourIndex)
	ordered := ordering.Order(moves, sc.pvAt(0), sc.killersAt(remainingDepth), sc.History, b.Snakes[ourIndex].Head())

	best := NegativeInf
	bestMove := ordered[0]
	alpha, beta := NegativeInf, -NegativeInf

	for _, m := range ordered {
		child := b.Clone()
		game.ApplyMove(&child, ourIndex, m, sc.Cfg.HealthOnFood, sc.Cfg.HealthLossPerTurn)
		game.KillIfOutOfBounds(&child, ourIndex)

		var score float64
		if !child.Snakes[ourIndex].Alive() {
			score = sc.Cfg.Eval.DeadSnakeScore
		} else {
			score = alphaBetaMin(child, ourIndex, oppIndex, remainingDepth, alpha, beta, 1, sc)
		}

		if score > best {
			best = score
			bestMove = m
		}
		if score > alpha {
			alpha = score
		}
	}

	return best, bestMove
}

// AlphaBetaRootMove scores a single fixed root move for ourIndex, for use by
// the parallel root-split strategy (spec.md §4.I): each worker fixes a
// different root move and calls this directly instead of iterating over the
// whole legal-move set itself.
func AlphaBetaRootMove(b game.Board, ourIndex, oppIndex, remainingDepth int, move game.Direction, sc *Context) float64 {
	child := b.Clone()
	game.ApplyMove(&child, ourIndex, move, sc.Cfg.HealthOnFood, sc.Cfg.HealthLossPerTurn)
	game.KillIfOutOfBounds(&child, ourIndex)
	if !child.Snakes[ourIndex].Alive() {
		return sc.Cfg.Eval.DeadSnakeScore
	}
	return alphaBetaMin(child, ourIndex, oppIndex, remainingDepth, NegativeInf, -NegativeInf, 1, sc)
}

func alphaBetaMax(b game.Board, ourIndex, oppIndex, remainingDepth int, alpha, beta float64, ply int, sc *Context) float64 {
	if remainingDepth <= 0 || game.Terminal(b) || !b.Snakes[ourIndex].Alive() {
		return leafScore(b, ourIndex, oppIndex, remainingDepth, sc)
	}

	hash := game.Hash(b)
	if score, ok := sc.TT.Probe(hash, remainingDepth); ok {
		return score
	}

	moves := legalMoves(b, ourIndex)
	ordered := ordering.Order(moves, sc.pvAt(ply), sc.killersAt(remainingDepth), sc.History, b.Snakes[ourIndex].Head())

	best := NegativeInf
	var bestMove game.Direction
	cutoff := false

	for _, m := range ordered {
		child := b.Clone()
		game.ApplyMove(&child, ourIndex, m, sc.Cfg.HealthOnFood, sc.Cfg.HealthLossPerTurn)
		game.KillIfOutOfBounds(&child, ourIndex)

		var score float64
		if !child.Snakes[ourIndex].Alive() {
			score = sc.Cfg.Eval.DeadSnakeScore
		} else {
			score = alphaBetaMin(child, ourIndex, oppIndex, remainingDepth, alpha, beta, ply+1, sc)
		}

		if score > best {
			best = score
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			cutoff = true
			break
		}
	}

	if cutoff {
		sc.History.RecordCutoff(b.Snakes[ourIndex].Head(), bestMove, remainingDepth)
		sc.Killers.Record(remainingDepth, bestMove)
	} else {
		sc.History.RecordNonCutoff(b.Snakes[ourIndex].Head(), bestMove, remainingDepth)
	}
	sc.TT.Store(hash, best, remainingDepth)
	return best
}

func alphaBetaMin(b game.Board, ourIndex, oppIndex, remainingDepth int, alpha, beta float64, ply int, sc *Context) float64 {
	if remainingDepth <= 0 || game.Terminal(b) || !b.Snakes[ourIndex].Alive() {
		return leafScore(b, ourIndex, oppIndex, remainingDepth, sc)
	}
	if !b.Snakes[oppIndex].Alive() {
		return alphaBetaMax(advanceEmptyPly(b), ourIndex, oppIndex, remainingDepth-1, alpha, beta, ply, sc)
	}

	moves := legalMoves(b, oppIndex)
	ordered := ordering.Order(moves, nil, sc.killersAt(remainingDepth), sc.History, b.Snakes[oppIndex].Head())

	best := -NegativeInf
	var bestMove game.Direction
	cutoff := false

	for _, m := range ordered {
		child := b.Clone()
		game.ApplyMove(&child, oppIndex, m, sc.Cfg.HealthOnFood, sc.Cfg.HealthLossPerTurn)
		game.KillIfOutOfBounds(&child, oppIndex)
		game.AdvanceGameState(&child)

		var score float64
		if !child.Snakes[ourIndex].Alive() {
			score = sc.Cfg.Eval.DeadSnakeScore
		} else {
			score = alphaBetaMax(child, ourIndex, oppIndex, remainingDepth-1, alpha, beta, ply+1, sc)
		}

		if score < best {
			best = score
			bestMove = m
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			cutoff = true
			break
		}
	}

	if cutoff {
		sc.History.RecordCutoff(b.Snakes[oppIndex].Head(), bestMove, remainingDepth)
		sc.Killers.Record(remainingDepth, bestMove)
	} else {
		sc.History.RecordNonCutoff(b.Snakes[oppIndex].Head(), bestMove, remainingDepth)
	}
	return best
}

// advanceEmptyPly resolves a ply where the opponent has already died; the
// board still needs AdvanceGameState applied once to keep parity with the
// normal two-move-per-ply cadence, but there is nothing left to apply.
func advanceEmptyPly(b game.Board) game.Board {
	game.AdvanceGameState(&b)
	return b
}

func leafScore(b game.Board, ourIndex, oppIndex int, remainingDepth int, sc *Context) float64 {
	if !b.Snakes[ourIndex].Alive() {
		return sc.Cfg.Eval.DeadSnakeScore
	}
	active := activeSet(b, ourIndex, remainingDepth, sc.Cfg)
	return evaluateFor(b, ourIndex, active, sc.Cfg)
}
