package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/brensch/snakecore/internal/config"
	"github.com/brensch/snakecore/internal/game"
	"github.com/brensch/snakecore/internal/moves"
)

// Decide is the top-level decision entry point of spec.md §4.J: given the
// current board and which snake index is ours, it returns the direction to
// move. It never returns an error to the caller in the ordinary sense —
// every failure mode (no legal move, deadline elapsed before any iteration
// completed, an inconsistent board) is absorbed into a best-effort direction
// plus a warn-level log line, per spec.md §7, since a Battlesnake turn
// handler must always answer with some direction.
func Decide(ctx context.Context, b game.Board, ourIndex int, cfg config.Config, logger *slog.Logger) game.Direction {
	if logger == nil {
		logger = slog.Default()
	}
	if ourIndex < 0 || ourIndex >= len(b.Snakes) {
		logger.Warn("board inconsistency: ourIndex out of range", "our_index", ourIndex, "snake_count", len(b.Snakes))
		return game.Up
	}
	if !b.Snakes[ourIndex].Alive() {
		logger.Warn("board inconsistency: asked to decide for a dead snake", "our_index", ourIndex)
		return game.Up
	}

	if len(moves.BasicLegal(b, ourIndex)) == 0 {
		logger.Warn("trapped: no legal move, falling back to a forced direction", "our_index", ourIndex)
	}

	deadline := time.Now().Add(cfg.ResponseTimeBudget - cfg.NetworkOverhead)
	coordinator := NewCoordinator(cfg, logger)

	move, err := coordinator.Run(ctx, b, ourIndex, cfg, deadline)
	if err != nil {
		logger.Warn("search error, falling back", "err", err)
	}
	if !isLegal(b, ourIndex, move) {
		logger.Warn("search returned an illegal move, falling back to seed move", "move", move.String())
		move = seedMove(b, ourIndex)
	}
	return move
}
