package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brensch/snakecore/internal/config"
	"github.com/brensch/snakecore/internal/game"
	"github.com/brensch/snakecore/internal/ordering"
	"github.com/brensch/snakecore/internal/tt"
)

func newTestContext(cfg config.Config) *Context {
	return &Context{
		TT:      tt.New(1000),
		Killers: ordering.NewKillerTable(cfg.KillerMovesPerDepth),
		History: ordering.NewHistoryTable(),
		Cfg:     cfg,
	}
}

func TestAlphaBeta_AvoidsWallCrash(t *testing.T) {
	cfg := config.Default()
	// Our snake is one step from the bottom wall with the opponent far away;
	// moving Down crashes immediately, every other move survives.
	b := game.Board{
		Width: 11, Height: 11,
		Snakes: []game.Snake{
			{ID: "us", Health: 100, Body: []game.Coord{{X: 5, Y: 0}, {X: 5, Y: 1}, {X: 5, Y: 2}}},
			{ID: "them", Health: 100, Body: []game.Coord{{X: 10, Y: 10}, {X: 10, Y: 9}, {X: 10, Y: 8}}},
		},
	}
	sc := newTestContext(cfg)
	_, move := AlphaBeta(b, 0, 1, 3, sc)
	assert.NotEqual(t, game.Down, move, "search must not choose a move that immediately crashes into a wall")
}

func TestAlphaBeta_SeeksFoodWhenStarving(t *testing.T) {
	cfg := config.Default()
	b := game.Board{
		Width: 11, Height: 11,
		Food: []game.Coord{{X: 9, Y: 5}},
		Snakes: []game.Snake{
			{ID: "us", Health: 8, Body: []game.Coord{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}}},
			{ID: "them", Health: 100, Body: []game.Coord{{X: 0, Y: 10}, {X: 0, Y: 9}, {X: 0, Y: 8}}},
		},
	}
	sc := newTestContext(cfg)
	_, move := AlphaBeta(b, 0, 1, 4, sc)
	assert.Equal(t, game.Right, move, "a starving snake with a clear path should move toward the nearest food")
}

func TestMaxN_ThreePlayerReturnsLegalMove(t *testing.T) {
	cfg := config.Default()
	b := game.Board{
		Width: 11, Height: 11,
		Snakes: []game.Snake{
			{ID: "us", Health: 100, Body: []game.Coord{{X: 5, Y: 5}, {X: 5, Y: 4}}},
			{ID: "b", Health: 100, Body: []game.Coord{{X: 1, Y: 1}, {X: 1, Y: 0}}},
			{ID: "c", Health: 100, Body: []game.Coord{{X: 9, Y: 9}, {X: 9, Y: 8}}},
		},
	}
	sc := newTestContext(cfg)
	tuple, move := MaxN(b, 0, 2, sc)
	legal := map[game.Direction]bool{game.Up: true, game.Down: true, game.Left: true, game.Right: true}
	assert.True(t, legal[move])
	assert.Len(t, tuple, 3)
}

func TestMaxN_FallsBackToAlphaBetaWithTwoActive(t *testing.T) {
	cfg := config.Default()
	cfg.MaxLocalityDistance = 1 // force the third snake out of the active set
	b := game.Board{
		Width: 19, Height: 19,
		Snakes: []game.Snake{
			{ID: "us", Health: 100, Body: []game.Coord{{X: 9, Y: 9}, {X: 9, Y: 8}}},
			{ID: "nearby", Health: 100, Body: []game.Coord{{X: 10, Y: 9}, {X: 10, Y: 8}}},
			{ID: "distant", Health: 100, Body: []game.Coord{{X: 0, Y: 0}, {X: 0, Y: 1}}},
		},
	}
	sc := newTestContext(cfg)
	tuple, move := MaxN(b, 0, 2, sc)
	legal := map[game.Direction]bool{game.Up: true, game.Down: true, game.Left: true, game.Right: true}
	assert.True(t, legal[move])
	assert.Zero(t, tuple[2], "the 2-player fallback path never scores the snake it marked inactive")
}

func TestBetterFor_PessimisticTieBreak(t *testing.T) {
	current := game.ScoreTuple{10, 5, 5}
	tiedButWorseForOthers := game.ScoreTuple{10, 8, 8}
	assert.False(t, betterFor(0, tiedButWorseForOthers, current), "a tie on our score should prefer the candidate that minimizes the others' total")

	tiedAndBetterForOthers := game.ScoreTuple{10, 1, 1}
	assert.True(t, betterFor(0, tiedAndBetterForOthers, current))
}
