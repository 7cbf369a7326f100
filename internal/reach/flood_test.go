package reach

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brensch/snakecore/internal/game"
)

func TestFloodFill_OpenBoard(t *testing.T) {
	b := game.Board{
		Width: 5, Height: 5,
		Snakes: []game.Snake{{ID: "a", Health: 50, Body: []game.Coord{{X: 2, Y: 2}}}},
	}
	assert.Equal(t, 25, FloodFill(b, game.Coord{X: 2, Y: 2}))
}

func TestFloodFill_TailRetreatUnblocks(t *testing.T) {
	// A 1-wide corridor blocked by a snake's own body, whose tail retreats
	// over time, eventually opening a path to cells beyond it.
	b := game.Board{
		Width: 3, Height: 3,
		Snakes: []game.Snake{
			{ID: "blocker", Health: 50, Body: []game.Coord{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}}},
		},
	}
	// Starting at (0,1): (1,1) is blocked until turn 1 (tail at depth0 is
	// (1,2), idx2 of 3 => turnsUntilFree=0; (1,1) idx1 => turnsUntilFree=1).
	dist := FloodFillWithDistances(b, game.Coord{X: 0, Y: 1})
	depth, reachable := dist[game.Coord{X: 1, Y: 1}]
	assert.True(t, reachable, "cell should eventually become reachable once the tail retreats")
	assert.GreaterOrEqual(t, depth, 1)
}

func TestAdversarialFloodFill_LongerSnakeWinsTie(t *testing.T) {
	b := game.Board{
		Width: 5, Height: 2,
		Snakes: []game.Snake{
			{ID: "short", Health: 50, Body: []game.Coord{{X: 0, Y: 0}}},
			{ID: "long", Health: 50, Body: []game.Coord{{X: 4, Y: 0}, {X: 4, Y: 1}}},
		},
	}
	owners := AdversarialFloodFill(b, nil)
	// Cell (2,0) is equidistant (2 steps) from both heads; the longer snake
	// (index 1) should win the tie.
	assert.Equal(t, 1, owners[game.Coord{X: 2, Y: 0}])
}
