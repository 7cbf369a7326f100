package moves

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brensch/snakecore/internal/game"
)

func TestBasicLegal(t *testing.T) {
	testCases := []struct {
		Description   string
		Board         game.Board
		SnakeIndex    int
		ExpectedMoves []game.Direction
	}{
		{
			Description: "snake in the middle of an open board",
			Board: game.Board{
				Width: 5, Height: 5,
				Snakes: []game.Snake{{ID: "a", Health: 50, Body: []game.Coord{{X: 2, Y: 2}}}},
			},
			SnakeIndex:    0,
			ExpectedMoves: []game.Direction{game.Up, game.Down, game.Left, game.Right},
		},
		{
			Description: "snake in the bottom-left corner",
			Board: game.Board{
				Width: 5, Height: 5,
				Snakes: []game.Snake{{ID: "a", Health: 50, Body: []game.Coord{{X: 0, Y: 0}}}},
			},
			SnakeIndex:    0,
			ExpectedMoves: []game.Direction{game.Up, game.Right},
		},
		{
			Description: "neck exclusion removes the reversing move",
			Board: game.Board{
				Width: 5, Height: 5,
				Snakes: []game.Snake{{ID: "a", Health: 50, Body: []game.Coord{{X: 2, Y: 2}, {X: 2, Y: 1}}}},
			},
			SnakeIndex:    0,
			ExpectedMoves: []game.Direction{game.Up, game.Left, game.Right},
		},
		{
			Description: "fully boxed in snake has no basic-legal move",
			Board: game.Board{
				Width: 5, Height: 5,
				Snakes: []game.Snake{
					{ID: "a", Health: 50, Body: []game.Coord{{X: 2, Y: 2}}},
					{ID: "wall", Health: 50, Body: []game.Coord{{X: 2, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 2}, {X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 3}}},
				},
			},
			SnakeIndex:    0,
			ExpectedMoves: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			moves := BasicLegal(tc.Board, tc.SnakeIndex)
			assert.ElementsMatch(t, tc.ExpectedMoves, moves)
		})
	}
}

func TestSafe_FallsBackWhenEveryMoveIsDangerous(t *testing.T) {
	// Our length-1 snake in the corner has exactly two legal moves, and a
	// longer snake's head is positioned so it can reach both targets in one
	// move, leaving no safe option.
	b := game.Board{
		Width: 5, Height: 5,
		Snakes: []game.Snake{
			{ID: "us", Health: 50, Body: []game.Coord{{X: 0, Y: 0}}},
			{ID: "bigger", Health: 50, Body: []game.Coord{{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 1, Y: 3}}},
		},
	}
	legal := BasicLegal(b, 0)
	safe := Safe(b, 0)
	assert.ElementsMatch(t, legal, safe, "Safe must fall back to the full legal set when every move is dangerous")
}

func TestSafe_AvoidsLosingHeadToHead(t *testing.T) {
	b := game.Board{
		Width: 7, Height: 7,
		Snakes: []game.Snake{
			{ID: "us", Health: 50, Body: []game.Coord{{X: 2, Y: 2}}},
			{ID: "bigger", Health: 50, Body: []game.Coord{{X: 4, Y: 2}, {X: 5, Y: 2}, {X: 6, Y: 2}}},
		},
	}
	safe := Safe(b, 0)
	assert.NotContains(t, safe, game.Right, "moving right walks into a reachable, losing head-to-head")
}
