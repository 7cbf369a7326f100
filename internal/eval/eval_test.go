package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brensch/snakecore/internal/config"
	"github.com/brensch/snakecore/internal/game"
)

func TestEvaluate_DeadSnakeGetsFloorScore(t *testing.T) {
	cfg := config.Default()
	b := game.Board{
		Width: 5, Height: 5,
		Snakes: []game.Snake{
			{ID: "us", Health: 0, Body: nil},
			{ID: "them", Health: 50, Body: []game.Coord{{X: 2, Y: 2}}},
		},
	}
	scores := Evaluate(b, 0, nil, cfg)
	assert.Equal(t, cfg.Eval.DeadSnakeScore, scores[0])
}

func TestEvaluate_PrefersMoreSpaceAndCenterOverWallHugging(t *testing.T) {
	cfg := config.Default()
	cornered := game.Board{
		Width: 11, Height: 11,
		Snakes: []game.Snake{
			{ID: "us", Health: 100, Body: []game.Coord{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}},
		},
	}
	centered := game.Board{
		Width: 11, Height: 11,
		Snakes: []game.Snake{
			{ID: "us", Health: 100, Body: []game.Coord{{X: 5, Y: 5}, {X: 5, Y: 4}, {X: 5, Y: 3}}},
		},
	}

	cornerScore := Evaluate(cornered, 0, nil, cfg)[0]
	centerScore := Evaluate(centered, 0, nil, cfg)[0]
	assert.Greater(t, centerScore, cornerScore, "a centered snake with equal space should score higher than a wall-hugging one")
}

func TestEvaluate_StarvingSnakeIsPenalizedFarFromFood(t *testing.T) {
	cfg := config.Default()
	healthy := game.Board{
		Width: 11, Height: 11,
		Food:   []game.Coord{{X: 9, Y: 9}},
		Snakes: []game.Snake{{ID: "us", Health: 95, Body: []game.Coord{{X: 5, Y: 5}}}},
	}
	starving := game.Board{
		Width: 11, Height: 11,
		Food:   []game.Coord{{X: 9, Y: 9}},
		Snakes: []game.Snake{{ID: "us", Health: 5, Body: []game.Coord{{X: 5, Y: 5}}}},
	}

	healthyScore := Evaluate(healthy, 0, nil, cfg)[0]
	starvingScore := Evaluate(starving, 0, nil, cfg)[0]
	assert.Less(t, starvingScore, healthyScore, "a near-starving snake far from food should score worse than a healthy one in the same position")
}

func TestEvaluate_MinimalTermsForInactiveSnakes(t *testing.T) {
	cfg := config.Default()
	b := game.Board{
		Width: 20, Height: 20,
		Snakes: []game.Snake{
			{ID: "us", Health: 100, Body: []game.Coord{{X: 0, Y: 0}}},
			{ID: "far", Health: 100, Body: []game.Coord{{X: 19, Y: 19}}},
		},
	}
	scores := Evaluate(b, 0, []int{0}, cfg)
	assert.NotZero(t, scores[1], "even a minimally-evaluated snake gets wall/center/length terms")
}
