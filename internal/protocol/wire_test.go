package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brensch/snakecore/internal/game"
)

// The payload shape mirrors a captured Battlesnake /move request, the same
// style of fixture the teacher's board_test.go embeds as a literal string.
const capturedMovePayload = `{
	"game":{"id":"g1","ruleset":{"name":"standard","version":"1"},"timeout":500},
	"turn":12,
	"board":{
		"height":11,"width":11,
		"food":[{"x":1,"y":7}],
		"hazards":null,
		"snakes":[
			{"id":"gs_you","name":"me","health":90,"body":[{"x":5,"y":5},{"x":5,"y":4},{"x":5,"y":3}],"head":{"x":5,"y":5}},
			{"id":"gs_them","name":"rival","health":70,"body":[{"x":0,"y":0},{"x":0,"y":1}],"head":{"x":0,"y":0}}
		]
	},
	"you":{"id":"gs_you","name":"me","health":90,"body":[{"x":5,"y":5},{"x":5,"y":4},{"x":5,"y":3}],"head":{"x":5,"y":5}}
}`

func TestBattleSnakeGame_ToBoard_RoundTrip(t *testing.T) {
	var g BattleSnakeGame
	err := json.Unmarshal([]byte(capturedMovePayload), &g)
	assert.NoError(t, err)

	b, ourIndex := g.ToBoard()
	assert.Equal(t, 11, b.Width)
	assert.Equal(t, 11, b.Height)
	assert.Len(t, b.Snakes, 2)
	assert.Equal(t, "gs_you", b.Snakes[ourIndex].ID)
	assert.Equal(t, game.Coord{X: 5, Y: 5}, b.Snakes[ourIndex].Body[0])
	assert.Equal(t, []game.Coord{{X: 1, Y: 7}}, b.Food)
}

func TestMoveString(t *testing.T) {
	assert.Equal(t, "up", MoveString(game.Up))
	assert.Equal(t, "down", MoveString(game.Down))
	assert.Equal(t, "left", MoveString(game.Left))
	assert.Equal(t, "right", MoveString(game.Right))
}
