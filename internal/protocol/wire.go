// Package protocol holds the Battlesnake wire types (adapted from the
// teacher's api.go) and the conversions between them and the internal
// internal/game model. The core package never imports this package's
// transport-facing types directly; cmd/server is the only caller that
// should use ToBoard/MoveString.
package protocol

import "github.com/brensch/snakecore/internal/game"

type Game struct {
	ID      string  `json:"id"`
	Ruleset Ruleset `json:"ruleset"`
	Map     string  `json:"map"`
	Source  string  `json:"source"`
	Timeout int     `json:"timeout"`
}

type Ruleset struct {
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	Settings Settings `json:"settings"`
}

type Settings struct {
	FoodSpawnChance     int `json:"foodSpawnChance"`
	MinimumFood         int `json:"minimumFood"`
	HazardDamagePerTurn int `json:"hazardDamagePerTurn"`
}

type Board struct {
	Height  int     `json:"height"`
	Width   int     `json:"width"`
	Food    []Point `json:"food"`
	Hazards []Point `json:"hazards"`
	Snakes  []Snake `json:"snakes"`
}

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Snake struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Health         int            `json:"health"`
	Body           []Point        `json:"body"`
	Latency        string         `json:"latency"`
	Head           Point          `json:"head"`
	Shout          string         `json:"shout"`
	Customizations Customizations `json:"customizations"`
}

type Customizations struct {
	Color string `json:"color"`
	Head  string `json:"head"`
	Tail  string `json:"tail"`
}

type BattleSnakeGame struct {
	Game  Game  `json:"game"`
	Turn  int   `json:"turn"`
	Board Board `json:"board"`
	You   Snake `json:"you"`
}

// ToBoard converts the wire board into the internal model, reordering
// snakes so index 0 is always "you" (the convention internal/search assumes
// for ourIndex == 0 at the root, per spec.md §4.J). The wire order of the
// remaining snakes is preserved.
func (g BattleSnakeGame) ToBoard() (b game.Board, ourIndex int) {
	b = game.Board{
		Width:   g.Board.Width,
		Height:  g.Board.Height,
		Food:    toCoords(g.Board.Food),
		Hazards: toCoords(g.Board.Hazards),
		Snakes:  make([]game.Snake, 0, len(g.Board.Snakes)),
	}

	you := game.Snake{ID: g.You.ID, Health: g.You.Health, Body: toCoords(g.You.Body)}
	b.Snakes = append(b.Snakes, you)
	for _, s := range g.Board.Snakes {
		if s.ID == g.You.ID {
			continue
		}
		b.Snakes = append(b.Snakes, game.Snake{
			ID:     s.ID,
			Health: s.Health,
			Body:   toCoords(s.Body),
		})
	}
	return b, 0
}

func toCoords(pts []Point) []game.Coord {
	if len(pts) == 0 {
		return nil
	}
	cs := make([]game.Coord, len(pts))
	for i, p := range pts {
		cs[i] = game.Coord{X: p.X, Y: p.Y}
	}
	return cs
}

// MoveString renders a direction in the wire protocol's lowercase form.
func MoveString(d game.Direction) string {
	return d.String()
}
