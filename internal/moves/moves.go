// Package moves implements the legal-move generator of spec.md §4.C,
// grounded on the teacher's generateAllMoves/safeMove logic in board.go
// (there operating over all snakes at once; here split into a per-snake
// basic-legal/safe pair so search can call it per node).
package moves

import "github.com/brensch/snakecore/internal/game"

// BasicLegal returns the directions that keep snakeIndex's head off the neck,
// in bounds, and clear of every living snake's body (excluding tails),
// per spec.md §4.C. An empty result means the snake has no basic-legal move
// at all (surrounded on every side including the neck).
func BasicLegal(b game.Board, snakeIndex int) []game.Direction {
	snake := b.Snakes[snakeIndex]
	if !snake.Alive() {
		return nil
	}
	var neck *game.Coord
	if len(snake.Body) > 1 {
		n := snake.Body[1]
		neck = &n
	}

	var result []game.Direction
	for _, d := range game.AllDirections {
		head := game.Apply(snake.Head(), d)
		if neck != nil && head == *neck {
			continue
		}
		if !b.InBounds(head) {
			continue
		}
		if collidesWithBody(b, head) {
			continue
		}
		result = append(result, d)
	}
	return result
}

func collidesWithBody(b game.Board, head game.Coord) bool {
	for _, other := range b.Snakes {
		if !other.Alive() {
			continue
		}
		body := other.Body
		if len(body) > 1 {
			body = body[:len(body)-1] // tail is vacating, excluded for every snake
		}
		for _, seg := range body {
			if seg == head {
				return true
			}
		}
	}
	return false
}

// Safe returns the subset of BasicLegal(b, snakeIndex) that is not a
// dangerous head-to-head: a move whose target cell some living, equal-or-
// longer opponent can also reach with a non-reversing move of its own.
// Per spec.md §4.C, Safe falls back to BasicLegal if the safe set is empty
// ("prefer a fight you might lose over a certain wall").
func Safe(b game.Board, snakeIndex int) []game.Direction {
	legal := BasicLegal(b, snakeIndex)
	if len(legal) == 0 {
		return legal
	}

	ourLen := b.Snakes[snakeIndex].Length()
	var safe []game.Direction
	for _, d := range legal {
		target := game.Apply(b.Snakes[snakeIndex].Head(), d)
		if dangerousHeadToHead(b, snakeIndex, ourLen, target) {
			continue
		}
		safe = append(safe, d)
	}
	if len(safe) == 0 {
		return legal
	}
	return safe
}

func dangerousHeadToHead(b game.Board, snakeIndex, ourLen int, target game.Coord) bool {
	for i, other := range b.Snakes {
		if i == snakeIndex || !other.Alive() {
			continue
		}
		if other.Length() < ourLen {
			continue
		}
		var neck *game.Coord
		if len(other.Body) > 1 {
			n := other.Body[1]
			neck = &n
		}
		for _, d := range game.AllDirections {
			head := game.Apply(other.Head(), d)
			if neck != nil && head == *neck {
				continue
			}
			if head == target {
				return true
			}
		}
	}
	return false
}
