// Package locality implements the IDAPOS filter of spec.md §4.G: at a given
// remaining search depth, which opponents are close enough to our snake's
// head to matter, and which can safely be elided from the node's expansion
// and evaluation.
package locality

import (
	"math"

	"github.com/brensch/snakecore/internal/game"
)

// ActiveSet returns the indices of every snake that should participate in a
// search node at the given remaining depth: our snake, plus every other
// living snake with at least one body segment within
// min(headDistanceMultiplier*remainingDepth, maxDistance) Manhattan distance
// of our head. The result always contains ourIndex, listed first.
func ActiveSet(b game.Board, ourIndex, remainingDepth int, headDistanceMultiplier float64, maxDistance int) []int {
	radius := int(math.Min(headDistanceMultiplier*float64(remainingDepth), float64(maxDistance)))
	if radius < 0 {
		radius = 0
	}

	ourHead := b.Snakes[ourIndex].Head()
	active := []int{ourIndex}
	for i, s := range b.Snakes {
		if i == ourIndex || !s.Alive() {
			continue
		}
		for _, seg := range s.Body {
			if seg.Manhattan(ourHead) <= radius {
				active = append(active, i)
				break
			}
		}
	}
	return active
}

// Contains reports whether index is present in an active set produced by
// ActiveSet.
func Contains(active []int, index int) bool {
	for _, i := range active {
		if i == index {
			return true
		}
	}
	return false
}
