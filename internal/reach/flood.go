// Package reach implements the single-source and adversarial flood-fill
// kernels of spec.md §4.B, grounded on the teacher's GenerateVoronoiFlood
// (voronoi.go) but generalized to a time-varying obstacle model that
// accounts for tail retreat, per spec.md §9's "cyclic obstacle reasoning"
// note.
package reach

import (
	"container/list"
	"sort"

	"github.com/brensch/snakecore/internal/game"
)

// obstacleMap maps a body segment to the turn at which it becomes free,
// because the owning snake's tail retreats past it. A segment at index k
// from the tail (0 = tail itself) unblocks after k turns have elapsed,
// since the tail moves once per turn.
func obstacleMap(b game.Board) map[game.Coord]int {
	obstacles := make(map[game.Coord]int)
	for _, s := range b.Snakes {
		if !s.Alive() {
			continue
		}
		n := len(s.Body)
		for idx, cell := range s.Body {
			turnsUntilFree := n - 1 - idx
			if existing, ok := obstacles[cell]; !ok || turnsUntilFree < existing {
				obstacles[cell] = turnsUntilFree
			}
		}
	}
	return obstacles
}

type floodNode struct {
	c     game.Coord
	depth int
}

// FloodFill performs a BFS from start counting the number of cells reachable
// given the board's time-varying obstacle map (spec.md §4.B). Start itself
// always counts: it is reachable at depth 0.
func FloodFill(b game.Board, start game.Coord) int {
	_, dist := floodFillWithDistances(b, start)
	return len(dist)
}

// FloodFillWithDistances is FloodFill, additionally returning the first
// turn at which each reached cell becomes reachable.
func FloodFillWithDistances(b game.Board, start game.Coord) map[game.Coord]int {
	_, dist := floodFillWithDistances(b, start)
	return dist
}

func floodFillWithDistances(b game.Board, start game.Coord) (int, map[game.Coord]int) {
	obstacles := obstacleMap(b)
	dist := map[game.Coord]int{start: 0}

	q := list.New()
	q.PushBack(floodNode{c: start, depth: 0})

	for q.Len() > 0 {
		front := q.Front()
		q.Remove(front)
		node := front.Value.(floodNode)

		for _, d := range game.AllDirections {
			next := game.Apply(node.c, d)
			if !b.InBounds(next) {
				continue
			}
			if _, seen := dist[next]; seen {
				continue
			}
			nextDepth := node.depth + 1
			if freeAt, blocked := obstacles[next]; blocked && freeAt >= nextDepth {
				continue
			}
			dist[next] = nextDepth
			q.PushBack(floodNode{c: next, depth: nextDepth})
		}
	}
	return len(dist), dist
}

type adversarialSource struct {
	index  int
	length int
}

// AdversarialFloodFill runs a simultaneous multi-source BFS from the heads
// of the snakes listed in active (or every living snake, if active is
// empty), per spec.md §4.B. Ties at a cell are resolved in favor of the
// longer snake; the result maps every cell reached by any source to the
// index of its owning snake.
func AdversarialFloodFill(b game.Board, active []int) map[game.Coord]int {
	sources := active
	if len(sources) == 0 {
		for i, s := range b.Snakes {
			if s.Alive() {
				sources = append(sources, i)
			}
		}
	}

	type cellState struct {
		owner int
		depth int
		length int
	}
	owned := make(map[game.Coord]cellState)

	type qItem struct {
		c      game.Coord
		owner  int
		depth  int
		length int
	}
	q := list.New()

	// Seed deterministically: longer snakes first, so ties at depth 0
	// (distinct heads can't collide, but this keeps the seed order stable
	// and matches the "stable by length descending" tie-break rule).
	var ordered []adversarialSource
	for _, i := range sources {
		if b.Snakes[i].Alive() {
			ordered = append(ordered, adversarialSource{index: i, length: b.Snakes[i].Length()})
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].length > ordered[j].length })

	for _, src := range ordered {
		head := b.Snakes[src.index].Head()
		if cur, ok := owned[head]; !ok || src.length > cur.length {
			owned[head] = cellState{owner: src.index, depth: 0, length: src.length}
		}
		q.PushBack(qItem{c: head, owner: src.index, depth: 0, length: src.length})
	}

	obstacles := obstacleMap(b)

	for q.Len() > 0 {
		front := q.Front()
		q.Remove(front)
		it := front.Value.(qItem)

		for _, d := range game.AllDirections {
			next := game.Apply(it.c, d)
			if !b.InBounds(next) {
				continue
			}
			nextDepth := it.depth + 1
			if freeAt, blocked := obstacles[next]; blocked && freeAt >= nextDepth {
				continue
			}

			cur, seen := owned[next]
			switch {
			case !seen:
				owned[next] = cellState{owner: it.owner, depth: nextDepth, length: it.length}
				q.PushBack(qItem{c: next, owner: it.owner, depth: nextDepth, length: it.length})
			case nextDepth < cur.depth:
				owned[next] = cellState{owner: it.owner, depth: nextDepth, length: it.length}
				q.PushBack(qItem{c: next, owner: it.owner, depth: nextDepth, length: it.length})
			case nextDepth == cur.depth && it.length > cur.length && cur.owner != it.owner:
				owned[next] = cellState{owner: it.owner, depth: nextDepth, length: it.length}
				q.PushBack(qItem{c: next, owner: it.owner, depth: nextDepth, length: it.length})
			}
		}
	}

	result := make(map[game.Coord]int, len(owned))
	for c, st := range owned {
		result[c] = st.owner
	}
	return result
}
