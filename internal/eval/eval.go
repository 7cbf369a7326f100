// Package eval implements the static evaluator of spec.md §4.D: an
// eight-term weighted heuristic producing a per-snake utility from a leaf
// board. Grounded on the teacher's evaluateUtilities/evaluateBoard shape in
// maxn.go (there a stub delegating to an undefined evaluateBoard — this
// package supplies the actual heuristic body spec.md §4.D describes).
package eval

import (
	"math"

	"github.com/brensch/snakecore/internal/config"
	"github.com/brensch/snakecore/internal/game"
	"github.com/brensch/snakecore/internal/locality"
	"github.com/brensch/snakecore/internal/reach"
)

// Evaluate returns a ScoreTuple with one utility per snake in board order.
// active, if non-empty, restricts the space/territory/attack terms to
// snakes within the IDAPOS active set (spec.md §4.D "optimization-mandated
// semantics") — every other snake's space/territory/attack terms are
// zeroed (its health and head-collision terms are dropped too; only the
// wall, center and length terms of evaluateMinimal remain), which spec.md
// guarantees does not affect the correctness of the score returned for
// ourIndex, provided ourIndex is itself in active.
func Evaluate(b game.Board, ourIndex int, active []int, cfg config.Config) game.ScoreTuple {
	w := cfg.Eval
	scores := make(game.ScoreTuple, len(b.Snakes))

	// Territory is a single global adversarial flood fill, shared by every
	// snake's territory term (spec.md §4.D.3: "computed once per
	// evaluation").
	territory := reach.AdversarialFloodFill(b, active)
	cellsByOwner := make(map[int]int)
	for _, owner := range territory {
		cellsByOwner[owner]++
	}
	totalCells := b.Width * b.Height

	restrictActive := len(active) > 0

	for i, s := range b.Snakes {
		if !s.Alive() {
			scores[i] = w.DeadSnakeScore
			continue
		}
		if restrictActive && !locality.Contains(active, i) && i != ourIndex {
			scores[i] = evaluateMinimal(b, i, w)
			continue
		}
		scores[i] = evaluateSnake(b, i, w, territory, cellsByOwner, totalCells)
	}
	return scores
}

// evaluateMinimal computes only the terms cheap enough to not require
// per-snake reachability/territory work, for snakes elided by IDAPOS.
func evaluateMinimal(b game.Board, i int, w config.EvalWeights) float64 {
	s := b.Snakes[i]
	score := wallPenalty(b, s.Head(), w) + centerBias(b, s.Head(), w) + float64(s.Length())*w.WeightLength
	return score
}

func evaluateSnake(b game.Board, i int, w config.EvalWeights, territory map[game.Coord]int, cellsByOwner map[int]int, totalCells int) float64 {
	s := b.Snakes[i]
	head := s.Head()
	length := s.Length()

	var score float64

	// 1. Health / food seeking.
	score += w.WeightHealth * healthTerm(b, i, w)

	// 2. Space.
	dist := reach.FloodFillWithDistances(b, head)
	reachable := len(dist)
	spaceScore := spaceTerm(b, i, w, dist, reachable)
	score += w.WeightSpace * spaceScore

	// 3. Territory control.
	controlled := cellsByOwner[i]
	controlFraction := 0.0
	if totalCells > 0 {
		controlFraction = float64(controlled) / float64(totalCells)
	}
	score += w.WeightControl * controlFraction * w.TerritoryScaleFactor

	// 4. Attack.
	score += w.WeightAttack * attackTerm(b, i, w)

	// 5. Head-to-head risk.
	score += headToHeadRiskTerm(b, i, w)

	// 6. Wall penalty.
	score += wallPenalty(b, head, w)

	// 7. Center bias.
	score += centerBias(b, head, w)

	// 8. Length bonus.
	score += float64(length) * w.WeightLength

	return score
}

func healthTerm(b game.Board, i int, w config.EvalWeights) float64 {
	s := b.Snakes[i]
	d := nearestFoodDistance(b, s.Head())
	if d < 0 {
		return 0
	}
	length := s.Length()

	lengthMult := w.LengthMultiplierMin + (w.LengthMultiplierMax-w.LengthMultiplierMin)*float64(length)/20.0
	if lengthMult > w.LengthMultiplierMax {
		lengthMult = w.LengthMultiplierMax
	}
	if lengthMult < w.LengthMultiplierMin {
		lengthMult = w.LengthMultiplierMin
	}

	urgency := (float64(100-s.Health) / 100.0) * lengthMult
	score := -float64(d) * urgency

	if w.StarvationBufferDivisor > 0 && s.Health <= d+length/w.StarvationBufferDivisor {
		score -= w.StarvationPenalty
	}

	for j, other := range b.Snakes {
		if j == i || !other.Alive() {
			continue
		}
		if other.Head().Manhattan(s.Head()) <= w.HealthThreatDistance && other.Health > s.Health {
			gap := float64(other.Health - s.Health)
			mult := 1 + gap/50.0
			if mult > 3 {
				mult = 3
			}
			score = -float64(d) * urgency * mult
		}
	}
	return score
}

func nearestFoodDistance(b game.Board, head game.Coord) int {
	best := -1
	for _, f := range b.Food {
		d := f.Manhattan(head)
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

func spaceTerm(b game.Board, i int, w config.EvalWeights, dist map[game.Coord]int, reachable int) float64 {
	s := b.Snakes[i]
	length := s.Length()
	var score float64

	needed := length + w.SafetyMargin
	if reachable < needed {
		score -= float64(needed-reachable) * w.ShortagePenalty
	}

	nearbyRadius := length
	if w.NearbyThreshold < nearbyRadius {
		nearbyRadius = w.NearbyThreshold
	}
	nearby := 0
	for _, d := range dist {
		if d <= nearbyRadius {
			nearby++
		}
	}
	fraction := 0.0
	if reachable > 0 {
		fraction = float64(nearby) / float64(reachable)
	}
	switch {
	case fraction >= w.ModerateEntrapmentFraction:
		score -= w.SevereEntrapmentPenalty * fraction
	case fraction >= w.SevereEntrapmentFraction:
		score -= w.ModerateEntrapmentPenalty * fraction
	}

	for j, other := range b.Snakes {
		if j == i || !other.Alive() {
			continue
		}
		d := other.Head().Manhattan(s.Head())
		if d <= w.AdversarialEntrapmentDistance && other.Length() >= length {
			closeness := float64(w.AdversarialEntrapmentDistance-d+1) / float64(w.AdversarialEntrapmentDistance+1)
			score -= w.AdversarialEntrapmentPenalty * closeness
		}
	}

	return score
}

func attackTerm(b game.Board, i int, w config.EvalWeights) float64 {
	s := b.Snakes[i]
	var score float64
	for j, other := range b.Snakes {
		if j == i || !other.Alive() {
			continue
		}
		d := other.Head().Manhattan(s.Head())
		if s.Length() > other.Length() && d <= w.AttackHeadToHeadDistance {
			score += w.AttackHeadToHeadBonus
		}
		otherReach := reach.FloodFill(b, other.Head())
		if otherReach < other.Length()+w.AttackTrapMargin {
			score += w.AttackTrapBonus
		}
	}
	return score
}

func headToHeadRiskTerm(b game.Board, i int, w config.EvalWeights) float64 {
	s := b.Snakes[i]
	head := s.Head()
	for j, other := range b.Snakes {
		if j == i || !other.Alive() {
			continue
		}
		if other.Length() < s.Length() {
			continue
		}
		for _, d := range game.AllDirections {
			if game.Apply(other.Head(), d) == head {
				return -w.HeadCollisionPenalty
			}
		}
	}
	return 0
}

func wallPenalty(b game.Board, head game.Coord, w config.EvalWeights) float64 {
	left := head.X
	right := b.Width - 1 - head.X
	bottom := head.Y
	top := b.Height - 1 - head.Y
	dWall := min4(left, right, bottom, top)
	if dWall >= w.WallSafeDistance {
		return 0
	}
	return -w.WallBasePenalty / float64(dWall+1)
}

func centerBias(b game.Board, head game.Coord, w config.EvalWeights) float64 {
	return 100 - float64(head.Manhattan(b.Center()))*w.CenterMultiplier
}

func min4(a, b, c, d int) int {
	m := math.MaxInt32
	for _, v := range []int{a, b, c, d} {
		if v < m {
			m = v
		}
	}
	return m
}
