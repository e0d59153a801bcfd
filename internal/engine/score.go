package engine

import (
	"math/rand"

	"roomscatter/internal/model"
)

// Evaluation is the outcome of scoring one candidate anchor. Score is only
// meaningful when Valid is true.
type Evaluation struct {
	Valid bool
	Score float64
}

// Evaluate scores placing a footprint with its lower corner at the given
// anchor. It returns an invalid evaluation when the footprint overflows the
// grid or overlaps an occupied cell; otherwise it accumulates, for every
// cell under the footprint, a contribution per axis:
//
//   - the wall bonus when the cell sits on the grid border for that axis,
//   - else the cluster bonus when the adjacent cell on that axis is occupied,
//   - else the spread bonus.
//
// Valid scores get a final uniform perturbation from [-jitter, +jitter].
func Evaluate(g *Grid, anchor model.Anchor, fp model.Footprint, w model.ScoringWeights, rng *rand.Rand) Evaluation {
	cellsW := fp.CellsWide()
	cellsD := fp.CellsDeep()

	if anchor.X < 0 || anchor.Z < 0 || anchor.X+cellsW > g.width || anchor.Z+cellsD > g.depth {
		return Evaluation{}
	}

	var score float64
	for z := anchor.Z; z < anchor.Z+cellsD; z++ {
		for x := anchor.X; x < anchor.X+cellsW; x++ {
			if !g.free(x, z) {
				return Evaluation{}
			}

			switch {
			case x == 0 || x == g.width-1:
				score += w.WallBonus
			case !g.free(x-1, z) || !g.free(x+1, z):
				score += w.ClusterBonus
			default:
				score += w.SpreadBonus
			}

			switch {
			case z == 0 || z == g.depth-1:
				score += w.WallBonus
			case !g.free(x, z-1) || !g.free(x, z+1):
				score += w.ClusterBonus
			default:
				score += w.SpreadBonus
			}
		}
	}

	score += (rng.Float64()*2 - 1) * w.Jitter

	return Evaluation{Valid: true, Score: score}
}
