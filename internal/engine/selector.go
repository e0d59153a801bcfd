package engine

import (
	"math/rand"

	"roomscatter/internal/model"
)

// Candidate is one valid anchor with its score.
type Candidate struct {
	Anchor model.Anchor
	Score  float64
}

// SelectBest enumerates every anchor on the grid, scores each through
// Evaluate, and returns the highest-scoring valid candidate. When several
// candidates share the exact maximum score, one is chosen uniformly at
// random: with zero jitter ties are common, and always taking the first
// would bias layouts toward the grid's low corner.
//
// The second return value is false when no anchor fits the footprint.
func SelectBest(g *Grid, fp model.Footprint, w model.ScoringWeights, rng *rand.Rand) (Candidate, bool) {
	var (
		best      []Candidate
		bestScore float64
	)

	for z := 0; z < g.depth; z++ {
		for x := 0; x < g.width; x++ {
			ev := Evaluate(g, model.Anchor{X: x, Z: z}, fp, w, rng)
			if !ev.Valid {
				continue
			}
			switch {
			case len(best) == 0 || ev.Score > bestScore:
				bestScore = ev.Score
				best = append(best[:0], Candidate{Anchor: model.Anchor{X: x, Z: z}, Score: ev.Score})
			case ev.Score == bestScore:
				best = append(best, Candidate{Anchor: model.Anchor{X: x, Z: z}, Score: ev.Score})
			}
		}
	}

	if len(best) == 0 {
		return Candidate{}, false
	}
	return best[rng.Intn(len(best))], true
}
