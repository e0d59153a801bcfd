package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomscatter/internal/model"
)

// cornerWeights is the wall-favoring configuration used throughout: walls
// worth 1, clusters 0.5, free space nothing, no jitter.
func cornerWeights() model.ScoringWeights {
	return model.ScoringWeights{WallBonus: 1, ClusterBonus: 0.5, SpreadBonus: 0, Jitter: 0}
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestEvaluate_EmptyGridScores(t *testing.T) {
	g, err := NewGrid(3, 3, 1.0)
	require.NoError(t, err)

	fp := model.Footprint{Width: 1, Depth: 1}
	rng := testRand()

	// On an empty 3x3 grid the four corners get the wall bonus on both
	// axes, edge midpoints on one, the center on neither.
	expected := map[model.Anchor]float64{
		{X: 0, Z: 0}: 2, {X: 2, Z: 0}: 2, {X: 0, Z: 2}: 2, {X: 2, Z: 2}: 2,
		{X: 1, Z: 0}: 1, {X: 0, Z: 1}: 1, {X: 2, Z: 1}: 1, {X: 1, Z: 2}: 1,
		{X: 1, Z: 1}: 0,
	}

	for anchor, want := range expected {
		ev := Evaluate(g, anchor, fp, cornerWeights(), rng)
		require.True(t, ev.Valid, "anchor %+v", anchor)
		assert.Equal(t, want, ev.Score, "anchor %+v", anchor)
	}
}

func TestEvaluate_ClusterBonusNextToOccupied(t *testing.T) {
	g, err := NewGrid(3, 3, 1.0)
	require.NoError(t, err)
	g.Reserve(model.Anchor{X: 0, Z: 0}, 1, 1)

	fp := model.Footprint{Width: 1, Depth: 1}
	rng := testRand()

	// (1,0): wall on z, cluster on x because (0,0) is occupied
	ev := Evaluate(g, model.Anchor{X: 1, Z: 0}, fp, cornerWeights(), rng)
	require.True(t, ev.Valid)
	assert.Equal(t, 1.5, ev.Score)

	// A free corner still outscores it
	ev = Evaluate(g, model.Anchor{X: 2, Z: 0}, fp, cornerWeights(), rng)
	require.True(t, ev.Valid)
	assert.Equal(t, 2.0, ev.Score)
}

func TestEvaluate_OverlapInvalid(t *testing.T) {
	g, err := NewGrid(3, 3, 1.0)
	require.NoError(t, err)
	g.Reserve(model.Anchor{X: 1, Z: 1}, 1, 1)

	rng := testRand()
	ev := Evaluate(g, model.Anchor{X: 0, Z: 1}, model.Footprint{Width: 2, Depth: 1}, cornerWeights(), rng)
	assert.False(t, ev.Valid)
}

func TestEvaluate_BoundsOverflowInvalid(t *testing.T) {
	g, err := NewGrid(3, 3, 1.0)
	require.NoError(t, err)
	rng := testRand()

	cases := []struct {
		name   string
		anchor model.Anchor
		fp     model.Footprint
	}{
		{"overflow x", model.Anchor{X: 2, Z: 0}, model.Footprint{Width: 2, Depth: 1}},
		{"overflow z", model.Anchor{X: 0, Z: 2}, model.Footprint{Width: 1, Depth: 2}},
		{"negative anchor", model.Anchor{X: -1, Z: 0}, model.Footprint{Width: 1, Depth: 1}},
		{"larger than grid", model.Anchor{X: 0, Z: 0}, model.Footprint{Width: 4, Depth: 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev := Evaluate(g, tc.anchor, tc.fp, cornerWeights(), rng)
			assert.False(t, ev.Valid)
		})
	}
}

func TestEvaluate_WholeFootprintScores(t *testing.T) {
	// Every cell under the footprint contributes, not just border cells: a
	// 2x1 footprint along the bottom wall of a 4x3 grid at (1,0) has both
	// cells on the z wall (1 each) and neither on an x wall (spread, 0).
	g, err := NewGrid(4, 3, 1.0)
	require.NoError(t, err)
	rng := testRand()

	ev := Evaluate(g, model.Anchor{X: 1, Z: 0}, model.Footprint{Width: 2, Depth: 1}, cornerWeights(), rng)
	require.True(t, ev.Valid)
	assert.Equal(t, 2.0, ev.Score)
}

func TestEvaluate_JitterBoundsScore(t *testing.T) {
	g, err := NewGrid(3, 3, 1.0)
	require.NoError(t, err)

	w := cornerWeights()
	w.Jitter = 0.4
	rng := testRand()
	fp := model.Footprint{Width: 1, Depth: 1}

	for i := 0; i < 200; i++ {
		ev := Evaluate(g, model.Anchor{X: 1, Z: 1}, fp, w, rng)
		require.True(t, ev.Valid)
		// Base score at the center is 0, so only jitter remains
		assert.GreaterOrEqual(t, ev.Score, -0.4)
		assert.LessOrEqual(t, ev.Score, 0.4)
	}
}

func TestFootprint_FractionalExtentsRoundUp(t *testing.T) {
	fp := model.Footprint{Width: 1.5, Depth: 1}
	assert.Equal(t, 2, fp.CellsWide())
	assert.Equal(t, 1, fp.CellsDeep())

	// A 1.5-tile footprint needs 2 cells, so it cannot anchor at the last
	// column of a 2-wide grid.
	g, err := NewGrid(2, 3, 1.0)
	require.NoError(t, err)
	rng := testRand()

	ev := Evaluate(g, model.Anchor{X: 1, Z: 0}, fp, cornerWeights(), rng)
	assert.False(t, ev.Valid)

	ev = Evaluate(g, model.Anchor{X: 0, Z: 0}, fp, cornerWeights(), rng)
	assert.True(t, ev.Valid)
}
