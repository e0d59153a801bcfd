package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomscatter/internal/model"
)

func TestFreeRegions_EmptyGridIsOneRegion(t *testing.T) {
	g, err := NewGrid(3, 4, 1.0)
	require.NoError(t, err)

	regions := FreeRegions(g)
	require.Len(t, regions, 1)
	assert.Equal(t, model.FreeRegion{X: 0, Z: 0, Width: 3, Depth: 4}, regions[0])
}

func TestFreeRegions_FullGridIsEmpty(t *testing.T) {
	g, err := NewGrid(2, 2, 1.0)
	require.NoError(t, err)
	g.Reserve(model.Anchor{}, 2, 2)

	assert.Empty(t, FreeRegions(g))
}

func TestFreeRegions_CoverAllFreeCellsDisjointly(t *testing.T) {
	g, err := NewGrid(5, 5, 1.0)
	require.NoError(t, err)
	g.Reserve(model.Anchor{X: 1, Z: 1}, 2, 2)
	g.Reserve(model.Anchor{X: 4, Z: 0}, 1, 3)

	regions := FreeRegions(g)
	covered := make(map[model.Anchor]bool)
	area := 0
	for _, r := range regions {
		area += r.Area()
		for z := r.Z; z < r.Z+r.Depth; z++ {
			for x := r.X; x < r.X+r.Width; x++ {
				cell := model.Anchor{X: x, Z: z}
				require.False(t, covered[cell], "cell %+v covered twice", cell)
				free, err := g.IsFree(x, z)
				require.NoError(t, err)
				require.True(t, free, "region covers occupied cell %+v", cell)
				covered[cell] = true
			}
		}
	}
	assert.Equal(t, g.FreeCells(), area)
}

func TestFreeRegions_LargestFirst(t *testing.T) {
	g, err := NewGrid(6, 3, 1.0)
	require.NoError(t, err)
	g.Reserve(model.Anchor{X: 4, Z: 0}, 1, 3)

	regions := FreeRegions(g)
	require.NotEmpty(t, regions)
	assert.Equal(t, model.FreeRegion{X: 0, Z: 0, Width: 4, Depth: 3}, regions[0])
	for i := 1; i < len(regions); i++ {
		assert.LessOrEqual(t, regions[i].Area(), regions[i-1].Area())
	}
}

func TestLargestFreeRegion(t *testing.T) {
	g, err := NewGrid(4, 4, 1.0)
	require.NoError(t, err)

	assert.Equal(t, 16, LargestFreeRegion(g).Area())

	g.Reserve(model.Anchor{}, 4, 4)
	assert.Equal(t, 0, LargestFreeRegion(g).Area())
}
