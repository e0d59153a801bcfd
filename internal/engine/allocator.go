package engine

import (
	"fmt"
	"math/rand"
	"sync"

	"roomscatter/internal/model"
)

// PlacementResult is what one successful Place call produces: the reserved
// grid anchor and the world-space point at the footprint's center.
type PlacementResult struct {
	Anchor model.Anchor
	World  model.Point2D
	Score  float64
}

// Allocator orchestrates placements against one grid. It is the sole entry
// point for reserving space: scoring reads the whole grid and reservation
// writes to it, so every Place call runs under a mutex to keep the two
// atomic when callers share an allocator across goroutines.
type Allocator struct {
	mu     sync.Mutex
	grid   *Grid
	origin model.Point2D
	rng    *rand.Rand
}

// NewAllocator creates an allocator over the given grid with its own random
// source. The same seed against the same grid state reproduces layouts
// bit-for-bit.
func NewAllocator(grid *Grid, origin model.Point2D, seed int64) *Allocator {
	return NewAllocatorWithRand(grid, origin, rand.New(rand.NewSource(seed)))
}

// NewAllocatorWithRand creates an allocator sharing an existing random
// source, so several allocators can draw from one deterministic stream.
func NewAllocatorWithRand(grid *Grid, origin model.Point2D, rng *rand.Rand) *Allocator {
	return &Allocator{grid: grid, origin: origin, rng: rng}
}

// Grid returns the allocator's grid for read-only inspection.
func (a *Allocator) Grid() *Grid { return a.grid }

// Place finds the best-scoring free region for the footprint, reserves it,
// and returns the anchor plus its world-space coordinate. It returns
// ErrNoSpace, with the grid untouched, when nothing fits, and
// ErrInvalidConfig for degenerate footprints or a negative jitter bound.
func (a *Allocator) Place(fp model.Footprint, w model.ScoringWeights) (PlacementResult, error) {
	if fp.Width <= 0 || fp.Depth <= 0 {
		return PlacementResult{}, fmt.Errorf("%w: footprint extents must be positive, got %gx%g", ErrInvalidConfig, fp.Width, fp.Depth)
	}
	if w.Jitter < 0 {
		return PlacementResult{}, fmt.Errorf("%w: jitter must be non-negative, got %g", ErrInvalidConfig, w.Jitter)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	cand, ok := SelectBest(a.grid, fp, w, a.rng)
	if !ok {
		return PlacementResult{}, fmt.Errorf("%w: no anchor fits a %gx%g footprint", ErrNoSpace, fp.Width, fp.Depth)
	}

	a.grid.Reserve(cand.Anchor, fp.CellsWide(), fp.CellsDeep())

	return PlacementResult{
		Anchor: cand.Anchor,
		World:  a.worldPoint(cand.Anchor, fp),
		Score:  cand.Score,
	}, nil
}

// worldPoint centers the footprint on its reserved region and converts grid
// units to world units.
func (a *Allocator) worldPoint(anchor model.Anchor, fp model.Footprint) model.Point2D {
	return model.Point2D{
		X: a.origin.X + (float64(anchor.X)+fp.Width/2)/a.grid.tileScale,
		Z: a.origin.Z + (float64(anchor.Z)+fp.Depth/2)/a.grid.tileScale,
	}
}
