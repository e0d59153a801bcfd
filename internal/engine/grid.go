// Package engine implements the floor-grid placement algorithm: occupancy
// tracking, candidate scoring and selection, and region reservation.
package engine

import (
	"errors"
	"fmt"

	"roomscatter/internal/model"
)

// Sentinel errors returned by the engine.
var (
	// ErrOutOfBounds reports a cell query outside the grid extents. It
	// indicates a caller bug: placement code bounds-checks before touching
	// the grid.
	ErrOutOfBounds = errors.New("cell out of grid bounds")

	// ErrNoSpace reports that no anchor fits the requested footprint. This
	// is a normal outcome the caller is expected to handle.
	ErrNoSpace = errors.New("no space available")

	// ErrInvalidConfig reports degenerate input: non-positive grid extents,
	// tile scale, footprint dimensions, or a negative jitter bound.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Grid tracks cell occupancy for one room. Dimensions are fixed at
// construction and cells only ever transition from free to occupied; there
// is no way to clear a cell short of building a new grid.
type Grid struct {
	width     int
	depth     int
	tileScale float64
	occupied  []bool // row-major, index z*width+x
	used      int
}

// NewGrid creates an all-free grid of width x depth tiles.
func NewGrid(width, depth int, tileScale float64) (*Grid, error) {
	if width <= 0 || depth <= 0 {
		return nil, fmt.Errorf("%w: grid extents must be positive, got %dx%d", ErrInvalidConfig, width, depth)
	}
	if tileScale <= 0 {
		return nil, fmt.Errorf("%w: tile scale must be positive, got %g", ErrInvalidConfig, tileScale)
	}
	return &Grid{
		width:     width,
		depth:     depth,
		tileScale: tileScale,
		occupied:  make([]bool, width*depth),
	}, nil
}

// Width returns the grid extent on the X axis, in tiles.
func (g *Grid) Width() int { return g.width }

// Depth returns the grid extent on the Z axis, in tiles.
func (g *Grid) Depth() int { return g.depth }

// TileScale returns the grid-units-per-world-unit conversion factor.
func (g *Grid) TileScale() float64 { return g.tileScale }

// UsedCells returns the number of occupied cells.
func (g *Grid) UsedCells() int { return g.used }

// FreeCells returns the number of unoccupied cells.
func (g *Grid) FreeCells() int { return g.width*g.depth - g.used }

// IsFree reports whether the cell is unoccupied. Returns ErrOutOfBounds for
// coordinates outside the grid; callers are expected to pre-clip.
func (g *Grid) IsFree(x, z int) (bool, error) {
	if x < 0 || x >= g.width || z < 0 || z >= g.depth {
		return false, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, x, z, g.width, g.depth)
	}
	return !g.occupied[z*g.width+x], nil
}

// free is the unchecked fast path for pre-clipped coordinates.
func (g *Grid) free(x, z int) bool {
	return !g.occupied[z*g.width+x]
}

// Reserve marks every cell in the half-open rectangle
// [anchor.X, anchor.X+cellsW) x [anchor.Z, anchor.Z+cellsD) as occupied.
//
// Reserve performs no validation: the caller must already have verified,
// via Evaluate, that the rectangle lies within bounds and is entirely free.
// Calling it on unchecked input corrupts the occupancy state.
func (g *Grid) Reserve(anchor model.Anchor, cellsW, cellsD int) {
	for z := anchor.Z; z < anchor.Z+cellsD; z++ {
		for x := anchor.X; x < anchor.X+cellsW; x++ {
			idx := z*g.width + x
			if !g.occupied[idx] {
				g.occupied[idx] = true
				g.used++
			}
		}
	}
}

// Block pre-reserves a zone, clipping it to the grid extents. Used at setup
// time for architecture the scatter must avoid; zones may overlap.
func (g *Grid) Block(zone model.BlockedZone) {
	x0, z0 := max(zone.X, 0), max(zone.Z, 0)
	x1, z1 := min(zone.X+zone.Width, g.width), min(zone.Z+zone.Depth, g.depth)
	for z := z0; z < z1; z++ {
		for x := x0; x < x1; x++ {
			idx := z*g.width + x
			if !g.occupied[idx] {
				g.occupied[idx] = true
				g.used++
			}
		}
	}
}
