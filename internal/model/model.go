package model

import (
	"math"

	"github.com/google/uuid"
)

// Point2D represents a world-space coordinate on the floor plane.
type Point2D struct {
	X float64 `json:"x" yaml:"x"`
	Z float64 `json:"z" yaml:"z"`
}

// Anchor is the grid cell designated as the lower corner of a placed footprint.
type Anchor struct {
	X int `json:"x" yaml:"x"`
	Z int `json:"z" yaml:"z"`
}

// Footprint is the width x depth extent, in grid units, of an object to place.
// Extents may be fractional; a fractional extent occupies the next whole
// number of cells on that axis (1.5 tiles -> 2 cells).
type Footprint struct {
	Width float64 `json:"width" yaml:"width"`
	Depth float64 `json:"depth" yaml:"depth"`
}

// CellsWide returns the number of grid cells the footprint spans on the X axis.
func (f Footprint) CellsWide() int {
	return int(math.Ceil(f.Width))
}

// CellsDeep returns the number of grid cells the footprint spans on the Z axis.
func (f Footprint) CellsDeep() int {
	return int(math.Ceil(f.Depth))
}

// ScoringWeights biases candidate selection during placement.
// WallBonus rewards cells on the grid border, ClusterBonus rewards cells
// adjacent to occupied cells, SpreadBonus rewards cells with free neighbors.
// Jitter bounds a symmetric random perturbation added to every valid score.
type ScoringWeights struct {
	WallBonus    float64 `json:"wall_bonus" yaml:"wall_bonus"`
	ClusterBonus float64 `json:"cluster_bonus" yaml:"cluster_bonus"`
	SpreadBonus  float64 `json:"spread_bonus" yaml:"spread_bonus"`
	Jitter       float64 `json:"jitter" yaml:"jitter"`
}

// Prop represents one kind of object to place, with a quantity.
type Prop struct {
	ID        string    `json:"id" yaml:"id"`
	Label     string    `json:"label" yaml:"label"`
	Footprint Footprint `json:"footprint" yaml:"footprint"`
	Quantity  int       `json:"quantity" yaml:"quantity"`
	Profile   string    `json:"profile,omitempty" yaml:"profile,omitempty"` // Weight profile name; empty = plan default
}

func NewProp(label string, width, depth float64, qty int) Prop {
	return Prop{
		ID:        uuid.New().String()[:8],
		Label:     label,
		Footprint: Footprint{Width: width, Depth: depth},
		Quantity:  qty,
	}
}

// BlockedZone is a rectangle of cells reserved before any prop is placed,
// used for architecture the scatter must avoid (pillars, door clearances).
type BlockedZone struct {
	X     int `json:"x" yaml:"x"`
	Z     int `json:"z" yaml:"z"`
	Width int `json:"width" yaml:"width"`
	Depth int `json:"depth" yaml:"depth"`
}

// Cells returns the number of grid cells the zone covers when clipped to a
// width x depth grid.
func (bz BlockedZone) Cells(width, depth int) int {
	x0, z0 := max(bz.X, 0), max(bz.Z, 0)
	x1, z1 := min(bz.X+bz.Width, width), min(bz.Z+bz.Depth, depth)
	if x1 <= x0 || z1 <= z0 {
		return 0
	}
	return (x1 - x0) * (z1 - z0)
}

// RoomSpec describes one room to fill: tile dimensions, the conversion
// factor between grid and world units, and the world origin of cell (0,0).
type RoomSpec struct {
	ID        string        `json:"id" yaml:"id"`
	Label     string        `json:"label" yaml:"label"`
	Width     int           `json:"width" yaml:"width"`           // tiles
	Depth     int           `json:"depth" yaml:"depth"`           // tiles
	TileScale float64       `json:"tile_scale" yaml:"tile_scale"` // grid units per world unit
	Origin    Point2D       `json:"origin" yaml:"origin"`
	Blocked   []BlockedZone `json:"blocked,omitempty" yaml:"blocked,omitempty"`
}

func NewRoomSpec(label string, width, depth int, tileScale float64) RoomSpec {
	return RoomSpec{
		ID:        uuid.New().String()[:8],
		Label:     label,
		Width:     width,
		Depth:     depth,
		TileScale: tileScale,
	}
}

// Placement represents a single prop instance placed in a room.
type Placement struct {
	Prop   Prop    `json:"prop" yaml:"prop"`
	Anchor Anchor  `json:"anchor" yaml:"anchor"`
	World  Point2D `json:"world" yaml:"world"`
	Score  float64 `json:"score" yaml:"score"`
}

// Cells returns the number of grid cells the placement occupies.
func (p Placement) Cells() int {
	return p.Prop.Footprint.CellsWide() * p.Prop.Footprint.CellsDeep()
}

// FreeRegion is a maximal rectangle of unoccupied cells remaining after a
// scatter, reported so a caller can judge what still fits.
type FreeRegion struct {
	X     int `json:"x" yaml:"x"`
	Z     int `json:"z" yaml:"z"`
	Width int `json:"width" yaml:"width"`
	Depth int `json:"depth" yaml:"depth"`
}

// Area returns the region's size in cells.
func (fr FreeRegion) Area() int {
	return fr.Width * fr.Depth
}

// RoomResult represents one room with its placed props.
type RoomResult struct {
	Room        RoomSpec     `json:"room" yaml:"room"`
	Placements  []Placement  `json:"placements" yaml:"placements"`
	FreeRegions []FreeRegion `json:"free_regions,omitempty" yaml:"free_regions,omitempty"`
}

// UsedCells returns the total number of cells occupied by placed props.
func (rr RoomResult) UsedCells() int {
	var total int
	for _, p := range rr.Placements {
		total += p.Cells()
	}
	return total
}

// BlockedCells returns the number of cells pre-reserved by blocked zones.
func (rr RoomResult) BlockedCells() int {
	var total int
	for _, bz := range rr.Room.Blocked {
		total += bz.Cells(rr.Room.Width, rr.Room.Depth)
	}
	return total
}

// TotalCells returns the room's grid size in cells.
func (rr RoomResult) TotalCells() int {
	return rr.Room.Width * rr.Room.Depth
}

// Density returns the percentage of cells occupied by placed props.
func (rr RoomResult) Density() float64 {
	tc := rr.TotalCells()
	if tc == 0 {
		return 0
	}
	return float64(rr.UsedCells()) / float64(tc) * 100.0
}

// ScatterResult holds the full solution across all rooms.
type ScatterResult struct {
	Rooms    []RoomResult `json:"rooms" yaml:"rooms"`
	Unplaced []Prop       `json:"unplaced,omitempty" yaml:"unplaced,omitempty"`
}

// PlacedCount returns the total number of placed prop instances.
func (sr ScatterResult) PlacedCount() int {
	var total int
	for _, r := range sr.Rooms {
		total += len(r.Placements)
	}
	return total
}

// TotalDensity returns the overall cell occupancy percentage across rooms.
func (sr ScatterResult) TotalDensity() float64 {
	var used, total int
	for _, r := range sr.Rooms {
		used += r.UsedCells()
		total += r.TotalCells()
	}
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100.0
}

// ScatterSettings holds per-plan placement configuration.
type ScatterSettings struct {
	DefaultProfile string `json:"default_profile" yaml:"default_profile"` // Weight profile for props without one
	Seed           int64  `json:"seed" yaml:"seed"`                       // Random source seed; same seed, same layout
}

func DefaultSettings() ScatterSettings {
	return ScatterSettings{
		DefaultProfile: "Scattered",
		Seed:           1,
	}
}

// Plan ties everything together for save/load.
type Plan struct {
	Name     string          `json:"name" yaml:"name"`
	Rooms    []RoomSpec      `json:"rooms" yaml:"rooms"`
	Props    []Prop          `json:"props" yaml:"props"`
	Settings ScatterSettings `json:"settings" yaml:"settings"`
	Result   *ScatterResult  `json:"result,omitempty" yaml:"result,omitempty"`
}

func NewPlan() Plan {
	return Plan{
		Name:     "Untitled",
		Rooms:    []RoomSpec{},
		Props:    []Prop{},
		Settings: DefaultSettings(),
	}
}

// ResolveWeights returns the scoring weights for a prop, falling back to the
// plan's default profile when the prop names none. Custom profiles take
// precedence over built-ins of the same name.
func (pl Plan) ResolveWeights(p Prop, custom []WeightProfile) ScoringWeights {
	name := p.Profile
	if name == "" {
		name = pl.Settings.DefaultProfile
	}
	for _, wp := range custom {
		if wp.Name == name {
			return wp.Weights
		}
	}
	return GetWeightProfile(name).Weights
}
