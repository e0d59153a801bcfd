package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"roomscatter/internal/model"
)

// Scatter places every prop instance of the plan across its rooms.
// Props are expanded by quantity and placed largest-footprint-first; an
// instance that finds no space in one room spills over to the next, and
// whatever fits nowhere is reported as unplaced. The plan's seed drives a
// single random stream across all rooms, so identical plans produce
// identical layouts.
func Scatter(plan model.Plan) (model.ScatterResult, error) {
	return ScatterWithProfiles(plan, nil)
}

// ScatterWithProfiles is Scatter with user-defined weight profiles available
// for props to reference alongside the built-ins.
func ScatterWithProfiles(plan model.Plan, custom []model.WeightProfile) (model.ScatterResult, error) {
	if len(plan.Rooms) == 0 {
		return model.ScatterResult{}, fmt.Errorf("%w: plan has no rooms", ErrInvalidConfig)
	}

	// Expand props by quantity into individual placement candidates
	var expanded []model.Prop
	for _, p := range plan.Props {
		for i := 0; i < p.Quantity; i++ {
			cp := p
			cp.Quantity = 1
			expanded = append(expanded, cp)
		}
	}

	// Largest footprints first: big pieces need contiguous space, small ones
	// slot into what remains. Stable sort keeps the plan order among equals
	// so results stay reproducible.
	sort.SliceStable(expanded, func(i, j int) bool {
		ai := expanded[i].Footprint.CellsWide() * expanded[i].Footprint.CellsDeep()
		aj := expanded[j].Footprint.CellsWide() * expanded[j].Footprint.CellsDeep()
		return ai > aj
	})

	rng := rand.New(rand.NewSource(plan.Settings.Seed))
	result := model.ScatterResult{}
	remaining := expanded

	for _, room := range plan.Rooms {
		grid, err := NewGrid(room.Width, room.Depth, room.TileScale)
		if err != nil {
			return model.ScatterResult{}, fmt.Errorf("room %q: %w", room.Label, err)
		}
		for _, bz := range room.Blocked {
			grid.Block(bz)
		}
		alloc := NewAllocatorWithRand(grid, room.Origin, rng)

		roomResult := model.RoomResult{Room: room}
		var skipped []model.Prop

		for _, prop := range remaining {
			weights := plan.ResolveWeights(prop, custom)
			placed, err := alloc.Place(prop.Footprint, weights)
			if errors.Is(err, ErrNoSpace) {
				skipped = append(skipped, prop)
				continue
			}
			if err != nil {
				return model.ScatterResult{}, fmt.Errorf("placing %q in %q: %w", prop.Label, room.Label, err)
			}
			roomResult.Placements = append(roomResult.Placements, model.Placement{
				Prop:   prop,
				Anchor: placed.Anchor,
				World:  placed.World,
				Score:  placed.Score,
			})
		}

		roomResult.FreeRegions = FreeRegions(grid)
		result.Rooms = append(result.Rooms, roomResult)
		remaining = skipped
	}

	result.Unplaced = remaining
	return result, nil
}
