package engine

import "roomscatter/internal/model"

// FreeRegions reports the free area of a grid as a set of disjoint
// rectangles, greedily carving out the largest remaining rectangle until
// every free cell is covered. The result is ordered largest-first and is
// purely diagnostic: it tells a caller what footprints could still fit.
func FreeRegions(g *Grid) []model.FreeRegion {
	claimed := make([]bool, g.width*g.depth)
	available := func(x, z int) bool {
		return g.free(x, z) && !claimed[z*g.width+x]
	}

	var regions []model.FreeRegion
	for {
		best := model.FreeRegion{}
		for z := 0; z < g.depth; z++ {
			for x := 0; x < g.width; x++ {
				if !available(x, z) {
					continue
				}
				// Widest run starting here, then extend downward while the
				// run holds, tracking the best width x depth seen.
				width := 0
				for x+width < g.width && available(x+width, z) {
					width++
				}
				for d := 1; ; d++ {
					if width*(g.depth-z) <= best.Area() {
						break // cannot beat best from this cell
					}
					if area := width * d; area > best.Area() {
						best = model.FreeRegion{X: x, Z: z, Width: width, Depth: d}
					}
					if z+d >= g.depth {
						break
					}
					// Narrow the run to what the next row supports
					next := 0
					for next < width && available(x+next, z+d) {
						next++
					}
					if next == 0 {
						break
					}
					width = next
				}
			}
		}

		if best.Area() == 0 {
			return regions
		}
		for z := best.Z; z < best.Z+best.Depth; z++ {
			for x := best.X; x < best.X+best.Width; x++ {
				claimed[z*g.width+x] = true
			}
		}
		regions = append(regions, best)
	}
}

// LargestFreeRegion returns the single biggest free rectangle, or a zero
// region when the grid is full.
func LargestFreeRegion(g *Grid) model.FreeRegion {
	regions := FreeRegions(g)
	if len(regions) == 0 {
		return model.FreeRegion{}
	}
	return regions[0]
}
