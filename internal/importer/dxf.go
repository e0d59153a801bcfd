package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"roomscatter/internal/model"
)

// BlockoutResult holds blocked zones parsed from a DXF drawing, plus
// per-shape errors and warnings.
type BlockoutResult struct {
	Zones    []model.BlockedZone
	Errors   []string
	Warnings []string
}

// bounds is an axis-aligned box in drawing units. DXF Y maps to grid Z.
type bounds struct {
	minX, minZ float64
	maxX, maxZ float64
}

func newBounds() bounds {
	return bounds{
		minX: math.Inf(1), minZ: math.Inf(1),
		maxX: math.Inf(-1), maxZ: math.Inf(-1),
	}
}

func (b *bounds) extend(x, z float64) {
	b.minX = math.Min(b.minX, x)
	b.minZ = math.Min(b.minZ, z)
	b.maxX = math.Max(b.maxX, x)
	b.maxZ = math.Max(b.maxZ, z)
}

func (b bounds) area() float64 {
	return (b.maxX - b.minX) * (b.maxZ - b.minZ)
}

// dxfSegment is a line segment used to chain loose LINE and ARC
// entities into closed loops.
type dxfSegment struct {
	x1, z1 float64
	x2, z2 float64
}

// ImportBlockouts reads a DXF floor drawing and converts each closed
// shape (LWPOLYLINE, CIRCLE, or a chain of connected LINEs/ARCs) into a
// BlockedZone covering the cells of the shape's bounding box. Drawing
// coordinates are room-local world units; tileScale converts them to
// grid cells.
func ImportBlockouts(path string, tileScale float64) BlockoutResult {
	result := BlockoutResult{}

	if tileScale <= 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Tile scale must be positive, got %g", tileScale))
		return result
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var boxes []bounds
	var segments []dxfSegment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if len(e.Vertices) < 3 {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
				continue
			}
			b := newBounds()
			for _, v := range e.Vertices {
				b.extend(v[0], v[1])
			}
			boxes = append(boxes, b)

		case *entity.Circle:
			b := newBounds()
			b.extend(e.Center[0]-e.Radius, e.Center[1]-e.Radius)
			b.extend(e.Center[0]+e.Radius, e.Center[1]+e.Radius)
			boxes = append(boxes, b)

		case *entity.Arc:
			segments = append(segments, arcToSegments(e, 16)...)

		case *entity.Line:
			segments = append(segments, dxfSegment{
				x1: e.Start[0], z1: e.Start[1],
				x2: e.End[0], z2: e.End[1],
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	boxes = append(boxes, chainClosedLoops(segments, 0.01)...)

	if len(boxes) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	// Largest shapes first for stable, predictable zone ordering.
	sort.Slice(boxes, func(i, j int) bool {
		return boxes[i].area() > boxes[j].area()
	})

	for _, b := range boxes {
		zone, ok := boundsToZone(b, tileScale)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f units)", b.maxX-b.minX, b.maxZ-b.minZ))
			continue
		}
		result.Zones = append(result.Zones, zone)
	}

	if len(result.Zones) == 0 {
		result.Errors = append(result.Errors, "All shapes in DXF file were degenerate")
	}

	return result
}

// boundsToZone rasterizes a drawing-unit box onto the grid. Any cell
// the box touches is blocked, so mins round down and maxes round up.
func boundsToZone(b bounds, tileScale float64) (model.BlockedZone, bool) {
	if b.maxX-b.minX < 1e-9 || b.maxZ-b.minZ < 1e-9 {
		return model.BlockedZone{}, false
	}

	x0 := int(math.Floor(b.minX * tileScale))
	z0 := int(math.Floor(b.minZ * tileScale))
	x1 := int(math.Ceil(b.maxX * tileScale))
	z1 := int(math.Ceil(b.maxZ * tileScale))

	return model.BlockedZone{
		X:     x0,
		Z:     z0,
		Width: x1 - x0,
		Depth: z1 - z0,
	}, true
}

// arcToSegments approximates a DXF ARC as connected line segments.
func arcToSegments(a *entity.Arc, numSegments int) []dxfSegment {
	cx, cz := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	segs := make([]dxfSegment, 0, numSegments)
	px := cx + r*math.Cos(startRad)
	pz := cz + r*math.Sin(startRad)
	for i := 1; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		x := cx + r*math.Cos(angle)
		z := cz + r*math.Sin(angle)
		segs = append(segs, dxfSegment{x1: px, z1: pz, x2: x, z2: z})
		px, pz = x, z
	}
	return segs
}

// chainClosedLoops walks loose segments, joining endpoints within
// tolerance, and returns the bounding box of each closed loop found.
// Open chains are discarded.
func chainClosedLoops(segs []dxfSegment, tolerance float64) []bounds {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var boxes []bounds

	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true

		b := newBounds()
		b.extend(segs[start].x1, segs[start].z1)
		b.extend(segs[start].x2, segs[start].z2)

		firstX, firstZ := segs[start].x1, segs[start].z1
		tailX, tailZ := segs[start].x2, segs[start].z2
		count := 1

		for {
			extended := false
			for i, seg := range segs {
				if used[i] {
					continue
				}
				switch {
				case near(tailX, tailZ, seg.x1, seg.z1, tolerance):
					tailX, tailZ = seg.x2, seg.z2
				case near(tailX, tailZ, seg.x2, seg.z2, tolerance):
					tailX, tailZ = seg.x1, seg.z1
				default:
					continue
				}
				used[i] = true
				b.extend(seg.x1, seg.z1)
				b.extend(seg.x2, seg.z2)
				count++
				extended = true
				break
			}
			if !extended {
				break
			}
		}

		if count >= 3 && near(tailX, tailZ, firstX, firstZ, tolerance) {
			boxes = append(boxes, b)
		}
	}

	return boxes
}

func near(ax, az, bx, bz, tolerance float64) bool {
	dx := ax - bx
	dz := az - bz
	return math.Sqrt(dx*dx+dz*dz) <= tolerance
}
