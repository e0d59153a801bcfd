package importer

import (
	"testing"

	"roomscatter/internal/model"
)

// ─── Rasterization Tests ───────────────────────────────────

func TestBoundsToZone_UnitScale(t *testing.T) {
	b := bounds{minX: 2, minZ: 3, maxX: 5, maxZ: 4}
	zone, ok := boundsToZone(b, 1.0)

	if !ok {
		t.Fatal("expected a valid zone")
	}
	want := model.BlockedZone{X: 2, Z: 3, Width: 3, Depth: 1}
	if zone != want {
		t.Errorf("expected %+v, got %+v", want, zone)
	}
}

func TestBoundsToZone_FractionalCoverage(t *testing.T) {
	// A box from 0.5 to 1.5 touches cells 0 and 1 on both axes.
	b := bounds{minX: 0.5, minZ: 0.5, maxX: 1.5, maxZ: 1.5}
	zone, ok := boundsToZone(b, 1.0)

	if !ok {
		t.Fatal("expected a valid zone")
	}
	want := model.BlockedZone{X: 0, Z: 0, Width: 2, Depth: 2}
	if zone != want {
		t.Errorf("expected %+v, got %+v", want, zone)
	}
}

func TestBoundsToZone_TileScale(t *testing.T) {
	// Two tiles per drawing unit: a 1x1 unit box covers a 2x2 cell zone.
	b := bounds{minX: 1, minZ: 1, maxX: 2, maxZ: 2}
	zone, ok := boundsToZone(b, 2.0)

	if !ok {
		t.Fatal("expected a valid zone")
	}
	want := model.BlockedZone{X: 2, Z: 2, Width: 2, Depth: 2}
	if zone != want {
		t.Errorf("expected %+v, got %+v", want, zone)
	}
}

func TestBoundsToZone_Degenerate(t *testing.T) {
	b := bounds{minX: 1, minZ: 1, maxX: 1, maxZ: 5}
	if _, ok := boundsToZone(b, 1.0); ok {
		t.Error("expected zero-width box to be rejected")
	}
}

// ─── Segment Chaining Tests ────────────────────────────────

func TestChainClosedLoops_Rectangle(t *testing.T) {
	segs := []dxfSegment{
		{x1: 0, z1: 0, x2: 4, z2: 0},
		{x1: 4, z1: 0, x2: 4, z2: 3},
		{x1: 4, z1: 3, x2: 0, z2: 3},
		{x1: 0, z1: 3, x2: 0, z2: 0},
	}

	boxes := chainClosedLoops(segs, 0.01)

	if len(boxes) != 1 {
		t.Fatalf("expected 1 closed loop, got %d", len(boxes))
	}
	b := boxes[0]
	if b.minX != 0 || b.minZ != 0 || b.maxX != 4 || b.maxZ != 3 {
		t.Errorf("unexpected bounds: %+v", b)
	}
}

func TestChainClosedLoops_ReversedSegments(t *testing.T) {
	// Segments given in arbitrary order and direction still form a loop.
	segs := []dxfSegment{
		{x1: 0, z1: 0, x2: 2, z2: 0},
		{x1: 0, z1: 2, x2: 0, z2: 0},
		{x1: 2, z1: 2, x2: 2, z2: 0},
		{x1: 0, z1: 2, x2: 2, z2: 2},
	}

	boxes := chainClosedLoops(segs, 0.01)

	if len(boxes) != 1 {
		t.Fatalf("expected 1 closed loop, got %d", len(boxes))
	}
}

func TestChainClosedLoops_OpenChainDiscarded(t *testing.T) {
	segs := []dxfSegment{
		{x1: 0, z1: 0, x2: 4, z2: 0},
		{x1: 4, z1: 0, x2: 4, z2: 3},
		{x1: 4, z1: 3, x2: 0, z2: 3},
	}

	boxes := chainClosedLoops(segs, 0.01)

	if len(boxes) != 0 {
		t.Errorf("expected open chain to be discarded, got %d loops", len(boxes))
	}
}

func TestChainClosedLoops_TwoSeparateLoops(t *testing.T) {
	segs := []dxfSegment{
		// First square.
		{x1: 0, z1: 0, x2: 1, z2: 0},
		{x1: 1, z1: 0, x2: 1, z2: 1},
		{x1: 1, z1: 1, x2: 0, z2: 1},
		{x1: 0, z1: 1, x2: 0, z2: 0},
		// Second square, offset.
		{x1: 5, z1: 5, x2: 7, z2: 5},
		{x1: 7, z1: 5, x2: 7, z2: 7},
		{x1: 7, z1: 7, x2: 5, z2: 7},
		{x1: 5, z1: 7, x2: 5, z2: 5},
	}

	boxes := chainClosedLoops(segs, 0.01)

	if len(boxes) != 2 {
		t.Fatalf("expected 2 closed loops, got %d", len(boxes))
	}
}

func TestChainClosedLoops_ToleranceJoinsNearEndpoints(t *testing.T) {
	segs := []dxfSegment{
		{x1: 0, z1: 0, x2: 2, z2: 0},
		{x1: 2.005, z1: 0, x2: 2, z2: 2},
		{x1: 2, z1: 2, x2: 0, z2: 2},
		{x1: 0, z1: 2, x2: 0.004, z2: 0},
	}

	boxes := chainClosedLoops(segs, 0.01)

	if len(boxes) != 1 {
		t.Fatalf("expected near-endpoints to chain into 1 loop, got %d", len(boxes))
	}
}

// ─── ImportBlockouts Tests ─────────────────────────────────

func TestImportBlockouts_FileNotFound(t *testing.T) {
	result := ImportBlockouts("/nonexistent/path/room.dxf", 1.0)

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportBlockouts_InvalidTileScale(t *testing.T) {
	result := ImportBlockouts("room.dxf", 0)

	if len(result.Errors) == 0 {
		t.Error("expected error for non-positive tile scale")
	}
	if len(result.Zones) != 0 {
		t.Errorf("expected no zones, got %d", len(result.Zones))
	}
}
