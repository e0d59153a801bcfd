package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"roomscatter/internal/model"
)

func TestExportManifest_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.pdf")

	plan, result := buildTestResult()

	if err := ExportManifest(path, plan, result); err != nil {
		t.Fatalf("ExportManifest returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportManifest_EmptyResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	plan := model.NewPlan()
	result := model.ScatterResult{}

	if err := ExportManifest(path, plan, result); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestCollectManifestEntries(t *testing.T) {
	plan, result := buildTestResult()

	entries := CollectManifestEntries(plan, result)

	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	first := entries[0]
	if first.PropLabel != "Table" {
		t.Errorf("expected 'Table', got '%s'", first.PropLabel)
	}
	if first.RoomIndex != 1 || first.RoomLabel != "Great Hall" {
		t.Errorf("unexpected room info: %d %s", first.RoomIndex, first.RoomLabel)
	}
	if first.AnchorX != 0 || first.AnchorZ != 0 {
		t.Errorf("unexpected anchor: (%d, %d)", first.AnchorX, first.AnchorZ)
	}
	if first.PlanName != "Tavern Night" || first.Seed != 42 {
		t.Errorf("unexpected plan info: %s seed %d", first.PlanName, first.Seed)
	}

	last := entries[3]
	if last.PropLabel != "Barrel" || last.RoomIndex != 2 {
		t.Errorf("unexpected last entry: %+v", last)
	}
}

func TestCollectManifestEntries_Empty(t *testing.T) {
	plan := model.NewPlan()
	entries := CollectManifestEntries(plan, model.ScatterResult{})
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestManifestEntry_JSONRoundTrip(t *testing.T) {
	entry := ManifestEntry{
		PropLabel: "Brazier",
		Width:     1, Depth: 1,
		RoomIndex: 2, RoomLabel: "Cellar",
		AnchorX: 3, AnchorZ: 1,
		WorldX: 3.5, WorldZ: 1.5,
		PlanName: "Keep", Seed: 7,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded ManifestEntry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded != entry {
		t.Errorf("round trip mismatch: %+v != %+v", decoded, entry)
	}
}
