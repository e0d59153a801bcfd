package project

import (
	"os"
	"path/filepath"
	"testing"

	"roomscatter/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultTileScale = 2.0
	cfg.DefaultProfile = "Clustered"
	cfg.DefaultSeed = 99
	cfg.RecentPlans = []string{"/tmp/keep.json", "/tmp/tavern.yaml"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultTileScale != 2.0 {
		t.Errorf("expected DefaultTileScale=2.0, got %f", loaded.DefaultTileScale)
	}
	if loaded.DefaultProfile != "Clustered" {
		t.Errorf("expected DefaultProfile=Clustered, got %s", loaded.DefaultProfile)
	}
	if loaded.DefaultSeed != 99 {
		t.Errorf("expected DefaultSeed=99, got %d", loaded.DefaultSeed)
	}
	if len(loaded.RecentPlans) != 2 {
		t.Errorf("expected 2 recent plans, got %d", len(loaded.RecentPlans))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultProfile != defaults.DefaultProfile {
		t.Errorf("expected default profile %s, got %s", defaults.DefaultProfile, cfg.DefaultProfile)
	}
	if cfg.RecentPlans == nil {
		t.Error("expected RecentPlans to be non-nil")
	}
}

func TestLoadAppConfigCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("not json {"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for corrupt config file")
	}
}

func TestLoadAppConfigNilRecentPlans(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"default_profile": "Cozy"}`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentPlans == nil {
		t.Error("expected RecentPlans to be normalized to an empty slice")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "config.json")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file was not created: %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()
	if filepath.Base(path) != "config.json" {
		t.Errorf("expected config.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ".roomscatter" {
		t.Errorf("expected .roomscatter dir, got %s", filepath.Dir(path))
	}
}
