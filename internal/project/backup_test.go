package project

import (
	"os"
	"path/filepath"
	"testing"

	"roomscatter/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultProfile = "Chaotic"
	cfg.RecentPlans = []string{"/tmp/keep.json"}

	profiles := sampleProfiles()

	templates := model.NewTemplateStore()
	templates.Add(model.NewPlanTemplate("Camp", "", nil, nil, model.DefaultSettings()))

	if err := ExportAllData(path, cfg, profiles, templates); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version == "" {
		t.Error("expected version to be set")
	}
	if backup.CreatedAt == "" {
		t.Error("expected created_at to be set")
	}
	if backup.Config.DefaultProfile != "Chaotic" {
		t.Errorf("expected profile 'Chaotic', got '%s'", backup.Config.DefaultProfile)
	}
	if len(backup.Profiles) != 2 {
		t.Errorf("expected 2 profiles, got %d", len(backup.Profiles))
	}
	if len(backup.Templates.Templates) != 1 {
		t.Errorf("expected 1 template, got %d", len(backup.Templates.Templates))
	}
}

func TestExportAllDataCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "backup.json")

	err := ExportAllData(path, model.DefaultAppConfig(), nil, model.NewTemplateStore())
	if err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("backup file was not created: %v", err)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData("/nonexistent/backup.json"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")
	if err := os.WriteFile(path, []byte(`{"config": {}}`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := ImportAllData(path); err == nil {
		t.Fatal("expected error for backup without version")
	}
}

func TestImportAllDataNormalizesNilSlices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")
	if err := os.WriteFile(path, []byte(`{"version": "1.0.0", "config": {}}`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentPlans == nil {
		t.Error("expected RecentPlans to be non-nil")
	}
	if backup.Profiles == nil {
		t.Error("expected Profiles to be non-nil")
	}
	if backup.Templates.Templates == nil {
		t.Error("expected Templates to be non-nil")
	}
}
