package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"roomscatter/internal/model"
)

// DefaultCatalogPath returns the default file path for the catalog,
// at ~/.roomscatter/catalog.json.
func DefaultCatalogPath() string {
	return filepath.Join(DefaultConfigDir(), "catalog.json")
}

// SaveCatalog writes the catalog to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveCatalog(path string, cat model.Catalog) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCatalog reads the catalog from the specified JSON file.
// If the file does not exist, it returns the default catalog and saves it.
func LoadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cat := model.DefaultCatalog()
			if saveErr := SaveCatalog(path, cat); saveErr != nil {
				return cat, saveErr
			}
			return cat, nil
		}
		return model.Catalog{}, err
	}
	var cat model.Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return model.Catalog{}, err
	}
	return cat, nil
}

// LoadOrCreateCatalog loads the catalog from the default path, creating
// it with default entries if missing.
func LoadOrCreateCatalog() (model.Catalog, string, error) {
	path := DefaultCatalogPath()
	cat, err := LoadCatalog(path)
	return cat, path, err
}

// ImportCatalog imports a catalog from a user-specified JSON file,
// merging it with the existing catalog. Duplicate IDs are skipped.
func ImportCatalog(path string, existing model.Catalog) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Catalog
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	propIDs := make(map[string]bool, len(existing.Props))
	for _, p := range existing.Props {
		propIDs[p.ID] = true
	}
	roomIDs := make(map[string]bool, len(existing.Rooms))
	for _, r := range existing.Rooms {
		roomIDs[r.ID] = true
	}

	for _, p := range imported.Props {
		if !propIDs[p.ID] {
			existing.Props = append(existing.Props, p)
			propIDs[p.ID] = true
		}
	}
	for _, r := range imported.Rooms {
		if !roomIDs[r.ID] {
			existing.Rooms = append(existing.Rooms, r)
			roomIDs[r.ID] = true
		}
	}

	return existing, nil
}
