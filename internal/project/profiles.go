package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"roomscatter/internal/model"
)

// DefaultProfilesPath returns the default file path for custom weight
// profiles, inside the application config directory.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom weight profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.WeightProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom weight profiles from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomProfiles(path string) ([]model.WeightProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.WeightProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.WeightProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ExportProfile exports a single profile to a JSON file for sharing.
func ExportProfile(path string, profile model.WeightProfile) error {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile imports a single profile from a JSON file.
func ImportProfile(path string) (model.WeightProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.WeightProfile{}, err
	}

	var profile model.WeightProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.WeightProfile{}, err
	}

	if profile.Name == "" {
		return model.WeightProfile{}, errors.New("imported profile has no name")
	}
	if profile.Weights.Jitter < 0 {
		return model.WeightProfile{}, errors.New("imported profile has negative jitter")
	}
	return profile, nil
}
