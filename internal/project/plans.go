package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"roomscatter/internal/model"
)

// SavePlan writes a plan to disk. The format is chosen by extension:
// .yaml/.yml files are written as YAML, everything else as indented JSON.
// An existing file at the same path is moved aside to a timestamped .bak
// before being overwritten.
func SavePlan(path string, plan model.Plan) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if err := backupExisting(path); err != nil {
		return err
	}

	var data []byte
	var err error
	if isYAMLPath(path) {
		data, err = yaml.Marshal(plan)
	} else {
		data, err = json.MarshalIndent(plan, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// LoadPlan reads a plan from disk, decoding by extension the same way
// SavePlan encodes.
func LoadPlan(path string) (model.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Plan{}, err
	}

	var plan model.Plan
	if isYAMLPath(path) {
		err = yaml.Unmarshal(data, &plan)
	} else {
		err = json.Unmarshal(data, &plan)
	}
	if err != nil {
		return model.Plan{}, fmt.Errorf("failed to parse plan file: %w", err)
	}

	if plan.Rooms == nil {
		plan.Rooms = []model.RoomSpec{}
	}
	if plan.Props == nil {
		plan.Props = []model.Prop{}
	}
	if plan.Name == "" {
		plan.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return plan, nil
}

// backupExisting moves a pre-existing file at path aside to a timestamped
// sibling, e.g. plan.json.20060102-150405.bak. A missing file is not an error.
func backupExisting(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	bak := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102-150405"))
	if err := os.Rename(path, bak); err != nil {
		return fmt.Errorf("failed to back up existing plan: %w", err)
	}
	return nil
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
