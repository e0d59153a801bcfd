package engine

import (
	"roomscatter/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.ScatterSettings
}

// ComparisonResult holds the scatter result and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.ScatterResult
	Placed        int
	UnplacedCount int
	Density       float64
}

// CompareScenarios runs the plan under each scenario and returns the results
// in scenario order, enabling side-by-side comparison of weight profiles and
// seeds.
func CompareScenarios(scenarios []ComparisonScenario, plan model.Plan) ([]ComparisonResult, error) {
	return CompareScenariosWithProfiles(scenarios, plan, nil)
}

// CompareScenariosWithProfiles is CompareScenarios with user-defined weight
// profiles in scope, so a prop referencing a custom profile scores the same
// way in every scenario as it does in a real run.
func CompareScenariosWithProfiles(scenarios []ComparisonScenario, plan model.Plan, custom []model.WeightProfile) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		run := plan
		run.Settings = scenario.Settings

		result, err := ScatterWithProfiles(run, custom)
		if err != nil {
			return nil, err
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			Placed:        result.PlacedCount(),
			UnplacedCount: len(result.Unplaced),
			Density:       result.TotalDensity(),
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates comparison scenarios from the current
// settings: the plan as-is, each alternative built-in profile, and a
// reseeded variant to show layout variance.
func BuildDefaultScenarios(base model.ScatterSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	for _, profile := range model.WeightProfiles {
		if profile.Name == base.DefaultProfile {
			continue
		}
		alt := base
		alt.DefaultProfile = profile.Name
		scenarios = append(scenarios, ComparisonScenario{
			Name:     profile.Name + " Profile",
			Settings: alt,
		})
	}

	reseeded := base
	reseeded.Seed = base.Seed + 1
	scenarios = append(scenarios, ComparisonScenario{
		Name:     "Alternate Seed",
		Settings: reseeded,
	})

	return scenarios
}
