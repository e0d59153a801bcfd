package model

import "strings"

// WeightProfile is a named, reusable scoring configuration.
type WeightProfile struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Weights     ScoringWeights `json:"weights" yaml:"weights"`
}

// Built-in weight profiles.
var WeightProfiles = []WeightProfile{
	{
		Name:        "Cozy",
		Description: "Furniture hugs the walls, lightly attracted to existing pieces",
		Weights: ScoringWeights{
			WallBonus:    1.0,
			ClusterBonus: 0.5,
			SpreadBonus:  0.0,
			Jitter:       0.25,
		},
	},
	{
		Name:        "Clustered",
		Description: "Objects pile up against whatever is already placed",
		Weights: ScoringWeights{
			WallBonus:    0.2,
			ClusterBonus: 1.0,
			SpreadBonus:  0.0,
			Jitter:       0.25,
		},
	},
	{
		Name:        "Chaotic",
		Description: "Pure jitter, no positional preference",
		Weights: ScoringWeights{
			WallBonus:    0.0,
			ClusterBonus: 0.0,
			SpreadBonus:  0.0,
			Jitter:       1.0,
		},
	},
	{
		Name:        "Scattered",
		Description: "Even spacing, avoids walls and neighbors",
		Weights: ScoringWeights{
			WallBonus:    0.0,
			ClusterBonus: -0.5,
			SpreadBonus:  1.0,
			Jitter:       0.25,
		},
	},
}

// GetWeightProfile returns a built-in profile by name, or the Scattered
// profile if not found.
func GetWeightProfile(name string) WeightProfile {
	for _, p := range WeightProfiles {
		if p.Name == name {
			return p
		}
	}
	return WeightProfiles[len(WeightProfiles)-1] // Return Scattered (last one)
}

// FindWeightProfile looks up a built-in profile by name, case-insensitively.
func FindWeightProfile(name string) (WeightProfile, bool) {
	for _, p := range WeightProfiles {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return WeightProfile{}, false
}

// ProfileNames returns a list of all built-in profile names.
func ProfileNames() []string {
	var names []string
	for _, p := range WeightProfiles {
		names = append(names, p.Name)
	}
	return names
}
