package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new plans
	DefaultTileScale float64 `json:"default_tile_scale"`
	DefaultProfile   string  `json:"default_profile"`
	DefaultSeed      int64   `json:"default_seed"`

	// Application preferences
	RecentPlans []string `json:"recent_plans"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultTileScale: 1.0,
		DefaultProfile:   defaults.DefaultProfile,
		DefaultSeed:      defaults.Seed,
		RecentPlans:      []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a
// ScatterSettings struct. Used when creating a new plan so it inherits the
// user's saved defaults.
func (c AppConfig) ApplyToSettings(s *ScatterSettings) {
	s.DefaultProfile = c.DefaultProfile
	s.Seed = c.DefaultSeed
}
