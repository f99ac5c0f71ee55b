package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new generation requests
	DefaultRoom             RoomConfig `json:"default_room"`
	DefaultStrategy         Strategy   `json:"default_strategy"`
	DefaultClearance        float64    `json:"default_clearance"`
	DefaultAnywhereAttempts int        `json:"default_anywhere_attempts"`
	DefaultAttemptBudget    int        `json:"default_attempt_budget"`
	DefaultCount            int        `json:"default_count"` // Pieces to select when no ids are given

	// Application preferences
	CatalogPath   string   `json:"catalog_path"` // CSV/XLSX catalog; empty = built-in
	RecentLayouts []string `json:"recent_layouts"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultRoom:             DefaultRoomConfig(),
		DefaultStrategy:         defaults.Strategy,
		DefaultClearance:        defaults.Clearance,
		DefaultAnywhereAttempts: defaults.AnywhereAttempts,
		DefaultAttemptBudget:    defaults.AttemptBudget,
		DefaultCount:            6,
		RecentLayouts:           []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a PlannerSettings struct.
func (c AppConfig) ApplyToSettings(s *PlannerSettings) {
	if c.DefaultStrategy != "" {
		s.Strategy = c.DefaultStrategy
	}
	s.Clearance = c.DefaultClearance
	s.AnywhereAttempts = c.DefaultAnywhereAttempts
	s.AttemptBudget = c.DefaultAttemptBudget
}
