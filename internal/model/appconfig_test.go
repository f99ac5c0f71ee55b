package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultClearance != defaults.Clearance {
		t.Errorf("Clearance mismatch: config=%f settings=%f", cfg.DefaultClearance, defaults.Clearance)
	}
	if cfg.DefaultAnywhereAttempts != defaults.AnywhereAttempts {
		t.Errorf("AnywhereAttempts mismatch: config=%d settings=%d", cfg.DefaultAnywhereAttempts, defaults.AnywhereAttempts)
	}
	if cfg.DefaultStrategy != defaults.Strategy {
		t.Errorf("Strategy mismatch: config=%s settings=%s", cfg.DefaultStrategy, defaults.Strategy)
	}
	if cfg.DefaultRoom != DefaultRoomConfig() {
		t.Errorf("unexpected default room %+v", cfg.DefaultRoom)
	}
	if cfg.CatalogPath != "" {
		t.Errorf("expected built-in catalog by default, got %q", cfg.CatalogPath)
	}
	if cfg.RecentLayouts == nil {
		t.Error("RecentLayouts should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultClearance = 0.5
	cfg.DefaultAttemptBudget = 40
	cfg.DefaultStrategy = StrategyExpert

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.Clearance != 0.5 {
		t.Errorf("expected Clearance=0.5, got %f", s.Clearance)
	}
	if s.AttemptBudget != 40 {
		t.Errorf("expected AttemptBudget=40, got %d", s.AttemptBudget)
	}
	if s.Strategy != StrategyExpert {
		t.Errorf("expected Strategy=expert, got %s", s.Strategy)
	}
}

func TestApplyToSettingsKeepsStrategyWhenUnset(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultStrategy = ""

	s := DefaultSettings()
	s.Strategy = StrategyExpert
	cfg.ApplyToSettings(&s)

	if s.Strategy != StrategyExpert {
		t.Errorf("empty config strategy must not overwrite, got %s", s.Strategy)
	}
}
