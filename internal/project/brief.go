package project

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/furnish/internal/model"
)

// Brief is a design brief: the room, the pieces wanted and how to plan them.
// Keys absent from the file keep the values of the defaults it was loaded over.
type Brief struct {
	Name      string                `toml:"name"`
	Selection []string              `toml:"selection"`
	Count     int                   `toml:"count"`
	Seed      int64                 `toml:"seed"`
	Strategy  model.Strategy        `toml:"strategy"`
	Catalog   string                `toml:"catalog"` // CSV/XLSX path, relative to the working directory
	Room      model.RoomConfig      `toml:"room"`
	Settings  model.PlannerSettings `toml:"settings"`

	// HasSeed reports whether the file fixed the seed.
	HasSeed bool `toml:"-"`
}

// BriefFromConfig returns the brief implied by the app defaults alone.
func BriefFromConfig(cfg model.AppConfig) Brief {
	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)
	return Brief{
		Count:    cfg.DefaultCount,
		Strategy: settings.Strategy,
		Catalog:  cfg.CatalogPath,
		Room:     cfg.DefaultRoom,
		Settings: settings,
	}
}

// LoadBrief decodes a TOML brief from path over the defaults in cfg.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadBrief(path string, cfg model.AppConfig) (Brief, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Brief{}, fmt.Errorf("failed to read brief: %w", err)
	}
	return ParseBrief(string(data), cfg)
}

// ParseBrief decodes TOML brief text over the defaults in cfg.
func ParseBrief(text string, cfg model.AppConfig) (Brief, error) {
	brief := BriefFromConfig(cfg)
	md, err := toml.Decode(text, &brief)
	if err != nil {
		return Brief{}, fmt.Errorf("failed to parse brief: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Brief{}, fmt.Errorf("unknown brief keys: %s", strings.Join(keys, ", "))
	}

	if md.IsDefined("room") {
		if _, err := model.NewRoom(brief.Room); err != nil {
			return Brief{}, fmt.Errorf("brief room: %w", err)
		}
	}

	brief.HasSeed = md.IsDefined("seed")
	// An explicit selection is not truncated by the default count
	if md.IsDefined("selection") && !md.IsDefined("count") {
		brief.Count = 0
	}
	// A top-level strategy wins over [settings].strategy
	if md.IsDefined("strategy") {
		brief.Settings.Strategy = brief.Strategy
	} else {
		brief.Strategy = brief.Settings.Strategy
	}
	return brief, nil
}
