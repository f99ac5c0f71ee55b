package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/furnish/internal/model"
)

// SavedLayout is a planned layout persisted with enough context to replan it.
type SavedLayout struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	CreatedAt time.Time             `json:"created_at"`
	Seed      int64                 `json:"seed"`
	Room      model.RoomConfig      `json:"room"`
	Settings  model.PlannerSettings `json:"settings"`
	Selection []string              `json:"selection"`
	Layout    model.Layout          `json:"layout"`
}

// NewSavedLayout stamps a layout with a fresh id and the current time.
func NewSavedLayout(name string, layout model.Layout) SavedLayout {
	return SavedLayout{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Layout:    layout,
	}
}

// DefaultLayoutsDir returns ~/.furnish/layouts.
func DefaultLayoutsDir() string {
	return filepath.Join(DefaultConfigDir(), "layouts")
}

// SaveLayout writes a saved layout to path as indented JSON, assigning an id
// and timestamp when they are missing.
func SaveLayout(path string, saved SavedLayout) (SavedLayout, error) {
	if saved.ID == "" {
		saved.ID = uuid.New().String()
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = time.Now().UTC()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return saved, fmt.Errorf("failed to create layout directory: %w", err)
	}
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return saved, fmt.Errorf("failed to marshal layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return saved, fmt.Errorf("failed to write layout: %w", err)
	}
	return saved, nil
}

// LoadLayout reads a saved layout from path.
func LoadLayout(path string) (SavedLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SavedLayout{}, fmt.Errorf("failed to read layout: %w", err)
	}
	var saved SavedLayout
	if err := json.Unmarshal(data, &saved); err != nil {
		return SavedLayout{}, fmt.Errorf("failed to parse layout: %w", err)
	}
	if saved.ID == "" {
		return SavedLayout{}, fmt.Errorf("invalid layout file: missing id")
	}
	if _, err := uuid.Parse(saved.ID); err != nil {
		return SavedLayout{}, fmt.Errorf("invalid layout id %q: %w", saved.ID, err)
	}
	return saved, nil
}

// ListLayouts loads every *.json layout in dir, newest first. Files that do
// not parse are skipped. A missing directory yields an empty list.
func ListLayouts(dir string) ([]SavedLayout, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SavedLayout{}, nil
		}
		return nil, err
	}
	layouts := []SavedLayout{}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		saved, err := LoadLayout(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		layouts = append(layouts, saved)
	}
	sort.SliceStable(layouts, func(i, j int) bool {
		return layouts[i].CreatedAt.After(layouts[j].CreatedAt)
	})
	return layouts, nil
}
