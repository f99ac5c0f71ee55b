package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/furnish/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Layouts   []SavedLayout   `json:"layouts"`
}

// ExportAllData bundles the app config and saved layouts into a single JSON
// file at exportPath.
func ExportAllData(exportPath string, config model.AppConfig, layouts []SavedLayout) error {
	if layouts == nil {
		layouts = []SavedLayout{}
	}
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Layouts:   layouts,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentLayouts == nil {
		backup.Config.RecentLayouts = []string{}
	}
	if backup.Layouts == nil {
		backup.Layouts = []SavedLayout{}
	}
	return backup, nil
}

// RestoreLayouts writes each backed-up layout into dir as <id>.json and
// returns the paths written.
func RestoreLayouts(dir string, layouts []SavedLayout) ([]string, error) {
	paths := make([]string, 0, len(layouts))
	for _, l := range layouts {
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		path := filepath.Join(dir, l.ID+".json")
		if _, err := SaveLayout(path, l); err != nil {
			return paths, fmt.Errorf("failed to restore layout %q: %w", l.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
