package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/furnish/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultCount = 9
	cfg.CatalogPath = "shop.csv"
	layouts := []SavedLayout{NewSavedLayout("Living room", sampleLayout())}

	if err := ExportAllData(path, cfg, layouts); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultCount != 9 {
		t.Errorf("expected DefaultCount=9, got %d", backup.Config.DefaultCount)
	}
	if backup.Config.CatalogPath != "shop.csv" {
		t.Errorf("expected CatalogPath=shop.csv, got %s", backup.Config.CatalogPath)
	}
	if len(backup.Layouts) != 1 || backup.Layouts[0].ID != layouts[0].ID {
		t.Errorf("layouts not preserved: %+v", backup.Layouts)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "noversion.json")
	data := []byte(`{"config":{"default_count":3}}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportAllData(path)
	if err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestImportAllDataNilLists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","config":{"recent_layouts":null},"layouts":null}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentLayouts == nil {
		t.Error("RecentLayouts should not be nil after import")
	}
	if backup.Layouts == nil {
		t.Error("Layouts should not be nil after import")
	}
}

func TestRestoreLayouts(t *testing.T) {
	dir := t.TempDir()
	layouts := []SavedLayout{
		NewSavedLayout("a", sampleLayout()),
		{Name: "no id", Layout: sampleLayout()},
	}

	paths, err := RestoreLayouts(dir, layouts)
	if err != nil {
		t.Fatalf("RestoreLayouts failed: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(paths))
	}
	listed, err := ListLayouts(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 2 {
		t.Errorf("expected 2 restored layouts, got %d", len(listed))
	}
}
