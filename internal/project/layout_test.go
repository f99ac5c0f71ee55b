package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/furnish/internal/model"
)

func sampleLayout() model.Layout {
	return model.Layout{
		Strategy: model.StrategyGenerative,
		Bounds:   model.RoomBounds{MinX: -2.7, MaxX: 2.7, MinY: -2.7, MaxY: 2.7, WallHeight: 3.2, Margin: 0.3},
		Items: []model.PlacedItem{
			{Spec: model.FurnitureSpec{ID: "sofa-1", Category: model.CategorySeating}, Pose: model.NewPose(0, -1.95, 0, 0)},
			{Spec: model.FurnitureSpec{ID: "pot-1"}, Pose: model.NewPose(-2.5, -2.5, 0, 0), Order: 1, Forced: true},
		},
		Diagnostics: []model.Diagnostic{{FurnitureID: "pot-1", Kind: model.DiagNoFeasible}},
	}
}

func TestSaveAndLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts", "living.json")

	saved := NewSavedLayout("Living room", sampleLayout())
	saved.Seed = 42
	saved.Selection = []string{"sofa-1", "pot-1"}

	written, err := SaveLayout(path, saved)
	if err != nil {
		t.Fatalf("SaveLayout failed: %v", err)
	}

	loaded, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("LoadLayout failed: %v", err)
	}
	if loaded.ID != written.ID {
		t.Errorf("id mismatch: %s vs %s", loaded.ID, written.ID)
	}
	if loaded.Seed != 42 || loaded.Name != "Living room" {
		t.Errorf("unexpected record %+v", loaded)
	}
	if len(loaded.Layout.Items) != 2 || !loaded.Layout.Items[1].Forced {
		t.Errorf("layout items not preserved: %+v", loaded.Layout.Items)
	}
	if loaded.Layout.Items[0].Pose.Position.Y != -1.95 {
		t.Errorf("expected sofa y -1.95, got %f", loaded.Layout.Items[0].Pose.Position.Y)
	}
	if len(loaded.Layout.Diagnostics) != 1 {
		t.Errorf("expected 1 diagnostic, got %d", len(loaded.Layout.Diagnostics))
	}
}

func TestSaveLayout_AssignsIDAndTimestamp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.json")

	written, err := SaveLayout(path, SavedLayout{Layout: sampleLayout()})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(written.ID); err != nil {
		t.Errorf("expected uuid id, got %q", written.ID)
	}
	if written.CreatedAt.IsZero() {
		t.Error("expected timestamp")
	}
}

func TestLoadLayout_Invalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"garbage.json": "{not json",
		"noid.json":    `{"name":"x"}`,
		"badid.json":   `{"id":"not-a-uuid"}`,
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadLayout(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := LoadLayout(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestListLayouts(t *testing.T) {
	dir := t.TempDir()

	older := NewSavedLayout("older", sampleLayout())
	older.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := NewSavedLayout("newer", sampleLayout())
	newer.CreatedAt = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	for _, s := range []SavedLayout{older, newer} {
		if _, err := SaveLayout(filepath.Join(dir, s.Name+".json"), s); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}

	layouts, err := ListLayouts(dir)
	if err != nil {
		t.Fatalf("ListLayouts failed: %v", err)
	}
	if len(layouts) != 2 {
		t.Fatalf("expected 2 layouts, got %d", len(layouts))
	}
	if layouts[0].Name != "newer" {
		t.Errorf("expected newest first, got %s", layouts[0].Name)
	}
}

func TestListLayouts_MissingDir(t *testing.T) {
	layouts, err := ListLayouts(filepath.Join(t.TempDir(), "none"))
	if err != nil {
		t.Fatal(err)
	}
	if len(layouts) != 0 {
		t.Errorf("expected empty list, got %d", len(layouts))
	}
}
