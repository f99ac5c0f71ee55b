package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/furnish/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestLayout(t)); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	if err := ExportLabels(path, model.Layout{}); err == nil {
		t.Fatal("expected error for empty layout, got nil")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	layout := buildForcedLayout(t)
	labels := CollectLabelInfos(layout)

	if len(labels) != len(layout.Items) {
		t.Fatalf("expected %d labels, got %d", len(layout.Items), len(labels))
	}
	first := labels[0]
	if first.FurnitureID != layout.Items[0].Spec.ID {
		t.Errorf("expected %q first, got %q", layout.Items[0].Spec.ID, first.FurnitureID)
	}
	if first.X != layout.Items[0].Pose.Position.X {
		t.Errorf("x mismatch: %f vs %f", first.X, layout.Items[0].Pose.Position.X)
	}
	if !labels[len(labels)-1].Forced {
		t.Error("expected last label to be forced")
	}
}

func TestCollectLabelInfos_YawInDegrees(t *testing.T) {
	layout := model.Layout{Items: []model.PlacedItem{
		{Spec: model.FurnitureSpec{ID: "a"}, Pose: model.NewPose(0, 0, 0, 1.5707963267948966)},
	}}
	if got := CollectLabelInfos(layout)[0].YawDeg; got != 90 {
		t.Errorf("expected 90 degrees, got %f", got)
	}
}

func TestLabelInfo_QRPayload(t *testing.T) {
	info := LabelInfo{FurnitureID: "sofa-1", Name: "Sofa", X: 0, Y: -1.95, Forced: true}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if payload["id"] != "sofa-1" {
		t.Errorf("expected id key, got %v", payload)
	}
	if payload["y_m"] != -1.95 {
		t.Errorf("expected y_m -1.95, got %v", payload["y_m"])
	}
}

func TestExportLabels_ManyItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many_labels.pdf")

	// 35 tags spill onto a second page
	items := make([]model.PlacedItem, 35)
	for i := range items {
		items[i] = model.PlacedItem{
			Spec:  model.FurnitureSpec{ID: fmt.Sprintf("chair-%d", i), Name: "Dining Chair With A Very Long Name"},
			Pose:  model.NewPose(float64(i%5), float64(i/5), 0, 0),
			Order: i,
		}
	}

	if err := ExportLabels(path, model.Layout{Items: items}); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("PDF file was not created: %v", err)
	}
}
