package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/piwi3910/furnish/internal/model"
)

// ManifestEntry is the transform a scene assembler applies to one imported model.
type ManifestEntry struct {
	FurnitureID string     `json:"furniture_id"`
	Name        string     `json:"name,omitempty"`
	Position    [3]float64 `json:"position"`
	Rotation    [3]float64 `json:"rotation"` // Euler XYZ, base rotation plus placement yaw
	Scale       float64    `json:"scale"`
	Forced      bool       `json:"forced"`
}

// Manifest is the scene assembly document for one layout.
type Manifest struct {
	Strategy model.Strategy     `json:"strategy"`
	Room     model.RoomBounds   `json:"room"`
	Items    []ManifestEntry    `json:"items"`
	Warnings []model.Diagnostic `json:"warnings,omitempty"`
}

// SceneManifest converts a layout into per-model transforms. The placement
// yaw is added to the model's base Z rotation.
func SceneManifest(layout model.Layout) Manifest {
	m := Manifest{
		Strategy: layout.Strategy,
		Room:     layout.Bounds,
		Items:    make([]ManifestEntry, 0, len(layout.Items)),
		Warnings: layout.Diagnostics,
	}
	for _, it := range layout.Items {
		base := it.Spec.BaseRotation
		pos := it.Pose.Position
		m.Items = append(m.Items, ManifestEntry{
			FurnitureID: it.Spec.ID,
			Name:        it.Spec.Name,
			Position:    [3]float64{pos.X, pos.Y, pos.Z},
			Rotation:    [3]float64{base.X, base.Y, base.Z + it.Pose.Yaw},
			Scale:       it.Spec.Scale,
			Forced:      it.Forced,
		})
	}
	return m
}

// WriteManifest encodes the layout's scene manifest as indented JSON.
func WriteManifest(w io.Writer, layout model.Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(SceneManifest(layout)); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return nil
}

// ExportManifest writes the scene manifest to path.
func ExportManifest(path string, layout model.Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	if err := WriteManifest(f, layout); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
