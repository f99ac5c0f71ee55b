package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/furnish/internal/model"
)

// DXF layer names.
const (
	LayerRoom      = "ROOM"
	LayerPlacement = "PLACEMENT"
	LayerFurniture = "FURNITURE"
	LayerForced    = "FORCED"
	LayerLabels    = "LABELS"
)

// dxfTextHeight is the label height in meters.
const dxfTextHeight = 0.12

// ExportDXF writes the room outline, placement bounds and every footprint as
// closed LINE loops on separate layers, in meters.
func ExportDXF(path string, layout model.Layout) error {
	if layout.Bounds.Empty() {
		return fmt.Errorf("layout has no room bounds")
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		col  color.ColorNumber
	}{
		{LayerRoom, color.White},
		{LayerPlacement, color.Cyan},
		{LayerFurniture, color.Green},
		{LayerForced, color.Red},
		{LayerLabels, color.Yellow},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.col, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	room := layout.Bounds.Inset(-layout.Bounds.Margin)
	if err := drawRect(d, LayerRoom, room); err != nil {
		return err
	}
	if err := drawRect(d, LayerPlacement, layout.Bounds); err != nil {
		return err
	}

	for _, it := range layout.Items {
		layer := LayerFurniture
		if it.Forced {
			layer = LayerForced
		}
		c := it.Corners()
		if err := drawLoop(d, layer, c[:]); err != nil {
			return fmt.Errorf("failed to draw %q: %w", it.Spec.ID, err)
		}
		if err := d.ChangeLayer(LayerLabels); err != nil {
			return err
		}
		pos := it.Pose.Position
		if _, err := d.Text(it.Spec.ID, pos.X, pos.Y, 0, dxfTextHeight); err != nil {
			return fmt.Errorf("failed to label %q: %w", it.Spec.ID, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

func drawRect(d *drawing.Drawing, layer string, b model.RoomBounds) error {
	return drawLoop(d, layer, [][2]float64{
		{b.MinX, b.MinY}, {b.MaxX, b.MinY}, {b.MaxX, b.MaxY}, {b.MinX, b.MaxY},
	})
}

// drawLoop draws a closed polygon as individual LINE entities.
func drawLoop(d *drawing.Drawing, layer string, pts [][2]float64) error {
	if err := d.ChangeLayer(layer); err != nil {
		return fmt.Errorf("failed to select layer %s: %w", layer, err)
	}
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}
	return nil
}
