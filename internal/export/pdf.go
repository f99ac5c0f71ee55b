// Package export renders planned layouts to PDF floor plans, QR placement
// tags, DXF drawings and JSON scene manifests.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/furnish/internal/model"
)

// itemColor represents an RGB color for a placed piece.
type itemColor struct {
	R, G, B int
}

// categoryColors gives each category a stable fill on the floor plan.
var categoryColors = map[model.Category]itemColor{
	model.CategorySeating:    {R: 33, G: 150, B: 243},  // blue
	model.CategoryTable:      {R: 255, G: 152, B: 0},   // orange
	model.CategoryStorage:    {R: 121, G: 85, B: 72},   // brown
	model.CategoryWallDecor:  {R: 156, G: 39, B: 176},  // purple
	model.CategoryFloorDecor: {R: 76, G: 175, B: 80},   // green
	model.CategoryOther:      {R: 158, G: 158, B: 158}, // grey
}

func colorFor(c model.Category) itemColor {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return categoryColors[model.CategoryOther]
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// planTransform maps room meters to page millimeters. The back wall (MinY)
// is drawn at the top of the page.
type planTransform struct {
	room    model.RoomBounds
	scale   float64
	offsetX float64
	offsetY float64
}

func (t planTransform) point(x, y float64) fpdf.PointType {
	return fpdf.PointType{
		X: t.offsetX + (x-t.room.MinX)*t.scale,
		Y: t.offsetY + (y-t.room.MinY)*t.scale,
	}
}

// ExportPDF generates a floor plan page for the layout followed by a page
// listing every placed item and planner diagnostic.
func ExportPDF(path string, layout model.Layout) error {
	if len(layout.Items) == 0 {
		return fmt.Errorf("no items to export")
	}
	if layout.Bounds.Empty() {
		return fmt.Errorf("layout has no room bounds")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderPlanPage(pdf, layout)

	pdf.AddPage()
	renderItemsPage(pdf, layout)

	return pdf.OutputFileAndClose(path)
}

// renderPlanPage draws the room, placement bounds and footprints.
func renderPlanPage(pdf *fpdf.Fpdf, layout model.Layout) {
	room := layout.Bounds.Inset(-layout.Bounds.Margin)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Floor Plan: %.2f x %.2f m (%s)", room.Width(), room.Depth(), layout.Strategy)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Forced: %d | Wall margin: %.2f m | Wall height: %.2f m",
		layout.Len(), layout.ForcedCount(), layout.Bounds.Margin, room.WallHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/room.Width(), drawHeight/room.Depth())
	canvasW := room.Width() * scale
	canvasH := room.Depth() * scale

	tr := planTransform{
		room:    room,
		scale:   scale,
		offsetX: marginLeft + (drawWidth-canvasW)/2,
		offsetY: drawAreaTop,
	}

	// Floor
	pdf.SetFillColor(240, 230, 215)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.8)
	pdf.Rect(tr.offsetX, tr.offsetY, canvasW, canvasH, "FD")

	// Placement bounds
	inset := layout.Bounds
	tl := tr.point(inset.MinX, inset.MinY)
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.2)
	pdf.SetDashPattern([]float64{2, 1.5}, 0)
	pdf.Rect(tl.X, tl.Y, inset.Width()*scale, inset.Depth()*scale, "D")
	pdf.SetDashPattern([]float64{}, 0)

	for _, it := range layout.Items {
		drawFootprint(pdf, tr, it)
	}

	drawDimensionAnnotations(pdf, room, tr.offsetX, tr.offsetY, canvasW, canvasH)
	drawCategoryLegend(pdf, layout, tr.offsetY+canvasH+6)
}

// drawFootprint renders one rotated footprint with its id.
func drawFootprint(pdf *fpdf.Fpdf, tr planTransform, it model.PlacedItem) {
	corners := it.Corners()
	pts := make([]fpdf.PointType, 0, len(corners))
	for _, c := range corners {
		pts = append(pts, tr.point(c[0], c[1]))
	}

	col := colorFor(it.Spec.Category)
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetLineWidth(0.3)
	if it.Forced {
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetDashPattern([]float64{1, 1}, 0)
	} else {
		pdf.SetDrawColor(30, 30, 30)
	}
	pdf.Polygon(pts, "FD")
	pdf.SetDashPattern([]float64{}, 0)

	// Facing marker: yaw 0 faces +Y, into the room from the back wall
	centre := tr.point(it.Pose.Position.X, it.Pose.Position.Y)
	reach := it.Spec.Footprint.Depth / 2
	sin, cos := math.Sincos(it.Pose.Yaw)
	front := tr.point(it.Pose.Position.X+reach*sin, it.Pose.Position.Y+reach*cos)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.2)
	pdf.Line(centre.X, centre.Y, front.X, front.Y)

	w := it.Spec.Footprint.Width * tr.scale
	h := it.Spec.Footprint.Depth * tr.scale
	if math.Max(w, h) > 12 {
		pdf.SetFont("Helvetica", "", labelFontSize(w, h))
		pdf.SetTextColor(0, 0, 0)
		label := it.Spec.ID
		labelW := pdf.GetStringWidth(label)
		pdf.SetXY(centre.X-labelW/2, centre.Y-2)
		pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
	}
}

// drawDimensionAnnotations adds width and depth labels outside the room rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, room model.RoomBounds, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.2f m", room.Width())
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	depthLabel := fmt.Sprintf("%.2f m", room.Depth())
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	dLabelW := pdf.GetStringWidth(depthLabel)
	pdf.SetXY(offsetX-3-dLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(dLabelW, 4, depthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawCategoryLegend renders a swatch per category present in the layout.
func drawCategoryLegend(pdf *fpdf.Fpdf, layout model.Layout, startY float64) {
	present := make(map[model.Category]bool)
	for _, it := range layout.Items {
		present[it.Spec.Category] = true
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(20, 4, "Legend:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 22
	for _, c := range model.Categories {
		if !present[c] {
			continue
		}
		col := colorFor(c)
		label := string(c)
		labelW := pdf.GetStringWidth(label) + 6

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")
		xPos += labelW + 2
	}
	if layout.ForcedCount() > 0 {
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(60, 4, "dashed red = forced placement", "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}
}

// renderItemsPage draws the item table and planner diagnostics.
func renderItemsPage(pdf *fpdf.Fpdf, layout model.Layout) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Placement Schedule", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	colWidths := []float64{10, 32, 48, 28, 22, 34, 22, 22, 20, 22}
	headers := []string{"#", "ID", "Name", "Category", "Zone", "Footprint (m)", "X (m)", "Y (m)", "Yaw", "Status"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 8)
	for i, it := range layout.Items {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		status := "placed"
		if it.Forced {
			status = "forced"
		}
		fp := it.Spec.Footprint
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			it.Spec.ID,
			it.Spec.Name,
			string(it.Spec.Category),
			string(it.Spec.Zone),
			fmt.Sprintf("%.2f x %.2f", fp.Width, fp.Depth),
			fmt.Sprintf("%.3f", it.Pose.Position.X),
			fmt.Sprintf("%.3f", it.Pose.Position.Y),
			fmt.Sprintf("%.0f deg", it.Pose.Yaw*180/math.Pi),
			status,
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(layout.Diagnostics) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "Planner Diagnostics", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, d := range layout.Diagnostics {
			if y > pageHeight-marginBottom-5 {
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s [%s]: %s", d.FurnitureID, d.Kind, d.Message)
			pdf.CellFormat(250, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by Furnish - Room Layout Planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
