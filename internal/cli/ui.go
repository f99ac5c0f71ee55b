package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/furnish/internal/engine"
	"github.com/piwi3910/furnish/internal/model"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorDim    = lipgloss.Color("240")
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styleSuccess.Render(iconSuccess), fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styleWarning.Render(iconWarning), fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styleError.Render(iconError), fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styleDim.Render(iconInfo), fmt.Sprintf(format, args...))
}

// printLayout writes one line per placed item followed by diagnostics.
func printLayout(w io.Writer, layout model.Layout) {
	b := layout.Bounds
	fmt.Fprintf(w, "%s %s  %s\n",
		styleTitle.Render("Layout"),
		styleDim.Render(string(layout.Strategy)),
		styleDim.Render(fmt.Sprintf("bounds x[%.2f, %.2f] y[%.2f, %.2f]", b.MinX, b.MaxX, b.MinY, b.MaxY)),
	)
	for _, it := range layout.Items {
		p := it.Pose.Position
		line := fmt.Sprintf("%2d  %-14s x=%6.2f y=%6.2f z=%5.2f yaw=%6.1f°",
			it.Order, it.Spec.ID, p.X, p.Y, p.Z, it.Pose.Yaw*180/math.Pi)
		if it.Forced {
			fmt.Fprintf(w, "  %s %s\n", line, styleWarning.Render("forced"))
			continue
		}
		fmt.Fprintf(w, "  %s\n", line)
	}
	for _, d := range layout.Diagnostics {
		printWarning(w, "%s: %s", d.Kind, d.Message)
	}
	fmt.Fprintf(w, "%s placed, %s forced\n",
		styleNumber.Render(fmt.Sprint(layout.Len()-layout.ForcedCount())),
		styleNumber.Render(fmt.Sprint(layout.ForcedCount())),
	)
}

// printCatalog writes the catalog as an aligned table.
func printCatalog(w io.Writer, specs []model.FurnitureSpec) {
	fmt.Fprintln(w, styleTitle.Render(fmt.Sprintf("Catalog (%d items)", len(specs))))
	fmt.Fprintf(w, "  %-14s %-12s %-9s %-13s %s\n", "ID", "CATEGORY", "ZONE", "ORIENTATION", "W x D x H (m)")
	for _, s := range specs {
		id := s.ID
		if s.Essential {
			id += "*"
		}
		fmt.Fprintf(w, "  %-14s %-12s %-9s %-13s %.2f x %.2f x %.2f\n",
			id, s.Category, s.Zone, s.Orientation,
			s.Footprint.Width, s.Footprint.Depth, s.Footprint.Height)
	}
	fmt.Fprintln(w, styleDim.Render("  * essential"))
}

// printComparison writes one row per scenario.
func printComparison(w io.Writer, results []engine.ComparisonResult) {
	fmt.Fprintln(w, styleTitle.Render("Scenario comparison"))
	fmt.Fprintf(w, "  %-26s %-11s %6s %6s %7s %10s\n", "SCENARIO", "STRATEGY", "PLACED", "FORCED", "SKIPPED", "VIOLATIONS")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "  %-26s %s\n", r.Scenario.Name, styleError.Render(r.Err.Error()))
			continue
		}
		fmt.Fprintf(w, "  %-26s %-11s %6d %6d %7d %10d\n",
			r.Scenario.Name, r.Scenario.Strategy, r.PlacedCount, r.ForcedCount, r.SkippedCount, r.Violations)
	}
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
