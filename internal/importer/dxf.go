package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/furnish/internal/model"
)

// point is a floor plan vertex in drawing units.
type point struct {
	x, y float64
}

// segment is a line between two vertices, used for chaining loose LINE
// entities into closed outlines.
type segment struct {
	start point
	end   point
}

// RoomImportResult holds a room extracted from a floor plan drawing.
type RoomImportResult struct {
	Room     model.RoomConfig
	Found    bool
	Errors   []string
	Warnings []string
}

// mmThreshold is the extent above which a drawing is assumed to be in millimeters.
const mmThreshold = 100.0

// ImportRoomDXF reads a floor plan and sizes a room from its largest closed
// outline (LWPOLYLINE or chain of connected LINEs/ARCs). Wall height and
// margin come from base, since a plan carries neither.
func ImportRoomDXF(path string, base model.RoomConfig) RoomImportResult {
	result := RoomImportResult{Room: base}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]point
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := make([]point, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				outline = append(outline, point{x: v[0], y: v[1]})
			}
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Arc:
			pts := arcToPoints(e, 16)
			for i := 0; i < len(pts)-1; i++ {
				segments = append(segments, segment{start: pts[i], end: pts[i+1]})
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: point{x: e.Start[0], y: e.Start[1]},
				end:   point{x: e.End[0], y: e.End[1]},
			})

		default:
			// Dimensions, text and furniture blocks are not walls
		}
	}

	outlines = append(outlines, chainSegments(segments, 0.01)...)
	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed room outline found in DXF file")
		return result
	}

	sort.Slice(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})
	if len(outlines) > 1 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Found %d closed outlines, using the largest", len(outlines)))
	}

	area := outlineArea(outlines[0])
	width, depth := extent(outlines[0])
	if width > mmThreshold || depth > mmThreshold {
		width /= 1000
		depth /= 1000
		area /= 1e6
		result.Warnings = append(result.Warnings, "Drawing looks like millimeters, converted to meters")
	}
	if area < 0.99*width*depth {
		result.Warnings = append(result.Warnings, "Room outline is not rectangular, using its bounding box")
	}

	result.Room.Width = width
	result.Room.Depth = depth
	if _, err := model.NewRoom(result.Room); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Outline gives an unusable room: %v", err))
		return result
	}
	result.Found = true
	return result
}

// arcToPoints converts a DXF ARC entity to a series of line points.
func arcToPoints(a *entity.Arc, numSegments int) []point {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]point, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = point{x: cx + r*math.Cos(angle), y: cy + r*math.Sin(angle)}
	}
	return pts
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them connected.
func chainSegments(segs []segment, tolerance float64) [][]point {
	used := make([]bool, len(segs))
	var outlines [][]point

	for start := range segs {
		if used[start] {
			continue
		}
		chain := []point{segs[start].start, segs[start].end}
		used[start] = true

		for changed := true; changed; {
			changed = false
			tail := chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
				} else if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
				} else {
					continue
				}
				used[i] = true
				changed = true
				break
			}
		}

		// Only closed chains bound a room
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}
	return outlines
}

func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.x-b.x, a.y-b.y) <= tolerance
}

// outlineArea computes the absolute area of a polygon using the shoelace formula.
func outlineArea(o []point) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].x*o[j].y - o[j].x*o[i].y
	}
	return math.Abs(area) / 2
}

func extent(o []point) (width, depth float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range o {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	return maxX - minX, maxY - minY
}
