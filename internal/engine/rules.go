package engine

import (
	"iter"
	"math"

	"github.com/piwi3910/furnish/internal/model"
)

// RandomSource supplies uniform draws in [0, 1). *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// wallRule is one wall a piece can stand against.
type wallRule struct {
	anchorX func(b model.RoomBounds) float64
	anchorY func(b model.RoomBounds) float64
	normalX float64
	normalY float64
	yaw     float64 // Facing into the room
}

// walls are tried in order: back, left, right. The front wall is left open
// for the viewer.
var walls = []wallRule{
	{
		// back
		anchorX: func(b model.RoomBounds) float64 { x, _ := b.Center(); return x },
		anchorY: func(b model.RoomBounds) float64 { return b.MinY },
		normalX: 0, normalY: 1,
		yaw: 0,
	},
	{
		// left
		anchorX: func(b model.RoomBounds) float64 { return b.MinX },
		anchorY: func(b model.RoomBounds) float64 { _, y := b.Center(); return y },
		normalX: 1, normalY: 0,
		yaw: math.Pi / 2,
	},
	{
		// right
		anchorX: func(b model.RoomBounds) float64 { return b.MaxX },
		anchorY: func(b model.RoomBounds) float64 { _, y := b.Center(); return y },
		normalX: -1, normalY: 0,
		yaw: -math.Pi / 2,
	},
}

// cornerRule is a corner given by which side of each axis it sits on.
type cornerRule struct {
	sideX float64 // -1 = MinX, +1 = MaxX
	sideY float64 // -1 = MinY, +1 = MaxY
	yaw   float64
}

var corners = []cornerRule{
	{sideX: -1, sideY: -1, yaw: math.Pi / 4},    // back-left
	{sideX: 1, sideY: -1, yaw: -math.Pi / 4},    // back-right
	{sideX: -1, sideY: 1, yaw: 3 * math.Pi / 4}, // front-left
}

// centerOffsets are tried around the bounds centre, slightly back first.
var centerOffsets = [][2]float64{
	{0, -0.5},
	{0.5, 0},
	{-0.5, 0},
	{0, 0.5},
	{0, 0},
}

// RuleSet turns a furniture spec into an ordered, finite sequence of candidate poses.
type RuleSet struct {
	anywhereAttempts int
}

// NewRuleSet creates a rule set from planner settings.
// A non-positive AnywhereAttempts falls back to the default cap.
func NewRuleSet(settings model.PlannerSettings) *RuleSet {
	attempts := settings.AnywhereAttempts
	if attempts <= 0 {
		attempts = model.DefaultSettings().AnywhereAttempts
	}
	return &RuleSet{anywhereAttempts: attempts}
}

// AnywhereAttempts returns the random search cap for zone=anywhere.
func (r *RuleSet) AnywhereAttempts() int {
	return r.anywhereAttempts
}

// Candidates returns the lazy candidate sequence for spec inside bounds.
// Random draws happen only as candidates are pulled, so stopping early
// leaves the source untouched for later items.
func (r *RuleSet) Candidates(spec model.FurnitureSpec, bounds model.RoomBounds, rnd RandomSource) iter.Seq[model.Pose] {
	switch spec.Zone {
	case model.ZoneWall:
		return wallCandidates(spec, bounds)
	case model.ZoneCorner:
		return cornerCandidates(spec, bounds)
	case model.ZoneCenter:
		return centerCandidates(spec, bounds, rnd)
	default:
		return r.anywhereCandidates(spec, bounds, rnd)
	}
}

func wallCandidates(spec model.FurnitureSpec, b model.RoomBounds) iter.Seq[model.Pose] {
	return func(yield func(model.Pose) bool) {
		offset := spec.WallDistance + spec.Footprint.Depth/2
		for _, w := range walls {
			x := w.anchorX(b) + w.normalX*offset
			y := w.anchorY(b) + w.normalY*offset
			if !yield(model.NewPose(x, y, spec.HeightOffset, w.yaw)) {
				return
			}
		}
	}
}

func cornerCandidates(spec model.FurnitureSpec, b model.RoomBounds) iter.Seq[model.Pose] {
	return func(yield func(model.Pose) bool) {
		for _, c := range corners {
			// Every corner yaw is an odd multiple of 45 degrees, so both
			// rotated half extents are equal.
			half, _ := RotatedHalfExtents(spec.Footprint, c.yaw)
			inset := spec.WallDistance + half
			x := cornerCoord(b.MinX, b.MaxX, c.sideX, inset)
			y := cornerCoord(b.MinY, b.MaxY, c.sideY, inset)
			if !yield(model.NewPose(x, y, spec.HeightOffset, c.yaw)) {
				return
			}
		}
	}
}

func cornerCoord(lo, hi, side, inset float64) float64 {
	if side < 0 {
		return lo + inset
	}
	return hi - inset
}

func centerCandidates(spec model.FurnitureSpec, b model.RoomBounds, rnd RandomSource) iter.Seq[model.Pose] {
	return func(yield func(model.Pose) bool) {
		cx, cy := b.Center()
		for _, off := range centerOffsets {
			yaw := 0.0
			if spec.Orientation != model.OrientationFixed {
				yaw = rnd.Float64() * 2 * math.Pi
			}
			if !yield(model.NewPose(cx+off[0], cy+off[1], spec.HeightOffset, yaw)) {
				return
			}
		}
	}
}

func (r *RuleSet) anywhereCandidates(spec model.FurnitureSpec, b model.RoomBounds, rnd RandomSource) iter.Seq[model.Pose] {
	return func(yield func(model.Pose) bool) {
		for attempt := 0; attempt < r.anywhereAttempts; attempt++ {
			x := b.MinX + rnd.Float64()*b.Width()
			y := b.MinY + rnd.Float64()*b.Depth()
			yaw := rnd.Float64() * 2 * math.Pi
			if !yield(model.NewPose(x, y, spec.HeightOffset, yaw)) {
				return
			}
		}
	}
}
