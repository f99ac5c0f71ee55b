package model

import "math"

// Category groups furniture by its role in the room. It drives placement order.
type Category string

const (
	CategorySeating    Category = "seating"
	CategoryTable      Category = "table"
	CategoryStorage    Category = "storage"
	CategoryWallDecor  Category = "wall_decor"
	CategoryFloorDecor Category = "floor_decor"
	CategoryOther      Category = "other"
)

// Categories lists every recognized category.
var Categories = []Category{
	CategorySeating,
	CategoryTable,
	CategoryStorage,
	CategoryWallDecor,
	CategoryFloorDecor,
	CategoryOther,
}

// Valid reports whether c is a recognized category.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Zone is the placement strategy used to generate candidate poses.
type Zone string

const (
	ZoneWall     Zone = "wall"
	ZoneCorner   Zone = "corner"
	ZoneCenter   Zone = "center"
	ZoneAnywhere Zone = "anywhere"
)

// Zones lists every recognized zone.
var Zones = []Zone{ZoneWall, ZoneCorner, ZoneCenter, ZoneAnywhere}

// Valid reports whether z is a recognized zone.
func (z Zone) Valid() bool {
	for _, known := range Zones {
		if z == known {
			return true
		}
	}
	return false
}

// Orientation controls how a piece may be turned when placed in open floor space.
type Orientation string

const (
	OrientationFixed       Orientation = "fixed"        // Always yaw 0
	OrientationRotatable   Orientation = "rotatable"    // Free yaw
	OrientationWallAligned Orientation = "wall_aligned" // Follows the wall it stands against
)

// Valid reports whether o is a recognized orientation policy.
func (o Orientation) Valid() bool {
	switch o {
	case OrientationFixed, OrientationRotatable, OrientationWallAligned:
		return true
	}
	return false
}

// Footprint is the unrotated extent of a piece in meters.
// Width runs along local X, Depth along local Y, Height is vertical.
type Footprint struct {
	Width  float64 `json:"width" toml:"width"`
	Depth  float64 `json:"depth" toml:"depth"`
	Height float64 `json:"height" toml:"height"`
}

// MaxPlanDim returns the larger of width and depth.
func (f Footprint) MaxPlanDim() float64 {
	return math.Max(f.Width, f.Depth)
}

// Vec3 is a point or Euler rotation in room space (meters / radians).
type Vec3 struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
	Z float64 `json:"z" toml:"z"`
}

// FurnitureSpec describes one catalog entry and how it should be placed.
type FurnitureSpec struct {
	ID           string      `json:"id"`
	Name         string      `json:"name,omitempty"`
	Category     Category    `json:"category"`
	Footprint    Footprint   `json:"footprint"`
	Scale        float64     `json:"scale"`         // Import scale factor for the model
	BaseRotation Vec3        `json:"base_rotation"` // Corrects the model's authored orientation
	Zone         Zone        `json:"zone"`
	Orientation  Orientation `json:"orientation"`
	WallDistance float64     `json:"wall_distance"` // Gap kept between the piece and its wall
	HeightOffset float64     `json:"height_offset"` // Z of the placed origin (eye level for paintings)
	Essential    bool        `json:"essential"`
}

// Pose is a resolved position and yaw. Furniture always stands upright.
type Pose struct {
	Position Vec3    `json:"position"`
	Yaw      float64 `json:"yaw"` // Radians about the vertical axis; 0 faces +Y, pi/2 faces +X
}

// NewPose builds a pose from plan coordinates, height and yaw.
func NewPose(x, y, z, yaw float64) Pose {
	return Pose{Position: Vec3{X: x, Y: y, Z: z}, Yaw: yaw}
}

// ItemState is the planner's resolution of a requested item.
type ItemState string

const (
	StatePending    ItemState = "pending"
	StateProcessing ItemState = "processing"
	StatePlaced     ItemState = "placed"
	StateForced     ItemState = "forced"
)

// PlacedItem is a catalog piece with its resolved pose.
type PlacedItem struct {
	Spec   FurnitureSpec `json:"spec"`
	Pose   Pose          `json:"pose"`
	Order  int           `json:"order"`  // Commit order within the layout
	Forced bool          `json:"forced"` // Assigned by fallback rather than validated
}

// Corners returns the plan-view corners of the rotated footprint in winding
// order, starting behind-left of the piece.
func (p PlacedItem) Corners() [4][2]float64 {
	hw := p.Spec.Footprint.Width / 2
	hd := p.Spec.Footprint.Depth / 2
	sin, cos := math.Sincos(p.Pose.Yaw)
	local := [4][2]float64{{-hw, -hd}, {hw, -hd}, {hw, hd}, {-hw, hd}}
	var out [4][2]float64
	for i, c := range local {
		out[i] = [2]float64{
			p.Pose.Position.X + c[0]*cos + c[1]*sin,
			p.Pose.Position.Y - c[0]*sin + c[1]*cos,
		}
	}
	return out
}

// State returns the terminal planner state of the item.
func (p PlacedItem) State() ItemState {
	if p.Forced {
		return StateForced
	}
	return StatePlaced
}

// DiagnosticKind classifies a recoverable planning problem.
type DiagnosticKind string

const (
	DiagUnknownID       DiagnosticKind = "unknown_id"
	DiagNoFeasible      DiagnosticKind = "no_feasible_placement"
	DiagBudgetExhausted DiagnosticKind = "budget_exhausted"
	DiagNoExpertPose    DiagnosticKind = "no_expert_pose"
)

// Diagnostic records a per-item problem that did not abort planning.
type Diagnostic struct {
	FurnitureID string         `json:"furniture_id"`
	Kind        DiagnosticKind `json:"kind"`
	Message     string         `json:"message"`
}

// Strategy selects the planner implementation.
type Strategy string

const (
	StrategyGenerative Strategy = "generative" // Rule-driven candidate search
	StrategyExpert     Strategy = "expert"     // Hand-authored static poses
)

// Layout is the planner output handed to scene assembly.
type Layout struct {
	Strategy    Strategy     `json:"strategy"`
	Bounds      RoomBounds   `json:"bounds"`
	Items       []PlacedItem `json:"items"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// Len returns the number of placed items.
func (l Layout) Len() int {
	return len(l.Items)
}

// ForcedCount returns how many items were placed by fallback.
func (l Layout) ForcedCount() int {
	n := 0
	for _, it := range l.Items {
		if it.Forced {
			n++
		}
	}
	return n
}

// Find returns the first item with the given furniture id.
func (l Layout) Find(id string) (PlacedItem, bool) {
	for _, it := range l.Items {
		if it.Spec.ID == id {
			return it, true
		}
	}
	return PlacedItem{}, false
}

// DiagnosticsOf returns the diagnostics of one kind.
func (l Layout) DiagnosticsOf(kind DiagnosticKind) []Diagnostic {
	var out []Diagnostic
	for _, d := range l.Diagnostics {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Violation is an invariant breach found when auditing a layout.
type Violation struct {
	FurnitureID string  `json:"furniture_id"`
	OtherID     string  `json:"other_id,omitempty"` // Set for pairwise collisions
	Kind        string  `json:"kind"`               // "bounds" or "collision"
	Distance    float64 `json:"distance"`           // Overshoot for bounds, centre distance for collisions
	Required    float64 `json:"required"`
}

// PlannerSettings holds planner configuration.
type PlannerSettings struct {
	Strategy         Strategy `json:"strategy" toml:"strategy"`
	Clearance        float64  `json:"clearance" toml:"clearance"`                 // Extra spacing in the collision rule
	AnywhereAttempts int      `json:"anywhere_attempts" toml:"anywhere_attempts"` // Random candidates for zone=anywhere
	AttemptBudget    int      `json:"attempt_budget" toml:"attempt_budget"`       // Total candidates per call, 0 = unlimited
}

// DefaultSettings returns the planner defaults.
func DefaultSettings() PlannerSettings {
	return PlannerSettings{
		Strategy:         StrategyGenerative,
		Clearance:        0.2,
		AnywhereAttempts: 20,
		AttemptBudget:    0,
	}
}
