package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/furnish/internal/model"
)

// boundsEpsilon absorbs floating point error for pieces placed flush against a wall.
const boundsEpsilon = 1e-9

// committedItem is a pose accepted into the index.
type committedItem struct {
	pose      model.Pose
	footprint model.Footprint
}

// CollisionIndex validates candidate poses against the placement bounds and
// every previously committed item. It has a single writer: the planner that
// owns it. Commit order matters because later checks see earlier commits.
type CollisionIndex struct {
	bounds    model.RoomBounds
	clearance float64
	committed []committedItem
}

// NewCollisionIndex creates an empty index over bounds.
func NewCollisionIndex(bounds model.RoomBounds, clearance float64) *CollisionIndex {
	return &CollisionIndex{bounds: bounds, clearance: clearance}
}

// RotatedHalfExtents returns the axis-aligned half extents of a footprint turned by yaw.
func RotatedHalfExtents(f model.Footprint, yaw float64) (halfX, halfY float64) {
	hw := f.Width / 2
	hd := f.Depth / 2
	cosR := math.Abs(math.Cos(yaw))
	sinR := math.Abs(math.Sin(yaw))
	halfX = hw*cosR + hd*sinR
	halfY = hw*sinR + hd*cosR
	return halfX, halfY
}

// MinSeparation is the centre distance two footprints must keep.
// It is a circle test, not an oriented-rectangle intersection: it can
// reject tight valid layouts and accept overlapping rotated ones.
func MinSeparation(a, b model.Footprint, clearance float64) float64 {
	return math.Max(a.MaxPlanDim(), b.MaxPlanDim())/2 + clearance
}

// Check returns nil when the pose is acceptable, otherwise an error wrapping
// model.ErrOutOfBounds or model.ErrCollision.
func (c *CollisionIndex) Check(p model.Pose, f model.Footprint) error {
	if over := boundsOvershoot(c.bounds, p, f); over > boundsEpsilon {
		return fmt.Errorf("%w: exceeds by %.3f m at (%.3f, %.3f)", model.ErrOutOfBounds, over, p.Position.X, p.Position.Y)
	}
	for i, item := range c.committed {
		dist := planDistance(p, item.pose)
		minDist := MinSeparation(f, item.footprint, c.clearance)
		if dist < minDist {
			return fmt.Errorf("%w: item %d at %.3f m, need %.3f m", model.ErrCollision, i, dist, minDist)
		}
	}
	return nil
}

// Validate reports whether the pose passes both the bounds and the pairwise check.
func (c *CollisionIndex) Validate(p model.Pose, f model.Footprint) bool {
	return c.Check(p, f) == nil
}

// Commit registers an accepted (or forced) pose.
func (c *CollisionIndex) Commit(p model.Pose, f model.Footprint) {
	c.committed = append(c.committed, committedItem{pose: p, footprint: f})
}

// Len returns the number of committed items.
func (c *CollisionIndex) Len() int {
	return len(c.committed)
}

// Bounds returns the bounds the index validates against.
func (c *CollisionIndex) Bounds() model.RoomBounds {
	return c.bounds
}

// boundsOvershoot returns how far the rotated footprint sticks out of b.
// Zero or negative means it fits.
func boundsOvershoot(b model.RoomBounds, p model.Pose, f model.Footprint) float64 {
	halfX, halfY := RotatedHalfExtents(f, p.Yaw)
	x, y := p.Position.X, p.Position.Y
	over := math.Inf(-1)
	over = math.Max(over, b.MinX-(x-halfX))
	over = math.Max(over, (x+halfX)-b.MaxX)
	over = math.Max(over, b.MinY-(y-halfY))
	over = math.Max(over, (y+halfY)-b.MaxY)
	return over
}

func planDistance(a, b model.Pose) float64 {
	return math.Hypot(a.Position.X-b.Position.X, a.Position.Y-b.Position.Y)
}
