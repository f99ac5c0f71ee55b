package engine

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/furnish/internal/catalog"
	"github.com/piwi3910/furnish/internal/model"
)

// countingSource records how many draws were taken.
type countingSource struct {
	r     *rand.Rand
	draws int
}

func newCountingSource(seed int64) *countingSource {
	return &countingSource{r: rand.New(rand.NewSource(seed))}
}

func (c *countingSource) Float64() float64 {
	c.draws++
	return c.r.Float64()
}

func mustSpec(t *testing.T, id string) model.FurnitureSpec {
	t.Helper()
	spec, ok := catalog.Default().Lookup(id)
	require.True(t, ok, "missing built-in %s", id)
	return spec
}

func TestNewRuleSet_DefaultsAttempts(t *testing.T) {
	assert.Equal(t, 20, NewRuleSet(model.PlannerSettings{}).AnywhereAttempts())
	assert.Equal(t, 5, NewRuleSet(model.PlannerSettings{AnywhereAttempts: 5}).AnywhereAttempts())
}

func TestCandidates_WallOrder(t *testing.T) {
	rs := NewRuleSet(model.DefaultSettings())
	sofa := mustSpec(t, "sofa-1")

	poses := slices.Collect(rs.Candidates(sofa, testBounds(), nil))
	require.Len(t, poses, 3)

	// back
	assert.InDelta(t, 0, poses[0].Position.X, 1e-12)
	assert.InDelta(t, -1.95, poses[0].Position.Y, 1e-12)
	assert.InDelta(t, 0, poses[0].Yaw, 1e-12)
	// left
	assert.InDelta(t, -1.95, poses[1].Position.X, 1e-12)
	assert.InDelta(t, 0, poses[1].Position.Y, 1e-12)
	assert.InDelta(t, math.Pi/2, poses[1].Yaw, 1e-12)
	// right
	assert.InDelta(t, 1.95, poses[2].Position.X, 1e-12)
	assert.InDelta(t, -math.Pi/2, poses[2].Yaw, 1e-12)
}

func TestCandidates_WallKeepsHeightOffset(t *testing.T) {
	rs := NewRuleSet(model.DefaultSettings())
	painting := mustSpec(t, "painting-1")
	for p := range rs.Candidates(painting, testBounds(), nil) {
		assert.InDelta(t, 1.5, p.Position.Z, 1e-12)
	}
}

func TestCandidates_CornersInsideBounds(t *testing.T) {
	rs := NewRuleSet(model.DefaultSettings())
	pot := mustSpec(t, "pot-1")
	b := testBounds()
	idx := NewCollisionIndex(b, 0)

	poses := slices.Collect(rs.Candidates(pot, b, nil))
	require.Len(t, poses, 3)

	inset := pot.WallDistance + 0.15*math.Sqrt2
	assert.InDelta(t, b.MinX+inset, poses[0].Position.X, 1e-12)
	assert.InDelta(t, b.MinY+inset, poses[0].Position.Y, 1e-12)
	assert.InDelta(t, math.Pi/4, poses[0].Yaw, 1e-12)
	assert.InDelta(t, b.MaxX-inset, poses[1].Position.X, 1e-12)
	assert.InDelta(t, b.MaxY-inset, poses[2].Position.Y, 1e-12)

	for _, p := range poses {
		assert.True(t, idx.Validate(p, pot.Footprint), "corner %v should fit", p.Position)
	}
}

func TestCandidates_CenterFixedDrawsNothing(t *testing.T) {
	rs := NewRuleSet(model.DefaultSettings())
	table := mustSpec(t, "table-1")
	src := newCountingSource(1)

	poses := slices.Collect(rs.Candidates(table, testBounds(), src))
	require.Len(t, poses, 5)
	assert.Equal(t, 0, src.draws)
	assert.InDelta(t, -0.5, poses[0].Position.Y, 1e-12)
	assert.InDelta(t, 0.5, poses[1].Position.X, 1e-12)
	assert.InDelta(t, -0.5, poses[2].Position.X, 1e-12)
	assert.InDelta(t, 0.5, poses[3].Position.Y, 1e-12)
	for _, p := range poses {
		assert.Zero(t, p.Yaw)
	}
}

func TestCandidates_CenterRotatableDrawsPerCandidate(t *testing.T) {
	rs := NewRuleSet(model.DefaultSettings())
	spec := mustSpec(t, "table-2")
	spec.Orientation = model.OrientationRotatable
	src := newCountingSource(1)

	for p := range rs.Candidates(spec, testBounds(), src) {
		assert.GreaterOrEqual(t, p.Yaw, 0.0)
		assert.Less(t, p.Yaw, 2*math.Pi)
	}
	assert.Equal(t, 5, src.draws)
}

func TestCandidates_AnywhereIsBounded(t *testing.T) {
	rs := NewRuleSet(model.PlannerSettings{AnywhereAttempts: 7})
	spec := mustSpec(t, "pot-1")
	spec.Zone = model.ZoneAnywhere
	b := testBounds()
	src := newCountingSource(3)

	poses := slices.Collect(rs.Candidates(spec, b, src))
	require.Len(t, poses, 7)
	assert.Equal(t, 21, src.draws, "x, y and yaw per attempt")
	for _, p := range poses {
		assert.GreaterOrEqual(t, p.Position.X, b.MinX)
		assert.Less(t, p.Position.X, b.MaxX)
		assert.GreaterOrEqual(t, p.Position.Y, b.MinY)
		assert.Less(t, p.Position.Y, b.MaxY)
	}
}

func TestCandidates_LazyConsumption(t *testing.T) {
	rs := NewRuleSet(model.DefaultSettings())
	spec := mustSpec(t, "pot-1")
	spec.Zone = model.ZoneAnywhere
	src := newCountingSource(3)

	for range rs.Candidates(spec, testBounds(), src) {
		break
	}
	assert.Equal(t, 3, src.draws, "stopping after one candidate must not draw further")
}
