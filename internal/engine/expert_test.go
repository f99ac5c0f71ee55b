package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/furnish/internal/catalog"
	"github.com/piwi3910/furnish/internal/model"
)

func TestExpert_ReturnsAuthoredPoses(t *testing.T) {
	layout, err := GenerateExpertLayout(catalog.Default(),
		[]string{"pot-1", "sofa-1", "painting-1"}, model.DefaultRoomConfig())
	require.NoError(t, err)

	assert.Equal(t, model.StrategyExpert, layout.Strategy)
	assert.Equal(t, []string{"pot-1", "sofa-1", "painting-1"}, itemIDs(layout), "input order is kept")
	assert.Equal(t, 0, layout.ForcedCount())

	pot := layout.Items[0]
	assert.InDelta(t, -2.5, pot.Pose.Position.X, 1e-12)
	assert.InDelta(t, -2.5, pot.Pose.Position.Y, 1e-12)
	assert.InDelta(t, math.Pi/6, pot.Pose.Yaw, 1e-12)

	painting := layout.Items[2]
	assert.InDelta(t, -2.9, painting.Pose.Position.Y, 1e-12)
	assert.InDelta(t, 1.6, painting.Pose.Position.Z, 1e-12)
}

func TestExpert_MissingPoseIsForced(t *testing.T) {
	layout, err := GenerateExpertLayout(catalog.Default(),
		[]string{"sofa-1", "table-2", "ghost", "pot-1"}, model.DefaultRoomConfig())
	require.NoError(t, err)
	require.Equal(t, 3, layout.Len())

	table := layout.Items[1]
	assert.Equal(t, "table-2", table.Spec.ID)
	assert.True(t, table.Forced)
	// Ordinal 1 of 3 lands on the bounds centre
	assert.InDelta(t, 0, table.Pose.Position.X, 1e-12)
	assert.InDelta(t, 0, table.Pose.Position.Y, 1e-12)

	require.Len(t, layout.DiagnosticsOf(model.DiagNoExpertPose), 1)
	unknown := layout.DiagnosticsOf(model.DiagUnknownID)
	require.Len(t, unknown, 1)
	assert.Equal(t, "ghost", unknown[0].FurnitureID)
}

func TestExpert_EmptySelectionUsesWholeCatalog(t *testing.T) {
	cat := catalog.Default()
	layout, err := NewExpertPlanner(cat, DefaultExpertTable()).Plan(Request{Room: model.DefaultRoomConfig()})
	require.NoError(t, err)
	assert.Equal(t, cat.Len(), layout.Len())
	assert.Equal(t, 1, layout.ForcedCount())
}

func TestExpert_CustomTable(t *testing.T) {
	table := ExpertTable{"rug-1": model.NewPose(1, 1, 0.01, 0)}
	layout, err := NewExpertPlanner(catalog.Default(), table).Plan(Request{
		Selection: []string{"rug-1"},
		Room:      model.DefaultRoomConfig(),
	})
	require.NoError(t, err)
	require.Len(t, layout.Items, 1)
	assert.Equal(t, model.NewPose(1, 1, 0.01, 0), layout.Items[0].Pose)
}

func TestExpert_InvalidRoom(t *testing.T) {
	_, err := GenerateExpertLayout(catalog.Default(), []string{"sofa-1"}, model.RoomConfig{Width: 5, Depth: 5})
	assert.ErrorIs(t, err, model.ErrInvalidRoom)
}
