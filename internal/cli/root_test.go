package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/furnish/internal/catalog"
	"github.com/piwi3910/furnish/internal/model"
	"github.com/piwi3910/furnish/internal/project"
)

// runCLI executes the command tree with an isolated config file.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := New(&out, &errOut).RootCommand()
	root.SetArgs(append([]string{"--config", filepath.Join(dir, "config.json")}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.0.0", "abc123", "2025-01-01")
	t.Cleanup(func() { SetVersion("dev", "", "") })

	assert.Equal(t, "1.0.0", version)
	assert.Equal(t, "abc123", commit)
	assert.Equal(t, "2025-01-01", date)
}

func TestGenerate_Text(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "generate", "sofa-1", "rug-1", "--seed", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "sofa-1")
	assert.Contains(t, out, "rug-1")
	assert.Contains(t, out, "placed")
}

func TestGenerate_JSONIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	args := []string{"generate", "sofa-1", "table-1", "pot-1", "--seed", "9", "--json"}

	first, err := runCLI(t, dir, args...)
	require.NoError(t, err)
	second, err := runCLI(t, dir, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var layout model.Layout
	require.NoError(t, json.Unmarshal([]byte(first), &layout))
	assert.Equal(t, model.StrategyGenerative, layout.Strategy)
	assert.Len(t, layout.Items, 3)
}

func TestGenerate_CountTruncatesIDs(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "generate", "sofa-1", "table-1", "pot-1", "--count", "1", "--seed", "1", "--json")
	require.NoError(t, err)

	var layout model.Layout
	require.NoError(t, json.Unmarshal([]byte(out), &layout))
	require.Len(t, layout.Items, 1)
	assert.Equal(t, "sofa-1", layout.Items[0].Spec.ID)
}

func TestGenerate_Exports(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"--pdf":      filepath.Join(dir, "plan.pdf"),
		"--dxf":      filepath.Join(dir, "plan.dxf"),
		"--labels":   filepath.Join(dir, "labels.pdf"),
		"--manifest": filepath.Join(dir, "scene.json"),
		"--save":     filepath.Join(dir, "layouts", "living.json"),
	}
	args := []string{"generate", "--count", "4", "--seed", "5"}
	for flag, path := range files {
		args = append(args, flag, path)
	}

	out, err := runCLI(t, dir, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "saved")

	for flag, path := range files {
		info, err := os.Stat(path)
		require.NoError(t, err, flag)
		assert.Positive(t, info.Size(), flag)
	}

	saved, err := project.LoadLayout(files["--save"])
	require.NoError(t, err)
	assert.Equal(t, int64(5), saved.Seed)
	assert.Len(t, saved.Layout.Items, 4)

	cfg, err := project.LoadAppConfig(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{files["--save"]}, cfg.RecentLayouts)
}

func TestGenerate_Brief(t *testing.T) {
	dir := t.TempDir()
	brief := filepath.Join(dir, "brief.toml")
	require.NoError(t, os.WriteFile(brief, []byte(`
name = "Study"
selection = ["shelf-1", "table-1"]
seed = 4

[room]
width = 4.0
depth = 3.5
`), 0644))

	out, err := runCLI(t, dir, "generate", "--brief", brief, "--json")
	require.NoError(t, err)

	var layout model.Layout
	require.NoError(t, json.Unmarshal([]byte(out), &layout))
	assert.Len(t, layout.Items, 2)
	assert.InDelta(t, 2.0-model.DefaultRoomConfig().Margin, layout.Bounds.MaxX, 1e-12)
}

func TestGenerate_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "generate", "--strategy", "feng-shui")
	assert.ErrorIs(t, err, model.ErrUnknownStrategy)

	_, err = runCLI(t, dir, "generate", "--brief", filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	_, err = runCLI(t, dir, "generate", "--catalog", filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestGenerate_CSVCatalog(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "catalog.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(
		"id,category,width,depth,height,zone\n"+
			"bench-1,seating,1.5,0.5,0.45,wall\n"+
			"lamp-1,floor_decor,0.4,0.4,1.6,corner\n"), 0644))

	out, err := runCLI(t, dir, "generate", "bench-1", "lamp-1", "--catalog", csvPath, "--seed", "2", "--json")
	require.NoError(t, err)

	var layout model.Layout
	require.NoError(t, json.Unmarshal([]byte(out), &layout))
	assert.Len(t, layout.Items, 2)
}

func TestCatalog_JSON(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "catalog", "--json")
	require.NoError(t, err)

	var specs []model.FurnitureSpec
	require.NoError(t, json.Unmarshal([]byte(out), &specs))
	assert.Len(t, specs, catalog.Default().Len())
}

func TestCatalog_Table(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "sofa-1*")
	assert.Contains(t, out, "table-2")
}

func TestCompare(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "compare", "--count", "5", "--seed", "8")
	require.NoError(t, err)

	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "Expert Layout")
	assert.Contains(t, out, "Seed 9")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.json")

	_, err := runCLI(t, dir, "generate", "--count", "6", "--seed", "3", "--save", path)
	require.NoError(t, err)

	out, err := runCLI(t, dir, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "no violations")

	box := model.FurnitureSpec{Footprint: model.Footprint{Width: 1, Depth: 1, Height: 1}}
	a, b := box, box
	a.ID, b.ID = "a", "b"
	bad := project.NewSavedLayout("bad", model.Layout{
		Bounds: model.RoomBounds{MinX: -3, MaxX: 3, MinY: -3, MaxY: 3},
		Items: []model.PlacedItem{
			{Spec: a, Pose: model.NewPose(0, 0, 0, 0)},
			{Spec: b, Pose: model.NewPose(0.2, 0, 0, 0), Order: 1},
		},
	})
	badPath := filepath.Join(dir, "bad.json")
	_, err = project.SaveLayout(badPath, bad)
	require.NoError(t, err)

	out, err = runCLI(t, dir, "check", badPath)
	require.Error(t, err)
	assert.Contains(t, out, `"a" and "b"`)
}

func TestLayoutsAndBackup(t *testing.T) {
	dir := t.TempDir()
	layoutsDir := filepath.Join(dir, "layouts")

	out, err := runCLI(t, dir, "layouts", "--dir", layoutsDir)
	require.NoError(t, err)
	assert.Contains(t, out, "no saved layouts")

	_, err = runCLI(t, dir, "generate", "--count", "3", "--seed", "1", "--save", filepath.Join(layoutsDir, "one.json"))
	require.NoError(t, err)

	out, err = runCLI(t, dir, "layouts", "--dir", layoutsDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved layouts (1)")

	backupPath := filepath.Join(dir, "backup.json")
	out, err = runCLI(t, dir, "backup", "export", backupPath, "--dir", layoutsDir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 layouts")

	restoreDir := filepath.Join(dir, "restored")
	out, err = runCLI(t, dir, "backup", "restore", backupPath, "--dir", restoreDir)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "restored config and 1 layouts"), out)

	listed, err := project.ListLayouts(restoreDir)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}
