package cli

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/furnish/internal/engine"
	"github.com/piwi3910/furnish/internal/export"
	"github.com/piwi3910/furnish/internal/importer"
	"github.com/piwi3910/furnish/internal/model"
	"github.com/piwi3910/furnish/internal/project"
)

// recentLayoutLimit caps AppConfig.RecentLayouts.
const recentLayoutLimit = 10

// planFlags are the inputs shared by generate and compare.
type planFlags struct {
	count       int
	seed        int64
	strategy    string
	briefPath   string
	catalogPath string
	roomDXF     string
}

func (f *planFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.count, "count", "n", 0, "number of pieces to select, or to keep from the given ids")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (default: clock)")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "planner strategy: generative or expert")
	cmd.Flags().StringVar(&f.briefPath, "brief", "", "TOML design brief")
	cmd.Flags().StringVar(&f.catalogPath, "catalog", "", "CSV or XLSX catalog (default: built-in)")
	cmd.Flags().StringVar(&f.roomDXF, "room-dxf", "", "take room width and depth from a DXF floor outline")
}

// planInput is a fully resolved planning job.
type planInput struct {
	brief project.Brief
	seed  int64
}

// resolve merges config, brief, flags and positional ids, in increasing
// precedence.
func (f *planFlags) resolve(cmd *cobra.Command, c *CLI, args []string, logger *log.Logger) (planInput, error) {
	brief := project.BriefFromConfig(c.config)
	if f.briefPath != "" {
		b, err := project.LoadBrief(f.briefPath, c.config)
		if err != nil {
			return planInput{}, err
		}
		brief = b
		logger.Debug("brief loaded", "path", f.briefPath, "name", brief.Name)
	}

	if len(args) > 0 {
		brief.Selection = args
		brief.Count = 0
	}
	if cmd.Flags().Changed("count") {
		brief.Count = f.count
	}
	if f.strategy != "" {
		brief.Strategy = model.Strategy(f.strategy)
		brief.Settings.Strategy = brief.Strategy
	}
	if f.catalogPath != "" {
		brief.Catalog = f.catalogPath
	}

	if f.roomDXF != "" {
		res := importer.ImportRoomDXF(f.roomDXF, brief.Room)
		for _, w := range res.Warnings {
			logger.Warn("room import", "path", f.roomDXF, "warning", w)
		}
		if len(res.Errors) > 0 {
			return planInput{}, fmt.Errorf("failed to import room %s:\n%s", f.roomDXF, joinLines(res.Errors))
		}
		if res.Found {
			brief.Room = res.Room
			logger.Info("room imported", "width", res.Room.Width, "depth", res.Room.Depth)
		}
	}

	in := planInput{brief: brief}
	switch {
	case cmd.Flags().Changed("seed"):
		in.seed = f.seed
	case brief.HasSeed:
		in.seed = brief.Seed
	default:
		in.seed = time.Now().UnixNano()
	}
	return in, nil
}

func (in planInput) request() engine.Request {
	return engine.Request{
		Selection: in.brief.Selection,
		Count:     in.brief.Count,
		Room:      in.brief.Room,
		Rand:      rand.New(rand.NewSource(in.seed)),
	}
}

func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags      planFlags
		asJSON     bool
		pdfPath    string
		dxfPath    string
		labelsPath string
		manifest   string
		savePath   string
	)

	cmd := &cobra.Command{
		Use:   "generate [ids...]",
		Short: "Plan a layout",
		Long: `Plan a layout for the given furniture ids. With no ids, --count pieces
are selected from the catalog, essentials first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			in, err := flags.resolve(cmd, c, args, logger)
			if err != nil {
				return err
			}
			cat, err := loadCatalog(logger, in.brief.Catalog)
			if err != nil {
				return err
			}
			planner, err := engine.NewPlanner(in.brief.Settings.Strategy, cat, in.brief.Settings, engine.WithLogger(logger))
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			layout, err := planner.Plan(in.request())
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Planned %d items with seed %d", layout.Len(), in.seed))

			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(layout); err != nil {
					return fmt.Errorf("failed to encode layout: %w", err)
				}
			} else {
				printLayout(c.out, layout)
			}

			exports := []struct {
				path  string
				kind  string
				write func(string, model.Layout) error
			}{
				{pdfPath, "floor plan", export.ExportPDF},
				{dxfPath, "DXF", export.ExportDXF},
				{labelsPath, "labels", export.ExportLabels},
				{manifest, "manifest", export.ExportManifest},
			}
			for _, e := range exports {
				if e.path == "" {
					continue
				}
				if err := e.write(e.path, layout); err != nil {
					return fmt.Errorf("failed to export %s: %w", e.kind, err)
				}
				logger.Info("exported", "kind", e.kind, "path", e.path)
			}

			if savePath != "" {
				return c.saveLayout(savePath, in, layout, logger)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write a PDF floor plan")
	cmd.Flags().StringVar(&dxfPath, "dxf", "", "write a DXF floor plan")
	cmd.Flags().StringVar(&labelsPath, "labels", "", "write QR placement tags as PDF")
	cmd.Flags().StringVar(&manifest, "manifest", "", "write the scene manifest as JSON")
	cmd.Flags().StringVar(&savePath, "save", "", "save the layout record as JSON")
	return cmd
}

func (c *CLI) saveLayout(path string, in planInput, layout model.Layout, logger *log.Logger) error {
	name := in.brief.Name
	if name == "" {
		name = "layout"
	}
	saved := project.NewSavedLayout(name, layout)
	saved.Seed = in.seed
	saved.Room = in.brief.Room
	saved.Settings = in.brief.Settings
	saved.Selection = in.brief.Selection

	saved, err := project.SaveLayout(path, saved)
	if err != nil {
		return err
	}
	printSuccess(c.out, "saved %s as %s", saved.ID, path)

	project.AddRecentLayout(&c.config, path, recentLayoutLimit)
	if err := project.SaveAppConfig(c.configPath, c.config); err != nil {
		logger.Warn("failed to update recent layouts", "err", err)
	}
	return nil
}
