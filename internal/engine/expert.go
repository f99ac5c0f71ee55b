package engine

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/furnish/internal/catalog"
	"github.com/piwi3910/furnish/internal/model"
)

// ExpertTable maps furniture ids to hand-authored poses.
type ExpertTable map[string]model.Pose

// DefaultExpertTable returns the designer layout for the built-in catalog
// in a 6x6 m room.
func DefaultExpertTable() ExpertTable {
	return ExpertTable{
		"sofa-1":     model.NewPose(0, -2.2, 0, 0),
		"rug-1":      model.NewPose(0, -1.8, 0.01, 0),
		"table-1":    model.NewPose(2.4, -2.4, 0, 0),
		"painting-1": model.NewPose(0, -2.9, 1.6, 0),
		"pot-1":      model.NewPose(-2.5, -2.5, 0, math.Pi/6),
		"shelf-1":    model.NewPose(-1.8, -2.7, 0, 0),
	}
}

// ExpertPlanner returns fixed poses from a table instead of searching.
// Poses are trusted as authored and are not validated.
type ExpertPlanner struct {
	catalog *catalog.Catalog
	table   ExpertTable
	logger  *log.Logger
}

// NewExpertPlanner creates a planner over cat using table.
func NewExpertPlanner(cat *catalog.Catalog, table ExpertTable, opts ...Option) *ExpertPlanner {
	o := buildOptions(opts)
	return &ExpertPlanner{catalog: cat, table: table, logger: o.logger}
}

// Plan places items in input order. Catalogued ids missing from the table
// are forced onto the fallback axis.
func (p *ExpertPlanner) Plan(req Request) (model.Layout, error) {
	room, err := model.NewRoom(req.Room)
	if err != nil {
		return model.Layout{}, err
	}
	bounds := room.PlacementBounds()
	layout := model.Layout{Strategy: model.StrategyExpert, Bounds: bounds}

	var ids []string
	if len(req.Selection) == 0 && req.Rand == nil {
		// No randomness needed: take the essential set in catalog order.
		ids = SelectFurniture(p.catalog, req.Count, nil)
	} else {
		ids = resolveSelection(p.catalog, req, req.Rand)
	}

	queue, diags := resolveSpecs(p.catalog, ids, p.logger)
	layout.Diagnostics = append(layout.Diagnostics, diags...)

	for ordinal, item := range queue {
		spec := item.spec
		pose, ok := p.table[spec.ID]
		if !ok {
			pose = FallbackPose(bounds, spec, ordinal, len(queue))
			layout.Diagnostics = append(layout.Diagnostics, model.Diagnostic{
				FurnitureID: spec.ID,
				Kind:        model.DiagNoExpertPose,
				Message:     fmt.Sprintf("no authored pose for %q, forced onto fallback axis", spec.ID),
			})
			p.logger.Info("no expert pose", "id", spec.ID)
		}
		layout.Items = append(layout.Items, model.PlacedItem{
			Spec:   spec,
			Pose:   pose,
			Order:  ordinal,
			Forced: !ok,
		})
	}
	return layout, nil
}
