package engine

import (
	"fmt"
	"io"
	"math/rand"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/furnish/internal/catalog"
	"github.com/piwi3910/furnish/internal/model"
)

// Request is one layout generation call.
type Request struct {
	Selection []string         // Furniture ids in caller order
	Count     int              // Truncates Selection, or picks this many ids when Selection is empty
	Room      model.RoomConfig // Validated before any item is processed
	Rand      RandomSource     // Nil seeds a new source from the clock
}

// Planner assigns a pose to every resolvable requested item.
type Planner interface {
	Plan(req Request) (model.Layout, error)
}

// Option configures a planner.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger routes planner diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return o
}

// NewPlanner returns the planner implementation selected by strategy.
// An empty strategy means generative.
func NewPlanner(strategy model.Strategy, cat *catalog.Catalog, settings model.PlannerSettings, opts ...Option) (Planner, error) {
	switch strategy {
	case model.StrategyGenerative, "":
		return NewGenerativePlanner(cat, settings, opts...), nil
	case model.StrategyExpert:
		return NewExpertPlanner(cat, DefaultExpertTable(), opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownStrategy, strategy)
	}
}

// GenerateLayout runs the generative planner once.
func GenerateLayout(cat *catalog.Catalog, settings model.PlannerSettings, selection []string, room model.RoomConfig, rnd RandomSource) (model.Layout, error) {
	return NewGenerativePlanner(cat, settings).Plan(Request{
		Selection: selection,
		Room:      room,
		Rand:      rnd,
	})
}

// GenerateExpertLayout runs the expert planner with the default table.
func GenerateExpertLayout(cat *catalog.Catalog, selection []string, room model.RoomConfig) (model.Layout, error) {
	return NewExpertPlanner(cat, DefaultExpertTable()).Plan(Request{
		Selection: selection,
		Room:      room,
	})
}

// categoryPriority orders placement: wall pieces claim walls before seating
// and tables, small floor decor fills in last.
var categoryPriority = map[model.Category]int{
	model.CategoryWallDecor:  1,
	model.CategoryStorage:    2,
	model.CategorySeating:    3,
	model.CategoryTable:      4,
	model.CategoryFloorDecor: 5,
}

// lowestPriority applies to CategoryOther and anything not in the table.
const lowestPriority = 10

// CategoryPriority returns the placement rank of c. Lower is placed first.
func CategoryPriority(c model.Category) int {
	if p, ok := categoryPriority[c]; ok {
		return p
	}
	return lowestPriority
}

// GenerativePlanner places items by pulling rule candidates through a
// collision index, falling back to a deterministic spread when none fits.
type GenerativePlanner struct {
	catalog  *catalog.Catalog
	settings model.PlannerSettings
	rules    *RuleSet
	logger   *log.Logger
}

// NewGenerativePlanner creates a planner over an immutable catalog.
func NewGenerativePlanner(cat *catalog.Catalog, settings model.PlannerSettings, opts ...Option) *GenerativePlanner {
	o := buildOptions(opts)
	return &GenerativePlanner{
		catalog:  cat,
		settings: settings,
		rules:    NewRuleSet(settings),
		logger:   o.logger,
	}
}

// queuedItem tracks one resolved request through the planner.
type queuedItem struct {
	spec  model.FurnitureSpec
	state model.ItemState
}

// Plan resolves the request into a layout. The only error is an invalid room,
// reported before any item is processed.
func (p *GenerativePlanner) Plan(req Request) (model.Layout, error) {
	room, err := model.NewRoom(req.Room)
	if err != nil {
		return model.Layout{}, err
	}
	rnd := req.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	bounds := room.PlacementBounds()
	layout := model.Layout{Strategy: model.StrategyGenerative, Bounds: bounds}

	ids := resolveSelection(p.catalog, req, rnd)
	queue, diags := resolveSpecs(p.catalog, ids, p.logger)
	layout.Diagnostics = append(layout.Diagnostics, diags...)

	// Stable: input order survives among equal priorities
	sort.SliceStable(queue, func(i, j int) bool {
		return CategoryPriority(queue[i].spec.Category) < CategoryPriority(queue[j].spec.Category)
	})

	index := NewCollisionIndex(bounds, p.settings.Clearance)
	attempts := 0
	budget := p.settings.AttemptBudget

	for ordinal := range queue {
		item := &queue[ordinal]
		item.state = model.StateProcessing
		spec := item.spec

		var (
			pose  model.Pose
			found bool
			tried int
		)
		// A spent budget must not pull from the candidate stream, which may draw from rnd.
		exhausted := budget > 0 && attempts >= budget
		if !exhausted {
			for candidate := range p.rules.Candidates(spec, bounds, rnd) {
				if budget > 0 && attempts >= budget {
					exhausted = true
					break
				}
				attempts++
				tried++
				if err := index.Check(candidate, spec.Footprint); err != nil {
					p.logger.Debug("candidate rejected", "id", spec.ID, "candidate", tried, "err", err)
					continue
				}
				pose = candidate
				found = true
				break
			}
		}

		if found {
			item.state = model.StatePlaced
		} else {
			item.state = model.StateForced
			pose = FallbackPose(bounds, spec, ordinal, len(queue))
			kind := model.DiagNoFeasible
			msg := fmt.Sprintf("no valid %s candidate after %d tries, forced onto fallback axis", spec.Zone, tried)
			if exhausted {
				kind = model.DiagBudgetExhausted
				msg = fmt.Sprintf("attempt budget of %d spent, forced onto fallback axis", budget)
			}
			layout.Diagnostics = append(layout.Diagnostics, model.Diagnostic{
				FurnitureID: spec.ID,
				Kind:        kind,
				Message:     msg,
			})
			p.logger.Info("forced placement", "id", spec.ID, "x", pose.Position.X, "y", pose.Position.Y, "reason", kind)
		}

		index.Commit(pose, spec.Footprint)
		layout.Items = append(layout.Items, model.PlacedItem{
			Spec:   spec,
			Pose:   pose,
			Order:  len(layout.Items),
			Forced: item.state == model.StateForced,
		})
	}

	return layout, nil
}

// FallbackPose spreads forced items evenly along the X axis through the
// bounds centre: item k of n sits at MinX + (k+1)*width/(n+1), yaw 0.
func FallbackPose(bounds model.RoomBounds, spec model.FurnitureSpec, ordinal, n int) model.Pose {
	if n < 1 {
		n = 1
	}
	_, cy := bounds.Center()
	step := bounds.Width() / float64(n+1)
	return model.NewPose(bounds.MinX+float64(ordinal+1)*step, cy, spec.HeightOffset, 0)
}

// resolveSelection applies Count to the request's selection, or picks ids
// from the catalog when the selection is empty.
func resolveSelection(cat *catalog.Catalog, req Request, rnd RandomSource) []string {
	if len(req.Selection) == 0 {
		return SelectFurniture(cat, req.Count, rnd)
	}
	ids := req.Selection
	if req.Count > 0 && req.Count < len(ids) {
		ids = ids[:req.Count]
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// resolveSpecs looks every id up, dropping unknown ones with a diagnostic.
func resolveSpecs(cat *catalog.Catalog, ids []string, logger *log.Logger) ([]queuedItem, []model.Diagnostic) {
	queue := make([]queuedItem, 0, len(ids))
	var diags []model.Diagnostic
	for _, id := range ids {
		spec, ok := cat.Lookup(id)
		if !ok {
			logger.Warn("unknown furniture id, skipping", "id", id)
			diags = append(diags, model.Diagnostic{
				FurnitureID: id,
				Kind:        model.DiagUnknownID,
				Message:     fmt.Sprintf("furniture %q is not in the catalog", id),
			})
			continue
		}
		queue = append(queue, queuedItem{spec: spec, state: model.StatePending})
	}
	return queue, diags
}
