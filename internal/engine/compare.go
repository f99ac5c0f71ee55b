package engine

import (
	"fmt"
	"math/rand"

	"github.com/piwi3910/furnish/internal/catalog"
	"github.com/piwi3910/furnish/internal/model"
)

// Scenario is a named planner configuration to compare.
type Scenario struct {
	Name     string
	Strategy model.Strategy
	Settings model.PlannerSettings
	Room     *model.RoomConfig // Overrides the request room when set
	Seed     int64
}

// ComparisonResult holds the layout and summary counts for one scenario.
type ComparisonResult struct {
	Scenario     Scenario
	Layout       model.Layout
	Err          error
	PlacedCount  int
	ForcedCount  int
	SkippedCount int
	Violations   int
}

// CompareScenarios plans req once per scenario, each with its own seeded
// random source, and returns the results in scenario order.
func CompareScenarios(cat *catalog.Catalog, scenarios []Scenario, req Request) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		res := ComparisonResult{Scenario: scenario}

		planner, err := NewPlanner(scenario.Strategy, cat, scenario.Settings)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		r := req
		r.Rand = rand.New(rand.NewSource(scenario.Seed))
		if scenario.Room != nil {
			r.Room = *scenario.Room
		}
		layout, err := planner.Plan(r)
		if err != nil {
			res.Err = err
			results = append(results, res)
			continue
		}

		res.Layout = layout
		res.ForcedCount = layout.ForcedCount()
		res.PlacedCount = layout.Len() - res.ForcedCount
		res.SkippedCount = len(layout.DiagnosticsOf(model.DiagUnknownID))
		res.Violations = len(AuditLayout(layout, scenario.Settings.Clearance))
		results = append(results, res)
	}

	return results
}

// BuildDefaultScenarios derives what-if alternatives from the current
// settings and room.
func BuildDefaultScenarios(base model.PlannerSettings, room model.RoomConfig, seed int64) []Scenario {
	strategy := base.Strategy
	if strategy == "" {
		strategy = model.StrategyGenerative
	}
	scenarios := []Scenario{
		{Name: "Current Settings", Strategy: strategy, Settings: base, Seed: seed},
	}

	if strategy == model.StrategyGenerative {
		scenarios = append(scenarios, Scenario{
			Name: "Expert Layout", Strategy: model.StrategyExpert, Settings: base, Seed: seed,
		})
	} else {
		scenarios = append(scenarios, Scenario{
			Name: "Generative Layout", Strategy: model.StrategyGenerative, Settings: base, Seed: seed,
		})
	}

	scenarios = append(scenarios, Scenario{
		Name: fmt.Sprintf("Seed %d", seed+1), Strategy: model.StrategyGenerative, Settings: base, Seed: seed + 1,
	})

	if base.Clearance > 0 {
		tight := base
		tight.Clearance = base.Clearance * 0.5
		scenarios = append(scenarios, Scenario{
			Name:     fmt.Sprintf("Clearance %.2fm (half)", tight.Clearance),
			Strategy: model.StrategyGenerative,
			Settings: tight,
			Seed:     seed,
		})
	}

	if room.Margin > 0 {
		noMargin := room
		noMargin.Margin = 0
		scenarios = append(scenarios, Scenario{
			Name:     "No Wall Margin",
			Strategy: model.StrategyGenerative,
			Settings: base,
			Room:     &noMargin,
			Seed:     seed,
		})
	}

	return scenarios
}
