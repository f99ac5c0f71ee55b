package engine

import (
	"fmt"

	"github.com/piwi3910/furnish/internal/model"
)

// Violation kinds reported by AuditLayout.
const (
	ViolationBounds    = "bounds"
	ViolationCollision = "collision"
)

// AuditLayout re-checks the bounds and pairwise separation rules over every
// non-forced item. Forced items are exempt: they are fallback placements that
// were never validated.
//
// A layout produced by the generative planner with the same clearance yields
// no violations. Expert layouts are not validated when planned, so this is
// how their authored poses get checked.
func AuditLayout(layout model.Layout, clearance float64) []model.Violation {
	var violations []model.Violation

	validated := make([]model.PlacedItem, 0, len(layout.Items))
	for _, it := range layout.Items {
		if !it.Forced {
			validated = append(validated, it)
		}
	}

	for i, it := range validated {
		if over := boundsOvershoot(layout.Bounds, it.Pose, it.Spec.Footprint); over > boundsEpsilon {
			violations = append(violations, model.Violation{
				FurnitureID: it.Spec.ID,
				Kind:        ViolationBounds,
				Distance:    over,
			})
		}
		for _, other := range validated[i+1:] {
			dist := planDistance(it.Pose, other.Pose)
			minDist := MinSeparation(it.Spec.Footprint, other.Spec.Footprint, clearance)
			if dist < minDist {
				violations = append(violations, model.Violation{
					FurnitureID: it.Spec.ID,
					OtherID:     other.Spec.ID,
					Kind:        ViolationCollision,
					Distance:    dist,
					Required:    minDist,
				})
			}
		}
	}
	return violations
}

// FormatViolations produces human-readable warning messages.
func FormatViolations(violations []model.Violation) []string {
	var warnings []string
	for _, v := range violations {
		var msg string
		switch v.Kind {
		case ViolationBounds:
			msg = fmt.Sprintf("%q extends %.3f m past the placement bounds", v.FurnitureID, v.Distance)
		default:
			msg = fmt.Sprintf("%q and %q are %.3f m apart, need %.3f m",
				v.FurnitureID, v.OtherID, v.Distance, v.Required)
		}
		warnings = append(warnings, msg)
	}
	return warnings
}
