package dispatch

import "github.com/kilianp07/productionplan/core/model"

// MeritOrderPlanner saturates plants one after the other in ascending unit
// cost until the load is covered.
//
// Effective minimum output is not enforced: the last plant reached may be
// given less than its minimum.
type MeritOrderPlanner struct{}

// Name implements Planner.
func (MeritOrderPlanner) Name() string { return PlannerMeritOrder }

// Plan implements Planner. Plants never reached keep a production of zero and
// any load left once every plant is saturated is reported as Unmet.
func (MeritOrderPlanner) Plan(load float64, plants []model.PlantState) model.Allocation {
	ordered := meritOrder(plants)
	alloc := model.Allocation{Dispatches: make([]model.Dispatch, len(ordered))}
	remaining := load
	for i, p := range ordered {
		alloc.Dispatches[i] = model.Dispatch{Plant: p, Production: 0}
		if remaining <= 0 {
			continue
		}
		var produced float64
		if remaining > p.EffectiveMax {
			produced = p.EffectiveMax
			remaining -= p.EffectiveMax
		} else {
			produced = remaining
			remaining = 0
		}
		alloc.Dispatches[i].Production = produced
		alloc.TotalCost += produced * p.UnitCost
	}
	if remaining > 0 {
		alloc.Unmet = remaining
	}
	return alloc
}
