package dispatch

import (
	"sort"

	"github.com/kilianp07/productionplan/core/model"
)

// Planner distributes a load across cost-annotated plants.
//
// Implementations must not retain or mutate the provided plants and must be
// safe for concurrent use.
type Planner interface {
	Name() string
	Plan(load float64, plants []model.PlantState) model.Allocation
}

// meritOrder returns a copy of plants sorted by ascending unit cost. Plants
// with the same cost keep their input order.
func meritOrder(plants []model.PlantState) []model.PlantState {
	ordered := make([]model.PlantState, len(plants))
	copy(ordered, plants)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].UnitCost < ordered[j].UnitCost
	})
	return ordered
}

// totalCapacity sums the effective maximum output of all plants.
func totalCapacity(plants []model.PlantState) float64 {
	var sum float64
	for _, p := range plants {
		sum += p.EffectiveMax
	}
	return sum
}
