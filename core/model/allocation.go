package model

// Production is the wire representation of one plant's share of the load.
type Production struct {
	Name string  `json:"name"`
	P    float64 `json:"p"`
}

// Dispatch pairs a plant with the production assigned to it by a planner.
type Dispatch struct {
	Plant      PlantState
	Production float64
}

// Cost returns the fuel cost of the dispatched production.
func (d Dispatch) Cost() float64 { return d.Production * d.Plant.UnitCost }

// Allocation is the outcome of a planning run. Dispatches are ordered by
// ascending unit cost.
type Allocation struct {
	Dispatches []Dispatch
	TotalCost  float64
	// Unmet is the part of the load no plant could take. It is only non-zero
	// when the planner is invoked without a prior capacity check.
	Unmet float64
}

// Productions returns the (name, production) pairs in merit order.
func (a Allocation) Productions() []Production {
	out := make([]Production, len(a.Dispatches))
	for i, d := range a.Dispatches {
		out[i] = Production{Name: d.Plant.Name(), P: d.Production}
	}
	return out
}

// TotalProduction sums the production of every plant.
func (a Allocation) TotalProduction() float64 {
	var sum float64
	for _, d := range a.Dispatches {
		sum += d.Production
	}
	return sum
}

// Production returns the production assigned to the named plant.
func (a Allocation) Production(name string) (float64, bool) {
	for _, d := range a.Dispatches {
		if d.Plant.Name() == name {
			return d.Production, true
		}
	}
	return 0, false
}

// PlanRequest groups the inputs of one production plan computation.
type PlanRequest struct {
	Load   float64
	Fuels  FuelMarket
	Plants []PlantSpec
}
