// Package costmodel derives the effective output range and the marginal unit
// cost of power plants from the current fuel market.
package costmodel

import (
	"fmt"

	"github.com/kilianp07/productionplan/core/model"
)

// Evaluate returns the state of a plant under the given market conditions.
// Wind turbines are capped by wind availability and produce at zero cost,
// thermal plants keep their nominal range and pay fuel divided by efficiency.
func Evaluate(spec model.PlantSpec, market model.FuelMarket) (model.PlantState, error) {
	st := model.PlantState{Spec: spec}
	switch spec.Kind {
	case model.WindTurbine:
		factor := market.WindFactor() * spec.Efficiency
		st.EffectiveMin = nonNegative(spec.PMin * factor)
		st.EffectiveMax = nonNegative(spec.PMax * factor)
		st.UnitCost = 0
	case model.GasFired:
		st.EffectiveMin = nonNegative(spec.PMin)
		st.EffectiveMax = nonNegative(spec.PMax)
		st.UnitCost = market.GasPrice / spec.Efficiency
	case model.Turbojet:
		st.EffectiveMin = nonNegative(spec.PMin)
		st.EffectiveMax = nonNegative(spec.PMax)
		st.UnitCost = market.KerosinePrice / spec.Efficiency
	default:
		return model.PlantState{}, fmt.Errorf("plant %s: %w: %q", spec.Name, model.ErrUnrecognizedPlantKind, spec.Kind)
	}
	return st, nil
}

// EvaluateAll evaluates every plant in input order. The first unknown kind
// aborts the evaluation and no partial result is returned.
func EvaluateAll(specs []model.PlantSpec, market model.FuelMarket) ([]model.PlantState, error) {
	states := make([]model.PlantState, 0, len(specs))
	for _, spec := range specs {
		st, err := Evaluate(spec, market)
		if err != nil {
			return nil, err
		}
		states = append(states, st)
	}
	return states, nil
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
