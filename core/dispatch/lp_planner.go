package dispatch

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/kilianp07/productionplan/core/model"
)

// LPPlanner solves the allocation as a linear program: minimise the fuel
// cost subject to the load balance and each plant's effective maximum. It
// shares the merit-order relaxation (no minimum output, no integrality) and
// serves as a cross-check of the greedy planner.
type LPPlanner struct {
	// Tolerance is passed to the simplex solver and used to verify the load
	// balance of the solution.
	Tolerance float64
	fallback  MeritOrderPlanner
}

// ErrInfeasible indicates the LP had no feasible solution meeting the load.
var ErrInfeasible = errors.New("lp infeasible")

// NewLPPlanner returns an LP planner with the default tolerance.
func NewLPPlanner() LPPlanner {
	return LPPlanner{Tolerance: defaultLPTolerance}
}

// solveLP runs the simplex algorithm on
//
//	min  c·x
//	s.t. Σx = target, 0 ≤ x ≤ caps
//
// lp.Convert splits free variables into x⁺ - x⁻, so the bounds are passed
// as inequality rows and x is rebuilt from both halves.
func solveLP(costs, caps []float64, target, tol float64) ([]float64, error) {
	n := len(caps)
	g := mat.NewDense(2*n, n, nil)
	h := make([]float64, 2*n)
	for i, c := range caps {
		g.Set(i, i, 1)
		h[i] = c
		g.Set(n+i, i, -1)
	}
	a := mat.NewDense(1, n, nil)
	for i := 0; i < n; i++ {
		a.Set(0, i, 1)
	}
	b := []float64{target}

	cStd, aStd, bStd := lp.Convert(costs, g, h, a, b)
	_, sol, err := lp.Simplex(cStd, aStd, bStd, tol, nil)
	if err != nil {
		return nil, err
	}
	x := make([]float64, n)
	for i := range x {
		x[i] = sol[i] - sol[n+i]
	}
	return x, nil
}

// lpSolve points to the function used to solve the LP. Tests override it to
// simulate solver failures.
var lpSolve = solveLP

// Name implements Planner.
func (LPPlanner) Name() string { return PlannerLP }

func (p LPPlanner) tolerance() float64 {
	if p.Tolerance <= 0 {
		return defaultLPTolerance
	}
	return p.Tolerance
}

// PlanStrict solves the LP and returns ErrInfeasible when the solver fails or
// the load cannot be met. No fallback is applied.
func (p LPPlanner) PlanStrict(load float64, plants []model.PlantState) (model.Allocation, error) {
	ordered := meritOrder(plants)
	alloc := model.Allocation{Dispatches: make([]model.Dispatch, len(ordered))}
	for i, st := range ordered {
		alloc.Dispatches[i] = model.Dispatch{Plant: st}
	}
	if len(ordered) == 0 || load <= 0 {
		return alloc, nil
	}

	costs := make([]float64, len(ordered))
	caps := make([]float64, len(ordered))
	for i, st := range ordered {
		costs[i] = st.UnitCost
		caps[i] = st.EffectiveMax
	}
	tol := p.tolerance()
	sol, err := lpSolve(costs, caps, load, tol)
	if err != nil {
		return alloc, errors.Join(ErrInfeasible, err)
	}

	var sum float64
	for i := range ordered {
		x := sol[i]
		if x < 0 {
			x = 0
		}
		if x > caps[i] {
			x = caps[i]
		}
		alloc.Dispatches[i].Production = x
		alloc.TotalCost += x * costs[i]
		sum += x
	}
	if math.Abs(sum-load) > math.Max(tol, 1e-6)*math.Max(1, load) {
		return alloc, ErrInfeasible
	}
	return alloc, nil
}

// Plan implements Planner. When the LP cannot be solved the merit-order
// planner is used instead.
func (p LPPlanner) Plan(load float64, plants []model.PlantState) model.Allocation {
	alloc, err := p.PlanStrict(load, plants)
	if err != nil {
		return p.fallback.Plan(load, plants)
	}
	return alloc
}
