package dispatch

import (
	"errors"
	"fmt"

	"github.com/kilianp07/productionplan/core/model"
)

var (
	// ErrInvalidLoad is returned for a non-positive load or an empty fleet.
	ErrInvalidLoad = errors.New("invalid load")
	// ErrInsufficientCapacity is returned when the fleet cannot cover the load.
	ErrInsufficientCapacity = errors.New("insufficient capacity")
)

// capacityTolerance absorbs rounding in the effective range derivation.
const capacityTolerance = 1e-9

// CheckRequest rejects requests the planner cannot meaningfully handle.
func CheckRequest(req model.PlanRequest) error {
	if req.Load <= 0 {
		return fmt.Errorf("%w: load must be positive, got %v", ErrInvalidLoad, req.Load)
	}
	if len(req.Plants) == 0 {
		return fmt.Errorf("%w: no power plant provided", ErrInvalidLoad)
	}
	return nil
}

// CheckCapacity verifies that the plants can cover the load at full output.
func CheckCapacity(load float64, plants []model.PlantState) error {
	capacity := totalCapacity(plants)
	if capacity+capacityTolerance < load {
		return fmt.Errorf("%w: load %.1f MW exceeds available capacity %.1f MW", ErrInsufficientCapacity, load, capacity)
	}
	return nil
}
