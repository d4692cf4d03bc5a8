package events

import (
	"time"

	"github.com/kilianp07/productionplan/core/model"
)

// Event is implemented by every event published on the plan bus.
type Event interface {
	EventName() string
}

// PlanComputed is published after a successful planning run.
type PlanComputed struct {
	PlanID     string
	Planner    string
	Load       float64
	Fuels      model.FuelMarket
	Allocation model.Allocation
	Duration   time.Duration
	Time       time.Time
}

// EventName implements Event.
func (PlanComputed) EventName() string { return "plan_computed" }

// PlanRejected is published when a request fails validation or cost
// derivation.
type PlanRejected struct {
	Reason string
	Err    error
	Load   float64
	Plants int
	Time   time.Time
}

// EventName implements Event.
func (PlanRejected) EventName() string { return "plan_rejected" }

// SetpointFailed is published when a setpoint could not be delivered to a
// plant.
type SetpointFailed struct {
	PlanID string
	Plant  string
	Err    error
	Time   time.Time
}

// EventName implements Event.
func (SetpointFailed) EventName() string { return "setpoint_failed" }
