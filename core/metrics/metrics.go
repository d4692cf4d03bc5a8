package metrics

import (
	"time"

	"github.com/kilianp07/productionplan/core/model"
)

// PlanResult represents one computed production plan to be recorded.
type PlanResult struct {
	PlanID     string
	Planner    string
	Load       float64
	Fuels      model.FuelMarket
	Dispatches []model.Dispatch
	TotalCost  float64
	Unmet      float64
	Duration   time.Duration
	Time       time.Time
}

// MetricsSink records plan results for observability purposes.
type MetricsSink interface {
	RecordPlanResult(res PlanResult) error
}

// RejectionEvent captures a request refused before or during planning.
type RejectionEvent struct {
	Reason string
	Load   float64
	Plants int
	Time   time.Time
}

// RejectionRecorder records rejected requests.
type RejectionRecorder interface {
	RecordRejection(ev RejectionEvent) error
}

// SetpointFailureEvent captures a setpoint that could not be delivered.
type SetpointFailureEvent struct {
	PlanID string
	Plant  string
	Error  string
	Time   time.Time
}

// SetpointFailureRecorder records setpoint delivery failures.
type SetpointFailureRecorder interface {
	RecordSetpointFailure(ev SetpointFailureEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlanResult(PlanResult) error                { return nil }
func (NopSink) RecordRejection(RejectionEvent) error             { return nil }
func (NopSink) RecordSetpointFailure(SetpointFailureEvent) error { return nil }
