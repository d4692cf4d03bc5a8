package mqtt

import (
	"context"
	"time"
)

// Setpoint is the production order sent to a single plant.
type Setpoint struct {
	PlanID  string
	Plant   string
	PowerMW float64
	Time    time.Time
}

// Publisher delivers setpoints to plant controllers.
type Publisher interface {
	// SendSetpoint publishes the setpoint and returns the command identifier
	// attached to the message.
	SendSetpoint(ctx context.Context, sp Setpoint) (commandID string, err error)
}
