package mqtt

import (
	"context"
	"fmt"
	"sync"

	coremqtt "github.com/kilianp07/productionplan/core/mqtt"
)

// Publisher mirrors the core mqtt.Publisher interface.
type Publisher = coremqtt.Publisher

// MockPublisher is a simple publisher used in tests.
type MockPublisher struct {
	Messages map[string]float64
	FailIDs  map[string]bool
	mu       sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{
		Messages: make(map[string]float64),
		FailIDs:  make(map[string]bool),
	}
}

// SendSetpoint records the setpoint or returns an error if configured to fail.
func (m *MockPublisher) SendSetpoint(_ context.Context, sp coremqtt.Setpoint) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailIDs[sp.Plant] {
		return "", fmt.Errorf("publish failed")
	}
	m.Messages[sp.Plant] = sp.PowerMW
	return fmt.Sprintf("cmd-%s", sp.Plant), nil
}

// Sent returns the recorded setpoint for a plant.
func (m *MockPublisher) Sent(plant string) (float64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Messages[plant]
	return v, ok
}
