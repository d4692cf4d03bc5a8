package monitoring

import (
	"errors"
	"testing"

	coremon "github.com/kilianp07/productionplan/core/monitoring"
)

func TestNewSentryMonitor_EmptyDSN(t *testing.T) {
	mon, err := NewSentryMonitor(Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := mon.(coremon.NopMonitor); !ok {
		t.Fatalf("expected NopMonitor got %T", mon)
	}
}

func TestNewSentryMonitor_InvalidDSN(t *testing.T) {
	if _, err := NewSentryMonitor(Config{DSN: "://bad"}); err == nil {
		t.Fatalf("expected error for invalid dsn")
	}
}

func TestNewSentryMonitor_CaptureWithoutTransportErrors(t *testing.T) {
	mon, err := NewSentryMonitor(Config{DSN: "https://public@127.0.0.1:1/1", Environment: "test"})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	mon.CaptureException(errors.New("boom"), map[string]string{"module": "test"})
	mon.CaptureException(nil, nil)
	mon.Flush(0)
}
