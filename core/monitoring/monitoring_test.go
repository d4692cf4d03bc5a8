package monitoring

import (
	"errors"
	"testing"
	"time"
)

type recordMonitor struct {
	errs      []error
	recovered any
}

func (r *recordMonitor) CaptureException(err error, _ map[string]string) { r.errs = append(r.errs, err) }
func (r *recordMonitor) Recover()                                        {}
func (r *recordMonitor) Flush(time.Duration)                             {}
func (r *recordMonitor) RecoverValue(v any)                              { r.recovered = v }

func TestCaptureException(t *testing.T) {
	mon := &recordMonitor{}
	Init(mon)
	defer Init(nil)
	CaptureException(nil, nil)
	CaptureException(errors.New("boom"), map[string]string{"module": "test"})
	if len(mon.errs) != 1 {
		t.Fatalf("expected 1 captured error got %d", len(mon.errs))
	}
	Init(nil)
	if _, ok := Current().(NopMonitor); !ok {
		t.Fatalf("expected nop monitor after reset")
	}
}

func TestRecoverRepanics(t *testing.T) {
	mon := &recordMonitor{}
	Init(mon)
	defer Init(nil)
	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("expected re-panic, got %v", r)
		}
		if mon.recovered != "boom" {
			t.Fatalf("panic not reported")
		}
	}()
	func() {
		defer Recover()
		panic("boom")
	}()
}
