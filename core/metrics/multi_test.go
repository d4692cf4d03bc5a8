package metrics

import (
	"errors"
	"testing"
)

type recordSink struct {
	count int
	err   error
}

func (r *recordSink) RecordPlanResult(PlanResult) error {
	r.count++
	return r.err
}

func (r *recordSink) RecordRejection(RejectionEvent) error {
	r.count++
	return nil
}

type planOnlySink struct{ count int }

func (p *planOnlySink) RecordPlanResult(PlanResult) error {
	p.count++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordPlanResult(PlanResult{}); err != nil {
		t.Fatalf("record result: %v", err)
	}
	if err := m.RecordRejection(RejectionEvent{}); err != nil {
		t.Fatalf("record rejection: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("results not forwarded")
	}
}

func TestMultiSinkSkipsUnsupportedRecorders(t *testing.T) {
	p := &planOnlySink{}
	m := NewMultiSink(p)
	if err := m.RecordRejection(RejectionEvent{}); err != nil {
		t.Fatalf("record rejection: %v", err)
	}
	if err := m.RecordSetpointFailure(SetpointFailureEvent{}); err != nil {
		t.Fatalf("record setpoint failure: %v", err)
	}
	if p.count != 0 {
		t.Fatalf("unexpected calls: %d", p.count)
	}
}

func TestMultiSinkStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	s1 := &recordSink{err: boom}
	s2 := &recordSink{}
	if err := NewMultiSink(s1, s2).RecordPlanResult(PlanResult{}); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if s2.count != 0 {
		t.Fatalf("second sink should not be called")
	}
}
