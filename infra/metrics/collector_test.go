package metrics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kilianp07/productionplan/core/events"
	coremetrics "github.com/kilianp07/productionplan/core/metrics"
	"github.com/kilianp07/productionplan/core/model"
	"github.com/kilianp07/productionplan/internal/eventbus"
)

type captureSink struct {
	mu         sync.Mutex
	plans      []coremetrics.PlanResult
	rejections []coremetrics.RejectionEvent
	failures   []coremetrics.SetpointFailureEvent
}

func (c *captureSink) RecordPlanResult(r coremetrics.PlanResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plans = append(c.plans, r)
	return nil
}

func (c *captureSink) RecordRejection(ev coremetrics.RejectionEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rejections = append(c.rejections, ev)
	return nil
}

func (c *captureSink) RecordSetpointFailure(ev coremetrics.SetpointFailureEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = append(c.failures, ev)
	return nil
}

func TestEventCollectorRecordsEvents(t *testing.T) {
	bus := eventbus.New[events.Event]()
	sink := &captureSink{}
	ctx, cancel := context.WithCancel(context.Background())
	done := StartEventCollector(ctx, bus, sink)

	alloc := model.Allocation{TotalCost: 42}
	bus.Publish(events.PlanComputed{PlanID: "p1", Planner: "merit_order", Load: 10, Allocation: alloc})
	bus.Publish(events.PlanRejected{Reason: "invalid_load"})
	bus.Publish(events.SetpointFailed{PlanID: "p1", Plant: "gas", Err: errors.New("offline")})

	deadline := time.Now().Add(time.Second)
	for {
		sink.mu.Lock()
		n := len(sink.plans) + len(sink.rejections) + len(sink.failures)
		sink.mu.Unlock()
		if n == 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("events not recorded, got %d", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-done

	if sink.plans[0].PlanID != "p1" || sink.plans[0].TotalCost != 42 {
		t.Fatalf("unexpected plan %+v", sink.plans[0])
	}
	if sink.rejections[0].Reason != "invalid_load" {
		t.Fatalf("unexpected rejection %+v", sink.rejections[0])
	}
	if sink.failures[0].Error != "offline" {
		t.Fatalf("unexpected failure %+v", sink.failures[0])
	}
}

func TestEventCollectorStopsOnClose(t *testing.T) {
	bus := eventbus.New[events.Event]()
	done := StartEventCollector(context.Background(), bus, coremetrics.NopSink{})
	bus.Close()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("collector did not stop")
	}
}

func TestEventCollectorNilBus(t *testing.T) {
	done := StartEventCollector(context.Background(), nil, coremetrics.NopSink{})
	select {
	case <-done:
	default:
		t.Fatalf("expected closed channel")
	}
}
