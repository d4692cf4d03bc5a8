package metrics

import (
	"context"

	"github.com/kilianp07/productionplan/core/events"
	coremetrics "github.com/kilianp07/productionplan/core/metrics"
	"github.com/kilianp07/productionplan/infra/logger"
	"github.com/kilianp07/productionplan/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for events.
// It stops when the context is canceled or the bus is closed. The returned
// channel is closed once the collector has exited.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus[events.Event], sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	log := logger.New("metrics_collector")
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := record(sink, ev); err != nil {
					log.Errorf("record %s: %v", ev.EventName(), err)
				}
			}
		}
	}()
	return done
}

func record(sink coremetrics.MetricsSink, ev events.Event) error {
	switch e := ev.(type) {
	case events.PlanComputed:
		return sink.RecordPlanResult(coremetrics.PlanResult{
			PlanID:     e.PlanID,
			Planner:    e.Planner,
			Load:       e.Load,
			Fuels:      e.Fuels,
			Dispatches: e.Allocation.Dispatches,
			TotalCost:  e.Allocation.TotalCost,
			Unmet:      e.Allocation.Unmet,
			Duration:   e.Duration,
			Time:       e.Time,
		})
	case events.PlanRejected:
		if r, ok := sink.(coremetrics.RejectionRecorder); ok {
			return r.RecordRejection(coremetrics.RejectionEvent{
				Reason: e.Reason,
				Load:   e.Load,
				Plants: e.Plants,
				Time:   e.Time,
			})
		}
	case events.SetpointFailed:
		if r, ok := sink.(coremetrics.SetpointFailureRecorder); ok {
			msg := ""
			if e.Err != nil {
				msg = e.Err.Error()
			}
			return r.RecordSetpointFailure(coremetrics.SetpointFailureEvent{
				PlanID: e.PlanID,
				Plant:  e.Plant,
				Error:  msg,
				Time:   e.Time,
			})
		}
	}
	return nil
}
