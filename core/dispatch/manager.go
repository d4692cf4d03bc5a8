package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/productionplan/core/costmodel"
	"github.com/kilianp07/productionplan/core/events"
	"github.com/kilianp07/productionplan/core/logger"
	"github.com/kilianp07/productionplan/core/model"
	"github.com/kilianp07/productionplan/core/mqtt"
	"github.com/kilianp07/productionplan/core/planlog"
	"github.com/kilianp07/productionplan/internal/eventbus"
)

// Result is the outcome of PlanManager.Plan.
type Result struct {
	ID         string
	Planner    string
	Allocation model.Allocation
}

// PlanManager turns a request into an allocation and distributes the outcome
// to the plan log, the event bus and the plant controllers.
type PlanManager struct {
	planner   Planner
	bus       eventbus.EventBus[events.Event]
	store     planlog.LogStore
	publisher mqtt.Publisher
	logger    logger.Logger
	now       func() time.Time
	mu        sync.Mutex
}

// NewPlanManager creates a new manager. Only planner and log are required;
// a nil bus, store or publisher disables the matching output.
func NewPlanManager(planner Planner, bus eventbus.EventBus[events.Event], store planlog.LogStore, publisher mqtt.Publisher, log logger.Logger) (*PlanManager, error) {
	if planner == nil || log == nil {
		return nil, fmt.Errorf("dispatch: nil parameter provided to NewPlanManager")
	}
	if store == nil {
		store = planlog.NopStore{}
	}
	return &PlanManager{
		planner:   planner,
		bus:       bus,
		store:     store,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
	}, nil
}

// Planner returns the planner in use.
func (m *PlanManager) Planner() Planner {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.planner
}

// SetPlanner swaps the planner used by later requests.
func (m *PlanManager) SetPlanner(p Planner) {
	if p == nil {
		return
	}
	m.mu.Lock()
	m.planner = p
	m.mu.Unlock()
}

// Store returns the plan log backing the manager.
func (m *PlanManager) Store() planlog.LogStore { return m.store }

// Plan validates the request, derives the plant costs, checks the fleet can
// cover the load and runs the planner. Plants are never partially evaluated:
// an unknown kind aborts the whole request.
func (m *PlanManager) Plan(ctx context.Context, req model.PlanRequest) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := CheckRequest(req); err != nil {
		return Result{}, m.reject(req, err)
	}
	states, err := costmodel.EvaluateAll(req.Plants, req.Fuels)
	if err != nil {
		return Result{}, m.reject(req, err)
	}
	if err := CheckCapacity(req.Load, states); err != nil {
		return Result{}, m.reject(req, err)
	}

	planner := m.Planner()
	start := m.now()
	alloc := planner.Plan(req.Load, states)
	elapsed := time.Since(start)
	planDuration.WithLabelValues(planner.Name()).Observe(elapsed.Seconds())
	planRequests.WithLabelValues(outcomePlanned).Inc()

	res := Result{ID: uuid.NewString(), Planner: planner.Name(), Allocation: alloc}
	m.logger.Infow("plan computed", map[string]any{
		"plan_id":    res.ID,
		"planner":    res.Planner,
		"load":       req.Load,
		"plants":     len(states),
		"total_cost": alloc.TotalCost,
	})

	if err := m.store.Append(ctx, planlog.NewRecord(res.ID, res.Planner, start, req.Load, req.Fuels, alloc)); err != nil {
		m.logger.Errorf("plan log append failed: %v", err)
	}
	if m.bus != nil {
		m.bus.Publish(events.PlanComputed{
			PlanID:     res.ID,
			Planner:    res.Planner,
			Load:       req.Load,
			Fuels:      req.Fuels,
			Allocation: alloc,
			Duration:   elapsed,
			Time:       start,
		})
	}
	m.sendSetpoints(ctx, res.ID, alloc)
	return res, nil
}

// sendSetpoints publishes the production of every plant concurrently.
// Delivery failures are logged and reported on the bus; they never fail the
// plan.
func (m *PlanManager) sendSetpoints(ctx context.Context, planID string, alloc model.Allocation) {
	if m.publisher == nil {
		return
	}
	var wg sync.WaitGroup
	now := m.now()
	for _, d := range alloc.Dispatches {
		wg.Add(1)
		go func(plant string, p float64) {
			defer wg.Done()
			_, err := m.publisher.SendSetpoint(ctx, mqtt.Setpoint{PlanID: planID, Plant: plant, PowerMW: p, Time: now})
			if err == nil {
				setpointsSent.Inc()
				return
			}
			setpointsFailed.Inc()
			m.logger.Warnf("setpoint for %s failed: %v", plant, err)
			if m.bus != nil {
				m.bus.Publish(events.SetpointFailed{PlanID: planID, Plant: plant, Err: err, Time: m.now()})
			}
		}(d.Plant.Name(), d.Production)
	}
	wg.Wait()
}

func (m *PlanManager) reject(req model.PlanRequest, err error) error {
	reason := RejectionReason(err)
	planRequests.WithLabelValues(outcomeRejected).Inc()
	m.logger.Warnf("plan rejected (%s): %v", reason, err)
	if m.bus != nil {
		m.bus.Publish(events.PlanRejected{
			Reason: reason,
			Err:    err,
			Load:   req.Load,
			Plants: len(req.Plants),
			Time:   m.now(),
		})
	}
	return err
}

// RejectionReason maps a planning error to a short label.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidLoad):
		return "invalid_load"
	case errors.Is(err, model.ErrUnrecognizedPlantKind):
		return "unknown_kind"
	case errors.Is(err, ErrInsufficientCapacity):
		return "insufficient_capacity"
	default:
		return "error"
	}
}

// Close releases the plan log and closes the bus.
func (m *PlanManager) Close() error {
	if m.bus != nil {
		m.bus.Close()
	}
	return m.store.Close()
}
