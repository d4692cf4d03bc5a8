package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/productionplan/core/events"
	"github.com/kilianp07/productionplan/core/model"
	"github.com/kilianp07/productionplan/core/planlog"
	infralogger "github.com/kilianp07/productionplan/infra/logger"
	inframqtt "github.com/kilianp07/productionplan/infra/mqtt"
	"github.com/kilianp07/productionplan/internal/eventbus"
)

type memStore struct {
	records []planlog.Record
	err     error
}

func (m *memStore) Append(_ context.Context, rec planlog.Record) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memStore) Query(context.Context, planlog.Query) ([]planlog.Record, error) {
	return m.records, nil
}

func (m *memStore) Close() error { return nil }

func scenarioRequest() model.PlanRequest {
	return model.PlanRequest{
		Load:  480,
		Fuels: model.FuelMarket{GasPrice: 13.4, KerosinePrice: 50.8, CO2Price: 20, WindPercent: 60},
		Plants: []model.PlantSpec{
			{Name: "A", Kind: model.GasFired, Efficiency: 0.53, PMin: 100, PMax: 460},
			{Name: "B", Kind: model.WindTurbine, Efficiency: 1, PMin: 0, PMax: 150},
		},
	}
}

func newTestManager(t *testing.T, store planlog.LogStore, pub inframqtt.Publisher) (*PlanManager, *eventbus.Bus[events.Event]) {
	t.Helper()
	ResetMetrics(nil)
	t.Cleanup(func() { ResetMetrics(nil) })
	bus := eventbus.New[events.Event]()
	m, err := NewPlanManager(MeritOrderPlanner{}, bus, store, pub, infralogger.NopLogger{})
	require.NoError(t, err)
	return m, bus
}

func nextEvent(t *testing.T, sub <-chan events.Event) events.Event {
	t.Helper()
	select {
	case ev := <-sub:
		return ev
	case <-time.After(time.Second):
		t.Fatalf("no event published")
		return nil
	}
}

func TestPlanManagerScenario(t *testing.T) {
	store := &memStore{}
	pub := inframqtt.NewMockPublisher()
	m, bus := newTestManager(t, store, pub)
	sub := bus.Subscribe()

	res, err := m.Plan(context.Background(), scenarioRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, PlannerMeritOrder, res.Planner)
	assert.Equal(t, []model.Production{{Name: "B", P: 90}, {Name: "A", P: 390}}, res.Allocation.Productions())
	assert.InDelta(t, 390*13.4/0.53, res.Allocation.TotalCost, 1e-6)

	require.Len(t, store.records, 1)
	assert.Equal(t, res.ID, store.records[0].ID)
	assert.Equal(t, 20.0, store.records[0].Fuels.CO2)

	a, ok := pub.Sent("A")
	require.True(t, ok)
	assert.Equal(t, 390.0, a)

	ev, ok := nextEvent(t, sub).(events.PlanComputed)
	require.True(t, ok)
	assert.Equal(t, res.ID, ev.PlanID)
	assert.Equal(t, 480.0, ev.Load)
}

func TestPlanManagerRejectsInsufficientCapacity(t *testing.T) {
	store := &memStore{}
	m, bus := newTestManager(t, store, nil)
	sub := bus.Subscribe()

	req := model.PlanRequest{
		Load:   10,
		Fuels:  model.FuelMarket{GasPrice: 10},
		Plants: []model.PlantSpec{{Name: "gas", Kind: model.GasFired, Efficiency: 0.5, PMin: 0, PMax: 5}},
	}
	_, err := m.Plan(context.Background(), req)
	require.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.Empty(t, store.records)

	ev, ok := nextEvent(t, sub).(events.PlanRejected)
	require.True(t, ok)
	assert.Equal(t, "insufficient_capacity", ev.Reason)
}

func TestPlanManagerRejectsUnknownKind(t *testing.T) {
	pub := inframqtt.NewMockPublisher()
	m, _ := newTestManager(t, nil, pub)
	req := scenarioRequest()
	req.Plants = append(req.Plants, model.PlantSpec{Name: "sun", Kind: model.PlantKind("solar"), Efficiency: 1, PMax: 50})

	_, err := m.Plan(context.Background(), req)
	require.ErrorIs(t, err, model.ErrUnrecognizedPlantKind)
	assert.Empty(t, pub.Messages, "no setpoint may leave a rejected request")
}

func TestPlanManagerRejectsInvalidLoad(t *testing.T) {
	m, _ := newTestManager(t, nil, nil)
	req := scenarioRequest()
	req.Load = 0
	_, err := m.Plan(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidLoad)
}

func TestPlanManagerSetpointFailure(t *testing.T) {
	pub := inframqtt.NewMockPublisher()
	pub.FailIDs["A"] = true
	m, bus := newTestManager(t, nil, pub)
	sub := bus.Subscribe()

	_, err := m.Plan(context.Background(), scenarioRequest())
	require.NoError(t, err, "setpoint failures must not fail the plan")

	var failed []events.SetpointFailed
	for i := 0; i < 2; i++ {
		if f, ok := nextEvent(t, sub).(events.SetpointFailed); ok {
			failed = append(failed, f)
		}
	}
	require.Len(t, failed, 1)
	assert.Equal(t, "A", failed[0].Plant)
}

func TestPlanManagerStoreErrorIgnored(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	m, _ := newTestManager(t, store, nil)
	_, err := m.Plan(context.Background(), scenarioRequest())
	require.NoError(t, err)
}

func TestPlanManagerCancelledContext(t *testing.T) {
	m, _ := newTestManager(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := m.Plan(ctx, scenarioRequest())
	require.ErrorIs(t, err, context.Canceled)
}

func TestPlanManagerSetPlanner(t *testing.T) {
	m, _ := newTestManager(t, nil, nil)
	m.SetPlanner(NewLPPlanner())
	res, err := m.Plan(context.Background(), scenarioRequest())
	require.NoError(t, err)
	assert.Equal(t, PlannerLP, res.Planner)
	b, _ := res.Allocation.Production("B")
	assert.InDelta(t, 90, b, 1e-6)
}

func TestNewPlanManagerRequiresPlanner(t *testing.T) {
	_, err := NewPlanManager(nil, nil, nil, nil, infralogger.NopLogger{})
	assert.Error(t, err)
}

func TestRejectionReason(t *testing.T) {
	assert.Equal(t, "invalid_load", RejectionReason(ErrInvalidLoad))
	assert.Equal(t, "unknown_kind", RejectionReason(model.ErrUnrecognizedPlantKind))
	assert.Equal(t, "insufficient_capacity", RejectionReason(ErrInsufficientCapacity))
	assert.Equal(t, "error", RejectionReason(errors.New("x")))
}
