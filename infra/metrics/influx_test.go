package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/productionplan/core/metrics"
	"github.com/kilianp07/productionplan/core/model"
)

func bodyLines(body string) []string {
	var out []string
	for _, l := range strings.Split(strings.TrimSpace(body), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func TestInfluxSink_RecordPlanResult(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer sink.Close()
	now := time.Unix(1700000000, 0)
	wind := model.PlantState{
		Spec:         model.PlantSpec{Name: "windpark1", Kind: model.WindTurbine, Efficiency: 1, PMax: 150},
		EffectiveMax: 90,
	}
	res := coremetrics.PlanResult{
		PlanID:     "plan-1",
		Planner:    "merit_order",
		Load:       90,
		Fuels:      model.FuelMarket{GasPrice: 13.4, KerosinePrice: 50.8, WindPercent: 60},
		Dispatches: []model.Dispatch{{Plant: wind, Production: 90}},
		Time:       now,
	}
	if err := sink.RecordPlanResult(res); err != nil {
		t.Fatalf("record error: %v", err)
	}
	plan := write.NewPointWithMeasurement("production_plan").
		AddTag("plan_id", "plan-1").
		AddTag("planner", "merit_order").
		AddField("load_mw", 90.0).
		AddField("total_cost", 0.0).
		AddField("unmet_mw", 0.0).
		AddField("gas_price", 13.4).
		AddField("kerosine_price", 50.8).
		AddField("wind_percent", 60.0).
		AddField("duration_ms", 0.0).
		SetTime(now)
	plant := write.NewPointWithMeasurement("plant_dispatch").
		AddTag("plan_id", "plan-1").
		AddTag("plant", "windpark1").
		AddTag("kind", "windturbine").
		AddField("production_mw", 90.0).
		AddField("unit_cost", 0.0).
		AddField("max_mw", 90.0).
		SetTime(now)
	lines := bodyLines(body)
	exp1 := strings.TrimSpace(write.PointToLineProtocol(plan, time.Nanosecond))
	exp2 := strings.TrimSpace(write.PointToLineProtocol(plant, time.Nanosecond))
	if len(lines) != 2 || lines[0] != exp1 || lines[1] != exp2 {
		t.Errorf("unexpected body: %#v", lines)
	}
}

func TestInfluxSink_RecordRejection(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL+"/api/v2/write", "token", "org", "bucket")
	defer sink.Close()
	now := time.Unix(1700000000, 0)
	if err := sink.RecordRejection(coremetrics.RejectionEvent{Reason: "insufficient_capacity", Load: 10, Plants: 1, Time: now}); err != nil {
		t.Fatalf("record error: %v", err)
	}
	p := write.NewPointWithMeasurement("plan_rejected").
		AddTag("reason", "insufficient_capacity").
		AddField("load_mw", 10.0).
		AddField("plants", 1).
		SetTime(now)
	if strings.TrimSpace(body) != strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond)) {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestInfluxSink_WriteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	sink := NewInfluxSink(srv.URL, "token", "org", "bucket")
	defer sink.Close()
	if err := sink.RecordSetpointFailure(coremetrics.SetpointFailureEvent{Plant: "p1", Error: "x", Time: time.Now()}); err == nil {
		t.Fatalf("expected write error")
	}
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(srv.URL+"/api/v2/write", "tok", "org", "bucket")
	if _, ok := sink.(*InfluxSink); ok {
		t.Fatalf("expected NopSink on failing health check")
	}
	if !called {
		t.Fatalf("health endpoint not called")
	}
}
