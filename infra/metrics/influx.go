package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/productionplan/core/metrics"
	"github.com/kilianp07/productionplan/infra/logger"
)

// InfluxSink writes plan outcomes to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordPlanResult writes one production_plan point and one plant_dispatch
// point per plant.
func (s *InfluxSink) RecordPlanResult(res coremetrics.PlanResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := make([]*write.Point, 0, len(res.Dispatches)+1)
	points = append(points, write.NewPointWithMeasurement("production_plan").
		AddTag("plan_id", res.PlanID).
		AddTag("planner", res.Planner).
		AddField("load_mw", round3(res.Load)).
		AddField("total_cost", round3(res.TotalCost)).
		AddField("unmet_mw", round3(res.Unmet)).
		AddField("gas_price", round3(res.Fuels.GasPrice)).
		AddField("kerosine_price", round3(res.Fuels.KerosinePrice)).
		AddField("wind_percent", round3(res.Fuels.WindPercent)).
		AddField("duration_ms", round3(res.Duration.Seconds()*1000)).
		SetTime(res.Time))
	for _, d := range res.Dispatches {
		points = append(points, write.NewPointWithMeasurement("plant_dispatch").
			AddTag("plan_id", res.PlanID).
			AddTag("plant", d.Plant.Name()).
			AddTag("kind", d.Plant.Spec.Kind.String()).
			AddField("production_mw", round3(d.Production)).
			AddField("unit_cost", round3(d.Plant.UnitCost)).
			AddField("max_mw", round3(d.Plant.EffectiveMax)).
			SetTime(res.Time))
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

// RecordRejection writes a rejected request.
func (s *InfluxSink) RecordRejection(ev coremetrics.RejectionEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("plan_rejected").
		AddTag("reason", ev.Reason).
		AddField("load_mw", round3(ev.Load)).
		AddField("plants", ev.Plants).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSetpointFailure writes a failed setpoint delivery.
func (s *InfluxSink) RecordSetpointFailure(ev coremetrics.SetpointFailureEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("setpoint_failed").
		AddTag("plan_id", ev.PlanID).
		AddTag("plant", ev.Plant).
		AddField("error", ev.Error).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
