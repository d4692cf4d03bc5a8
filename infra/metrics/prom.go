package metrics

import (
	coremetrics "github.com/kilianp07/productionplan/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records plan outcomes in Prometheus metrics.
type PromSink struct {
	production       *prometheus.GaugeVec
	unitCost         *prometheus.GaugeVec
	totalCost        prometheus.Gauge
	load             prometheus.Gauge
	unmet            prometheus.Gauge
	rejections       *prometheus.CounterVec
	setpointFailures *prometheus.CounterVec
}

// NewPromSink registers plan metrics on the default Prometheus registerer.
// The metrics are exposed by the service /metrics endpoint.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		production: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "plant_production_mw",
			Help: "Production assigned to each plant by the latest plan",
		}, []string{"plant", "kind"}),
		unitCost: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "plant_unit_cost_euro_per_mwh",
			Help: "Unit cost of each plant in the latest plan",
		}, []string{"plant", "kind"}),
		totalCost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "plan_total_cost_euro",
			Help: "Fuel cost of the latest plan",
		}),
		load: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "plan_load_mw",
			Help: "Load requested by the latest plan",
		}),
		unmet: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "plan_unmet_load_mw",
			Help: "Load the latest plan could not cover",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "plan_rejections_total",
			Help: "Total number of rejected plan requests",
		}, []string{"reason"}),
		setpointFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "setpoint_failures_total",
			Help: "Total number of setpoints that could not be delivered",
		}, []string{"plant"}),
	}
	var err error
	if s.production, err = register(reg, s.production); err != nil {
		return nil, err
	}
	if s.unitCost, err = register(reg, s.unitCost); err != nil {
		return nil, err
	}
	if s.totalCost, err = register(reg, s.totalCost); err != nil {
		return nil, err
	}
	if s.load, err = register(reg, s.load); err != nil {
		return nil, err
	}
	if s.unmet, err = register(reg, s.unmet); err != nil {
		return nil, err
	}
	if s.rejections, err = register(reg, s.rejections); err != nil {
		return nil, err
	}
	if s.setpointFailures, err = register(reg, s.setpointFailures); err != nil {
		return nil, err
	}
	return s, nil
}

// register adds c to reg, reusing the collector already registered under the
// same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPlanResult replaces the per-plant gauges with the new plan.
func (s *PromSink) RecordPlanResult(res coremetrics.PlanResult) error {
	s.production.Reset()
	s.unitCost.Reset()
	for _, d := range res.Dispatches {
		kind := d.Plant.Spec.Kind.String()
		s.production.WithLabelValues(d.Plant.Name(), kind).Set(d.Production)
		s.unitCost.WithLabelValues(d.Plant.Name(), kind).Set(d.Plant.UnitCost)
	}
	s.totalCost.Set(res.TotalCost)
	s.load.Set(res.Load)
	s.unmet.Set(res.Unmet)
	return nil
}

// RecordRejection increments the rejection counter for the reason.
func (s *PromSink) RecordRejection(ev coremetrics.RejectionEvent) error {
	s.rejections.WithLabelValues(ev.Reason).Inc()
	return nil
}

// RecordSetpointFailure increments the failure counter for the plant.
func (s *PromSink) RecordSetpointFailure(ev coremetrics.SetpointFailureEvent) error {
	s.setpointFailures.WithLabelValues(ev.Plant).Inc()
	return nil
}
