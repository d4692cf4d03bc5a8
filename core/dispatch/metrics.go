package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels of planRequests.
const (
	outcomePlanned  = "planned"
	outcomeRejected = "rejected"
)

var (
	planRequests    *prometheus.CounterVec
	planDuration    *prometheus.HistogramVec
	setpointsSent   prometheus.Counter
	setpointsFailed prometheus.Counter
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.HistogramVec, prometheus.Counter, prometheus.Counter) {
	req := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plan_requests_total",
			Help: "Number of production plan requests by outcome",
		},
		[]string{"outcome"},
	)
	dur := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "plan_compute_duration_seconds",
			Help:    "Time spent computing a production plan",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		},
		[]string{"planner"},
	)
	sent := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "setpoint_publish_success_total",
			Help: "Number of setpoints published to plants",
		},
	)
	failed := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "setpoint_publish_failure_total",
			Help: "Number of setpoints that could not be published",
		},
	)
	return req, dur, sent, failed
}

func init() {
	planRequests, planDuration, setpointsSent, setpointsFailed = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers planner metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(planRequests, planDuration, setpointsSent, setpointsFailed)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	planRequests, planDuration, setpointsSent, setpointsFailed = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
