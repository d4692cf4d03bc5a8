// Package app wires the configuration into a running production plan
// service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kilianp07/productionplan/api/plans"
	"github.com/kilianp07/productionplan/api/productionplan"
	"github.com/kilianp07/productionplan/config"
	"github.com/kilianp07/productionplan/core/dispatch"
	"github.com/kilianp07/productionplan/core/events"
	coremetrics "github.com/kilianp07/productionplan/core/metrics"
	coremon "github.com/kilianp07/productionplan/core/monitoring"
	coremqtt "github.com/kilianp07/productionplan/core/mqtt"
	"github.com/kilianp07/productionplan/core/planlog"
	"github.com/kilianp07/productionplan/infra/logger"
	"github.com/kilianp07/productionplan/infra/metrics"
	"github.com/kilianp07/productionplan/infra/monitoring"
	"github.com/kilianp07/productionplan/infra/mqtt"
	"github.com/kilianp07/productionplan/internal/eventbus"
)

const shutdownTimeout = 5 * time.Second

// Service orchestrates the plan manager, its outputs and the HTTP server.
type Service struct {
	Manager *dispatch.PlanManager

	server        *http.Server
	mux           *http.ServeMux
	mqtt          *mqtt.PahoClient
	log           logger.Logger
	stopCollector context.CancelFunc
	collectorDone <-chan struct{}
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.Configure(cfg.Log)
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	planner, err := dispatch.NewPlanner(cfg.Planner)
	if err != nil {
		return nil, fmt.Errorf("planner: %w", err)
	}
	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	store, err := planlog.Open(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("plan log: %w", err)
	}

	svc := &Service{log: logg}
	var publisher coremqtt.Publisher
	if cfg.MQTT.Enabled() {
		client, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		svc.mqtt = client
		publisher = client
	}

	bus := eventbus.New[events.Event]()
	manager, err := dispatch.NewPlanManager(planner, bus, store, publisher, logger.New("plan_manager"))
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("plan manager: %w", err)
	}
	svc.Manager = manager

	ctx, cancel := context.WithCancel(context.Background())
	svc.stopCollector = cancel
	svc.collectorDone = metrics.StartEventCollector(ctx, bus, sink)

	svc.mux = http.NewServeMux()
	svc.mux.Handle("/productionplan", productionplan.NewHandler(manager))
	svc.mux.Handle("/api/plans/logs", plans.NewLogHandler(store, cfg.Server.LogToken))
	svc.mux.Handle("/metrics", promhttp.Handler())
	svc.mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	svc.server = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      svc.mux,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
	}
	logg.Infow("service configured", map[string]any{
		"addr":    cfg.Server.Addr,
		"planner": planner.Name(),
		"mqtt":    cfg.MQTT.Enabled(),
		"logging": cfg.Logging.Backend,
	})
	return svc, nil
}

// Handler returns the HTTP routes of the service.
func (s *Service) Handler() http.Handler { return s.mux }

// Run serves HTTP and blocks until the context is cancelled, then shuts the
// server down gracefully.
func (s *Service) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	err := s.Manager.Close()
	s.stopCollector()
	<-s.collectorDone
	if s.mqtt != nil {
		s.mqtt.Disconnect()
	}
	coremon.Flush(2 * time.Second)
	return err
}
