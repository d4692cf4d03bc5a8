package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kilianp07/productionplan/core/dispatch"
	"github.com/kilianp07/productionplan/core/planlog"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

//nolint:gocyclo
func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `server:
  addr: ":9000"
  log_token: "secret"
planner:
  planner: "lp"
  lp_tolerance: 0.0001
mqtt:
  broker: "tcp://localhost:1883"
  client_id: "cli"
  username: "user"
  password: "pass"
  topic_prefix: "site1"
  use_tls: false
metrics:
  sinks:
    - type: "nop"
logging:
  backend: "sqlite"
  path: "plans.db"
log:
  level: "debug"
  format: "console"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"server.addr", cfg.Server.Addr, ":9000"},
		{"server.log_token", cfg.Server.LogToken, "secret"},
		{"server.read_timeout_seconds", cfg.Server.ReadTimeoutSeconds, 10},
		{"planner", cfg.Planner.Planner, dispatch.PlannerLP},
		{"lp_tolerance", cfg.Planner.LPTolerance, 0.0001},
		{"broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"client_id", cfg.MQTT.ClientID, "cli"},
		{"username", cfg.MQTT.Username, "user"},
		{"password", cfg.MQTT.Password, "pass"},
		{"topic_prefix", cfg.MQTT.TopicPrefix, "site1"},
		{"max_retries", cfg.MQTT.MaxRetries, 3},
		{"use_tls", cfg.MQTT.UseTLS, false},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"logging.backend", cfg.Logging.Backend, planlog.BackendSQLite},
		{"log.level", cfg.Log.Level, "debug"},
		{"log.format", cfg.Log.Format, "console"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadJSONWithEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.json", `{"server": {"addr": ":9000"}}`)
	t.Setenv("K_SERVER__ADDR", ":7000")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Fatalf("env override not applied: %s", cfg.Server.Addr)
	}
	if cfg.Planner.Planner != dispatch.PlannerMeritOrder {
		t.Fatalf("default planner not applied: %s", cfg.Planner.Planner)
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Server.Addr != ":8888" {
		t.Fatalf("unexpected addr %s", cfg.Server.Addr)
	}
	if cfg.MQTT.Enabled() {
		t.Fatalf("mqtt should be disabled by default")
	}
}

func TestLoadErrors(t *testing.T) {
	cases := map[string]string{
		"unknown planner": "planner:\n  planner: \"annealing\"\n",
		"unknown sink":    "metrics:\n  sinks:\n    - type: \"statsd\"\n",
		"bad log level":   "log:\n  level: \"chatty\"\n",
		"bad backend":     "logging:\n  backend: \"mongo\"\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, "config.yaml", data)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := Load(writeConfig(t, "config.toml", "")); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}
