package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/productionplan/core/dispatch"
	"github.com/kilianp07/productionplan/core/metrics"
	"github.com/kilianp07/productionplan/core/planlog"
	"github.com/kilianp07/productionplan/infra/logger"
	_ "github.com/kilianp07/productionplan/infra/metrics" // built-in sinks
	"github.com/kilianp07/productionplan/infra/monitoring"
	"github.com/kilianp07/productionplan/infra/mqtt"
)

type Config struct {
	Server  ServerConfig      `json:"server"`
	Planner dispatch.Config   `json:"planner"`
	Metrics metrics.Config    `json:"metrics"`
	Logging planlog.Config    `json:"logging"`
	Log     logger.Options    `json:"log"`
	MQTT    mqtt.Config       `json:"mqtt"`
	Sentry  monitoring.Config `json:"sentry"`
}

// SetDefaults fills every section with its defaults.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Planner.SetDefaults()
	c.Logging.SetDefaults()
	c.Log.SetDefaults()
	if c.MQTT.Enabled() {
		c.MQTT.SetDefaults()
	}
}

// Validate checks every section and reports all failures at once.
func (c Config) Validate() error {
	return errors.Join(
		c.Server.Validate(),
		c.Planner.Validate(),
		c.Metrics.Validate(),
		c.Logging.Validate(),
		c.Log.Validate(),
		c.MQTT.Validate(),
	)
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.SetDefaults()
	return &cfg
}

// Load reads the configuration file at path, applies K_ prefixed
// environment overrides (K_SERVER__ADDR sets server.addr), then fills
// defaults and validates. An empty path loads defaults and environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
