package metrics

import (
	"fmt"

	"github.com/kilianp07/productionplan/core/factory"
)

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
}

// Validate checks that every configured sink type is registered.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if !sinkRegistry.Has(s.Type) {
			return fmt.Errorf("metrics.sinks[%d]: unknown type %q", i, s.Type)
		}
	}
	return nil
}
