package dispatch

import "fmt"

// Built-in planner names.
const (
	PlannerMeritOrder = "merit_order"
	PlannerLP         = "lp"
)

const defaultLPTolerance = 1e-7

// Config defines planner-related settings.
type Config struct {
	Planner     string  `json:"planner"`
	LPTolerance float64 `json:"lp_tolerance"`
}

// SetDefaults applies the merit-order planner when none is configured.
func (c *Config) SetDefaults() {
	if c.Planner == "" {
		c.Planner = PlannerMeritOrder
	}
	if c.LPTolerance <= 0 {
		c.LPTolerance = defaultLPTolerance
	}
}

// Validate checks that the planner is known.
func (c Config) Validate() error {
	if !plannerRegistry.Has(c.Planner) {
		return fmt.Errorf("unknown planner %q (available: %v)", c.Planner, plannerRegistry.Names())
	}
	return nil
}
