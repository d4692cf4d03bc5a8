package dispatch

import "github.com/kilianp07/productionplan/core/factory"

var plannerRegistry = factory.NewRegistry[Planner]()

func init() {
	plannerRegistry.MustRegister(PlannerMeritOrder, func(map[string]any) (Planner, error) {
		return MeritOrderPlanner{}, nil
	})
	plannerRegistry.MustRegister(PlannerLP, func(conf map[string]any) (Planner, error) {
		var c struct {
			Tolerance float64 `json:"lp_tolerance"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		p := NewLPPlanner()
		if c.Tolerance > 0 {
			p.Tolerance = c.Tolerance
		}
		return p, nil
	})
}

// RegisterPlanner adds a planner factory identified by name.
func RegisterPlanner(name string, f factory.Factory[Planner]) error {
	return plannerRegistry.Register(name, f)
}

// PlannerNames lists the registered planners.
func PlannerNames() []string { return plannerRegistry.Names() }

// NewPlanner builds the planner selected by cfg.
func NewPlanner(cfg Config) (Planner, error) {
	return plannerRegistry.Create(factory.ModuleConfig{
		Type: cfg.Planner,
		Conf: map[string]any{"lp_tolerance": cfg.LPTolerance},
	})
}
