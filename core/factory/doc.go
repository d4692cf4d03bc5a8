// Package factory provides a small generic registry used to build pluggable
// modules (planners, metrics sinks) from configuration. A module is described
// by a type string and a map of raw settings; factories decode the settings
// into typed structs with Decode and return the concrete implementation.
//
//	reg := factory.NewRegistry[dispatch.Planner]()
//	_ = reg.Register("lp", func(conf map[string]any) (dispatch.Planner, error) {
//	    var c struct{ Tolerance float64 `json:"tolerance"` }
//	    if err := factory.Decode(conf, &c); err != nil {
//	        return nil, err
//	    }
//	    return dispatch.LPPlanner{Tolerance: c.Tolerance}, nil
//	})
//	p, err := reg.Create(factory.ModuleConfig{Type: "lp"})
package factory
