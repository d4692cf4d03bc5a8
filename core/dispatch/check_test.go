package dispatch

import (
	"errors"
	"testing"

	"github.com/kilianp07/productionplan/core/model"
)

func TestCheckRequest(t *testing.T) {
	plants := []model.PlantSpec{{Name: "a", Kind: model.GasFired, Efficiency: 0.5, PMax: 10}}
	cases := []struct {
		name string
		req  model.PlanRequest
		err  error
	}{
		{"ok", model.PlanRequest{Load: 5, Plants: plants}, nil},
		{"zero load", model.PlanRequest{Load: 0, Plants: plants}, ErrInvalidLoad},
		{"negative load", model.PlanRequest{Load: -1, Plants: plants}, ErrInvalidLoad},
		{"no plants", model.PlanRequest{Load: 5}, ErrInvalidLoad},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckRequest(c.req)
			if c.err == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.err != nil && !errors.Is(err, c.err) {
				t.Fatalf("expected %v, got %v", c.err, err)
			}
		})
	}
}

func TestCheckCapacity(t *testing.T) {
	plants := []model.PlantState{state("a", 10, 5)}
	if err := CheckCapacity(10, plants); !errors.Is(err, ErrInsufficientCapacity) {
		t.Fatalf("expected ErrInsufficientCapacity, got %v", err)
	}
	if err := CheckCapacity(5, plants); err != nil {
		t.Fatalf("exact capacity should pass: %v", err)
	}
	if err := CheckCapacity(5+1e-12, plants); err != nil {
		t.Fatalf("rounding noise should pass: %v", err)
	}
}
