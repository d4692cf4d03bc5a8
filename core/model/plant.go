package model

import (
	"errors"
	"fmt"
)

// PlantKind identifies the technology of a power plant.
type PlantKind string

const (
	GasFired    PlantKind = "gasfired"
	Turbojet    PlantKind = "turbojet"
	WindTurbine PlantKind = "windturbine"
)

// ErrUnrecognizedPlantKind is returned when a plant kind is outside the
// supported set. It aborts the whole request.
var ErrUnrecognizedPlantKind = errors.New("unrecognized plant kind")

// Valid reports whether k is one of the supported plant kinds.
func (k PlantKind) Valid() bool {
	switch k {
	case GasFired, Turbojet, WindTurbine:
		return true
	default:
		return false
	}
}

// String returns the wire name of the kind.
func (k PlantKind) String() string { return string(k) }

// ParsePlantKind converts a wire name into a PlantKind.
func ParsePlantKind(s string) (PlantKind, error) {
	k := PlantKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedPlantKind, s)
	}
	return k, nil
}

// PlantSpec is the static description of a plant as received in a request.
type PlantSpec struct {
	Name       string
	Kind       PlantKind
	Efficiency float64 // conversion efficiency in (0,1]
	PMin       float64 // nominal minimum output in MW
	PMax       float64 // nominal maximum output in MW
}

// PlantState is a plant annotated with the range and marginal cost derived
// from the current fuel market.
type PlantState struct {
	Spec         PlantSpec
	EffectiveMin float64
	EffectiveMax float64
	UnitCost     float64 // euro per MWh produced
}

// Name is a shortcut for Spec.Name.
func (s PlantState) Name() string { return s.Spec.Name }
