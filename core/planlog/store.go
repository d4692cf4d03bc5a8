// Package planlog persists computed production plans for later auditing.
package planlog

import (
	"context"
	"time"

	"github.com/kilianp07/productionplan/core/model"
)

// PlantRecord is the logged view of one plant's dispatch.
type PlantRecord struct {
	Name         string  `json:"name"`
	Kind         string  `json:"kind"`
	EffectiveMin float64 `json:"effective_min"`
	EffectiveMax float64 `json:"effective_max"`
	UnitCost     float64 `json:"unit_cost"`
	Production   float64 `json:"p"`
}

// Fuels mirrors model.FuelMarket with JSON tags.
type Fuels struct {
	Gas      float64 `json:"gas"`
	Kerosine float64 `json:"kerosine"`
	CO2      float64 `json:"co2"`
	Wind     float64 `json:"wind"`
}

// Record captures one computed plan.
type Record struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Planner   string        `json:"planner"`
	Load      float64       `json:"load"`
	Fuels     Fuels         `json:"fuels"`
	Plants    []PlantRecord `json:"plants"`
	TotalCost float64       `json:"total_cost"`
}

// NewRecord builds a Record from a planner result.
func NewRecord(id, planner string, ts time.Time, load float64, fuels model.FuelMarket, alloc model.Allocation) Record {
	rec := Record{
		ID:        id,
		Timestamp: ts,
		Planner:   planner,
		Load:      load,
		Fuels: Fuels{
			Gas:      fuels.GasPrice,
			Kerosine: fuels.KerosinePrice,
			CO2:      fuels.CO2Price,
			Wind:     fuels.WindPercent,
		},
		Plants:    make([]PlantRecord, len(alloc.Dispatches)),
		TotalCost: alloc.TotalCost,
	}
	for i, d := range alloc.Dispatches {
		rec.Plants[i] = PlantRecord{
			Name:         d.Plant.Name(),
			Kind:         d.Plant.Spec.Kind.String(),
			EffectiveMin: d.Plant.EffectiveMin,
			EffectiveMax: d.Plant.EffectiveMax,
			UnitCost:     d.Plant.UnitCost,
			Production:   d.Production,
		}
	}
	return rec
}

// Query defines filters for retrieving records. Zero values disable a
// filter.
type Query struct {
	Start     time.Time
	End       time.Time
	PlantName string
}

// Match reports whether r satisfies q.
func (q Query) Match(r Record) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.PlantName == "" {
		return true
	}
	for _, p := range r.Plants {
		if p.Name == q.PlantName {
			return true
		}
	}
	return false
}

// LogStore persists Records and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// NopStore discards every record.
type NopStore struct{}

func (NopStore) Append(context.Context, Record) error          { return nil }
func (NopStore) Query(context.Context, Query) ([]Record, error) { return nil, nil }
func (NopStore) Close() error                                   { return nil }
