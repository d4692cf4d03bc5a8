// Package productionplan exposes the production plan computation over HTTP.
package productionplan

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kilianp07/productionplan/core/model"
)

// ErrMalformedPayload is returned when the request body cannot be decoded or
// fails validation.
var ErrMalformedPayload = errors.New("malformed payload")

// Fuels is the fuel section of the payload. Missing keys default to zero.
type Fuels struct {
	Gas      float64 `json:"gas(euro/MWh)" validate:"gte=0"`
	Kerosine float64 `json:"kerosine(euro/MWh)" validate:"gte=0"`
	CO2      float64 `json:"co2(euro/ton)" validate:"gte=0"`
	Wind     float64 `json:"wind(%)" validate:"gte=0,lte=100"`
}

// PowerPlant is one entry of the powerplants array.
type PowerPlant struct {
	Name       string  `json:"name" validate:"required"`
	Type       string  `json:"type" validate:"required"`
	Efficiency float64 `json:"efficiency" validate:"gt=0,lte=1"`
	PMin       float64 `json:"pmin" validate:"gte=0"`
	PMax       float64 `json:"pmax" validate:"gtefield=PMin"`
}

// Payload is the body of POST /productionplan.
type Payload struct {
	Load        float64      `json:"load"`
	Fuels       Fuels        `json:"fuels"`
	PowerPlants []PowerPlant `json:"powerplants" validate:"unique=Name,dive"`
}

var validate = validator.New()

// Request converts the payload into a plan request. Plant types are passed
// through unchanged; unknown kinds are rejected by the cost model.
func (p Payload) Request() model.PlanRequest {
	req := model.PlanRequest{
		Load: p.Load,
		Fuels: model.FuelMarket{
			GasPrice:      p.Fuels.Gas,
			KerosinePrice: p.Fuels.Kerosine,
			CO2Price:      p.Fuels.CO2,
			WindPercent:   p.Fuels.Wind,
		},
		Plants: make([]model.PlantSpec, len(p.PowerPlants)),
	}
	for i, pp := range p.PowerPlants {
		req.Plants[i] = model.PlantSpec{
			Name:       pp.Name,
			Kind:       model.PlantKind(strings.ToLower(pp.Type)),
			Efficiency: pp.Efficiency,
			PMin:       pp.PMin,
			PMax:       pp.PMax,
		}
	}
	return req
}

// DecodePayload reads and validates a payload.
func DecodePayload(r io.Reader) (model.PlanRequest, error) {
	var p Payload
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return model.PlanRequest{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if err := validate.Struct(p); err != nil {
		return model.PlanRequest{}, fmt.Errorf("%w: %s", ErrMalformedPayload, formatValidationError(err))
	}
	return p.Request(), nil
}

func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed validation: %s (value: '%v')", e.Namespace(), e.Tag(), e.Value()))
	}
	return strings.Join(msgs, "; ")
}
