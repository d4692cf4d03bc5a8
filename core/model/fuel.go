package model

// FuelMarket holds the fuel prices and weather conditions valid for one
// production plan request. It is never mutated once built.
type FuelMarket struct {
	GasPrice      float64 // euro per MWh of gas
	KerosinePrice float64 // euro per MWh of kerosine
	CO2Price      float64 // euro per ton, not part of the unit cost formula
	WindPercent   float64 // wind availability between 0 and 100
}

// WindFactor returns the wind availability as a fraction in [0,1].
func (m FuelMarket) WindFactor() float64 {
	return m.WindPercent / 100
}
