package climate

import "math"

// Fuel is a heating fuel.
type Fuel string

const (
	Gas         Fuel = "gas"
	Electricity Fuel = "electricity" // heat pump
	Oil         Fuel = "oil"
)

// FuelPrices are in £/kWh.
var FuelPrices = map[Fuel]float64{
	Gas:         0.06,
	Electricity: 0.24,
	Oil:         0.08,
}

// Efficiencies are seasonal efficiencies; electricity is a heat pump SCOP.
var Efficiencies = map[Fuel]float64{
	Gas:         0.90,
	Electricity: 3.2,
	Oil:         0.85,
}

// AnnualCost is a degree-day estimate of a year's heating bill.
type AnnualCost struct {
	AnnualCost     float64 `json:"annualCost"`
	MonthlyAverage float64 `json:"monthlyAverage"`
	HeatingHours   float64 `json:"heatingHours"`
	EnergyUsed     float64 `json:"energyUsed"` // kWh delivered fuel
	FuelType       Fuel    `json:"fuelType"`
	Efficiency     float64 `json:"efficiency"`
}

// AnnualHeatingCost estimates the yearly cost of meeting a design heat loss
// in a region. Heating hours are approximated as HDD/10 × 24. Unknown
// regions use the default region; unknown fuels are priced as gas.
func AnnualHeatingCost(heatLossKW float64, regionKey string, fuel Fuel) AnnualCost {
	region, ok := regionByKey[regionKey]
	if !ok {
		region = regionByKey[DefaultRegion]
	}
	price, ok := FuelPrices[fuel]
	if !ok {
		price = FuelPrices[Gas]
	}
	eff, ok := Efficiencies[fuel]
	if !ok {
		eff = Efficiencies[Gas]
	}

	hours := region.HeatingDegreeDays / 10 * 24
	energy := heatLossKW * hours / eff
	annual := energy * price

	return AnnualCost{
		AnnualCost:     math.Round(annual),
		MonthlyAverage: math.Round(annual / 12),
		HeatingHours:   math.Round(hours),
		EnergyUsed:     math.Round(energy),
		FuelType:       fuel,
		Efficiency:     eff,
	}
}

// RegionalCost pairs a region with its annual cost estimate.
type RegionalCost struct {
	Key  string     `json:"key"`
	Name string     `json:"name"`
	Cost AnnualCost `json:"cost"`
}

// CompareRegionalCosts estimates the annual cost of a heat loss in every
// region, in table order.
func CompareRegionalCosts(heatLossKW float64, fuel Fuel) []RegionalCost {
	out := make([]RegionalCost, len(regions))
	for i, r := range regions {
		out[i] = RegionalCost{Key: r.Key, Name: r.Name, Cost: AnnualHeatingCost(heatLossKW, r.Key, fuel)}
	}
	return out
}
