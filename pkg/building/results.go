package building

// SpaceHeatLoss is the design heat loss of one space, in watts.
type SpaceHeatLoss struct {
	SpaceID         string     `json:"spaceId"`
	InternalTemp    float64    `json:"internalTemp"` // °C
	DeltaT          float64    `json:"deltaT"`       // K
	Floor           float64    `json:"floor"`
	Ceiling         float64    `json:"ceiling"`
	Walls           WallValues `json:"walls"`
	Windows         float64    `json:"windows"`
	Ventilation     float64    `json:"ventilation"`
	FabricLoss      float64    `json:"fabricLoss"`
	VentilationLoss float64    `json:"ventilationLoss"`
	Total           float64    `json:"total"`
}

// Totals are whole-building heat loss figures in watts. FabricLoss and
// TotalLoss include ThermalBridging; VentilationLoss does not.
type Totals struct {
	FabricLoss      float64 `json:"fabricLoss"`
	VentilationLoss float64 `json:"ventilationLoss"`
	TotalLoss       float64 `json:"totalLoss"`
	ThermalBridging float64 `json:"thermalBridging"`
}

// HeatLossBreakdown is the result of a heat loss calculation.
type HeatLossBreakdown struct {
	Spaces   map[string]SpaceHeatLoss `json:"spaces"`
	Totals   Totals                   `json:"totals"`
	PeakLoad float64                  `json:"peakLoad"` // W, total with a 20% margin
}

// Clone returns a deep copy of b.
func (b *HeatLossBreakdown) Clone() *HeatLossBreakdown {
	if b == nil {
		return nil
	}
	c := *b
	c.Spaces = make(map[string]SpaceHeatLoss, len(b.Spaces))
	for k, v := range b.Spaces {
		c.Spaces[k] = v
	}
	return &c
}
