package heatloss

import (
	"math"

	"github.com/tomaszchojnowski/heatcalc/pkg/building"
)

// Emitter is the kind of heat emitter a system is sized for.
type Emitter string

const (
	EmitterRadiator   Emitter = "radiator"
	EmitterUnderfloor Emitter = "underfloor"
	EmitterHeatPump   Emitter = "heatpump"
)

var emitterMargins = map[Emitter]float64{
	EmitterRadiator:   1.20,
	EmitterUnderfloor: 1.15,
	EmitterHeatPump:   1.25, // includes defrost cycles
}

// DefaultMargin applies to emitters without a margin of their own.
const DefaultMargin = 1.20

// StandardSizes are the nominal system outputs in kW.
var StandardSizes = []float64{5, 6, 7, 8, 9, 10, 11, 12, 14, 16, 18, 20, 24, 28, 32}

// SystemSize is a recommended system output.
type SystemSize struct {
	BaseLoad        float64 `json:"baseLoad"`        // kW
	RecommendedSize float64 `json:"recommendedSize"` // kW
	Margin          float64 `json:"margin"`
	MarginValue     float64 `json:"marginValue"` // kW above base load
}

// Margin returns the sizing margin for an emitter.
func Margin(e Emitter) float64 {
	if m, ok := emitterMargins[e]; ok {
		return m
	}
	return DefaultMargin
}

// RecommendedSystemSize applies the emitter margin to the building's total
// heat loss and rounds up to the next standard size. Loads above the
// largest standard size are rounded up to a whole kW.
func RecommendedSystemSize(b *building.Building, e Emitter) SystemSize {
	return RecommendSize(b.TotalHeatLoss, e)
}

// RecommendSize is RecommendedSystemSize for a bare load in kW.
func RecommendSize(baseLoadKW float64, e Emitter) SystemSize {
	margin := Margin(e)
	required := baseLoadKW * margin

	size := math.Ceil(required)
	for _, s := range StandardSizes {
		if s >= required {
			size = s
			break
		}
	}
	return SystemSize{
		BaseLoad:        baseLoadKW,
		RecommendedSize: size,
		Margin:          margin,
		MarginValue:     size - baseLoadKW,
	}
}
