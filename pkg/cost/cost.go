// Package cost prices heating systems for a calculated building: heat pump
// or boiler, radiators, pipework, fixed components and labour, less any
// grant, plus annual running costs.
package cost

import (
	"errors"
	"fmt"
	"math"

	"github.com/tomaszchojnowski/heatcalc/pkg/building"
)

// Estimator prices systems from a price book.
type Estimator struct {
	Prices *PriceBook

	// LabourRegion selects the daily labour rate. Unknown regions use the
	// default rate.
	LabourRegion string
}

// NewEstimator returns an estimator on the default price book and labour rate.
func NewEstimator() *Estimator {
	return &Estimator{Prices: DefaultPriceBook(), LabourRegion: DefaultLabourRegion}
}

func (e *Estimator) prices() *PriceBook {
	if e.Prices == nil {
		e.Prices = DefaultPriceBook()
	}
	return e.Prices
}

// RadiatorChoice is the radiator picked for one room.
type RadiatorChoice struct {
	SpaceID  string       `json:"spaceId"`
	Space    string       `json:"space"`
	Size     RadiatorSize `json:"size"`
	Output   float64      `json:"output"`   // W
	Required float64      `json:"required"` // W
	Cost     float64      `json:"cost"`
}

// RadiatorEstimate is the radiator schedule for a building.
type RadiatorEstimate struct {
	Count     int              `json:"count"`
	Radiators []RadiatorChoice `json:"radiators"`
	TRVs      int              `json:"trvs"`
	TRVCost   float64          `json:"trvCost"`
	Total     float64          `json:"total"`
}

// RadiatorSizeFor picks the tier for a room heat loss in watts.
func RadiatorSizeFor(watts float64) RadiatorSize {
	switch {
	case watts > 2500:
		return ExtraLarge
	case watts > 1750:
		return Large
	case watts > 1250:
		return Medium
	}
	return Small
}

// Radiators sizes one radiator per heated room from the room's calculated
// heat loss. Rooms under 2 m² are not heated. Every radiator but one gets a
// thermostatic valve.
func (e *Estimator) Radiators(b *building.Building) RadiatorEstimate {
	pb := e.prices()
	est := RadiatorEstimate{Radiators: []RadiatorChoice{}}
	for _, s := range b.AllSpaces() {
		if s.FloorArea() < MinRadiatorFloorArea {
			continue
		}
		required := s.HeatLoss.Total
		size := RadiatorSizeFor(required)
		price := pb.Radiators[size]
		choice := RadiatorChoice{
			SpaceID:  s.ID,
			Space:    s.Name,
			Size:     size,
			Output:   price.Watts,
			Required: required,
			Cost:     price.Price + price.Installation,
		}
		est.Radiators = append(est.Radiators, choice)
		est.Total += choice.Cost
	}
	est.Count = len(est.Radiators)
	est.TRVs = max(0, est.Count-1)
	est.TRVCost = float64(est.TRVs) * pb.Components.Thermostatic
	est.Total += est.TRVCost
	return est
}

// Breakdown itemises a quote.
type Breakdown struct {
	Unit             float64          `json:"unit"`
	Installation     float64          `json:"installation"`
	Radiators        []RadiatorChoice `json:"radiators"`
	Pipework         float64          `json:"pipework"`
	HotWaterCylinder float64          `json:"hotWaterCylinder,omitempty"`
	BufferTank       float64          `json:"bufferTank,omitempty"`
	Controls         float64          `json:"controls"`
	Misc             float64          `json:"misc"`
	Labour           float64          `json:"labour"`
}

// Quote is the installed price of one system at one capacity.
type Quote struct {
	SystemType       SystemType `json:"systemType"`
	Capacity         int        `json:"capacity"` // kW
	Equipment        float64    `json:"equipment"`
	Installation     float64    `json:"installation"`
	Radiators        float64    `json:"radiators"`
	RadiatorCount    int        `json:"radiatorCount"`
	PipeworkMetres   float64    `json:"pipeworkMetres"`
	Pipework         float64    `json:"pipework"`
	Components       float64    `json:"components"`
	Labour           float64    `json:"labour"`
	InstallationDays int        `json:"installationDays"`
	Complexity       float64    `json:"complexityFactor"`
	Subtotal         float64    `json:"subtotal"`
	Total            float64    `json:"total"`
	Breakdown        Breakdown  `json:"breakdown"`
}

// HeatPumpCost quotes an air source heat pump of at least capacityKW with
// smart controls, an unvented cylinder and a buffer tank.
func (e *Estimator) HeatPumpCost(capacityKW float64, b *building.Building) (*Quote, error) {
	c := e.prices().Components
	misc := c.PumpStandard + c.ExpansionVessel + c.Inhibitor + c.PowerFlush
	return e.quote(HeatPump, capacityKW, b, quoteParts{
		pipeworkPerM2: HeatPumpPipeworkPerM2,
		baseDays:      HeatPumpBaseDays,
		roomsPerDay:   HeatPumpRoomsPerDay,
		components:    c.ControlsSmart + c.CylinderUnvented + c.BufferTank + misc,
		breakdown: Breakdown{
			HotWaterCylinder: c.CylinderUnvented,
			BufferTank:       c.BufferTank,
			Controls:         c.ControlsSmart,
			Misc:             misc,
		},
	})
}

// BoilerCost quotes a combi boiler of at least capacityKW with basic controls.
func (e *Estimator) BoilerCost(capacityKW float64, b *building.Building) (*Quote, error) {
	c := e.prices().Components
	misc := c.PumpStandard + c.ExpansionVessel + c.Inhibitor + c.PowerFlush
	return e.quote(Boiler, capacityKW, b, quoteParts{
		pipeworkPerM2: BoilerPipeworkPerM2,
		baseDays:      BoilerBaseDays,
		roomsPerDay:   BoilerRoomsPerDay,
		components:    c.ControlsBasic + misc,
		breakdown: Breakdown{
			Controls: c.ControlsBasic,
			Misc:     misc,
		},
	})
}

type quoteParts struct {
	pipeworkPerM2 float64
	baseDays      int
	roomsPerDay   int
	components    float64
	breakdown     Breakdown
}

func (e *Estimator) quote(t SystemType, capacityKW float64, b *building.Building, p quoteParts) (*Quote, error) {
	pb := e.prices()
	capacity, unit, err := pb.SelectCapacity(t, capacityKW)
	if err != nil {
		return nil, err
	}

	rads := e.Radiators(b)
	metres := b.TotalFloorArea() * p.pipeworkPerM2
	pipework := metres * pb.Components.PipeworkPerMetre

	days := p.baseDays + b.SpaceCount()/p.roomsPerDay
	labour := pb.LabourRate(e.LabourRegion).Daily * float64(days)

	complexity := e.Complexity(b)
	subtotal := unit.Equipment + unit.Installation + rads.Total + pipework + p.components + labour

	bd := p.breakdown
	bd.Unit = unit.Equipment
	bd.Installation = unit.Installation
	bd.Radiators = rads.Radiators
	bd.Pipework = pipework
	bd.Labour = labour

	return &Quote{
		SystemType:       t,
		Capacity:         capacity,
		Equipment:        unit.Equipment,
		Installation:     unit.Installation,
		Radiators:        rads.Total,
		RadiatorCount:    rads.Count,
		PipeworkMetres:   metres,
		Pipework:         pipework,
		Components:       p.components,
		Labour:           labour,
		InstallationDays: days,
		Complexity:       complexity,
		Subtotal:         subtotal,
		Total:            math.Round(subtotal * complexity),
		Breakdown:        bd,
	}, nil
}

// Complexity returns the installation multiplier of a building: its
// radiator complexity, or the standard factor when none is set.
func (e *Estimator) Complexity(b *building.Building) float64 {
	if f := b.Costs.RadiatorComplexity; f > 0 && !math.IsInf(f, 0) {
		return f
	}
	if f, ok := e.prices().Complexity[StandardComplexity]; ok {
		return f
	}
	return 1.2
}

// SystemCost is a priced system after grants.
type SystemCost struct {
	SystemType       SystemType `json:"systemType"`
	Capacity         int        `json:"capacity"`
	RequiredCapacity float64    `json:"requiredCapacity"`
	TotalCost        float64    `json:"totalCost"`
	GrantAmount      float64    `json:"grantAmount"`
	FinalCost        float64    `json:"finalCost"`
	Breakdown        Breakdown  `json:"breakdown"`
	RadiatorCount    int        `json:"radiatorCount"`
	InstallationDays int        `json:"installationDays"`
	CostPerKW        float64    `json:"costPerKw"`
	Quote            *Quote     `json:"-"`
}

// RequiredCapacity is the building heat loss with the sizing margin,
// rounded up to a whole kW.
func RequiredCapacity(b *building.Building) float64 {
	return math.Ceil(b.TotalHeatLoss * SizingMargin)
}

// SystemCost prices a system for a calculated building. Grants apply to
// heat pumps only, and the final cost never goes below zero.
func (e *Estimator) SystemCost(b *building.Building, t SystemType, includeGrants bool) (*SystemCost, error) {
	required := RequiredCapacity(b)

	var (
		q   *Quote
		err error
	)
	switch t {
	case HeatPump:
		q, err = e.HeatPumpCost(required, b)
	case Boiler:
		q, err = e.BoilerCost(required, b)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownSystemType, t)
	}
	if err != nil {
		return nil, err
	}

	var grant float64
	if includeGrants {
		grant = e.prices().GrantFor(t)
	}

	sc := &SystemCost{
		SystemType:       t,
		Capacity:         q.Capacity,
		RequiredCapacity: required,
		TotalCost:        q.Total,
		GrantAmount:      grant,
		FinalCost:        math.Max(0, q.Total-grant),
		Breakdown:        q.Breakdown,
		RadiatorCount:    q.RadiatorCount,
		InstallationDays: q.InstallationDays,
		Quote:            q,
	}
	if q.Capacity > 0 {
		sc.CostPerKW = math.Round(q.Total / float64(q.Capacity))
	}
	return sc, nil
}

// CostRange is an optimistic to pessimistic spread around a quote.
type CostRange struct {
	Low       float64 `json:"low"`
	High      float64 `json:"high"`
	Average   float64 `json:"average"`
	WithGrant float64 `json:"withGrant"`
}

// CostRange spreads the pre-grant system cost from -10% to +15%.
func (e *Estimator) CostRange(b *building.Building, t SystemType) (CostRange, error) {
	sc, err := e.SystemCost(b, t, false)
	if err != nil {
		return CostRange{}, err
	}
	return CostRange{
		Low:       math.Round(sc.TotalCost * LowRangeFactor),
		High:      math.Round(sc.TotalCost * HighRangeFactor),
		Average:   sc.TotalCost,
		WithGrant: sc.FinalCost,
	}, nil
}

// RunningCosts is the estimated annual energy bill.
type RunningCosts struct {
	AnnualCost     float64 `json:"annualCost"`
	DailyAverage   float64 `json:"dailyAverage"`
	MonthlyAverage float64 `json:"monthlyAverage"`
	Efficiency     float64 `json:"efficiency"`
	EnergyType     string  `json:"energyType"`
}

// RunningCosts estimates the annual cost of meeting the building's design
// heat loss for the assumed heating hours.
func (e *Estimator) RunningCosts(b *building.Building, t SystemType) (RunningCosts, error) {
	r := e.prices().Running
	var efficiency, price float64
	var energy string
	switch t {
	case HeatPump:
		efficiency, price, energy = r.HeatPumpSCOP, r.ElectricityPrice, "electricity"
	case Boiler:
		efficiency, price, energy = r.BoilerEfficiency, r.GasPrice, "gas"
	default:
		return RunningCosts{}, fmt.Errorf("%w: %q", ErrUnknownSystemType, t)
	}
	if !(efficiency > 0) {
		return RunningCosts{}, errors.New("running cost efficiency must be > 0")
	}

	annual := b.TotalHeatLoss * r.HeatingHours / efficiency * price
	return RunningCosts{
		AnnualCost:     math.Round(annual),
		DailyAverage:   math.Round(annual / 365),
		MonthlyAverage: math.Round(annual / 12),
		Efficiency:     efficiency,
		EnergyType:     energy,
	}, nil
}

// UnderfloorCost prices underfloor heating over the whole floor area of a
// building, with one manifold per floor. kind is "electric" or "wetSystem".
func (e *Estimator) UnderfloorCost(b *building.Building, kind string) (float64, error) {
	pb := e.prices()
	price, ok := pb.Underfloor[kind]
	if !ok {
		return 0, fmt.Errorf("unknown underfloor system %q", kind)
	}
	area := b.TotalFloorArea()
	total := area * (price.Materials + price.Installation)
	total += float64(len(b.Floors)) * pb.Components.Manifold
	return math.Round(total), nil
}
