// Package heatloss computes steady-state design heat loss (EN 12831 style)
// for a building: fabric loss through every element of every room, air
// change ventilation loss, and a thermal bridging allowance.
package heatloss

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/tomaszchojnowski/heatcalc/pkg/building"
	"github.com/tomaszchojnowski/heatcalc/pkg/climate"
	"github.com/tomaszchojnowski/heatcalc/pkg/construction"
	"github.com/tomaszchojnowski/heatcalc/pkg/validation"
)

// Physical constants.
const (
	AirDensity      = 1.2    // kg/m³
	AirSpecificHeat = 1005.0 // J/kgK
	SecondsPerHour  = 3600.0

	// PeakMargin is the safety factor applied to the total loss.
	PeakMargin = 1.2
)

var (
	ErrMissingVentilationRate = errors.New("building has no ventilation rate")
	ErrInvalidThermalBridging = errors.New("thermal bridging factor must be a finite number >= 0")
)

// Calculator computes heat loss for one set of design conditions. It holds
// no per-building state and is safe for concurrent use on distinct
// buildings.
type Calculator struct {
	conditions climate.Conditions
	logger     *slog.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger makes the calculator log a debug record per space.
func WithLogger(l *slog.Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a calculator for the given design conditions. Invalid
// conditions are reported as a *validation.Error.
func New(conditions climate.Conditions, opts ...Option) (*Calculator, error) {
	if err := validation.ValidateConditions(conditions).Err(); err != nil {
		return nil, err
	}
	c := &Calculator{
		conditions: conditions,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Conditions returns the design conditions of the calculator.
func (c *Calculator) Conditions() climate.Conditions {
	return c.conditions
}

// ElementLoss is U × A × ΔT in watts.
func ElementLoss(uValue, area, deltaT float64) float64 {
	return uValue * area * deltaT
}

// VentilationLoss is the heat carried away by air changes, in watts.
func VentilationLoss(volume, airChangesPerHour, deltaT float64) float64 {
	return volume * airChangesPerHour * AirDensity * AirSpecificHeat * deltaT / SecondsPerHour
}

func checkThermal(b *building.Building) error {
	rate := b.Thermal.VentilationRate
	if !(rate > 0) || math.IsInf(rate, 0) {
		return fmt.Errorf("%w (got %v)", ErrMissingVentilationRate, rate)
	}
	tb := b.Thermal.ThermalBridging
	if math.IsNaN(tb) || math.IsInf(tb, 0) || tb < 0 {
		return fmt.Errorf("%w (got %v)", ErrInvalidThermalBridging, tb)
	}
	return nil
}

// Calculate computes the heat loss of every space and of the whole
// building. Each space's HeatLoss and the building's TotalHeatLoss and
// Breakdown are overwritten with the results.
func (c *Calculator) Calculate(b *building.Building) (*building.HeatLossBreakdown, error) {
	if err := checkThermal(b); err != nil {
		return nil, err
	}

	bd := &building.HeatLossBreakdown{Spaces: make(map[string]building.SpaceHeatLoss)}
	for _, s := range b.AllSpaces() {
		loss := c.SpaceHeatLoss(s, b.Thermal.VentilationRate)
		s.HeatLoss = loss
		bd.Spaces[s.ID] = loss

		bd.Totals.FabricLoss += loss.FabricLoss
		bd.Totals.VentilationLoss += loss.VentilationLoss
	}

	// Bridging adds to fabric and total, never to ventilation.
	bridging := bd.Totals.FabricLoss * b.Thermal.ThermalBridging
	bd.Totals.FabricLoss += bridging
	bd.Totals.TotalLoss = bd.Totals.FabricLoss + bd.Totals.VentilationLoss
	bd.Totals.ThermalBridging = bridging

	bd.PeakLoad = bd.Totals.TotalLoss * PeakMargin

	b.TotalHeatLoss = bd.Totals.TotalLoss / 1000
	b.Breakdown = bd

	c.logger.Debug("building heat loss",
		"building", b.ID,
		"spaces", len(bd.Spaces),
		"fabric_w", round1(bd.Totals.FabricLoss),
		"ventilation_w", round1(bd.Totals.VentilationLoss),
		"bridging_w", round1(bridging),
		"total_kw", math.Round(b.TotalHeatLoss*100)/100,
	)
	return bd, nil
}

// SpaceHeatLoss computes the heat loss of one space. The space is not
// modified.
func (c *Calculator) SpaceHeatLoss(s *building.Space, ventilationRate float64) building.SpaceHeatLoss {
	internal := c.conditions.InternalTemperature(s.Name)
	deltaT := internal - c.conditions.ExternalDesignTemp

	loss := building.SpaceHeatLoss{
		SpaceID:      s.ID,
		InternalTemp: internal,
		DeltaT:       deltaT,
	}

	if s.FloorConstruction.Loses() {
		loss.Floor = ElementLoss(s.FloorConstruction.UValue, s.FloorArea(), deltaT)
	}
	if s.CeilingConstruction.Loses() {
		loss.Ceiling = ElementLoss(s.CeilingConstruction.UValue, s.CeilingArea(), deltaT)
	}

	// Wall and window area are spread evenly over the four walls rather
	// than looked up per direction.
	windowArea := s.WindowArea()
	netPerWall := math.Max(0, s.TotalWallArea()/4-windowArea/4)
	for _, d := range construction.Directions {
		wall, _ := s.WallConstruction.Get(d)
		if wall.Loses() {
			loss.Walls.Set(d, ElementLoss(wall.UValue, netPerWall, deltaT))
		}
	}

	if windowArea > 0 && !s.WindowCharacteristics.IsZero() {
		loss.Windows = ElementLoss(s.WindowCharacteristics.UValue, windowArea, deltaT)
	}

	loss.Ventilation = VentilationLoss(s.Volume(), ventilationRate, deltaT)

	loss.FabricLoss = loss.Floor + loss.Ceiling + loss.Walls.Sum() + loss.Windows
	loss.VentilationLoss = loss.Ventilation
	loss.Total = loss.FabricLoss + loss.VentilationLoss

	c.logger.Debug("space heat loss",
		"space", s.Name,
		"internal_c", internal,
		"delta_t", deltaT,
		"floor_w", round1(loss.Floor),
		"ceiling_w", round1(loss.Ceiling),
		"walls_w", round1(loss.Walls.Sum()),
		"windows_w", round1(loss.Windows),
		"ventilation_w", round1(loss.Ventilation),
	)
	return loss
}

// HeatLossPerArea returns the calculated loss in W/m² of floor area, or 0
// for a building without floor area.
func HeatLossPerArea(b *building.Building) float64 {
	area := b.TotalFloorArea()
	if area <= 0 {
		return 0
	}
	return b.TotalHeatLoss * 1000 / area
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
