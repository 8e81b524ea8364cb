package heatloss

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tomaszchojnowski/heatcalc/pkg/building"
	"github.com/tomaszchojnowski/heatcalc/pkg/construction"
)

// UpgradeKind names a retrofit measure.
type UpgradeKind string

const (
	WallInsulation  UpgradeKind = "wall_insulation"
	LoftInsulation  UpgradeKind = "loft_insulation"
	FloorInsulation UpgradeKind = "floor_insulation"
	Windows         UpgradeKind = "windows"
	Ventilation     UpgradeKind = "ventilation"
)

var (
	ErrUnknownUpgrade = errors.New("unknown upgrade")
	ErrInvalidUpgrade = errors.New("invalid upgrade value")
)

// Upgrade is one retrofit measure. Ventilation upgrades set NewRate;
// every other kind sets NewUValue.
type Upgrade struct {
	Kind      UpgradeKind `json:"type" yaml:"type"`
	NewUValue float64     `json:"newUValue,omitempty" yaml:"newUValue,omitempty"`
	NewRate   float64     `json:"newRate,omitempty" yaml:"newRate,omitempty"`
}

// Package is a named bundle of upgrades.
type Package struct {
	Key      string    `json:"key"`
	Name     string    `json:"name"`
	Upgrades []Upgrade `json:"upgrades"`
}

var packages = map[string]Package{
	"basic": {
		Key:  "basic",
		Name: "Basic Upgrade",
		Upgrades: []Upgrade{
			{Kind: LoftInsulation, NewUValue: 0.16},
			{Kind: Windows, NewUValue: 1.4},
		},
	},
	"intermediate": {
		Key:  "intermediate",
		Name: "Intermediate Upgrade",
		Upgrades: []Upgrade{
			{Kind: LoftInsulation, NewUValue: 0.16},
			{Kind: WallInsulation, NewUValue: 0.30},
			{Kind: Windows, NewUValue: 1.4},
		},
	},
	"deep_retrofit": {
		Key:  "deep_retrofit",
		Name: "Deep Retrofit",
		Upgrades: []Upgrade{
			{Kind: LoftInsulation, NewUValue: 0.12},
			{Kind: WallInsulation, NewUValue: 0.20},
			{Kind: FloorInsulation, NewUValue: 0.18},
			{Kind: Windows, NewUValue: 0.8},
			{Kind: Ventilation, NewRate: 0.5},
		},
	},
}

// LookupPackage returns the upgrade package with the given key.
func LookupPackage(key string) (Package, bool) {
	p, ok := packages[key]
	if !ok {
		return Package{}, false
	}
	p.Upgrades = append([]Upgrade(nil), p.Upgrades...)
	return p, true
}

// PackageKeys returns the known package keys in alphabetical order.
func PackageKeys() []string {
	keys := make([]string, 0, len(packages))
	for k := range packages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks the upgrade value for its kind.
func (u Upgrade) Validate() error {
	switch u.Kind {
	case Ventilation:
		if !(u.NewRate > 0) || math.IsInf(u.NewRate, 0) {
			return fmt.Errorf("%w: ventilation rate %v must be > 0", ErrInvalidUpgrade, u.NewRate)
		}
	case WallInsulation, LoftInsulation, FloorInsulation, Windows:
		if math.IsNaN(u.NewUValue) || math.IsInf(u.NewUValue, 0) || u.NewUValue < 0 {
			return fmt.Errorf("%w: %s U-value %v must be >= 0", ErrInvalidUpgrade, u.Kind, u.NewUValue)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownUpgrade, u.Kind)
	}
	return nil
}

// ApplyUpgrade changes the construction of b in place. The building-level
// construction record is updated along with the matching space elements:
//   - wall insulation: walls recorded as solid_brick
//   - loft insulation: ceilings whose category mentions "roof"
//   - floor insulation: floors of ground floor spaces
//   - windows: the glazing of every space
//   - ventilation: the whole-building air change rate
func ApplyUpgrade(b *building.Building, u Upgrade) error {
	if err := u.Validate(); err != nil {
		return err
	}

	switch u.Kind {
	case WallInsulation:
		b.Construction.Walls.External.UValue = u.NewUValue
		for _, s := range b.AllSpaces() {
			for _, d := range construction.Directions {
				if a, _ := s.WallConstruction.Get(d); a.Category == "solid_brick" {
					s.WallConstruction.Set(d, a.WithUValue(u.NewUValue))
				}
			}
		}
	case LoftInsulation:
		b.Construction.Roof.UValue = u.NewUValue
		for _, s := range b.AllSpaces() {
			if strings.Contains(string(s.CeilingConstruction.Category), "roof") {
				s.CeilingConstruction.UValue = u.NewUValue
			}
		}
	case FloorInsulation:
		b.Construction.Floor.Ground.UValue = u.NewUValue
		for _, s := range b.AllSpaces() {
			if s.IsGround() && !s.FloorConstruction.IsZero() {
				s.FloorConstruction.UValue = u.NewUValue
			}
		}
	case Windows:
		b.Construction.Windows.UValue = u.NewUValue
		for _, s := range b.AllSpaces() {
			if !s.WindowCharacteristics.IsZero() {
				s.WindowCharacteristics.UValue = u.NewUValue
			}
		}
	case Ventilation:
		b.Thermal.VentilationRate = u.NewRate
	}
	return nil
}

// Impact compares the heat loss of a building before and after upgrades.
type Impact struct {
	OriginalLoss   float64                     `json:"originalLoss"` // kW
	NewLoss        float64                     `json:"newLoss"`      // kW
	Savings        float64                     `json:"savings"`      // kW
	SavingsPercent float64                     `json:"savingsPercent"`
	Upgrades       []Upgrade                   `json:"upgrades"`
	Breakdown      *building.HeatLossBreakdown `json:"breakdown"`
}

// UpgradeImpact applies upgrades to a copy of b and recalculates it. b is
// never modified. A building that has not been calculated yet is
// measured on a separate copy first.
func (c *Calculator) UpgradeImpact(b *building.Building, upgrades []Upgrade) (*Impact, error) {
	original := b.TotalHeatLoss
	if b.Breakdown == nil {
		baseline := b.Clone()
		if _, err := c.Calculate(baseline); err != nil {
			return nil, err
		}
		original = baseline.TotalHeatLoss
	}

	upgraded := b.Clone()
	for _, u := range upgrades {
		if err := ApplyUpgrade(upgraded, u); err != nil {
			return nil, err
		}
	}
	bd, err := c.Calculate(upgraded)
	if err != nil {
		return nil, err
	}

	impact := &Impact{
		OriginalLoss: original,
		NewLoss:      upgraded.TotalHeatLoss,
		Savings:      original - upgraded.TotalHeatLoss,
		Upgrades:     append([]Upgrade(nil), upgrades...),
		Breakdown:    bd,
	}
	if original > 0 {
		impact.SavingsPercent = impact.Savings / original * 100
	}
	return impact, nil
}
