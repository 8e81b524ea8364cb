package heatloss

import (
	"errors"
	"math"
	"testing"

	"github.com/tomaszchojnowski/heatcalc/pkg/building"
	"github.com/tomaszchojnowski/heatcalc/pkg/climate"
	"github.com/tomaszchojnowski/heatcalc/pkg/construction"
	"github.com/tomaszchojnowski/heatcalc/pkg/template"
	"github.com/tomaszchojnowski/heatcalc/pkg/validation"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func newCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, err := New(climate.DefaultConditions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func singleSpace(t *testing.T, name string, w, d, h float64) (*building.Building, *building.Space) {
	t.Helper()
	s, err := building.NewSpace("s1", name, w, d, h, building.GroundFloor)
	if err != nil {
		t.Fatalf("NewSpace: %v", err)
	}
	b := &building.Building{
		ID:      "test",
		Thermal: template.Thermal{VentilationRate: 1.5},
		Floors: []*building.Floor{
			{Key: building.GroundFloor, Name: "Ground Floor", Spaces: []*building.Space{s}},
		},
	}
	return b, s
}

func builtin(t *testing.T, id string) *building.Building {
	t.Helper()
	reg, err := template.Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	tmpl, err := reg.Get(id)
	if err != nil {
		t.Fatalf("Get(%q): %v", id, err)
	}
	b, err := building.New(tmpl)
	if err != nil {
		t.Fatalf("building.New: %v", err)
	}
	return b
}

func TestFloorLoss(t *testing.T) {
	b, s := singleSpace(t, "Living Room", 5, 4, 2.5)
	s.FloorConstruction = construction.Assembly{Category: "solid_concrete", UValue: 0.7}

	bd, err := newCalculator(t).Calculate(b)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	got := bd.Spaces["s1"]
	if !approx(got.Floor, 336, 1e-9) {
		t.Errorf("floor loss = %v, want 336", got.Floor)
	}
	if got.DeltaT != 24 {
		t.Errorf("deltaT = %v, want 24", got.DeltaT)
	}
	if got.Ceiling != 0 || got.Walls.Sum() != 0 || got.Windows != 0 {
		t.Errorf("elements without construction lost heat: %+v", got)
	}
	if s.HeatLoss != got {
		t.Error("space heat loss not written back")
	}
}

func TestVentilationLoss(t *testing.T) {
	b, _ := singleSpace(t, "Living Room", 6, 4.5, 2)
	bd, err := newCalculator(t).Calculate(b)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	got := bd.Spaces["s1"].Ventilation
	// 54 m³ × 1.5 ach × 1.2 × 1005 × 24 K / 3600
	if !approx(got, 651.24, 0.01) {
		t.Errorf("ventilation loss = %v, want 651.24", got)
	}
	if want := VentilationLoss(54, 1.5, 24); got != want {
		t.Errorf("ventilation loss = %v, want %v", got, want)
	}
}

func TestBedroomTemperature(t *testing.T) {
	b, s := singleSpace(t, "Bedroom 2", 3, 3, 2.4)
	s.FloorConstruction = construction.Assembly{UValue: 1}
	bd, err := newCalculator(t).Calculate(b)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	got := bd.Spaces["s1"]
	if got.InternalTemp != 18 || got.DeltaT != 21 {
		t.Errorf("bedroom temp = %v, deltaT = %v, want 18 and 21", got.InternalTemp, got.DeltaT)
	}
}

func TestWallsSpreadEvenly(t *testing.T) {
	b, s := singleSpace(t, "Kitchen", 4, 3, 2.5)
	s.WallConstruction.North = construction.Assembly{UValue: 2}
	s.WallConstruction.South = construction.Assembly{UValue: 1}
	s.Windows = []construction.Opening{{Wall: construction.North, Width: 2, Height: 1}}

	bd, err := newCalculator(t).Calculate(b)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	got := bd.Spaces["s1"]

	// 35 m² of wall, 2 m² of window, spread over four walls.
	net := (35.0 - 2.0) / 4
	if !approx(got.Walls.North, 2*net*24, 1e-9) {
		t.Errorf("north = %v, want %v", got.Walls.North, 2*net*24)
	}
	if !approx(got.Walls.South, net*24, 1e-9) {
		t.Errorf("south = %v, want %v", got.Walls.South, net*24)
	}
	if got.Walls.East != 0 || got.Walls.West != 0 {
		t.Errorf("walls without U-value lost heat: %+v", got.Walls)
	}
	// No glazing recorded for the space.
	if got.Windows != 0 {
		t.Errorf("windows = %v, want 0", got.Windows)
	}

	s.WindowCharacteristics = construction.Glazing{Category: "double_glazed", UValue: 2.8}
	bd, _ = newCalculator(t).Calculate(b)
	if w := bd.Spaces["s1"].Windows; !approx(w, 2.8*2*24, 1e-9) {
		t.Errorf("windows = %v, want %v", w, 2.8*2*24)
	}
}

func TestOversizedWindowsClampWalls(t *testing.T) {
	b, s := singleSpace(t, "Conservatory", 2, 2, 2)
	s.WallConstruction.North = construction.Assembly{UValue: 2}
	s.Windows = []construction.Opening{{Wall: construction.North, Width: 10, Height: 2}}

	bd, err := newCalculator(t).Calculate(b)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if n := bd.Spaces["s1"].Walls.North; n != 0 {
		t.Errorf("north = %v, want 0", n)
	}
}

func TestBuildingTotals(t *testing.T) {
	b := builtin(t, "victorian_terrace")
	bd, err := newCalculator(t).Calculate(b)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	if len(bd.Spaces) != b.SpaceCount() {
		t.Fatalf("spaces = %d, want %d", len(bd.Spaces), b.SpaceCount())
	}

	var fabric, vent float64
	for _, s := range bd.Spaces {
		if !approx(s.Total, s.FabricLoss+s.VentilationLoss, 1e-9) {
			t.Errorf("%s: total %v != fabric %v + ventilation %v", s.SpaceID, s.Total, s.FabricLoss, s.VentilationLoss)
		}
		fabric += s.FabricLoss
		vent += s.VentilationLoss
	}

	tot := bd.Totals
	if !approx(tot.ThermalBridging, fabric*0.15, 1e-6) {
		t.Errorf("bridging = %v, want %v", tot.ThermalBridging, fabric*0.15)
	}
	if !approx(tot.FabricLoss, fabric*1.15, 1e-6) {
		t.Errorf("fabric = %v, want %v", tot.FabricLoss, fabric*1.15)
	}
	if !approx(tot.VentilationLoss, vent, 1e-6) {
		t.Errorf("ventilation = %v, want %v", tot.VentilationLoss, vent)
	}
	if !approx(tot.TotalLoss, tot.FabricLoss+tot.VentilationLoss, 1e-6) {
		t.Errorf("total = %v, want fabric + ventilation %v", tot.TotalLoss, tot.FabricLoss+tot.VentilationLoss)
	}
	if !approx(bd.PeakLoad, tot.TotalLoss*1.2, 1e-6) {
		t.Errorf("peak = %v, want %v", bd.PeakLoad, tot.TotalLoss*1.2)
	}
	if !approx(b.TotalHeatLoss, tot.TotalLoss/1000, 1e-9) {
		t.Errorf("building total = %v kW, want %v", b.TotalHeatLoss, tot.TotalLoss/1000)
	}
	if b.Breakdown != bd {
		t.Error("breakdown not stored on building")
	}

	if bd.Spaces["bedroom1"].Ceiling <= 0 {
		t.Error("bedroom1 ceiling loss should be positive")
	}
	// Upper floor construction is used as the ground floor ceiling.
	if bd.Spaces["living"].Ceiling <= 0 {
		t.Error("living ceiling loss should be positive")
	}
}

func TestTotalsAddUpExactly(t *testing.T) {
	for _, id := range []string{"victorian_terrace", "semi_1930s", "postwar_detached", "newbuild", "flat"} {
		b := builtin(t, id)
		bd, err := newCalculator(t).Calculate(b)
		if err != nil {
			t.Fatalf("%s: Calculate: %v", id, err)
		}
		tot := bd.Totals
		if tot.TotalLoss != tot.FabricLoss+tot.VentilationLoss {
			t.Errorf("%s: total %v != fabric %v + ventilation %v", id, tot.TotalLoss, tot.FabricLoss, tot.VentilationLoss)
		}
		if bd.PeakLoad != tot.TotalLoss*PeakMargin {
			t.Errorf("%s: peak %v != total × %v", id, bd.PeakLoad, PeakMargin)
		}
	}
}

func TestCalculateIsRepeatable(t *testing.T) {
	b := builtin(t, "semi_1930s")
	c := newCalculator(t)
	first, err := c.Calculate(b)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	total := first.Totals.TotalLoss
	second, err := c.Calculate(b)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if second.Totals.TotalLoss != total {
		t.Errorf("second run = %v, want %v", second.Totals.TotalLoss, total)
	}
}

func TestEmptyBuilding(t *testing.T) {
	b := &building.Building{Thermal: template.Thermal{VentilationRate: 1}}
	bd, err := newCalculator(t).Calculate(b)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if bd.Totals.TotalLoss != 0 || bd.PeakLoad != 0 || b.TotalHeatLoss != 0 {
		t.Errorf("empty building = %+v, want zero", bd.Totals)
	}
	if HeatLossPerArea(b) != 0 {
		t.Error("HeatLossPerArea of empty building should be 0")
	}
}

func TestCalculateErrors(t *testing.T) {
	tests := []struct {
		name    string
		thermal template.Thermal
		want    error
	}{
		{"zero ventilation", template.Thermal{VentilationRate: 0}, ErrMissingVentilationRate},
		{"nan ventilation", template.Thermal{VentilationRate: math.NaN()}, ErrMissingVentilationRate},
		{"negative bridging", template.Thermal{VentilationRate: 1, ThermalBridging: -0.1}, ErrInvalidThermalBridging},
		{"nan bridging", template.Thermal{VentilationRate: 1, ThermalBridging: math.NaN()}, ErrInvalidThermalBridging},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := singleSpace(t, "Room", 3, 3, 2.4)
			b.Thermal = tt.thermal
			_, err := newCalculator(t).Calculate(b)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if b.Breakdown != nil {
				t.Error("failed calculation stored a breakdown")
			}
		})
	}
}

func TestNewRejectsInvalidConditions(t *testing.T) {
	c := climate.DefaultConditions()
	c.ExternalDesignTemp = 25
	_, err := New(c)
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *validation.Error", err)
	}
	if len(verr.Report.Errors) != 2 {
		t.Errorf("errors = %d, want 2 (internal and bedroom)", len(verr.Report.Errors))
	}
	if len(verr.Report.Warnings) != 1 {
		t.Errorf("warnings = %d, want 1 (mild external temperature)", len(verr.Report.Warnings))
	}
}

func TestHeatLossPerArea(t *testing.T) {
	b := builtin(t, "newbuild")
	if _, err := newCalculator(t).Calculate(b); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	want := b.TotalHeatLoss * 1000 / b.TotalFloorArea()
	if got := HeatLossPerArea(b); !approx(got, want, 1e-9) {
		t.Errorf("HeatLossPerArea = %v, want %v", got, want)
	}
}

func TestColderRegionLosesMore(t *testing.T) {
	london, _ := climate.Lookup("london")
	scotland, _ := climate.Lookup("scotland")

	warm, err := New(london.Conditions())
	if err != nil {
		t.Fatal(err)
	}
	cold, err := New(scotland.Conditions())
	if err != nil {
		t.Fatal(err)
	}

	a := builtin(t, "postwar_detached")
	b := a.Clone()
	warmBD, _ := warm.Calculate(a)
	coldBD, _ := cold.Calculate(b)
	if coldBD.Totals.TotalLoss <= warmBD.Totals.TotalLoss {
		t.Errorf("scotland %v W <= london %v W", coldBD.Totals.TotalLoss, warmBD.Totals.TotalLoss)
	}
}
