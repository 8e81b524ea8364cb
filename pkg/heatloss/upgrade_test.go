package heatloss

import (
	"errors"
	"testing"

	"github.com/tomaszchojnowski/heatcalc/pkg/building"
	"github.com/tomaszchojnowski/heatcalc/pkg/template"
)

func TestUpgradeImpactLeavesOriginal(t *testing.T) {
	b := builtin(t, "victorian_terrace")
	c := newCalculator(t)
	if _, err := c.Calculate(b); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	before := b.TotalHeatLoss
	living, _ := b.Space("living")
	wallU := living.WallConstruction.North.UValue

	pkg, ok := LookupPackage("deep_retrofit")
	if !ok {
		t.Fatal("deep_retrofit package missing")
	}
	impact, err := c.UpgradeImpact(b, pkg.Upgrades)
	if err != nil {
		t.Fatalf("UpgradeImpact: %v", err)
	}

	if b.TotalHeatLoss != before {
		t.Errorf("original total changed: %v -> %v", before, b.TotalHeatLoss)
	}
	if living.WallConstruction.North.UValue != wallU {
		t.Errorf("original wall U changed: %v -> %v", wallU, living.WallConstruction.North.UValue)
	}
	if b.Thermal.VentilationRate != 1.5 {
		t.Errorf("original ventilation rate changed to %v", b.Thermal.VentilationRate)
	}

	if impact.OriginalLoss != before {
		t.Errorf("original loss = %v, want %v", impact.OriginalLoss, before)
	}
	if impact.NewLoss >= before {
		t.Errorf("new loss %v not below original %v", impact.NewLoss, before)
	}
	if !approx(impact.Savings, before-impact.NewLoss, 1e-9) {
		t.Errorf("savings = %v, want %v", impact.Savings, before-impact.NewLoss)
	}
	want := (before - impact.NewLoss) / before * 100
	if !approx(impact.SavingsPercent, want, 1e-9) {
		t.Errorf("savings percent = %v, want %v", impact.SavingsPercent, want)
	}
	if impact.Breakdown == nil || impact.Breakdown == b.Breakdown {
		t.Error("impact should carry the upgraded breakdown")
	}
}

func TestUpgradeImpactUncalculated(t *testing.T) {
	b := builtin(t, "semi_1930s")
	impact, err := newCalculator(t).UpgradeImpact(b, []Upgrade{{Kind: Windows, NewUValue: 1.4}})
	if err != nil {
		t.Fatalf("UpgradeImpact: %v", err)
	}
	if impact.OriginalLoss <= 0 {
		t.Errorf("original loss = %v, want baseline", impact.OriginalLoss)
	}
	if b.Breakdown != nil || b.TotalHeatLoss != 0 {
		t.Error("uncalculated building was modified")
	}
}

func TestUpgradeImpactZeroOriginal(t *testing.T) {
	b := &building.Building{Thermal: template.Thermal{VentilationRate: 1}}
	b.Breakdown = &building.HeatLossBreakdown{}
	impact, err := newCalculator(t).UpgradeImpact(b, nil)
	if err != nil {
		t.Fatalf("UpgradeImpact: %v", err)
	}
	if impact.SavingsPercent != 0 {
		t.Errorf("savings percent = %v, want 0", impact.SavingsPercent)
	}
}

func TestApplyWallInsulation(t *testing.T) {
	b := builtin(t, "victorian_terrace")
	if err := ApplyUpgrade(b, Upgrade{Kind: WallInsulation, NewUValue: 0.3}); err != nil {
		t.Fatalf("ApplyUpgrade: %v", err)
	}
	if b.Construction.Walls.External.UValue != 0.3 {
		t.Errorf("building wall U = %v, want 0.3", b.Construction.Walls.External.UValue)
	}
	living, _ := b.Space("living")
	if living.WallConstruction.North.UValue != 0.3 {
		t.Errorf("external wall U = %v, want 0.3", living.WallConstruction.North.UValue)
	}
	// Party walls share the solid brick category.
	if living.WallConstruction.West.UValue != 0.3 {
		t.Errorf("party wall U = %v, want 0.3", living.WallConstruction.West.UValue)
	}
	if living.WallConstruction.East.UValue != 1.5 {
		t.Errorf("internal wall U = %v, want 1.5", living.WallConstruction.East.UValue)
	}
}

func TestApplyLoftInsulation(t *testing.T) {
	b := builtin(t, "victorian_terrace")
	bed, _ := b.Space("bedroom1")
	before := bed.CeilingConstruction.UValue
	if err := ApplyUpgrade(b, Upgrade{Kind: LoftInsulation, NewUValue: 0.16}); err != nil {
		t.Fatalf("ApplyUpgrade: %v", err)
	}
	if b.Construction.Roof.UValue != 0.16 {
		t.Errorf("roof U = %v, want 0.16", b.Construction.Roof.UValue)
	}
	// pitched_slate does not name a roof category.
	if bed.CeilingConstruction.UValue != before {
		t.Errorf("ceiling U = %v, want %v", bed.CeilingConstruction.UValue, before)
	}

	bed.CeilingConstruction.Category = "flat_roof"
	if err := ApplyUpgrade(b, Upgrade{Kind: LoftInsulation, NewUValue: 0.12}); err != nil {
		t.Fatalf("ApplyUpgrade: %v", err)
	}
	if bed.CeilingConstruction.UValue != 0.12 {
		t.Errorf("roof ceiling U = %v, want 0.12", bed.CeilingConstruction.UValue)
	}
}

func TestApplyFloorAndWindows(t *testing.T) {
	b := builtin(t, "victorian_terrace")
	if err := ApplyUpgrade(b, Upgrade{Kind: FloorInsulation, NewUValue: 0.18}); err != nil {
		t.Fatal(err)
	}
	if err := ApplyUpgrade(b, Upgrade{Kind: Windows, NewUValue: 1.4}); err != nil {
		t.Fatal(err)
	}
	for _, s := range b.AllSpaces() {
		if s.IsGround() && s.FloorConstruction.UValue != 0.18 {
			t.Errorf("%s floor U = %v, want 0.18", s.ID, s.FloorConstruction.UValue)
		}
		if !s.IsGround() && s.FloorConstruction.UValue == 0.18 {
			t.Errorf("%s upper floor was insulated", s.ID)
		}
		if s.WindowCharacteristics.UValue != 1.4 {
			t.Errorf("%s glazing U = %v, want 1.4", s.ID, s.WindowCharacteristics.UValue)
		}
	}
	if b.Construction.Floor.Ground.UValue != 0.18 || b.Construction.Windows.UValue != 1.4 {
		t.Errorf("building construction not updated: %+v", b.Construction)
	}
}

func TestApplyUpgradeErrors(t *testing.T) {
	tests := []struct {
		name string
		u    Upgrade
		want error
	}{
		{"unknown", Upgrade{Kind: "solar_panels"}, ErrUnknownUpgrade},
		{"zero ventilation", Upgrade{Kind: Ventilation}, ErrInvalidUpgrade},
		{"negative u", Upgrade{Kind: Windows, NewUValue: -1}, ErrInvalidUpgrade},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := builtin(t, "flat")
			if err := ApplyUpgrade(b, tt.u); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPackages(t *testing.T) {
	keys := PackageKeys()
	want := []string{"basic", "deep_retrofit", "intermediate"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	basic, _ := LookupPackage("basic")
	if len(basic.Upgrades) != 2 {
		t.Errorf("basic has %d upgrades, want 2", len(basic.Upgrades))
	}
	basic.Upgrades[0].NewUValue = 99
	again, _ := LookupPackage("basic")
	if again.Upgrades[0].NewUValue == 99 {
		t.Error("LookupPackage returned shared upgrades")
	}

	if _, ok := LookupPackage("gold"); ok {
		t.Error("unknown package found")
	}

	// Every package must reduce the loss of an uninsulated house.
	c := newCalculator(t)
	b := builtin(t, "postwar_detached")
	if _, err := c.Calculate(b); err != nil {
		t.Fatal(err)
	}
	for _, k := range keys {
		p, _ := LookupPackage(k)
		impact, err := c.UpgradeImpact(b, p.Upgrades)
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		if impact.Savings <= 0 {
			t.Errorf("%s saves %v kW", k, impact.Savings)
		}
	}
}
