package validation

import (
	"math"
	"testing"

	"github.com/tomaszchojnowski/heatcalc/pkg/construction"
	"github.com/tomaszchojnowski/heatcalc/pkg/template"
)

func builtin(t *testing.T, id string) *template.Template {
	t.Helper()
	r, err := template.Builtin()
	if err != nil {
		t.Fatalf("Builtin failed: %v", err)
	}
	tpl, err := r.Get(id)
	if err != nil {
		t.Fatalf("Get(%q) failed: %v", id, err)
	}
	return tpl
}

func TestValidateBuiltinTemplates(t *testing.T) {
	for _, id := range []string{"victorian_terrace", "semi_1930s", "postwar_detached", "newbuild", "flat"} {
		r := ValidateTemplate(builtin(t, id))
		if !r.Valid {
			t.Errorf("%s: expected valid report, got %d errors: %v", id, len(r.Errors), r.Errors)
		}
	}
}

func TestValidateTemplateMissingLayout(t *testing.T) {
	tpl := builtin(t, "newbuild")
	tpl.Layout = nil
	r := ValidateTemplate(tpl)
	if r.Valid {
		t.Error("expected invalid report for empty layout")
	}
	assertHasError(t, r, "layout")
}

func TestValidateTemplateDimensions(t *testing.T) {
	tpl := builtin(t, "newbuild")
	tpl.Dimensions.Width = 0
	tpl.Dimensions.GroundHeight = math.NaN()
	r := ValidateTemplate(tpl)
	assertHasError(t, r, "dimensions.width")
	assertHasError(t, r, "dimensions.groundHeight")
}

func TestValidateTemplateDuplicateRoomID(t *testing.T) {
	tpl := builtin(t, "semi_1930s")
	tpl.Layout[1].Rooms[0].ID = "living"
	r := ValidateTemplate(tpl)
	if r.Valid {
		t.Error("expected invalid report for duplicate room id")
	}
	assertHasError(t, r, "layout.first[0].id")
}

func TestValidateTemplateExternalPartyOverlap(t *testing.T) {
	tpl := builtin(t, "victorian_terrace")
	room := &tpl.Layout[0].Rooms[0]
	room.ExternalWalls = append(room.ExternalWalls, construction.West)

	r := ValidateTemplate(tpl)
	if !r.Valid {
		t.Errorf("overlap should warn, not fail: %v", r.Errors)
	}
	assertHasWarning(t, r, "layout.ground[0].partyWalls[0]")
}

func TestValidateTemplatePartyWithoutAssembly(t *testing.T) {
	tpl := builtin(t, "postwar_detached")
	tpl.Layout[0].Rooms[0].PartyWalls = []construction.Direction{construction.East}
	r := ValidateTemplate(tpl)
	if !r.Valid {
		t.Errorf("expected valid report, got %v", r.Errors)
	}
	if len(r.Info) == 0 {
		t.Error("expected info about party walls treated as internal")
	}
}

func TestValidateTemplateBadDirection(t *testing.T) {
	tpl := builtin(t, "flat")
	tpl.Layout[0].Rooms[0].Windows[0].Wall = "up"
	r := ValidateTemplate(tpl)
	assertHasError(t, r, "layout.ground[0].windows[0].wall")
}

func TestValidateTemplateOversizedOpening(t *testing.T) {
	tpl := builtin(t, "flat")
	tpl.Layout[0].Rooms[0].Windows[0].Width = 40
	r := ValidateTemplate(tpl)
	if !r.Valid {
		t.Errorf("oversized opening should warn, not fail: %v", r.Errors)
	}
	assertHasWarning(t, r, "layout.ground[0]")
}

func TestValidateTemplateUpperFloorRequired(t *testing.T) {
	tpl := builtin(t, "semi_1930s")
	tpl.Construction.Floor.Upper = construction.Assembly{}
	r := ValidateTemplate(tpl)
	assertHasError(t, r, "construction.floor.upper")

	// single storey needs none
	flat := builtin(t, "flat")
	if r := ValidateTemplate(flat); !r.Valid {
		t.Errorf("flat: %v", r.Errors)
	}
}

func TestValidateTemplateThermal(t *testing.T) {
	tpl := builtin(t, "newbuild")
	tpl.Thermal.VentilationRate = 0
	tpl.Thermal.ThermalBridging = -0.1
	r := ValidateTemplate(tpl)
	assertHasError(t, r, "thermal.ventilationRate")
	assertHasError(t, r, "thermal.thermalBridging")
}

func TestValidateTemplateNegativeUValue(t *testing.T) {
	tpl := builtin(t, "newbuild")
	tpl.Construction.Roof.UValue = -1
	r := ValidateTemplate(tpl)
	assertHasError(t, r, "construction.roof.uValue")
}

func TestValidateTemplateFloorCountMismatch(t *testing.T) {
	tpl := builtin(t, "newbuild")
	tpl.Dimensions.Floors = 3
	r := ValidateTemplate(tpl)
	if !r.Valid {
		t.Errorf("floor count mismatch should only warn: %v", r.Errors)
	}
	assertHasWarning(t, r, "dimensions.floors")
}

func assertHasError(t *testing.T, r *Report, path string) {
	t.Helper()
	for _, e := range r.Errors {
		if e.Path == path {
			return
		}
	}
	t.Errorf("expected error with path %q, got errors: %v", path, r.Errors)
}

func assertHasWarning(t *testing.T, r *Report, path string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Path == path {
			return
		}
	}
	t.Errorf("expected warning with path %q, got warnings: %v", path, r.Warnings)
}
