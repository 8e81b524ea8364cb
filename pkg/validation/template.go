package validation

import (
	"fmt"
	"math"

	"github.com/tomaszchojnowski/heatcalc/pkg/construction"
	"github.com/tomaszchojnowski/heatcalc/pkg/template"
)

// Minimum room dimensions accepted by the room editor, in metres.
const (
	MinRoomSide   = 0.5
	MinRoomHeight = 2.0
)

var knownFloors = map[string]bool{"ground": true, "first": true, "second": true, "third": true}

// ValidateTemplate checks a property template before buildings are created
// from it.
func ValidateTemplate(t *template.Template) *Report {
	r := NewReport()

	validateIdentity(t, r)
	validateDimensions(t, r)
	validateLayout(t, r)
	validateConstruction(t, r)
	validateThermal(t, r)
	validateCosts(t, r)

	return r
}

func validateIdentity(t *template.Template, r *Report) {
	if t.ID == "" {
		r.AddError(Result{
			Level:   LevelStructure,
			Message: "template id must not be empty",
			Path:    "id",
		})
	}
}

func validateDimensions(t *template.Template, r *Report) {
	d := t.Dimensions
	for _, f := range []struct {
		path  string
		value float64
	}{
		{"dimensions.width", d.Width},
		{"dimensions.depth", d.Depth},
		{"dimensions.groundHeight", d.GroundHeight},
	} {
		if !(f.value > 0) {
			r.AddError(Result{
				Level:       LevelGeometry,
				Message:     fmt.Sprintf("%s must be greater than 0", f.path),
				Path:        f.path,
				ActualValue: f.value,
				Expected:    "> 0",
			})
		}
	}

	if d.GroundHeight > 0 && d.GroundHeight < MinRoomHeight {
		r.AddWarning(Result{
			Level:       LevelGeometry,
			Message:     fmt.Sprintf("ground floor height %.2fm is below the %.1fm minimum", d.GroundHeight, MinRoomHeight),
			Path:        "dimensions.groundHeight",
			ActualValue: d.GroundHeight,
			Expected:    fmt.Sprintf(">= %.1f", MinRoomHeight),
		})
	}

	if d.Floors > 0 && d.Floors != len(t.Layout) {
		r.AddWarning(Result{
			Level:        LevelStructure,
			Message:      fmt.Sprintf("dimensions.floors is %d but the layout defines %d floors", d.Floors, len(t.Layout)),
			Path:         "dimensions.floors",
			ActualValue:  d.Floors,
			ConflictWith: "layout",
		})
	}
}

func validateLayout(t *template.Template, r *Report) {
	if len(t.Layout) == 0 {
		r.AddError(Result{
			Level:    LevelStructure,
			Message:  "layout must define at least one floor",
			Path:     "layout",
			Expected: "at least 1 floor",
		})
		return
	}

	if _, ok := t.Layout.Floor("ground"); !ok {
		r.AddWarning(Result{
			Level:       LevelStructure,
			Message:     "layout has no ground floor; no space will use the ground floor construction",
			Path:        "layout",
			Suggestions: []string{"Name the lowest floor \"ground\""},
		})
	}

	floorSeen := make(map[string]bool)
	roomSeen := make(map[string]string)
	for _, f := range t.Layout {
		path := "layout." + f.Key
		if floorSeen[f.Key] {
			r.AddError(Result{
				Level:   LevelStructure,
				Message: fmt.Sprintf("floor %q is defined twice", f.Key),
				Path:    path,
			})
		}
		floorSeen[f.Key] = true

		if !knownFloors[f.Key] {
			r.AddInfo(Result{
				Level:   LevelGeometry,
				Message: fmt.Sprintf("floor %q has no height of its own; the ground floor height is used", f.Key),
				Path:    path,
			})
		}

		for i, room := range f.Rooms {
			roomPath := fmt.Sprintf("%s[%d]", path, i)
			if room.ID == "" {
				r.AddError(Result{
					Level:   LevelStructure,
					Message: "room id must not be empty",
					Path:    roomPath + ".id",
				})
			} else if prev, ok := roomSeen[room.ID]; ok {
				r.AddError(Result{
					Level:        LevelStructure,
					Message:      fmt.Sprintf("room id %q is not unique", room.ID),
					Path:         roomPath + ".id",
					ActualValue:  room.ID,
					ConflictWith: prev,
				})
			} else {
				roomSeen[room.ID] = roomPath
			}
			validateRoom(t, f.Key, room, roomPath, r)
		}
	}
}

func validateRoom(t *template.Template, floorKey string, room template.RoomSpec, path string, r *Report) {
	if !(room.Width > 0) || !(room.Depth > 0) {
		r.AddError(Result{
			Level:       LevelGeometry,
			Message:     fmt.Sprintf("room %q must have positive width and depth", room.ID),
			Path:        path,
			ActualValue: fmt.Sprintf("%gx%g", room.Width, room.Depth),
			Expected:    "> 0",
		})
		return
	}
	if room.Width < MinRoomSide || room.Depth < MinRoomSide {
		r.AddWarning(Result{
			Level:       LevelGeometry,
			Message:     fmt.Sprintf("room %q is smaller than %.1fm on one side", room.ID, MinRoomSide),
			Path:        path,
			ActualValue: fmt.Sprintf("%gx%g", room.Width, room.Depth),
		})
	}

	external := make(map[construction.Direction]bool)
	for i, d := range room.ExternalWalls {
		checkDirection(d, fmt.Sprintf("%s.externalWalls[%d]", path, i), r)
		external[d] = true
	}
	for i, d := range room.PartyWalls {
		checkDirection(d, fmt.Sprintf("%s.partyWalls[%d]", path, i), r)
		if external[d] {
			r.AddWarning(Result{
				Level:        LevelStructure,
				Message:      fmt.Sprintf("room %q lists the %s wall as both external and party; party takes precedence", room.ID, d),
				Path:         fmt.Sprintf("%s.partyWalls[%d]", path, i),
				ActualValue:  string(d),
				ConflictWith: path + ".externalWalls",
			})
		}
	}
	for i, d := range room.InternalWalls {
		checkDirection(d, fmt.Sprintf("%s.internalWalls[%d]", path, i), r)
	}
	if len(room.PartyWalls) > 0 && t.Construction.Walls.Party.IsZero() {
		r.AddInfo(Result{
			Level:   LevelThermal,
			Message: fmt.Sprintf("room %q lists party walls but no party wall construction is defined; they are treated as internal", room.ID),
			Path:    path + ".partyWalls",
		})
	}

	height := t.Dimensions.FloorHeight(floorKey)
	validateOpenings(room, room.Windows, path+".windows", r)
	validateOpenings(room, room.Doors, path+".doors", r)
	for _, d := range construction.Directions {
		wall := room.Width * height
		if d == construction.East || d == construction.West {
			wall = room.Depth * height
		}
		open := construction.AreaOnWall(room.Windows, d) + construction.AreaOnWall(room.Doors, d)
		if height > 0 && open > wall {
			r.AddWarning(Result{
				Level:       LevelGeometry,
				Message:     fmt.Sprintf("openings on the %s wall of %q (%.2fm²) exceed the wall area (%.2fm²); net wall area is clamped to 0", d, room.ID, open, wall),
				Path:        path,
				ActualValue: open,
				Expected:    fmt.Sprintf("<= %.2f", wall),
			})
		}
	}
}

func validateOpenings(room template.RoomSpec, openings []construction.Opening, path string, r *Report) {
	for i, o := range openings {
		p := fmt.Sprintf("%s[%d]", path, i)
		checkDirection(o.Wall, p+".wall", r)
		if !(o.Width > 0) || !(o.Height > 0) {
			r.AddError(Result{
				Level:       LevelGeometry,
				Message:     fmt.Sprintf("opening in room %q must have positive width and height", room.ID),
				Path:        p,
				ActualValue: fmt.Sprintf("%gx%g", o.Width, o.Height),
				Expected:    "> 0",
			})
		}
	}
}

func checkDirection(d construction.Direction, path string, r *Report) {
	if !d.Valid() {
		r.AddError(Result{
			Level:       LevelStructure,
			Message:     fmt.Sprintf("unknown wall direction %q", d),
			Path:        path,
			ActualValue: string(d),
			Expected:    "north, south, east or west",
		})
	}
}

func validateConstruction(t *template.Template, r *Report) {
	c := t.Construction
	assemblies := []struct {
		path     string
		a        construction.Assembly
		required bool
	}{
		{"construction.walls.external", c.Walls.External, true},
		{"construction.walls.internal", c.Walls.Internal, true},
		{"construction.walls.party", c.Walls.Party, false},
		{"construction.floor.ground", c.Floor.Ground, true},
		{"construction.floor.upper", c.Floor.Upper, len(t.Layout) > 1},
		{"construction.roof", c.Roof, true},
		{"construction.doors.external", c.Doors.External, false},
		{"construction.doors.internal", c.Doors.Internal, false},
	}
	for _, e := range assemblies {
		if e.a.IsZero() {
			if e.required {
				r.AddError(Result{
					Level:   LevelThermal,
					Message: fmt.Sprintf("%s is required", e.path),
					Path:    e.path,
				})
			}
			continue
		}
		checkUValue(e.path+".uValue", e.a.UValue, r)
	}
	checkUValue("construction.windows.uValue", c.Windows.UValue, r)
}

func checkUValue(path string, u float64, r *Report) {
	if math.IsNaN(u) || math.IsInf(u, 0) || u < 0 {
		r.AddError(Result{
			Level:       LevelThermal,
			Message:     "U-value must be a finite number >= 0",
			Path:        path,
			ActualValue: fmt.Sprint(u),
			Expected:    ">= 0",
		})
	}
}

func validateThermal(t *template.Template, r *Report) {
	th := t.Thermal
	if !(th.VentilationRate > 0) || math.IsInf(th.VentilationRate, 0) {
		r.AddError(Result{
			Level:       LevelThermal,
			Message:     "thermal.ventilationRate must be greater than 0 air changes per hour",
			Path:        "thermal.ventilationRate",
			ActualValue: fmt.Sprint(th.VentilationRate),
			Expected:    "> 0",
		})
	}
	if math.IsNaN(th.ThermalBridging) || math.IsInf(th.ThermalBridging, 0) || th.ThermalBridging < 0 {
		r.AddError(Result{
			Level:       LevelThermal,
			Message:     "thermal.thermalBridging must be a finite fraction >= 0",
			Path:        "thermal.thermalBridging",
			ActualValue: fmt.Sprint(th.ThermalBridging),
			Expected:    ">= 0",
		})
	}
}

func validateCosts(t *template.Template, r *Report) {
	if t.Costs.RadiatorComplexity <= 0 {
		r.AddInfo(Result{
			Level:       LevelStructure,
			Message:     "costs.radiatorComplexity is not set; installation estimates use 1.2",
			Path:        "costs.radiatorComplexity",
			ActualValue: t.Costs.RadiatorComplexity,
		})
	}
}
