package building

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/tomaszchojnowski/heatcalc/pkg/construction"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func testSpace(t *testing.T) *Space {
	t.Helper()
	s, err := NewSpace("living", "Living Room", 4, 5, 2.5, "ground")
	if err != nil {
		t.Fatalf("NewSpace failed: %v", err)
	}
	s.Windows = []construction.Opening{
		{Wall: construction.North, Width: 1.5, Height: 1.2, Position: 1, SillHeight: 0.9},
		{Wall: construction.East, Width: 1.0, Height: 1.0, Position: 2, SillHeight: 0.9},
	}
	s.Doors = []construction.Opening{
		{Wall: construction.North, Width: 0.9, Height: 2.1, Position: 0, Type: "external"},
	}
	s.FloorConstruction = construction.Assembly{Category: "solid_concrete", Thickness: 0.15, UValue: 0.8}
	s.CeilingConstruction = construction.Assembly{Category: "timber_joists", Thickness: 0.25, UValue: 1.5}
	s.WallConstruction = uniformWalls(construction.Assembly{Category: "brick_plaster", UValue: 1.5})
	s.WallConstruction.North = construction.Assembly{Category: "cavity_wall", UValue: 1.5}
	s.WindowCharacteristics = construction.Glazing{Category: "double_glazed", UValue: 2.8}
	return s
}

func TestSpaceDerivedAreas(t *testing.T) {
	s := testSpace(t)

	if got := s.FloorArea(); !approx(got, 20) {
		t.Errorf("FloorArea = %v, want 20", got)
	}
	if got := s.CeilingArea(); !approx(got, 20) {
		t.Errorf("CeilingArea = %v, want 20", got)
	}
	if got := s.Volume(); !approx(got, 50) {
		t.Errorf("Volume = %v, want 50", got)
	}
	walls := s.WallAreas()
	if !approx(walls.North, 10) || !approx(walls.South, 10) || !approx(walls.East, 12.5) || !approx(walls.West, 12.5) {
		t.Errorf("WallAreas = %+v", walls)
	}
	if got := s.TotalWallArea(); !approx(got, 45) {
		t.Errorf("TotalWallArea = %v, want 45", got)
	}
	if got := s.WindowArea(); !approx(got, 2.8) {
		t.Errorf("WindowArea = %v, want 2.8", got)
	}
	if got := s.DoorArea(); !approx(got, 1.89) {
		t.Errorf("DoorArea = %v, want 1.89", got)
	}
	// doors are not part of the unweighted net wall area
	if got := s.NetWallArea(); !approx(got, 42.2) {
		t.Errorf("NetWallArea = %v, want 42.2", got)
	}
	if got := s.NetWallAreaByDirection(construction.North); !approx(got, 10-1.8-1.89) {
		t.Errorf("NetWallAreaByDirection(north) = %v, want %v", got, 10-1.8-1.89)
	}
}

func TestSetDimensionsRecomputes(t *testing.T) {
	s := testSpace(t)
	sizes := [][3]float64{{3, 3, 2.4}, {6, 4.5, 2}, {0.5, 0.5, 2}, {12.25, 7.1, 3.3}}
	for _, d := range sizes {
		if err := s.SetDimensions(d[0], d[1], d[2]); err != nil {
			t.Fatalf("SetDimensions(%v) failed: %v", d, err)
		}
		if !approx(s.FloorArea(), d[0]*d[1]) {
			t.Errorf("FloorArea = %v, want %v", s.FloorArea(), d[0]*d[1])
		}
		if !approx(s.Volume(), d[0]*d[1]*d[2]) {
			t.Errorf("Volume = %v, want %v", s.Volume(), d[0]*d[1]*d[2])
		}
	}
	if len(s.Windows) != 2 || s.FloorConstruction.UValue != 0.8 {
		t.Error("SetDimensions must not touch openings or construction")
	}
}

func TestResizeKeepsHeight(t *testing.T) {
	s := testSpace(t)
	if err := s.Resize(3, 3); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if s.Height != 2.5 {
		t.Errorf("Height = %v, want 2.5", s.Height)
	}
}

func TestSetDimensionsRejectsNonPositive(t *testing.T) {
	s := testSpace(t)
	bad := [][3]float64{{0, 4, 2.5}, {4, -1, 2.5}, {4, 4, 0}, {math.NaN(), 4, 2.5}, {math.Inf(1), 4, 2.5}}
	for _, d := range bad {
		if err := s.SetDimensions(d[0], d[1], d[2]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("SetDimensions(%v) = %v, want ErrInvalidDimensions", d, err)
		}
	}
	if s.Width != 4 || s.Depth != 5 {
		t.Errorf("rejected update changed dimensions to %vx%v", s.Width, s.Depth)
	}
	if _, err := NewSpace("x", "X", 0, 1, 1, "ground"); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("NewSpace with zero width = %v, want ErrInvalidDimensions", err)
	}
}

func TestNetWallAreaNeverNegative(t *testing.T) {
	s := testSpace(t)
	s.Windows = append(s.Windows, construction.Opening{Wall: construction.South, Width: 30, Height: 3})
	for _, size := range [][2]float64{{4, 5}, {1, 1}, {0.5, 0.6}} {
		if err := s.Resize(size[0], size[1]); err != nil {
			t.Fatal(err)
		}
		for _, d := range construction.Directions {
			if got := s.NetWallAreaByDirection(d); got < 0 {
				t.Errorf("%vx%v NetWallAreaByDirection(%s) = %v, want >= 0", size[0], size[1], d, got)
			}
		}
	}
	if got := s.NetWallAreaByDirection(construction.South); got != 0 {
		t.Errorf("oversized south opening: net = %v, want 0", got)
	}
}

func TestSetWallConstruction(t *testing.T) {
	s := testSpace(t)
	party := construction.Assembly{Category: "solid_brick", UValue: 0}
	if !s.SetWallConstruction(construction.West, party) {
		t.Error("SetWallConstruction(west) = false")
	}
	if s.WallConstruction.West != party {
		t.Errorf("west = %+v", s.WallConstruction.West)
	}
	if s.SetWallConstruction("ceiling", party) {
		t.Error("SetWallConstruction(ceiling) should report false")
	}
}

func TestSpaceJSONRoundTrip(t *testing.T) {
	s := testSpace(t)
	s.HeatLoss = SpaceHeatLoss{SpaceID: s.ID, Floor: 336, Total: 1200}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var back Space
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if back.FloorArea() != s.FloorArea() || back.Volume() != s.Volume() || back.WallAreas() != s.WallAreas() {
		t.Error("derived areas differ after round trip")
	}
	if back.WallConstruction != s.WallConstruction {
		t.Errorf("walls = %+v, want %+v", back.WallConstruction, s.WallConstruction)
	}
	if back.FloorConstruction != s.FloorConstruction || back.CeilingConstruction != s.CeilingConstruction {
		t.Error("floor/ceiling construction differs after round trip")
	}
	if len(back.Windows) != 2 || back.Windows[1] != s.Windows[1] || len(back.Doors) != 1 {
		t.Errorf("openings = %+v / %+v", back.Windows, back.Doors)
	}
	if back.WindowCharacteristics != s.WindowCharacteristics {
		t.Errorf("glazing = %+v", back.WindowCharacteristics)
	}
	if back.FloorKey != "ground" || back.HeatLoss.Total != 1200 {
		t.Errorf("floor = %q, heat loss = %v", back.FloorKey, back.HeatLoss.Total)
	}
}

func TestSpaceJSONIgnoresStaleAreas(t *testing.T) {
	var s Space
	doc := `{"id":"a","name":"A","width":2,"depth":3,"height":2.5,"floor":"ground","floorArea":999,"volume":1}`
	if err := json.Unmarshal([]byte(doc), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if s.FloorArea() != 6 || s.Volume() != 15 {
		t.Errorf("FloorArea = %v, Volume = %v; want recomputed 6, 15", s.FloorArea(), s.Volume())
	}
	if s.Windows == nil || s.Doors == nil {
		t.Error("missing openings should decode as empty lists")
	}
}

func TestSpaceCloneIndependent(t *testing.T) {
	s := testSpace(t)
	c := s.Clone()
	c.Windows[0].Width = 9
	c.WallConstruction.North.UValue = 0.2
	c.WindowCharacteristics.UValue = 1.4

	if s.Windows[0].Width != 1.5 {
		t.Error("clone shares windows")
	}
	if s.WallConstruction.North.UValue != 1.5 {
		t.Error("clone shares wall construction")
	}
	if s.WindowCharacteristics.UValue != 2.8 {
		t.Error("clone shares glazing")
	}
}
