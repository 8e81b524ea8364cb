package template

import "github.com/tomaszchojnowski/heatcalc/pkg/construction"

// Template is a property archetype: a parametric dwelling description from
// which Building instances are created.
type Template struct {
	ID             string       `yaml:"id" json:"id"`
	Name           string       `yaml:"name" json:"name"`
	Era            string       `yaml:"era" json:"era"`
	CommonBedrooms int          `yaml:"commonBedrooms" json:"commonBedrooms"`
	Dimensions     Dimensions   `yaml:"dimensions" json:"dimensions"`
	Orientation    Orientation  `yaml:"orientation" json:"orientation"`
	Layout         Layout       `yaml:"layout" json:"layout"`
	Construction   Construction `yaml:"construction" json:"construction"`
	Thermal        Thermal      `yaml:"thermal" json:"thermal"`
	Costs          Costs        `yaml:"costs" json:"costs"`
}

// Dimensions are the external dimensions of the dwelling in metres.
type Dimensions struct {
	Width            float64 `yaml:"width" json:"width"`
	Depth            float64 `yaml:"depth" json:"depth"`
	GroundHeight     float64 `yaml:"groundHeight" json:"groundHeight"`
	FirstHeight      float64 `yaml:"firstHeight,omitempty" json:"firstHeight,omitempty"`
	SecondHeight     float64 `yaml:"secondHeight,omitempty" json:"secondHeight,omitempty"`
	ThirdHeight      float64 `yaml:"thirdHeight,omitempty" json:"thirdHeight,omitempty"`
	Floors           int     `yaml:"floors" json:"floors"`
	GroundFloorLevel float64 `yaml:"groundFloorLevel" json:"groundFloorLevel"`
	FirstFloorLevel  float64 `yaml:"firstFloorLevel,omitempty" json:"firstFloorLevel,omitempty"`
	RoofLevel        float64 `yaml:"roofLevel" json:"roofLevel"`
	RoofPitch        float64 `yaml:"roofPitch" json:"roofPitch"`
	RoofRidgeHeight  float64 `yaml:"roofRidgeHeight" json:"roofRidgeHeight"`
}

// FloorHeight returns the storey height for a floor key. Floors without a
// height of their own use the ground floor height.
func (d Dimensions) FloorHeight(floorKey string) float64 {
	var h float64
	switch floorKey {
	case "ground":
		h = d.GroundHeight
	case "first":
		h = d.FirstHeight
	case "second":
		h = d.SecondHeight
	case "third":
		h = d.ThirdHeight
	}
	if h <= 0 {
		return d.GroundHeight
	}
	return h
}

// Orientation maps the facades of the dwelling onto compass walls.
type Orientation struct {
	Front construction.Direction `yaml:"front" json:"front"`
	Rear  construction.Direction `yaml:"rear" json:"rear"`
	Left  construction.Direction `yaml:"left" json:"left"`
	Right construction.Direction `yaml:"right" json:"right"`
}

// Position is the plan offset of a room from the dwelling's origin.
type Position struct {
	X float64 `yaml:"x" json:"x"`
	Z float64 `yaml:"z" json:"z"`
}

// RoomSpec describes one room of a floor plan. It is the only place that
// says which walls of a room are external, party or internal.
type RoomSpec struct {
	ID            string                   `yaml:"id" json:"id"`
	Name          string                   `yaml:"name" json:"name"`
	Width         float64                  `yaml:"width" json:"width"`
	Depth         float64                  `yaml:"depth" json:"depth"`
	Position      Position                 `yaml:"position" json:"position"`
	ExternalWalls []construction.Direction `yaml:"externalWalls" json:"externalWalls,omitempty"`
	PartyWalls    []construction.Direction `yaml:"partyWalls" json:"partyWalls,omitempty"`
	InternalWalls []construction.Direction `yaml:"internalWalls" json:"internalWalls,omitempty"`
	Windows       []construction.Opening   `yaml:"windows,omitempty" json:"windows,omitempty"`
	Doors         []construction.Opening   `yaml:"doors,omitempty" json:"doors,omitempty"`
}

// Area returns the plan area of the room.
func (r RoomSpec) Area() float64 {
	return r.Width * r.Depth
}

// Walls groups the wall assemblies. Party is zero when the archetype has
// no shared walls.
type Walls struct {
	External construction.Assembly `yaml:"external" json:"external"`
	Party    construction.Assembly `yaml:"party,omitempty" json:"party,omitempty"`
	Internal construction.Assembly `yaml:"internal" json:"internal"`
}

// Floors groups the floor assemblies. Upper is zero for single-storey units.
type Floors struct {
	Ground construction.Assembly `yaml:"ground" json:"ground"`
	Upper  construction.Assembly `yaml:"upper,omitempty" json:"upper,omitempty"`
}

// Construction holds the element archetypes of the dwelling.
type Construction struct {
	Walls   Walls                 `yaml:"walls" json:"walls"`
	Floor   Floors                `yaml:"floor" json:"floor"`
	Roof    construction.Assembly `yaml:"roof" json:"roof"`
	Windows construction.Glazing  `yaml:"windows" json:"windows"`
	Doors   construction.DoorSet  `yaml:"doors,omitempty" json:"doors,omitempty"`
}

// Thermal holds whole-dwelling performance figures.
type Thermal struct {
	VentilationRate float64 `yaml:"ventilationRate" json:"ventilationRate"` // air changes per hour
	ThermalBridging float64 `yaml:"thermalBridging" json:"thermalBridging"` // fraction of fabric loss
}

// Costs are installation difficulty multipliers.
type Costs struct {
	RadiatorComplexity float64 `yaml:"radiatorComplexity" json:"radiatorComplexity"`
	PipeworkComplexity float64 `yaml:"pipeworkComplexity" json:"pipeworkComplexity"`
}

// FloorArea sums the plan area of every room in the layout.
func (t *Template) FloorArea() float64 {
	total := 0.0
	for _, f := range t.Layout {
		for _, r := range f.Rooms {
			total += r.Area()
		}
	}
	return total
}

// RoomCount returns the number of rooms across all floors.
func (t *Template) RoomCount() int {
	n := 0
	for _, f := range t.Layout {
		n += len(f.Rooms)
	}
	return n
}

// Clone returns a deep copy of t.
func (t *Template) Clone() *Template {
	c := *t
	c.Layout = make(Layout, len(t.Layout))
	for i, f := range t.Layout {
		rooms := make([]RoomSpec, len(f.Rooms))
		for j, r := range f.Rooms {
			r.ExternalWalls = copyDirections(r.ExternalWalls)
			r.PartyWalls = copyDirections(r.PartyWalls)
			r.InternalWalls = copyDirections(r.InternalWalls)
			if r.Windows != nil {
				r.Windows = construction.CopyOpenings(r.Windows)
			}
			if r.Doors != nil {
				r.Doors = construction.CopyOpenings(r.Doors)
			}
			rooms[j] = r
		}
		c.Layout[i] = FloorPlan{Key: f.Key, Rooms: rooms}
	}
	return &c
}

func copyDirections(in []construction.Direction) []construction.Direction {
	if in == nil {
		return nil
	}
	out := make([]construction.Direction, len(in))
	copy(out, in)
	return out
}
