// Package building is the parametric model of a dwelling: floors of rooms,
// each room carrying its own copies of the construction assemblies that
// heat is lost through.
package building

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tomaszchojnowski/heatcalc/pkg/construction"
	"github.com/tomaszchojnowski/heatcalc/pkg/template"
	"github.com/tomaszchojnowski/heatcalc/pkg/validation"
)

// GroundFloor is the floor key whose rooms sit on the ground floor construction.
const GroundFloor = "ground"

var (
	ErrSpaceNotFound     = errors.New("space not found")
	ErrInvalidDimensions = errors.New("dimensions must be positive")
	ErrUnknownElement    = errors.New("unknown building element")
)

// Element names a surface of a space whose construction can be replaced.
type Element string

const (
	ElementFloor   Element = "floor"
	ElementCeiling Element = "ceiling"
	ElementWall    Element = "wall"
)

// Floor is one storey of the building.
type Floor struct {
	Key    string   `json:"-"`
	Name   string   `json:"name"`
	Spaces []*Space `json:"spaces"`
}

// Building is an instance of a property template. It is created once from
// the template and afterwards only mutated.
type Building struct {
	ID           string
	PropertyType string
	PropertyName string
	Era          string
	Dimensions   template.Dimensions
	Construction template.Construction
	Thermal      template.Thermal
	Costs        template.Costs

	// Floors are ordered from the ground up.
	Floors []*Floor

	// Cached results, overwritten by each calculation.
	TotalHeatLoss float64 // kW
	SystemCost    float64 // £
	Breakdown     *HeatLossBreakdown
}

// New creates a building from a template. The template is validated first;
// an invalid template yields a *validation.Error and no building.
func New(t *template.Template) (*Building, error) {
	if t == nil {
		return nil, errors.New("building: nil template")
	}
	if err := validation.ValidateTemplate(t).Err(); err != nil {
		return nil, fmt.Errorf("template %q: %w", t.ID, err)
	}

	b := &Building{
		ID:           NewID(),
		PropertyType: t.ID,
		PropertyName: t.Name,
		Era:          t.Era,
		Dimensions:   t.Dimensions,
		Construction: t.Construction,
		Thermal:      t.Thermal,
		Costs:        t.Costs,
	}

	last := len(t.Layout) - 1
	for i, plan := range t.Layout {
		floor := &Floor{Key: plan.Key, Name: FloorName(plan.Key), Spaces: []*Space{}}
		height := t.Dimensions.FloorHeight(plan.Key)
		for _, room := range plan.Rooms {
			s, err := NewSpace(room.ID, room.Name, room.Width, room.Depth, height, plan.Key)
			if err != nil {
				return nil, err
			}
			assignConstruction(s, room, t.Construction, i == last)
			floor.Spaces = append(floor.Spaces, s)
		}
		b.Floors = append(b.Floors, floor)
	}
	return b, nil
}

// NewID returns a fresh building id.
func NewID() string {
	return "bldg_" + uuid.NewString()
}

// assignConstruction gives a space its own copies of the template assemblies.
// Walls start internal; listed external walls override that, and listed
// party walls override both when the template defines a party assembly.
func assignConstruction(s *Space, room template.RoomSpec, c template.Construction, topFloor bool) {
	if s.FloorKey == GroundFloor {
		s.FloorConstruction = c.Floor.Ground
	} else {
		s.FloorConstruction = c.Floor.Upper
	}
	if topFloor {
		s.CeilingConstruction = c.Roof
	} else {
		s.CeilingConstruction = c.Floor.Upper
	}

	s.WallConstruction = uniformWalls(c.Walls.Internal)
	for _, d := range room.ExternalWalls {
		s.WallConstruction.Set(d, c.Walls.External)
	}
	if !c.Walls.Party.IsZero() {
		for _, d := range room.PartyWalls {
			s.WallConstruction.Set(d, c.Walls.Party)
		}
	}

	s.Windows = construction.CopyOpenings(room.Windows)
	s.Doors = construction.CopyOpenings(room.Doors)
	s.WindowCharacteristics = c.Windows
	s.DoorCharacteristics = c.Doors
}

// FloorName returns the display name of a floor key.
func FloorName(key string) string {
	switch key {
	case "ground":
		return "Ground Floor"
	case "first":
		return "First Floor"
	case "second":
		return "Second Floor"
	case "third":
		return "Third Floor"
	}
	return key
}

// AllSpaces returns every space, floor by floor in storey order.
func (b *Building) AllSpaces() []*Space {
	var out []*Space
	for _, f := range b.Floors {
		out = append(out, f.Spaces...)
	}
	return out
}

// Space returns the space with the given id.
func (b *Building) Space(id string) (*Space, bool) {
	for _, f := range b.Floors {
		for _, s := range f.Spaces {
			if s.ID == id {
				return s, true
			}
		}
	}
	return nil, false
}

// Floor returns the floor with the given key.
func (b *Building) Floor(key string) (*Floor, bool) {
	for _, f := range b.Floors {
		if f.Key == key {
			return f, true
		}
	}
	return nil, false
}

// SpaceCount returns the number of spaces in the building.
func (b *Building) SpaceCount() int {
	n := 0
	for _, f := range b.Floors {
		n += len(f.Spaces)
	}
	return n
}

// TotalFloorArea sums the floor area of every space.
func (b *Building) TotalFloorArea() float64 {
	total := 0.0
	for _, s := range b.AllSpaces() {
		total += s.FloorArea()
	}
	return total
}

// TotalHeight sums the storey heights of the building's floors.
func (b *Building) TotalHeight() float64 {
	total := 0.0
	for _, f := range b.Floors {
		total += b.Dimensions.FloorHeight(f.Key)
	}
	return total
}

// ExternalSize is the overall envelope of the building in metres.
type ExternalSize struct {
	Width       float64 `json:"width"`
	Depth       float64 `json:"depth"`
	TotalHeight float64 `json:"totalHeight"`
}

// ExternalDimensions returns the overall envelope of the building.
func (b *Building) ExternalDimensions() ExternalSize {
	return ExternalSize{
		Width:       b.Dimensions.Width,
		Depth:       b.Dimensions.Depth,
		TotalHeight: b.TotalHeight(),
	}
}

// UpdateSpaceDimensions resizes a space in plan, keeping its height.
func (b *Building) UpdateSpaceDimensions(id string, width, depth float64) error {
	s, ok := b.Space(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrSpaceNotFound, id)
	}
	return s.Resize(width, depth)
}

// UpdateConstruction replaces the assembly of one element of a space.
// The direction is only used for walls.
func (b *Building) UpdateConstruction(id string, element Element, d construction.Direction, a construction.Assembly) error {
	s, ok := b.Space(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrSpaceNotFound, id)
	}
	switch element {
	case ElementFloor:
		s.FloorConstruction = a
	case ElementCeiling:
		s.CeilingConstruction = a
	case ElementWall:
		if !s.SetWallConstruction(d, a) {
			return fmt.Errorf("space %q: unknown wall direction %q", id, d)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownElement, element)
	}
	return nil
}

// Clone returns a deep copy of b sharing no state with it.
func (b *Building) Clone() *Building {
	c := *b
	c.Floors = make([]*Floor, len(b.Floors))
	for i, f := range b.Floors {
		nf := &Floor{Key: f.Key, Name: f.Name, Spaces: make([]*Space, len(f.Spaces))}
		for j, s := range f.Spaces {
			nf.Spaces[j] = s.Clone()
		}
		c.Floors[i] = nf
	}
	c.Breakdown = b.Breakdown.Clone()
	return &c
}
