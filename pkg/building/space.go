package building

import (
	"fmt"
	"math"

	"github.com/tomaszchojnowski/heatcalc/pkg/construction"
)

// Space is a heated room. Areas and volume are derived from the current
// dimensions on every call and never stored.
type Space struct {
	ID       string
	Name     string
	Width    float64 // m, north and south walls
	Depth    float64 // m, east and west walls
	Height   float64 // m
	FloorKey string

	FloorConstruction   construction.Assembly
	CeilingConstruction construction.Assembly
	WallConstruction    WallAssemblies

	Windows []construction.Opening
	Doors   []construction.Opening

	WindowCharacteristics construction.Glazing
	DoorCharacteristics   construction.DoorSet

	// HeatLoss is written by the heat loss calculator.
	HeatLoss SpaceHeatLoss
}

// NewSpace returns a space with the given geometry and no construction.
func NewSpace(id, name string, width, depth, height float64, floorKey string) (*Space, error) {
	if err := checkDimensions(width, depth, height); err != nil {
		return nil, fmt.Errorf("space %q: %w", id, err)
	}
	return &Space{
		ID:       id,
		Name:     name,
		Width:    width,
		Depth:    depth,
		Height:   height,
		FloorKey: floorKey,
		Windows:  []construction.Opening{},
		Doors:    []construction.Opening{},
	}, nil
}

func checkDimensions(values ...float64) error {
	for _, v := range values {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidDimensions, v)
		}
	}
	return nil
}

// FloorArea returns width × depth.
func (s *Space) FloorArea() float64 {
	return s.Width * s.Depth
}

// CeilingArea returns width × depth.
func (s *Space) CeilingArea() float64 {
	return s.Width * s.Depth
}

// Volume returns width × depth × height.
func (s *Space) Volume() float64 {
	return s.Width * s.Depth * s.Height
}

// WallAreas returns the gross area of each wall: width × height for north
// and south, depth × height for east and west.
func (s *Space) WallAreas() WallValues {
	ns := s.Width * s.Height
	ew := s.Depth * s.Height
	return WallValues{North: ns, South: ns, East: ew, West: ew}
}

// TotalWallArea sums the gross area of the four walls.
func (s *Space) TotalWallArea() float64 {
	return s.WallAreas().Sum()
}

// WindowArea sums the area of every window.
func (s *Space) WindowArea() float64 {
	return construction.TotalArea(s.Windows)
}

// DoorArea sums the area of every door.
func (s *Space) DoorArea() float64 {
	return construction.TotalArea(s.Doors)
}

// WindowAreaByWall sums the windows on wall d.
func (s *Space) WindowAreaByWall(d construction.Direction) float64 {
	return construction.AreaOnWall(s.Windows, d)
}

// DoorAreaByWall sums the doors on wall d.
func (s *Space) DoorAreaByWall(d construction.Direction) float64 {
	return construction.AreaOnWall(s.Doors, d)
}

// NetWallArea is the total wall area less the total window area.
// Doors are not subtracted.
func (s *Space) NetWallArea() float64 {
	return s.TotalWallArea() - s.WindowArea()
}

// NetWallAreaByDirection is the area of wall d less its windows and doors,
// clamped at 0 when the openings are larger than the wall.
func (s *Space) NetWallAreaByDirection(d construction.Direction) float64 {
	return math.Max(0, s.WallAreas().Get(d)-s.WindowAreaByWall(d)-s.DoorAreaByWall(d))
}

// SetDimensions changes the plan size and height of the room. Construction
// and openings are left as they are.
func (s *Space) SetDimensions(width, depth, height float64) error {
	if err := checkDimensions(width, depth, height); err != nil {
		return err
	}
	s.Width, s.Depth, s.Height = width, depth, height
	return nil
}

// Resize changes the plan size of the room, keeping its height.
func (s *Space) Resize(width, depth float64) error {
	return s.SetDimensions(width, depth, s.Height)
}

// SetWallConstruction assigns an assembly to wall d. It reports false for
// an unknown direction.
func (s *Space) SetWallConstruction(d construction.Direction, a construction.Assembly) bool {
	return s.WallConstruction.Set(d, a)
}

// TotalHeatLoss returns the last calculated total loss in watts.
func (s *Space) TotalHeatLoss() float64 {
	return s.HeatLoss.Total
}

// IsGround reports whether the space is on the ground floor.
func (s *Space) IsGround() bool {
	return s.FloorKey == GroundFloor
}

// Clone returns an independent copy of s.
func (s *Space) Clone() *Space {
	c := *s
	c.Windows = construction.CopyOpenings(s.Windows)
	c.Doors = construction.CopyOpenings(s.Doors)
	return &c
}
