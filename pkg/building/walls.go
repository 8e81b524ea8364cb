package building

import "github.com/tomaszchojnowski/heatcalc/pkg/construction"

// WallAssemblies holds the construction of each of the four walls of a room.
type WallAssemblies struct {
	North construction.Assembly `json:"north"`
	South construction.Assembly `json:"south"`
	East  construction.Assembly `json:"east"`
	West  construction.Assembly `json:"west"`
}

// Get returns the assembly of wall d.
func (w WallAssemblies) Get(d construction.Direction) (construction.Assembly, bool) {
	switch d {
	case construction.North:
		return w.North, true
	case construction.South:
		return w.South, true
	case construction.East:
		return w.East, true
	case construction.West:
		return w.West, true
	}
	return construction.Assembly{}, false
}

// Set replaces the assembly of wall d. It reports false for an unknown direction.
func (w *WallAssemblies) Set(d construction.Direction, a construction.Assembly) bool {
	switch d {
	case construction.North:
		w.North = a
	case construction.South:
		w.South = a
	case construction.East:
		w.East = a
	case construction.West:
		w.West = a
	default:
		return false
	}
	return true
}

func uniformWalls(a construction.Assembly) WallAssemblies {
	return WallAssemblies{North: a, South: a, East: a, West: a}
}

// WallValues is a quantity per wall direction (area in m², loss in W).
type WallValues struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Get returns the value for wall d.
func (v WallValues) Get(d construction.Direction) float64 {
	switch d {
	case construction.North:
		return v.North
	case construction.South:
		return v.South
	case construction.East:
		return v.East
	case construction.West:
		return v.West
	}
	return 0
}

// Set stores the value for wall d.
func (v *WallValues) Set(d construction.Direction, x float64) {
	switch d {
	case construction.North:
		v.North = x
	case construction.South:
		v.South = x
	case construction.East:
		v.East = x
	case construction.West:
		v.West = x
	}
}

// Sum adds the four directions.
func (v WallValues) Sum() float64 {
	return v.North + v.South + v.East + v.West
}
