package construction

import "fmt"

// Direction is a compass-facing wall of a rectangular room.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Directions lists the four walls in their canonical order.
var Directions = [4]Direction{North, South, East, West}

// Valid reports whether d is one of the four compass walls.
func (d Direction) Valid() bool {
	switch d {
	case North, South, East, West:
		return true
	}
	return false
}

// ParseDirection converts s into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(s)
	if !d.Valid() {
		return "", fmt.Errorf("unknown wall direction %q", s)
	}
	return d, nil
}
