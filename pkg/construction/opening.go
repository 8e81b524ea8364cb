package construction

// Opening is a window or door placed in one wall of a room.
type Opening struct {
	Wall       Direction `yaml:"wall" json:"wall"`
	Width      float64   `yaml:"width" json:"width"`
	Height     float64   `yaml:"height" json:"height"`
	Position   float64   `yaml:"position" json:"position"`
	SillHeight float64   `yaml:"sillHeight,omitempty" json:"sillHeight,omitempty"` // windows only
	Type       string    `yaml:"type,omitempty" json:"type,omitempty"`             // doors: external/internal
}

// Area returns width × height.
func (o Opening) Area() float64 {
	return o.Width * o.Height
}

// TotalArea sums the area of every opening.
func TotalArea(openings []Opening) float64 {
	total := 0.0
	for _, o := range openings {
		total += o.Area()
	}
	return total
}

// AreaOnWall sums the area of the openings placed on wall d.
func AreaOnWall(openings []Opening, d Direction) float64 {
	total := 0.0
	for _, o := range openings {
		if o.Wall == d {
			total += o.Area()
		}
	}
	return total
}

// CopyOpenings returns an independent copy of openings, never nil.
func CopyOpenings(openings []Opening) []Opening {
	out := make([]Opening, len(openings))
	copy(out, openings)
	return out
}
