// Package construction holds the immutable thermal descriptors assigned to the
// surfaces of a room: assemblies for floors, walls and ceilings, glazing for
// windows, and the openings cut into walls.
//
// Every type here is a plain value. Assigning one copies it, so a Space never
// shares construction state with its template or with another Space.
package construction

// Category names an assembly archetype (solid_brick, cavity_wall, timber_joists, ...).
type Category string

// Assembly is the thermal descriptor of one building element.
// A U-value of 0 marks a boundary with no heat loss (party wall, or a
// floor/ceiling shared with another heated unit).
type Assembly struct {
	Category    Category `yaml:"type" json:"type"`
	Thickness   float64  `yaml:"thickness" json:"thickness"`
	UValue      float64  `yaml:"uValue" json:"uValue"` // W/m²K
	Description string   `yaml:"description" json:"description"`
}

// IsZero reports whether no assembly has been assigned.
func (a Assembly) IsZero() bool {
	return a == Assembly{}
}

// Loses reports whether heat flows through this element.
func (a Assembly) Loses() bool {
	return a.UValue > 0
}

// WithUValue returns a copy of a carrying a different U-value.
func (a Assembly) WithUValue(u float64) Assembly {
	a.UValue = u
	return a
}

// Glazing describes the windows of a dwelling.
type Glazing struct {
	Category    Category `yaml:"type" json:"type"`
	UValue      float64  `yaml:"uValue" json:"uValue"`
	FrameType   string   `yaml:"frameType" json:"frameType"`
	Description string   `yaml:"description" json:"description"`
}

// IsZero reports whether no glazing has been assigned.
func (g Glazing) IsZero() bool {
	return g == Glazing{}
}

// WithUValue returns a copy of g carrying a different U-value.
func (g Glazing) WithUValue(u float64) Glazing {
	g.UValue = u
	return g
}

// DoorSet holds the external and internal door assemblies of a dwelling.
type DoorSet struct {
	External Assembly `yaml:"external" json:"external"`
	Internal Assembly `yaml:"internal" json:"internal"`
}

// IsZero reports whether no doors have been described.
func (d DoorSet) IsZero() bool {
	return d == DoorSet{}
}
