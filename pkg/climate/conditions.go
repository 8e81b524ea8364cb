package climate

import "strings"

// Default design temperatures in °C.
const (
	DefaultExternalDesignTemp        = -3.0
	DefaultInternalDesignTemp        = 21.0
	DefaultInternalDesignTempBedroom = 18.0
	DefaultWindExposure              = 1.0
)

// Conditions are the design temperatures a heat loss is calculated for.
type Conditions struct {
	ExternalDesignTemp        float64 `json:"externalDesignTemp"`
	InternalDesignTemp        float64 `json:"internalDesignTemp"`
	InternalDesignTempBedroom float64 `json:"internalDesignTempBedroom"`
	WindExposure              float64 `json:"windExposure"`
}

// DefaultConditions returns the conditions used when no region is known.
func DefaultConditions() Conditions {
	return Conditions{
		ExternalDesignTemp:        DefaultExternalDesignTemp,
		InternalDesignTemp:        DefaultInternalDesignTemp,
		InternalDesignTempBedroom: DefaultInternalDesignTempBedroom,
		WindExposure:              DefaultWindExposure,
	}
}

// Conditions returns the default internal temperatures against this
// region's external design temperature.
func (r Region) Conditions() Conditions {
	c := DefaultConditions()
	c.ExternalDesignTemp = r.ExternalDesignTemp
	c.WindExposure = r.WindExposure
	return c
}

// IsBedroom reports whether a room name denotes a bedroom.
func IsBedroom(roomName string) bool {
	name := strings.ToLower(roomName)
	return strings.Contains(name, "bedroom") || strings.Contains(name, "bed ")
}

// InternalTemperature returns the room design temperature for a room,
// bedroom or otherwise.
func (c Conditions) InternalTemperature(roomName string) float64 {
	if IsBedroom(roomName) {
		return c.InternalDesignTempBedroom
	}
	return c.InternalDesignTemp
}

// RoomTemperatures are the CIBSE internal design temperatures by room type.
var RoomTemperatures = map[string]float64{
	"living":       21,
	"bedroom":      18,
	"bathroom":     22,
	"kitchen":      18,
	"hallway":      18,
	"utility":      16,
	"conservatory": 18,
	"default":      21,
}

// RoomTypeTemperature classifies a room by name and returns its design
// temperature from RoomTemperatures.
func RoomTypeTemperature(roomName string) float64 {
	name := strings.ToLower(roomName)
	switch {
	case strings.Contains(name, "living"), strings.Contains(name, "lounge"):
		return RoomTemperatures["living"]
	case IsBedroom(name):
		return RoomTemperatures["bedroom"]
	case strings.Contains(name, "bathroom"), strings.Contains(name, "shower"):
		return RoomTemperatures["bathroom"]
	case strings.Contains(name, "kitchen"):
		return RoomTemperatures["kitchen"]
	case strings.Contains(name, "hall"):
		return RoomTemperatures["hallway"]
	case strings.Contains(name, "utility"):
		return RoomTemperatures["utility"]
	case strings.Contains(name, "conservatory"):
		return RoomTemperatures["conservatory"]
	}
	return RoomTemperatures["default"]
}
