package building

import (
	"encoding/json"
	"fmt"

	"github.com/tomaszchojnowski/heatcalc/internal/orderedjson"
	"github.com/tomaszchojnowski/heatcalc/pkg/construction"
	"github.com/tomaszchojnowski/heatcalc/pkg/template"
)

// spaceJSON is the canonical serialized form of a Space. The derived
// areas are written for readers but ignored when decoding.
type spaceJSON struct {
	ID                    string                 `json:"id"`
	Name                  string                 `json:"name"`
	Width                 float64                `json:"width"`
	Depth                 float64                `json:"depth"`
	Height                float64                `json:"height"`
	Floor                 string                 `json:"floor"`
	FloorConstruction     construction.Assembly  `json:"floorConstruction"`
	CeilingConstruction   construction.Assembly  `json:"ceilingConstruction"`
	WallConstruction      WallAssemblies         `json:"wallConstruction"`
	Windows               []construction.Opening `json:"windows"`
	Doors                 []construction.Opening `json:"doors"`
	WindowCharacteristics construction.Glazing   `json:"windowCharacteristics"`
	DoorCharacteristics   construction.DoorSet   `json:"doorCharacteristics"`
	FloorArea             float64                `json:"floorArea"`
	CeilingArea           float64                `json:"ceilingArea"`
	WallAreas             WallValues             `json:"wallAreas"`
	Volume                float64                `json:"volume"`
	HeatLoss              SpaceHeatLoss          `json:"heatLoss"`
}

// MarshalJSON writes the space with its derived areas.
func (s *Space) MarshalJSON() ([]byte, error) {
	return json.Marshal(spaceJSON{
		ID:                    s.ID,
		Name:                  s.Name,
		Width:                 s.Width,
		Depth:                 s.Depth,
		Height:                s.Height,
		Floor:                 s.FloorKey,
		FloorConstruction:     s.FloorConstruction,
		CeilingConstruction:   s.CeilingConstruction,
		WallConstruction:      s.WallConstruction,
		Windows:               construction.CopyOpenings(s.Windows),
		Doors:                 construction.CopyOpenings(s.Doors),
		WindowCharacteristics: s.WindowCharacteristics,
		DoorCharacteristics:   s.DoorCharacteristics,
		FloorArea:             s.FloorArea(),
		CeilingArea:           s.CeilingArea(),
		WallAreas:             s.WallAreas(),
		Volume:                s.Volume(),
		HeatLoss:              s.HeatLoss,
	})
}

// UnmarshalJSON restores a space. Areas are recomputed from the dimensions.
func (s *Space) UnmarshalJSON(data []byte) error {
	var v spaceJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Space{
		ID:                    v.ID,
		Name:                  v.Name,
		Width:                 v.Width,
		Depth:                 v.Depth,
		Height:                v.Height,
		FloorKey:              v.Floor,
		FloorConstruction:     v.FloorConstruction,
		CeilingConstruction:   v.CeilingConstruction,
		WallConstruction:      v.WallConstruction,
		Windows:               construction.CopyOpenings(v.Windows),
		Doors:                 construction.CopyOpenings(v.Doors),
		WindowCharacteristics: v.WindowCharacteristics,
		DoorCharacteristics:   v.DoorCharacteristics,
		HeatLoss:              v.HeatLoss,
	}
	return nil
}

// Floors is the ordered storey list, serialized as an object keyed by
// floor key in storey order.
type Floors []*Floor

// MarshalJSON writes floors as an ordered object.
func (fs Floors) MarshalJSON() ([]byte, error) {
	members := make([]orderedjson.Member, len(fs))
	for i, f := range fs {
		members[i] = orderedjson.Member{Key: f.Key, Value: f}
	}
	return orderedjson.Marshal(members)
}

// UnmarshalJSON reads floors from an ordered object.
func (fs *Floors) UnmarshalJSON(data []byte) error {
	out := Floors{}
	err := orderedjson.Each(data, func(key string, raw json.RawMessage) error {
		f := &Floor{}
		if err := json.Unmarshal(raw, f); err != nil {
			return fmt.Errorf("floor %q: %w", key, err)
		}
		f.Key = key
		if f.Spaces == nil {
			f.Spaces = []*Space{}
		}
		out = append(out, f)
		return nil
	})
	if err != nil {
		return err
	}
	*fs = out
	return nil
}

type buildingJSON struct {
	ID            string                `json:"id"`
	PropertyType  string                `json:"propertyType"`
	PropertyName  string                `json:"propertyName"`
	Era           string                `json:"era"`
	Dimensions    template.Dimensions   `json:"dimensions"`
	Construction  template.Construction `json:"construction"`
	Thermal       template.Thermal      `json:"thermal"`
	Costs         template.Costs        `json:"costs"`
	Floors        Floors                `json:"floors"`
	TotalHeatLoss float64               `json:"totalHeatLoss"`
	SystemCost    float64               `json:"systemCost"`
	Breakdown     *HeatLossBreakdown    `json:"breakdown"`
}

// MarshalJSON writes the canonical snapshot of the building.
func (b *Building) MarshalJSON() ([]byte, error) {
	return json.Marshal(buildingJSON{
		ID:            b.ID,
		PropertyType:  b.PropertyType,
		PropertyName:  b.PropertyName,
		Era:           b.Era,
		Dimensions:    b.Dimensions,
		Construction:  b.Construction,
		Thermal:       b.Thermal,
		Costs:         b.Costs,
		Floors:        Floors(b.Floors),
		TotalHeatLoss: b.TotalHeatLoss,
		SystemCost:    b.SystemCost,
		Breakdown:     b.Breakdown,
	})
}

// UnmarshalJSON restores a building from its snapshot.
func (b *Building) UnmarshalJSON(data []byte) error {
	var v buildingJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*b = Building{
		ID:            v.ID,
		PropertyType:  v.PropertyType,
		PropertyName:  v.PropertyName,
		Era:           v.Era,
		Dimensions:    v.Dimensions,
		Construction:  v.Construction,
		Thermal:       v.Thermal,
		Costs:         v.Costs,
		Floors:        []*Floor(v.Floors),
		TotalHeatLoss: v.TotalHeatLoss,
		SystemCost:    v.SystemCost,
		Breakdown:     v.Breakdown,
	}
	return nil
}

// ToJSON serializes the building snapshot.
func (b *Building) ToJSON() ([]byte, error) {
	return json.Marshal(b)
}

// FromJSON restores a building snapshot and checks that every space has
// positive dimensions and a unique id.
func FromJSON(data []byte) (*Building, error) {
	b := &Building{}
	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("decoding building: %w", err)
	}
	seen := make(map[string]bool)
	for _, s := range b.AllSpaces() {
		if seen[s.ID] {
			return nil, fmt.Errorf("decoding building: duplicate space id %q", s.ID)
		}
		seen[s.ID] = true
		if err := checkDimensions(s.Width, s.Depth, s.Height); err != nil {
			return nil, fmt.Errorf("decoding building: space %q: %w", s.ID, err)
		}
	}
	return b, nil
}
