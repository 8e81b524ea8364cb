package template

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tomaszchojnowski/heatcalc/internal/orderedjson"
)

// FloorPlan is the list of rooms on one floor.
type FloorPlan struct {
	Key   string
	Rooms []RoomSpec
}

// Layout is the floor plan of a dwelling, in storey order from the ground up.
// The order is significant: only the last floor takes the roof as its
// ceiling. It is written as a YAML/JSON mapping whose key order is kept.
type Layout []FloorPlan

// Keys returns the floor keys in order.
func (l Layout) Keys() []string {
	keys := make([]string, len(l))
	for i, f := range l {
		keys[i] = f.Key
	}
	return keys
}

// Floor returns the plan for key.
func (l Layout) Floor(key string) (FloorPlan, bool) {
	for _, f := range l {
		if f.Key == key {
			return f, true
		}
	}
	return FloorPlan{}, false
}

// UnmarshalYAML decodes a mapping of floor key to room list, keeping order.
func (l *Layout) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: layout must be a mapping of floor to rooms", node.Line)
	}
	out := make(Layout, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var rooms []RoomSpec
		if err := node.Content[i+1].Decode(&rooms); err != nil {
			return fmt.Errorf("layout.%s: %w", node.Content[i].Value, err)
		}
		out = append(out, FloorPlan{Key: node.Content[i].Value, Rooms: rooms})
	}
	*l = out
	return nil
}

// MarshalYAML encodes the layout as an ordered mapping.
func (l Layout) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range l {
		var rooms yaml.Node
		if err := rooms.Encode(f.Rooms); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Key},
			&rooms,
		)
	}
	return node, nil
}

// MarshalJSON encodes the layout as an ordered object.
func (l Layout) MarshalJSON() ([]byte, error) {
	members := make([]orderedjson.Member, len(l))
	for i, f := range l {
		members[i] = orderedjson.Member{Key: f.Key, Value: f.Rooms}
	}
	return orderedjson.Marshal(members)
}

// UnmarshalJSON decodes an ordered object of floor key to room list.
func (l *Layout) UnmarshalJSON(data []byte) error {
	out := Layout{}
	err := orderedjson.Each(data, func(key string, raw json.RawMessage) error {
		var rooms []RoomSpec
		if err := json.Unmarshal(raw, &rooms); err != nil {
			return fmt.Errorf("layout.%s: %w", key, err)
		}
		out = append(out, FloorPlan{Key: key, Rooms: rooms})
		return nil
	})
	if err != nil {
		return err
	}
	*l = out
	return nil
}
