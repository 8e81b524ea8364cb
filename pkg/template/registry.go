package template

import (
	"embed"
	"fmt"
	"path"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// builtinOrder is the presentation order of the shipped archetypes.
var builtinOrder = []string{
	"victorian_terrace",
	"semi_1930s",
	"postwar_detached",
	"newbuild",
	"flat",
}

// Registry is a set of templates keyed by id. It hands out copies so that
// callers can never modify a registered template.
type Registry struct {
	order []string
	byID  map[string]*Template
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Template)}
}

// Builtin returns a registry holding the shipped archetypes.
func Builtin() (*Registry, error) {
	r := NewRegistry()
	for _, id := range builtinOrder {
		data, err := builtinFS.ReadFile(path.Join("builtin", id+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("reading builtin template %s: %w", id, err)
		}
		t, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("builtin template %s: %w", id, err)
		}
		if err := r.Add(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers a copy of t. Ids must be unique.
func (r *Registry) Add(t *Template) error {
	if t.ID == "" {
		return fmt.Errorf("template %q has no id", t.Name)
	}
	if _, ok := r.byID[t.ID]; ok {
		return fmt.Errorf("duplicate template id %q", t.ID)
	}
	r.byID[t.ID] = t.Clone()
	r.order = append(r.order, t.ID)
	return nil
}

// LoadDir registers every template file in dir.
func (r *Registry) LoadDir(dir string) error {
	templates, err := LoadDir(dir)
	if err != nil {
		return err
	}
	for _, t := range templates {
		if err := r.Add(t); err != nil {
			return err
		}
	}
	return nil
}

// Get returns a deep copy of the template with the given id.
func (r *Registry) Get(id string) (*Template, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return t.Clone(), nil
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// All returns copies of every template in registration order.
func (r *Registry) All() []*Template {
	out := make([]*Template, len(r.order))
	for i, id := range r.order {
		out[i] = r.byID[id].Clone()
	}
	return out
}
