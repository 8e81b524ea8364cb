// Package template loads property archetypes: the static, read-only
// descriptions of typical UK dwellings that buildings are created from.
package template

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a template id is not registered.
var ErrNotFound = errors.New("template not found")

// Parse checks a YAML document against the template schema and decodes it.
func Parse(data []byte) (*Template, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := checkSchema(doc); err != nil {
		return nil, err
	}

	var t Template
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decoding template: %w", err)
	}
	return &t, nil
}

// ParseJSON decodes a JSON template document, as posted to the template
// validation endpoint.
func ParseJSON(data []byte) (*Template, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing template JSON: %w", err)
	}
	if err := checkSchema(doc); err != nil {
		return nil, err
	}
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decoding template: %w", err)
	}
	return &t, nil
}

// Load reads a template from a YAML file.
func Load(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template file: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// LoadDir reads every *.yaml and *.yml file in dir, sorted by file name.
func LoadDir(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading template directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	templates := make([]*Template, 0, len(names))
	for _, name := range names {
		t, err := Load(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, nil
}
