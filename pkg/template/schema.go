package template

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "heatcalc/template.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("adding template schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// checkSchema validates a decoded document. YAML decodes integers as int,
// so the document is normalised through JSON first.
func checkSchema(doc any) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalising template document: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("normalising template document: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("template schema validation failed: %w", err)
	}
	return nil
}
