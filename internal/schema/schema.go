// Package schema validates the persisted storage documents against
// embedded JSON Schemas. The core loaders stay plain (malformed JSON is
// already fatal there); this package backs the doctor diagnostics with
// precise per-field violations.
package schema

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const factsSchema = `{
  "type": "object",
  "required": ["items"],
  "properties": {
    "items": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "subject", "value", "provenance", "confidence", "added_at", "tags", "deleted", "metadata"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "subject": {"type": "string"},
          "value": {"type": "string"},
          "provenance": {"type": "string"},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1},
          "added_at": {"type": "string"},
          "notes": {"type": ["string", "null"]},
          "tags": {"type": "array", "items": {"type": "string"}},
          "deleted": {"type": "boolean"},
          "deleted_at": {"type": "string"},
          "metadata": {"type": "object"}
        }
      }
    }
  }
}`

const preferencesSchema = `{
  "type": "object",
  "additionalProperties": {
    "type": "object",
    "additionalProperties": {
      "type": "object",
      "required": ["opinion", "added_at"],
      "properties": {
        "opinion": {"type": "string"},
        "added_at": {"type": "string"}
      }
    }
  }
}`

// Validator checks storage documents. Compiled schemas are cached.
type Validator struct {
	cache sync.Map // map[string]*gojsonschema.Schema
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateFacts checks a facts.json document.
func (v *Validator) ValidateFacts(doc []byte) error {
	return v.validate("facts", factsSchema, doc)
}

// ValidatePreferences checks a preferences.json document.
func (v *Validator) ValidatePreferences(doc []byte) error {
	return v.validate("preferences", preferencesSchema, doc)
}

func (v *Validator) validate(name, schemaJSON string, doc []byte) error {
	schema, err := v.compiled(name, schemaJSON)
	if err != nil {
		return fmt.Errorf("compile %s schema: %w", name, err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validate %s: %w", name, err)
	}
	if result.Valid() {
		return nil
	}

	var violations []string
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return fmt.Errorf("%s schema violations:\n- %s", name, strings.Join(violations, "\n- "))
}

func (v *Validator) compiled(name, schemaJSON string) (*gojsonschema.Schema, error) {
	if cached, ok := v.cache.Load(name); ok {
		return cached.(*gojsonschema.Schema), nil
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, err
	}
	v.cache.Store(name, schema)
	return schema, nil
}
