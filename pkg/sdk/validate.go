package sdk

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Payload schema names, one per file under schemas/.
const (
	SchemaLogin        = "auth.login"
	SchemaRegister     = "auth.register"
	SchemaCreateUser   = "user.create"
	SchemaUpdateUser   = "user.update"
	SchemaCreateLead   = "lead.create"
	SchemaUpdateLead   = "lead.update"
	SchemaCreateClient = "client.create"
	SchemaUpdateClient = "client.update"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// PayloadValidator checks request payloads against the embedded JSON schemas.
type PayloadValidator struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *jsonschema.Schema]
}

// NewPayloadValidator creates a validator that keeps up to cacheSize compiled schemas.
func NewPayloadValidator(cacheSize int) (*PayloadValidator, error) {
	cache, err := lru.New[string, *jsonschema.Schema](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create schema cache: %w", err)
	}
	return &PayloadValidator{cache: cache}, nil
}

var defaultValidator = sync.OnceValue(func() *PayloadValidator {
	v, err := NewPayloadValidator(16)
	if err != nil {
		panic(err)
	}
	return v
})

// Validate checks payload against the named schema using the shared validator.
func Validate(schemaName string, payload any) error {
	return defaultValidator().Validate(schemaName, payload)
}

// Validate returns a *ValidationError when payload violates the named schema.
func (v *PayloadValidator) Validate(schemaName string, payload any) error {
	schema, err := v.schema(schemaName)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", schemaName, err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("decode %s payload: %w", schemaName, err)
	}

	if err := schema.Validate(instance); err != nil {
		var vErr *jsonschema.ValidationError
		if errors.As(err, &vErr) {
			return &ValidationError{Entity: entityName(schemaName), Problems: problems(vErr)}
		}
		return fmt.Errorf("validate %s payload: %w", schemaName, err)
	}
	return nil
}

func (v *PayloadValidator) schema(name string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if cached, ok := v.cache.Get(name); ok {
		return cached, nil
	}

	data, err := schemaFiles.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("unknown payload schema %q", name)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft7)
	compiler.AssertFormat()
	url := name + ".json"
	if err := compiler.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", name, err)
	}

	v.cache.Add(name, compiled)
	return compiled, nil
}

// problems flattens the validator's report into one line per violation.
func problems(err *jsonschema.ValidationError) []string {
	lines := strings.Split(err.Error(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines[1:] {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "-"))
		if line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		out = append(out, strings.TrimSpace(lines[0]))
	}
	return out
}

func entityName(schemaName string) string {
	entity, _, _ := strings.Cut(schemaName, ".")
	if entity == "auth" {
		return strings.TrimPrefix(schemaName, "auth.")
	}
	return entity
}
