// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package routefile

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sync"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"rivaas.dev/routebuilder"
)

const bytesSource = "<bytes>"

//go:embed schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	const name = "routefile.schema.json"

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err = compiler.AddResource(name, doc); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
})

var structValidator = validator.New(validator.WithRequiredStructEnabled())

type document struct {
	Defaults defaults `mapstructure:"defaults"`
	Routes   []entry  `mapstructure:"routes" validate:"unique=Name,dive"`
}

type defaults struct {
	Meta map[string]any `mapstructure:"meta"`
}

type entry struct {
	Name string `mapstructure:"name" validate:"required"`
	Path string `mapstructure:"path" validate:"required"`
	Meta any    `mapstructure:"meta"`
}

// Load reads route definitions from the file at path. The format is
// detected from the file extension (.yaml, .yml, .toml, .json).
//
// Errors are of type [*Error].
func Load(ctx context.Context, path string) ([]routebuilder.Definition, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, newError(path, "read", err)
	}
	return LoadAs(ctx, path, format)
}

// LoadAs is like [Load] but decodes the file as format regardless of its
// extension.
func LoadAs(ctx context.Context, path string, format Format) ([]routebuilder.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, newError(path, "read", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(path, "read", fmt.Errorf("failed to read file: %w", err))
	}

	return parse(path, data, format)
}

// Parse decodes route definitions from data.
func Parse(data []byte, format Format) ([]routebuilder.Definition, error) {
	return parse(bytesSource, data, format)
}

// NewRegistry loads the route file at path and returns a registry holding
// its routes, in file order. opts are applied before the routes are added.
func NewRegistry(ctx context.Context, path string, opts ...routebuilder.Option) (*routebuilder.Registry, error) {
	defs, err := Load(ctx, path)
	if err != nil {
		return nil, err
	}

	r, err := routebuilder.New(slices.Concat(opts, []routebuilder.Option{routebuilder.WithRoutes(defs...)})...)
	if err != nil {
		return nil, newError(path, "register", err)
	}
	return r, nil
}

func parse(source string, data []byte, format Format) ([]routebuilder.Definition, error) {
	decoder, err := GetDecoder(format)
	if err != nil {
		return nil, newError(source, "decode", err)
	}

	var raw map[string]any
	if err = decoder.Decode(data, &raw); err != nil {
		return nil, newError(source, "decode", fmt.Errorf("failed to decode %s: %w", format, err))
	}

	// Every codec yields its own numeric and map types; JSON is the common form
	// for both validation and binding.
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, newError(source, "decode", fmt.Errorf("failed to normalize %s: %w", format, err))
	}

	if err = validateSchema(normalized); err != nil {
		return nil, newError(source, "validate", err)
	}

	doc, err := bind(normalized)
	if err != nil {
		return nil, newError(source, "bind", err)
	}
	if err = structValidator.Struct(doc); err != nil {
		return nil, newError(source, "validate", err)
	}

	defs := make([]routebuilder.Definition, len(doc.Routes))
	for i, e := range doc.Routes {
		meta, err := mergeMeta(doc.Defaults.Meta, e.Meta)
		if err != nil {
			return nil, newFieldError(source, fmt.Sprintf("routes[%d]", i), "merge", err)
		}
		defs[i] = routebuilder.Definition{Name: e.Name, Path: e.Path, Meta: meta}
	}

	return defs, nil
}

func validateSchema(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return schema.Validate(v)
}

func bind(data []byte) (*document, error) {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}

	doc := &document{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           doc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err = decoder.Decode(values); err != nil {
		return nil, fmt.Errorf("failed to decode routes: %w", err)
	}

	return doc, nil
}

// mergeMeta applies defaults to a route's metadata. Only map metadata, or
// none at all, takes defaults; keys set on the route win.
func mergeMeta(defaults map[string]any, meta any) (any, error) {
	if len(defaults) == 0 {
		return meta, nil
	}

	var own map[string]any
	switch m := meta.(type) {
	case nil:
	case map[string]any:
		own = m
	default:
		return meta, nil
	}

	merged := cloneMap(defaults)
	if own == nil {
		return merged, nil
	}
	if err := mergo.Merge(&merged, own, mergo.WithOverride); err != nil {
		return nil, err
	}
	return merged, nil
}

// cloneMap copies nested maps and slices so that merging into one route's
// metadata never changes the defaults seen by the next route.
func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
