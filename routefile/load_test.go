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

//go:build !integration

package routefile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/routebuilder"
)

func wantDefinitions() []routebuilder.Definition {
	return []routebuilder.Definition{
		{Name: "home", Path: "/", Meta: map[string]any{"layout": "main", "auth": false}},
		{Name: "post", Path: `/post/:id(\d+)`, Meta: map[string]any{"layout": "main", "auth": true}},
		{Name: "404", Path: "/:anything*", Meta: "catch-all"},
	}
}

// Load Tests

func TestLoad_Formats(t *testing.T) {
	t.Parallel()

	for _, file := range []string{"routes.yaml", "routes.toml", "routes.json"} {
		t.Run(file, func(t *testing.T) {
			t.Parallel()

			defs, err := Load(context.Background(), filepath.Join("testdata", file))
			require.NoError(t, err)
			assert.Equal(t, wantDefinitions(), defs)
		})
	}
}

func TestLoad_UnknownExtension(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), "routes.ini")
	require.Error(t, err)

	var fileErr *Error
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "routes.ini", fileErr.Source)
	assert.Equal(t, "read", fileErr.Operation)
	assert.Contains(t, err.Error(), "LoadAs")
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), filepath.Join("testdata", "missing.yaml"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	var fileErr *Error
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "read", fileErr.Operation)
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, filepath.Join("testdata", "routes.yaml"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadAs(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(filepath.Join("testdata", "routes.yaml"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "routes.conf")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	_, err = Load(context.Background(), path)
	require.Error(t, err)

	defs, err := LoadAs(context.Background(), path, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, wantDefinitions(), defs)
}

// Parse Tests

func TestParse_WithoutDefaults(t *testing.T) {
	t.Parallel()

	defs, err := Parse([]byte(`
routes:
  - name: home
    path: /
  - name: post
    path: /post/:id
    meta: [a, b]
`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []routebuilder.Definition{
		{Name: "home", Path: "/"},
		{Name: "post", Path: "/post/:id", Meta: []any{"a", "b"}},
	}, defs)
}

func TestParse_EmptyRoutes(t *testing.T) {
	t.Parallel()

	defs, err := Parse([]byte(`{"routes": []}`), FormatJSON)
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestParse_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"empty document", `null`},
		{"missing routes", `{"defaults": {}}`},
		{"routes not a list", `{"routes": {"name": "home"}}`},
		{"missing path", `{"routes": [{"name": "home"}]}`},
		{"missing name", `{"routes": [{"path": "/"}]}`},
		{"empty path", `{"routes": [{"name": "home", "path": ""}]}`},
		{"empty name", `{"routes": [{"name": "", "path": "/"}]}`},
		{"path not a string", `{"routes": [{"name": "home", "path": 1}]}`},
		{"unknown route field", `{"routes": [{"name": "home", "path": "/", "method": "GET"}]}`},
		{"unknown top-level field", `{"routes": [], "prefix": "/api"}`},
		{"defaults meta not a map", `{"defaults": {"meta": 1}, "routes": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.data), FormatJSON)
			require.Error(t, err)

			var fileErr *Error
			require.ErrorAs(t, err, &fileErr)
			assert.Equal(t, bytesSource, fileErr.Source)
			assert.Equal(t, "validate", fileErr.Operation)

			var validationErr *jsonschema.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestParse_DuplicateNames(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`
routes:
  - name: post
    path: /post/:id
  - name: post
    path: /article/:id
`), FormatYAML)

	var fileErr *Error
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "validate", fileErr.Operation)

	var fieldErrs validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "unique", fieldErrs[0].Tag())
	assert.Equal(t, "Routes", fieldErrs[0].Field())
}

func TestParse_DecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"malformed json", `{"routes": [`, FormatJSON},
		{"malformed toml", "[[routes]\nname = ", FormatTOML},
		{"malformed yaml", "routes: [home, post", FormatYAML},
		{"unknown format", `{"routes": []}`, Format("ini")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.data), tt.format)

			var fileErr *Error
			require.ErrorAs(t, err, &fileErr)
			assert.Equal(t, "decode", fileErr.Operation)
		})
	}
}

func TestError_Format(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")

	err := newError("routes.yaml", "decode", inner)
	assert.Equal(t, "route file error in routes.yaml during decode: boom", err.Error())
	assert.ErrorIs(t, err, inner)

	err = newFieldError("routes.yaml", "routes[1]", "merge", inner)
	assert.Equal(t, "route file error in routes.yaml.routes[1] during merge: boom", err.Error())
}

// Defaults Tests

func TestMergeMeta(t *testing.T) {
	t.Parallel()

	defaults := map[string]any{
		"layout": "main",
		"auth":   true,
		"cache":  map[string]any{"ttl": float64(60)},
	}

	tests := []struct {
		name string
		meta any
		want any
	}{
		{
			name: "no meta takes defaults",
			meta: nil,
			want: map[string]any{"layout": "main", "auth": true, "cache": map[string]any{"ttl": float64(60)}},
		},
		{
			name: "route keys win",
			meta: map[string]any{"auth": false, "title": "Post"},
			want: map[string]any{"layout": "main", "auth": false, "title": "Post", "cache": map[string]any{"ttl": float64(60)}},
		},
		{
			name: "non-map meta is kept",
			meta: "catch-all",
			want: "catch-all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := mergeMeta(defaults, tt.meta)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeMeta_DefaultsUnchanged(t *testing.T) {
	t.Parallel()

	defaults := map[string]any{"layout": "main", "cache": map[string]any{"ttl": float64(60)}}

	got, err := mergeMeta(defaults, nil)
	require.NoError(t, err)
	got.(map[string]any)["cache"].(map[string]any)["ttl"] = float64(0)
	got.(map[string]any)["layout"] = "print"

	assert.Equal(t, map[string]any{"layout": "main", "cache": map[string]any{"ttl": float64(60)}}, defaults)
}

func TestMergeMeta_NoDefaults(t *testing.T) {
	t.Parallel()

	meta := map[string]any{"auth": true}
	got, err := mergeMeta(nil, meta)
	require.NoError(t, err)
	assert.Equal(t, meta, got)
}

// Decoder registry Tests

func TestGetDecoder(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatYAML, FormatTOML, FormatJSON} {
		d, err := GetDecoder(format)
		require.NoError(t, err, format)
		assert.NotNil(t, d)
	}

	_, err := GetDecoder("ini")
	assert.ErrorContains(t, err, "decoder not found")
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]Format{
		"routes.yaml":      FormatYAML,
		"routes.YML":       FormatYAML,
		"conf/routes.toml": FormatTOML,
		"routes.json":      FormatJSON,
	}
	for path, want := range tests {
		got, err := DetectFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := DetectFormat("routes")
	assert.Error(t, err)
}

// NewRegistry Tests

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry(context.Background(), filepath.Join("testdata", "routes.yaml"))
	require.NoError(t, err)
	require.Equal(t, 3, r.Len())

	m, ok := r.Match("/post/12")
	require.True(t, ok)
	assert.Equal(t, "post", m.Name)
	assert.Equal(t, map[string]any{"layout": "main", "auth": true}, m.Meta)

	m, ok = r.Match("/post/abc")
	require.True(t, ok)
	assert.Equal(t, "404", m.Name)
	assert.Equal(t, "post/abc", m.Params.Value("anything"))

	p, ok := r.MakePath("post", map[string]any{"id": 7})
	require.True(t, ok)
	assert.Equal(t, "/post/7", p)
}

func TestNewRegistry_AppliesOptions(t *testing.T) {
	t.Parallel()

	var added []string
	handler := func(e routebuilder.Event) {
		if e.Type == routebuilder.EventDebug {
			added = append(added, e.Message)
		}
	}

	r, err := NewRegistry(context.Background(), filepath.Join("testdata", "routes.json"),
		routebuilder.WithEventHandler(handler))
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"route added", "route added", "route added"}, added)
}

func TestNewRegistry_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(context.Background(), filepath.Join("testdata", "invalid_pattern.yaml"))
	require.ErrorIs(t, err, routebuilder.ErrInvalidPattern)

	var fileErr *Error
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "register", fileErr.Operation)
	assert.Contains(t, err.Error(), "route[1]")
}

func TestNewRegistry_LoadError(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry(context.Background(), filepath.Join("testdata", "missing.toml"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}
