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

package routebuilder

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/spf13/cast"

	"rivaas.dev/routebuilder/pattern"
)

// MakePath builds a path for the first route registered under name.
// ok is false when there is no such route or the parameters do not fit its
// template; use [Registry.BuildPath] to learn why.
//
// Example:
//
//	p, ok := r.MakePath("post", map[string]any{"id": 123}) // "/post/123", true
//	_, ok = r.MakePath("post", nil)                        // "", false
func (r *Registry) MakePath(name string, params map[string]any) (string, bool) {
	p, err := r.BuildPath(name, params)
	if err != nil {
		return "", false
	}
	return p, true
}

// BuildPath builds a path for the first route registered under name.
//
// Every required parameter of the template needs a non-nil value in params.
// Values are converted to strings with [cast.ToStringE], percent-encoded as
// path segments and checked against the parameter's pattern. Repeating
// parameters take a []string, []any or []int. Absent optional parameters are
// dropped together with their leading "/"; when that leaves nothing, the
// path is "/" if the route accepts it. Keys the template does not declare
// are ignored. Typed nils, such as a nil pointer, count as absent.
//
// Errors:
//   - [ErrRouteNotFound]: no route is registered under name
//   - [ErrInvalidParam]: a value cannot be converted to a string
//   - [pattern.ErrMissingParam], [pattern.ErrConstraint],
//     [pattern.ErrUnexpectedList], [pattern.ErrEmptyList]: params do not fit
//   - [ErrPathMismatch]: the generated path is not accepted by the route
func (r *Registry) BuildPath(name string, params map[string]any) (path string, err error) {
	defer func() {
		r.observeGenerate(name, err == nil)
		if err != nil {
			r.emit(EventDebug, "path generation failed", "name", name, "error", err)
		}
	}()

	r.mu.RLock()
	rt := r.findByName(name)
	r.mu.RUnlock()
	if rt == nil {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	gen, err := rt.generator(r.compileOpts)
	if err != nil {
		return "", fmt.Errorf("route %q: %w", name, err)
	}

	values, err := toValues(rt.keys, params)
	if err != nil {
		return "", fmt.Errorf("route %q: %w", name, err)
	}

	path, err = gen.Generate(values)
	if err != nil {
		return "", fmt.Errorf("route %q: %w", name, err)
	}
	if path == "" && rt.matcher.MatchString("/") {
		path = "/"
	}

	if r.verify && !rt.matcher.MatchString(path) {
		return "", fmt.Errorf("%w: route %q produced %q", ErrPathMismatch, name, path)
	}

	return path, nil
}

// toValues converts the parameters named by keys into generator values.
// nil values are dropped so they count as absent.
func toValues(keys []pattern.Key, params map[string]any) (pattern.Values, error) {
	if len(params) == 0 {
		return nil, nil
	}

	values := make(pattern.Values, len(keys))
	for _, k := range keys {
		id := k.ID()
		v, ok := params[id]
		if !ok {
			continue
		}
		list, err := toStrings(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidParam, id, err)
		}
		if list != nil {
			values[id] = list
		}
	}

	return values, nil
}

func toStrings(v any) ([]string, error) {
	if isNil(v) {
		return nil, nil
	}

	switch val := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return val, nil
	case []int:
		out := make([]string, len(val))
		for i, n := range val {
			out[i] = strconv.Itoa(n)
		}
		return out, nil
	case []any:
		out := make([]string, len(val))
		for i, item := range val {
			if isNil(item) {
				return nil, fmt.Errorf("nil list element at index %d", i)
			}
			s, err := cast.ToStringE(item)
			if err != nil {
				return nil, err
			}
			out[i] = s
		}
		return out, nil
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
}

// isNil reports whether v is nil or a typed nil. cast calls String on
// fmt.Stringer values, which panics for most nil receivers.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
