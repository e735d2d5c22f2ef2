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
	"sync"
	"sync/atomic"

	"rivaas.dev/routebuilder/pattern"
)

// Definition describes a route to register.
// Meta is returned unchanged by Match; a nil Meta means the route has none.
type Definition struct {
	Name string
	Path string
	Meta any
}

// Info is a read-only snapshot of a registered route, used for introspection.
type Info struct {
	Name string        // Route name
	Path string        // Template as registered (/post/:id)
	Meta any           // Caller-supplied metadata
	Keys []pattern.Key // Parameter descriptors in template order
}

// route is a registered route. Everything except gen is fixed at creation;
// changing the template means removing the route and adding it again.
type route struct {
	name    string
	path    string
	meta    any
	matcher *pattern.Matcher
	keys    []pattern.Key

	gen   atomic.Pointer[pattern.Generator] // nil until first path generation
	genMu sync.Mutex                        // serializes the first compilation
}

func newRoute(def Definition, m *pattern.Matcher) *route {
	return &route{
		name:    def.Name,
		path:    def.Path,
		meta:    def.Meta,
		matcher: m,
		keys:    m.Keys(),
	}
}

// generator returns the route's path generator, compiling it on first use.
func (rt *route) generator(opts []pattern.Option) (*pattern.Generator, error) {
	if g := rt.gen.Load(); g != nil {
		return g, nil
	}

	rt.genMu.Lock()
	defer rt.genMu.Unlock()

	if g := rt.gen.Load(); g != nil {
		return g, nil
	}
	g, err := pattern.CompileGenerator(rt.path, opts...)
	if err != nil {
		return nil, err
	}
	rt.gen.Store(g)

	return g, nil
}

func (rt *route) info() Info {
	keys := make([]pattern.Key, len(rt.keys))
	copy(keys, rt.keys)
	return Info{
		Name: rt.name,
		Path: rt.path,
		Meta: rt.meta,
		Keys: keys,
	}
}
