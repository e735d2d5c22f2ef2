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
	"sync"

	"rivaas.dev/routebuilder/pattern"
)

// Registry is an ordered collection of named routes.
//
// Order is registration order and decides both which route matches a path
// (the first one that accepts it) and which route a name refers to (the
// first one registered under it).
type Registry struct {
	mu     sync.RWMutex
	routes []*route

	compileOpts  []pattern.Option
	verify       bool
	eventHandler EventHandler
	observer     Observer

	initial []Definition // WithRoutes, consumed by New
}

// New creates a Registry configured by opts.
// It returns an error if a route given with [WithRoutes] is invalid.
func New(opts ...Option) (*Registry, error) {
	r := &Registry{
		verify:       true,
		eventHandler: func(Event) {},
	}
	for _, opt := range opts {
		opt(r)
	}

	initial := r.initial
	r.initial = nil
	for i, def := range initial {
		if err := r.AddRoute(def); err != nil {
			return nil, fmt.Errorf("route[%d]: %w", i, err)
		}
	}

	return r, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Registry {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Add registers a route at the end of the registry. meta may be nil.
//
// Errors:
//   - [ErrInvalidRoute]: name or path is empty
//   - [*pattern.Error] (matches [ErrInvalidPattern]): path does not compile
//
// The registry is unchanged when Add fails.
func (r *Registry) Add(name, path string, meta any) error {
	return r.AddRoute(Definition{Name: name, Path: path, Meta: meta})
}

// AddRoute registers def at the end of the registry. See [Registry.Add].
func (r *Registry) AddRoute(def Definition) error {
	if def.Name == "" || def.Path == "" {
		return fmt.Errorf("%w: name=%q path=%q", ErrInvalidRoute, def.Name, def.Path)
	}

	m, err := pattern.Compile(def.Path, r.compileOpts...)
	if err != nil {
		return err
	}
	rt := newRoute(def, m)

	r.mu.Lock()
	duplicate := r.findByName(def.Name) != nil
	r.routes = append(r.routes, rt)
	position := len(r.routes) - 1
	r.mu.Unlock()

	if duplicate {
		r.emit(EventWarning, "route name already registered, name lookups resolve to the earlier route",
			"name", def.Name, "path", def.Path)
	}
	r.emit(EventDebug, "route added", "name", def.Name, "path", def.Path, "position", position)

	return nil
}

// MustAdd is like [Registry.Add] but panics on error. It returns the
// registry so that calls can be chained at startup:
//
//	r.MustAdd("home", "/", nil).
//	    MustAdd("post", "/post/:id", nil)
func (r *Registry) MustAdd(name, path string, meta any) *Registry {
	if err := r.Add(name, path, meta); err != nil {
		panic(err)
	}
	return r
}

// Remove deletes every route registered under one of names and returns how
// many were deleted. Unknown names are ignored. The remaining routes keep
// their relative order.
func (r *Registry) Remove(names ...string) int {
	if len(names) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	r.mu.Lock()
	kept := make([]*route, 0, len(r.routes))
	for _, rt := range r.routes {
		if _, drop := set[rt.name]; !drop {
			kept = append(kept, rt)
		}
	}
	removed := len(r.routes) - len(kept)
	r.routes = kept
	r.mu.Unlock()

	if removed > 0 {
		r.emit(EventDebug, "routes removed", "names", names, "count", removed)
	}

	return removed
}

// HasMatch reports whether any route accepts path.
func (r *Registry) HasMatch(path string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.findByPath(path) != nil
}

// Match returns the first route, in registration order, that accepts path.
// ok is false when no route does.
func (r *Registry) Match(path string) (m Match, ok bool) {
	r.mu.RLock()
	rt := r.findByPath(path)
	r.mu.RUnlock()

	if rt == nil {
		r.observeMatch("", false)
		return Match{}, false
	}

	values, matched, _ := rt.matcher.FindParams(path)
	params := make(Params, len(rt.keys))
	for i, k := range rt.keys {
		params[i] = Param{Key: k.ID(), Value: values[i], Matched: matched[i]}
	}

	r.observeMatch(rt.name, true)
	return Match{Name: rt.name, Meta: rt.meta, Params: params}, true
}

// Lookup returns the first route registered under name.
func (r *Registry) Lookup(name string) (Info, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rt := r.findByName(name)
	if rt == nil {
		return Info{}, false
	}
	return rt.info(), true
}

// Routes returns a snapshot of all routes in registration order.
func (r *Registry) Routes() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Info, len(r.routes))
	for i, rt := range r.routes {
		out[i] = rt.info()
	}
	return out
}

// Len returns the number of registered routes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.routes)
}

// findByPath must be called with r.mu held.
func (r *Registry) findByPath(path string) *route {
	for _, rt := range r.routes {
		if rt.matcher.MatchString(path) {
			return rt
		}
	}
	return nil
}

// findByName must be called with r.mu held.
func (r *Registry) findByName(name string) *route {
	for _, rt := range r.routes {
		if rt.name == name {
			return rt
		}
	}
	return nil
}

func (r *Registry) observeMatch(name string, ok bool) {
	if r.observer != nil {
		r.observer.ObserveMatch(name, ok)
	}
}

func (r *Registry) observeGenerate(name string, ok bool) {
	if r.observer != nil {
		r.observer.ObserveGenerate(name, ok)
	}
}
