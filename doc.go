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

// Package routebuilder provides a registry of named path templates with
// two-way translation between concrete paths and (name, params) pairs.
//
// Routes are kept in registration order. Matching a path returns the first
// route whose template accepts it, and building a path uses the first route
// registered under the requested name. Duplicate names are allowed.
//
// # Registering Routes
//
//	r := routebuilder.MustNew(
//	    routebuilder.WithRoutes(
//	        routebuilder.Definition{Name: "home", Path: "/"},
//	        routebuilder.Definition{Name: "post", Path: "/post/:id", Meta: postMeta},
//	    ),
//	    routebuilder.WithLogger(slog.Default()),
//	)
//
//	r.MustAdd("user", "/user/:id(\\d+)", nil).
//	    MustAdd("files", "/files/:path*", nil)
//
// Templates follow the grammar of the [pattern] package. A malformed
// template is reported when the route is added, never later.
//
// # Matching
//
//	m, ok := r.Match("/post/123")
//	// m.Name = "post", m.Meta = postMeta, m.Params.Value("id") = "123"
//
// Match and HasMatch never fail: a path that no route accepts yields ok == false.
// A catch-all route such as "/:anything*" shadows every route registered after
// it, so register specific routes first.
//
// # Building Paths
//
//	p, ok := r.MakePath("post", map[string]any{"id": 123})
//	// p = "/post/123"
//
// MakePath reports any failure (unknown name, missing parameter, value not
// satisfying the parameter's pattern) as ok == false. BuildPath runs the same
// steps and returns the reason as an error. Parameter values are converted to
// strings with spf13/cast; repeating parameters accept slices.
//
// # Concurrency
//
// A Registry is safe for concurrent use. Adding and removing routes takes a
// write lock; matching and building paths take a read lock. Path generators
// are compiled once per route, on first use.
package routebuilder
