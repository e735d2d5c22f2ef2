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

// Package routefile loads route definitions from YAML, TOML or JSON files.
//
// A route file has a list of routes and optional defaults:
//
//	defaults:
//	  meta:
//	    layout: main
//	routes:
//	  - name: home
//	    path: /
//	  - name: post
//	    path: /post/:id(\d+)
//	    meta:
//	      auth: true
//
// Documents are validated against an embedded JSON Schema before they are
// bound, and route names must be unique within a document. Map-valued route
// metadata is merged with defaults.meta; keys set on the route win. Routes
// keep the order of the file, which is the order they are matched in.
//
// [LoadConsul] reads the same document from a Consul KV key.
//
// Use [Load] to read definitions and [NewRegistry] to build a registry from
// them in one step:
//
//	r, err := routefile.NewRegistry(ctx, "routes.yaml",
//	    routebuilder.WithLogger(slog.Default()))
package routefile
