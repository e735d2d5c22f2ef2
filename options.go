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
	"log/slog"

	"rivaas.dev/routebuilder/pattern"
)

// Option configures a Registry.
type Option func(*Registry)

// WithRoutes registers initial routes. They are added in the given order,
// after all other options have been applied, exactly as [Registry.AddRoute]
// would add them. [New] fails if any of them is invalid.
//
// Example:
//
//	r, err := routebuilder.New(routebuilder.WithRoutes(
//	    routebuilder.Definition{Name: "home", Path: "/"},
//	    routebuilder.Definition{Name: "post", Path: "/post/:id"},
//	))
func WithRoutes(defs ...Definition) Option {
	return func(r *Registry) {
		r.initial = append(r.initial, defs...)
	}
}

// WithEventHandler sets the handler for registry events.
func WithEventHandler(handler EventHandler) Option {
	return func(r *Registry) {
		if handler != nil {
			r.eventHandler = handler
		}
	}
}

// WithLogger logs registry events to logger.
// This is a convenience wrapper around [WithEventHandler].
//
// Example:
//
//	routebuilder.New(routebuilder.WithLogger(slog.Default()))
func WithLogger(logger *slog.Logger) Option {
	return WithEventHandler(DefaultEventHandler(logger))
}

// WithObserver reports match and generation outcomes to o.
func WithObserver(o Observer) Option {
	return func(r *Registry) {
		r.observer = o
	}
}

// WithCaseSensitive makes every template match case-sensitively.
func WithCaseSensitive() Option {
	return func(r *Registry) {
		r.compileOpts = append(r.compileOpts, pattern.Sensitive(true))
	}
}

// WithStrictSlash stops templates from accepting an extra trailing "/".
func WithStrictSlash() Option {
	return func(r *Registry) {
		r.compileOpts = append(r.compileOpts, pattern.Strict(true))
	}
}

// WithPrefixMatch lets a template match any path it is a prefix of,
// as long as the prefix ends on a "/" boundary.
func WithPrefixMatch() Option {
	return func(r *Registry) {
		r.compileOpts = append(r.compileOpts, pattern.End(false))
	}
}

// WithoutPathVerification skips re-matching generated paths against their
// route. Generated paths are verified by default.
func WithoutPathVerification() Option {
	return func(r *Registry) {
		r.verify = false
	}
}
