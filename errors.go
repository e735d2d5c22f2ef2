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
	"errors"

	"rivaas.dev/routebuilder/pattern"
)

var (
	// ErrInvalidRoute indicates that a route was added without a name or a path.
	ErrInvalidRoute = errors.New("route name and path must be defined")

	// ErrInvalidPattern indicates that a route's path template does not compile.
	// The concrete error is a [*pattern.Error].
	ErrInvalidPattern = pattern.ErrInvalidPattern

	// ErrRouteNotFound indicates that no route is registered under the given name.
	ErrRouteNotFound = errors.New("route not found")

	// ErrInvalidParam indicates that a parameter value cannot be converted to a string.
	ErrInvalidParam = errors.New("invalid parameter value")

	// ErrPathMismatch indicates that a generated path is not accepted by its own route.
	ErrPathMismatch = errors.New("generated path does not match route")
)
