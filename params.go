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

// Match is the result of a successful [Registry.Match].
type Match struct {
	Name   string
	Meta   any
	Params Params
}

// Param is one parameter of a matched route.
type Param struct {
	Key     string // Parameter name, or position for unnamed parameters
	Value   string // Captured text, as it appears in the path
	Matched bool   // False when an optional parameter took no part in the match
}

// Params holds one entry per parameter of the matched template, in template
// order. Optional parameters absent from the path are present with
// Matched == false, so "absent" stays distinct from "empty".
type Params []Param

// Get returns the value of key and whether key was matched.
func (ps Params) Get(key string) (string, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p.Value, p.Matched
		}
	}
	return "", false
}

// Value returns the value of key, or "" if key is absent.
func (ps Params) Value(key string) string {
	v, _ := ps.Get(key)
	return v
}

// Has reports whether the template declares key, matched or not.
func (ps Params) Has(key string) bool {
	for _, p := range ps {
		if p.Key == key {
			return true
		}
	}
	return false
}

// Map returns the matched parameters as a map. Unmatched optional
// parameters are left out.
func (ps Params) Map() map[string]string {
	out := make(map[string]string, len(ps))
	for _, p := range ps {
		if p.Matched {
			out[p.Key] = p.Value
		}
	}
	return out
}
