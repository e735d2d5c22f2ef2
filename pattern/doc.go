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

// Package pattern compiles path templates into matchers and path generators.
//
// A template is made of literal text and parameters:
//
//	/post/:id            named parameter, matches one segment
//	/post/:id(\d+)       named parameter with a custom pattern
//	/:lang?/about        optional parameter, dropped with its "/" when absent
//	/files/:path+        one or more segments
//	/files/:path*        zero or more segments
//	/assets/(.*)         unnamed parameter, keyed by position ("0", "1", ...)
//	/:type/*anything     bare asterisk, an unnamed parameter matching ".*"
//	/price/\:usd         escaped character, matched literally
//
// A "/" or "." written directly before a parameter is the parameter's prefix.
// Custom patterns use RE2 syntax and may not contain capturing groups;
// non-capturing groups such as (?:a|b) are allowed. Parentheses inside a
// character class, as in [()]+, are literal.
//
// # Matching
//
// [Compile] turns a template into a [Matcher]. The matcher exposes the ordered
// [Key] descriptors of the template and extracts one value per key:
//
//	m := pattern.MustCompile("/post/:id")
//	values, matched, ok := m.FindParams("/post/123")
//	// values = ["123"], matched = [true], ok = true
//
// Matching is case-insensitive and tolerates a trailing "/" unless
// [Sensitive] or [Strict] are set. With End(false) the template matches any
// path it is a prefix of, as long as the match ends on a "/" boundary.
//
// # Generation
//
// [CompileGenerator] turns the same template into a [Generator] that
// substitutes values back into the template:
//
//	g, _ := pattern.CompileGenerator("/post/:id")
//	p, err := g.Generate(pattern.Values{"id": {"123"}})
//	// p = "/post/123"
//
// Values are percent-encoded as path segments and must satisfy the key's
// pattern. Missing required keys, constraint violations and list values for
// non-repeating keys are reported as errors.
package pattern
