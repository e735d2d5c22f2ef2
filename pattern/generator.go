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

package pattern

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Values maps a key ID (see [Key.ID]) to the values substituted for it.
// Non-repeating keys take exactly one value. A key that is absent from the
// map, or mapped to nil, has no value.
type Values map[string][]string

// Generator builds concrete paths from a compiled template.
// A Generator is immutable and safe for concurrent use.
type Generator struct {
	template string
	tokens   []Token
	checks   []*regexp.Regexp // indexed like tokens; nil for literals
}

// CompileGenerator compiles a template into a Generator.
// Only the Sensitive option affects generation.
func CompileGenerator(template string, opts ...Option) (*Generator, error) {
	tokens, err := Parse(template)
	if err != nil {
		return nil, err
	}

	o := newOptions(opts)
	flags := "(?i)"
	if o.sensitive {
		flags = ""
	}

	checks := make([]*regexp.Regexp, len(tokens))
	for i, tok := range tokens {
		if tok.Key == nil {
			continue
		}
		re, err := regexp.Compile(flags + "^(?:" + tok.Key.Pattern + ")$")
		if err != nil {
			return nil, newError(template, 0, "parameter %q: %v", tok.Key.ID(), err)
		}
		checks[i] = re
	}

	return &Generator{
		template: template,
		tokens:   tokens,
		checks:   checks,
	}, nil
}

// Template returns the template the generator was compiled from.
func (g *Generator) Template() string {
	return g.template
}

// Generate substitutes values into the template.
//
// Errors:
//   - [ErrMissingParam]: a required key has no value
//   - [ErrEmptyList]: a required repeating key has an empty list
//   - [ErrUnexpectedList]: a non-repeating key has more than one value
//   - [ErrConstraint]: an encoded value does not satisfy the key's pattern
func (g *Generator) Generate(values Values) (string, error) {
	var b strings.Builder

	for i, tok := range g.tokens {
		if tok.Key == nil {
			b.WriteString(tok.Literal)
			continue
		}

		k := tok.Key
		vals := values[k.ID()]
		if vals == nil {
			if !k.Optional {
				return "", fmt.Errorf("%w: %q", ErrMissingParam, k.ID())
			}
			// An absent optional value takes its prefix with it, unless the
			// prefix separates literal text.
			if k.Partial {
				b.WriteString(k.Prefix)
			}
			continue
		}

		if len(vals) > 1 && !k.Repeat {
			return "", fmt.Errorf("%w: %q", ErrUnexpectedList, k.ID())
		}
		if len(vals) == 0 {
			if k.Optional {
				continue
			}
			return "", fmt.Errorf("%w: %q", ErrEmptyList, k.ID())
		}

		for j, v := range vals {
			segment := encodeSegment(v, k.Asterisk)
			if !g.checks[i].MatchString(segment) {
				return "", fmt.Errorf("%w: %q must match %q, got %q", ErrConstraint, k.ID(), k.Pattern, segment)
			}
			if j == 0 {
				b.WriteString(k.Prefix)
			} else {
				b.WriteString(k.Delimiter)
			}
			b.WriteString(segment)
		}
	}

	return b.String(), nil
}

// encodeSegment percent-encodes a value for use in a path.
// Asterisk values may span several segments, so "/" is kept.
func encodeSegment(v string, keepSlash bool) string {
	if !keepSlash {
		return url.PathEscape(v)
	}
	parts := strings.Split(v, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
