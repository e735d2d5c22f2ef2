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
	"regexp"
	"strings"
)

// Option configures how a template is compiled.
type Option func(*options)

type options struct {
	sensitive bool
	strict    bool
	end       bool
}

func newOptions(opts []Option) options {
	o := options{end: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Sensitive makes matching case-sensitive. Matching ignores case by default.
func Sensitive(enabled bool) Option {
	return func(o *options) { o.sensitive = enabled }
}

// Strict disables the optional trailing delimiter. By default "/users" also
// matches "/users/".
func Strict(enabled bool) Option {
	return func(o *options) { o.strict = enabled }
}

// End controls whether a match must consume the whole path (the default).
// With End(false) the template matches any path it is a prefix of, provided
// the prefix ends at a "/" or at the end of the path.
func End(enabled bool) Option {
	return func(o *options) { o.end = enabled }
}

// Matcher tests concrete paths against a compiled template.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	template string
	keys     []Key
	re       *regexp.Regexp
}

// Compile compiles a template into a Matcher.
// It returns an [*Error] when the template does not follow the grammar.
func Compile(template string, opts ...Option) (*Matcher, error) {
	tokens, err := Parse(template)
	if err != nil {
		return nil, err
	}

	o := newOptions(opts)
	expr := buildExpr(tokens, o)
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, newError(template, 0, "%v", err)
	}

	keys := make([]Key, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Key != nil {
			keys = append(keys, *tok.Key)
		}
	}
	if re.NumSubexp() != len(keys) {
		return nil, newError(template, 0, "capturing groups are not allowed")
	}

	return &Matcher{
		template: template,
		keys:     keys,
		re:       re,
	}, nil
}

// MustCompile is like [Compile] but panics if the template is invalid.
func MustCompile(template string, opts ...Option) *Matcher {
	m, err := Compile(template, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// buildExpr assembles the anchored expression for a token list.
func buildExpr(tokens []Token, o options) string {
	var b strings.Builder
	if !o.sensitive {
		b.WriteString("(?i)")
	}
	b.WriteByte('^')

	var route strings.Builder
	for _, tok := range tokens {
		if tok.Key == nil {
			route.WriteString(regexp.QuoteMeta(tok.Literal))
			continue
		}

		k := tok.Key
		prefix := regexp.QuoteMeta(k.Prefix)
		capture := "(?:" + k.Pattern + ")"
		if k.Repeat {
			capture += "(?:" + prefix + capture + ")*"
		}

		switch {
		case k.Optional && !k.Partial:
			capture = "(?:" + prefix + "(" + capture + "))?"
		case k.Optional:
			capture = prefix + "(" + capture + ")?"
		default:
			capture = prefix + "(" + capture + ")"
		}
		route.WriteString(capture)
	}

	expr := route.String()
	endsWithDelimiter := strings.HasSuffix(expr, defaultDelimiter)

	switch {
	case o.end && o.strict:
		b.WriteString(expr)
		b.WriteByte('$')
	case o.end:
		b.WriteString(strings.TrimSuffix(expr, defaultDelimiter))
		b.WriteString(defaultDelimiter + "?$")
	case o.strict && endsWithDelimiter:
		b.WriteString(expr)
	case o.strict:
		b.WriteString(expr)
		b.WriteString("(?:" + defaultDelimiter + "|$)")
	default:
		b.WriteString(strings.TrimSuffix(expr, defaultDelimiter))
		b.WriteString("(?:" + defaultDelimiter + "|$)")
	}

	return b.String()
}

// Template returns the template the matcher was compiled from.
func (m *Matcher) Template() string {
	return m.template
}

// Keys returns the parameter descriptors in template order.
func (m *Matcher) Keys() []Key {
	out := make([]Key, len(m.keys))
	copy(out, m.keys)
	return out
}

// Regexp returns the compiled expression.
func (m *Matcher) Regexp() *regexp.Regexp {
	return m.re
}

// MatchString reports whether path is accepted by the template.
func (m *Matcher) MatchString(path string) bool {
	return m.re.MatchString(path)
}

// FindParams matches path and returns one captured value per key.
// matched[i] is false when the i-th key is optional and took no part in the
// match; values[i] is then empty. ok is false when path does not match.
func (m *Matcher) FindParams(path string) (values []string, matched []bool, ok bool) {
	loc := m.re.FindStringSubmatchIndex(path)
	if loc == nil {
		return nil, nil, false
	}

	values = make([]string, len(m.keys))
	matched = make([]bool, len(m.keys))
	for i := range m.keys {
		start, end := loc[2*(i+1)], loc[2*(i+1)+1]
		if start >= 0 {
			values[i] = path[start:end]
			matched[i] = true
		}
	}

	return values, matched, true
}
