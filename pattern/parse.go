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
	"strconv"
	"strings"
)

// defaultDelimiter separates path segments.
const defaultDelimiter = "/"

// Key describes one parameter of a template.
type Key struct {
	Name      string // Parameter name; empty for unnamed parameters
	Index     int    // Position among unnamed parameters; -1 for named ones
	Prefix    string // "/" or "." written before the parameter, or empty
	Delimiter string // Separator between repeated values
	Optional  bool   // "?" or "*" modifier
	Repeat    bool   // "+" or "*" modifier
	Partial   bool   // Prefix is kept even when an optional value is absent
	Asterisk  bool   // Bare "*" parameter
	Pattern   string // RE2 pattern a single value must satisfy
}

// ID returns the identifier parameters are keyed by: the name for named
// parameters, the decimal position for unnamed ones.
func (k Key) ID() string {
	if k.Name != "" {
		return k.Name
	}
	return strconv.Itoa(k.Index)
}

// Token is one element of a parsed template: literal text or a parameter.
type Token struct {
	Literal string
	Key     *Key // nil for literal tokens
}

// Parse splits a template into literal and parameter tokens.
// Literal tokens hold unescaped text.
func Parse(template string) ([]Token, error) {
	p := parser{template: template, seen: make(map[string]struct{})}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.tokens, nil
}

type parser struct {
	template string
	tokens   []Token
	lit      strings.Builder
	escaped  bool // last byte of lit came from an escape sequence
	unnamed  int
	seen     map[string]struct{}
}

func (p *parser) run() error {
	s := p.template
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '\\':
			if i+1 >= len(s) {
				return newError(s, i, "trailing escape character")
			}
			p.lit.WriteByte(s[i+1])
			p.escaped = true
			i += 2
		case c == ':' && i+1 < len(s) && isWordChar(s[i+1]):
			end := i + 1
			for end < len(s) && isWordChar(s[end]) {
				end++
			}
			name := s[i+1 : end]
			if _, dup := p.seen[name]; dup {
				return newError(s, i, "duplicate parameter name %q", name)
			}
			p.seen[name] = struct{}{}

			custom := ""
			if end < len(s) && s[end] == '(' {
				group, next, err := scanGroup(s, end)
				if err != nil {
					return err
				}
				custom, end = group, next
			}
			next, err := p.emitKey(i, end, &Key{Name: name, Index: -1}, custom, true)
			if err != nil {
				return err
			}
			i = next
		case c == '(':
			group, end, err := scanGroup(s, i)
			if err != nil {
				return err
			}
			next, err := p.emitKey(i, end, &Key{Index: p.unnamed}, group, true)
			if err != nil {
				return err
			}
			p.unnamed++
			i = next
		case c == '*':
			next, err := p.emitKey(i, i+1, &Key{Index: p.unnamed, Asterisk: true}, "", false)
			if err != nil {
				return err
			}
			p.unnamed++
			i = next
		case c == ')':
			return newError(s, i, "unbalanced %q", ")")
		default:
			p.lit.WriteByte(c)
			p.escaped = false
			i++
		}
	}
	p.flushLiteral()
	return nil
}

// emitKey finishes a parameter that spans s[start:end], reads its modifier
// and appends it after the pending literal. It returns the offset following
// the parameter.
func (p *parser) emitKey(start, end int, key *Key, custom string, modifiable bool) (int, error) {
	s := p.template

	if modifiable && end < len(s) {
		switch s[end] {
		case '?':
			key.Optional = true
			end++
		case '*':
			key.Optional, key.Repeat = true, true
			end++
		case '+':
			key.Repeat = true
			end++
		}
	}

	// A delimiter written right before the parameter becomes its prefix.
	if !p.escaped && p.lit.Len() > 0 {
		pending := p.lit.String()
		last := pending[len(pending)-1:]
		if last == "/" || last == "." {
			key.Prefix = last
			p.lit.Reset()
			p.lit.WriteString(pending[:len(pending)-1])
		}
	}
	p.flushLiteral()

	key.Delimiter = key.Prefix
	if key.Delimiter == "" {
		key.Delimiter = defaultDelimiter
	}
	key.Partial = key.Prefix != "" && end < len(s) && s[end:end+1] != key.Prefix

	switch {
	case custom != "":
		key.Pattern = custom
	case key.Asterisk:
		key.Pattern = ".*"
	default:
		key.Pattern = "[^" + regexp.QuoteMeta(key.Delimiter) + "]+?"
	}

	if _, err := regexp.Compile("^(?:" + key.Pattern + ")$"); err != nil {
		return 0, newError(s, start, "parameter %q: %v", key.ID(), err)
	}

	p.tokens = append(p.tokens, Token{Key: key})
	return end, nil
}

func (p *parser) flushLiteral() {
	if p.lit.Len() == 0 {
		return
	}
	p.tokens = append(p.tokens, Token{Literal: p.lit.String()})
	p.lit.Reset()
	p.escaped = false
}

// scanGroup reads the parenthesised pattern starting at s[open] == '('.
// It returns the pattern without the outer parentheses and the offset
// following the closing parenthesis.
func scanGroup(s string, open int) (string, int, error) {
	if open+1 < len(s) && s[open+1] == '?' {
		return "", 0, newError(s, open, "pattern cannot start with %q", "?")
	}

	depth := 1
	for j := open + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '[':
			// An unclosed class is left for the regexp compiler to report.
			if end := classEnd(s, j); end >= 0 {
				j = end
			}
		case '(':
			rest := s[j+1:]
			if !strings.HasPrefix(rest, "?") || strings.HasPrefix(rest, "?P<") || strings.HasPrefix(rest, "?<") {
				return "", 0, newError(s, j, "capturing groups are not allowed")
			}
			depth++
		case ')':
			depth--
			if depth == 0 {
				group := s[open+1 : j]
				if group == "" {
					return "", 0, newError(s, open, "missing pattern")
				}
				return group, j + 1, nil
			}
		}
	}

	return "", 0, newError(s, open, "unbalanced %q", "(")
}

// classEnd returns the offset of the "]" closing the character class that
// starts at s[open] == '[', or -1. Parentheses inside a class are literal.
func classEnd(s string, open int) int {
	j := open + 1
	if j < len(s) && s[j] == '^' {
		j++
	}
	// A leading "]" is a member of the class.
	if j < len(s) && s[j] == ']' {
		j++
	}
	for ; j < len(s); j++ {
		switch {
		case s[j] == '\\':
			j++
		case s[j] == '[' && j+1 < len(s) && s[j+1] == ':':
			if end := strings.Index(s[j+2:], ":]"); end >= 0 {
				j += end + 3
			}
		case s[j] == ']':
			return j
		}
	}
	return -1
}

func isWordChar(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
