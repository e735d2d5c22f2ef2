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
	"errors"
	"fmt"
)

var (
	// ErrInvalidPattern indicates that a template does not follow the grammar.
	ErrInvalidPattern = errors.New("invalid path pattern")

	// ErrMissingParam indicates that a required parameter has no value.
	ErrMissingParam = errors.New("missing required parameter")

	// ErrConstraint indicates that a value does not satisfy its parameter's pattern.
	ErrConstraint = errors.New("parameter value does not match pattern")

	// ErrUnexpectedList indicates that several values were given for a non-repeating parameter.
	ErrUnexpectedList = errors.New("parameter does not accept multiple values")

	// ErrEmptyList indicates that an empty list was given for a required repeating parameter.
	ErrEmptyList = errors.New("parameter requires at least one value")
)

// Error describes a template that failed to compile.
// It always matches [ErrInvalidPattern] with errors.Is.
type Error struct {
	Template string // The template as supplied
	Offset   int    // Byte offset of the offending token
	Reason   string // What is wrong at Offset
}

// Error returns a message naming the template, offset and reason.
func (e *Error) Error() string {
	return fmt.Sprintf("invalid path pattern %q at offset %d: %s", e.Template, e.Offset, e.Reason)
}

// Unwrap returns [ErrInvalidPattern].
func (e *Error) Unwrap() error {
	return ErrInvalidPattern
}

func newError(template string, offset int, format string, args ...any) *Error {
	return &Error{
		Template: template,
		Offset:   offset,
		Reason:   fmt.Sprintf(format, args...),
	}
}
