// Copyright 2025 EngFlow Inc. All rights reserved.
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

// Package ir defines the intermediate representation produced by parsing an
// OpenMP directive: the Directive root, its Clause list, directive/clause
// keyword metadata, structured clause payloads, canonical/plain/converted
// rendering, and the error taxonomy shared across the parser and C ABI.
package ir

import (
	"reflect"

	"github.com/omplang/ompdir/internal/cursor"
	"github.com/omplang/ompdir/lang"
)

// Directive is the root of the parsed IR: a directive kind, its ordered
// clause list, the source location of its sentinel, and a language tag.
//
// A Directive is immutable after construction apart from its language tag
// (toggled via SetLanguage to drive rendering); toggling the language never
// affects Equal.
type Directive struct {
	kind     DirectiveKind
	clauses  []Clause
	location cursor.Position
	language lang.Language
}

// NewDirective constructs a Directive. clauses is copied so the caller's
// slice may be reused or mutated afterward.
func NewDirective(kind DirectiveKind, clauses []Clause, location cursor.Position, language lang.Language) *Directive {
	return &Directive{
		kind:     kind,
		clauses:  append([]Clause(nil), clauses...),
		location: location,
		language: language,
	}
}

// Kind returns the directive's kind.
func (d *Directive) Kind() DirectiveKind { return d.kind }

// Clauses returns the directive's clauses in source order. The returned
// slice must not be mutated by callers.
func (d *Directive) Clauses() []Clause { return d.clauses }

// Location returns the source position of the directive's sentinel.
func (d *Directive) Location() cursor.Position { return d.location }

// Language returns the directive's current language tag.
func (d *Directive) Language() lang.Language { return d.language }

// SetLanguage toggles the language tag used for rendering. It never
// mutates clauses or kind, and never affects Equal.
func (d *Directive) SetLanguage(language lang.Language) { d.language = language }

// ClauseByKind returns the first clause of the given kind and true, or the
// zero Clause and false if none is present.
func (d *Directive) ClauseByKind(kind ClauseKind) (Clause, bool) {
	for _, c := range d.clauses {
		if c.Kind == kind {
			return c, true
		}
	}
	return Clause{}, false
}

// Equal reports whether two directives have the same kind and the same
// clauses in the same order (kind, rule, raw argument text, and structured
// payload), ignoring location and language tag. Canonical round-trips and
// cross-dialect translation both preserve this notion of equality.
func (d *Directive) Equal(other *Directive) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.kind != other.kind || len(d.clauses) != len(other.clauses) {
		return false
	}
	for i := range d.clauses {
		a, b := d.clauses[i], other.clauses[i]
		if a.Kind != b.Kind || a.Rule != b.Rule || a.RawArgument != b.RawArgument || a.HasParens != b.HasParens {
			return false
		}
		if !reflect.DeepEqual(a.Structured, b.Structured) {
			return false
		}
	}
	return true
}
