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

// Package translate implements the language-translation operation:
// parse a directive written in one source dialect and render it in another.
// Only the sentinel and the directive keyword sequence are language
// sensitive; clause argument text is passed through unchanged, since
// transliterating expressions between dialects (e.g. C "arr[i]" vs Fortran
// "arr(i)") is explicitly left to the caller.
package translate

import (
	"github.com/omplang/ompdir/ir"
	"github.com/omplang/ompdir/lang"
	"github.com/omplang/ompdir/parser"
)

// Convert parses input as a directive written in from and returns its
// canonical rendering as if it had been written in to. It does not mutate
// any shared state and is safe to call concurrently.
func Convert(input string, from, to lang.Language) (string, error) {
	d, err := parser.Parse(input, from)
	if err != nil {
		return "", err
	}
	return ir.RenderAs(d, to), nil
}

// Parse parses input as a directive written in from, returning the IR with
// its language tag already set to from. Callers that want to inspect the
// parsed clauses before rendering (rather than just the final string from
// Convert) should use this instead.
func Parse(input string, from lang.Language) (*ir.Directive, error) {
	return parser.Parse(input, from)
}

// RoundTrip translates input (written in from) to to and back to from,
// returning the Directive re-parsed after the return trip. Translating to
// another dialect and back preserves kind, clause kinds, and raw argument
// text, even though the intermediate rendering used a different sentinel
// and loop keyword; this helper exists so that invariant is easy to verify.
func RoundTrip(input string, from, to lang.Language) (*ir.Directive, error) {
	there, err := Convert(input, from, to)
	if err != nil {
		return nil, err
	}
	back, err := Convert(there, to, from)
	if err != nil {
		return nil, err
	}
	return parser.Parse(back, from)
}
