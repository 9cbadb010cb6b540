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

// Package registry builds the longest-prefix directive matcher and the
// clause-rule lookup on top of the keyword metadata declared in package ir.
// Both indices are generated once at init and read-only afterward. ir owns
// what a kind means; registry owns how to find one in a token stream, so
// parsing logic never has to duplicate the keyword data.
package registry

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/omplang/ompdir/ir"
)

// fold is the case-folding transform used for every keyword comparison in
// this package. x/text's Unicode-aware fold is used in place of
// strings.ToLower because OpenMP keywords match case-insensitively in
// every dialect, and a hand-rolled ToLower would fold non-ASCII
// identifiers incorrectly.
var fold = cases.Fold()

// Fold case-folds s for keyword comparison purposes.
func Fold(s string) string {
	return fold.String(s)
}

var maxDirectiveWords int

func init() {
	for _, k := range ir.AllDirectiveKinds() {
		if n := len(k.Words()); n > maxDirectiveWords {
			maxDirectiveWords = n
		}
	}
}

// MatchDirective performs longest-prefix matching of tokens against the
// directive registry. It returns the matched kind and the number of
// leading tokens it consumed, or (InvalidDirectiveKind, 0, false) if no
// registered spelling is a prefix of tokens.
//
// The "for"/"do" loop keyword is treated as equivalent in both source
// languages: a Fortran "do" folds to the same candidate word as a C "for",
// since the canonical registry spells every combined form with "for".
func MatchDirective(tokens []string) (ir.DirectiveKind, int, bool) {
	limit := min(maxDirectiveWords, len(tokens))
	for n := limit; n >= 1; n-- {
		candidate := normalizeDirectiveWords(tokens[:n])
		if kind, ok := ir.DirectiveKindByName(candidate); ok {
			return kind, n, true
		}
	}
	return ir.InvalidDirectiveKind, 0, false
}

func normalizeDirectiveWords(tokens []string) string {
	words := make([]string, len(tokens))
	for i, t := range tokens {
		w := Fold(t)
		if w == "do" {
			w = "for"
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}

// MatchClause looks up a single clause keyword token, case-insensitively.
func MatchClause(token string) (ir.ClauseKind, bool) {
	return ir.ClauseKindByName(Fold(token))
}
