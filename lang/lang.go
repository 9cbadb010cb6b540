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

// Package lang defines the source-language tag threaded through the
// normalizer, lexer, IR, and renderers: it selects sentinel recognition,
// case-folding discipline, continuation syntax, and the for/do loop-keyword
// substitution used when rendering combined directives.
package lang

import "fmt"

// Language identifies the source dialect an OpenMP directive was written in
// or should be rendered for.
type Language int

const (
	// C directives use `#pragma omp`, case-sensitive identifiers by convention.
	C Language = iota
	// Cxx is identical to C for sentinel/continuation purposes; kept distinct
	// for callers that want to track the originating dialect.
	Cxx
	// FortranFree directives use `!$omp` with `&` line continuation.
	FortranFree
	// FortranFixed directives use column 1-6 sentinels (`!$omp`, `c$omp`, `*$omp`).
	FortranFixed
)

func (l Language) String() string {
	switch l {
	case C:
		return "C"
	case Cxx:
		return "C++"
	case FortranFree:
		return "Fortran (free-form)"
	case FortranFixed:
		return "Fortran (fixed-form)"
	default:
		return fmt.Sprintf("Language(%d)", int(l))
	}
}

// IsFortran reports whether l is one of the two Fortran dialects.
func (l Language) IsFortran() bool {
	return l == FortranFree || l == FortranFixed
}

// Sentinel returns the canonical directive-opening sentinel used when
// rendering a directive in language l.
func (l Language) Sentinel() string {
	if l.IsFortran() {
		return "!$omp"
	}
	return "#pragma omp"
}

// LoopKeyword returns the loop-construct keyword ("for" or "do") used in
// canonical renderings of combined directives in language l.
func (l Language) LoopKeyword() string {
	if l.IsFortran() {
		return "do"
	}
	return "for"
}

// FortranFixedSentinels lists the recognized column 1-6 sentinel prefixes
// for fixed-form Fortran, case-insensitive.
var FortranFixedSentinels = []string{"!", "c", "*"}
