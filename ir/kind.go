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

package ir

import (
	"fmt"
	"strings"

	"github.com/omplang/ompdir/internal/collections"
)

// DirectiveKind is a stable integer discriminant identifying one of the
// closed set of OpenMP directive spellings, including combined forms and
// their Fortran "end" counterparts. Kind identity is independent of source
// language: the canonical name always spells the loop keyword as "for";
// renderers substitute "do" for Fortran.
type DirectiveKind int

// InvalidDirectiveKind is returned by lookups that fail; it matches no
// registered directive.
const InvalidDirectiveKind DirectiveKind = -1

type directiveKindInfo struct {
	name   string   // canonical spelling, words separated by a single space
	words  []string // name, split on spaces, precomputed
	hasEnd bool     // whether Fortran has a corresponding "end <name>" block terminator
	isEnd  bool     // true for a generated "end <base>" entry
	base   DirectiveKind
}

// baseDirectiveNames enumerates the canonical (non-"end") directive
// spellings, in the order new DirectiveKind values are assigned. The table
// is intentionally flat data: a single static registry generated once at
// startup, not hand-maintained per-kind constants for a set this large.
//
// hasEnd marks directives that open a structured block in Fortran and
// therefore have a matching "end ..." terminator directive.
var baseDirectiveNames = []struct {
	name   string
	hasEnd bool
}{
	// standalone / non-block directives
	{"barrier", false},
	{"taskwait", false},
	{"taskyield", false},
	{"flush", false},
	{"threadprivate", false},
	{"requires", false},
	{"cancel", false},
	{"cancellation point", false},
	{"declare simd", false},
	{"declare target", true},
	{"declare reduction", false},
	{"declare mapper", false},
	{"declare variant", true},
	{"begin declare target", false},
	{"begin declare variant", false},
	{"depobj", false},
	{"scan", false},
	{"nothing", false},
	{"error", false},
	{"assume", true},
	{"assumes", false},
	{"target enter data", false},
	{"target exit data", false},
	{"target update", false},
	{"interop", false},
	{"dispatch", true},
	{"tile", false},
	{"unroll", false},
	{"interchange", false},
	{"reverse", false},
	{"fuse", false},
	{"allocate", false},
	{"allocators", true},
	{"groupprivate", false},
	{"metadirective", true},

	// block / worksharing constructs (hasEnd=true)
	{"parallel", true},
	{"for", true},
	{"sections", true},
	{"section", true},
	{"single", true},
	{"master", true},
	{"masked", true},
	{"critical", true},
	{"atomic", true},
	{"ordered", true},
	{"workshare", true},
	{"task", true},
	{"taskloop", true},
	{"workdistribute", true},
	{"taskgroup", true},
	{"simd", true},
	{"distribute", true},
	{"teams", true},
	{"target", true},
	{"target data", true},
	{"loop", true},
	{"scope", true},

	// combined forms
	{"parallel for", true},
	{"parallel sections", true},
	{"parallel workshare", true},
	{"parallel master", true},
	{"parallel masked", true},
	{"parallel loop", true},
	{"for simd", true},
	{"parallel for simd", true},
	{"taskloop simd", true},
	{"master taskloop", true},
	{"masked taskloop", true},
	{"master taskloop simd", true},
	{"masked taskloop simd", true},
	{"parallel master taskloop", true},
	{"parallel masked taskloop", true},
	{"parallel master taskloop simd", true},
	{"parallel masked taskloop simd", true},
	{"distribute simd", true},
	{"distribute parallel for", true},
	{"distribute parallel for simd", true},
	{"teams distribute", true},
	{"teams distribute simd", true},
	{"teams distribute parallel for", true},
	{"teams distribute parallel for simd", true},
	{"teams loop", true},
	{"target parallel", true},
	{"target parallel for", true},
	{"target parallel for simd", true},
	{"target simd", true},
	{"target teams", true},
	{"target teams distribute", true},
	{"target teams distribute simd", true},
	{"target teams distribute parallel for", true},
	{"target teams distribute parallel for simd", true},
	{"target teams loop", true},
	{"target parallel loop", true},
}

var (
	directiveKinds    []directiveKindInfo
	directiveKindByID map[string]DirectiveKind // id = name, or "end "+name for end forms
)

func init() {
	names := collections.MapSlice(baseDirectiveNames, func(e struct {
		name   string
		hasEnd bool
	}) string {
		return e.name
	})
	if dups := collections.FindDuplicates(names); len(dups) > 0 {
		panic(fmt.Sprintf("ir: duplicate base directive name(s) in registry: %v", dups))
	}

	directiveKinds = make([]directiveKindInfo, 0, len(baseDirectiveNames)*2)
	directiveKindByID = make(map[string]DirectiveKind, len(baseDirectiveNames)*2)

	for _, entry := range baseDirectiveNames {
		kind := DirectiveKind(len(directiveKinds))
		directiveKinds = append(directiveKinds, directiveKindInfo{
			name:  entry.name,
			words: strings.Fields(entry.name),
			base:  kind,
		})
		directiveKindByID[entry.name] = kind
	}
	// Generate "end" forms as a second pass so base DirectiveKind values are
	// stable regardless of which directives declare hasEnd.
	for _, entry := range baseDirectiveNames {
		if !entry.hasEnd {
			continue
		}
		base := directiveKindByID[entry.name]
		endName := "end " + entry.name
		kind := DirectiveKind(len(directiveKinds))
		directiveKinds = append(directiveKinds, directiveKindInfo{
			name:  endName,
			words: strings.Fields(endName),
			isEnd: true,
			base:  base,
		})
		directiveKindByID[endName] = kind
	}
}

// DirectiveKindByName looks up the DirectiveKind for a canonical spelling
// (loop keyword spelled "for", words separated by single spaces). Returns
// InvalidDirectiveKind, false if name is not registered.
func DirectiveKindByName(name string) (DirectiveKind, bool) {
	kind, ok := directiveKindByID[name]
	if !ok {
		return InvalidDirectiveKind, false
	}
	return kind, true
}

// Name returns the canonical spelling of k, or "" if k is not registered.
func (k DirectiveKind) Name() string {
	if int(k) < 0 || int(k) >= len(directiveKinds) {
		return ""
	}
	return directiveKinds[k].name
}

// Words returns the canonical spelling of k split into its constituent
// words, e.g. "target teams distribute parallel for" -> ["target", "teams",
// "distribute", "parallel", "for"].
func (k DirectiveKind) Words() []string {
	if int(k) < 0 || int(k) >= len(directiveKinds) {
		return nil
	}
	return directiveKinds[k].words
}

// IsEnd reports whether k is a generated Fortran "end ..." terminator kind.
func (k DirectiveKind) IsEnd() bool {
	if int(k) < 0 || int(k) >= len(directiveKinds) {
		return false
	}
	return directiveKinds[k].isEnd
}

// Base returns the non-"end" DirectiveKind this kind terminates. For a
// non-end kind, Base returns k itself.
func (k DirectiveKind) Base() DirectiveKind {
	if int(k) < 0 || int(k) >= len(directiveKinds) {
		return InvalidDirectiveKind
	}
	return directiveKinds[k].base
}

// AllDirectiveKinds returns every registered DirectiveKind, base forms
// first in table order followed by generated "end" forms. Used by tests
// that iterate the whole registry.
func AllDirectiveKinds() []DirectiveKind {
	kinds := make([]DirectiveKind, len(directiveKinds))
	for i := range directiveKinds {
		kinds[i] = DirectiveKind(i)
	}
	return kinds
}
