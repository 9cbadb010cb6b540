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
	"strconv"
	"strings"

	"github.com/omplang/ompdir/lang"
)

// Canonical renders d in its current language: the dialect sentinel, the
// directive's canonical spelling with the loop keyword substituted per
// language, and its clauses in original order with verbatim argument text.
func (d *Directive) Canonical() string {
	return render(d, d.language, false)
}

// Plain renders d the same shape as Canonical, but with clause argument
// text redacted: identifiers become "<identifier>", variable references
// become "<variable>", arbitrary expressions become "<expr>", and opaque
// (unstructured) argument payloads become "<data>". Directive keywords and
// enumerated clause-value keywords (e.g. "static", "shared", "+") are kept
// as-is. The mapping is a pure function of the parsed Directive: two equal
// directives always produce byte-identical plain strings.
func (d *Directive) Plain() string {
	return render(d, d.language, true)
}

// RenderAs renders d as if its language tag were overridden to language,
// without mutating d. Clause argument text is passed through unchanged:
// expression text inside clauses is never transliterated between dialects
// (e.g. C "arr[i]" vs Fortran "arr(i)" is left to the caller).
func RenderAs(d *Directive, language lang.Language) string {
	return render(d, language, false)
}

func render(d *Directive, language lang.Language, plain bool) string {
	var b strings.Builder
	b.WriteString(language.Sentinel())
	b.WriteByte(' ')
	b.WriteString(directiveBody(d.kind, language))
	for _, c := range d.clauses {
		b.WriteByte(' ')
		if plain {
			b.WriteString(renderClausePlain(c))
		} else {
			b.WriteString(renderClauseCanonical(c))
		}
	}
	return b.String()
}

// directiveBody renders the directive's keyword sequence, substituting the
// loop keyword ("for"/"do") for every occurrence across all combined forms.
func directiveBody(kind DirectiveKind, language lang.Language) string {
	words := kind.Words()
	out := make([]string, len(words))
	loopKeyword := language.LoopKeyword()
	for i, w := range words {
		if w == "for" {
			out[i] = loopKeyword
		} else {
			out[i] = w
		}
	}
	return strings.Join(out, " ")
}

func renderClauseCanonical(c Clause) string {
	name := c.Kind.Name()
	switch c.Rule {
	case Bare:
		return name
	case Parenthesized:
		return name + "(" + c.RawArgument + ")"
	case Flexible:
		if c.HasParens {
			return name + "(" + c.RawArgument + ")"
		}
		return name
	default:
		return name
	}
}

func renderClausePlain(c Clause) string {
	name := c.Kind.Name()
	if c.Rule == Bare {
		return name
	}
	if c.Rule == Flexible && !c.HasParens {
		return name
	}

	switch payload := c.Structured.(type) {
	case NumThreads:
		return name + "(<expr>)"
	case If:
		return name + "(<expr>)"
	case VarList:
		return name + "(" + redacted("<variable>", len(payload.Vars)) + ")"
	case Reduction:
		return name + "(" + payload.OperatorName + ": " + redacted("<identifier>", len(payload.Vars)) + ")"
	case Schedule:
		if payload.HasChunk {
			return name + "(" + payload.Kind.String() + ", <expr>)"
		}
		return name + "(" + payload.Kind.String() + ")"
	case Collapse:
		return name + "(" + strconv.Itoa(payload.N) + ")"
	case Ordered:
		if payload.HasN {
			return name + "(" + strconv.Itoa(payload.N) + ")"
		}
		return name
	case Default:
		return name + "(" + payload.Kind.String() + ")"
	case Nowait:
		return name
	default:
		if c.RawArgument == "" {
			return name + "()"
		}
		return name + "(<data>)"
	}
}

func redacted(placeholder string, n int) string {
	vars := make([]string, n)
	for i := range vars {
		vars[i] = placeholder
	}
	return strings.Join(vars, ", ")
}
