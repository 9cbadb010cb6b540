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

package parser_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omplang/ompdir/ir"
	"github.com/omplang/ompdir/lang"
	"github.com/omplang/ompdir/parser"
)

// A bare directive parses with no clauses and renders in either dialect.
func TestParse_Simple(t *testing.T) {
	d, err := parser.Parse(`#pragma omp parallel`, lang.C)
	require.NoError(t, err)
	assert.Equal(t, "parallel", d.Kind().Name())
	assert.Empty(t, d.Clauses())
	assert.Equal(t, `#pragma omp parallel`, d.Canonical())
	assert.Equal(t, `!$omp parallel`, ir.RenderAs(d, lang.FortranFree))
}

// A combined directive with three structured clauses.
func TestParse_ClausesInOrder(t *testing.T) {
	d, err := parser.Parse(`#pragma omp parallel for num_threads(4) private(i, j) schedule(static, 100)`, lang.C)
	require.NoError(t, err)
	assert.Equal(t, "parallel for", d.Kind().Name())

	clauses := d.Clauses()
	require.Len(t, clauses, 3)

	assert.Equal(t, "num_threads", clauses[0].Kind.Name())
	assert.Equal(t, ir.NumThreads{Expr: "4"}, clauses[0].Structured)

	assert.Equal(t, "private", clauses[1].Kind.Name())
	assert.Equal(t, ir.VarList{Vars: []string{"i", "j"}}, clauses[1].Structured)

	assert.Equal(t, "schedule", clauses[2].Kind.Name())
	assert.Equal(t, ir.Schedule{Kind: ir.ScheduleStatic, Chunk: "100", HasChunk: true}, clauses[2].Structured)

	assert.Equal(t, `#pragma omp parallel for num_threads(4) private(i, j) schedule(static, 100)`, d.Canonical())
	assert.Equal(t, `!$omp parallel do num_threads(4) private(i, j) schedule(static, 100)`, ir.RenderAs(d, lang.FortranFree))
}

// Reduction and collapse payloads are interpreted structurally.
func TestParse_ReductionAndCollapse(t *testing.T) {
	d, err := parser.Parse(`#pragma omp parallel for reduction(+:sum,total) collapse(2)`, lang.C)
	require.NoError(t, err)
	assert.Equal(t, "parallel for", d.Kind().Name())

	clauses := d.Clauses()
	require.Len(t, clauses, 2)
	assert.Equal(t, ir.Reduction{Operator: ir.ReductionAdd, OperatorName: "+", Vars: []string{"sum", "total"}}, clauses[0].Structured)
	assert.Equal(t, ir.Collapse{N: 2}, clauses[1].Structured)
}

// Backslash continuation in C merges into one logical directive.
func TestParse_Continuation_C(t *testing.T) {
	input := "#pragma omp parallel for \\\n    schedule(dynamic, 4) \\\n    private(i, \\\n            j)"
	d, err := parser.Parse(input, lang.C)
	require.NoError(t, err)
	assert.Equal(t, "parallel for", d.Kind().Name())

	clauses := d.Clauses()
	require.Len(t, clauses, 2)
	assert.Equal(t, ir.Schedule{Kind: ir.ScheduleDynamic, Chunk: "4", HasChunk: true}, clauses[0].Structured)
	assert.Equal(t, ir.VarList{Vars: []string{"i", "j"}}, clauses[1].Structured)
	assert.Equal(t, `#pragma omp parallel for schedule(dynamic, 4) private(i, j)`, d.Canonical())
}

// Fortran free-form continuation with a repeated sentinel.
func TestParse_Continuation_FortranFree(t *testing.T) {
	input := "!$omp target teams distribute &\n!$omp parallel do &\n!$omp& private(i, j)"
	d, err := parser.Parse(input, lang.FortranFree)
	require.NoError(t, err)
	assert.Equal(t, "target teams distribute parallel for", d.Kind().Name())

	clauses := d.Clauses()
	require.Len(t, clauses, 1)
	assert.Equal(t, "private", clauses[0].Kind.Name())
	assert.Equal(t, ir.VarList{Vars: []string{"i", "j"}}, clauses[0].Structured)
}

// A clause that requires parentheses is rejected without them.
func TestParse_ClauseShapeMismatch(t *testing.T) {
	_, err := parser.Parse(`#pragma omp parallel num_threads`, lang.C)
	require.Error(t, err)
	assert.True(t, ir.Is(err, ir.ClauseShapeMismatch))
}

// An unrecognized directive keyword is rejected.
func TestParse_UnknownDirective(t *testing.T) {
	_, err := parser.Parse(`#pragma omp INVALID_DIRECTIVE`, lang.C)
	require.Error(t, err)
	assert.True(t, ir.Is(err, ir.UnknownDirective))
}

func TestParse_UnknownClause(t *testing.T) {
	_, err := parser.Parse(`#pragma omp parallel not_a_clause(1)`, lang.C)
	require.Error(t, err)
	assert.True(t, ir.Is(err, ir.UnknownClause))
}

func TestParse_UnbalancedParentheses(t *testing.T) {
	_, err := parser.Parse(`#pragma omp parallel for private(i, j`, lang.C)
	require.Error(t, err)
	assert.True(t, ir.Is(err, ir.UnbalancedParentheses))
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := parser.Parse("", lang.C)
	require.Error(t, err)
	assert.True(t, ir.Is(err, ir.EmptyInput))
}

func TestParse_NotADirective(t *testing.T) {
	_, err := parser.Parse("int x = 1;", lang.C)
	require.Error(t, err)
	assert.True(t, ir.Is(err, ir.NotADirective))
}

// Keyword closure: every registered directive
// spelling parses, in both a C and a Fortran sentinel, to a bare Directive
// of that kind with no clauses.
func TestParse_KeywordClosure(t *testing.T) {
	for _, kind := range ir.AllDirectiveKinds() {
		name := kind.Name()

		d, err := parser.Parse("#pragma omp "+name, lang.C)
		require.NoErrorf(t, err, "C: %s", name)
		assert.Equal(t, kind, d.Kind())
		assert.Empty(t, d.Clauses())

		words := kind.Words()
		fortranWords := make([]string, len(words))
		for i, w := range words {
			if w == "for" {
				w = "do"
			}
			fortranWords[i] = w
		}
		fortranSpelling := joinWords(fortranWords)
		fd, err := parser.Parse("!$omp "+fortranSpelling, lang.FortranFree)
		require.NoErrorf(t, err, "Fortran: %s", fortranSpelling)
		assert.Equal(t, kind, fd.Kind())
	}
}

func joinWords(words []string) string {
	out := words[0]
	for _, w := range words[1:] {
		out += " " + w
	}
	return out
}

// Canonical round-trip is a fixed point.
func TestParse_CanonicalRoundTrip(t *testing.T) {
	inputs := []string{
		`#pragma omp parallel`,
		`#pragma omp parallel for num_threads(4) private(i, j) schedule(static, 100)`,
		`#pragma omp parallel for reduction(+:sum,total) collapse(2)`,
		`#pragma omp target teams distribute parallel for simd map(to: a, b) map(from: c)`,
		`#pragma omp critical`,
		`#pragma omp atomic update`,
	}
	for _, in := range inputs {
		d1, err := parser.Parse(in, lang.C)
		require.NoError(t, err)
		rendered := d1.Canonical()
		d2, err := parser.Parse(rendered, lang.C)
		require.NoError(t, err)
		assert.True(t, d1.Equal(d2), "round-trip mismatch for %q -> %q", in, rendered)
		assert.Equal(t, rendered, d2.Canonical())
	}
}

// Clauses are reported in the exact order they appear in the input.
func TestParse_ClauseOrderPreservation(t *testing.T) {
	d, err := parser.Parse(`#pragma omp parallel for schedule(static) nowait collapse(1) private(i)`, lang.C)
	require.NoError(t, err)
	var names []string
	for _, c := range d.Clauses() {
		names = append(names, c.Kind.Name())
	}
	assert.Equal(t, []string{"schedule", "nowait", "collapse", "private"}, names)
}

// Every registered clause accepts exactly the argument forms its Rule permits.
func TestParse_RuleConsistency(t *testing.T) {
	for _, kind := range ir.AllClauseKinds() {
		name := kind.Name()
		rule := kind.ClauseRule()

		bareInput := fmt.Sprintf("#pragma omp parallel %s", name)
		_, bareErr := parser.Parse(bareInput, lang.C)

		emptyParenInput := fmt.Sprintf("#pragma omp parallel %s()", name)
		_, emptyParenErr := parser.Parse(emptyParenInput, lang.C)

		argInput := fmt.Sprintf("#pragma omp parallel %s(x)", name)
		_, argErr := parser.Parse(argInput, lang.C)

		switch rule {
		case ir.Bare:
			assert.NoErrorf(t, bareErr, "%s: bare form should be accepted", name)
			assert.Truef(t, ir.Is(emptyParenErr, ir.ClauseShapeMismatch), "%s: empty-paren form should be rejected", name)
			assert.Truef(t, ir.Is(argErr, ir.ClauseShapeMismatch), "%s: paren form should be rejected", name)
		case ir.Parenthesized:
			assert.Truef(t, ir.Is(bareErr, ir.ClauseShapeMismatch), "%s: bare form should be rejected", name)
			assert.NoErrorf(t, emptyParenErr, "%s: empty-paren form should be accepted", name)
			assert.NoErrorf(t, argErr, "%s: paren form should be accepted", name)
		case ir.Flexible:
			assert.NoErrorf(t, bareErr, "%s: bare form should be accepted", name)
			assert.NoErrorf(t, emptyParenErr, "%s: empty-paren form should be accepted", name)
			assert.NoErrorf(t, argErr, "%s: paren form should be accepted", name)
		}
	}
}

// An argument list whose nested parentheses are left unclosed is rejected
// with UnbalancedParentheses.
func TestParse_BalancedParenRejection(t *testing.T) {
	_, err := parser.Parse(`#pragma omp parallel for schedule(static, (4)`, lang.C)
	require.Error(t, err)
	assert.True(t, ir.Is(err, ir.UnbalancedParentheses))
}

// Unregistered directive and clause keywords are rejected, never tolerated.
func TestParse_StrictUnknowns(t *testing.T) {
	_, err := parser.Parse(`#pragma omp wobble`, lang.C)
	require.Error(t, err)
	assert.True(t, ir.Is(err, ir.UnknownDirective))

	_, err = parser.Parse(`#pragma omp parallel wobble(1)`, lang.C)
	require.Error(t, err)
	assert.True(t, ir.Is(err, ir.UnknownClause))
}
