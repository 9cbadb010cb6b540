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

package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omplang/ompdir/internal/cursor"
	"github.com/omplang/ompdir/ir"
	"github.com/omplang/ompdir/lang"
)

func mustClause(t *testing.T, name, raw string, hasParens bool) ir.Clause {
	t.Helper()
	kind, ok := ir.ClauseKindByName(name)
	require.True(t, ok)
	return ir.NewClause(kind, raw, hasParens)
}

// Redaction replaces expressions/variables/identifiers with
// placeholders but keeps directive and enumerated clause-value keywords.
func TestPlain_Redaction(t *testing.T) {
	kind, ok := ir.DirectiveKindByName("parallel for")
	require.True(t, ok)

	clauses := []ir.Clause{
		mustClause(t, "if", "n > 10", true),
		mustClause(t, "schedule", "dynamic, chunk", true),
		mustClause(t, "reduction", "+: sum", true),
	}
	d := ir.NewDirective(kind, clauses, cursor.Init, lang.C)

	assert.Equal(t, `#pragma omp parallel for if(<expr>) schedule(dynamic, <expr>) reduction(+: <identifier>)`, d.Plain())
}

func TestPlain_IsDeterministic(t *testing.T) {
	kind, _ := ir.DirectiveKindByName("parallel")
	clauses := []ir.Clause{mustClause(t, "private", "i, j, k", true)}
	d1 := ir.NewDirective(kind, clauses, cursor.Init, lang.C)
	d2 := ir.NewDirective(kind, clauses, cursor.Position{Line: 99}, lang.FortranFree)

	assert.NotEqual(t, d1.Plain(), d2.Plain(), "language tag still changes the sentinel/loop keyword in the rendered text")
	d2.SetLanguage(lang.C)
	assert.Equal(t, d1.Plain(), d2.Plain())
}

func TestPlain_BareAndFlexibleClauses(t *testing.T) {
	kind, _ := ir.DirectiveKindByName("parallel for")
	clauses := []ir.Clause{
		mustClause(t, "nowait", "", false),
		mustClause(t, "ordered", "", false),
		mustClause(t, "ordered", "2", true),
	}
	d := ir.NewDirective(kind, clauses, cursor.Init, lang.C)
	assert.Equal(t, `#pragma omp parallel for nowait ordered ordered(2)`, d.Plain())
}

func TestPlain_UnstructuredClauseIsData(t *testing.T) {
	kind, _ := ir.DirectiveKindByName("target")
	clauses := []ir.Clause{mustClause(t, "map", "to: a, b", true)}
	d := ir.NewDirective(kind, clauses, cursor.Init, lang.C)
	assert.Equal(t, `#pragma omp target map(<data>)`, d.Plain())
}

func TestRenderAs_DoesNotMutateDirective(t *testing.T) {
	kind, _ := ir.DirectiveKindByName("parallel for")
	d := ir.NewDirective(kind, nil, cursor.Init, lang.C)

	out := ir.RenderAs(d, lang.FortranFree)
	assert.Equal(t, `!$omp parallel do`, out)
	assert.Equal(t, lang.C, d.Language(), "RenderAs must not mutate the receiver's language tag")
	assert.Equal(t, `#pragma omp parallel for`, d.Canonical())
}

func TestCanonical_LoopKeywordSubstitutedEverywhere(t *testing.T) {
	kind, ok := ir.DirectiveKindByName("distribute parallel for simd")
	require.True(t, ok)
	d := ir.NewDirective(kind, nil, cursor.Init, lang.FortranFree)
	assert.Equal(t, `!$omp distribute parallel do simd`, d.Canonical())
}
