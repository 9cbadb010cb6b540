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

package translate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omplang/ompdir/ir"
	"github.com/omplang/ompdir/lang"
	"github.com/omplang/ompdir/parser"
	"github.com/omplang/ompdir/translate"
)

// Translating C to Fortran free-form swaps the sentinel and loop keyword.
func TestConvert_CToFortranFree(t *testing.T) {
	out, err := translate.Convert(`#pragma omp parallel for schedule(dynamic, 4)`, lang.C, lang.FortranFree)
	require.NoError(t, err)
	assert.Equal(t, `!$omp parallel do schedule(dynamic, 4)`, out)
}

func TestConvert_FortranToC(t *testing.T) {
	out, err := translate.Convert(`!$omp target teams distribute parallel do simd collapse(2)`, lang.FortranFree, lang.C)
	require.NoError(t, err)
	assert.Equal(t, `#pragma omp target teams distribute parallel for simd collapse(2)`, out)
}

func TestConvert_PropagatesParseErrors(t *testing.T) {
	_, err := translate.Convert(`#pragma omp bogus`, lang.C, lang.FortranFree)
	require.Error(t, err)
	assert.True(t, ir.Is(err, ir.UnknownDirective))
}

// Translating to another dialect and back preserves kind and clause shape.
func TestRoundTrip_InvolutionOnShape(t *testing.T) {
	inputs := []string{
		`#pragma omp parallel`,
		`#pragma omp parallel for num_threads(4) private(i, j) schedule(static, 100)`,
		`#pragma omp target teams distribute parallel for simd map(to: a) map(from: b)`,
		`#pragma omp for simd reduction(max: best) nowait`,
	}
	for _, in := range inputs {
		original, err := parser.Parse(in, lang.C)
		require.NoError(t, err)

		roundTripped, err := translate.RoundTrip(in, lang.C, lang.FortranFree)
		require.NoError(t, err)

		assert.Equal(t, original.Kind(), roundTripped.Kind())
		require.Len(t, roundTripped.Clauses(), len(original.Clauses()))
		for i, c := range original.Clauses() {
			other := roundTripped.Clauses()[i]
			assert.Equal(t, c.Kind, other.Kind, "clause %d kind", i)
			assert.Equal(t, c.RawArgument, other.RawArgument, "clause %d raw argument", i)
		}
	}
}

func TestRoundTrip_FortranStart(t *testing.T) {
	in := `!$omp parallel do private(i) schedule(guided, 2)`
	d, err := translate.RoundTrip(in, lang.FortranFree, lang.C)
	require.NoError(t, err)
	assert.Equal(t, "parallel for", d.Kind().Name())
	assert.Equal(t, lang.FortranFree, d.Language())
}
