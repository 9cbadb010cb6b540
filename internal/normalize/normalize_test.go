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

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omplang/ompdir/internal/normalize"
	"github.com/omplang/ompdir/ir"
	"github.com/omplang/ompdir/lang"
)

func TestNormalize_C_SingleLine(t *testing.T) {
	text, loc, err := normalize.Normalize(`#pragma omp parallel for private(i)`, lang.C)
	require.NoError(t, err)
	assert.Equal(t, `#pragma omp parallel for private(i)`, text)
	assert.Equal(t, 1, loc.Line)
	assert.Equal(t, 1, loc.Column)
}

func TestNormalize_C_Continuation(t *testing.T) {
	input := "#pragma omp parallel for \\\n    private(i) /* interior */ \\\n    shared(a)\ncode();"
	text, _, err := normalize.Normalize(input, lang.C)
	require.NoError(t, err)
	assert.Equal(t, `#pragma omp parallel for private(i) shared(a)`, text)
}

func TestNormalize_C_BlockCommentStripped(t *testing.T) {
	input := "#pragma omp parallel /* nthreads */ num_threads(4)"
	text, _, err := normalize.Normalize(input, lang.C)
	require.NoError(t, err)
	assert.Equal(t, `#pragma omp parallel   num_threads(4)`, text)
}

func TestNormalize_C_UnterminatedContinuation(t *testing.T) {
	input := "#pragma omp parallel \\"
	_, _, err := normalize.Normalize(input, lang.C)
	require.Error(t, err)
	assert.True(t, ir.Is(err, ir.UnterminatedContinuation))
}

func TestNormalize_C_NotADirective(t *testing.T) {
	_, _, err := normalize.Normalize("int x = 1;", lang.C)
	require.Error(t, err)
	assert.True(t, ir.Is(err, ir.NotADirective))
}

func TestNormalize_FortranFree_Continuation(t *testing.T) {
	input := "!$omp parallel do &\n!$omp& private(i)\nprint *, i"
	text, _, err := normalize.Normalize(input, lang.FortranFree)
	require.NoError(t, err)
	assert.Equal(t, `!$omp parallel do private(i)`, text)
}

func TestNormalize_FortranFree_BareAmpContinuation(t *testing.T) {
	input := "!$omp parallel do &\n     & private(i)\nprint *, i"
	text, _, err := normalize.Normalize(input, lang.FortranFree)
	require.NoError(t, err)
	assert.Equal(t, `!$omp parallel do private(i)`, text)
}

func TestNormalize_FortranFixed_ColumnSentinel(t *testing.T) {
	input := "c$omp parallel do &\nc$omp&    shared(a)\n      print *, i"
	text, _, err := normalize.Normalize(input, lang.FortranFixed)
	require.NoError(t, err)
	assert.Equal(t, `c$omp parallel do shared(a)`, text)
}
