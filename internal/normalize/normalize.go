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

// Package normalize collapses a directive spanning one or more physical
// source lines into a single logical line, before tokenization. Line
// continuation is the only concern here: keyword and clause structure is
// left entirely to the lexer and parser.
package normalize

import (
	"regexp"
	"strings"

	"github.com/omplang/ompdir/internal/cursor"
	"github.com/omplang/ompdir/ir"
	"github.com/omplang/ompdir/lang"
)

var (
	reSentinelC            = regexp.MustCompile(`(?i)#\s*pragma\s+omp\b`)
	reSentinelFortranFree  = regexp.MustCompile(`(?i)!\$omp\b`)
	reSentinelFortranFixed = regexp.MustCompile(`(?i)^[*cC!]\$omp\b`)

	reLineCommentC  = regexp.MustCompile(`//.*`)
	reBlockCommentC = regexp.MustCompile(`/\*.*?\*/`)

	reFortranTrailingBang   = regexp.MustCompile(`!.*`)
	reFortranContinueSuffix = regexp.MustCompile(`&[ \t]*$`)
	reFortranLeadingAmp     = regexp.MustCompile(`^[ \t]*&`)
)

// Normalize finds the first occurrence of language's sentinel in input,
// merges any continued physical lines into one, and returns the merged
// directive text (sentinel through its last clause) together with the
// source position of the sentinel. If no sentinel is present, it fails with
// ir.NotADirective.
func Normalize(input string, language lang.Language) (string, cursor.Position, error) {
	if language.IsFortran() {
		return normalizeFortran(input, language)
	}
	return normalizeC(input)
}

func normalizeC(input string) (string, cursor.Position, error) {
	idx := reSentinelC.FindStringIndex(input)
	if idx == nil {
		return "", cursor.Position{}, ir.NewError(ir.NotADirective, "no #pragma omp sentinel found", 0, "")
	}
	loc := cursor.Init.AdvancedBy(input[:idx[0]])
	rest := input[idx[0]:]
	lines := strings.Split(rest, "\n")

	var b strings.Builder
	for i, raw := range lines {
		line := stripCComments(raw)
		if i > 0 {
			line = strings.TrimLeft(line, " \t")
		}
		trimmed := strings.TrimRight(line, " \t\r")
		if strings.HasSuffix(trimmed, `\`) {
			content := strings.TrimRight(strings.TrimSuffix(trimmed, `\`), " \t")
			writeJoined(&b, content)
			if i == len(lines)-1 {
				return "", cursor.Position{}, ir.NewError(ir.UnterminatedContinuation, "line continuation at end of input", idx[0], "")
			}
			continue
		}
		writeJoined(&b, trimmed)
		break
	}
	return strings.TrimSpace(b.String()), loc, nil
}

func stripCComments(line string) string {
	line = reBlockCommentC.ReplaceAllString(line, " ")
	line = reLineCommentC.ReplaceAllString(line, "")
	return line
}

func normalizeFortran(input string, language lang.Language) (string, cursor.Position, error) {
	sentinelRe := reSentinelFortranFree
	if language == lang.FortranFixed {
		sentinelRe = reSentinelFortranFixed
	}

	idx := locateFortranSentinel(input, sentinelRe, language)
	if idx == nil {
		return "", cursor.Position{}, ir.NewError(ir.NotADirective, "no sentinel found", 0, "")
	}
	loc := cursor.Init.AdvancedBy(input[:idx[0]])
	rest := input[idx[0]:]
	sentinelLen := idx[1] - idx[0]
	lines := strings.Split(rest, "\n")

	var b strings.Builder
	for i, raw := range lines {
		line := raw
		var prefix string
		if i == 0 {
			prefix, line = line[:sentinelLen], line[sentinelLen:]
		} else {
			line = stripFortranContinuationPrefix(line, sentinelRe)
		}
		line = reFortranTrailingBang.ReplaceAllString(line, "")
		trimmed := strings.TrimRight(line, " \t\r")
		if reFortranContinueSuffix.MatchString(trimmed) {
			content := strings.TrimRight(reFortranContinueSuffix.ReplaceAllString(trimmed, ""), " \t")
			writeJoined(&b, prefix+content)
			if i == len(lines)-1 {
				return "", cursor.Position{}, ir.NewError(ir.UnterminatedContinuation, "line continuation at end of input", idx[0], "")
			}
			continue
		}
		writeJoined(&b, prefix+trimmed)
		break
	}
	return strings.TrimSpace(b.String()), loc, nil
}

// locateFortranSentinel finds the sentinel's byte offset in input. Free-form
// sentinels may appear anywhere; fixed-form sentinels are column-anchored,
// so each physical line is matched independently at its own start.
func locateFortranSentinel(input string, sentinelRe *regexp.Regexp, language lang.Language) []int {
	if language != lang.FortranFixed {
		return sentinelRe.FindStringIndex(input)
	}
	offset := 0
	for _, line := range strings.SplitAfter(input, "\n") {
		if m := sentinelRe.FindStringIndex(line); m != nil {
			return []int{offset + m[0], offset + m[1]}
		}
		offset += len(line)
	}
	return nil
}

// stripFortranContinuationPrefix removes a repeated sentinel or a bare
// leading '&' from a Fortran continuation line; a continuation line may
// start with the sentinel repeated or with a bare '&'.
func stripFortranContinuationPrefix(line string, sentinelRe *regexp.Regexp) string {
	if m := sentinelRe.FindStringIndex(line); m != nil && strings.TrimSpace(line[:m[0]]) == "" {
		line = line[m[1]:]
	}
	line = reFortranLeadingAmp.ReplaceAllString(line, "")
	return strings.TrimLeft(line, " \t")
}

func writeJoined(b *strings.Builder, s string) {
	if b.Len() > 0 && s != "" {
		b.WriteByte(' ')
	}
	b.WriteString(s)
}
