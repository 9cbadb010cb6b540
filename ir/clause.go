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
)

// ReductionOperator enumerates the operators a reduction clause may name.
type ReductionOperator int

const (
	ReductionAdd ReductionOperator = iota
	ReductionSub
	ReductionMul
	ReductionBitAnd
	ReductionBitOr
	ReductionBitXor
	ReductionLogAnd
	ReductionLogOr
	ReductionMin
	ReductionMax
	ReductionCustom
)

var reductionOperatorNames = map[string]ReductionOperator{
	"+": ReductionAdd, "-": ReductionSub, "*": ReductionMul,
	"&": ReductionBitAnd, "|": ReductionBitOr, "^": ReductionBitXor,
	"&&": ReductionLogAnd, "||": ReductionLogOr,
	"min": ReductionMin, "max": ReductionMax,
}

func (op ReductionOperator) String() string {
	for name, o := range reductionOperatorNames {
		if o == op {
			return name
		}
	}
	return "custom"
}

// ScheduleKind enumerates the loop-schedule kinds a schedule clause may name.
type ScheduleKind int

const (
	ScheduleStatic ScheduleKind = iota
	ScheduleDynamic
	ScheduleGuided
	ScheduleAuto
	ScheduleRuntime
)

var scheduleKindNames = map[string]ScheduleKind{
	"static": ScheduleStatic, "dynamic": ScheduleDynamic,
	"guided": ScheduleGuided, "auto": ScheduleAuto, "runtime": ScheduleRuntime,
}

func (k ScheduleKind) String() string {
	for name, sk := range scheduleKindNames {
		if sk == k {
			return name
		}
	}
	return "?"
}

// DefaultKind enumerates the data-sharing attributes a default clause may name.
type DefaultKind int

const (
	DefaultShared DefaultKind = iota
	DefaultNone
	DefaultPrivate
	DefaultFirstprivate
)

var defaultKindNames = map[string]DefaultKind{
	"shared": DefaultShared, "none": DefaultNone,
	"private": DefaultPrivate, "firstprivate": DefaultFirstprivate,
}

func (k DefaultKind) String() string {
	for name, dk := range defaultKindNames {
		if dk == k {
			return name
		}
	}
	return "?"
}

type (
	// NumThreads is the structured payload of a num_threads(<expr>) clause.
	NumThreads struct{ Expr string }
	// If is the structured payload of an if(<condition>) clause.
	If struct{ Condition string }
	// VarList is the structured payload shared by private/shared/firstprivate/lastprivate.
	VarList struct{ Vars []string }
	// Reduction is the structured payload of a reduction([mod:]op: vars) clause.
	Reduction struct {
		Operator     ReductionOperator
		OperatorName string // raw operator spelling; for ReductionCustom this is the identifier
		Vars         []string
	}
	// Schedule is the structured payload of a schedule(kind[, chunk]) clause.
	Schedule struct {
		Kind     ScheduleKind
		Chunk    string // empty if no chunk size was given
		HasChunk bool
	}
	// Collapse is the structured payload of a collapse(n) clause.
	Collapse struct{ N int }
	// Ordered is the structured payload of the Flexible ordered clause.
	Ordered struct {
		HasN bool
		N    int
	}
	// Nowait is the (data-free) structured payload marking a bare nowait clause.
	Nowait struct{}
	// Default is the structured payload of a default(kind) clause.
	Default struct{ Kind DefaultKind }
)

// Clause is a single parsed OpenMP clause: a keyword, its argument-presence
// Rule, the raw argument text as written, and — for the small enumerated
// subset of clauses this package interprets structurally — a typed payload.
type Clause struct {
	Kind ClauseKind
	// Rule mirrors Kind.ClauseRule() at parse time; text carrying an
	// unregistered keyword fails the whole parse and never reaches this
	// type, so Rule is always consistent with Kind.
	Rule Rule
	// RawArgument is the trimmed, verbatim text between the clause's
	// parentheses, or "" for a Bare clause or a bare-form Flexible clause.
	RawArgument string
	// HasParens records whether "(...)" was present in the source,
	// independent of whether RawArgument is empty (e.g. "private()" is
	// syntactically distinct from "nowait", even though both have "").
	HasParens bool
	// Structured holds one of NumThreads, If, VarList, Reduction, Schedule,
	// Collapse, Ordered, Nowait, Default, or nil if Kind has no structured
	// interpretation or the secondary parse of RawArgument failed.
	Structured any
}

// NewClause builds a Clause for kind from its raw argument text, attempting
// the clause's structured secondary parse when kind is one of the
// enumerated structured clauses. A failed structured parse is not an error
// here: the clause is retained with Structured == nil and RawArgument
// intact, and the raw rendering path is unaffected. Use the package-level
// ParseXxx helpers directly for a strict parse that surfaces the failure.
func NewClause(kind ClauseKind, raw string, hasParens bool) Clause {
	c := Clause{
		Kind:        kind,
		Rule:        kind.ClauseRule(),
		RawArgument: strings.TrimSpace(raw),
		HasParens:   hasParens,
	}
	c.Structured = parseStructured(kind, c.RawArgument)
	return c
}

func parseStructured(kind ClauseKind, raw string) any {
	switch kind.Structured() {
	case StructuredNumThreads:
		return NumThreads{Expr: raw}
	case StructuredIf:
		return If{Condition: raw}
	case StructuredPrivate, StructuredShared, StructuredFirstprivate, StructuredLastprivate:
		return VarList{Vars: splitTopLevelCommas(raw)}
	case StructuredReduction:
		if v, err := ParseReduction(raw); err == nil {
			return v
		}
	case StructuredSchedule:
		if v, err := ParseSchedule(raw); err == nil {
			return v
		}
	case StructuredCollapse:
		if v, err := ParseCollapse(raw); err == nil {
			return v
		}
	case StructuredOrdered:
		if v, err := ParseOrdered(raw); err == nil {
			return v
		}
	case StructuredNowait:
		return Nowait{}
	case StructuredDefault:
		if v, err := ParseDefault(raw); err == nil {
			return v
		}
	}
	return nil
}

// splitTopLevelCommas splits s on commas that are not nested inside
// parentheses or brackets, trimming whitespace from each resulting token.
// Used for private/shared/firstprivate/lastprivate/reduction variable lists,
// whose elements may themselves contain array-section syntax like "a[0:n]".
func splitTopLevelCommas(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var (
		out   []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	out = append(out, strings.TrimSpace(s[start:]))
	return out
}

// ParseReduction parses the argument text of a reduction clause:
// "[modifier,]operator: var, var, ...". The optional modifier may also be
// written "modifier: operator: ..." when it is one of "task", "inscan" or
// "default". It is accepted but not separately retained; it is not part of
// the structured payload this package exposes.
func ParseReduction(raw string) (Reduction, error) {
	colon := strings.IndexByte(raw, ':')
	if colon < 0 {
		return Reduction{}, NewError(InvalidEnumValue, "reduction clause missing ':' separating operator from variable list", 0, raw)
	}
	opPart := strings.TrimSpace(raw[:colon])
	varsPart := raw[colon+1:]

	// Strip an optional "modifier," or "modifier:" prefix from the operator.
	if comma := strings.LastIndexByte(opPart, ','); comma >= 0 {
		opPart = strings.TrimSpace(opPart[comma+1:])
	} else if opPart == "task" || opPart == "inscan" || opPart == "default" {
		if next := strings.IndexByte(varsPart, ':'); next >= 0 {
			opPart = strings.TrimSpace(varsPart[:next])
			varsPart = varsPart[next+1:]
		}
	}

	vars := splitTopLevelCommas(varsPart)
	if len(vars) == 0 {
		return Reduction{}, NewError(InvalidEnumValue, "reduction clause has no variables", 0, raw)
	}

	if op, ok := reductionOperatorNames[opPart]; ok {
		return Reduction{Operator: op, OperatorName: opPart, Vars: vars}, nil
	}
	if isIdentifier(opPart) {
		return Reduction{Operator: ReductionCustom, OperatorName: opPart, Vars: vars}, nil
	}
	return Reduction{}, NewError(InvalidEnumValue, "unrecognized reduction operator", 0, opPart)
}

// ParseSchedule parses the argument text of a schedule clause:
// "kind[, chunk_size]".
func ParseSchedule(raw string) (Schedule, error) {
	parts := splitTopLevelCommas(raw)
	if len(parts) == 0 || parts[0] == "" {
		return Schedule{}, NewError(InvalidEnumValue, "schedule clause missing kind", 0, raw)
	}
	kindText := parts[0]
	// A "modifier:kind" form (e.g. "monotonic:dynamic") keeps only the kind.
	if colon := strings.LastIndexByte(kindText, ':'); colon >= 0 {
		kindText = strings.TrimSpace(kindText[colon+1:])
	}
	kind, ok := scheduleKindNames[kindText]
	if !ok {
		return Schedule{}, NewError(InvalidEnumValue, "unrecognized schedule kind", 0, kindText)
	}
	s := Schedule{Kind: kind}
	if len(parts) > 1 {
		s.Chunk = strings.TrimSpace(strings.Join(parts[1:], ","))
		s.HasChunk = true
	}
	return s, nil
}

// ParseCollapse parses the argument text of a collapse clause: a single
// non-negative integer literal.
func ParseCollapse(raw string) (Collapse, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return Collapse{}, NewError(InvalidInteger, "collapse argument is not a non-negative integer", 0, raw)
	}
	return Collapse{N: n}, nil
}

// ParseOrdered parses the argument text of the Flexible ordered clause: an
// empty string (bare clause) or a single non-negative integer literal.
func ParseOrdered(raw string) (Ordered, error) {
	if strings.TrimSpace(raw) == "" {
		return Ordered{}, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return Ordered{}, NewError(InvalidInteger, "ordered argument is not a non-negative integer", 0, raw)
	}
	return Ordered{HasN: true, N: n}, nil
}

// ParseDefault parses the argument text of a default clause: one of
// shared, none, private, firstprivate.
func ParseDefault(raw string) (Default, error) {
	kind, ok := defaultKindNames[strings.TrimSpace(raw)]
	if !ok {
		return Default{}, NewError(InvalidEnumValue, "unrecognized default data-sharing kind", 0, raw)
	}
	return Default{Kind: kind}, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
