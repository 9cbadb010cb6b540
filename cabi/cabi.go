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

// Package cabi is the stable, integer-valued C ABI over the parser and IR:
// lifecycle (parse/free), directive queries, clause iteration, and a small
// set of typed clause accessors over opaque pointers.
//
// The package is split in two layers: this file holds the whole behavior on
// plain Go types (handles, int32 discriminants, Go strings) so it can be
// unit-tested without cgo, and abi.go wraps each function in a cgo //export
// shim that only does C-string conversion. Opaque pointers are
// runtime/cgo.Handle values disguised as unsafe.Pointer: the handle is the
// idiomatic way to hand a C caller a stable reference to a Go value without
// pinning or manually bookkeeping a side table.
//
// Every function treats a NULL input pointer as "absent" and returns
// -1/NULL rather than dereferencing it; none of them ever aborts the
// process.
package cabi

import (
	"runtime/cgo"
	"strings"
	"unicode/utf8"
	"unsafe"

	"github.com/omplang/ompdir/ir"
	"github.com/omplang/ompdir/lang"
	"github.com/omplang/ompdir/parser"
	"github.com/omplang/ompdir/translate"
)

// directiveState is the Go-side value behind a Directive* handle. A
// directive exclusively owns its clauses, so it also owns the clause
// handles handed out by iterators: freeing the directive releases every
// clause handle that was ever exposed for it, and clause_free is only
// needed by callers who want to drop a clause reference early.
type directiveState struct {
	d *ir.Directive
	// clauseHandles[i] is the handle handed out for clause i, or 0 if that
	// clause was never reached by an iterator (or was freed early).
	clauseHandles []cgo.Handle
}

// clauseState is the Go-side value behind a Clause* handle, carrying a back
// reference to its owning directive so an early clause_free can clear the
// owner's bookkeeping slot.
type clauseState struct {
	c     *ir.Clause
	owner *directiveState
	idx   int
}

// clauseIterState is the Go-side value behind a ClauseIterator* handle: a
// cursor over the owning directive's clauses, bound to the lifetime of the
// parent Directive.
type clauseIterState struct {
	owner *directiveState
	next  int
}

// stringListState is the Go-side value behind a StringList* handle: a
// fresh owned copy of a variable list with its own lifetime, independent
// of the Clause/Directive it was read from. cstrings caches the C copies
// the cgo layer allocates on demand so they can be released together with
// the list.
type stringListState struct {
	items    []string
	cstrings []unsafe.Pointer
}

func handleToPointer(h cgo.Handle) unsafe.Pointer {
	return unsafe.Pointer(uintptr(h))
}

func pointerToHandle(p unsafe.Pointer) (cgo.Handle, bool) {
	if p == nil {
		return 0, false
	}
	return cgo.Handle(uintptr(p)), true
}

// detectLanguage infers the source dialect from the directive's sentinel
// spelling, since omp_parse (unlike the native parser.Parse) takes no
// explicit language argument. Column-anchored fixed-form sentinels are
// checked first because they are the most specific spelling; a bare
// "!$omp" defaults to free-form, since fixed-form column placement is not
// strictly enforced here.
func detectLanguage(input string) lang.Language {
	trimmed := strings.TrimLeft(input, " \t")
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "c$omp"), strings.HasPrefix(lower, "*$omp"):
		return lang.FortranFixed
	case strings.Contains(lower, "!$omp"):
		return lang.FortranFree
	default:
		return lang.C
	}
}

func parseDirective(input string) unsafe.Pointer {
	if !utf8.ValidString(input) {
		return nil
	}
	d, err := parser.Parse(input, detectLanguage(input))
	if err != nil {
		return nil
	}
	state := &directiveState{
		d:             d,
		clauseHandles: make([]cgo.Handle, len(d.Clauses())),
	}
	return handleToPointer(cgo.NewHandle(state))
}

func freeDirective(p unsafe.Pointer) {
	h, ok := pointerToHandle(p)
	if !ok {
		return
	}
	if state, ok := h.Value().(*directiveState); ok {
		for i, ch := range state.clauseHandles {
			if ch != 0 {
				ch.Delete()
				state.clauseHandles[i] = 0
			}
		}
	}
	h.Delete()
}

func directiveKind(p unsafe.Pointer) int32 {
	state, ok := lookupDirective(p)
	if !ok {
		return -1
	}
	return int32(state.d.Kind())
}

func directiveClauseCount(p unsafe.Pointer) int32 {
	state, ok := lookupDirective(p)
	if !ok {
		return -1
	}
	return int32(len(state.d.Clauses()))
}

func directiveClausesIter(p unsafe.Pointer) unsafe.Pointer {
	state, ok := lookupDirective(p)
	if !ok {
		return nil
	}
	return handleToPointer(cgo.NewHandle(&clauseIterState{owner: state}))
}

// clauseIteratorNext returns the next Clause* in source order and true, or
// nil and false once the iterator is exhausted. Clause handles are created
// lazily and recorded on the owning directive, so repeated iteration hands
// out the same Clause* for the same clause and directive_free releases them
// all.
func clauseIteratorNext(it unsafe.Pointer) (unsafe.Pointer, bool) {
	h, ok := pointerToHandle(it)
	if !ok {
		return nil, false
	}
	state, ok := h.Value().(*clauseIterState)
	if !ok {
		return nil, false
	}
	clauses := state.owner.d.Clauses()
	if state.next >= len(clauses) {
		return nil, false
	}
	i := state.next
	state.next++
	if state.owner.clauseHandles[i] == 0 {
		state.owner.clauseHandles[i] = cgo.NewHandle(&clauseState{
			c:     &clauses[i],
			owner: state.owner,
			idx:   i,
		})
	}
	return handleToPointer(state.owner.clauseHandles[i]), true
}

func freeClauseIterator(p unsafe.Pointer) {
	h, ok := pointerToHandle(p)
	if !ok {
		return
	}
	h.Delete()
}

// freeClause releases a single Clause* ahead of its owning directive.
// Rarely needed: directive_free releases every clause handle anyway.
func freeClause(p unsafe.Pointer) {
	h, ok := pointerToHandle(p)
	if !ok {
		return
	}
	if cs, ok := h.Value().(*clauseState); ok {
		cs.owner.clauseHandles[cs.idx] = 0
	}
	h.Delete()
}

func clauseKind(p unsafe.Pointer) int32 {
	c, ok := lookupClause(p)
	if !ok {
		return -1
	}
	return int32(c.Kind)
}

func clauseScheduleKind(p unsafe.Pointer) int32 {
	c, ok := lookupClause(p)
	if !ok {
		return -1
	}
	s, ok := c.Structured.(ir.Schedule)
	if !ok {
		return -1
	}
	return int32(s.Kind)
}

func clauseReductionOperator(p unsafe.Pointer) int32 {
	c, ok := lookupClause(p)
	if !ok {
		return -1
	}
	r, ok := c.Structured.(ir.Reduction)
	if !ok {
		return -1
	}
	return int32(r.Operator)
}

func clauseDefaultDataSharing(p unsafe.Pointer) int32 {
	c, ok := lookupClause(p)
	if !ok {
		return -1
	}
	d, ok := c.Structured.(ir.Default)
	if !ok {
		return -1
	}
	return int32(d.Kind)
}

func clauseVariables(p unsafe.Pointer) unsafe.Pointer {
	c, ok := lookupClause(p)
	if !ok {
		return nil
	}
	var vars []string
	switch payload := c.Structured.(type) {
	case ir.VarList:
		vars = payload.Vars
	case ir.Reduction:
		vars = payload.Vars
	default:
		return nil
	}
	state := &stringListState{
		items:    append([]string(nil), vars...),
		cstrings: make([]unsafe.Pointer, len(vars)),
	}
	return handleToPointer(cgo.NewHandle(state))
}

func stringListLen(p unsafe.Pointer) int32 {
	s, ok := lookupStringList(p)
	if !ok {
		return -1
	}
	return int32(len(s.items))
}

func stringListItem(p unsafe.Pointer, idx int32) (string, bool) {
	s, ok := lookupStringList(p)
	if !ok || idx < 0 || int(idx) >= len(s.items) {
		return "", false
	}
	return s.items[idx], true
}

// freeStringList releases the list handle. Any C copies cached on the state
// are released by the cgo wrapper before it calls this.
func freeStringList(p unsafe.Pointer) {
	h, ok := pointerToHandle(p)
	if !ok {
		return
	}
	h.Delete()
}

// convertDirective parses input in language from and renders it in language
// to, returning false on any parse failure or out-of-range language code.
// Language codes: 0=C, 1=Cxx, 2=FortranFree, 3=FortranFixed.
func convertDirective(input string, from, to int32) (string, bool) {
	if !utf8.ValidString(input) {
		return "", false
	}
	if !validLanguageCode(from) || !validLanguageCode(to) {
		return "", false
	}
	out, err := translate.Convert(input, lang.Language(from), lang.Language(to))
	if err != nil {
		return "", false
	}
	return out, true
}

func validLanguageCode(code int32) bool {
	return code >= int32(lang.C) && code <= int32(lang.FortranFixed)
}

func lookupDirective(p unsafe.Pointer) (*directiveState, bool) {
	h, ok := pointerToHandle(p)
	if !ok {
		return nil, false
	}
	state, ok := h.Value().(*directiveState)
	return state, ok
}

func lookupClause(p unsafe.Pointer) (*ir.Clause, bool) {
	h, ok := pointerToHandle(p)
	if !ok {
		return nil, false
	}
	cs, ok := h.Value().(*clauseState)
	if !ok {
		return nil, false
	}
	return cs.c, true
}

func lookupStringList(p unsafe.Pointer) (*stringListState, bool) {
	h, ok := pointerToHandle(p)
	if !ok {
		return nil, false
	}
	s, ok := h.Value().(*stringListState)
	return s, ok
}
