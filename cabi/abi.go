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

package cabi

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import "unsafe"

// omp_parse parses a single OpenMP directive, auto-detecting its source
// dialect from the sentinel spelling, and returns an opaque Directive*
// owned by the caller until passed to omp_directive_free. Returns NULL on
// any parse failure.
//
//export omp_parse
func omp_parse(cstr *C.char) unsafe.Pointer {
	if cstr == nil {
		return nil
	}
	return parseDirective(C.GoString(cstr))
}

// omp_directive_free releases a Directive* returned by omp_parse, together
// with every Clause* that was handed out for it. NULL is accepted and is a
// no-op.
//
//export omp_directive_free
func omp_directive_free(directive unsafe.Pointer) {
	freeDirective(directive)
}

// omp_clause_free releases a single Clause* ahead of its owning directive.
// Rarely needed: clauses are owned by the directive, and omp_directive_free
// releases them all. NULL is accepted and is a no-op.
//
//export omp_clause_free
func omp_clause_free(clause unsafe.Pointer) {
	freeClause(clause)
}

// omp_directive_kind returns the stable integer discriminant of directive's
// kind, or -1 if directive is NULL.
//
//export omp_directive_kind
func omp_directive_kind(directive unsafe.Pointer) C.int32_t {
	return C.int32_t(directiveKind(directive))
}

// omp_directive_clause_count returns the number of clauses on directive, or
// -1 if directive is NULL.
//
//export omp_directive_clause_count
func omp_directive_clause_count(directive unsafe.Pointer) C.int32_t {
	return C.int32_t(directiveClauseCount(directive))
}

// omp_directive_clauses_iter returns a freshly-allocated ClauseIterator*
// over directive's clauses in source order, or NULL if directive is NULL.
// The caller must release it with omp_clause_iterator_free.
//
//export omp_directive_clauses_iter
func omp_directive_clauses_iter(directive unsafe.Pointer) unsafe.Pointer {
	return directiveClausesIter(directive)
}

// omp_clause_iterator_next advances iterator and writes the next Clause*
// into *out, returning 1 on success or 0 once the iterator is exhausted (or
// if iterator/out is NULL). The written Clause* is owned by the directive
// and released by omp_directive_free; omp_clause_free may release it early.
//
//export omp_clause_iterator_next
func omp_clause_iterator_next(iterator unsafe.Pointer, out *unsafe.Pointer) C.int32_t {
	if out == nil {
		return 0
	}
	clause, ok := clauseIteratorNext(iterator)
	if !ok {
		return 0
	}
	*out = clause
	return 1
}

// omp_clause_iterator_free releases a ClauseIterator* returned by
// omp_directive_clauses_iter. NULL is accepted and is a no-op.
//
//export omp_clause_iterator_free
func omp_clause_iterator_free(iterator unsafe.Pointer) {
	freeClauseIterator(iterator)
}

// omp_clause_kind returns the stable integer discriminant of clause's
// keyword, or -1 if clause is NULL.
//
//export omp_clause_kind
func omp_clause_kind(clause unsafe.Pointer) C.int32_t {
	return C.int32_t(clauseKind(clause))
}

// omp_clause_schedule_kind returns the small integer enumeration for a
// schedule clause's kind (static/dynamic/guided/auto/runtime), or -1 if
// clause is NULL or is not a successfully-structured schedule clause.
//
//export omp_clause_schedule_kind
func omp_clause_schedule_kind(clause unsafe.Pointer) C.int32_t {
	return C.int32_t(clauseScheduleKind(clause))
}

// omp_clause_reduction_operator returns the small integer enumeration for a
// reduction clause's operator, or -1 if clause is NULL or is not a
// successfully-structured reduction clause.
//
//export omp_clause_reduction_operator
func omp_clause_reduction_operator(clause unsafe.Pointer) C.int32_t {
	return C.int32_t(clauseReductionOperator(clause))
}

// omp_clause_default_data_sharing returns the small integer enumeration for
// a default clause's data-sharing kind, or -1 if clause is NULL or is not a
// successfully-structured default clause.
//
//export omp_clause_default_data_sharing
func omp_clause_default_data_sharing(clause unsafe.Pointer) C.int32_t {
	return C.int32_t(clauseDefaultDataSharing(clause))
}

// omp_clause_variables returns a freshly-allocated StringList* of clause's
// variable names for a data-sharing clause (private/shared/firstprivate/
// lastprivate) or the variable operand of a reduction clause, or NULL if
// clause is NULL or has no variable-list payload. The caller must release
// the result with omp_string_list_free.
//
//export omp_clause_variables
func omp_clause_variables(clause unsafe.Pointer) unsafe.Pointer {
	return clauseVariables(clause)
}

// omp_string_list_len returns the number of entries in list, or -1 if list
// is NULL.
//
//export omp_string_list_len
func omp_string_list_len(list unsafe.Pointer) C.int32_t {
	return C.int32_t(stringListLen(list))
}

// omp_string_list_get returns a NUL-terminated C string owned by list for
// the entry at idx, or NULL if list is NULL or idx is out of range. The
// returned pointer is valid for the lifetime of list and is released by
// omp_string_list_free; it must not be freed independently.
//
//export omp_string_list_get
func omp_string_list_get(list unsafe.Pointer, idx C.int32_t) *C.char {
	s, ok := lookupStringList(list)
	if !ok || idx < 0 || int(idx) >= len(s.items) {
		return nil
	}
	i := int(idx)
	if s.cstrings[i] == nil {
		s.cstrings[i] = unsafe.Pointer(C.CString(s.items[i]))
	}
	return (*C.char)(s.cstrings[i])
}

// omp_string_list_free releases a StringList* returned by
// omp_clause_variables, including every C string handed out by
// omp_string_list_get. NULL is accepted and is a no-op.
//
//export omp_string_list_free
func omp_string_list_free(list unsafe.Pointer) {
	if s, ok := lookupStringList(list); ok {
		for i, p := range s.cstrings {
			if p != nil {
				C.free(p)
				s.cstrings[i] = nil
			}
		}
	}
	freeStringList(list)
}

// omp_convert parses input in language from and returns a freshly-allocated
// string of its rendering in language to, or NULL on parse failure or an
// out-of-range language code. Ownership of the string transfers to the
// caller, who must release it with free(). Language codes: 0=C, 1=Cxx,
// 2=FortranFree, 3=FortranFixed.
//
//export omp_convert
func omp_convert(cstr *C.char, from C.int32_t, to C.int32_t) *C.char {
	if cstr == nil {
		return nil
	}
	out, ok := convertDirective(C.GoString(cstr), int32(from), int32(to))
	if !ok {
		return nil
	}
	return C.CString(out)
}
