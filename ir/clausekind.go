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

	"github.com/omplang/ompdir/internal/collections"
)

// Rule is the argument-presence discipline of a clause keyword.
type Rule int

const (
	// Bare clauses consist of the keyword alone; no argument list is permitted.
	Bare Rule = iota
	// Parenthesized clauses must be followed by a balanced "(...)" argument list.
	Parenthesized
	// Flexible clauses may appear bare or parenthesized; both forms produce
	// the same clause variant, with empty argument text in the bare case.
	Flexible
)

func (r Rule) String() string {
	switch r {
	case Bare:
		return "Bare"
	case Parenthesized:
		return "Parenthesized"
	case Flexible:
		return "Flexible"
	default:
		return "Rule(?)"
	}
}

// StructuredKind identifies which structured payload shape, if any, a
// clause's argument text can be further interpreted as.
type StructuredKind int

const (
	// StructuredNone means the clause has no structured interpretation;
	// only its raw argument text is retained.
	StructuredNone StructuredKind = iota
	StructuredNumThreads
	StructuredIf
	StructuredPrivate
	StructuredShared
	StructuredFirstprivate
	StructuredLastprivate
	StructuredReduction
	StructuredSchedule
	StructuredCollapse
	StructuredOrdered
	StructuredNowait
	StructuredDefault
)

// ClauseKind is a stable integer discriminant for one of the registered
// clause keywords. ClauseKindUnknown is the distinguished value that
// ClauseKindByName returns for a spelling that is not registered.
type ClauseKind int

// ClauseKindUnknown is the distinguished "not a match" sentinel; it is
// never assigned to a registered clause.
const ClauseKindUnknown ClauseKind = -1

type clauseKindInfo struct {
	name       string
	rule       Rule
	structured StructuredKind
}

// clauseTable enumerates the registered clause spellings together with
// their Rule and, for the small enumerated subset queried over the C ABI,
// their StructuredKind. Multi-word clause keywords (e.g.
// "atomic_default_mem_order") are a single token as far as matching goes:
// they never contain internal whitespace, unlike directive spellings.
var clauseTable = []clauseKindInfo{
	// data-sharing / structured subset
	{"num_threads", Parenthesized, StructuredNumThreads},
	{"if", Parenthesized, StructuredIf},
	{"private", Parenthesized, StructuredPrivate},
	{"shared", Parenthesized, StructuredShared},
	{"firstprivate", Parenthesized, StructuredFirstprivate},
	{"lastprivate", Parenthesized, StructuredLastprivate},
	{"reduction", Parenthesized, StructuredReduction},
	{"schedule", Parenthesized, StructuredSchedule},
	{"collapse", Parenthesized, StructuredCollapse},
	{"ordered", Flexible, StructuredOrdered},
	{"nowait", Bare, StructuredNowait},
	{"default", Parenthesized, StructuredDefault},

	// remaining clauses: raw argument text only
	{"copyin", Parenthesized, StructuredNone},
	{"copyprivate", Parenthesized, StructuredNone},
	{"proc_bind", Parenthesized, StructuredNone},
	{"final", Parenthesized, StructuredNone},
	{"untied", Bare, StructuredNone},
	{"mergeable", Bare, StructuredNone},
	{"depend", Parenthesized, StructuredNone},
	{"priority", Parenthesized, StructuredNone},
	{"grainsize", Parenthesized, StructuredNone},
	{"num_tasks", Parenthesized, StructuredNone},
	{"nogroup", Bare, StructuredNone},
	{"in_reduction", Parenthesized, StructuredNone},
	{"task_reduction", Parenthesized, StructuredNone},
	{"detach", Parenthesized, StructuredNone},
	{"affinity", Parenthesized, StructuredNone},
	{"allocate", Parenthesized, StructuredNone},
	{"uses_allocators", Parenthesized, StructuredNone},
	{"map", Parenthesized, StructuredNone},
	{"device", Parenthesized, StructuredNone},
	{"device_type", Parenthesized, StructuredNone},
	{"defaultmap", Parenthesized, StructuredNone},
	{"is_device_ptr", Parenthesized, StructuredNone},
	{"has_device_addr", Parenthesized, StructuredNone},
	{"use_device_ptr", Parenthesized, StructuredNone},
	{"use_device_addr", Parenthesized, StructuredNone},
	{"to", Parenthesized, StructuredNone},
	{"from", Parenthesized, StructuredNone},
	{"link", Parenthesized, StructuredNone},
	{"thread_limit", Parenthesized, StructuredNone},
	{"num_teams", Parenthesized, StructuredNone},
	{"dist_schedule", Parenthesized, StructuredNone},
	{"order", Parenthesized, StructuredNone},
	{"bind", Parenthesized, StructuredNone},
	{"safelen", Parenthesized, StructuredNone},
	{"simdlen", Parenthesized, StructuredNone},
	{"aligned", Parenthesized, StructuredNone},
	{"linear", Parenthesized, StructuredNone},
	{"uniform", Parenthesized, StructuredNone},
	{"inbranch", Bare, StructuredNone},
	{"notinbranch", Bare, StructuredNone},
	{"nontemporal", Parenthesized, StructuredNone},
	{"when", Parenthesized, StructuredNone},
	{"match", Parenthesized, StructuredNone},
	{"adjust_args", Parenthesized, StructuredNone},
	{"append_args", Parenthesized, StructuredNone},
	{"init", Parenthesized, StructuredNone},
	{"use", Parenthesized, StructuredNone},
	{"destroy", Parenthesized, StructuredNone},
	{"full", Bare, StructuredNone},
	{"partial", Flexible, StructuredNone},
	{"sizes", Parenthesized, StructuredNone},
	{"apply", Parenthesized, StructuredNone},
	{"novariants", Parenthesized, StructuredNone},
	{"nocontext", Parenthesized, StructuredNone},
	{"indirect", Flexible, StructuredNone},
	{"enter", Parenthesized, StructuredNone},
	{"exit", Parenthesized, StructuredNone},
	{"hint", Parenthesized, StructuredNone},
	{"read", Bare, StructuredNone},
	{"write", Bare, StructuredNone},
	{"update", Flexible, StructuredNone},
	{"capture", Bare, StructuredNone},
	{"compare", Bare, StructuredNone},
	{"weak", Bare, StructuredNone},
	{"fail", Parenthesized, StructuredNone},
	{"release", Bare, StructuredNone},
	{"acquire", Bare, StructuredNone},
	{"relaxed", Bare, StructuredNone},
	{"seq_cst", Bare, StructuredNone},
	{"at", Parenthesized, StructuredNone},
	{"severity", Parenthesized, StructuredNone},
	{"message", Parenthesized, StructuredNone},
	{"filter", Parenthesized, StructuredNone},
	{"holds", Parenthesized, StructuredNone},
	{"no_openmp", Bare, StructuredNone},
	{"no_openmp_routines", Bare, StructuredNone},
	{"no_parallelism", Bare, StructuredNone},
	{"reverse_offload", Bare, StructuredNone},
	{"atomic_default_mem_order", Parenthesized, StructuredNone},
	{"dynamic_allocators", Bare, StructuredNone},
	{"self_maps", Bare, StructuredNone},
	{"unified_address", Bare, StructuredNone},
	{"unified_shared_memory", Bare, StructuredNone},
	{"acq_rel", Bare, StructuredNone},
	{"threads", Bare, StructuredNone},
	{"simd", Bare, StructuredNone},
	{"doacross", Parenthesized, StructuredNone},
	{"inclusive", Parenthesized, StructuredNone},
	{"exclusive", Parenthesized, StructuredNone},
	{"allocator", Parenthesized, StructuredNone},
	{"align", Parenthesized, StructuredNone},
	{"initializer", Parenthesized, StructuredNone},
	{"absent", Parenthesized, StructuredNone},
	{"contains", Parenthesized, StructuredNone},
	{"no_openmp_constructs", Bare, StructuredNone},
	{"otherwise", Parenthesized, StructuredNone},
	{"looprange", Parenthesized, StructuredNone},
	{"permutation", Parenthesized, StructuredNone},
	{"induction", Parenthesized, StructuredNone},
	{"threadset", Parenthesized, StructuredNone},
	{"transparent", Flexible, StructuredNone},
}

var (
	clauseKinds    []clauseKindInfo
	clauseKindByID map[string]ClauseKind
)

func init() {
	names := collections.MapSlice(clauseTable, func(e clauseKindInfo) string { return e.name })
	if dups := collections.FindDuplicates(names); len(dups) > 0 {
		panic(fmt.Sprintf("ir: duplicate clause name(s) in registry: %v", dups))
	}

	clauseKinds = append([]clauseKindInfo(nil), clauseTable...)
	clauseKindByID = make(map[string]ClauseKind, len(clauseKinds))
	for i, entry := range clauseKinds {
		clauseKindByID[entry.name] = ClauseKind(i)
	}
}

// ClauseKindByName looks up the ClauseKind for a clause spelling. Returns
// ClauseKindUnknown, false if name is not registered.
func ClauseKindByName(name string) (ClauseKind, bool) {
	kind, ok := clauseKindByID[name]
	if !ok {
		return ClauseKindUnknown, false
	}
	return kind, true
}

// Name returns the registered spelling of k, or "" if unregistered.
func (k ClauseKind) Name() string {
	if int(k) < 0 || int(k) >= len(clauseKinds) {
		return ""
	}
	return clauseKinds[k].name
}

// ClauseRule returns the argument-presence Rule for k.
func (k ClauseKind) ClauseRule() Rule {
	if int(k) < 0 || int(k) >= len(clauseKinds) {
		return Bare
	}
	return clauseKinds[k].rule
}

// Structured returns the structured payload shape, if any, associated with k.
func (k ClauseKind) Structured() StructuredKind {
	if int(k) < 0 || int(k) >= len(clauseKinds) {
		return StructuredNone
	}
	return clauseKinds[k].structured
}

// AllClauseKinds returns every registered ClauseKind in table order.
func AllClauseKinds() []ClauseKind {
	kinds := make([]ClauseKind, len(clauseKinds))
	for i := range clauseKinds {
		kinds[i] = ClauseKind(i)
	}
	return kinds
}
