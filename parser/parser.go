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

// Package parser is the public entry point for recognizing a single OpenMP
// directive: it normalizes line continuations, tokenizes the merged line,
// and resolves the directive keyword sequence and its clauses against the
// keyword registry, producing an *ir.Directive.
package parser

import (
	"strings"

	"github.com/omplang/ompdir/internal/lexer"
	"github.com/omplang/ompdir/internal/normalize"
	"github.com/omplang/ompdir/internal/registry"
	"github.com/omplang/ompdir/ir"
	"github.com/omplang/ompdir/lang"
)

// Parse recognizes and parses a single logical OpenMP directive written in
// language, returning the populated IR or a *ir.ParseError describing why
// recognition failed. Parsing never produces a partially-populated
// Directive: any failure aborts with nothing returned.
func Parse(input string, language lang.Language) (*ir.Directive, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ir.NewError(ir.EmptyInput, "empty input presented to parse", 0, "")
	}

	text, loc, err := normalize.Normalize(input, language)
	if err != nil {
		return nil, err
	}

	p := newParser(text)
	if err := p.expectSentinel(); err != nil {
		return nil, err
	}
	kind, err := p.parseDirectiveKind()
	if err != nil {
		return nil, err
	}
	clauses, err := p.parseClauses()
	if err != nil {
		return nil, err
	}
	return ir.NewDirective(kind, clauses, loc, language), nil
}

// parser walks a fully-tokenized directive line. Directives are short
// enough that buffering the whole token stream up front (rather than
// threading a lazy lexer.Lexer through backtracking lookahead) keeps the
// recognizer simple; lexer.Lexer stays lazy for callers that want a
// stream, the parser only needs random access into it.
type parser struct {
	text string
	toks []lexer.Token
	pos  int
}

func newParser(text string) *parser {
	var toks []lexer.Token
	lx := lexer.NewLexer(text)
	for {
		tok := lx.NextToken()
		toks = append(toks, tok)
		if tok.Type == lexer.TokenType_EOF {
			break
		}
	}
	return &parser{text: text, toks: toks}
}

func (p *parser) peek() lexer.Token {
	return p.toks[p.pos]
}

func (p *parser) advance() lexer.Token {
	tok := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) expectSentinel() error {
	tok := p.advance()
	if tok.Type != lexer.TokenType_Sentinel {
		return ir.NewError(ir.NotADirective, "expected a directive sentinel", tok.Offset, tok.Content)
	}
	return nil
}

// parseDirectiveKind consumes the longest registered directive keyword
// prefix starting at the current position. The candidate word list
// is every contiguous Identifier token following the sentinel; registry
// handles the longest-prefix search and the Fortran "do"/"for" fold.
func (p *parser) parseDirectiveKind() (ir.DirectiveKind, error) {
	start := p.pos
	var words []string
	for p.toks[p.pos].Type == lexer.TokenType_Identifier {
		words = append(words, p.toks[p.pos].Content)
		p.pos++
	}

	kind, n, ok := registry.MatchDirective(words)
	if !ok {
		offset := p.toks[start].Offset
		p.pos = start
		return ir.InvalidDirectiveKind, ir.NewError(ir.UnknownDirective, "directive keyword sequence not recognized", offset, strings.Join(words, " "))
	}
	p.pos = start + n
	return kind, nil
}

// parseClauses consumes every clause up to end of input. There is no
// partial recovery: the first clause failure aborts the whole parse.
func (p *parser) parseClauses() ([]ir.Clause, error) {
	var clauses []ir.Clause
	for p.peek().Type != lexer.TokenType_EOF {
		clause, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

func (p *parser) parseClause() (ir.Clause, error) {
	tok := p.peek()
	if tok.Type != lexer.TokenType_Identifier {
		return ir.Clause{}, ir.NewError(ir.UnknownClause, "expected a clause keyword", tok.Offset, tok.Content)
	}
	p.advance()

	kind, ok := registry.MatchClause(tok.Content)
	if !ok {
		return ir.Clause{}, ir.NewError(ir.UnknownClause, "unrecognized clause keyword", tok.Offset, tok.Content)
	}

	hasParen := p.peek().Type == lexer.TokenType_LParen
	switch kind.ClauseRule() {
	case ir.Bare:
		if hasParen {
			return ir.Clause{}, ir.NewError(ir.ClauseShapeMismatch, "bare clause may not take an argument list", p.peek().Offset, kind.Name())
		}
		return ir.NewClause(kind, "", false), nil

	case ir.Parenthesized:
		if !hasParen {
			return ir.Clause{}, ir.NewError(ir.ClauseShapeMismatch, "clause requires a parenthesized argument list", tok.Offset, kind.Name())
		}
		raw, err := p.consumeParenGroup()
		if err != nil {
			return ir.Clause{}, err
		}
		return ir.NewClause(kind, raw, true), nil

	default: // ir.Flexible
		if !hasParen {
			return ir.NewClause(kind, "", false), nil
		}
		raw, err := p.consumeParenGroup()
		if err != nil {
			return ir.Clause{}, err
		}
		return ir.NewClause(kind, raw, true), nil
	}
}

// consumeParenGroup consumes a balanced "(...)" group starting at the
// current LParen token and returns its inner text, sliced verbatim out of
// the normalized source (so array-section syntax like "a[0:n]" that the
// lexer does not itself tokenize still round-trips exactly). Nested parens
// are tracked by depth; an unclosed group is UnbalancedParentheses.
func (p *parser) consumeParenGroup() (string, error) {
	open := p.advance()
	depth := 1
	for {
		tok := p.peek()
		switch tok.Type {
		case lexer.TokenType_EOF:
			return "", ir.NewError(ir.UnbalancedParentheses, "unbalanced parentheses in clause argument list", open.Offset, "")
		case lexer.TokenType_LParen:
			depth++
		case lexer.TokenType_RParen:
			depth--
			if depth == 0 {
				closeOffset := tok.Offset
				p.advance()
				return strings.TrimSpace(p.text[open.Offset+len(open.Content) : closeOffset]), nil
			}
		}
		p.advance()
	}
}
