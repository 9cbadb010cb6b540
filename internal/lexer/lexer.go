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

// Package lexer tokenizes a single normalized OpenMP directive line. Tokens
// are zero-copy: each Content is a slice of the original input, so the
// lexer allocates nothing beyond the Token values themselves.
package lexer

import (
	"iter"
	"regexp"
	"strings"

	"github.com/omplang/ompdir/internal/cursor"
)

var (
	reSentinel   = regexp.MustCompile(`(?i)^(#[\t\v\f\r ]*pragma[\t\v\f\r ]+omp|!\$omp|c\$omp|\*\$omp)`)
	reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)
	reFloat      = regexp.MustCompile(`^[0-9]+\.[0-9]+([eE][+-]?[0-9]+)?|^[0-9]+[eE][+-]?[0-9]+`)
	reInteger    = regexp.MustCompile(`^(0[xX][0-9a-fA-F]+|[0-9]+)`)
	reString     = regexp.MustCompile(`^"(?:[^"\\]|\\.)*"`)
	reWhitespace = regexp.MustCompile(`^[\t\v\f\r ]+`)
)

// Lexer produces a lazy token stream over a single line of input. It is
// restartable in the sense that NewLexer creates independent state; a given
// Lexer instance is not safe for concurrent use.
type Lexer struct {
	dataLeft string
	cursor   cursor.Position
	offset   int
	atStart  bool
}

// NewLexer returns a Lexer positioned at the beginning of input.
func NewLexer(input string) *Lexer {
	return &Lexer{dataLeft: input, cursor: cursor.Init, atStart: true}
}

func (lx *Lexer) consume(tokType TokenType, length int) Token {
	tok := Token{Type: tokType, Location: lx.cursor, Offset: lx.offset, Content: lx.dataLeft[:length]}
	lx.dataLeft = lx.dataLeft[length:]
	lx.cursor = lx.cursor.AdvancedBy(tok.Content)
	lx.offset += length
	return tok
}

func (lx *Lexer) skipWhitespace() {
	if match := reWhitespace.FindString(lx.dataLeft); match != "" {
		lx.cursor = lx.cursor.AdvancedBy(match)
		lx.dataLeft = lx.dataLeft[len(match):]
		lx.offset += len(match)
	}
}

// NextToken returns the next token in the stream, or TokenEOF once
// lx.dataLeft is exhausted. Whitespace between tokens is skipped and never
// itself emitted; the token set has no whitespace token.
func (lx *Lexer) NextToken() Token {
	lx.skipWhitespace()
	if len(lx.dataLeft) == 0 {
		return TokenEOF
	}

	if lx.atStart {
		lx.atStart = false
		if match := reSentinel.FindString(lx.dataLeft); match != "" {
			return lx.consume(TokenType_Sentinel, len(match))
		}
	}

	switch lx.dataLeft[0] {
	case '(':
		return lx.consume(TokenType_LParen, 1)
	case ')':
		return lx.consume(TokenType_RParen, 1)
	case ',':
		return lx.consume(TokenType_Comma, 1)
	case ':':
		return lx.consume(TokenType_Colon, 1)
	case '+':
		return lx.consume(TokenType_Plus, 1)
	case '-':
		return lx.consume(TokenType_Minus, 1)
	case '*':
		return lx.consume(TokenType_Star, 1)
	case '/':
		return lx.consume(TokenType_Slash, 1)
	case '^':
		return lx.consume(TokenType_Caret, 1)
	case '&':
		if strings.HasPrefix(lx.dataLeft, "&&") {
			return lx.consume(TokenType_AmpAmp, 2)
		}
		return lx.consume(TokenType_Amp, 1)
	case '|':
		if strings.HasPrefix(lx.dataLeft, "||") {
			return lx.consume(TokenType_PipePipe, 2)
		}
		return lx.consume(TokenType_Pipe, 1)
	case '=':
		if strings.HasPrefix(lx.dataLeft, "==") {
			return lx.consume(TokenType_EqEq, 2)
		}
	case '!':
		if strings.HasPrefix(lx.dataLeft, "!=") {
			return lx.consume(TokenType_NotEq, 2)
		}
	case '<':
		if strings.HasPrefix(lx.dataLeft, "<=") {
			return lx.consume(TokenType_LtEq, 2)
		}
		return lx.consume(TokenType_Lt, 1)
	case '>':
		if strings.HasPrefix(lx.dataLeft, ">=") {
			return lx.consume(TokenType_GtEq, 2)
		}
		return lx.consume(TokenType_Gt, 1)
	case '"':
		if match := reString.FindString(lx.dataLeft); match != "" {
			return lx.consume(TokenType_String, len(match))
		}
	}

	if match := reIdentifier.FindString(lx.dataLeft); match != "" {
		return lx.consume(TokenType_Identifier, len(match))
	}
	if match := reFloat.FindString(lx.dataLeft); match != "" {
		return lx.consume(TokenType_Float, len(match))
	}
	if match := reInteger.FindString(lx.dataLeft); match != "" {
		return lx.consume(TokenType_Integer, len(match))
	}
	return lx.consume(TokenType_Unknown, 1)
}

// AllTokens iterates every token up to and including the final TokenEOF.
func (lx *Lexer) AllTokens() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok := lx.NextToken()
			if !yield(tok) {
				return
			}
			if tok.Type == TokenType_EOF {
				return
			}
		}
	}
}
