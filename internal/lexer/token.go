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

package lexer

import "github.com/omplang/ompdir/internal/cursor"

// TokenType identifies the lexical category of a Token.
type TokenType int

const (
	// TokenType_EOF is returned once, after the last real token.
	TokenType_EOF TokenType = iota
	// TokenType_Unknown marks a character the lexer could not classify;
	// lexing stays total. The parser rejects it where a clause keyword is
	// expected and keeps it as raw text inside a clause argument list.
	TokenType_Unknown

	TokenType_Sentinel
	TokenType_Identifier
	TokenType_Integer
	TokenType_Float
	TokenType_String

	TokenType_LParen
	TokenType_RParen
	TokenType_Comma
	TokenType_Colon

	TokenType_Plus
	TokenType_Minus
	TokenType_Star
	TokenType_Slash
	TokenType_Amp
	TokenType_Pipe
	TokenType_Caret
	TokenType_AmpAmp
	TokenType_PipePipe
	TokenType_EqEq
	TokenType_NotEq
	TokenType_Lt
	TokenType_LtEq
	TokenType_Gt
	TokenType_GtEq
)

func (t TokenType) String() string {
	switch t {
	case TokenType_EOF:
		return "EOF"
	case TokenType_Unknown:
		return "Unknown"
	case TokenType_Sentinel:
		return "Sentinel"
	case TokenType_Identifier:
		return "Identifier"
	case TokenType_Integer:
		return "Integer"
	case TokenType_Float:
		return "Float"
	case TokenType_String:
		return "String"
	case TokenType_LParen:
		return "LParen"
	case TokenType_RParen:
		return "RParen"
	case TokenType_Comma:
		return "Comma"
	case TokenType_Colon:
		return "Colon"
	case TokenType_Plus:
		return "Plus"
	case TokenType_Minus:
		return "Minus"
	case TokenType_Star:
		return "Star"
	case TokenType_Slash:
		return "Slash"
	case TokenType_Amp:
		return "Amp"
	case TokenType_Pipe:
		return "Pipe"
	case TokenType_Caret:
		return "Caret"
	case TokenType_AmpAmp:
		return "AmpAmp"
	case TokenType_PipePipe:
		return "PipePipe"
	case TokenType_EqEq:
		return "EqEq"
	case TokenType_NotEq:
		return "NotEq"
	case TokenType_Lt:
		return "Lt"
	case TokenType_LtEq:
		return "LtEq"
	case TokenType_Gt:
		return "Gt"
	case TokenType_GtEq:
		return "GtEq"
	default:
		return "?"
	}
}

// Token is a single lexeme: its type, the source position of its first
// character, its byte offset into the lexed input, and its exact source
// text (a slice of the original input).
type Token struct {
	Type     TokenType
	Location cursor.Position
	Offset   int
	Content  string
}

// TokenEOF is the sentinel token returned once all input is consumed.
var TokenEOF = Token{Type: TokenType_EOF}
