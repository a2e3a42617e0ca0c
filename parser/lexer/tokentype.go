/*
 * Pythia - The Python static-analysis engine
 *
 * Copyright Pythia Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package lexer

import (
	"github.com/pythia-lang/pythia/errors"
)

type TokenType uint8

const EOF rune = -1

const (
	TokenInvalid TokenType = iota
	TokenEndOfStream
	TokenNewLine
	TokenIndent
	TokenDedent
	TokenIdentifier
	TokenKeyword
	TokenNumber
	TokenString
	TokenOperator
	TokenDot
	TokenEllipsis
	TokenColon
	TokenSemicolon
	TokenComma
	TokenArrow
	TokenParenOpen
	TokenParenClose
	TokenBracketOpen
	TokenBracketClose
	TokenBraceOpen
	TokenBraceClose
	// NOTE: not an actual token, must be last item
	TokenMax
)

func init() {
	// ensure all tokens have its string format
	for t := TokenType(0); t < TokenMax; t++ {
		_ = t.String()
	}
}

func (t TokenType) String() string {
	switch t {
	case TokenInvalid:
		return "invalid"
	case TokenEndOfStream:
		return "end of stream"
	case TokenNewLine:
		return "newline"
	case TokenIndent:
		return "indent"
	case TokenDedent:
		return "dedent"
	case TokenIdentifier:
		return "identifier"
	case TokenKeyword:
		return "keyword"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenOperator:
		return "operator"
	case TokenDot:
		return `'.'`
	case TokenEllipsis:
		return `'...'`
	case TokenColon:
		return `':'`
	case TokenSemicolon:
		return `';'`
	case TokenComma:
		return `','`
	case TokenArrow:
		return `'->'`
	case TokenParenOpen:
		return `'('`
	case TokenParenClose:
		return `')'`
	case TokenBracketOpen:
		return `'['`
	case TokenBracketClose:
		return `']'`
	case TokenBraceOpen:
		return `'{'`
	case TokenBraceClose:
		return `'}'`
	default:
		panic(errors.NewUnreachableError())
	}
}

// NewLineKind describes the concrete line terminator a newline token stands for.
type NewLineKind uint8

const (
	NewLineKindLineFeed NewLineKind = iota
	NewLineKindCarriageReturn
	NewLineKindCarriageReturnLineFeed
	// NewLineKindImplied is synthesized at the end of the input
	// if no terminator precedes the end of the stream. It has length 0.
	NewLineKindImplied
	// NOTE: not an actual kind, must be last item
	NewLineKindMax
)

func init() {
	for k := NewLineKind(0); k < NewLineKindMax; k++ {
		_ = k.String()
	}
}

func (k NewLineKind) String() string {
	switch k {
	case NewLineKindLineFeed:
		return "LF"
	case NewLineKindCarriageReturn:
		return "CR"
	case NewLineKindCarriageReturnLineFeed:
		return "CRLF"
	case NewLineKindImplied:
		return "implied"
	default:
		panic(errors.NewUnreachableError())
	}
}
