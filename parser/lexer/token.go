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
	"math/big"

	"github.com/pythia-lang/pythia/common"
	"github.com/pythia-lang/pythia/errors"
)

// Token is one element of the token stream.
//
// Value carries the variant-specific payload:
//
//	TokenNewLine    NewLineKind
//	TokenIndent     IndentValue
//	TokenDedent     DedentValue
//	TokenIdentifier string (the exact source slice)
//	TokenKeyword    KeywordType
//	TokenNumber     NumberValue
//	TokenOperator   OperatorType
//	TokenString     StringValue
//
// All other variants carry no payload.
type Token struct {
	Value any
	common.Range
	Type TokenType
	// Comments preceding the token, if any.
	Comments []Comment
}

func (t Token) Is(ty TokenType) bool {
	return t.Type == ty
}

func (t Token) Source(input []byte) []byte {
	return t.Range.Source(input)
}

func (t Token) NewLineKind() NewLineKind {
	kind, ok := t.Value.(NewLineKind)
	if !ok {
		panic(errors.NewUnreachableError())
	}
	return kind
}

func (t Token) Identifier() string {
	value, ok := t.Value.(string)
	if !ok {
		panic(errors.NewUnreachableError())
	}
	return value
}

func (t Token) KeywordType() KeywordType {
	keyword, ok := t.Value.(KeywordType)
	if !ok {
		panic(errors.NewUnreachableError())
	}
	return keyword
}

func (t Token) OperatorType() OperatorType {
	operator, ok := t.Value.(OperatorType)
	if !ok {
		panic(errors.NewUnreachableError())
	}
	return operator
}

func (t Token) NumberValue() NumberValue {
	number, ok := t.Value.(NumberValue)
	if !ok {
		panic(errors.NewUnreachableError())
	}
	return number
}

func (t Token) StringValue() StringValue {
	str, ok := t.Value.(StringValue)
	if !ok {
		panic(errors.NewUnreachableError())
	}
	return str
}

// Comment is a '#' comment. Comments are not tokens of their own:
// they attach to the next emitted token, or to the newline token
// of their own line when they trail the last statement on it.
type Comment struct {
	// Text is the comment text without the leading '#'.
	Text string
	common.Range
}

// IndentValue is the payload of an indent token.
type IndentValue struct {
	// Amount is the column width of the new indentation after tab expansion.
	Amount int
	// IsAmbiguous is set when the indentation mixes tabs and spaces
	// in a way that cannot be consistently measured.
	IsAmbiguous bool
}

// DedentValue is the payload of a dedent token.
type DedentValue struct {
	Amount int
	// MatchesIndent is true if the new indentation exactly matches
	// a previously pushed indentation level.
	MatchesIndent bool
}

// NumberValue is the payload of a number token.
// Integer is set for integer literals, Float for floating-point ones.
type NumberValue struct {
	Integer   *big.Int
	Float     float64
	IsInteger bool
}

// StringFlags is a bit set describing the shape of a string literal.
type StringFlags uint16

const (
	StringFlagSingleQuote StringFlags = 1 << iota
	StringFlagDoubleQuote
	StringFlagTriplicate
	StringFlagRaw
	StringFlagUnicode
	StringFlagBytes
	StringFlagFormat
	StringFlagUnterminated
)

func (f StringFlags) Has(flag StringFlags) bool {
	return f&flag != 0
}

// StringValue is the payload of a string token.
//
// EscapedValue is the raw inner source between the opening and closing
// quote markers, undecoded. Decoding is deferred: call Unescape when
// the cooked value or the format-string segments are needed.
type StringValue struct {
	EscapedValue string
	// PrefixLength is the number of bytes before the opening quote.
	PrefixLength int
	// QuoteMarkLength is 1, or 3 for triple-quoted strings.
	QuoteMarkLength int
	Flags           StringFlags
}
