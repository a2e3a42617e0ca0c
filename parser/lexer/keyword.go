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
	"github.com/SaveTheRbtz/mph"

	"github.com/pythia-lang/pythia/errors"
)

// NOTE: ensure to update allKeywords and keywordTypes when adding a new keyword
const (
	KeywordFalse    = "False"
	KeywordNone     = "None"
	KeywordTrue     = "True"
	KeywordAnd      = "and"
	KeywordAs       = "as"
	KeywordAssert   = "assert"
	KeywordAsync    = "async"
	KeywordAwait    = "await"
	KeywordBreak    = "break"
	KeywordClass    = "class"
	KeywordContinue = "continue"
	KeywordDef      = "def"
	KeywordDel      = "del"
	KeywordElif     = "elif"
	KeywordElse     = "else"
	KeywordExcept   = "except"
	KeywordFinally  = "finally"
	KeywordFor      = "for"
	KeywordFrom     = "from"
	KeywordGlobal   = "global"
	KeywordIf       = "if"
	KeywordImport   = "import"
	KeywordIn       = "in"
	KeywordIs       = "is"
	KeywordLambda   = "lambda"
	KeywordNonlocal = "nonlocal"
	KeywordNot      = "not"
	KeywordOr       = "or"
	KeywordPass     = "pass"
	KeywordRaise    = "raise"
	KeywordReturn   = "return"
	KeywordTry      = "try"
	KeywordWhile    = "while"
	KeywordWith     = "with"
	KeywordYield    = "yield"
	KeywordDebug    = "__debug__"
	// NOTE: ensure to update allKeywords and keywordTypes when adding a new keyword
)

var allKeywords = []string{
	KeywordFalse,
	KeywordNone,
	KeywordTrue,
	KeywordAnd,
	KeywordAs,
	KeywordAssert,
	KeywordAsync,
	KeywordAwait,
	KeywordBreak,
	KeywordClass,
	KeywordContinue,
	KeywordDef,
	KeywordDel,
	KeywordElif,
	KeywordElse,
	KeywordExcept,
	KeywordFinally,
	KeywordFor,
	KeywordFrom,
	KeywordGlobal,
	KeywordIf,
	KeywordImport,
	KeywordIn,
	KeywordIs,
	KeywordLambda,
	KeywordNonlocal,
	KeywordNot,
	KeywordOr,
	KeywordPass,
	KeywordRaise,
	KeywordReturn,
	KeywordTry,
	KeywordWhile,
	KeywordWith,
	KeywordYield,
	KeywordDebug,
}

var keywordsTable = mph.Build(allKeywords)

// IsKeyword returns true if the given word is recognized as a keyword.
//
// Some recognized keywords are valid identifiers in certain contexts
// (e.g. `async` and `await` in older language versions);
// the tokenizer still emits the keyword variant and the parser
// re-interprets it.
func IsKeyword(word string) bool {
	_, ok := keywordsTable.Lookup(word)
	return ok
}

type KeywordType uint8

const (
	KeywordTypeFalse KeywordType = iota
	KeywordTypeNone
	KeywordTypeTrue
	KeywordTypeAnd
	KeywordTypeAs
	KeywordTypeAssert
	KeywordTypeAsync
	KeywordTypeAwait
	KeywordTypeBreak
	KeywordTypeClass
	KeywordTypeContinue
	KeywordTypeDef
	KeywordTypeDel
	KeywordTypeElif
	KeywordTypeElse
	KeywordTypeExcept
	KeywordTypeFinally
	KeywordTypeFor
	KeywordTypeFrom
	KeywordTypeGlobal
	KeywordTypeIf
	KeywordTypeImport
	KeywordTypeIn
	KeywordTypeIs
	KeywordTypeLambda
	KeywordTypeNonlocal
	KeywordTypeNot
	KeywordTypeOr
	KeywordTypePass
	KeywordTypeRaise
	KeywordTypeReturn
	KeywordTypeTry
	KeywordTypeWhile
	KeywordTypeWith
	KeywordTypeYield
	KeywordTypeDebug
	// NOTE: not an actual keyword type, must be last item
	KeywordTypeMax
)

var keywordTypes = map[string]KeywordType{
	KeywordFalse:    KeywordTypeFalse,
	KeywordNone:     KeywordTypeNone,
	KeywordTrue:     KeywordTypeTrue,
	KeywordAnd:      KeywordTypeAnd,
	KeywordAs:       KeywordTypeAs,
	KeywordAssert:   KeywordTypeAssert,
	KeywordAsync:    KeywordTypeAsync,
	KeywordAwait:    KeywordTypeAwait,
	KeywordBreak:    KeywordTypeBreak,
	KeywordClass:    KeywordTypeClass,
	KeywordContinue: KeywordTypeContinue,
	KeywordDef:      KeywordTypeDef,
	KeywordDel:      KeywordTypeDel,
	KeywordElif:     KeywordTypeElif,
	KeywordElse:     KeywordTypeElse,
	KeywordExcept:   KeywordTypeExcept,
	KeywordFinally:  KeywordTypeFinally,
	KeywordFor:      KeywordTypeFor,
	KeywordFrom:     KeywordTypeFrom,
	KeywordGlobal:   KeywordTypeGlobal,
	KeywordIf:       KeywordTypeIf,
	KeywordImport:   KeywordTypeImport,
	KeywordIn:       KeywordTypeIn,
	KeywordIs:       KeywordTypeIs,
	KeywordLambda:   KeywordTypeLambda,
	KeywordNonlocal: KeywordTypeNonlocal,
	KeywordNot:      KeywordTypeNot,
	KeywordOr:       KeywordTypeOr,
	KeywordPass:     KeywordTypePass,
	KeywordRaise:    KeywordTypeRaise,
	KeywordReturn:   KeywordTypeReturn,
	KeywordTry:      KeywordTypeTry,
	KeywordWhile:    KeywordTypeWhile,
	KeywordWith:     KeywordTypeWith,
	KeywordYield:    KeywordTypeYield,
	KeywordDebug:    KeywordTypeDebug,
}

// keywordType looks the word up in the minimal-perfect-hash keyword table.
func keywordType(word string) (KeywordType, bool) {
	if _, ok := keywordsTable.Lookup(word); !ok {
		return 0, false
	}
	keyword, ok := keywordTypes[word]
	return keyword, ok
}

func init() {
	if len(keywordTypes) != len(allKeywords) ||
		KeywordTypeMax != KeywordType(len(allKeywords)) {

		panic(errors.NewUnexpectedError("keyword tables out of sync"))
	}

	// ensure all keyword types have its string format
	for k := KeywordType(0); k < KeywordTypeMax; k++ {
		_ = k.String()
	}
}

func (k KeywordType) String() string {
	switch k {
	case KeywordTypeFalse:
		return KeywordFalse
	case KeywordTypeNone:
		return KeywordNone
	case KeywordTypeTrue:
		return KeywordTrue
	case KeywordTypeAnd:
		return KeywordAnd
	case KeywordTypeAs:
		return KeywordAs
	case KeywordTypeAssert:
		return KeywordAssert
	case KeywordTypeAsync:
		return KeywordAsync
	case KeywordTypeAwait:
		return KeywordAwait
	case KeywordTypeBreak:
		return KeywordBreak
	case KeywordTypeClass:
		return KeywordClass
	case KeywordTypeContinue:
		return KeywordContinue
	case KeywordTypeDef:
		return KeywordDef
	case KeywordTypeDel:
		return KeywordDel
	case KeywordTypeElif:
		return KeywordElif
	case KeywordTypeElse:
		return KeywordElse
	case KeywordTypeExcept:
		return KeywordExcept
	case KeywordTypeFinally:
		return KeywordFinally
	case KeywordTypeFor:
		return KeywordFor
	case KeywordTypeFrom:
		return KeywordFrom
	case KeywordTypeGlobal:
		return KeywordGlobal
	case KeywordTypeIf:
		return KeywordIf
	case KeywordTypeImport:
		return KeywordImport
	case KeywordTypeIn:
		return KeywordIn
	case KeywordTypeIs:
		return KeywordIs
	case KeywordTypeLambda:
		return KeywordLambda
	case KeywordTypeNonlocal:
		return KeywordNonlocal
	case KeywordTypeNot:
		return KeywordNot
	case KeywordTypeOr:
		return KeywordOr
	case KeywordTypePass:
		return KeywordPass
	case KeywordTypeRaise:
		return KeywordRaise
	case KeywordTypeReturn:
		return KeywordReturn
	case KeywordTypeTry:
		return KeywordTry
	case KeywordTypeWhile:
		return KeywordWhile
	case KeywordTypeWith:
		return KeywordWith
	case KeywordTypeYield:
		return KeywordYield
	case KeywordTypeDebug:
		return KeywordDebug
	default:
		panic(errors.NewUnreachableError())
	}
}
