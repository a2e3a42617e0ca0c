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
	"sync"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

type charClass uint8

const (
	charClassWhitespace charClass = 1 << iota
	charClassLineBreak
	charClassDecimalDigit
	charClassHexDigit
	charClassOctalDigit
	charClassBinaryDigit
	charClassIdentifierStart
	charClassIdentifierContinue
)

// asciiCharClasses is the fast path for the classifier.
// Identifier classification of non-ASCII code points (128 and above)
// goes through the Unicode identifier range tables.
var asciiCharClasses [256]charClass

func init() {
	// Whitespace within a line is strictly space, tab, and form feed.
	// NBSP and the other Unicode space characters are not line whitespace.
	for _, b := range []byte{' ', '\t', '\f'} {
		asciiCharClasses[b] |= charClassWhitespace
	}

	// CRLF is a two-byte sequence but a single logical terminator,
	// handled by the scanner.
	asciiCharClasses['\n'] |= charClassLineBreak
	asciiCharClasses['\r'] |= charClassLineBreak

	for b := byte('0'); b <= '9'; b++ {
		asciiCharClasses[b] |= charClassDecimalDigit | charClassHexDigit |
			charClassIdentifierContinue
	}
	for b := byte('0'); b <= '7'; b++ {
		asciiCharClasses[b] |= charClassOctalDigit
	}
	asciiCharClasses['0'] |= charClassBinaryDigit
	asciiCharClasses['1'] |= charClassBinaryDigit

	for b := byte('a'); b <= 'f'; b++ {
		asciiCharClasses[b] |= charClassHexDigit
		asciiCharClasses[b-'a'+'A'] |= charClassHexDigit
	}

	for b := byte('a'); b <= 'z'; b++ {
		asciiCharClasses[b] |= charClassIdentifierStart | charClassIdentifierContinue
		asciiCharClasses[b-'a'+'A'] |= charClassIdentifierStart | charClassIdentifierContinue
	}

	asciiCharClasses['_'] |= charClassIdentifierStart | charClassIdentifierContinue |
		// underscore is the digit separator, so it counts as a digit in every base
		charClassDecimalDigit | charClassHexDigit |
		charClassOctalDigit | charClassBinaryDigit
}

func hasCharClass(r rune, class charClass) bool {
	return r >= 0 && r < 256 && asciiCharClasses[r]&class != 0
}

func isWhitespace(r rune) bool {
	return hasCharClass(r, charClassWhitespace)
}

func isLineBreak(r rune) bool {
	return hasCharClass(r, charClassLineBreak)
}

// The digit predicates include underscore, the digit separator.
// Scan triggers that need an actual digit test for '0'..'9' directly.

func isDecimalDigit(r rune) bool {
	return hasCharClass(r, charClassDecimalDigit)
}

func isHexDigit(r rune) bool {
	return hasCharClass(r, charClassHexDigit)
}

func isOctalDigit(r rune) bool {
	return hasCharClass(r, charClassOctalDigit)
}

func isBinaryDigit(r rune) bool {
	return hasCharClass(r, charClassBinaryDigit)
}

// identifierTables holds the merged Unicode range tables for identifier
// classification beyond ASCII. They are built on the first non-ASCII
// query; the one-time initializer keeps concurrent first use safe.
var identifierTables struct {
	once     sync.Once
	start    *unicode.RangeTable
	cont *unicode.RangeTable
}

// otherIDStart and otherIDContinue are the code points with the
// Other_ID_Start and Other_ID_Continue properties, which identifier
// classification includes on top of the general categories.
var otherIDStart = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x1885, Hi: 0x1886, Stride: 1},
		{Lo: 0x2118, Hi: 0x2118, Stride: 1},
		{Lo: 0x212E, Hi: 0x212E, Stride: 1},
		{Lo: 0x309B, Hi: 0x309C, Stride: 1},
	},
}

var otherIDContinue = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00B7, Hi: 0x00B7, Stride: 1},
		{Lo: 0x0387, Hi: 0x0387, Stride: 1},
		{Lo: 0x1369, Hi: 0x1371, Stride: 1},
		{Lo: 0x19DA, Hi: 0x19DA, Stride: 1},
	},
	LatinOffset: 1,
}

func ensureIdentifierTables() {
	identifierTables.once.Do(func() {
		identifierTables.start = rangetable.Merge(
			unicode.Lu,
			unicode.Ll,
			unicode.Lt,
			unicode.Lo,
			unicode.Lm,
			unicode.Nl,
			otherIDStart,
		)
		identifierTables.cont = rangetable.Merge(
			identifierTables.start,
			unicode.Mn,
			unicode.Mc,
			unicode.Nd,
			unicode.Pc,
			otherIDContinue,
		)
	})
}

// IsIdentifierStart returns true if the code point can start an identifier:
// a letter (Lu, Ll, Lt, Lo, Lm), a letter number (Nl), underscore,
// or one of the Other_ID_Start code points.
func IsIdentifierStart(r rune) bool {
	if r < 128 {
		return hasCharClass(r, charClassIdentifierStart)
	}
	ensureIdentifierTables()
	return unicode.Is(identifierTables.start, r)
}

// IsIdentifierContinue returns true if the code point can continue an
// identifier: an identifier start, a combining mark (Mn, Mc), a decimal
// number (Nd), a connector punctuation (Pc), or one of the
// Other_ID_Continue code points.
func IsIdentifierContinue(r rune) bool {
	if r < 128 {
		return hasCharClass(r, charClassIdentifierContinue)
	}
	ensureIdentifierTables()
	return unicode.Is(identifierTables.cont, r)
}
