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

// stringPrefix checks whether the just-scanned identifier-start rune
// begins a string prefix: up to two characters from {b, u, r, f}
// (case-insensitive, distinct flags) immediately followed by a quote.
//
// Invalid flag combinations (e.g. a format bytes string) are not
// rejected here; the flags are recorded and the parser diagnoses them.
func (l *lexer) stringPrefix(r rune) (StringFlags, int, bool) {
	flag, ok := prefixFlag(r)
	if !ok {
		return 0, 0, false
	}

	b0 := l.peekByte(0)
	if b0 == '\'' || b0 == '"' {
		return flag, 1, true
	}

	secondFlag, ok := prefixFlag(rune(b0))
	if ok && secondFlag != flag {
		b1 := l.peekByte(1)
		if b1 == '\'' || b1 == '"' {
			return flag | secondFlag, 2, true
		}
	}

	return 0, 0, false
}

func prefixFlag(r rune) (StringFlags, bool) {
	switch r {
	case 'b', 'B':
		return StringFlagBytes, true
	case 'u', 'U':
		return StringFlagUnicode, true
	case 'r', 'R':
		return StringFlagRaw, true
	case 'f', 'F':
		return StringFlagFormat, true
	}
	return 0, false
}

// scanPrefixedString consumes the remaining prefix characters and the
// opening quote, then scans the string body.
func (l *lexer) scanPrefixedString(flags StringFlags, prefixLength int) {
	if prefixLength == 2 {
		l.next()
	}
	quote := l.next()
	l.scanString(quote, flags, prefixLength)
}

// scanString scans a string literal. The prefix (if any) and the first
// quote character are already consumed.
//
// The token's escaped value is the raw inner source between the quote
// markers, undecoded; decoding happens lazily in Unescape.
func (l *lexer) scanString(quote rune, flags StringFlags, prefixLength int) {
	if quote == '\'' {
		flags |= StringFlagSingleQuote
	} else {
		flags |= StringFlagDoubleQuote
	}

	quoteByte := byte(quote)
	quoteMarkLength := 1

	if l.peekByte(0) == quoteByte {
		if l.peekByte(1) == quoteByte {
			// triple-quoted string
			l.next()
			l.next()
			quoteMarkLength = 3
			flags |= StringFlagTriplicate
		} else {
			// empty string
			l.next()
			l.emitString(flags, prefixLength, quoteMarkLength, l.offset-1, l.offset-1)
			return
		}
	}

	triple := flags.Has(StringFlagTriplicate)
	innerStart := l.offset

	for {
		r := l.next()
		switch r {
		case EOF:
			flags |= StringFlagUnterminated
			l.emitString(flags, prefixLength, quoteMarkLength, innerStart, l.offset)
			return

		case '\n', '\r':
			if !triple {
				// an unescaped terminator ends a single-line string;
				// it is left for the main loop to turn into a newline token
				l.backupOne()
				flags |= StringFlagUnterminated
				l.emitString(flags, prefixLength, quoteMarkLength, innerStart, l.offset)
				return
			}
			l.countLineTerminator(r)

		case '\\':
			// The backslash suppresses the terminator interpretation of
			// the next character, in raw mode too. Both characters are
			// retained verbatim in the escaped value.
			switch l.next() {
			case EOF:
				flags |= StringFlagUnterminated
				l.emitString(flags, prefixLength, quoteMarkLength, innerStart, l.offset)
				return
			case '\n', '\r':
				l.countLineTerminator(l.current)
			}

		case quote:
			if !triple {
				l.emitString(flags, prefixLength, quoteMarkLength, innerStart, l.offset-1)
				return
			}
			if l.peekByte(0) == quoteByte && l.peekByte(1) == quoteByte {
				innerEnd := l.offset - 1
				l.next()
				l.next()
				l.emitString(flags, prefixLength, quoteMarkLength, innerStart, innerEnd)
				return
			}
		}
	}
}

func (l *lexer) emitString(
	flags StringFlags,
	prefixLength int,
	quoteMarkLength int,
	innerStart int,
	innerEnd int,
) {
	l.emit(
		TokenString,
		StringValue{
			EscapedValue:    string(l.input[innerStart:innerEnd]),
			PrefixLength:    prefixLength,
			QuoteMarkLength: quoteMarkLength,
			Flags:           flags,
		},
	)
}
