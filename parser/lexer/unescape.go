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
	"strings"
	"unicode/utf8"

	"github.com/pythia-lang/pythia/common"
	"github.com/pythia-lang/pythia/errors"
)

type UnescapeErrorKind uint8

const (
	UnescapeErrorInvalidEscapeSequence UnescapeErrorKind = iota
	UnescapeErrorEscapeWithinFormatExpression
	UnescapeErrorSingleCloseBraceWithinFormatLiteral
	UnescapeErrorUnterminatedFormatExpression
	// NOTE: not an actual kind, must be last item
	UnescapeErrorKindMax
)

func init() {
	for k := UnescapeErrorKind(0); k < UnescapeErrorKindMax; k++ {
		_ = k.String()
	}
}

func (k UnescapeErrorKind) String() string {
	switch k {
	case UnescapeErrorInvalidEscapeSequence:
		return "invalid escape sequence"
	case UnescapeErrorEscapeWithinFormatExpression:
		return "escape within format expression"
	case UnescapeErrorSingleCloseBraceWithinFormatLiteral:
		return "single close brace within format literal"
	case UnescapeErrorUnterminatedFormatExpression:
		return "unterminated format expression"
	default:
		panic(errors.NewUnreachableError())
	}
}

// UnescapeError describes a problem found while decoding a string
// token's escaped value. The range is relative to the escaped value.
type UnescapeError struct {
	common.Range
	Kind UnescapeErrorKind
}

// FormatStringSegment is one piece of a format string body:
// either decoded literal text, or the verbatim inner source of an
// embedded expression. Segments preserve input order.
type FormatStringSegment struct {
	Value string
	// Offset is the byte offset of the segment within the escaped value.
	Offset       int
	IsExpression bool
}

// UnicodeNameResolver resolves the NAME of a \N{NAME} escape to a code
// point. The Unicode name database is external to the tokenizer.
type UnicodeNameResolver func(name string) (rune, bool)

// UnescapedString is the decoded form of a string token.
type UnescapedString struct {
	Value  string
	Errors []UnescapeError
	// FormatStringSegments is set for format strings only.
	FormatStringSegments []FormatStringSegment
	// NonASCIIInBytes is set when a bytes literal's decoded value
	// contains a code point >= 0x80.
	NonASCIIInBytes bool
}

// Unescape decodes the escaped value of the string token.
//
// Well-formed \N{NAME} escapes are kept verbatim, as no name database
// is wired in; use UnescapeWithResolver to resolve them.
func (v StringValue) Unescape() UnescapedString {
	return v.UnescapeWithResolver(nil)
}

func (v StringValue) UnescapeWithResolver(resolver UnicodeNameResolver) UnescapedString {
	var result UnescapedString

	switch {
	case v.Flags.Has(StringFlagFormat):
		result = v.unescapeFormat(resolver)

	case v.Flags.Has(StringFlagRaw):
		// the cooked value of a raw string is the source text itself
		result = UnescapedString{Value: v.EscapedValue}

	default:
		result = v.unescapePlain(resolver)
	}

	if v.Flags.Has(StringFlagBytes) {
		for _, r := range result.Value {
			if r >= 0x80 {
				result.NonASCIIInBytes = true
				break
			}
		}
	}

	return result
}

func (v StringValue) unescapePlain(resolver UnicodeNameResolver) UnescapedString {
	s := v.EscapedValue

	if !strings.Contains(s, `\`) {
		return UnescapedString{Value: s}
	}

	var value strings.Builder
	value.Grow(len(s))
	var unescapeErrors []UnescapeError

	i := 0
	for i < len(s) {
		c := s[i]
		if c != '\\' {
			value.WriteByte(c)
			i++
			continue
		}

		text, next, unescapeError := decodeEscape(s, i, resolver)
		value.WriteString(text)
		if unescapeError != nil {
			unescapeErrors = append(unescapeErrors, *unescapeError)
		}
		i = next
	}

	return UnescapedString{
		Value:  value.String(),
		Errors: unescapeErrors,
	}
}

// decodeEscape decodes the escape sequence starting at the backslash at
// s[i]. It returns the decoded text, the offset just past the sequence,
// and an error for invalid sequences, whose characters are kept
// verbatim in the decoded text.
func decodeEscape(
	s string,
	i int,
	resolver UnicodeNameResolver,
) (string, int, *UnescapeError) {

	if i+1 >= len(s) {
		// lone backslash at the end of an unterminated string
		return s[i:], len(s), &UnescapeError{
			Kind:  UnescapeErrorInvalidEscapeSequence,
			Range: common.NewRange(i, 1),
		}
	}

	switch c := s[i+1]; c {
	case '\\':
		return `\`, i + 2, nil
	case '\'':
		return `'`, i + 2, nil
	case '"':
		return `"`, i + 2, nil
	case 'a':
		return "\a", i + 2, nil
	case 'b':
		return "\b", i + 2, nil
	case 'f':
		return "\f", i + 2, nil
	case 'n':
		return "\n", i + 2, nil
	case 'r':
		return "\r", i + 2, nil
	case 't':
		return "\t", i + 2, nil
	case 'v':
		return "\v", i + 2, nil

	case '\n':
		// escaped line break: line continuation
		return "", i + 2, nil
	case '\r':
		if i+2 < len(s) && s[i+2] == '\n' {
			return "", i + 3, nil
		}
		return "", i + 2, nil

	case '0', '1', '2', '3', '4', '5', '6', '7':
		value := 0
		j := i + 1
		for j < len(s) && j < i+4 && s[j] >= '0' && s[j] <= '7' {
			value = value*8 + int(s[j]-'0')
			j++
		}
		return string(rune(value)), j, nil

	case 'x':
		return decodeHexEscape(s, i, 2)
	case 'u':
		return decodeHexEscape(s, i, 4)
	case 'U':
		return decodeHexEscape(s, i, 8)

	case 'N':
		return decodeNamedEscape(s, i, resolver)

	default:
		// any other escaped character is invalid and kept verbatim
		_, w := utf8.DecodeRuneInString(s[i+1:])
		return s[i : i+1+w], i + 1 + w, &UnescapeError{
			Kind:  UnescapeErrorInvalidEscapeSequence,
			Range: common.NewRange(i, 1+w),
		}
	}
}

// decodeHexEscape decodes \xHH, \uHHHH, and \UHHHHHHHH with an exact
// digit count. On insufficient or non-hex digits, the backslash and the
// escape letter are kept verbatim and the error covers just those two
// characters.
func decodeHexEscape(s string, i int, digits int) (string, int, *UnescapeError) {
	start := i + 2
	end := start + digits

	if end <= len(s) {
		value := 0
		ok := true
		for j := start; j < end; j++ {
			d := hexDigitValue(s[j])
			if d < 0 {
				ok = false
				break
			}
			value = value*16 + d
		}
		if ok && value <= utf8.MaxRune {
			return string(rune(value)), end, nil
		}
	}

	return s[i : i+2], i + 2, &UnescapeError{
		Kind:  UnescapeErrorInvalidEscapeSequence,
		Range: common.NewRange(i, 2),
	}
}

func hexDigitValue(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	default:
		return -1
	}
}

// decodeNamedEscape decodes \N{NAME}. NAME is any non-whitespace run
// terminated by '}'. Without a resolver the well-formed escape is kept
// verbatim without an error; name lookup is not a lexical concern.
func decodeNamedEscape(
	s string,
	i int,
	resolver UnicodeNameResolver,
) (string, int, *UnescapeError) {

	invalid := func() (string, int, *UnescapeError) {
		return s[i : i+2], i + 2, &UnescapeError{
			Kind:  UnescapeErrorInvalidEscapeSequence,
			Range: common.NewRange(i, 2),
		}
	}

	j := i + 2
	if j >= len(s) || s[j] != '{' {
		return invalid()
	}
	j++

	nameStart := j
	for {
		if j >= len(s) {
			// unterminated name
			return invalid()
		}
		c := s[j]
		if c == '}' {
			break
		}
		if c == ' ' || c == '\t' || c == '\f' || isLineBreak(rune(c)) {
			return invalid()
		}
		j++
	}

	name := s[nameStart:j]
	if name == "" {
		return invalid()
	}
	end := j + 1

	if resolver == nil {
		return s[i:end], end, nil
	}

	r, ok := resolver(name)
	if !ok {
		return invalid()
	}
	return string(r), end, nil
}

// unescapeFormat splits the body of a format string into literal and
// expression segments, decoding escapes in the literal parts.
//
// Inside an expression, quote state and the depths of ( [ { are
// tracked: a '}' at depth zero and outside strings closes the
// expression. Backslashes are not permitted within expressions.
func (v StringValue) unescapeFormat(resolver UnicodeNameResolver) UnescapedString {
	s := v.EscapedValue
	raw := v.Flags.Has(StringFlagRaw)

	var segments []FormatStringSegment
	var unescapeErrors []UnescapeError

	var literal strings.Builder
	literalStart := 0

	flushLiteral := func() {
		if literal.Len() == 0 {
			return
		}
		segments = append(segments, FormatStringSegment{
			Value:  literal.String(),
			Offset: literalStart,
		})
		literal.Reset()
	}

	i := 0
	for i < len(s) {
		switch c := s[i]; c {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				literal.WriteByte('{')
				i += 2
				continue
			}

			flushLiteral()
			braceOffset := i
			i++
			expressionStart := i

			closed := false
			var quote byte
			depth := 0

			for i < len(s) {
				ec := s[i]

				if ec == '\\' {
					// consumed, but never valid within an expression
					unescapeErrors = append(unescapeErrors, UnescapeError{
						Kind:  UnescapeErrorEscapeWithinFormatExpression,
						Range: common.NewRange(i, 1),
					})
					i++
					continue
				}

				if quote != 0 {
					if ec == quote {
						quote = 0
					}
					i++
					continue
				}

				switch ec {
				case '\'', '"':
					quote = ec
				case '(', '[', '{':
					depth++
				case ')', ']':
					if depth > 0 {
						depth--
					}
				case '}':
					if depth == 0 {
						closed = true
					} else {
						depth--
					}
				}

				if closed {
					break
				}
				i++
			}

			segments = append(segments, FormatStringSegment{
				Value:        s[expressionStart:i],
				Offset:       expressionStart,
				IsExpression: true,
			})

			if closed {
				i++
			} else {
				unescapeErrors = append(unescapeErrors, UnescapeError{
					Kind:  UnescapeErrorUnterminatedFormatExpression,
					Range: common.NewRange(braceOffset, 1),
				})
			}
			literalStart = i

		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				literal.WriteByte('}')
				i += 2
				continue
			}

			// a close brace must be doubled within a format literal
			unescapeErrors = append(unescapeErrors, UnescapeError{
				Kind:  UnescapeErrorSingleCloseBraceWithinFormatLiteral,
				Range: common.NewRange(i, 1),
			})
			flushLiteral()
			i++
			literalStart = i

		case '\\':
			if raw {
				literal.WriteByte(c)
				i++
				continue
			}
			text, next, unescapeError := decodeEscape(s, i, resolver)
			literal.WriteString(text)
			if unescapeError != nil {
				unescapeErrors = append(unescapeErrors, *unescapeError)
			}
			i = next

		default:
			literal.WriteByte(c)
			i++
		}
	}

	flushLiteral()

	var value strings.Builder
	for _, segment := range segments {
		value.WriteString(segment.Value)
	}

	return UnescapedString{
		Value:                value.String(),
		Errors:               unescapeErrors,
		FormatStringSegments: segments,
	}
}
