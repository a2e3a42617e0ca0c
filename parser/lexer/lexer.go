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
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pythia-lang/pythia/common"
	"github.com/pythia-lang/pythia/errors"
)

// tabSize is the tab expansion width used for indentation measurement:
// a tab advances the column to the next multiple of eight.
const tabSize = 8

// TokenizerOutput is the result of tokenizing a source text.
//
// Tokens and Lines are sorted, non-overlapping range collections.
// Line spans include their terminator bytes.
type TokenizerOutput struct {
	Tokens *common.RangeCollection[Token]
	Lines  *common.RangeCollection[common.Range]
	// PredominantEndOfLineSequence is the most frequent line terminator
	// in the source ("\n" if there is none).
	PredominantEndOfLineSequence string
	// PredominantTabSequence is the inferred indentation unit:
	// a tab, or a run of spaces.
	PredominantTabSequence string
}

// stateFn uses the input lexer to read runes and emit tokens.
//
// It either returns nil when reaching the end of the input,
// or returns another stateFn for more scanning work.
type stateFn func(*lexer) stateFn

type lexer struct {
	// input is the scanned slice of the source
	input []byte
	// tokens contains all tokens of the stream
	tokens *common.RangeCollection[Token]
	// lines contains the physical line spans, including terminator bytes
	lines *common.RangeCollection[common.Range]
	// pendingComments buffers comments until the next emitted token
	pendingComments []Comment
	// indents is the indentation amount stack; it always starts with 0
	indents []int
	// startOffset is the start offset of the current word
	startOffset int
	// offset is the current scan offset
	offset int
	// prevOffset is the previous scan offset, used for stepping back
	prevOffset int
	// lineStart is the start offset of the current physical line
	lineStart int
	// bracketDepth is the nesting count of unmatched ( [ {
	bracketDepth int
	// current is the currently scanned rune
	current rune
	// prev is the previously scanned rune, used for stepping back
	prev rune
	// canBackup indicates whether stepping back is allowed
	canBackup bool

	// counters for the predominant end-of-line sequence
	lineFeedCount               int
	carriageReturnCount         int
	carriageReturnLineFeedCount int

	// counters for the predominant tab sequence
	indentCount       int
	indentTabCount    int
	indentSpaceCount  int
	indentSpacesTotal int
}

// Tokenize converts the source text into a token stream and a line index.
//
// Offsets and lengths in the result are bytes of the UTF-8 input.
// Tokenization is a pure function: it never fails, holds no state across
// calls, and is safe to run concurrently on disjoint inputs.
// All anomalies in the source are encoded in the tokens themselves.
func Tokenize(input []byte) *TokenizerOutput {
	return TokenizeRange(input, 0, len(input))
}

// TokenizeRange tokenizes input[start:start+length].
// Emitted ranges are absolute offsets into input.
func TokenizeRange(input []byte, start, length int) *TokenizerOutput {

	// A scan must never panic: anomalies become tokens. If one does,
	// surface it as an internal error with the cause preserved.
	defer func() {
		if r := recover(); r != nil {
			var err error
			switch r := r.(type) {
			case errors.InternalError:
				panic(r)
			case error:
				err = r
			default:
				err = fmt.Errorf("lexer: %v", r)
			}
			panic(errors.NewUnexpectedErrorFromCause(err))
		}
	}()

	l := &lexer{
		input:   input[start : start+length],
		tokens:  &common.RangeCollection[Token]{},
		lines:   &common.RangeCollection[common.Range]{},
		indents: make([]int, 1, 8),
		current: EOF,
		prev:    EOF,
	}

	l.run()

	if start != 0 {
		tokens := l.tokens.Items()
		for i := range tokens {
			tokens[i].Start += start
			comments := tokens[i].Comments
			for j := range comments {
				comments[j].Start += start
			}
		}
		lines := l.lines.Items()
		for i := range lines {
			lines[i].Start += start
		}
	}

	return &TokenizerOutput{
		Tokens:                       l.tokens,
		Lines:                        l.lines,
		PredominantEndOfLineSequence: l.predominantEndOfLineSequence(),
		PredominantTabSequence:       l.predominantTabSequence(),
	}
}

// run executes the stateFn, which will scan the runes in the input
// and emit tokens.
//
// stateFn might return another stateFn to indicate further scanning work,
// or nil if there is no scanning work left to be done,
// i.e. run will keep running the returned stateFn until no more
// stateFn is returned, which happens when reaching the end of the input.
func (l *lexer) run() {
	for state := lineStartState; state != nil; {
		state = state(l)
	}
	l.finish()
}

// lineStartState measures the indentation of a fresh physical line and
// emits indent/dedent tokens as needed, then hands over to rootState.
//
// Blank lines and comment-only lines never change indentation, and
// inside brackets the measured indentation is suppressed entirely.
func lineStartState(l *lexer) stateFn {
	amount, sawSpace, sawTab := l.scanIndentation()

	r := l.peekRune()
	switch {
	case r == EOF:
		l.discard()
		return nil

	case isLineBreak(r), r == '#':
		l.discard()

	default:
		if l.bracketDepth == 0 {
			l.setIndent(amount, sawSpace, sawTab)
		} else {
			l.discard()
		}
	}

	return rootState
}

// rootState scans the remainder of the current logical line and emits
// tokens until reaching a line end or the end of the input.
func rootState(l *lexer) stateFn {
	for {
		r := l.next()
		switch r {
		case EOF:
			return nil

		case '\n', '\r':
			l.handleLineEnd(r)
			return lineStartState

		case ' ', '\t', '\f':
			l.acceptWhile(isWhitespace)
			l.discard()

		case '#':
			l.scanComment()

		case '\\':
			switch l.next() {
			case '\n', '\r':
				// explicit line continuation: the logical line goes on
				l.countLineTerminator(l.current)
				l.discard()
			case EOF:
				l.emitType(TokenInvalid)
			default:
				l.backupOne()
				l.emitType(TokenInvalid)
			}

		case '\'', '"':
			l.scanString(r, 0, 0)

		case '+':
			if l.acceptOne('=') {
				l.emitOperator(OperatorAddEqual)
			} else {
				l.emitOperator(OperatorAdd)
			}

		case '-':
			if l.acceptOne('>') {
				l.emitType(TokenArrow)
			} else if l.acceptOne('=') {
				l.emitOperator(OperatorSubtractEqual)
			} else {
				l.emitOperator(OperatorSubtract)
			}

		case '*':
			if l.acceptOne('*') {
				if l.acceptOne('=') {
					l.emitOperator(OperatorPowerEqual)
				} else {
					l.emitOperator(OperatorPower)
				}
			} else if l.acceptOne('=') {
				l.emitOperator(OperatorMultiplyEqual)
			} else {
				l.emitOperator(OperatorMultiply)
			}

		case '/':
			if l.acceptOne('/') {
				if l.acceptOne('=') {
					l.emitOperator(OperatorFloorDivideEqual)
				} else {
					l.emitOperator(OperatorFloorDivide)
				}
			} else if l.acceptOne('=') {
				l.emitOperator(OperatorDivideEqual)
			} else {
				l.emitOperator(OperatorDivide)
			}

		case '%':
			if l.acceptOne('=') {
				l.emitOperator(OperatorModEqual)
			} else {
				l.emitOperator(OperatorMod)
			}

		case '@':
			if l.acceptOne('=') {
				l.emitOperator(OperatorMatrixMultiplyEqual)
			} else {
				l.emitOperator(OperatorMatrixMultiply)
			}

		case '&':
			if l.acceptOne('=') {
				l.emitOperator(OperatorBitwiseAndEqual)
			} else {
				l.emitOperator(OperatorBitwiseAnd)
			}

		case '|':
			if l.acceptOne('=') {
				l.emitOperator(OperatorBitwiseOrEqual)
			} else {
				l.emitOperator(OperatorBitwiseOr)
			}

		case '^':
			if l.acceptOne('=') {
				l.emitOperator(OperatorBitwiseXorEqual)
			} else {
				l.emitOperator(OperatorBitwiseXor)
			}

		case '~':
			l.emitOperator(OperatorBitwiseInvert)

		case '<':
			if l.acceptOne('<') {
				if l.acceptOne('=') {
					l.emitOperator(OperatorLeftShiftEqual)
				} else {
					l.emitOperator(OperatorLeftShift)
				}
			} else if l.acceptOne('=') {
				l.emitOperator(OperatorLessThanOrEqual)
			} else {
				l.emitOperator(OperatorLessThan)
			}

		case '>':
			if l.acceptOne('>') {
				if l.acceptOne('=') {
					l.emitOperator(OperatorRightShiftEqual)
				} else {
					l.emitOperator(OperatorRightShift)
				}
			} else if l.acceptOne('=') {
				l.emitOperator(OperatorGreaterThanOrEqual)
			} else {
				l.emitOperator(OperatorGreaterThan)
			}

		case '=':
			if l.acceptOne('=') {
				l.emitOperator(OperatorEquals)
			} else {
				l.emitOperator(OperatorAssign)
			}

		case '!':
			if l.acceptOne('=') {
				l.emitOperator(OperatorNotEquals)
			} else {
				l.emitType(TokenInvalid)
			}

		case ':':
			if l.acceptOne('=') {
				l.emitOperator(OperatorWalrus)
			} else {
				l.emitType(TokenColon)
			}

		case ';':
			l.emitType(TokenSemicolon)

		case ',':
			l.emitType(TokenComma)

		case '(':
			l.bracketDepth++
			l.emitType(TokenParenOpen)

		case ')':
			if l.bracketDepth > 0 {
				l.bracketDepth--
			}
			l.emitType(TokenParenClose)

		case '[':
			l.bracketDepth++
			l.emitType(TokenBracketOpen)

		case ']':
			if l.bracketDepth > 0 {
				l.bracketDepth--
			}
			l.emitType(TokenBracketClose)

		case '{':
			l.bracketDepth++
			l.emitType(TokenBraceOpen)

		case '}':
			if l.bracketDepth > 0 {
				l.bracketDepth--
			}
			l.emitType(TokenBraceClose)

		case '.':
			if b := l.peekByte(0); b >= '0' && b <= '9' {
				l.scanNumber(r)
			} else {
				l.scanDots()
			}

		default:
			switch {
			case r >= '0' && r <= '9':
				l.scanNumber(r)

			case IsIdentifierStart(r):
				if flags, prefixLength, ok := l.stringPrefix(r); ok {
					l.scanPrefixedString(flags, prefixLength)
				} else {
					l.scanIdentifierOrKeyword()
				}

			default:
				l.emitType(TokenInvalid)
			}
		}
	}
}

// finish appends the end-of-input tokens: an implied newline if the last
// token is not already a newline, one dedent per open indentation level,
// and the end-of-stream token. It also closes the final physical line.
func (l *lexer) finish() {
	if !l.lastTokenIsNewLine() {
		l.emit(TokenNewLine, NewLineKindImplied)
	}

	l.setIndent(0, false, false)

	l.emitType(TokenEndOfStream)

	if l.lineStart < len(l.input) || l.lines.Count() == 0 {
		l.lines.Append(common.NewRange(l.lineStart, len(l.input)-l.lineStart))
	}
}

// next decodes the next rune (UTF-8 character) from the input.
//
// It returns EOF without advancing if it reaches the end of the input,
// otherwise returns the scanned rune.
func (l *lexer) next() rune {
	l.canBackup = true
	l.prevOffset = l.offset
	l.prev = l.current

	r := EOF
	if l.offset < len(l.input) {
		var w int
		r, w = utf8.DecodeRune(l.input[l.offset:])
		l.offset += w
	}
	l.current = r
	return r
}

// backupOne steps back one rune.
// Can be called only once per call of next.
func (l *lexer) backupOne() {
	if !l.canBackup {
		panic("second backup")
	}
	l.canBackup = false

	l.offset = l.prevOffset
	l.current = l.prev
}

// acceptOne reads one rune ahead.
// It returns true if the next rune matches with the input rune,
// otherwise it steps back one rune and returns false.
func (l *lexer) acceptOne(r rune) bool {
	if l.next() == r {
		return true
	}
	l.backupOne()
	return false
}

func (l *lexer) acceptWhile(f func(rune) bool) {
	for {
		r := l.next()
		if f(r) {
			continue
		}
		l.backupOne()
		return
	}
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return EOF
	}
	r, _ := utf8.DecodeRune(l.input[l.offset:])
	return r
}

// peekByte returns the byte delta positions ahead of the scan offset,
// or 0 past the end of the input.
func (l *lexer) peekByte(delta int) byte {
	i := l.offset + delta
	if i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

func (l *lexer) word() []byte {
	return l.input[l.startOffset:l.offset]
}

// discard drops the scanned word without emitting a token.
func (l *lexer) discard() {
	l.startOffset = l.offset
}

func (l *lexer) emit(ty TokenType, value any) {
	token := Token{
		Type:  ty,
		Value: value,
		Range: common.NewRange(l.startOffset, l.offset-l.startOffset),
	}

	if len(l.pendingComments) > 0 {
		token.Comments = l.pendingComments
		l.pendingComments = nil
	}

	l.tokens.Append(token)
	l.startOffset = l.offset
}

func (l *lexer) emitType(ty TokenType) {
	l.emit(ty, nil)
}

func (l *lexer) emitOperator(op OperatorType) {
	l.emit(TokenOperator, op)
}

func (l *lexer) lastTokenIsNewLine() bool {
	count := l.tokens.Count()
	return count > 0 && l.tokens.ItemAt(count-1).Is(TokenNewLine)
}

// countLineTerminator consumes the rest of the terminator (the LF of a
// CRLF pair), updates the end-of-line statistics, and closes the
// physical line. The leading rune r is already consumed.
func (l *lexer) countLineTerminator(r rune) NewLineKind {
	var kind NewLineKind
	switch r {
	case '\n':
		kind = NewLineKindLineFeed
		l.lineFeedCount++

	case '\r':
		if l.acceptOne('\n') {
			kind = NewLineKindCarriageReturnLineFeed
			l.carriageReturnLineFeedCount++
		} else {
			kind = NewLineKindCarriageReturn
			l.carriageReturnCount++
		}

	default:
		panic(errors.NewUnreachableError())
	}

	l.lines.Append(common.NewRange(l.lineStart, l.offset-l.lineStart))
	l.lineStart = l.offset

	return kind
}

// handleLineEnd processes a line terminator outside a string.
// Inside brackets the terminator is swallowed, and consecutive newlines
// collapse into the first newline token.
func (l *lexer) handleLineEnd(r rune) {
	kind := l.countLineTerminator(r)

	if l.bracketDepth > 0 || l.lastTokenIsNewLine() {
		l.discard()
		return
	}

	l.emit(TokenNewLine, kind)
}

// scanIndentation consumes the leading whitespace of a line and returns
// its tab-expanded width. A form feed resets the measurement.
func (l *lexer) scanIndentation() (amount int, sawSpace, sawTab bool) {
	for {
		switch l.next() {
		case ' ':
			amount++
			sawSpace = true

		case '\t':
			amount += tabSize - amount%tabSize
			sawTab = true

		case '\f':
			amount = 0

		default:
			l.backupOne()
			return
		}
	}
}

// setIndent compares the measured indentation amount against the
// indentation stack and emits indent/dedent tokens.
//
// An indent token covers the leading whitespace of its line.
// Dedent tokens have length 0. When dedenting to an amount that matches
// no previously pushed level, the final dedent is marked accordingly.
func (l *lexer) setIndent(amount int, isSpacePresent, isTabPresent bool) {
	tos := l.indents[len(l.indents)-1]

	switch {
	case amount == tos:
		l.discard()

	case amount > tos:
		l.indents = append(l.indents, amount)

		l.indentCount++
		if isTabPresent {
			l.indentTabCount++
		} else if isSpacePresent {
			l.indentSpaceCount++
			l.indentSpacesTotal += amount - tos
		}

		l.emit(TokenIndent, IndentValue{
			Amount:      amount,
			IsAmbiguous: isSpacePresent && isTabPresent,
		})

	default:
		l.discard()

		for len(l.indents) > 1 && l.indents[len(l.indents)-1] > amount {
			l.indents = l.indents[:len(l.indents)-1]
			tos := l.indents[len(l.indents)-1]

			if tos > amount {
				l.emit(TokenDedent, DedentValue{
					Amount:        tos,
					MatchesIndent: true,
				})
			} else {
				l.emit(TokenDedent, DedentValue{
					Amount:        amount,
					MatchesIndent: tos == amount,
				})
			}
		}
	}
}

// scanComment consumes a '#' comment to the end of the line and buffers
// it. Comments are not tokens: they attach to the next emitted token.
func (l *lexer) scanComment() {
	l.acceptWhile(func(r rune) bool {
		return !(isLineBreak(r) || r == EOF)
	})

	l.pendingComments = append(
		l.pendingComments,
		Comment{
			Text:  string(l.input[l.startOffset+1 : l.offset]),
			Range: common.NewRange(l.startOffset, l.offset-l.startOffset),
		},
	)

	l.discard()
}

// scanDots scans '.' runs: an ellipsis if exactly three dots follow each
// other, a single dot token otherwise.
func (l *lexer) scanDots() {
	if l.peekByte(0) == '.' && l.peekByte(1) == '.' {
		l.next()
		l.next()
		l.emitType(TokenEllipsis)
	} else {
		l.emitType(TokenDot)
	}
}

func (l *lexer) scanIdentifierOrKeyword() {
	l.acceptWhile(IsIdentifierContinue)

	word := string(l.word())
	if keyword, ok := keywordType(word); ok {
		l.emit(TokenKeyword, keyword)
	} else {
		l.emit(TokenIdentifier, word)
	}
}

func (l *lexer) predominantEndOfLineSequence() string {
	switch {
	case l.carriageReturnLineFeedCount > l.lineFeedCount &&
		l.carriageReturnLineFeedCount > l.carriageReturnCount:
		return "\r\n"

	case l.carriageReturnCount > l.lineFeedCount &&
		l.carriageReturnCount > l.carriageReturnLineFeedCount:
		return "\r"

	default:
		return "\n"
	}
}

func (l *lexer) predominantTabSequence() string {
	if l.indentTabCount > l.indentCount/2 {
		return "\t"
	}

	if l.indentSpaceCount > 0 {
		average := (l.indentSpacesTotal + l.indentSpaceCount/2) / l.indentSpaceCount
		if average >= 1 && average <= tabSize {
			return strings.Repeat(" ", average)
		}
	}

	return strings.Repeat(" ", 4)
}
