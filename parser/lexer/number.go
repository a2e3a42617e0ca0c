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
	"strconv"
	"strings"

	"github.com/pythia-lang/pythia/errors"
)

// scanNumber scans a numeric literal. The leading rune r is already
// consumed: a decimal digit, or '.' immediately followed by a digit.
//
// Leading signs are never part of the literal; '+' and '-' are separate
// operator tokens.
func (l *lexer) scanNumber(r rune) {
	if r == '0' {
		switch l.peekByte(0) {
		case 'x', 'X':
			l.scanBasedInteger(isHexDigit, 16)
			return
		case 'o', 'O':
			l.scanBasedInteger(isOctalDigit, 8)
			return
		case 'b', 'B':
			l.scanBasedInteger(isBinaryDigit, 2)
			return
		}
	}

	isFloat := false

	if r != '.' {
		l.acceptWhile(isDecimalDigit)
		if l.acceptOne('.') {
			isFloat = true
			l.acceptWhile(isDecimalDigit)
		}
	} else {
		// the leading dot is already consumed
		isFloat = true
		l.acceptWhile(isDecimalDigit)
	}

	if l.scanExponent() {
		isFloat = true
	}

	if isFloat {
		l.emitFloat()
	} else {
		l.emitInteger(10, l.word())
	}
}

// scanBasedInteger scans the remainder of a hexadecimal, octal, or
// binary integer literal. The '0' is consumed; the base character is
// not yet.
//
// The digit run may contain underscore separators, including directly
// after the base prefix. If no actual digit follows the prefix, only
// the '0' becomes a number token and scanning resumes at the base
// character, which then starts an identifier.
func (l *lexer) scanBasedInteger(isDigit func(rune) bool, base int) {
	digits := 0
	end := l.offset + 1
	for end < len(l.input) {
		b := rune(l.input[end])
		if !isDigit(b) {
			break
		}
		if b != '_' {
			digits++
		}
		end++
	}

	if digits == 0 {
		l.emit(TokenNumber, NumberValue{
			Integer:   big.NewInt(0),
			IsInteger: true,
		})
		return
	}

	l.jumpTo(end)
	l.emitInteger(base, l.input[l.startOffset+2:l.offset])
}

// scanExponent scans an exponent ('e' or 'E', an optional sign, and a
// digit run) if one follows. It returns false without consuming
// anything when the characters after the 'e' cannot form an exponent.
func (l *lexer) scanExponent() bool {
	b := l.peekByte(0)
	if b != 'e' && b != 'E' {
		return false
	}

	next := l.peekByte(1)
	digitAt := 1
	if next == '+' || next == '-' {
		next = l.peekByte(2)
		digitAt = 2
	}
	if next < '0' || next > '9' {
		return false
	}

	l.jumpTo(l.offset + digitAt + 1)
	l.acceptWhile(isDecimalDigit)
	return true
}

// jumpTo moves the scan offset forward to a position that has already
// been validated byte-wise. Stepping back is no longer possible.
func (l *lexer) jumpTo(offset int) {
	l.offset = offset
	l.canBackup = false
}

func (l *lexer) emitInteger(base int, digits []byte) {
	text := strings.ReplaceAll(string(digits), "_", "")

	value, ok := new(big.Int).SetString(text, base)
	if !ok {
		// the scanned digit run is valid for the base
		panic(errors.NewUnreachableError())
	}

	l.emit(TokenNumber, NumberValue{
		Integer:   value,
		IsInteger: true,
	})
}

func (l *lexer) emitFloat() {
	text := strings.ReplaceAll(string(l.word()), "_", "")

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// the scanned literal is a valid floating-point form;
		// a value beyond the float64 range converts to infinity
		if numErr, ok := err.(*strconv.NumError); !ok || numErr.Err != strconv.ErrRange {
			panic(errors.NewUnreachableError())
		}
	}

	l.emit(TokenNumber, NumberValue{
		Float: value,
	})
}
