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

type OperatorType uint8

const (
	OperatorAdd OperatorType = iota
	OperatorSubtract
	OperatorMultiply
	OperatorPower
	OperatorDivide
	OperatorFloorDivide
	OperatorMod
	OperatorMatrixMultiply
	OperatorLeftShift
	OperatorRightShift
	OperatorBitwiseAnd
	OperatorBitwiseOr
	OperatorBitwiseXor
	OperatorBitwiseInvert
	OperatorLessThan
	OperatorLessThanOrEqual
	OperatorGreaterThan
	OperatorGreaterThanOrEqual
	OperatorEquals
	OperatorNotEquals
	OperatorAssign
	OperatorWalrus
	OperatorAddEqual
	OperatorSubtractEqual
	OperatorMultiplyEqual
	OperatorPowerEqual
	OperatorDivideEqual
	OperatorFloorDivideEqual
	OperatorModEqual
	OperatorMatrixMultiplyEqual
	OperatorLeftShiftEqual
	OperatorRightShiftEqual
	OperatorBitwiseAndEqual
	OperatorBitwiseOrEqual
	OperatorBitwiseXorEqual
	// NOTE: not an actual operator, must be last item
	OperatorMax
)

func init() {
	// ensure all operators have its string format
	for op := OperatorType(0); op < OperatorMax; op++ {
		_ = op.String()
	}
}

func (op OperatorType) String() string {
	switch op {
	case OperatorAdd:
		return `'+'`
	case OperatorSubtract:
		return `'-'`
	case OperatorMultiply:
		return `'*'`
	case OperatorPower:
		return `'**'`
	case OperatorDivide:
		return `'/'`
	case OperatorFloorDivide:
		return `'//'`
	case OperatorMod:
		return `'%'`
	case OperatorMatrixMultiply:
		return `'@'`
	case OperatorLeftShift:
		return `'<<'`
	case OperatorRightShift:
		return `'>>'`
	case OperatorBitwiseAnd:
		return `'&'`
	case OperatorBitwiseOr:
		return `'|'`
	case OperatorBitwiseXor:
		return `'^'`
	case OperatorBitwiseInvert:
		return `'~'`
	case OperatorLessThan:
		return `'<'`
	case OperatorLessThanOrEqual:
		return `'<='`
	case OperatorGreaterThan:
		return `'>'`
	case OperatorGreaterThanOrEqual:
		return `'>='`
	case OperatorEquals:
		return `'=='`
	case OperatorNotEquals:
		return `'!='`
	case OperatorAssign:
		return `'='`
	case OperatorWalrus:
		return `':='`
	case OperatorAddEqual:
		return `'+='`
	case OperatorSubtractEqual:
		return `'-='`
	case OperatorMultiplyEqual:
		return `'*='`
	case OperatorPowerEqual:
		return `'**='`
	case OperatorDivideEqual:
		return `'/='`
	case OperatorFloorDivideEqual:
		return `'//='`
	case OperatorModEqual:
		return `'%='`
	case OperatorMatrixMultiplyEqual:
		return `'@='`
	case OperatorLeftShiftEqual:
		return `'<<='`
	case OperatorRightShiftEqual:
		return `'>>='`
	case OperatorBitwiseAndEqual:
		return `'&='`
	case OperatorBitwiseOrEqual:
		return `'|='`
	case OperatorBitwiseXorEqual:
		return `'^='`
	default:
		panic(errors.NewUnreachableError())
	}
}

// IsComparisonOperator returns true for the operators valid in a
// comparison expression. The keyword comparison operators
// (in, not in, is, is not) are keywords, not operator tokens,
// and are handled by the parser's keyword lookahead.
func IsComparisonOperator(op OperatorType) bool {
	switch op {
	case OperatorLessThan,
		OperatorLessThanOrEqual,
		OperatorGreaterThan,
		OperatorGreaterThanOrEqual,
		OperatorEquals,
		OperatorNotEquals:
		return true

	default:
		return false
	}
}

// IsAssignmentOperator returns true for plain assignment
// and all augmented assignment operators.
func IsAssignmentOperator(op OperatorType) bool {
	switch op {
	case OperatorAssign,
		OperatorAddEqual,
		OperatorSubtractEqual,
		OperatorMultiplyEqual,
		OperatorPowerEqual,
		OperatorDivideEqual,
		OperatorFloorDivideEqual,
		OperatorModEqual,
		OperatorMatrixMultiplyEqual,
		OperatorLeftShiftEqual,
		OperatorRightShiftEqual,
		OperatorBitwiseAndEqual,
		OperatorBitwiseOrEqual,
		OperatorBitwiseXorEqual:
		return true

	default:
		return false
	}
}
