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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pythia-lang/pythia/common"
	"github.com/pythia-lang/pythia/test_utils"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLex(t *testing.T, input string, expected []Token) {

	t.Parallel()

	actual := Tokenize([]byte(input)).Tokens.Items()
	test_utils.AssertEqualWithDiff(t, expected, actual)
}

// tokenTypes reduces a token slice to its types,
// for tests that don't care about ranges and payloads
func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, 0, len(tokens))
	for _, token := range tokens {
		types = append(types, token.Type)
	}
	return types
}

func TestLexBasic(t *testing.T) {

	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		testLex(t,
			"",
			[]Token{
				{
					Type:  TokenNewLine,
					Value: NewLineKindImplied,
					Range: common.NewRange(0, 0),
				},
				{
					Type:  TokenEndOfStream,
					Range: common.NewRange(0, 0),
				},
			},
		)
	})

	t.Run("empty input has one line", func(t *testing.T) {
		t.Parallel()

		output := Tokenize(nil)
		assert.Equal(t, 1, output.Lines.Count())
		assert.Equal(t, common.NewRange(0, 0), output.Lines.ItemAt(0))
	})

	t.Run("assignment", func(t *testing.T) {
		testLex(t,
			"x = 1",
			[]Token{
				{
					Type:  TokenIdentifier,
					Value: "x",
					Range: common.NewRange(0, 1),
				},
				{
					Type:  TokenOperator,
					Value: OperatorAssign,
					Range: common.NewRange(2, 1),
				},
				{
					Type: TokenNumber,
					Value: NumberValue{
						Integer:   big.NewInt(1),
						IsInteger: true,
					},
					Range: common.NewRange(4, 1),
				},
				{
					Type:  TokenNewLine,
					Value: NewLineKindImplied,
					Range: common.NewRange(5, 0),
				},
				{
					Type:  TokenEndOfStream,
					Range: common.NewRange(5, 0),
				},
			},
		)
	})

	t.Run("walrus and arrow", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("def f() -> int: (n := 1)")).Tokens.Items()
		test_utils.AssertEqualWithDiff(t,
			[]TokenType{
				TokenKeyword,
				TokenIdentifier,
				TokenParenOpen,
				TokenParenClose,
				TokenArrow,
				TokenIdentifier,
				TokenColon,
				TokenParenOpen,
				TokenIdentifier,
				TokenOperator,
				TokenNumber,
				TokenParenClose,
				TokenNewLine,
				TokenEndOfStream,
			},
			tokenTypes(tokens),
		)

		assert.Equal(t, OperatorWalrus, tokens[9].OperatorType())
	})
}

func TestLexNewLines(t *testing.T) {

	t.Parallel()

	t.Run("LF, CRLF, and CR", func(t *testing.T) {
		testLex(t,
			"\na\r\nb\r",
			[]Token{
				{
					Type:  TokenNewLine,
					Value: NewLineKindLineFeed,
					Range: common.NewRange(0, 1),
				},
				{
					Type:  TokenIdentifier,
					Value: "a",
					Range: common.NewRange(1, 1),
				},
				{
					Type:  TokenNewLine,
					Value: NewLineKindCarriageReturnLineFeed,
					Range: common.NewRange(2, 2),
				},
				{
					Type:  TokenIdentifier,
					Value: "b",
					Range: common.NewRange(4, 1),
				},
				{
					Type:  TokenNewLine,
					Value: NewLineKindCarriageReturn,
					Range: common.NewRange(5, 1),
				},
				{
					Type:  TokenEndOfStream,
					Range: common.NewRange(6, 0),
				},
			},
		)
	})

	t.Run("lines include terminator bytes", func(t *testing.T) {
		t.Parallel()

		output := Tokenize([]byte("\na\r\nb\r"))
		test_utils.AssertEqualWithDiff(t,
			[]common.Range{
				common.NewRange(0, 1),
				common.NewRange(1, 3),
				common.NewRange(4, 2),
			},
			output.Lines.Items(),
		)
	})

	t.Run("consecutive newlines collapse", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("a\n\n\nb\n")).Tokens.Items()
		test_utils.AssertEqualWithDiff(t,
			[]TokenType{
				TokenIdentifier,
				TokenNewLine,
				TokenIdentifier,
				TokenNewLine,
				TokenEndOfStream,
			},
			tokenTypes(tokens),
		)

		// the first terminator wins for the subtype
		assert.Equal(t, NewLineKindLineFeed, tokens[1].NewLineKind())
	})

	t.Run("no implied newline after a real one", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("a\n")).Tokens.Items()
		require.Len(t, tokens, 3)
		assert.Equal(t, NewLineKindLineFeed, tokens[1].NewLineKind())
	})

	t.Run("line continuation", func(t *testing.T) {
		t.Parallel()

		output := Tokenize([]byte("a = \\\n    1"))
		test_utils.AssertEqualWithDiff(t,
			[]TokenType{
				TokenIdentifier,
				TokenOperator,
				TokenNumber,
				TokenNewLine,
				TokenEndOfStream,
			},
			tokenTypes(output.Tokens.Items()),
		)

		// the continuation still ends a physical line
		assert.Equal(t, 2, output.Lines.Count())
	})

	t.Run("stray backslash", func(t *testing.T) {
		testLex(t,
			"a \\ b",
			[]Token{
				{
					Type:  TokenIdentifier,
					Value: "a",
					Range: common.NewRange(0, 1),
				},
				{
					Type:  TokenInvalid,
					Range: common.NewRange(2, 1),
				},
				{
					Type:  TokenIdentifier,
					Value: "b",
					Range: common.NewRange(4, 1),
				},
				{
					Type:  TokenNewLine,
					Value: NewLineKindImplied,
					Range: common.NewRange(5, 0),
				},
				{
					Type:  TokenEndOfStream,
					Range: common.NewRange(5, 0),
				},
			},
		)
	})
}

func TestLexDots(t *testing.T) {

	t.Parallel()

	t.Run("dot runs", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte(". .. ... ....")).Tokens.Items()
		test_utils.AssertEqualWithDiff(t,
			[]TokenType{
				TokenDot,
				TokenDot,
				TokenDot,
				TokenEllipsis,
				TokenEllipsis,
				TokenDot,
				TokenNewLine,
				TokenEndOfStream,
			},
			tokenTypes(tokens),
		)
	})
}

func TestLexIndentation(t *testing.T) {

	t.Parallel()

	t.Run("indent, tab expansion, unmatched dedent", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("test\n  i1\n  i2  # \n       # \n  \ti3\n\ti4\n i1")).Tokens.Items()

		test_utils.AssertEqualWithDiff(t,
			[]TokenType{
				TokenIdentifier, // test
				TokenNewLine,
				TokenIndent,
				TokenIdentifier, // i1
				TokenNewLine,
				TokenIdentifier, // i2
				TokenNewLine,
				TokenIndent,
				TokenIdentifier, // i3
				TokenNewLine,
				TokenIdentifier, // i4
				TokenNewLine,
				TokenDedent,
				TokenDedent,
				TokenIdentifier, // i1
				TokenNewLine,
				TokenEndOfStream,
			},
			tokenTypes(tokens),
		)

		assert.Equal(t,
			IndentValue{Amount: 2},
			tokens[2].Value,
		)

		// two spaces then a tab expand to the next multiple of eight
		assert.Equal(t,
			IndentValue{Amount: 8, IsAmbiguous: true},
			tokens[7].Value,
		)

		assert.Equal(t,
			DedentValue{Amount: 2, MatchesIndent: true},
			tokens[12].Value,
		)

		// one space matches no pushed indentation level
		assert.Equal(t,
			DedentValue{Amount: 1, MatchesIndent: false},
			tokens[13].Value,
		)
	})

	t.Run("comment-only line keeps indentation", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("a\n  b\n      # deep\n  c\n")).Tokens.Items()
		test_utils.AssertEqualWithDiff(t,
			[]TokenType{
				TokenIdentifier,
				TokenNewLine,
				TokenIndent,
				TokenIdentifier,
				TokenNewLine,
				TokenIdentifier,
				TokenNewLine,
				TokenDedent,
				TokenEndOfStream,
			},
			tokenTypes(tokens),
		)
	})

	t.Run("dedents unwind at end of input", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("a\n  b\n    c\n")).Tokens.Items()
		test_utils.AssertEqualWithDiff(t,
			[]TokenType{
				TokenIdentifier,
				TokenNewLine,
				TokenIndent,
				TokenIdentifier,
				TokenNewLine,
				TokenIndent,
				TokenIdentifier,
				TokenNewLine,
				TokenDedent,
				TokenDedent,
				TokenEndOfStream,
			},
			tokenTypes(tokens),
		)

		test_utils.AssertEqualWithDiff(t,
			[]any{
				DedentValue{Amount: 2, MatchesIndent: true},
				DedentValue{Amount: 0, MatchesIndent: true},
			},
			[]any{
				tokens[8].Value,
				tokens[9].Value,
			},
		)
	})

	t.Run("indent token covers the leading whitespace", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("a\n    b")).Tokens.Items()
		require.Equal(t, TokenIndent, tokens[2].Type)
		assert.Equal(t, common.NewRange(2, 4), tokens[2].Range)
	})

	t.Run("brackets suppress indentation and newlines", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("test (\n  i1\n       )\n  foo")).Tokens.Items()
		test_utils.AssertEqualWithDiff(t,
			[]TokenType{
				TokenIdentifier, // test
				TokenParenOpen,
				TokenIdentifier, // i1
				TokenParenClose,
				TokenNewLine,
				TokenIndent,
				TokenIdentifier, // foo
				TokenNewLine,
				TokenDedent,
				TokenEndOfStream,
			},
			tokenTypes(tokens),
		)
	})
}

func TestLexKeywords(t *testing.T) {

	t.Parallel()

	t.Run("keywords and identifiers", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("async def f(): await g")).Tokens.Items()

		require.Equal(t, TokenKeyword, tokens[0].Type)
		assert.Equal(t, KeywordTypeAsync, tokens[0].KeywordType())

		require.Equal(t, TokenKeyword, tokens[1].Type)
		assert.Equal(t, KeywordTypeDef, tokens[1].KeywordType())

		require.Equal(t, TokenIdentifier, tokens[2].Type)
		assert.Equal(t, "f", tokens[2].Identifier())
	})

	t.Run("__debug__ is a keyword", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("__debug__")).Tokens.Items()
		require.Equal(t, TokenKeyword, tokens[0].Type)
		assert.Equal(t, KeywordTypeDebug, tokens[0].KeywordType())
	})

	t.Run("keywords are case-sensitive", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("True true")).Tokens.Items()
		assert.Equal(t, TokenKeyword, tokens[0].Type)
		assert.Equal(t, TokenIdentifier, tokens[1].Type)
	})
}

func TestLexOperators(t *testing.T) {

	t.Parallel()

	t.Run("maximal munch", func(t *testing.T) {
		t.Parallel()

		type operatorTest struct {
			input    string
			operator OperatorType
		}

		tests := []operatorTest{
			{"+", OperatorAdd},
			{"+=", OperatorAddEqual},
			{"-", OperatorSubtract},
			{"-=", OperatorSubtractEqual},
			{"*", OperatorMultiply},
			{"*=", OperatorMultiplyEqual},
			{"**", OperatorPower},
			{"**=", OperatorPowerEqual},
			{"/", OperatorDivide},
			{"/=", OperatorDivideEqual},
			{"//", OperatorFloorDivide},
			{"//=", OperatorFloorDivideEqual},
			{"%", OperatorMod},
			{"%=", OperatorModEqual},
			{"@", OperatorMatrixMultiply},
			{"@=", OperatorMatrixMultiplyEqual},
			{"<<", OperatorLeftShift},
			{"<<=", OperatorLeftShiftEqual},
			{">>", OperatorRightShift},
			{">>=", OperatorRightShiftEqual},
			{"&", OperatorBitwiseAnd},
			{"&=", OperatorBitwiseAndEqual},
			{"|", OperatorBitwiseOr},
			{"|=", OperatorBitwiseOrEqual},
			{"^", OperatorBitwiseXor},
			{"^=", OperatorBitwiseXorEqual},
			{"~", OperatorBitwiseInvert},
			{"<", OperatorLessThan},
			{"<=", OperatorLessThanOrEqual},
			{">", OperatorGreaterThan},
			{">=", OperatorGreaterThanOrEqual},
			{"=", OperatorAssign},
			{"==", OperatorEquals},
			{"!=", OperatorNotEquals},
			{":=", OperatorWalrus},
		}

		for _, test := range tests {
			tokens := Tokenize([]byte(test.input)).Tokens.Items()
			require.Equal(t, TokenOperator, tokens[0].Type, "input: %s", test.input)
			assert.Equal(t, test.operator, tokens[0].OperatorType(), "input: %s", test.input)
			assert.Equal(t, common.NewRange(0, len(test.input)), tokens[0].Range, "input: %s", test.input)
		}
	})

	t.Run("lone exclamation mark is invalid", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("! x")).Tokens.Items()
		assert.Equal(t, TokenInvalid, tokens[0].Type)
	})

	t.Run("negative number is two tokens", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("-1")).Tokens.Items()
		test_utils.AssertEqualWithDiff(t,
			[]TokenType{
				TokenOperator,
				TokenNumber,
				TokenNewLine,
				TokenEndOfStream,
			},
			tokenTypes(tokens),
		)
	})

	t.Run("unary minus before float literal", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("- -.4e1")).Tokens.Items()
		test_utils.AssertEqualWithDiff(t,
			[]TokenType{
				TokenOperator,
				TokenOperator,
				TokenNumber,
				TokenNewLine,
				TokenEndOfStream,
			},
			tokenTypes(tokens),
		)

		assert.Equal(t,
			NumberValue{Float: 4},
			tokens[2].NumberValue(),
		)
	})

	t.Run("predicates", func(t *testing.T) {
		t.Parallel()

		assert.True(t, IsComparisonOperator(OperatorLessThan))
		assert.True(t, IsComparisonOperator(OperatorNotEquals))
		assert.False(t, IsComparisonOperator(OperatorAssign))
		assert.False(t, IsComparisonOperator(OperatorBitwiseAnd))

		assert.True(t, IsAssignmentOperator(OperatorAssign))
		assert.True(t, IsAssignmentOperator(OperatorMatrixMultiplyEqual))
		assert.False(t, IsAssignmentOperator(OperatorEquals))
		assert.False(t, IsAssignmentOperator(OperatorWalrus))
	})
}

func TestLexComments(t *testing.T) {

	t.Parallel()

	t.Run("trailing comment attaches to the newline", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("a = 1  # note\nb")).Tokens.Items()

		require.Equal(t, TokenNewLine, tokens[3].Type)
		test_utils.AssertEqualWithDiff(t,
			[]Comment{
				{
					Text:  " note",
					Range: common.NewRange(7, 6),
				},
			},
			tokens[3].Comments,
		)
	})

	t.Run("leading comment attaches to its line's newline", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("# banner\nx = 1")).Tokens.Items()

		require.Equal(t, TokenNewLine, tokens[0].Type)
		test_utils.AssertEqualWithDiff(t,
			[]Comment{
				{
					Text:  " banner",
					Range: common.NewRange(0, 8),
				},
			},
			tokens[0].Comments,
		)

		require.Equal(t, TokenIdentifier, tokens[1].Type)
	})

	t.Run("comment after elided newline attaches forward", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("a\n# note\nb")).Tokens.Items()

		// line 2's newline is elided, so the comment rides
		// on the next statement's first token
		require.Equal(t, TokenIdentifier, tokens[2].Type)
		require.Len(t, tokens[2].Comments, 1)
		assert.Equal(t, " note", tokens[2].Comments[0].Text)
	})

	t.Run("comments are never standalone tokens", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("# only a comment")).Tokens.Items()
		test_utils.AssertEqualWithDiff(t,
			[]TokenType{
				TokenNewLine,
				TokenEndOfStream,
			},
			tokenTypes(tokens),
		)

		require.Len(t, tokens[0].Comments, 1)
	})
}

func TestLexInvalid(t *testing.T) {

	t.Parallel()

	t.Run("unknown characters", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{"`", "$", "?"} {
			tokens := Tokenize([]byte(input)).Tokens.Items()
			require.Equal(t, TokenInvalid, tokens[0].Type, "input: %s", input)
			assert.Equal(t, common.NewRange(0, 1), tokens[0].Range, "input: %s", input)
		}
	})

	t.Run("non-breaking space is not whitespace", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("a b")).Tokens.Items()
		test_utils.AssertEqualWithDiff(t,
			[]TokenType{
				TokenIdentifier,
				TokenInvalid,
				TokenIdentifier,
				TokenNewLine,
				TokenEndOfStream,
			},
			tokenTypes(tokens),
		)
	})
}

func TestLexUnicodeIdentifiers(t *testing.T) {

	t.Parallel()

	t.Run("non-ASCII letters", func(t *testing.T) {
		t.Parallel()

		tokens := Tokenize([]byte("héllo = wörld")).Tokens.Items()

		require.Equal(t, TokenIdentifier, tokens[0].Type)
		assert.Equal(t, "héllo", tokens[0].Identifier())
		// ranges are byte offsets: é is two bytes
		assert.Equal(t, common.NewRange(0, 6), tokens[0].Range)

		require.Equal(t, TokenIdentifier, tokens[2].Type)
		assert.Equal(t, "wörld", tokens[2].Identifier())
	})

	t.Run("continue-only code points cannot start", func(t *testing.T) {
		t.Parallel()

		// U+00B7 has Other_ID_Continue
		tokens := Tokenize([]byte("a·b ·")).Tokens.Items()
		test_utils.AssertEqualWithDiff(t,
			[]TokenType{
				TokenIdentifier,
				TokenInvalid,
				TokenNewLine,
				TokenEndOfStream,
			},
			tokenTypes(tokens),
		)
		assert.Equal(t, "a·b", tokens[0].Identifier())
	})
}

func TestTokenizeRange(t *testing.T) {

	t.Parallel()

	t.Run("offsets are absolute", func(t *testing.T) {
		t.Parallel()

		input := []byte("x = 1\ny = 2\n")
		output := TokenizeRange(input, 6, 6)

		test_utils.AssertEqualWithDiff(t,
			[]Token{
				{
					Type:  TokenIdentifier,
					Value: "y",
					Range: common.NewRange(6, 1),
				},
				{
					Type:  TokenOperator,
					Value: OperatorAssign,
					Range: common.NewRange(8, 1),
				},
				{
					Type: TokenNumber,
					Value: NumberValue{
						Integer:   big.NewInt(2),
						IsInteger: true,
					},
					Range: common.NewRange(10, 1),
				},
				{
					Type:  TokenNewLine,
					Value: NewLineKindLineFeed,
					Range: common.NewRange(11, 1),
				},
				{
					Type:  TokenEndOfStream,
					Range: common.NewRange(12, 0),
				},
			},
			output.Tokens.Items(),
		)

		test_utils.AssertEqualWithDiff(t,
			[]common.Range{
				common.NewRange(6, 6),
			},
			output.Lines.Items(),
		)
	})
}

func TestTokenizerOutputLookup(t *testing.T) {

	t.Parallel()

	t.Run("offset to token and line", func(t *testing.T) {
		t.Parallel()

		input := []byte("first = 1\nsecond = 2\n")
		output := Tokenize(input)

		index := output.Tokens.ItemContaining(12)
		require.NotEqual(t, -1, index)
		token := output.Tokens.ItemAt(index)
		assert.Equal(t, TokenIdentifier, token.Type)
		assert.Equal(t, "second", token.Identifier())

		line := output.Lines.ItemContaining(12)
		assert.Equal(t, 1, line)
	})
}

func TestPredominantSequences(t *testing.T) {

	t.Parallel()

	t.Run("end of line", func(t *testing.T) {
		t.Parallel()

		output := Tokenize([]byte("a\r\nb\r\nc\n"))
		assert.Equal(t, "\r\n", output.PredominantEndOfLineSequence)

		output = Tokenize([]byte("a\nb\n"))
		assert.Equal(t, "\n", output.PredominantEndOfLineSequence)

		output = Tokenize([]byte(""))
		assert.Equal(t, "\n", output.PredominantEndOfLineSequence)
	})

	t.Run("tab sequence from space indents", func(t *testing.T) {
		t.Parallel()

		output := Tokenize([]byte("a\n  b\nc\n  d\n"))
		assert.Equal(t, "  ", output.PredominantTabSequence)
	})

	t.Run("tab sequence from tab indents", func(t *testing.T) {
		t.Parallel()

		output := Tokenize([]byte("a\n\tb\nc\n\td\n"))
		assert.Equal(t, "\t", output.PredominantTabSequence)
	})

	t.Run("default tab sequence", func(t *testing.T) {
		t.Parallel()

		output := Tokenize([]byte("a\nb\n"))
		assert.Equal(t, "    ", output.PredominantTabSequence)
	})
}

func TestTokenStream(t *testing.T) {

	t.Parallel()

	t.Run("next, cursor, revert", func(t *testing.T) {
		t.Parallel()

		input := []byte("a b")
		stream := NewTokenStream(input, Tokenize(input))

		first := stream.Next()
		assert.Equal(t, TokenIdentifier, first.Type)
		assert.Equal(t, []byte("a"), first.Source(stream.Input()))

		cursor := stream.Cursor()
		second := stream.Next()
		assert.Equal(t, "b", second.Identifier())

		stream.Revert(cursor)
		again := stream.Next()
		assert.Equal(t, second, again)

		newLine := stream.Next()
		assert.Equal(t, TokenNewLine, newLine.Type)

		// the stream keeps returning end-of-stream at the end
		assert.Equal(t, TokenEndOfStream, stream.Next().Type)
		assert.Equal(t, TokenEndOfStream, stream.Next().Type)
		assert.Equal(t, TokenEndOfStream, stream.Next().Type)
	})
}
