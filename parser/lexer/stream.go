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

// TokenStream is the parser's view of a tokenizer output: sequential
// access with cheap backtracking by cursor.
type TokenStream struct {
	input  []byte
	output *TokenizerOutput
	cursor int
}

func NewTokenStream(input []byte, output *TokenizerOutput) *TokenStream {
	return &TokenStream{
		input:  input,
		output: output,
	}
}

// Next returns the next token and advances the cursor.
// At the end of the stream it keeps returning the end-of-stream token.
func (s *TokenStream) Next() Token {
	count := s.output.Tokens.Count()
	if s.cursor >= count {
		// the stream always ends with an end-of-stream token
		return s.output.Tokens.ItemAt(count - 1)
	}
	token := s.output.Tokens.ItemAt(s.cursor)
	s.cursor++
	return token
}

func (s *TokenStream) Input() []byte {
	return s.input
}

func (s *TokenStream) Cursor() int {
	return s.cursor
}

// Revert resets the stream to a cursor previously obtained from Cursor.
func (s *TokenStream) Revert(cursor int) {
	s.cursor = cursor
}
