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

package common

// Range describes a contiguous span of the source text.
//
// Start and Length are expressed in bytes of the UTF-8 encoded input.
// All positional information produced by the tokenizer uses this unit,
// and downstream consumers must use the same unit for offset arithmetic.
type Range struct {
	Start  int
	Length int
}

func NewRange(start, length int) Range {
	return Range{
		Start:  start,
		Length: length,
	}
}

func (r Range) End() int {
	return r.Start + r.Length
}

// Contains reports whether the given byte offset falls within the range.
func (r Range) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End()
}

// SourceRange makes Range itself satisfy Ranged,
// so plain ranges (e.g. line spans) can be stored in a RangeCollection.
// Types embedding a Range inherit it.
func (r Range) SourceRange() Range {
	return r
}

// Source returns the slice of the input the range covers.
func (r Range) Source(input []byte) []byte {
	return input[r.Start:r.End()]
}
