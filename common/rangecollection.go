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

import (
	"sort"
)

// Ranged is implemented by values that occupy a range of the source text.
type Ranged interface {
	SourceRange() Range
}

// RangeCollection is an append-only list of sorted, non-overlapping ranges
// with binary-search containment lookup.
//
// The same structure backs both the token stream and the line index
// of the tokenizer output: callers use ItemContaining to map a byte
// offset to a token index or a line index.
type RangeCollection[T Ranged] struct {
	items []T
}

// Append adds an item to the end of the collection.
// Items must be appended in source order: each item's start must be
// greater than or equal to the end of the previously appended item.
func (c *RangeCollection[T]) Append(item T) {
	c.items = append(c.items, item)
}

func (c *RangeCollection[T]) Count() int {
	return len(c.items)
}

func (c *RangeCollection[T]) Start() int {
	if len(c.items) == 0 {
		return 0
	}
	return c.items[0].SourceRange().Start
}

func (c *RangeCollection[T]) End() int {
	if len(c.items) == 0 {
		return 0
	}
	return c.items[len(c.items)-1].SourceRange().End()
}

// Length is the total span covered by the collection,
// from the start of the first item to the end of the last.
func (c *RangeCollection[T]) Length() int {
	return c.End() - c.Start()
}

func (c *RangeCollection[T]) ItemAt(index int) T {
	return c.items[index]
}

// Items returns the backing slice. The result must not be mutated.
func (c *RangeCollection[T]) Items() []T {
	return c.items
}

// ItemContaining returns the index of the item whose range covers the
// given byte offset, or -1 if no item does.
//
// Zero-length items (e.g. implied newline and dedent tokens) match only
// when no overlapping non-empty item follows at the same offset.
func (c *RangeCollection[T]) ItemContaining(offset int) int {
	count := len(c.items)
	if count == 0 {
		return -1
	}
	if offset < c.Start() || offset > c.End() {
		return -1
	}

	// first item whose end lies past the offset
	index := sort.Search(count, func(i int) bool {
		return c.items[i].SourceRange().End() > offset
	})

	if index < count {
		r := c.items[index].SourceRange()
		if r.Contains(offset) {
			return index
		}
	}

	// a zero-length item positioned exactly at the offset
	for i := index - 1; i >= 0; i-- {
		r := c.items[i].SourceRange()
		if r.Start < offset {
			break
		}
		if r.Length == 0 && r.Start == offset {
			return i
		}
	}

	return -1
}
