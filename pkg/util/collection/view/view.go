// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package view

import (
	"fmt"
	"iter"
	"strings"

	citer "github.com/consensys/go-span/pkg/util/collection/iter"
)

// View is a fixed-length window onto a contiguous run of elements held in some
// backing slice.  A view does not own its backing storage: it never allocates,
// grows, frees or copies it.  Instead, it holds a reference to the storage along
// with the position of its first element and the number of elements it covers.
// Writes made through a view are therefore visible to every other holder of the
// same storage, and vice-versa.
//
// Views are intended to be short-lived values passed down the call stack,
// rather than retained in long-lived data structures.  If the owner of the
// backing storage reallocates it (e.g. by appending beyond its capacity), any
// existing view continues to refer to the old storage and will not observe
// subsequent changes.  Views perform no synchronisation of their own.
//
// The zero value is an empty view.
type View[T any] struct {
	// Backing storage (not owned).
	buffer []T
	// Position within buffer of the first element of this view.
	offset int
	// Number of elements covered by this view.
	length int
}

// New constructs a view of length elements starting at the given offset within
// buffer.  This fails with a RangeError if offset or length is negative, or the
// region extends past the end of buffer.
func New[T any](buffer []T, offset int, length int) (View[T], error) {
	if err := checkRange("new", offset, length, len(buffer)); err != nil {
		return View[T]{}, err
	}
	//
	return View[T]{buffer, offset, length}, nil
}

// Of constructs a view covering the entirety of a given buffer.
func Of[T any](buffer []T) View[T] {
	return View[T]{buffer, 0, len(buffer)}
}

// Len returns the number of elements in this view.
func (p View[T]) Len() int {
	return p.length
}

// IsEmpty checks whether this view covers no elements.
func (p View[T]) IsEmpty() bool {
	return p.length == 0
}

// Offset returns the position within the backing storage of the first element
// of this view.
func (p View[T]) Offset() int {
	return p.offset
}

// Get returns a reference to the element at the given index in this view, which
// corresponds to position Offset()+index in the backing storage.  Writing
// through the reference updates the backing storage.  This fails with an
// IndexError if the index is not within [0, Len()).
func (p View[T]) Get(index int) (*T, error) {
	if uint(index) >= uint(p.length) {
		return nil, &IndexError{index, p.length}
	}
	//
	return &p.buffer[p.offset+index], nil
}

// At returns the element at the given index in this view.  Like indexing a
// slice, this panics (with an *IndexError) when the index is out of range.
func (p View[T]) At(index int) T {
	ptr, err := p.Get(index)
	if err != nil {
		panic(err)
	}
	//
	return *ptr
}

// Set the element at the given index in this view, overwriting the original
// value in the backing storage.
func (p View[T]) Set(index int, value T) error {
	ptr, err := p.Get(index)
	if err != nil {
		return err
	}
	//
	*ptr = value
	//
	return nil
}

// Slice out a subregion of count elements starting at the given index in this
// view.  The resulting view shares the same backing storage.  This fails with a
// RangeError if start or count is negative, or start+count exceeds Len().
func (p View[T]) Slice(start int, count int) (View[T], error) {
	if err := checkRange("slice", start, count, p.length); err != nil {
		return View[T]{}, err
	}
	//
	return View[T]{p.buffer, p.offset + start, count}, nil
}

// Elements returns the region covered by this view as a slice sharing the
// backing storage.  The slice has no spare capacity, hence appending to it
// always reallocates rather than overwriting whatever follows the view.
func (p View[T]) Elements() []T {
	end := p.offset + p.length
	//
	return p.buffer[p.offset:end:end]
}

// All returns a sequence of (index, reference) pairs for every element in this
// view, in position order.  The sequence is evaluated lazily, and can be ranged
// over any number of times.
func (p View[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range p.length {
			if !yield(i, &p.buffer[p.offset+i]) {
				return
			}
		}
	}
}

// Values returns a sequence of references to every element in this view, in
// position order.
func (p View[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := range p.length {
			if !yield(&p.buffer[p.offset+i]) {
				return
			}
		}
	}
}

// Iterator returns a cursor over references to the elements of this view.  The
// iterator can be restarted from any point using Clone().
func (p View[T]) Iterator() citer.Iterator[*T] {
	return citer.NewReferenceIterator(p.Elements())
}

// CopyTo copies the elements of this view into the given destination, returning
// the number of elements copied.  This is the minimum of Len() and len(dst).
func (p View[T]) CopyTo(dst []T) int {
	return copy(dst, p.Elements())
}

// Fill assigns the given value to every element of this view.
func (p View[T]) Fill(value T) {
	elements := p.Elements()
	//
	for i := range elements {
		elements[i] = value
	}
}

// String renders the elements of this view as "[e0,e1,...]".
func (p View[T]) String() string {
	var sb strings.Builder

	sb.WriteString("[")

	for i, ptr := range p.All() {
		if i != 0 {
			sb.WriteString(",")
		}
		// Field elements (amongst others) only implement Stringer on pointers.
		if s, ok := any(ptr).(fmt.Stringer); ok {
			sb.WriteString(s.String())
		} else {
			sb.WriteString(fmt.Sprintf("%v", *ptr))
		}
	}

	sb.WriteString("]")

	return sb.String()
}

// IndexFunc returns the index of the first element in a view satisfying a given
// predicate, or -1 if there is none.
func IndexFunc[T any](v View[T], predicate func(T) bool) int {
	for i, ptr := range v.All() {
		if predicate(*ptr) {
			return i
		}
	}
	//
	return -1
}

// Equal checks whether two views have the same length and contain the same
// elements in the same order.  Views need not share backing storage.
func Equal[T comparable](lhs View[T], rhs View[T]) bool {
	if lhs.length != rhs.length {
		return false
	}
	//
	for i := range lhs.length {
		if lhs.buffer[lhs.offset+i] != rhs.buffer[rhs.offset+i] {
			return false
		}
	}
	//
	return true
}
