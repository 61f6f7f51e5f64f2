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
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/go-span/pkg/util/assert"
	"github.com/consensys/go-span/pkg/util/collection/iter"
)

// ===================================================================
// Scenarios
// ===================================================================

func Test_View_01(t *testing.T) {
	buffer := []int{10, 20, 30, 40, 50}
	view, err := New(buffer, 1, 3)
	//
	assert.NoError(t, err)
	assert.Equal(t, 3, view.Len())
	assert.Equal(t, 1, view.Offset())
	assert.Equal(t, 20, view.At(0))
	assert.Equal(t, 40, view.At(2))
	//
	_, err = view.Get(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func Test_View_02(t *testing.T) {
	buffer := []int{10, 20, 30, 40, 50}
	_, err := New(buffer, 4, 3)
	//
	assert.ErrorIs(t, err, ErrRange)
	assert.Equal(t, "view: new [4, 7) out of range for extent 5", err.Error())
}

func Test_View_03(t *testing.T) {
	buffer := []int{10, 20, 30, 40, 50}
	view, _ := New(buffer, 1, 3)
	slice, err := view.Slice(1, 1)
	//
	assert.NoError(t, err)
	assert.Equal(t, 1, slice.Len())
	assert.Equal(t, 30, slice.At(0))
	assert.Equal(t, 2, slice.Offset())
}

func Test_View_04(t *testing.T) {
	var view View[int]
	// Zero value is an empty view
	assert.True(t, view.IsEmpty())
	assert.Equal(t, 0, view.Len())
	assert.Equal(t, "[]", view.String())
	assert.Equal(t, 0, len(view.Elements()))
	//
	_, err := view.Get(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func Test_View_05(t *testing.T) {
	buffer := []int{1, 2, 3}
	view := Of(buffer)
	//
	assert.Equal(t, 3, view.Len())
	assert.Equal(t, 0, view.Offset())
	assert.Equal(t, "[1,2,3]", view.String())
}

// ===================================================================
// Errors
// ===================================================================

func Test_View_Errors_01(t *testing.T) {
	buffer := []int{1, 2, 3}
	// Negative offset
	_, err := New(buffer, -1, 1)
	assert.ErrorIs(t, err, ErrRange)
	assert.Equal(t, "view: new start -1 is negative", err.Error())
	// Negative length
	_, err = New(buffer, 0, -1)
	assert.ErrorIs(t, err, ErrRange)
	assert.Equal(t, "view: new length -1 is negative", err.Error())
	// Offset past end
	_, err = New(buffer, 4, 0)
	assert.ErrorIs(t, err, ErrRange)
	// Not confused with the other kind
	assert.False(t, errors.Is(err, ErrIndexOutOfRange))
}

func Test_View_Errors_02(t *testing.T) {
	buffer := []int{1, 2, 3}
	// Must not wrap around
	_, err := New(buffer, 2, math.MaxInt)
	assert.ErrorIs(t, err, ErrRange)
	_, err = New(buffer, math.MaxInt, math.MaxInt)
	assert.ErrorIs(t, err, ErrRange)
	_, err = Of(buffer).Slice(1, math.MaxInt)
	assert.ErrorIs(t, err, ErrRange)
}

func Test_View_Errors_03(t *testing.T) {
	view := Of([]int{1, 2, 3})
	_, err := view.Slice(2, 2)
	//
	var rerr *RangeError
	//
	assert.True(t, errors.As(err, &rerr))
	assert.Equal(t, "slice", rerr.Op)
	assert.Equal(t, 2, rerr.Start)
	assert.Equal(t, 2, rerr.Count)
	assert.Equal(t, 3, rerr.Extent)
	assert.Equal(t, "view: slice [2, 4) out of range for extent 3", err.Error())
}

func Test_View_Errors_04(t *testing.T) {
	view := Of([]int{1, 2, 3})
	_, err := view.Get(-1)
	//
	var ierr *IndexError
	//
	assert.True(t, errors.As(err, &ierr))
	assert.Equal(t, -1, ierr.Index)
	assert.Equal(t, 3, ierr.Length)
	assert.Equal(t, "view: index -1 out of range [0, 3)", err.Error())
	assert.False(t, errors.Is(err, ErrRange))
}

func Test_View_Errors_05(t *testing.T) {
	view := Of([]int{1, 2, 3})
	// At behaves like slice indexing
	r := assert.Panics(t, func() { view.At(3) })
	err, ok := r.(error)
	assert.True(t, ok)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	// Set reports rather than panics
	assert.ErrorIs(t, view.Set(5, 0), ErrIndexOutOfRange)
	assert.Equal(t, "[1,2,3]", view.String())
}

// ===================================================================
// Write Through
// ===================================================================

func Test_View_Write_01(t *testing.T) {
	buffer := []int{10, 20, 30, 40, 50}
	view, _ := New(buffer, 1, 3)
	ptr, err := view.Get(1)
	//
	assert.NoError(t, err)
	*ptr = 99
	assert.Equal(t, []int{10, 20, 99, 40, 50}, buffer)
	//
	assert.NoError(t, view.Set(2, 77))
	assert.Equal(t, []int{10, 20, 99, 77, 50}, buffer)
	// Mutations of the backing storage are visible through the view
	buffer[1] = 11
	assert.Equal(t, 11, view.At(0))
}

func Test_View_Write_02(t *testing.T) {
	buffer := []int{1, 2, 3, 4, 5}
	view, _ := New(buffer, 1, 3)
	//
	view.Fill(0)
	assert.Equal(t, []int{1, 0, 0, 0, 5}, buffer)
}

func Test_View_Write_03(t *testing.T) {
	buffer := make([]fr.Element, 4)
	//
	for i := range buffer {
		buffer[i].SetUint64(uint64(i))
	}
	//
	view, _ := New(buffer, 1, 2)
	// Field elements are updated in place via their pointer receivers
	ptr, err := view.Get(1)
	assert.NoError(t, err)
	ptr.Add(ptr, ptr)
	//
	var four fr.Element

	four.SetUint64(4)
	assert.True(t, buffer[2].Equal(&four))
	assert.Equal(t, "[1,4]", view.String())
}

// ===================================================================
// Storage
// ===================================================================

func Test_View_Storage_01(t *testing.T) {
	buffer := []int{1, 2, 3, 4, 5}
	view, _ := New(buffer, 1, 2)
	elems := view.Elements()
	//
	assert.Equal(t, 2, len(elems))
	assert.Equal(t, 2, cap(elems))
	// Appending must not overwrite the element following the view
	_ = append(elems, 42)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, buffer)
}

func Test_View_Storage_02(t *testing.T) {
	buffer := make([]int, 3)
	view := Of(buffer)
	// Owner reallocates its storage
	buffer = append(buffer, 4)
	buffer[0] = 9
	// View is detached, but still refers to valid (old) storage
	assert.Equal(t, 0, view.At(0))
	assert.Equal(t, 3, view.Len())
	assert.Equal(t, 9, buffer[0])
}

func Test_View_Storage_03(t *testing.T) {
	buffer := []int{1, 2, 3, 4, 5}
	view, _ := New(buffer, 1, 3)
	dst := make([]int, 2)
	// Copy is bounded by the destination
	assert.Equal(t, 2, view.CopyTo(dst))
	assert.Equal(t, []int{2, 3}, dst)
	// And by the view
	dst = make([]int, 5)
	assert.Equal(t, 3, view.CopyTo(dst))
	assert.Equal(t, []int{2, 3, 4, 0, 0}, dst)
}

// ===================================================================
// Iteration
// ===================================================================

func Test_View_Iterate_01(t *testing.T) {
	buffer := []int{10, 20, 30, 40, 50}
	view, _ := New(buffer, 1, 3)
	// Ranging twice yields the same sequence
	for range 2 {
		var items []int

		for i, ptr := range view.All() {
			assert.Equal(t, len(items), i)
			items = append(items, *ptr)
		}

		assert.Equal(t, []int{20, 30, 40}, items)
	}
}

func Test_View_Iterate_02(t *testing.T) {
	buffer := []int{10, 20, 30, 40, 50}
	view, _ := New(buffer, 1, 3)
	// Early termination
	for ptr := range view.Values() {
		*ptr = 0
		break
	}
	//
	assert.Equal(t, []int{10, 0, 30, 40, 50}, buffer)
}

func Test_View_Iterate_03(t *testing.T) {
	buffer := []int{10, 20, 30, 40, 50}
	view, _ := New(buffer, 1, 3)
	it := view.Iterator()
	restart := it.Clone()
	// Drain first iterator
	assert.Equal(t, uint(3), it.Count())
	*it.Next() = 21
	it.Next()
	it.Next()
	assert.False(t, it.HasNext())
	// Restarted iterator sees the write
	assert.Equal(t, 21, *restart.Next())
	assert.Equal(t, uint(2), restart.Count())
}

func Test_View_Search_01(t *testing.T) {
	view, _ := New([]int{10, 20, 30, 40, 50}, 1, 3)
	//
	assert.Equal(t, 1, IndexFunc(view, func(x int) bool { return x > 25 }))
	assert.Equal(t, -1, IndexFunc(view, func(x int) bool { return x == 10 }))
}

func Test_View_Equal_01(t *testing.T) {
	lhs, _ := New([]int{10, 20, 30, 40, 50}, 1, 2)
	rhs := Of([]int{20, 30})
	//
	assert.True(t, Equal(lhs, rhs))
	assert.False(t, Equal(lhs, Of([]int{20})))
	assert.False(t, Equal(lhs, Of([]int{20, 31})))
	assert.True(t, Equal(View[int]{}, Of([]int{})))
}

// ===================================================================
// Properties
// ===================================================================

// Construction succeeds iff the region lies within the buffer.
func Test_View_Property_New(t *testing.T) {
	for n := range 6 {
		buffer := newBuffer(n)
		pairs := iter.EnumerateElements(2, intRange(-2, n+2))
		//
		for pairs.HasNext() {
			ith := pairs.Next()
			check_View_New(t, buffer, ith[0], ith[1])
		}
	}
}

// Every index of every valid view reads (and writes) the expected position.
func Test_View_Property_Get(t *testing.T) {
	for n := range 6 {
		forEachView(t, n, func(t *testing.T, buffer []int, offset, length int, view View[int]) {
			check_View_Get(t, buffer, offset, length, view)
		})
	}
}

// Slicing composes with indexing.
func Test_View_Property_Slice(t *testing.T) {
	for n := range 6 {
		forEachView(t, n, func(t *testing.T, buffer []int, offset, length int, view View[int]) {
			check_View_Slice(t, view)
		})
	}
}

// Iteration matches indexing element-for-element.
func Test_View_Property_Iterate(t *testing.T) {
	for n := range 6 {
		forEachView(t, n, func(t *testing.T, buffer []int, offset, length int, view View[int]) {
			check_View_Iterate(t, view)
		})
	}
}

// ===================================================================
// Test Helpers
// ===================================================================

func check_View_New(t *testing.T, buffer []int, offset, length int) {
	t.Helper()
	//
	view, err := New(buffer, offset, length)
	valid := offset >= 0 && length >= 0 && offset+length <= len(buffer)
	//
	if valid {
		assert.NoError(t, err, "New(%d,%d) on %d elements", offset, length, len(buffer))
		assert.Equal(t, length, view.Len())
	} else {
		assert.ErrorIs(t, err, ErrRange, "New(%d,%d) on %d elements", offset, length, len(buffer))
		assert.True(t, view.IsEmpty())
	}
}

func check_View_Get(t *testing.T, buffer []int, offset, length int, view View[int]) {
	t.Helper()
	//
	for i := -2; i < length+2; i++ {
		ptr, err := view.Get(i)
		//
		if i < 0 || i >= length {
			assert.ErrorIs(t, err, ErrIndexOutOfRange)
			continue
		}
		//
		assert.NoError(t, err)
		assert.Equal(t, buffer[offset+i], *ptr)
		// Write through and restore
		*ptr = -1
		assert.Equal(t, -1, buffer[offset+i])
		*ptr = offset + i
	}
}

func check_View_Slice(t *testing.T, view View[int]) {
	t.Helper()
	//
	for a := 0; a <= view.Len(); a++ {
		for b := 0; a+b <= view.Len(); b++ {
			slice, err := view.Slice(a, b)
			assert.NoError(t, err)
			assert.Equal(t, b, slice.Len())
			//
			for i := range b {
				assert.Equal(t, view.At(a+i), slice.At(i))
			}
		}
		// One past the end
		_, err := view.Slice(a, view.Len()-a+1)
		assert.ErrorIs(t, err, ErrRange)
	}
}

func check_View_Iterate(t *testing.T, view View[int]) {
	t.Helper()
	//
	count := 0
	//
	for i, ptr := range view.All() {
		expected, _ := view.Get(i)
		assert.True(t, expected == ptr, "reference mismatch at %d", i)
		//
		count++
	}
	//
	assert.Equal(t, view.Len(), count)
	// Cursor iterator agrees
	refs := view.Iterator().Collect()
	assert.Equal(t, view.Len(), len(refs))
	//
	for i, ptr := range refs {
		expected, _ := view.Get(i)
		assert.True(t, expected == ptr, "reference mismatch at %d", i)
	}
}

// forEachView applies a given check to every valid view over a buffer of n
// elements.
func forEachView(t *testing.T, n int, check func(*testing.T, []int, int, int, View[int])) {
	buffer := newBuffer(n)
	//
	for offset := 0; offset <= n; offset++ {
		for length := 0; offset+length <= n; length++ {
			t.Run(fmt.Sprintf("n=%d/offset=%d/length=%d", n, offset, length), func(t *testing.T) {
				view, err := New(buffer, offset, length)
				assert.NoError(t, err)
				check(t, buffer, offset, length, view)
			})
		}
	}
}

// newBuffer constructs a buffer where each element holds its own position.
func newBuffer(n int) []int {
	buffer := make([]int, n)
	//
	for i := range buffer {
		buffer[i] = i
	}
	//
	return buffer
}

func intRange(start, end int) []int {
	items := make([]int, 0, end-start)
	//
	for i := start; i < end; i++ {
		items = append(items, i)
	}
	//
	return items
}
