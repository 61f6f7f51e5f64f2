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
)

// ErrRange is matched (via errors.Is) by every RangeError.
var ErrRange = errors.New("view: range out of bounds")

// ErrIndexOutOfRange is matched (via errors.Is) by every IndexError.
var ErrIndexOutOfRange = errors.New("view: index out of range")

// RangeError reports a construction or slicing request which describes a region
// lying (at least partly) outside the storage it refers to.
type RangeError struct {
	// Operation which failed, either "new" or "slice".
	Op string
	// First position requested.
	Start int
	// Number of elements requested.
	Count int
	// Number of elements actually available.
	Extent int
}

func (e *RangeError) Error() string {
	switch {
	case e.Start < 0:
		return fmt.Sprintf("view: %s start %d is negative", e.Op, e.Start)
	case e.Count < 0:
		return fmt.Sprintf("view: %s length %d is negative", e.Op, e.Count)
	default:
		return fmt.Sprintf("view: %s [%d, %d) out of range for extent %d", e.Op, e.Start,
			uint(e.Start)+uint(e.Count), e.Extent)
	}
}

// Is allows errors.Is(err, ErrRange).
func (e *RangeError) Is(target error) bool {
	return target == ErrRange
}

// IndexError reports an access to a single position outside of a view.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("view: index %d out of range [0, %d)", e.Index, e.Length)
}

// Is allows errors.Is(err, ErrIndexOutOfRange).
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// checkRange determines whether [start, start+count) lies within [0, extent).
// Overflow of start+count is avoided by comparing against the space remaining.
func checkRange(op string, start, count, extent int) error {
	if start < 0 || count < 0 || start > extent || count > extent-start {
		return &RangeError{op, start, count, extent}
	}
	//
	return nil
}
