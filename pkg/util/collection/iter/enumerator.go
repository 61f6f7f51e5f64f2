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
package iter

// Enumerator abstracts the process of iterating over a sequence of elements.
type Enumerator[T any] interface {
	// Check whether or not there are any items remaining to visit.
	HasNext() bool

	// Get the next item, and advanced the iterator.
	Next() T
}

// EnumerateElements returns an enumerator over all arrays of size n whose
// items are drawn from the given set of elements.  For example, if n==2 and
// elems contained two elements A and B, then this will return
// [[A,A],[B,A],[A,B],[B,B]].  Thus, the first position varies fastest.  When n
// is zero, exactly one (empty) array is produced.  When elems is empty (and n
// is not), nothing is produced.
func EnumerateElements[E any](n uint, elems []E) Enumerator[[]E] {
	var counters []uint
	// Nothing can be drawn from an empty set
	if n == 0 || len(elems) > 0 {
		counters = make([]uint, n)
	}
	//
	return &enumerator[E]{counters, elems}
}

// enumerator acts like an odometer, where each counter identifies the element
// used at the corresponding position of the next array.  Once all counters
// roll over, the counters are discarded to signal the end.
type enumerator[E any] struct {
	counters []uint
	elements []E
}

// HasNext checks whether or not there are any items remaining to visit.
//
//nolint:revive
func (p *enumerator[E]) HasNext() bool {
	return p.counters != nil
}

// Next returns the next item, and advance the iterator.
//
//nolint:revive
func (p *enumerator[E]) Next() []E {
	next := make([]E, len(p.counters))
	//
	for i, c := range p.counters {
		next[i] = p.elements[c]
	}
	// Advance the odometer
	for i := range p.counters {
		if p.counters[i]++; p.counters[i] < uint(len(p.elements)) {
			return next
		}
		// roll over
		p.counters[i] = 0
	}
	// Every counter rolled over, so we're done.
	p.counters = nil
	//
	return next
}
