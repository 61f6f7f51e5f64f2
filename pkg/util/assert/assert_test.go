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
package assert

import (
	"math"
	"testing"
)

func Test_IntEqual_01(t *testing.T) {
	True(t, intEqual(3, uint(3)))
	True(t, intEqual(int8(-1), int64(-1)))
	False(t, intEqual(3, 4))
	False(t, intEqual("3", 3))
}

func Test_IntEqual_02(t *testing.T) {
	// Values beyond int64 must not wrap onto negative integers
	False(t, intEqual(^uint(0), -1))
	False(t, intEqual(-1, ^uint(0)))
	False(t, intEqual(uint64(math.MaxUint64), -1))
	// But are still compared as unsigned
	True(t, intEqual(^uint(0), uint64(math.MaxUint64)))
	True(t, intEqual(uint64(math.MaxUint64), ^uint(0)))
	False(t, intEqual(^uint(0), uint64(math.MaxUint64-1)))
}
