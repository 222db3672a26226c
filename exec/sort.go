// Copyright 2026 The Oxbow Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package exec

import (
	"golang.org/x/exp/slices"
)

// SortValuesByTimestamp orders a key's bag by ascending event timestamp, in
// place. Window merging and trigger evaluation require this order; the sort
// is stable so byte-equal timestamps keep their grouped order.
func SortValuesByTimestamp(values []FullValue) {
	slices.SortStableFunc(values, func(a, b FullValue) int {
		switch {
		case a.Timestamp < b.Timestamp:
			return -1
		case a.Timestamp > b.Timestamp:
			return 1
		default:
			return 0
		}
	})
}
