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

package trigger

import (
	"fmt"
	"testing"
	"time"
)

func TestContinuation(t *testing.T) {
	tests := []struct {
		in   Trigger
		want string
	}{
		{Default(), "Default"},
		{Always(), "Always"},
		{Never(), "Never"},
		{AfterCount(100), "AfterCount[1]"},
		{AfterProcessingTime().PlusDelay(time.Minute), "AfterSynchronizedProcessingTime"},
		{Repeat(AfterCount(5)), "Repeat[AfterCount[1]]"},
		{
			AfterEndOfWindow().EarlyFiring(AfterCount(50)).LateFiring(Always()),
			"AfterEndOfWindow[Early: AfterCount[1], Late: Always]",
		},
		{
			AfterAny([]Trigger{AfterCount(7), AfterProcessingTime().PlusDelay(time.Second)}),
			"AfterAny[[AfterCount[1] AfterSynchronizedProcessingTime]]",
		},
		{
			AfterAll([]Trigger{AfterCount(7), Never()}),
			"AfterAll[[AfterCount[1] Never]]",
		},
		{
			AfterEach([]Trigger{AfterCount(3), AfterCount(9)}),
			"AfterEach[[AfterCount[1] AfterCount[1]]]",
		},
		{
			OrFinally(Repeat(AfterCount(10)), AfterCount(1000)),
			"OrFinally[Main: Repeat[AfterCount[1]], Finally: AfterCount[1]]",
		},
		{nil, "Default"},
	}
	for _, test := range tests {
		got := Continuation(test.in)
		if s := fmt.Sprintf("%v", got); s != test.want {
			t.Errorf("Continuation(%v) = %v, want %v", test.in, s, test.want)
		}
	}
}
