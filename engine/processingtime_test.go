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

package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRefreshQueue(t *testing.T) {
	q := NewRefreshQueue()
	if _, ok := q.Peek(); ok {
		t.Error("empty queue Peek() reported a pending event")
	}

	q.Schedule(30, "c")
	q.Schedule(10, "a")
	q.Schedule(20, "b")
	q.Schedule(10, "a") // duplicate, deduplicated
	q.Schedule(10, "b")

	if next, ok := q.Peek(); !ok || next != 10 {
		t.Errorf("Peek() = %v, %v; want 10, true", next, ok)
	}

	got := q.AdvanceTo(15)
	if d := cmp.Diff([]string{"a", "b"}, got); d != "" {
		t.Errorf("AdvanceTo(15) diff (-want, +got):\n%v", d)
	}

	got = q.AdvanceTo(15)
	if len(got) != 0 {
		t.Errorf("AdvanceTo(15) again = %v, want empty", got)
	}

	got = q.AdvanceTo(100)
	if d := cmp.Diff([]string{"b", "c"}, got); d != "" {
		t.Errorf("AdvanceTo(100) diff (-want, +got):\n%v", d)
	}
	if q.Len() != 0 {
		t.Errorf("Len() = %v, want 0", q.Len())
	}
}
