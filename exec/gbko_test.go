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
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/oxbow-stream/oxbow/coder"
	"github.com/oxbow-stream/oxbow/mtime"
	"github.com/oxbow-stream/oxbow/window"
)

func reified(t *testing.T, fn *window.Fn, key, value string, ts int64) FullValue {
	t.Helper()
	return ReifyTimestampsAndWindows(fn, key, value, mtime.Time(ts))
}

func TestGroupByKeyOnly_groupsMultisets(t *testing.T) {
	fn := window.NewFixedWindows(10 * time.Millisecond)
	in := []FullValue{
		reified(t, fn, "a", "1", 1),
		reified(t, fn, "b", "2", 2),
		reified(t, fn, "a", "3", 15),
		reified(t, fn, "a", "1", 30), // duplicate value, kept as multiset
		reified(t, fn, "b", "4", 4),
	}
	g := NewGroupByKeyOnly(coder.StringUTF8())
	bags, err := g.Process(in)
	if err != nil {
		t.Fatalf("Process() = %v", err)
	}
	if len(bags) != 2 {
		t.Fatalf("got %d bags, want 2", len(bags))
	}

	want := map[string][]string{
		"a": {"1", "1", "3"},
		"b": {"2", "4"},
	}
	for _, bag := range bags {
		var got []string
		for _, fv := range bag.Values {
			got = append(got, fv.Elm2.(string))
		}
		// Intra-key order is deliberately unspecified.
		sort.Strings(got)
		if d := cmp.Diff(want[bag.Key.Key.(string)], got); d != "" {
			t.Errorf("bag %v multiset diff (-want, +got):\n%v", bag.Key.Key, d)
		}
	}
	// Grouping uses encoded bytes: re-encoding the key yields the same group.
	gk, err := encodeGroupingKey(coder.StringUTF8(), "a", nil)
	if err != nil {
		t.Fatal(err)
	}
	if bags[0].Key.Encoded != gk.Encoded {
		t.Errorf("bag key encoding %x is not idempotent with %x", bags[0].Key.Encoded, gk.Encoded)
	}
}

func TestGroupByKeyOnly_encodingFailure(t *testing.T) {
	fn := window.NewGlobalWindows()
	in := []FullValue{ReifyTimestampsAndWindows(fn, "oops", "v", 0)}
	g := NewGroupByKeyOnly(coder.VarInt())
	_, err := g.Process(in)
	if err == nil {
		t.Fatal("Process with a mistyped key succeeded, want error")
	}
	for _, frag := range []string{"oops", "varint"} {
		if !strings.Contains(err.Error(), frag) {
			t.Errorf("error %q does not contain %q", err, frag)
		}
	}
}

func TestReifyTimestampsAndWindows(t *testing.T) {
	fn := window.NewSlidingWindows(5*time.Millisecond, 10*time.Millisecond)
	fv := ReifyTimestampsAndWindows(fn, "k", "v", 9)
	if fv.Elm != "k" || fv.Elm2 != "v" || fv.Timestamp != 9 {
		t.Errorf("reified = %v", &fv)
	}
	if len(fv.Windows) != 2 {
		t.Errorf("windows = %v, want two sliding windows", fv.Windows)
	}
	if !fv.Pane.IsFirst || !fv.Pane.IsLast {
		t.Errorf("pane = %v, want the no-firing pane", fv.Pane)
	}
}

func TestSortValuesByTimestamp(t *testing.T) {
	fn := window.NewGlobalWindows()
	values := []FullValue{
		reified(t, fn, "k", "late", 30),
		reified(t, fn, "k", "first", 1),
		reified(t, fn, "k", "tie-a", 7),
		reified(t, fn, "k", "tie-b", 7),
		reified(t, fn, "k", "mid", 9),
	}
	SortValuesByTimestamp(values)
	var got []string
	for _, fv := range values {
		got = append(got, fv.Elm2.(string))
	}
	// Stable: the tie keeps input order.
	want := []string{"first", "tie-a", "tie-b", "mid", "late"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("sorted order diff (-want, +got):\n%v", d)
	}
}
