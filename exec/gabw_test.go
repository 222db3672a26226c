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
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/oxbow-stream/oxbow/coder"
	"github.com/oxbow-stream/oxbow/engine"
	"github.com/oxbow-stream/oxbow/typex"
	"github.com/oxbow-stream/oxbow/window"
	"github.com/oxbow-stream/oxbow/window/trigger"
)

// TestGroupAlsoByWindow_batch runs the batch four-stage composition:
// reify, group by key only, sort, then group also by window with the
// watermark run to the end of time.
func TestGroupAlsoByWindow_batch(t *testing.T) {
	strategy := &window.WindowingStrategy{
		Fn:      window.NewSessions(10 * time.Millisecond),
		Trigger: trigger.Default(),
	}
	strat, err := engine.NewWinStrat(strategy)
	if err != nil {
		t.Fatalf("NewWinStrat() = %v", err)
	}

	var reifiedIn []FullValue
	for _, e := range []struct {
		k, v string
		ts   int64
	}{
		{"k1", "a", 1}, {"k1", "b", 9}, {"k1", "c", 15}, {"k1", "d", 30},
		{"k2", "x", 4},
	} {
		reifiedIn = append(reifiedIn, reified(t, strategy.Fn, e.k, e.v, e.ts))
	}

	bags, err := NewGroupByKeyOnly(coder.StringUTF8()).Process(reifiedIn)
	if err != nil {
		t.Fatalf("GroupByKeyOnly.Process() = %v", err)
	}

	gabw := NewGroupAlsoByWindow("batch", strategy, strat)
	var panes []Pane
	for _, bag := range bags {
		panes = append(panes, gabw.ProcessBag(bag, 0)...)
	}

	want := []Pane{{
		Key:       "k1",
		Window:    iw(1, 25),
		Values:    []any{"a", "b", "c"},
		Timestamp: 1,
		Info:      typex.PaneInfo{Timing: typex.ON_TIME, IsFirst: true, IsLast: true},
	}, {
		Key:       "k1",
		Window:    iw(30, 40),
		Values:    []any{"d"},
		Timestamp: 30,
		Info:      typex.PaneInfo{Timing: typex.ON_TIME, IsFirst: true, IsLast: true},
	}, {
		Key:       "k2",
		Window:    iw(4, 14),
		Values:    []any{"x"},
		Timestamp: 4,
		Info:      typex.PaneInfo{Timing: typex.ON_TIME, IsFirst: true, IsLast: true},
	}}
	if d := cmp.Diff(want, panes); d != "" {
		t.Errorf("batch panes diff (-want, +got):\n%v", d)
	}
}

func TestGroupAlsoByWindow_outputTimePolicies(t *testing.T) {
	base := window.WindowingStrategy{
		Fn:      window.NewFixedWindows(10 * time.Millisecond),
		Trigger: trigger.Default(),
	}
	tests := []struct {
		policy window.OutputTime
		want   int64
	}{
		{window.EarliestInput, 2},
		{window.LatestInput, 8},
		{window.EndOfWindow, 9},
	}
	for _, test := range tests {
		strategy := base
		strategy.OutputTime = test.policy
		strat, err := engine.NewWinStrat(&strategy)
		if err != nil {
			t.Fatalf("NewWinStrat() = %v", err)
		}
		gabw := NewGroupAlsoByWindow("policy", &strategy, strat)
		bag := KeyedBag{
			Key: GroupingKey{Key: "k", Encoded: "k"},
			Values: []FullValue{
				reified(t, strategy.Fn, "k", "a", 2),
				reified(t, strategy.Fn, "k", "b", 8),
			},
		}
		panes := gabw.ProcessBag(bag, 0)
		if len(panes) != 1 {
			t.Fatalf("%v: panes = %v, want one", test.policy, panes)
		}
		if got := panes[0].Timestamp.Milliseconds(); got != test.want {
			t.Errorf("%v: pane timestamp = %v, want %v", test.policy, got, test.want)
		}
	}
}

func TestSingletonValue(t *testing.T) {
	w := iw(0, 10)
	got, err := SingletonValue(w, []any{"only"})
	if err != nil {
		t.Fatalf("SingletonValue(one) = %v", err)
	}
	if got != "only" {
		t.Errorf("SingletonValue(one) = %v, want only", got)
	}

	if _, err := SingletonValue(w, nil); err == nil {
		t.Error("SingletonValue(none) succeeded, want cardinality error")
	} else if !strings.Contains(err.Error(), "exactly one") {
		t.Errorf("error %q does not name the expected cardinality", err)
	}

	if _, err := SingletonValue(w, []any{"a", "b"}); err == nil {
		t.Error("SingletonValue(two) succeeded, want cardinality error")
	} else if !strings.Contains(err.Error(), "got 2") {
		t.Errorf("error %q does not name the observed cardinality", err)
	}
}
