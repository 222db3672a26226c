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

package window

import (
	"strings"
	"testing"
	"time"

	"github.com/oxbow-stream/oxbow/mtime"
	"github.com/oxbow-stream/oxbow/window/trigger"
)

func TestApplicableTo(t *testing.T) {
	tests := []struct {
		name    string
		ws      *WindowingStrategy
		bounded bool
		wantErr string
	}{{
		name:    "default bounded",
		ws:      DefaultWindowingStrategy(),
		bounded: true,
	}, {
		name:    "default unbounded",
		ws:      DefaultWindowingStrategy(),
		bounded: false,
		wantErr: "unbounded",
	}, {
		name: "unbounded global with non-default trigger",
		ws: &WindowingStrategy{
			Fn:      NewGlobalWindows(),
			Trigger: trigger.Repeat(trigger.AfterCount(10)),
		},
		bounded: false,
	}, {
		name: "unbounded fixed with default trigger",
		ws: &WindowingStrategy{
			Fn:      NewFixedWindows(time.Minute),
			Trigger: trigger.Default(),
		},
		bounded: false,
	}, {
		name: "consumed window fn",
		ws: &WindowingStrategy{
			Fn:      NewInvalidWindows("WindowFn has already been consumed by a previous grouping", NewSessions(time.Minute)),
			Trigger: trigger.Default(),
		},
		bounded: true,
		wantErr: "consumed by a previous grouping",
	}}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.ws.ApplicableTo(test.bounded)
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("ApplicableTo(%v) = %v, want nil", test.bounded, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ApplicableTo(%v) succeeded, want error containing %q", test.bounded, test.wantErr)
			}
			if !strings.Contains(err.Error(), test.wantErr) {
				t.Errorf("ApplicableTo(%v) = %q, want error containing %q", test.bounded, err, test.wantErr)
			}
		})
	}
}

func TestAfterGrouping(t *testing.T) {
	t.Run("merging fn becomes invalid", func(t *testing.T) {
		ws := &WindowingStrategy{
			Fn:      NewSessions(time.Minute),
			Trigger: trigger.Default(),
		}
		derived := ws.AfterGrouping()
		if derived.Fn.Kind != InvalidWindows {
			t.Errorf("derived fn kind = %v, want %v", derived.Fn.Kind, InvalidWindows)
		}
		if err := derived.ApplicableTo(true); err == nil {
			t.Error("re-grouping against the derived strategy succeeded, want validation failure")
		}
		// The original strategy is untouched.
		if ws.Fn.Kind != Sessions {
			t.Errorf("original fn kind changed to %v", ws.Fn.Kind)
		}
	})

	t.Run("non-merging fn survives", func(t *testing.T) {
		ws := &WindowingStrategy{
			Fn:      NewFixedWindows(time.Minute),
			Trigger: trigger.Repeat(trigger.AfterCount(4)),
		}
		derived := ws.AfterGrouping()
		if !derived.Fn.Equals(ws.Fn) {
			t.Errorf("derived fn = %v, want %v", derived.Fn, ws.Fn)
		}
		if err := derived.ApplicableTo(true); err != nil {
			t.Errorf("re-grouping a non-merging fn failed validation: %v", err)
		}
	})

	t.Run("trigger becomes continuation", func(t *testing.T) {
		ws := &WindowingStrategy{
			Fn:      NewFixedWindows(time.Minute),
			Trigger: trigger.AfterCount(100),
		}
		derived := ws.AfterGrouping()
		ct, ok := derived.Trigger.(*trigger.AfterCountTrigger)
		if !ok {
			t.Fatalf("derived trigger = %T, want *trigger.AfterCountTrigger", derived.Trigger)
		}
		if got := ct.ElementCount(); got != 1 {
			t.Errorf("continuation count = %v, want 1", got)
		}
	})
}

func TestEarliestCompletion(t *testing.T) {
	tests := []struct {
		ws   *WindowingStrategy
		w    IntervalWindow
		want mtime.Time
	}{
		{&WindowingStrategy{}, iw(0, 10), 9},
		{&WindowingStrategy{AllowedLateness: 5 * time.Millisecond}, iw(0, 10), 14},
		{&WindowingStrategy{AllowedLateness: time.Second}, iw(-100, -50), 949},
	}
	for _, test := range tests {
		if got := test.ws.EarliestCompletion(test.w); got != test.want {
			t.Errorf("EarliestCompletion(%v) with lateness %v = %v, want %v",
				test.w, test.ws.AllowedLateness, got, test.want)
		}
	}
}
