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

package coder

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/oxbow-stream/oxbow/mtime"
	"github.com/oxbow-stream/oxbow/typex"
	"github.com/oxbow-stream/oxbow/window"
)

func TestEventTime_roundtrip(t *testing.T) {
	for _, ts := range []mtime.Time{
		mtime.MinTimestamp,
		mtime.ZeroTimestamp,
		mtime.FromMilliseconds(1_700_000_000_000),
		mtime.EndOfGlobalWindowTime,
		mtime.MaxTimestamp,
	} {
		var buf bytes.Buffer
		if err := EncodeEventTime(ts, &buf); err != nil {
			t.Fatalf("EncodeEventTime(%v) = %v", ts, err)
		}
		got, err := DecodeEventTime(&buf)
		if err != nil {
			t.Fatalf("DecodeEventTime() = %v", err)
		}
		if got != ts {
			t.Errorf("event time roundtrip = %v, want %v", got, ts)
		}
	}
}

func TestEventTime_encodingOrdersLexicographically(t *testing.T) {
	times := []mtime.Time{
		mtime.MinTimestamp,
		mtime.FromMilliseconds(-1),
		mtime.ZeroTimestamp,
		mtime.FromMilliseconds(1),
		mtime.MaxTimestamp,
	}
	var prev []byte
	for i, ts := range times {
		var buf bytes.Buffer
		if err := EncodeEventTime(ts, &buf); err != nil {
			t.Fatalf("EncodeEventTime(%v) = %v", ts, err)
		}
		enc := buf.Bytes()
		if prev != nil && bytes.Compare(prev, enc) >= 0 {
			t.Errorf("encoding of %v does not order before %v: %x >= %x", times[i-1], ts, prev, enc)
		}
		prev = enc
	}
}

func TestWindowCoder_interval(t *testing.T) {
	c := WindowCoderFor(window.NewFixedWindows(10 * time.Millisecond))
	for _, w := range []window.IntervalWindow{
		{Start: 0, End: 10},
		{Start: -20, End: -10},
		{Start: 1_000_000, End: 1_000_600},
	} {
		var buf bytes.Buffer
		if err := c.EncodeWindow(w, &buf); err != nil {
			t.Fatalf("EncodeWindow(%v) = %v", w, err)
		}
		got, err := c.DecodeWindow(&buf)
		if err != nil {
			t.Fatalf("DecodeWindow() = %v", err)
		}
		if !w.Equals(got) {
			t.Errorf("window roundtrip = %v, want %v", got, w)
		}
	}
}

func TestWindowCoder_global(t *testing.T) {
	c := WindowCoderFor(window.NewGlobalWindows())
	var buf bytes.Buffer
	if err := c.EncodeWindow(window.GlobalWindow{}, &buf); err != nil {
		t.Fatalf("EncodeWindow = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("global window encoding is %d bytes, want 0", buf.Len())
	}
	got, err := c.DecodeWindow(&buf)
	if err != nil {
		t.Fatalf("DecodeWindow() = %v", err)
	}
	if !(window.GlobalWindow{}).Equals(got) {
		t.Errorf("DecodeWindow() = %v, want the global window", got)
	}
}

func TestPane_roundtrip(t *testing.T) {
	panes := []typex.PaneInfo{
		typex.NoFiringPane(),
		{Timing: typex.EARLY, IsFirst: true, Index: 0, NonSpeculativeIndex: -1},
		{Timing: typex.ON_TIME, Index: 1, NonSpeculativeIndex: 0},
		{Timing: typex.LATE, IsLast: true, Index: 5, NonSpeculativeIndex: 3},
		{Timing: typex.ON_TIME, IsFirst: true, IsLast: true, Index: 0, NonSpeculativeIndex: 0},
	}
	for _, p := range panes {
		var buf bytes.Buffer
		if err := EncodePane(p, &buf); err != nil {
			t.Fatalf("EncodePane(%v) = %v", p, err)
		}
		got, err := DecodePane(&buf)
		if err != nil {
			t.Fatalf("DecodePane() = %v", err)
		}
		if d := cmp.Diff(p, got); d != "" {
			t.Errorf("pane roundtrip diff (-want, +got):\n%v", d)
		}
	}
}
