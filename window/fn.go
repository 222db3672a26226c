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
	"fmt"
	"time"

	"github.com/oxbow-stream/oxbow/mtime"
	"github.com/oxbow-stream/oxbow/typex"
)

// Kind is the semantic type of a window fn.
type Kind string

const (
	GlobalWindows  Kind = "GLO"
	FixedWindows   Kind = "FIX"
	SlidingWindows Kind = "SLI"
	Sessions       Kind = "SES"
	// InvalidWindows marks a merging fn already consumed by a grouping
	// operation. Validation rejects it until windows are reassigned.
	InvalidWindows Kind = "INV"
)

// NewGlobalWindows returns the default WindowFn, which places all elements
// into a single window.
func NewGlobalWindows() *Fn {
	return &Fn{Kind: GlobalWindows}
}

// NewFixedWindows returns the fixed WindowFn with the given interval.
func NewFixedWindows(interval time.Duration) *Fn {
	return &Fn{Kind: FixedWindows, Size: interval}
}

// NewSlidingWindows returns the sliding WindowFn with the given period and duration.
func NewSlidingWindows(period, duration time.Duration) *Fn {
	return &Fn{Kind: SlidingWindows, Period: period, Size: duration}
}

// NewSessions returns the session WindowFn with the given gap.
func NewSessions(gap time.Duration) *Fn {
	return &Fn{Kind: Sessions, Gap: gap}
}

// NewInvalidWindows wraps a WindowFn consumed by a previous grouping so that
// a second grouping without an intervening window reassignment is rejected.
// The cause describes why the fn became invalid.
func NewInvalidWindows(cause string, fn *Fn) *Fn {
	return &Fn{Kind: InvalidWindows, Wrapped: fn, Cause: cause}
}

// Fn defines the window fn.
type Fn struct {
	Kind Kind

	Size   time.Duration // FixedWindows, SlidingWindows
	Period time.Duration // SlidingWindows
	Gap    time.Duration // Sessions

	Wrapped *Fn    // InvalidWindows
	Cause   string // InvalidWindows
}

// IsNonMerging reports whether windows produced by this fn never merge.
// Only session windows merge.
func (w *Fn) IsNonMerging() bool {
	switch w.Kind {
	case Sessions:
		return false
	case InvalidWindows:
		return w.Wrapped.IsNonMerging()
	default:
		return true
	}
}

// AssignWindows returns the set of windows an element with the given
// timestamp belongs to. The returned set is never empty.
func (w *Fn) AssignWindows(ts typex.EventTime) []typex.Window {
	switch w.Kind {
	case GlobalWindows:
		return SingleGlobalWindow

	case FixedWindows:
		start := ts - (ts.Add(w.Size) % mtime.FromDuration(w.Size))
		end := mtime.Min(start.Add(w.Size), mtime.EndOfGlobalWindowTime.Add(time.Millisecond))
		return []typex.Window{IntervalWindow{Start: start, End: end}}

	case SlidingWindows:
		var ret []typex.Window
		period := mtime.FromDuration(w.Period)
		lastStart := ts - (ts.Add(w.Size) % period)
		for start := lastStart; start > ts.Subtract(w.Size); start -= period {
			ret = append(ret, IntervalWindow{Start: start, End: start.Add(w.Size)})
		}
		return ret

	case Sessions:
		return []typex.Window{IntervalWindow{Start: ts, End: ts.Add(w.Gap)}}

	default:
		panic(fmt.Sprintf("unexpected window fn: %v", w))
	}
}

func (w *Fn) String() string {
	switch w.Kind {
	case FixedWindows:
		return fmt.Sprintf("%v[%v]", w.Kind, w.Size)
	case SlidingWindows:
		return fmt.Sprintf("%v[%v@%v]", w.Kind, w.Size, w.Period)
	case Sessions:
		return fmt.Sprintf("%v[%v]", w.Kind, w.Gap)
	case InvalidWindows:
		return fmt.Sprintf("%v[%v: %v]", w.Kind, w.Wrapped, w.Cause)
	default:
		return string(w.Kind)
	}
}

// Equals returns true iff the fns have the same kind and underlying behavior.
func (w *Fn) Equals(o *Fn) bool {
	if w.Kind != o.Kind {
		return false
	}

	switch w.Kind {
	case GlobalWindows:
		return true
	case FixedWindows:
		return w.Size == o.Size
	case SlidingWindows:
		return w.Period == o.Period && w.Size == o.Size
	case Sessions:
		return w.Gap == o.Gap
	case InvalidWindows:
		return w.Wrapped.Equals(o.Wrapped)
	default:
		panic(fmt.Sprintf("unknown window type: %v", w))
	}
}
