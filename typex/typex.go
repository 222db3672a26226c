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

// Package typex contains the shared element types of the engine: event times,
// windows and pane metadata.
package typex

import (
	"fmt"

	"github.com/oxbow-stream/oxbow/mtime"
)

// EventTime is a timestamp the engine understands as attached to an element.
type EventTime = mtime.Time

// Window represents a concrete window an element has been assigned to.
// Window identity is defined entirely by the WindowFn that produced it,
// never by element content.
type Window interface {
	// MaxTimestamp returns the inclusive upper bound of timestamps for values in this window.
	MaxTimestamp() EventTime

	// Equals returns true iff the windows are identical.
	Equals(o Window) bool
}

// Timing classifies a pane firing relative to the watermark passing the
// end of its window.
type Timing int

const (
	// UNKNOWN marks a pane produced outside of trigger execution.
	UNKNOWN Timing = iota
	// EARLY panes fire while the watermark is still before the window's end.
	EARLY
	// ON_TIME panes fire when the watermark has passed the window's end,
	// before any late data is taken into account.
	ON_TIME
	// LATE panes fire after the on-time point, prompted by late data.
	LATE
)

func (t Timing) String() string {
	switch t {
	case EARLY:
		return "EARLY"
	case ON_TIME:
		return "ON_TIME"
	case LATE:
		return "LATE"
	default:
		return "UNKNOWN"
	}
}

// PaneInfo tags one trigger firing for a key and window.
type PaneInfo struct {
	Timing          Timing
	IsFirst, IsLast bool
	// Index is the zero-based count of firings for this key and window.
	Index int64
	// NonSpeculativeIndex is the zero-based count of non-early firings,
	// or -1 for a speculative (early) pane.
	NonSpeculativeIndex int64
}

func (p PaneInfo) String() string {
	return fmt.Sprintf("Pane[%v first:%v last:%v index:%v nonSpec:%v]",
		p.Timing, p.IsFirst, p.IsLast, p.Index, p.NonSpeculativeIndex)
}

// NoFiringPane returns the pane used for elements that are not part of any
// trigger firing, such as elements that have not been grouped yet.
func NoFiringPane() PaneInfo {
	return PaneInfo{IsFirst: true, IsLast: true}
}
