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

	"github.com/pkg/errors"

	"github.com/oxbow-stream/oxbow/mtime"
	"github.com/oxbow-stream/oxbow/typex"
	"github.com/oxbow-stream/oxbow/window/trigger"
)

// AccumulationMode controls whether a pane carries everything buffered for
// its window or only what arrived since the previous firing.
type AccumulationMode int

const (
	// Discarding panes contain only the values that arrived since the last
	// firing for the same key and window.
	Discarding AccumulationMode = iota
	// Accumulating panes contain every value buffered for the key and
	// window, including values already emitted by earlier panes.
	Accumulating
)

func (m AccumulationMode) String() string {
	switch m {
	case Accumulating:
		return "ACCUMULATING"
	default:
		return "DISCARDING"
	}
}

// OutputTime selects the timestamp assigned to an emitted pane.
type OutputTime int

const (
	// EarliestInput stamps a pane with the earliest timestamp of its inputs.
	EarliestInput OutputTime = iota
	// LatestInput stamps a pane with the latest timestamp of its inputs.
	LatestInput
	// EndOfWindow stamps a pane with the window's maximum timestamp.
	EndOfWindow
)

func (o OutputTime) String() string {
	switch o {
	case LatestInput:
		return "LATEST_INPUT"
	case EndOfWindow:
		return "END_OF_WINDOW"
	default:
		return "EARLIEST_INPUT"
	}
}

// WindowingStrategy bundles the window fn with the firing policy of a
// collection: the trigger, the accumulation mode, how long late data is
// accepted, and how pane timestamps are derived.
//
// A strategy is immutable once attached to a collection. Grouping operations
// attach a derived strategy to their output, see AfterGrouping.
type WindowingStrategy struct {
	Fn              *Fn
	Trigger         trigger.Trigger
	Mode            AccumulationMode
	AllowedLateness time.Duration
	OutputTime      OutputTime
}

// DefaultWindowingStrategy returns the default strategy: global windows with
// the default trigger, discarding mode, and no allowed lateness.
func DefaultWindowingStrategy() *WindowingStrategy {
	return &WindowingStrategy{
		Fn:      NewGlobalWindows(),
		Trigger: trigger.Default(),
	}
}

func (ws *WindowingStrategy) Equals(o *WindowingStrategy) bool {
	return ws.Fn.Equals(o.Fn) &&
		ws.Mode == o.Mode &&
		ws.AllowedLateness == o.AllowedLateness &&
		ws.OutputTime == o.OutputTime
}

func (ws *WindowingStrategy) String() string {
	return fmt.Sprintf("%v[trigger:%v mode:%v lateness:%v outputTime:%v]",
		ws.Fn, ws.Trigger, ws.Mode, ws.AllowedLateness, ws.OutputTime)
}

// EarliestCompletion marks when a window can be closed: no data later than
// this point is accepted for it.
func (ws *WindowingStrategy) EarliestCompletion(w typex.Window) mtime.Time {
	return w.MaxTimestamp().Add(ws.AllowedLateness)
}

// AfterGrouping derives the strategy attached to the output of a grouping
// operation. A merging window fn is wrapped as invalid, since a second
// grouping without reassigning windows would merge already-merged results
// incorrectly. The trigger is replaced by its continuation so re-grouping
// pre-grouped panes preserves the original firing intent.
func (ws *WindowingStrategy) AfterGrouping() *WindowingStrategy {
	fn := ws.Fn
	if !fn.IsNonMerging() {
		fn = NewInvalidWindows("WindowFn has already been consumed by a previous grouping", fn)
	}
	return &WindowingStrategy{
		Fn:              fn,
		Trigger:         trigger.Continuation(ws.Trigger),
		Mode:            ws.Mode,
		AllowedLateness: ws.AllowedLateness,
		OutputTime:      ws.OutputTime,
	}
}

// ApplicableTo validates that a grouping operation may be applied to a
// collection with this strategy. An unbounded input in the default
// configuration is rejected: the default trigger over the global window
// would wait for an end-of-time watermark that never comes. A window fn
// consumed by a previous grouping is rejected until windows are reassigned.
func (ws *WindowingStrategy) ApplicableTo(bounded bool) error {
	if _, ok := ws.Trigger.(*trigger.DefaultTrigger); ok && ws.Fn.Kind == GlobalWindows && !bounded {
		return errors.New("grouping cannot be applied to an unbounded collection in the global window " +
			"without a trigger; reassign windows or configure triggering before grouping")
	}
	if ws.Fn.Kind == InvalidWindows {
		return errors.Errorf("grouping requires a valid window merge function, invalid because: %v", ws.Fn.Cause)
	}
	return nil
}
