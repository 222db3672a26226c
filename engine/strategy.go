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

// Package engine compiles declarative windowing strategies into the runtime
// trigger automatons and bookkeeping used by grouping execution.
package engine

import (
	"fmt"
	"time"

	"github.com/oxbow-stream/oxbow/mtime"
	"github.com/oxbow-stream/oxbow/typex"
	"github.com/oxbow-stream/oxbow/window"
)

// WinStrat is the compiled runtime form of a windowing strategy: the built
// trigger automaton plus the handful of strategy fields grouping execution
// consults on every element and watermark advance.
type WinStrat struct {
	AllowedLateness time.Duration
	Accumulating    bool
	Trigger         Trigger
}

// NewWinStrat compiles the strategy's trigger tree and captures the fields
// the engine needs at runtime.
func NewWinStrat(ws *window.WindowingStrategy) (WinStrat, error) {
	t, err := buildTrigger(ws.Trigger)
	if err != nil {
		return WinStrat{}, err
	}
	return WinStrat{
		AllowedLateness: ws.AllowedLateness,
		Accumulating:    ws.Mode == window.Accumulating,
		Trigger:         t,
	}, nil
}

// EarliestCompletion returns the watermark at which the window's data is
// complete and the window may be garbage collected.
func (ws WinStrat) EarliestCompletion(w typex.Window) mtime.Time {
	return w.MaxTimestamp().Add(ws.AllowedLateness)
}

// IsTriggerReady processes the input against the window's trigger cell and
// reports whether a pane should fire now. When it returns true the automaton
// has already transitioned through onFire.
func (ws WinStrat) IsTriggerReady(input TriggerInput, state *StateData) bool {
	ws.Trigger.onElement(input, state)
	if !ws.Trigger.shouldFire(input, state) {
		return false
	}
	ws.Trigger.onFire(input, state)
	return true
}

// IsNeverTrigger reports whether the strategy can only emit at window
// expiration.
func (ws WinStrat) IsNeverTrigger() bool {
	_, ok := ws.Trigger.(*TriggerNever)
	return ok
}

// MergeState folds the trigger cells of merging windows into dst, which must
// be a fresh StateData for the surviving window.
func (ws WinStrat) MergeState(dst *StateData, srcs []*StateData) {
	ws.Trigger.onMerge(dst, srcs)
}

// GuaranteedFiringWatermark returns the input watermark at which the
// strategy's trigger is certain to have become ready for the window, or
// mtime.MaxTimestamp when only window expiration forces output.
func (ws WinStrat) GuaranteedFiringWatermark(w typex.Window) mtime.Time {
	return ws.Trigger.guaranteedFiringWatermark(w)
}

// NextProcessingFiring returns the earliest pending processing time firing
// across the trigger tree for the given cell, if one is scheduled.
func (ws WinStrat) NextProcessingFiring(state *StateData) (mtime.Time, bool) {
	return nextProcessingFiring(ws.Trigger, state)
}

func (ws WinStrat) String() string {
	mode := "Discarding"
	if ws.Accumulating {
		mode = "Accumulating"
	}
	return fmt.Sprintf("WinStrat[AllowedLateness: %v, Mode: %v, Trigger: %v]", ws.AllowedLateness, mode, ws.Trigger)
}
