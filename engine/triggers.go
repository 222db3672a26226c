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
	"fmt"

	"github.com/oxbow-stream/oxbow/mtime"
	"github.com/oxbow-stream/oxbow/typex"
	"github.com/oxbow-stream/oxbow/window/trigger"
)

// Trigger is a runtime trigger automaton node. One tree of these is compiled
// per windowing strategy and shared across all keys and windows; per-cell
// state lives in a StateData keyed by the node's pointer identity, so nodes
// must be used by pointer.
//
// The automaton protocol is: onElement for each batch of new elements,
// shouldFire to check readiness, then onFire iff shouldFire returned true.
// onMerge folds the cells of merging windows into a fresh cell for the
// window that survives the merge.
type Trigger interface {
	onElement(input TriggerInput, state *StateData)
	onMerge(dst *StateData, srcs []*StateData)
	shouldFire(input TriggerInput, state *StateData) bool
	onFire(input TriggerInput, state *StateData)
	reset(state *StateData)
	// guaranteedFiringWatermark returns the input watermark at which this
	// trigger is guaranteed to have become ready for the given window, or
	// mtime.MaxTimestamp when no watermark makes that guarantee.
	guaranteedFiringWatermark(w typex.Window) mtime.Time
}

// TriggerNever is never ready. Data is emitted only when the window expires.
type TriggerNever struct{}

func (*TriggerNever) onElement(input TriggerInput, state *StateData) {}

func (t *TriggerNever) onMerge(dst *StateData, srcs []*StateData) {
	dst.setTriggerState(t, triggerState{finished: mergedFinished(t, srcs)})
}

func (*TriggerNever) shouldFire(input TriggerInput, state *StateData) bool { return false }

func (*TriggerNever) onFire(input TriggerInput, state *StateData) {}

func (t *TriggerNever) reset(state *StateData) { delete(state.Trigger, t) }

func (*TriggerNever) guaranteedFiringWatermark(w typex.Window) mtime.Time {
	return mtime.MaxTimestamp
}

func (*TriggerNever) String() string { return "Never" }

// TriggerAlways is ready whenever there are buffered elements. Semantically
// identical to Repeatedly(AfterCount(1)).
type TriggerAlways struct{}

func (t *TriggerAlways) onElement(input TriggerInput, state *StateData) {
	ts := state.getTriggerState(t)
	pending, _ := ts.extra.(int)
	ts.extra = pending + input.NewElementCount
	state.setTriggerState(t, ts)
}

func (t *TriggerAlways) onMerge(dst *StateData, srcs []*StateData) {
	var pending int
	for _, src := range srcs {
		p, _ := src.getTriggerState(t).extra.(int)
		pending += p
	}
	dst.setTriggerState(t, triggerState{extra: pending})
}

func (t *TriggerAlways) shouldFire(input TriggerInput, state *StateData) bool {
	pending, _ := state.getTriggerState(t).extra.(int)
	return pending > 0
}

func (t *TriggerAlways) onFire(input TriggerInput, state *StateData) {
	ts := state.getTriggerState(t)
	ts.extra = 0
	state.setTriggerState(t, ts)
}

func (t *TriggerAlways) reset(state *StateData) { delete(state.Trigger, t) }

func (*TriggerAlways) guaranteedFiringWatermark(w typex.Window) mtime.Time {
	return mtime.MaxTimestamp
}

func (*TriggerAlways) String() string { return "Always" }

// TriggerElementCount becomes ready once at least ElementCount elements have
// arrived since the last reset, then finishes.
type TriggerElementCount struct {
	ElementCount int
}

func (t *TriggerElementCount) onElement(input TriggerInput, state *StateData) {
	ts := state.getTriggerState(t)
	if ts.finished {
		return
	}
	count, _ := ts.extra.(int)
	ts.extra = count + input.NewElementCount
	state.setTriggerState(t, ts)
}

func (t *TriggerElementCount) onMerge(dst *StateData, srcs []*StateData) {
	var count int
	for _, src := range srcs {
		c, _ := src.getTriggerState(t).extra.(int)
		count += c
	}
	dst.setTriggerState(t, triggerState{finished: mergedFinished(t, srcs), extra: count})
}

func (t *TriggerElementCount) shouldFire(input TriggerInput, state *StateData) bool {
	ts := state.getTriggerState(t)
	if ts.finished {
		return false
	}
	count, _ := ts.extra.(int)
	return count >= t.ElementCount
}

func (t *TriggerElementCount) onFire(input TriggerInput, state *StateData) {
	state.setTriggerState(t, triggerState{finished: true, extra: 0})
}

func (t *TriggerElementCount) reset(state *StateData) { delete(state.Trigger, t) }

func (*TriggerElementCount) guaranteedFiringWatermark(w typex.Window) mtime.Time {
	return mtime.MaxTimestamp
}

func (t *TriggerElementCount) String() string {
	return fmt.Sprintf("ElementCount[%v]", t.ElementCount)
}

// defaultState is the cell state for TriggerDefault.
type defaultState struct {
	pending     int
	firedOnTime bool
}

// TriggerDefault fires once when the watermark passes the end of the window,
// and again for every arrival of late data. It never finishes.
type TriggerDefault struct{}

func (t *TriggerDefault) onElement(input TriggerInput, state *StateData) {
	ts := state.getTriggerState(t)
	ds, _ := ts.extra.(defaultState)
	ds.pending += input.NewElementCount
	ts.extra = ds
	state.setTriggerState(t, ts)
}

// onMerge sums pending counts and clears the on-time bit: the merged window
// has a new end of window, so its on-time firing is recomputed against the
// merged bounds.
func (t *TriggerDefault) onMerge(dst *StateData, srcs []*StateData) {
	var ds defaultState
	for _, src := range srcs {
		s, _ := src.getTriggerState(t).extra.(defaultState)
		ds.pending += s.pending
	}
	dst.setTriggerState(t, triggerState{extra: ds})
}

func (t *TriggerDefault) shouldFire(input TriggerInput, state *StateData) bool {
	if !input.EndOfWindowReached {
		return false
	}
	ds, _ := state.getTriggerState(t).extra.(defaultState)
	return ds.pending > 0 || !ds.firedOnTime
}

func (t *TriggerDefault) onFire(input TriggerInput, state *StateData) {
	ts := state.getTriggerState(t)
	ds, _ := ts.extra.(defaultState)
	ds.pending = 0
	ds.firedOnTime = true
	ts.extra = ds
	state.setTriggerState(t, ts)
}

func (t *TriggerDefault) reset(state *StateData) { delete(state.Trigger, t) }

func (*TriggerDefault) guaranteedFiringWatermark(w typex.Window) mtime.Time {
	return w.MaxTimestamp()
}

func (*TriggerDefault) String() string { return "Default" }

// procTimeState is the cell state for the processing time triggers.
type procTimeState struct {
	// firingTime is the target processing time, derived from the arrival
	// time of the first element of the pane. Unset until an element arrives.
	firingTime mtime.Time
	set        bool
}

// TriggerAfterProcessingTime becomes ready once the engine's processing time
// passes the first element's arrival time put through the configured
// transforms. It finishes after firing; wrap in TriggerRepeatedly for
// periodic output.
type TriggerAfterProcessingTime struct {
	Transforms []trigger.TimestampTransform
}

func applyTimestampTransforms(base mtime.Time, transforms []trigger.TimestampTransform) mtime.Time {
	target := base.Milliseconds()
	for _, tt := range transforms {
		switch tt := tt.(type) {
		case trigger.DelayTransform:
			target += tt.Delay
		case trigger.AlignToTransform:
			offset := (target - tt.Offset) % tt.Period
			if offset > 0 {
				target += tt.Period - offset
			}
		}
	}
	return mtime.FromMilliseconds(target)
}

func (t *TriggerAfterProcessingTime) onElement(input TriggerInput, state *StateData) {
	ts := state.getTriggerState(t)
	if ts.finished || input.NewElementCount == 0 {
		return
	}
	pts, _ := ts.extra.(procTimeState)
	if !pts.set {
		pts.firingTime = applyTimestampTransforms(input.ProcessingTime, t.Transforms)
		pts.set = true
	}
	ts.extra = pts
	state.setTriggerState(t, ts)
}

// onMerge keeps the earliest firing target across the merged windows.
func (t *TriggerAfterProcessingTime) onMerge(dst *StateData, srcs []*StateData) {
	var merged procTimeState
	for _, src := range srcs {
		pts, _ := src.getTriggerState(t).extra.(procTimeState)
		if !pts.set {
			continue
		}
		if !merged.set || pts.firingTime < merged.firingTime {
			merged = pts
		}
	}
	dst.setTriggerState(t, triggerState{finished: mergedFinished(t, srcs), extra: merged})
}

func (t *TriggerAfterProcessingTime) shouldFire(input TriggerInput, state *StateData) bool {
	ts := state.getTriggerState(t)
	if ts.finished {
		return false
	}
	pts, _ := ts.extra.(procTimeState)
	return pts.set && input.ProcessingTime >= pts.firingTime
}

func (t *TriggerAfterProcessingTime) onFire(input TriggerInput, state *StateData) {
	state.setTriggerState(t, triggerState{finished: true})
}

func (t *TriggerAfterProcessingTime) reset(state *StateData) { delete(state.Trigger, t) }

func (*TriggerAfterProcessingTime) guaranteedFiringWatermark(w typex.Window) mtime.Time {
	return mtime.MaxTimestamp
}

func (t *TriggerAfterProcessingTime) String() string {
	return fmt.Sprintf("AfterProcessingTime[%v]", t.Transforms)
}

// nextFiring reports the pending processing time firing target, if any.
func (t *TriggerAfterProcessingTime) nextFiring(state *StateData) (mtime.Time, bool) {
	ts := state.getTriggerState(t)
	if ts.finished {
		return mtime.MaxTimestamp, false
	}
	pts, _ := ts.extra.(procTimeState)
	return pts.firingTime, pts.set
}

// TriggerAfterSynchronizedProcessingTime becomes ready once processing time
// has advanced past the arrival of the pane's first element. It is the
// continuation of TriggerAfterProcessingTime for downstream aggregations.
type TriggerAfterSynchronizedProcessingTime struct{}

func (t *TriggerAfterSynchronizedProcessingTime) onElement(input TriggerInput, state *StateData) {
	ts := state.getTriggerState(t)
	if ts.finished || input.NewElementCount == 0 {
		return
	}
	pts, _ := ts.extra.(procTimeState)
	if !pts.set {
		pts.firingTime = input.ProcessingTime
		pts.set = true
	}
	ts.extra = pts
	state.setTriggerState(t, ts)
}

func (t *TriggerAfterSynchronizedProcessingTime) onMerge(dst *StateData, srcs []*StateData) {
	var merged procTimeState
	for _, src := range srcs {
		pts, _ := src.getTriggerState(t).extra.(procTimeState)
		if !pts.set {
			continue
		}
		if !merged.set || pts.firingTime < merged.firingTime {
			merged = pts
		}
	}
	dst.setTriggerState(t, triggerState{finished: mergedFinished(t, srcs), extra: merged})
}

func (t *TriggerAfterSynchronizedProcessingTime) shouldFire(input TriggerInput, state *StateData) bool {
	ts := state.getTriggerState(t)
	if ts.finished {
		return false
	}
	pts, _ := ts.extra.(procTimeState)
	return pts.set && input.ProcessingTime >= pts.firingTime
}

func (t *TriggerAfterSynchronizedProcessingTime) onFire(input TriggerInput, state *StateData) {
	state.setTriggerState(t, triggerState{finished: true})
}

func (t *TriggerAfterSynchronizedProcessingTime) reset(state *StateData) {
	delete(state.Trigger, t)
}

func (*TriggerAfterSynchronizedProcessingTime) guaranteedFiringWatermark(w typex.Window) mtime.Time {
	return mtime.MaxTimestamp
}

func (*TriggerAfterSynchronizedProcessingTime) String() string {
	return "AfterSynchronizedProcessingTime"
}

// TriggerRepeatedly resets its subtrigger whenever it finishes, so it may
// fire again. TriggerRepeatedly itself never finishes.
type TriggerRepeatedly struct {
	Repeated Trigger
}

func (t *TriggerRepeatedly) onElement(input TriggerInput, state *StateData) {
	t.Repeated.onElement(input, state)
}

func (t *TriggerRepeatedly) onMerge(dst *StateData, srcs []*StateData) {
	t.Repeated.onMerge(dst, srcs)
}

func (t *TriggerRepeatedly) shouldFire(input TriggerInput, state *StateData) bool {
	return t.Repeated.shouldFire(input, state)
}

func (t *TriggerRepeatedly) onFire(input TriggerInput, state *StateData) {
	t.Repeated.onFire(input, state)
	if state.getTriggerState(t.Repeated).finished {
		t.Repeated.reset(state)
	}
}

func (t *TriggerRepeatedly) reset(state *StateData) {
	t.Repeated.reset(state)
	delete(state.Trigger, t)
}

func (t *TriggerRepeatedly) guaranteedFiringWatermark(w typex.Window) mtime.Time {
	return t.Repeated.guaranteedFiringWatermark(w)
}

func (t *TriggerRepeatedly) String() string {
	return fmt.Sprintf("Repeatedly[%v]", t.Repeated)
}

// TriggerOrFinally fires when its main trigger fires, and finishes for good
// once its finally trigger fires.
type TriggerOrFinally struct {
	Main    Trigger
	Finally Trigger
}

func (t *TriggerOrFinally) onElement(input TriggerInput, state *StateData) {
	if state.getTriggerState(t).finished {
		return
	}
	t.Main.onElement(input, state)
	t.Finally.onElement(input, state)
}

func (t *TriggerOrFinally) onMerge(dst *StateData, srcs []*StateData) {
	t.Main.onMerge(dst, srcs)
	t.Finally.onMerge(dst, srcs)
	dst.setTriggerState(t, triggerState{finished: mergedFinished(t, srcs)})
}

func (t *TriggerOrFinally) shouldFire(input TriggerInput, state *StateData) bool {
	if state.getTriggerState(t).finished {
		return false
	}
	return t.Finally.shouldFire(input, state) || t.Main.shouldFire(input, state)
}

func (t *TriggerOrFinally) onFire(input TriggerInput, state *StateData) {
	if t.Finally.shouldFire(input, state) {
		t.Finally.onFire(input, state)
		ts := state.getTriggerState(t)
		ts.finished = true
		state.setTriggerState(t, ts)
		return
	}
	t.Main.onFire(input, state)
	// The main trigger fires repeatedly until finally finishes the node.
	if state.getTriggerState(t.Main).finished {
		t.Main.reset(state)
	}
}

func (t *TriggerOrFinally) reset(state *StateData) {
	t.Main.reset(state)
	t.Finally.reset(state)
	delete(state.Trigger, t)
}

func (t *TriggerOrFinally) guaranteedFiringWatermark(w typex.Window) mtime.Time {
	return mtime.Min(t.Main.guaranteedFiringWatermark(w), t.Finally.guaranteedFiringWatermark(w))
}

func (t *TriggerOrFinally) String() string {
	return fmt.Sprintf("OrFinally[Main: %v, Finally: %v]", t.Main, t.Finally)
}

// TriggerAfterAny fires when any subtrigger is ready, then finishes. Wrap in
// TriggerRepeatedly for repeated firings.
type TriggerAfterAny struct {
	SubTriggers []Trigger
}

func (t *TriggerAfterAny) onElement(input TriggerInput, state *StateData) {
	if state.getTriggerState(t).finished {
		return
	}
	for _, sub := range t.SubTriggers {
		sub.onElement(input, state)
	}
}

func (t *TriggerAfterAny) onMerge(dst *StateData, srcs []*StateData) {
	for _, sub := range t.SubTriggers {
		sub.onMerge(dst, srcs)
	}
	dst.setTriggerState(t, triggerState{finished: mergedFinished(t, srcs)})
}

func (t *TriggerAfterAny) shouldFire(input TriggerInput, state *StateData) bool {
	if state.getTriggerState(t).finished {
		return false
	}
	for _, sub := range t.SubTriggers {
		if sub.shouldFire(input, state) {
			return true
		}
	}
	return false
}

func (t *TriggerAfterAny) onFire(input TriggerInput, state *StateData) {
	for _, sub := range t.SubTriggers {
		if sub.shouldFire(input, state) {
			sub.onFire(input, state)
		}
	}
	ts := state.getTriggerState(t)
	ts.finished = true
	state.setTriggerState(t, ts)
}

func (t *TriggerAfterAny) reset(state *StateData) {
	for _, sub := range t.SubTriggers {
		sub.reset(state)
	}
	delete(state.Trigger, t)
}

func (t *TriggerAfterAny) guaranteedFiringWatermark(w typex.Window) mtime.Time {
	guaranteed := mtime.MaxTimestamp
	for _, sub := range t.SubTriggers {
		guaranteed = mtime.Min(guaranteed, sub.guaranteedFiringWatermark(w))
	}
	return guaranteed
}

func (t *TriggerAfterAny) String() string {
	return fmt.Sprintf("AfterAny%v", t.SubTriggers)
}

// TriggerAfterAll fires once every subtrigger is ready or has already fired,
// then finishes.
type TriggerAfterAll struct {
	SubTriggers []Trigger
}

func (t *TriggerAfterAll) onElement(input TriggerInput, state *StateData) {
	if state.getTriggerState(t).finished {
		return
	}
	for _, sub := range t.SubTriggers {
		sub.onElement(input, state)
	}
}

func (t *TriggerAfterAll) onMerge(dst *StateData, srcs []*StateData) {
	for _, sub := range t.SubTriggers {
		sub.onMerge(dst, srcs)
	}
	dst.setTriggerState(t, triggerState{finished: mergedFinished(t, srcs)})
}

func (t *TriggerAfterAll) shouldFire(input TriggerInput, state *StateData) bool {
	if state.getTriggerState(t).finished {
		return false
	}
	for _, sub := range t.SubTriggers {
		if !sub.shouldFire(input, state) && !state.getTriggerState(sub).finished {
			return false
		}
	}
	return true
}

func (t *TriggerAfterAll) onFire(input TriggerInput, state *StateData) {
	for _, sub := range t.SubTriggers {
		if sub.shouldFire(input, state) {
			sub.onFire(input, state)
		}
	}
	ts := state.getTriggerState(t)
	ts.finished = true
	state.setTriggerState(t, ts)
}

func (t *TriggerAfterAll) reset(state *StateData) {
	for _, sub := range t.SubTriggers {
		sub.reset(state)
	}
	delete(state.Trigger, t)
}

func (t *TriggerAfterAll) guaranteedFiringWatermark(w typex.Window) mtime.Time {
	guaranteed := mtime.MinTimestamp
	for _, sub := range t.SubTriggers {
		guaranteed = mtime.Max(guaranteed, sub.guaranteedFiringWatermark(w))
	}
	return guaranteed
}

func (t *TriggerAfterAll) String() string {
	return fmt.Sprintf("AfterAll%v", t.SubTriggers)
}

// TriggerAfterEach fires its subtriggers in order. A later subtrigger that
// becomes ready early does not fire until every one before it has fired.
// Finishes once the last subtrigger finishes.
type TriggerAfterEach struct {
	SubTriggers []Trigger
}

func (t *TriggerAfterEach) current(state *StateData) (int, Trigger) {
	idx, _ := state.getTriggerState(t).extra.(int)
	if idx >= len(t.SubTriggers) {
		return idx, nil
	}
	return idx, t.SubTriggers[idx]
}

func (t *TriggerAfterEach) onElement(input TriggerInput, state *StateData) {
	if state.getTriggerState(t).finished {
		return
	}
	if _, cur := t.current(state); cur != nil {
		cur.onElement(input, state)
	}
}

// onMerge resumes the sequence from the least advanced of the merged
// windows, so no subtrigger's firing is skipped.
func (t *TriggerAfterEach) onMerge(dst *StateData, srcs []*StateData) {
	for _, sub := range t.SubTriggers {
		sub.onMerge(dst, srcs)
	}
	idx := len(t.SubTriggers)
	for _, src := range srcs {
		i, _ := src.getTriggerState(t).extra.(int)
		if i < idx {
			idx = i
		}
	}
	dst.setTriggerState(t, triggerState{finished: mergedFinished(t, srcs), extra: idx})
}

func (t *TriggerAfterEach) shouldFire(input TriggerInput, state *StateData) bool {
	if state.getTriggerState(t).finished {
		return false
	}
	_, cur := t.current(state)
	return cur != nil && cur.shouldFire(input, state)
}

func (t *TriggerAfterEach) onFire(input TriggerInput, state *StateData) {
	idx, cur := t.current(state)
	if cur == nil {
		return
	}
	cur.onFire(input, state)
	ts := state.getTriggerState(t)
	if state.getTriggerState(cur).finished {
		idx++
		ts.extra = idx
		if idx >= len(t.SubTriggers) {
			ts.finished = true
		}
	}
	state.setTriggerState(t, ts)
}

func (t *TriggerAfterEach) reset(state *StateData) {
	for _, sub := range t.SubTriggers {
		sub.reset(state)
	}
	delete(state.Trigger, t)
}

func (t *TriggerAfterEach) guaranteedFiringWatermark(w typex.Window) mtime.Time {
	if len(t.SubTriggers) == 0 {
		return mtime.MaxTimestamp
	}
	return t.SubTriggers[0].guaranteedFiringWatermark(w)
}

func (t *TriggerAfterEach) String() string {
	return fmt.Sprintf("AfterEach%v", t.SubTriggers)
}

// eowState is the cell state for TriggerAfterEndOfWindow.
type eowState struct {
	pending     int
	onTimeFired bool
}

// TriggerAfterEndOfWindow fires once when the watermark passes the end of
// the window, governed by the Early trigger before that point and by the
// Late trigger after it. With no Late trigger it finishes at the on-time
// firing.
type TriggerAfterEndOfWindow struct {
	Early, Late Trigger // either may be nil
}

func (t *TriggerAfterEndOfWindow) onElement(input TriggerInput, state *StateData) {
	if state.getTriggerState(t).finished {
		return
	}
	ts := state.getTriggerState(t)
	es, _ := ts.extra.(eowState)
	es.pending += input.NewElementCount
	ts.extra = es
	state.setTriggerState(t, ts)
	if !input.EndOfWindowReached {
		if t.Early != nil {
			t.Early.onElement(input, state)
		}
		return
	}
	if es.onTimeFired && t.Late != nil {
		t.Late.onElement(input, state)
	}
}

// onMerge clears the on-time bit so the merged window takes its on-time
// firing against the merged end of window.
func (t *TriggerAfterEndOfWindow) onMerge(dst *StateData, srcs []*StateData) {
	if t.Early != nil {
		t.Early.onMerge(dst, srcs)
	}
	if t.Late != nil {
		t.Late.onMerge(dst, srcs)
	}
	var es eowState
	for _, src := range srcs {
		s, _ := src.getTriggerState(t).extra.(eowState)
		es.pending += s.pending
	}
	dst.setTriggerState(t, triggerState{finished: mergedFinished(t, srcs), extra: es})
}

func (t *TriggerAfterEndOfWindow) shouldFire(input TriggerInput, state *StateData) bool {
	ts := state.getTriggerState(t)
	if ts.finished {
		return false
	}
	es, _ := ts.extra.(eowState)
	if !input.EndOfWindowReached {
		return t.Early != nil && t.Early.shouldFire(input, state)
	}
	if !es.onTimeFired {
		return true
	}
	return t.Late != nil && t.Late.shouldFire(input, state)
}

func (t *TriggerAfterEndOfWindow) onFire(input TriggerInput, state *StateData) {
	ts := state.getTriggerState(t)
	es, _ := ts.extra.(eowState)
	switch {
	case !input.EndOfWindowReached:
		if t.Early != nil {
			t.Early.onFire(input, state)
		}
		es.pending = 0
	case !es.onTimeFired:
		es.pending = 0
		es.onTimeFired = true
		if t.Late == nil {
			ts.finished = true
		}
	default:
		if t.Late != nil {
			t.Late.onFire(input, state)
		}
		es.pending = 0
	}
	ts.extra = es
	state.setTriggerState(t, ts)
}

func (t *TriggerAfterEndOfWindow) reset(state *StateData) {
	if t.Early != nil {
		t.Early.reset(state)
	}
	if t.Late != nil {
		t.Late.reset(state)
	}
	delete(state.Trigger, t)
}

func (*TriggerAfterEndOfWindow) guaranteedFiringWatermark(w typex.Window) mtime.Time {
	return w.MaxTimestamp()
}

func (t *TriggerAfterEndOfWindow) String() string {
	return fmt.Sprintf("AfterEndOfWindow[Early: %v, Late: %v]", t.Early, t.Late)
}

// nextProcessingFiring walks the tree for the earliest pending processing
// time firing target in the given cell, if any.
func nextProcessingFiring(t Trigger, state *StateData) (mtime.Time, bool) {
	earliest, ok := mtime.MaxTimestamp, false
	consider := func(ft mtime.Time, set bool) {
		if set && ft < earliest {
			earliest, ok = ft, true
		}
	}
	switch t := t.(type) {
	case *TriggerAfterProcessingTime:
		return t.nextFiring(state)
	case *TriggerAfterSynchronizedProcessingTime:
		ts := state.getTriggerState(t)
		if ts.finished {
			return mtime.MaxTimestamp, false
		}
		pts, _ := ts.extra.(procTimeState)
		return pts.firingTime, pts.set
	case *TriggerRepeatedly:
		return nextProcessingFiring(t.Repeated, state)
	case *TriggerOrFinally:
		consider(nextProcessingFiring(t.Main, state))
		consider(nextProcessingFiring(t.Finally, state))
	case *TriggerAfterAny:
		for _, sub := range t.SubTriggers {
			consider(nextProcessingFiring(sub, state))
		}
	case *TriggerAfterAll:
		for _, sub := range t.SubTriggers {
			consider(nextProcessingFiring(sub, state))
		}
	case *TriggerAfterEach:
		if _, cur := t.current(state); cur != nil {
			consider(nextProcessingFiring(cur, state))
		}
	case *TriggerAfterEndOfWindow:
		if t.Early != nil {
			consider(nextProcessingFiring(t.Early, state))
		}
		if t.Late != nil {
			consider(nextProcessingFiring(t.Late, state))
		}
	}
	return earliest, ok
}
