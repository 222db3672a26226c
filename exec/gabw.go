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
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/oxbow-stream/oxbow/engine"
	"github.com/oxbow-stream/oxbow/mtime"
	"github.com/oxbow-stream/oxbow/typex"
	"github.com/oxbow-stream/oxbow/window"
)

// Pane is one emitted grouped result: a key's values for one window and one
// trigger firing, stamped with an output timestamp and pane metadata.
type Pane struct {
	Key       any
	Window    typex.Window
	Values    []any
	Timestamp mtime.Time
	Info      typex.PaneInfo
}

func (p Pane) String() string {
	return fmt.Sprintf("%v %v %v [@%v:%v]", p.Key, p.Window, p.Values, p.Timestamp, p.Info)
}

// windowRecord owns one live window's state within a key: the buffered
// elements in timestamp order, the trigger automaton cell, and pane
// progress. Merging folds source records into a fresh surviving record and
// invalidates the sources; records never share state.
type windowRecord struct {
	window typex.Window
	// buffer is time ordered; buffer[unfired:] has not been emitted yet.
	// In discarding mode a firing advances unfired past what it emitted.
	buffer  []FullValue
	unfired int
	// newSinceEval counts arrivals since the trigger last saw the record.
	newSinceEval int

	state *engine.StateData

	paneIndex     int64
	nonSpecIndex  int64
	onTimeEmitted bool
	firedOnce     bool

	hold    mtime.Time
	holdSet bool
}

func (r *windowRecord) pending() []FullValue {
	return r.buffer[r.unfired:]
}

// keyState is the per key partition: its open windows and watermark holds.
// Exactly one goroutine may operate on a keyState at a time.
type keyState struct {
	key     GroupingKey
	records []*windowRecord
	holds   *engine.HoldTracker
}

func newKeyState(key GroupingKey) *keyState {
	return &keyState{key: key, holds: engine.NewHoldTracker()}
}

// windowStart orders windows for deterministic emission.
func windowStart(w typex.Window) mtime.Time {
	if iw, ok := w.(window.IntervalWindow); ok {
		return iw.Start
	}
	return mtime.MinTimestamp
}

// GroupAlsoByWindow is the final grouping stage: per key it maintains the
// set of open windows, merges them per the window fn, drives the trigger
// automaton, and assembles panes.
type GroupAlsoByWindow struct {
	name     string
	strategy *window.WindowingStrategy
	strat    engine.WinStrat
}

func NewGroupAlsoByWindow(name string, strategy *window.WindowingStrategy, strat engine.WinStrat) *GroupAlsoByWindow {
	return &GroupAlsoByWindow{name: name, strategy: strategy, strat: strat}
}

func (g *GroupAlsoByWindow) record(ks *keyState, w typex.Window) *windowRecord {
	for _, rec := range ks.records {
		if rec.window.Equals(w) {
			return rec
		}
	}
	rec := &windowRecord{window: w, state: &engine.StateData{}}
	ks.records = append(ks.records, rec)
	g.sortRecords(ks)
	return rec
}

func (g *GroupAlsoByWindow) sortRecords(ks *keyState) {
	slices.SortFunc(ks.records, func(a, b *windowRecord) int {
		as, bs := windowStart(a.window), windowStart(b.window)
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	})
}

// processValue routes one element into its windows, merges, and evaluates
// the trigger. Returns emitted panes and the count of dropped late windows.
func (g *GroupAlsoByWindow) processValue(ks *keyState, fv FullValue, wm, procTime mtime.Time) ([]Pane, int) {
	var dropped int
	for _, w := range fv.Windows {
		if wm > g.strategy.EarliestCompletion(w) {
			dropped++
			engine.LateDropped.WithLabelValues(g.name).Inc()
			continue
		}
		rec := g.record(ks, w)
		g.insert(rec, fv)
		rec.newSinceEval++
	}
	if !g.strategy.Fn.IsNonMerging() {
		g.mergeWindows(ks)
	}

	var panes []Pane
	for _, rec := range ks.records {
		if rec.newSinceEval == 0 {
			continue
		}
		panes = append(panes, g.evaluate(ks, rec, wm, procTime, false)...)
	}
	g.updateHolds(ks)
	return panes, dropped
}

// insert places the value at its timestamp-sorted position among the
// not-yet-fired suffix of the buffer. Already emitted values keep their
// slots so the discarding cursor stays valid.
func (g *GroupAlsoByWindow) insert(rec *windowRecord, fv FullValue) {
	single := fv
	single.Windows = []typex.Window{rec.window}
	pos, _ := slices.BinarySearchFunc(rec.buffer, single, func(a, b FullValue) int {
		switch {
		case a.Timestamp < b.Timestamp:
			return -1
		case a.Timestamp > b.Timestamp:
			return 1
		default:
			return 0
		}
	})
	if pos < rec.unfired {
		pos = rec.unfired
	}
	rec.buffer = slices.Insert(rec.buffer, pos, single)
}

// mergeWindows folds overlapping open windows per the window fn, migrating
// buffered elements and trigger cells into the surviving record.
func (g *GroupAlsoByWindow) mergeWindows(ks *keyState) {
	if len(ks.records) < 2 {
		return
	}
	windows := make([]typex.Window, 0, len(ks.records))
	byWindow := make(map[typex.Window]*windowRecord, len(ks.records))
	for _, rec := range ks.records {
		windows = append(windows, rec.window)
		byWindow[rec.window] = rec
	}
	results, err := g.strategy.Fn.MergeWindows(windows)
	if err != nil {
		// Merging was validated at construction; an error here means the
		// fn changed under us.
		panic(err)
	}

	var merged []*windowRecord
	for _, res := range results {
		if len(res.Sources) == 1 {
			rec := byWindow[res.Sources[0]]
			rec.window = res.Result
			merged = append(merged, rec)
			continue
		}

		rec := &windowRecord{window: res.Result, state: &engine.StateData{}}
		var fired, pending []FullValue
		var states []*engine.StateData
		for _, src := range res.Sources {
			srcRec := byWindow[src]
			fired = append(fired, srcRec.buffer[:srcRec.unfired]...)
			pending = append(pending, srcRec.buffer[srcRec.unfired:]...)
			states = append(states, srcRec.state)
			rec.newSinceEval += srcRec.newSinceEval
			rec.paneIndex = max(rec.paneIndex, srcRec.paneIndex)
			rec.nonSpecIndex = max(rec.nonSpecIndex, srcRec.nonSpecIndex)
			rec.firedOnce = rec.firedOnce || srcRec.firedOnce
			if srcRec.holdSet {
				ks.holds.Drop(srcRec.hold, 1)
				srcRec.holdSet = false
			}
		}
		SortValuesByTimestamp(fired)
		SortValuesByTimestamp(pending)
		for i := range fired {
			fired[i].Windows = []typex.Window{res.Result}
		}
		for i := range pending {
			pending[i].Windows = []typex.Window{res.Result}
		}
		rec.buffer = append(fired, pending...)
		rec.unfired = len(fired)
		g.strat.MergeState(rec.state, states)
		engine.WindowsMerged.WithLabelValues(g.name).Add(float64(len(res.Sources) - 1))
		merged = append(merged, rec)
	}
	ks.records = merged
	g.sortRecords(ks)
}

// evaluate runs the trigger for one record and assembles a pane if it fires.
// closing additionally forces the window's final pane and is used at window
// expiry.
func (g *GroupAlsoByWindow) evaluate(ks *keyState, rec *windowRecord, wm, procTime mtime.Time, closing bool) []Pane {
	input := engine.TriggerInput{
		NewElementCount:    rec.newSinceEval,
		EndOfWindowReached: wm >= rec.window.MaxTimestamp(),
		ProcessingTime:     procTime,
	}
	rec.newSinceEval = 0
	fired := g.strat.IsTriggerReady(input, rec.state)
	if !fired && !closing {
		return nil
	}
	if !fired && closing && len(rec.pending()) == 0 && rec.firedOnce {
		// Expired with nothing left to say.
		return nil
	}
	pane, ok := g.assemblePane(ks, rec, wm, closing)
	if !ok {
		return nil
	}
	return []Pane{pane}
}

// assemblePane materializes the values for a firing per the accumulation
// mode and stamps pane metadata.
func (g *GroupAlsoByWindow) assemblePane(ks *keyState, rec *windowRecord, wm mtime.Time, closing bool) (Pane, bool) {
	var timing typex.Timing
	switch {
	case wm < rec.window.MaxTimestamp():
		timing = typex.EARLY
	case !rec.onTimeEmitted:
		timing = typex.ON_TIME
	default:
		timing = typex.LATE
	}

	var source []FullValue
	if g.strategy.Mode == window.Accumulating {
		source = rec.buffer
	} else {
		source = rec.pending()
	}
	if len(source) == 0 && timing != typex.ON_TIME && !(closing && !rec.firedOnce) {
		// Suppress empty speculative and empty late panes. The on-time pane
		// always fires, as does a window's only pane at expiry.
		return Pane{}, false
	}

	values := make([]any, 0, len(source))
	ts := rec.window.MaxTimestamp()
	for i, fv := range source {
		values = append(values, fv.Elm2)
		switch g.strategy.OutputTime {
		case window.LatestInput:
			if i == 0 || fv.Timestamp > ts {
				ts = fv.Timestamp
			}
		case window.EndOfWindow:
			ts = rec.window.MaxTimestamp()
		default: // EarliestInput
			if i == 0 || fv.Timestamp < ts {
				ts = fv.Timestamp
			}
		}
	}

	info := typex.PaneInfo{
		Timing:  timing,
		IsFirst: rec.paneIndex == 0,
		IsLast:  closing,
		Index:   rec.paneIndex,
	}
	if timing == typex.EARLY {
		info.NonSpeculativeIndex = -1
	} else {
		info.NonSpeculativeIndex = rec.nonSpecIndex
		rec.nonSpecIndex++
	}
	rec.paneIndex++
	rec.firedOnce = true
	if timing == typex.ON_TIME {
		rec.onTimeEmitted = true
	}
	rec.unfired = len(rec.buffer)
	engine.PanesFired.WithLabelValues(g.name, timing.String()).Inc()

	return Pane{
		Key:       ks.key.Key,
		Window:    rec.window,
		Values:    values,
		Timestamp: ts,
		Info:      info,
	}, true
}

// advanceWatermark re-evaluates every open window against the new watermark
// and expires windows past their allowed lateness horizon. Panes come back
// in window start order.
func (g *GroupAlsoByWindow) advanceWatermark(ks *keyState, wm, procTime mtime.Time) []Pane {
	var panes []Pane
	var live []*windowRecord
	for _, rec := range ks.records {
		closing := wm > g.strategy.EarliestCompletion(rec.window)
		panes = append(panes, g.evaluate(ks, rec, wm, procTime, closing)...)
		if closing {
			if rec.holdSet {
				ks.holds.Drop(rec.hold, 1)
				rec.holdSet = false
			}
			continue
		}
		live = append(live, rec)
	}
	ks.records = live
	g.updateHolds(ks)
	return panes
}

// advanceProcessingTime re-evaluates open windows for processing time
// triggers only.
func (g *GroupAlsoByWindow) advanceProcessingTime(ks *keyState, wm, procTime mtime.Time) []Pane {
	var panes []Pane
	for _, rec := range ks.records {
		panes = append(panes, g.evaluate(ks, rec, wm, procTime, false)...)
	}
	g.updateHolds(ks)
	return panes
}

// updateHolds refreshes each record's watermark hold to the output
// timestamp its next pane would carry.
func (g *GroupAlsoByWindow) updateHolds(ks *keyState) {
	for _, rec := range ks.records {
		want, ok := g.desiredHold(rec)
		if rec.holdSet && (!ok || want != rec.hold) {
			ks.holds.Drop(rec.hold, 1)
			rec.holdSet = false
		}
		if ok && !rec.holdSet {
			ks.holds.Add(want, 1)
			rec.hold = want
			rec.holdSet = true
		}
	}
}

func (g *GroupAlsoByWindow) desiredHold(rec *windowRecord) (mtime.Time, bool) {
	pending := rec.pending()
	if len(pending) == 0 {
		return 0, false
	}
	switch g.strategy.OutputTime {
	case window.EndOfWindow:
		return rec.window.MaxTimestamp(), true
	case window.LatestInput:
		return pending[len(pending)-1].Timestamp, true
	default:
		return pending[0].Timestamp, true
	}
}

// ProcessBag runs the batch form over one key's complete bag: sort by
// timestamp, feed every element, then run the watermark to the end of time
// so every window emits its panes.
func (g *GroupAlsoByWindow) ProcessBag(bag KeyedBag, procTime mtime.Time) []Pane {
	ks := newKeyState(bag.Key)
	values := slices.Clone(bag.Values)
	SortValuesByTimestamp(values)
	var panes []Pane
	for _, fv := range values {
		p, _ := g.processValue(ks, fv, mtime.MinTimestamp, procTime)
		panes = append(panes, p...)
	}
	panes = append(panes, g.advanceWatermark(ks, mtime.MaxTimestamp, procTime)...)
	return panes
}
