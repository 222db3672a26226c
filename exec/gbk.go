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
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/oxbow-stream/oxbow/coder"
	"github.com/oxbow-stream/oxbow/engine"
	"github.com/oxbow-stream/oxbow/mtime"
	"github.com/oxbow-stream/oxbow/window"
)

// GroupByKey composes the grouping pipeline over a live stream: elements
// are reified and routed to their key partition as they arrive, and panes
// are emitted as the watermark and processing time advance.
//
// Each key partition owns its state exclusively; distinct partitions are
// evaluated in parallel on watermark advances. The watermark is monotonic;
// regressions are ignored.
type GroupByKey struct {
	name     string
	id       string
	strategy *window.WindowingStrategy
	output   *window.WindowingStrategy
	keyCoder coder.Coder
	strat    engine.WinStrat
	gabw     *GroupAlsoByWindow
	log      *slog.Logger

	mu             sync.Mutex
	keys           map[string]*keyState
	inputWatermark mtime.Time
	processingTime mtime.Time
	refresh        *engine.RefreshQueue
	emitted        []Pane
}

// Option configures a GroupByKey.
type Option func(*GroupByKey)

// WithLogger routes the grouping's logging to the given logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *GroupByKey) { g.log = l }
}

// NewGroupByKey validates the strategy and key coder and builds the
// grouping. All construction time checks happen here, before any data is
// processed: strategy applicability for the input's boundedness, and key
// coder determinism.
func NewGroupByKey(name string, strategy *window.WindowingStrategy, keyCoder coder.Coder, bounded bool, opts ...Option) (*GroupByKey, error) {
	if err := strategy.ApplicableTo(bounded); err != nil {
		return nil, errors.Wrapf(err, "grouping %q not applicable to its input", name)
	}
	if err := keyCoder.VerifyDeterministic(); err != nil {
		return nil, errors.Wrapf(err, "grouping %q requires a deterministic key coder, but %v is not", name, keyCoder)
	}
	strat, err := engine.NewWinStrat(strategy)
	if err != nil {
		return nil, errors.Wrapf(err, "grouping %q", name)
	}
	g := &GroupByKey{
		name:           name,
		id:             uuid.NewString(),
		strategy:       strategy,
		output:         strategy.AfterGrouping(),
		keyCoder:       keyCoder,
		strat:          strat,
		keys:           map[string]*keyState{},
		inputWatermark: mtime.MinTimestamp,
		processingTime: mtime.MinTimestamp,
		refresh:        engine.NewRefreshQueue(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	g.log = g.log.With("grouping", name, "instance", g.id)
	g.gabw = NewGroupAlsoByWindow(name, strategy, strat)
	return g, nil
}

// OutputStrategy is the windowing strategy attached to the grouped output:
// merging fns are marked consumed and the trigger is the continuation.
func (g *GroupByKey) OutputStrategy() *window.WindowingStrategy {
	return g.output
}

// ProcessElement accepts one keyed element with its event timestamp. Panes
// fired by the arrival (count or processing time conditions) are buffered
// for ExtractOutput.
func (g *GroupByKey) ProcessElement(key, value any, ts mtime.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	fv := ReifyTimestampsAndWindows(g.strategy.Fn, key, value, ts)
	gk, err := encodeGroupingKey(g.keyCoder, key, value)
	if err != nil {
		return err
	}
	ks, ok := g.keys[gk.Encoded]
	if !ok {
		ks = newKeyState(gk)
		g.keys[gk.Encoded] = ks
	}
	engine.ElementsProcessed.WithLabelValues(g.name).Inc()

	panes, dropped := g.gabw.processValue(ks, fv, g.inputWatermark, g.processingTime)
	if dropped > 0 {
		g.log.Warn("dropped late element past allowed lateness",
			slog.Any("key", key),
			slog.Any("timestamp", ts),
			slog.Int("windows", dropped))
	}
	g.emitted = append(g.emitted, panes...)
	g.scheduleRefresh(gk.Encoded, ks)
	return nil
}

// AdvanceWatermark moves the input watermark forward and re-evaluates every
// key partition, in parallel, collecting panes in deterministic order: keys
// by encoded bytes, windows by start. A regression is ignored.
func (g *GroupByKey) AdvanceWatermark(wm mtime.Time) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if wm < g.inputWatermark {
		g.log.Warn("ignoring watermark regression",
			slog.Any("current", g.inputWatermark),
			slog.Any("proposed", wm))
		return nil
	}
	g.inputWatermark = wm

	encoded := make([]string, 0, len(g.keys))
	for k := range g.keys {
		encoded = append(encoded, k)
	}
	slices.Sort(encoded)

	perKey := make([][]Pane, len(encoded))
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, k := range encoded {
		i, ks := i, g.keys[k]
		eg.Go(func() error {
			perKey[i] = g.gabw.advanceWatermark(ks, wm, g.processingTime)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	for i, k := range encoded {
		g.emitted = append(g.emitted, perKey[i]...)
		ks := g.keys[k]
		if len(ks.records) == 0 {
			delete(g.keys, k)
			continue
		}
		g.scheduleRefresh(k, ks)
	}
	return nil
}

// AdvanceProcessingTime moves the processing clock forward and re-evaluates
// the key partitions with processing time firings due. A regression is
// ignored.
func (g *GroupByKey) AdvanceProcessingTime(pt mtime.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if pt < g.processingTime {
		g.log.Warn("ignoring processing time regression",
			slog.Any("current", g.processingTime),
			slog.Any("proposed", pt))
		return
	}
	g.processingTime = pt

	for _, k := range g.refresh.AdvanceTo(pt) {
		ks, ok := g.keys[k]
		if !ok {
			continue
		}
		g.emitted = append(g.emitted, g.gabw.advanceProcessingTime(ks, g.inputWatermark, pt)...)
		g.scheduleRefresh(k, ks)
	}
}

// scheduleRefresh queues the key for re-evaluation at its earliest pending
// processing time firing, if any.
func (g *GroupByKey) scheduleRefresh(encoded string, ks *keyState) {
	for _, rec := range ks.records {
		if ft, ok := g.strat.NextProcessingFiring(rec.state); ok {
			g.refresh.Schedule(ft, encoded)
		}
	}
}

// ExtractOutput returns the panes fired since the last call and clears the
// buffer.
func (g *GroupByKey) ExtractOutput() []Pane {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := g.emitted
	g.emitted = nil
	return out
}

// OutputWatermark is the grouped output's watermark: the input watermark
// held back to the timestamp of the earliest pane still pending.
func (g *GroupByKey) OutputWatermark() mtime.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	wm := g.inputWatermark
	for _, ks := range g.keys {
		wm = mtime.Min(wm, ks.holds.Min())
	}
	return wm
}

// NextFiringWatermark reports the earliest input watermark at which some
// open window is guaranteed to emit or expire; mtime.MaxTimestamp when no
// windows are open. A scheduler can use this to set timers.
func (g *GroupByKey) NextFiringWatermark() mtime.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	next := mtime.MaxTimestamp
	for _, ks := range g.keys {
		for _, rec := range ks.records {
			next = mtime.Min(next, g.strat.GuaranteedFiringWatermark(rec.window))
			next = mtime.Min(next, g.strategy.EarliestCompletion(rec.window))
		}
	}
	return next
}
