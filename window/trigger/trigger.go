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

// Package trigger describes when to emit aggregations for a window. Triggers
// here are declarative trees; the engine package compiles them into runtime
// automatons.
package trigger

import (
	"fmt"
	"time"
)

// Trigger describes when to emit new aggregations.
type Trigger interface {
	trigger()
}

// DefaultTrigger fires once after the end of window, and then once per
// element of late data.
type DefaultTrigger struct{}

func (t DefaultTrigger) trigger() {}

func (t DefaultTrigger) String() string {
	return "Default"
}

// Default constructs a trigger that fires once after the end of window.
func Default() *DefaultTrigger {
	return &DefaultTrigger{}
}

// AlwaysTrigger fires immediately after receiving an element.
type AlwaysTrigger struct{}

func (t AlwaysTrigger) trigger() {}

func (t *AlwaysTrigger) String() string {
	return "Always"
}

// Always constructs a trigger that fires immediately whenever an element is
// received.
//
// Equivalent to trigger.Repeat(trigger.AfterCount(1))
func Always() *AlwaysTrigger {
	return &AlwaysTrigger{}
}

// NeverTrigger is never ready to fire. There will only be an ON_TIME output
// and a final output at window expiration.
type NeverTrigger struct{}

func (t NeverTrigger) trigger() {}

func (t *NeverTrigger) String() string {
	return "Never"
}

// Never creates a trigger that is never ready to fire.
func Never() *NeverTrigger {
	return &NeverTrigger{}
}

// AfterCountTrigger fires after receiving elementCount elements.
type AfterCountTrigger struct {
	elementCount int32
}

func (t AfterCountTrigger) trigger() {}

func (t *AfterCountTrigger) String() string {
	return fmt.Sprintf("AfterCount[%v]", t.elementCount)
}

// ElementCount returns the elementCount.
func (t *AfterCountTrigger) ElementCount() int32 {
	return t.elementCount
}

// AfterCount constructs a trigger that fires after at least `count` number
// of elements are processed.
func AfterCount(count int32) *AfterCountTrigger {
	if count < 1 {
		panic(fmt.Errorf("trigger.AfterCount(%v) must be a positive integer", count))
	}
	return &AfterCountTrigger{elementCount: count}
}

// AfterProcessingTimeTrigger fires after passage of times defined in
// timestampTransforms.
type AfterProcessingTimeTrigger struct {
	timestampTransforms []TimestampTransform
}

func (t AfterProcessingTimeTrigger) trigger() {}

func (t *AfterProcessingTimeTrigger) String() string {
	return fmt.Sprintf("AfterProcessingTime[%v]", t.timestampTransforms)
}

// TimestampTransforms returns the timestampTransforms.
func (t *AfterProcessingTimeTrigger) TimestampTransforms() []TimestampTransform {
	return t.timestampTransforms
}

// AfterProcessingTime constructs a trigger that fires relative to when input
// first arrives.
//
// Must be configured with calls to PlusDelay, or AlignedTo. May be
// configured with additional delay.
func AfterProcessingTime() *AfterProcessingTimeTrigger {
	return &AfterProcessingTimeTrigger{}
}

// TimestampTransform describes how an after processing time trigger
// time is transformed to determine when to fire an aggregation. The base
// timestamp is always when the first element of the pane is received.
//
// A series of these transforms will be applied in order to emit at regular
// intervals.
type TimestampTransform interface {
	timestampTransform()
}

// DelayTransform takes the timestamp and adds the given delay to it.
type DelayTransform struct {
	Delay int64 // in milliseconds
}

func (DelayTransform) timestampTransform() {}

// AlignToTransform takes the timestamp and transforms it to the lowest
// multiple of the period starting from the offset.
type AlignToTransform struct {
	Period, Offset int64 // in milliseconds
}

func (AlignToTransform) timestampTransform() {}

// PlusDelay configures an AfterProcessingTime trigger to fire after a
// specified delay, no smaller than a millisecond.
func (t *AfterProcessingTimeTrigger) PlusDelay(delay time.Duration) *AfterProcessingTimeTrigger {
	if delay < time.Millisecond {
		panic(fmt.Errorf("can't apply processing delay of less than a millisecond. Got: %v", delay))
	}
	t.timestampTransforms = append(t.timestampTransforms, DelayTransform{Delay: int64(delay / time.Millisecond)})
	return t
}

// AlignedTo configures an AfterProcessingTime trigger to fire at the
// smallest multiple of period since the offset greater than the first
// element timestamp.
//
//   - Period may not be smaller than a millisecond.
//   - Offset may be a zero time (time.Time{}).
func (t *AfterProcessingTimeTrigger) AlignedTo(period time.Duration, offset time.Time) *AfterProcessingTimeTrigger {
	if period < time.Millisecond {
		panic(fmt.Errorf("can't apply an alignment period of less than a millisecond. Got: %v", period))
	}
	offsetMillis := int64(0)
	if !offset.IsZero() {
		offsetMillis = offset.UnixMilli()
	}
	t.timestampTransforms = append(t.timestampTransforms, AlignToTransform{
		Period: int64(period / time.Millisecond),
		Offset: offsetMillis,
	})
	return t
}

// AfterSynchronizedProcessingTimeTrigger fires when the processing time of
// the grouping stage catches up with the processing time at which its input
// was emitted. It is the continuation of AfterProcessingTime.
type AfterSynchronizedProcessingTimeTrigger struct{}

func (t AfterSynchronizedProcessingTimeTrigger) trigger() {}

func (t *AfterSynchronizedProcessingTimeTrigger) String() string {
	return "AfterSynchronizedProcessingTime"
}

// AfterSynchronizedProcessingTime creates a trigger that fires when the
// processing time synchronizes with arrival time.
func AfterSynchronizedProcessingTime() *AfterSynchronizedProcessingTimeTrigger {
	return &AfterSynchronizedProcessingTimeTrigger{}
}

// RepeatTrigger fires a sub-trigger repeatedly.
type RepeatTrigger struct {
	subtrigger Trigger
}

func (t RepeatTrigger) trigger() {}

func (t *RepeatTrigger) String() string {
	return fmt.Sprintf("Repeat[%v]", t.subtrigger)
}

// SubTrigger returns the trigger to be repeated.
func (t *RepeatTrigger) SubTrigger() Trigger {
	return t.subtrigger
}

// Repeat constructs a trigger that fires a trigger repeatedly
// once the condition has been met.
//
// Ex: trigger.Repeat(trigger.AfterCount(1)) is same as trigger.Always().
func Repeat(t Trigger) *RepeatTrigger {
	if t == nil {
		panic("trigger argument to trigger.Repeat() cannot be nil")
	}
	return &RepeatTrigger{subtrigger: t}
}

// AfterEndOfWindowTrigger provides option to set triggers for early and late
// firing.
type AfterEndOfWindowTrigger struct {
	earlyFiring Trigger
	lateFiring  Trigger
}

func (t AfterEndOfWindowTrigger) trigger() {}

func (t *AfterEndOfWindowTrigger) String() string {
	return fmt.Sprintf("AfterEndOfWindow[Early: %v, Late: %v]", t.earlyFiring, t.lateFiring)
}

// Early returns the early firing trigger.
func (t *AfterEndOfWindowTrigger) Early() Trigger {
	return t.earlyFiring
}

// Late returns the late firing trigger.
func (t *AfterEndOfWindowTrigger) Late() Trigger {
	return t.lateFiring
}

// AfterEndOfWindow constructs a trigger that is configurable for early
// firing (before the end of window) and late firing (after the end of
// window).
//
// Call EarlyFiring or LateFiring method on this trigger at the time of setting.
func AfterEndOfWindow() *AfterEndOfWindowTrigger {
	return &AfterEndOfWindowTrigger{earlyFiring: Default(), lateFiring: nil}
}

// EarlyFiring configures an AfterEndOfWindow trigger with an implicitly
// repeated trigger that applies before the end of the window.
func (t *AfterEndOfWindowTrigger) EarlyFiring(early Trigger) *AfterEndOfWindowTrigger {
	t.earlyFiring = early
	return t
}

// LateFiring configures an AfterEndOfWindow trigger with an implicitly
// repeated trigger that applies after the end of the window.
//
// Not setting a late firing trigger means elements are discarded.
func (t *AfterEndOfWindowTrigger) LateFiring(late Trigger) *AfterEndOfWindowTrigger {
	t.lateFiring = late
	return t
}

// AfterAnyTrigger fires after any of its sub-triggers fire. Logically an
// "OR" trigger.
type AfterAnyTrigger struct {
	subtriggers []Trigger
}

func (t AfterAnyTrigger) trigger() {}

func (t *AfterAnyTrigger) String() string {
	return fmt.Sprintf("AfterAny[%v]", t.subtriggers)
}

// SubTriggers returns the component triggers.
func (t *AfterAnyTrigger) SubTriggers() []Trigger {
	return t.subtriggers
}

// AfterAny returns a new AfterAny trigger with the given subtriggers.
func AfterAny(triggers []Trigger) *AfterAnyTrigger {
	if len(triggers) <= 1 {
		panic(fmt.Sprintf("number of subtriggers to trigger.AfterAny() should be greater than 1, got: %v", len(triggers)))
	}
	return &AfterAnyTrigger{subtriggers: triggers}
}

// AfterAllTrigger fires after all of its subtriggers are ready. Logically an
// "AND" trigger.
type AfterAllTrigger struct {
	subtriggers []Trigger
}

func (t AfterAllTrigger) trigger() {}

func (t *AfterAllTrigger) String() string {
	return fmt.Sprintf("AfterAll[%v]", t.subtriggers)
}

// SubTriggers returns the component triggers.
func (t *AfterAllTrigger) SubTriggers() []Trigger {
	return t.subtriggers
}

// AfterAll returns a new AfterAll trigger with the given subtriggers.
func AfterAll(triggers []Trigger) *AfterAllTrigger {
	if len(triggers) <= 1 {
		panic(fmt.Sprintf("number of subtriggers to trigger.AfterAll() should be greater than 1, got: %v", len(triggers)))
	}
	return &AfterAllTrigger{subtriggers: triggers}
}

// AfterEachTrigger fires when each subtrigger is ready, in order. A later
// subtrigger that becomes ready before an earlier one does not fire until
// every trigger before it has fired.
type AfterEachTrigger struct {
	subtriggers []Trigger
}

func (t AfterEachTrigger) trigger() {}

func (t *AfterEachTrigger) String() string {
	return fmt.Sprintf("AfterEach[%v]", t.subtriggers)
}

// Subtriggers returns the ordered subtriggers.
func (t *AfterEachTrigger) Subtriggers() []Trigger {
	return t.subtriggers
}

// AfterEach creates a trigger that fires each subtrigger in sequence.
func AfterEach(subtriggers []Trigger) *AfterEachTrigger {
	return &AfterEachTrigger{subtriggers: subtriggers}
}

// OrFinallyTrigger is ready whenever either of its subtriggers are ready,
// but finishes output when the finally subtrigger fires.
type OrFinallyTrigger struct {
	main    Trigger // Trigger governing main output; may fire repeatedly.
	finally Trigger // Trigger governing termination of output.
}

func (t OrFinallyTrigger) trigger() {}

func (t *OrFinallyTrigger) String() string {
	return fmt.Sprintf("OrFinally[Main: %v, Finally: %v]", t.main, t.finally)
}

// OrFinally trigger has a main trigger which may fire repeatedly and a
// finally trigger. Output ceases when the finally trigger fires.
func OrFinally(main, finally Trigger) *OrFinallyTrigger {
	if main == nil || finally == nil {
		panic("main and finally trigger arguments to trigger.OrFinally() cannot be nil")
	}
	return &OrFinallyTrigger{main: main, finally: finally}
}

// Main returns the main trigger.
func (t *OrFinallyTrigger) Main() Trigger {
	return t.main
}

// Finally returns the finally trigger.
func (t *OrFinallyTrigger) Finally() Trigger {
	return t.finally
}
