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

package trigger

import "fmt"

// Continuation returns the trigger to install on a collection produced by a
// grouping operation, so that re-grouping pre-grouped panes emulates the
// original trigger's firing behavior.
//
// Since every pane arriving downstream already represents one firing of the
// original trigger, data-driven conditions collapse: a count threshold is
// met by the pane's arrival itself, and a processing-time delay has already
// elapsed upstream.
func Continuation(t Trigger) Trigger {
	switch t := t.(type) {
	case *DefaultTrigger:
		// Panes are self-similar under re-grouping.
		return Default()
	case *AlwaysTrigger:
		return Always()
	case *NeverTrigger:
		return Never()
	case *AfterCountTrigger:
		// Each pane stands in for the elements that satisfied the
		// original threshold, so any single pane suffices.
		return AfterCount(1)
	case *AfterProcessingTimeTrigger:
		return AfterSynchronizedProcessingTime()
	case *AfterSynchronizedProcessingTimeTrigger:
		return AfterSynchronizedProcessingTime()
	case *RepeatTrigger:
		return Repeat(Continuation(t.subtrigger))
	case *AfterEndOfWindowTrigger:
		cont := &AfterEndOfWindowTrigger{earlyFiring: Continuation(t.earlyFiring)}
		if t.lateFiring != nil {
			cont.lateFiring = Continuation(t.lateFiring)
		}
		return cont
	case *AfterAnyTrigger:
		return &AfterAnyTrigger{subtriggers: continuations(t.subtriggers)}
	case *AfterAllTrigger:
		return &AfterAllTrigger{subtriggers: continuations(t.subtriggers)}
	case *AfterEachTrigger:
		return &AfterEachTrigger{subtriggers: continuations(t.subtriggers)}
	case *OrFinallyTrigger:
		return &OrFinallyTrigger{main: Continuation(t.main), finally: Continuation(t.finally)}
	case nil:
		return Default()
	default:
		panic(fmt.Sprintf("unknown trigger type: %T", t))
	}
}

func continuations(ts []Trigger) []Trigger {
	ret := make([]Trigger, 0, len(ts))
	for _, t := range ts {
		ret = append(ret, Continuation(t))
	}
	return ret
}
