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
)

// StateData is the automaton state for one key and window (or window merge
// group). One trigger tree is compiled per strategy and shared by every key
// and window; the per-cell state of each node in the tree lives here, keyed
// by the node's pointer identity.
//
// One StateData is owned by exactly one live window record. When windows
// merge, the surviving record gets a fresh StateData folded together from
// the sources, and the source records are invalidated.
type StateData struct {
	Trigger map[Trigger]triggerState
}

// triggerState retains the per-cell state for a single trigger tree node.
type triggerState struct {
	// finished indicates the trigger has fired and will not fire again
	// until reset.
	finished bool
	// extra is where node specific data is stored, such as element counts
	// or processing time firing targets.
	extra any
}

func (ts triggerState) String() string {
	return fmt.Sprintf("triggerState[finished: %v; extra: %v]", ts.finished, ts.extra)
}

func (d *StateData) getTriggerState(t Trigger) triggerState {
	return d.Trigger[t]
}

func (d *StateData) setTriggerState(t Trigger, ts triggerState) {
	if d.Trigger == nil {
		d.Trigger = map[Trigger]triggerState{}
	}
	d.Trigger[t] = ts
}

// TriggerInput carries a key+window's trigger conditions for one evaluation.
type TriggerInput struct {
	// NewElementCount is the number of new elements since the last check.
	NewElementCount int
	// EndOfWindowReached reports whether the watermark has passed the
	// window's maximum timestamp.
	EndOfWindowReached bool
	// ProcessingTime is the current processing time observed by the engine.
	ProcessingTime mtime.Time
}

// mergedFinished folds the finished bits of a trigger node across merging
// windows: the merged node is finished only if it had finished in every
// source window. The fold is commutative and associative, so merge order
// does not change the outcome.
func mergedFinished(t Trigger, srcs []*StateData) bool {
	if len(srcs) == 0 {
		return false
	}
	for _, src := range srcs {
		if !src.getTriggerState(t).finished {
			return false
		}
	}
	return true
}
