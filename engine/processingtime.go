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
	"container/heap"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/oxbow-stream/oxbow/mtime"
)

// RefreshQueue schedules keys for re-evaluation at future processing times,
// for processing time triggers. Scheduling the same key at the same time is
// a no-op.
type RefreshQueue struct {
	events map[mtime.Time]map[string]struct{}
	order  mtimeHeap
}

func NewRefreshQueue() *RefreshQueue {
	return &RefreshQueue{
		events: map[mtime.Time]map[string]struct{}{},
	}
}

// Schedule a key's trigger evaluation at the given processing time.
func (q *RefreshQueue) Schedule(t mtime.Time, key string) {
	keys, ok := q.events[t]
	if !ok {
		keys = map[string]struct{}{}
		q.events[t] = keys
		heap.Push(&q.order, t)
	}
	keys[key] = struct{}{}
}

// AdvanceTo pops every key scheduled at or before now, deduplicated and in
// sorted order so callers evaluate keys deterministically.
func (q *RefreshQueue) AdvanceTo(now mtime.Time) []string {
	due := map[string]struct{}{}
	for len(q.order) > 0 && q.order[0] <= now {
		t := heap.Pop(&q.order).(mtime.Time)
		for key := range q.events[t] {
			due[key] = struct{}{}
		}
		delete(q.events, t)
	}
	keys := maps.Keys(due)
	slices.Sort(keys)
	return keys
}

// Peek returns the next scheduled processing time, if any event is pending.
func (q *RefreshQueue) Peek() (mtime.Time, bool) {
	if len(q.order) == 0 {
		return mtime.MaxTimestamp, false
	}
	return q.order[0], true
}

// Len returns the number of distinct pending firing times.
func (q *RefreshQueue) Len() int {
	return len(q.order)
}
