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

	"github.com/oxbow-stream/oxbow/mtime"
)

// mtimeHeap is a min heap of event times.
type mtimeHeap []mtime.Time

func (h mtimeHeap) Len() int { return len(h) }
func (h mtimeHeap) Less(i, j int) bool {
	return h[i] < h[j]
}
func (h mtimeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *mtimeHeap) Push(x any) {
	*h = append(*h, x.(mtime.Time))
}

func (h *mtimeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// HoldTracker tracks the set of watermark holds a key's pending aggregations
// place on downstream progress. Multiple windows may hold the same timestamp,
// so holds are reference counted, with a heap for cheap minimum lookup.
type HoldTracker struct {
	heap   mtimeHeap
	counts map[mtime.Time]int
}

func NewHoldTracker() *HoldTracker {
	return &HoldTracker{
		counts: map[mtime.Time]int{},
	}
}

// Add a hold at the given timestamp, one per pending pane that will output
// at it.
func (ht *HoldTracker) Add(hold mtime.Time, count int) {
	if ht.counts[hold] == 0 {
		heap.Push(&ht.heap, hold)
	}
	ht.counts[hold] += count
}

// Drop the given number of holds at the timestamp. Panics if the hold was
// never added, which indicates state corruption.
func (ht *HoldTracker) Drop(hold mtime.Time, count int) {
	n, ok := ht.counts[hold]
	if !ok {
		panic("hold released but never deferred")
	}
	n -= count
	if n > 0 {
		ht.counts[hold] = n
		return
	}
	delete(ht.counts, hold)
	for i, h := range ht.heap {
		if h == hold {
			heap.Remove(&ht.heap, i)
			break
		}
	}
}

// Min returns the earliest live hold, or mtime.MaxTimestamp when no holds
// remain.
func (ht *HoldTracker) Min() mtime.Time {
	if len(ht.heap) == 0 {
		return mtime.MaxTimestamp
	}
	return ht.heap[0]
}

// Empty reports whether any holds remain.
func (ht *HoldTracker) Empty() bool {
	return len(ht.heap) == 0
}
