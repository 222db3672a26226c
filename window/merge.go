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
	"sort"

	"github.com/pkg/errors"

	"github.com/oxbow-stream/oxbow/typex"
)

// MergeResult maps a set of currently open source windows onto the single
// window they collapse into. The results of one MergeWindows call form a
// partition refinement: every input window appears in exactly one result,
// and result windows are mutually disjoint.
type MergeResult struct {
	Result  typex.Window
	Sources []typex.Window
}

// MergeWindows computes the merge instructions for the given set of open
// windows. It is idempotent: repeated invocation with the same input yields
// the same decision. Non-merging fns map every window to itself.
func (w *Fn) MergeWindows(ws []typex.Window) ([]MergeResult, error) {
	switch w.Kind {
	case InvalidWindows:
		return nil, errors.Errorf("MergeWindows on invalid windows: %v", w.Cause)
	case Sessions:
		return mergeSessions(ws)
	default:
		ret := make([]MergeResult, 0, len(ws))
		for _, win := range ws {
			ret = append(ret, MergeResult{Result: win, Sources: []typex.Window{win}})
		}
		return ret, nil
	}
}

// mergeSessions collapses overlapping or abutting interval windows into
// single spans. Windows are considered in start order so the sweep is
// deterministic regardless of input order.
func mergeSessions(ws []typex.Window) ([]MergeResult, error) {
	ivs := make([]IntervalWindow, 0, len(ws))
	for _, win := range ws {
		iv, ok := win.(IntervalWindow)
		if !ok {
			return nil, errors.Errorf("session merging requires interval windows, got %v", win)
		}
		ivs = append(ivs, iv)
	}
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Before(ivs[j]) })

	var ret []MergeResult
	var cur MergeResult
	for i, iv := range ivs {
		if i == 0 {
			cur = MergeResult{Result: iv, Sources: []typex.Window{iv}}
			continue
		}
		span := cur.Result.(IntervalWindow)
		if iv.Start <= span.End {
			// Overlapping or abutting: extend the current span.
			if iv.End > span.End {
				span.End = iv.End
			}
			cur.Result = span
			cur.Sources = append(cur.Sources, iv)
			continue
		}
		ret = append(ret, cur)
		cur = MergeResult{Result: iv, Sources: []typex.Window{iv}}
	}
	if len(cur.Sources) > 0 {
		ret = append(ret, cur)
	}
	return ret, nil
}
