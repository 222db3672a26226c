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
	"github.com/oxbow-stream/oxbow/mtime"
	"github.com/oxbow-stream/oxbow/typex"
	"github.com/oxbow-stream/oxbow/window"
)

// ReifyTimestampsAndWindows turns a keyed element and its ambient timestamp
// into a FullValue carrying the element's assigned window set. Stateless and
// one to one; the first stage of grouping.
func ReifyTimestampsAndWindows(fn *window.Fn, key, value any, ts mtime.Time) FullValue {
	return FullValue{
		Elm:       key,
		Elm2:      value,
		Timestamp: ts,
		Windows:   fn.AssignWindows(ts),
		Pane:      typex.NoFiringPane(),
	}
}
