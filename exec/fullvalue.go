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

// Package exec implements the grouping pipeline: timestamp and window
// reification, grouping by encoded key, timestamp sorting, and window
// merging with trigger driven pane emission.
package exec

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/oxbow-stream/oxbow/coder"
	"github.com/oxbow-stream/oxbow/mtime"
	"github.com/oxbow-stream/oxbow/typex"
)

// FullValue is an element with all its metadata reified: the key and value,
// the event timestamp, the windows the element currently belongs to, and the
// pane of the firing that produced it. Before grouping the window set has
// one entry per assigned window; grouping collapses it to the single merged
// window.
type FullValue struct {
	Elm  any // key
	Elm2 any // value

	Timestamp mtime.Time
	Windows   []typex.Window
	Pane      typex.PaneInfo
}

func (v *FullValue) String() string {
	return fmt.Sprintf("%v %v [@%v:%v:%v]", v.Elm, v.Elm2, v.Timestamp, v.Windows, v.Pane)
}

// GroupingKey pairs a key with its deterministic byte encoding. Two keys
// belong to the same group iff their encoded forms are byte-equal; the
// decoded key is retained only for output.
type GroupingKey struct {
	Key any
	// Encoded is the key's byte encoding, held as a string so the grouping
	// key is usable as a map key.
	Encoded string
}

// encodeGroupingKey encodes a key once for grouping. A failure names the
// key, the value it arrived with, and the coder, and is fatal for the
// element: no substitute key is guessed.
func encodeGroupingKey(c coder.Coder, key, value any) (GroupingKey, error) {
	b, err := coder.EncodeToBytes(c, key)
	if err != nil {
		return GroupingKey{}, errors.Wrapf(err, "failed to encode key %v (value %v) with coder %v", key, value, c)
	}
	return GroupingKey{Key: key, Encoded: string(b)}, nil
}
