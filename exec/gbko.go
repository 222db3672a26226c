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
	"golang.org/x/exp/slices"
	"pgregory.net/rand"

	"github.com/oxbow-stream/oxbow/coder"
)

// KeyedBag is one key's grouped values, windows ignored.
type KeyedBag struct {
	Key    GroupingKey
	Values []FullValue
}

// GroupByKeyOnly partitions elements by deterministically encoded key,
// ignoring windows entirely. Intra-key order is deliberately randomized so
// downstream logic cannot grow an accidental dependence on arrival order;
// the sort stage imposes the one order that is actually required.
type GroupByKeyOnly struct {
	keyCoder coder.Coder
	rnd      *rand.Rand
}

// NewGroupByKeyOnly returns a grouping stage using the given key coder. The
// coder's determinism must have been verified by the caller.
func NewGroupByKeyOnly(keyCoder coder.Coder) *GroupByKeyOnly {
	return &GroupByKeyOnly{
		keyCoder: keyCoder,
		rnd:      rand.New(),
	}
}

// Process groups the batch by encoded key. Bags come back ordered by their
// encoded key bytes so output is deterministic per run input; values within
// a bag are shuffled.
func (g *GroupByKeyOnly) Process(elements []FullValue) ([]KeyedBag, error) {
	bags := map[string]*KeyedBag{}
	for _, fv := range elements {
		gk, err := encodeGroupingKey(g.keyCoder, fv.Elm, fv.Elm2)
		if err != nil {
			return nil, err
		}
		bag, ok := bags[gk.Encoded]
		if !ok {
			bag = &KeyedBag{Key: gk}
			bags[gk.Encoded] = bag
		}
		bag.Values = append(bag.Values, fv)
	}

	keys := make([]string, 0, len(bags))
	for k := range bags {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]KeyedBag, 0, len(bags))
	for _, k := range keys {
		bag := bags[k]
		g.rnd.Shuffle(len(bag.Values), func(i, j int) {
			bag.Values[i], bag.Values[j] = bag.Values[j], bag.Values[i]
		})
		out = append(out, *bag)
	}
	return out, nil
}
