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
	"github.com/pkg/errors"

	"github.com/oxbow-stream/oxbow/window/trigger"
)

// buildTrigger compiles a declarative trigger tree into a runtime automaton
// tree. Each call produces fresh nodes, so distinct strategies never share
// cell state.
func buildTrigger(t trigger.Trigger) (Trigger, error) {
	switch t := t.(type) {
	case nil, *trigger.DefaultTrigger:
		return &TriggerDefault{}, nil
	case *trigger.AlwaysTrigger:
		return &TriggerAlways{}, nil
	case *trigger.NeverTrigger:
		return &TriggerNever{}, nil
	case *trigger.AfterCountTrigger:
		return &TriggerElementCount{ElementCount: int(t.ElementCount())}, nil
	case *trigger.AfterProcessingTimeTrigger:
		return &TriggerAfterProcessingTime{Transforms: t.TimestampTransforms()}, nil
	case *trigger.AfterSynchronizedProcessingTimeTrigger:
		return &TriggerAfterSynchronizedProcessingTime{}, nil
	case *trigger.RepeatTrigger:
		sub, err := buildTrigger(t.SubTrigger())
		if err != nil {
			return nil, err
		}
		return &TriggerRepeatedly{Repeated: sub}, nil
	case *trigger.AfterEndOfWindowTrigger:
		var early, late Trigger
		// Early and late firings repeat implicitly until the phase ends.
		if t.Early() != nil {
			sub, err := buildTrigger(t.Early())
			if err != nil {
				return nil, err
			}
			early = &TriggerRepeatedly{Repeated: sub}
		}
		if t.Late() != nil {
			sub, err := buildTrigger(t.Late())
			if err != nil {
				return nil, err
			}
			late = &TriggerRepeatedly{Repeated: sub}
		}
		return &TriggerAfterEndOfWindow{Early: early, Late: late}, nil
	case *trigger.AfterAnyTrigger:
		subs, err := buildTriggers(t.SubTriggers())
		if err != nil {
			return nil, err
		}
		return &TriggerAfterAny{SubTriggers: subs}, nil
	case *trigger.AfterAllTrigger:
		subs, err := buildTriggers(t.SubTriggers())
		if err != nil {
			return nil, err
		}
		return &TriggerAfterAll{SubTriggers: subs}, nil
	case *trigger.AfterEachTrigger:
		subs, err := buildTriggers(t.Subtriggers())
		if err != nil {
			return nil, err
		}
		return &TriggerAfterEach{SubTriggers: subs}, nil
	case *trigger.OrFinallyTrigger:
		main, err := buildTrigger(t.Main())
		if err != nil {
			return nil, err
		}
		finally, err := buildTrigger(t.Finally())
		if err != nil {
			return nil, err
		}
		return &TriggerOrFinally{Main: main, Finally: finally}, nil
	default:
		return nil, errors.Errorf("unknown trigger type %T", t)
	}
}

func buildTriggers(ts []trigger.Trigger) ([]Trigger, error) {
	subs := make([]Trigger, 0, len(ts))
	for _, sub := range ts {
		built, err := buildTrigger(sub)
		if err != nil {
			return nil, err
		}
		subs = append(subs, built)
	}
	return subs, nil
}
