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
	"github.com/pkg/errors"

	"github.com/oxbow-stream/oxbow/typex"
)

// SingletonValue reads the exactly-one value a window's grouped output is
// expected to hold, for singleton views of aggregated results. Zero or
// multiple values is a hard error naming the violated cardinality, never a
// silent default.
func SingletonValue(w typex.Window, values []any) (any, error) {
	switch len(values) {
	case 1:
		return values[0], nil
	case 0:
		return nil, errors.Errorf("expected exactly one value for singleton view in window %v, got none", w)
	default:
		return nil, errors.Errorf("expected exactly one value for singleton view in window %v, got %d", w, len(values))
	}
}
