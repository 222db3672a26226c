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

package coder

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
)

// Registry maps element types to coders. A registry is handed to the
// execution harness so transforms can look up coders for the key and value
// types flowing through them.
type Registry struct {
	mu     sync.RWMutex
	coders map[reflect.Type]Coder
}

// NewRegistry returns a registry pre-populated with the built-in coders.
func NewRegistry() *Registry {
	r := &Registry{coders: map[reflect.Type]Coder{}}
	r.Register(reflect.TypeOf(int64(0)), VarInt())
	r.Register(reflect.TypeOf(""), StringUTF8())
	r.Register(reflect.TypeOf([]byte(nil)), Bytes())
	r.Register(reflect.TypeOf(float64(0)), Double())
	return r
}

// Register installs a coder for the given type, replacing any previous one.
func (r *Registry) Register(t reflect.Type, c Coder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.coders[t] = c
}

// For returns the coder registered for the given type.
func (r *Registry) For(t reflect.Type) (Coder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.coders[t]
	if !ok {
		return nil, errors.Errorf("no coder registered for type %v", t)
	}
	return c, nil
}
