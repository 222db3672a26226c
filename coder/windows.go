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
	"encoding/binary"
	"io"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/oxbow-stream/oxbow/mtime"
	"github.com/oxbow-stream/oxbow/typex"
	"github.com/oxbow-stream/oxbow/window"
)

// EncodeEventTime encodes an event time as an 8 byte big-endian integer,
// shifted so that the byte representation of negative values orders
// lexicographically before positive ones.
func EncodeEventTime(t typex.EventTime, w io.Writer) error {
	var data [8]byte
	binary.BigEndian.PutUint64(data[:], uint64(t.Milliseconds()-math.MinInt64))
	_, err := w.Write(data[:])
	return err
}

// DecodeEventTime decodes an event time.
func DecodeEventTime(r io.Reader) (typex.EventTime, error) {
	var data [8]byte
	if _, err := io.ReadFull(r, data[:]); err != nil {
		return 0, err
	}
	return mtime.Time(int64(binary.BigEndian.Uint64(data[:])) + math.MinInt64), nil
}

// WindowCoder encodes and decodes the windows produced by one window fn.
type WindowCoder interface {
	EncodeWindow(w typex.Window, to io.Writer) error
	DecodeWindow(from io.Reader) (typex.Window, error)
}

// WindowCoderFor returns the window coder matching the given fn: the empty
// global window encoding, or the interval window encoding for everything
// else.
func WindowCoderFor(fn *window.Fn) WindowCoder {
	if fn.Kind == window.GlobalWindows {
		return globalWindowCoder{}
	}
	return intervalWindowCoder{}
}

type globalWindowCoder struct{}

func (globalWindowCoder) EncodeWindow(w typex.Window, to io.Writer) error {
	if _, ok := w.(window.GlobalWindow); !ok {
		return errors.Errorf("global window coder: not a global window: %v", w)
	}
	// Encoding: empty.
	return nil
}

func (globalWindowCoder) DecodeWindow(io.Reader) (typex.Window, error) {
	return window.GlobalWindow{}, nil
}

type intervalWindowCoder struct{}

func (intervalWindowCoder) EncodeWindow(w typex.Window, to io.Writer) error {
	iv, ok := w.(window.IntervalWindow)
	if !ok {
		return errors.Errorf("interval window coder: not an interval window: %v", w)
	}
	// Encoding: upper bound then duration (varint).
	if err := EncodeEventTime(iv.End, to); err != nil {
		return err
	}
	return EncodeVarUint64(uint64(iv.End-iv.Start), to)
}

func (intervalWindowCoder) DecodeWindow(from io.Reader) (typex.Window, error) {
	end, err := DecodeEventTime(from)
	if err != nil {
		return nil, err
	}
	dur, err := DecodeVarUint64(from)
	if err != nil {
		return nil, err
	}
	return window.IntervalWindow{Start: end.Subtract(time.Duration(dur) * time.Millisecond), End: end}, nil
}
