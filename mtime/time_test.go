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

package mtime

import (
	"testing"
	"time"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		baseTime Time
		addition time.Duration
		want     Time
	}{
		{"insignificant addition", Time(1000), 999999 * time.Nanosecond, Time(1000)},
		{"significant addition small", Time(1000), 1 * time.Millisecond, Time(1001)},
		{"significant addition large", Time(1000), 10 * time.Second, Time(11000)},
		{"add past max timestamp", MaxTimestamp, 1 * time.Minute, MaxTimestamp},
		{"add across max boundary", Time(int64(MaxTimestamp) - 10000), 10 * time.Minute, MaxTimestamp},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got, want := test.baseTime.Add(test.addition), test.want; got != want {
				t.Errorf("(%v).Add(%v) = %v, want %v", test.baseTime, test.addition, got, want)
			}
		})
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name        string
		baseTime    Time
		subtraction time.Duration
		want        Time
	}{
		{"insignificant subtraction", Time(1000), 999999 * time.Nanosecond, Time(1000)},
		{"significant subtraction small", Time(1000), 1 * time.Millisecond, Time(999)},
		{"significant subtraction large", Time(1000), 10 * time.Second, Time(-9000)},
		{"subtract past min timestamp", MinTimestamp, 1 * time.Minute, MinTimestamp},
		{"subtract across min boundary", Time(int64(MinTimestamp) + 10000), 10 * time.Minute, MinTimestamp},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got, want := test.baseTime.Subtract(test.subtraction), test.want; got != want {
				t.Errorf("(%v).Subtract(%v) = %v, want %v", test.baseTime, test.subtraction, got, want)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	if got, want := Min(Time(4), Time(9)), Time(4); got != want {
		t.Errorf("Min(4, 9) = %v, want %v", got, want)
	}
	if got, want := Max(Time(4), Time(9)), Time(9); got != want {
		t.Errorf("Max(4, 9) = %v, want %v", got, want)
	}
	if got, want := Min(MinTimestamp, MaxTimestamp), MinTimestamp; got != want {
		t.Errorf("Min(-inf, +inf) = %v, want %v", got, want)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want Time
	}{
		{Time(0), Time(0)},
		{MinTimestamp - 1, MinTimestamp},
		{MaxTimestamp + 1, MaxTimestamp},
	}
	for _, test := range tests {
		if got := Normalize(test.in); got != test.want {
			t.Errorf("Normalize(%v) = %v, want %v", int64(test.in), got, test.want)
		}
	}
}

func TestFromTime(t *testing.T) {
	base := time.Date(2023, 4, 1, 12, 30, 0, 0, time.UTC)
	got := FromTime(base)
	if want := Time(base.UnixMilli()); got != want {
		t.Errorf("FromTime(%v) = %v, want %v", base, got, want)
	}
	if rt := got.ToTime(); !rt.Equal(base) {
		t.Errorf("(%v).ToTime() = %v, want %v", got, rt, base)
	}
}
