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
	"bytes"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCoders_roundtrip(t *testing.T) {
	tests := []struct {
		c Coder
		v any
	}{
		{VarInt(), int64(0)},
		{VarInt(), int64(-1)},
		{VarInt(), int64(1_000_000)},
		{Bytes(), []byte{}},
		{Bytes(), []byte{0x01, 0x00, 0xff}},
		{StringUTF8(), ""},
		{StringUTF8(), "solstice"},
		{StringUTF8(), "héllo wörld"},
		{Double(), 3.5},
		{KV(StringUTF8(), VarInt()), KVPair{Key: "k", Value: int64(9)}},
	}
	for _, test := range tests {
		var buf bytes.Buffer
		if err := test.c.Encode(test.v, &buf); err != nil {
			t.Errorf("%v.Encode(%v) = %v", test.c, test.v, err)
			continue
		}
		got, err := test.c.Decode(&buf)
		if err != nil {
			t.Errorf("%v.Decode() = %v", test.c, err)
			continue
		}
		if d := cmp.Diff(test.v, got); d != "" {
			t.Errorf("%v roundtrip diff (-want, +got):\n%v", test.c, d)
		}
	}
}

func TestCoders_deterministicEncoding(t *testing.T) {
	// Equal values must produce equal bytes on every call; grouping relies
	// on byte equality, never native equality.
	tests := []struct {
		c Coder
		a any
		b any
	}{
		{VarInt(), int64(42), int64(42)},
		{StringUTF8(), "key", "key"},
		{Bytes(), []byte("key"), []byte("key")},
		{KV(StringUTF8(), VarInt()), KVPair{"k", int64(1)}, KVPair{"k", int64(1)}},
	}
	for _, test := range tests {
		ab, err := EncodeToBytes(test.c, test.a)
		if err != nil {
			t.Fatalf("EncodeToBytes(%v, %v) = %v", test.c, test.a, err)
		}
		bb, err := EncodeToBytes(test.c, test.b)
		if err != nil {
			t.Fatalf("EncodeToBytes(%v, %v) = %v", test.c, test.b, err)
		}
		if !bytes.Equal(ab, bb) {
			t.Errorf("%v encoded equal values to different bytes: %x vs %x", test.c, ab, bb)
		}
	}
}

func TestVerifyDeterministic(t *testing.T) {
	deterministic := []Coder{VarInt(), Bytes(), StringUTF8(), KV(StringUTF8(), StringUTF8())}
	for _, c := range deterministic {
		if err := c.VerifyDeterministic(); err != nil {
			t.Errorf("%v.VerifyDeterministic() = %v, want nil", c, err)
		}
	}
	nondeterministic := []Coder{Double(), KV(Double(), VarInt())}
	for _, c := range nondeterministic {
		if err := c.VerifyDeterministic(); err == nil {
			t.Errorf("%v.VerifyDeterministic() = nil, want error", c)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	c, err := r.For(reflect.TypeOf(int64(0)))
	if err != nil {
		t.Fatalf("For(int64) = %v", err)
	}
	if c.String() != "varint" {
		t.Errorf("For(int64) = %v, want varint", c)
	}
	if _, err := r.For(reflect.TypeOf(struct{ X int }{})); err == nil {
		t.Error("For(unregistered struct) succeeded, want error")
	}
	r.Register(reflect.TypeOf(struct{ X int }{}), Bytes())
	if _, err := r.For(reflect.TypeOf(struct{ X int }{})); err != nil {
		t.Errorf("For(registered struct) = %v, want nil", err)
	}
}

func TestVarInt_boundaries(t *testing.T) {
	for _, v := range []uint64{0, 1, 127, 128, 1 << 20, 1<<64 - 1} {
		var buf bytes.Buffer
		if err := EncodeVarUint64(v, &buf); err != nil {
			t.Fatalf("EncodeVarUint64(%v) = %v", v, err)
		}
		got, err := DecodeVarUint64(&buf)
		if err != nil {
			t.Fatalf("DecodeVarUint64() = %v", err)
		}
		if got != v {
			t.Errorf("varint roundtrip = %v, want %v", got, v)
		}
	}
}

func TestDecodeVarUint64_tooLong(t *testing.T) {
	in := bytes.NewReader([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80})
	if _, err := DecodeVarUint64(in); err == nil {
		t.Error("DecodeVarUint64 on an overlong encoding succeeded, want error")
	}
}
