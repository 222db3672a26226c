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

// Package coder contains coder representations and the built-in coders.
// Coders describe how to serialize and deserialize element values, and
// whether that serialization is deterministic enough to group by.
package coder

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Coder encodes and decodes values of a single type.
//
// Grouping operations compare keys by their encoded bytes, so key coders
// must additionally be deterministic: equal values always produce equal
// bytes, regardless of which process encoded them.
type Coder interface {
	Encode(v any, w io.Writer) error
	Decode(r io.Reader) (any, error)

	// VerifyDeterministic returns a non-nil error when equal values are not
	// guaranteed to encode to equal bytes.
	VerifyDeterministic() error

	String() string
}

// EncodeToBytes encodes a value into a fresh byte slice.
func EncodeToBytes(c Coder, v any) ([]byte, error) {
	var buf countingBuffer
	if err := c.Encode(v, &buf); err != nil {
		return nil, err
	}
	return buf.data, nil
}

type countingBuffer struct {
	data []byte
}

func (b *countingBuffer) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

type varIntCoder struct{}

// VarInt returns a coder for int64 using a variable-length encoding.
func VarInt() Coder { return varIntCoder{} }

func (varIntCoder) Encode(v any, w io.Writer) error {
	n, ok := v.(int64)
	if !ok {
		return errors.Errorf("varint coder: not an int64: %T", v)
	}
	return EncodeVarInt(n, w)
}

func (varIntCoder) Decode(r io.Reader) (any, error) {
	return DecodeVarInt(r)
}

func (varIntCoder) VerifyDeterministic() error { return nil }

func (varIntCoder) String() string { return "varint" }

type bytesCoder struct{}

// Bytes returns a coder for []byte with a length prefix.
func Bytes() Coder { return bytesCoder{} }

func (bytesCoder) Encode(v any, w io.Writer) error {
	b, ok := v.([]byte)
	if !ok {
		return errors.Errorf("bytes coder: not a []byte: %T", v)
	}
	if err := EncodeVarInt(int64(len(b)), w); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func (bytesCoder) Decode(r io.Reader) (any, error) {
	size, err := DecodeVarInt(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (bytesCoder) VerifyDeterministic() error { return nil }

func (bytesCoder) String() string { return "bytes" }

type stringCoder struct{}

// StringUTF8 returns a coder for strings with a length prefix.
func StringUTF8() Coder { return stringCoder{} }

func (stringCoder) Encode(v any, w io.Writer) error {
	s, ok := v.(string)
	if !ok {
		return errors.Errorf("string coder: not a string: %T", v)
	}
	if err := EncodeVarInt(int64(len(s)), w); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func (stringCoder) Decode(r io.Reader) (any, error) {
	size, err := DecodeVarInt(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return string(b), nil
}

func (stringCoder) VerifyDeterministic() error { return nil }

func (stringCoder) String() string { return "stringutf8" }

type doubleCoder struct{}

// Double returns a coder for float64 in big-endian IEEE 754 form.
func Double() Coder { return doubleCoder{} }

func (doubleCoder) Encode(v any, w io.Writer) error {
	f, ok := v.(float64)
	if !ok {
		return errors.Errorf("double coder: not a float64: %T", v)
	}
	var data [8]byte
	binary.BigEndian.PutUint64(data[:], math.Float64bits(f))
	_, err := w.Write(data[:])
	return err
}

func (doubleCoder) Decode(r io.Reader) (any, error) {
	var data [8]byte
	if _, err := io.ReadFull(r, data[:]); err != nil {
		return nil, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(data[:])), nil
}

func (doubleCoder) VerifyDeterministic() error {
	// NaN has many bit patterns and -0.0 == 0.0, so source-level equality
	// does not imply byte equality.
	return errors.New("floating point encodings are not guaranteed to be deterministic")
}

func (doubleCoder) String() string { return "double" }

type kvCoder struct {
	key, value Coder
}

// KV returns a coder for key/value pairs built from the component coders.
func KV(key, value Coder) Coder {
	return kvCoder{key: key, value: value}
}

// KVPair is the value shape encoded by the KV coder.
type KVPair struct {
	Key, Value any
}

func (c kvCoder) Encode(v any, w io.Writer) error {
	kv, ok := v.(KVPair)
	if !ok {
		return errors.Errorf("kv coder: not a KVPair: %T", v)
	}
	if err := c.key.Encode(kv.Key, w); err != nil {
		return err
	}
	return c.value.Encode(kv.Value, w)
}

func (c kvCoder) Decode(r io.Reader) (any, error) {
	key, err := c.key.Decode(r)
	if err != nil {
		return nil, err
	}
	value, err := c.value.Decode(r)
	if err != nil {
		return nil, err
	}
	return KVPair{Key: key, Value: value}, nil
}

func (c kvCoder) VerifyDeterministic() error {
	if err := c.key.VerifyDeterministic(); err != nil {
		return errors.Wrapf(err, "kv key coder %v", c.key)
	}
	if err := c.value.VerifyDeterministic(); err != nil {
		return errors.Wrapf(err, "kv value coder %v", c.value)
	}
	return nil
}

func (c kvCoder) String() string { return "kv<" + c.key.String() + "," + c.value.String() + ">" }
