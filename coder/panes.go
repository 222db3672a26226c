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
	"io"

	"github.com/oxbow-stream/oxbow/typex"
)

// Pane encodings: a single info byte, optionally followed by one or two
// varint indices when the pane is not the first for its window.
const (
	paneFirst    int = 0
	paneOneIndex int = 1
	paneTwoIndex int = 2
)

func chooseEncoding(v typex.PaneInfo) int {
	if (v.Index == 0 && v.NonSpeculativeIndex == 0) || v.Timing == typex.UNKNOWN {
		return paneFirst
	} else if v.Index == v.NonSpeculativeIndex || v.Timing == typex.EARLY {
		return paneOneIndex
	}
	return paneTwoIndex
}

func timingBits(v typex.Timing) int {
	switch v {
	case typex.EARLY:
		return 0
	case typex.ON_TIME:
		return 1
	case typex.LATE:
		return 2
	default:
		return 3
	}
}

// EncodePane encodes pane info into its compact byte form.
func EncodePane(v typex.PaneInfo, w io.Writer) error {
	pane := 0
	if v.IsFirst {
		pane |= 1
	}
	if v.IsLast {
		pane |= 2
	}
	pane |= timingBits(v.Timing) << 2

	switch chooseEncoding(v) {
	case paneFirst:
		if _, err := w.Write([]byte{byte(pane)}); err != nil {
			return err
		}
	case paneOneIndex:
		if _, err := w.Write([]byte{byte(pane | paneOneIndex<<4)}); err != nil {
			return err
		}
		return EncodeVarInt(v.Index, w)
	case paneTwoIndex:
		if _, err := w.Write([]byte{byte(pane | paneTwoIndex<<4)}); err != nil {
			return err
		}
		if err := EncodeVarInt(v.Index, w); err != nil {
			return err
		}
		return EncodeVarInt(v.NonSpeculativeIndex, w)
	}
	return nil
}

func newPane(b byte) typex.PaneInfo {
	var pn typex.PaneInfo
	if b&0x01 == 1 {
		pn.IsFirst = true
	}
	if b&0x02 == 2 {
		pn.IsLast = true
	}
	switch (b >> 2) & 0x03 {
	case 0:
		pn.Timing = typex.EARLY
	case 1:
		pn.Timing = typex.ON_TIME
	case 2:
		pn.Timing = typex.LATE
	case 3:
		pn.Timing = typex.UNKNOWN
	}
	return pn
}

// DecodePane decodes pane info from its compact byte form.
func DecodePane(r io.Reader) (typex.PaneInfo, error) {
	var data [1]byte
	if _, err := io.ReadFull(r, data[:]); err != nil {
		return typex.PaneInfo{}, err
	}
	pn := newPane(data[0] & 0x0f)
	switch int(data[0] >> 4) {
	case paneFirst:
		if pn.Timing == typex.EARLY {
			pn.NonSpeculativeIndex = -1
		}
		return pn, nil
	case paneOneIndex:
		index, err := DecodeVarInt(r)
		if err != nil {
			return pn, err
		}
		pn.Index = index
		if pn.Timing == typex.EARLY {
			pn.NonSpeculativeIndex = -1
		} else {
			pn.NonSpeculativeIndex = pn.Index
		}
		return pn, nil
	case paneTwoIndex:
		index, err := DecodeVarInt(r)
		if err != nil {
			return pn, err
		}
		pn.Index = index
		pn.NonSpeculativeIndex, err = DecodeVarInt(r)
		return pn, err
	}
	return pn, nil
}
