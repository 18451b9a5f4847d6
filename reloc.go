// Copyright 2026 The PSYQTK Authors. All rights reserved.
// Use of this source code is governed by the license that
// can be found in the LICENSE file.

package psyq

import "fmt"

// RelocType identifies how a relocated location is patched at link time.
type RelocType byte

// Relocation types defined by the format. The BE variants are the big-endian
// counterparts used by non-PlayStation targets of the same toolchain.
const (
	RelocREL32BE RelocType = 8
	RelocREL32   RelocType = 16
	RelocREL26   RelocType = 74
	RelocHI16    RelocType = 82
	RelocLO16    RelocType = 84
	RelocREL26BE RelocType = 92
	RelocHI16BE  RelocType = 96
	RelocLO16BE  RelocType = 98
	RelocGPREL16 RelocType = 100
)

var relocNames = map[RelocType]string{
	RelocREL32BE: "REL32_BE",
	RelocREL32:   "REL32",
	RelocREL26:   "REL26",
	RelocHI16:    "HI16",
	RelocLO16:    "LO16",
	RelocREL26BE: "REL26_BE",
	RelocHI16BE:  "HI16_BE",
	RelocLO16BE:  "LO16_BE",
	RelocGPREL16: "GPREL16",
}

// known reports whether t is one of the relocation types the format defines.
func (t RelocType) known() bool {
	_, ok := relocNames[t]
	return ok
}

func (t RelocType) String() string {
	if n, ok := relocNames[t]; ok {
		return n
	}
	return fmt.Sprintf("RelocType(%d)", byte(t))
}
