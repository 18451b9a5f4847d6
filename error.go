// Copyright 2026 The PSYQTK Authors. All rights reserved.
// Use of this source code is governed by the license that
// can be found in the LICENSE file.

package psyq

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic is returned if the buffer does not start with the LNK
	// object file magic.
	ErrBadMagic = errors.New("not a LNK object file")
	// ErrTruncatedInput is returned if a read would pass the end of the buffer.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrUnknownOpcode is returned when the dispatcher hits an opcode it has
	// no decoder for. The length of the unknown record cannot be known, so
	// the parse cannot continue.
	ErrUnknownOpcode = errors.New("unknown opcode")
	// ErrUnknownRelocationType is returned for a relocation type byte outside
	// the known set.
	ErrUnknownRelocationType = errors.New("unknown relocation type")
	// ErrUnknownExpressionOpcode is returned for an unrecognized tag inside a
	// relocation target expression.
	ErrUnknownExpressionOpcode = errors.New("unknown expression opcode")
	// ErrNoCurrentSection is returned when a BYTES or RELOCATION record is
	// decoded before a SWITCH record has selected a defined section.
	ErrNoCurrentSection = errors.New("no current section")
	// ErrSectionNotFound is returned when accessing a section that does not exist.
	ErrSectionNotFound = errors.New("section does not exist")
)

// ParseError describes a decode failure at a specific position in the input
// buffer. Offset is the position of the record whose decoding failed; for an
// unknown opcode this is the offset of the opcode byte itself.
type ParseError struct {
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("offset 0x%x: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
