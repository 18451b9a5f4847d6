// Copyright 2026 The PSYQTK Authors. All rights reserved.
// Use of this source code is governed by the license that
// can be found in the LICENSE file.

package psyq

import "encoding/binary"

// cursor is a bounds-checked sequential reader over an immutable byte
// buffer. A read either returns the full requested width or fails with
// ErrTruncatedInput; the position never passes the end of the buffer.
type cursor struct {
	data []byte
	pos  int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) offset() int {
	return c.pos
}

func (c *cursor) remaining() int {
	return len(c.data) - c.pos
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, ErrTruncatedInput
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// skip advances past n bytes without retaining them.
func (c *cursor) skip(n int) error {
	_, err := c.bytes(n)
	return err
}

func (c *cursor) u8() (byte, error) {
	b, err := c.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// prefixedBytes reads a single length byte followed by that many raw bytes.
// This is the framing used by every name field in the format.
func (c *cursor) prefixedBytes() ([]byte, error) {
	n, err := c.u8()
	if err != nil {
		return nil, err
	}
	return c.bytes(int(n))
}
