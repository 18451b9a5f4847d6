// Copyright 2026 The PSYQTK Authors. All rights reserved.
// Use of this source code is governed by the license that
// can be found in the LICENSE file.

package psyq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorReads(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	c := newCursor([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07})

	v8, err := c.u8()
	require.NoError(err)
	assert.Equal(byte(0x01), v8)
	assert.Equal(1, c.offset())

	v16, err := c.u16()
	require.NoError(err)
	assert.Equal(uint16(0x0302), v16, "u16 should decode little-endian")
	assert.Equal(3, c.offset())

	v32, err := c.u32()
	require.NoError(err)
	assert.Equal(uint32(0x07060504), v32, "u32 should decode little-endian")
	assert.Equal(7, c.offset())
	assert.Equal(0, c.remaining())
}

func TestCursorTruncation(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(c *cursor) error
	}{
		{"u8 on empty", nil, func(c *cursor) error { _, err := c.u8(); return err }},
		{"u16 short", []byte{0x01}, func(c *cursor) error { _, err := c.u16(); return err }},
		{"u32 short", []byte{0x01, 0x02, 0x03}, func(c *cursor) error { _, err := c.u32(); return err }},
		{"bytes past end", []byte{0x01, 0x02}, func(c *cursor) error { _, err := c.bytes(3); return err }},
		{"skip past end", []byte{0x01}, func(c *cursor) error { return c.skip(2) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCursor(tt.data)
			err := tt.read(c)
			assert.ErrorIs(t, err, ErrTruncatedInput)
			assert.Equal(t, 0, c.offset(), "failed read should not advance the position")
		})
	}
}

func TestCursorPrefixedBytes(t *testing.T) {
	assert := assert.New(t)

	c := newCursor([]byte{0x05, 'h', 'e', 'l', 'l', 'o', 0xff})
	name, err := c.prefixedBytes()
	assert.NoError(err)
	assert.Equal([]byte("hello"), name)
	assert.Equal(6, c.offset())

	// Empty name is a single zero length byte.
	c = newCursor([]byte{0x00})
	name, err = c.prefixedBytes()
	assert.NoError(err)
	assert.Len(name, 0)

	// Declared length longer than the remaining buffer.
	c = newCursor([]byte{0x04, 'a', 'b'})
	_, err = c.prefixedBytes()
	assert.ErrorIs(err, ErrTruncatedInput)
}
