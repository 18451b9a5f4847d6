// Copyright 2026 The PSYQTK Authors. All rights reserved.
// Use of this source code is governed by the license that
// can be found in the LICENSE file.

package psyq

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// objBuilder emits the opcode-tagged byte stream the decoder consumes, so
// tests can construct well-formed inputs without on-disk fixtures.
type objBuilder struct {
	buf []byte
}

func newObjBuilder() *objBuilder {
	return &objBuilder{buf: append([]byte(nil), lnkMagic...)}
}

func (b *objBuilder) u8(v byte) *objBuilder {
	b.buf = append(b.buf, v)
	return b
}

func (b *objBuilder) u16(v uint16) *objBuilder {
	b.buf = append(b.buf, byte(v), byte(v>>8))
	return b
}

func (b *objBuilder) u32(v uint32) *objBuilder {
	b.buf = append(b.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	return b
}

func (b *objBuilder) name(s string) *objBuilder {
	b.u8(byte(len(s)))
	b.buf = append(b.buf, s...)
	return b
}

func (b *objBuilder) raw(p []byte) *objBuilder {
	b.buf = append(b.buf, p...)
	return b
}

func (b *objBuilder) programType(v byte) *objBuilder {
	return b.u8(byte(OpProgramType)).u8(v)
}

func (b *objBuilder) section(index, group uint16, align byte, name string) *objBuilder {
	return b.u8(byte(OpSection)).u16(index).u16(group).u8(align).name(name)
}

func (b *objBuilder) importedSymbol(index uint16, name string) *objBuilder {
	return b.u8(byte(OpImportedSymbol)).u16(index).name(name)
}

func (b *objBuilder) exportedSymbol(index, section uint16, offset uint32, name string) *objBuilder {
	return b.u8(byte(OpExportedSymbol)).u16(index).u16(section).u32(offset).name(name)
}

func (b *objBuilder) switchSection(index uint16) *objBuilder {
	return b.u8(byte(OpSwitch)).u16(index)
}

func (b *objBuilder) sectionBytes(payload []byte) *objBuilder {
	return b.u8(byte(OpBytes)).u16(uint16(len(payload))).raw(payload)
}

func (b *objBuilder) relocation(t RelocType, rawOffset uint16, target []byte) *objBuilder {
	return b.u8(byte(OpRelocation)).u8(byte(t)).u16(rawOffset).raw(target)
}

func (b *objBuilder) end() *objBuilder {
	return b.u8(byte(OpEnd))
}

func (b *objBuilder) bytes() []byte {
	return b.buf
}

// encodeExpression renders an expression tree back into its prefix wire
// form.
func encodeExpression(e Expression) []byte {
	switch x := e.(type) {
	case Value:
		v := uint32(x.V)
		return []byte{exprValue, byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
	case SymbolRef:
		return []byte{exprSymbol, byte(x.Index), byte(x.Index >> 8)}
	case SectionBase:
		return []byte{exprSectionBase, byte(x.Index), byte(x.Index >> 8)}
	case SectionStart:
		return []byte{exprSectionStart, byte(x.Index), byte(x.Index >> 8)}
	case SectionEnd:
		return []byte{exprSectionEnd, byte(x.Index), byte(x.Index >> 8)}
	case Add:
		out := []byte{exprAdd}
		out = append(out, encodeExpression(x.Left)...)
		return append(out, encodeExpression(x.Right)...)
	case Sub:
		out := []byte{exprSub}
		out = append(out, encodeExpression(x.Left)...)
		return append(out, encodeExpression(x.Right)...)
	case Div:
		out := []byte{exprDiv}
		out = append(out, encodeExpression(x.Left)...)
		return append(out, encodeExpression(x.Right)...)
	}
	return nil
}

// encodeObject renders a decoded model back into a stream the parser
// accepts. Section payloads are re-emitted as filler of the recorded size,
// so section offsets in the reparsed model reflect the new stream layout;
// one encode/parse cycle fixes the layout, after which encoding is a fixed
// point.
func encodeObject(obj *ObjectFile) []byte {
	b := newObjBuilder()
	if pt, ok := obj.ProgramType(); ok {
		b.programType(pt)
	}
	secs := obj.Sections()
	for _, s := range secs {
		b.section(s.Index, s.Group, s.Alignment, string(s.Name))
	}
	for _, imp := range obj.Imports() {
		b.importedSymbol(imp.Index, string(imp.Name))
	}
	for _, exp := range obj.Exports() {
		b.exportedSymbol(exp.Index, exp.SectionIndex, exp.Offset, string(exp.Name))
	}
	for _, s := range secs {
		if s.Size == 0 {
			continue
		}
		b.switchSection(s.Index)
		b.sectionBytes(make([]byte, s.Size))
		for _, r := range obj.Relocations() {
			if r.Offset < s.Offset || r.Offset >= s.Offset+s.Size {
				continue
			}
			b.relocation(r.Type, uint16(r.Offset-s.Offset), encodeExpression(r.Target))
		}
	}
	b.end()
	return b.bytes()
}

func TestRoundTrip(t *testing.T) {
	require := require.New(t)

	stream := newObjBuilder().
		programType(7).
		section(0, 0, 4, ".text").
		section(1, 0, 4, ".data").
		importedSymbol(1, "printf").
		importedSymbol(2, "malloc").
		exportedSymbol(3, 0, 0x10, "main").
		switchSection(0).
		sectionBytes([]byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}).
		relocation(RelocREL32, 4, encodeExpression(Add{Left: SymbolRef{Index: 1}, Right: Value{V: 8}})).
		switchSection(1).
		sectionBytes([]byte{0xaa, 0xbb}).
		end().
		bytes()

	first, err := Parse(stream)
	require.NoError(err)

	// One cycle normalizes section offsets to the encoder's layout. After
	// that, encode and parse must reproduce the model exactly.
	second, err := Parse(encodeObject(first))
	require.NoError(err)
	third, err := Parse(encodeObject(second))
	require.NoError(err)
	require.Equal(second, third)

	// Everything except buffer positions survives the first cycle too.
	require.Equal(first.Imports(), second.Imports())
	require.Equal(first.Exports(), second.Exports())
	pt1, ok1 := first.ProgramType()
	pt2, ok2 := second.ProgramType()
	require.Equal(pt1, pt2)
	require.Equal(ok1, ok2)
	require.Len(second.Sections(), len(first.Sections()))
	require.Len(second.Relocations(), len(first.Relocations()))
	for i, s := range first.Sections() {
		s2 := second.Sections()[i]
		require.Equal(s.Index, s2.Index)
		require.Equal(s.Group, s2.Group)
		require.Equal(s.Alignment, s2.Alignment)
		require.Equal(s.Name, s2.Name)
		require.Equal(s.Size, s2.Size)
	}
	for i, r := range first.Relocations() {
		require.Equal(r.Type, second.Relocations()[i].Type)
		require.Equal(r.Target, second.Relocations()[i].Target)
	}
}

func TestEncodeExpressionRoundTrip(t *testing.T) {
	exprs := []Expression{
		Value{V: -1},
		SymbolRef{Index: 42},
		SectionBase{Index: 1},
		Sub{Left: SectionEnd{Index: 2}, Right: SectionStart{Index: 2}},
		Div{
			Left:  Add{Left: SymbolRef{Index: 7}, Right: Value{V: 16}},
			Right: Value{V: 2},
		},
	}
	for _, want := range exprs {
		t.Run(want.String(), func(t *testing.T) {
			c := newCursor(encodeExpression(want))
			got, err := decodeExpression(c)
			require.NoError(t, err)
			require.Equal(t, want, got)
			require.Zero(t, c.remaining())
		})
	}
}
