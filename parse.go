// Copyright 2026 The PSYQTK Authors. All rights reserved.
// Use of this source code is governed by the license that
// can be found in the LICENSE file.

package psyq

import (
	"bytes"
	"fmt"
	"os"
)

// lnkMagic is the 4-byte signature at the start of every LNK object file.
var lnkMagic = []byte{'L', 'N', 'K', 0x02}

// IsLNK reports whether data begins with the LNK object file magic.
func IsLNK(data []byte) bool {
	return len(data) >= len(lnkMagic) && bytes.Equal(data[:len(lnkMagic)], lnkMagic)
}

// Open reads the file at filePath and parses it as a LNK object file.
func Open(filePath string) (*ObjectFile, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a complete LNK object file from data. On failure the
// returned error is a *ParseError identifying the byte offset and cause of
// the failure; no partial model is returned. data is never mutated, so
// independent parses of distinct buffers may run concurrently.
func Parse(data []byte) (*ObjectFile, error) {
	return ParseWithDiagnostics(data, nil)
}

// ParseWithDiagnostics is Parse with a sink for non-fatal decode warnings.
// A nil sink discards them.
func ParseWithDiagnostics(data []byte, diag DiagnosticSink) (*ObjectFile, error) {
	if !IsLNK(data) {
		return nil, &ParseError{Offset: 0, Err: ErrBadMagic}
	}
	if diag == nil {
		diag = nopSink{}
	}
	p := &parser{
		cur:  newCursor(data),
		obj:  newObjectFile(),
		diag: diag,
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.obj, nil
}

// parser carries the state of one decode pass: the cursor, the model under
// construction, and the current-section selection established by SWITCH
// records. The selection is parse state only and is not part of the model.
type parser struct {
	cur  *cursor
	obj  *ObjectFile
	diag DiagnosticSink

	currentSection uint16
	haveSection    bool
}

// run is the driver loop: skip the magic, then dispatch one record per
// opcode byte until the buffer is exhausted or an END record is hit.
func (p *parser) run() error {
	if err := p.cur.skip(len(lnkMagic)); err != nil {
		return &ParseError{Offset: 0, Err: err}
	}
	for p.cur.remaining() > 0 {
		at := p.cur.offset()
		op, err := p.cur.u8()
		if err != nil {
			return &ParseError{Offset: at, Err: err}
		}
		done, err := p.decodeRecord(Opcode(op))
		if err != nil {
			return &ParseError{Offset: at, Err: err}
		}
		if done {
			break
		}
	}
	return nil
}

func (p *parser) decodeRecord(op Opcode) (done bool, err error) {
	switch op {
	case OpEnd:
		// END terminates the parse regardless of remaining buffer.
		return true, nil
	case OpProgramType:
		err = p.decodeProgramType()
	case OpSection:
		err = p.decodeSection()
	case OpImportedSymbol:
		err = p.decodeImportedSymbol()
	case OpExportedSymbol:
		err = p.decodeExportedSymbol()
	case OpSwitch:
		err = p.decodeSwitch()
	case OpBytes:
		err = p.decodeBytes()
	case OpRelocation:
		err = p.decodeRelocation()
	default:
		// The length of an unknown record cannot be known, so skipping it
		// would desynchronize the stream.
		err = fmt.Errorf("%v: %w", op, ErrUnknownOpcode)
	}
	return done, err
}

func (p *parser) decodeProgramType() error {
	v, err := p.cur.u8()
	if err != nil {
		return err
	}
	if v != 7 && v != 9 {
		// Does not affect stream framing, so this is not fatal.
		p.diag.Emit(SeverityWarning, fmt.Sprintf("unknown program type %d", v))
	}
	p.obj.programType = v
	p.obj.hasProgramType = true
	return nil
}

func (p *parser) decodeSection() error {
	index, err := p.cur.u16()
	if err != nil {
		return err
	}
	group, err := p.cur.u16()
	if err != nil {
		return err
	}
	alignment, err := p.cur.u8()
	if err != nil {
		return err
	}
	name, err := p.cur.prefixedBytes()
	if err != nil {
		return err
	}
	// A duplicate index overwrites the earlier definition.
	p.obj.sections[index] = &Section{
		Index:     index,
		Group:     group,
		Alignment: alignment,
		Name:      name,
	}
	return nil
}

func (p *parser) decodeImportedSymbol() error {
	index, err := p.cur.u16()
	if err != nil {
		return err
	}
	name, err := p.cur.prefixedBytes()
	if err != nil {
		return err
	}
	p.obj.imports = append(p.obj.imports, ImportedSymbol{Index: index, Name: name})
	return nil
}

func (p *parser) decodeExportedSymbol() error {
	index, err := p.cur.u16()
	if err != nil {
		return err
	}
	sectionIndex, err := p.cur.u16()
	if err != nil {
		return err
	}
	offset, err := p.cur.u32()
	if err != nil {
		return err
	}
	name, err := p.cur.prefixedBytes()
	if err != nil {
		return err
	}
	// The referenced section may be defined later in the stream, so no
	// existence check here. VerifySectionRefs catches dangling references.
	p.obj.exports = append(p.obj.exports, ExportedSymbol{
		Index:        index,
		SectionIndex: sectionIndex,
		Offset:       offset,
		Name:         name,
	})
	return nil
}

func (p *parser) decodeSwitch() error {
	index, err := p.cur.u16()
	if err != nil {
		return err
	}
	p.currentSection = index
	p.haveSection = true
	return nil
}

// currentSectionRef resolves the section selected by the last SWITCH
// record. BYTES and RELOCATION records are meaningless without one.
func (p *parser) currentSectionRef() (*Section, error) {
	if !p.haveSection {
		return nil, ErrNoCurrentSection
	}
	s, ok := p.obj.sections[p.currentSection]
	if !ok {
		return nil, fmt.Errorf("section %d: %w", p.currentSection, ErrNoCurrentSection)
	}
	return s, nil
}

func (p *parser) decodeBytes() error {
	size, err := p.cur.u16()
	if err != nil {
		return err
	}
	sec, err := p.currentSectionRef()
	if err != nil {
		return err
	}
	// The payload is not copied; the offset/size pair is enough for
	// consumers to re-read it from the original buffer.
	sec.Offset = uint32(p.cur.offset())
	sec.Size = uint32(size)
	return p.cur.skip(int(size))
}

func (p *parser) decodeRelocation() error {
	t, err := p.cur.u8()
	if err != nil {
		return err
	}
	typ := RelocType(t)
	if !typ.known() {
		return fmt.Errorf("type %d: %w", t, ErrUnknownRelocationType)
	}
	raw, err := p.cur.u16()
	if err != nil {
		return err
	}
	sec, err := p.currentSectionRef()
	if err != nil {
		return err
	}
	target, err := decodeExpression(p.cur)
	if err != nil {
		return err
	}
	// Stored as an absolute buffer position so the relocation is
	// addressable without re-deriving its section.
	p.obj.relocations = append(p.obj.relocations, Relocation{
		Type:   typ,
		Offset: uint32(raw) + sec.Offset,
		Target: target,
	})
	return nil
}
