// Copyright 2026 The PSYQTK Authors. All rights reserved.
// Use of this source code is governed by the license that
// can be found in the LICENSE file.

package psyq

import (
	"fmt"
	"sort"
)

// Section is a named, indexed region of code or data. Offset and Size stay
// zero until a BYTES record targeting the section has been decoded. Offset
// is a position in the original input buffer; the decoder does not copy
// section payloads, so consumers that want the raw bytes re-read
// data[Offset:Offset+Size] from the buffer they parsed.
type Section struct {
	Index     uint16
	Group     uint16
	Alignment uint8
	Name      []byte
	Offset    uint32
	Size      uint32
}

// ImportedSymbol is an external reference this module expects another
// module to resolve.
type ImportedSymbol struct {
	Index uint16
	Name  []byte
}

// ExportedSymbol is a symbol this module defines at Offset within the
// section identified by SectionIndex.
type ExportedSymbol struct {
	Index        uint16
	SectionIndex uint16
	Offset       uint32
	Name         []byte
}

// Relocation is an instruction to patch the location at Offset with the
// value of Target. Offset is absolute within the input buffer: the raw
// 16-bit field has already been added to the owning section's offset at
// decode time.
type Relocation struct {
	Type   RelocType
	Offset uint32
	Target Expression
}

// ObjectFile is the decoded model of one LNK object module. It is mutated
// only while a parse runs; once Parse returns it, the model is complete and
// safe for concurrent reads.
type ObjectFile struct {
	sections    map[uint16]*Section
	imports     []ImportedSymbol
	exports     []ExportedSymbol
	relocations []Relocation

	programType    byte
	hasProgramType bool
}

func newObjectFile() *ObjectFile {
	return &ObjectFile{sections: make(map[uint16]*Section)}
}

// Sections returns all sections sorted by index. The stream itself implies
// no section order, so a deterministic one is picked here.
func (o *ObjectFile) Sections() []*Section {
	out := make([]*Section, 0, len(o.sections))
	for _, s := range o.sections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Section returns the section with the given index, or ErrSectionNotFound.
func (o *ObjectFile) Section(index uint16) (*Section, error) {
	s, ok := o.sections[index]
	if !ok {
		return nil, ErrSectionNotFound
	}
	return s, nil
}

// Imports returns the imported symbols in decode order. Indexes are not
// guaranteed unique or monotonic.
func (o *ObjectFile) Imports() []ImportedSymbol {
	return o.imports
}

// Exports returns the exported symbols in decode order.
func (o *ObjectFile) Exports() []ExportedSymbol {
	return o.exports
}

// Relocations returns the relocations in decode order.
func (o *ObjectFile) Relocations() []Relocation {
	return o.relocations
}

// ProgramType returns the value of the PROGRAMTYPE record, if one was
// present in the stream.
func (o *ObjectFile) ProgramType() (byte, bool) {
	return o.programType, o.hasProgramType
}

// VerifySectionRefs checks that every section reference made by an exported
// symbol or a relocation target resolves to a defined section. Decoding
// never validates these (a section may be defined after the records that
// reference it), so hosts run this once the model is complete.
func (o *ObjectFile) VerifySectionRefs() error {
	for _, e := range o.exports {
		if _, ok := o.sections[e.SectionIndex]; !ok {
			return fmt.Errorf("export %q references section %d: %w",
				e.Name, e.SectionIndex, ErrSectionNotFound)
		}
	}
	for _, r := range o.relocations {
		if err := o.verifyExprSections(r.Target); err != nil {
			return fmt.Errorf("relocation at 0x%x: %w", r.Offset, err)
		}
	}
	return nil
}

func (o *ObjectFile) verifyExprSections(e Expression) error {
	switch x := e.(type) {
	case SectionBase:
		return o.sectionRef(x.Index)
	case SectionStart:
		return o.sectionRef(x.Index)
	case SectionEnd:
		return o.sectionRef(x.Index)
	case Add:
		if err := o.verifyExprSections(x.Left); err != nil {
			return err
		}
		return o.verifyExprSections(x.Right)
	case Sub:
		if err := o.verifyExprSections(x.Left); err != nil {
			return err
		}
		return o.verifyExprSections(x.Right)
	case Div:
		if err := o.verifyExprSections(x.Left); err != nil {
			return err
		}
		return o.verifyExprSections(x.Right)
	}
	return nil
}

func (o *ObjectFile) sectionRef(index uint16) error {
	if _, ok := o.sections[index]; !ok {
		return fmt.Errorf("section %d: %w", index, ErrSectionNotFound)
	}
	return nil
}
