// Copyright 2026 The PSYQTK Authors. All rights reserved.
// Use of this source code is governed by the license that
// can be found in the LICENSE file.

// Command lnkdump lists the contents of a PSY-Q LNK object file: program
// type, sections, imported and exported symbols, and relocations.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/psyqtk/psyq"
)

func mainE() error {
	var verify bool
	flag.BoolVar(&verify, "verify", false, "Check section references after parsing")
	flag.Parse()
	if flag.NArg() != 1 {
		return errors.New("usage: lnkdump [-verify] <file>")
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		return err
	}
	obj, err := psyq.ParseWithDiagnostics(data, psyq.WriterSink{W: os.Stderr})
	if err != nil {
		return err
	}

	if pt, ok := obj.ProgramType(); ok {
		fmt.Printf("program type: %d\n", pt)
	}
	for _, s := range obj.Sections() {
		fmt.Printf("section %-3d group=%d align=%d offset=0x%x size=0x%x %s\n",
			s.Index, s.Group, s.Alignment, s.Offset, s.Size, s.Name)
	}
	for _, imp := range obj.Imports() {
		fmt.Printf("import %-3d %s\n", imp.Index, imp.Name)
	}
	for _, exp := range obj.Exports() {
		fmt.Printf("export %-3d section=%d offset=0x%x %s\n",
			exp.Index, exp.SectionIndex, exp.Offset, exp.Name)
	}
	for _, r := range obj.Relocations() {
		fmt.Printf("reloc %s offset=0x%x target=%v\n", r.Type, r.Offset, r.Target)
	}

	if verify {
		return obj.VerifySectionRefs()
	}
	return nil
}

func main() {
	if err := mainE(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
