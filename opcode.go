// Copyright 2026 The PSYQTK Authors. All rights reserved.
// Use of this source code is governed by the license that
// can be found in the LICENSE file.

package psyq

import "fmt"

// Opcode is the tag byte that selects which record decoder governs the bytes
// following it in the stream.
type Opcode byte

// Record opcodes defined by the PSY-Q linker object format. Only a subset
// carries data this decoder keeps; the rest are debugging and SLD line-number
// records that still get named in errors when they show up.
const (
	OpEnd                 Opcode = 0
	OpBytes               Opcode = 2
	OpSwitch              Opcode = 6
	OpZeroes              Opcode = 8
	OpRelocation          Opcode = 10
	OpExportedSymbol      Opcode = 12
	OpImportedSymbol      Opcode = 14
	OpSection             Opcode = 16
	OpLocalSymbol         Opcode = 18
	OpFilename            Opcode = 28
	OpProgramType         Opcode = 46
	OpUninitialized       Opcode = 48
	OpIncSLDLineNum       Opcode = 50
	OpIncSLDLineNumByByte Opcode = 52
	OpIncSLDLineNumByWord Opcode = 54
	OpSetSLDLineNum       Opcode = 56
	OpSetSLDLineNumFile   Opcode = 58
	OpEndSLD              Opcode = 60
	OpFunction            Opcode = 74
	OpFunctionEnd         Opcode = 76
	OpBlockStart          Opcode = 78
	OpBlockEnd            Opcode = 80
	OpSectionDef          Opcode = 82
	OpSectionDef2         Opcode = 84
	OpFunctionStart2      Opcode = 86
)

var opcodeNames = map[Opcode]string{
	OpEnd:                 "END",
	OpBytes:               "BYTES",
	OpSwitch:              "SWITCH",
	OpZeroes:              "ZEROES",
	OpRelocation:          "RELOCATION",
	OpExportedSymbol:      "EXPORTED_SYMBOL",
	OpImportedSymbol:      "IMPORTED_SYMBOL",
	OpSection:             "SECTION",
	OpLocalSymbol:         "LOCAL_SYMBOL",
	OpFilename:            "FILENAME",
	OpProgramType:         "PROGRAMTYPE",
	OpUninitialized:       "UNINITIALIZED",
	OpIncSLDLineNum:       "INC_SLD_LINENUM",
	OpIncSLDLineNumByByte: "INC_SLD_LINENUM_BY_BYTE",
	OpIncSLDLineNumByWord: "INC_SLD_LINENUM_BY_WORD",
	OpSetSLDLineNum:       "SET_SLD_LINENUM",
	OpSetSLDLineNumFile:   "SET_SLD_LINENUM_FILE",
	OpEndSLD:              "END_SLD",
	OpFunction:            "FUNCTION",
	OpFunctionEnd:         "FUNCTION_END",
	OpBlockStart:          "BLOCK_START",
	OpBlockEnd:            "BLOCK_END",
	OpSectionDef:          "SECTION_DEF",
	OpSectionDef2:         "SECTION_DEF2",
	OpFunctionStart2:      "FUNCTION_START2",
}

func (o Opcode) String() string {
	if n, ok := opcodeNames[o]; ok {
		return n
	}
	return fmt.Sprintf("Opcode(%d)", byte(o))
}
