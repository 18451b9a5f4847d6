// Copyright 2026 The PSYQTK Authors. All rights reserved.
// Use of this source code is governed by the license that
// can be found in the LICENSE file.

package psyq

import "fmt"

// Expression tags. Leaf tags carry their own payload; operator tags are
// followed by their two operand expressions.
const (
	exprValue        = 0
	exprSymbol       = 2
	exprSectionBase  = 4
	exprSectionStart = 12
	exprSectionEnd   = 22
	exprAdd          = 44
	exprSub          = 46
	exprDiv          = 50
)

// Expression is a node in the relocation-target language: a constant, a
// symbol or section reference, or an arithmetic combination of two
// sub-expressions. The linker evaluates the tree to produce the value
// patched into the relocated location.
type Expression interface {
	fmt.Stringer
	isExpression()
}

// Value is a 32-bit constant operand.
type Value struct {
	V int32
}

func (Value) isExpression() {}

func (v Value) String() string { return fmt.Sprintf("%d", v.V) }

// SymbolRef refers to an imported or exported symbol by index.
type SymbolRef struct {
	Index uint16
}

func (SymbolRef) isExpression() {}

func (s SymbolRef) String() string { return fmt.Sprintf("sym(%d)", s.Index) }

// SectionBase is the load base of the referenced section.
type SectionBase struct {
	Index uint16
}

func (SectionBase) isExpression() {}

func (s SectionBase) String() string { return fmt.Sprintf("base(%d)", s.Index) }

// SectionStart is the start address of the referenced section.
type SectionStart struct {
	Index uint16
}

func (SectionStart) isExpression() {}

func (s SectionStart) String() string { return fmt.Sprintf("start(%d)", s.Index) }

// SectionEnd is the end address of the referenced section.
type SectionEnd struct {
	Index uint16
}

func (SectionEnd) isExpression() {}

func (s SectionEnd) String() string { return fmt.Sprintf("end(%d)", s.Index) }

// Add sums its two operands.
type Add struct {
	Left, Right Expression
}

func (Add) isExpression() {}

func (a Add) String() string { return fmt.Sprintf("(%v + %v)", a.Left, a.Right) }

// Sub subtracts Right from Left.
type Sub struct {
	Left, Right Expression
}

func (Sub) isExpression() {}

func (s Sub) String() string { return fmt.Sprintf("(%v - %v)", s.Left, s.Right) }

// Div divides Left by Right.
type Div struct {
	Left, Right Expression
}

func (Div) isExpression() {}

func (d Div) String() string { return fmt.Sprintf("(%v / %v)", d.Left, d.Right) }

// decodeExpression reads one complete expression from c. The encoding is
// prefix form: a tag byte, then either the leaf payload or the operand
// expressions of a binary operator.
func decodeExpression(c *cursor) (Expression, error) {
	tag, err := c.u8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case exprValue:
		v, err := c.u32()
		if err != nil {
			return nil, err
		}
		return Value{V: int32(v)}, nil
	case exprSymbol:
		i, err := c.u16()
		if err != nil {
			return nil, err
		}
		return SymbolRef{Index: i}, nil
	case exprSectionBase:
		i, err := c.u16()
		if err != nil {
			return nil, err
		}
		return SectionBase{Index: i}, nil
	case exprSectionStart:
		i, err := c.u16()
		if err != nil {
			return nil, err
		}
		return SectionStart{Index: i}, nil
	case exprSectionEnd:
		i, err := c.u16()
		if err != nil {
			return nil, err
		}
		return SectionEnd{Index: i}, nil
	case exprAdd, exprSub, exprDiv:
		left, err := decodeExpression(c)
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(c)
		if err != nil {
			return nil, err
		}
		switch tag {
		case exprAdd:
			return Add{Left: left, Right: right}, nil
		case exprSub:
			return Sub{Left: left, Right: right}, nil
		default:
			return Div{Left: left, Right: right}, nil
		}
	default:
		return nil, fmt.Errorf("tag %d: %w", tag, ErrUnknownExpressionOpcode)
	}
}
