// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cpu

// operandKind distinguishes how an instruction's execute function
// should interpret the operand produced by its addressing-mode phase.
type operandKind uint8

const (
	// operandImplied carries no data; the instruction acts on
	// registers only (e.g. INX, CLC).
	operandImplied operandKind = iota
	// operandAccumulator targets the accumulator directly (shift/
	// rotate instructions in their accumulator form).
	operandAccumulator
	// operandImmediate carries a literal value fetched from the
	// instruction stream.
	operandImmediate
	// operandMemory carries an effective address; the execute
	// function reads it (unless the instruction is a pure store) or
	// writes it.
	operandMemory
	// operandRelative carries a branch target address.
	operandRelative
)

// operand is what an addressing-mode phase produces and an execute
// function consumes. Store instructions inspect only addr; everything
// else that needs a value is given one already read from the bus.
type operand struct {
	kind  operandKind
	value uint8
	addr  uint16
	// extra carries the resolved branch target for the 65C02
	// BBR/BBS instructions, which combine a zero-page address with a
	// relative branch offset in one three-byte encoding.
	extra uint16
}

// readOperand returns the operand's value, fetching it from memory on demand
// for operandMemory (load/arithmetic/compare instructions call this;
// store instructions never do, per the no-pre-read policy).
func (c *CPU) readOperand(op operand) uint8 {
	switch op.kind {
	case operandAccumulator:
		return c.A
	case operandImmediate:
		return op.value
	case operandMemory:
		return c.read(op.addr)
	default:
		return 0
	}
}
