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

// serviceInterrupt is the shared BRK/IRQ/NMI entry sequence: push PC
// high, push PC low, push SR with bit 5 forced and bit 4 (break) set
// iff the source is BRK, set the IRQ-disable flag, then load PC from
// vector.
func (c *CPU) serviceInterrupt(vector uint16, fromBRK bool) {
	c.pushPC()

	sr := c.SR | FlagUnused
	if fromBRK {
		sr |= FlagBreak
	} else {
		sr &^= FlagBreak
	}
	c.push(sr)

	c.SetFlag(FlagIRQMask, true)
	c.PC = c.read16(vector)
}

// brk executes the BRK instruction: PC is already past the opcode
// byte (Step advanced it on fetch); skip the one-byte padding slot
// before vectoring, per the documented two-byte BRK encoding.
func (c *CPU) brk() {
	c.PC++
	c.serviceInterrupt(vectorIRQ, true)
}

// rti pops SR (preserving the live break/unused bit positions rather
// than adopting whatever was pushed there), then pops PC.
func (c *CPU) rti() {
	popped := c.pop()
	c.SR = (popped &^ (FlagBreak | FlagUnused)) | (c.SR & (FlagBreak | FlagUnused))
	c.PC = c.popPC()
}
