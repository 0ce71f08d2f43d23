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

// writeOperand is the dual of readOperand for instructions that
// produce a result in either the accumulator or memory, depending on
// which addressing mode dispatched them (shifts, rotates, INC/DEC on
// the 65C02's accumulator form).
func (c *CPU) writeOperand(op operand, v uint8) {
	if op.kind == operandAccumulator {
		c.A = v
	} else {
		c.write(op.addr, v)
	}
}

// --- Loads / stores -------------------------------------------------

func execLDA(c *CPU, op operand, _ uint8) { c.A = c.readOperand(op); c.setZN(c.A) }
func execLDX(c *CPU, op operand, _ uint8) { c.X = c.readOperand(op); c.setZN(c.X) }
func execLDY(c *CPU, op operand, _ uint8) { c.Y = c.readOperand(op); c.setZN(c.Y) }

// Store instructions compute the effective address but never read the
// target first, per the operand-fetch policy.
func execSTA(c *CPU, op operand, _ uint8) { c.write(op.addr, c.A) }
func execSTX(c *CPU, op operand, _ uint8) { c.write(op.addr, c.X) }
func execSTY(c *CPU, op operand, _ uint8) { c.write(op.addr, c.Y) }
func execSTZ(c *CPU, op operand, _ uint8) { c.write(op.addr, 0) }

// --- Register transfers ---------------------------------------------

func execTAX(c *CPU, _ operand, _ uint8) { c.X = c.A; c.setZN(c.X) }
func execTAY(c *CPU, _ operand, _ uint8) { c.Y = c.A; c.setZN(c.Y) }
func execTXA(c *CPU, _ operand, _ uint8) { c.A = c.X; c.setZN(c.A) }
func execTYA(c *CPU, _ operand, _ uint8) { c.A = c.Y; c.setZN(c.A) }
func execTSX(c *CPU, _ operand, _ uint8) { c.X = c.SP; c.setZN(c.X) }
func execTXS(c *CPU, _ operand, _ uint8) { c.SP = c.X }

// --- Stack ------------------------------------------------------------

func execPHA(c *CPU, _ operand, _ uint8) { c.push(c.A) }
func execPHX(c *CPU, _ operand, _ uint8) { c.push(c.X) }
func execPHY(c *CPU, _ operand, _ uint8) { c.push(c.Y) }
func execPHP(c *CPU, _ operand, _ uint8) { c.push(c.SR | FlagUnused | FlagBreak) }

func execPLA(c *CPU, _ operand, _ uint8) { c.A = c.pop(); c.setZN(c.A) }
func execPLX(c *CPU, _ operand, _ uint8) { c.X = c.pop(); c.setZN(c.X) }
func execPLY(c *CPU, _ operand, _ uint8) { c.Y = c.pop(); c.setZN(c.Y) }
func execPLP(c *CPU, _ operand, _ uint8) {
	popped := c.pop()
	c.SR = (popped &^ (FlagBreak | FlagUnused)) | (c.SR & (FlagBreak | FlagUnused))
}

// --- Arithmetic ---------------------------------------------------------

func execADC(c *CPU, op operand, _ uint8) { c.adc(c.readOperand(op)) }
func execSBC(c *CPU, op operand, _ uint8) { c.sbc(c.readOperand(op)) }

// --- Increment / decrement -----------------------------------------------

func execINC(c *CPU, op operand, _ uint8) { v := c.readOperand(op) + 1; c.writeOperand(op, v); c.setZN(v) }
func execDEC(c *CPU, op operand, _ uint8) { v := c.readOperand(op) - 1; c.writeOperand(op, v); c.setZN(v) }
func execINX(c *CPU, _ operand, _ uint8)  { c.X++; c.setZN(c.X) }
func execINY(c *CPU, _ operand, _ uint8)  { c.Y++; c.setZN(c.Y) }
func execDEX(c *CPU, _ operand, _ uint8)  { c.X--; c.setZN(c.X) }
func execDEY(c *CPU, _ operand, _ uint8)  { c.Y--; c.setZN(c.Y) }

// --- Shifts / rotates -----------------------------------------------------

func execASL(c *CPU, op operand, _ uint8) {
	v := c.readOperand(op)
	c.SetFlag(FlagCarry, v&0x80 != 0)
	r := v << 1
	c.writeOperand(op, r)
	c.setZN(r)
}

func execLSR(c *CPU, op operand, _ uint8) {
	v := c.readOperand(op)
	c.SetFlag(FlagCarry, v&0x01 != 0)
	r := v >> 1
	c.writeOperand(op, r)
	c.setZN(r)
}

func execROL(c *CPU, op operand, _ uint8) {
	v := c.readOperand(op)
	oldCarry := uint8(0)
	if c.GetFlag(FlagCarry) {
		oldCarry = 1
	}
	c.SetFlag(FlagCarry, v&0x80 != 0)
	r := (v << 1) | oldCarry
	c.writeOperand(op, r)
	c.setZN(r)
}

func execROR(c *CPU, op operand, _ uint8) {
	v := c.readOperand(op)
	oldCarry := uint8(0)
	if c.GetFlag(FlagCarry) {
		oldCarry = 0x80
	}
	c.SetFlag(FlagCarry, v&0x01 != 0)
	r := (v >> 1) | oldCarry
	c.writeOperand(op, r)
	c.setZN(r)
}

// --- Logic ---------------------------------------------------------------

func execAND(c *CPU, op operand, _ uint8) { c.A &= c.readOperand(op); c.setZN(c.A) }
func execORA(c *CPU, op operand, _ uint8) { c.A |= c.readOperand(op); c.setZN(c.A) }
func execEOR(c *CPU, op operand, _ uint8) { c.A ^= c.readOperand(op); c.setZN(c.A) }

func execBIT(c *CPU, op operand, _ uint8) {
	m := c.readOperand(op)
	c.SetFlag(FlagNegative, m&0x80 != 0)
	c.SetFlag(FlagOverflow, m&0x40 != 0)
	c.SetFlag(FlagZero, c.A&m == 0)
}

// TRB/TSB test A against memory (setting Z as BIT does) and then
// clear/set the bits of memory that are set in A.
func execTRB(c *CPU, op operand, _ uint8) {
	m := c.readOperand(op)
	c.SetFlag(FlagZero, c.A&m == 0)
	c.write(op.addr, m&^c.A)
}

func execTSB(c *CPU, op operand, _ uint8) {
	m := c.readOperand(op)
	c.SetFlag(FlagZero, c.A&m == 0)
	c.write(op.addr, m|c.A)
}

// --- Compares --------------------------------------------------------------

func compare(c *CPU, r, m uint8) {
	c.SetFlag(FlagCarry, r >= m)
	c.setZN(r - m)
}

func execCMP(c *CPU, op operand, _ uint8) { compare(c, c.A, c.readOperand(op)) }
func execCPX(c *CPU, op operand, _ uint8) { compare(c, c.X, c.readOperand(op)) }
func execCPY(c *CPU, op operand, _ uint8) { compare(c, c.Y, c.readOperand(op)) }

// --- Branches --------------------------------------------------------------

func branchIf(c *CPU, op operand, cond bool) {
	if cond {
		c.PC = op.addr
	}
}

func execBCC(c *CPU, op operand, _ uint8) { branchIf(c, op, !c.GetFlag(FlagCarry)) }
func execBCS(c *CPU, op operand, _ uint8) { branchIf(c, op, c.GetFlag(FlagCarry)) }
func execBEQ(c *CPU, op operand, _ uint8) { branchIf(c, op, c.GetFlag(FlagZero)) }
func execBNE(c *CPU, op operand, _ uint8) { branchIf(c, op, !c.GetFlag(FlagZero)) }
func execBMI(c *CPU, op operand, _ uint8) { branchIf(c, op, c.GetFlag(FlagNegative)) }
func execBPL(c *CPU, op operand, _ uint8) { branchIf(c, op, !c.GetFlag(FlagNegative)) }
func execBVC(c *CPU, op operand, _ uint8) { branchIf(c, op, !c.GetFlag(FlagOverflow)) }
func execBVS(c *CPU, op operand, _ uint8) { branchIf(c, op, c.GetFlag(FlagOverflow)) }
func execBRA(c *CPU, op operand, _ uint8) { branchIf(c, op, true) }

// --- Jumps / subroutines -----------------------------------------------------

func execJMP(c *CPU, op operand, _ uint8) { c.PC = op.addr }

// JSR pushes the address of the last byte of the JSR instruction
// (PC-1 at the point the target has just been fetched), then jumps.
func execJSR(c *CPU, op operand, _ uint8) {
	returnAddr := c.PC - 1
	c.push(uint8(returnAddr >> 8))
	c.push(uint8(returnAddr & 0xFF))
	c.PC = op.addr
}

func execRTS(c *CPU, _ operand, _ uint8) { c.PC = c.popPC() + 1 }

func execBRK(c *CPU, _ operand, _ uint8) { c.brk() }
func execRTI(c *CPU, _ operand, _ uint8) { c.rti() }

// --- Flags ------------------------------------------------------------------

func execCLC(c *CPU, _ operand, _ uint8) { c.SetFlag(FlagCarry, false) }
func execSEC(c *CPU, _ operand, _ uint8) { c.SetFlag(FlagCarry, true) }
func execCLD(c *CPU, _ operand, _ uint8) { c.SetFlag(FlagDecimal, false) }
func execSED(c *CPU, _ operand, _ uint8) { c.SetFlag(FlagDecimal, true) }
func execCLI(c *CPU, _ operand, _ uint8) { c.SetFlag(FlagIRQMask, false) }
func execSEI(c *CPU, _ operand, _ uint8) { c.SetFlag(FlagIRQMask, true) }
func execCLV(c *CPU, _ operand, _ uint8) { c.SetFlag(FlagOverflow, false) }

// --- Miscellaneous / 65C02 bit instructions ---------------------------------

func execNOP(c *CPU, _ operand, _ uint8) {}

// STP and WAI are decoded but left as NOP: the source this spec is
// drawn from advertises both in its tables without defining their
// execution, and this spec preserves that as an explicit open point
// rather than guessing at a stop/wait-for-interrupt semantics.
func execSTP(c *CPU, _ operand, _ uint8) {}
func execWAI(c *CPU, _ operand, _ uint8) {}

func bitIndex(opcode uint8) uint8 { return (opcode >> 4) & 0x7 }

func execRMB(c *CPU, op operand, opcode uint8) {
	bit := uint8(1) << bitIndex(opcode)
	c.write(op.addr, c.read(op.addr)&^bit)
}

func execSMB(c *CPU, op operand, opcode uint8) {
	bit := uint8(1) << bitIndex(opcode)
	c.write(op.addr, c.read(op.addr)|bit)
}

func execBBR(c *CPU, op operand, opcode uint8) {
	bit := uint8(1) << bitIndex(opcode)
	if c.read(op.addr)&bit == 0 {
		c.PC = op.extra
	}
}

func execBBS(c *CPU, op operand, opcode uint8) {
	bit := uint8(1) << bitIndex(opcode)
	if c.read(op.addr)&bit != 0 {
		c.PC = op.extra
	}
}
