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

// Package cpu implements the fetch/decode/execute core of a MOS 6502 /
// WDC 65C02 interpreter: addressing-mode effective-address computation,
// status-flag semantics (including binary-coded-decimal arithmetic and
// the two variant overflow rules), stack discipline, and interrupt
// servicing. It consumes a Bus capability supplied by the host and
// never touches memory directly.
package cpu

import "github.com/vaelen/v6502c/config"

// Status register bit positions.
const (
	FlagCarry    uint8 = 1 << 0
	FlagZero     uint8 = 1 << 1
	FlagIRQMask  uint8 = 1 << 2
	FlagDecimal  uint8 = 1 << 3
	FlagBreak    uint8 = 1 << 4
	FlagUnused   uint8 = 1 << 5
	FlagOverflow uint8 = 1 << 6
	FlagNegative uint8 = 1 << 7
)

const (
	vectorNMI   uint16 = 0xFFFA
	vectorReset uint16 = 0xFFFC
	vectorIRQ   uint16 = 0xFFFE

	stackBase uint16 = 0x0100
	resetSR   uint8  = 0x36
	resetSP   uint8  = 0xFD
)

// Bus is the capability the CPU needs from its host: byte-addressed
// read/write over the 16-bit address space, plus a tick hook invoked
// once between instructions. All three are infallible from the CPU's
// perspective; the host is responsible for hiding any lower-level
// error behind a sensible value (typically 0xFF for a failed read).
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
	Tick()
}

// CPU is a single 6502/65C02 core, addressed through a Bus.
type CPU struct {
	PC uint16
	A  uint8
	X  uint8
	Y  uint8
	SR uint8
	SP uint8

	Halted       bool
	ResetPending bool
	IRQPending   bool
	NMIPending   bool

	Variant config.Variant

	bus Bus
}

// New creates a CPU wired to bus. The CPU starts in the reset-pending
// state; call Step or Run to run the reset sequence and begin fetching
// instructions from the reset vector.
func New(bus Bus, variant config.Variant) *CPU {
	return &CPU{
		Variant:      variant,
		bus:          bus,
		ResetPending: true,
	}
}

// SetBus rewires the CPU to a different bus. Exposed mainly for tests
// that swap in a fake bus after construction.
func (c *CPU) SetBus(bus Bus) { c.bus = bus }

// GetFlag returns true iff the given status bit is set.
func (c *CPU) GetFlag(flag uint8) bool { return c.SR&flag != 0 }

// SetFlag sets or clears the given status bit.
func (c *CPU) SetFlag(flag uint8, v bool) {
	if v {
		c.SR |= flag
	} else {
		c.SR &^= flag
	}
}

func (c *CPU) setZN(v uint8) {
	c.SetFlag(FlagZero, v == 0)
	c.SetFlag(FlagNegative, v&0x80 != 0)
}

// read/write/read16 forward to the bus; they exist so the rest of the
// package never touches c.bus directly, keeping the callback surface
// in one place.
func (c *CPU) read(addr uint16) uint8         { return c.bus.Read(addr) }
func (c *CPU) write(addr uint16, v uint8)     { c.bus.Write(addr, v) }
func (c *CPU) read16(addr uint16) uint16 {
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	return hi<<8 | lo
}

// Reset establishes the documented power-on/reset state: PC from the
// reset vector, A = X = Y = 0, SR = 0x36, SP = 0xFD, and clears the
// four edge-latched flags.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SR = resetSR
	c.SP = resetSP
	c.PC = c.read16(vectorReset)
	c.Halted = false
	c.ResetPending = false
	c.IRQPending = false
	c.NMIPending = false
}

// IRQ latches a maskable interrupt request. Delivery happens at the
// next instruction boundary and is gated by the IRQ-disable flag.
func (c *CPU) IRQ() { c.IRQPending = true }

// NMI latches a non-maskable interrupt request. Delivery happens at
// the next instruction boundary and is never gated.
func (c *CPU) NMI() { c.NMIPending = true }

// Halt stops any in-progress Run loop at the next instruction
// boundary. It is the sole cooperative cancellation mechanism.
func (c *CPU) Halt() { c.Halted = true }

// Step executes exactly one instruction, calls Tick once, and then
// services a pending NMI or IRQ. A pending reset is serviced in place
// of the instruction: no opcode is fetched and Tick is not called. It
// returns false if the CPU is halted and nothing was executed.
func (c *CPU) Step() bool {
	if c.Halted {
		return false
	}
	if c.ResetPending {
		c.Reset()
		return true
	}

	opcode := c.read(c.PC)
	c.PC++

	entry := decodeTable[opcode]
	operand := entry.mode(c)
	entry.exec(c, operand, opcode)

	c.bus.Tick()

	c.pollInterrupts()
	return true
}

// Run steps the CPU until Halt is called.
func (c *CPU) Run() {
	for !c.Halted {
		c.Step()
	}
}

// pollInterrupts implements the post-instruction interrupt poll: NMI
// strictly dominates IRQ, and IRQ is masked by the IRQ-disable flag.
func (c *CPU) pollInterrupts() {
	if c.NMIPending {
		c.NMIPending = false
		c.serviceInterrupt(vectorNMI, false)
		return
	}
	if c.IRQPending && !c.GetFlag(FlagIRQMask) {
		c.IRQPending = false
		c.serviceInterrupt(vectorIRQ, false)
	}
}
