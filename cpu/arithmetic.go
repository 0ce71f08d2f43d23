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

import "github.com/vaelen/v6502c/config"

// adc implements ADC in both binary and decimal mode, with the
// NMOS/CMOS split in decimal-mode overflow behavior.
func (c *CPU) adc(m uint8) {
	carryIn := uint16(0)
	if c.GetFlag(FlagCarry) {
		carryIn = 1
	}

	if !c.GetFlag(FlagDecimal) {
		a := uint16(c.A)
		result := a + uint16(m) + carryIn
		c.SetFlag(FlagCarry, result > 0xFF)
		overflow := (a^result)&(uint16(m)^result)&0x80 != 0
		c.SetFlag(FlagOverflow, overflow)
		r := uint8(result)
		c.setZN(r)
		c.A = r
		return
	}

	// Decimal mode: nibble-wise BCD adjustment. N/Z come from the
	// binary unadjusted result (authentic NMOS behavior); V is
	// variant-dependent.
	binary := uint16(c.A) + uint16(m) + carryIn
	c.setZN(uint8(binary))

	overflow := (uint16(c.A)^binary)&(uint16(m)^binary)&0x80 != 0
	if c.Variant == config.CMOS65C02 {
		c.SetFlag(FlagOverflow, overflow)
	} else {
		c.SetFlag(FlagOverflow, false)
	}

	lo := (c.A & 0x0F) + (m & 0x0F) + uint8(carryIn)
	carry := uint8(0)
	if lo > 9 {
		lo += 6
		carry = 1
	}
	hi := (c.A >> 4) + (m >> 4) + carry
	carryOut := false
	if hi > 9 {
		hi += 6
		carryOut = true
	}
	c.SetFlag(FlagCarry, carryOut)
	c.A = (hi << 4) | (lo & 0x0F)
}

// sbc implements SBC in both binary and decimal mode, with the
// NMOS/CMOS split in decimal-mode overflow behavior.
func (c *CPU) sbc(m uint8) {
	borrowIn := uint16(1)
	if c.GetFlag(FlagCarry) {
		borrowIn = 0
	}

	a := uint16(c.A)
	result := a - uint16(m) - borrowIn
	c.SetFlag(FlagCarry, a >= uint16(m)+borrowIn)
	overflow := (a^uint16(m))&(a^result)&0x80 != 0
	c.SetFlag(FlagOverflow, overflow)
	r := uint8(result)

	if !c.GetFlag(FlagDecimal) {
		c.setZN(r)
		c.A = r
		return
	}

	// Decimal mode: N/Z from the binary unadjusted result; V follows
	// the same variant split as ADC.
	c.setZN(r)
	if c.Variant == config.CMOS65C02 {
		c.SetFlag(FlagOverflow, overflow)
	} else {
		c.SetFlag(FlagOverflow, false)
	}

	lo := int16(c.A&0x0F) - int16(m&0x0F) - int16(borrowIn)
	borrow := int16(0)
	if lo < 0 {
		lo += 10
		borrow = 1
	}
	hi := int16(c.A>>4) - int16(m>>4) - borrow
	if hi < 0 {
		hi += 10
		c.SetFlag(FlagCarry, false)
	} else {
		c.SetFlag(FlagCarry, true)
	}
	c.A = uint8(hi<<4) | uint8(lo&0x0F)
}
