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

// Package via implements a 6522-style timer/interface adapter: two
// general-purpose ports with data-direction registers, two countdown
// timers (one-shot or continuous), and an interrupt flag/enable pair.
package via

// Register offsets within the adapter's sixteen-byte window.
const (
	RegPortB  uint16 = 0x0
	RegPortA  uint16 = 0x1
	RegDDRB   uint16 = 0x2
	RegDDRA   uint16 = 0x3
	RegT1CLo  uint16 = 0x4
	RegT1CHi  uint16 = 0x5
	RegT1LLo  uint16 = 0x6
	RegT1LHi  uint16 = 0x7
	RegT2CLo  uint16 = 0x8
	RegT2CHi  uint16 = 0x9
	RegSR     uint16 = 0xA
	RegACR    uint16 = 0xB
	RegPCR    uint16 = 0xC
	RegIFR    uint16 = 0xD
	RegIER    uint16 = 0xE
	RegPortA2 uint16 = 0xF // mirrors RegPortA
)

// ACR bit 6 selects Timer 1's free-run (continuous) mode; clear means
// one-shot.
const acrT1Continuous uint8 = 1 << 6

// Interrupt-flag bit positions, matching the conventional 6522 layout:
// bit 6 for Timer 1, bit 5 for Timer 2.
const (
	ifrT1 uint8 = 1 << 6
	ifrT2 uint8 = 1 << 5
)

// Adapter is one timer/interface adapter instance.
type Adapter struct {
	PortA, PortB uint8
	DDRA, DDRB   uint8

	t1Counter, t1Latch uint16
	t1Running          bool

	t2Counter  uint16
	t2LatchLow uint8
	t2Running  bool

	SR, ACR, PCR uint8
	IFR, IER     uint8
}

// New returns an adapter with all registers zeroed.
func New() *Adapter { return &Adapter{} }

// Read implements bus.Device.
func (a *Adapter) Read(offset uint16) uint8 {
	switch offset {
	case RegPortB:
		return a.PortB
	case RegPortA, RegPortA2:
		return a.PortA
	case RegDDRB:
		return a.DDRB
	case RegDDRA:
		return a.DDRA
	case RegT1CLo:
		a.IFR &^= ifrT1
		return uint8(a.t1Counter)
	case RegT1CHi:
		return uint8(a.t1Counter >> 8)
	case RegT1LLo:
		return uint8(a.t1Latch)
	case RegT1LHi:
		return uint8(a.t1Latch >> 8)
	case RegT2CLo:
		a.IFR &^= ifrT2
		return uint8(a.t2Counter)
	case RegT2CHi:
		return uint8(a.t2Counter >> 8)
	case RegSR:
		return a.SR
	case RegACR:
		return a.ACR
	case RegPCR:
		return a.PCR
	case RegIFR:
		status := a.IFR & 0x7F
		if status&a.IER&0x7F != 0 {
			status |= 0x80
		}
		return status
	case RegIER:
		return a.IER | 0x80
	default:
		return 0xFF
	}
}

// Write implements bus.Device.
func (a *Adapter) Write(offset uint16, v uint8) {
	switch offset {
	case RegPortB:
		a.PortB = v
	case RegPortA, RegPortA2:
		a.PortA = v
	case RegDDRB:
		a.DDRB = v
	case RegDDRA:
		a.DDRA = v
	case RegT1CLo:
		a.t1Latch = (a.t1Latch & 0xFF00) | uint16(v)
	case RegT1CHi:
		a.t1Latch = (a.t1Latch & 0x00FF) | uint16(v)<<8
		a.t1Counter = a.t1Latch
		a.t1Running = true
		a.IFR &^= ifrT1
	case RegT1LLo:
		a.t1Latch = (a.t1Latch & 0xFF00) | uint16(v)
	case RegT1LHi:
		a.t1Latch = (a.t1Latch & 0x00FF) | uint16(v)<<8
	case RegT2CLo:
		a.t2LatchLow = v
	case RegT2CHi:
		a.t2Counter = uint16(v)<<8 | uint16(a.t2LatchLow)
		a.t2Running = true
		a.IFR &^= ifrT2
	case RegSR:
		a.SR = v
	case RegACR:
		a.ACR = v
	case RegPCR:
		a.PCR = v
	case RegIFR:
		a.IFR &^= v & 0x7F
	case RegIER:
		if v&0x80 != 0 {
			a.IER |= v & 0x7F
		} else {
			a.IER &^= v & 0x7F
		}
	}
}

// Tick advances both running timers by one unit, per CPU instruction.
func (a *Adapter) Tick() {
	if a.t1Running {
		if a.t1Counter == 0 {
			a.IFR |= ifrT1
			if a.ACR&acrT1Continuous != 0 {
				a.t1Counter = a.t1Latch
			} else {
				a.t1Running = false
			}
		} else {
			a.t1Counter--
		}
	}
	if a.t2Running {
		if a.t2Counter == 0 {
			a.IFR |= ifrT2
			a.t2Running = false
		} else {
			a.t2Counter--
		}
	}
}

// IRQPending reports whether the adapter currently wants to assert an
// interrupt line.
func (a *Adapter) IRQPending() bool {
	return a.IFR&a.IER&0x7F != 0
}
