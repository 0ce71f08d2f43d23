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

// Package bus implements the memory-mapped address space the CPU
// executes against: flat RAM plus a set of device windows that claim
// sub-ranges of the 16-bit address space, and a write-protected region
// list that silently drops writes the way ROM does.
package bus

import "fmt"

// Device is the capability a peripheral exposes to the bus. Offset is
// addr minus the window's base, so a device never needs to know where
// in the address space it was attached.
type Device interface {
	Read(offset uint16) uint8
	Write(offset uint16, value uint8)
	// Tick is called once per CPU instruction step, giving the device
	// a chance to advance its own timers/state machines.
	Tick()
}

type window struct {
	base uint16
	end  uint16
	dev  Device
}

func (w window) contains(addr uint16) bool { return addr >= w.base && addr <= w.end }

// Bus is a flat 64K address space with attachable device windows and a
// write-protected region list. It implements the cpu.Bus interface.
type Bus struct {
	ram       [65536]uint8
	windows   []window
	protected addressRangeList
}

// New returns an empty bus: no devices attached, nothing protected.
func New() *Bus {
	return &Bus{}
}

// Attach registers dev to handle every address in [base, end]. It
// panics on overlap with an already-attached window, since that is
// always a wiring bug in the host program rather than recoverable
// runtime state.
func (b *Bus) Attach(base, end uint16, dev Device) {
	for _, w := range b.windows {
		if base <= w.end && w.base <= end {
			panic(fmt.Sprintf("bus: device window [%04X-%04X] overlaps existing [%04X-%04X]", base, end, w.base, w.end))
		}
	}
	b.windows = append(b.windows, window{base: base, end: end, dev: dev})
}

// Protect marks [base, end] as read-only: writes inside the range are
// silently dropped (and logged, if logging is enabled with
// SetLogEnable).
func (b *Bus) Protect(base, end uint16) { b.protected.add(base, end) }

// Unprotect removes write protection from [base, end].
func (b *Bus) Unprotect(base, end uint16) { b.protected.remove(base, end) }

// Read returns the byte at addr: the owning device's Read if addr
// falls in an attached window, otherwise plain RAM.
func (b *Bus) Read(addr uint16) uint8 {
	if w, ok := b.windowFor(addr); ok {
		return w.dev.Read(addr - w.base)
	}
	return b.ram[addr]
}

// Write stores value at addr, unless addr is write-protected, in
// which case the write is dropped.
func (b *Bus) Write(addr uint16, value uint8) {
	if b.protected.contains(addr) {
		logf("bus: dropped write to protected address %04X", addr)
		return
	}
	if w, ok := b.windowFor(addr); ok {
		w.dev.Write(addr-w.base, value)
		return
	}
	b.ram[addr] = value
}

// Tick advances every attached device by one step.
func (b *Bus) Tick() {
	for _, w := range b.windows {
		w.dev.Tick()
	}
}

func (b *Bus) windowFor(addr uint16) (window, bool) {
	for _, w := range b.windows {
		if w.contains(addr) {
			return w, true
		}
	}
	return window{}, false
}

// LoadAt copies data into RAM starting at base, bypassing device
// windows and write protection. Hosts use this to seed a memory image
// before the CPU starts running.
func (b *Bus) LoadAt(base uint16, data []uint8) {
	for i, v := range data {
		b.ram[int(base)+i] = v
	}
}
