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

package bus

import "testing"

func TestRAMReadWrite(t *testing.T) {
	b := New()
	b.Write(0x1234, 0xAB)
	if got := b.Read(0x1234); got != 0xAB {
		t.Errorf("Read() = %02X, want AB", got)
	}
}

type fakeDevice struct {
	regs  [16]uint8
	ticks int
}

func (d *fakeDevice) Read(offset uint16) uint8      { return d.regs[offset] }
func (d *fakeDevice) Write(offset uint16, v uint8)  { d.regs[offset] = v }
func (d *fakeDevice) Tick()                         { d.ticks++ }

func TestAttachRoutesWindow(t *testing.T) {
	b := New()
	dev := &fakeDevice{}
	b.Attach(0xC000, 0xC00F, dev)

	b.Write(0xC003, 0x42)
	if dev.regs[3] != 0x42 {
		t.Errorf("device register 3 = %02X, want 42", dev.regs[3])
	}
	if got := b.Read(0xC003); got != 0x42 {
		t.Errorf("Read() = %02X, want 42", got)
	}

	// Addresses outside the window still hit plain RAM.
	b.Write(0xC010, 0x99)
	if got := b.Read(0xC010); got != 0x99 {
		t.Errorf("Read() outside window = %02X, want 99", got)
	}
}

func TestAttachOverlapPanics(t *testing.T) {
	b := New()
	b.Attach(0xC000, 0xC00F, &fakeDevice{})
	defer func() {
		if recover() == nil {
			t.Error("expected panic on overlapping Attach")
		}
	}()
	b.Attach(0xC005, 0xC020, &fakeDevice{})
}

func TestTickPropagatesToDevices(t *testing.T) {
	b := New()
	dev := &fakeDevice{}
	b.Attach(0xC000, 0xC00F, dev)
	b.Tick()
	b.Tick()
	if dev.ticks != 2 {
		t.Errorf("ticks = %d, want 2", dev.ticks)
	}
}

func TestProtectedWriteIsDropped(t *testing.T) {
	b := New()
	b.ram[0xD000] = 0x11
	b.Protect(0xD000, 0xFFFF)
	b.Write(0xD000, 0x22)
	if got := b.Read(0xD000); got != 0x11 {
		t.Errorf("Read() = %02X, want 11 (write should have been dropped)", got)
	}
}

func TestUnprotectRestoresWritability(t *testing.T) {
	b := New()
	b.Protect(0x1000, 0x1FFF)
	b.Unprotect(0x1500, 0x15FF)
	b.Write(0x1500, 0x42)
	if got := b.Read(0x1500); got != 0x42 {
		t.Errorf("Read() = %02X, want 42 after unprotecting", got)
	}
	b.Write(0x1000, 0x42)
	if got := b.Read(0x1000); got == 0x42 {
		t.Error("0x1000 should still be protected")
	}
}

func TestAddressRangeListMergesAdjacentAndOverlapping(t *testing.T) {
	var l addressRangeList
	l.add(0x10, 0x1F)
	l.add(0x20, 0x2F) // adjacent, should merge into one range
	l.add(0x18, 0x22) // overlaps both, still one range

	if len(l.ranges) != 1 {
		t.Fatalf("ranges = %v, want a single merged range", l.ranges)
	}
	if l.ranges[0].Base != 0x10 || l.ranges[0].End != 0x2F {
		t.Errorf("merged range = %+v, want [10,2F]", l.ranges[0])
	}
}

func TestAddressRangeListRemoveSplits(t *testing.T) {
	var l addressRangeList
	l.add(0x00, 0xFF)
	l.remove(0x40, 0x4F)

	if len(l.ranges) != 2 {
		t.Fatalf("ranges = %v, want two disjoint ranges after splitting", l.ranges)
	}
	if l.contains(0x45) {
		t.Error("removed sub-range should no longer be contained")
	}
	if !l.contains(0x10) || !l.contains(0x90) {
		t.Error("surviving sub-ranges should still be contained")
	}
}

func TestLoadAtBypassesProtection(t *testing.T) {
	b := New()
	b.Protect(0x0000, 0xFFFF)
	b.LoadAt(0x0200, []uint8{0xA9, 0x01})
	if b.Read(0x0200) != 0xA9 || b.Read(0x0201) != 0x01 {
		t.Error("LoadAt should seed memory regardless of write protection")
	}
}
