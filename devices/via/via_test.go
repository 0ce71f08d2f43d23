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

package via

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortsAndDDRsRoundTrip(t *testing.T) {
	a := New()
	a.Write(RegPortA, 0x55)
	a.Write(RegPortB, 0xAA)
	a.Write(RegDDRA, 0xF0)
	a.Write(RegDDRB, 0x0F)

	assert.Equal(t, uint8(0x55), a.Read(RegPortA), "Port A should round-trip through both its offsets")
	assert.Equal(t, uint8(0x55), a.Read(RegPortA2), "Port A should round-trip through both its offsets")
	if a.Read(RegPortB) != 0xAA {
		t.Error("Port B did not round-trip")
	}
	if a.Read(RegDDRA) != 0xF0 || a.Read(RegDDRB) != 0x0F {
		t.Error("DDRs did not round-trip")
	}
}

func TestT1OneShotFiresOnceAndStops(t *testing.T) {
	a := New()
	a.Write(RegT1CLo, 0x02)
	a.Write(RegT1CHi, 0x00) // latch=2, counter<-latch, running

	a.Tick() // counter 2 -> 1
	if a.IFR&ifrT1 != 0 {
		t.Error("T1 flag should not be set yet")
	}
	a.Tick() // counter 1 -> 0
	a.Tick() // counter is 0: fire, one-shot stops
	if a.IFR&ifrT1 == 0 {
		t.Error("T1 flag should be set after expiry")
	}
	before := a.t1Counter
	a.Tick()
	if a.t1Counter != before {
		t.Error("one-shot T1 should stop running after expiry")
	}
	if a.t1Running {
		t.Error("one-shot T1 should stop running after expiry")
	}
}

func TestT1ContinuousReloadsFromLatch(t *testing.T) {
	a := New()
	a.Write(RegACR, acrT1Continuous)
	a.Write(RegT1CLo, 0x01)
	a.Write(RegT1CHi, 0x00) // latch=1, counter<-1

	a.Tick() // counter 1 -> 0
	a.Tick() // counter is 0: fire and reload from latch
	if a.t1Counter != 1 {
		t.Errorf("t1Counter = %d, want 1 (reloaded from latch)", a.t1Counter)
	}
	if !a.t1Running {
		t.Error("continuous-mode T1 should keep running")
	}
}

func TestReadingT1CounterLowClearsInterruptFlag(t *testing.T) {
	a := New()
	a.IFR = ifrT1
	a.Read(RegT1CLo)
	if a.IFR&ifrT1 != 0 {
		t.Error("reading T1 counter low should clear the T1 interrupt flag")
	}
}

func TestT2CounterHighCombinesWithLatchLow(t *testing.T) {
	a := New()
	a.Write(RegT2CLo, 0x34)
	a.Write(RegT2CHi, 0x12)
	if a.t2Counter != 0x1234 {
		t.Errorf("t2Counter = %04X, want 1234", a.t2Counter)
	}
}

func TestIFRWriteOneToClear(t *testing.T) {
	a := New()
	a.IFR = 0x7F
	a.Write(RegIFR, 0x0F)
	if a.IFR != 0x70 {
		t.Errorf("IFR = %02X, want 70", a.IFR)
	}
}

func TestIFRReadSetsBit7WhenEnabledAndPending(t *testing.T) {
	a := New()
	a.IFR = ifrT1
	a.IER = ifrT1
	if a.Read(RegIFR)&0x80 == 0 {
		t.Error("expected bit 7 set when an enabled interrupt is pending")
	}
}

func TestIERSetAndClearBits(t *testing.T) {
	a := New()
	a.Write(RegIER, 0x80|ifrT1|ifrT2)
	if a.IER&(ifrT1|ifrT2) != ifrT1|ifrT2 {
		t.Errorf("IER = %02X, want T1|T2 set", a.IER)
	}
	a.Write(RegIER, ifrT1) // bit 7 clear: clear indicated bits
	if a.IER&ifrT1 != 0 {
		t.Error("IER bit for T1 should have been cleared")
	}
	if a.IER&ifrT2 == 0 {
		t.Error("IER bit for T2 should remain set")
	}
}

func TestIERReadForcesBit7Set(t *testing.T) {
	a := New()
	if a.Read(RegIER)&0x80 == 0 {
		t.Error("IER read should always report bit 7 set")
	}
}

func TestIRQPending(t *testing.T) {
	a := New()
	if a.IRQPending() {
		t.Error("no interrupt should be pending on a fresh adapter")
	}
	a.IFR = ifrT1
	a.IER = ifrT1
	if !a.IRQPending() {
		t.Error("expected IRQPending true once IFR and IER agree on a bit")
	}
}
