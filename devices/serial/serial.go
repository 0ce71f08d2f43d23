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

// Package serial implements a memory-mapped serial adapter: a four-
// register (DATA/STATUS/COMMAND/CONTROL) peripheral with non-blocking
// input polling, modeled on the ACIA-style adapters these machines
// actually used.
package serial

import "io"

// Register offsets within the adapter's four-byte window.
const (
	RegData    uint16 = 0x0
	RegStatus  uint16 = 0x1
	RegCommand uint16 = 0x2
	RegControl uint16 = 0x3
)

// Status bits.
const (
	StatusRDRF uint8 = 1 << 0 // receive data register full
	StatusTDRE uint8 = 1 << 1 // transmit data register empty
)

// availabler lets an input source report whether a byte can be read
// without blocking. An *os.File satisfies this when wrapped in FDInput
// (see fd_unix.go); tests supply a fake directly so the adapter never
// needs a real file descriptor.
type availabler interface {
	Available() bool
}

// Adapter is one memory-mapped serial port. The zero value is not
// usable; construct with New.
type Adapter struct {
	in  io.Reader
	out io.Writer

	command uint8
	control uint8

	latch     uint8
	latchFull bool
}

// New returns an adapter reading from in and writing to out. Either
// may be nil, in which case input never reports available and output
// writes are silently discarded.
func New(in io.Reader, out io.Writer) *Adapter {
	return &Adapter{in: in, out: out}
}

// Reset clears command, control, the receive latch, and the
// receive-full flag, matching the adapter's power-on state.
func (a *Adapter) Reset() {
	a.command = 0
	a.control = 0
	a.latch = 0
	a.latchFull = false
}

// Tick is a no-op: the serial adapter has no internal clock of its
// own, it reacts only to register accesses.
func (a *Adapter) Tick() {}

// Read implements bus.Device.
func (a *Adapter) Read(offset uint16) uint8 {
	switch offset {
	case RegData:
		return a.readData()
	case RegStatus:
		return a.readStatus()
	case RegCommand:
		return a.command
	case RegControl:
		return a.control
	default:
		return 0xFF
	}
}

// Write implements bus.Device.
func (a *Adapter) Write(offset uint16, v uint8) {
	switch offset {
	case RegData:
		a.writeData(v)
	case RegStatus:
		a.Reset()
	case RegCommand:
		a.command = v
	case RegControl:
		a.control = v
	}
}

func (a *Adapter) readStatus() uint8 {
	status := StatusTDRE
	if a.latchFull || a.inputAvailable() {
		status |= StatusRDRF
	}
	return status
}

// readData fills the latch from the input stream if it is empty and a
// byte is available without blocking, then returns and drains it.
func (a *Adapter) readData() uint8 {
	if !a.latchFull {
		a.fillLatch()
	}
	v := a.latch
	a.latchFull = false
	return v
}

func (a *Adapter) fillLatch() {
	if !a.inputAvailable() {
		return
	}
	buf := make([]byte, 1)
	n, err := a.in.Read(buf)
	if err != nil || n == 0 {
		return
	}
	b := buf[0]
	if b == 0x0A { // LF -> CR, firmware expects CR-terminated lines
		b = 0x0D
	}
	a.latch = b & 0x7F
	a.latchFull = true
}

func (a *Adapter) writeData(v uint8) {
	if a.out == nil {
		return
	}
	a.out.Write([]byte{v})
	if f, ok := a.out.(flusher); ok {
		f.Flush()
	}
}

type flusher interface {
	Flush() error
}

func (a *Adapter) inputAvailable() bool {
	if a.in == nil {
		return false
	}
	if av, ok := a.in.(availabler); ok {
		return av.Available()
	}
	// Without an availability hook the adapter cannot safely poll
	// without risking a blocking read, so it reports nothing pending.
	return false
}
