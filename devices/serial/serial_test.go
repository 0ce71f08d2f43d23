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

package serial

import (
	"bytes"
	"testing"
)

// fakeInput is an availabler-aware io.Reader for tests, standing in
// for a real tty/pty without needing a file descriptor.
type fakeInput struct {
	data []byte
	pos  int
}

func (f *fakeInput) Available() bool { return f.pos < len(f.data) }

func (f *fakeInput) Read(p []byte) (int, error) {
	if f.pos >= len(f.data) {
		return 0, nil
	}
	n := copy(p, f.data[f.pos:f.pos+1])
	f.pos += n
	return n, nil
}

func TestStatusAlwaysReportsTDRE(t *testing.T) {
	a := New(nil, nil)
	if a.Read(RegStatus)&StatusTDRE == 0 {
		t.Error("TDRE should always be set")
	}
}

func TestStatusReflectsAvailableInput(t *testing.T) {
	in := &fakeInput{data: []byte("A")}
	a := New(in, nil)
	if a.Read(RegStatus)&StatusRDRF == 0 {
		t.Error("RDRF should be set when input is available")
	}
}

func TestDataReadTranslatesLFToCR(t *testing.T) {
	in := &fakeInput{data: []byte{0x0A}}
	a := New(in, nil)
	if got := a.Read(RegData); got != 0x0D {
		t.Errorf("Read(DATA) = %02X, want 0D (LF translated to CR)", got)
	}
	if a.Read(RegStatus)&StatusRDRF != 0 {
		t.Error("RDRF should clear after the byte is consumed")
	}
}

func TestDataReadMasksHighBit(t *testing.T) {
	in := &fakeInput{data: []byte{0xC1}}
	a := New(in, nil)
	if got := a.Read(RegData); got != 0x41 {
		t.Errorf("Read(DATA) = %02X, want 41 (high bit masked)", got)
	}
}

func TestDataWriteGoesToOutputStream(t *testing.T) {
	var out bytes.Buffer
	a := New(nil, &out)
	a.Write(RegData, 'X')
	if out.String() != "X" {
		t.Errorf("output = %q, want X", out.String())
	}
}

func TestDataWriteWithNilOutputIsSilent(t *testing.T) {
	a := New(nil, nil)
	a.Write(RegData, 'X') // must not panic
}

func TestStatusWriteActsAsProgrammedReset(t *testing.T) {
	a := New(&fakeInput{data: []byte{'Z'}}, nil)
	a.Write(RegCommand, 0xAB)
	a.Write(RegControl, 0xCD)
	a.Read(RegData) // latch something

	a.Write(RegStatus, 0x00)

	if a.Read(RegCommand) != 0 {
		t.Error("command register should be cleared by STATUS write")
	}
	if a.Read(RegControl) != 0 {
		t.Error("control register should be cleared by STATUS write")
	}
}

func TestCommandControlPlainReadWrite(t *testing.T) {
	a := New(nil, nil)
	a.Write(RegCommand, 0x11)
	a.Write(RegControl, 0x22)
	if a.Read(RegCommand) != 0x11 {
		t.Error("command register did not round-trip")
	}
	if a.Read(RegControl) != 0x22 {
		t.Error("control register did not round-trip")
	}
}
