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

package fileio

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

type bufWriteCloser struct{ *bytes.Buffer }

func (bufWriteCloser) Close() error { return nil }

type fakeFS struct {
	files      map[string][]byte
	written    map[string]*bytes.Buffer
	failOpen   bool
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: map[string][]byte{}, written: map[string]*bytes.Buffer{}}
}

func (f *fakeFS) OpenRead(name string) (io.ReadCloser, error) {
	if f.failOpen {
		return nil, errors.New("not found")
	}
	data, ok := f.files[name]
	if !ok {
		return nil, errors.New("not found")
	}
	return nopCloser{bytes.NewReader(data)}, nil
}

func (f *fakeFS) OpenWrite(name string) (io.WriteCloser, error) {
	if f.failOpen {
		return nil, errors.New("cannot create")
	}
	buf := &bytes.Buffer{}
	f.written[name] = buf
	return bufWriteCloser{buf}, nil
}

func writeName(p *Port, name string) {
	p.Write(RegNameIndex, 0)
	for i := 0; i < len(name); i++ {
		p.Write(RegNameChar, name[i])
	}
}

func TestOpenReadSucceeds(t *testing.T) {
	fs := newFakeFS()
	fs.files["HELLO.TXT"] = []byte("hi")
	p := NewWithFS(fs)

	writeName(p, "HELLO.TXT")
	p.Write(RegStatus, CmdOpenRead)

	status := p.Read(RegStatus)
	if status&StatusOpen == 0 {
		t.Error("expected OPEN bit set")
	}
	if status&StatusError != 0 {
		t.Error("did not expect ERROR bit")
	}
}

func TestOpenReadMissingFileSetsError(t *testing.T) {
	fs := newFakeFS()
	p := NewWithFS(fs)

	writeName(p, "MISSING.TXT")
	p.Write(RegStatus, CmdOpenRead)

	status := p.Read(RegStatus)
	if status&StatusError == 0 {
		t.Error("expected ERROR bit set for a missing file")
	}
}

func TestReadDeliversBytesThenEOF(t *testing.T) {
	fs := newFakeFS()
	fs.files["A"] = []byte{0x41, 0x42}
	p := NewWithFS(fs)
	writeName(p, "A")
	p.Write(RegStatus, CmdOpenRead)

	p.Write(RegStatus, CmdRead)
	if p.Read(RegData) != 0x41 {
		t.Errorf("first byte = %02X, want 41", p.Read(RegData))
	}
	p.Write(RegStatus, CmdRead)
	if p.Read(RegData) != 0x42 {
		t.Errorf("second byte = %02X, want 42", p.Read(RegData))
	}
	p.Write(RegStatus, CmdRead)
	if p.Read(RegStatus)&StatusEOF == 0 {
		t.Error("expected EOF bit set after reading past end of file")
	}
	if p.Read(RegData) != 0 {
		t.Error("expected data 0 at EOF")
	}
}

func TestReadWithoutOpenFileSetsError(t *testing.T) {
	p := NewWithFS(newFakeFS())
	p.Write(RegStatus, CmdRead)
	if p.Read(RegStatus)&StatusError == 0 {
		t.Error("expected ERROR bit when READ with no open file")
	}
}

func TestOpenWriteThenWriteBytes(t *testing.T) {
	fs := newFakeFS()
	p := NewWithFS(fs)
	writeName(p, "OUT.TXT")
	p.Write(RegStatus, CmdOpenWrite)

	p.Write(RegData, 'H')
	p.Write(RegStatus, CmdWrite)
	p.Write(RegData, 'I')
	p.Write(RegStatus, CmdWrite)

	if fs.written["OUT.TXT"].String() != "HI" {
		t.Errorf("written content = %q, want HI", fs.written["OUT.TXT"].String())
	}
}

func TestCloseResetsStatusToReadyOnly(t *testing.T) {
	fs := newFakeFS()
	fs.files["A"] = []byte("x")
	p := NewWithFS(fs)
	writeName(p, "A")
	p.Write(RegStatus, CmdOpenRead)
	p.Write(RegStatus, CmdClose)

	if p.Read(RegStatus) != StatusReady {
		t.Errorf("status after close = %02X, want %02X", p.Read(RegStatus), StatusReady)
	}
}

func TestResetClearsNameBufferAndIndex(t *testing.T) {
	p := NewWithFS(newFakeFS())
	writeName(p, "SOMETHING")
	p.Write(RegStatus, CmdReset)

	if p.Read(RegNameIndex) != 0 {
		t.Error("expected name index cleared by RESET")
	}
	if p.Read(RegStatus) != StatusReady {
		t.Error("expected status READY-only after RESET")
	}
	if p.Read(RegNameChar) != 0 {
		t.Error("expected name buffer cleared by RESET")
	}
}

func TestNameIndexAndCharRoundTrip(t *testing.T) {
	p := NewWithFS(newFakeFS())
	p.Write(RegNameIndex, 5)
	p.Write(RegNameChar, 'Z')
	if p.Read(RegNameIndex) != 6 {
		t.Errorf("name index = %d, want 6 (auto-increment after write)", p.Read(RegNameIndex))
	}
	p.Write(RegNameIndex, 5)
	if p.Read(RegNameChar) != 'Z' {
		t.Error("NAMECHAR read did not return the byte written at that index")
	}
}
