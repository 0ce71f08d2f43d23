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

// Package fileio implements a command-register-driven file I/O port:
// firmware writes a filename byte-at-a-time into a name buffer, then
// dispatches open/read/write/close commands through a single status
// register.
package fileio

import (
	"io"
	"os"
)

// Register offsets within the port's four-byte window.
const (
	RegStatus    uint16 = 0x0 // read: status: write: command
	RegData      uint16 = 0x1
	RegNameIndex uint16 = 0x2
	RegNameChar  uint16 = 0x3
)

// Commands dispatched through a write to RegStatus.
const (
	CmdReset     uint8 = 0x00
	CmdOpenRead  uint8 = 0x01
	CmdOpenWrite uint8 = 0x02
	CmdRead      uint8 = 0x03
	CmdWrite     uint8 = 0x04
	CmdClose     uint8 = 0x05
)

// Status bits.
const (
	StatusOpen  uint8 = 1 << 0
	StatusEOF   uint8 = 1 << 1
	StatusError uint8 = 1 << 2
	StatusReady uint8 = 1 << 7
)

// nameBufSize bounds the filename buffer; firmware addresses it with
// an 8-bit index register, so any size up to 256 is representable.
const nameBufSize = 64

// FS abstracts the host filesystem so the port can be driven by fakes
// in tests without touching disk.
type FS interface {
	OpenRead(name string) (io.ReadCloser, error)
	OpenWrite(name string) (io.WriteCloser, error)
}

// osFS is the default FS, backed by the real filesystem.
type osFS struct{}

func (osFS) OpenRead(name string) (io.ReadCloser, error)  { return os.Open(name) }
func (osFS) OpenWrite(name string) (io.WriteCloser, error) { return os.Create(name) }

// Port is one file-I/O port instance.
type Port struct {
	fs FS

	reader io.ReadCloser
	writer io.WriteCloser

	status    uint8
	data      uint8
	nameIndex uint8
	nameBuf   [nameBufSize]byte
}

// New returns a port backed by the real filesystem.
func New() *Port { return NewWithFS(osFS{}) }

// NewWithFS returns a port backed by a custom FS, for tests.
func NewWithFS(fs FS) *Port {
	p := &Port{fs: fs}
	p.reset()
	return p
}

// Tick is a no-op: the file-I/O port has no clock-driven behavior.
func (p *Port) Tick() {}

// Read implements bus.Device.
func (p *Port) Read(offset uint16) uint8 {
	switch offset {
	case RegStatus:
		return p.status
	case RegData:
		return p.data
	case RegNameIndex:
		return p.nameIndex
	case RegNameChar:
		return p.nameBuf[p.nameIndex%nameBufSize]
	default:
		return 0xFF
	}
}

// Write implements bus.Device.
func (p *Port) Write(offset uint16, v uint8) {
	switch offset {
	case RegStatus:
		p.dispatch(v)
	case RegData:
		p.data = v
	case RegNameIndex:
		p.nameIndex = v
	case RegNameChar:
		p.nameBuf[p.nameIndex%nameBufSize] = v
		p.nameIndex++
	}
}

func (p *Port) dispatch(cmd uint8) {
	switch cmd {
	case CmdReset:
		p.reset()
	case CmdOpenRead:
		p.closeHandle()
		name := p.filename()
		r, err := p.fs.OpenRead(name)
		if err != nil {
			p.status = StatusReady | StatusError
			return
		}
		p.reader = r
		p.status = StatusReady | StatusOpen
	case CmdOpenWrite:
		p.closeHandle()
		name := p.filename()
		w, err := p.fs.OpenWrite(name)
		if err != nil {
			p.status = StatusReady | StatusError
			return
		}
		p.writer = w
		p.status = StatusReady | StatusOpen
	case CmdRead:
		p.doRead()
	case CmdWrite:
		p.doWrite()
	case CmdClose:
		p.closeHandle()
		p.status = StatusReady
	}
}

func (p *Port) doRead() {
	if p.reader == nil {
		p.status |= StatusError
		return
	}
	buf := make([]byte, 1)
	n, err := p.reader.Read(buf)
	if n == 0 || err == io.EOF {
		p.status |= StatusEOF
		p.data = 0
		return
	}
	if err != nil {
		p.status |= StatusError
		return
	}
	p.data = buf[0]
}

func (p *Port) doWrite() {
	if p.writer == nil {
		p.status |= StatusError
		return
	}
	if _, err := p.writer.Write([]byte{p.data}); err != nil {
		p.status |= StatusError
	}
}

func (p *Port) filename() string {
	n := p.nameIndex
	if int(n) > nameBufSize {
		n = nameBufSize
	}
	return string(p.nameBuf[:n])
}

func (p *Port) closeHandle() {
	if p.reader != nil {
		p.reader.Close()
		p.reader = nil
	}
	if p.writer != nil {
		p.writer.Close()
		p.writer = nil
	}
}

func (p *Port) reset() {
	p.closeHandle()
	p.status = StatusReady
	p.nameIndex = 0
	p.nameBuf = [nameBufSize]byte{}
}
