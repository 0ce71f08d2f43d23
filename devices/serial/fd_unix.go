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

//go:build linux || darwin

package serial

import (
	"os"

	"golang.org/x/sys/unix"
)

// FDInput wraps a file descriptor-backed reader (a tty, a pty, a
// plain file) and answers the adapter's non-blocking availability
// check with a zero-timeout poll(2), the same primitive a real serial
// driver uses to avoid stalling the emulator on an idle line.
type FDInput struct {
	f *os.File
}

// NewFDInput wraps f for use as a serial adapter's input stream.
func NewFDInput(f *os.File) *FDInput {
	return &FDInput{f: f}
}

func (r *FDInput) Read(p []byte) (int, error) {
	return r.f.Read(p)
}

// Available polls the descriptor with a zero timeout so STATUS reads
// never block waiting on an idle host stream.
func (r *FDInput) Available() bool {
	fds := []unix.PollFd{{Fd: int32(r.f.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil || n == 0 {
		return false
	}
	return fds[0].Revents&unix.POLLIN != 0
}
