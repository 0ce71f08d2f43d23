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

// Package config carries the configuration options the core recognizes:
// the 6502/65C02 variant selector and the host tick pacing duration.
package config

import "time"

// Variant selects which decimal-mode overflow behavior the CPU emulates.
type Variant int

const (
	// NMOS6502 forces the V flag clear after ADC/SBC in decimal mode,
	// matching the original NMOS 6502.
	NMOS6502 Variant = iota
	// CMOS65C02 computes V in decimal mode the same way it does in
	// binary mode (signed overflow of the binary result).
	CMOS65C02
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case NMOS6502:
		return "NMOS_6502"
	case CMOS65C02:
		return "CMOS_65C02"
	default:
		return "UNKNOWN"
	}
}

// Config holds the host-supplied options the core consults.
type Config struct {
	// Variant selects the V-flag behavior in decimal mode.
	Variant Variant
	// TickDuration is how long the tick callback may sleep to pace
	// execution. Zero means no pacing.
	TickDuration time.Duration
}

// Default returns the zero-value configuration: NMOS_6502, no pacing.
func Default() Config {
	return Config{Variant: NMOS6502, TickDuration: 0}
}
