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

// Command v6502c wires a CPU core to the recommended device map and
// runs a raw binary image. It is a thin host, not a monitor: no
// Wozmon parsing, no REPL, no line editing.
package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"gopkg.in/urfave/cli.v2"

	"github.com/vaelen/v6502c/bus"
	"github.com/vaelen/v6502c/config"
	"github.com/vaelen/v6502c/cpu"
	"github.com/vaelen/v6502c/devices/fileio"
	"github.com/vaelen/v6502c/devices/serial"
	"github.com/vaelen/v6502c/devices/via"
)

// Recommended host memory map.
const (
	serial1Base, serial1End uint16 = 0xC010, 0xC013
	serial2Base, serial2End uint16 = 0xC020, 0xC023
	viaBase, viaEnd         uint16 = 0xC030, 0xC03F
	fileioBase, fileioEnd   uint16 = 0xC040, 0xC04F
	romBase, romEnd         uint16 = 0xD000, 0xFFFF
)

func main() {
	app := &cli.App{
		Name:    "v6502c",
		Usage:   "run a raw 6502/65C02 binary image against an emulated bus",
		Version: "v0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "image",
				Aliases: []string{"i"},
				Usage:   "path to a raw binary memory image",
			},
			&cli.StringFlag{
				Name:  "load-addr",
				Usage: "hex address to load the image at",
				Value: "0x0200",
			},
			&cli.StringFlag{
				Name:  "variant",
				Usage: "cpu variant: nmos6502 or cmos65c02",
				Value: "nmos6502",
			},
			&cli.DurationFlag{
				Name:  "tick-duration",
				Usage: "host sleep duration per tick; 0 disables pacing",
				Value: 0,
			},
			&cli.BoolFlag{
				Name:  "protect-rom",
				Usage: "write-protect the recommended ROM range 0xD000-0xFFFF",
				Value: true,
			},
		},
		Action: run,
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	imagePath := c.String("image")
	if imagePath == "" {
		cli.ShowAppHelp(c)
		return cli.Exit("", 86)
	}

	loadAddr, err := parseHexAddr(c.String("load-addr"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid --load-addr: %v", err), 1)
	}

	variant, err := parseVariant(c.String("variant"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cfg := config.Config{Variant: variant, TickDuration: c.Duration("tick-duration")}

	b := bus.New()
	wireDevices(b)

	image, err := os.ReadFile(imagePath)
	if err != nil {
		return cli.Exit(fmt.Sprintf("reading image: %v", err), 1)
	}
	b.LoadAt(loadAddr, image) // bypasses write protection, so order vs. Protect below doesn't matter

	if c.Bool("protect-rom") {
		b.Protect(romBase, romEnd)
	}

	machine := cpu.New(b, cfg.Variant)
	machine.Reset()

	for !machine.Halted {
		machine.Step()
		if cfg.TickDuration > 0 {
			time.Sleep(cfg.TickDuration)
		}
	}
	return nil
}

func wireDevices(b *bus.Bus) {
	s1 := serial.New(serial.NewFDInput(os.Stdin), os.Stdout)
	s2 := serial.New(nil, nil)
	v := via.New()
	f := fileio.New()

	b.Attach(serial1Base, serial1End, s1)
	b.Attach(serial2Base, serial2End, s2)
	b.Attach(viaBase, viaEnd, v)
	b.Attach(fileioBase, fileioEnd, f)
}

func parseHexAddr(s string) (uint16, error) {
	v, err := strconv.ParseUint(trimHexPrefix(s), 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

func trimHexPrefix(s string) string {
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func parseVariant(s string) (config.Variant, error) {
	switch s {
	case "nmos6502", "nmos", "6502":
		return config.NMOS6502, nil
	case "cmos65c02", "cmos", "65c02":
		return config.CMOS65C02, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", s)
	}
}
