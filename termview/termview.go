// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termview emulates an RM690B0 panel on the terminal (stdout)
// using ANSI color codes.
//
// Useful while you are waiting for your AMOLED module to come by mail: it
// implements rm690b0.PanelIO, decodes the drawing-window protocol and
// renders the RGB565 pixel data it receives, so drawing code can be
// exercised without hardware.
package termview

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"periph.io/x/devices/v3/rm690b0"
)

// Opts represents the options available for the emulated panel.
type Opts struct {
	// Width and Height of the emulated panel, in pixels.
	Width  int
	Height int
	// Writer receives the ANSI output. Defaults to a colorable stdout.
	Writer io.Writer
	// Palette used for the RGB to ANSI-256 conversion.
	Palette *ansi256.Palette
}

// Dev is a terminal backed stand-in for a panel.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	width   int
	height  int

	pixels []byte // 3 bytes per pixel, row major RGB.
	// Current drawing window, inclusive, and the write cursor within it.
	x0, x1, y0, y1 int
	cx, cy         int
	brightness     byte
	buf            bytes.Buffer
}

var _ rm690b0.PanelIO = &Dev{}
var _ fmt.Stringer = &Dev{}

// Command addresses the emulator models; everything else is ignored.
const (
	cmdColumnAddressSet byte = 0x2A
	cmdRowAddressSet    byte = 0x2B
	cmdMemoryWrite      byte = 0x2C
	cmdWriteBrightness  byte = 0x51
)

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Writer
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	d := &Dev{
		w:          w,
		palette:    *p,
		width:      opts.Width,
		height:     opts.Height,
		pixels:     make([]byte, 3*opts.Width*opts.Height),
		x1:         opts.Width - 1,
		y1:         opts.Height - 1,
		brightness: 0xFF,
	}
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("termview.Dev{%dx%d}", d.width, d.height)
}

// Brightness returns the level set by the last brightness command.
func (d *Dev) Brightness() byte {
	return d.brightness
}

// SendCommand implements rm690b0.PanelIO.
func (d *Dev) SendCommand(word uint32, params []byte) error {
	switch byte(word >> 8) {
	case cmdColumnAddressSet:
		if len(params) != 4 {
			return fmt.Errorf("termview: column address set wants 4 parameters, got %d", len(params))
		}
		d.x0 = int(params[0])<<8 | int(params[1])
		d.x1 = int(params[2])<<8 | int(params[3])
	case cmdRowAddressSet:
		if len(params) != 4 {
			return fmt.Errorf("termview: row address set wants 4 parameters, got %d", len(params))
		}
		d.y0 = int(params[0])<<8 | int(params[1])
		d.y1 = int(params[2])<<8 | int(params[3])
	case cmdMemoryWrite:
		d.cx, d.cy = d.x0, d.y0
	case cmdWriteBrightness:
		if len(params) == 1 {
			d.brightness = params[0]
		}
	}
	return nil
}

// SendColor implements rm690b0.PanelIO. The data is taken as RGB565, high
// byte first, matching how the driver configures 16 bit panels.
func (d *Dev) SendColor(word uint32, data []byte) error {
	for ; len(data) >= 2; data = data[2:] {
		d.setPixel(d.cx, d.cy, uint16(data[0])<<8|uint16(data[1]))
		d.cx++
		if d.cx > d.x1 {
			d.cx = d.x0
			d.cy++
			if d.cy > d.y1 {
				// The controller RAM pointer wraps around the window.
				d.cy = d.y0
			}
		}
	}
	return d.refresh()
}

// Halt leaves the cursor on a fresh line with default colors so the
// terminal is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

func (d *Dev) setPixel(x, y int, v uint16) {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return
	}
	i := 3 * (y*d.width + x)
	d.pixels[i] = byte(v>>11) << 3
	d.pixels[i+1] = byte(v>>5&0x3F) << 2
	d.pixels[i+2] = byte(v&0x1F) << 3
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated
	// per call.
	d.buf.Reset()
	_, _ = d.buf.WriteString("\033[H")
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			i := 3 * (y*d.width + x)
			c := color.NRGBA{
				d.scale(d.pixels[i]),
				d.scale(d.pixels[i+1]),
				d.scale(d.pixels[i+2]),
				255,
			}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

// scale dims a channel by the panel brightness.
func (d *Dev) scale(v byte) byte {
	return byte(uint16(v) * uint16(d.brightness) / 255)
}
