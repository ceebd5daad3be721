// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rm690b0

import (
	"errors"
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// ErrUnsupportedFormat is returned by Init when the configured bit depth
// and grayscale flag have no matching controller pixel format.
var ErrUnsupportedFormat = errors.New("unsupported pixel format")

// Order is the color channel order of pixel data sent to the panel.
type Order int

// Valid Order.
const (
	RGB Order = iota
	BGR
)

// VendorConfig carries board specific wiring that is not part of the
// generic panel configuration.
type VendorConfig struct {
	// EnablePin powers the AMOLED supply rail when driven high. Leave nil
	// when the board powers the panel permanently.
	EnablePin gpio.PinOut
	// Grayscale selects the 8-bit grayscale pixel format. Only valid
	// together with BitsPerPixel == 8.
	Grayscale bool
}

// Opts is the panel configuration.
type Opts struct {
	// BitsPerPixel is one of 3, 8, 16, 18 or 24.
	BitsPerPixel int
	// Order is the color channel order of the pixel data, RGB by default.
	Order Order
	// ResetPin is the controller's RESET line. Leave nil when not wired.
	ResetPin gpio.PinOut
	// Vendor is optional board specific wiring. Without it (or without
	// its EnablePin) the caller must power the panel before Init.
	Vendor *VendorConfig
}

// Dev is an open handle to one RM690B0 driven panel.
//
// Operations on a Dev are synchronous and blocking, including the fixed
// settle delays some commands require. Callers must serialize access;
// the driver provides no locking.
type Dev struct {
	io PanelIO

	rst gpio.PinOut
	en  gpio.PinOut

	bpp        int
	grayscale  bool
	order      Order
	swapXY     bool
	mirrorX    bool
	mirrorY    bool
	xGap       int
	yGap       int
	brightness byte
}

var _ conn.Resource = &Dev{}

// New opens a handle to a panel reachable through io and configures its
// GPIO lines. The controller itself is left untouched; call Reset and Init
// to bring the panel up.
func New(io PanelIO, opts *Opts) (*Dev, error) {
	if io == nil {
		return nil, errors.New("rm690b0: io must not be nil")
	}
	if opts == nil {
		return nil, errors.New("rm690b0: opts must not be nil")
	}

	d := &Dev{
		io:    io,
		rst:   opts.ResetPin,
		bpp:   opts.BitsPerPixel,
		order: opts.Order,
	}

	if opts.Vendor == nil {
		log.Printf("rm690b0: no vendor config; caller must power up the panel before Init")
	} else {
		d.en = opts.Vendor.EnablePin
		if d.en == nil {
			log.Printf("rm690b0: no EN pin in vendor config; caller must power up the panel before Init")
		}
		d.grayscale = opts.Vendor.Grayscale
	}

	// If a new pin is added here it must also be released in releasePins.
	if err := d.initOutputPin(d.rst, "RESET"); err != nil {
		return nil, err
	}
	if err := d.initOutputPin(d.en, "EN"); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("rm690b0.Dev{%v, %d bpp}", d.io, d.bpp)
}

// Halt implements conn.Resource. It releases both GPIO lines; the handle
// must not be used afterwards.
func (d *Dev) Halt() error {
	d.releasePins()
	return nil
}

// send transmits one command and waits out its settle delay. A transport
// failure returns immediately, without the delay.
func (d *Dev) send(c command) error {
	if err := d.io.SendCommand(c.word, c.params); err != nil {
		return err
	}
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return nil
}

func (d *Dev) sendCommand(addr byte, params ...byte) error {
	return d.send(newCommand(addr, params...))
}

const resetPhase = 300 * time.Millisecond

// Reset runs the hardware reset sequence: RESET high, low, high, with a
// 300ms settle after each edge. Without a reset pin wired the sequence
// degenerates to a plain 900ms delay.
func (d *Dev) Reset() error {
	for _, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
		if err := pinOut(d.rst, l); err != nil {
			return fmt.Errorf("rm690b0: reset failed: %w", err)
		}
		time.Sleep(resetPhase)
	}
	return nil
}

// bringUp is the fixed command sequence that wakes the controller. It is
// based on LilyGo's vendor code; see the vendor command notes in
// commands.go.
func bringUp() []command {
	return []command{
		newCommand(cmdModeSwitch, 0x20),        // Manufacture command set page.
		newCommand(cmdVendorSPIWriteRAM, 0x80), // SPI write RAM.
		newCommand(cmdVendorSwire, 0x2E),       // SWIRE for BV6804.
		newCommand(cmdModeSwitch, 0x00),        // Back to the user command set.
		newCommand(cmdSetDisplayMode, 0x00),    // Internal timing.
		newCommand(cmdTearingEffectOn, 0x00),
		newCommand(cmdSleepOut),
		newCommand(cmdDisplayOn),
	}
}

// Init powers up and configures the panel: bring-up sequence, orientation,
// pixel format and maximum brightness. Commands already sent are not
// rolled back on failure, so a failed Init leaves the controller in an
// indeterminate state; run Reset before retrying.
func (d *Dev) Init() error {
	if d.en != nil {
		if err := pinOut(d.en, gpio.High); err != nil {
			return fmt.Errorf("rm690b0: failed to power up panel: %w", err)
		}
		// The controller needs time to wake before accepting commands.
		time.Sleep(25 * time.Millisecond)
	}

	for _, c := range bringUp() {
		if err := d.send(c); err != nil {
			return fmt.Errorf("rm690b0: bring-up command %#010x failed: %w", c.word, err)
		}
	}

	if err := d.updateOrientation(); err != nil {
		return err
	}

	pf, err := pixelFormat(d.bpp, d.grayscale)
	if err != nil {
		return err
	}
	if err := d.sendCommand(cmdPixelFormat, pf); err != nil {
		return err
	}
	if d.bpp == 16 {
		if err := d.sendCommand(cmdPixelFormatOption, swapRGB565Bytes); err != nil {
			return err
		}
	}

	return d.SetBrightness(0xFF)
}

// updateOrientation re-sends MADCTL from the current swap/mirror flags and
// color order.
func (d *Dev) updateOrientation() error {
	param := scanDirection(d.swapXY, d.mirrorX, d.mirrorY)
	if d.order == BGR {
		param |= madctlBGR
	}
	return d.sendCommand(cmdMemoryAccessCtrl, param)
}

// SwapXY exchanges the panel's X and Y axes.
func (d *Dev) SwapXY(swap bool) error {
	d.swapXY = swap
	return d.updateOrientation()
}

// Mirror flips the scan direction along either axis. Mirroring X on its
// own, or X and Y together without swapped axes, has no working controller
// code and falls back to the default orientation.
func (d *Dev) Mirror(x, y bool) error {
	d.mirrorX = x
	d.mirrorY = y
	return d.updateOrientation()
}

// SetGap stores pixel offsets added to every DrawBitmap window, for panels
// whose visible area does not start at the controller's origin. No command
// is sent.
func (d *Dev) SetGap(x, y int) {
	d.xGap = x
	d.yGap = y
}

// Invert turns color inversion on or off.
func (d *Dev) Invert(invert bool) error {
	if invert {
		return d.sendCommand(cmdInvertOn)
	}
	return d.sendCommand(cmdInvertOff)
}

// Display switches the display output on or off. The controller keeps its
// memory and configuration either way.
func (d *Dev) Display(on bool) error {
	if on {
		return d.sendCommand(cmdDisplayOn)
	}
	return d.sendCommand(cmdDisplayOff)
}

// Sleep puts the controller into or out of sleep mode.
func (d *Dev) Sleep(sleeping bool) error {
	if sleeping {
		return d.sendCommand(cmdSleepIn)
	}
	return d.sendCommand(cmdSleepOut)
}

// Brightness returns the level passed to the last SetBrightness.
func (d *Dev) Brightness() byte {
	return d.brightness
}

// SetBrightness sets the panel brightness, 0x00 to 0xFF. The command is
// sent even when the level is unchanged.
func (d *Dev) SetBrightness(level byte) error {
	d.brightness = level
	return d.sendCommand(cmdWriteBrightness, level)
}

// DrawBitmap writes packed pixel data to the window (x0,y0)-(x1,y1). The
// end coordinates are excluded. pixels must be packed for the configured
// pixel format and cover at least (x1-x0)×(y1-y0)×bpp/8 bytes.
func (d *Dev) DrawBitmap(x0, y0, x1, y1 int, pixels []byte) error {
	x0 += d.xGap
	x1 += d.xGap - 1 // The controller window includes the end column.
	y0 += d.yGap
	y1 += d.yGap - 1

	window := []command{
		newCommand(cmdColumnAddressSet, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)),
		newCommand(cmdRowAddressSet, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)),
		newCommand(cmdMemoryWrite),
	}
	for _, c := range window {
		if err := d.send(c); err != nil {
			return err
		}
	}

	n := (x1 - x0 + 1) * (y1 - y0 + 1) * d.bpp / 8
	return d.io.SendColor(pixelWriteWord, pixels[:n])
}
