// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rm690b0

import (
	"fmt"
	"time"
)

// Command addresses (MIPI DCS user command set as implemented by the
// RM690B0).
const (
	cmdSleepIn           byte = 0x10
	cmdSleepOut          byte = 0x11
	cmdInvertOff         byte = 0x20
	cmdInvertOn          byte = 0x21
	cmdDisplayOff        byte = 0x28
	cmdDisplayOn         byte = 0x29
	cmdColumnAddressSet  byte = 0x2A
	cmdRowAddressSet     byte = 0x2B
	cmdMemoryWrite       byte = 0x2C
	cmdTearingEffectOn   byte = 0x35
	cmdMemoryAccessCtrl  byte = 0x36
	cmdPixelFormat       byte = 0x3A
	cmdWriteBrightness   byte = 0x51
	cmdPixelFormatOption byte = 0x80
	cmdSetDisplayMode    byte = 0xC2
	cmdModeSwitch        byte = 0xFE
)

// Vendor commands used during bring-up. They appear in LilyGo's init
// sequence but not in the RM690B0 datasheet; the panel stays dark without
// them.
const (
	cmdVendorSPIWriteRAM byte = 0x24 // "SPI write RAM"
	cmdVendorSwire       byte = 0x5B // "SWIRE FOR BV6804"
)

// The controller expects each command as four bytes on the wire: a control
// byte, 0x00, the command address, 0x00. Control byte 0x02 tells the
// RM690B0 to expect parameters on a single data line even in quad SPI
// mode; 0x32 introduces bulk pixel data following a memory write.
const (
	commandPrefix uint32 = 0x02000000
	pixelPrefix   uint32 = 0x32000000
)

// pixelWriteWord is the command word that precedes bulk color data. It is
// never used for ordinary commands.
const pixelWriteWord = pixelPrefix | uint32(cmdMemoryWrite)<<8

// swapRGB565Bytes makes the controller take RGB565 pixels high byte first.
const swapRGB565Bytes byte = 0x10

// command is an encoded command word with its parameter bytes and the
// settle delay the controller needs after the transfer completes.
type command struct {
	word   uint32
	params []byte
	delay  time.Duration
}

func newCommand(addr byte, params ...byte) command {
	return command{
		word:   commandPrefix | uint32(addr)<<8,
		params: params,
		delay:  settleDelay(addr),
	}
}

// settleDelay returns the mandatory wait after addr has been sent, before
// the controller accepts the next command.
func settleDelay(addr byte) time.Duration {
	switch addr {
	case cmdSleepIn:
		return 5 * time.Millisecond
	case cmdSleepOut:
		return 120 * time.Millisecond
	case cmdDisplayOn, cmdSetDisplayMode:
		return 10 * time.Millisecond
	default:
		return 0
	}
}

// Interface pixel format codes (COLMOD parameter).
const (
	pixelFormat3bpp     byte = 0b00110011
	pixelFormat8bppGray byte = 0b00010001
	pixelFormat8bpp     byte = 0b00100010
	pixelFormat16bpp    byte = 0b01010101
	pixelFormat18bpp    byte = 0b01100110
	pixelFormat24bpp    byte = 0b01110111
)

// pixelFormat maps a bit depth and grayscale flag to the controller's
// COLMOD code. Grayscale is only available at 8 bits per pixel.
func pixelFormat(bpp int, grayscale bool) (byte, error) {
	if grayscale {
		if bpp != 8 {
			return 0, fmt.Errorf("rm690b0: %w: grayscale requires 8 bits per pixel, got %d", ErrUnsupportedFormat, bpp)
		}
		return pixelFormat8bppGray, nil
	}
	switch bpp {
	case 3:
		return pixelFormat3bpp, nil
	case 8:
		return pixelFormat8bpp, nil
	case 16:
		return pixelFormat16bpp, nil
	case 18:
		return pixelFormat18bpp, nil
	case 24:
		return pixelFormat24bpp, nil
	default:
		return 0, fmt.Errorf("rm690b0: %w: %d bits per pixel", ErrUnsupportedFormat, bpp)
	}
}

// Scan direction codes (MADCTL upper nibble). 0x40 and 0x50 make the panel
// scan garbage, so mirroring X without swapped axes has no usable code.
const (
	scanNormal  byte = 0x00
	scanMirrorY byte = 0x10
	scanSwapXY  byte = 0x20
	scanRotCCW  byte = 0x30 // swap + mirror X, rotate -90°
	scanRotCW   byte = 0x60 // swap + mirror Y, rotate +90°
)

// madctlBGR selects BGR channel order; RGB is 0.
const madctlBGR byte = 0x08

// scanDirection returns the controller's code for the requested
// orientation. Mirror X alone, and mirror X+Y without swapped axes, are
// not supported by the hardware and collapse to the default code.
func scanDirection(swapXY, mirrorX, mirrorY bool) byte {
	switch {
	case swapXY && mirrorX:
		return scanRotCCW
	case swapXY && mirrorY:
		return scanRotCW
	case swapXY:
		return scanSwapXY
	case mirrorY:
		return scanMirrorY
	default:
		return scanNormal
	}
}
