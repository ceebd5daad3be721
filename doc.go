// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rm690b0 controls a Raydium RM690B0 AMOLED display controller.
//
// The RM690B0 takes each command as a four byte word (control byte, 0x00,
// command address, 0x00) followed by parameter bytes, with bulk pixel data
// introduced by a separate control byte. This driver builds those words,
// runs the vendor bring-up sequence with its mandatory settle delays, and
// manages the panel's RESET and EN supply lines. The byte transport is
// abstracted behind the PanelIO interface; NewSPI provides an
// implementation on top of a periph.io spi.Port.
//
// # Hardware connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → panel supply (often switched through EN)
//	SCLK        → SPI clock
//	SDA/MOSI    → SPI data
//	CS          → SPI chip select
//	RST         → optional: GPIO for hardware reset
//	EN          → optional: GPIO powering the AMOLED rail
//
// # Basic usage
//
//	p, _ := spireg.Open("")
//	io, _ := rm690b0.NewSPI(p)
//	dev, _ := rm690b0.New(io, &rm690b0.Opts{
//		BitsPerPixel: 16,
//		ResetPin:     gpioreg.ByName("GPIO4"),
//		Vendor:       &rm690b0.VendorConfig{EnablePin: gpioreg.ByName("GPIO5")},
//	})
//	defer dev.Halt()
//	_ = dev.Reset()
//	_ = dev.Init()
//	_ = dev.DrawBitmap(0, 0, 100, 100, pixels)
//
// Supported pixel formats are 3, 8 (color or grayscale), 16, 18 and 24
// bits per pixel. At 16 bits per pixel the controller is configured to
// take RGB565 high byte first.
//
// All operations block the calling goroutine, including the 900ms hardware
// reset and per-command settle delays of up to 120ms. The driver provides
// no locking; callers must serialize access to a Dev.
package rm690b0
