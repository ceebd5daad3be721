// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rm690b0

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"
)

// initOutputPin configures pin as a digital output. A nil pin means the
// line is not wired and the call is a no-op.
//
// On failure every pin the device holds is released first, so a
// half-configured pin set never lingers.
func (d *Dev) initOutputPin(pin gpio.PinOut, name string) error {
	if pin == nil {
		return nil
	}
	if err := pin.Out(gpio.Low); err != nil {
		d.releasePins()
		return fmt.Errorf("rm690b0: failed to configure %s pin as output: %w", name, err)
	}
	return nil
}

// pinOut drives an already configured pin. A no-op for unwired pins.
func pinOut(pin gpio.PinOut, l gpio.Level) error {
	if pin == nil {
		return nil
	}
	return pin.Out(l)
}

// releasePins returns both GPIO lines to an unconfigured state. It is
// idempotent; release failures are logged rather than returned because
// there is nothing a caller can do about them.
func (d *Dev) releasePins() {
	releasePin(d.rst, "RESET")
	releasePin(d.en, "EN")
}

func releasePin(pin gpio.PinOut, name string) {
	if pin == nil {
		return
	}
	if err := pin.Halt(); err != nil {
		log.Printf("rm690b0: failed to release %s pin: %v", name, err)
	}
}
