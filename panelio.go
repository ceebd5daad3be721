// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rm690b0

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// PanelIO moves encoded command words and pixel data to the controller.
//
// Implementations must transmit in the order the calls are made; the
// driver issues multi-command sequences that the controller interprets as
// a unit.
type PanelIO interface {
	// SendCommand transmits one encoded command word followed by its
	// parameter bytes, if any.
	SendCommand(word uint32, params []byte) error
	// SendColor transmits the bulk color command word followed by packed
	// pixel data.
	SendColor(word uint32, data []byte) error
}

// SPIPanelIO implements PanelIO over an SPI port.
type SPIPanelIO struct {
	c         conn.Conn
	maxTxSize int
}

var _ PanelIO = &SPIPanelIO{}

// NewSPI returns a PanelIO that reaches the controller through p.
func NewSPI(p spi.Port) (*SPIPanelIO, error) {
	c, err := p.Connect(40*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("rm690b0: failed to connect over spi: %w", err)
	}

	// Get the maxTxSize from the conn if it implements the conn.Limits
	// interface, otherwise use 4096 bytes.
	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize == 0 {
		maxTxSize = 4096 // Use a conservative default.
	}

	return &SPIPanelIO{c: c, maxTxSize: maxTxSize}, nil
}

func (s *SPIPanelIO) String() string {
	return fmt.Sprintf("SPIPanelIO{%s}", s.c)
}

// SendCommand implements PanelIO. The command word and its parameters go
// out in a single transaction.
func (s *SPIPanelIO) SendCommand(word uint32, params []byte) error {
	buf := make([]byte, 4, 4+len(params))
	binary.BigEndian.PutUint32(buf, word)
	return s.c.Tx(append(buf, params...), nil)
}

// SendColor implements PanelIO. Pixel data is usually far larger than the
// bus accepts in one transfer, so it is streamed in maxTxSize chunks after
// the command word.
func (s *SPIPanelIO) SendColor(word uint32, data []byte) error {
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], word)
	if err := s.c.Tx(hdr[:], nil); err != nil {
		return err
	}
	for len(data) > 0 {
		n := len(data)
		if n > s.maxTxSize {
			n = s.maxTxSize
		}
		if err := s.c.Tx(data[:n], nil); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
