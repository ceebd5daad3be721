// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rm690b0

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/spi/spitest"
)

func TestSPISendCommand(t *testing.T) {
	record := &spitest.Record{}
	io, err := NewSPI(record)
	if err != nil {
		t.Fatalf("NewSPI() failed: %v", err)
	}

	if err := io.SendCommand(cmdWord(cmdMemoryAccessCtrl), []byte{0x60}); err != nil {
		t.Fatalf("SendCommand() failed: %v", err)
	}
	if err := io.SendCommand(cmdWord(cmdSleepOut), nil); err != nil {
		t.Fatalf("SendCommand() failed: %v", err)
	}

	want := []conntest.IO{
		{W: []byte{0x02, 0x00, 0x36, 0x00, 0x60}},
		{W: []byte{0x02, 0x00, 0x11, 0x00}},
	}
	if diff := cmp.Diff(record.Ops, want); diff != "" {
		t.Errorf("SPI operations difference (-got +want):\n%s", diff)
	}
}

func TestSPISendColorChunks(t *testing.T) {
	record := &spitest.Record{}
	io, err := NewSPI(record)
	if err != nil {
		t.Fatalf("NewSPI() failed: %v", err)
	}
	// Force small transfers to exercise the chunking.
	io.maxTxSize = 8

	data := bytes.Repeat([]byte{0x5A}, 20)
	if err := io.SendColor(pixelWriteWord, data); err != nil {
		t.Fatalf("SendColor() failed: %v", err)
	}

	want := []conntest.IO{
		{W: []byte{0x32, 0x00, 0x2C, 0x00}},
		{W: data[:8]},
		{W: data[8:16]},
		{W: data[16:]},
	}
	if diff := cmp.Diff(record.Ops, want); diff != "" {
		t.Errorf("SPI operations difference (-got +want):\n%s", diff)
	}
}

func TestSPIString(t *testing.T) {
	io, err := NewSPI(&spitest.Record{})
	if err != nil {
		t.Fatalf("NewSPI() failed: %v", err)
	}
	if got := io.String(); got == "" {
		t.Error("String() returned an empty string")
	}
}
