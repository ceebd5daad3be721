// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rm690b0

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestNewCommandEncoding(t *testing.T) {
	for _, tc := range []struct {
		name   string
		addr   byte
		params []byte
		want   command
	}{
		{
			name: "sleep out",
			addr: cmdSleepOut,
			want: command{word: 0x02001100, delay: 120 * time.Millisecond},
		},
		{
			name:   "madctl with parameter",
			addr:   cmdMemoryAccessCtrl,
			params: []byte{0x60},
			want:   command{word: 0x02003600, params: []byte{0x60}},
		},
		{
			name:   "column address set",
			addr:   cmdColumnAddressSet,
			params: []byte{0x00, 0x10, 0x01, 0xFF},
			want:   command{word: 0x02002A00, params: []byte{0x00, 0x10, 0x01, 0xFF}},
		},
		{
			name: "display on",
			addr: cmdDisplayOn,
			want: command{word: 0x02002900, delay: 10 * time.Millisecond},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := newCommand(tc.addr, tc.params...)
			if diff := cmp.Diff(got, tc.want, cmpopts.EquateEmpty(), cmp.AllowUnexported(command{})); diff != "" {
				t.Errorf("newCommand() difference (-got +want):\n%s", diff)
			}

			// Encoding is a pure function.
			again := newCommand(tc.addr, tc.params...)
			if diff := cmp.Diff(got, again, cmpopts.EquateEmpty(), cmp.AllowUnexported(command{})); diff != "" {
				t.Errorf("newCommand() not deterministic (-first +second):\n%s", diff)
			}
		})
	}
}

func TestPixelWriteWord(t *testing.T) {
	if pixelWriteWord != 0x32002C00 {
		t.Errorf("pixelWriteWord = %#010x, want 0x32002C00", pixelWriteWord)
	}
}

func TestSettleDelay(t *testing.T) {
	want := map[byte]time.Duration{
		cmdSleepIn:        5 * time.Millisecond,
		cmdSleepOut:       120 * time.Millisecond,
		cmdDisplayOn:      10 * time.Millisecond,
		cmdSetDisplayMode: 10 * time.Millisecond,
	}
	for addr := 0; addr <= 0xFF; addr++ {
		if got := settleDelay(byte(addr)); got != want[byte(addr)] {
			t.Errorf("settleDelay(%#02x) = %v, want %v", addr, got, want[byte(addr)])
		}
	}
}

func TestPixelFormat(t *testing.T) {
	for _, tc := range []struct {
		name      string
		bpp       int
		grayscale bool
		want      byte
		wantErr   bool
	}{
		{name: "3bpp", bpp: 3, want: 0x33},
		{name: "8bpp color", bpp: 8, want: 0x22},
		{name: "8bpp grayscale", bpp: 8, grayscale: true, want: 0x11},
		{name: "16bpp", bpp: 16, want: 0x55},
		{name: "18bpp", bpp: 18, want: 0x66},
		{name: "24bpp", bpp: 24, want: 0x77},
		{name: "12bpp unsupported", bpp: 12, wantErr: true},
		{name: "grayscale at 16bpp", bpp: 16, grayscale: true, wantErr: true},
		{name: "grayscale at 3bpp", bpp: 3, grayscale: true, wantErr: true},
		{name: "grayscale at 24bpp", bpp: 24, grayscale: true, wantErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pixelFormat(tc.bpp, tc.grayscale)
			if tc.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("pixelFormat(%d, %t) error = %v, want ErrUnsupportedFormat", tc.bpp, tc.grayscale, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("pixelFormat(%d, %t) failed: %v", tc.bpp, tc.grayscale, err)
			}
			if got != tc.want {
				t.Errorf("pixelFormat(%d, %t) = %#02x, want %#02x", tc.bpp, tc.grayscale, got, tc.want)
			}
		})
	}
}

func TestScanDirection(t *testing.T) {
	// All 8 flag combinations. Mirror X alone and mirror X+Y without
	// swapped axes collapse to the default code; that is a hardware
	// limitation, not a bug.
	for _, tc := range []struct {
		swapXY, mirrorX, mirrorY bool
		want                     byte
	}{
		{false, false, false, scanNormal},
		{false, true, false, scanNormal},
		{false, false, true, scanMirrorY},
		{false, true, true, scanNormal},
		{true, false, false, scanSwapXY},
		{true, true, false, scanRotCCW},
		{true, false, true, scanRotCW},
		{true, true, true, scanRotCCW},
	} {
		if got := scanDirection(tc.swapXY, tc.mirrorX, tc.mirrorY); got != tc.want {
			t.Errorf("scanDirection(%t, %t, %t) = %#02x, want %#02x",
				tc.swapXY, tc.mirrorX, tc.mirrorY, got, tc.want)
		}
	}
}
