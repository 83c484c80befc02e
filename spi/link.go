// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

package spi

import (
	"sync"
	"time"

	"github.com/warthog618/thermodisp/line"
)

// Link is a write-only serial link framed by an active low chip select,
// such as the LOAD/CS input of a MAX7219.
//
// There is no acknowledgement from the device, so writes cannot fail.
type Link struct {
	mu sync.Mutex
	// time between clock edges, and the chip select setup and hold time.
	Tclk  time.Duration
	lines line.Setter
}

// NewLink creates a Link over the given lines and drives them to their idle
// levels: chip select high, clock and data low.
func NewLink(lines line.Setter, tclk time.Duration) *Link {
	lines.SetLine(line.ChipSelect, line.High)
	lines.SetLine(line.Clock, line.Low)
	lines.SetLine(line.Data, line.Low)
	return &Link{Tclk: tclk, lines: lines}
}

// ClockOut clocks out a data bit.
// The device samples data on the rising edge.
// Assumes clock starts low, and leaves it low.
func (l *Link) ClockOut(b line.Level) {
	l.lines.SetLine(line.Data, b)
	time.Sleep(l.Tclk)
	l.lines.SetLine(line.Clock, line.High)
	time.Sleep(l.Tclk)
	l.lines.SetLine(line.Clock, line.Low)
}

// ShiftOut clocks out a byte, MSB first.
func (l *Link) ShiftOut(b byte) {
	for i := 7; i >= 0; i-- {
		l.ClockOut(b&(1<<uint(i)) != 0)
	}
}

// WriteCommand writes a register address and value as a single framed transaction.
func (l *Link) WriteCommand(reg, value byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines.SetLine(line.ChipSelect, line.Low)
	time.Sleep(l.Tclk)
	l.ShiftOut(reg)
	l.ShiftOut(value)
	time.Sleep(l.Tclk)
	l.lines.SetLine(line.ChipSelect, line.High)
	time.Sleep(l.Tclk)
}
