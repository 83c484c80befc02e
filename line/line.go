// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

// Package line provides the three logical output lines used to drive the
// display link, independent of how the physical pins are reached.
package line

import "fmt"

// ID identifies a logical line.
type ID int

const (
	// ChipSelect frames a transaction, active low.
	ChipSelect ID = iota
	// Clock latches Data on its rising edge.
	Clock
	// Data carries the serial bits, MSB first.
	Data
	// Count is the number of logical lines.
	Count
)

func (id ID) String() string {
	switch id {
	case ChipSelect:
		return "cs"
	case Clock:
		return "clk"
	case Data:
		return "data"
	}
	return fmt.Sprintf("line(%d)", int(id))
}

// Level is the level driven onto a line.
type Level bool

const (
	// Low level.
	Low Level = false
	// High level.
	High Level = true
)

func (l Level) String() string {
	if l {
		return "high"
	}
	return "low"
}

// Setter drives logical lines to a level.
//
// SetLine has no error path; backends that can fail record the failure
// for later inspection.
type Setter interface {
	SetLine(id ID, l Level)
}
