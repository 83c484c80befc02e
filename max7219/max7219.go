// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

// Package max7219 drives a 4 digit seven segment display through a MAX7219
// LED display driver using its Code B font.
package max7219

import (
	"errors"
	"fmt"
)

// Register addresses.
const (
	RegNoop        = 0x00
	RegDigit0      = 0x01
	RegDecodeMode  = 0x09
	RegIntensity   = 0x0a
	RegScanLimit   = 0x0b
	RegShutdown    = 0x0c
	RegDisplayTest = 0x0f
)

const (
	// Digits is the number of wired digit positions.
	Digits = 4
	// DecimalPoint is the decimal point bit of a digit register.
	DecimalPoint = 0x80
	// CodeBBlank is the Code B value that turns off all segments.
	CodeBBlank = 0x0f
	// MaxIntensity is the brightest intensity setting.
	MaxIntensity = 0x0f
	// MaxScanLimit is the highest scan limit, scanning all eight digits.
	MaxScanLimit = 0x07
)

// digitRegisters maps logical digit positions, left to right, onto the
// digit registers they are wired to.
var digitRegisters = [Digits]byte{0x01, 0x03, 0x04, 0x02}

var (
	// ErrOutOfRange indicates a digit value, position or setting outside
	// the range the driver supports. Nothing is written to the device.
	ErrOutOfRange = errors.New("max7219: out of range")
)

// Writer writes a value to a device register as a single transaction.
// It is satisfied by *spi.Link.
type Writer interface {
	WriteCommand(reg, value byte)
}

// DigitRegister returns the digit register for a logical digit position.
func DigitRegister(pos int) (byte, error) {
	if pos < 0 || pos >= Digits {
		return 0, fmt.Errorf("%w: digit position %d", ErrOutOfRange, pos)
	}
	return digitRegisters[pos], nil
}

// Encode packs a decimal digit and decimal point flag into a Code B
// digit register value.
func Encode(v uint8, dot bool) (byte, error) {
	if v > 9 {
		return 0, fmt.Errorf("%w: digit value %d", ErrOutOfRange, v)
	}
	b := v
	if dot {
		b |= DecimalPoint
	}
	return b, nil
}
