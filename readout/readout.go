// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

// Package readout formats measurements as four decimal digits for a
// seven segment display.
package readout

import (
	"errors"
	"fmt"
	"strings"
)

// Digit is a single decimal digit and its decimal point.
type Digit struct {
	Value uint8
	Dot   bool
}

// Digits are the four digits of a readout, left to right.
type Digits [4]Digit

var (
	// ErrUnsupported indicates a measurement the readout cannot represent,
	// such as a negative temperature.
	ErrUnsupported = errors.New("readout: unsupported value")
	// ErrOutOfRange indicates a measurement too large for four digits.
	ErrOutOfRange = errors.New("readout: out of range")
)

// DotPosition returns the position of the first decimal point, or -1 if none is set.
func (d Digits) DotPosition() int {
	for i, dg := range d {
		if dg.Dot {
			return i
		}
	}
	return -1
}

func (d Digits) String() string {
	var sb strings.Builder
	for _, dg := range d {
		sb.WriteByte('0' + dg.Value)
		if dg.Dot {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// Temperature formats a raw reading in sixteenths of a degree.
//
// Below 100 degrees the readout is "TT.FF", from 100 to 999 it is "HHH.F".
// Fractions are truncated, not rounded.
// Negative readings return ErrUnsupported.
func Temperature(raw int16) (Digits, error) {
	if raw < 0 {
		return Digits{}, fmt.Errorf("%w: temperature %d/16", ErrUnsupported, raw)
	}
	whole := int(raw) / 16
	frac := int(raw) % 16
	if whole < 100 {
		f := frac * 100 / 16
		return Digits{
			{Value: uint8(whole / 10)},
			{Value: uint8(whole % 10), Dot: true},
			{Value: uint8(f / 10)},
			{Value: uint8(f % 10)},
		}, nil
	}
	if whole >= 1000 {
		return Digits{}, fmt.Errorf("%w: temperature %d/16", ErrOutOfRange, raw)
	}
	return Digits{
		{Value: uint8(whole / 100)},
		{Value: uint8(whole / 10 % 10)},
		{Value: uint8(whole % 10), Dot: true},
		{Value: uint8(frac * 10 / 16)},
	}, nil
}

// Voltage formats a value in millivolts as "V.VVV".
//
// Only the four least significant decimal digits are shown.
func Voltage(mv uint32) Digits {
	return Digits{
		{Value: uint8(mv / 1000 % 10), Dot: true},
		{Value: uint8(mv / 100 % 10)},
		{Value: uint8(mv / 10 % 10)},
		{Value: uint8(mv % 10)},
	}
}
