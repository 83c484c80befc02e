// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

package max7219

import (
	"fmt"

	"github.com/warthog618/thermodisp/readout"
)

// Dev is a MAX7219 with four Code B digits.
//
// Dev holds no state of its own, so repeating a call repeats the same
// transactions on the link.
type Dev struct {
	w Writer
}

// Opts contains the settings applied by Init.
type Opts struct {
	// Intensity is the PWM brightness, 0 to MaxIntensity.
	Intensity uint8
}

// DefaultOpts are the settings used when none are provided.
var DefaultOpts = Opts{Intensity: 0}

// New creates a Dev writing through w.
func New(w Writer) *Dev {
	return &Dev{w: w}
}

// Init brings the driver out of shutdown and test mode, enables Code B
// decoding on the four digits and limits the scan to them.
func (d *Dev) Init(opts *Opts) error {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Intensity > MaxIntensity {
		return fmt.Errorf("%w: intensity %d", ErrOutOfRange, opts.Intensity)
	}
	d.Shutdown(false)
	d.DisplayTest(false)
	d.SetDecodeMode(1<<Digits - 1)
	d.w.WriteCommand(RegIntensity, opts.Intensity)
	d.w.WriteCommand(RegScanLimit, Digits-1)
	return nil
}

// Shutdown enters (true) or leaves (false) shutdown mode.
func (d *Dev) Shutdown(off bool) {
	if off {
		d.w.WriteCommand(RegShutdown, 0x00)
		return
	}
	d.w.WriteCommand(RegShutdown, 0x01)
}

// DisplayTest enables or disables test mode, which lights all segments.
func (d *Dev) DisplayTest(on bool) {
	if on {
		d.w.WriteCommand(RegDisplayTest, 0x01)
		return
	}
	d.w.WriteCommand(RegDisplayTest, 0x00)
}

// SetDecodeMode selects the digit registers, one bit per register, that
// are decoded using Code B.
func (d *Dev) SetDecodeMode(mask byte) {
	d.w.WriteCommand(RegDecodeMode, mask)
}

// SetIntensity sets the display brightness.
func (d *Dev) SetIntensity(i uint8) error {
	if i > MaxIntensity {
		return fmt.Errorf("%w: intensity %d", ErrOutOfRange, i)
	}
	d.w.WriteCommand(RegIntensity, i)
	return nil
}

// SetScanLimit sets the highest digit register scanned.
func (d *Dev) SetScanLimit(n uint8) error {
	if n > MaxScanLimit {
		return fmt.Errorf("%w: scan limit %d", ErrOutOfRange, n)
	}
	d.w.WriteCommand(RegScanLimit, n)
	return nil
}

// SetDigit displays a decimal digit, and optionally the decimal point, at
// a logical position.
func (d *Dev) SetDigit(pos int, v uint8, dot bool) error {
	reg, err := DigitRegister(pos)
	if err != nil {
		return err
	}
	b, err := Encode(v, dot)
	if err != nil {
		return err
	}
	d.w.WriteCommand(reg, b)
	return nil
}

// Show displays all four digits, in position order.
//
// The digits are validated before any is written, so an invalid digit
// leaves the display unchanged.
func (d *Dev) Show(digits readout.Digits) error {
	var regs [Digits]byte
	for i, dg := range digits {
		b, err := Encode(dg.Value, dg.Dot)
		if err != nil {
			return err
		}
		regs[i] = b
	}
	for i, b := range regs {
		d.w.WriteCommand(digitRegisters[i], b)
	}
	return nil
}

// Blank turns off all segments of the four digits.
func (d *Dev) Blank() {
	for _, reg := range digitRegisters {
		d.w.WriteCommand(reg, CodeBBlank)
	}
}
