// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

package line

import (
	"github.com/warthog618/thermodisp/gpio"
)

// BCM drives the lines through memory mapped BCM283x GPIO registers.
type BCM struct {
	pins [Count]*gpio.Pin
}

// NewBCM binds the logical lines to the given BCM GPIO numbers and drives
// them to their idle levels, chip select high and the others low, before
// switching them to outputs.
func NewBCM(c *gpio.Chip, cs, clk, data int) (*BCM, error) {
	b := &BCM{}
	for id, n := range []int{cs, clk, data} {
		p, err := c.Pin(n)
		if err != nil {
			return nil, err
		}
		b.pins[id] = p
	}
	b.pins[ChipSelect].High()
	b.pins[Clock].Low()
	b.pins[Data].Low()
	for _, p := range b.pins {
		p.Output()
	}
	return b, nil
}

// SetLine implements Setter.
func (b *BCM) SetLine(id ID, l Level) {
	b.pins[id].Write(gpio.Level(l))
}

// Close returns the pins to inputs.
func (b *BCM) Close() {
	for _, p := range b.pins {
		p.Input()
	}
}
