// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

package line

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
)

// Periph drives the lines through periph.io pins, so any board supported
// by periph.io/x/host can host the display.
type Periph struct {
	pins [Count]gpio.PinOut

	mu  sync.Mutex
	err error
}

// NewPeriph binds the logical lines to the given pins and drives them to
// their idle levels.
func NewPeriph(cs, clk, data gpio.PinOut) (*Periph, error) {
	p := &Periph{pins: [Count]gpio.PinOut{cs, clk, data}}
	p.SetLine(ChipSelect, High)
	p.SetLine(Clock, Low)
	p.SetLine(Data, Low)
	if err := p.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// SetLine implements Setter.
//
// The first failure is retained and returned by Err.
func (p *Periph) SetLine(id ID, l Level) {
	if err := p.pins[id].Out(gpio.Level(l)); err != nil {
		p.mu.Lock()
		if p.err == nil {
			p.err = fmt.Errorf("line: %s: %w", id, err)
		}
		p.mu.Unlock()
	}
}

// Err returns the first error encountered while driving the lines.
func (p *Periph) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Close halts the underlying pins.
func (p *Periph) Close() error {
	var first error
	for _, pin := range p.pins {
		if err := pin.Halt(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
