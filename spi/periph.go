// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

package spi

import (
	"fmt"
	"sync"

	"github.com/warthog618/thermodisp/gpio"
	pgpio "periph.io/x/conn/v3/gpio"
)

// PeriphPin adapts a periph.io pin to a Pin, so SPI devices can be driven
// through any GPIO driver registered with periph.io.
//
// Pin has no error path, so the first failure of the underlying pin is
// retained and returned by Err.
type PeriphPin struct {
	p   pgpio.PinIO
	mu  sync.Mutex
	err error
}

// NewPeriphPin wraps p.
func NewPeriphPin(p pgpio.PinIO) *PeriphPin {
	return &PeriphPin{p: p}
}

func (p *PeriphPin) check(err error) {
	if err == nil {
		return
	}
	p.mu.Lock()
	if p.err == nil {
		p.err = fmt.Errorf("spi: %s: %w", p.p, err)
	}
	p.mu.Unlock()
}

// Err returns the first error encountered while driving the pin.
func (p *PeriphPin) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Read implements Pin.
func (p *PeriphPin) Read() gpio.Level {
	return gpio.Level(p.p.Read())
}

// Write implements Pin.
func (p *PeriphPin) Write(l gpio.Level) {
	p.check(p.p.Out(pgpio.Level(l)))
}

// High implements Pin.
func (p *PeriphPin) High() {
	p.check(p.p.Out(pgpio.High))
}

// Low implements Pin.
func (p *PeriphPin) Low() {
	p.check(p.p.Out(pgpio.Low))
}

// Input implements Pin.
func (p *PeriphPin) Input() {
	p.check(p.p.In(pgpio.Float, pgpio.NoEdge))
}

// Output implements Pin.
//
// periph.io pins become outputs when written, so this writes the last level read.
func (p *PeriphPin) Output() {
	p.check(p.p.Out(p.p.Read()))
}
