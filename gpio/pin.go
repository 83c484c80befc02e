// Copyright © 2017 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package gpio provides register level GPIO access on the Raspberry Pi
// through the /dev/gpiomem window.
//
// Only the operations needed to bit-bang a serial link are supported:
// pin mode (input/output), pin write and pin read.
// Pull up/down and edge detection are left to the kernel.
//
// Example of use:
//
// 	c, err := gpio.Open()
// 	if err != nil {
// 		return err
// 	}
// 	defer c.Close()
//
// 	pin, err := c.Pin(gpio.GPIO11)
// 	if err != nil {
// 		return err
// 	}
// 	pin.Low()
// 	pin.Output()
//
// The package uses the raw BCM283x GPIO numbers, not the J8 header positions.
package gpio

import "errors"

// Pin represents a single GPIO pin on a Chip.
type Pin struct {
	c *Chip
	// Immutable fields
	pin      int
	fsel     int
	levelReg int
	clearReg int
	setReg   int
	mask     uint32
	// Mutable fields
	shadow Level
}

// Level represents the high (true) or low (false) level of a Pin.
type Level bool

// Mode defines the IO mode of a Pin.
type Mode int

const (
	modeMask uint32 = 7 // pin mode is 3 bits wide
)

// Pin Mode, a pin can be set in Input or Output mode
const (
	Input Mode = iota
	Output
	Alt5
	Alt4
	Alt0
	Alt1
	Alt2
	Alt3
)

// Level of pin, High / Low
const (
	Low  Level = false
	High Level = true
)

// BCM GPIO numbers available on the J8 header.
const (
	GPIO2 = iota + 2
	GPIO3
	GPIO4
	GPIO5
	GPIO6
	GPIO7
	GPIO8
	GPIO9
	GPIO10
	GPIO11
	GPIO12
	GPIO13
	GPIO14
	GPIO15
	GPIO16
	GPIO17
	GPIO18
	GPIO19
	GPIO20
	GPIO21
	GPIO22
	GPIO23
	GPIO24
	GPIO25
	GPIO26
	GPIO27
	MaxGPIOPin
)

var (
	// ErrInvalidPin indicates the pin number is outside the range supported by the chip.
	ErrInvalidPin = errors.New("gpio: invalid pin")
)

func newPin(c *Chip, pin int) *Pin {
	// Pre-calculate register offsets and bit masks.
	bank := pin / 32
	p := &Pin{
		c:        c,
		pin:      pin,
		fsel:     pin / 10,
		mask:     uint32(1) << uint(pin&0x1f),
		levelReg: 13 + bank,
		clearReg: 10 + bank,
		setReg:   7 + bank,
	}
	if c.mem[p.levelReg]&p.mask != 0 {
		p.shadow = High
	}
	return p
}

// Input sets pin as Input.
func (pin *Pin) Input() {
	pin.SetMode(Input)
}

// Output sets pin as Output.
func (pin *Pin) Output() {
	pin.SetMode(Output)
}

// High sets pin High.
func (pin *Pin) High() {
	pin.Write(High)
}

// Low sets pin Low.
func (pin *Pin) Low() {
	pin.Write(Low)
}

// Mode returns the mode of the pin in the Function Select register.
func (pin *Pin) Mode() Mode {
	modeShift := uint(pin.pin%10) * 3
	return Mode(pin.c.mem[pin.fsel] >> modeShift & modeMask)
}

// Shadow returns the value of the last write to an output pin or the last read on an input pin.
func (pin *Pin) Shadow() Level {
	return pin.shadow
}

// Pin returns the BCM number of the pin.
func (pin *Pin) Pin() int {
	return pin.pin
}

// SetMode sets the pin Mode.
func (pin *Pin) SetMode(mode Mode) {
	modeShift := uint(pin.pin%10) * 3

	pin.c.mu.Lock()
	defer pin.c.mu.Unlock()

	pin.c.mem[pin.fsel] = pin.c.mem[pin.fsel]&^(modeMask<<modeShift) | uint32(mode)<<modeShift
}

// Read pin state (high/low)
func (pin *Pin) Read() (level Level) {
	if (pin.c.mem[pin.levelReg] & pin.mask) != 0 {
		level = High
	}
	pin.shadow = level
	return
}

// Write sets the pin state (high/low).
// The set and clear registers are write-only and single bit, so no lock is required.
func (pin *Pin) Write(level Level) {
	if level == Low {
		pin.c.mem[pin.clearReg] = pin.mask
	} else {
		pin.c.mem[pin.setReg] = pin.mask
	}
	pin.shadow = level
}
