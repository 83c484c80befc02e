// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package mcp3w0c provides device drivers for MCP3004/3008/3204/3208 SPI ADCs.
package mcp3w0c

import (
	"errors"
	"fmt"
	"time"

	"github.com/warthog618/thermodisp/gpio"
	"github.com/warthog618/thermodisp/spi"
)

// MCP3w0c reads ADC values from a connected Microchip MCP3xxx family device.
// Supported variants are MCP3004/3008/3204/3208.
// The w indicates the width of the device (0 => 10, 2 => 12)
// and the c the number of channels.
// The two data pins, Mosi and Miso, may be tied and connected to a single GPIO pin.
type MCP3w0c struct {
	spi.SPI
	width    uint
	channels int
}

var (
	// ErrInvalidChannel indicates a channel the device does not have.
	ErrInvalidChannel = errors.New("mcp3w0c: invalid channel")
)

// New creates a MCP3w0c.
func New(tclk time.Duration, sclk, ssz, mosi, miso spi.Pin, width uint, channels int) *MCP3w0c {
	return &MCP3w0c{SPI: *spi.New(tclk, sclk, ssz, mosi, miso), width: width, channels: channels}
}

// NewMCP3004 creates a MCP3004.
func NewMCP3004(tclk time.Duration, sclk, ssz, mosi, miso spi.Pin) *MCP3w0c {
	return New(tclk, sclk, ssz, mosi, miso, 10, 4)
}

// NewMCP3008 creates a MCP3008.
func NewMCP3008(tclk time.Duration, sclk, ssz, mosi, miso spi.Pin) *MCP3w0c {
	return New(tclk, sclk, ssz, mosi, miso, 10, 8)
}

// NewMCP3204 creates a MCP3204.
func NewMCP3204(tclk time.Duration, sclk, ssz, mosi, miso spi.Pin) *MCP3w0c {
	return New(tclk, sclk, ssz, mosi, miso, 12, 4)
}

// NewMCP3208 creates a MCP3208.
func NewMCP3208(tclk time.Duration, sclk, ssz, mosi, miso spi.Pin) *MCP3w0c {
	return New(tclk, sclk, ssz, mosi, miso, 12, 8)
}

// Width returns the number of bits in a reading.
func (adc *MCP3w0c) Width() uint {
	return adc.width
}

// FullScale returns the number of distinct readings, i.e. 1 << Width.
func (adc *MCP3w0c) FullScale() uint32 {
	return 1 << adc.width
}

// Read returns the value of a single channel read from the ADC.
func (adc *MCP3w0c) Read(ch int) (uint16, error) {
	if ch < 0 || ch >= adc.channels {
		return 0, fmt.Errorf("%w: %d", ErrInvalidChannel, ch)
	}
	return adc.read(ch, gpio.High), nil
}

// ReadDifferential returns the value of a differential pair read from the ADC.
func (adc *MCP3w0c) ReadDifferential(ch int) (uint16, error) {
	if ch < 0 || ch >= adc.channels {
		return 0, fmt.Errorf("%w: %d", ErrInvalidChannel, ch)
	}
	return adc.read(ch, gpio.Low), nil
}

// Channel returns a reader for a single ended channel.
func (adc *MCP3w0c) Channel(ch int) (*Channel, error) {
	if ch < 0 || ch >= adc.channels {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannel, ch)
	}
	return &Channel{adc: adc, ch: ch}, nil
}

func (adc *MCP3w0c) read(ch int, sgl gpio.Level) uint16 {
	adc.Mu.Lock()
	defer adc.Mu.Unlock()
	adc.Ssz.High()
	adc.Sclk.Low()
	adc.Mosi.High()
	adc.Mosi.Output()
	time.Sleep(adc.Tclk)
	adc.Ssz.Low()

	adc.ClockOut(gpio.High) // Start
	adc.ClockOut(sgl)       // SGL/DIFFZ
	for i := 2; i >= 0; i-- {
		adc.ClockOut(ch>>uint(i)&0x01 == 0x01)
	}
	// mux settling
	adc.Mosi.Input()
	time.Sleep(adc.Tclk)
	adc.Sclk.High()
	adc.ClockIn() // null bit
	var d uint16
	for i := uint(0); i < adc.width; i++ {
		d = d << 1
		if adc.ClockIn() {
			d = d | 0x01
		}
	}
	adc.Ssz.High()
	return d
}

// Channel is a single ended channel of an MCP3w0c.
type Channel struct {
	adc *MCP3w0c
	ch  int
}

// Read returns a single reading of the channel.
func (c *Channel) Read() (uint16, error) {
	return c.adc.read(c.ch, gpio.High), nil
}
