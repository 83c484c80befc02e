// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package spi provides bit bashed serial links over GPIO lines.
//
// SPI is a full duplex 3 or 4 wire interface, as used by ADCs.
// Link is the write-only framed interface used by display drivers.
// Neither is related to the SPI device drivers provided by Linux.
package spi

import (
	"sync"
	"time"

	"github.com/warthog618/thermodisp/gpio"
)

// Pin is a GPIO line as used by SPI.
// It is satisfied by *gpio.Pin.
type Pin interface {
	Read() gpio.Level
	Write(l gpio.Level)
	High()
	Low()
	Input()
	Output()
}

// SPI represents a device connected via an SPI bus using 3 or 4 GPIO lines.
// Depending on the device, the two data pins, Mosi and Miso, may be tied and connected to a single GPIO pin.
type SPI struct {
	Mu sync.Mutex
	// time between clock edges (i.e. half the cycle time)
	Tclk time.Duration
	Sclk Pin
	Ssz  Pin
	Mosi Pin
	Miso Pin
}

// New creates a SPI.
func New(tclk time.Duration, sclk, ssz, mosi, miso Pin) *SPI {
	spi := &SPI{
		Tclk: tclk,
		Sclk: sclk,
		Ssz:  ssz,
		Mosi: mosi,
		Miso: miso,
	}
	// hold SPI reset until needed...
	spi.Sclk.Low()
	spi.Sclk.Output()
	spi.Ssz.High()
	spi.Ssz.Output()
	return spi
}

// Close disables the output pins used to drive the SPI device.
func (spi *SPI) Close() {
	spi.Mu.Lock()
	spi.Sclk.Input()
	spi.Ssz.Input()
	spi.Mosi.Input()
	spi.Mu.Unlock()
}

// ClockIn clocks in a data bit from the SPI device on Miso.
// Assumes clock starts high and ends with the rising edge of the next clock.
// Assumes caller already holds the Mu lock.
func (spi *SPI) ClockIn() gpio.Level {
	time.Sleep(spi.Tclk)
	spi.Sclk.Low() // SPI device writes on the falling edge
	time.Sleep(spi.Tclk)
	b := spi.Miso.Read()
	spi.Sclk.High()
	return b
}

// ClockOut clocks out a data bit to the SPI device on Mosi.
// Assumes clock starts low and ends with the falling edge of the next clock.
// Assumes caller already holds the Mu lock.
func (spi *SPI) ClockOut(l gpio.Level) {
	spi.Mosi.Write(l)
	time.Sleep(spi.Tclk)
	spi.Sclk.High() // SPI device reads on the rising edge
	time.Sleep(spi.Tclk)
	spi.Sclk.Low()
}
