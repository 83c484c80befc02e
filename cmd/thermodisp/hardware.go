// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

//go:build linux
// +build linux

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/warthog618/thermodisp/adc"
	"github.com/warthog618/thermodisp/adc/iio"
	"github.com/warthog618/thermodisp/adc/mcp3w0c"
	"github.com/warthog618/thermodisp/gpio"
	"github.com/warthog618/thermodisp/line"
	"github.com/warthog618/thermodisp/max7219"
	"github.com/warthog618/thermodisp/sensor/ds18b20"
	"github.com/warthog618/thermodisp/spi"
	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/onewire"
	"periph.io/x/conn/v3/onewire/onewirereg"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/netlink"
)

type need int

const (
	needDisplay need = 1 << iota
	needADC
	needSensor
)

// hardware holds the devices opened for a command.
type hardware struct {
	chip      *gpio.Chip
	lines     line.Setter
	vref      adc.Reader
	fullScale uint32
	pinErrs   []func() error
	sensor    *ds18b20.Dev
	closers   []func() error
}

func openHardware(ac appConfig, n need) (hw *hardware, err error) {
	hw = &hardware{}
	defer func() {
		if err != nil {
			hw.Close()
			hw = nil
		}
	}()
	switch ac.backend {
	case "mem":
		chip, err := gpio.Open()
		if err != nil {
			return hw, fmt.Errorf("open gpio: %w", err)
		}
		hw.chip = chip
		hw.closers = append(hw.closers, chip.Close)
	case "periph":
		if _, err := host.Init(); err != nil {
			return hw, fmt.Errorf("init periph.io: %w", err)
		}
	}
	if n&needDisplay != 0 {
		if err := hw.openLines(ac); err != nil {
			return hw, err
		}
	}
	if n&needADC != 0 {
		if err := hw.openADC(ac); err != nil {
			return hw, err
		}
	}
	if n&needSensor != 0 {
		if err := hw.openSensor(ac); err != nil {
			return hw, err
		}
	}
	return hw, nil
}

// Close releases the hardware in the reverse order it was opened.
func (hw *hardware) Close() error {
	var first error
	for i := len(hw.closers) - 1; i >= 0; i-- {
		if err := hw.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	hw.closers = nil
	return first
}

func (hw *hardware) periphPin(n int) (pgpio.PinIO, error) {
	p := gpioreg.ByName(strconv.Itoa(n))
	if p == nil {
		return nil, fmt.Errorf("unknown pin %d", n)
	}
	return p, nil
}

// spiPin returns the pin with BCM number n from the selected backend.
func (hw *hardware) spiPin(n int) (spi.Pin, error) {
	if hw.chip != nil {
		return hw.chip.Pin(n)
	}
	p, err := hw.periphPin(n)
	if err != nil {
		return nil, err
	}
	pp := spi.NewPeriphPin(p)
	hw.pinErrs = append(hw.pinErrs, pp.Err)
	return pp, nil
}

func (hw *hardware) openLines(ac appConfig) error {
	if hw.chip != nil {
		l, err := line.NewBCM(hw.chip, ac.pins[line.ChipSelect], ac.pins[line.Clock], ac.pins[line.Data])
		if err != nil {
			return err
		}
		hw.lines = l
		hw.closers = append(hw.closers, func() error {
			l.Close()
			return nil
		})
		return nil
	}
	var pp [line.Count]pgpio.PinIO
	for i, n := range ac.pins {
		p, err := hw.periphPin(n)
		if err != nil {
			return err
		}
		pp[i] = p
	}
	l, err := line.NewPeriph(pp[line.ChipSelect], pp[line.Clock], pp[line.Data])
	if err != nil {
		return err
	}
	hw.lines = l
	hw.closers = append(hw.closers, l.Close)
	return nil
}

func (hw *hardware) openADC(ac appConfig) error {
	if ac.adc.driver == "iio" {
		hw.vref = iio.New(ac.adc.iioDevice, ac.adc.channel)
		hw.fullScale = 1 << ac.adc.iioBits
		return nil
	}
	var ctor func(tclk time.Duration, sclk, ssz, mosi, miso spi.Pin) *mcp3w0c.MCP3w0c
	switch ac.adc.driver {
	case "mcp3004":
		ctor = mcp3w0c.NewMCP3004
	case "mcp3008":
		ctor = mcp3w0c.NewMCP3008
	case "mcp3204":
		ctor = mcp3w0c.NewMCP3204
	case "mcp3208":
		ctor = mcp3w0c.NewMCP3208
	default:
		return fmt.Errorf("unknown adc driver %q", ac.adc.driver)
	}
	var pins [4]spi.Pin
	for i, n := range []int{ac.adc.clk, ac.adc.csz, ac.adc.di, ac.adc.do} {
		p, err := hw.spiPin(n)
		if err != nil {
			return err
		}
		pins[i] = p
	}
	dev := ctor(ac.adc.tclk, pins[0], pins[1], pins[2], pins[3])
	hw.closers = append(hw.closers, func() error {
		dev.Close()
		return nil
	})
	ch, err := dev.Channel(ac.adc.channel)
	if err != nil {
		return err
	}
	hw.vref = ch
	if len(hw.pinErrs) != 0 {
		hw.vref = checkedReader{ch, hw.pinErrs}
	}
	hw.fullScale = dev.FullScale()
	return nil
}

func (hw *hardware) openSensor(ac appConfig) error {
	var bus onewire.BusCloser
	if ac.sensor.bus == "netlink" {
		b, err := netlink.New(ac.sensor.master)
		if err != nil {
			return fmt.Errorf("open w1 bus %d: %w", ac.sensor.master, err)
		}
		bus = b
	} else {
		if _, err := host.Init(); err != nil {
			return fmt.Errorf("init periph.io: %w", err)
		}
		b, err := onewirereg.Open(ac.sensor.bus)
		if err != nil {
			return fmt.Errorf("open onewire bus %q: %w", ac.sensor.bus, err)
		}
		bus = b
	}
	hw.closers = append(hw.closers, bus.Close)
	s, err := ds18b20.New(bus, &ac.sensor.opts)
	if err != nil {
		return err
	}
	hw.sensor = s
	return nil
}

func (hw *hardware) display(ac appConfig) *max7219.Dev {
	return max7219.New(spi.NewLink(hw.lines, ac.tclk))
}

func (hw *hardware) vcc(ac appConfig) *adc.Vcc {
	v := adc.NewVcc(hw.vref)
	v.Calibration = ac.calibration
	if v.Calibration == 0 {
		v.Calibration = adc.Calibration(hw.fullScale)
	}
	v.Settle = ac.settle
	return v
}

// checkedReader fails reads once any of the pins behind the ADC has failed.
type checkedReader struct {
	r    adc.Reader
	errs []func() error
}

func (c checkedReader) Read() (uint16, error) {
	v, err := c.r.Read()
	if err != nil {
		return 0, err
	}
	for _, e := range c.errs {
		if err := e(); err != nil {
			return 0, err
		}
	}
	return v, nil
}
