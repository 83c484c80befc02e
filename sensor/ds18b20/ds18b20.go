// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

// Package ds18b20 adapts a DS18B20 one-wire temperature sensor to a
// start/wait/read conversion cycle reporting raw sixteenths of a degree.
//
// The transport, scratchpad access and temperature decoding are provided by
// periph.io. Configuration is written to the scratchpad only and is never
// copied to the sensor's EEPROM.
package ds18b20

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"periph.io/x/conn/v3/onewire"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ds18b20"
)

// Family is the one-wire family code of the DS18B20.
const Family = 0x28

// ROM and function commands.
const (
	cmdConvert         = 0x44
	cmdWriteScratchpad = 0x4e
)

// powerOnRaw is the 85°C power-on value of the temperature register.
const powerOnRaw = 85 * 16

var (
	// ErrNotFound indicates no DS18B20 was found at the requested index.
	ErrNotFound = errors.New("ds18b20: sensor not found")
	// ErrResolution indicates a resolution outside 9 to 12 bits.
	ErrResolution = errors.New("ds18b20: invalid resolution")
	// ErrNotConfigured indicates a conversion requested before Configure.
	ErrNotConfigured = errors.New("ds18b20: not configured")
	// ErrNoConversion indicates the scratchpad still holds the power-on
	// value of 85°C, so no conversion has completed.
	ErrNoConversion = errors.New("ds18b20: no conversion")
)

// Opts selects the sensor and its configuration.
type Opts struct {
	// Address is the 64-bit ROM address. If zero the bus is searched
	// and the Index'th DS18B20 found is used.
	Address onewire.Address
	// Index selects a sensor by position in the search results.
	Index int
	// Resolution in bits, 9 to 12.
	Resolution int
	// AlarmLow and AlarmHigh are the alarm thresholds in degrees.
	AlarmLow  int8
	AlarmHigh int8
}

// DefaultOpts selects the first sensor found, configured for 11 bits and
// alarm thresholds of 0 and 125 degrees.
var DefaultOpts = Opts{
	Resolution: 11,
	AlarmLow:   0,
	AlarmHigh:  125,
}

// Dev is a DS18B20 on a one-wire bus.
type Dev struct {
	bus  onewire.Bus
	opts Opts
	ow   onewire.Dev
	dev  *ds18b20.Dev
}

// New creates a Dev on the bus.
// No bus activity occurs until Configure is called.
func New(bus onewire.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Resolution < 9 || opts.Resolution > 12 {
		return nil, fmt.Errorf("%w: %d bits", ErrResolution, opts.Resolution)
	}
	return &Dev{bus: bus, opts: *opts}, nil
}

// Configure locates the sensor and writes the alarm thresholds and
// resolution to its scratchpad.
func (d *Dev) Configure() error {
	addr := d.opts.Address
	if addr == 0 {
		a, err := Find(d.bus, d.opts.Index)
		if err != nil {
			return err
		}
		addr = a
	}
	ow := onewire.Dev{Bus: d.bus, Addr: addr}
	w := []byte{
		cmdWriteScratchpad,
		byte(d.opts.AlarmHigh),
		byte(d.opts.AlarmLow),
		byte((d.opts.Resolution-9)<<5) | 0x1f,
	}
	if err := ow.Tx(w, nil); err != nil {
		return fmt.Errorf("ds18b20: write scratchpad: %w", err)
	}
	// The resolution now matches, so the driver reads back the scratchpad
	// without rewriting it.
	dev, err := ds18b20.New(d.bus, addr, d.opts.Resolution)
	if err != nil {
		return err
	}
	d.ow = ow
	d.dev = dev
	return nil
}

// StartConversion starts a temperature conversion, leaving a strong pullup
// on the bus to power a parasitic sensor.
func (d *Dev) StartConversion() error {
	if d.dev == nil {
		return ErrNotConfigured
	}
	return d.ow.TxPower([]byte{cmdConvert}, nil)
}

// ReadResult returns the result of the last conversion in sixteenths of a degree.
func (d *Dev) ReadResult() (int16, error) {
	if d.dev == nil {
		return 0, ErrNotConfigured
	}
	t, err := d.dev.LastTemp()
	if err != nil {
		return 0, err
	}
	raw := Raw(t)
	if raw == powerOnRaw {
		return 0, ErrNoConversion
	}
	return raw, nil
}

// ConversionTime returns the worst case conversion time for the configured
// resolution, 94ms at 9 bits doubling for each additional bit.
func (d *Dev) ConversionTime() time.Duration {
	return (94 << uint(d.opts.Resolution-9)) * time.Millisecond
}

// Address returns the ROM address of the sensor, or zero before Configure.
func (d *Dev) Address() onewire.Address {
	return d.ow.Addr
}

func (d *Dev) String() string {
	if d.dev == nil {
		return "ds18b20"
	}
	return d.dev.String()
}

// Raw converts a temperature to sixteenths of a degree Celsius.
func Raw(t physic.Temperature) int16 {
	return int16((t - physic.ZeroCelsius) * 16 / physic.Kelvin)
}

// Find returns the address of the index'th DS18B20 on the bus.
func Find(bus onewire.Bus, index int) (onewire.Address, error) {
	addrs, err := bus.Search(false)
	if err != nil {
		return 0, fmt.Errorf("ds18b20: search: %w", err)
	}
	n := 0
	for _, a := range addrs {
		if a&0xff != Family {
			continue
		}
		if n == index {
			return a, nil
		}
		n++
	}
	return 0, fmt.Errorf("%w: index %d of %d", ErrNotFound, index, n)
}

// ParseAddress parses a ROM address, either as 16 hex digits or in the
// Linux w1 form "28-0316a2f2ffff" of family and serial number.
func ParseAddress(s string) (onewire.Address, error) {
	fam, serial, ok := strings.Cut(s, "-")
	if !ok {
		v, err := strconv.ParseUint(s, 16, 64)
		if err != nil {
			return 0, fmt.Errorf("ds18b20: address %q: %w", s, err)
		}
		return onewire.Address(v), nil
	}
	f, err := strconv.ParseUint(fam, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("ds18b20: address %q: %w", s, err)
	}
	sn, err := strconv.ParseUint(serial, 16, 48)
	if err != nil {
		return 0, fmt.Errorf("ds18b20: address %q: %w", s, err)
	}
	v := f | sn<<8
	var rom [7]byte
	for i := range rom {
		rom[i] = byte(v >> (8 * uint(i)))
	}
	return onewire.Address(v | uint64(onewire.CalcCRC(rom[:]))<<56), nil
}
