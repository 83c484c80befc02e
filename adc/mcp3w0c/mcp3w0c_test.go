// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package mcp3w0c_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/thermodisp/adc"
	"github.com/warthog618/thermodisp/adc/mcp3w0c"
	"github.com/warthog618/thermodisp/gpio"
)

// device simulates the MCP3xxx serial protocol.
type device struct {
	width  uint
	values [8]uint16
	diff   [8]uint16

	cs     gpio.Level
	clk    gpio.Level
	mosi   gpio.Level
	out    gpio.Level
	rising int
	cmd    int
}

func newDevice(width uint) *device {
	return &device{width: width, cs: gpio.High}
}

func (d *device) value() uint16 {
	ch := d.cmd & 0x07
	if d.cmd&0x08 == 0 {
		return d.diff[ch]
	}
	return d.values[ch]
}

func (d *device) setCS(l gpio.Level) {
	if d.cs == gpio.High && l == gpio.Low {
		d.rising = 0
		d.cmd = 0
	}
	d.cs = l
}

func (d *device) setClk(l gpio.Level) {
	prev := d.clk
	d.clk = l
	if d.cs == gpio.High || prev == l {
		return
	}
	if l == gpio.High {
		d.rising++
		if d.rising <= 5 {
			d.cmd <<= 1
			if d.mosi {
				d.cmd |= 1
			}
		}
		return
	}
	if d.rising < 6 {
		return
	}
	idx := d.rising - 6
	switch {
	case idx == 0:
		d.out = gpio.Low
	case uint(idx) <= d.width:
		d.out = d.value()>>(d.width-uint(idx))&0x01 == 0x01
	default:
		d.out = gpio.Low
	}
}

type pin struct {
	write func(l gpio.Level)
	read  func() gpio.Level
}

func (p *pin) Write(l gpio.Level) {
	if p.write != nil {
		p.write(l)
	}
}

func (p *pin) Read() gpio.Level {
	if p.read != nil {
		return p.read()
	}
	return gpio.Low
}

func (p *pin) High()   { p.Write(gpio.High) }
func (p *pin) Low()    { p.Write(gpio.Low) }
func (p *pin) Input()  {}
func (p *pin) Output() {}

func newADC(d *device, ctor func(sclk, ssz, mosi, miso *pin) *mcp3w0c.MCP3w0c) *mcp3w0c.MCP3w0c {
	sclk := &pin{write: d.setClk}
	ssz := &pin{write: d.setCS}
	// tied data lines
	data := &pin{
		write: func(l gpio.Level) { d.mosi = l },
		read:  func() gpio.Level { return d.out },
	}
	return ctor(sclk, ssz, data, data)
}

func mcp3008(sclk, ssz, mosi, miso *pin) *mcp3w0c.MCP3w0c {
	return mcp3w0c.NewMCP3008(0, sclk, ssz, mosi, miso)
}

func mcp3208(sclk, ssz, mosi, miso *pin) *mcp3w0c.MCP3w0c {
	return mcp3w0c.NewMCP3208(0, sclk, ssz, mosi, miso)
}

func TestRead(t *testing.T) {
	d := newDevice(10)
	d.values = [8]uint16{0x000, 0x3ff, 0x155, 0x2aa, 338, 512, 1, 0x200}
	a := newADC(d, mcp3008)
	for ch, v := range d.values {
		r, err := a.Read(ch)
		require.Nil(t, err)
		assert.Equal(t, v, r, ch)
		// start bit, single ended, channel
		assert.Equal(t, 0x18|ch, d.cmd)
		assert.Equal(t, gpio.High, d.cs)
	}
}

func TestReadDifferential(t *testing.T) {
	d := newDevice(10)
	d.diff[3] = 0x123
	a := newADC(d, mcp3008)
	r, err := a.ReadDifferential(3)
	require.Nil(t, err)
	assert.Equal(t, uint16(0x123), r)
	assert.Equal(t, 0x13, d.cmd)
}

func TestRead12Bit(t *testing.T) {
	d := newDevice(12)
	d.values[7] = 0xabc
	a := newADC(d, mcp3208)
	assert.Equal(t, uint(12), a.Width())
	assert.Equal(t, uint32(4096), a.FullScale())
	r, err := a.Read(7)
	require.Nil(t, err)
	assert.Equal(t, uint16(0xabc), r)
}

func TestInvalidChannel(t *testing.T) {
	d := newDevice(10)
	a := newADC(d, func(sclk, ssz, mosi, miso *pin) *mcp3w0c.MCP3w0c {
		return mcp3w0c.NewMCP3004(0, sclk, ssz, mosi, miso)
	})
	_, err := a.Read(4)
	assert.True(t, errors.Is(err, mcp3w0c.ErrInvalidChannel))
	_, err = a.ReadDifferential(-1)
	assert.True(t, errors.Is(err, mcp3w0c.ErrInvalidChannel))
	_, err = a.Channel(4)
	assert.True(t, errors.Is(err, mcp3w0c.ErrInvalidChannel))
}

func TestChannelAsVccReader(t *testing.T) {
	d := newDevice(10)
	d.values[2] = 338
	a := newADC(d, mcp3008)
	c, err := a.Channel(2)
	require.Nil(t, err)
	v := adc.NewVcc(c)
	v.Settle = 0
	mv, err := v.Sample(5)
	require.Nil(t, err)
	assert.Equal(t, uint32(3304), mv)
}
