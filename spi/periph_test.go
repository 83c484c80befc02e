// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

package spi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warthog618/thermodisp/gpio"
	"github.com/warthog618/thermodisp/spi"
	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestPeriphPin(t *testing.T) {
	tp := &gpiotest.Pin{N: "GPIO21", Num: 21}
	p := spi.NewPeriphPin(tp)
	p.High()
	assert.Equal(t, pgpio.High, tp.L)
	assert.Equal(t, gpio.High, p.Read())
	p.Low()
	assert.Equal(t, pgpio.Low, tp.L)
	p.Write(gpio.High)
	assert.Equal(t, pgpio.High, tp.L)
	p.Output()
	assert.Equal(t, pgpio.High, tp.L)
	p.Input()
	assert.Equal(t, pgpio.Float, tp.P)
	assert.Nil(t, p.Err())
}

func TestPeriphPinError(t *testing.T) {
	p := spi.NewPeriphPin(pgpio.INVALID)
	assert.Nil(t, p.Err())
	p.High()
	err := p.Err()
	assert.NotNil(t, err)
	// only the first error is retained
	p.Input()
	assert.Equal(t, err, p.Err())
}

func TestSPIOverPeriph(t *testing.T) {
	sclk := &gpiotest.Pin{N: "SCLK", L: pgpio.High}
	ssz := &gpiotest.Pin{N: "SSZ", L: pgpio.Low}
	mosi := &gpiotest.Pin{N: "MOSI"}
	s := spi.New(0, spi.NewPeriphPin(sclk), spi.NewPeriphPin(ssz), spi.NewPeriphPin(mosi), spi.NewPeriphPin(mosi))
	assert.Equal(t, pgpio.Low, sclk.L)
	assert.Equal(t, pgpio.High, ssz.L)
	s.ClockOut(gpio.High)
	assert.Equal(t, pgpio.High, mosi.L)
	assert.Equal(t, pgpio.Low, sclk.L)
	assert.Equal(t, gpio.High, s.ClockIn())
	assert.Equal(t, pgpio.High, sclk.L)
}
