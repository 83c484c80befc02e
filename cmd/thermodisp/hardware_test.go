// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

//go:build linux
// +build linux

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/thermodisp/gpio"
	"github.com/warthog618/thermodisp/spi"
	pgpio "periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

type constReader uint16

func (r constReader) Read() (uint16, error) {
	return uint16(r), nil
}

func TestVccCalibration(t *testing.T) {
	patterns := []struct {
		name      string
		m         map[string]interface{}
		fullScale uint32
		reading   uint16
		mv        uint32
	}{
		{"mcp3008", map[string]interface{}{"adc.driver": "mcp3008"}, 1 << 10, 338, 3304},
		{"mcp3004", map[string]interface{}{"adc.driver": "mcp3004"}, 1 << 10, 338, 3304},
		{"mcp3208", map[string]interface{}{"adc.driver": "mcp3208"}, 1 << 12, 1353, 3301},
		{"mcp3204", map[string]interface{}{"adc.driver": "mcp3204"}, 1 << 12, 1353, 3301},
		{"iio", map[string]interface{}{"adc.driver": "iio", "adc.iio.bits": 12}, 1 << 12, 1353, 3301},
		{"explicit", map[string]interface{}{
			"adc.driver":      "mcp3208",
			"vcc.calibration": 1116860,
		}, 1 << 12, 338, 3304},
	}
	for _, p := range patterns {
		tf := func(t *testing.T) {
			ac, err := loadAppConfig(newConfig(p.m))
			require.Nil(t, err)
			hw := &hardware{chip: gpio.NewChip(make([]uint32, gpio.RegCount))}
			defer hw.Close()
			require.Nil(t, hw.openADC(ac))
			assert.Equal(t, p.fullScale, hw.fullScale)
			hw.vref = constReader(p.reading)
			v := hw.vcc(ac)
			v.Sleep = func(time.Duration) {}
			mv, err := v.Sample(3)
			require.Nil(t, err)
			assert.Equal(t, p.mv, mv)
		}
		t.Run(p.name, tf)
	}
}

func TestCheckedReader(t *testing.T) {
	pp := spi.NewPeriphPin(pgpio.INVALID)
	r := checkedReader{constReader(338), []func() error{pp.Err}}
	v, err := r.Read()
	require.Nil(t, err)
	assert.Equal(t, uint16(338), v)

	pp.High()
	_, err = r.Read()
	assert.NotNil(t, err)
}

func TestSpiPinPeriph(t *testing.T) {
	require.Nil(t, gpioreg.Register(&gpiotest.Pin{N: "GPIO40", Num: 40}))
	hw := &hardware{}
	p, err := hw.spiPin(40)
	require.Nil(t, err)
	assert.IsType(t, &spi.PeriphPin{}, p)
	assert.Len(t, hw.pinErrs, 1)

	_, err = hw.spiPin(41)
	assert.NotNil(t, err)
	assert.Len(t, hw.pinErrs, 1)
}
