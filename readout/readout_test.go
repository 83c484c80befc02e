// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

package readout_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/thermodisp/readout"
)

func TestTemperature(t *testing.T) {
	patterns := []struct {
		name string
		raw  int16
		out  string
		dot  int
	}{
		{"zero", 0, "00.00", 1},
		{"sixteenth", 1, "00.06", 1},
		{"room", 375, "23.43", 1},
		{"quarter", 404, "25.25", 1},
		{"below hundred", 1599, "99.93", 1},
		{"hundred", 1600, "100.0", 2},
		{"hundred and a half", 1608, "100.5", 2},
		{"sensor max", 2000, "125.0", 2},
		{"three digits", 15999, "999.9", 2},
	}
	for _, p := range patterns {
		t.Run(p.name, func(t *testing.T) {
			d, err := readout.Temperature(p.raw)
			require.Nil(t, err)
			assert.Equal(t, p.out, d.String())
			assert.Equal(t, p.dot, d.DotPosition())
		})
	}
}

func TestTemperatureDigits(t *testing.T) {
	d, err := readout.Temperature(375)
	require.Nil(t, err)
	assert.Equal(t, readout.Digits{
		{Value: 2},
		{Value: 3, Dot: true},
		{Value: 4},
		{Value: 3},
	}, d)
}

func TestTemperatureNegative(t *testing.T) {
	_, err := readout.Temperature(-1)
	assert.True(t, errors.Is(err, readout.ErrUnsupported))
	_, err = readout.Temperature(-880)
	assert.True(t, errors.Is(err, readout.ErrUnsupported))
}

func TestTemperatureOverflow(t *testing.T) {
	_, err := readout.Temperature(16000)
	assert.True(t, errors.Is(err, readout.ErrOutOfRange))
}

func TestVoltage(t *testing.T) {
	patterns := []struct {
		mv  uint32
		out string
	}{
		{3304, "3.304"},
		{2181, "2.181"},
		{5000, "5.000"},
		{42, "0.042"},
		{13304, "3.304"},
	}
	for _, p := range patterns {
		d := readout.Voltage(p.mv)
		assert.Equal(t, p.out, d.String(), p.mv)
		assert.Equal(t, 0, d.DotPosition())
	}
}

func TestDotPositionNone(t *testing.T) {
	assert.Equal(t, -1, readout.Digits{}.DotPosition())
}
