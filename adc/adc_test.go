// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

package adc_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/thermodisp/adc"
)

type samples struct {
	values []uint16
	reads  int
	err    error
}

func (s *samples) Read() (uint16, error) {
	if s.err != nil {
		return 0, s.err
	}
	v := s.values[s.reads%len(s.values)]
	s.reads++
	return v, nil
}

func newVcc(r adc.Reader, sleeps *[]time.Duration) *adc.Vcc {
	v := adc.NewVcc(r)
	v.Sleep = func(d time.Duration) {
		*sleeps = append(*sleeps, d)
	}
	return v
}

func TestSampleAverage(t *testing.T) {
	var sleeps []time.Duration
	s := &samples{values: []uint16{337, 338, 339}}
	v := newVcc(s, &sleeps)
	avg, err := v.SampleAverage(99)
	require.Nil(t, err)
	assert.Equal(t, uint16(338), avg)
	assert.Equal(t, 99, s.reads)
	require.Len(t, sleeps, 99)
	assert.Equal(t, time.Millisecond, sleeps[0])
}

func TestSampleAverageTruncates(t *testing.T) {
	var sleeps []time.Duration
	v := newVcc(&samples{values: []uint16{1, 2}}, &sleeps)
	avg, err := v.SampleAverage(2)
	require.Nil(t, err)
	assert.Equal(t, uint16(1), avg)
}

func TestSampleAverageNoOverflow(t *testing.T) {
	var sleeps []time.Duration
	v := newVcc(&samples{values: []uint16{4095}}, &sleeps)
	avg, err := v.SampleAverage(1000)
	require.Nil(t, err)
	assert.Equal(t, uint16(4095), avg)
}

func TestSampleAverageCount(t *testing.T) {
	var sleeps []time.Duration
	s := &samples{values: []uint16{1}}
	v := newVcc(s, &sleeps)
	_, err := v.SampleAverage(0)
	assert.True(t, errors.Is(err, adc.ErrSampleCount))
	_, err = v.SampleAverage(-3)
	assert.True(t, errors.Is(err, adc.ErrSampleCount))
	assert.Zero(t, s.reads)
}

func TestSampleReadError(t *testing.T) {
	var sleeps []time.Duration
	readErr := errors.New("bus fault")
	v := newVcc(&samples{err: readErr}, &sleeps)
	_, err := v.Sample(10)
	assert.Equal(t, readErr, err)
}

func TestSample(t *testing.T) {
	var sleeps []time.Duration
	v := newVcc(&samples{values: []uint16{338}}, &sleeps)
	mv, err := v.Sample(100)
	require.Nil(t, err)
	assert.Equal(t, uint32(3304), mv)

	v = newVcc(&samples{values: []uint16{0}}, &sleeps)
	_, err = v.Sample(100)
	assert.Equal(t, adc.ErrNoSignal, err)
}

func TestMillivolts(t *testing.T) {
	patterns := []struct {
		avg uint16
		mv  uint32
	}{
		{338, 3304},
		{512, 2181},
		{1023, 1091},
		{223, 5008},
	}
	for _, p := range patterns {
		mv, err := adc.Millivolts(adc.DefaultCalibration, p.avg)
		require.Nil(t, err)
		assert.Equal(t, p.mv, mv, p.avg)
	}
	_, err := adc.Millivolts(adc.DefaultCalibration, 0)
	assert.Equal(t, adc.ErrNoSignal, err)
}

func TestCalibration(t *testing.T) {
	assert.Equal(t, uint32(adc.DefaultCalibration), adc.Calibration(adc.DefaultFullScale))
	assert.Equal(t, uint32(4*adc.DefaultCalibration), adc.Calibration(1<<12))
	assert.Equal(t, uint32(adc.DefaultCalibration/4), adc.Calibration(1<<8))
	// 1.0907V read by a 12 bit ADC at 3.3V
	mv, err := adc.Millivolts(adc.Calibration(1<<12), 1353)
	assert.Nil(t, err)
	assert.Equal(t, uint32(3301), mv)
}
