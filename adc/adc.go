// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

// Package adc determines the supply voltage from an ADC reading of a known
// reference voltage.
//
// The ADC is referenced to the supply, so a fixed reference, such as a
// bandgap, reads lower as the supply rises:
//
// 	Vcc = Vref * fullScale / reading
//
// The product Vref * fullScale is the calibration constant, in millivolts.
package adc

import (
	"errors"
	"fmt"
	"time"
)

// Reader returns a single ADC sample.
//
// Read blocks until the conversion completes.
type Reader interface {
	Read() (uint16, error)
}

const (
	// DefaultCalibration is a 1090.7mV bandgap read by a 10 bit ADC.
	DefaultCalibration = 1116860
	// DefaultFullScale is the full scale reading DefaultCalibration assumes.
	DefaultFullScale = 1 << 10
	// DefaultSettle is the delay after each sample.
	DefaultSettle = time.Millisecond
)

var (
	// ErrNoSignal indicates an average reading of zero, for which the
	// supply voltage is undefined.
	ErrNoSignal = errors.New("adc: no signal")
	// ErrSampleCount indicates a request to average less than one sample.
	ErrSampleCount = errors.New("adc: invalid sample count")
)

// Vcc samples a reference voltage to determine the supply voltage.
type Vcc struct {
	r Reader
	// Calibration is the reference voltage in millivolts multiplied by the
	// ADC full scale reading.
	Calibration uint32
	// Settle is the delay after each sample.
	Settle time.Duration
	// Sleep performs the settle delay. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// NewVcc creates a Vcc sampling r with the default calibration.
func NewVcc(r Reader) *Vcc {
	return &Vcc{
		r:           r,
		Calibration: DefaultCalibration,
		Settle:      DefaultSettle,
		Sleep:       time.Sleep,
	}
}

// SampleAverage returns the mean of n consecutive samples.
func (v *Vcc) SampleAverage(n int) (uint16, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrSampleCount, n)
	}
	sleep := v.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	var sum uint32
	for i := 0; i < n; i++ {
		s, err := v.r.Read()
		if err != nil {
			return 0, err
		}
		sum += uint32(s)
		sleep(v.Settle)
	}
	return uint16(sum / uint32(n)), nil
}

// Sample returns the supply voltage, in millivolts, from the average of n samples.
func (v *Vcc) Sample(n int) (uint32, error) {
	avg, err := v.SampleAverage(n)
	if err != nil {
		return 0, err
	}
	return Millivolts(v.Calibration, avg)
}

// Calibration returns the calibration constant for the default bandgap read
// by an ADC with the given full scale reading.
func Calibration(fullScale uint32) uint32 {
	return uint32(uint64(DefaultCalibration) * uint64(fullScale) / DefaultFullScale)
}

// Millivolts converts an average reading of the reference to the supply
// voltage in millivolts. The result is truncated.
func Millivolts(calibration uint32, avg uint16) (uint32, error) {
	if avg == 0 {
		return 0, ErrNoSignal
	}
	return calibration / uint32(avg), nil
}
