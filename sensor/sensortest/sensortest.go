// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

// Package sensortest provides a scripted temperature sensor for tests.
package sensortest

import (
	"sync"
	"time"
)

// Result is a scripted conversion result.
type Result struct {
	Raw int16
	Err error
}

// Sensor returns scripted results in order, repeating the last once the
// script is exhausted.
type Sensor struct {
	mu sync.Mutex
	// Results returned by successive calls to ReadResult.
	Results []Result
	// ConfigureErr is returned by Configure.
	ConfigureErr error
	// StartErr is returned by StartConversion.
	StartErr error
	// Wait is returned by ConversionTime.
	Wait time.Duration

	configured  bool
	conversions int
	reads       int
}

// Configure implements the sensor interface.
func (s *Sensor) Configure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ConfigureErr != nil {
		return s.ConfigureErr
	}
	s.configured = true
	return nil
}

// StartConversion implements the sensor interface.
func (s *Sensor) StartConversion() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversions++
	return s.StartErr
}

// ReadResult implements the sensor interface.
func (s *Sensor) ReadResult() (int16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Results) == 0 {
		return 0, nil
	}
	i := s.reads
	if i >= len(s.Results) {
		i = len(s.Results) - 1
	}
	s.reads++
	return s.Results[i].Raw, s.Results[i].Err
}

// ConversionTime implements the sensor interface.
func (s *Sensor) ConversionTime() time.Duration {
	return s.Wait
}

// Configured reports whether Configure has succeeded.
func (s *Sensor) Configured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configured
}

// Conversions returns the number of conversions started.
func (s *Sensor) Conversions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversions
}

// Reads returns the number of results read.
func (s *Sensor) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}
