// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

package controller

import (
	"errors"
	"fmt"
)

// State is the phase of the controller.
type State int

const (
	// Init brings up the display driver and sensor.
	Init State = iota
	// CalibratingVoltage samples and displays the supply voltage.
	CalibratingVoltage
	// DisplayingTemperature continuously displays the temperature.
	DisplayingTemperature
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case CalibratingVoltage:
		return "calibrating-voltage"
	case DisplayingTemperature:
		return "displaying-temperature"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Policy selects how the supply voltage is presented at startup.
type Policy string

const (
	// Single displays a single long average for the dwell time.
	Single Policy = "single"
	// Monitor displays a sequence of short averages as they are taken.
	Monitor Policy = "monitor"
)

// ErrPolicy indicates an unknown startup policy.
var ErrPolicy = errors.New("controller: unknown policy")

// ParsePolicy converts a policy name to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case Single, Monitor:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrPolicy, s)
}
