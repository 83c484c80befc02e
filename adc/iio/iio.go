// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

// Package iio reads ADC channels exposed by the Linux Industrial I/O
// subsystem, such as the on-chip ADC of the BeagleBone.
package iio

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DevicesPath is where the kernel exposes IIO devices.
const DevicesPath = "/sys/bus/iio/devices"

// Channel is a single voltage input of an IIO device.
type Channel struct {
	path string
}

// New returns the voltage channel ch of the named device, e.g. "iio:device0".
func New(device string, ch int) *Channel {
	return NewAt(DevicesPath, device, ch)
}

// NewAt returns the voltage channel ch of a device under an alternate root.
func NewAt(root, device string, ch int) *Channel {
	return &Channel{path: filepath.Join(root, device, fmt.Sprintf("in_voltage%d_raw", ch))}
}

// Path returns the sysfs attribute read by the Channel.
func (c *Channel) Path() string {
	return c.path
}

// Read triggers a conversion and returns the raw reading.
func (c *Channel) Read() (uint16, error) {
	buf, err := os.ReadFile(c.path)
	if err != nil {
		return 0, fmt.Errorf("iio: %w", err)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(buf)), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("iio: %s: %w", c.path, err)
	}
	return uint16(v), nil
}
