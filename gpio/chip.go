// Copyright © 2017 Kent Gibson <warthog618@gmail.com>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package gpio

import (
	"errors"
	"fmt"
	"sync"
)

const (
	memLength = 4096
	// RegCount is the number of 32 bit registers in the mapped window.
	RegCount = memLength / 4
)

// Chip is an open window onto the GPIO registers.
type Chip struct {
	// mu covers read/modify/write access to the mem block.
	// Individual reads and writes skip the lock on the assumption that
	// register writes are atomic. e.g. Read, Write and Mode.
	mu     sync.Mutex
	mem    []uint32
	closer func() error
}

var (
	// ErrClosed indicates the chip has been closed.
	ErrClosed = errors.New("gpio: chip closed")
)

// NewChip wraps an existing block of GPIO registers, such as a mapping
// obtained elsewhere or a plain buffer standing in for the hardware.
// The block must cover at least the function select, set, clear and level registers.
func NewChip(mem []uint32) *Chip {
	return newChip(mem, nil)
}

func newChip(mem []uint32, closer func() error) *Chip {
	return &Chip{mem: mem, closer: closer}
}

// Pin returns the Pin with the given BCM number.
func (c *Chip) Pin(n int) (*Pin, error) {
	if len(c.mem) == 0 {
		return nil, ErrClosed
	}
	if n < 0 || n >= MaxGPIOPin {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPin, n)
	}
	return newPin(c, n), nil
}

// Close unmaps the registers.
// Pins obtained from the Chip must not be used after Close.
func (c *Chip) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.mem) == 0 {
		return nil
	}
	c.mem = nil
	if c.closer == nil {
		return nil
	}
	return c.closer()
}
