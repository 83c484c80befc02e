// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

// Package linetest provides a line.Setter that records line activity.
package linetest

import (
	"sync"

	"github.com/warthog618/thermodisp/line"
)

// Event is a single line transition.
type Event struct {
	ID    line.ID
	Level line.Level
}

// Recorder is a line.Setter that records every SetLine call.
//
// The zero value starts with all lines low.
type Recorder struct {
	mu     sync.Mutex
	events []Event
	levels [line.Count]line.Level
}

// SetLine implements line.Setter.
func (r *Recorder) SetLine(id line.ID, l line.Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{id, l})
	r.levels[id] = l
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Level returns the current level of a line.
func (r *Recorder) Level(id line.ID) line.Level {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.levels[id]
}

// Reset discards the recorded events, retaining the current levels.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Frames decodes the recorded events as a receiver would see them.
//
// Each frame holds the bytes clocked in, MSB first, while chip select was
// low. Data is sampled on each rising clock edge. Trailing bits that do not
// complete a byte are dropped.
func (r *Recorder) Frames() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	var frames [][]byte
	var levels [line.Count]line.Level
	levels[line.ChipSelect] = line.High
	var frame []byte
	var acc byte
	bits := 0
	for _, e := range r.events {
		prev := levels[e.ID]
		levels[e.ID] = e.Level
		switch e.ID {
		case line.ChipSelect:
			if prev == line.High && e.Level == line.Low {
				frame = []byte{}
				acc, bits = 0, 0
			} else if prev == line.Low && e.Level == line.High && frame != nil {
				frames = append(frames, frame)
				frame = nil
			}
		case line.Clock:
			if prev == line.Low && e.Level == line.High && frame != nil {
				acc <<= 1
				if levels[line.Data] == line.High {
					acc |= 1
				}
				bits++
				if bits == 8 {
					frame = append(frame, acc)
					acc, bits = 0, 0
				}
			}
		}
	}
	return frames
}
