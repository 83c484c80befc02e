// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

package spi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warthog618/thermodisp/line"
	"github.com/warthog618/thermodisp/line/linetest"
	"github.com/warthog618/thermodisp/spi"
)

func TestNewLinkIdle(t *testing.T) {
	r := &linetest.Recorder{}
	r.SetLine(line.ChipSelect, line.Low)
	r.SetLine(line.Clock, line.High)
	r.SetLine(line.Data, line.High)
	spi.NewLink(r, 0)
	assert.Equal(t, line.High, r.Level(line.ChipSelect))
	assert.Equal(t, line.Low, r.Level(line.Clock))
	assert.Equal(t, line.Low, r.Level(line.Data))
}

func TestWriteCommand(t *testing.T) {
	r := &linetest.Recorder{}
	l := spi.NewLink(r, 0)
	r.Reset()
	l.WriteCommand(0x0c, 0x01)

	ev := r.Events()
	require.NotEmpty(t, ev)
	assert.Equal(t, linetest.Event{ID: line.ChipSelect, Level: line.Low}, ev[0])
	assert.Equal(t, linetest.Event{ID: line.ChipSelect, Level: line.High}, ev[len(ev)-1])
	// 16 bits of data, clock high, clock low
	assert.Len(t, ev, 2+16*3)
	rising := 0
	for _, e := range ev[1 : len(ev)-1] {
		assert.NotEqual(t, line.ChipSelect, e.ID)
		if e.ID == line.Clock && e.Level == line.High {
			rising++
		}
	}
	assert.Equal(t, 16, rising)
	assert.Equal(t, [][]byte{{0x0c, 0x01}}, r.Frames())
	assert.Equal(t, line.Low, r.Level(line.Clock))
}

func TestShiftOutMSBFirst(t *testing.T) {
	r := &linetest.Recorder{}
	l := spi.NewLink(r, 0)
	r.Reset()
	l.ShiftOut(0x81)
	ev := r.Events()
	require.Len(t, ev, 24)
	var bits []line.Level
	for _, e := range ev {
		if e.ID == line.Data {
			bits = append(bits, e.Level)
		}
	}
	assert.Equal(t, []line.Level{true, false, false, false, false, false, false, true}, bits)
}

func TestWriteCommandSequence(t *testing.T) {
	r := &linetest.Recorder{}
	l := spi.NewLink(r, 0)
	l.WriteCommand(0x01, 0x83)
	l.WriteCommand(0x03, 0x04)
	assert.Equal(t, [][]byte{{0x01, 0x83}, {0x03, 0x04}}, r.Frames())
}
