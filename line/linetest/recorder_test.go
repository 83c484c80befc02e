// SPDX-License-Identifier: MIT
//
// Copyright © 2026 The thermodisp Authors.

package linetest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/warthog618/thermodisp/line"
	"github.com/warthog618/thermodisp/line/linetest"
)

func clock(r *linetest.Recorder, bit line.Level) {
	r.SetLine(line.Data, bit)
	r.SetLine(line.Clock, line.High)
	r.SetLine(line.Clock, line.Low)
}

func TestFrames(t *testing.T) {
	r := &linetest.Recorder{}
	r.SetLine(line.ChipSelect, line.High)
	// clocking outside a frame is ignored
	clock(r, line.High)
	r.SetLine(line.ChipSelect, line.Low)
	for _, b := range []line.Level{true, false, true, false, false, true, false, true} {
		clock(r, b)
	}
	// incomplete byte is dropped
	clock(r, line.High)
	r.SetLine(line.ChipSelect, line.High)

	assert.Equal(t, [][]byte{{0xa5}}, r.Frames())
	assert.Equal(t, line.High, r.Level(line.ChipSelect))
	assert.Equal(t, line.Low, r.Level(line.Clock))

	r.Reset()
	assert.Empty(t, r.Events())
	assert.Empty(t, r.Frames())
}
