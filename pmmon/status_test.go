package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/itohio/pmmon/pkg/display"
	"github.com/itohio/pmmon/pkg/frame"
	"github.com/itohio/pmmon/pkg/indicator"
	"github.com/itohio/pmmon/pkg/monitor"
	"github.com/itohio/pmmon/pkg/selector"
)

func TestFormatAverages(t *testing.T) {
	got := formatAverages(frame.Readings{12, 35, 148})
	assert.Equal(t, "PM1.0 12  PM2.5 35  PM10 148 ug/m3", got)
}

func TestFormatSelected(t *testing.T) {
	snap := monitor.Snapshot{
		Selected:  selector.ButtonB,
		Channel:   frame.PM10,
		Digits:    display.Encode(99),
		Indicator: indicator.Unsafe,
	}
	assert.Equal(t, "PM10: 99 (unsafe)", formatSelected(snap))
}

func TestFormatCounters(t *testing.T) {
	tests := []struct {
		name     string
		frames   uint64
		overruns uint64
		want     string
	}{
		{name: "no overruns", frames: 8, want: "8 frames"},
		{name: "with overruns", frames: 8, overruns: 2, want: "8 frames, 2 overruns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatCounters(tt.frames, tt.overruns))
		})
	}
}

func TestParseUint16(t *testing.T) {
	v, ok := parseUint16("65535")
	assert.True(t, ok)
	assert.Equal(t, uint16(65535), v)

	_, ok = parseUint16("65536")
	assert.False(t, ok)

	_, ok = parseUint16("-1")
	assert.False(t, ok)
}
