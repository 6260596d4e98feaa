package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/pmmon/pkg/frame"
	"github.com/itohio/pmmon/pkg/monitor"
)

// statusBar shows the numeric state behind the panel.
type statusBar struct {
	container fyne.CanvasObject

	averages *widget.Label
	selected *widget.Label
	counters *widget.Label
}

func newStatusBar() *statusBar {
	s := &statusBar{
		averages: widget.NewLabel(formatAverages(frame.Readings{})),
		selected: widget.NewLabel("Disconnected"),
		counters: widget.NewLabel(formatCounters(0, 0)),
	}
	s.container = container.NewHBox(s.selected, widget.NewSeparator(), s.averages, widget.NewSeparator(), s.counters)
	return s
}

// update must run on the Fyne goroutine.
func (s *statusBar) update(snap monitor.Snapshot) {
	s.averages.SetText(formatAverages(snap.Averages))
	s.selected.SetText(formatSelected(snap))
	s.counters.SetText(formatCounters(snap.Frames, snap.Overruns))
}

func formatAverages(avg frame.Readings) string {
	return fmt.Sprintf("%s %d  %s %d  %s %d ug/m3",
		frame.PM1_0, avg[frame.PM1_0],
		frame.PM2_5, avg[frame.PM2_5],
		frame.PM10, avg[frame.PM10])
}

func formatSelected(snap monitor.Snapshot) string {
	return fmt.Sprintf("%s: %d (%s)", snap.Channel, snap.Digits.Value(), snap.Indicator)
}

func formatCounters(frames, overruns uint64) string {
	if overruns == 0 {
		return fmt.Sprintf("%d frames", frames)
	}
	return fmt.Sprintf("%d frames, %d overruns", frames, overruns)
}
