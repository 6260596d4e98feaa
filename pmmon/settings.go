package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/pkg/errors"

	"github.com/itohio/pmmon/pkg/logging"
	"github.com/itohio/pmmon/pkg/sensor"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createFrameTab(state),
		createTimingTab(state),
		createMockTab(state),
		createLogTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(480, 360))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(480, 360))
	d.Show()
}

// saveConfig writes the configuration and reports failures in a dialog.
func saveConfig(state *appState) bool {
	if err := state.cfg.Save(state.configPath); err != nil {
		showError(state, errors.Wrap(err, "failed to save config"))
		return false
	}
	return true
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	// Get available serial ports
	ports, err := sensor.Ports()
	portOptions := []string{}
	portMap := make(map[string]string) // Map display name to actual port name

	if err == nil {
		for _, port := range ports {
			displayName := port.Name
			if port.Description != "" && port.Description != port.Name {
				displayName = fmt.Sprintf("%s (%s)", port.Name, port.Description)
			}
			portOptions = append(portOptions, displayName)
			portMap[displayName] = port.Name
		}
	}

	// Add current port if not in list
	currentPort := state.cfg.Serial.Port
	currentDisplay := currentPort
	found := false
	for _, opt := range portOptions {
		if portMap[opt] == currentPort {
			currentDisplay = opt
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
		portMap[currentPort] = currentPort
	}

	portSelect := widget.NewSelect(portOptions, nil)
	if currentDisplay != "" {
		portSelect.SetSelected(currentDisplay)
	}

	baudEntry := widget.NewEntry()
	baudEntry.SetText(strconv.Itoa(state.cfg.Serial.BaudRate))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baudEntry},
		},
		OnSubmit: func() {
			if portSelect.Selected != "" {
				selectedPort := portMap[portSelect.Selected]
				if selectedPort == "" {
					selectedPort = portSelect.Selected // Fallback to selected text
				}
				state.cfg.Serial.Port = selectedPort
			}
			if baud, err := strconv.Atoi(baudEntry.Text); err == nil && baud > 0 {
				state.cfg.Serial.BaudRate = baud
			}
			if saveConfig(state) && !state.useMock {
				restartSession(state)
			}
		},
	}

	return container.NewTabItem("Serial", form)
}

// createFrameTab creates the frame validation tab.
func createFrameTab(state *appState) *container.TabItem {
	checksumSelect := widget.NewRadioGroup([]string{"strict", "lenient"}, nil)
	checksumSelect.Horizontal = true
	checksumSelect.SetSelected(strings.ToLower(state.cfg.Frame.Checksum))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Checksum", Widget: checksumSelect, HintText: "lenient accepts frames with a bad checksum"},
		},
		OnSubmit: func() {
			if checksumSelect.Selected != "" {
				state.cfg.Frame.Checksum = checksumSelect.Selected
			}
			if saveConfig(state) {
				restartSession(state)
			}
		},
	}

	return container.NewTabItem("Frame", form)
}

// createTimingTab creates the display and button timing tab.
func createTimingTab(state *appState) *container.TabItem {
	multiplexEntry := widget.NewEntry()
	multiplexEntry.SetText(state.cfg.Timing.MultiplexPeriod.String())

	debounceEntry := widget.NewEntry()
	debounceEntry.SetText(state.cfg.Timing.DebouncePeriod.String())

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Multiplex Period", Widget: multiplexEntry},
			{Text: "Debounce Period", Widget: debounceEntry},
		},
		OnSubmit: func() {
			if d, err := time.ParseDuration(multiplexEntry.Text); err == nil && d > 0 {
				state.cfg.Timing.MultiplexPeriod = d
			}
			if d, err := time.ParseDuration(debounceEntry.Text); err == nil && d > 0 {
				state.cfg.Timing.DebouncePeriod = d
			}
			if saveConfig(state) {
				restartSession(state)
			}
		},
	}

	return container.NewTabItem("Timing", form)
}

// createMockTab creates the Mock sensor configuration tab.
func createMockTab(state *appState) *container.TabItem {
	periodEntry := widget.NewEntry()
	periodEntry.SetText(state.cfg.Mock.FramePeriod.String())

	pm1Entry := widget.NewEntry()
	pm1Entry.SetText(strconv.Itoa(int(state.cfg.Mock.PM1_0)))

	pm25Entry := widget.NewEntry()
	pm25Entry.SetText(strconv.Itoa(int(state.cfg.Mock.PM2_5)))

	pm10Entry := widget.NewEntry()
	pm10Entry.SetText(strconv.Itoa(int(state.cfg.Mock.PM10)))

	driftEntry := widget.NewEntry()
	driftEntry.SetText(strconv.Itoa(int(state.cfg.Mock.Drift)))

	corruptEntry := widget.NewEntry()
	corruptEntry.SetText(strconv.Itoa(state.cfg.Mock.CorruptEvery))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Frame Period", Widget: periodEntry},
			{Text: "PM1.0 (ug/m3)", Widget: pm1Entry},
			{Text: "PM2.5 (ug/m3)", Widget: pm25Entry},
			{Text: "PM10 (ug/m3)", Widget: pm10Entry},
			{Text: "Drift (ug/m3)", Widget: driftEntry},
			{Text: "Corrupt Every (0=never)", Widget: corruptEntry},
		},
		OnSubmit: func() {
			if d, err := time.ParseDuration(periodEntry.Text); err == nil && d > 0 {
				state.cfg.Mock.FramePeriod = d
			}
			if v, ok := parseUint16(pm1Entry.Text); ok {
				state.cfg.Mock.PM1_0 = v
			}
			if v, ok := parseUint16(pm25Entry.Text); ok {
				state.cfg.Mock.PM2_5 = v
			}
			if v, ok := parseUint16(pm10Entry.Text); ok {
				state.cfg.Mock.PM10 = v
			}
			if v, ok := parseUint16(driftEntry.Text); ok {
				state.cfg.Mock.Drift = v
			}
			if n, err := strconv.Atoi(corruptEntry.Text); err == nil && n >= 0 {
				state.cfg.Mock.CorruptEvery = n
			}
			if saveConfig(state) && state.useMock {
				restartSession(state)
			}
		},
	}

	return container.NewTabItem("Mock", form)
}

// createLogTab creates the logging tab.
func createLogTab(state *appState) *container.TabItem {
	levelSelect := widget.NewSelect([]string{"trace", "debug", "info", "warning", "error"}, nil)
	levelSelect.SetSelected(state.cfg.Log.Level)

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Level", Widget: levelSelect},
		},
		OnSubmit: func() {
			if levelSelect.Selected != "" {
				state.cfg.Log.Level = levelSelect.Selected
			}
			if err := logging.Setup(state.cfg.Log, nil); err != nil {
				showError(state, err)
				return
			}
			saveConfig(state)
		},
	}

	return container.NewTabItem("Log", form)
}

// parseUint16 parses a decimal concentration value.
func parseUint16(text string) (uint16, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(text), 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}
