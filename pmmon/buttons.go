package main

import (
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/pmmon/pkg/selector"
)

// handleSelect delivers a falling edge on the select button line. The
// selection takes effect once the debounce timer confirms it.
func handleSelect(state *appState, b selector.Button) {
	if state.session == nil {
		return
	}
	state.session.monitor.HandleEdge(b)
}

// setSelectEnabled enables or disables both select buttons.
func setSelectEnabled(state *appState, enabled bool) {
	for _, btn := range state.selectBtns {
		if enabled {
			btn.Enable()
		} else {
			btn.Disable()
			btn.Importance = widget.MediumImportance
			btn.Refresh()
		}
	}
}

// updateSelectButtons highlights the button of the selected channel.
func updateSelectButtons(state *appState, selected selector.Button) {
	updateSelectButton(state.selectBtns[0], selected == selector.ButtonA)
	updateSelectButton(state.selectBtns[1], selected == selector.ButtonB)
}

// updateSelectButton updates a single select button's visual state.
func updateSelectButton(btn *widget.Button, isSelected bool) {
	importance := widget.MediumImportance
	if isSelected {
		importance = widget.HighImportance
	}
	if btn.Importance == importance {
		return
	}
	btn.Importance = importance
	btn.Refresh()
}
