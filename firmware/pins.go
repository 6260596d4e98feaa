//go:build tinygo

package main

import "machine"

const (
	// Sensor UART (PMSA003 TX -> RX pin), fixed 9600 8N1
	SENSOR_BAUD_RATE = 9600

	// Timing
	MULTIPLEX_PERIOD_MS = 5   // Display refresh per digit
	DEBOUNCE_PERIOD_MS  = 100 // Button confirmation delay
	DEBOUNCE_POLL_MS    = 1   // Debounce timer resolution
	UART_POLL_MS        = 1   // UART drain interval
	IDLE_SLEEP_MS       = 1   // Foreground idle sleep when nothing is pending

	// Sensor UART pins
	PIN_SENSOR_TX = machine.GP0
	PIN_SENSOR_RX = machine.GP1

	// Seven-segment lines a..g (common anode, active low)
	PIN_SEG_A = machine.GP2
	PIN_SEG_B = machine.GP3
	PIN_SEG_C = machine.GP4
	PIN_SEG_D = machine.GP5
	PIN_SEG_E = machine.GP6
	PIN_SEG_F = machine.GP7
	PIN_SEG_G = machine.GP8

	// Digit select lines (active low)
	PIN_DIGIT_TENS  = machine.GP9
	PIN_DIGIT_UNITS = machine.GP10

	// Indicator LEDs (active high)
	PIN_LED_SAFE   = machine.GP11
	PIN_LED_UNSAFE = machine.GP12

	// Select buttons to ground (S3 -> PM2.5, S4 -> PM10)
	PIN_BUTTON_S3 = machine.GP13
	PIN_BUTTON_S4 = machine.GP14
)
