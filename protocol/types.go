package protocol

import (
	"fmt"
	"strings"
)

// Buttons is the decoded button state returned by the version command.
type Buttons byte

// Named button bits.
const (
	// ButtonDown is the down (or A) button
	ButtonDown Buttons = 0x04

	// ButtonUp is the up (or B) button
	ButtonUp Buttons = 0x08

	// ButtonLeft is the left button
	ButtonLeft Buttons = 0x20

	// ButtonRight is the right button
	ButtonRight Buttons = 0x40

	// ExitMask ends a streaming session when any of its bits is set
	ExitMask = ButtonDown | ButtonUp
)

// Has reports whether any bit of mask is set.
func (b Buttons) Has(mask Buttons) bool {
	return b&mask != 0
}

func (b Buttons) String() string {
	if b == 0 {
		return "none"
	}

	var names []string
	rest := b
	for _, n := range []struct {
		bit  Buttons
		name string
	}{
		{ButtonDown, "down"},
		{ButtonUp, "up"},
		{ButtonLeft, "left"},
		{ButtonRight, "right"},
	} {
		if b&n.bit != 0 {
			names = append(names, n.name)
			rest &^= n.bit
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%02X", byte(rest)))
	}

	return strings.Join(names, "|")
}

// Indicator is the flag byte of the LED control command.
type Indicator byte

// Indicator bits.
const (
	// IndicatorDisplayOff turns the OLED display off
	IndicatorDisplayOff Indicator = 0x80

	// IndicatorBreathingOff disables the RGB breathing function
	IndicatorBreathingOff Indicator = 0x40

	// IndicatorRxTxStatusOff disables the Rx/Tx transfer status function
	IndicatorRxTxStatusOff Indicator = 0x20

	// IndicatorRxLED turns the Rx LED on
	IndicatorRxLED Indicator = 0x10

	// IndicatorTxLED turns the Tx LED on
	IndicatorTxLED Indicator = 0x08

	// IndicatorGreen turns the green RGB channel on
	IndicatorGreen Indicator = 0x04

	// IndicatorRed turns the red RGB channel on
	IndicatorRed Indicator = 0x02

	// IndicatorBlue turns the blue RGB channel on
	IndicatorBlue Indicator = 0x01

	// IndicatorQuiet silences breathing and transfer status
	IndicatorQuiet = IndicatorBreathingOff | IndicatorRxTxStatusOff

	// IndicatorDefault restores all status functions
	IndicatorDefault Indicator = 0x00
)

// HandshakeResult is the outcome of the streaming support query.
type HandshakeResult int

const (
	// HandshakeSupported means the bootloader implements streaming
	HandshakeSupported HandshakeResult = iota

	// HandshakeUnsupported means the bootloader answered '?'
	HandshakeUnsupported
)

func (h HandshakeResult) String() string {
	switch h {
	case HandshakeSupported:
		return "supported"
	case HandshakeUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("HandshakeResult(%d)", int(h))
	}
}
