package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// PortEntry is an Entry that only accepts digits, for TCP port numbers.
type PortEntry struct {
	widget.Entry
}

// NewPortEntry creates a new PortEntry.
func NewPortEntry() *PortEntry {
	entry := &PortEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops anything but 0-9.
// Pasted text bypasses this filter; the Validator catches it.
func (e *PortEntry) TypedRune(r rune) {
	if r >= '0' && r <= '9' {
		e.Entry.TypedRune(r)
	}
}

// Keyboard asks mobile drivers for a numeric keypad.
func (e *PortEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
