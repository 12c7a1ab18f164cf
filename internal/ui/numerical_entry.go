package ui

import (
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts digits, and optionally a
// leading minus sign.
type NumericalEntry struct {
	widget.Entry

	// AllowNegative accepts a single '-' typed at the start of the text.
	AllowNegative bool
}

// NewNumericalEntry creates an entry for non-negative integers.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// NewSignedNumericalEntry creates an entry for signed integers such as day offsets.
func NewSignedNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{AllowNegative: true}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune filters keystrokes. Pasted text bypasses it; the Validator covers that case.
func (e *NumericalEntry) TypedRune(r rune) {
	switch {
	case r >= '0' && r <= '9':
		e.Entry.TypedRune(r)
	case r == '-' && e.AllowNegative && e.CursorColumn == 0 && e.CursorRow == 0:
		if len(e.Text) == 0 || e.Text[0] != '-' {
			e.Entry.TypedRune(r)
		}
	}
}

// Keyboard shows a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
