package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// holdButton reports press and release of the primary mouse button instead of
// taps. A release is reported wherever the pointer is: dragging off the
// button still ends the press.
type holdButton struct {
	widget.Button

	onPress   func()
	onRelease func()

	pressed bool

	// swallowTap skips the Tapped that follows a mouse release, so a click
	// is not counted twice.
	swallowTap bool
}

var (
	_ desktop.Mouseable = (*holdButton)(nil)
	_ fyne.Draggable    = (*holdButton)(nil)
)

func newHoldButton(label string, icon fyne.Resource, onPress, onRelease func()) *holdButton {
	b := &holdButton{onPress: onPress, onRelease: onRelease}
	b.Text = label
	b.Icon = icon
	b.ExtendBaseWidget(b)
	return b
}

func (b *holdButton) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary || b.Disabled() {
		return
	}
	b.pressed = true
	b.swallowTap = false
	if b.onPress != nil {
		b.onPress()
	}
}

func (b *holdButton) MouseUp(*desktop.MouseEvent) {
	if b.release() {
		b.swallowTap = true
	}
}

func (b *holdButton) Dragged(*fyne.DragEvent) {}

// DragEnd fires when the button is released after the pointer left it.
func (b *holdButton) DragEnd() {
	b.release()
	b.swallowTap = false
}

// Tapped covers touch and keyboard activation, which have no press phase.
func (b *holdButton) Tapped(ev *fyne.PointEvent) {
	if b.swallowTap {
		b.swallowTap = false
		return
	}
	if b.Disabled() {
		return
	}
	if b.onPress != nil {
		b.onPress()
	}
	b.pressed = true
	b.release()
}

func (b *holdButton) release() bool {
	if !b.pressed {
		return false
	}
	b.pressed = false
	if b.onRelease != nil {
		b.onRelease()
	}
	return true
}
