package platform

import "github.com/mj1618/screen-bridge/internal/model"

// Host exposes the host application's focus cursor and content roots.
// Any getter may return nil while the host is between screens.
type Host interface {
	// CurrentFocus returns the node the host currently focuses.
	CurrentFocus() model.Node

	// ActiveContentRoot returns the root of the visible screen content.
	ActiveContentRoot() model.Node

	// ActivePanel returns the panel focus is confined to, or nil when the
	// host does not designate one.
	ActivePanel() model.Node

	// WindowOrigin returns the screen-space origin of the host window, used
	// to convert panel-local bounds to OS pointer coordinates.
	WindowOrigin() (model.Point, error)
}

// Speaker is the speech/braille output channel.
type Speaker interface {
	// Speak outputs text, cutting off prior speech when interrupt is set.
	Speak(text string, interrupt bool)
	// SpeakAppend queues text after whatever is being spoken.
	SpeakAppend(text string)
	// Silence stops all output.
	Silence()
}

// Inputter simulates OS-level pointer input.
type Inputter interface {
	MoveMouse(x, y int) error
	Click(x, y int, button MouseButton, count int) error
}
