package platform

import (
	"fmt"
	"strings"
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// ParseMouseButton converts a config or flag value to MouseButton.
func ParseMouseButton(s string) (MouseButton, error) {
	switch strings.ToLower(s) {
	case "left", "":
		return MouseLeft, nil
	case "right":
		return MouseRight, nil
	case "middle":
		return MouseMiddle, nil
	default:
		return MouseLeft, fmt.Errorf("unknown mouse button: %q (expected left, right, or middle)", s)
	}
}

// String returns the flag spelling of the button.
func (b MouseButton) String() string {
	switch b {
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	default:
		return "left"
	}
}
