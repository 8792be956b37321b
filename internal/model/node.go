package model

import (
	"errors"
	"math"
)

// ErrUnsupported is returned by a capability getter when the host does not
// expose that value for the node. Callers fall through to the next strategy.
var ErrUnsupported = errors.New("capability not supported by node")

// Handle is the host's process-stable identity for a visual node.
type Handle uint64

// Rect is a screen-space rectangle.
type Rect struct {
	X      float64 `yaml:"x"      json:"x"`
	Y      float64 `yaml:"y"      json:"y"`
	Width  float64 `yaml:"width"  json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Point is a screen-space coordinate.
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Style holds the style flags the bridge consults.
type Style struct {
	Hidden  bool    // display: none
	Opacity float64 // 0..1
}

// Node is an opaque handle onto one node of the host's visual tree.
// Structural getters must not block; a node that became invalid during a
// host mutation may return zero values.
type Node interface {
	Handle() Handle
	TypeName() string
	Name() string
	Visible() bool
	Enabled() bool
	EnabledInHierarchy() bool
	Bounds() Rect
	Style() Style
	ChildCount() int
	Child(i int) Node
	Parent() Node
}

// Optional capabilities. A node advertises them by implementing the
// interface; each getter may fail independently and callers must tolerate
// ErrUnsupported or any other error.

// TextSource exposes the text of a text-display node.
type TextSource interface {
	Text() (string, error)
}

// StaticTextSource exposes a control's own caption field (a button's text).
type StaticTextSource interface {
	StaticText() (string, error)
}

// ToggleSource exposes a standard toggle's boolean value.
type ToggleSource interface {
	ToggleValue() (bool, error)
}

// ValueSource exposes a standard field's current value as text.
type ValueSource interface {
	Value() (string, error)
}

// FieldSource is a reflection-style reader for named internal fields of
// custom widgets.
type FieldSource interface {
	Field(name string) (any, error)
}

// ClassSource exposes the node's style classes.
type ClassSource interface {
	Classes() []string
}

// RowIndexSource exposes the data index a virtualized row is bound to.
type RowIndexSource interface {
	RowIndex() (int, error)
}

// ClickTarget accepts a synthetic click event.
type ClickTarget interface {
	SendClick() error
}

// Invoker exposes a click-or-submit callback.
type Invoker interface {
	Invoke() error
}

// Activator exposes a widget's own activation entry point.
type Activator interface {
	Activate() error
}

// Children returns the node's children in order, skipping nil entries.
func Children(n Node) []Node {
	if n == nil {
		return nil
	}
	count := n.ChildCount()
	out := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		if c := n.Child(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// IsShown reports whether the node is visible and not styled away.
func IsShown(n Node) bool {
	if n == nil || !n.Visible() {
		return false
	}
	st := n.Style()
	return !st.Hidden && st.Opacity > 0
}

// SameNode reports whether two possibly-nil nodes share a handle.
func SameNode(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Handle() == b.Handle()
}

// fieldBool reads a named boolean field from a custom widget.
func fieldBool(n Node, name string) (bool, bool) {
	fs, ok := n.(FieldSource)
	if !ok {
		return false, false
	}
	v, err := fs.Field(name)
	if err != nil {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// fieldInt reads a named integer field from a custom widget.
func fieldInt(n Node, name string) (int, bool) {
	fs, ok := n.(FieldSource)
	if !ok {
		return 0, false
	}
	v, err := fs.Field(name)
	if err != nil {
		return 0, false
	}
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		return int(x), true
	}
	return 0, false
}

// nodeText returns the node's own text, or "" when it exposes none.
func nodeText(n Node) string {
	ts, ok := n.(TextSource)
	if !ok {
		return ""
	}
	s, err := ts.Text()
	if err != nil {
		return ""
	}
	return s
}

// hasClass reports whether the node carries any of the given classes.
func hasClass(n Node, classes ...string) bool {
	cs, ok := n.(ClassSource)
	if !ok {
		return false
	}
	for _, c := range cs.Classes() {
		for _, want := range classes {
			if c == want {
				return true
			}
		}
	}
	return false
}
