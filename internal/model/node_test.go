package model

import "sync/atomic"

var testHandles atomic.Uint64

// tn is an in-memory Node for tests. Every optional capability is
// implemented; unset values report ErrUnsupported.
type tn struct {
	h        Handle
	typ      string
	name     string
	text     *string
	caption  *string
	toggle   *bool
	fields   map[string]any
	classes  []string
	index    *int
	bounds   Rect
	hidden   bool
	opacity  float64
	disabled bool
	broken   bool
	parent   *tn
	kids     []*tn
}

func node(typ string, kids ...*tn) *tn {
	n := &tn{h: Handle(testHandles.Add(1)), typ: typ, opacity: 1}
	return n.add(kids...)
}

func (n *tn) add(kids ...*tn) *tn {
	for _, k := range kids {
		k.parent = n
		n.kids = append(n.kids, k)
	}
	return n
}

func (n *tn) named(s string) *tn { n.name = s; return n }
func (n *tn) withText(s string) *tn { n.text = &s; return n }
func (n *tn) withCaption(s string) *tn { n.caption = &s; return n }
func (n *tn) toggled(v bool) *tn { n.toggle = &v; return n }
func (n *tn) class(cs ...string) *tn { n.classes = append(n.classes, cs...); return n }
func (n *tn) rowIndex(i int) *tn { n.index = &i; return n }
func (n *tn) hide() *tn { n.hidden = true; return n }
func (n *tn) disable() *tn { n.disabled = true; return n }
func (n *tn) breakNode() *tn { n.broken = true; return n }

func (n *tn) at(x, y, w, h float64) *tn {
	n.bounds = Rect{X: x, Y: y, Width: w, Height: h}
	return n
}

func (n *tn) field(k string, v any) *tn {
	if n.fields == nil {
		n.fields = map[string]any{}
	}
	n.fields[k] = v
	return n
}

func label(s string) *tn { return node("Label").withText(s) }

func (n *tn) Handle() Handle { return n.h }

func (n *tn) TypeName() string {
	if n.broken {
		panic("node destroyed")
	}
	return n.typ
}

func (n *tn) Name() string {
	if n.broken {
		panic("node destroyed")
	}
	return n.name
}

func (n *tn) Visible() bool {
	if n.hidden {
		return false
	}
	if n.parent != nil {
		return n.parent.Visible()
	}
	return true
}

func (n *tn) Enabled() bool { return !n.disabled }

func (n *tn) EnabledInHierarchy() bool {
	if n.disabled {
		return false
	}
	if n.parent != nil {
		return n.parent.EnabledInHierarchy()
	}
	return true
}

func (n *tn) Bounds() Rect { return n.bounds }
func (n *tn) Style() Style { return Style{Opacity: n.opacity} }
func (n *tn) ChildCount() int { return len(n.kids) }

func (n *tn) Child(i int) Node {
	if i < 0 || i >= len(n.kids) {
		return nil
	}
	return n.kids[i]
}

func (n *tn) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *tn) Text() (string, error) {
	if n.broken {
		panic("node destroyed")
	}
	if n.text == nil {
		return "", ErrUnsupported
	}
	return *n.text, nil
}

func (n *tn) StaticText() (string, error) {
	if n.caption == nil {
		return "", ErrUnsupported
	}
	return *n.caption, nil
}

func (n *tn) ToggleValue() (bool, error) {
	if n.toggle == nil {
		return false, ErrUnsupported
	}
	return *n.toggle, nil
}

func (n *tn) Field(name string) (any, error) {
	v, ok := n.fields[name]
	if !ok {
		return nil, ErrUnsupported
	}
	return v, nil
}

func (n *tn) Classes() []string { return n.classes }

func (n *tn) RowIndex() (int, error) {
	if n.index == nil {
		return 0, ErrUnsupported
	}
	return *n.index, nil
}
