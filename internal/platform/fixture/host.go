package fixture

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mj1618/screen-bridge/internal/model"
	"github.com/mj1618/screen-bridge/internal/platform"
)

// Event records an action the bridge performed on a node.
type Event struct {
	ID     string `yaml:"id"     json:"id"`
	Action string `yaml:"action" json:"action"`
}

// Host is an in-memory host application built from a Spec. It is not safe
// for concurrent use.
type Host struct {
	root   *Node
	focus  *Node
	panel  *Node
	origin model.Point
	byID   map[string]*Node
	next   model.Handle

	// OnLabelWrite, when set, observes every label write (see WriteLabel).
	OnLabelWrite func(h model.Handle, text string)

	// Events lists the actions performed on nodes, oldest first.
	Events []Event
}

// NewHost builds a host from spec.
func NewHost(spec *Spec) (*Host, error) {
	h := &Host{byID: make(map[string]*Node)}
	if spec == nil {
		return h, nil
	}
	if len(spec.Window) == 2 {
		h.origin = model.Point{X: spec.Window[0], Y: spec.Window[1]}
	}
	if spec.Root != nil {
		root, err := h.build(spec.Root, nil)
		if err != nil {
			return nil, err
		}
		h.root = root
	}
	if spec.Focus != "" {
		if err := h.SetFocus(spec.Focus); err != nil {
			return nil, err
		}
	}
	if spec.Panel != "" {
		n, err := h.Find(spec.Panel)
		if err != nil {
			return nil, err
		}
		h.panel = n
	}
	return h, nil
}

func (h *Host) build(spec *NodeSpec, parent *Node) (*Node, error) {
	if len(spec.Bounds) != 0 && len(spec.Bounds) != 4 {
		return nil, fmt.Errorf("node %q: bounds must be [x, y, w, h], got %v", spec.ID, spec.Bounds)
	}
	h.next++
	n := &Node{host: h, handle: h.next, spec: *spec, parent: parent}
	n.spec.Children = nil
	if spec.ID != "" {
		if _, dup := h.byID[spec.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q", spec.ID)
		}
		h.byID[spec.ID] = n
	}
	for i := range spec.Children {
		child, err := h.build(&spec.Children[i], n)
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, child)
	}
	return n, nil
}

// Find returns the node with the given fixture id.
func (h *Host) Find(id string) (*Node, error) {
	n, ok := h.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return n, nil
}

// Root returns the content root node.
func (h *Host) Root() *Node { return h.root }

// CurrentFocus implements platform.Host.
func (h *Host) CurrentFocus() model.Node {
	if h.focus == nil {
		return nil
	}
	return h.focus
}

// ActiveContentRoot implements platform.Host.
func (h *Host) ActiveContentRoot() model.Node {
	if h.root == nil {
		return nil
	}
	return h.root
}

// ActivePanel implements platform.Host.
func (h *Host) ActivePanel() model.Node {
	if h.panel == nil {
		return nil
	}
	return h.panel
}

// WindowOrigin implements platform.Host.
func (h *Host) WindowOrigin() (model.Point, error) {
	return h.origin, nil
}

// SetFocus moves the host's focus cursor. An empty id clears focus.
func (h *Host) SetFocus(id string) error {
	if id == "" {
		h.focus = nil
		return nil
	}
	n, err := h.Find(id)
	if err != nil {
		return err
	}
	h.focus = n
	return nil
}

// SetPanel designates the active panel. An empty id clears it.
func (h *Host) SetPanel(id string) error {
	if id == "" {
		h.panel = nil
		return nil
	}
	n, err := h.Find(id)
	if err != nil {
		return err
	}
	h.panel = n
	return nil
}

// SetHidden shows or hides a node and its subtree.
func (h *Host) SetHidden(id string, hidden bool) error {
	n, err := h.Find(id)
	if err != nil {
		return err
	}
	n.spec.Hidden = hidden
	return nil
}

// SetChecked changes a toggle's state, keeping custom-widget fields in sync.
func (h *Host) SetChecked(id string, v bool) error {
	n, err := h.Find(id)
	if err != nil {
		return err
	}
	n.setChecked(v)
	return nil
}

// SetRowIndex rebinds a row node to another data index, the way a
// virtualized table recycles rows while scrolling.
func (h *Host) SetRowIndex(id string, index int) error {
	n, err := h.Find(id)
	if err != nil {
		return err
	}
	n.spec.Index = &index
	if n.spec.Fields != nil {
		if _, ok := n.spec.Fields["index"]; ok {
			n.spec.Fields["index"] = index
		}
	}
	return nil
}

// WriteLabel assigns a node's label text and notifies OnLabelWrite. For
// write-only nodes this is the only way the text becomes known.
func (h *Host) WriteLabel(id, text string) error {
	n, err := h.Find(id)
	if err != nil {
		return err
	}
	n.spec.Text = &text
	if h.OnLabelWrite != nil {
		h.OnLabelWrite(n.handle, text)
	}
	return nil
}

// SetText replaces a node's text without going through the label write
// path.
func (h *Host) SetText(id, text string) error {
	n, err := h.Find(id)
	if err != nil {
		return err
	}
	n.spec.Text = &text
	return nil
}

// IDOf returns the fixture id of a node, or "" for nodes without one.
func (h *Host) IDOf(n model.Node) string {
	fn, ok := n.(*Node)
	if !ok || fn == nil {
		return ""
	}
	return fn.spec.ID
}

func (h *Host) record(n *Node, action string) {
	id := n.spec.ID
	if id == "" {
		id = fmt.Sprintf("#%d", n.handle)
	}
	h.Events = append(h.Events, Event{ID: id, Action: action})
}

// NewProvider bundles a host with a transcript speaker and a recording
// inputter. A nil inputter leaves the provider without pointer input.
func NewProvider(h *Host, t *Transcript, in *RecordingInputter) *platform.Provider {
	p := &platform.Provider{Host: h, Speaker: t}
	if in != nil {
		p.Inputter = in
	}
	return p
}

// Node is one fixture node. It implements model.Node and every optional
// capability; capabilities the node spec leaves unset return
// model.ErrUnsupported.
type Node struct {
	host     *Host
	handle   model.Handle
	spec     NodeSpec
	parent   *Node
	children []*Node
}

func (n *Node) inspect() {
	if n.spec.Broken {
		panic(fmt.Sprintf("node %q was destroyed", n.spec.ID))
	}
}

// ID returns the fixture id.
func (n *Node) ID() string { return n.spec.ID }

// Handle returns the host-assigned identity, stable for the host's lifetime.
func (n *Node) Handle() model.Handle { return n.handle }

// TypeName returns the node's runtime type. It panics on a broken node.
func (n *Node) TypeName() string {
	n.inspect()
	return n.spec.Type
}

// Name returns the declared name. It panics on a broken node.
func (n *Node) Name() string {
	n.inspect()
	return n.spec.Name
}

// Visible reports whether neither the node nor any ancestor is hidden.
func (n *Node) Visible() bool {
	if n.spec.Hidden {
		return false
	}
	if n.parent != nil {
		return n.parent.Visible()
	}
	return true
}

// Enabled reports the node's own enabled flag.
func (n *Node) Enabled() bool { return !n.spec.Disabled }

// EnabledInHierarchy reports whether no ancestor is disabled either.
func (n *Node) EnabledInHierarchy() bool {
	if n.spec.Disabled {
		return false
	}
	if n.parent != nil {
		return n.parent.EnabledInHierarchy()
	}
	return true
}

// Bounds returns the panel-local rectangle, or a zero Rect when unset.
func (n *Node) Bounds() model.Rect {
	if len(n.spec.Bounds) != 4 {
		return model.Rect{}
	}
	b := n.spec.Bounds
	return model.Rect{X: b[0], Y: b[1], Width: b[2], Height: b[3]}
}

// Style maps display "none" to Hidden. Opacity defaults to 1.
func (n *Node) Style() model.Style {
	st := model.Style{Hidden: strings.EqualFold(n.spec.Display, "none"), Opacity: 1}
	if n.spec.Opacity != nil {
		st.Opacity = *n.spec.Opacity
	}
	return st
}

// ChildCount and Child expose the ordered children.
func (n *Node) ChildCount() int { return len(n.children) }

func (n *Node) Child(i int) model.Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Parent returns nil at the root.
func (n *Node) Parent() model.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Text returns the node's text. Write-only labels do not expose it.
func (n *Node) Text() (string, error) {
	n.inspect()
	if n.spec.Text == nil || n.spec.WriteOnly {
		return "", model.ErrUnsupported
	}
	return *n.spec.Text, nil
}

// StaticText is the caption field, which the fixture shares with Text.
func (n *Node) StaticText() (string, error) {
	return n.Text()
}

// ToggleValue is the standard toggle value. Custom widgets keep theirs in
// internal fields instead.
func (n *Node) ToggleValue() (bool, error) {
	if n.spec.Checked == nil || model.IsCustomWidget(n.spec.Type) {
		return false, model.ErrUnsupported
	}
	return *n.spec.Checked, nil
}

// Value returns the configured value, such as a dropdown selection.
func (n *Node) Value() (string, error) {
	if n.spec.Value == nil {
		return "", model.ErrUnsupported
	}
	return *n.spec.Value, nil
}

// Field reads a custom widget's internal field.
func (n *Node) Field(name string) (any, error) {
	v, ok := n.spec.Fields[name]
	if !ok {
		return nil, model.ErrUnsupported
	}
	return v, nil
}

// Classes returns the node's style classes.
func (n *Node) Classes() []string { return n.spec.Classes }

// RowIndex returns the data index a recycled row is bound to.
func (n *Node) RowIndex() (int, error) {
	if n.spec.Index == nil {
		return 0, model.ErrUnsupported
	}
	return *n.spec.Index, nil
}

// SendClick, Invoke and Activate perform the matching action when the node
// lists it, and report model.ErrUnsupported otherwise.
func (n *Node) SendClick() error { return n.perform("click") }

func (n *Node) Invoke() error { return n.perform("invoke") }

func (n *Node) Activate() error { return n.perform("activate") }

// perform runs a configured action: it is recorded and toggles or selects
// checkable widgets.
func (n *Node) perform(action string) error {
	if !slices.Contains(n.spec.Actions, action) {
		return model.ErrUnsupported
	}
	if n.spec.Disabled {
		return fmt.Errorf("node %q is disabled", n.spec.ID)
	}
	n.host.record(n, action)
	switch model.MapFamily(n.spec.Type) {
	case model.FamilyCheckbox, model.FamilyToggle:
		n.setChecked(!n.checked())
	case model.FamilyRadio:
		n.setChecked(true)
	}
	return nil
}

func (n *Node) checked() bool {
	if n.spec.Checked != nil {
		return *n.spec.Checked
	}
	for _, f := range []string{"isChecked", "isSelected", "isOn"} {
		if v, ok := n.spec.Fields[f].(bool); ok {
			return v
		}
	}
	return false
}

func (n *Node) setChecked(v bool) {
	n.spec.Checked = &v
	for _, f := range []string{"isChecked", "isSelected", "isOn"} {
		if _, ok := n.spec.Fields[f]; ok {
			n.spec.Fields[f] = v
		}
	}
}
