package model

import "log/slog"

// ReadableElement is one entry of the reading-mode list. Text is always
// sanitized and non-empty.
type ReadableElement struct {
	Node     Node   `yaml:"-"         json:"-"`
	Handle   Handle `yaml:"handle"    json:"handle"`
	Parent   Handle `yaml:"parent"    json:"parent"`
	Text     string `yaml:"text"      json:"text"`
	TypeHint string `yaml:"type,omitempty" json:"type,omitempty"`
	Bounds   Rect   `yaml:"bounds"    json:"bounds"`
	Depth    int    `yaml:"depth"     json:"depth"`
}

// Announcement is how the element is spoken in reading mode.
func (e ReadableElement) Announcement() string {
	if e.TypeHint == "" {
		return e.Text
	}
	return e.Text + ", " + e.TypeHint
}

// AccessibleElement is a focusable control of the active panel. A panel
// refresh replaces the whole generation; elements are never patched.
type AccessibleElement struct {
	Node     Node        `yaml:"-"                 json:"-"`
	Handle   Handle      `yaml:"handle"            json:"handle"`
	Type     ElementType `yaml:"-"                 json:"-"`
	TypeText string      `yaml:"type,omitempty"    json:"type,omitempty"`
	Label    string      `yaml:"label"             json:"label"`
	Section  string      `yaml:"section,omitempty" json:"section,omitempty"`
	TypeName string      `yaml:"type_name"         json:"type_name"`
	Bounds   Rect        `yaml:"bounds"            json:"bounds"`

	state func() string
}

// State evaluates the element's current state on demand.
func (e AccessibleElement) State() string {
	if e.state == nil {
		return ""
	}
	return e.state()
}

// sectionDepth bounds the walk from a control up to its section.
const sectionDepth = 10

// NewAccessibleElement describes n for announcement.
func NewAccessibleElement(n Node, cl Classification, labels *LabelExtractor) AccessibleElement {
	return AccessibleElement{
		Node:     n,
		Handle:   n.Handle(),
		Type:     cl.ElementType,
		TypeText: cl.ElementType.String(),
		Label:    labels.ExtractLabel(n),
		Section:  SectionName(n),
		TypeName: cl.TypeName,
		Bounds:   n.Bounds(),
		state:    func() string { return ReadState(n, cl) },
	}
}

// SectionName returns the label of the nearest enclosing section: the first
// text leaf directly under the section, else its cleaned declared name.
func SectionName(n Node) string {
	sec := FindAncestor(n, sectionDepth, false, FamilySection)
	if sec == nil {
		return ""
	}
	for _, child := range Children(sec) {
		if MapFamily(child.TypeName()) == FamilyText {
			if s := Clean(nodeText(child)); s != "" {
				return s
			}
		}
	}
	return CleanIdentifier(sec.Name(), FamilySection)
}

// CollectAccessible builds a fresh generation of focusable elements under
// root, in coarse focus order grouped by rowThreshold
// (0 = FocusRowThreshold).
func CollectAccessible(root Node, c *Classifier, labels *LabelExtractor, maxDepth int, rowThreshold float64, logger *slog.Logger) []AccessibleElement {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if rowThreshold <= 0 {
		rowThreshold = FocusRowThreshold
	}
	var out []AccessibleElement
	Walk(root, WalkOptions{MaxDepth: maxDepth, IncludeRoot: true, Logger: logger}, func(n Node, _ int) bool {
		cl := c.Classify(n)
		if !cl.Focusable {
			return true
		}
		out = append(out, NewAccessibleElement(n, cl, labels))
		return true
	})
	OrderByPosition(out, func(e AccessibleElement) Rect { return e.Bounds }, rowThreshold)
	return out
}
