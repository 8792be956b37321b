package model

import "strings"

// Classification is the semantic reading of one node.
type Classification struct {
	Family      Family
	ElementType ElementType
	TypeName    string // raw host type name, kept for logging
	Custom      bool   // custom widget family with internal-field state
	Focusable   bool
	Readable    bool
	TableRow    bool
	TableHeader bool
	CloseButton bool
}

// closeGlyphs are the single-character captions used for close buttons.
var closeGlyphs = map[string]bool{
	"X": true, "x": true, "×": true, "✕": true, "✖": true,
}

// coverDepth is how far up a node looks for an interactive ancestor that
// already announces it.
const coverDepth = 4

// Classifier derives semantic roles from node attributes. Panel, when set,
// is the active panel root; focusable nodes must descend from it.
type Classifier struct {
	Panel      Node
	PanelDepth int // ancestor walk bound for the panel check (0 = DefaultMaxDepth)
}

// Classify returns the classification of n. It reads node attributes only.
func (c *Classifier) Classify(n Node) Classification {
	if n == nil {
		return Classification{}
	}
	typeName := n.TypeName()
	fam := MapFamily(typeName)
	cl := Classification{
		Family:      fam,
		ElementType: ElementTypeOf(fam),
		TypeName:    typeName,
		Custom:      IsCustomWidget(typeName),
		TableRow:    fam == FamilyTableRow || fam == FamilySelectorRow,
		TableHeader: fam == FamilyHeaderRow || fam == FamilyHeaderCell,
	}
	cl.CloseButton = isCloseButton(n, fam)
	if cl.CloseButton {
		cl.ElementType = ElementButton
	}

	// Exclusions first: an unnamed generic container never qualifies, even if
	// some other signal would admit it.
	if isUnnamedContainer(n, fam) {
		return cl
	}
	shown := IsShown(n)
	cl.Readable = shown && c.readable(n, fam)

	if !shown || !n.EnabledInHierarchy() {
		return cl
	}
	if fam == FamilyText {
		return cl
	}
	if !IsInteractive(fam) && !cl.CloseButton {
		return cl
	}
	cl.Focusable = c.inPanel(n)
	return cl
}

func (c *Classifier) readable(n Node, fam Family) bool {
	switch {
	case fam == FamilyText, IsInteractive(fam):
	case fam == FamilySection || fam == FamilyDialog:
		if strings.TrimSpace(n.Name()) == "" {
			return false
		}
	default:
		return false
	}
	return !coveredByInteractive(n)
}

// coveredByInteractive reports whether an interactive ancestor already
// speaks for n (a button's caption label, a row's cells).
func coveredByInteractive(n Node) bool {
	covered := false
	WalkAncestors(n, coverDepth, func(a Node, _ int) bool {
		if IsInteractive(MapFamily(a.TypeName())) {
			covered = true
			return false
		}
		return true
	})
	return covered
}

// inPanel reports whether n descends from the active panel. An unreadable
// ancestor chain counts as inside so elements are not silently hidden.
func (c *Classifier) inPanel(n Node) bool {
	if c.Panel == nil {
		return true
	}
	panel := c.Panel.Handle()
	if n.Handle() == panel {
		return true
	}
	depth := c.PanelDepth
	if depth <= 0 {
		depth = DefaultMaxDepth
	}
	inside := false
	ok := WalkAncestors(n, depth, func(a Node, _ int) bool {
		if a.Handle() == panel {
			inside = true
			return false
		}
		return true
	})
	if !ok {
		return true
	}
	return inside
}

// containerTokens mark generic layout containers even when the type name
// also carries a control word ("ButtonContainer").
var containerTokens = []string{"VisualElement", "Container", "Wrapper", "Holder"}

func isUnnamedContainer(n Node, fam Family) bool {
	if strings.TrimSpace(n.Name()) != "" {
		return false
	}
	typeName := n.TypeName()
	for _, tok := range containerTokens {
		if strings.Contains(typeName, tok) {
			return true
		}
	}
	switch fam {
	case FamilyContainer, FamilyUnknown, FamilyScrollView:
		return nodeText(n) == ""
	}
	return false
}

func isCloseButton(n Node, fam Family) bool {
	if fam == FamilyCloseButton {
		return true
	}
	if fam != FamilyButton && fam != FamilyImage && fam != FamilyUnknown {
		return false
	}
	if nameSaysClose(n.Name()) {
		return true
	}
	if fam == FamilyButton {
		if p := n.Parent(); p != nil && nameSaysClose(p.Name()) {
			return true
		}
	}
	if fam != FamilyButton || staticText(n) != "" {
		return false
	}
	for _, child := range Children(n) {
		if closeGlyphs[strings.TrimSpace(nodeText(child))] {
			return true
		}
	}
	return false
}

func nameSaysClose(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "close") || strings.Contains(lower, "dismiss")
}

// staticText returns a control's caption field, or "".
func staticText(n Node) string {
	st, ok := n.(StaticTextSource)
	if !ok {
		return ""
	}
	s, err := st.StaticText()
	if err != nil {
		return ""
	}
	return s
}
