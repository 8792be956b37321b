package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// uiVerbs are captions preferred over any other descendant text.
var uiVerbs = map[string]bool{
	"yes": true, "no": true, "ok": true, "cancel": true, "apply": true,
	"save": true, "close": true, "back": true, "next": true, "confirm": true,
	"decline": true, "accept": true, "continue": true, "skip": true, "done": true,
}

// identifierWords and identifierSuffixes mark strings that are internal
// element names rather than text meant for people.
var (
	identifierWords    = []string{"default", "container", "wrapper", "element", "root", "content"}
	identifierSuffixes = []string{"button", "toggle", "checkbox", "field", "input"}
)

// IsInternalIdentifier reports whether s looks like an element name.
func IsInternalIdentifier(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, w := range identifierWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	for _, suf := range identifierSuffixes {
		if strings.HasSuffix(lower, suf) {
			return true
		}
	}
	return false
}

const (
	fieldLabelLevels   = 4
	checkboxLabelLevel = 5
	siblingScan        = 5
)

// LabelExtractor resolves the best human-readable label for a node.
type LabelExtractor struct {
	Classifier *Classifier
	Cache      *LabelCache
}

// ExtractLabel runs the label cascade and returns the first non-empty,
// sanitized result, or "".
//
// Cascade:
//  1. a control's own caption field (shadow store first, then direct read)
//  2. the node's own text, when it is a text leaf
//  3. descendant text leaves: a UI verb first, then any plausible text
//  4. for form fields, a text sibling near the node or its ancestors
//  5. for checkboxes, text anywhere in nearby sibling subtrees
//  6. the node's declared name, cleaned of widget tokens
func (e *LabelExtractor) ExtractLabel(n Node) (label string) {
	if n == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			label = ""
		}
	}()
	fam := MapFamily(n.TypeName())

	if captionFamilies[fam] {
		if s := Clean(e.directCaption(n)); s != "" {
			return s
		}
	}
	if fam == FamilyText {
		if s := Clean(nodeText(n)); s != "" && !IsInternalIdentifier(s) {
			return s
		}
	}
	if s := descendantLabel(n); s != "" {
		return s
	}
	switch fam {
	case FamilyTextField, FamilyDropdown, FamilySlider:
		if s := fieldLabel(n); s != "" {
			return s
		}
	case FamilyCheckbox, FamilyToggle:
		if s := checkboxLabel(n); s != "" {
			return s
		}
	}
	return CleanIdentifier(n.Name(), fam)
}

// captionFamilies carry a caption field distinct from their value. Text
// fields, sliders and dropdowns expose their value through the same getter.
var captionFamilies = map[Family]bool{
	FamilyButton:      true,
	FamilyCloseButton: true,
	FamilyCheckbox:    true,
	FamilyToggle:      true,
	FamilyRadio:       true,
	FamilyLink:        true,
	FamilyHeaderCell:  true,
	FamilyTableCell:   true,
}

// directCaption returns the last value written through the host's
// write-only label path, else the live caption. Only the write path
// populates the store.
func (e *LabelExtractor) directCaption(n Node) string {
	if s, ok := e.Cache.Lookup(n.Handle()); ok && s != "" {
		return s
	}
	return staticText(n)
}

// textLeaves returns the cleaned text of every text-leaf descendant of n in
// pre-order. The walk has no depth bound; the visited set guards cycles.
func textLeaves(n Node, includeSelf bool) []string {
	var out []string
	Walk(n, WalkOptions{IncludeRoot: includeSelf}, func(x Node, _ int) bool {
		if MapFamily(x.TypeName()) != FamilyText {
			return true
		}
		if s := Clean(nodeText(x)); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}

func descendantLabel(n Node) string {
	texts := textLeaves(n, false)
	for _, s := range texts {
		if uiVerbs[strings.ToLower(s)] {
			return s
		}
	}
	for _, s := range texts {
		l := utf8.RuneCountInString(s)
		if l > 1 && l < 200 && !IsInternalIdentifier(s) {
			return s
		}
	}
	return ""
}

// siblingsAround returns up to siblingScan following siblings of n, then up
// to siblingScan preceding siblings, each group nearest first.
func siblingsAround(n, parent Node) []Node {
	kids := Children(parent)
	idx := -1
	for i, k := range kids {
		if k.Handle() == n.Handle() {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	var out []Node
	for i := idx + 1; i < len(kids) && i <= idx+siblingScan; i++ {
		out = append(out, kids[i])
	}
	for i := idx - 1; i >= 0 && i >= idx-siblingScan; i-- {
		out = append(out, kids[i])
	}
	return out
}

// fieldLabel looks for a text sibling of the node or one of its ancestors,
// covering labels placed after or before an input.
func fieldLabel(n Node) string {
	var found string
	cur := n
	visit := func(parent Node) bool {
		for _, sib := range siblingsAround(cur, parent) {
			if MapFamily(sib.TypeName()) != FamilyText {
				continue
			}
			s := Clean(nodeText(sib))
			if l := utf8.RuneCountInString(s); l >= 2 && l <= 100 {
				found = s
				return false
			}
		}
		cur = parent
		return true
	}
	WalkAncestors(n, fieldLabelLevels, func(parent Node, _ int) bool {
		return visit(parent)
	})
	return found
}

// checkboxLabel searches whole sibling subtrees around a checkbox and its
// ancestors. Text mentioning "acknowledge" beats any other long text.
func checkboxLabel(n Node) string {
	var candidates []string
	cur := n
	WalkAncestors(n, checkboxLabelLevel, func(parent Node, _ int) bool {
		for _, sib := range siblingsAround(cur, parent) {
			candidates = append(candidates, textLeaves(sib, true)...)
		}
		cur = parent
		return true
	})
	for _, s := range candidates {
		if strings.Contains(strings.ToLower(s), "acknowledge") {
			return s
		}
	}
	for _, s := range candidates {
		if l := utf8.RuneCountInString(s); l > 20 && l < 500 {
			return s
		}
	}
	return ""
}

// familyTokens are the name prefixes and suffixes each family's elements
// commonly carry ("okButton", "chk-terms", "volume_slider").
var familyTokens = map[Family][]string{
	FamilyButton:      {"button", "btn"},
	FamilyCloseButton: {"button", "btn"},
	FamilyCheckbox:    {"checkbox", "check", "chk", "toggle"},
	FamilyToggle:      {"toggle", "tgl", "switch"},
	FamilyRadio:       {"radiobutton", "radio", "rb"},
	FamilyDropdown:    {"dropdown", "popup", "dd"},
	FamilyTextField:   {"textfield", "inputfield", "input", "field", "txt"},
	FamilySlider:      {"slider", "sld"},
	FamilyLink:        {"hyperlink", "link", "lnk"},
	FamilyText:        {"label", "lbl", "text"},
}

// CleanIdentifier turns a declared element name into a spoken label: it
// strips the family's name tokens, splits kebab, snake and camel case into
// Title Case words, and returns "" if what is left still reads as an
// internal identifier or is shorter than two characters.
func CleanIdentifier(name string, fam Family) string {
	words := splitIdentifier(name)
	if len(words) == 0 {
		return ""
	}
	tokens := familyTokens[fam]
	isToken := func(w string) bool {
		for _, t := range tokens {
			if strings.EqualFold(w, t) {
				return true
			}
		}
		return false
	}
	for len(words) > 0 && isToken(words[0]) {
		words = words[1:]
	}
	for len(words) > 0 && isToken(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	out := Clean(strings.Join(words, " "))
	if utf8.RuneCountInString(out) < 2 || IsInternalIdentifier(out) {
		return ""
	}
	return out
}

// splitIdentifier splits on '-', '_', whitespace and lower-to-upper case
// boundaries.
func splitIdentifier(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '-' || r == '_' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
		case unicode.IsUpper(r) && i > 0 && i+1 < len(runes) &&
			unicode.IsUpper(runes[i-1]) && unicode.IsLower(runes[i+1]):
			flush()
		}
		cur = append(cur, r)
	}
	flush()
	return words
}
