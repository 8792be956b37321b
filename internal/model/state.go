package model

import (
	"fmt"
	"strings"
)

// Spoken state strings.
const (
	StateChecked     = "Checked"
	StateNotChecked  = "Not checked"
	StateSelected    = "Selected"
	StateNotSelected = "Not selected"
)

var (
	// customCheckedFields are the internal booleans custom toggles keep.
	customCheckedFields = []string{"isChecked", "isOn", "value", "m_Value"}
	// customRadioFields are the internal booleans custom radio buttons keep.
	customRadioFields = []string{"isSelected", "isChecked", "value", "m_Value"}
	// checkmarkNames are child names and classes that draw a checkmark.
	checkmarkNames = []string{"checkmark", "Checkmark", "unity-checkmark", "check-icon", "tick"}
	// checkedClasses mark a checked toggle.
	checkedClasses = []string{"checked", "is-checked", "unity-toggle--checked", "toggle--on", "on"}
	// selectedClasses mark a selected toggle-style button.
	selectedClasses = []string{"selected", "active", "pressed", "is-selected", "is-active", "toggled", "on"}
)

// ReadState returns the spoken state for n, or "" when the family has no
// state or none could be read. Every getter failure falls through to the
// next source.
func ReadState(n Node, cl Classification) (state string) {
	if n == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			state = ""
		}
	}()
	switch cl.Family {
	case FamilyCheckbox, FamilyToggle:
		if checkboxChecked(n) {
			return StateChecked
		}
		return StateNotChecked
	case FamilyRadio:
		for _, f := range customRadioFields {
			if v, ok := fieldBool(n, f); ok {
				if v {
					return StateSelected
				}
				return StateNotSelected
			}
		}
		return ""
	case FamilyDropdown:
		return dropdownValue(n)
	case FamilyButton:
		if hasClass(n, selectedClasses...) {
			return StateSelected
		}
	}
	return ""
}

// checkboxChecked tries the standard toggle value, a custom internal field,
// a visible checkmark child, then checked classes. No signal means
// unchecked.
func checkboxChecked(n Node) bool {
	if ts, ok := n.(ToggleSource); ok {
		if v, err := ts.ToggleValue(); err == nil {
			return v
		}
	}
	for _, f := range customCheckedFields {
		if v, ok := fieldBool(n, f); ok {
			return v
		}
	}
	if mark := findCheckmark(n); mark != nil {
		return IsShown(mark)
	}
	return hasClass(n, checkedClasses...)
}

func findCheckmark(n Node) Node {
	var found Node
	Walk(n, WalkOptions{MaxDepth: 3}, func(x Node, _ int) bool {
		if found != nil {
			return false
		}
		name := x.Name()
		for _, c := range checkmarkNames {
			if name == c || hasClass(x, c) {
				found = x
				return false
			}
		}
		return true
	})
	return found
}

// dropdownValue reads the selected option text.
func dropdownValue(n Node) string {
	if vs, ok := n.(ValueSource); ok {
		if v, err := vs.Value(); err == nil {
			if s := Strip(v); s != "" {
				return s
			}
		}
	}
	if fs, ok := n.(FieldSource); ok {
		if v, err := fs.Field("value"); err == nil && v != nil {
			if s := Strip(fmt.Sprint(v)); s != "" {
				return s
			}
		}
	}
	for _, s := range textLeaves(n, false) {
		if s = Strip(s); s != "" && !strings.EqualFold(s, "▼") {
			return s
		}
	}
	return ""
}
