package model

import "strings"

// Family is the semantic node family the bridge drives all branching off.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyContainer
	FamilyText
	FamilyImage
	FamilyButton
	FamilyCloseButton
	FamilyCheckbox
	FamilyToggle
	FamilyRadio
	FamilyDropdown
	FamilyTextField
	FamilySlider
	FamilyLink
	FamilyTable
	FamilyHeaderRow
	FamilyHeaderCell
	FamilyTableRow
	FamilySelectorRow
	FamilySelectorCell
	FamilyTableCell
	FamilySection
	FamilyDialog
	FamilyScrollView
)

var familyNames = map[Family]string{
	FamilyUnknown:      "unknown",
	FamilyContainer:    "container",
	FamilyText:         "text",
	FamilyImage:        "image",
	FamilyButton:       "button",
	FamilyCloseButton:  "close-button",
	FamilyCheckbox:     "checkbox",
	FamilyToggle:       "toggle",
	FamilyRadio:        "radio",
	FamilyDropdown:     "dropdown",
	FamilyTextField:    "text-field",
	FamilySlider:       "slider",
	FamilyLink:         "link",
	FamilyTable:        "table",
	FamilyHeaderRow:    "header-row",
	FamilyHeaderCell:   "header-cell",
	FamilyTableRow:     "table-row",
	FamilySelectorRow:  "selector-row",
	FamilySelectorCell: "selector-cell",
	FamilyTableCell:    "table-cell",
	FamilySection:      "section",
	FamilyDialog:       "dialog",
	FamilyScrollView:   "scroll-view",
}

func (f Family) String() string {
	if s, ok := familyNames[f]; ok {
		return s
	}
	return "unknown"
}

// FamilyTableVersion identifies the revision of typeTable. Bump it when
// the host ships new widget families.
const FamilyTableVersion = 3

// familyEntry maps a type-name substring to a family.
type familyEntry struct {
	Match  string
	Family Family
}

// typeTable is the closed lookup table from host type names to families.
// Order matters: the first entry whose Match is a substring of the type name
// wins, so more specific names come before the generic ones they contain.
var typeTable = []familyEntry{
	{"HeaderCell", FamilyHeaderCell},
	{"ColumnHeader", FamilyHeaderCell},
	{"HeaderRow", FamilyHeaderRow},
	{"TableHeader", FamilyHeaderRow},
	{"SelectableRow", FamilySelectorRow},
	{"SelectorRow", FamilySelectorRow},
	{"SelectionCell", FamilySelectorCell},
	{"SelectorCell", FamilySelectorCell},
	{"TableRow", FamilyTableRow},
	{"DataRow", FamilyTableRow},
	{"TableCell", FamilyTableCell},
	{"DataCell", FamilyTableCell},
	{"MultiColumnListView", FamilyTable},
	{"TableView", FamilyTable},
	{"DataGrid", FamilyTable},
	{"CloseButton", FamilyCloseButton},
	{"RadioButtonGroup", FamilyContainer},
	{"RadioButton", FamilyRadio},
	{"Radio", FamilyRadio},
	{"CheckBox", FamilyCheckbox},
	{"Checkbox", FamilyCheckbox},
	{"Toggle", FamilyToggle},
	{"Switch", FamilyToggle},
	{"DropdownField", FamilyDropdown},
	{"Dropdown", FamilyDropdown},
	{"PopupField", FamilyDropdown},
	{"EnumField", FamilyDropdown},
	{"TextField", FamilyTextField},
	{"InputField", FamilyTextField},
	{"Slider", FamilySlider},
	{"Hyperlink", FamilyLink},
	{"Link", FamilyLink},
	{"Button", FamilyButton},
	{"Label", FamilyText},
	{"TextElement", FamilyText},
	{"TextBlock", FamilyText},
	{"Image", FamilyImage},
	{"Icon", FamilyImage},
	{"Section", FamilySection},
	{"Dialog", FamilyDialog},
	{"Modal", FamilyDialog},
	{"Popup", FamilyDialog},
	{"ScrollView", FamilyScrollView},
	{"VisualElement", FamilyContainer},
	{"Container", FamilyContainer},
	{"Panel", FamilyContainer},
	{"Box", FamilyContainer},
}

// customPrefixes mark the host's own widget families, which keep their
// state in internal fields instead of the standard value properties.
var customPrefixes = []string{"Custom", "Styled", "Game"}

// MapFamily converts a runtime type name to a family.
func MapFamily(typeName string) Family {
	for _, e := range typeTable {
		if strings.Contains(typeName, e.Match) {
			return e.Family
		}
	}
	return FamilyUnknown
}

// IsCustomWidget reports whether the type name belongs to a custom family.
func IsCustomWidget(typeName string) bool {
	for _, p := range customPrefixes {
		if strings.HasPrefix(typeName, p) {
			return true
		}
	}
	return false
}

// ElementType is the announced control type.
type ElementType int

const (
	ElementNone ElementType = iota
	ElementButton
	ElementCheckbox
	ElementLink
	ElementDropdown
	ElementTextField
	ElementSlider
	ElementRadioButton
)

var elementTypeNames = map[ElementType]string{
	ElementButton:      "button",
	ElementCheckbox:    "checkbox",
	ElementLink:        "link",
	ElementDropdown:    "dropdown",
	ElementTextField:   "text field",
	ElementSlider:      "slider",
	ElementRadioButton: "radio button",
}

// String returns the spoken type name, or "" for ElementNone.
func (t ElementType) String() string {
	return elementTypeNames[t]
}

// ElementTypeOf maps a family to the announced element type.
func ElementTypeOf(f Family) ElementType {
	switch f {
	case FamilyButton, FamilyCloseButton:
		return ElementButton
	case FamilyCheckbox, FamilyToggle:
		return ElementCheckbox
	case FamilyLink:
		return ElementLink
	case FamilyDropdown:
		return ElementDropdown
	case FamilyTextField:
		return ElementTextField
	case FamilySlider:
		return ElementSlider
	case FamilyRadio:
		return ElementRadioButton
	}
	return ElementNone
}

// interactiveFamilies are the families that can hold focus.
var interactiveFamilies = map[Family]bool{
	FamilyButton:      true,
	FamilyCloseButton: true,
	FamilyCheckbox:    true,
	FamilyToggle:      true,
	FamilyRadio:       true,
	FamilyDropdown:    true,
	FamilyTextField:   true,
	FamilySlider:      true,
	FamilyLink:        true,
	FamilyHeaderRow:   true,
	FamilyHeaderCell:  true,
	FamilyTableRow:    true,
	FamilySelectorRow: true,
	FamilyTableCell:   true,
}

// IsInteractive reports whether nodes of the family can hold focus.
func IsInteractive(f Family) bool {
	return interactiveFamilies[f]
}
