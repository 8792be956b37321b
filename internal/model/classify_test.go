package model

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		node        *tn
		family      Family
		focusable   bool
		readable    bool
		elementType ElementType
	}{
		{"button", node("Button").withCaption("OK"), FamilyButton, true, true, ElementButton},
		{"label", label("Hello"), FamilyText, false, true, ElementNone},
		{"hidden button", node("Button").withCaption("OK").hide(), FamilyButton, false, false, ElementButton},
		{"disabled button", node("Button").withCaption("OK").disable(), FamilyButton, false, true, ElementButton},
		{"unnamed container", node("ButtonContainer"), FamilyButton, false, false, ElementButton},
		{"named container", node("ButtonContainer").named("saveBtn"), FamilyButton, true, true, ElementButton},
		{"toggle", node("Toggle"), FamilyToggle, true, true, ElementCheckbox},
		{"unnamed section", node("Section"), FamilySection, false, false, ElementNone},
		{"named dialog", node("ModalDialog").named("confirm"), FamilyDialog, false, true, ElementNone},
	}
	c := &Classifier{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node("VisualElement", tt.node)
			cl := c.Classify(tt.node)
			if cl.Family != tt.family {
				t.Errorf("family = %s, want %s", cl.Family, tt.family)
			}
			if cl.Focusable != tt.focusable {
				t.Errorf("focusable = %v, want %v", cl.Focusable, tt.focusable)
			}
			if cl.Readable != tt.readable {
				t.Errorf("readable = %v, want %v", cl.Readable, tt.readable)
			}
			if cl.ElementType != tt.elementType {
				t.Errorf("element type = %q, want %q", cl.ElementType, tt.elementType)
			}
		})
	}
}

func TestClassify_CoveredCaption(t *testing.T) {
	caption := label("Save")
	node("Button", caption)
	if (&Classifier{}).Classify(caption).Readable {
		t.Error("a button's caption label should not be read separately")
	}
}

func TestClassify_PanelScope(t *testing.T) {
	inside := node("Button").withCaption("Yes")
	outside := node("Button").withCaption("Menu")
	dialog := node("ModalDialog").named("confirm").add(inside)
	node("VisualElement", outside, dialog)

	c := &Classifier{Panel: dialog}
	if !c.Classify(inside).Focusable {
		t.Error("button inside the active panel should be focusable")
	}
	if c.Classify(outside).Focusable {
		t.Error("button outside the active panel should not be focusable")
	}
}

func TestClassify_CloseButton(t *testing.T) {
	tests := []struct {
		name string
		node *tn
		want bool
	}{
		{"glyph child", node("Button", label("×")), true},
		{"named", node("Button").named("closeBtn"), true},
		{"parent named dismiss", node("Panel", node("Button").withCaption("OK")).named("dismissArea").kids[0], true},
		{"captioned", node("Button", label("×")).withCaption("Remove"), false},
		{"close family", node("CloseButton"), true},
		{"plain", node("Button").withCaption("Save"), false},
	}
	for _, tt := range tests {
		cl := (&Classifier{}).Classify(tt.node)
		if cl.CloseButton != tt.want {
			t.Errorf("%s: close = %v, want %v", tt.name, cl.CloseButton, tt.want)
		}
		if tt.want && cl.ElementType != ElementButton {
			t.Errorf("%s: close button element type = %q", tt.name, cl.ElementType)
		}
	}
}

func TestClassify_Table(t *testing.T) {
	c := &Classifier{}
	if cl := c.Classify(node("HeaderCell")); !cl.TableHeader || cl.TableRow {
		t.Errorf("header cell: %+v", cl)
	}
	if cl := c.Classify(node("SelectorRow")); !cl.TableRow || cl.Family != FamilySelectorRow {
		t.Errorf("selector row: %+v", cl)
	}
}

func TestMapFamily(t *testing.T) {
	tests := map[string]Family{
		"CustomToggle":         FamilyToggle,
		"UnityEngine.UIButton": FamilyButton,
		"TableHeaderRow":       FamilyHeaderRow,
		"DataGridView":         FamilyTable,
		"RadioButtonGroup":     FamilyContainer,
		"RadioButton":          FamilyRadio,
		"Widget":               FamilyUnknown,
	}
	for name, want := range tests {
		if got := MapFamily(name); got != want {
			t.Errorf("MapFamily(%q) = %s, want %s", name, got, want)
		}
	}
	if !IsCustomWidget("CustomToggle") || IsCustomWidget("Toggle") {
		t.Error("IsCustomWidget")
	}
}
