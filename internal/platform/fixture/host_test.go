package fixture

import (
	"errors"
	"strings"
	"testing"

	"github.com/mj1618/screen-bridge/internal/model"
)

const sampleFixture = `
window: [100, 200]
focus: ok
root:
  id: root
  type: VisualElement
  bounds: [0, 0, 800, 600]
  children:
    - id: dialog
      type: ModalDialog
      name: settings
      bounds: [200, 150, 400, 300]
      children:
        - id: ok
          type: Button
          text: OK
          actions: [click]
          bounds: [250, 400, 80, 30]
        - id: terms
          type: CustomToggle
          fields: {isChecked: false}
          actions: [invoke]
        - id: caption
          type: Label
          write_only: true
        - id: gone
          type: Label
          text: hidden
          display: none
        - id: broken
          type: Label
          broken: true
script:
  - at: 100ms
    focus: terms
`

func mustHost(t *testing.T, doc string) *Host {
	t.Helper()
	spec, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	h, err := NewHost(spec)
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	return h
}

func TestNewHost(t *testing.T) {
	h := mustHost(t, sampleFixture)
	if got := h.IDOf(h.CurrentFocus()); got != "ok" {
		t.Errorf("focus = %q, want ok", got)
	}
	origin, err := h.WindowOrigin()
	if err != nil {
		t.Fatal(err)
	}
	if origin != (model.Point{X: 100, Y: 200}) {
		t.Errorf("origin = %v", origin)
	}
	if h.ActivePanel() != nil {
		t.Error("expected no designated panel")
	}
	if h.Root().ChildCount() != 1 {
		t.Errorf("root children = %d, want 1", h.Root().ChildCount())
	}
}

func TestHandlesAreSequential(t *testing.T) {
	h := mustHost(t, sampleFixture)
	seen := map[model.Handle]bool{}
	model.Walk(h.Root(), model.WalkOptions{IncludeRoot: true}, func(n model.Node, _ int) bool {
		if seen[n.Handle()] {
			t.Errorf("duplicate handle %d", n.Handle())
		}
		seen[n.Handle()] = true
		return true
	})
	if len(seen) < 6 {
		t.Errorf("visited %d nodes, want at least 6", len(seen))
	}
}

func TestFindMissing(t *testing.T) {
	h := mustHost(t, sampleFixture)
	_, err := h.Find("nope")
	if !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("err = %v, want ErrNodeNotFound", err)
	}
	if err := h.SetFocus("nope"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("SetFocus err = %v", err)
	}
}

func TestWriteOnlyLabel(t *testing.T) {
	h := mustHost(t, sampleFixture)
	var gotHandle model.Handle
	var gotText string
	h.OnLabelWrite = func(hd model.Handle, text string) {
		gotHandle, gotText = hd, text
	}
	n, _ := h.Find("caption")
	if _, err := n.Text(); !errors.Is(err, model.ErrUnsupported) {
		t.Fatalf("write-only Text() err = %v", err)
	}
	if err := h.WriteLabel("caption", "Volume"); err != nil {
		t.Fatal(err)
	}
	if gotHandle != n.Handle() || gotText != "Volume" {
		t.Errorf("hook got (%d, %q)", gotHandle, gotText)
	}
	if _, err := n.Text(); err == nil {
		t.Error("write-only label became readable")
	}
}

func TestActionsToggleState(t *testing.T) {
	h := mustHost(t, sampleFixture)
	n, _ := h.Find("terms")
	if err := n.SendClick(); !errors.Is(err, model.ErrUnsupported) {
		t.Errorf("SendClick err = %v, want ErrUnsupported", err)
	}
	if err := n.Invoke(); err != nil {
		t.Fatal(err)
	}
	v, err := n.Field("isChecked")
	if err != nil || v != true {
		t.Errorf("isChecked = %v, %v", v, err)
	}
	if len(h.Events) != 1 || h.Events[0] != (Event{ID: "terms", Action: "invoke"}) {
		t.Errorf("events = %v", h.Events)
	}
	// custom widgets hide the standard toggle value
	if _, err := n.ToggleValue(); err == nil {
		t.Error("custom toggle exposed ToggleValue")
	}
}

func TestStyleAndBroken(t *testing.T) {
	h := mustHost(t, sampleFixture)
	gone, _ := h.Find("gone")
	if model.IsShown(gone) {
		t.Error("display none node is shown")
	}
	ok, _ := h.Find("ok")
	if !model.IsShown(ok) {
		t.Error("ok button not shown")
	}
	broken, _ := h.Find("broken")
	defer func() {
		if recover() == nil {
			t.Error("broken node did not panic")
		}
	}()
	broken.TypeName()
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"bad window", "window: [1]\nroot: {type: Box}", "window"},
		{"bad duration", "root: {type: Box}\nscript:\n  - at: soon\n", "time.Duration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestNewHostErrors(t *testing.T) {
	docs := map[string]string{
		"duplicate id": "root: {id: a, type: Box, children: [{id: a, type: Box}]}",
		"bad bounds":   "root: {id: a, type: Box, bounds: [1, 2]}",
		"bad focus":    "focus: zz\nroot: {id: a, type: Box}",
	}
	for name, doc := range docs {
		spec, err := Parse([]byte(doc))
		if err != nil {
			t.Fatalf("%s: Parse: %v", name, err)
		}
		if _, err := NewHost(spec); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestTranscript(t *testing.T) {
	var sb strings.Builder
	tr := NewTranscript(&sb)
	tr.Speak("Hello", true)
	tr.SpeakAppend("world")
	tr.Silence()
	if got := tr.Texts(); len(got) != 2 || got[0] != "Hello" || got[1] != "world" {
		t.Errorf("Texts = %v", got)
	}
	if tr.Last() != "world" {
		t.Errorf("Last = %q", tr.Last())
	}
	if want := "Hello\n+ world\n[silence]\n"; sb.String() != want {
		t.Errorf("echo = %q, want %q", sb.String(), want)
	}
	tr.Reset()
	if len(tr.Utterances()) != 0 {
		t.Error("Reset kept utterances")
	}
}
