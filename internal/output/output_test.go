package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/screen-bridge/internal/model"
)

func sampleRead() ReadResult {
	return ReadResult{
		Source: "settings.yaml",
		TS:     1707500000,
		Elements: []model.ReadableElement{
			{Handle: 3, Parent: 1, Text: "OK", TypeHint: "button", Bounds: model.Rect{X: 10, Y: 20, Width: 100, Height: 30}, Depth: 1},
		},
	}
}

func TestPrintJSON_Compact(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, sampleRead(), false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	// Compact output should be a single line (plus newline from Encode)
	if strings.Count(out, "\n") > 1 {
		t.Errorf("compact output should be single line, got:\n%s", out)
	}

	var decoded ReadResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Source != "settings.yaml" {
		t.Errorf("source: got %q, want %q", decoded.Source, "settings.yaml")
	}
	if len(decoded.Elements) != 1 || decoded.Elements[0].Text != "OK" {
		t.Errorf("elements: got %+v", decoded.Elements)
	}
	if decoded.Elements[0].Bounds.Width != 100 {
		t.Errorf("bounds: got %+v", decoded.Elements[0].Bounds)
	}
}

func TestPrintJSON_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, sampleRead(), true); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") <= 1 {
		t.Errorf("pretty output should be multi-line, got:\n%s", buf.String())
	}
}

func TestPrintYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintYAML(&buf, sampleRead()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "text: OK") {
		t.Errorf("YAML output missing element text:\n%s", out)
	}

	var decoded ReadResult
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(decoded.Elements) != 1 || decoded.Elements[0].TypeHint != "button" {
		t.Errorf("elements: got %+v", decoded.Elements)
	}
}

func TestReadResult_OmitEmpty(t *testing.T) {
	data, err := yaml.Marshal(ReadResult{TS: 123, Elements: []model.ReadableElement{}})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["source"]; ok {
		t.Error("empty source should be omitted")
	}
	if _, ok := m["ts"]; !ok {
		t.Error("ts should always be present")
	}
}

func TestPanelElementState(t *testing.T) {
	els := NewPanelElements([]model.AccessibleElement{{Handle: 1, Label: "Mute", TypeText: "checkbox"}})
	var buf bytes.Buffer
	if err := PrintJSON(&buf, els, false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"label":"Mute"`) || !strings.Contains(out, `"type":"checkbox"`) {
		t.Errorf("unexpected JSON: %s", out)
	}
	if strings.Contains(out, `"state"`) {
		t.Errorf("empty state should be omitted: %s", out)
	}
}

func TestFprintFormats(t *testing.T) {
	defer func(f Format) { OutputFormat = f }(OutputFormat)

	for _, tt := range []struct {
		format Format
		prefix string
	}{
		{FormatJSON, "{"},
		{FormatYAML, "source:"},
	} {
		OutputFormat = tt.format
		var buf bytes.Buffer
		if err := Fprint(&buf, sampleRead()); err != nil {
			t.Fatalf("%s: %v", tt.format, err)
		}
		if !strings.HasPrefix(buf.String(), tt.prefix) {
			t.Errorf("%s output starts %q", tt.format, buf.String()[:10])
		}
	}

	OutputFormat = "xml"
	if err := Fprint(&bytes.Buffer{}, 1); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatYAML, "yaml": FormatYAML, "json": FormatJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("agent"); err == nil {
		t.Error("expected error for agent format")
	}
}
