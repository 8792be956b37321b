package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/screen-bridge/internal/focus"
	"github.com/mj1618/screen-bridge/internal/model"
	"github.com/mj1618/screen-bridge/internal/platform/fixture"
	"github.com/mj1618/screen-bridge/internal/replay"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat validates a --format value. Empty means YAML.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "yaml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use yaml or json)", s)
	}
}

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// ReadResult is the output of the `read` command: the reading-mode list.
type ReadResult struct {
	Source   string                  `yaml:"source,omitempty" json:"source,omitempty"`
	TS       int64                   `yaml:"ts"               json:"ts"`
	Start    int                     `yaml:"start"            json:"start"`
	Elements []model.ReadableElement `yaml:"elements"         json:"elements"`
}

// ElementsResult is the output of the `elements` command: one panel
// generation.
type ElementsResult struct {
	Source   string         `yaml:"source,omitempty" json:"source,omitempty"`
	TS       int64          `yaml:"ts"               json:"ts"`
	Panel    string         `yaml:"panel,omitempty"  json:"panel,omitempty"`
	Elements []PanelElement `yaml:"elements"         json:"elements"`
}

// PanelElement is an AccessibleElement with its state evaluated.
type PanelElement struct {
	model.AccessibleElement `yaml:",inline"`
	State                   string `yaml:"state,omitempty" json:"state,omitempty"`
}

// NewPanelElements evaluates each element's state.
func NewPanelElements(els []model.AccessibleElement) []PanelElement {
	out := make([]PanelElement, len(els))
	for i, el := range els {
		out[i] = PanelElement{AccessibleElement: el, State: el.State()}
	}
	return out
}

// LabelResult is the output of the `label` command for one node.
type LabelResult struct {
	ID          string `yaml:"id"                     json:"id"`
	Type        string `yaml:"type"                   json:"type"`
	Family      string `yaml:"family"                 json:"family"`
	Label       string `yaml:"label"                  json:"label"`
	Section     string `yaml:"section,omitempty"      json:"section,omitempty"`
	ElementType string `yaml:"element_type,omitempty" json:"element_type,omitempty"`
	State       string `yaml:"state,omitempty"        json:"state,omitempty"`
	Focusable   bool   `yaml:"focusable"              json:"focusable"`
	Readable    bool   `yaml:"readable"               json:"readable"`
	Row         string `yaml:"row,omitempty"          json:"row,omitempty"`
	Header      string `yaml:"header,omitempty"       json:"header,omitempty"`
	Announce    string `yaml:"announce,omitempty"     json:"announce,omitempty"`
}

// NewLabelResult describes the node behind el: its classification, label
// and the announcement focus narration would produce for it.
func NewLabelResult(id string, el model.AccessibleElement, cl model.Classification) LabelResult {
	r := LabelResult{
		ID:          id,
		Type:        cl.TypeName,
		Family:      cl.Family.String(),
		Label:       el.Label,
		Section:     el.Section,
		ElementType: el.TypeText,
		State:       el.State(),
		Focusable:   cl.Focusable,
		Readable:    cl.Readable,
	}
	if model.IsHeaderRow(el.Node) {
		r.Header = model.ExtractHeaderText(el.Node)
		r.Announce = r.Header
		return r
	}
	if row := model.FindRowAncestor(el.Node, model.RowSearchDepth); row != nil {
		r.Row = model.ExtractRowText(row)
		r.Announce = r.Row
		return r
	}
	r.Announce = focus.Compose(r.Section, r.Label, r.ElementType, r.State)
	return r
}

// ActivateResult is the output of the `activate` command.
type ActivateResult struct {
	Source   string          `yaml:"source,omitempty"   json:"source,omitempty"`
	Target   string          `yaml:"target"             json:"target"`
	OK       bool            `yaml:"ok"                 json:"ok"`
	Strategy string          `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	Spoken   []string        `yaml:"spoken,omitempty"   json:"spoken,omitempty"`
	Events   []fixture.Event `yaml:"events,omitempty"   json:"events,omitempty"`
	Clicks   []fixture.Click `yaml:"clicks,omitempty"   json:"clicks,omitempty"`
}

// ReplayResult is the output of the `replay` command.
type ReplayResult struct {
	Source     string              `yaml:"source,omitempty" json:"source,omitempty"`
	Summary    replay.Summary      `yaml:"summary"          json:"summary"`
	Utterances []fixture.Utterance `yaml:"utterances"       json:"utterances"`
	Events     []fixture.Event     `yaml:"events,omitempty" json:"events,omitempty"`
	Error      string              `yaml:"error,omitempty"  json:"error,omitempty"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return PrintJSON(w, v, PrettyOutput)
	case FormatYAML:
		return PrintYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v to w as JSON, indented when pretty is set.
func PrintJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// PrintYAML serializes v to w as YAML.
func PrintYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// YAMLString renders v as YAML text, for tool results.
func YAMLString(v interface{}) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("yaml encode: %w", err)
	}
	return string(b), nil
}
