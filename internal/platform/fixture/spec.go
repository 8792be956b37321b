// Package fixture provides a simulated host backed by a YAML description of
// a visual tree. It stands in for the real host application in the CLI, the
// MCP server and every engine test.
package fixture

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNodeNotFound is returned when a fixture id does not name a node.
var ErrNodeNotFound = errors.New("fixture node not found")

// NodeSpec describes one visual node.
type NodeSpec struct {
	ID        string         `yaml:"id,omitempty"`
	Type      string         `yaml:"type"`
	Name      string         `yaml:"name,omitempty"`
	Text      *string        `yaml:"text,omitempty"`
	WriteOnly bool           `yaml:"write_only,omitempty"` // text can be written but not read back
	Value     *string        `yaml:"value,omitempty"`
	Checked   *bool          `yaml:"checked,omitempty"`
	Index     *int           `yaml:"index,omitempty"`
	Bounds    []float64      `yaml:"bounds,omitempty"` // [x, y, width, height]
	Hidden    bool           `yaml:"hidden,omitempty"`
	Display   string         `yaml:"display,omitempty"` // "none" hides the node
	Opacity   *float64       `yaml:"opacity,omitempty"`
	Disabled  bool           `yaml:"disabled,omitempty"`
	Classes   []string       `yaml:"classes,omitempty"`
	Fields    map[string]any `yaml:"fields,omitempty"`
	Actions   []string       `yaml:"actions,omitempty"` // click, invoke, activate
	Broken    bool           `yaml:"broken,omitempty"`  // panics when inspected, like a node torn down mid-read
	Children  []NodeSpec     `yaml:"children,omitempty"`
}

// Spec is a complete fixture file.
type Spec struct {
	Window []float64 `yaml:"window,omitempty"` // [x, y] screen origin
	Focus  string    `yaml:"focus,omitempty"`
	Panel  string    `yaml:"panel,omitempty"`
	Root   *NodeSpec `yaml:"root"`
	Script []Step    `yaml:"script,omitempty"`
}

// Step is one scripted event of a replay. At is the offset from the start of
// the replay, written as a duration string ("150ms"); exactly one of the
// action fields is set.
type Step struct {
	At         time.Duration `yaml:"at"`
	Focus      string        `yaml:"focus,omitempty"`
	Command    string        `yaml:"command,omitempty"`
	SetChecked *CheckEdit    `yaml:"set_checked,omitempty"`
	WriteLabel *LabelEdit    `yaml:"write_label,omitempty"`
	SetIndex   *IndexEdit    `yaml:"set_index,omitempty"`
}

// CheckEdit toggles a node's checked state.
type CheckEdit struct {
	ID    string `yaml:"id"`
	Value bool   `yaml:"value"`
}

// LabelEdit writes a node's label text.
type LabelEdit struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

// IndexEdit rebinds a recycled row to another data index.
type IndexEdit struct {
	ID    string `yaml:"id"`
	Index int    `yaml:"index"`
}

// Parse decodes a fixture document.
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	if len(spec.Window) != 0 && len(spec.Window) != 2 {
		return nil, fmt.Errorf("parse fixture: window must be [x, y], got %v", spec.Window)
	}
	return &spec, nil
}

// LoadFile reads and parses a fixture file.
func LoadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load fixture: %w", err)
	}
	return Parse(data)
}
