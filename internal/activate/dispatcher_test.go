package activate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/screen-bridge/internal/model"
	"github.com/mj1618/screen-bridge/internal/platform"
	"github.com/mj1618/screen-bridge/internal/platform/fixture"
)

const screen = `
window: [100, 200]
root:
  type: VisualElement
  children:
    - id: row
      type: SelectableRow
      actions: [invoke]
      children:
        - {id: cell, type: SelectorCell, bounds: [10, 20, 30, 11]}
        - {type: TableCell, children: [{type: Label, text: Smith}]}
    - {id: ok, type: Button, text: OK, actions: [click, invoke]}
    - {id: submit, type: Button, text: Submit, actions: [invoke]}
    - id: group
      type: RadioButtonGroup
      children:
        - {id: easy, type: CustomRadioButton, fields: {isSelected: false}, actions: [activate]}
    - {id: label, type: Label, text: Nothing here}
    - {id: off, type: Button, text: Off, disabled: true, actions: [click]}
    - {id: bad, type: Button, broken: true}
`

type harness struct {
	d      *Dispatcher
	host   *fixture.Host
	input  *fixture.RecordingInputter
	tr     *fixture.Transcript
	sleeps []time.Duration
}

func newHarness(t *testing.T, withInput bool) *harness {
	t.Helper()
	spec, err := fixture.Parse([]byte(screen))
	require.NoError(t, err)
	host, err := fixture.NewHost(spec)
	require.NoError(t, err)
	h := &harness{host: host, tr: fixture.NewTranscript(nil)}
	var in platform.Inputter
	if withInput {
		h.input = &fixture.RecordingInputter{}
		in = h.input
	}
	h.d = New(host, in, h.tr, Options{}, nil)
	h.d.Sleep = func(d time.Duration) { h.sleeps = append(h.sleeps, d) }
	return h
}

func (h *harness) activate(t *testing.T, id string) (Strategy, bool) {
	t.Helper()
	n, err := h.host.Find(id)
	require.NoError(t, err)
	return h.d.Activate(n)
}

func TestSelectorRowPointerClick(t *testing.T) {
	h := newHarness(t, true)
	used, ok := h.activate(t, "row")
	require.True(t, ok)
	assert.Equal(t, StrategyPointer, used)

	assert.Equal(t, [][2]int{{125, 226}}, h.input.Moves)
	assert.Equal(t, []fixture.Click{{X: 125, Y: 226, Button: platform.MouseLeft, Count: 1}}, h.input.Clicks)
	assert.Equal(t, []time.Duration{DefaultClickDelay}, h.sleeps)
	assert.Equal(t, []string{MsgSelected}, h.tr.Texts())
	assert.Empty(t, h.host.Events, "row callback should not run")
}

func TestSelectorRowWithoutInputterFallsThrough(t *testing.T) {
	h := newHarness(t, false)
	used, ok := h.activate(t, "row")
	require.True(t, ok)
	assert.Equal(t, StrategyInvoke, used)
	assert.Equal(t, []fixture.Event{{ID: "row", Action: "invoke"}}, h.host.Events)
}

func TestPointerFailureFallsThrough(t *testing.T) {
	h := newHarness(t, true)
	h.input.Err = errors.New("no display")
	used, ok := h.activate(t, "row")
	require.True(t, ok)
	assert.Equal(t, StrategyInvoke, used)
	assert.Empty(t, h.sleeps)
}

func TestCascadeOrder(t *testing.T) {
	tests := []struct {
		id    string
		want  Strategy
		event fixture.Event
	}{
		{"ok", StrategyClick, fixture.Event{ID: "ok", Action: "click"}},
		{"submit", StrategyInvoke, fixture.Event{ID: "submit", Action: "invoke"}},
		{"group", StrategyRadio, fixture.Event{ID: "easy", Action: "activate"}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			h := newHarness(t, true)
			used, ok := h.activate(t, tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.want, used)
			assert.Equal(t, []fixture.Event{tt.event}, h.host.Events)
			assert.Equal(t, MsgSelected, h.tr.Last())
			assert.Empty(t, h.input.Clicks)
		})
	}
}

func TestRadioActivationSelects(t *testing.T) {
	h := newHarness(t, true)
	_, ok := h.activate(t, "group")
	require.True(t, ok)
	easy, _ := h.host.Find("easy")
	cl := (&model.Classifier{}).Classify(easy)
	assert.Equal(t, model.StateSelected, model.ReadState(easy, cl))
}

func TestNoTarget(t *testing.T) {
	for _, id := range []string{"label", "off", "bad"} {
		t.Run(id, func(t *testing.T) {
			h := newHarness(t, true)
			used, ok := h.activate(t, id)
			assert.False(t, ok)
			assert.Equal(t, StrategyNone, used)
			assert.Empty(t, h.tr.Texts())
		})
	}
}

func TestNilNode(t *testing.T) {
	h := newHarness(t, true)
	_, ok := h.d.Activate(nil)
	assert.False(t, ok)
}
