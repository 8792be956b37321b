// Package focus narrates the host's own focus cursor.
package focus

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mj1618/screen-bridge/internal/model"
	"github.com/mj1618/screen-bridge/internal/platform"
)

// DefaultDebounce is how long after an announcement a new focus transition
// is dropped.
const DefaultDebounce = 50 * time.Millisecond

// Options tunes the tracker.
type Options struct {
	Debounce       time.Duration // 0 = DefaultDebounce
	RowSearchDepth int           // 0 = model.RowSearchDepth
}

// Tracker polls the host's focus once per tick and announces genuine
// transitions. The debounce window runs from the last announcement. A
// transition arriving inside it is dropped, not queued: whichever node is
// focused when the window reopens is the one announced. It is not safe for
// concurrent use.
type Tracker struct {
	host    platform.Host
	speaker platform.Speaker
	labels  *model.LabelExtractor
	opts    Options
	logger  *slog.Logger

	now       time.Time
	last      model.Handle
	lastSpoke time.Time
	spoke     bool

	lastRow model.RowIdentity
	inRow   bool

	stateFor    model.Handle
	lastState   string
	lastSection string
}

// New returns a tracker that has observed nothing yet.
func New(host platform.Host, speaker platform.Speaker, labels *model.LabelExtractor, opts Options, logger *slog.Logger) *Tracker {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.RowSearchDepth <= 0 {
		opts.RowSearchDepth = model.RowSearchDepth
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{host: host, speaker: speaker, labels: labels, opts: opts, logger: logger}
}

// LastFocus returns the handle of the last accepted focus target.
func (t *Tracker) LastFocus() model.Handle { return t.last }

// Reset forgets everything observed, so the current focus is announced again
// on the next poll.
func (t *Tracker) Reset() {
	*t = Tracker{host: t.host, speaker: t.speaker, labels: t.labels, opts: t.opts, logger: t.logger}
}

// Poll reads the host's focus and announces what changed.
func (t *Tracker) Poll(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Debug("focus: poll failed", "err", fmt.Sprint(r))
		}
	}()
	n := t.host.CurrentFocus()
	if n == nil {
		return
	}
	t.now = now
	h := n.Handle()
	if h == t.last {
		t.checkRow(n)
		t.checkState(n)
		return
	}
	if t.spoke && now.Sub(t.lastSpoke) < t.opts.Debounce {
		t.logger.Debug("focus: transition debounced", "handle", h)
		return
	}
	t.last = h
	t.announce(n)
}

func (t *Tracker) announce(n model.Node) {
	t.stateFor, t.lastState = 0, ""

	if model.IsHeaderRow(n) {
		t.inRow = false
		t.speak(model.ExtractHeaderText(n))
		return
	}
	if row := model.FindRowAncestor(n, t.opts.RowSearchDepth); row != nil {
		id := model.RowIdentityOf(row)
		if t.inRow && model.SameRow(t.lastRow, id) {
			t.lastRow = id
			t.logger.Debug("focus: same row", "row", id.String())
			return
		}
		t.lastRow, t.inRow = id, true
		t.speak(t.rowText(n, row, id))
		return
	}
	t.inRow = false

	cl := t.labels.Classifier.Classify(n)
	el := model.NewAccessibleElement(n, cl, t.labels)
	state := el.State()
	t.stateFor, t.lastState = n.Handle(), state

	section := ""
	if el.Section != t.lastSection {
		section = el.Section
	}
	t.lastSection = el.Section
	t.speak(Compose(section, el.Label, el.TypeText, state))
}

// rowText is the row's joined cells, prefixed with its 1-based position when
// the row index is known, or the focused cell's own label when the row has
// no text.
func (t *Tracker) rowText(cell, row model.Node, id model.RowIdentity) string {
	text := model.ExtractRowText(row)
	if text == "" {
		return t.labels.ExtractLabel(cell)
	}
	if id.HasIndex {
		return fmt.Sprintf("Row %d: %s", id.Index+1, text)
	}
	return text
}

// checkRow re-announces a focused row that was rebound to other data while
// focus stayed on the same node.
func (t *Tracker) checkRow(n model.Node) {
	if !t.inRow {
		return
	}
	row := model.FindRowAncestor(n, t.opts.RowSearchDepth)
	if row == nil {
		return
	}
	id := model.RowIdentityOf(row)
	if model.SameRow(t.lastRow, id) {
		return
	}
	t.lastRow = id
	t.speak(t.rowText(n, row, id))
}

// checkState announces only the new state when the focused control's state
// changes in place (a checkbox toggled after it was focused).
func (t *Tracker) checkState(n model.Node) {
	if t.stateFor == 0 || n.Handle() != t.stateFor {
		return
	}
	state := model.ReadState(n, t.labels.Classifier.Classify(n))
	if state == t.lastState {
		return
	}
	t.lastState = state
	if state != "" {
		t.speak(state)
	}
}

func (t *Tracker) speak(text string) {
	if text == "" {
		return
	}
	t.speaker.Speak(text, true)
	t.lastSpoke, t.spoke = t.now, true
}

// Compose builds "[section ]label[, type][, state]".
func Compose(section, label, typeText, state string) string {
	var parts []string
	for _, p := range []string{label, typeText, state} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	text := strings.Join(parts, ", ")
	if section != "" && text != "" {
		return section + " " + text
	}
	return text
}
