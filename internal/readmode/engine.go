// Package readmode implements reading mode: a manually stepped narration of
// every readable node on screen, independent of the host's focus cursor.
package readmode

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mj1618/screen-bridge/internal/model"
	"github.com/mj1618/screen-bridge/internal/platform"
)

// State is the engine's mode.
type State int

const (
	Inactive State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "inactive"
}

// Spoken messages.
const (
	MsgNoContent = "No screen content to read"
	MsgOff       = "Reading mode off"
	MsgEmpty     = "Reading mode on, no readable elements"
)

// ErrNoContent is returned when the host has no active content root.
var ErrNoContent = errors.New("no active content root")

// Defaults for Options fields left zero.
const (
	DefaultNearestRadius = 500.0
	DefaultSettleDelay   = 150 * time.Millisecond
)

// Options tunes the engine.
type Options struct {
	MaxDepth      int           // walk depth bound (0 = model.DefaultMaxDepth)
	RowThreshold  float64       // same-row tolerance (0 = model.ReadingRowThreshold)
	NearestRadius float64       // max distance for the nearest-to-focus start (0 = 500)
	SettleDelay   time.Duration // delay before the start element is spoken (0 = 150ms)
}

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = model.DefaultMaxDepth
	}
	if o.RowThreshold <= 0 {
		o.RowThreshold = model.ReadingRowThreshold
	}
	if o.NearestRadius <= 0 {
		o.NearestRadius = DefaultNearestRadius
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = DefaultSettleDelay
	}
	return o
}

type pending struct {
	text string
	due  time.Time
}

// Engine holds the reading-mode state machine. The element list is a flat
// snapshot rebuilt on Enable and RefreshElements; hierarchical navigation
// re-derives siblings from it on every call. It is not safe for concurrent
// use.
type Engine struct {
	host    platform.Host
	speaker platform.Speaker
	labels  *model.LabelExtractor
	opts    Options
	logger  *slog.Logger

	state    State
	elements []model.ReadableElement
	index    int
	pending  *pending
}

// New returns an inactive engine. labels.Classifier decides readability.
func New(host platform.Host, speaker platform.Speaker, labels *model.LabelExtractor, opts Options, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		host:    host,
		speaker: speaker,
		labels:  labels,
		opts:    opts.withDefaults(),
		logger:  logger,
		index:   -1,
	}
}

// State returns the current mode.
func (e *Engine) State() State { return e.state }

// Index returns the current position, or -1 when the list is empty.
func (e *Engine) Index() int { return e.index }

// Elements returns a copy of the current element list.
func (e *Engine) Elements() []model.ReadableElement {
	return append([]model.ReadableElement(nil), e.elements...)
}

// Current returns the element at the current position.
func (e *Engine) Current() (model.ReadableElement, bool) {
	if e.index < 0 || e.index >= len(e.elements) {
		return model.ReadableElement{}, false
	}
	return e.elements[e.index], true
}

// Enable scans the screen and enters reading mode. It is a no-op while
// already active. Without a content root it speaks an error and stays
// inactive, so it can be retried.
func (e *Engine) Enable(now time.Time) error {
	if e.state == Active {
		return nil
	}
	if err := e.RefreshElements(); err != nil {
		return err
	}
	e.state = Active
	e.index = e.startIndex()

	if len(e.elements) == 0 {
		e.speaker.Speak(MsgEmpty, true)
		return nil
	}
	e.speaker.Speak(countMessage(len(e.elements)), true)
	if cur, ok := e.Current(); ok {
		e.pending = &pending{text: cur.Announcement(), due: now.Add(e.opts.SettleDelay)}
	}
	return nil
}

// Disable leaves reading mode. It is a no-op while inactive.
func (e *Engine) Disable() {
	if e.state != Active {
		return
	}
	e.state = Inactive
	e.elements = nil
	e.index = -1
	e.pending = nil
	e.speaker.Speak(MsgOff, true)
}

// Tick speaks the start element once the settle delay has passed.
func (e *Engine) Tick(now time.Time) {
	if e.pending == nil || now.Before(e.pending.due) {
		return
	}
	text := e.pending.text
	e.pending = nil
	if e.state == Active {
		e.speaker.SpeakAppend(text)
	}
}

// RefreshElements rebuilds the element list in place without changing the
// mode. The current element is kept when it survives the rescan.
func (e *Engine) RefreshElements() error {
	var keep model.Handle
	if cur, ok := e.Current(); ok {
		keep = cur.Handle
	}
	root := e.host.ActiveContentRoot()
	if root == nil {
		e.elements = nil
		e.index = -1
		e.pending = nil
		e.speaker.Speak(MsgNoContent, true)
		e.logger.Debug("reading mode: no content root")
		return ErrNoContent
	}
	e.elements = e.scan(root)
	e.index = -1
	if keep != 0 {
		for i, el := range e.elements {
			if el.Handle == keep {
				e.index = i
				break
			}
		}
	}
	if e.index < 0 && len(e.elements) > 0 {
		e.index = 0
	}
	e.logger.Debug("reading mode: scanned", "elements", len(e.elements))
	return nil
}

// NavigateNext moves forward, wrapping past the end to the first element.
func (e *Engine) NavigateNext() {
	if !e.navigable() {
		return
	}
	e.moveTo((e.index + 1) % len(e.elements))
}

// NavigatePrevious moves back, wrapping before the start to the last
// element.
func (e *Engine) NavigatePrevious() {
	if !e.navigable() {
		return
	}
	i := e.index - 1
	if i < 0 {
		i = len(e.elements) - 1
	}
	e.moveTo(i)
}

// NavigateInto moves to the current element's first structural child, else
// to its next sibling, else to the next element.
func (e *Engine) NavigateInto() {
	if !e.navigable() {
		return
	}
	cur := e.elements[e.index]
	for i := e.index + 1; i < len(e.elements); i++ {
		if e.elements[i].Parent == cur.Handle {
			e.moveTo(i)
			return
		}
	}
	for i := e.index + 1; i < len(e.elements); i++ {
		if isSibling(e.elements[i], cur) {
			e.moveTo(i)
			return
		}
	}
	e.NavigateNext()
}

// NavigateOut moves to the current element's previous sibling, else to its
// parent's entry, else to the previous element.
func (e *Engine) NavigateOut() {
	if !e.navigable() {
		return
	}
	cur := e.elements[e.index]
	for i := e.index - 1; i >= 0; i-- {
		if isSibling(e.elements[i], cur) {
			e.moveTo(i)
			return
		}
	}
	for i, el := range e.elements {
		if el.Handle == cur.Parent {
			e.moveTo(i)
			return
		}
	}
	e.NavigatePrevious()
}

func isSibling(a, b model.ReadableElement) bool {
	return a.Depth == b.Depth && a.Parent == b.Parent
}

func (e *Engine) navigable() bool {
	return e.state == Active && len(e.elements) > 0
}

func (e *Engine) moveTo(i int) {
	e.index = i
	e.pending = nil
	e.speaker.Speak(e.elements[i].Announcement(), true)
}

// scan walks root and builds the ordered element list. Subtrees of hidden
// nodes are skipped; a node that fails inspection is skipped by the walker.
func (e *Engine) scan(root model.Node) []model.ReadableElement {
	var out []model.ReadableElement
	opts := model.WalkOptions{MaxDepth: e.opts.MaxDepth, IncludeRoot: true, Logger: e.logger}
	model.Walk(root, opts, func(n model.Node, depth int) bool {
		if !model.IsShown(n) {
			return false
		}
		cl := e.labels.Classifier.Classify(n)
		if !cl.Readable {
			return true
		}
		text := e.textFor(n, cl)
		if text == "" {
			return true
		}
		el := model.ReadableElement{
			Node:     n,
			Handle:   n.Handle(),
			Text:     text,
			TypeHint: typeHint(cl),
			Bounds:   n.Bounds(),
			Depth:    depth,
		}
		if p := n.Parent(); p != nil {
			el.Parent = p.Handle()
		}
		out = append(out, el)
		return true
	})
	model.OrderByPosition(out, func(el model.ReadableElement) model.Rect { return el.Bounds }, e.opts.RowThreshold)
	return out
}

func (e *Engine) textFor(n model.Node, cl model.Classification) string {
	switch {
	case cl.TableHeader:
		if s := model.ExtractHeaderText(n); s != "" {
			return s
		}
	case cl.TableRow:
		if s := model.ExtractRowText(n); s != "" {
			return s
		}
	}
	return model.Clean(e.labels.ExtractLabel(n))
}

// typeHint is the short role spoken after an element's text.
func typeHint(cl model.Classification) string {
	switch {
	case cl.CloseButton:
		return "close button"
	case cl.ElementType != model.ElementNone:
		return cl.ElementType.String()
	case cl.TableHeader:
		return "header"
	case cl.TableRow:
		return "row"
	}
	switch cl.Family {
	case model.FamilySection:
		return "section"
	case model.FamilyDialog:
		return "dialog"
	}
	return ""
}

// startIndex picks the element for the host's focus: an exact match, else
// the nearest element within the radius, else the first.
func (e *Engine) startIndex() (idx int) {
	if len(e.elements) == 0 {
		return -1
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug("reading mode: reading focus failed", "err", fmt.Sprint(r))
			idx = 0
		}
	}()
	focus := e.host.CurrentFocus()
	if focus == nil {
		return 0
	}
	h := focus.Handle()
	for i, el := range e.elements {
		if el.Handle == h {
			return i
		}
	}
	center := focus.Bounds().Center()
	best, bestDist := 0, e.opts.NearestRadius
	found := false
	for i, el := range e.elements {
		d := el.Bounds.Center().Distance(center)
		if d <= bestDist && (!found || d < bestDist) {
			best, bestDist, found = i, d, true
		}
	}
	return best
}

func countMessage(n int) string {
	if n == 1 {
		return "Reading mode on, 1 element"
	}
	return fmt.Sprintf("Reading mode on, %d elements", n)
}
