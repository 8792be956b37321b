// Package bridge owns the per-process context shared by the narration
// components and drives them from the host's update tick.
package bridge

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mj1618/screen-bridge/internal/activate"
	"github.com/mj1618/screen-bridge/internal/config"
	"github.com/mj1618/screen-bridge/internal/focus"
	"github.com/mj1618/screen-bridge/internal/model"
	"github.com/mj1618/screen-bridge/internal/platform"
	"github.com/mj1618/screen-bridge/internal/readmode"
)

// ErrUnknownCommand is returned by Command for names it does not know.
var ErrUnknownCommand = errors.New("unknown command")

// Bridge is the top-level coordinator. It owns the label shadow store, the
// classifier and the engines, and is the only place the store's TTL is
// enforced. All methods run on the host's update thread.
type Bridge struct {
	host    platform.Host
	speaker *platform.SafeSpeaker
	cfg     config.Config
	logger  *slog.Logger

	cache      *model.LabelCache
	classifier *model.Classifier
	labels     *model.LabelExtractor
	reading    *readmode.Engine
	tracker    *focus.Tracker
	activator  *activate.Dispatcher

	now   time.Time
	panel []model.AccessibleElement
}

// New wires the components against p. now seeds the label store's clear
// timer.
func New(p *platform.Provider, cfg config.Config, now time.Time, logger *slog.Logger) (*Bridge, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	speaker := platform.NewSafeSpeaker(p.Speaker, logger)
	cache := model.NewLabelCache(cfg.LabelTTL, now)
	classifier := &model.Classifier{PanelDepth: cfg.PanelDepth}
	labels := &model.LabelExtractor{Classifier: classifier, Cache: cache}

	b := &Bridge{
		host:       p.Host,
		speaker:    speaker,
		cfg:        cfg,
		logger:     logger,
		cache:      cache,
		classifier: classifier,
		labels:     labels,
		now:        now,
	}
	b.reading = readmode.New(p.Host, speaker, labels, readmode.Options{
		MaxDepth:      cfg.WalkDepth,
		RowThreshold:  cfg.ReadingRowThreshold,
		NearestRadius: cfg.NearestRadius,
		SettleDelay:   cfg.SettleDelay,
	}, logger)
	b.tracker = focus.New(p.Host, speaker, labels, focus.Options{
		Debounce:       cfg.Debounce,
		RowSearchDepth: cfg.RowSearchDepth,
	}, logger)
	b.activator = activate.New(p.Host, p.Inputter, speaker, activate.Options{
		ClickDelay:  cfg.ClickDelay,
		SearchDepth: cfg.ActivationDepth,
		Button:      cfg.MouseButton(),
	}, logger)
	return b, nil
}

// Reading returns the reading-mode engine.
func (b *Bridge) Reading() *readmode.Engine { return b.reading }

// Tracker returns the focus tracker.
func (b *Bridge) Tracker() *focus.Tracker { return b.tracker }

// Activator returns the activation dispatcher.
func (b *Bridge) Activator() *activate.Dispatcher { return b.activator }

// Labels returns the label extractor bound to the bridge's store.
func (b *Bridge) Labels() *model.LabelExtractor { return b.labels }

// ActivePanel returns the panel the classifier was scoped to on the last
// tick, or nil.
func (b *Bridge) ActivePanel() model.Node { return b.classifier.Panel }

// Now returns the time of the last tick.
func (b *Bridge) Now() time.Time { return b.now }

// Tick runs one update cycle: expire the label store if due, rescope the
// classifier to the active panel, then either advance reading mode or poll
// focus. Focus narration pauses while reading mode is on.
func (b *Bridge) Tick(now time.Time) {
	b.now = now
	if b.cache.MaybeClear(now) {
		b.logger.Debug("label store cleared", "ttl", b.cfg.LabelTTL)
	}
	b.classifier.Panel = b.activePanel()
	if b.reading.State() == readmode.Active {
		b.reading.Tick(now)
		return
	}
	b.tracker.Poll(now)
}

// activePanel returns the host's designated panel, else a detected modal.
func (b *Bridge) activePanel() (panel model.Node) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Debug("active panel lookup failed", "err", fmt.Sprint(r))
			panel = nil
		}
	}()
	if p := b.host.ActivePanel(); p != nil {
		return p
	}
	return model.DetectActivePanel(b.host.ActiveContentRoot())
}

// RecordLabel feeds the write path of the label shadow store. Host adapters
// call it whenever they observe a label assignment.
func (b *Bridge) RecordLabel(h model.Handle, text string) {
	b.cache.Record(h, text)
}

// ToggleReading switches reading mode on or off.
func (b *Bridge) ToggleReading() error {
	if b.reading.State() == readmode.Active {
		b.reading.Disable()
		return nil
	}
	return b.reading.Enable(b.now)
}

// Activate runs the activation cascade on the host's current focus.
func (b *Bridge) Activate() (activate.Strategy, bool) {
	n := b.host.CurrentFocus()
	if n == nil {
		b.logger.Info("no activatable target found", "reason", "nothing focused")
		return activate.StrategyNone, false
	}
	return b.activator.Activate(n)
}

// RefreshPanel drops the label store and builds a fresh generation of
// focusable elements for the active panel, or the whole screen when no
// panel is active.
func (b *Bridge) RefreshPanel() []model.AccessibleElement {
	b.cache.Clear(b.now)
	b.classifier.Panel = b.activePanel()
	root := b.classifier.Panel
	if root == nil {
		root = b.host.ActiveContentRoot()
	}
	if root == nil {
		b.panel = nil
		return nil
	}
	b.panel = model.CollectAccessible(root, b.classifier, b.labels, b.cfg.WalkDepth, b.cfg.FocusRowThreshold, b.logger)
	return b.panel
}

// PanelElements returns the generation built by the last RefreshPanel.
func (b *Bridge) PanelElements() []model.AccessibleElement {
	return b.panel
}

// Silence stops all speech.
func (b *Bridge) Silence() {
	b.speaker.Silence()
}

// Describe classifies n and resolves its label the way focus narration
// would.
func (b *Bridge) Describe(n model.Node) (model.AccessibleElement, model.Classification) {
	cl := b.classifier.Classify(n)
	return model.NewAccessibleElement(n, cl, b.labels), cl
}

// Commands lists the names Command accepts.
var Commands = []string{
	"read", "read-on", "read-off", "next", "previous", "into", "out",
	"refresh", "panel", "activate", "silence",
}

// Command runs a user command by name. Reading navigation commands are
// ignored while reading mode is off.
func (b *Bridge) Command(name string) error {
	switch name {
	case "read":
		return b.ToggleReading()
	case "read-on":
		return b.reading.Enable(b.now)
	case "read-off":
		b.reading.Disable()
	case "next":
		b.reading.NavigateNext()
	case "previous":
		b.reading.NavigatePrevious()
	case "into":
		b.reading.NavigateInto()
	case "out":
		b.reading.NavigateOut()
	case "refresh":
		return b.reading.RefreshElements()
	case "panel":
		b.RefreshPanel()
	case "activate":
		b.Activate()
	case "silence":
		b.Silence()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return nil
}
