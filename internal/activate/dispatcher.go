// Package activate performs the user's explicit "activate" command for node
// families whose native activation in the host is unreliable.
package activate

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/mj1618/screen-bridge/internal/model"
	"github.com/mj1618/screen-bridge/internal/platform"
)

// MsgSelected confirms every successful activation.
const MsgSelected = "Selected"

// Defaults for Options fields left zero.
const (
	DefaultClickDelay  = 30 * time.Millisecond
	DefaultSearchDepth = 8
)

// Strategy names the cascade step that activated a node.
type Strategy string

const (
	StrategyNone    Strategy = ""
	StrategyPointer Strategy = "pointer"
	StrategyClick   Strategy = "click"
	StrategyInvoke  Strategy = "invoke"
	StrategyRadio   Strategy = "radio"
)

// Options tunes the dispatcher.
type Options struct {
	ClickDelay  time.Duration        // pause between pointer move and click (0 = 30ms)
	SearchDepth int                  // descendant search bound (0 = 8)
	Button      platform.MouseButton // button used for pointer clicks
}

// Dispatcher runs the activation cascade against a focused node. The
// Inputter is optional; without one the pointer path is skipped.
type Dispatcher struct {
	host    platform.Host
	input   platform.Inputter
	speaker platform.Speaker
	opts    Options
	logger  *slog.Logger

	// Sleep pauses between the pointer move and the click. Tests replace it.
	Sleep func(time.Duration)
}

// New returns a dispatcher.
func New(host platform.Host, input platform.Inputter, speaker platform.Speaker, opts Options, logger *slog.Logger) *Dispatcher {
	if opts.ClickDelay <= 0 {
		opts.ClickDelay = DefaultClickDelay
	}
	if opts.SearchDepth <= 0 {
		opts.SearchDepth = DefaultSearchDepth
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		host:    host,
		input:   input,
		speaker: speaker,
		opts:    opts,
		logger:  logger,
		Sleep:   time.Sleep,
	}
}

// Activate tries, in order: a pointer click on the selector cell of a
// selectable row, a synthetic click event, the node's click-or-submit
// callback, and the activation entry point of a radio button inside the
// node. The first success speaks MsgSelected. It reports the strategy used
// and whether any succeeded.
func (d *Dispatcher) Activate(n model.Node) (used Strategy, ok bool) {
	if n == nil {
		return StrategyNone, false
	}
	defer func() {
		if r := recover(); r != nil {
			d.logger.Debug("activate: node failed", "err", fmt.Sprint(r))
			used, ok = StrategyNone, false
		}
	}()

	steps := []struct {
		strategy Strategy
		run      func(model.Node) error
	}{
		{StrategyPointer, d.pointerClick},
		{StrategyClick, sendClick},
		{StrategyInvoke, invoke},
		{StrategyRadio, d.activateRadio},
	}
	for _, step := range steps {
		err := step.run(n)
		if err == nil {
			d.speaker.Speak(MsgSelected, true)
			d.logger.Debug("activate: done", "strategy", string(step.strategy), "type", n.TypeName())
			return step.strategy, true
		}
		if !errors.Is(err, model.ErrUnsupported) {
			d.logger.Debug("activate: strategy failed", "strategy", string(step.strategy), "err", err)
		}
	}
	d.logger.Info("no activatable target found", "type", n.TypeName(), "name", n.Name())
	return StrategyNone, false
}

// pointerClick clicks the center of a selectable row's selector cell. Cell
// bounds are window-local; the window origin converts them to screen space.
func (d *Dispatcher) pointerClick(n model.Node) error {
	if model.MapFamily(n.TypeName()) != model.FamilySelectorRow || d.input == nil {
		return model.ErrUnsupported
	}
	cell := model.FindDescendant(n, d.opts.SearchDepth, model.FamilySelectorCell)
	if cell == nil {
		return model.ErrUnsupported
	}
	origin, err := d.host.WindowOrigin()
	if err != nil {
		return fmt.Errorf("window origin: %w", err)
	}
	c := cell.Bounds().Center()
	x := int(math.Round(origin.X + c.X))
	y := int(math.Round(origin.Y + c.Y))
	if err := d.input.MoveMouse(x, y); err != nil {
		return fmt.Errorf("move pointer to (%d, %d): %w", x, y, err)
	}
	d.Sleep(d.opts.ClickDelay)
	if err := d.input.Click(x, y, d.opts.Button, 1); err != nil {
		return fmt.Errorf("click at (%d, %d): %w", x, y, err)
	}
	return nil
}

func sendClick(n model.Node) error {
	ct, ok := n.(model.ClickTarget)
	if !ok {
		return model.ErrUnsupported
	}
	return ct.SendClick()
}

func invoke(n model.Node) error {
	inv, ok := n.(model.Invoker)
	if !ok {
		return model.ErrUnsupported
	}
	return inv.Invoke()
}

func (d *Dispatcher) activateRadio(n model.Node) error {
	radio := model.FindDescendant(n, d.opts.SearchDepth, model.FamilyRadio)
	if radio == nil {
		return model.ErrUnsupported
	}
	act, ok := radio.(model.Activator)
	if !ok {
		return model.ErrUnsupported
	}
	return act.Activate()
}
