// Package replay drives a bridge through a scripted fixture session on a
// simulated frame clock.
package replay

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/mj1618/screen-bridge/internal/bridge"
	"github.com/mj1618/screen-bridge/internal/platform/fixture"
)

// DefaultTail is how long the clock keeps ticking after the last step, so
// delayed announcements still land.
const DefaultTail = 500 * time.Millisecond

// Options controls the simulated clock.
type Options struct {
	Start time.Time     // clock value of the first frame
	Frame time.Duration // tick spacing (0 = 16ms)
	Tail  time.Duration // ticking after the last step (0 = DefaultTail)
}

// Summary describes a finished replay.
type Summary struct {
	Steps    int           `yaml:"steps"    json:"steps"`
	Frames   int           `yaml:"frames"   json:"frames"`
	Duration time.Duration `yaml:"duration" json:"duration"`
}

// Run applies each step when the clock reaches its offset and ticks the
// bridge once per frame. Steps are applied before the tick of the frame
// they fall in. A step naming a missing node or an unknown command stops
// the replay; user-facing command failures are already spoken and do not.
func Run(b *bridge.Bridge, host *fixture.Host, script []fixture.Step, opts Options) (Summary, error) {
	if opts.Frame <= 0 {
		opts.Frame = 16 * time.Millisecond
	}
	if opts.Tail <= 0 {
		opts.Tail = DefaultTail
	}
	steps := slices.Clone(script)
	slices.SortStableFunc(steps, func(x, y fixture.Step) int {
		return cmp.Compare(x.At, y.At)
	})
	var end time.Duration
	if len(steps) > 0 {
		end = steps[len(steps)-1].At
	}
	end += opts.Tail

	var sum Summary
	next := 0
	for elapsed := time.Duration(0); elapsed <= end; elapsed += opts.Frame {
		for next < len(steps) && steps[next].At <= elapsed {
			if err := apply(b, host, steps[next]); err != nil {
				return sum, fmt.Errorf("step %d at %s: %w", next+1, steps[next].At, err)
			}
			next++
			sum.Steps++
		}
		b.Tick(opts.Start.Add(elapsed))
		sum.Frames++
		sum.Duration = elapsed
	}
	return sum, nil
}

func apply(b *bridge.Bridge, host *fixture.Host, st fixture.Step) error {
	switch {
	case st.Focus != "":
		return host.SetFocus(st.Focus)
	case st.SetChecked != nil:
		return host.SetChecked(st.SetChecked.ID, st.SetChecked.Value)
	case st.WriteLabel != nil:
		return host.WriteLabel(st.WriteLabel.ID, st.WriteLabel.Text)
	case st.SetIndex != nil:
		return host.SetRowIndex(st.SetIndex.ID, st.SetIndex.Index)
	case st.Command != "":
		err := b.Command(st.Command)
		if errors.Is(err, bridge.ErrUnknownCommand) {
			return err
		}
		return nil
	}
	return errors.New("step has no action")
}
