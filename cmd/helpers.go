package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/screen-bridge/internal/bridge"
	"github.com/mj1618/screen-bridge/internal/config"
	"github.com/mj1618/screen-bridge/internal/platform/fixture"
	"github.com/mj1618/screen-bridge/internal/server"
)

// session is a loaded fixture with its bridge and the config it was built
// with.
type session struct {
	server.Session
	Spec   *fixture.Spec
	Config config.Config
	Start  time.Time
}

// openSession loads --config and the fixture at path and wires a bridge to
// it. Spoken lines echo to stderr when the command has --speak set.
func openSession(cmd *cobra.Command, path string) (*session, error) {
	cfgPath, _ := rootCmd.PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	spec, err := fixture.LoadFile(path)
	if err != nil {
		return nil, err
	}

	var echo io.Writer
	if f := cmd.Flags().Lookup("speak"); f != nil {
		if speak, err := cmd.Flags().GetBool("speak"); err == nil && speak {
			echo = cmd.ErrOrStderr()
		}
	}

	start := time.Now()
	sess, err := server.NewSession(spec, path, cfg, start, echo, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &session{Session: sess, Spec: spec, Config: cfg, Start: start}, nil
}

// advance ticks b once per frame for d of simulated time after from and
// returns the final clock value.
func advance(b *bridge.Bridge, from time.Time, d, frame time.Duration) time.Time {
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	now := from
	for elapsed := time.Duration(0); elapsed <= d; elapsed += frame {
		now = from.Add(elapsed)
		b.Tick(now)
	}
	return now
}

// addSpeakFlag registers --speak on commands that narrate.
func addSpeakFlag(c *cobra.Command) {
	c.Flags().Bool("speak", false, "Echo spoken announcements to stderr")
}

// writeFile creates path and hands it to fn.
func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
