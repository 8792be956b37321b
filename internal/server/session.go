package server

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mj1618/screen-bridge/internal/bridge"
	"github.com/mj1618/screen-bridge/internal/config"
	"github.com/mj1618/screen-bridge/internal/platform/fixture"
)

// NewSession builds a fixture host from spec and a bridge narrating it into
// a transcript. Spoken lines are echoed to echo when it is non-nil. The
// host's label writes feed the bridge's label store.
func NewSession(spec *fixture.Spec, source string, cfg config.Config, now time.Time, echo io.Writer, logger *slog.Logger) (Session, error) {
	host, err := fixture.NewHost(spec)
	if err != nil {
		return Session{}, fmt.Errorf("build host: %w", err)
	}
	tr := fixture.NewTranscript(echo)
	in := &fixture.RecordingInputter{}
	b, err := bridge.New(fixture.NewProvider(host, tr, in), cfg, now, logger)
	if err != nil {
		return Session{}, fmt.Errorf("build bridge: %w", err)
	}
	host.OnLabelWrite = b.RecordLabel
	return Session{Bridge: b, Host: host, Transcript: tr, Inputter: in, Source: source}, nil
}
