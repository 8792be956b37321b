package platform

import (
	"fmt"
	"log/slog"
	"strings"
)

// SafeSpeaker guards every call into a Speaker: empty text is dropped, a nil
// sink is a no-op and a panicking sink is logged and contained.
type SafeSpeaker struct {
	sink   Speaker
	logger *slog.Logger
}

// NewSafeSpeaker wraps sink. A nil logger uses slog.Default.
func NewSafeSpeaker(sink Speaker, logger *slog.Logger) *SafeSpeaker {
	if logger == nil {
		logger = slog.Default()
	}
	return &SafeSpeaker{sink: sink, logger: logger}
}

func (s *SafeSpeaker) Speak(text string, interrupt bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.guard("speak", func(sp Speaker) { sp.Speak(text, interrupt) })
}

func (s *SafeSpeaker) SpeakAppend(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	s.guard("speak-append", func(sp Speaker) { sp.SpeakAppend(text) })
}

func (s *SafeSpeaker) Silence() {
	s.guard("silence", func(sp Speaker) { sp.Silence() })
}

func (s *SafeSpeaker) guard(op string, fn func(Speaker)) {
	if s == nil || s.sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("speech sink failed", "op", op, "err", fmt.Sprint(r))
		}
	}()
	fn(s.sink)
}
