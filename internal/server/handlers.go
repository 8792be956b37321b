package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mj1618/screen-bridge/internal/model"
	"github.com/mj1618/screen-bridge/internal/output"
	"github.com/mj1618/screen-bridge/internal/platform/fixture"
	"github.com/mj1618/screen-bridge/internal/readmode"
)

// ActionResult is the reply to a tool that changes bridge or host state.
type ActionResult struct {
	OK       bool     `yaml:"ok"                 json:"ok"`
	Action   string   `yaml:"action"             json:"action"`
	Target   string   `yaml:"target,omitempty"   json:"target,omitempty"`
	Strategy string   `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	Spoken   []string `yaml:"spoken,omitempty"   json:"spoken,omitempty"`
	Error    string   `yaml:"error,omitempty"    json:"error,omitempty"`
}

// TranscriptResult is the reply to the transcript tool.
type TranscriptResult struct {
	Utterances []fixture.Utterance `yaml:"utterances"       json:"utterances"`
	Events     []fixture.Event     `yaml:"events,omitempty" json:"events,omitempty"`
}

// navigateCommands maps navigate directions to bridge commands.
var navigateCommands = map[string]string{
	"next":     "next",
	"previous": "previous",
	"into":     "into",
	"out":      "out",
	"refresh":  "refresh",
	"off":      "read-off",
}

// toolText renders v as a YAML tool result.
func toolText(v interface{}) (*mcp.CallToolResult, error) {
	text, err := output.YAMLString(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// actionReply renders r, as an error result when it failed.
func actionReply(r ActionResult) (*mcp.CallToolResult, error) {
	text, err := output.YAMLString(r)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ok: %v\naction: %s\nerror: %s", r.OK, r.Action, r.Error)), nil
	}
	if !r.OK {
		return mcp.NewToolResultError(text), nil
	}
	return mcp.NewToolResultText(text), nil
}

// writeAction runs fn under the session lock, ticks the bridge so the change
// is narrated, and reports what was spoken. Any write drops the cached panel
// generation.
func (s *Server) writeAction(action, target string, fn func(r *ActionResult) error) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := ActionResult{OK: true, Action: action, Target: target}
	mark := len(s.sess.Transcript.Utterances())
	if err := fn(&r); err != nil {
		r.OK = false
		r.Error = err.Error()
	}
	s.cache.Invalidate()
	s.sess.Bridge.Tick(s.now())
	r.Spoken = s.spokenSince(mark)
	return actionReply(r)
}

// spokenSince returns the texts spoken after the first mark utterances.
func (s *Server) spokenSince(mark int) []string {
	utts := s.sess.Transcript.Utterances()
	if mark > len(utts) {
		mark = 0
	}
	var out []string
	for _, u := range utts[mark:] {
		if u.Kind != "silence" {
			out = append(out, u.Text)
		}
	}
	return out
}

func (s *Server) handleReadScreen(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.sess.Bridge
	now := s.now()
	if err := b.Reading().Enable(now); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b.Tick(now)
	return toolText(output.ReadResult{
		Source:   s.sess.Source,
		TS:       now.Unix(),
		Start:    b.Reading().Index(),
		Elements: b.Reading().Elements(),
	})
}

func (s *Server) handleNavigate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir, err := request.RequireString("direction")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, ok := navigateCommands[dir]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown direction %q (use next, previous, into, out, refresh or off)", dir)), nil
	}
	return s.writeAction("navigate", dir, func(r *ActionResult) error {
		if name != "refresh" && name != "read-off" && s.sess.Bridge.Reading().State() != readmode.Active {
			return fmt.Errorf("reading mode is off")
		}
		return s.sess.Bridge.Command(name)
	})
}

func (s *Server) handleFocus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.writeAction("focus", id, func(r *ActionResult) error {
		return s.sess.Host.SetFocus(id)
	})
}

func (s *Server) handleActivate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := StringParam(request.GetArguments(), "id", "")
	return s.writeAction("activate", id, func(r *ActionResult) error {
		if id != "" {
			if err := s.sess.Host.SetFocus(id); err != nil {
				return err
			}
		}
		used, ok := s.sess.Bridge.Activate()
		if !ok {
			return fmt.Errorf("no activatable target found")
		}
		r.Strategy = string(used)
		return nil
	})
}

func (s *Server) handleLabel(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.sess.Host.Find(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	el, cl := s.sess.Bridge.Describe(n)
	return toolText(output.NewLabelResult(id, el, cl))
}

func (s *Server) handleElements(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	refresh := BoolParam(request.GetArguments(), "refresh", false)

	s.mu.Lock()
	defer s.mu.Unlock()

	if refresh {
		s.cache.Invalidate()
	}
	b := s.sess.Bridge
	now := s.now()
	b.Tick(now)

	panelID := ""
	var key model.Handle
	if p := b.ActivePanel(); p != nil {
		panelID = s.sess.Host.IDOf(p)
		key = p.Handle()
	}
	els := s.cache.Elements(now, key, b.RefreshPanel)
	return toolText(output.ElementsResult{
		Source:   s.sess.Source,
		TS:       now.Unix(),
		Panel:    panelID,
		Elements: output.NewPanelElements(els),
	})
}

func (s *Server) handleTranscript(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	last := IntParam(params, "last", 0)
	reset := BoolParam(params, "clear", false)

	s.mu.Lock()
	defer s.mu.Unlock()

	utts := s.sess.Transcript.Utterances()
	if last > 0 && last < len(utts) {
		utts = utts[len(utts)-last:]
	}
	res := TranscriptResult{Utterances: utts, Events: s.sess.Host.Events}
	if reset {
		s.sess.Transcript.Reset()
		s.sess.Host.Events = nil
	}
	return toolText(res)
}
