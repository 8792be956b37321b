// Package server exposes a bridge driving a simulated host as MCP tools.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/screen-bridge/internal/bridge"
	"github.com/mj1618/screen-bridge/internal/platform/fixture"
	"github.com/mj1618/screen-bridge/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	CacheTTL  time.Duration
	Frame     time.Duration // update tick spacing (0 = 16ms)
}

// Session is a bridge bound to the fixture host it narrates.
type Session struct {
	Bridge     *bridge.Bridge
	Host       *fixture.Host
	Transcript *fixture.Transcript
	Inputter   *fixture.RecordingInputter
	Source     string
}

// Server wraps the MCP server with a session. The bridge is single
// threaded; mu serializes tool calls and frame ticks.
type Server struct {
	mu     sync.Mutex
	sess   Session
	cache  *PanelCache
	mcp    *mcpserver.MCPServer
	now    func() time.Time
	logger *slog.Logger
}

// New creates and configures an MCP server with all bridge tools.
func New(sess Session, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		sess:   sess,
		cache:  NewPanelCache(cfg.CacheTTL),
		now:    time.Now,
		logger: logger,
	}
	s.mcp = mcpserver.NewMCPServer(
		"screen-bridge",
		version.Version,
		mcpserver.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// Serve ticks the bridge in the background and serves the configured
// transport until it returns.
func (s *Server) Serve(ctx context.Context, cfg Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.Run(ctx, cfg.Frame)

	s.logger.Info("mcp server starting", "transport", cfg.Transport, "port", cfg.Port)
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// Run ticks the bridge once per frame until ctx is done.
func (s *Server) Run(ctx context.Context, frame time.Duration) {
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	t := time.NewTicker(frame)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.mu.Lock()
			s.sess.Bridge.Tick(s.now())
			s.mu.Unlock()
		}
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("read_screen",
			mcp.WithDescription("Turn reading mode on and return the screen's readable elements in reading order, with the index reading starts from."),
		),
		s.handleReadScreen,
	)

	s.mcp.AddTool(
		mcp.NewTool("navigate",
			mcp.WithDescription("Move through reading mode. Each move speaks the new element."),
			mcp.WithString("direction", mcp.Required(),
				mcp.Description("One of: next, previous, into, out, refresh, off")),
		),
		s.handleNavigate,
	)

	s.mcp.AddTool(
		mcp.NewTool("focus",
			mcp.WithDescription("Move host focus to a node and return what focus narration said."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Node ID")),
		),
		s.handleFocus,
	)

	s.mcp.AddTool(
		mcp.NewTool("activate",
			mcp.WithDescription("Activate the focused control through the pointer, click, invoke and radio cascade."),
			mcp.WithString("id", mcp.Description("Focus this node first")),
		),
		s.handleActivate,
	)

	s.mcp.AddTool(
		mcp.NewTool("label",
			mcp.WithDescription("Classify a node and resolve its spoken label without changing focus."),
			mcp.WithString("id", mcp.Required(), mcp.Description("Node ID")),
		),
		s.handleLabel,
	)

	s.mcp.AddTool(
		mcp.NewTool("elements",
			mcp.WithDescription("List the focusable controls of the active panel in spatial order."),
			mcp.WithBoolean("refresh", mcp.Description("Build a fresh generation instead of using the cached one")),
		),
		s.handleElements,
	)

	s.mcp.AddTool(
		mcp.NewTool("transcript",
			mcp.WithDescription("Return everything the bridge has spoken."),
			mcp.WithNumber("last", mcp.Description("Only the last N utterances (0 = all)")),
			mcp.WithBoolean("clear", mcp.Description("Clear the transcript after returning it")),
		),
		s.handleTranscript,
	)
}
