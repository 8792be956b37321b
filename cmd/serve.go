package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/screen-bridge/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve <screen.yaml>",
	Short: "Start an MCP server exposing the bridge as tools",
	Long: `Start a Model Context Protocol (MCP) server over the fixture screen. The
bridge ticks continuously; agents drive it with the read_screen, navigate,
focus, activate, label, elements and transcript tools.

Supported transports:
  stdio             Standard I/O (default)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  screen-bridge serve screen.yaml
  screen-bridge serve screen.yaml --transport streamable-http --port 8080
  screen-bridge serve screen.yaml --cache-ttl 0`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Panel element cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	cfg := server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
		Frame:     s.Config.FrameInterval,
	}
	srv := server.New(s.Session, cfg, slog.Default())
	if err := srv.Serve(cmd.Context(), cfg); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
