package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/screen-bridge/internal/config"
	"github.com/mj1618/screen-bridge/internal/output"
	"github.com/mj1618/screen-bridge/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "screen-bridge",
	Short: "Narrate an application's UI tree through a speech sink",
	Long: `screen-bridge turns a host application's live UI tree into spoken
announcements: focus narration, a reading mode that walks the screen in
visual order, and activation of the focused control.

Screens are described as YAML fixtures. Every command takes the fixture
path as its first argument.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $"+config.EnvPath+")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug detail to stderr")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		if pretty, err := rootCmd.PersistentFlags().GetBool("pretty"); err == nil && pretty {
			output.PrettyOutput = true
		}

		level := slog.LevelWarn
		if verbose, _ := rootCmd.PersistentFlags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	}
}
