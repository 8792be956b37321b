package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/screen-bridge/internal/output"
)

var activateCmd = &cobra.Command{
	Use:   "activate <screen.yaml> <id>",
	Short: "Focus a node and activate it",
	Long: `Focus the node, then run the activation cascade on it: pointer click on
a selector row's cell, synthetic click, invoke callback, radio selection.
Prints the strategy that worked, the host events it caused and any pointer
input it sent.`,
	Args: cobra.ExactArgs(2),
	RunE: runActivate,
}

func init() {
	rootCmd.AddCommand(activateCmd)
	addSpeakFlag(activateCmd)
}

func runActivate(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	id := args[1]
	if err := s.Host.SetFocus(id); err != nil {
		return err
	}
	b := s.Bridge
	b.Tick(s.Start)
	s.Transcript.Reset()

	used, ok := b.Activate()
	advance(b, s.Start, s.Config.Debounce, s.Config.FrameInterval)

	res := output.ActivateResult{
		Source:   s.Source,
		Target:   id,
		OK:       ok,
		Strategy: string(used),
		Spoken:   s.Transcript.Texts(),
		Events:   s.Host.Events,
		Clicks:   s.Inputter.Clicks,
	}
	if err := output.Fprint(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no activatable target found for %q", id)
	}
	return nil
}
