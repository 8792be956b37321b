package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/screen-bridge/internal/output"
)

var readCmd = &cobra.Command{
	Use:   "read <screen.yaml>",
	Short: "List the screen's readable elements in reading order",
	Long: `Turn reading mode on for the fixture screen and print the element list it
builds: every readable node in visual order, with the index reading would
start from. Use --focus to start from a focused control.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().String("focus", "", "Node ID to focus before reading")
	addSpeakFlag(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	if id, _ := cmd.Flags().GetString("focus"); id != "" {
		if err := s.Host.SetFocus(id); err != nil {
			return err
		}
	}

	b := s.Bridge
	b.Tick(s.Start)
	if err := b.Reading().Enable(s.Start); err != nil {
		return err
	}
	now := advance(b, s.Start, s.Config.SettleDelay, s.Config.FrameInterval)

	return output.Fprint(cmd.OutOrStdout(), output.ReadResult{
		Source:   s.Source,
		TS:       now.Unix(),
		Start:    b.Reading().Index(),
		Elements: b.Reading().Elements(),
	})
}
