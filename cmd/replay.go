package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mj1618/screen-bridge/internal/output"
	"github.com/mj1618/screen-bridge/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <screen.yaml>",
	Short: "Run the fixture's script and print what was spoken",
	Long: `Replay the fixture's script on a simulated frame clock. Each step (focus
change, state change, label write, row recycle or user command) is applied
at its offset and the bridge ticks once per frame. The transcript of
announcements and the host events are printed at the end.

Example script:
  script:
    - {at: 0s, focus: name-field}
    - {at: 200ms, set_checked: {id: terms, value: true}}
    - {at: 400ms, command: read}
    - {at: 900ms, command: next}`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Duration("frame", 0, "Tick spacing (default from config frame_interval)")
	replayCmd.Flags().Duration("tail", replay.DefaultTail, "Time to keep ticking after the last step")
	addSpeakFlag(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	if len(s.Spec.Script) == 0 {
		return errors.New("fixture has no script")
	}
	frame, _ := cmd.Flags().GetDuration("frame")
	if frame == 0 {
		frame = s.Config.FrameInterval
	}
	tail, _ := cmd.Flags().GetDuration("tail")

	sum, runErr := replay.Run(s.Bridge, s.Host, s.Spec.Script, replay.Options{
		Start: s.Start,
		Frame: frame,
		Tail:  tail,
	})
	res := output.ReplayResult{
		Source:     s.Source,
		Summary:    sum,
		Utterances: s.Transcript.Utterances(),
		Events:     s.Host.Events,
	}
	if runErr != nil {
		res.Error = runErr.Error()
	}
	if err := output.Fprint(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	return runErr
}
