package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/screen-bridge/internal/output"
)

var elementsCmd = &cobra.Command{
	Use:   "elements <screen.yaml>",
	Short: "List the focusable controls of the active panel",
	Long: `Build one panel generation: the focusable controls of the active panel
(the host's designated panel, else a visible modal) in spatial order, with
their labels and current state. Without an active panel the whole screen is
listed.`,
	Args: cobra.ExactArgs(1),
	RunE: runElements,
}

func init() {
	rootCmd.AddCommand(elementsCmd)
	elementsCmd.Flags().String("panel", "", "Node ID to designate as the active panel")
}

func runElements(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	if id, _ := cmd.Flags().GetString("panel"); id != "" {
		if err := s.Host.SetPanel(id); err != nil {
			return err
		}
	}

	b := s.Bridge
	b.Tick(s.Start)
	els := b.RefreshPanel()
	panel := ""
	if p := b.ActivePanel(); p != nil {
		panel = s.Host.IDOf(p)
	}
	return output.Fprint(cmd.OutOrStdout(), output.ElementsResult{
		Source:   s.Source,
		TS:       s.Start.Unix(),
		Panel:    panel,
		Elements: output.NewPanelElements(els),
	})
}
