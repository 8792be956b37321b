package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/screen-bridge/internal/output"
)

var labelCmd = &cobra.Command{
	Use:   "label <screen.yaml> <id>...",
	Short: "Classify nodes and resolve their spoken labels",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runLabel,
}

func init() {
	rootCmd.AddCommand(labelCmd)
}

func runLabel(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	s.Bridge.Tick(s.Start)

	results := make([]output.LabelResult, 0, len(args)-1)
	for _, id := range args[1:] {
		n, err := s.Host.Find(id)
		if err != nil {
			return err
		}
		el, cl := s.Bridge.Describe(n)
		results = append(results, output.NewLabelResult(id, el, cl))
	}
	return output.Fprint(cmd.OutOrStdout(), results)
}
