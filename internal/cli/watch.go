package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrshanahan/student-notes/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Open the interactive notes view",
	Long: `Opens a full-screen view with an add-note form above the list of notes.
The list refreshes every 30 seconds and after each note is added.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return tui.Run(cmd.Context(), newClient())
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
