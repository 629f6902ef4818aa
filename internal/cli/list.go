package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrshanahan/student-notes/internal/tui"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output notes as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	found, err := newClient().ListNotes(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	out := cmd.OutOrStdout()
	if listJSON {
		data, err := json.MarshalIndent(found, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal notes: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(found) == 0 {
		fmt.Fprintln(out, tui.NoNotesMessage)
		return nil
	}
	for i, n := range found {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, tui.Sanitize(n.Title))
		fmt.Fprintf(out, "  %s\n", tui.Sanitize(n.Description))
		fmt.Fprintf(out, "  %s\n", tui.FormatTimestamp(n.CreatedAt))
	}
	return nil
}
