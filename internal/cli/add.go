package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrshanahan/student-notes/internal/tui"
	"github.com/mrshanahan/student-notes/pkg/client"
)

var addCmd = &cobra.Command{
	Use:   "add <title> <description>",
	Short: "Add a note",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(args[0])
	description := strings.TrimSpace(args[1])
	if title == "" || description == "" {
		return errors.New(tui.EmptyFieldsMessage)
	}

	note, err := newClient().CreateNote(cmd.Context(), title, description)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			return errors.New(apiErr.Message)
		}
		return fmt.Errorf("%s (%w)", tui.AddFailedMessage, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (id: %s)\n", tui.AddedMessage, note.ID)
	return nil
}
