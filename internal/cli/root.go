// Package cli implements the notes command: a terminal client for notes-api.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrshanahan/student-notes/internal/utils"
	"github.com/mrshanahan/student-notes/pkg/client"
	"github.com/mrshanahan/student-notes/pkg/notes"
)

const DefaultAPIURL = "http://localhost:5000"

// NotesClient is the subset of the API client the commands need.
type NotesClient interface {
	ListNotes(ctx context.Context) ([]*notes.Note, error)
	CreateNote(ctx context.Context, title, description string) (*notes.Note, error)
}

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "Add and browse student notes",
	Long: `A terminal client for the student notes API.

The API location is taken from --url, then NOTES_API_URL, then ` + DefaultAPIURL + `.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "url",
		utils.FirstNonEmpty(os.Getenv("NOTES_API_URL"), DefaultAPIURL),
		"base URL of the notes API")
}

func newClient() NotesClient {
	return client.NewClient(apiURL)
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
