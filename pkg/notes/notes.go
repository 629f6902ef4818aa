package notes

import "time"

type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NoteRequest is the body accepted by POST /api/notes.
type NoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}
