// Package notes holds the note service: the single place where incoming notes
// are validated before they reach a store.
package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrshanahan/student-notes/pkg/notes"
)

var ErrInvalidNote = errors.New("title and description are required")

// StoreError reports a failed store call. Nothing was persisted.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

type Store interface {
	ListNotes(ctx context.Context) ([]*notes.Note, error)
	InsertNote(ctx context.Context, title, description string) (*notes.Note, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListNotes returns every note, newest first.
func (s *Service) ListNotes(ctx context.Context) ([]*notes.Note, error) {
	result, err := s.store.ListNotes(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list notes", Err: err}
	}
	if result == nil {
		result = []*notes.Note{}
	}
	return result, nil
}

// CreateNote trims both fields and rejects the request with ErrInvalidNote if
// either ends up empty. There is no idempotency key, so a retried call
// creates a second note.
func (s *Service) CreateNote(ctx context.Context, req notes.NoteRequest) (*notes.Note, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, ErrInvalidNote
	}

	note, err := s.store.InsertNote(ctx, title, description)
	if err != nil {
		return nil, &StoreError{Op: "create note", Err: err}
	}
	return note, nil
}
