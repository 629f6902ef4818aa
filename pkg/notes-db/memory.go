package notesdb

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/mrshanahan/student-notes/pkg/notes"
)

// Ensure MemoryStore implements the interface.
var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps notes in process memory. Contents are lost on exit.
type MemoryStore struct {
	mu    sync.RWMutex
	notes []notes.Note
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ListNotes(_ context.Context) ([]*notes.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest insertion first, then a stable sort keeps that order for equal timestamps.
	result := make([]*notes.Note, 0, len(s.notes))
	for i := len(s.notes) - 1; i >= 0; i-- {
		note := s.notes[i]
		result = append(result, &note)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *MemoryStore) InsertNote(_ context.Context, title, description string) (*notes.Note, error) {
	note := notes.Note{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CreatedAt:   now(),
	}

	s.mu.Lock()
	s.notes = append(s.notes, note)
	s.mu.Unlock()

	return &note, nil
}

func (s *MemoryStore) Close(_ context.Context) error {
	return nil
}
