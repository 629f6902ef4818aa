// Package notesdb persists notes. The default backend is MongoDB; SQLite and
// an in-memory store are available for local runs and tests.
package notesdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mrshanahan/student-notes/pkg/notes"
)

var ErrUnsupportedURI = errors.New("unsupported store URI")

// Store is implemented by every backend in this package. Stores assign the
// ID and creation time of new notes and perform no validation of their own.
type Store interface {
	ListNotes(ctx context.Context) ([]*notes.Note, error)
	InsertNote(ctx context.Context, title, description string) (*notes.Note, error)
	Close(ctx context.Context) error
}

// Open picks a backend from the scheme of uri:
//
//	mongodb://host:port/db, mongodb+srv://...   MongoStore
//	sqlite:///path/to/notes.sqlite              SQLiteStore
//	memory://                                   MemoryStore
func Open(ctx context.Context, uri string, log *zap.SugaredLogger) (Store, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	switch {
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		store, err := OpenMongo(ctx, uri, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	case strings.HasPrefix(uri, "sqlite://"):
		store, err := OpenSQLite(ctx, strings.TrimPrefix(uri, "sqlite://"))
		if err != nil {
			return nil, err
		}
		return store, nil
	case strings.HasPrefix(uri, "memory://"):
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedURI, uri)
}

// Mongo keeps millisecond precision, so every backend truncates to match and
// a created note compares equal to its listed copy.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
