package notesdb

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mrshanahan/student-notes/pkg/notes"
)

var (
	//go:embed files/create_notes_tables.sql
	CREATE_NOTES_TABLES_SQL string
)

// Fixed width so that created_at sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Ensure SQLiteStore implements the interface.
var _ Store = (*SQLiteStore)(nil)

type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database file at path and
// ensures the notes table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", path, err)
	}
	// A single connection also keeps ":memory:" databases from splitting per connection.
	db.SetMaxOpenConns(1)

	store := NewSQLiteStore(db)
	if err := store.Initialize(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewSQLiteStore wraps an already opened database. Call Initialize before use
// unless the schema is known to exist.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Initialize(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, CREATE_NOTES_TABLES_SQL); err != nil {
		return fmt.Errorf("failed to create notes tables: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListNotes(ctx context.Context) ([]*notes.Note, error) {
	stmt, err := s.db.PrepareContext(ctx, "SELECT id, title, description, created_at FROM notes ORDER BY created_at DESC, seq DESC")
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []*notes.Note{}
	for rows.Next() {
		note, err := scanNoteRows(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, note)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *SQLiteStore) InsertNote(ctx context.Context, title, description string) (*notes.Note, error) {
	stmt, err := s.db.PrepareContext(ctx, "INSERT INTO notes (id, title, description, created_at) VALUES (?, ?, ?, ?)")
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	note := &notes.Note{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CreatedAt:   now(),
	}
	if _, err := stmt.ExecContext(ctx, note.ID, note.Title, note.Description, formatTime(note.CreatedAt)); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *SQLiteStore) Close(_ context.Context) error {
	return s.db.Close()
}

// Private

func scanNoteRows(rows *sql.Rows) (*notes.Note, error) {
	note := &notes.Note{}
	var createdAt string
	if err := rows.Scan(&note.ID, &note.Title, &note.Description, &createdAt); err != nil {
		return nil, err
	}
	var err error
	note.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
