package tui

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrshanahan/student-notes/pkg/client"
	"github.com/mrshanahan/student-notes/pkg/notes"
)

// MockClient implements NotesClient for testing.
type MockClient struct {
	ListFunc   func(ctx context.Context) ([]*notes.Note, error)
	CreateFunc func(ctx context.Context, title, description string) (*notes.Note, error)

	creates []notes.NoteRequest
}

func (m *MockClient) ListNotes(ctx context.Context) ([]*notes.Note, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*notes.Note{}, nil
}

func (m *MockClient) CreateNote(ctx context.Context, title, description string) (*notes.Note, error) {
	m.creates = append(m.creates, notes.NoteRequest{Title: title, Description: description})
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, title, description)
	}
	return &notes.Note{ID: "n1", Title: title, Description: description, CreatedAt: time.Now()}, nil
}

func testNotes() []*notes.Note {
	return []*notes.Note{
		{ID: "2", Title: "Lab", Description: "Bring goggles", CreatedAt: time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)},
		{ID: "1", Title: "Lecture", Description: "Chapter 3", CreatedAt: time.Date(2025, 3, 4, 14, 7, 0, 0, time.UTC)},
	}
}

func enter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func update(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(msg)
	require.Same(t, m, next)
	return cmd
}

func load(t *testing.T, m *Model) {
	t.Helper()
	update(t, m, m.fetchNotes()())
}

func TestInitialLoad_RendersNotes(t *testing.T) {
	c := &MockClient{ListFunc: func(context.Context) ([]*notes.Note, error) { return testNotes(), nil }}
	m := New(context.Background(), c)
	require.NotNil(t, m.Init())

	assert.Contains(t, m.View(), "Loading notes...")
	load(t, m)

	view := m.View()
	assert.Contains(t, view, "Lab")
	assert.Contains(t, view, "Bring goggles")
	assert.Contains(t, view, "Lecture")
	assert.Less(t, strings.Index(view, "Lab"), strings.Index(view, "Lecture"))
}

func TestInitialLoad_EmptyPlaceholder(t *testing.T) {
	m := New(context.Background(), &MockClient{})
	load(t, m)

	assert.Contains(t, m.View(), "No notes yet. Add your first note above!")
}

func TestInitialLoad_Error(t *testing.T) {
	c := &MockClient{ListFunc: func(context.Context) ([]*notes.Note, error) {
		return nil, errors.New("connection refused")
	}}
	m := New(context.Background(), c)
	load(t, m)

	view := m.View()
	assert.Contains(t, view, "Error loading notes. Please try again.")
	assert.NotContains(t, view, "No notes yet")
}

func TestRefreshTick_RefetchesAndReschedules(t *testing.T) {
	calls := 0
	c := &MockClient{ListFunc: func(context.Context) ([]*notes.Note, error) {
		calls++
		if calls == 1 {
			return []*notes.Note{}, nil
		}
		return testNotes(), nil
	}}
	m := New(context.Background(), c)
	load(t, m)
	assert.Contains(t, m.View(), "No notes yet")

	cmd := update(t, m, refreshTickMsg{})
	require.NotNil(t, cmd)

	load(t, m)
	assert.Contains(t, m.View(), "Lecture")
}

func TestSubmit_EmptyFieldsDoesNotCallService(t *testing.T) {
	c := &MockClient{}
	m := New(context.Background(), c)
	m.title.SetValue("   ")
	m.description.SetValue("something")

	cmd := update(t, m, enter())

	assert.NotNil(t, cmd)
	assert.Empty(t, c.creates)
	assert.False(t, m.submitting)
	assert.Equal(t, "Please fill in all fields", m.status)
	assert.True(t, m.statusError)
}

func TestSubmit_Success(t *testing.T) {
	c := &MockClient{}
	m := New(context.Background(), c)
	m.title.SetValue("  Lecture ")
	m.description.SetValue("Chapter 3  ")

	cmd := update(t, m, enter())
	require.NotNil(t, cmd)
	assert.True(t, m.submitting)
	assert.Contains(t, m.View(), "Saving...")

	// A second enter while the create is in flight is ignored.
	assert.Nil(t, update(t, m, enter()))

	created := cmd()
	require.IsType(t, noteCreatedMsg{}, created)
	require.Len(t, c.creates, 1)
	assert.Equal(t, notes.NoteRequest{Title: "Lecture", Description: "Chapter 3"}, c.creates[0])

	assert.NotNil(t, update(t, m, created))
	assert.False(t, m.submitting)
	assert.Equal(t, "Note added successfully!", m.status)
	assert.False(t, m.statusError)
	assert.Empty(t, m.title.Value())
	assert.Empty(t, m.description.Value())
}

func TestSubmit_ServiceMessageShown(t *testing.T) {
	c := &MockClient{CreateFunc: func(context.Context, string, string) (*notes.Note, error) {
		return nil, &client.APIError{StatusCode: http.StatusInternalServerError, Message: "Error saving note", Detail: "timeout"}
	}}
	m := New(context.Background(), c)
	m.title.SetValue("t")
	m.description.SetValue("d")

	cmd := update(t, m, enter())
	update(t, m, cmd())

	assert.Equal(t, "Error saving note", m.status)
	assert.True(t, m.statusError)
	assert.Equal(t, "t", m.title.Value(), "inputs are kept after a failed create")
}

func TestSubmit_TransportErrorUsesFallback(t *testing.T) {
	c := &MockClient{CreateFunc: func(context.Context, string, string) (*notes.Note, error) {
		return nil, errors.New("error invoking API: dial tcp: connection refused")
	}}
	m := New(context.Background(), c)
	m.title.SetValue("t")
	m.description.SetValue("d")

	cmd := update(t, m, enter())
	update(t, m, cmd())

	assert.Equal(t, "Error adding note. Please try again.", m.status)
}

func TestStatus_NewerMessagePreemptsOlderTimer(t *testing.T) {
	m := New(context.Background(), &MockClient{})

	m.setStatus("first", false)
	firstSeq := m.statusSeq
	m.setStatus("second", true)

	update(t, m, hideStatusMsg{seq: firstSeq})
	assert.Equal(t, "second", m.status)

	update(t, m, hideStatusMsg{seq: m.statusSeq})
	assert.Empty(t, m.status)
}

func TestTabSwitchesFocus(t *testing.T) {
	m := New(context.Background(), &MockClient{})
	require.True(t, m.title.Focused())

	update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.False(t, m.title.Focused())
	assert.True(t, m.description.Focused())

	update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})
	assert.Equal(t, "abc", m.description.Value())
	assert.Empty(t, m.title.Value())
}

func TestEscQuits(t *testing.T) {
	m := New(context.Background(), &MockClient{})

	cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_NeutralisesTerminalSequences(t *testing.T) {
	c := &MockClient{ListFunc: func(context.Context) ([]*notes.Note, error) {
		return []*notes.Note{{
			ID:          "1",
			Title:       "\x1b]0;pwned\x07<script>alert(1)</script>",
			Description: "plain",
			CreatedAt:   time.Now(),
		}}, nil
	}}
	m := New(context.Background(), c)
	load(t, m)

	view := m.View()
	assert.NotContains(t, view, "\x1b]0;")
	assert.Contains(t, view, "]0;pwned<script>alert(1)</script>")
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"<b>bold</b>", "<b>bold</b>"},
		{"\x1b[31mred\x1b[0m", "[31mred[0m"},
		{"line one\nline two", "line one\nline two"},
		{"tab\there", "tab here"},
		{"bell\x07", "bell"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in))
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, time.March, 4, 14, 7, 0, 0, time.Local)
	assert.Equal(t, "Mar 4, 2025, 02:07 PM", FormatTimestamp(ts))

	morning := time.Date(2024, time.December, 25, 9, 30, 0, 0, time.Local)
	assert.Equal(t, "Dec 25, 2024, 09:30 AM", FormatTimestamp(morning))
}
