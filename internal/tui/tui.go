// Package tui is the terminal rendition of the notes client: an add-note form
// above a list of every note, refreshed on a fixed interval.
package tui

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrshanahan/student-notes/pkg/client"
	"github.com/mrshanahan/student-notes/pkg/notes"
)

const (
	TimestampLayout = "Jan 2, 2006, 03:04 PM"

	// User-facing status and placeholder text, shared with the notes CLI.
	EmptyFieldsMessage = "Please fill in all fields"
	AddedMessage       = "Note added successfully!"
	AddFailedMessage   = "Error adding note. Please try again."
	NoNotesMessage     = "No notes yet. Add your first note above!"
	LoadFailedMessage  = "Error loading notes. Please try again."
)

var (
	RefreshInterval = 30 * time.Second
	StatusDuration  = 3 * time.Second
)

type NotesClient interface {
	ListNotes(ctx context.Context) ([]*notes.Note, error)
	CreateNote(ctx context.Context, title, description string) (*notes.Note, error)
}

type notesLoadedMsg struct {
	notes []*notes.Note
	err   error
}

type noteCreatedMsg struct {
	note *notes.Note
	err  error
}

type refreshTickMsg struct{}

type hideStatusMsg struct {
	seq int
}

const (
	focusTitle = iota
	focusDescription
)

type Model struct {
	client NotesClient
	ctx    context.Context

	title       textinput.Model
	description textinput.Model
	focus       int

	notes   []*notes.Note
	loaded  bool
	loadErr error

	submitting  bool
	status      string
	statusError bool
	statusSeq   int

	width int
}

func New(ctx context.Context, c NotesClient) *Model {
	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = "Title:       "
	title.Focus()

	description := textinput.New()
	description.Placeholder = "Description"
	description.Prompt = "Description: "

	return &Model{
		client:      c,
		ctx:         ctx,
		title:       title,
		description: description,
		width:       80,
	}
}

// Run starts the program and blocks until the user quits or ctx is done.
func Run(ctx context.Context, c NotesClient) error {
	p := tea.NewProgram(New(ctx, c), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchNotes(), scheduleRefresh(), textinput.Blink)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case notesLoadedMsg:
		m.loaded = true
		m.loadErr = msg.err
		if msg.err == nil {
			m.notes = msg.notes
		}
		return m, nil

	case noteCreatedMsg:
		return m.handleNoteCreated(msg)

	case refreshTickMsg:
		return m, tea.Batch(m.fetchNotes(), scheduleRefresh())

	case hideStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		if !m.submitting {
			m.toggleFocus()
		}
		return m, nil
	case tea.KeyEnter:
		return m.submit()
	}

	if m.submitting {
		return m, nil
	}
	return m.updateInputs(msg)
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var titleCmd, descriptionCmd tea.Cmd
	m.title, titleCmd = m.title.Update(msg)
	m.description, descriptionCmd = m.description.Update(msg)
	return m, tea.Batch(titleCmd, descriptionCmd)
}

func (m *Model) toggleFocus() {
	if m.focus == focusTitle {
		m.focus = focusDescription
		m.title.Blur()
		m.description.Focus()
		return
	}
	m.focus = focusTitle
	m.description.Blur()
	m.title.Focus()
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	title := strings.TrimSpace(m.title.Value())
	description := strings.TrimSpace(m.description.Value())
	if title == "" || description == "" {
		return m, m.setStatus(EmptyFieldsMessage, true)
	}

	m.submitting = true
	m.title.Blur()
	m.description.Blur()
	return m, m.createNote(title, description)
}

func (m *Model) handleNoteCreated(msg noteCreatedMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	if m.focus == focusTitle {
		m.title.Focus()
	} else {
		m.description.Focus()
	}

	if msg.err != nil {
		status := AddFailedMessage
		var apiErr *client.APIError
		if errors.As(msg.err, &apiErr) && apiErr.Message != "" {
			status = apiErr.Message
		}
		return m, m.setStatus(status, true)
	}

	m.title.Reset()
	m.description.Reset()
	return m, tea.Batch(m.setStatus(AddedMessage, false), m.fetchNotes())
}

// setStatus replaces the current status line. Hide timers from earlier
// messages are ignored via the sequence number.
func (m *Model) setStatus(text string, isError bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusError = isError
	seq := m.statusSeq
	return tea.Tick(StatusDuration, func(time.Time) tea.Msg {
		return hideStatusMsg{seq: seq}
	})
}

func (m *Model) fetchNotes() tea.Cmd {
	return func() tea.Msg {
		found, err := m.client.ListNotes(m.ctx)
		return notesLoadedMsg{notes: found, err: err}
	}
}

func (m *Model) createNote(title, description string) tea.Cmd {
	return func() tea.Msg {
		note, err := m.client.CreateNote(m.ctx, title, description)
		return noteCreatedMsg{note: note, err: err}
	}
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(RefreshInterval, func(time.Time) tea.Msg {
		return refreshTickMsg{}
	})
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	titleStyle   = lipgloss.NewStyle().Bold(true)
	dateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cardStyle    = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color("12")).
			PaddingLeft(1).
			MarginBottom(1)
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Student Notes"))
	b.WriteString("\n")
	b.WriteString(m.title.View())
	b.WriteString("\n")
	b.WriteString(m.description.View())
	b.WriteString("\n")

	switch {
	case m.submitting:
		b.WriteString(mutedStyle.Render("Saving..."))
	case m.status != "" && m.statusError:
		b.WriteString(errorStyle.Render(m.status))
	case m.status != "":
		b.WriteString(successStyle.Render(m.status))
	}
	b.WriteString("\n\n")

	b.WriteString(m.notesView())
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("tab: switch field • enter: add note • esc: quit"))
	return b.String()
}

func (m *Model) notesView() string {
	if !m.loaded {
		return mutedStyle.Render("Loading notes...")
	}
	if m.loadErr != nil {
		return errorStyle.Render(LoadFailedMessage)
	}
	if len(m.notes) == 0 {
		return mutedStyle.Render(NoNotesMessage)
	}

	cards := make([]string, 0, len(m.notes))
	for _, n := range m.notes {
		cards = append(cards, cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(Sanitize(n.Title)),
			Sanitize(n.Description),
			dateStyle.Render(FormatTimestamp(n.CreatedAt)),
		)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// FormatTimestamp renders t in local time, e.g. "Mar 4, 2025, 02:07 PM".
func FormatTimestamp(t time.Time) string {
	return t.Local().Format(TimestampLayout)
}

// Sanitize drops control characters (escape sequences included) so note text
// is printed as-is and never interpreted by the terminal. Newlines are kept.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		if r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
