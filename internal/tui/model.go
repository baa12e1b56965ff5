package tui

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roboco-io/mdgrid/internal/editor"
	"github.com/roboco-io/mdgrid/internal/table"
)

// Pane identifies which pane has keyboard focus
type Pane int

const (
	GridPane Pane = iota
	SourcePane
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// ErrNoSaveTarget is returned when ctrl+s is pressed without a save callback.
var ErrNoSaveTarget = errors.New("no file to save to")

// Options configures a Model.
type Options struct {
	// Path is shown in the title bar.
	Path string
	// MaxCellWidth caps the rendered width of a grid column.
	MaxCellWidth int
	// ShowSource shows the Markdown source pane below the grid.
	ShowSource bool
	// Save persists the serialized table. Nil disables saving.
	Save func(markdown string) error
}

// sourceSync records grid-side table changes so the source pane can be
// refreshed after the update that caused them. It is shared through a
// pointer because bubbletea models are copied by value.
type sourceSync struct {
	dirty bool
}

// Model is the bubbletea model of the grid editor.
type Model struct {
	session *editor.Session
	keys    KeyMap
	opts    Options

	focus  Pane
	cursor table.Loc

	editing bool
	input   textinput.Model
	source  textarea.Model
	sync    *sourceSync

	width    int
	height   int
	status   string
	showHelp bool
	modified bool
	quitting bool
}

// NewModel builds a Model over session.
func NewModel(session *editor.Session, opts Options) Model {
	if opts.MaxCellWidth <= 0 {
		opts.MaxCellWidth = 24
	}

	input := textinput.New()
	input.Prompt = "edit> "

	source := textarea.New()
	source.ShowLineNumbers = false
	source.Placeholder = "Markdown table source"
	source.CharLimit = 0
	source.MaxHeight = 0
	source.MaxWidth = 0
	source.SetValue(session.Text())
	source.Blur()

	sync := &sourceSync{}
	session.Subscribe(func(ev editor.Event) {
		if ev.Kind == editor.EventTable {
			sync.dirty = true
		}
	})

	return Model{
		session: session,
		keys:    DefaultKeyMap(),
		opts:    opts,
		focus:   GridPane,
		cursor:  table.Loc{Row: table.HeaderRow},
		input:   input,
		source:  source,
		sync:    sync,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Session returns the session the model edits.
func (m Model) Session() *editor.Session { return m.session }

// Cursor returns the grid cursor. Row is table.HeaderRow on the header.
func (m Model) Cursor() table.Loc { return m.cursor }

// Focus returns the focused pane.
func (m Model) Focus() Pane { return m.focus }

// Editing reports whether a cell edit is in progress.
func (m Model) Editing() bool { return m.editing }

// Status returns the last status message.
func (m Model) Status() string { return m.status }

// Modified reports whether the table changed since the last save.
func (m Model) Modified() bool { return m.modified }

// SourceText returns the source pane contents.
func (m Model) SourceText() string { return m.source.Value() }

// clampCursor keeps the cursor inside the table after structural changes.
func (m *Model) clampCursor() {
	t := m.session.Table()
	if m.cursor.Col >= t.NumCols() {
		m.cursor.Col = t.NumCols() - 1
	}
	if m.cursor.Col < 0 {
		m.cursor.Col = 0
	}
	if m.cursor.Row >= t.NumRows() {
		m.cursor.Row = t.NumRows() - 1
	}
	if m.cursor.Row < table.HeaderRow {
		m.cursor.Row = table.HeaderRow
	}
}

// syncSource pushes grid-side changes into the source pane.
func (m *Model) syncSource() {
	if !m.sync.dirty {
		return
	}
	m.sync.dirty = false
	m.modified = true
	m.source.SetValue(m.session.Text())
}
