// Package editor implements the interaction state machine that sits between
// a view and a table.Table: mode, selection and column drag-reorder.
//
// A Session is owned by its caller and is not safe for concurrent use. Every
// gesture runs to completion before the next one is accepted.
package editor

import (
	"errors"
	"fmt"

	"github.com/roboco-io/mdgrid/internal/logger"
	"github.com/roboco-io/mdgrid/internal/table"
)

var (
	// ErrNotEditable is returned for cell edits while in drag mode.
	ErrNotEditable = errors.New("cells are not editable in drag mode")
	// ErrUnknownIntent is returned by Dispatch and ParseIntent for unknown intents.
	ErrUnknownIntent = errors.New("unknown intent")
)

// Mode is the editor mode.
type Mode int

const (
	EditMode Mode = iota
	DragMode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case DragMode:
		return "drag"
	default:
		return "edit"
	}
}

// SelectionKind tells what a Selection refers to.
type SelectionKind int

const (
	SelectNone SelectionKind = iota
	SelectRow
	SelectColumn
)

// Selection is none, one body row, or one column.
type Selection struct {
	Kind  SelectionKind
	Index int
}

// NoSelection is the empty selection.
var NoSelection = Selection{Kind: SelectNone}

// String returns a short description such as "row 2".
func (s Selection) String() string {
	switch s.Kind {
	case SelectRow:
		return fmt.Sprintf("row %d", s.Index)
	case SelectColumn:
		return fmt.Sprintf("column %d", s.Index)
	default:
		return "none"
	}
}

// dragState tracks an in-flight column drag.
type dragState struct {
	source    int
	hasSource bool
	swapping  bool
}

// EventKind identifies what changed in a Session.
type EventKind int

const (
	EventTable EventKind = iota
	EventSelection
	EventMode
	EventDrag
)

// String returns the string representation of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventTable:
		return "table"
	case EventSelection:
		return "selection"
	case EventMode:
		return "mode"
	case EventDrag:
		return "drag"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners after a state change.
type Event struct {
	Kind    EventKind
	Session *Session
}

// Listener receives session events.
type Listener func(Event)

// Option configures a Session.
type Option func(*Session)

// WithTable starts the session with t instead of the empty table.
func WithTable(t *table.Table) Option {
	return func(s *Session) {
		if t != nil {
			s.table = t
		}
	}
}

// WithMode sets the initial mode.
func WithMode(m Mode) Option {
	return func(s *Session) { s.mode = m }
}

// WithNormalize pads or truncates ragged rows whenever a table is loaded.
func WithNormalize(normalize bool) Option {
	return func(s *Session) { s.normalize = normalize }
}

// Session is one editor instance: a table plus mode, selection and drag state.
type Session struct {
	table     *table.Table
	mode      Mode
	sel       Selection
	drag      dragState
	normalize bool

	listeners map[int]Listener
	nextID    int
}

// NewSession creates a session. Without options it holds the empty table
// in edit mode and normalizes loaded tables.
func NewSession(opts ...Option) *Session {
	s := &Session{
		table:     table.New(),
		mode:      EditMode,
		normalize: true,
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.normalize {
		s.table.Normalize()
	}
	return s
}

// Table returns the current table. Callers must not mutate it directly.
func (s *Session) Table() *table.Table { return s.table }

// Mode returns the current mode.
func (s *Session) Mode() Mode { return s.mode }

// Selection returns the current selection.
func (s *Session) Selection() Selection { return s.sel }

// DragSource returns the column being dragged, if any.
func (s *Session) DragSource() (int, bool) {
	return s.drag.source, s.drag.hasSource
}

// Text serializes the current table.
func (s *Session) Text() string {
	return table.Serialize(s.table)
}

// Subscribe registers l and returns a function that removes it.
func (s *Session) Subscribe(l Listener) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() { delete(s.listeners, id) }
}

func (s *Session) emit(kind EventKind) {
	ev := Event{Kind: kind, Session: s}
	for i := 0; i < s.nextID; i++ {
		if l, ok := s.listeners[i]; ok {
			l(ev)
		}
	}
}

// clearSelection resets the selection and reports whether it changed.
func (s *Session) clearSelection() bool {
	if s.sel.Kind == SelectNone {
		return false
	}
	s.sel = NoSelection
	return true
}

// clearDrag drops the recorded drag source and reports whether it changed.
func (s *Session) clearDrag() bool {
	if !s.drag.hasSource {
		return false
	}
	s.drag.source, s.drag.hasSource = 0, false
	return true
}

// replaceTable installs t and resets transient state.
func (s *Session) replaceTable(t *table.Table) {
	if s.normalize {
		t.Normalize()
	}
	s.table = t
	selChanged := s.clearSelection()
	dragChanged := s.clearDrag()

	s.emit(EventTable)
	if selChanged {
		s.emit(EventSelection)
	}
	if dragChanged {
		s.emit(EventDrag)
	}
}

// SetText parses text and replaces the table. Blank text resets to the
// empty table. If text holds no table the previous table is kept and the
// returned error wraps table.ErrNoTable.
func (s *Session) SetText(text string) error {
	t, err := table.Parse(text)
	if err != nil {
		logger.Debug("text not applied", "error", err)
		return fmt.Errorf("set text: %w", err)
	}
	// Compare in stored form so retyping a ragged table is a no-op.
	if s.normalize {
		t.Normalize()
	}
	if t.Equal(s.table) {
		return nil
	}
	s.replaceTable(t)
	logger.Debug("table loaded", "cols", t.NumCols(), "rows", t.NumRows())
	return nil
}

// NewTable replaces the table with the fixed sample table.
func (s *Session) NewTable() {
	s.replaceTable(table.NewSample())
}

// mutate runs a structural change. On success the selection is cleared and
// listeners are told about the new table. Refusals leave every state alone.
func (s *Session) mutate(name string, op func(*table.Table) error) error {
	if err := op(s.table); err != nil {
		logger.Debug("operation refused", "op", name, "error", err)
		return err
	}
	selChanged := s.clearSelection()
	s.emit(EventTable)
	if selChanged {
		s.emit(EventSelection)
	}
	logger.Debug("operation applied", "op", name, "cols", s.table.NumCols(), "rows", s.table.NumRows())
	return nil
}
