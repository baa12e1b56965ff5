package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roboco-io/mdgrid/internal/editor"
	"github.com/roboco-io/mdgrid/internal/logger"
	"github.com/roboco-io/mdgrid/internal/table"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-10, 10)
		m.source.SetWidth(max(msg.Width-4, 10))
		m.source.SetHeight(max(msg.Height/3, 3))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Cancel) {
			m.showHelp = false
		}
		return m, nil
	}
	if m.editing {
		return m.handleEditing(msg)
	}
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Save) {
		m.save()
		return m, nil
	}
	if key.Matches(msg, m.keys.Focus) && m.opts.ShowSource {
		return m.switchFocus()
	}
	if m.focus == SourcePane {
		return m.handleSource(msg)
	}
	return m.handleGrid(msg)
}

func (m Model) switchFocus() (tea.Model, tea.Cmd) {
	if m.focus == GridPane {
		m.focus = SourcePane
		cmd := m.source.Focus()
		return m, cmd
	}
	m.focus = GridPane
	m.source.Blur()
	return m, nil
}

// handleSource feeds keys to the source pane and reparses its contents.
// Text that is not a table leaves the grid as it was.
func (m Model) handleSource(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return m.switchFocus()
	}

	before := m.source.Value()
	var cmd tea.Cmd
	m.source, cmd = m.source.Update(msg)
	after := m.source.Value()
	if after == before {
		return m, cmd
	}

	err := m.session.SetText(after)
	if m.sync.dirty {
		m.sync.dirty = false
		m.modified = true
	}
	switch {
	case errors.Is(err, table.ErrNoTable):
		m.status = "source is not a table; grid unchanged"
	case err != nil:
		m.status = err.Error()
	default:
		m.status = ""
		m.clampCursor()
	}
	return m, cmd
}

func (m Model) handleEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		m.status = "edit cancelled"
		return m, nil
	case tea.KeyEnter:
		m.editing = false
		m.input.Blur()
		m.report(m.session.EditCell(m.cursor, m.input.Value()))
		m.syncSource()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Up):
		if m.cursor.Row > table.HeaderRow {
			m.cursor.Row--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor.Row < s.Table().NumRows()-1 {
			m.cursor.Row++
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor.Col > 0 {
			m.cursor.Col--
			m.hover()
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor.Col < s.Table().NumCols()-1 {
			m.cursor.Col++
			m.hover()
		}

	case key.Matches(msg, m.keys.Select):
		m.selectAtCursor()

	case key.Matches(msg, m.keys.Edit):
		if !s.Editable(m.cursor) {
			if s.Mode() == editor.DragMode {
				m.status = "cells are read-only in drag mode"
			}
			break
		}
		text, _ := s.Table().Cell(m.cursor)
		m.input.SetValue(text)
		m.input.CursorEnd()
		m.editing = true
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Cancel):
		if s.Mode() == editor.DragMode {
			s.DragEnd()
		} else {
			s.ClickOutside()
		}

	case key.Matches(msg, m.keys.ToggleMode):
		s.ToggleMode()
		if s.Mode() == editor.DragMode {
			m.cursor.Row = table.HeaderRow
		}
		m.status = s.Mode().String() + " mode"

	case key.Matches(msg, m.keys.AddRow):
		m.report(s.AddRow())
	case key.Matches(msg, m.keys.AddColumn):
		m.report(s.AddColumn())
	case key.Matches(msg, m.keys.DelRow):
		m.report(s.DeleteRow())
	case key.Matches(msg, m.keys.DelColumn):
		m.report(s.DeleteColumn())
	case key.Matches(msg, m.keys.NewTable):
		s.NewTable()
		m.cursor = table.Loc{Row: table.HeaderRow}

	case key.Matches(msg, m.keys.Copy):
		if err := writeClipboard(s.Text()); err != nil {
			logger.Warn("clipboard write failed", "error", err)
			m.status = "copy failed: " + err.Error()
		} else {
			m.status = "copied table to clipboard"
		}
	}

	m.clampCursor()
	m.syncSource()
	return m, nil
}

// selectAtCursor is the keyboard stand-in for a click. In drag mode the
// first press picks up the header under the cursor and the second drops it.
func (m *Model) selectAtCursor() {
	s := m.session
	if s.Mode() == editor.EditMode {
		if m.cursor.Row == table.HeaderRow {
			s.ClickHeader(m.cursor.Col)
		} else {
			s.ClickCell(m.cursor.Row)
		}
		return
	}

	source, dragging := s.DragSource()
	if !dragging {
		if m.cursor.Row != table.HeaderRow || !s.IsDragSource(m.cursor.Col) {
			m.status = "drag starts on a header cell"
			return
		}
		s.DragStart(m.cursor.Col)
		m.status = fmt.Sprintf("dragging column %d", m.cursor.Col+1)
		return
	}

	err := s.Drop(m.cursor.Col)
	s.DragEnd()
	switch {
	case err != nil:
		m.report(err)
	case source == m.cursor.Col:
		m.status = "drop cancelled"
	default:
		m.status = fmt.Sprintf("swapped columns %d and %d", source+1, m.cursor.Col+1)
	}
}

func (m *Model) hover() {
	if _, dragging := m.session.DragSource(); dragging && m.session.DragOver(m.cursor.Col) {
		m.status = fmt.Sprintf("drop onto column %d", m.cursor.Col+1)
	}
}

func (m *Model) save() {
	if m.opts.Save == nil {
		m.status = ErrNoSaveTarget.Error()
		return
	}
	if err := m.opts.Save(m.session.Text()); err != nil {
		logger.Error("save failed", "path", m.opts.Path, "error", err)
		m.status = "save failed: " + err.Error()
		return
	}
	m.modified = false
	m.status = "saved " + m.opts.Path
}

// report turns a refused operation into a status message.
func (m *Model) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, table.ErrNoColumns):
		m.status = "table has no columns; press n for a new table"
	case errors.Is(err, table.ErrLastColumn):
		m.status = "a table keeps at least one column"
	case errors.Is(err, table.ErrNoRows):
		m.status = "no rows to delete"
	case errors.Is(err, table.ErrOutOfRange):
		m.status = "selection no longer exists"
	default:
		m.status = err.Error()
	}
}
