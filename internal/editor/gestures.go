package editor

import (
	"github.com/roboco-io/mdgrid/internal/logger"
	"github.com/roboco-io/mdgrid/internal/table"
)

// ClickCell selects the body row containing the clicked cell. Ignored in
// drag mode. A row that no longer exists clears the selection.
func (s *Session) ClickCell(row int) {
	if s.mode != EditMode {
		return
	}
	if row < 0 || row >= s.table.NumRows() {
		s.ClickOutside()
		return
	}
	s.setSelection(Selection{Kind: SelectRow, Index: row})
}

// ClickHeader selects a whole column. Ignored in drag mode.
func (s *Session) ClickHeader(col int) {
	if s.mode != EditMode {
		return
	}
	if col < 0 || col >= s.table.NumCols() {
		s.ClickOutside()
		return
	}
	s.setSelection(Selection{Kind: SelectColumn, Index: col})
}

// ClickOutside clears the selection. Ignored in drag mode.
func (s *Session) ClickOutside() {
	if s.mode != EditMode {
		return
	}
	if s.clearSelection() {
		s.emit(EventSelection)
	}
}

func (s *Session) setSelection(sel Selection) {
	if s.sel == sel {
		return
	}
	s.sel = sel
	s.emit(EventSelection)
}

// RowSelected reports whether body row r is the selected row.
func (s *Session) RowSelected(r int) bool {
	return s.sel.Kind == SelectRow && s.sel.Index == r
}

// ColumnSelected reports whether column c is selected. Views mark the header
// cell and every body cell of that column.
func (s *Session) ColumnSelected(c int) bool {
	return s.sel.Kind == SelectColumn && s.sel.Index == c
}

// ToggleMode flips between edit and drag mode and clears selection and any
// in-flight drag.
func (s *Session) ToggleMode() {
	if s.mode == EditMode {
		s.mode = DragMode
	} else {
		s.mode = EditMode
	}
	s.clearSelection()
	s.clearDrag()
	s.drag.swapping = false
	logger.Debug("mode toggled", "mode", s.mode)
	s.emit(EventMode)
}

// Editable reports whether the cell at loc accepts text edits.
func (s *Session) Editable(loc table.Loc) bool {
	return s.mode == EditMode && s.table.Valid(loc)
}

// IsDragSource reports whether header column col can start a drag.
func (s *Session) IsDragSource(col int) bool {
	return s.mode == DragMode && col >= 0 && col < s.table.NumCols()
}

// EditCell sets one cell's text. Refused in drag mode.
func (s *Session) EditCell(loc table.Loc, text string) error {
	if s.mode != EditMode {
		return ErrNotEditable
	}
	if cur, ok := s.table.Cell(loc); ok && cur == text {
		return nil
	}
	if err := s.table.EditCell(loc, text); err != nil {
		logger.Debug("edit refused", "row", loc.Row, "col", loc.Col, "error", err)
		return err
	}
	s.emit(EventTable)
	return nil
}

// AddRow appends an empty body row.
func (s *Session) AddRow() error {
	return s.mutate("add-row", (*table.Table).AddRow)
}

// AddColumn appends a new column.
func (s *Session) AddColumn() error {
	return s.mutate("add-column", (*table.Table).AddColumn)
}

// DeleteRow deletes the selected row in edit mode, and the last row
// otherwise. A stale row selection is cleared without deleting anything.
func (s *Session) DeleteRow() error {
	index := table.Last
	if s.mode == EditMode && s.sel.Kind == SelectRow {
		if s.sel.Index >= s.table.NumRows() {
			return s.dropStaleSelection()
		}
		index = s.sel.Index
	}
	return s.mutate("delete-row", func(t *table.Table) error { return t.DeleteRow(index) })
}

// DeleteColumn deletes the selected column in edit mode, and the last column
// otherwise. A stale column selection is cleared without deleting anything.
func (s *Session) DeleteColumn() error {
	index := table.Last
	if s.mode == EditMode && s.sel.Kind == SelectColumn {
		if s.sel.Index >= s.table.NumCols() {
			return s.dropStaleSelection()
		}
		index = s.sel.Index
	}
	return s.mutate("delete-column", func(t *table.Table) error { return t.DeleteColumn(index) })
}

func (s *Session) dropStaleSelection() error {
	logger.Debug("stale selection cleared", "selection", s.sel.String())
	s.clearSelection()
	s.emit(EventSelection)
	return table.ErrOutOfRange
}

// DragStart records col as the drag source. Ignored outside drag mode and
// for columns that are not drag sources.
func (s *Session) DragStart(col int) {
	if !s.IsDragSource(col) {
		return
	}
	s.drag.source, s.drag.hasSource = col, true
	s.emit(EventDrag)
}

// DragOver reports whether a drop on col would be accepted. It never
// changes state.
func (s *Session) DragOver(col int) bool {
	return s.mode == DragMode
}

// Drop swaps the dragged column with col. It is a no-op outside drag mode,
// while a swap is already running, without a recorded source, or when col
// is the source. The source is consumed on every path that reaches the swap.
func (s *Session) Drop(col int) error {
	if s.mode != DragMode || s.drag.swapping || !s.drag.hasSource {
		return nil
	}
	source := s.drag.source
	if col == source {
		return nil
	}
	if source >= s.table.NumCols() || col < 0 || col >= s.table.NumCols() {
		s.clearDrag()
		s.emit(EventDrag)
		return table.ErrOutOfRange
	}

	s.drag.swapping = true
	defer func() {
		s.drag.swapping = false
		s.clearDrag()
		s.emit(EventDrag)
	}()

	if err := s.table.SwapColumns(source, col); err != nil {
		return err
	}
	logger.Debug("columns swapped", "from", source, "to", col)
	s.emit(EventTable)
	return nil
}

// DragEnd clears the drag source whether or not a drop happened.
func (s *Session) DragEnd() {
	if s.clearDrag() {
		s.emit(EventDrag)
	}
}
