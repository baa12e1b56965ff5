package table

import "fmt"

// EditCell sets the text of one cell. Structure is unchanged.
func (t *Table) EditCell(loc Loc, text string) error {
	if !t.Valid(loc) {
		return fmt.Errorf("edit cell (%d,%d): %w", loc.Row, loc.Col, ErrOutOfRange)
	}
	if loc.Row == HeaderRow {
		t.Header[loc.Col] = text
		return nil
	}
	t.Normalize()
	t.Rows[loc.Row][loc.Col] = text
	return nil
}

// AddRow appends a body row of empty cells.
func (t *Table) AddRow() error {
	if len(t.Header) == 0 {
		return ErrNoColumns
	}
	t.Normalize()
	t.Rows = append(t.Rows, make([]string, len(t.Header)))
	return nil
}

// AddColumn appends a column titled "Header N" with empty body cells.
func (t *Table) AddColumn() error {
	if len(t.Header) == 0 {
		return ErrNoColumns
	}
	t.Normalize()
	t.Header = append(t.Header, fmt.Sprintf("Header %d", len(t.Header)+1))
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	return nil
}

// DeleteRow removes the body row at index, or the last row for Last.
func (t *Table) DeleteRow(index int) error {
	if len(t.Rows) == 0 {
		return ErrNoRows
	}
	if index == Last {
		index = len(t.Rows) - 1
	}
	if index < 0 || index >= len(t.Rows) {
		return fmt.Errorf("delete row %d: %w", index, ErrOutOfRange)
	}
	t.Normalize()
	t.Rows = append(t.Rows[:index], t.Rows[index+1:]...)
	return nil
}

// DeleteColumn removes the column at index, or the last column for Last.
// At least one column always remains.
func (t *Table) DeleteColumn(index int) error {
	if len(t.Header) <= 1 {
		return ErrLastColumn
	}
	if index == Last {
		index = len(t.Header) - 1
	}
	if index < 0 || index >= len(t.Header) {
		return fmt.Errorf("delete column %d: %w", index, ErrOutOfRange)
	}
	t.Normalize()
	t.Header = removeAt(t.Header, index)
	for i := range t.Rows {
		t.Rows[i] = removeAt(t.Rows[i], index)
	}
	return nil
}

// SwapColumns exchanges the text of columns i and j in the header and in
// every body row.
func (t *Table) SwapColumns(i, j int) error {
	n := len(t.Header)
	if i < 0 || i >= n || j < 0 || j >= n {
		return fmt.Errorf("swap columns %d and %d: %w", i, j, ErrOutOfRange)
	}
	if i == j {
		return nil
	}
	t.Normalize()
	t.Header[i], t.Header[j] = t.Header[j], t.Header[i]
	for _, row := range t.Rows {
		row[i], row[j] = row[j], row[i]
	}
	return nil
}

func removeAt(s []string, i int) []string {
	out := make([]string, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}
