// Package table holds the canonical grid of a Markdown pipe table and the
// operations that convert it to and from text and mutate its structure.
package table

import "errors"

var (
	// ErrNoTable is returned by Parse when the input holds no usable table.
	ErrNoTable = errors.New("no table found")
	// ErrNoColumns is returned when a row or column is added to a columnless table.
	ErrNoColumns = errors.New("cannot add to columnless table")
	// ErrLastColumn is returned when deleting would leave zero columns.
	ErrLastColumn = errors.New("cannot delete the last column")
	// ErrNoRows is returned when deleting from a table without body rows.
	ErrNoRows = errors.New("table has no body rows")
	// ErrOutOfRange is returned for a row or column index outside the table.
	ErrOutOfRange = errors.New("index out of range")
)

const (
	// HeaderRow is the Loc.Row value addressing the header.
	HeaderRow = -1
	// Last selects the last row or column in DeleteRow and DeleteColumn.
	Last = -1
)

// Table is a header row plus body rows of cell text.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Loc addresses a single cell. Row is a body row index or HeaderRow.
type Loc struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// New creates an empty table.
func New() *Table {
	return &Table{
		Header: make([]string, 0),
		Rows:   make([][]string, 0),
	}
}

// NewSample creates the fixed three by three starter table.
func NewSample() *Table {
	return &Table{
		Header: []string{"Header 1", "Header 2", "Header 3"},
		Rows: [][]string{
			{"Cell 1", "Cell 2", "Cell 3"},
			{"Cell 4", "Cell 5", "Cell 6"},
		},
	}
}

// NumCols returns the column count, which is the header length.
func (t *Table) NumCols() int {
	return len(t.Header)
}

// NumRows returns the number of body rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table has neither header nor rows.
func (t *Table) IsEmpty() bool {
	return len(t.Header) == 0 && len(t.Rows) == 0
}

// Valid reports whether loc addresses a cell inside the header-defined grid.
func (t *Table) Valid(loc Loc) bool {
	if loc.Col < 0 || loc.Col >= len(t.Header) {
		return false
	}
	return loc.Row == HeaderRow || (loc.Row >= 0 && loc.Row < len(t.Rows))
}

// Cell returns the text at loc. Cells missing from a short row read as "".
func (t *Table) Cell(loc Loc) (string, bool) {
	if !t.Valid(loc) {
		return "", false
	}
	if loc.Row == HeaderRow {
		return t.Header[loc.Col], true
	}
	row := t.Rows[loc.Row]
	if loc.Col >= len(row) {
		return "", true
	}
	return row[loc.Col], true
}

// Ragged returns the indices of body rows whose length differs from the header.
func (t *Table) Ragged() []int {
	var idx []int
	for i, row := range t.Rows {
		if len(row) != len(t.Header) {
			idx = append(idx, i)
		}
	}
	return idx
}

// Normalize pads short rows with empty cells and truncates long ones so that
// every row has exactly NumCols cells.
func (t *Table) Normalize() {
	cols := len(t.Header)
	for i, row := range t.Rows {
		t.Rows[i] = fitRow(row, cols)
	}
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := &Table{
		Header: append(make([]string, 0, len(t.Header)), t.Header...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		c.Rows[i] = append(make([]string, 0, len(row)), row...)
	}
	return c
}

// Equal reports whether both tables hold the same cells.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if !equalRow(t.Header, o.Header) || len(t.Rows) != len(o.Rows) {
		return false
	}
	for i := range t.Rows {
		if !equalRow(t.Rows[i], o.Rows[i]) {
			return false
		}
	}
	return true
}

func equalRow(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// fitRow returns row padded or truncated to n cells. The returned slice may
// share storage with row only when no padding is needed.
func fitRow(row []string, n int) []string {
	if len(row) == n {
		return row
	}
	if len(row) > n {
		return row[:n:n]
	}
	out := make([]string, n)
	copy(out, row)
	return out
}
