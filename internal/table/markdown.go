package table

import (
	"regexp"
	"strings"
)

// cellEscaper keeps a cell on one line and inside its column.
var cellEscaper = strings.NewReplacer("\n", " ", "|", `\|`)

// separatorPattern matches a GFM alignment row such as "| --- | :-: |".
var separatorPattern = regexp.MustCompile(`^\s*\|[\s\-\|:]+\|\s*$`)

// Parse converts pipe table text into a Table.
//
// Blank input yields the empty table. Lines without a pipe are skipped. The
// line at index 1 is dropped when it looks like an alignment row and kept as
// data otherwise. Parse does not pad or truncate body rows; call Normalize
// for that. ErrNoTable is returned for input with fewer than two lines or
// without any table row, so callers can keep their previous state.
func Parse(text string) (*Table, error) {
	if strings.TrimSpace(text) == "" {
		return New(), nil
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return nil, ErrNoTable
	}

	var rows [][]string
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if !strings.Contains(line, "|") {
			continue
		}
		if i == 1 && separatorPattern.MatchString(line) {
			continue
		}
		cells := splitRow(line)
		if len(cells) == 0 {
			continue
		}
		rows = append(rows, cells)
	}

	if len(rows) == 0 {
		return nil, ErrNoTable
	}

	return &Table{
		Header: rows[0],
		Rows:   append(make([][]string, 0, len(rows)-1), rows[1:]...),
	}, nil
}

// splitRow splits one line on unescaped pipes, trims every cell and drops
// the empty cells produced by a leading or trailing pipe. An escaped pipe
// (\|) is kept in the cell as a literal pipe.
func splitRow(line string) []string {
	var parts []string
	var cell strings.Builder
	for i := 0; i < len(line); i++ {
		switch {
		case line[i] == '\\' && i+1 < len(line) && line[i+1] == '|':
			cell.WriteByte('|')
			i++
		case line[i] == '|':
			parts = append(parts, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(line[i])
		}
	}
	parts = append(parts, strings.TrimSpace(cell.String()))

	if len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// Serialize renders t as a GFM pipe table with a dashes-only separator.
// Body rows are written padded or truncated to the header width.
func Serialize(t *Table) string {
	if t == nil || len(t.Header) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow(&sb, t.Header)

	sb.WriteString("|")
	for range t.Header {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")

	for _, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		writeRow(&sb, fitRow(row, len(t.Header)))
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("|")
	for _, cell := range cells {
		text := cellEscaper.Replace(cell)
		sb.WriteString(" " + text + " |")
	}
	sb.WriteString("\n")
}
