package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/roboco-io/mdgrid/internal/editor"
	"github.com/roboco-io/mdgrid/internal/table"
)

const minColumnWidth = 3

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelp()
	}

	sections := []string{m.renderTitle(), m.renderGridPane()}
	if m.editing {
		sections = append(sections, m.input.View())
	}
	if m.opts.ShowSource {
		style := paneStyle
		if m.focus == SourcePane {
			style = activePaneStyle
		}
		sections = append(sections, style.Render(m.source.View()))
	}
	sections = append(sections, m.renderStatus())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitle() string {
	title := titleStyle.Render("mdgrid")
	if m.opts.Path != "" {
		path := m.opts.Path
		if m.modified {
			path += " *"
		}
		title += " " + pathStyle.Render(path)
	}
	return title
}

func (m Model) renderGridPane() string {
	style := paneStyle
	if m.focus == GridPane {
		style = activePaneStyle
	}
	return style.Render(m.renderGrid())
}

// renderGrid draws the table with selection, cursor and drag marks.
func (m Model) renderGrid() string {
	t := m.session.Table()
	if t.NumCols() == 0 {
		return emptyStyle.Render("empty table: press n for a new table or type Markdown in the source pane")
	}

	widths := columnWidths(t, m.opts.MaxCellWidth)
	sep := gridBorderStyle.Render("│")

	var sb strings.Builder
	sb.WriteString(m.renderRow(table.HeaderRow, t.Header, widths, sep))
	sb.WriteString("\n")

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("─", w+2)
	}
	sb.WriteString(gridBorderStyle.Render("├" + strings.Join(rule, "┼") + "┤"))

	for r := range t.Rows {
		sb.WriteString("\n")
		sb.WriteString(m.renderRow(r, t.Rows[r], widths, sep))
	}
	return sb.String()
}

func (m Model) renderRow(r int, cells []string, widths []int, sep string) string {
	var sb strings.Builder
	sb.WriteString(sep)
	for c, w := range widths {
		text := ""
		if c < len(cells) {
			text = cells[c]
		}
		sb.WriteString(m.styleFor(table.Loc{Row: r, Col: c}).Render(" " + fit(text, w) + " "))
		sb.WriteString(sep)
	}
	return sb.String()
}

func (m Model) styleFor(loc table.Loc) lipgloss.Style {
	s := m.session
	source, dragging := s.DragSource()

	switch {
	case m.focus == GridPane && loc == m.cursor:
		return cursorCellStyle
	case loc.Row == table.HeaderRow && dragging && loc.Col == source:
		return dragSourceStyle
	case loc.Row == table.HeaderRow && dragging && loc.Col == m.cursor.Col:
		return dropTargetStyle
	case s.ColumnSelected(loc.Col), loc.Row != table.HeaderRow && s.RowSelected(loc.Row):
		return selectedCellStyle
	case loc.Row == table.HeaderRow:
		return headerCellStyle
	}
	return cellStyle
}

func (m Model) renderStatus() string {
	s := m.session
	mode := editModeStyle.Render("EDIT")
	if s.Mode() == editor.DragMode {
		mode = dragModeStyle.Render("DRAG")
	}

	info := fmt.Sprintf("%d×%d", s.Table().NumCols(), s.Table().NumRows())
	if sel := s.Selection(); sel != editor.NoSelection {
		info += "  selected: " + sel.String()
	}
	if source, ok := s.DragSource(); ok {
		info += fmt.Sprintf("  dragging: column %d", source+1)
	}

	line := mode + statusStyle.Render(info)
	if m.status != "" {
		line += " " + messageStyle.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, statusStyle.Render(helpLine(m.keys.ShortHelp())))
}

func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("mdgrid keys"))
	sb.WriteString("\n\n")
	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			sb.WriteString(fmt.Sprintf("  %s  %s\n", helpKeyStyle.Render(fmt.Sprintf("%-8s", h.Key)), helpDescStyle.Render(h.Desc)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(helpDescStyle.Render("press ? or esc to close"))
	return sb.String()
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}

// columnWidths sizes each column to its widest cell, capped at max.
func columnWidths(t *table.Table, maxWidth int) []int {
	widths := make([]int, t.NumCols())
	for c := range widths {
		widths[c] = minColumnWidth
		if w := lipgloss.Width(t.Header[c]); w > widths[c] {
			widths[c] = w
		}
		for _, row := range t.Rows {
			if c < len(row) {
				if w := lipgloss.Width(row[c]); w > widths[c] {
					widths[c] = w
				}
			}
		}
		if widths[c] > maxWidth {
			widths[c] = max(maxWidth, minColumnWidth)
		}
	}
	return widths
}

// fit pads or truncates s to exactly width display cells.
func fit(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
