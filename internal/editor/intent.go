package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roboco-io/mdgrid/internal/table"
)

// IntentKind enumerates the gestures a view can send to a Session.
type IntentKind int

const (
	IntentEditCell IntentKind = iota
	IntentAddRow
	IntentAddColumn
	IntentDeleteRow
	IntentDeleteColumn
	IntentClickCell
	IntentClickHeader
	IntentClickOutside
	IntentToggleMode
	IntentDragStart
	IntentDragOver
	IntentDrop
	IntentDragEnd
	IntentSetText
	IntentNewTable
)

var intentNames = map[IntentKind]string{
	IntentEditCell:     "set",
	IntentAddRow:       "add-row",
	IntentAddColumn:    "add-col",
	IntentDeleteRow:    "del-row",
	IntentDeleteColumn: "del-col",
	IntentClickCell:    "click-row",
	IntentClickHeader:  "click-col",
	IntentClickOutside: "click-out",
	IntentToggleMode:   "toggle-mode",
	IntentDragStart:    "drag-start",
	IntentDragOver:     "drag-over",
	IntentDrop:         "drop",
	IntentDragEnd:      "drag-end",
	IntentSetText:      "text",
	IntentNewTable:     "new",
}

// String returns the intent's script name.
func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return "unknown"
}

// Intent is a single user gesture.
type Intent struct {
	Kind  IntentKind
	Loc   table.Loc // IntentEditCell
	Index int       // row or column for clicks and drag gestures
	Text  string    // IntentEditCell, IntentSetText
}

// Dispatch applies in to the session. Gestures that are ignored in the
// current mode return nil; refused structural edits return their error.
func (s *Session) Dispatch(in Intent) error {
	switch in.Kind {
	case IntentEditCell:
		return s.EditCell(in.Loc, in.Text)
	case IntentAddRow:
		return s.AddRow()
	case IntentAddColumn:
		return s.AddColumn()
	case IntentDeleteRow:
		return s.DeleteRow()
	case IntentDeleteColumn:
		return s.DeleteColumn()
	case IntentClickCell:
		s.ClickCell(in.Index)
	case IntentClickHeader:
		s.ClickHeader(in.Index)
	case IntentClickOutside:
		s.ClickOutside()
	case IntentToggleMode:
		s.ToggleMode()
	case IntentDragStart:
		s.DragStart(in.Index)
	case IntentDragOver:
		s.DragOver(in.Index)
	case IntentDrop:
		return s.Drop(in.Index)
	case IntentDragEnd:
		s.DragEnd()
	case IntentSetText:
		return s.SetText(in.Text)
	case IntentNewTable:
		s.NewTable()
	default:
		return fmt.Errorf("%w: %d", ErrUnknownIntent, in.Kind)
	}
	return nil
}

// ParseIntent reads the script form of one or more intents:
//
//	add-row | add-col | del-row | del-col | click-out | toggle-mode | new
//	click-row:R | click-col:C
//	drag-start:C | drag-over:C | drop:C | drag-end
//	drag:FROM:TO        (drag-start, drag-over, drop, drag-end)
//	set:R:C:TEXT        (R is a body row index or "h" for the header)
//
// drag expands to several intents, so a slice is returned.
func ParseIntent(s string) ([]Intent, error) {
	name, args, _ := strings.Cut(strings.TrimSpace(s), ":")

	simple := map[string]IntentKind{
		"add-row":     IntentAddRow,
		"add-col":     IntentAddColumn,
		"del-row":     IntentDeleteRow,
		"del-col":     IntentDeleteColumn,
		"click-out":   IntentClickOutside,
		"toggle-mode": IntentToggleMode,
		"drag-end":    IntentDragEnd,
		"new":         IntentNewTable,
	}
	indexed := map[string]IntentKind{
		"click-row":  IntentClickCell,
		"click-col":  IntentClickHeader,
		"drag-start": IntentDragStart,
		"drag-over":  IntentDragOver,
		"drop":       IntentDrop,
	}

	if kind, ok := simple[name]; ok {
		if args != "" {
			return nil, fmt.Errorf("%s takes no arguments", name)
		}
		return []Intent{{Kind: kind}}, nil
	}

	if kind, ok := indexed[name]; ok {
		n, err := parseIndex(args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return []Intent{{Kind: kind, Index: n}}, nil
	}

	switch name {
	case "drag":
		from, to, ok := strings.Cut(args, ":")
		if !ok {
			return nil, fmt.Errorf("drag: expected FROM:TO, got %q", args)
		}
		src, err := parseIndex(from)
		if err != nil {
			return nil, fmt.Errorf("drag: %w", err)
		}
		dst, err := parseIndex(to)
		if err != nil {
			return nil, fmt.Errorf("drag: %w", err)
		}
		return []Intent{
			{Kind: IntentDragStart, Index: src},
			{Kind: IntentDragOver, Index: dst},
			{Kind: IntentDrop, Index: dst},
			{Kind: IntentDragEnd},
		}, nil

	case "set":
		parts := strings.SplitN(args, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("set: expected ROW:COL:TEXT, got %q", args)
		}
		row := table.HeaderRow
		if !strings.EqualFold(parts[0], "h") {
			r, err := parseIndex(parts[0])
			if err != nil {
				return nil, fmt.Errorf("set: row: %w", err)
			}
			row = r
		}
		col, err := parseIndex(parts[1])
		if err != nil {
			return nil, fmt.Errorf("set: column: %w", err)
		}
		return []Intent{{Kind: IntentEditCell, Loc: table.Loc{Row: row, Col: col}, Text: parts[2]}}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, name)
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative index %d", n)
	}
	return n, nil
}
