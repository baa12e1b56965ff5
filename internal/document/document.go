// Package document splits a Markdown file into prose and table blocks so a
// single table can be edited and spliced back without touching the rest.
package document

import "strings"

// BlockType represents the type of content block.
type BlockType string

const (
	BlockTypeText  BlockType = "text"
	BlockTypeTable BlockType = "table"
)

// Block is a run of consecutive lines of one type.
type Block struct {
	Type  BlockType `json:"type"`
	Lines []string  `json:"lines"`
	Start int       `json:"start"` // 0-based line number in the source
}

// Text returns the block's lines joined with newlines.
func (b Block) Text() string {
	return strings.Join(b.Lines, "\n")
}

// Document is a Markdown file viewed as a sequence of blocks.
type Document struct {
	Blocks []Block `json:"blocks"`

	trailingNewline bool
}

// New creates an empty document.
func New() *Document {
	return &Document{Blocks: make([]Block, 0)}
}

// Split scans text into blocks. A table block is a maximal run of lines that
// contain a pipe outside fenced code; everything else is kept verbatim as
// text blocks. An unclosed fence runs to the end of the document.
func Split(text string) *Document {
	d := New()
	if text == "" {
		return d
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		d.trailingNewline = true
		lines = lines[:len(lines)-1]
	}

	fence := ""
	for i, line := range lines {
		typ := BlockTypeText
		switch marker := fenceMarker(line); {
		case fence != "":
			if closesFence(line, marker, fence) {
				fence = ""
			}
		case marker != "":
			fence = marker
		case strings.Contains(line, "|"):
			typ = BlockTypeTable
		}
		if n := len(d.Blocks); n > 0 && d.Blocks[n-1].Type == typ {
			d.Blocks[n-1].Lines = append(d.Blocks[n-1].Lines, line)
			continue
		}
		d.Blocks = append(d.Blocks, Block{Type: typ, Lines: []string{line}, Start: i})
	}
	return d
}

// fenceMarker returns the run of three or more backticks or tildes that
// starts a code fence line, or "" if line is not a fence.
func fenceMarker(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || trimmed == "" {
		return ""
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return ""
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return ""
	}
	return trimmed[:n]
}

// closesFence reports whether a line with the given marker ends the fence
// opened by open: same character, at least as long, nothing after it.
func closesFence(line, marker, open string) bool {
	if marker == "" || marker[0] != open[0] || len(marker) < len(open) {
		return false
	}
	rest := strings.TrimLeft(line, " ")[len(marker):]
	return strings.TrimSpace(rest) == ""
}

// String reassembles the document.
func (d *Document) String() string {
	var parts []string
	for _, b := range d.Blocks {
		parts = append(parts, b.Lines...)
	}
	s := strings.Join(parts, "\n")
	if d.trailingNewline && len(parts) > 0 {
		s += "\n"
	}
	return s
}

// Tables returns the indices into Blocks of all table blocks.
func (d *Document) Tables() []int {
	var idx []int
	for i, b := range d.Blocks {
		if b.Type == BlockTypeTable {
			idx = append(idx, i)
		}
	}
	return idx
}

// Table returns the text of the n-th table block (0-based).
func (d *Document) Table(n int) (string, bool) {
	tables := d.Tables()
	if n < 0 || n >= len(tables) {
		return "", false
	}
	return d.Blocks[tables[n]].Text(), true
}

// ReplaceTable substitutes the n-th table block with markdown. An empty
// markdown string removes the block. Returns false if n is out of range.
func (d *Document) ReplaceTable(n int, markdown string) bool {
	tables := d.Tables()
	if n < 0 || n >= len(tables) {
		return false
	}
	i := tables[n]

	markdown = strings.TrimRight(markdown, "\n")
	if markdown == "" {
		d.Blocks = append(d.Blocks[:i], d.Blocks[i+1:]...)
		return true
	}
	d.Blocks[i].Lines = strings.Split(markdown, "\n")
	return true
}

// AppendTable adds a table block at the end of the document, separated from
// preceding text by a blank line.
func (d *Document) AppendTable(markdown string) {
	markdown = strings.TrimRight(markdown, "\n")
	if markdown == "" {
		return
	}
	if n := len(d.Blocks); n > 0 {
		last := d.Blocks[n-1]
		if last.Type == BlockTypeTable || last.Lines[len(last.Lines)-1] != "" {
			d.Blocks = append(d.Blocks, Block{Type: BlockTypeText, Lines: []string{""}})
		}
	}
	d.Blocks = append(d.Blocks, Block{Type: BlockTypeTable, Lines: strings.Split(markdown, "\n")})
	d.trailingNewline = true
}
