package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/roboco-io/mdgrid/internal/document"
	"github.com/roboco-io/mdgrid/internal/editor"
	"github.com/spf13/cobra"
)

// readDocument loads a Markdown file. A missing file is an empty document
// when allowMissing is set.
func readDocument(path string, allowMissing bool) (*document.Document, error) {
	if path == "" {
		return document.New(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if allowMissing && errors.Is(err, fs.ErrNotExist) {
			return document.New(), nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return document.Split(string(data)), nil
}

// tableSlot tracks where the edited table lives inside a document. A slot
// for a document without tables appends on first put.
type tableSlot struct {
	doc     *document.Document
	index   int
	present bool
}

// openSlot picks table n of doc. Asking for a table that does not exist is
// an error unless the document has no tables at all.
func openSlot(doc *document.Document, n int) (*tableSlot, string, error) {
	text, ok := doc.Table(n)
	if ok {
		return &tableSlot{doc: doc, index: n, present: true}, text, nil
	}
	if count := len(doc.Tables()); count > 0 || n != 0 {
		return nil, "", fmt.Errorf("table %d not found (document has %d tables)", n, count)
	}
	return &tableSlot{doc: doc}, "", nil
}

// put writes markdown into the slot. Empty markdown removes the table.
func (s *tableSlot) put(markdown string) {
	empty := strings.TrimSpace(markdown) == ""
	if s.present {
		s.doc.ReplaceTable(s.index, markdown)
		if empty {
			s.present = false
		}
		return
	}
	if empty {
		return
	}
	s.doc.AppendTable(markdown)
	s.index = len(s.doc.Tables()) - 1
	s.present = true
}

// newSession builds a session from the loaded configuration.
func newSession(mode editor.Mode) *editor.Session {
	return editor.NewSession(
		editor.WithMode(mode),
		editor.WithNormalize(cfg.Editor.NormalizeOnLoad),
	)
}

// parseMode resolves a --mode flag value, falling back to the configured
// start mode when the flag is empty.
func parseMode(flag string) (editor.Mode, error) {
	value := flag
	if value == "" {
		value = cfg.Editor.StartMode
	}
	switch strings.ToLower(value) {
	case "", "edit":
		return editor.EditMode, nil
	case "drag":
		return editor.DragMode, nil
	}
	return editor.EditMode, fmt.Errorf("invalid mode: %s (supported: edit, drag)", value)
}

// writeResult sends text to stdout, to outPath, or back to inputPath.
func writeResult(cmd *cobra.Command, text, inputPath, outPath string, inPlace bool) error {
	switch {
	case inPlace:
		if inputPath == "" {
			return errors.New("--write needs an input file")
		}
		outPath = inputPath
	case outPath == "":
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	}

	if err := os.WriteFile(outPath, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	verbosef(cmd, "wrote %s\n", outPath)
	return nil
}

