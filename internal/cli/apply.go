package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/roboco-io/mdgrid/internal/editor"
	"github.com/roboco-io/mdgrid/internal/logger"
	"github.com/spf13/cobra"
)

var (
	applyOps    []string
	applyScript string
	applyTable  int
	applyMode   string
	applyOutput string
	applyWrite  bool
)

var applyCmd = &cobra.Command{
	Use:   "apply [file]",
	Short: "Replay editor gestures against a table",
	Long: `Apply a script of editor gestures to one table of a Markdown file and
print the resulting document.

Operations run in order through the same session the grid editor uses, so
mode rules apply: cell edits are refused in drag mode and drags are
ignored in edit mode. Run "mdgrid ops" for the operation syntax.

Without a file the session starts from an empty table.

Examples:
  mdgrid apply notes.md --op drag:0:2 --mode drag
  mdgrid apply notes.md --op click-col:1 --op del-col -w
  mdgrid apply --op new --op "set:h:0:Name"
  mdgrid apply notes.md --script ops.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringArrayVar(&applyOps, "op", nil, "operation to apply (repeatable)")
	applyCmd.Flags().StringVar(&applyScript, "script", "", "file with one operation per line")
	applyCmd.Flags().IntVarP(&applyTable, "table", "t", 0, "index of the table to change (0-based)")
	applyCmd.Flags().StringVarP(&applyMode, "mode", "m", "edit", "start mode: edit or drag")
	applyCmd.Flags().StringVarP(&applyOutput, "output", "o", "", "output file (default: stdout)")
	applyCmd.Flags().BoolVarP(&applyWrite, "write", "w", false, "write the result back to the input file")

	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	inputPath := ""
	if len(args) == 1 {
		inputPath = args[0]
	}

	ops := append([]string(nil), applyOps...)
	if applyScript != "" {
		lines, err := readScript(applyScript)
		if err != nil {
			return err
		}
		ops = append(ops, lines...)
	}
	if len(ops) == 0 {
		return fmt.Errorf("no operations given (use --op or --script)")
	}

	mode, err := parseMode(applyMode)
	if err != nil {
		return err
	}

	doc, err := readDocument(inputPath, false)
	if err != nil {
		return err
	}
	slot, text, err := openSlot(doc, applyTable)
	if err != nil {
		return err
	}

	session := newSession(mode)
	if text != "" {
		if err := session.SetText(text); err != nil {
			return fmt.Errorf("table %d: %w", applyTable, err)
		}
	}

	if err := replay(session, ops); err != nil {
		return err
	}
	verbosef(cmd, "applied %d operations\n", len(ops))

	slot.put(session.Text())
	return writeResult(cmd, doc.String(), inputPath, applyOutput, applyWrite)
}

// replay parses and dispatches ops in order, stopping at the first error.
func replay(s *editor.Session, ops []string) error {
	for i, op := range ops {
		intents, err := editor.ParseIntent(op)
		if err != nil {
			return fmt.Errorf("operation %d %q: %w", i+1, op, err)
		}
		for _, in := range intents {
			if err := s.Dispatch(in); err != nil {
				return fmt.Errorf("operation %d %q: %w", i+1, op, err)
			}
		}
		logger.Debug("operation replayed", "op", op, "mode", s.Mode().String())
	}
	return nil
}

// readScript returns the non-blank lines of path, skipping # comments.
func readScript(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	var ops []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ops = append(ops, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ops, nil
}
