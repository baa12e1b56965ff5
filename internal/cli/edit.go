package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/roboco-io/mdgrid/internal/logger"
	"github.com/roboco-io/mdgrid/internal/tui"
	"github.com/spf13/cobra"
)

var (
	editTable int
	editMode  string
	editNew   bool
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Open the grid editor",
	Long: `Open a Markdown table in the interactive grid editor.

The grid and the Markdown source pane stay in sync: edits in the grid
rewrite the source, and valid table text typed into the source pane
replaces the grid. Text that is not a table leaves the grid unchanged.

If the file does not exist or holds no table, the editor starts empty
and ctrl+s appends the table to the file.

Keys:
  arrows/hjkl  move           space  select (edit) / pick up, drop (drag)
  enter        edit cell      m      toggle edit/drag mode
  a / A        add row/column d / D  delete row/column
  n            new table      tab    switch grid/source pane
  y            copy Markdown  ctrl+s save
  ?            help           q      quit

Examples:
  mdgrid edit notes.md
  mdgrid edit notes.md --table 2 --mode drag
  mdgrid edit --new`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

// runProgram runs the TUI. Tests replace it to drive the model directly.
var runProgram = func(m tea.Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func init() {
	addEditFlags(editCmd)
	rootCmd.AddCommand(editCmd)
}

func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&editTable, "table", "t", 0, "index of the table to edit (0-based)")
	cmd.Flags().StringVarP(&editMode, "mode", "m", "", "start mode: edit or drag (default from config)")
	cmd.Flags().BoolVar(&editNew, "new", false, "start from the sample table")
}

func runEdit(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	mode, err := parseMode(editMode)
	if err != nil {
		return err
	}

	doc, err := readDocument(path, true)
	if err != nil {
		return err
	}
	slot, text, err := openSlot(doc, editTable)
	if err != nil {
		return err
	}

	session := newSession(mode)
	if editNew {
		session.NewTable()
	} else if text != "" {
		if err := session.SetText(text); err != nil {
			return fmt.Errorf("table %d: %w", editTable, err)
		}
	}

	var save func(string) error
	if path != "" {
		save = func(markdown string) error {
			slot.put(markdown)
			if err := os.WriteFile(path, []byte(doc.String()), 0644); err != nil {
				return err
			}
			logger.Info("table saved", "path", path, "table", slot.index)
			return nil
		}
	}

	model := tui.NewModel(session, tui.Options{
		Path:         path,
		MaxCellWidth: cfg.Editor.MaxCellWidth,
		ShowSource:   cfg.Editor.ShowSource,
		Save:         save,
	})

	logger.Info("editor opened", "path", path, "table", editTable, "mode", mode.String())
	if err := runProgram(model); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}
	return nil
}
