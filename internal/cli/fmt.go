package cli

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/roboco-io/mdgrid/internal/document"
	"github.com/roboco-io/mdgrid/internal/logger"
	"github.com/roboco-io/mdgrid/internal/table"
	"github.com/spf13/cobra"
)

var (
	fmtOutput string
	fmtWrite  bool
	fmtCopy   bool
	fmtTable  int
)

// allTables selects every table in the document.
const allTables = -1

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Normalize the tables in a Markdown file",
	Long: `Rewrite every table in a Markdown file in canonical form.

Each table is parsed, every body row is padded or truncated to the
header's column count, and the table is written back with a "| --- |"
separator. Text outside tables is left untouched. Blocks that contain
pipes but do not parse as a table are skipped.

Examples:
  mdgrid fmt notes.md
  mdgrid fmt notes.md -w
  mdgrid fmt notes.md --table 0 --copy`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().StringVarP(&fmtOutput, "output", "o", "", "output file (default: stdout)")
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write the result back to the input file")
	fmtCmd.Flags().BoolVar(&fmtCopy, "copy", false, "also copy the result to the clipboard")
	fmtCmd.Flags().IntVarP(&fmtTable, "table", "t", allTables, "format only this table (0-based, default: all)")

	rootCmd.AddCommand(fmtCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	doc, err := readDocument(inputPath, false)
	if err != nil {
		return err
	}

	count := len(doc.Tables())
	if fmtTable != allTables && (fmtTable < 0 || fmtTable >= count) {
		return fmt.Errorf("table %d not found (document has %d tables)", fmtTable, count)
	}

	formatted := formatTables(doc, fmtTable)
	verbosef(cmd, "formatted %d of %d tables\n", formatted, count)

	out := doc.String()
	if fmtCopy {
		if err := clipboard.WriteAll(out); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		verbosef(cmd, "copied to clipboard\n")
	}
	return writeResult(cmd, out, inputPath, fmtOutput, fmtWrite)
}

// formatTables rewrites table only, or every table when only is negative,
// and returns how many were rewritten.
func formatTables(doc *document.Document, only int) int {
	formatted := 0
	for n := range doc.Tables() {
		if only >= 0 && n != only {
			continue
		}
		text, _ := doc.Table(n)
		t, err := table.Parse(text)
		if err != nil {
			logger.Debug("skipping block", "table", n, "error", err)
			continue
		}
		t.Normalize()
		doc.ReplaceTable(n, table.Serialize(t))
		formatted++
	}
	return formatted
}
