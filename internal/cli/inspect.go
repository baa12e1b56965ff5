package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/roboco-io/mdgrid/internal/document"
	"github.com/roboco-io/mdgrid/internal/table"
	"github.com/spf13/cobra"
)

var (
	inspectOutput string
	inspectFormat string
	inspectPretty bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Report the tables found in a Markdown file",
	Long: `Parse a Markdown file and report every table block: its position,
header, body rows and any rows whose cell count differs from the header.

Output is JSON by default or a text summary with --format text.

Examples:
  mdgrid inspect notes.md
  mdgrid inspect notes.md --format text
  mdgrid inspect notes.md -o tables.json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "output file (default: stdout)")
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "json", "output format (json, text)")
	inspectCmd.Flags().BoolVar(&inspectPretty, "pretty", true, "indent JSON output")

	rootCmd.AddCommand(inspectCmd)
}

// tableReport describes one table block.
type tableReport struct {
	Index   int        `json:"index"`
	Line    int        `json:"line"` // 1-based
	Columns int        `json:"columns"`
	Rows    int        `json:"rows"`
	Header  []string   `json:"header,omitempty"`
	Body    [][]string `json:"body,omitempty"`
	Ragged  []int      `json:"ragged,omitempty"`
	Error   string     `json:"error,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	doc, err := readDocument(inputPath, false)
	if err != nil {
		return err
	}

	reports := inspectTables(doc)
	verbosef(cmd, "found %d table blocks\n", len(reports))

	output, err := formatReports(reports, inspectFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return writeResult(cmd, output, inputPath, inspectOutput, false)
}

func inspectTables(doc *document.Document) []tableReport {
	reports := make([]tableReport, 0)
	for n, bi := range doc.Tables() {
		r := tableReport{Index: n, Line: doc.Blocks[bi].Start + 1}
		t, err := table.Parse(doc.Blocks[bi].Text())
		if err != nil {
			r.Error = err.Error()
			reports = append(reports, r)
			continue
		}
		r.Columns = t.NumCols()
		r.Rows = t.NumRows()
		r.Header = t.Header
		r.Body = t.Rows
		r.Ragged = t.Ragged()
		reports = append(reports, r)
	}
	return reports
}

func formatReports(reports []tableReport, format string) (string, error) {
	switch format {
	case "json":
		var data []byte
		var err error
		if inspectPretty {
			data, err = json.MarshalIndent(reports, "", "  ")
		} else {
			data, err = json.Marshal(reports)
		}
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case "text":
		return formatReportsAsText(reports), nil

	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

func formatReportsAsText(reports []tableReport) string {
	if len(reports) == 0 {
		return "no tables found\n"
	}

	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tLINE\tCOLUMNS\tROWS\tHEADER\tNOTES")
	for _, r := range reports {
		if r.Error != "" {
			fmt.Fprintf(w, "%d\t%d\t-\t-\t-\t%s\n", r.Index, r.Line, r.Error)
			continue
		}
		notes := ""
		if len(r.Ragged) > 0 {
			notes = fmt.Sprintf("ragged rows: %s", joinInts(r.Ragged))
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%s\t%s\n",
			r.Index, r.Line, r.Columns, r.Rows, strings.Join(r.Header, " | "), notes)
	}
	w.Flush()
	return sb.String()
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}
