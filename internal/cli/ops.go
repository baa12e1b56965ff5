package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type opInfo struct {
	Syntax      string
	Mode        string
	Description string
}

var opList = []opInfo{
	{Syntax: "set:R:C:TEXT", Mode: "edit", Description: "set cell text; R is a body row or h for the header"},
	{Syntax: "add-row", Mode: "any", Description: "append an empty body row"},
	{Syntax: "add-col", Mode: "any", Description: `append a column titled "Header N"`},
	{Syntax: "del-row", Mode: "any", Description: "delete the selected row, else the last row"},
	{Syntax: "del-col", Mode: "any", Description: "delete the selected column, else the last column"},
	{Syntax: "click-row:R", Mode: "edit", Description: "select body row R"},
	{Syntax: "click-col:C", Mode: "edit", Description: "select column C"},
	{Syntax: "click-out", Mode: "edit", Description: "clear the selection"},
	{Syntax: "toggle-mode", Mode: "any", Description: "switch between edit and drag mode"},
	{Syntax: "drag:FROM:TO", Mode: "drag", Description: "swap columns FROM and TO"},
	{Syntax: "drag-start:C", Mode: "drag", Description: "pick up column C"},
	{Syntax: "drag-over:C", Mode: "drag", Description: "hover over column C"},
	{Syntax: "drop:C", Mode: "drag", Description: "swap the picked-up column with C"},
	{Syntax: "drag-end", Mode: "any", Description: "forget the picked-up column"},
	{Syntax: "new", Mode: "any", Description: "replace the table with the 3x3 sample"},
}

var opsCmd = &cobra.Command{
	Use:   "ops",
	Short: "List the operations accepted by apply",
	Long: `List the editor operations accepted by "mdgrid apply --op".

Rows and columns are 0-based. Operations marked edit or drag are ignored
or refused in the other mode; use toggle-mode or --mode to switch.

Examples:
  mdgrid apply notes.md --op "set:h:0:Name"
  mdgrid apply notes.md --mode drag --op drag:0:2`,
	Run: runOps,
}

func init() {
	rootCmd.AddCommand(opsCmd)
}

func runOps(cmd *cobra.Command, args []string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "OPERATION\tMODE\tDESCRIPTION")
	fmt.Fprintln(w, "---------\t----\t-----------")

	for _, op := range opList {
		fmt.Fprintf(w, "%s\t%s\t%s\n", op.Syntax, op.Mode, op.Description)
	}
}
