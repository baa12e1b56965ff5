package cli

import (
	"github.com/roboco-io/mdgrid/internal/table"
	"github.com/spf13/cobra"
)

var newOutput string

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Print the sample table",
	Long: `Print the 3x3 sample table used by the editor's "new table" action.

Examples:
  mdgrid new
  mdgrid new -o table.md`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeResult(cmd, table.Serialize(table.NewSample()), "", newOutput, false)
	},
}

func init() {
	newCmd.Flags().StringVarP(&newOutput, "output", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(newCmd)
}
