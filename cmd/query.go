package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jsphweid/partwise/file"
	"github.com/jsphweid/partwise/tree"
)

func init() {
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query IN XPATH",
	Short: "Runs an XPath expression over a score",
	Long: `Evaluates XPATH against the score document exactly as stored and
prints the text of every match, one per line.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return query(cmd.OutOrStdout(), args[0], args[1])
	},
}

func query(w io.Writer, path, expr string) error {
	data, err := file.ReadDocument(path)
	if err != nil {
		return err
	}
	matches, err := tree.Query(data, expr)
	if err != nil {
		return err
	}
	for _, m := range matches {
		fmt.Fprintln(w, m)
	}
	return nil
}
