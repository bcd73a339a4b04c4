package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jsphweid/partwise/file"
	"github.com/jsphweid/partwise/logging"
	"github.com/jsphweid/partwise/model"
)

func init() {
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Converts a score",
	Long: `Reads a MusicXML or MXL score and writes it to OUT. The output format
follows OUT's extension: .musicxml/.xml, .mxl or .mid.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return convert(args[0], args[1])
	},
}

func convert(in, out string) error {
	s, err := file.ReadScore(in, parseOptions())
	if err != nil {
		return err
	}
	if err := file.WriteScore(out, s); err != nil {
		return err
	}
	logging.Conversion(file.FormatOf(out).String(), in, out,
		"parts", len(s.Parts),
		"notes", model.CountNotes(s),
	)
	return nil
}
