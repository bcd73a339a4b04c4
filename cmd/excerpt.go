package cmd

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/partwise/errors"
	"github.com/jsphweid/partwise/file"
	"github.com/jsphweid/partwise/logging"
	"github.com/jsphweid/partwise/midi"
	"github.com/jsphweid/partwise/sample"
)

var (
	fromTick uint64
	numNotes int
)

func init() {
	excerptCmd.Flags().Uint64Var(&fromTick, "from", 0, "tick to start the excerpt at")
	excerptCmd.Flags().IntVar(&numNotes, "notes", 10, "maximum notes per track")
	rootCmd.AddCommand(excerptCmd)
}

var excerptCmd = &cobra.Command{
	Use:   "excerpt IN OUT",
	Short: "Cuts a short MIDI excerpt",
	Long: `Writes the first notes of each track from a tick onwards to OUT as a MIDI
file. IN may be a MIDI file or a score, which is exported first using the
default timeline options.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return excerpt(args[0], args[1])
	},
}

func readMIDI(path string) (*smf.SMF, error) {
	if file.FormatOf(path) == file.MIDI {
		return midi.ReadFile(path)
	}
	s, err := file.ReadScore(path, parseOptions())
	if err != nil {
		return nil, err
	}
	data, err := midi.Export(s, timelineOptions(), midi.EncodeOptions{LyricCharset: lyricCharset})
	if err != nil {
		return nil, err
	}
	return midi.Read(data)
}

func excerpt(in, out string) error {
	sm, err := readMIDI(in)
	if err != nil {
		return err
	}
	cut, err := sample.Create(sm, fromTick, numNotes)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := cut.WriteTo(&buf); err != nil {
		return errors.Wrap(err, "encoding excerpt")
	}
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", out)
	}
	logging.Conversion("excerpt", in, out, "from", fromTick, "notes", numNotes)
	return nil
}
