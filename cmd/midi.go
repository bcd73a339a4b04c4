package cmd

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jsphweid/partwise/constants"
	"github.com/jsphweid/partwise/file"
	"github.com/jsphweid/partwise/logging"
	"github.com/jsphweid/partwise/midi"
	"github.com/jsphweid/partwise/timeline"
)

var (
	tpq          int
	tempo        float64
	velocity     uint8
	graceTicks   int
	lyricCharset string
)

func init() {
	midiCmd.Flags().IntVar(&tpq, "tpq", constants.GetTicksPerQuarter(), "ticks per quarter note")
	midiCmd.Flags().Float64Var(&tempo, "tempo", constants.GetDefaultTempo(), "tempo in BPM until the score sets one")
	midiCmd.Flags().Uint8Var(&velocity, "velocity", constants.GetDefaultVelocity(), "note velocity until the score sets dynamics")
	midiCmd.Flags().IntVar(&graceTicks, "grace-ticks", -1, "length of grace notes in ticks (default tpq/16)")
	midiCmd.Flags().StringVar(&lyricCharset, "lyric-charset", "", "encoding of lyric events, e.g. Shift_JIS")
	rootCmd.AddCommand(midiCmd)
}

var midiCmd = &cobra.Command{
	Use:   "midi IN [OUT]",
	Short: "Exports a score as a MIDI file",
	Long: `Exports a score as a format 1 Standard MIDI File. OUT defaults to IN
with a .mid extension.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := midiPath(args[0])
		if len(args) == 2 {
			out = args[1]
		}
		return exportMIDI(args[0], out)
	},
}

func midiPath(in string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + ".mid"
}

func timelineOptions() timeline.Options {
	opts := timeline.Options{
		TicksPerQuarter: tpq,
		DefaultTempo:    tempo,
		DefaultVelocity: velocity,
		GraceTicks:      graceTicks,
	}
	if graceTicks < 0 {
		opts.GraceTicks = tpq / 16
	}
	return opts
}

func exportMIDI(in, out string) error {
	s, err := file.ReadScore(in, parseOptions())
	if err != nil {
		return err
	}
	opts := timelineOptions()
	if err := file.WriteMIDI(out, s, opts, midi.EncodeOptions{LyricCharset: lyricCharset}); err != nil {
		return err
	}
	logging.Conversion("midi", in, out, "tpq", opts.TicksPerQuarter, "parts", len(s.Parts))
	return nil
}
