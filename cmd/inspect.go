package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jsphweid/partwise/chord"
	"github.com/jsphweid/partwise/file"
	"github.com/jsphweid/partwise/midi"
	"github.com/jsphweid/partwise/model"
)

var maxChords int

func init() {
	inspectCmd.Flags().IntVar(&maxChords, "chords", 16, "number of chords to list for MIDI input")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect IN",
	Short: "Inspects a score or MIDI file",
	Long: `Prints the parts, measures and note counts of a score, or the tracks,
tempos and opening chords of a MIDI file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.OutOrStdout(), args[0])
	},
}

func inspect(w io.Writer, path string) error {
	if file.FormatOf(path) == file.MIDI {
		return inspectMIDI(w, path)
	}
	s, err := file.ReadScore(path, parseOptions())
	if err != nil {
		return err
	}
	printScore(w, s)
	return nil
}

func printScore(w io.Writer, s *model.Score) {
	if s.Work != nil && s.Work.Title != "" {
		fmt.Fprintf(w, "title: %v\n", s.Work.Title)
	} else if s.MovementTitle != "" {
		fmt.Fprintf(w, "title: %v\n", s.MovementTitle)
	}
	fmt.Fprintf(w, "version: %v\n", s.Version)
	for _, p := range s.Parts {
		name := ""
		if sp := s.ScorePartByID(p.ID); sp != nil {
			name = sp.Name
		}
		notes := 0
		for _, n := range model.Notes(p) {
			if !n.IsRest() {
				notes++
			}
		}
		fmt.Fprintf(w, "part %v %q: %v measures, %v notes\n", p.ID, name, len(p.Measures), notes)
	}
	fmt.Fprintf(w, "total notes: %v\n", model.CountNotes(s))
}

func inspectMIDI(w io.Writer, path string) error {
	sm, err := midi.ReadFile(path)
	if err != nil {
		return err
	}
	summary := midi.Summarize(sm)
	fmt.Fprintf(w, "ticks per quarter: %v\n", summary.TicksPerQuarter)
	for _, t := range summary.Tempos {
		fmt.Fprintf(w, "tempo at %v: %.2f\n", t.Tick, t.BPM)
	}
	for _, m := range summary.Meters {
		fmt.Fprintf(w, "meter at %v: %v/%v\n", m.Tick, m.Num, m.Denom)
	}
	for i, t := range summary.Tracks {
		fmt.Fprintf(w, "track %v %q: %v notes, programs %v\n", i, t.Name, len(t.Notes), t.Programs)
	}

	chords := chord.GetChords(sm)
	fmt.Fprintf(w, "chords: %v\n", len(chords))
	for i, c := range chords {
		if i >= maxChords {
			break
		}
		fmt.Fprintf(w, "  %v: %v\n", c.Tick, c.Key())
	}
	return nil
}
