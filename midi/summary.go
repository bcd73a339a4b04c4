package midi

import (
	"gitlab.com/gomidi/midi/v2/smf"
)

// Note is a note-on paired with its note-off, in absolute ticks.
type Note struct {
	Channel  uint8
	Key      uint8
	Velocity uint8
	On       int64
	Off      int64
}

type Tempo struct {
	Tick int64
	BPM  float64
}

type Meter struct {
	Tick  int64
	Num   uint8
	Denom uint8
}

type TrackSummary struct {
	Name     string
	Notes    []Note
	Programs []uint8
	Lyrics   []string
}

// Summary is what a file contains, with delta times resolved.
type Summary struct {
	TicksPerQuarter int
	Tempos          []Tempo
	Meters          []Meter
	Tracks          []TrackSummary
}

// NoteCount returns the number of notes across all tracks.
func (s *Summary) NoteCount() int {
	count := 0
	for _, t := range s.Tracks {
		count += len(t.Notes)
	}
	return count
}

// Summarize walks every track accumulating absolute ticks.
func Summarize(s *smf.SMF) *Summary {
	res := &Summary{}
	if tf, ok := s.TimeFormat.(smf.MetricTicks); ok {
		res.TicksPerQuarter = int(tf)
	}
	for _, events := range s.Tracks {
		var ts TrackSummary
		var absTicks int64
		open := make(map[[2]uint8][]int)
		for _, event := range events {
			absTicks += int64(event.Delta)
			msg := event.Message
			var channel, key, velocity, program, num, denom uint8
			var bpm float64
			var text string
			switch {
			case msg.GetNoteStart(&channel, &key, &velocity):
				k := [2]uint8{channel, key}
				open[k] = append(open[k], len(ts.Notes))
				ts.Notes = append(ts.Notes, Note{Channel: channel, Key: key, Velocity: velocity, On: absTicks, Off: -1})
			case msg.GetNoteEnd(&channel, &key):
				k := [2]uint8{channel, key}
				if idx := open[k]; len(idx) > 0 {
					ts.Notes[idx[0]].Off = absTicks
					open[k] = idx[1:]
				}
			case msg.GetProgramChange(&channel, &program):
				ts.Programs = append(ts.Programs, program)
			case msg.GetMetaTempo(&bpm):
				res.Tempos = append(res.Tempos, Tempo{Tick: absTicks, BPM: bpm})
			case msg.GetMetaMeter(&num, &denom):
				res.Meters = append(res.Meters, Meter{Tick: absTicks, Num: num, Denom: denom})
			case msg.GetMetaLyric(&text):
				ts.Lyrics = append(ts.Lyrics, text)
			case msg.GetMetaTrackName(&text):
				ts.Name = text
			}
		}
		res.Tracks = append(res.Tracks, ts)
	}
	return res
}
