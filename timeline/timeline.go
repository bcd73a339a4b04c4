// Package timeline flattens a Score into absolute-tick note events.
//
// Each part becomes one Track. Durations in the part's current divisions
// are rescaled to a fixed tick resolution, the backup/forward cursor moves
// are resolved, and tie chains are merged into single sounding notes.
package timeline

import (
	"sort"
	"strconv"
	"strings"

	"github.com/jsphweid/partwise/constants"
	"github.com/jsphweid/partwise/model"
)

// Options configures flattening.
type Options struct {
	TicksPerQuarter int
	DefaultTempo    float64
	DefaultVelocity uint8
	// GraceTicks is the sounding length of a grace note; 0 emits grace
	// notes as zero-length events.
	GraceTicks int
}

// DefaultOptions reads the configured resolution, tempo and velocity.
func DefaultOptions() Options {
	tpq := constants.GetTicksPerQuarter()
	return Options{
		TicksPerQuarter: tpq,
		DefaultTempo:    constants.GetDefaultTempo(),
		DefaultVelocity: constants.GetDefaultVelocity(),
		GraceTicks:      tpq / 16,
	}
}

func (o Options) withDefaults() Options {
	if o.TicksPerQuarter <= 0 {
		o.TicksPerQuarter = constants.DefaultTicksPerQuarter
	}
	if o.DefaultTempo <= 0 {
		o.DefaultTempo = constants.DefaultTempo
	}
	if o.DefaultVelocity == 0 || o.DefaultVelocity > 127 {
		o.DefaultVelocity = constants.DefaultVelocity
	}
	if o.GraceTicks < 0 {
		o.GraceTicks = 0
	}
	return o
}

type Kind int

const (
	NoteOn Kind = iota
	NoteOff
	ProgramChange
	Lyric
)

func (k Kind) String() string {
	switch k {
	case NoteOn:
		return "note-on"
	case NoteOff:
		return "note-off"
	case ProgramChange:
		return "program-change"
	case Lyric:
		return "lyric"
	}
	return "unknown"
}

type Event struct {
	Tick     int64
	Kind     Kind
	Key      uint8
	Velocity uint8
	Program  uint8
	Text     string

	// ordering among events on the same tick
	priority int
}

const (
	priorityProgram = iota
	priorityOff
	priorityLyric
	priorityOn
	// the off of a zero-length note follows its on
	priorityLateOff
)

type TempoChange struct {
	Tick int64
	BPM  float64
}

type MeterChange struct {
	Tick  int64
	Num   uint8
	Denom uint8
}

type Track struct {
	PartID  string
	Name    string
	Channel uint8
	Events  []Event
}

type Timeline struct {
	Title           string
	TicksPerQuarter int
	Tempos          []TempoChange
	Meters          []MeterChange
	Tracks          []Track
}

// Flatten converts every part of the score into a track. It never fails;
// notes it cannot sound (rests, unmapped unpitched notes, keys outside the
// MIDI range) are skipped.
func Flatten(s *model.Score, opts Options) *Timeline {
	opts = opts.withDefaults()
	tl := &Timeline{Title: title(s), TicksPerQuarter: opts.TicksPerQuarter}

	var tempos []TempoChange
	for i, p := range s.Parts {
		f := newPartFlattener(opts, s.ScorePartByID(p.ID), channelFor(s.ScorePartByID(p.ID), i))
		f.track.PartID = p.ID
		f.flatten(p)
		sortEvents(f.track.Events)
		tl.Tracks = append(tl.Tracks, f.track)
		tempos = append(tempos, f.tempos...)
		if i == 0 {
			tl.Meters = f.meters
		}
	}
	tl.Tempos = normalizeTempos(tempos, opts.DefaultTempo)
	return tl
}

func title(s *model.Score) string {
	if s.Work != nil && s.Work.Title != "" {
		return s.Work.Title
	}
	return s.MovementTitle
}

// channelFor returns the 0-based channel of a part: the declared
// midi-channel, otherwise the part index with the percussion channel
// skipped.
func channelFor(sp *model.ScorePart, index int) uint8 {
	if sp != nil {
		for _, mi := range sp.MidiInstruments {
			if mi.Channel >= 1 && mi.Channel <= 16 {
				return uint8(mi.Channel - 1)
			}
		}
	}
	ch := index
	if ch >= constants.PercussionChannel {
		ch++
	}
	return uint8(ch % 16)
}

func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Tick != events[j].Tick {
			return events[i].Tick < events[j].Tick
		}
		return events[i].priority < events[j].priority
	})
}

// normalizeTempos orders the changes, keeps the last one declared on each
// tick, drops repeats and makes sure tick 0 has a tempo.
func normalizeTempos(changes []TempoChange, def float64) []TempoChange {
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Tick < changes[j].Tick
	})
	var res []TempoChange
	for _, c := range changes {
		if n := len(res); n > 0 && res[n-1].Tick == c.Tick {
			res[n-1] = c
			continue
		}
		res = append(res, c)
	}
	if len(res) == 0 || res[0].Tick > 0 {
		res = append([]TempoChange{{Tick: 0, BPM: def}}, res...)
	}
	dedup := res[:1]
	for _, c := range res[1:] {
		if c.BPM != dedup[len(dedup)-1].BPM {
			dedup = append(dedup, c)
		}
	}
	return dedup
}

// meterOf reads the first signature of a time element. Compound beats such
// as "3+2" are summed.
func meterOf(t model.Time) (uint8, uint8, bool) {
	if len(t.Signatures) == 0 {
		return 0, 0, false
	}
	sig := t.Signatures[0]
	num := 0
	for _, part := range strings.Split(sig.Beats, "+") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || v <= 0 {
			return 0, 0, false
		}
		num += v
	}
	denom, err := strconv.Atoi(strings.TrimSpace(sig.BeatType))
	if err != nil || denom <= 0 || num > 255 || denom > 128 || denom&(denom-1) != 0 {
		return 0, 0, false
	}
	return uint8(num), uint8(denom), true
}

// Notes pairs the note-on and note-off events of a track, in onset order.
func (t Track) Notes() []Sounding {
	var res []Sounding
	open := make(map[uint8][]int)
	for _, e := range t.Events {
		switch e.Kind {
		case NoteOn:
			open[e.Key] = append(open[e.Key], len(res))
			res = append(res, Sounding{Key: e.Key, Velocity: e.Velocity, On: e.Tick, Off: -1})
		case NoteOff:
			if idx := open[e.Key]; len(idx) > 0 {
				res[idx[0]].Off = e.Tick
				open[e.Key] = idx[1:]
			}
		}
	}
	return res
}

// Sounding is one note from on to off.
type Sounding struct {
	Key      uint8
	Velocity uint8
	On       int64
	Off      int64
}

// End returns the tick of the last event across all tracks.
func (tl *Timeline) End() int64 {
	var end int64
	for _, t := range tl.Tracks {
		if n := len(t.Events); n > 0 && t.Events[n-1].Tick > end {
			end = t.Events[n-1].Tick
		}
	}
	return end
}
