package timeline

import (
	"math"

	"github.com/jsphweid/partwise/constants"
	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/util"
)

// openNote is a sounding note whose tie chain has not stopped yet.
type openNote struct {
	voice int
	key   uint8
	end   int64
}

type partFlattener struct {
	opts  Options
	part  *model.ScorePart
	track Track

	attrs model.AttributeState
	// tick of the current measure's start
	start int64
	// positions within the measure, in the current divisions
	cursor   int
	onset    int
	furthest int

	velocity   uint8
	open       []*openNote
	lyricTicks map[int64]bool
	tempos     []TempoChange
	meters     []MeterChange
}

func newPartFlattener(opts Options, sp *model.ScorePart, channel uint8) *partFlattener {
	f := &partFlattener{
		opts:       opts,
		part:       sp,
		velocity:   opts.DefaultVelocity,
		lyricTicks: make(map[int64]bool),
	}
	f.track.Channel = channel
	if sp != nil {
		f.track.Name = sp.Name
		for _, mi := range sp.MidiInstruments {
			if mi.Program > 0 {
				f.programChange(0, mi.Program)
				break
			}
		}
	}
	return f
}

func (f *partFlattener) flatten(p *model.Part) {
	if f.track.Name == "" {
		f.track.Name = p.ID
	}
	for _, m := range p.Measures {
		f.measure(m)
	}
	// unterminated ties close where their last note ended
	for _, o := range f.open {
		f.noteOff(o.key, o.end, false)
	}
	f.open = nil
}

func (f *partFlattener) divisions() int {
	if f.attrs.Divisions > 0 {
		return f.attrs.Divisions
	}
	return 1
}

// tick converts a measure position into an absolute tick.
func (f *partFlattener) tick(pos int) int64 {
	return f.start + util.MulDivRound(int64(pos), int64(f.opts.TicksPerQuarter), int64(f.divisions()))
}

func (f *partFlattener) reach(pos int) {
	f.furthest = util.Max(f.furthest, pos)
}

func (f *partFlattener) measure(m *model.Measure) {
	f.cursor, f.onset, f.furthest = 0, 0, 0
	f.applyAttributes(m.Attributes)
	for _, e := range m.Entries {
		switch v := e.(type) {
		case *model.Attributes:
			f.applyAttributes(v)
		case *model.Note:
			f.note(v)
		case *model.Backup:
			f.cursor = util.Max(0, f.cursor-v.Duration)
		case *model.Forward:
			f.cursor += v.Duration
			f.reach(f.cursor)
		case *model.Direction:
			if v.Sound != nil {
				pos := f.cursor
				if v.Offset != nil && v.Offset.Sound == "yes" {
					pos = util.Max(0, pos+v.Offset.Value)
				}
				f.sound(v.Sound, pos)
			}
		case *model.Sound:
			f.sound(v, f.cursor)
		}
	}
	if f.furthest == 0 {
		f.furthest = f.nominalLength()
	}
	f.start = f.tick(f.furthest)
}

// nominalLength is the length of an empty measure from the current time
// signature, in divisions.
func (f *partFlattener) nominalLength() int {
	if len(f.attrs.Times) == 0 {
		return 0
	}
	num, denom, ok := meterOf(f.attrs.Times[0])
	if !ok {
		return 0
	}
	return int(util.MulDivRound(int64(num)*4, int64(f.divisions()), int64(denom)))
}

func (f *partFlattener) applyAttributes(a *model.Attributes) {
	if a == nil {
		return
	}
	old := f.divisions()
	f.attrs.Apply(a)
	if d := f.divisions(); d != old {
		rebase := func(pos int) int {
			return int(util.MulDivRound(int64(pos), int64(d), int64(old)))
		}
		f.cursor, f.onset, f.furthest = rebase(f.cursor), rebase(f.onset), rebase(f.furthest)
	}
	if len(a.Times) > 0 {
		if num, denom, ok := meterOf(a.Times[0]); ok {
			f.meter(f.tick(f.cursor), num, denom)
		}
	}
}

func (f *partFlattener) meter(tick int64, num, denom uint8) {
	if n := len(f.meters); n > 0 {
		last := f.meters[n-1]
		if last.Num == num && last.Denom == denom {
			return
		}
		if last.Tick == tick {
			f.meters[n-1] = MeterChange{Tick: tick, Num: num, Denom: denom}
			return
		}
	}
	f.meters = append(f.meters, MeterChange{Tick: tick, Num: num, Denom: denom})
}

func (f *partFlattener) sound(s *model.Sound, pos int) {
	tick := f.tick(pos)
	if s.Tempo != nil && *s.Tempo > 0 {
		f.tempos = append(f.tempos, TempoChange{Tick: tick, BPM: *s.Tempo})
	}
	if s.Dynamics != nil {
		f.velocity = velocityFor(*s.Dynamics)
	}
	for _, mi := range s.MidiInstruments {
		if mi.Program > 0 {
			f.programChange(tick, mi.Program)
		}
	}
}

// velocityFor scales a dynamics percentage so that 100 is forte.
func velocityFor(dynamics float64) uint8 {
	v := int(math.Round(dynamics * constants.ForteVelocity / 100))
	return uint8(util.Clamp(v, 1, 127))
}

func (f *partFlattener) programChange(tick int64, program int) {
	if program < 1 || program > 128 {
		return
	}
	f.track.Events = append(f.track.Events, Event{
		Tick:     tick,
		Kind:     ProgramChange,
		Program:  uint8(program - 1),
		priority: priorityProgram,
	})
}

func (f *partFlattener) note(n *model.Note) {
	pos := f.cursor
	if n.Chord {
		pos = f.onset
	} else {
		f.onset = pos
	}

	var start, end int64
	if n.IsGrace() {
		start = f.tick(pos)
		end = start + int64(f.opts.GraceTicks)
	} else {
		d := n.EffectiveDuration(f.divisions())
		if !n.Chord {
			f.cursor += d
		}
		f.reach(pos + d)
		start, end = f.tick(pos), f.tick(pos+d)
	}

	key, ok := f.key(n)
	if !ok {
		return
	}

	if n.HasTie("stop") {
		if o, idx := f.findOpen(n.Voice, key); o != nil {
			o.end = end
			if !n.HasTie("start") {
				f.noteOff(o.key, o.end, false)
				f.open = append(f.open[:idx], f.open[idx+1:]...)
			}
			return
		}
	}

	f.track.Events = append(f.track.Events, Event{
		Tick:     start,
		Kind:     NoteOn,
		Key:      key,
		Velocity: f.velocity,
		priority: priorityOn,
	})
	f.lyric(n, start)
	if n.HasTie("start") {
		f.open = append(f.open, &openNote{voice: n.Voice, key: key, end: end})
		return
	}
	f.noteOff(key, end, end == start)
}

func (f *partFlattener) noteOff(key uint8, tick int64, zeroLength bool) {
	p := priorityOff
	if zeroLength {
		p = priorityLateOff
	}
	f.track.Events = append(f.track.Events, Event{Tick: tick, Kind: NoteOff, Key: key, priority: p})
}

// findOpen returns the open tie for voice and key, falling back to any
// voice holding the same key.
func (f *partFlattener) findOpen(voice int, key uint8) (*openNote, int) {
	for i, o := range f.open {
		if o.voice == voice && o.key == key {
			return o, i
		}
	}
	for i, o := range f.open {
		if o.key == key {
			return o, i
		}
	}
	return nil, -1
}

func (f *partFlattener) lyric(n *model.Note, tick int64) {
	if len(n.Lyrics) == 0 || n.Lyrics[0].Text == "" || f.lyricTicks[tick] {
		return
	}
	f.lyricTicks[tick] = true
	f.track.Events = append(f.track.Events, Event{
		Tick:     tick,
		Kind:     Lyric,
		Text:     n.Lyrics[0].Text,
		priority: priorityLyric,
	})
}

// key returns the sounding MIDI key of a note.
func (f *partFlattener) key(n *model.Note) (uint8, bool) {
	var k int
	switch {
	case n.Pitch != nil:
		k = n.Pitch.MIDI()
		if t, ok := f.attrs.TransposeFor(n.Staff); ok {
			k += t.Semitones()
		}
	case n.Unpitched != nil:
		u := f.unpitchedKey(n.Instrument)
		if u == 0 {
			return 0, false
		}
		k = u - 1
	default:
		return 0, false
	}
	if k < 0 || k > 127 {
		return 0, false
	}
	return uint8(k), true
}

func (f *partFlattener) unpitchedKey(instrument string) int {
	if f.part == nil {
		return 0
	}
	for _, mi := range f.part.MidiInstruments {
		if (instrument == "" || mi.ID == instrument) && mi.UnpitchedNote > 0 {
			return mi.UnpitchedNote
		}
	}
	return 0
}
