package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/parse"
	"github.com/jsphweid/partwise/serialize"
)

var opts = Options{TicksPerQuarter: 480, DefaultTempo: 120, DefaultVelocity: 80, GraceTicks: 30}

type noteOpt func(*model.Note)

func tie(types ...string) noteOpt {
	return func(n *model.Note) {
		for _, t := range types {
			n.Ties = append(n.Ties, model.Tie{Type: t})
		}
	}
}

func chord(n *model.Note) { n.Chord = true }

func voice(v int) noteOpt {
	return func(n *model.Note) { n.Voice = v }
}

func staff(s int) noteOpt {
	return func(n *model.Note) { n.Staff = s }
}

func note(step string, octave, duration int, options ...noteOpt) *model.Note {
	n := &model.Note{Pitch: &model.Pitch{Step: step, Octave: octave}, Duration: duration, Voice: 1}
	for _, o := range options {
		o(n)
	}
	return n
}

func rest(duration int) *model.Note {
	return &model.Note{Rest: &model.Rest{}, Duration: duration, Voice: 1}
}

func measure(attrs *model.Attributes, entries ...model.Entry) *model.Measure {
	return &model.Measure{Attributes: attrs, Entries: entries}
}

func fourFour(divisions int) *model.Attributes {
	return &model.Attributes{
		Divisions: divisions,
		Times:     []model.Time{{Signatures: []model.TimeSignature{{Beats: "4", BeatType: "4"}}}},
	}
}

func single(measures ...*model.Measure) *model.Score {
	return &model.Score{
		PartList: []model.PartListItem{&model.ScorePart{ID: "P1", Name: "Voice"}},
		Parts:    []*model.Part{{ID: "P1", Measures: measures}},
	}
}

func TestQuarterNotes(t *testing.T) {
	tl := Flatten(single(measure(fourFour(1),
		note("C", 4, 1), note("C", 4, 1), note("G", 4, 1), note("G", 4, 1),
	)), opts)

	require.Len(t, tl.Tracks, 1)
	notes := tl.Tracks[0].Notes()
	assert.Equal(t, []Sounding{
		{Key: 60, Velocity: 80, On: 0, Off: 480},
		{Key: 60, Velocity: 80, On: 480, Off: 960},
		{Key: 67, Velocity: 80, On: 960, Off: 1440},
		{Key: 67, Velocity: 80, On: 1440, Off: 1920},
	}, notes)

	// the repeated C releases before it sounds again
	events := tl.Tracks[0].Events
	assert.Equal(t, NoteOff, events[1].Kind)
	assert.Equal(t, int64(480), events[1].Tick)
	assert.Equal(t, NoteOn, events[2].Kind)

	assert.Equal(t, "Voice", tl.Tracks[0].Name)
	assert.Equal(t, []MeterChange{{Tick: 0, Num: 4, Denom: 4}}, tl.Meters)
	assert.Equal(t, []TempoChange{{Tick: 0, BPM: 120}}, tl.Tempos)
}

func TestTieChainSoundsOnce(t *testing.T) {
	tl := Flatten(single(
		measure(fourFour(1), note("C", 4, 2, tie("start")), note("C", 4, 2, tie("stop", "start"))),
		measure(nil, note("C", 4, 2, tie("stop")), rest(2)),
	), opts)

	notes := tl.Tracks[0].Notes()
	assert.Equal(t, []Sounding{{Key: 60, Velocity: 80, On: 0, Off: 2880}}, notes)
}

func TestPartialChordTie(t *testing.T) {
	tl := Flatten(single(
		measure(fourFour(1), note("C", 4, 4, tie("start")), note("E", 4, 4, chord)),
		measure(nil, note("C", 4, 4, tie("stop")), note("E", 4, 4, chord)),
	), opts)

	notes := tl.Tracks[0].Notes()
	assert.ElementsMatch(t, []Sounding{
		{Key: 60, Velocity: 80, On: 0, Off: 3840},
		{Key: 64, Velocity: 80, On: 0, Off: 1920},
		{Key: 64, Velocity: 80, On: 1920, Off: 3840},
	}, notes)
}

func TestUnterminatedTieIsClosed(t *testing.T) {
	tl := Flatten(single(
		measure(fourFour(1), note("D", 4, 4, tie("start"))),
		measure(nil, note("E", 4, 4)),
	), opts)

	var on, off int
	for _, e := range tl.Tracks[0].Events {
		switch e.Kind {
		case NoteOn:
			on++
		case NoteOff:
			off++
		}
	}
	assert.Equal(t, 2, on)
	assert.Equal(t, on, off)
	assert.Contains(t, tl.Tracks[0].Notes(), Sounding{Key: 62, Velocity: 80, On: 0, Off: 1920})
}

func TestBackupForwardInterleave(t *testing.T) {
	tl := Flatten(single(measure(fourFour(1),
		note("C", 5, 4),
		&model.Backup{Duration: 4},
		&model.Forward{Duration: 2, Voice: 2},
		note("G", 3, 2, voice(2)),
		&model.Backup{Duration: 10},
		note("E", 3, 1, voice(3)),
	), measure(nil, note("D", 5, 4))), opts)

	notes := tl.Tracks[0].Notes()
	assert.ElementsMatch(t, []Sounding{
		{Key: 72, Velocity: 80, On: 0, Off: 1920},
		{Key: 55, Velocity: 80, On: 960, Off: 1920},
		{Key: 52, Velocity: 80, On: 0, Off: 480},
		{Key: 74, Velocity: 80, On: 1920, Off: 3840},
	}, notes)
}

func TestTransposingInstrument(t *testing.T) {
	diatonic := -1
	attrs := fourFour(1)
	attrs.Transposes = []model.Transpose{{Diatonic: &diatonic, Chromatic: -2}}
	tl := Flatten(single(measure(attrs, note("D", 4, 4))), opts)

	notes := tl.Tracks[0].Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, uint8(60), notes[0].Key)
}

func TestTransposePerStaff(t *testing.T) {
	attrs := fourFour(1)
	attrs.Transposes = []model.Transpose{{Number: 2, Chromatic: 0, OctaveChange: -1}}
	tl := Flatten(single(measure(attrs, note("C", 4, 4, staff(2)))), opts)
	assert.Equal(t, uint8(48), tl.Tracks[0].Notes()[0].Key)

	attrs = fourFour(1)
	attrs.Transposes = []model.Transpose{{Number: 2, Chromatic: -12}}
	tl = Flatten(single(measure(attrs, note("C", 4, 4, staff(1)))), opts)
	assert.Equal(t, uint8(60), tl.Tracks[0].Notes()[0].Key)
}

func TestMissingDurationUsesType(t *testing.T) {
	quarter := func(n *model.Note) {
		n.Type = "quarter"
	}
	s := single(measure(fourFour(4), note("C", 4, 0, quarter), note("D", 4, 0, quarter)))

	expected := []Sounding{
		{Key: 60, Velocity: 80, On: 0, Off: 480},
		{Key: 62, Velocity: 80, On: 480, Off: 960},
	}
	assert.Equal(t, expected, Flatten(s, opts).Tracks[0].Notes())

	again, err := parse.Parse(serialize.Serialize(s, serialize.Options{}))
	require.NoError(t, err)
	assert.Equal(t, expected, Flatten(again, opts).Tracks[0].Notes())
}

func TestGraceNotes(t *testing.T) {
	grace := note("D", 5, 0)
	grace.Grace = &model.Grace{Slash: "yes"}
	tl := Flatten(single(measure(fourFour(1), grace, note("C", 5, 4))), opts)

	assert.Equal(t, []Sounding{
		{Key: 74, Velocity: 80, On: 0, Off: 30},
		{Key: 72, Velocity: 80, On: 0, Off: 1920},
	}, tl.Tracks[0].Notes())

	zero := opts
	zero.GraceTicks = 0
	tl = Flatten(single(measure(fourFour(1), grace, note("C", 5, 4))), zero)
	events := tl.Tracks[0].Events
	require.Len(t, events, 4)
	assert.Equal(t, NoteOn, events[0].Kind)
	assert.Equal(t, uint8(74), events[0].Key)
	assert.Equal(t, NoteOn, events[1].Kind)
	assert.Equal(t, NoteOff, events[2].Kind)
	assert.Equal(t, uint8(74), events[2].Key)
	assert.Equal(t, int64(0), events[2].Tick)
}

func TestDivisionsChange(t *testing.T) {
	tl := Flatten(single(
		measure(fourFour(1), note("C", 4, 4)),
		measure(&model.Attributes{Divisions: 4}, note("D", 4, 4), note("E", 4, 12)),
		measure(nil, note("F", 4, 4), &model.Attributes{Divisions: 1}, note("G", 4, 1)),
	), opts)

	assert.Equal(t, []Sounding{
		{Key: 60, Velocity: 80, On: 0, Off: 1920},
		{Key: 62, Velocity: 80, On: 1920, Off: 2400},
		{Key: 64, Velocity: 80, On: 2400, Off: 3840},
		{Key: 65, Velocity: 80, On: 3840, Off: 4320},
		{Key: 67, Velocity: 80, On: 4320, Off: 4800},
	}, tl.Tracks[0].Notes())
}

func TestTempoAndDynamics(t *testing.T) {
	tempo, dyn := 90.0, 100.0
	tl := Flatten(single(
		measure(fourFour(1), note("C", 4, 4)),
		measure(nil,
			&model.Direction{Sound: &model.Sound{Tempo: &tempo, Dynamics: &dyn}},
			note("D", 4, 4),
		),
	), opts)

	assert.Equal(t, []TempoChange{{Tick: 0, BPM: 120}, {Tick: 1920, BPM: 90}}, tl.Tempos)
	notes := tl.Tracks[0].Notes()
	assert.Equal(t, uint8(80), notes[0].Velocity)
	assert.Equal(t, uint8(90), notes[1].Velocity)
}

func TestTempoAtStartReplacesDefault(t *testing.T) {
	tempo := 60.0
	tl := Flatten(single(measure(fourFour(1),
		&model.Sound{Tempo: &tempo},
		note("C", 4, 4),
	)), opts)
	assert.Equal(t, []TempoChange{{Tick: 0, BPM: 60}}, tl.Tempos)
}

func TestVelocityFor(t *testing.T) {
	tests := []struct {
		dynamics float64
		expected uint8
	}{
		{100, 90},
		{50, 45},
		{0, 1},
		{200, 127},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, velocityFor(tt.dynamics))
	}
}

func TestEmptyMeasureUsesTimeSignature(t *testing.T) {
	tl := Flatten(single(
		measure(&model.Attributes{Divisions: 2, Times: []model.Time{{Signatures: []model.TimeSignature{{Beats: "3", BeatType: "4"}}}}}),
		measure(nil, note("C", 4, 2)),
	), opts)
	assert.Equal(t, int64(1440), tl.Tracks[0].Notes()[0].On)
}

func TestChannelsAndPrograms(t *testing.T) {
	s := &model.Score{
		PartList: []model.PartListItem{
			&model.ScorePart{ID: "P1", Name: "Flute", MidiInstruments: []model.MidiInstrument{{ID: "I1", Channel: 3, Program: 74}}},
		},
	}
	for i := 0; i < 11; i++ {
		id := "P" + string(rune('1'+i))
		s.Parts = append(s.Parts, &model.Part{ID: id, Measures: []*model.Measure{measure(fourFour(1), note("C", 4, 4))}})
	}
	tl := Flatten(s, opts)

	require.Len(t, tl.Tracks, 11)
	assert.Equal(t, uint8(2), tl.Tracks[0].Channel)
	assert.Equal(t, ProgramChange, tl.Tracks[0].Events[0].Kind)
	assert.Equal(t, uint8(73), tl.Tracks[0].Events[0].Program)
	assert.Equal(t, uint8(8), tl.Tracks[8].Channel)
	assert.Equal(t, uint8(10), tl.Tracks[9].Channel)
	assert.Equal(t, "P2", tl.Tracks[1].Name)
}

func TestUnpitchedNotes(t *testing.T) {
	s := &model.Score{
		PartList: []model.PartListItem{
			&model.ScorePart{ID: "P1", Name: "Drums", MidiInstruments: []model.MidiInstrument{
				{ID: "snare", Channel: 10, UnpitchedNote: 39},
			}},
		},
		Parts: []*model.Part{{ID: "P1", Measures: []*model.Measure{measure(fourFour(1),
			&model.Note{Unpitched: &model.Unpitched{}, Instrument: "snare", Duration: 1, Voice: 1},
			&model.Note{Unpitched: &model.Unpitched{}, Instrument: "ride", Duration: 1, Voice: 1},
		)}}},
	}
	tl := Flatten(s, opts)
	assert.Equal(t, uint8(9), tl.Tracks[0].Channel)
	assert.Equal(t, []Sounding{{Key: 38, Velocity: 80, On: 0, Off: 480}}, tl.Tracks[0].Notes())
}

func TestLyrics(t *testing.T) {
	first := note("C", 4, 2)
	first.Lyrics = []model.Lyric{{Text: "Hal"}}
	second := note("E", 4, 2, chord)
	second.Lyrics = []model.Lyric{{Text: "ignored"}}
	third := note("D", 4, 2)
	third.Lyrics = []model.Lyric{{Text: "le"}}

	tl := Flatten(single(measure(fourFour(1), first, second, third)), opts)
	var lyrics []string
	for _, e := range tl.Tracks[0].Events {
		if e.Kind == Lyric {
			lyrics = append(lyrics, e.Text)
		}
	}
	assert.Equal(t, []string{"Hal", "le"}, lyrics)
}

func TestMeterOf(t *testing.T) {
	num, denom, ok := meterOf(model.Time{Signatures: []model.TimeSignature{{Beats: "3+2", BeatType: "8"}}})
	assert.True(t, ok)
	assert.Equal(t, uint8(5), num)
	assert.Equal(t, uint8(8), denom)

	_, _, ok = meterOf(model.Time{Signatures: []model.TimeSignature{{Beats: "4", BeatType: "3"}}})
	assert.False(t, ok)
}
