package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/partwise/errors"
	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/timeline"
)

var topts = timeline.Options{TicksPerQuarter: 480, DefaultTempo: 120, DefaultVelocity: 80, GraceTicks: 30}

func score() *model.Score {
	tempo := 90.0
	var entries []model.Entry
	for i, step := range []string{"C", "C", "G", "G"} {
		n := &model.Note{Pitch: &model.Pitch{Step: step, Octave: 4}, Duration: 1, Voice: 1, Type: "quarter"}
		if i == 0 {
			n.Lyrics = []model.Lyric{{Text: "Twin"}}
		}
		entries = append(entries, n)
	}
	return &model.Score{
		Work: &model.Work{Title: "Little Star"},
		PartList: []model.PartListItem{&model.ScorePart{
			ID:              "P1",
			Name:            "Piano",
			MidiInstruments: []model.MidiInstrument{{ID: "P1-I1", Channel: 1, Program: 1}},
		}},
		Parts: []*model.Part{{ID: "P1", Measures: []*model.Measure{
			{
				Number: "1",
				Attributes: &model.Attributes{
					Divisions: 1,
					Times:     []model.Time{{Signatures: []model.TimeSignature{{Beats: "3", BeatType: "4"}}}},
				},
				Entries: entries[:3],
			},
			{
				Number:  "2",
				Entries: []model.Entry{&model.Sound{Tempo: &tempo}, entries[3]},
			},
		}}},
	}
}

func TestExportReadBack(t *testing.T) {
	data, err := Export(score(), topts, EncodeOptions{})
	require.NoError(t, err)

	s, err := Read(data)
	require.NoError(t, err)
	sum := Summarize(s)

	assert := assert.New(t)
	assert.Equal(480, sum.TicksPerQuarter)
	require.Len(t, sum.Tracks, 2)
	assert.Equal("Little Star", sum.Tracks[0].Name)
	assert.Equal("Piano", sum.Tracks[1].Name)
	assert.Equal([]Meter{{Tick: 0, Num: 3, Denom: 4}}, sum.Meters)
	require.Len(t, sum.Tempos, 2)
	assert.Equal(int64(0), sum.Tempos[0].Tick)
	assert.InDelta(120.0, sum.Tempos[0].BPM, 0.01)
	assert.Equal(int64(1440), sum.Tempos[1].Tick)
	assert.InDelta(90.0, sum.Tempos[1].BPM, 0.01)

	assert.Equal([]uint8{0}, sum.Tracks[1].Programs)
	assert.Equal([]string{"Twin"}, sum.Tracks[1].Lyrics)
	assert.Equal([]Note{
		{Channel: 0, Key: 60, Velocity: 80, On: 0, Off: 480},
		{Channel: 0, Key: 60, Velocity: 80, On: 480, Off: 960},
		{Channel: 0, Key: 67, Velocity: 80, On: 960, Off: 1440},
		{Channel: 0, Key: 67, Velocity: 80, On: 1440, Off: 1920},
	}, sum.Tracks[1].Notes)
	assert.Equal(4, sum.NoteCount())
}

func TestLyricCharset(t *testing.T) {
	s := score()
	s.Parts[0].Measures[0].Entries[0].(*model.Note).Lyrics[0].Text = "été"

	data, err := Export(s, topts, EncodeOptions{LyricCharset: "windows-1252"})
	require.NoError(t, err)
	sm, err := Read(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"\xe9t\xe9"}, Summarize(sm).Tracks[1].Lyrics)

	data, err = Export(s, topts, EncodeOptions{LyricCharset: "UTF-8"})
	require.NoError(t, err)
	sm, err = Read(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"été"}, Summarize(sm).Tracks[1].Lyrics)
}

func TestUnknownCharset(t *testing.T) {
	_, err := Export(score(), topts, EncodeOptions{LyricCharset: "no-such-charset"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnsupported))
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read([]byte("not a midi file"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMalformedDocument))
}

func TestEmptyScore(t *testing.T) {
	data, err := Export(&model.Score{}, topts, EncodeOptions{})
	require.NoError(t, err)
	s, err := Read(data)
	require.NoError(t, err)

	sum := Summarize(s)
	require.Len(t, sum.Tracks, 1)
	assert.Equal(t, 0, sum.NoteCount())
	require.Len(t, sum.Tempos, 1)
}
