package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/partwise/midi"
	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/timeline"
)

func TestCreateChordKey(t *testing.T) {
	keys := []uint8{67, 60, 64}
	assert := assert.New(t)
	assert.Equal("60-64-67", CreateChordKey(keys))
	assert.Equal([]uint8{67, 60, 64}, keys)
	assert.Equal("", CreateChordKey(nil))
	assert.Equal("72", Chord{Keys: []uint8{72}}.Key())
}

func n(step string, octave, duration int, isChord bool) *model.Note {
	return &model.Note{Pitch: &model.Pitch{Step: step, Octave: octave}, Duration: duration, Voice: 1, Chord: isChord}
}

func TestGetChordsFromExport(t *testing.T) {
	s := &model.Score{
		Parts: []*model.Part{
			{ID: "P1", Measures: []*model.Measure{{
				Attributes: &model.Attributes{Divisions: 1},
				Entries: []model.Entry{
					n("C", 4, 2, false), n("E", 4, 2, true), n("G", 4, 2, true),
					n("F", 4, 1, false), n("A", 4, 1, true),
				},
			}}},
			{ID: "P2", Measures: []*model.Measure{{
				Attributes: &model.Attributes{Divisions: 1},
				Entries:    []model.Entry{n("C", 3, 2, false)},
			}}},
		},
	}
	data, err := midi.Export(s, timeline.Options{TicksPerQuarter: 480}, midi.EncodeOptions{})
	require.NoError(t, err)
	sm, err := midi.Read(data)
	require.NoError(t, err)

	chords := GetChords(sm)
	assert.Equal(t, []Chord{
		{Tick: 0, Keys: []uint8{48, 60, 64, 67}},
		{Tick: 960, Keys: []uint8{65, 69}},
	}, chords)
}
