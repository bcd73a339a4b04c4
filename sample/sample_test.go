package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/partwise/midi"
	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/timeline"
)

func scale(t *testing.T) *smf.SMF {
	var entries []model.Entry
	for _, step := range []string{"C", "D", "E", "F", "G", "A"} {
		entries = append(entries, &model.Note{Pitch: &model.Pitch{Step: step, Octave: 4}, Duration: 1, Voice: 1})
	}
	s := &model.Score{Parts: []*model.Part{{ID: "P1", Measures: []*model.Measure{{
		Attributes: &model.Attributes{Divisions: 1},
		Entries:    entries,
	}}}}}
	data, err := midi.Export(s, timeline.Options{TicksPerQuarter: 480}, midi.EncodeOptions{})
	require.NoError(t, err)
	sm, err := midi.Read(data)
	require.NoError(t, err)
	return sm
}

func TestCreate(t *testing.T) {
	excerpt, err := Create(scale(t), 960, 2)
	require.NoError(t, err)
	summary := midi.Summarize(excerpt)

	assert := assert.New(t)
	require.Len(t, summary.Tracks, 2)
	require.Len(t, summary.Tempos, 1)
	assert.Equal(int64(0), summary.Tempos[0].Tick)
	assert.Equal([]midi.Note{
		{Key: 64, Velocity: 80, On: 0, Off: 480},
		{Key: 65, Velocity: 80, On: 480, Off: 960},
	}, summary.Tracks[1].Notes)
}

func TestCreateFromStart(t *testing.T) {
	excerpt, err := Create(scale(t), 0, 100)
	require.NoError(t, err)
	assert.Equal(t, 6, midi.Summarize(excerpt).NoteCount())
}
