package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/partwise/errors"
	"github.com/jsphweid/partwise/midi"
	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/parse"
)

func score() *model.Score {
	return &model.Score{
		PartList: []model.PartListItem{&model.ScorePart{ID: "P1", Name: "Music"}},
		Parts: []*model.Part{{ID: "P1", Measures: []*model.Measure{{
			Number:     "1",
			Attributes: &model.Attributes{Divisions: 1},
			Entries: []model.Entry{
				&model.Note{Pitch: &model.Pitch{Step: "A", Octave: 4}, Duration: 4, Voice: 1, Type: "whole"},
			},
		}}}},
	}
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{"a.musicxml", MusicXML},
		{"a.XML", MusicXML},
		{"dir/a.mxl", Compressed},
		{"a.mid", MIDI},
		{"a.midi", MIDI},
		{"a.txt", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatOf(tt.path))
		})
	}
}

func TestWriteAndReadBack(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.musicxml", "out.mxl"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteScore(path, score()))

			s, err := ReadScore(path, parse.Options{})
			require.NoError(t, err)
			assert.True(t, model.Equivalent(score(), s))
		})
	}
}

func TestWriteMIDI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mid")
	require.NoError(t, WriteScore(path, score()))

	sm, err := midi.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, midi.Summarize(sm).NoteCount())
}

func TestUnsupportedExtensions(t *testing.T) {
	dir := t.TempDir()
	err := WriteScore(filepath.Join(dir, "out.txt"), score())
	assert.True(t, errors.Is(err, errors.ErrUnsupported))

	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	_, err = ReadScore(path, parse.Options{})
	assert.True(t, errors.Is(err, errors.ErrUnsupported))
}

func TestMissingFile(t *testing.T) {
	_, err := ReadScore(filepath.Join(t.TempDir(), "nope.musicxml"), parse.Options{})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
