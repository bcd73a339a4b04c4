package serialize

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/parse"
)

func load(t *testing.T) *model.Score {
	data, err := os.ReadFile("testdata/sample.musicxml")
	require.NoError(t, err)
	s, err := parse.Parse(data)
	require.NoError(t, err)
	return s
}

// compact joins the indented output onto one line.
func compact(out []byte) string {
	lines := strings.Split(string(out), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimLeft(l, " ")
	}
	return strings.Join(lines, "")
}

func roundTrip(t *testing.T, s *model.Score) *model.Score {
	out, err := parse.Parse(Serialize(s, Options{Indent: "  "}))
	require.NoError(t, err)
	return out
}

func TestRoundTripFixture(t *testing.T) {
	s := load(t)
	again := roundTrip(t, s)
	assert.True(t, model.Equivalent(s, again))
}

func TestSerializeIsFixedPoint(t *testing.T) {
	s := load(t)
	first := Serialize(s, Options{Indent: "  "})
	reparsed, err := parse.Parse(first)
	require.NoError(t, err)
	second := Serialize(reparsed, Options{Indent: "  "})
	assert.Equal(t, string(first), string(second))
}

func TestHeader(t *testing.T) {
	out := string(Serialize(load(t), Options{}))

	assert := assert.New(t)
	assert.True(strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"`))
	assert.Contains(out, `<!DOCTYPE score-partwise PUBLIC "-//Recordare//DTD MusicXML 4.0 Partwise//EN"`)
	assert.Contains(out, `<score-partwise version="4.0">`)
	assert.NotContains(out, `version="3.1"`)
}

func TestOrderIsPreserved(t *testing.T) {
	out := string(Serialize(load(t), Options{}))

	assert := assert.New(t)
	// print, attributes, direction, note within the first measure
	iPrint := strings.Index(out, "<print")
	iAttr := strings.Index(out, "<attributes>")
	iDir := strings.Index(out, "<direction")
	iNote := strings.Index(out, "<note")
	assert.True(iPrint < iAttr && iAttr < iDir && iDir < iNote)

	// the mid-measure clef change sits between the tied E and the grace note
	m2 := out[strings.Index(out, `<measure number="2">`):]
	iStop := strings.Index(m2, `<tie type="stop"/>`)
	iClef := strings.Index(m2, "<attributes>")
	iGrace := strings.Index(m2, "<grace")
	assert.True(iStop < iClef && iClef < iGrace)
}

func TestNotationGroupsAreRebuilt(t *testing.T) {
	out := compact(Serialize(load(t), Options{}))
	assert.Contains(t, out, `<notations><slur type="start" number="1"/></notations><notations><articulations><staccato placement="below"/></articulations></notations>`)
}

func TestDivisionsInjected(t *testing.T) {
	s := &model.Score{
		PartList: []model.PartListItem{&model.ScorePart{ID: "P1", Name: "Voice"}},
		Parts: []*model.Part{{ID: "P1", Measures: []*model.Measure{{
			Number: "1",
			Entries: []model.Entry{
				&model.Note{Pitch: &model.Pitch{Step: "C", Octave: 4}, Duration: 1, Voice: 1, Type: "quarter"},
			},
		}}}},
	}
	out := compact(Serialize(s, Options{}))
	assert.Contains(t, out, `<measure number="1"><attributes><divisions>1</divisions></attributes><note>`)

	again := roundTrip(t, s)
	m := again.Parts[0].Measures[0]
	require.NotNil(t, m.Attributes)
	assert.Equal(t, 1, m.Attributes.Divisions)
}

func TestDivisionsMergedIntoLeadingAttributes(t *testing.T) {
	s := &model.Score{
		Parts: []*model.Part{{ID: "P1", Measures: []*model.Measure{{
			Number:     "1",
			Attributes: &model.Attributes{Staves: 2},
			Entries: []model.Entry{
				&model.Note{Rest: &model.Rest{}, Duration: 4, Voice: 1},
			},
		}}}},
	}
	out := compact(Serialize(s, Options{}))
	assert.Contains(t, out, `<attributes><divisions>1</divisions><staves>2</staves></attributes>`)
	assert.Equal(t, 0, s.Parts[0].Measures[0].Attributes.Divisions)
}

func TestZeroDurationIsFilledIn(t *testing.T) {
	s := &model.Score{
		Parts: []*model.Part{{ID: "P1", Measures: []*model.Measure{{
			Number:     "1",
			Attributes: &model.Attributes{Divisions: 2},
			Entries: []model.Entry{
				&model.Note{Pitch: &model.Pitch{Step: "D", Octave: 5}, Voice: 1, Type: "half"},
				&model.Note{Rest: &model.Rest{Measure: "yes"}, Voice: 2},
				&model.Note{Grace: &model.Grace{}, Pitch: &model.Pitch{Step: "E", Octave: 5}, Voice: 1, Type: "eighth"},
			},
		}}}},
	}
	again := roundTrip(t, s)
	notes := model.Notes(again.Parts[0])

	assert := assert.New(t)
	require.Len(t, notes, 3)
	assert.Equal(4, notes[0].Duration)
	assert.Equal(0, notes[1].Duration)
	assert.Equal(0, notes[2].Duration)
	assert.True(notes[2].IsGrace())
}

func TestCueNotesHaveNoTies(t *testing.T) {
	s := &model.Score{
		Parts: []*model.Part{{ID: "P1", Measures: []*model.Measure{{
			Number:     "1",
			Attributes: &model.Attributes{Divisions: 1},
			Entries: []model.Entry{
				&model.Note{Cue: true, Pitch: &model.Pitch{Step: "C", Octave: 4}, Duration: 1, Voice: 1, Ties: []model.Tie{{Type: "start"}}},
			},
		}}}},
	}
	out := string(Serialize(s, Options{}))
	assert.Contains(t, out, "<cue/>")
	assert.NotContains(t, out, "<tie")

	// the builder drops the tie too, so read-back scores stay equivalent
	parsed, err := parse.Parse([]byte(`<score-partwise version="4.0"><part-list><score-part id="P1"><part-name>x</part-name></score-part></part-list>` +
		`<part id="P1"><measure number="1"><attributes><divisions>1</divisions></attributes>` +
		`<note><cue/><pitch><step>C</step><octave>4</octave></pitch><duration>1</duration><tie type="start"/></note>` +
		`</measure></part></score-partwise>`))
	require.NoError(t, err)
	assert.True(t, model.Equivalent(parsed, roundTrip(t, parsed)))
}

func TestFourNotesReparse(t *testing.T) {
	var entries []model.Entry
	for _, step := range []string{"C", "C", "G", "G"} {
		entries = append(entries, &model.Note{Pitch: &model.Pitch{Step: step, Octave: 4}, Duration: 1, Voice: 1, Type: "quarter"})
	}
	s := &model.Score{
		Version:  "4.0",
		PartList: []model.PartListItem{&model.ScorePart{ID: "P1", Name: "Music"}},
		Parts: []*model.Part{{ID: "P1", Measures: []*model.Measure{{
			Number:     "1",
			Attributes: &model.Attributes{Divisions: 1, Times: []model.Time{{Signatures: []model.TimeSignature{{Beats: "4", BeatType: "4"}}}}},
			Entries:    entries,
		}}}},
	}
	again := roundTrip(t, s)
	assert.True(t, model.Equivalent(s, again))
	assert.Equal(t, 4, model.CountNotes(again))
}

func TestEditedScoreRoundTrips(t *testing.T) {
	s := load(t)
	edited := model.TransposeWritten(s, 3)
	edited, err := model.AddNote(edited, "P2", 1, 0, &model.Note{Pitch: &model.Pitch{Step: "F", Octave: 4}, Duration: 4, Voice: 1, Type: "whole"})
	require.NoError(t, err)

	again := roundTrip(t, edited)
	assert.True(t, model.Equivalent(edited, again))
	assert.Equal(t, model.CountNotes(s)+1, model.CountNotes(again))
}
