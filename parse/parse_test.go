package parse

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsphweid/partwise/errors"
	"github.com/jsphweid/partwise/model"
)

const fourNotes = `<?xml version="1.0" encoding="UTF-8"?>
<score-partwise version="4.0">
  <part-list>
    <score-part id="P1"><part-name>Music</part-name></score-part>
  </part-list>
  <part id="P1">
    <measure number="1">
      <attributes>
        <divisions>1</divisions>
        <time><beats>4</beats><beat-type>4</beat-type></time>
      </attributes>
      <note><pitch><step>C</step><octave>4</octave></pitch><duration>1</duration><voice>1</voice><type>quarter</type></note>
      <note><pitch><step>C</step><octave>4</octave></pitch><duration>1</duration><voice>1</voice><type>quarter</type></note>
      <note><pitch><step>G</step><octave>4</octave></pitch><duration>1</duration><voice>1</voice><type>quarter</type></note>
      <note><pitch><step>G</step><octave>4</octave></pitch><duration>1</duration><voice>1</voice><type>quarter</type></note>
    </measure>
  </part>
</score-partwise>`

func wrap(measure string) []byte {
	return []byte(`<score-partwise version="4.0"><part-list><score-part id="P1"><part-name>x</part-name></score-part></part-list>` +
		`<part id="P1">` + measure + `</part></score-partwise>`)
}

func TestFourQuarterNotes(t *testing.T) {
	s, err := Parse([]byte(fourNotes))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("4.0", s.Version)
	assert.NotEmpty(s.ID)
	assert.Equal(4, model.CountNotes(s))

	notes := model.Notes(s.Parts[0])
	require.Len(t, notes, 4)
	assert.Equal("C", notes[0].Pitch.Step)
	assert.Equal(4, notes[0].Pitch.Octave)
	assert.Nil(notes[0].Pitch.Alter)
	assert.Equal([]string{"C", "C", "G", "G"}, []string{notes[0].Pitch.Step, notes[1].Pitch.Step, notes[2].Pitch.Step, notes[3].Pitch.Step})

	m := s.Parts[0].Measures[0]
	assert.Equal("1", m.Number)
	require.NotNil(t, m.Attributes)
	assert.Equal(1, m.Attributes.Divisions)
	assert.Equal("4", m.Attributes.Times[0].Signatures[0].Beats)
	assert.Equal(0, m.AttributesPosition)
}

func TestUnsupportedRoot(t *testing.T) {
	_, err := Parse([]byte(`<score-timewise version="4.0"><measure number="1"/></score-timewise>`))
	require.Error(t, err)

	assert := assert.New(t)
	assert.True(errors.Is(err, errors.ErrUnsupportedRoot))
	var ue *errors.UnsupportedError
	assert.True(errors.As(err, &ue))
	assert.Contains(ue.Reason, "score-timewise")
}

func TestMalformed(t *testing.T) {
	_, err := Parse([]byte(`<score-partwise><part id="P1"></score-partwise>`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMalformedDocument))

	_, err = Build(nil, Options{})
	assert.True(t, errors.Is(err, errors.ErrMalformedDocument))
}

func TestMeasureNumberIsToken(t *testing.T) {
	s, err := Parse(wrap(`<measure number="1a" implicit="yes"/><measure number="X2" implicit="maybe"/>`))
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("1a", s.Parts[0].Measures[0].Number)
	assert.Equal("yes", s.Parts[0].Measures[0].Implicit)
	assert.Equal("X2", s.Parts[0].Measures[1].Number)
	assert.Equal("", s.Parts[0].Measures[1].Implicit)
}

func TestLeadingAndMidMeasureAttributes(t *testing.T) {
	s, err := Parse(wrap(`<measure number="1">
		<direction><direction-type><words>dolce</words></direction-type></direction>
		<attributes><divisions>2</divisions></attributes>
		<note><pitch><step>C</step><octave>4</octave></pitch><duration>2</duration></note>
		<attributes><clef><sign>F</sign><line>4</line></clef></attributes>
		<note><pitch><step>C</step><octave>3</octave></pitch><duration>2</duration></note>
	</measure>
	<measure number="2">
		<note><pitch><step>C</step><octave>3</octave></pitch><duration>2</duration></note>
		<attributes><divisions>4</divisions></attributes>
	</measure>`))
	require.NoError(t, err)

	assert := assert.New(t)
	m := s.Parts[0].Measures[0]
	require.NotNil(t, m.Attributes)
	assert.Equal(2, m.Attributes.Divisions)
	assert.Equal(1, m.AttributesPosition)
	require.Len(t, m.Entries, 4)
	assert.Equal(model.KindDirection, m.Entries[0].Kind())
	assert.Equal(model.KindNote, m.Entries[1].Kind())
	mid, ok := m.Entries[2].(*model.Attributes)
	require.True(t, ok)
	assert.Equal("F", mid.Clefs[0].Sign)

	m2 := s.Parts[0].Measures[1]
	assert.Nil(m2.Attributes)
	assert.Equal(model.KindAttributes, m2.Entries[1].Kind())
	assert.Equal(2, model.DivisionsAt(s.Parts[0], 1))
}

func TestTolerantFields(t *testing.T) {
	var dropped []string
	s, err := ParseWithOptions(wrap(`<measure number="1">
		<note>
			<pitch><step>H</step><octave>x</octave></pitch>
			<duration>abc</duration>
			<voice>two</voice>
			<type>crotchet</type>
			<accidental>sharp</accidental>
			<stem>sideways</stem>
			<notehead>blob</notehead>
			<unknown-element/>
		</note>
		<bookmark id="b"/>
	</measure>`), Options{OnDrop: func(path string) { dropped = append(dropped, path) }})
	require.NoError(t, err)

	assert := assert.New(t)
	n := s.Parts[0].Measures[0].Entries[0].(*model.Note)
	assert.Equal("C", n.Pitch.Step)
	assert.Equal(4, n.Pitch.Octave)
	assert.Equal(0, n.Duration)
	assert.Equal(1, n.Voice)
	assert.Equal("", n.Type)
	assert.Equal("sharp", n.Accidental.Value)
	assert.Equal("", n.Stem)
	assert.Nil(n.Notehead)

	assert.Contains(dropped, "score-partwise/part[P1]/measure[1]/note/pitch/step=H")
	assert.Contains(dropped, "score-partwise/part[P1]/measure[1]/note/type=crotchet")
	assert.Contains(dropped, "score-partwise/part[P1]/measure[1]/note/unknown-element")
	assert.Contains(dropped, "score-partwise/part[P1]/measure[1]/bookmark")
}

func TestCueTiesAreDropped(t *testing.T) {
	var dropped []string
	s, err := ParseWithOptions(wrap(`<measure number="1">
		<note><cue/><pitch><step>C</step><octave>4</octave></pitch><duration>1</duration><tie type="start"/></note>
		<note><grace/><cue/><pitch><step>D</step><octave>4</octave></pitch><tie type="start"/></note>
	</measure>`), Options{OnDrop: func(path string) { dropped = append(dropped, path) }})
	require.NoError(t, err)

	entries := s.Parts[0].Measures[0].Entries
	assert := assert.New(t)
	assert.Empty(entries[0].(*model.Note).Ties)
	assert.Equal([]model.Tie{{Type: "start"}}, entries[1].(*model.Note).Ties)
	assert.Equal([]string{"score-partwise/part[P1]/measure[1]/note/tie"}, dropped)
}

func TestSilentByDefault(t *testing.T) {
	s, err := Parse(wrap(`<measure number="1"><mystery/><note><rest/><duration>4</duration></note></measure>`))
	require.NoError(t, err)
	assert.Len(t, s.Parts[0].Measures[0].Entries, 1)
	assert.True(t, s.Parts[0].Measures[0].Entries[0].(*model.Note).IsRest())
}

func TestNoteDetails(t *testing.T) {
	data, err := os.ReadFile("testdata/sample.musicxml")
	require.NoError(t, err)
	s, err := Parse(data)
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, s.Parts, 2)
	m1 := s.Parts[0].Measures[0]
	require.Len(t, m1.Prints, 1)
	assert.Equal(0, m1.Prints[0].Position)
	assert.Equal(1, m1.AttributesPosition)
	require.Len(t, m1.Barlines, 1)
	assert.Equal(9, m1.Barlines[0].Position)
	assert.Equal("regular", m1.Barlines[0].BarStyle)

	dir := m1.Entries[0].(*model.Direction)
	assert.Equal("above", dir.Placement)
	require.Len(t, dir.Types, 2)
	assert.Equal(model.DirectionWords, dir.Types[0].Items[0].Kind)
	assert.Equal("Allegro", dir.Types[0].Items[0].Text)
	v, _ := dir.Types[0].Items[0].Formatting.Get("font-weight")
	assert.Equal("bold", v)
	assert.Equal("mf", dir.Types[1].Items[0].Marks[0].Name)
	tempo, ok := dir.Tempo()
	assert.True(ok)
	assert.Equal(132.0, tempo)

	first := m1.Entries[1].(*model.Note)
	require.Len(t, first.Notations, 2)
	assert.Equal(0, first.Notations[0].Group)
	assert.Equal(model.NotationSlur, first.Notations[0].Kind)
	assert.Equal(1, first.Notations[1].Group)
	assert.Equal("staccato", first.Notations[1].Marks[0].Name)
	assert.Equal("La", first.Lyrics[0].Text)
	x, _ := first.Formatting.Get("default-x")
	assert.Equal("80", x)

	chord := m1.Entries[2].(*model.Note)
	assert.True(chord.Chord)
	assert.True(chord.HasTie("start"))

	flat := m1.Entries[3].(*model.Note)
	assert.Equal(-1.0, flat.Pitch.AlterValue())
	assert.Equal(model.NotationFermata, flat.Notations[1].Kind)
	assert.Equal("upright", flat.Notations[1].Type)

	m2 := s.Parts[0].Measures[1]
	grace := m2.Entries[2].(*model.Note)
	assert.True(grace.IsGrace())
	assert.Equal("yes", grace.Grace.Slash)
	assert.Equal(0, grace.Duration)
	tuplet := m2.Entries[3].(*model.Note)
	assert.Equal(3, tuplet.TimeModification.ActualNotes)
	assert.Equal("begin", tuplet.Beams[0].Value)
	fwd := m2.Entries[8].(*model.Forward)
	assert.Equal(2, fwd.Voice)
	assert.Equal("backward", m2.Barlines[0].Repeat.Direction)
	assert.Equal("1", m2.Barlines[0].Ending.Number)

	sp := s.ScorePartByID("P2")
	require.NotNil(t, sp)
	assert.Equal("Clarinet in B♭", sp.Name)
	assert.Equal(72, sp.MidiInstruments[0].Program)
	tr := s.Parts[1].Measures[0].Attributes.Transposes[0]
	assert.Equal(-2, tr.Semitones())
	assert.Equal(-1, *tr.Diatonic)

	require.Len(t, s.PartList, 4)
	assert.Equal("bracket", s.PartList[0].(*model.PartGroup).Symbol)
	assert.Equal("Little Study", s.Work.Title)
	assert.Equal("composer", s.Identification.Creators[0].Type)
	assert.Equal("supports", s.Identification.Encoding[2].Name)
	assert.Equal(40.0, s.Defaults.Scaling.Tenths)
	assert.Equal("both", s.Defaults.PageLayout.Margins[0].Type)
	assert.Equal("Little Study", s.Credits[0].Words[0].Text)
}

func TestMultipleWordsInOneDirectionType(t *testing.T) {
	s, err := Parse(wrap(`<measure number="1"><direction><direction-type>
		<words>poco</words><words>a poco</words>
	</direction-type><offset sound="yes">2</offset><voice>1</voice></direction></measure>`))
	require.NoError(t, err)

	d := s.Parts[0].Measures[0].Entries[0].(*model.Direction)
	assert := assert.New(t)
	require.Len(t, d.Types, 1)
	require.Len(t, d.Types[0].Items, 2)
	assert.Equal("a poco", d.Types[0].Items[1].Text)
	assert.Equal(2, d.Offset.Value)
	assert.Equal("yes", d.Offset.Sound)
	assert.Equal(1, d.Voice)
}

func TestKeysAndTimes(t *testing.T) {
	s, err := Parse(wrap(`<measure number="1"><attributes>
		<key><key-step>F</key-step><key-alter>1</key-alter><key-step>C</key-step><key-alter>1</key-alter><key-accidental>sharp</key-accidental></key>
		<time><beats>3+2</beats><beat-type>8</beat-type><beats>2</beats><beat-type>4</beat-type></time>
		<time print-object="no"><senza-misura/></time>
	</attributes></measure>`))
	require.NoError(t, err)

	a := s.Parts[0].Measures[0].Attributes
	assert := assert.New(t)
	require.Len(t, a.Keys[0].NonTraditional, 2)
	assert.Equal("sharp", a.Keys[0].NonTraditional[1].Accidental)
	assert.Equal(1.0, a.Keys[0].NonTraditional[0].Alter)
	require.Len(t, a.Times, 2)
	assert.Equal([]model.TimeSignature{{Beats: "3+2", BeatType: "8"}, {Beats: "2", BeatType: "4"}}, a.Times[0].Signatures)
	require.NotNil(t, a.Times[1].SenzaMisura)
	assert.Equal(model.Formatting{{Name: "print-object", Value: "no"}}, a.Times[1].Formatting)
}
