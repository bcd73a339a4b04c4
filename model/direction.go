package model

// Direction is a <direction>: one or more direction-type payloads, each an
// ordered list of items, plus an optional playback Sound.
type Direction struct {
	ID         string
	Placement  string
	Directive  string
	Types      []DirectionType
	Offset     *Offset
	Voice      int
	Staff      int
	Sound      *Sound
	Formatting Formatting
}

type DirectionType struct {
	Items []DirectionItem
}

type DirectionKind string

const (
	DirectionWords          DirectionKind = "words"
	DirectionRehearsal      DirectionKind = "rehearsal"
	DirectionSegno          DirectionKind = "segno"
	DirectionCoda           DirectionKind = "coda"
	DirectionSymbol         DirectionKind = "symbol"
	DirectionDynamics       DirectionKind = "dynamics"
	DirectionWedge          DirectionKind = "wedge"
	DirectionDashes         DirectionKind = "dashes"
	DirectionBracket        DirectionKind = "bracket"
	DirectionPedal          DirectionKind = "pedal"
	DirectionMetronome      DirectionKind = "metronome"
	DirectionOctaveShift    DirectionKind = "octave-shift"
	DirectionOtherDirection DirectionKind = "other-direction"
)

// DirectionItem is one child of a <direction-type>. Text is used by words,
// rehearsal, symbol and other-direction; Type, Number and Size by wedge,
// dashes, bracket, pedal and octave-shift; Marks by dynamics.
type DirectionItem struct {
	Kind       DirectionKind
	Text       string
	Type       string
	Number     int
	Size       int
	Marks      []Mark
	Metronome  *Metronome
	Formatting Formatting
}

type Metronome struct {
	BeatUnit      string
	BeatUnitDots  int
	PerMinute     string
	BeatUnit2     string
	BeatUnitDots2 int
	Formatting    Formatting
}

type Offset struct {
	Value int
	Sound string
}

// Sound carries playback hints, either inside a direction or as its own
// entry in the stream.
type Sound struct {
	Tempo           *float64
	Dynamics        *float64
	MidiDevices     []MidiDevice
	MidiInstruments []MidiInstrument
	Offset          *Offset
	Formatting      Formatting
}

type Harmony struct {
	Root           *HarmonyStep
	Function       string
	ChordKind      string
	KindFormatting Formatting
	Inversion      *int
	Bass           *HarmonyStep
	Degrees        []Degree
	Offset         *Offset
	Staff          int
	Formatting     Formatting
}

type HarmonyStep struct {
	Step  string
	Alter *float64
}

type Degree struct {
	Value int
	Alter float64
	Type  string
}

type FiguredBass struct {
	Figures    []Figure
	Duration   int
	Formatting Formatting
}

type Figure struct {
	Prefix string
	Number string
	Suffix string
	Extend *Extend
}

// Tempo returns the direction's sound tempo, if any.
func (d *Direction) Tempo() (float64, bool) {
	if d.Sound == nil || d.Sound.Tempo == nil {
		return 0, false
	}
	return *d.Sound.Tempo, true
}
