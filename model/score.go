// Package model is the typed Score tree that MusicXML is built into.
//
// Scores are immutable by convention: the edit functions in this package
// return deep copies and never modify their input. Fields whose zero value
// is a legal musical value (alter, octave, volume) are pointers; everywhere
// else the zero value means "absent".
package model

import "github.com/google/uuid"

// NewID returns a fresh identifier for cross-referencing entities. IDs carry
// no musical meaning and are ignored by Equivalent.
func NewID() string {
	return uuid.New().String()
}

// Attr is an XML attribute carried through without interpretation.
type Attr struct {
	Name  string
	Value string
}

// Formatting holds presentational attributes (default-x, font-size, color,
// print-object, ...) in document order.
type Formatting []Attr

// Get returns the value of the named attribute.
func (f Formatting) Get(name string) (string, bool) {
	for _, a := range f {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Mark is a generic element: a name, optional text, attributes and nested
// marks. It holds ordered content such as articulation lists where only
// the element name carries meaning.
type Mark struct {
	Name       string
	Text       string
	Formatting Formatting
	Marks      []Mark
}

type Score struct {
	ID             string
	Version        string
	Work           *Work
	MovementNumber string
	MovementTitle  string
	Identification *Identification
	Defaults       *Defaults
	Credits        []*Credit
	PartList       []PartListItem
	Parts          []*Part
}

type Work struct {
	Number string
	Title  string
}

// TypedText is an element with a type (or name) attribute and text, such
// as <creator type="composer">.
type TypedText struct {
	Type string
	Text string
}

type Identification struct {
	Creators      []TypedText
	Rights        []TypedText
	Encoding      []Mark
	Source        string
	Miscellaneous []TypedText
}

type Defaults struct {
	Scaling        *Scaling
	ConcertScore   bool
	PageLayout     *PageLayout
	SystemLayout   *SystemLayout
	StaffLayouts   []StaffLayout
	Appearance     []Mark
	MusicFont      Formatting
	WordFont       Formatting
	LyricFonts     []Formatting
	LyricLanguages []Formatting
}

type Scaling struct {
	Millimeters float64
	Tenths      float64
}

type PageLayout struct {
	Height  *float64
	Width   *float64
	Margins []PageMargins
}

type PageMargins struct {
	Type   string
	Left   float64
	Right  float64
	Top    float64
	Bottom float64
}

type SystemLayout struct {
	Margins           *SystemMargins
	SystemDistance    *float64
	TopSystemDistance *float64
}

type SystemMargins struct {
	Left  float64
	Right float64
}

type StaffLayout struct {
	Number        int
	StaffDistance *float64
}

type Credit struct {
	Page  int
	Types []string
	Words []CreditWords
}

type CreditWords struct {
	Text       string
	Formatting Formatting
}

// PartListItem is either a *ScorePart or a *PartGroup. Order is display order.
type PartListItem interface {
	partListItem()
}

type ScorePart struct {
	ID                     string
	Name                   string
	NameFormatting         Formatting
	Abbreviation           string
	AbbreviationFormatting Formatting
	Groups                 []string
	Instruments            []ScoreInstrument
	MidiDevices            []MidiDevice
	MidiInstruments        []MidiInstrument
}

type PartGroup struct {
	Type         string
	Number       string
	Name         string
	Abbreviation string
	Symbol       string
	Barline      string
}

func (*ScorePart) partListItem() {}
func (*PartGroup) partListItem() {}

type ScoreInstrument struct {
	ID           string
	Name         string
	Abbreviation string
	Sound        string
}

type MidiDevice struct {
	ID   string
	Port int
	Text string
}

// MidiInstrument channel, program and unpitched note are 1-based as in the
// document; zero means absent.
type MidiInstrument struct {
	ID            string
	Channel       int
	Name          string
	Bank          int
	Program       int
	UnpitchedNote int
	Volume        *float64
	Pan           *float64
	Elevation     *float64
}

type Part struct {
	ID       string // matches a ScorePart ID
	UID      string
	Measures []*Measure
}
