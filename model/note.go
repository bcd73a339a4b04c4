package model

// Note is a pitched note, rest or unpitched note. Exactly one of Pitch, Rest
// and Unpitched is set. Duration is in the current divisions unit and is 0
// exactly when Grace is set.
type Note struct {
	ID               string
	Grace            *Grace
	Cue              bool
	Chord            bool
	Pitch            *Pitch
	Rest             *Rest
	Unpitched        *Unpitched
	Duration         int
	Ties             []Tie
	Instrument       string
	Voice            int
	Type             string
	TypeSize         string
	Dots             int
	Accidental       *Accidental
	TimeModification *TimeModification
	Stem             string
	Notehead         *Notehead
	Staff            int
	Beams            []Beam
	Notations        []Notation
	Lyrics           []Lyric
	Formatting       Formatting
}

type Grace struct {
	Slash      string
	Formatting Formatting
}

type Pitch struct {
	Step   string
	Alter  *float64
	Octave int
}

type Rest struct {
	Measure       string
	DisplayStep   string
	DisplayOctave *int
}

type Unpitched struct {
	DisplayStep   string
	DisplayOctave *int
}

type Tie struct {
	Type     string
	TimeOnly string
}

type Accidental struct {
	Value      string
	Formatting Formatting
}

type TimeModification struct {
	ActualNotes int
	NormalNotes int
	NormalType  string
	NormalDots  int
}

type Notehead struct {
	Value      string
	Formatting Formatting
}

type Beam struct {
	Number int
	Value  string
}

type NotationKind string

const (
	NotationTied           NotationKind = "tied"
	NotationSlur           NotationKind = "slur"
	NotationTuplet         NotationKind = "tuplet"
	NotationGlissando      NotationKind = "glissando"
	NotationSlide          NotationKind = "slide"
	NotationOrnaments      NotationKind = "ornaments"
	NotationTechnical      NotationKind = "technical"
	NotationArticulations  NotationKind = "articulations"
	NotationDynamics       NotationKind = "dynamics"
	NotationFermata        NotationKind = "fermata"
	NotationArpeggiate     NotationKind = "arpeggiate"
	NotationNonArpeggiate  NotationKind = "non-arpeggiate"
	NotationAccidentalMark NotationKind = "accidental-mark"
	NotationOther          NotationKind = "other-notation"
)

// IsContainer reports whether the kind holds an ordered list of Marks.
func (k NotationKind) IsContainer() bool {
	switch k {
	case NotationOrnaments, NotationTechnical, NotationArticulations, NotationDynamics:
		return true
	}
	return false
}

// Notation is one child of a <notations> element. Group is the index of the
// <notations> element it came from, so a note carrying several blocks is
// written back with the same grouping.
type Notation struct {
	Group      int
	Kind       NotationKind
	Type       string
	Number     int
	Placement  string
	Text       string
	Marks      []Mark
	Formatting Formatting
}

type Lyric struct {
	Number         string
	Name           string
	Syllabic       string
	Text           string
	TextFormatting Formatting
	Extend         *Extend
	Laughing       bool
	Humming        bool
	EndLine        bool
	EndParagraph   bool
	Formatting     Formatting
}

type Extend struct {
	Type string
}

// IsRest reports whether the note is a rest.
func (n *Note) IsRest() bool {
	return n.Rest != nil
}

// IsGrace reports whether the note is a grace note.
func (n *Note) IsGrace() bool {
	return n.Grace != nil
}

// TieTypes returns the note's tie types in order, falling back to <tied>
// notations when the note has no <tie> elements.
func (n *Note) TieTypes() []string {
	var res []string
	for _, t := range n.Ties {
		res = append(res, t.Type)
	}
	if len(res) > 0 {
		return res
	}
	for _, nt := range n.Notations {
		if nt.Kind == NotationTied {
			res = append(res, nt.Type)
		}
	}
	return res
}

// HasTie reports whether the note carries a tie of the given type.
// "continue" counts as both start and stop.
func (n *Note) HasTie(typ string) bool {
	for _, t := range n.TieTypes() {
		if t == typ || (t == "continue" && (typ == "start" || typ == "stop")) {
			return true
		}
	}
	return false
}
