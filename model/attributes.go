package model

// Attributes is an <attributes> block: the leading one on a Measure or a
// mid-measure change in the entry stream.
type Attributes struct {
	Divisions     int
	Keys          []Key
	Times         []Time
	Staves        int
	PartSymbol    string
	Instruments   int
	Clefs         []Clef
	StaffDetails  []StaffDetails
	Transposes    []Transpose
	MeasureStyles []MeasureStyle
}

// Key is traditional (Fifths/Mode/Cancel) unless NonTraditional is set.
type Key struct {
	Number         int
	Cancel         *int
	CancelLocation string
	Fifths         int
	Mode           string
	NonTraditional []KeyStep
	Octaves        []KeyOctave
	Formatting     Formatting
}

type KeyStep struct {
	Step       string
	Alter      float64
	Accidental string
}

type KeyOctave struct {
	Number int
	Octave int
	Cancel string
}

type Time struct {
	Number      int
	Symbol      string
	Signatures  []TimeSignature
	SenzaMisura *string
	Formatting  Formatting
}

// TimeSignature beats may be composite ("3+2").
type TimeSignature struct {
	Beats    string
	BeatType string
}

type Clef struct {
	Number       int
	Sign         string
	Line         int
	OctaveChange int
	Formatting   Formatting
}

type StaffDetails struct {
	Number     int
	StaffType  string
	StaffLines *int
	Tunings    []StaffTuning
	Capo       int
	StaffSize  *float64
	Formatting Formatting
}

type StaffTuning struct {
	Line   int
	Step   string
	Alter  *float64
	Octave int
}

// Transpose changes sounding pitch only; written pitch is untouched.
type Transpose struct {
	Number       int
	Diatonic     *int
	Chromatic    float64
	OctaveChange int
	Double       bool
}

// Semitones is the sounding offset from written pitch.
func (t Transpose) Semitones() int {
	c := t.Chromatic
	if c < 0 {
		c -= 0.5
	} else {
		c += 0.5
	}
	return int(c) + 12*t.OctaveChange
}

type MeasureStyle struct {
	Number        int
	MultipleRest  *StyleRepeat
	MeasureRepeat *StyleRepeat
	BeatRepeat    *StyleRepeat
	Slash         *StyleRepeat
	Formatting    Formatting
}

// StyleRepeat is one measure-style payload: its text (a count for
// multiple-rest and measure-repeat) plus attributes such as type and slashes.
type StyleRepeat struct {
	Text       string
	Formatting Formatting
}

// AttributeState is the running result of applying attribute blocks in
// stream order. Builder-time and query-time lookups both fold with it.
type AttributeState struct {
	Divisions    int
	Keys         []Key
	Times        []Time
	Staves       int
	Clefs        []Clef
	Transposes   []Transpose
	StaffDetails []StaffDetails
}

// Apply folds one attributes block into the state. Keys and times replace
// the previous set; clefs, transposes and staff details replace by number.
func (st *AttributeState) Apply(a *Attributes) {
	if a == nil {
		return
	}
	if a.Divisions > 0 {
		st.Divisions = a.Divisions
	}
	if len(a.Keys) > 0 {
		st.Keys = append([]Key(nil), a.Keys...)
	}
	if len(a.Times) > 0 {
		st.Times = append([]Time(nil), a.Times...)
	}
	if a.Staves > 0 {
		st.Staves = a.Staves
	}
	for _, c := range a.Clefs {
		st.Clefs = replaceByNumber(st.Clefs, c, func(x Clef) int { return x.Number })
	}
	for _, t := range a.Transposes {
		st.Transposes = replaceByNumber(st.Transposes, t, func(x Transpose) int { return x.Number })
	}
	for _, sd := range a.StaffDetails {
		st.StaffDetails = replaceByNumber(st.StaffDetails, sd, func(x StaffDetails) int { return x.Number })
	}
}

// ApplyMeasure folds the measure's leading attributes and every attributes
// entry, in stream order.
func (st *AttributeState) ApplyMeasure(m *Measure) {
	st.Apply(m.Attributes)
	for _, e := range m.Entries {
		if a, ok := e.(*Attributes); ok {
			st.Apply(a)
		}
	}
}

// TransposeFor returns the transpose in effect for a staff (1-based; 0 is
// read as staff 1). A numbered transpose applies only to its own staff and
// an unnumbered one to every staff.
func (st *AttributeState) TransposeFor(staff int) (Transpose, bool) {
	if staff == 0 {
		staff = 1
	}
	var fallback *Transpose
	for i := range st.Transposes {
		t := st.Transposes[i]
		if t.Number == staff {
			return t, true
		}
		if t.Number == 0 && fallback == nil {
			fallback = &st.Transposes[i]
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Transpose{}, false
}

// Snapshot returns the state as a standalone Attributes value.
func (st *AttributeState) Snapshot() *Attributes {
	return cloneAttributes(&Attributes{
		Divisions:    st.Divisions,
		Keys:         st.Keys,
		Times:        st.Times,
		Staves:       st.Staves,
		Clefs:        st.Clefs,
		Transposes:   st.Transposes,
		StaffDetails: st.StaffDetails,
	})
}

func replaceByNumber[T any](list []T, v T, number func(T) int) []T {
	res := make([]T, 0, len(list)+1)
	replaced := false
	for _, x := range list {
		if number(x) == number(v) {
			res = append(res, v)
			replaced = true
			continue
		}
		res = append(res, x)
	}
	if !replaced {
		res = append(res, v)
	}
	return res
}
