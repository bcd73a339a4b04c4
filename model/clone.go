package model

// Clone returns a deep copy of the score. IDs are preserved.
func (s *Score) Clone() *Score {
	if s == nil {
		return nil
	}
	res := &Score{
		ID:             s.ID,
		Version:        s.Version,
		Work:           clonePtr(s.Work),
		MovementNumber: s.MovementNumber,
		MovementTitle:  s.MovementTitle,
		Identification: cloneIdentification(s.Identification),
		Defaults:       cloneDefaults(s.Defaults),
	}
	if s.Credits != nil {
		res.Credits = make([]*Credit, len(s.Credits))
		for i, c := range s.Credits {
			res.Credits[i] = &Credit{Page: c.Page, Types: cloneSlice(c.Types), Words: cloneWords(c.Words)}
		}
	}
	if s.PartList != nil {
		res.PartList = make([]PartListItem, len(s.PartList))
		for i, item := range s.PartList {
			res.PartList[i] = clonePartListItem(item)
		}
	}
	if s.Parts != nil {
		res.Parts = make([]*Part, len(s.Parts))
		for i, p := range s.Parts {
			res.Parts[i] = p.Clone()
		}
	}
	return res
}

// Clone returns a deep copy of the part.
func (p *Part) Clone() *Part {
	res := &Part{ID: p.ID, UID: p.UID}
	if p.Measures != nil {
		res.Measures = make([]*Measure, len(p.Measures))
		for i, m := range p.Measures {
			res.Measures[i] = m.Clone()
		}
	}
	return res
}

// Clone returns a deep copy of the measure.
func (m *Measure) Clone() *Measure {
	res := &Measure{
		ID:                 m.ID,
		Number:             m.Number,
		Implicit:           m.Implicit,
		NonControlling:     m.NonControlling,
		Width:              clonePtr(m.Width),
		Text:               m.Text,
		Attributes:         cloneAttributes(m.Attributes),
		AttributesPosition: m.AttributesPosition,
	}
	if m.Entries != nil {
		res.Entries = make([]Entry, len(m.Entries))
		for i, e := range m.Entries {
			res.Entries[i] = CloneEntry(e)
		}
	}
	if m.Barlines != nil {
		res.Barlines = make([]*Barline, len(m.Barlines))
		for i, b := range m.Barlines {
			res.Barlines[i] = cloneBarline(b)
		}
	}
	if m.Prints != nil {
		res.Prints = make([]*Print, len(m.Prints))
		for i, pr := range m.Prints {
			res.Prints[i] = clonePrint(pr)
		}
	}
	return res
}

// CloneEntry deep-copies any entry kind.
func CloneEntry(e Entry) Entry {
	switch v := e.(type) {
	case *Note:
		return v.Clone()
	case *Backup:
		return clonePtr(v)
	case *Forward:
		return clonePtr(v)
	case *Direction:
		return cloneDirection(v)
	case *Harmony:
		return cloneHarmony(v)
	case *FiguredBass:
		return cloneFiguredBass(v)
	case *Sound:
		return cloneSound(v)
	case *Attributes:
		return cloneAttributes(v)
	}
	return e
}

// Clone returns a deep copy of the note.
func (n *Note) Clone() *Note {
	res := *n
	if n.Grace != nil {
		res.Grace = &Grace{Slash: n.Grace.Slash, Formatting: cloneSlice(n.Grace.Formatting)}
	}
	if n.Pitch != nil {
		res.Pitch = &Pitch{Step: n.Pitch.Step, Alter: clonePtr(n.Pitch.Alter), Octave: n.Pitch.Octave}
	}
	if n.Rest != nil {
		res.Rest = &Rest{Measure: n.Rest.Measure, DisplayStep: n.Rest.DisplayStep, DisplayOctave: clonePtr(n.Rest.DisplayOctave)}
	}
	if n.Unpitched != nil {
		res.Unpitched = &Unpitched{DisplayStep: n.Unpitched.DisplayStep, DisplayOctave: clonePtr(n.Unpitched.DisplayOctave)}
	}
	res.Ties = cloneSlice(n.Ties)
	if n.Accidental != nil {
		res.Accidental = &Accidental{Value: n.Accidental.Value, Formatting: cloneSlice(n.Accidental.Formatting)}
	}
	res.TimeModification = clonePtr(n.TimeModification)
	if n.Notehead != nil {
		res.Notehead = &Notehead{Value: n.Notehead.Value, Formatting: cloneSlice(n.Notehead.Formatting)}
	}
	res.Beams = cloneSlice(n.Beams)
	if n.Notations != nil {
		res.Notations = make([]Notation, len(n.Notations))
		for i, nt := range n.Notations {
			nt.Marks = cloneMarks(nt.Marks)
			nt.Formatting = cloneSlice(nt.Formatting)
			res.Notations[i] = nt
		}
	}
	if n.Lyrics != nil {
		res.Lyrics = make([]Lyric, len(n.Lyrics))
		for i, l := range n.Lyrics {
			l.TextFormatting = cloneSlice(l.TextFormatting)
			l.Extend = clonePtr(l.Extend)
			l.Formatting = cloneSlice(l.Formatting)
			res.Lyrics[i] = l
		}
	}
	res.Formatting = cloneSlice(n.Formatting)
	return &res
}

func cloneAttributes(a *Attributes) *Attributes {
	if a == nil {
		return nil
	}
	res := *a
	if a.Keys != nil {
		res.Keys = make([]Key, len(a.Keys))
		for i, k := range a.Keys {
			k.Cancel = clonePtr(k.Cancel)
			k.NonTraditional = cloneSlice(k.NonTraditional)
			k.Octaves = cloneSlice(k.Octaves)
			k.Formatting = cloneSlice(k.Formatting)
			res.Keys[i] = k
		}
	}
	if a.Times != nil {
		res.Times = make([]Time, len(a.Times))
		for i, t := range a.Times {
			t.Signatures = cloneSlice(t.Signatures)
			t.SenzaMisura = clonePtr(t.SenzaMisura)
			t.Formatting = cloneSlice(t.Formatting)
			res.Times[i] = t
		}
	}
	if a.Clefs != nil {
		res.Clefs = make([]Clef, len(a.Clefs))
		for i, c := range a.Clefs {
			c.Formatting = cloneSlice(c.Formatting)
			res.Clefs[i] = c
		}
	}
	if a.StaffDetails != nil {
		res.StaffDetails = make([]StaffDetails, len(a.StaffDetails))
		for i, sd := range a.StaffDetails {
			sd.StaffLines = clonePtr(sd.StaffLines)
			sd.StaffSize = clonePtr(sd.StaffSize)
			sd.Formatting = cloneSlice(sd.Formatting)
			if sd.Tunings != nil {
				tunings := make([]StaffTuning, len(sd.Tunings))
				for j, tu := range sd.Tunings {
					tu.Alter = clonePtr(tu.Alter)
					tunings[j] = tu
				}
				sd.Tunings = tunings
			}
			res.StaffDetails[i] = sd
		}
	}
	if a.Transposes != nil {
		res.Transposes = make([]Transpose, len(a.Transposes))
		for i, t := range a.Transposes {
			t.Diatonic = clonePtr(t.Diatonic)
			res.Transposes[i] = t
		}
	}
	if a.MeasureStyles != nil {
		res.MeasureStyles = make([]MeasureStyle, len(a.MeasureStyles))
		for i, ms := range a.MeasureStyles {
			ms.MultipleRest = cloneStyleRepeat(ms.MultipleRest)
			ms.MeasureRepeat = cloneStyleRepeat(ms.MeasureRepeat)
			ms.BeatRepeat = cloneStyleRepeat(ms.BeatRepeat)
			ms.Slash = cloneStyleRepeat(ms.Slash)
			ms.Formatting = cloneSlice(ms.Formatting)
			res.MeasureStyles[i] = ms
		}
	}
	return &res
}

func cloneStyleRepeat(r *StyleRepeat) *StyleRepeat {
	if r == nil {
		return nil
	}
	return &StyleRepeat{Text: r.Text, Formatting: cloneSlice(r.Formatting)}
}

func cloneDirection(d *Direction) *Direction {
	res := *d
	if d.Types != nil {
		res.Types = make([]DirectionType, len(d.Types))
		for i, dt := range d.Types {
			if dt.Items != nil {
				items := make([]DirectionItem, len(dt.Items))
				for j, it := range dt.Items {
					it.Marks = cloneMarks(it.Marks)
					if it.Metronome != nil {
						m := *it.Metronome
						m.Formatting = cloneSlice(m.Formatting)
						it.Metronome = &m
					}
					it.Formatting = cloneSlice(it.Formatting)
					items[j] = it
				}
				dt.Items = items
			}
			res.Types[i] = dt
		}
	}
	res.Offset = clonePtr(d.Offset)
	if d.Sound != nil {
		res.Sound = cloneSound(d.Sound)
	}
	res.Formatting = cloneSlice(d.Formatting)
	return &res
}

func cloneSound(s *Sound) *Sound {
	return &Sound{
		Tempo:           clonePtr(s.Tempo),
		Dynamics:        clonePtr(s.Dynamics),
		MidiDevices:     cloneSlice(s.MidiDevices),
		MidiInstruments: cloneMidiInstruments(s.MidiInstruments),
		Offset:          clonePtr(s.Offset),
		Formatting:      cloneSlice(s.Formatting),
	}
}

func cloneHarmony(h *Harmony) *Harmony {
	res := *h
	res.Root = cloneHarmonyStep(h.Root)
	res.Bass = cloneHarmonyStep(h.Bass)
	res.KindFormatting = cloneSlice(h.KindFormatting)
	res.Inversion = clonePtr(h.Inversion)
	res.Degrees = cloneSlice(h.Degrees)
	res.Offset = clonePtr(h.Offset)
	res.Formatting = cloneSlice(h.Formatting)
	return &res
}

func cloneHarmonyStep(s *HarmonyStep) *HarmonyStep {
	if s == nil {
		return nil
	}
	return &HarmonyStep{Step: s.Step, Alter: clonePtr(s.Alter)}
}

func cloneFiguredBass(f *FiguredBass) *FiguredBass {
	res := &FiguredBass{Duration: f.Duration, Formatting: cloneSlice(f.Formatting)}
	if f.Figures != nil {
		res.Figures = make([]Figure, len(f.Figures))
		for i, fig := range f.Figures {
			fig.Extend = clonePtr(fig.Extend)
			res.Figures[i] = fig
		}
	}
	return res
}

func cloneBarline(b *Barline) *Barline {
	res := *b
	res.Fermatas = cloneSlice(b.Fermatas)
	if b.Ending != nil {
		e := *b.Ending
		e.Formatting = cloneSlice(e.Formatting)
		res.Ending = &e
	}
	res.Repeat = clonePtr(b.Repeat)
	res.Formatting = cloneSlice(b.Formatting)
	return &res
}

func clonePrint(p *Print) *Print {
	return &Print{
		Position:         p.Position,
		Formatting:       cloneSlice(p.Formatting),
		PageLayout:       clonePageLayout(p.PageLayout),
		SystemLayout:     cloneSystemLayout(p.SystemLayout),
		StaffLayouts:     cloneStaffLayouts(p.StaffLayouts),
		MeasureDistance:  clonePtr(p.MeasureDistance),
		MeasureNumbering: p.MeasureNumbering,
	}
}

func cloneIdentification(id *Identification) *Identification {
	if id == nil {
		return nil
	}
	return &Identification{
		Creators:      cloneSlice(id.Creators),
		Rights:        cloneSlice(id.Rights),
		Encoding:      cloneMarks(id.Encoding),
		Source:        id.Source,
		Miscellaneous: cloneSlice(id.Miscellaneous),
	}
}

func cloneDefaults(d *Defaults) *Defaults {
	if d == nil {
		return nil
	}
	res := &Defaults{
		Scaling:      clonePtr(d.Scaling),
		ConcertScore: d.ConcertScore,
		PageLayout:   clonePageLayout(d.PageLayout),
		SystemLayout: cloneSystemLayout(d.SystemLayout),
		StaffLayouts: cloneStaffLayouts(d.StaffLayouts),
		Appearance:   cloneMarks(d.Appearance),
		MusicFont:    cloneSlice(d.MusicFont),
		WordFont:     cloneSlice(d.WordFont),
	}
	if d.LyricFonts != nil {
		res.LyricFonts = make([]Formatting, len(d.LyricFonts))
		for i, f := range d.LyricFonts {
			res.LyricFonts[i] = cloneSlice(f)
		}
	}
	if d.LyricLanguages != nil {
		res.LyricLanguages = make([]Formatting, len(d.LyricLanguages))
		for i, f := range d.LyricLanguages {
			res.LyricLanguages[i] = cloneSlice(f)
		}
	}
	return res
}

func clonePageLayout(p *PageLayout) *PageLayout {
	if p == nil {
		return nil
	}
	return &PageLayout{Height: clonePtr(p.Height), Width: clonePtr(p.Width), Margins: cloneSlice(p.Margins)}
}

func cloneSystemLayout(s *SystemLayout) *SystemLayout {
	if s == nil {
		return nil
	}
	return &SystemLayout{
		Margins:           clonePtr(s.Margins),
		SystemDistance:    clonePtr(s.SystemDistance),
		TopSystemDistance: clonePtr(s.TopSystemDistance),
	}
}

func cloneStaffLayouts(ls []StaffLayout) []StaffLayout {
	if ls == nil {
		return nil
	}
	res := make([]StaffLayout, len(ls))
	for i, l := range ls {
		res[i] = StaffLayout{Number: l.Number, StaffDistance: clonePtr(l.StaffDistance)}
	}
	return res
}

func clonePartListItem(item PartListItem) PartListItem {
	switch v := item.(type) {
	case *ScorePart:
		sp := *v
		sp.NameFormatting = cloneSlice(v.NameFormatting)
		sp.AbbreviationFormatting = cloneSlice(v.AbbreviationFormatting)
		sp.Groups = cloneSlice(v.Groups)
		sp.Instruments = cloneSlice(v.Instruments)
		sp.MidiDevices = cloneSlice(v.MidiDevices)
		sp.MidiInstruments = cloneMidiInstruments(v.MidiInstruments)
		return &sp
	case *PartGroup:
		return clonePtr(v)
	}
	return item
}

func cloneMidiInstruments(list []MidiInstrument) []MidiInstrument {
	if list == nil {
		return nil
	}
	res := make([]MidiInstrument, len(list))
	for i, mi := range list {
		mi.Volume = clonePtr(mi.Volume)
		mi.Pan = clonePtr(mi.Pan)
		mi.Elevation = clonePtr(mi.Elevation)
		res[i] = mi
	}
	return res
}

func cloneWords(words []CreditWords) []CreditWords {
	if words == nil {
		return nil
	}
	res := make([]CreditWords, len(words))
	for i, w := range words {
		res[i] = CreditWords{Text: w.Text, Formatting: cloneSlice(w.Formatting)}
	}
	return res
}

func cloneMarks(marks []Mark) []Mark {
	if marks == nil {
		return nil
	}
	res := make([]Mark, len(marks))
	for i, m := range marks {
		res[i] = Mark{Name: m.Name, Text: m.Text, Formatting: cloneSlice(m.Formatting), Marks: cloneMarks(m.Marks)}
	}
	return res
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
