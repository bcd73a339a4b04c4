package parse

import (
	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/tree"
)

func (b *builder) note(path string, n *tree.Node) *model.Note {
	note := &model.Note{ID: model.NewID(), Voice: 1, Formatting: formatting(n)}
	group := 0
	for _, c := range n.Children {
		switch c.Name {
		case "grace":
			note.Grace = &model.Grace{
				Slash:      b.attrEnum(path+"/grace", c, "slash", yesNo),
				Formatting: formatting(c, "slash"),
			}
		case "cue":
			note.Cue = true
		case "chord":
			note.Chord = true
		case "pitch":
			note.Pitch = b.pitch(path+"/pitch", c)
		case "unpitched":
			note.Unpitched = &model.Unpitched{
				DisplayStep:   b.displayStep(path+"/unpitched", c),
				DisplayOctave: b.childIntPtr(path+"/unpitched", c, "display-octave"),
			}
		case "rest":
			note.Rest = &model.Rest{
				Measure:       b.attrEnum(path+"/rest", c, "measure", yesNo),
				DisplayStep:   b.displayStep(path+"/rest", c),
				DisplayOctave: b.childIntPtr(path+"/rest", c, "display-octave"),
			}
		case "duration":
			note.Duration = b.intText(path, c, 0)
			if note.Duration < 0 {
				b.drop(path + "/duration")
				note.Duration = 0
			}
		case "tie":
			if t := b.attrEnum(path+"/tie", c, "type", startStop); t != "" {
				note.Ties = append(note.Ties, model.Tie{Type: t, TimeOnly: c.AttrValue("time-only")})
			}
		case "instrument":
			note.Instrument = c.AttrValue("id")
		case "voice":
			note.Voice = b.intText(path, c, 1)
			if note.Voice < 1 {
				note.Voice = 1
			}
		case "type":
			note.Type = b.enum(path+"/type", c.Text, noteTypes)
			note.TypeSize = c.AttrValue("size")
		case "dot":
			note.Dots++
		case "accidental":
			if v := b.enum(path+"/accidental", c.Text, accidentals); v != "" {
				note.Accidental = &model.Accidental{Value: v, Formatting: formatting(c)}
			}
		case "time-modification":
			note.TimeModification = &model.TimeModification{
				ActualNotes: b.childInt(path+"/time-modification", c, "actual-notes", 1),
				NormalNotes: b.childInt(path+"/time-modification", c, "normal-notes", 1),
				NormalType:  b.enum(path+"/time-modification/normal-type", c.ChildText("normal-type"), noteTypes),
				NormalDots:  len(c.ChildrenNamed("normal-dot")),
			}
		case "stem":
			note.Stem = b.enum(path+"/stem", c.Text, stems)
		case "notehead":
			if v := b.enum(path+"/notehead", c.Text, noteheads); v != "" {
				note.Notehead = &model.Notehead{Value: v, Formatting: formatting(c)}
			}
		case "staff":
			note.Staff = b.intText(path, c, 0)
		case "beam":
			if v := b.enum(path+"/beam", c.Text, beamValues); v != "" {
				note.Beams = append(note.Beams, model.Beam{Number: b.attrInt(path+"/beam", c, "number"), Value: v})
			}
		case "notations":
			if nts := b.notations(path+"/notations", c, group); len(nts) > 0 {
				note.Notations = append(note.Notations, nts...)
				group++
			}
		case "lyric":
			note.Lyrics = append(note.Lyrics, b.lyric(path+"/lyric", c))
		default:
			b.dropChild(path, c)
		}
	}

	if note.Pitch == nil && note.Rest == nil && note.Unpitched == nil {
		b.drop(path + "/pitch")
		note.Rest = &model.Rest{}
	}
	if note.Pitch != nil && (note.Rest != nil || note.Unpitched != nil) {
		note.Rest, note.Unpitched = nil, nil
	}
	if note.Rest != nil && note.Unpitched != nil {
		note.Unpitched = nil
	}
	if note.Grace != nil && note.Duration != 0 {
		b.drop(path + "/duration")
		note.Duration = 0
	}
	// cue notes outside grace notes carry no <tie>
	if note.Cue && note.Grace == nil && len(note.Ties) > 0 {
		b.drop(path + "/tie")
		note.Ties = nil
	}
	return note
}

func (b *builder) pitch(path string, n *tree.Node) *model.Pitch {
	step := n.Child("step").TrimmedText()
	if !model.IsStep(step) {
		b.drop(path + "/step=" + step)
		step = "C"
	}
	return &model.Pitch{
		Step:   step,
		Alter:  b.childFloatPtr(path, n, "alter"),
		Octave: b.childInt(path, n, "octave", 4),
	}
}

func (b *builder) displayStep(path string, n *tree.Node) string {
	step := n.Child("display-step").TrimmedText()
	if step != "" && !model.IsStep(step) {
		b.drop(path + "/display-step=" + step)
		return ""
	}
	return step
}

// notations extracts every child of one <notations> element, tagging each
// with the element's group index.
func (b *builder) notations(path string, n *tree.Node, group int) []model.Notation {
	var res []model.Notation
	for _, c := range n.Children {
		nt, ok := b.notation(path, c)
		if !ok {
			b.dropChild(path, c)
			continue
		}
		nt.Group = group
		res = append(res, nt)
	}
	return res
}

func (b *builder) notation(path string, n *tree.Node) (model.Notation, bool) {
	kind := model.NotationKind(n.Name)
	path += "/" + n.Name
	nt := model.Notation{Kind: kind}
	switch kind {
	case model.NotationTied:
		nt.Type = b.attrEnum(path, n, "type", tiedTypes)
	case model.NotationSlur:
		nt.Type = b.attrEnum(path, n, "type", startStopContinue)
	case model.NotationTuplet, model.NotationGlissando, model.NotationSlide:
		nt.Type = b.attrEnum(path, n, "type", startStop)
		nt.Text = n.Text
	case model.NotationOrnaments, model.NotationTechnical, model.NotationArticulations, model.NotationDynamics:
		nt.Marks = b.marks(path, n, containerMarks[n.Name])
	case model.NotationFermata:
		nt.Type = b.attrEnum(path, n, "type", fermataTypes)
		nt.Text = b.enum(path, n.Text, fermataShapes)
	case model.NotationArpeggiate:
	case model.NotationNonArpeggiate:
		nt.Type = b.attrEnum(path, n, "type", arpeggiateTypes)
	case model.NotationAccidentalMark:
		nt.Text = b.enum(path, n.Text, accidentals)
	case model.NotationOther:
		nt.Type = n.AttrValue("type")
		nt.Text = n.Text
	default:
		return nt, false
	}
	nt.Number = b.attrInt(path, n, "number")
	nt.Placement = b.attrEnum(path, n, "placement", placements)
	nt.Formatting = formatting(n, "type", "number", "placement")
	return nt, true
}

func (b *builder) lyric(path string, n *tree.Node) model.Lyric {
	l := model.Lyric{
		Number:     n.AttrValue("number"),
		Name:       n.AttrValue("name"),
		Formatting: formatting(n, "number", "name"),
	}
	for _, c := range n.Children {
		switch c.Name {
		case "syllabic":
			if l.Text != "" {
				// elided syllables keep only the first
				b.dropChild(path, c)
				continue
			}
			l.Syllabic = b.enum(path+"/syllabic", c.Text, syllabics)
		case "text":
			if l.Text != "" {
				b.dropChild(path, c)
				continue
			}
			l.Text = c.Text
			l.TextFormatting = formatting(c)
		case "extend":
			l.Extend = &model.Extend{Type: b.attrEnum(path+"/extend", c, "type", startStopContinue)}
		case "laughing":
			l.Laughing = true
		case "humming":
			l.Humming = true
		case "end-line":
			l.EndLine = true
		case "end-paragraph":
			l.EndParagraph = true
		default:
			b.dropChild(path, c)
		}
	}
	return l
}
