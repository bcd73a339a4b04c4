package serialize

import (
	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/tree"
)

func (w *partWriter) note(note *model.Note) *tree.Node {
	n := withFormatting(tree.New("note"), note.Formatting)
	if note.Grace != nil {
		withFormatting(n.Add("grace").SetAttrIf("slash", note.Grace.Slash), note.Grace.Formatting)
		if note.Cue {
			n.AddEmpty("cue")
		}
		fullNote(n, note)
		ties(n, note)
	} else {
		if note.Cue {
			n.AddEmpty("cue")
		}
		fullNote(n, note)
		n.AddInt("duration", note.EffectiveDuration(w.state.Divisions))
		if !note.Cue {
			ties(n, note)
		}
	}

	if note.Instrument != "" {
		n.Add("instrument").SetAttr("id", note.Instrument)
	}
	n.AddIntIf("voice", note.Voice)
	if note.Type != "" {
		n.AddText("type", note.Type).SetAttrIf("size", note.TypeSize)
	}
	for i := 0; i < note.Dots; i++ {
		n.AddEmpty("dot")
	}
	if note.Accidental != nil {
		withFormatting(n.AddText("accidental", note.Accidental.Value), note.Accidental.Formatting)
	}
	if tm := note.TimeModification; tm != nil {
		t := n.Add("time-modification")
		t.AddInt("actual-notes", tm.ActualNotes)
		t.AddInt("normal-notes", tm.NormalNotes)
		t.AddTextIf("normal-type", tm.NormalType)
		for i := 0; i < tm.NormalDots; i++ {
			t.AddEmpty("normal-dot")
		}
	}
	n.AddTextIf("stem", note.Stem)
	if note.Notehead != nil {
		withFormatting(n.AddText("notehead", note.Notehead.Value), note.Notehead.Formatting)
	}
	n.AddIntIf("staff", note.Staff)
	for _, b := range note.Beams {
		n.AddText("beam", b.Value).SetIntAttrIf("number", b.Number)
	}
	for _, g := range notationGroups(note.Notations) {
		n.Append(g)
	}
	for _, l := range note.Lyrics {
		n.Append(lyric(l))
	}
	return n
}

func fullNote(n *tree.Node, note *model.Note) {
	if note.Chord {
		n.AddEmpty("chord")
	}
	switch {
	case note.Pitch != nil:
		p := n.Add("pitch")
		p.AddText("step", note.Pitch.Step)
		p.AddFloat("alter", note.Pitch.Alter)
		p.AddInt("octave", note.Pitch.Octave)
	case note.Unpitched != nil:
		u := n.Add("unpitched")
		displayPosition(u, note.Unpitched.DisplayStep, note.Unpitched.DisplayOctave)
	default:
		r := n.Add("rest")
		if note.Rest != nil {
			r.SetAttrIf("measure", note.Rest.Measure)
			displayPosition(r, note.Rest.DisplayStep, note.Rest.DisplayOctave)
		}
	}
}

func displayPosition(n *tree.Node, step string, octave *int) {
	n.AddTextIf("display-step", step)
	if octave != nil {
		n.AddInt("display-octave", *octave)
	}
}

func ties(n *tree.Node, note *model.Note) {
	for _, t := range note.Ties {
		n.Add("tie").SetAttr("type", t.Type).SetAttrIf("time-only", t.TimeOnly)
	}
}

// notationGroups rebuilds the <notations> elements from each item's Group
// tag, in the order the groups first appear.
func notationGroups(items []model.Notation) []*tree.Node {
	var order []int
	groups := make(map[int]*tree.Node)
	for _, nt := range items {
		g, ok := groups[nt.Group]
		if !ok {
			g = tree.New("notations")
			groups[nt.Group] = g
			order = append(order, nt.Group)
		}
		g.Append(notation(nt))
	}
	res := make([]*tree.Node, 0, len(order))
	for _, idx := range order {
		res = append(res, groups[idx])
	}
	return res
}

func notation(nt model.Notation) *tree.Node {
	n := tree.New(string(nt.Kind)).
		SetAttrIf("type", nt.Type).
		SetIntAttrIf("number", nt.Number).
		SetAttrIf("placement", nt.Placement)
	withFormatting(n, nt.Formatting)
	if nt.Kind.IsContainer() {
		for _, m := range nt.Marks {
			n.Append(mark(m))
		}
		return n
	}
	n.Text = nt.Text
	return n
}

func lyric(l model.Lyric) *tree.Node {
	n := tree.New("lyric").SetAttrIf("number", l.Number).SetAttrIf("name", l.Name)
	withFormatting(n, l.Formatting)
	n.AddTextIf("syllabic", l.Syllabic)
	if l.Text != "" || l.TextFormatting != nil {
		withFormatting(n.AddText("text", l.Text), l.TextFormatting)
	}
	if l.Extend != nil {
		n.Add("extend").SetAttrIf("type", l.Extend.Type)
	}
	if l.Laughing {
		n.AddEmpty("laughing")
	}
	if l.Humming {
		n.AddEmpty("humming")
	}
	if l.EndLine {
		n.AddEmpty("end-line")
	}
	if l.EndParagraph {
		n.AddEmpty("end-paragraph")
	}
	return n
}
