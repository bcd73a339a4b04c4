package serialize

import (
	"strconv"

	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/tree"
)

func itoa(v int) string {
	return strconv.Itoa(v)
}

// partWriter carries the attribute state of one part across its measures.
type partWriter struct {
	state model.AttributeState
	// set when the part has notes before any divisions are declared; the
	// first measure then gets divisions 1
	needsDivisions bool
}

func part(p *model.Part) *tree.Node {
	n := tree.New("part").SetAttr("id", p.ID)
	w := &partWriter{needsDivisions: missingDivisions(p)}
	for i, m := range p.Measures {
		n.Append(w.measure(m, i == 0))
	}
	return n
}

func missingDivisions(p *model.Part) bool {
	var st model.AttributeState
	for _, m := range p.Measures {
		st.Apply(m.Attributes)
		for _, e := range m.Entries {
			switch v := e.(type) {
			case *model.Attributes:
				st.Apply(v)
			case *model.Note:
				return st.Divisions == 0
			}
		}
	}
	return false
}

func (w *partWriter) measure(m *model.Measure, first bool) *tree.Node {
	n := tree.New("measure").SetAttr("number", m.Number)
	n.SetAttrIf("implicit", m.Implicit)
	n.SetAttrIf("non-controlling", m.NonControlling)
	n.SetFloatAttr("width", m.Width)
	n.SetAttrIf("text", m.Text)

	inject := first && w.needsDivisions
	for _, item := range m.Layout() {
		switch {
		case item.Attributes != nil:
			a := item.Attributes
			if inject && a.Divisions == 0 {
				a = withDivisions(a)
			}
			inject = false
			w.state.Apply(a)
			n.Append(attributes(a))
		case item.Barline != nil:
			n.Append(barline(item.Barline))
		case item.Print != nil:
			n.Append(printNode(item.Print))
		default:
			if inject && m.Attributes == nil {
				a := &model.Attributes{Divisions: 1}
				w.state.Apply(a)
				n.Append(attributes(a))
				inject = false
			}
			n.Append(w.entry(item.Entry))
		}
	}
	return n
}

func withDivisions(a *model.Attributes) *model.Attributes {
	c := *a
	c.Divisions = 1
	return &c
}

func (w *partWriter) entry(e model.Entry) *tree.Node {
	switch v := e.(type) {
	case *model.Note:
		return w.note(v)
	case *model.Backup:
		n := tree.New("backup")
		n.AddInt("duration", v.Duration)
		return n
	case *model.Forward:
		n := tree.New("forward")
		n.AddInt("duration", v.Duration)
		n.AddIntIf("voice", v.Voice)
		n.AddIntIf("staff", v.Staff)
		return n
	case *model.Direction:
		return direction(v)
	case *model.Harmony:
		return harmony(v)
	case *model.FiguredBass:
		return figuredBass(v)
	case *model.Sound:
		return sound(v)
	case *model.Attributes:
		w.state.Apply(v)
		return attributes(v)
	}
	return nil
}

func attributes(a *model.Attributes) *tree.Node {
	n := tree.New("attributes")
	n.AddIntIf("divisions", a.Divisions)
	for _, k := range a.Keys {
		n.Append(key(k))
	}
	for _, t := range a.Times {
		n.Append(timeSignature(t))
	}
	n.AddIntIf("staves", a.Staves)
	n.AddTextIf("part-symbol", a.PartSymbol)
	n.AddIntIf("instruments", a.Instruments)
	for _, c := range a.Clefs {
		cn := withFormatting(n.Add("clef").SetIntAttrIf("number", c.Number), c.Formatting)
		cn.AddText("sign", c.Sign)
		cn.AddIntIf("line", c.Line)
		cn.AddIntIf("clef-octave-change", c.OctaveChange)
	}
	for _, sd := range a.StaffDetails {
		n.Append(staffDetails(sd))
	}
	for _, t := range a.Transposes {
		tn := n.Add("transpose").SetIntAttrIf("number", t.Number)
		if t.Diatonic != nil {
			tn.AddInt("diatonic", *t.Diatonic)
		}
		tn.AddText("chromatic", tree.FormatFloat(t.Chromatic))
		tn.AddIntIf("octave-change", t.OctaveChange)
		if t.Double {
			tn.AddEmpty("double")
		}
	}
	for _, ms := range a.MeasureStyles {
		n.Append(measureStyle(ms))
	}
	return n
}

func key(k model.Key) *tree.Node {
	n := withFormatting(tree.New("key").SetIntAttrIf("number", k.Number), k.Formatting)
	if len(k.NonTraditional) > 0 {
		for _, s := range k.NonTraditional {
			n.AddText("key-step", s.Step)
			n.AddText("key-alter", tree.FormatFloat(s.Alter))
			n.AddTextIf("key-accidental", s.Accidental)
		}
	} else {
		if k.Cancel != nil {
			n.AddInt("cancel", *k.Cancel).SetAttrIf("location", k.CancelLocation)
		}
		n.AddInt("fifths", k.Fifths)
		n.AddTextIf("mode", k.Mode)
	}
	for _, o := range k.Octaves {
		on := n.AddInt("key-octave", o.Octave).SetIntAttrIf("number", o.Number)
		on.SetAttrIf("cancel", o.Cancel)
	}
	return n
}

func timeSignature(t model.Time) *tree.Node {
	n := tree.New("time").SetIntAttrIf("number", t.Number).SetAttrIf("symbol", t.Symbol)
	withFormatting(n, t.Formatting)
	for _, s := range t.Signatures {
		n.AddText("beats", s.Beats)
		n.AddTextIf("beat-type", s.BeatType)
	}
	if t.SenzaMisura != nil {
		n.AddText("senza-misura", *t.SenzaMisura)
	}
	return n
}

func staffDetails(sd model.StaffDetails) *tree.Node {
	n := withFormatting(tree.New("staff-details").SetIntAttrIf("number", sd.Number), sd.Formatting)
	n.AddTextIf("staff-type", sd.StaffType)
	if sd.StaffLines != nil {
		n.AddInt("staff-lines", *sd.StaffLines)
	}
	for _, t := range sd.Tunings {
		tn := n.Add("staff-tuning").SetIntAttrIf("line", t.Line)
		tn.AddText("tuning-step", t.Step)
		tn.AddFloat("tuning-alter", t.Alter)
		tn.AddInt("tuning-octave", t.Octave)
	}
	n.AddIntIf("capo", sd.Capo)
	n.AddFloat("staff-size", sd.StaffSize)
	return n
}

func measureStyle(ms model.MeasureStyle) *tree.Node {
	n := withFormatting(tree.New("measure-style").SetIntAttrIf("number", ms.Number), ms.Formatting)
	styleRepeat(n, "multiple-rest", ms.MultipleRest)
	styleRepeat(n, "measure-repeat", ms.MeasureRepeat)
	styleRepeat(n, "beat-repeat", ms.BeatRepeat)
	styleRepeat(n, "slash", ms.Slash)
	return n
}

func styleRepeat(parent *tree.Node, name string, r *model.StyleRepeat) {
	if r == nil {
		return
	}
	withFormatting(parent.AddText(name, r.Text), r.Formatting)
}

func barline(b *model.Barline) *tree.Node {
	n := withFormatting(tree.New("barline").SetAttrIf("location", b.Location), b.Formatting)
	n.AddTextIf("bar-style", b.BarStyle)
	if b.Segno {
		n.AddEmpty("segno")
	}
	if b.Coda {
		n.AddEmpty("coda")
	}
	for _, f := range b.Fermatas {
		n.AddText("fermata", f.Shape).SetAttrIf("type", f.Type)
	}
	if b.Ending != nil {
		e := n.AddText("ending", b.Ending.Text).SetAttr("number", b.Ending.Number).SetAttrIf("type", b.Ending.Type)
		withFormatting(e, b.Ending.Formatting)
	}
	if b.Repeat != nil {
		n.Add("repeat").
			SetAttrIf("direction", b.Repeat.Direction).
			SetIntAttrIf("times", b.Repeat.Times).
			SetAttrIf("winged", b.Repeat.Winged)
	}
	return n
}

func printNode(p *model.Print) *tree.Node {
	n := withFormatting(tree.New("print"), p.Formatting)
	n.Append(pageLayout(p.PageLayout), systemLayout(p.SystemLayout))
	for _, l := range p.StaffLayouts {
		n.Append(staffLayout(l))
	}
	if p.MeasureDistance != nil {
		n.Add("measure-layout").AddFloat("measure-distance", p.MeasureDistance)
	}
	n.AddTextIf("measure-numbering", p.MeasureNumbering)
	return n
}
