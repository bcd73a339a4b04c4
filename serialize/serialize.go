// Package serialize writes a model.Score back out as MusicXML.
//
// Writing is total: any score the builder can produce is serialised without
// error. The version header is always 4.0 with the partwise DOCTYPE, and
// values the builder treated as implicit are re-derived so the output parses
// back to the same score.
package serialize

import (
	"github.com/jsphweid/partwise/constants"
	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/tree"
)

// Options controls text output.
type Options struct {
	Indent string
}

// Serialize renders a score as MusicXML text.
func Serialize(s *model.Score, opts Options) []byte {
	return tree.Write(Write(s), tree.WriteOptions{Indent: opts.Indent})
}

// Write converts a score into an ordered document.
func Write(s *model.Score) *tree.Document {
	root := tree.New("score-partwise").SetAttr("version", constants.MusicXMLVersion)
	if s.Work != nil {
		w := root.Add("work")
		w.AddTextIf("work-number", s.Work.Number)
		w.AddTextIf("work-title", s.Work.Title)
	}
	root.AddTextIf("movement-number", s.MovementNumber)
	root.AddTextIf("movement-title", s.MovementTitle)
	root.Append(identification(s.Identification), defaults(s.Defaults))
	for _, c := range s.Credits {
		root.Append(credit(c))
	}
	root.Append(partList(s.PartList))
	for _, p := range s.Parts {
		root.Append(part(p))
	}
	return &tree.Document{Root: root, Version: constants.MusicXMLVersion, HasDoctype: true}
}

func withFormatting(n *tree.Node, f model.Formatting) *tree.Node {
	for _, a := range f {
		n.SetAttr(a.Name, a.Value)
	}
	return n
}

func mark(m model.Mark) *tree.Node {
	n := withFormatting(tree.New(m.Name), m.Formatting)
	if len(m.Marks) > 0 {
		for _, c := range m.Marks {
			n.Append(mark(c))
		}
		return n
	}
	n.Text = m.Text
	return n
}

func typedText(name, attr string, t model.TypedText) *tree.Node {
	n := tree.New(name).SetAttrIf(attr, t.Type)
	n.Text = t.Text
	return n
}

func identification(id *model.Identification) *tree.Node {
	if id == nil {
		return nil
	}
	n := tree.New("identification")
	for _, c := range id.Creators {
		n.Append(typedText("creator", "type", c))
	}
	for _, r := range id.Rights {
		n.Append(typedText("rights", "type", r))
	}
	if id.Encoding != nil {
		enc := n.Add("encoding")
		for _, m := range id.Encoding {
			enc.Append(mark(m))
		}
	}
	n.AddTextIf("source", id.Source)
	if id.Miscellaneous != nil {
		misc := n.Add("miscellaneous")
		for _, f := range id.Miscellaneous {
			field := misc.Add("miscellaneous-field").SetAttr("name", f.Type)
			field.Text = f.Text
		}
	}
	return n
}

func defaults(d *model.Defaults) *tree.Node {
	if d == nil {
		return nil
	}
	n := tree.New("defaults")
	if d.Scaling != nil {
		sc := n.Add("scaling")
		sc.AddText("millimeters", tree.FormatFloat(d.Scaling.Millimeters))
		sc.AddText("tenths", tree.FormatFloat(d.Scaling.Tenths))
	}
	if d.ConcertScore {
		n.AddEmpty("concert-score")
	}
	n.Append(pageLayout(d.PageLayout), systemLayout(d.SystemLayout))
	for _, l := range d.StaffLayouts {
		n.Append(staffLayout(l))
	}
	if d.Appearance != nil {
		app := n.Add("appearance")
		for _, m := range d.Appearance {
			app.Append(mark(m))
		}
	}
	if d.MusicFont != nil {
		withFormatting(n.Add("music-font"), d.MusicFont)
	}
	if d.WordFont != nil {
		withFormatting(n.Add("word-font"), d.WordFont)
	}
	for _, f := range d.LyricFonts {
		withFormatting(n.Add("lyric-font"), f)
	}
	for _, f := range d.LyricLanguages {
		withFormatting(n.Add("lyric-language"), f)
	}
	return n
}

func pageLayout(pl *model.PageLayout) *tree.Node {
	if pl == nil {
		return nil
	}
	n := tree.New("page-layout")
	n.AddFloat("page-height", pl.Height)
	n.AddFloat("page-width", pl.Width)
	for _, m := range pl.Margins {
		pm := n.Add("page-margins").SetAttrIf("type", m.Type)
		pm.AddText("left-margin", tree.FormatFloat(m.Left))
		pm.AddText("right-margin", tree.FormatFloat(m.Right))
		pm.AddText("top-margin", tree.FormatFloat(m.Top))
		pm.AddText("bottom-margin", tree.FormatFloat(m.Bottom))
	}
	return n
}

func systemLayout(sl *model.SystemLayout) *tree.Node {
	if sl == nil {
		return nil
	}
	n := tree.New("system-layout")
	if sl.Margins != nil {
		m := n.Add("system-margins")
		m.AddText("left-margin", tree.FormatFloat(sl.Margins.Left))
		m.AddText("right-margin", tree.FormatFloat(sl.Margins.Right))
	}
	n.AddFloat("system-distance", sl.SystemDistance)
	n.AddFloat("top-system-distance", sl.TopSystemDistance)
	return n
}

func staffLayout(l model.StaffLayout) *tree.Node {
	n := tree.New("staff-layout").SetIntAttrIf("number", l.Number)
	n.AddFloat("staff-distance", l.StaffDistance)
	return n
}

func credit(c *model.Credit) *tree.Node {
	n := tree.New("credit").SetIntAttrIf("page", c.Page)
	for _, t := range c.Types {
		n.AddText("credit-type", t)
	}
	for _, w := range c.Words {
		withFormatting(n.AddText("credit-words", w.Text), w.Formatting)
	}
	return n
}

func partList(items []model.PartListItem) *tree.Node {
	n := tree.New("part-list")
	for _, item := range items {
		switch v := item.(type) {
		case *model.ScorePart:
			n.Append(scorePart(v))
		case *model.PartGroup:
			g := n.Add("part-group").SetAttrIf("type", v.Type).SetAttrIf("number", v.Number)
			g.AddTextIf("group-name", v.Name)
			g.AddTextIf("group-abbreviation", v.Abbreviation)
			g.AddTextIf("group-symbol", v.Symbol)
			g.AddTextIf("group-barline", v.Barline)
		}
	}
	return n
}

func scorePart(sp *model.ScorePart) *tree.Node {
	n := tree.New("score-part").SetAttr("id", sp.ID)
	withFormatting(n.AddText("part-name", sp.Name), sp.NameFormatting)
	if sp.Abbreviation != "" || sp.AbbreviationFormatting != nil {
		withFormatting(n.AddText("part-abbreviation", sp.Abbreviation), sp.AbbreviationFormatting)
	}
	for _, g := range sp.Groups {
		n.AddText("group", g)
	}
	for _, si := range sp.Instruments {
		in := n.Add("score-instrument").SetAttr("id", si.ID)
		in.AddText("instrument-name", si.Name)
		in.AddTextIf("instrument-abbreviation", si.Abbreviation)
		in.AddTextIf("instrument-sound", si.Sound)
	}
	for _, d := range sp.MidiDevices {
		n.Append(midiDevice(d))
	}
	for _, mi := range sp.MidiInstruments {
		n.Append(midiInstrument(mi))
	}
	return n
}

func midiDevice(d model.MidiDevice) *tree.Node {
	n := tree.New("midi-device").SetAttrIf("id", d.ID).SetIntAttrIf("port", d.Port)
	n.Text = d.Text
	return n
}

func midiInstrument(mi model.MidiInstrument) *tree.Node {
	n := tree.New("midi-instrument").SetAttr("id", mi.ID)
	n.AddIntIf("midi-channel", mi.Channel)
	n.AddTextIf("midi-name", mi.Name)
	n.AddIntIf("midi-bank", mi.Bank)
	n.AddIntIf("midi-program", mi.Program)
	n.AddIntIf("midi-unpitched", mi.UnpitchedNote)
	n.AddFloat("volume", mi.Volume)
	n.AddFloat("pan", mi.Pan)
	n.AddFloat("elevation", mi.Elevation)
	return n
}

func offset(o *model.Offset) *tree.Node {
	if o == nil {
		return nil
	}
	n := tree.New("offset").SetAttrIf("sound", o.Sound)
	n.Text = itoa(o.Value)
	return n
}
