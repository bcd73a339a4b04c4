package parse

import (
	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/tree"
)

// measure makes a single pass over the measure's children. The first
// attributes block seen before any time-advancing entry becomes the
// measure's leading Attributes; later ones stay in the entry stream.
func (b *builder) measure(path string, n *tree.Node) *model.Measure {
	m := &model.Measure{
		ID:             model.NewID(),
		Number:         n.AttrValue("number"),
		Implicit:       b.attrEnum(path+"/measure", n, "implicit", yesNo),
		NonControlling: b.attrEnum(path+"/measure", n, "non-controlling", yesNo),
		Width:          b.attrFloatPtr(path+"/measure", n, "width"),
		Text:           n.AttrValue("text"),
	}
	path += "/measure[" + m.Number + "]"

	advanced := false
	position := 0
	for _, c := range n.Children {
		switch c.Name {
		case "attributes":
			a := b.attributes(path+"/attributes", c)
			if m.Attributes == nil && !advanced {
				m.Attributes = a
				m.AttributesPosition = position
			} else {
				m.Entries = append(m.Entries, a)
			}
		case "note":
			m.Entries = append(m.Entries, b.note(path+"/note", c))
			advanced = true
		case "backup":
			m.Entries = append(m.Entries, &model.Backup{Duration: b.childInt(path+"/backup", c, "duration", 0)})
			advanced = true
		case "forward":
			m.Entries = append(m.Entries, &model.Forward{
				Duration: b.childInt(path+"/forward", c, "duration", 0),
				Voice:    b.childInt(path+"/forward", c, "voice", 0),
				Staff:    b.childInt(path+"/forward", c, "staff", 0),
			})
			advanced = true
		case "direction":
			m.Entries = append(m.Entries, b.direction(path+"/direction", c))
		case "harmony":
			m.Entries = append(m.Entries, b.harmony(path+"/harmony", c))
		case "figured-bass":
			m.Entries = append(m.Entries, b.figuredBass(path+"/figured-bass", c))
		case "sound":
			m.Entries = append(m.Entries, b.sound(path+"/sound", c))
		case "barline":
			bl := b.barline(path+"/barline", c)
			bl.Position = position
			m.Barlines = append(m.Barlines, bl)
		case "print":
			pr := b.print(path+"/print", c)
			pr.Position = position
			m.Prints = append(m.Prints, pr)
		default:
			b.dropChild(path, c)
			continue
		}
		position++
	}
	return m
}

func (b *builder) attributes(path string, n *tree.Node) *model.Attributes {
	a := &model.Attributes{}
	for _, c := range n.Children {
		switch c.Name {
		case "divisions":
			a.Divisions = b.intText(path, c, 0)
			if a.Divisions < 0 {
				b.drop(path + "/divisions")
				a.Divisions = 0
			}
		case "key":
			a.Keys = append(a.Keys, b.key(path+"/key", c))
		case "time":
			a.Times = append(a.Times, b.time(path+"/time", c))
		case "staves":
			a.Staves = b.intText(path, c, 0)
		case "part-symbol":
			a.PartSymbol = c.TrimmedText()
		case "instruments":
			a.Instruments = b.intText(path, c, 0)
		case "clef":
			a.Clefs = append(a.Clefs, b.clef(path+"/clef", c))
		case "staff-details":
			a.StaffDetails = append(a.StaffDetails, b.staffDetails(path+"/staff-details", c))
		case "transpose":
			a.Transposes = append(a.Transposes, b.transpose(path+"/transpose", c))
		case "measure-style":
			a.MeasureStyles = append(a.MeasureStyles, b.measureStyle(path+"/measure-style", c))
		default:
			b.dropChild(path, c)
		}
	}
	return a
}

func (b *builder) key(path string, n *tree.Node) model.Key {
	k := model.Key{Number: b.attrInt(path, n, "number"), Formatting: formatting(n, "number")}
	for _, c := range n.Children {
		switch c.Name {
		case "cancel":
			v := b.intText(path, c, 0)
			k.Cancel = &v
			k.CancelLocation = c.AttrValue("location")
		case "fifths":
			k.Fifths = b.intText(path, c, 0)
		case "mode":
			k.Mode = c.TrimmedText()
		case "key-step":
			step := c.TrimmedText()
			if !model.IsStep(step) {
				b.drop(path + "/key-step=" + step)
				step = "C"
			}
			k.NonTraditional = append(k.NonTraditional, model.KeyStep{Step: step})
		case "key-alter":
			if len(k.NonTraditional) == 0 {
				b.dropChild(path, c)
				continue
			}
			v, _ := parseFloat(c.Text)
			k.NonTraditional[len(k.NonTraditional)-1].Alter = v
		case "key-accidental":
			if len(k.NonTraditional) == 0 {
				b.dropChild(path, c)
				continue
			}
			k.NonTraditional[len(k.NonTraditional)-1].Accidental = b.enum(path+"/key-accidental", c.Text, accidentals)
		case "key-octave":
			k.Octaves = append(k.Octaves, model.KeyOctave{
				Number: b.attrInt(path+"/key-octave", c, "number"),
				Octave: b.intText(path, c, 0),
				Cancel: b.attrEnum(path+"/key-octave", c, "cancel", yesNo),
			})
		default:
			b.dropChild(path, c)
		}
	}
	return k
}

func (b *builder) time(path string, n *tree.Node) model.Time {
	t := model.Time{
		Number:     b.attrInt(path, n, "number"),
		Symbol:     b.attrEnum(path, n, "symbol", timeSymbols),
		Formatting: formatting(n, "number", "symbol"),
	}
	for _, c := range n.Children {
		switch c.Name {
		case "beats":
			t.Signatures = append(t.Signatures, model.TimeSignature{Beats: c.TrimmedText()})
		case "beat-type":
			if len(t.Signatures) == 0 {
				b.dropChild(path, c)
				continue
			}
			t.Signatures[len(t.Signatures)-1].BeatType = c.TrimmedText()
		case "senza-misura":
			v := c.Text
			t.SenzaMisura = &v
		default:
			b.dropChild(path, c)
		}
	}
	return t
}

func (b *builder) clef(path string, n *tree.Node) model.Clef {
	c := model.Clef{
		Number:       b.attrInt(path, n, "number"),
		Sign:         b.enum(path+"/sign", n.ChildText("sign"), clefSigns),
		Line:         b.childInt(path, n, "line", 0),
		OctaveChange: b.childInt(path, n, "clef-octave-change", 0),
		Formatting:   formatting(n, "number"),
	}
	if c.Sign == "" {
		c.Sign = "G"
	}
	return c
}

func (b *builder) staffDetails(path string, n *tree.Node) model.StaffDetails {
	sd := model.StaffDetails{
		Number:     b.attrInt(path, n, "number"),
		StaffType:  b.enum(path+"/staff-type", n.ChildText("staff-type"), staffTypes),
		StaffLines: b.childIntPtr(path, n, "staff-lines"),
		Capo:       b.childInt(path, n, "capo", 0),
		StaffSize:  b.childFloatPtr(path, n, "staff-size"),
		Formatting: formatting(n, "number"),
	}
	for _, t := range n.ChildrenNamed("staff-tuning") {
		step := t.ChildText("tuning-step")
		if !model.IsStep(step) {
			b.drop(path + "/staff-tuning/tuning-step=" + step)
			step = "C"
		}
		sd.Tunings = append(sd.Tunings, model.StaffTuning{
			Line:   b.attrInt(path+"/staff-tuning", t, "line"),
			Step:   step,
			Alter:  b.childFloatPtr(path+"/staff-tuning", t, "tuning-alter"),
			Octave: b.childInt(path+"/staff-tuning", t, "tuning-octave", 4),
		})
	}
	return sd
}

func (b *builder) transpose(path string, n *tree.Node) model.Transpose {
	return model.Transpose{
		Number:       b.attrInt(path, n, "number"),
		Diatonic:     b.childIntPtr(path, n, "diatonic"),
		Chromatic:    b.childFloat(path, n, "chromatic"),
		OctaveChange: b.childInt(path, n, "octave-change", 0),
		Double:       n.Has("double"),
	}
}

func (b *builder) measureStyle(path string, n *tree.Node) model.MeasureStyle {
	ms := model.MeasureStyle{Number: b.attrInt(path, n, "number"), Formatting: formatting(n, "number")}
	for _, c := range n.Children {
		r := &model.StyleRepeat{Text: c.Text, Formatting: formatting(c)}
		switch c.Name {
		case "multiple-rest":
			ms.MultipleRest = r
		case "measure-repeat":
			ms.MeasureRepeat = r
		case "beat-repeat":
			ms.BeatRepeat = r
		case "slash":
			ms.Slash = r
		default:
			b.dropChild(path, c)
		}
	}
	return ms
}

func (b *builder) barline(path string, n *tree.Node) *model.Barline {
	bl := &model.Barline{
		Location:   b.attrEnum(path, n, "location", barlineLocations),
		Formatting: formatting(n, "location"),
	}
	for _, c := range n.Children {
		switch c.Name {
		case "bar-style":
			bl.BarStyle = b.enum(path+"/bar-style", c.Text, barStyles)
		case "segno":
			bl.Segno = true
		case "coda":
			bl.Coda = true
		case "fermata":
			bl.Fermatas = append(bl.Fermatas, model.Fermata{
				Type:  b.attrEnum(path+"/fermata", c, "type", fermataTypes),
				Shape: b.enum(path+"/fermata", c.Text, fermataShapes),
			})
		case "ending":
			bl.Ending = &model.Ending{
				Number:     c.AttrValue("number"),
				Type:       b.attrEnum(path+"/ending", c, "type", endingTypes),
				Text:       c.Text,
				Formatting: formatting(c, "number", "type"),
			}
		case "repeat":
			bl.Repeat = &model.Repeat{
				Direction: b.attrEnum(path+"/repeat", c, "direction", repeatDirections),
				Times:     b.attrInt(path+"/repeat", c, "times"),
				Winged:    c.AttrValue("winged"),
			}
		default:
			b.dropChild(path, c)
		}
	}
	return bl
}

func (b *builder) print(path string, n *tree.Node) *model.Print {
	pr := &model.Print{Formatting: formatting(n)}
	for _, c := range n.Children {
		switch c.Name {
		case "page-layout":
			pr.PageLayout = b.pageLayout(path, c)
		case "system-layout":
			pr.SystemLayout = b.systemLayout(path, c)
		case "staff-layout":
			pr.StaffLayouts = append(pr.StaffLayouts, b.staffLayout(path, c))
		case "measure-layout":
			pr.MeasureDistance = b.childFloatPtr(path+"/measure-layout", c, "measure-distance")
		case "measure-numbering":
			pr.MeasureNumbering = c.TrimmedText()
		default:
			b.dropChild(path, c)
		}
	}
	return pr
}
