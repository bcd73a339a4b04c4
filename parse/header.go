package parse

import (
	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/tree"
)

func typedText(n *tree.Node, attr string) model.TypedText {
	return model.TypedText{Type: n.AttrValue(attr), Text: n.Text}
}

func (b *builder) identification(path string, n *tree.Node) *model.Identification {
	id := &model.Identification{}
	for _, c := range n.Children {
		switch c.Name {
		case "creator":
			id.Creators = append(id.Creators, typedText(c, "type"))
		case "rights":
			id.Rights = append(id.Rights, typedText(c, "type"))
		case "encoding":
			id.Encoding = append(id.Encoding, b.marks(path+"/encoding", c, nil)...)
		case "source":
			id.Source = c.Text
		case "miscellaneous":
			for _, f := range c.ChildrenNamed("miscellaneous-field") {
				id.Miscellaneous = append(id.Miscellaneous, typedText(f, "name"))
			}
		default:
			b.dropChild(path, c)
		}
	}
	return id
}

func (b *builder) defaults(path string, n *tree.Node) *model.Defaults {
	d := &model.Defaults{}
	for _, c := range n.Children {
		switch c.Name {
		case "scaling":
			d.Scaling = &model.Scaling{
				Millimeters: b.childFloat(path+"/scaling", c, "millimeters"),
				Tenths:      b.childFloat(path+"/scaling", c, "tenths"),
			}
		case "concert-score":
			d.ConcertScore = true
		case "page-layout":
			d.PageLayout = b.pageLayout(path, c)
		case "system-layout":
			d.SystemLayout = b.systemLayout(path, c)
		case "staff-layout":
			d.StaffLayouts = append(d.StaffLayouts, b.staffLayout(path, c))
		case "appearance":
			d.Appearance = append(d.Appearance, b.marks(path+"/appearance", c, nil)...)
		case "music-font":
			d.MusicFont = formatting(c)
		case "word-font":
			d.WordFont = formatting(c)
		case "lyric-font":
			d.LyricFonts = append(d.LyricFonts, formatting(c))
		case "lyric-language":
			d.LyricLanguages = append(d.LyricLanguages, formatting(c))
		default:
			b.dropChild(path, c)
		}
	}
	return d
}

func (b *builder) pageLayout(path string, n *tree.Node) *model.PageLayout {
	path += "/page-layout"
	pl := &model.PageLayout{
		Height: b.childFloatPtr(path, n, "page-height"),
		Width:  b.childFloatPtr(path, n, "page-width"),
	}
	for _, m := range n.ChildrenNamed("page-margins") {
		pl.Margins = append(pl.Margins, model.PageMargins{
			Type:   b.enum(path+"/page-margins/@type", m.AttrValue("type"), marginTypes),
			Left:   b.childFloat(path, m, "left-margin"),
			Right:  b.childFloat(path, m, "right-margin"),
			Top:    b.childFloat(path, m, "top-margin"),
			Bottom: b.childFloat(path, m, "bottom-margin"),
		})
	}
	return pl
}

func (b *builder) systemLayout(path string, n *tree.Node) *model.SystemLayout {
	path += "/system-layout"
	sl := &model.SystemLayout{
		SystemDistance:    b.childFloatPtr(path, n, "system-distance"),
		TopSystemDistance: b.childFloatPtr(path, n, "top-system-distance"),
	}
	if m := n.Child("system-margins"); m != nil {
		sl.Margins = &model.SystemMargins{
			Left:  b.childFloat(path, m, "left-margin"),
			Right: b.childFloat(path, m, "right-margin"),
		}
	}
	return sl
}

func (b *builder) staffLayout(path string, n *tree.Node) model.StaffLayout {
	return model.StaffLayout{
		Number:        b.attrInt(path+"/staff-layout", n, "number"),
		StaffDistance: b.childFloatPtr(path+"/staff-layout", n, "staff-distance"),
	}
}

func (b *builder) credit(path string, n *tree.Node) *model.Credit {
	cr := &model.Credit{Page: b.attrInt(path, n, "page")}
	for _, c := range n.Children {
		switch c.Name {
		case "credit-type":
			cr.Types = append(cr.Types, c.Text)
		case "credit-words":
			cr.Words = append(cr.Words, model.CreditWords{Text: c.Text, Formatting: formatting(c)})
		default:
			b.dropChild(path, c)
		}
	}
	return cr
}

func (b *builder) partList(path string, n *tree.Node) []model.PartListItem {
	var res []model.PartListItem
	for _, c := range n.Children {
		switch c.Name {
		case "score-part":
			res = append(res, b.scorePart(path+"/score-part", c))
		case "part-group":
			res = append(res, &model.PartGroup{
				Type:         b.attrEnum(path+"/part-group", c, "type", groupTypes),
				Number:       c.AttrValue("number"),
				Name:         c.ChildText("group-name"),
				Abbreviation: c.ChildText("group-abbreviation"),
				Symbol:       c.Child("group-symbol").TrimmedText(),
				Barline:      c.Child("group-barline").TrimmedText(),
			})
		default:
			b.dropChild(path, c)
		}
	}
	return res
}

func (b *builder) scorePart(path string, n *tree.Node) *model.ScorePart {
	sp := &model.ScorePart{ID: n.AttrValue("id")}
	path += "[" + sp.ID + "]"
	for _, c := range n.Children {
		switch c.Name {
		case "part-name":
			sp.Name = c.Text
			sp.NameFormatting = formatting(c)
		case "part-abbreviation":
			sp.Abbreviation = c.Text
			sp.AbbreviationFormatting = formatting(c)
		case "group":
			sp.Groups = append(sp.Groups, c.Text)
		case "score-instrument":
			sp.Instruments = append(sp.Instruments, model.ScoreInstrument{
				ID:           c.AttrValue("id"),
				Name:         c.ChildText("instrument-name"),
				Abbreviation: c.ChildText("instrument-abbreviation"),
				Sound:        c.Child("instrument-sound").TrimmedText(),
			})
		case "midi-device":
			sp.MidiDevices = append(sp.MidiDevices, b.midiDevice(path, c))
		case "midi-instrument":
			sp.MidiInstruments = append(sp.MidiInstruments, b.midiInstrument(path, c))
		default:
			b.dropChild(path, c)
		}
	}
	return sp
}

func (b *builder) midiDevice(path string, n *tree.Node) model.MidiDevice {
	return model.MidiDevice{
		ID:   n.AttrValue("id"),
		Port: b.attrInt(path+"/midi-device", n, "port"),
		Text: n.Text,
	}
}

func (b *builder) midiInstrument(path string, n *tree.Node) model.MidiInstrument {
	path += "/midi-instrument"
	mi := model.MidiInstrument{
		ID:            n.AttrValue("id"),
		Channel:       b.childInt(path, n, "midi-channel", 0),
		Name:          n.ChildText("midi-name"),
		Bank:          b.childInt(path, n, "midi-bank", 0),
		Program:       b.childInt(path, n, "midi-program", 0),
		UnpitchedNote: b.childInt(path, n, "midi-unpitched", 0),
		Volume:        b.childFloatPtr(path, n, "volume"),
		Pan:           b.childFloatPtr(path, n, "pan"),
		Elevation:     b.childFloatPtr(path, n, "elevation"),
	}
	if mi.Channel < 0 || mi.Channel > 16 {
		b.drop(path + "/midi-channel")
		mi.Channel = 0
	}
	if mi.Program < 0 || mi.Program > 128 {
		b.drop(path + "/midi-program")
		mi.Program = 0
	}
	if mi.UnpitchedNote < 0 || mi.UnpitchedNote > 128 {
		b.drop(path + "/midi-unpitched")
		mi.UnpitchedNote = 0
	}
	return mi
}
