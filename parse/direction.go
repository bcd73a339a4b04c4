package parse

import (
	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/tree"
)

func (b *builder) direction(path string, n *tree.Node) *model.Direction {
	d := &model.Direction{
		ID:         model.NewID(),
		Placement:  b.attrEnum(path, n, "placement", placements),
		Directive:  b.attrEnum(path, n, "directive", yesNo),
		Formatting: formatting(n, "placement", "directive"),
	}
	for _, c := range n.Children {
		switch c.Name {
		case "direction-type":
			d.Types = append(d.Types, b.directionType(path+"/direction-type", c))
		case "offset":
			d.Offset = b.offset(path, c)
		case "voice":
			d.Voice = b.intText(path, c, 0)
		case "staff":
			d.Staff = b.intText(path, c, 0)
		case "sound":
			d.Sound = b.sound(path+"/sound", c)
		default:
			b.dropChild(path, c)
		}
	}
	return d
}

func (b *builder) directionType(path string, n *tree.Node) model.DirectionType {
	var dt model.DirectionType
	for _, c := range n.Children {
		item, ok := b.directionItem(path+"/"+c.Name, c)
		if !ok {
			b.dropChild(path, c)
			continue
		}
		dt.Items = append(dt.Items, item)
	}
	return dt
}

func (b *builder) directionItem(path string, n *tree.Node) (model.DirectionItem, bool) {
	item := model.DirectionItem{Kind: model.DirectionKind(n.Name)}
	switch item.Kind {
	case model.DirectionWords, model.DirectionRehearsal, model.DirectionSymbol, model.DirectionOtherDirection:
		item.Text = n.Text
		item.Formatting = formatting(n)
	case model.DirectionSegno, model.DirectionCoda:
		item.Formatting = formatting(n)
	case model.DirectionDynamics:
		item.Marks = b.marks(path, n, dynamicsNames)
		item.Formatting = formatting(n)
	case model.DirectionWedge:
		b.typedItem(path, n, &item, wedgeTypes)
	case model.DirectionDashes, model.DirectionBracket:
		b.typedItem(path, n, &item, startStopContinue)
	case model.DirectionPedal:
		b.typedItem(path, n, &item, pedalTypes)
	case model.DirectionOctaveShift:
		b.typedItem(path, n, &item, octaveShiftTypes)
		item.Size = b.attrInt(path, n, "size")
		item.Formatting = formatting(n, "type", "number", "size")
	case model.DirectionMetronome:
		item.Metronome = b.metronome(path, n)
	default:
		return item, false
	}
	return item, true
}

func (b *builder) typedItem(path string, n *tree.Node, item *model.DirectionItem, allowed allowList) {
	item.Type = b.attrEnum(path, n, "type", allowed)
	item.Number = b.attrInt(path, n, "number")
	item.Formatting = formatting(n, "type", "number")
}

// metronome reads the beat-unit / per-minute form, and the beat-unit =
// beat-unit form used for metric modulations.
func (b *builder) metronome(path string, n *tree.Node) *model.Metronome {
	m := &model.Metronome{Formatting: formatting(n)}
	units := 0
	for _, c := range n.Children {
		switch c.Name {
		case "beat-unit":
			if v := b.enum(path+"/beat-unit", c.Text, noteTypes); v != "" {
				units++
				if units == 1 {
					m.BeatUnit = v
				} else {
					m.BeatUnit2 = v
				}
			}
		case "beat-unit-dot":
			if units <= 1 {
				m.BeatUnitDots++
			} else {
				m.BeatUnitDots2++
			}
		case "per-minute":
			m.PerMinute = c.TrimmedText()
		default:
			b.dropChild(path, c)
		}
	}
	return m
}

func (b *builder) sound(path string, n *tree.Node) *model.Sound {
	s := &model.Sound{
		Tempo:      b.attrFloatPtr(path, n, "tempo"),
		Dynamics:   b.attrFloatPtr(path, n, "dynamics"),
		Formatting: formatting(n, "tempo", "dynamics"),
	}
	for _, c := range n.Children {
		switch c.Name {
		case "midi-device":
			s.MidiDevices = append(s.MidiDevices, b.midiDevice(path, c))
		case "midi-instrument":
			s.MidiInstruments = append(s.MidiInstruments, b.midiInstrument(path, c))
		case "offset":
			s.Offset = b.offset(path, c)
		default:
			b.dropChild(path, c)
		}
	}
	return s
}

func (b *builder) harmony(path string, n *tree.Node) *model.Harmony {
	h := &model.Harmony{Formatting: formatting(n)}
	for _, c := range n.Children {
		switch c.Name {
		case "root":
			h.Root = b.harmonyStep(path+"/root", c, "root-step", "root-alter")
		case "function":
			h.Function = c.Text
		case "kind":
			h.ChordKind = c.TrimmedText()
			h.KindFormatting = formatting(c)
		case "inversion":
			v := b.intText(path, c, 0)
			h.Inversion = &v
		case "bass":
			h.Bass = b.harmonyStep(path+"/bass", c, "bass-step", "bass-alter")
		case "degree":
			h.Degrees = append(h.Degrees, model.Degree{
				Value: b.childInt(path+"/degree", c, "degree-value", 0),
				Alter: b.childFloat(path+"/degree", c, "degree-alter"),
				Type:  c.Child("degree-type").TrimmedText(),
			})
		case "offset":
			h.Offset = b.offset(path, c)
		case "staff":
			h.Staff = b.intText(path, c, 0)
		default:
			b.dropChild(path, c)
		}
	}
	return h
}

func (b *builder) harmonyStep(path string, n *tree.Node, stepName, alterName string) *model.HarmonyStep {
	step := n.Child(stepName).TrimmedText()
	if !model.IsStep(step) {
		b.drop(path + "/" + stepName + "=" + step)
		step = "C"
	}
	return &model.HarmonyStep{Step: step, Alter: b.childFloatPtr(path, n, alterName)}
}

func (b *builder) figuredBass(path string, n *tree.Node) *model.FiguredBass {
	fb := &model.FiguredBass{Formatting: formatting(n)}
	for _, c := range n.Children {
		switch c.Name {
		case "figure":
			f := model.Figure{
				Prefix: c.Child("prefix").TrimmedText(),
				Number: c.Child("figure-number").TrimmedText(),
				Suffix: c.Child("suffix").TrimmedText(),
			}
			if e := c.Child("extend"); e != nil {
				f.Extend = &model.Extend{Type: b.attrEnum(path+"/figure/extend", e, "type", startStopContinue)}
			}
			fb.Figures = append(fb.Figures, f)
		case "duration":
			fb.Duration = b.intText(path, c, 0)
		default:
			b.dropChild(path, c)
		}
	}
	return fb
}
