package serialize

import (
	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/tree"
)

func direction(d *model.Direction) *tree.Node {
	n := tree.New("direction").SetAttrIf("placement", d.Placement).SetAttrIf("directive", d.Directive)
	withFormatting(n, d.Formatting)
	for _, dt := range d.Types {
		t := n.Add("direction-type")
		for _, item := range dt.Items {
			t.Append(directionItem(item))
		}
	}
	n.Append(offset(d.Offset))
	n.AddIntIf("voice", d.Voice)
	n.AddIntIf("staff", d.Staff)
	if d.Sound != nil {
		n.Append(sound(d.Sound))
	}
	return n
}

func directionItem(item model.DirectionItem) *tree.Node {
	n := tree.New(string(item.Kind))
	switch item.Kind {
	case model.DirectionWords, model.DirectionRehearsal, model.DirectionSymbol, model.DirectionOtherDirection:
		withFormatting(n, item.Formatting)
		n.Text = item.Text
	case model.DirectionDynamics:
		withFormatting(n, item.Formatting)
		for _, m := range item.Marks {
			n.Append(mark(m))
		}
	case model.DirectionWedge, model.DirectionDashes, model.DirectionBracket, model.DirectionPedal:
		n.SetAttrIf("type", item.Type).SetIntAttrIf("number", item.Number)
		withFormatting(n, item.Formatting)
	case model.DirectionOctaveShift:
		n.SetAttrIf("type", item.Type).SetIntAttrIf("number", item.Number).SetIntAttrIf("size", item.Size)
		withFormatting(n, item.Formatting)
	case model.DirectionMetronome:
		metronome(n, item.Metronome)
	default:
		withFormatting(n, item.Formatting)
	}
	return n
}

func metronome(n *tree.Node, m *model.Metronome) {
	if m == nil {
		return
	}
	withFormatting(n, m.Formatting)
	n.AddTextIf("beat-unit", m.BeatUnit)
	for i := 0; i < m.BeatUnitDots; i++ {
		n.AddEmpty("beat-unit-dot")
	}
	if m.BeatUnit2 != "" {
		n.AddText("beat-unit", m.BeatUnit2)
		for i := 0; i < m.BeatUnitDots2; i++ {
			n.AddEmpty("beat-unit-dot")
		}
		return
	}
	n.AddTextIf("per-minute", m.PerMinute)
}

func sound(s *model.Sound) *tree.Node {
	n := tree.New("sound")
	n.SetFloatAttr("tempo", s.Tempo)
	n.SetFloatAttr("dynamics", s.Dynamics)
	withFormatting(n, s.Formatting)
	for _, d := range s.MidiDevices {
		n.Append(midiDevice(d))
	}
	for _, mi := range s.MidiInstruments {
		n.Append(midiInstrument(mi))
	}
	n.Append(offset(s.Offset))
	return n
}

func harmony(h *model.Harmony) *tree.Node {
	n := withFormatting(tree.New("harmony"), h.Formatting)
	if h.Root != nil {
		r := n.Add("root")
		r.AddText("root-step", h.Root.Step)
		r.AddFloat("root-alter", h.Root.Alter)
	}
	n.AddTextIf("function", h.Function)
	withFormatting(n.AddText("kind", h.ChordKind), h.KindFormatting)
	if h.Inversion != nil {
		n.AddInt("inversion", *h.Inversion)
	}
	if h.Bass != nil {
		b := n.Add("bass")
		b.AddText("bass-step", h.Bass.Step)
		b.AddFloat("bass-alter", h.Bass.Alter)
	}
	for _, d := range h.Degrees {
		dn := n.Add("degree")
		dn.AddInt("degree-value", d.Value)
		dn.AddText("degree-alter", tree.FormatFloat(d.Alter))
		dn.AddText("degree-type", d.Type)
	}
	n.Append(offset(h.Offset))
	n.AddIntIf("staff", h.Staff)
	return n
}

func figuredBass(fb *model.FiguredBass) *tree.Node {
	n := withFormatting(tree.New("figured-bass"), fb.Formatting)
	for _, f := range fb.Figures {
		fn := n.Add("figure")
		fn.AddTextIf("prefix", f.Prefix)
		fn.AddTextIf("figure-number", f.Number)
		fn.AddTextIf("suffix", f.Suffix)
		if f.Extend != nil {
			fn.Add("extend").SetAttrIf("type", f.Extend.Type)
		}
	}
	n.AddIntIf("duration", fb.Duration)
	return n
}
