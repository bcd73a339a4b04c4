package model

import "sort"

// Measure numbers are tokens ("1", "1a", "X2"), never parsed as integers.
//
// Attributes is the first <attributes> block that appears before any
// time-advancing entry; it defines the measure's starting state. Later blocks
// are *Attributes entries at their stream position. AttributesPosition and
// the Position fields of barlines and prints are child indexes within the
// measure element, used to put them back where they were read.
type Measure struct {
	ID                 string
	Number             string
	Implicit           string
	NonControlling     string
	Width              *float64
	Text               string
	Attributes         *Attributes
	AttributesPosition int
	Entries            []Entry
	Barlines           []*Barline
	Prints             []*Print
}

type EntryKind int

const (
	KindNote EntryKind = iota
	KindBackup
	KindForward
	KindDirection
	KindHarmony
	KindFiguredBass
	KindSound
	KindAttributes
)

func (k EntryKind) String() string {
	switch k {
	case KindNote:
		return "note"
	case KindBackup:
		return "backup"
	case KindForward:
		return "forward"
	case KindDirection:
		return "direction"
	case KindHarmony:
		return "harmony"
	case KindFiguredBass:
		return "figured-bass"
	case KindSound:
		return "sound"
	case KindAttributes:
		return "attributes"
	}
	return "unknown"
}

// Entry is one item of a measure's ordered stream.
type Entry interface {
	Kind() EntryKind
}

type Backup struct {
	Duration int
}

type Forward struct {
	Duration int
	Voice    int
	Staff    int
}

func (*Note) Kind() EntryKind        { return KindNote }
func (*Backup) Kind() EntryKind      { return KindBackup }
func (*Forward) Kind() EntryKind     { return KindForward }
func (*Direction) Kind() EntryKind   { return KindDirection }
func (*Harmony) Kind() EntryKind     { return KindHarmony }
func (*FiguredBass) Kind() EntryKind { return KindFiguredBass }
func (*Sound) Kind() EntryKind       { return KindSound }
func (*Attributes) Kind() EntryKind  { return KindAttributes }

type Barline struct {
	Position   int
	Location   string
	BarStyle   string
	Segno      bool
	Coda       bool
	Fermatas   []Fermata
	Ending     *Ending
	Repeat     *Repeat
	Formatting Formatting
}

type Fermata struct {
	Type  string
	Shape string
}

type Ending struct {
	Number     string
	Type       string
	Text       string
	Formatting Formatting
}

type Repeat struct {
	Direction string
	Times     int
	Winged    string
}

type Print struct {
	Position         int
	Formatting       Formatting
	PageLayout       *PageLayout
	SystemLayout     *SystemLayout
	StaffLayouts     []StaffLayout
	MeasureDistance  *float64
	MeasureNumbering string
}

// Item is one child of a measure in output order. Exactly one field is set;
// Attributes is only used for the measure's leading block.
type Item struct {
	Attributes *Attributes
	Barline    *Barline
	Print      *Print
	Entry      Entry
}

type fixedItem struct {
	position int
	item     Item
}

// Layout merges the leading attributes, barlines and prints back into the
// entry stream by their recorded positions. Positions beyond the end of the
// stream are placed after the last entry.
func (m *Measure) Layout() []Item {
	var fixed []fixedItem
	if m.Attributes != nil {
		fixed = append(fixed, fixedItem{m.AttributesPosition, Item{Attributes: m.Attributes}})
	}
	for _, b := range m.Barlines {
		fixed = append(fixed, fixedItem{b.Position, Item{Barline: b}})
	}
	for _, p := range m.Prints {
		fixed = append(fixed, fixedItem{p.Position, Item{Print: p}})
	}
	sort.SliceStable(fixed, func(i, j int) bool {
		return fixed[i].position < fixed[j].position
	})

	res := make([]Item, 0, len(fixed)+len(m.Entries))
	entry := 0
	for len(fixed) > 0 || entry < len(m.Entries) {
		if len(fixed) > 0 && (fixed[0].position <= len(res) || entry == len(m.Entries)) {
			res = append(res, fixed[0].item)
			fixed = fixed[1:]
			continue
		}
		res = append(res, Item{Entry: m.Entries[entry]})
		entry++
	}
	return res
}

// entrySlot returns the output position of the entry at index, or the slot
// right after the last entry when index equals the entry count.
func (m *Measure) entrySlot(index int) int {
	layout := m.Layout()
	count := 0
	last := -1
	for i, item := range layout {
		if item.Entry == nil {
			continue
		}
		if count == index {
			return i
		}
		count++
		last = i
	}
	if last >= 0 {
		return last + 1
	}
	for i, item := range layout {
		if item.Barline != nil && item.Barline.Location != "left" {
			return i
		}
	}
	return len(layout)
}

// shiftPositions moves every fixed item at or after slot by delta.
func (m *Measure) shiftPositions(slot, delta int) {
	if m.Attributes != nil && m.AttributesPosition >= slot {
		m.AttributesPosition += delta
	}
	for _, b := range m.Barlines {
		if b.Position >= slot {
			b.Position += delta
		}
	}
	for _, p := range m.Prints {
		if p.Position >= slot {
			p.Position += delta
		}
	}
}
