package model

import (
	"strconv"

	"github.com/jsphweid/partwise/errors"
)

// TransposeWritten returns a copy of the score with every written pitch moved by
// semitones. Traditional key signatures and harmony roots and basses follow.
// Sounding-pitch transposes in attributes are left alone.
func TransposeWritten(s *Score, semitones int) *Score {
	res := s.Clone()
	if semitones == 0 {
		return res
	}
	for _, p := range res.Parts {
		for _, m := range p.Measures {
			transposeAttributes(m.Attributes, semitones)
			for _, e := range m.Entries {
				switch v := e.(type) {
				case *Note:
					if v.Pitch != nil {
						v.Pitch = v.Pitch.Transposed(semitones)
					}
				case *Harmony:
					transposeHarmonyStep(v.Root, semitones)
					transposeHarmonyStep(v.Bass, semitones)
				case *Attributes:
					transposeAttributes(v, semitones)
				}
			}
		}
	}
	return res
}

func transposeAttributes(a *Attributes, semitones int) {
	if a == nil {
		return
	}
	for i := range a.Keys {
		if len(a.Keys[i].NonTraditional) == 0 {
			a.Keys[i].Fifths = transposeFifths(a.Keys[i].Fifths, semitones)
		}
	}
}

func transposeHarmonyStep(h *HarmonyStep, semitones int) {
	if h == nil {
		return
	}
	h.Step, h.Alter = transposeStep(h.Step, h.Alter, semitones)
}

// AddNote returns a copy of the score with note inserted into the entry
// stream of the given measure at index. index may equal the entry count to
// append. The inserted note is a copy and gets an ID if it has none.
func AddNote(s *Score, partID string, measureIndex, index int, note *Note) (*Score, error) {
	res := s.Clone()
	m, err := res.measure(partID, measureIndex)
	if err != nil {
		return nil, err
	}
	if index < 0 || index > len(m.Entries) {
		return nil, errors.NewNotFound("entry", strconv.Itoa(index))
	}
	n := note.Clone()
	if n.ID == "" {
		n.ID = NewID()
	}
	m.shiftPositions(m.entrySlot(index), 1)
	entries := make([]Entry, 0, len(m.Entries)+1)
	entries = append(entries, m.Entries[:index]...)
	entries = append(entries, n)
	m.Entries = append(entries, m.Entries[index:]...)
	return res, nil
}

// DeleteEntry returns a copy of the score without the entry at index.
func DeleteEntry(s *Score, partID string, measureIndex, index int) (*Score, error) {
	res := s.Clone()
	m, err := res.measure(partID, measureIndex)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(m.Entries) {
		return nil, errors.NewNotFound("entry", strconv.Itoa(index))
	}
	m.shiftPositions(m.entrySlot(index)+1, -1)
	entries := make([]Entry, 0, len(m.Entries)-1)
	entries = append(entries, m.Entries[:index]...)
	m.Entries = append(entries, m.Entries[index+1:]...)
	if len(m.Entries) == 0 {
		m.Entries = nil
	}
	return res, nil
}

// SetTranspose returns a copy of the score where the part's first measure
// carries t, replacing any transpose with the same number.
func SetTranspose(s *Score, partID string, t Transpose) (*Score, error) {
	res := s.Clone()
	m, err := res.measure(partID, 0)
	if err != nil {
		return nil, err
	}
	if m.Attributes == nil {
		m.shiftPositions(0, 1)
		m.Attributes = &Attributes{}
	}
	m.Attributes.Transposes = replaceByNumber(m.Attributes.Transposes, t, func(x Transpose) int { return x.Number })
	return res, nil
}

func (s *Score) measure(partID string, index int) (*Measure, error) {
	p := s.FindPart(partID)
	if p == nil {
		return nil, errors.NewNotFound("part", partID)
	}
	if index < 0 || index >= len(p.Measures) {
		return nil, errors.NewNotFound("measure", strconv.Itoa(index))
	}
	return p.Measures[index], nil
}
