package model

// CountNotes returns the number of notes that are not rests, across all parts.
func CountNotes(s *Score) int {
	count := 0
	for _, p := range s.Parts {
		for _, n := range Notes(p) {
			if !n.IsRest() {
				count++
			}
		}
	}
	return count
}

// Notes returns every note of the part in stream order, rests included.
func Notes(p *Part) []*Note {
	var res []*Note
	for _, m := range p.Measures {
		for _, e := range m.Entries {
			if n, ok := e.(*Note); ok {
				res = append(res, n)
			}
		}
	}
	return res
}

// FindPart returns the part with the given ID, or nil.
func (s *Score) FindPart(id string) *Part {
	for _, p := range s.Parts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ScorePartByID returns the part-list entry for a part ID, or nil.
func (s *Score) ScorePartByID(id string) *ScorePart {
	for _, item := range s.PartList {
		if sp, ok := item.(*ScorePart); ok && sp.ID == id {
			return sp
		}
	}
	return nil
}

// ScoreParts returns the score-part entries of the part list in order.
func (s *Score) ScoreParts() []*ScorePart {
	var res []*ScorePart
	for _, item := range s.PartList {
		if sp, ok := item.(*ScorePart); ok {
			res = append(res, sp)
		}
	}
	return res
}

// AttributesAt returns the attribute state in effect at the start of the
// measure at index: every earlier measure folded in full, then this
// measure's leading attributes.
func AttributesAt(p *Part, measureIndex int) *Attributes {
	var st AttributeState
	for i, m := range p.Measures {
		if i > measureIndex {
			break
		}
		if i == measureIndex {
			st.Apply(m.Attributes)
			break
		}
		st.ApplyMeasure(m)
	}
	return st.Snapshot()
}

// DivisionsAt returns the divisions in effect at the start of a measure,
// or 1 when none were declared.
func DivisionsAt(p *Part, measureIndex int) int {
	if d := AttributesAt(p, measureIndex).Divisions; d > 0 {
		return d
	}
	return 1
}
