package model

import "reflect"

// StripIDs returns a copy of the score with generated identifiers and the
// declared version cleared.
func StripIDs(s *Score) *Score {
	res := s.Clone()
	res.ID = ""
	res.Version = ""
	for _, p := range res.Parts {
		p.UID = ""
		for _, m := range p.Measures {
			m.ID = ""
			for _, e := range m.Entries {
				switch v := e.(type) {
				case *Note:
					v.ID = ""
				case *Direction:
					v.ID = ""
				}
			}
		}
	}
	return res
}

// Equivalent reports whether two scores hold the same music, ignoring
// identifiers and the version header.
func Equivalent(a, b *Score) bool {
	if a == nil || b == nil {
		return a == b
	}
	return reflect.DeepEqual(StripIDs(a), StripIDs(b))
}
