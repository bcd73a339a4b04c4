// Package chord reduces a MIDI file to the sets of keys sounding together.
package chord

import (
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/partwise/util"
)

// Chord is the set of keys held at a tick, in ascending order.
type Chord struct {
	Tick int64
	Keys []uint8
}

// Key joins the keys with dashes, e.g. "60-64-67".
func (c Chord) Key() string {
	return CreateChordKey(c.Keys)
}

func CreateChordKey(keys []uint8) string {
	sorted := append([]uint8(nil), keys...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, k := range sorted {
		res += fmt.Sprintf("%v", k)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

type reducedEvent struct {
	tick      int64
	isNoteOff bool
	key       uint8
}

// GetChords returns the chord sounding after each tick where the set of
// held keys changes. Ticks where nothing sounds are omitted. Keys held on
// several channels at once count once.
func GetChords(s *smf.SMF) []Chord {
	var reduced []reducedEvent
	for _, events := range s.Tracks {
		var absTicks int64
		for _, event := range events {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			switch {
			case event.Message.GetNoteStart(&channel, &key, &velocity):
				reduced = append(reduced, reducedEvent{tick: absTicks, key: key})
			case event.Message.GetNoteEnd(&channel, &key):
				reduced = append(reduced, reducedEvent{tick: absTicks, isNoteOff: true, key: key})
			}
		}
	}

	// smaller ticks first, then note offs
	sort.SliceStable(reduced, func(i, j int) bool {
		if reduced[i].tick != reduced[j].tick {
			return reduced[i].tick < reduced[j].tick
		}
		return reduced[i].isNoteOff && !reduced[j].isNoteOff
	})

	tickToChord := make(map[int64]Chord)
	pressed := make(map[uint8]int)
	for _, evt := range reduced {
		if evt.isNoteOff {
			if pressed[evt.key] > 1 {
				pressed[evt.key]--
			} else {
				delete(pressed, evt.key)
			}
		} else {
			pressed[evt.key]++
		}
		tickToChord[evt.tick] = Chord{Tick: evt.tick, Keys: util.GetSortedKeys(pressed)}
	}

	var chords []Chord
	for _, tick := range util.GetSortedKeys(tickToChord) {
		if c := tickToChord[tick]; len(c.Keys) > 0 {
			chords = append(chords, c)
		}
	}
	return chords
}
