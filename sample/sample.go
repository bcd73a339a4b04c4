// Package sample cuts short excerpts out of MIDI files.
package sample

import (
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/partwise/errors"
)

type heldKey struct {
	channel uint8
	key     uint8
}

// Create returns the part of mf that starts at ticksOffset, moved to tick 0,
// holding at most maxNotes notes per track. Meta and controller messages
// before the offset are kept at tick 0 so the excerpt starts with the
// score's tempo and programs. Notes already sounding at the offset are left
// out, and each track ends once its last kept note is released.
func Create(mf *smf.SMF, ticksOffset uint64, maxNotes int) (*smf.SMF, error) {
	res := smf.New()
	res.TimeFormat = mf.TimeFormat

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks uint64
		var numNotes int
		lastTicks := ticksOffset
		held := make(map[heldKey]int)
		add := func(evt smf.Event) {
			at := absTicks
			if at < ticksOffset {
				at = ticksOffset
			}
			newTrack.Add(uint32(at-lastTicks), evt.Message)
			lastTicks = at
		}

	TrackEventLoop:
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			var channel, key, velocity uint8
			switch {
			case evt.Message.GetNoteStart(&channel, &key, &velocity):
				if absTicks < ticksOffset || numNotes >= maxNotes {
					continue
				}
				held[heldKey{channel, key}]++
				numNotes++
				add(evt)
			case evt.Message.GetNoteEnd(&channel, &key):
				k := heldKey{channel, key}
				if held[k] == 0 {
					continue
				}
				held[k]--
				add(evt)
				if numNotes >= maxNotes && allReleased(held) {
					break TrackEventLoop
				}
			case isEndOfTrack(evt.Message):
				break TrackEventLoop
			default:
				if absTicks >= ticksOffset && numNotes >= maxNotes {
					continue
				}
				add(evt)
			}
		}

		newTrack.Close(0)
		if err := res.Add(newTrack); err != nil {
			return nil, errors.Wrap(err, "adding excerpt track")
		}
	}

	return res, nil
}

func allReleased(held map[heldKey]int) bool {
	for _, n := range held {
		if n > 0 {
			return false
		}
	}
	return true
}

func isEndOfTrack(msg smf.Message) bool {
	return len(msg) >= 2 && msg[0] == 0xFF && msg[1] == 0x2F
}
