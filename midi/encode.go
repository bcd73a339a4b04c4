package midi

import (
	"bytes"
	"sort"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/jsphweid/partwise/errors"
	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/timeline"
)

// EncodeOptions configures the file writer.
type EncodeOptions struct {
	// LyricCharset names the encoding of lyric meta events (e.g.
	// "Shift_JIS"). Empty or "utf-8" writes the text unchanged.
	LyricCharset string
}

// Export flattens a score and encodes it.
func Export(s *model.Score, topts timeline.Options, eopts EncodeOptions) ([]byte, error) {
	return Encode(timeline.Flatten(s, topts), eopts)
}

// Encode writes a format 1 file: a conductor track with the title, tempo
// and meter changes, then one track per part.
func Encode(tl *timeline.Timeline, opts EncodeOptions) ([]byte, error) {
	lyrics, err := lyricTransformer(opts.LyricCharset)
	if err != nil {
		return nil, err
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(tl.TicksPerQuarter)
	if err := s.Add(conductor(tl)); err != nil {
		return nil, errors.Wrap(err, "adding conductor track")
	}
	for _, t := range tl.Tracks {
		if err := s.Add(partTrack(t, lyrics)); err != nil {
			return nil, errors.Wrapf(err, "adding track for part %s", t.PartID)
		}
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "writing midi")
	}
	return buf.Bytes(), nil
}

func lyricTransformer(label string) (transform.Transformer, error) {
	if label == "" {
		return nil, nil
	}
	e, name := charset.Lookup(label)
	if e == nil {
		return nil, errors.NewUnsupported("lyric charset", label)
	}
	if name == "utf-8" {
		return nil, nil
	}
	return encoding.ReplaceUnsupported(e.NewEncoder()), nil
}

type timedMessage struct {
	tick int64
	msg  []byte
}

func conductor(tl *timeline.Timeline) smf.Track {
	var msgs []timedMessage
	for _, m := range tl.Meters {
		msgs = append(msgs, timedMessage{m.Tick, smf.MetaMeter(m.Num, m.Denom)})
	}
	for _, t := range tl.Tempos {
		msgs = append(msgs, timedMessage{t.Tick, smf.MetaTempo(t.BPM)})
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].tick < msgs[j].tick
	})

	var tr smf.Track
	if tl.Title != "" {
		tr.Add(0, smf.MetaTrackSequenceName(tl.Title))
	}
	add(&tr, msgs)
	tr.Close(0)
	return tr
}

func partTrack(t timeline.Track, lyrics transform.Transformer) smf.Track {
	var msgs []timedMessage
	for _, e := range t.Events {
		var msg []byte
		switch e.Kind {
		case timeline.NoteOn:
			msg = gomidi.NoteOn(t.Channel, e.Key, e.Velocity)
		case timeline.NoteOff:
			msg = gomidi.NoteOff(t.Channel, e.Key)
		case timeline.ProgramChange:
			msg = gomidi.ProgramChange(t.Channel, e.Program)
		case timeline.Lyric:
			msg = smf.MetaLyric(encodeText(e.Text, lyrics))
		default:
			continue
		}
		msgs = append(msgs, timedMessage{e.Tick, msg})
	}

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(t.Name))
	add(&tr, msgs)
	tr.Close(0)
	return tr
}

// add appends messages at absolute ticks as delta times.
func add(tr *smf.Track, msgs []timedMessage) {
	var last int64
	for _, m := range msgs {
		delta := m.tick - last
		if delta < 0 {
			delta = 0
		}
		tr.Add(uint32(delta), m.msg)
		last += delta
	}
}

func encodeText(text string, t transform.Transformer) string {
	if t == nil {
		return text
	}
	buf, _, err := transform.Bytes(t, []byte(text))
	if err != nil {
		return text
	}
	return string(buf)
}
