// Package file reads and writes scores on disk, choosing the format from the
// path's extension.
package file

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/partwise/errors"
	"github.com/jsphweid/partwise/midi"
	"github.com/jsphweid/partwise/model"
	"github.com/jsphweid/partwise/mxl"
	"github.com/jsphweid/partwise/parse"
	"github.com/jsphweid/partwise/serialize"
	"github.com/jsphweid/partwise/timeline"
)

type Format int

const (
	Unknown Format = iota
	MusicXML
	Compressed
	MIDI
)

func (f Format) String() string {
	switch f {
	case MusicXML:
		return "musicxml"
	case Compressed:
		return "mxl"
	case MIDI:
		return "midi"
	}
	return "unknown"
}

// FormatOf returns the format a path's extension names.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".musicxml", ".xml":
		return MusicXML
	case ".mxl":
		return Compressed
	case ".mid", ".midi":
		return MIDI
	}
	return Unknown
}

// ReadDocument returns the MusicXML text stored at path, unpacking
// compressed archives.
func ReadDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	switch FormatOf(path) {
	case MusicXML:
		return data, nil
	case Compressed:
		return mxl.Unpack(data)
	}
	return nil, errors.NewUnsupported("input format", filepath.Ext(path))
}

// ReadScore reads and builds the score at path.
func ReadScore(path string, opts parse.Options) (*model.Score, error) {
	data, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	s, err := parse.ParseWithOptions(data, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return s, nil
}

// WriteScore writes a score as MusicXML, MXL or MIDI depending on the
// extension. MIDI output uses the default timeline and encoder options.
func WriteScore(path string, s *model.Score) error {
	var data []byte
	var err error
	switch FormatOf(path) {
	case MusicXML:
		data = serialize.Serialize(s, serialize.Options{})
	case Compressed:
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".musicxml"
		data, err = mxl.Pack(serialize.Serialize(s, serialize.Options{}), name)
	case MIDI:
		return WriteMIDI(path, s, timeline.DefaultOptions(), midi.EncodeOptions{})
	default:
		return errors.NewUnsupported("output format", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	return write(path, data)
}

// WriteMIDI exports a score as a Standard MIDI File.
func WriteMIDI(path string, s *model.Score, topts timeline.Options, eopts midi.EncodeOptions) error {
	data, err := midi.Export(s, topts, eopts)
	if err != nil {
		return err
	}
	return write(path, data)
}

func write(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
