// Package midi writes a flattened timeline as a Standard MIDI File and reads
// such files back for inspection.
package midi

import (
	"bytes"
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jsphweid/partwise/errors"
)

// Read parses SMF data.
func Read(data []byte) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = errors.NewMalformed("MIDI", fmt.Errorf("%v", r))
		}
	}()

	res, err := smf.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewMalformed("MIDI", err)
	}
	return res, nil
}

// ReadFile reads and parses an SMF file.
func ReadFile(path string) (*smf.SMF, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading midi file %s", path)
	}
	return Read(dat)
}
