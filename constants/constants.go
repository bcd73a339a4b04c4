package constants

import (
	"os"
	"strconv"
)

const DefaultTicksPerQuarter = 480

const DefaultTempo = 120.0

const DefaultVelocity = 80

// MusicXML 4.0 partwise; emitted regardless of the version that was read.
const MusicXMLVersion = "4.0"

const PartwiseDoctype = `<!DOCTYPE score-partwise PUBLIC "-//Recordare//DTD MusicXML 4.0 Partwise//EN" "http://www.musicxml.org/dtds/partwise.dtd">`

const XMLDeclaration = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`

// <sound dynamics="100"> is forte, which maps to this velocity.
const ForteVelocity = 90

// MIDI channel 10 (index 9) is reserved for percussion.
const PercussionChannel = 9

func GetTicksPerQuarter() int {
	if v, err := strconv.Atoi(os.Getenv("PARTWISE_TPQ")); err == nil && v > 0 && v < 0x8000 {
		return v
	}
	return DefaultTicksPerQuarter
}

func GetDefaultTempo() float64 {
	if v, err := strconv.ParseFloat(os.Getenv("PARTWISE_TEMPO"), 64); err == nil && v > 0 {
		return v
	}
	return DefaultTempo
}

func GetDefaultVelocity() uint8 {
	if v, err := strconv.Atoi(os.Getenv("PARTWISE_VELOCITY")); err == nil && v > 0 && v <= 127 {
		return uint8(v)
	}
	return DefaultVelocity
}
