package model

import "math"

var stepSemitones = map[string]int{
	"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
}

// IsStep reports whether s is one of C D E F G A B.
func IsStep(s string) bool {
	_, ok := stepSemitones[s]
	return ok
}

// StepSemitone returns the semitone of a step above C.
func StepSemitone(step string) int {
	return stepSemitones[step]
}

// AlterValue returns the alteration or 0 when absent.
func (p *Pitch) AlterValue() float64 {
	if p == nil || p.Alter == nil {
		return 0
	}
	return *p.Alter
}

// MIDI returns the written key number (C4 = 60). Microtonal alters round
// to the nearest semitone.
func (p *Pitch) MIDI() int {
	return (p.Octave+1)*12 + stepSemitones[p.Step] + int(math.Round(p.AlterValue()))
}

// sharp spellings for the twelve pitch classes, flats used when the shift is
// downward
var (
	sharpSpelling = [12]struct {
		step  string
		alter int
	}{{"C", 0}, {"C", 1}, {"D", 0}, {"D", 1}, {"E", 0}, {"F", 0}, {"F", 1}, {"G", 0}, {"G", 1}, {"A", 0}, {"A", 1}, {"B", 0}}
	flatSpelling = [12]struct {
		step  string
		alter int
	}{{"C", 0}, {"D", -1}, {"D", 0}, {"E", -1}, {"E", 0}, {"F", 0}, {"G", -1}, {"G", 0}, {"A", -1}, {"A", 0}, {"B", -1}, {"B", 0}}
)

// PitchFromMIDI spells a key number. preferFlats picks flat spellings for
// black keys.
func PitchFromMIDI(key int, preferFlats bool) *Pitch {
	pc := ((key % 12) + 12) % 12
	octave := (key-pc)/12 - 1
	sp := sharpSpelling[pc]
	if preferFlats {
		sp = flatSpelling[pc]
	}
	p := &Pitch{Step: sp.step, Octave: octave}
	if sp.alter != 0 {
		a := float64(sp.alter)
		p.Alter = &a
	}
	return p
}

// Transposed returns a new pitch moved by semitones. A microtonal remainder
// of the original alter is kept.
func (p *Pitch) Transposed(semitones int) *Pitch {
	alter := p.AlterValue()
	whole := math.Round(alter)
	res := PitchFromMIDI(p.MIDI()+semitones, semitones < 0)
	if frac := alter - whole; frac != 0 {
		a := res.AlterValue() + frac
		res.Alter = &a
	}
	return res
}

func transposeStep(step string, alter *float64, semitones int) (string, *float64) {
	if !IsStep(step) {
		return step, alter
	}
	p := (&Pitch{Step: step, Alter: alter, Octave: 4}).Transposed(semitones)
	return p.Step, p.Alter
}

// transposeFifths moves a key signature by semitones along the circle of
// fifths, keeping it within -7..7.
func transposeFifths(fifths, semitones int) int {
	f := fifths + ((semitones*7)%12+12)%12
	for f > 7 {
		f -= 12
	}
	for f < -7 {
		f += 12
	}
	return f
}
