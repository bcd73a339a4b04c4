package model

import "github.com/jsphweid/partwise/util"

// typeQuarters is the length of each note type in quarter notes as num/den.
var typeQuarters = map[string][2]int64{
	"maxima":  {32, 1},
	"long":    {16, 1},
	"breve":   {8, 1},
	"whole":   {4, 1},
	"half":    {2, 1},
	"quarter": {1, 1},
	"eighth":  {1, 2},
	"16th":    {1, 4},
	"32nd":    {1, 8},
	"64th":    {1, 16},
	"128th":   {1, 32},
	"256th":   {1, 64},
	"512th":   {1, 128},
	"1024th":  {1, 256},
}

// TypeDuration computes the note's length from its type, dots and time
// modification in the given divisions. Unknown types give 0.
func (n *Note) TypeDuration(divisions int) int {
	q, ok := typeQuarters[n.Type]
	if !ok || divisions <= 0 {
		return 0
	}
	num, den := q[0], q[1]
	if n.Dots > 0 && n.Dots < 8 {
		num *= int64(1)<<(n.Dots+1) - 1
		den *= int64(1) << n.Dots
	}
	if tm := n.TimeModification; tm != nil && tm.ActualNotes > 0 && tm.NormalNotes > 0 {
		num *= int64(tm.NormalNotes)
		den *= int64(tm.ActualNotes)
	}
	return int(util.MulDivRound(int64(divisions), num, den))
}

// EffectiveDuration is the duration the note occupies: 0 for grace notes,
// the stored duration when set, otherwise the length of its type. Measure
// rests without a duration stay 0.
func (n *Note) EffectiveDuration(divisions int) int {
	if n.Grace != nil {
		return 0
	}
	if n.Duration != 0 || (n.Rest != nil && n.Rest.Measure == "yes") {
		return n.Duration
	}
	return n.TypeDuration(divisions)
}
