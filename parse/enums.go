package parse

type allowList map[string]struct{}

func newAllowList(values ...string) allowList {
	res := make(allowList, len(values))
	for _, v := range values {
		res[v] = struct{}{}
	}
	return res
}

func (a allowList) has(v string) bool {
	_, ok := a[v]
	return ok
}

var (
	noteTypes = newAllowList(
		"1024th", "512th", "256th", "128th", "64th", "32nd", "16th", "eighth",
		"quarter", "half", "whole", "breve", "long", "maxima",
	)

	accidentals = newAllowList(
		"sharp", "natural", "flat", "double-sharp", "sharp-sharp", "flat-flat",
		"natural-sharp", "natural-flat", "quarter-flat", "quarter-sharp",
		"three-quarters-flat", "three-quarters-sharp", "sharp-down", "sharp-up",
		"natural-down", "natural-up", "flat-down", "flat-up", "double-sharp-down",
		"double-sharp-up", "flat-flat-down", "flat-flat-up", "arrow-down", "arrow-up",
		"triple-sharp", "triple-flat", "slash-quarter-sharp", "slash-sharp",
		"slash-flat", "double-slash-flat", "sharp-1", "sharp-2", "sharp-3", "sharp-5",
		"flat-1", "flat-2", "flat-3", "flat-4", "sori", "koron", "other",
	)

	noteheads = newAllowList(
		"slash", "triangle", "diamond", "square", "cross", "x", "circle-x",
		"inverted triangle", "arrow down", "arrow up", "circled", "slashed",
		"back slashed", "normal", "cluster", "circle dot", "left triangle",
		"rectangle", "none", "do", "re", "mi", "fa", "fa up", "so", "la", "ti", "other",
	)

	barStyles = newAllowList(
		"regular", "dotted", "dashed", "heavy", "light-light", "light-heavy",
		"heavy-light", "heavy-heavy", "tick", "short", "none",
	)

	barlineLocations = newAllowList("right", "left", "middle")

	stems = newAllowList("down", "up", "double", "none")

	clefSigns = newAllowList("G", "F", "C", "percussion", "TAB", "jianpu", "none")

	syllabics = newAllowList("single", "begin", "end", "middle")

	beamValues = newAllowList("begin", "continue", "end", "forward hook", "backward hook")

	startStop         = newAllowList("start", "stop")
	startStopContinue = newAllowList("start", "stop", "continue")
	tiedTypes         = newAllowList("start", "stop", "continue", "let-ring")
	fermataTypes      = newAllowList("upright", "inverted")
	wedgeTypes        = newAllowList("crescendo", "diminuendo", "stop", "continue")
	pedalTypes        = newAllowList("start", "stop", "sostenuto", "change", "continue", "discontinue", "resume")
	octaveShiftTypes  = newAllowList("up", "down", "stop", "continue")
	placements        = newAllowList("above", "below")
	yesNo             = newAllowList("yes", "no")
	repeatDirections  = newAllowList("backward", "forward")
	endingTypes       = newAllowList("start", "stop", "discontinue")
	staffTypes        = newAllowList("ossia", "editorial", "cue", "alternate", "regular")
	timeSymbols       = newAllowList("common", "cut", "single-number", "note", "dotted-note", "normal")
	groupTypes        = startStop
	arpeggiateTypes   = newAllowList("top", "bottom")
	marginTypes       = newAllowList("odd", "even", "both")

	fermataShapes = newAllowList(
		"", "normal", "angled", "square", "double-angled", "double-square",
		"double-dot", "half-curve", "curlew",
	)

	articulationNames = newAllowList(
		"accent", "strong-accent", "staccato", "tenuto", "detached-legato",
		"staccatissimo", "spiccato", "scoop", "plop", "doit", "falloff",
		"breath-mark", "caesura", "stress", "unstress", "soft-accent",
		"other-articulation",
	)

	ornamentNames = newAllowList(
		"trill-mark", "turn", "delayed-turn", "inverted-turn", "delayed-inverted-turn",
		"vertical-turn", "inverted-vertical-turn", "shake", "wavy-line", "mordent",
		"inverted-mordent", "schleifer", "tremolo", "haydn", "other-ornament",
		"accidental-mark",
	)

	technicalNames = newAllowList(
		"up-bow", "down-bow", "harmonic", "open-string", "thumb-position",
		"fingering", "pluck", "double-tongue", "triple-tongue", "stopped",
		"snap-pizzicato", "fret", "string", "hammer-on", "pull-off", "bend",
		"tap", "heel", "toe", "fingernails", "hole", "arrow", "handbell",
		"brass-bend", "flip", "smear", "open", "half-muted", "harmon-mute",
		"golpe", "other-technical",
	)

	dynamicsNames = newAllowList(
		"p", "pp", "ppp", "pppp", "ppppp", "pppppp", "f", "ff", "fff", "ffff",
		"fffff", "ffffff", "mp", "mf", "sf", "sfp", "sfpp", "fp", "rf", "rfz",
		"sfz", "sffz", "fz", "n", "pf", "sfzp", "other-dynamics",
	)
)

// containerMarks maps container notation kinds to the names allowed inside.
var containerMarks = map[string]allowList{
	"articulations": articulationNames,
	"ornaments":     ornamentNames,
	"technical":     technicalNames,
	"dynamics":      dynamicsNames,
}
