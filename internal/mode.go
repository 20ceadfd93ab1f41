package internal

// Mode selects what the tagger does with each photo.
type Mode int

const (
	// ModeGather only reads keywords and counts them.
	ModeGather Mode = iota
	// ModeUntouched skips photos that already carry the signature.
	ModeUntouched
	// ModeForce processes every photo.
	ModeForce
)

func (m Mode) String() string {
	switch m {
	case ModeGather:
		return "gather"
	case ModeUntouched:
		return "process-if-untouched"
	case ModeForce:
		return "force"
	default:
		return "unknown"
	}
}

// TagSwitches maps the tag command switch characters to modes.
var TagSwitches = map[rune]Mode{
	'g': ModeGather,
	'n': ModeUntouched,
	'f': ModeForce,
}

// ReportMode selects the directory report.
type ReportMode int

const (
	ReportMissingBest ReportMode = iota
	ReportFileTypes
	ReportDates
)

// ReportSwitches maps the report command switch characters to modes.
var ReportSwitches = map[rune]ReportMode{
	'm': ReportMissingBest,
	'f': ReportFileTypes,
	'd': ReportDates,
}
