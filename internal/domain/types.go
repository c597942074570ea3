package domain

type Kind int

const (
	KindPath Kind = iota
	KindEnum
	KindBool
	KindString
	KindPathList
)

func (kind Kind) String() string {
	switch kind {
	case KindPath:
		return "path"
	case KindEnum:
		return "enum"
	case KindBool:
		return "bool"
	case KindPathList:
		return "path list"
	default:
		return "string"
	}
}

type Policy string

const (
	PolicyAllow Policy = "allow"
	PolicyDeny  Policy = "deny"
	PolicyAsk   Policy = "ask"
)

const (
	FormatMusicXML = "musicxml"
	FormatMIDI     = "midi"
	FormatLilypond = "lilypond"
	FormatBraille  = "braille"
	FormatText     = "text"
)

func Formats() []string {
	return []string{FormatBraille, FormatLilypond, FormatMIDI, FormatMusicXML, FormatText}
}
