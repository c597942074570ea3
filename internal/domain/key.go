package domain

import "sort"

type Key string

const (
	KeyAutoDownload           Key = "autoDownload"
	KeyBraillePath            Key = "braillePath"
	KeyDebug                  Key = "debug"
	KeyDirectoryScratch       Key = "directoryScratch"
	KeyGraphicsPath           Key = "graphicsPath"
	KeyLilypondBackend        Key = "lilypondBackend"
	KeyLilypondFormat         Key = "lilypondFormat"
	KeyLilypondPath           Key = "lilypondPath"
	KeyLilypondVersion        Key = "lilypondVersion"
	KeyLocalCorpusPath        Key = "localCorpusPath"
	KeyLocalCorpusSettings    Key = "localCorpusSettings"
	KeyManualCoreCorpusPath   Key = "manualCoreCorpusPath"
	KeyMidiPath               Key = "midiPath"
	KeyMusescoreDirectPNGPath Key = "musescoreDirectPNGPath"
	KeyMusicxmlPath           Key = "musicxmlPath"
	KeyPDFPath                Key = "pdfPath"
	KeyShowFormat             Key = "showFormat"
	KeyWarnings               Key = "warnings"
	KeyWriteFormat            Key = "writeFormat"
)

// KeyInfo describes one entry of the closed preference key set.
type KeyInfo struct {
	Key         Key
	Kind        Kind
	Default     string
	Values      []string
	Description string
}

var keyTable = map[Key]KeyInfo{
	KeyAutoDownload: {
		Key:         KeyAutoDownload,
		Kind:        KindEnum,
		Default:     string(PolicyAsk),
		Values:      []string{string(PolicyAllow), string(PolicyDeny), string(PolicyAsk)},
		Description: "policy for downloading missing corpus files",
	},
	KeyBraillePath: {
		Key:         KeyBraillePath,
		Kind:        KindPath,
		Description: "braille translation application",
	},
	KeyDebug: {
		Key:         KeyDebug,
		Kind:        KindBool,
		Default:     "false",
		Description: "emit debug output",
	},
	KeyDirectoryScratch: {
		Key:         KeyDirectoryScratch,
		Kind:        KindPath,
		Description: "directory for temporary render output",
	},
	KeyGraphicsPath: {
		Key:         KeyGraphicsPath,
		Kind:        KindPath,
		Description: "image viewer application",
	},
	KeyLilypondBackend: {
		Key:         KeyLilypondBackend,
		Kind:        KindString,
		Default:     "ps",
		Description: "lilypond rendering backend",
	},
	KeyLilypondFormat: {
		Key:         KeyLilypondFormat,
		Kind:        KindEnum,
		Default:     "pdf",
		Values:      []string{"pdf", "png", "ps", "svg"},
		Description: "output format passed to lilypond",
	},
	KeyLilypondPath: {
		Key:         KeyLilypondPath,
		Kind:        KindPath,
		Description: "lilypond executable",
	},
	KeyLilypondVersion: {
		Key:         KeyLilypondVersion,
		Kind:        KindString,
		Description: "lilypond version override",
	},
	KeyLocalCorpusPath: {
		Key:         KeyLocalCorpusPath,
		Kind:        KindPath,
		Description: "path added to the default local corpus",
	},
	KeyLocalCorpusSettings: {
		Key:         KeyLocalCorpusSettings,
		Kind:        KindPathList,
		Description: "directories of the local corpus",
	},
	KeyManualCoreCorpusPath: {
		Key:         KeyManualCoreCorpusPath,
		Kind:        KindPath,
		Description: "manual override for the core corpus location",
	},
	KeyMidiPath: {
		Key:         KeyMidiPath,
		Kind:        KindPath,
		Description: "MIDI player application",
	},
	KeyMusescoreDirectPNGPath: {
		Key:         KeyMusescoreDirectPNGPath,
		Kind:        KindPath,
		Description: "MuseScore executable for direct PNG rendering",
	},
	KeyMusicxmlPath: {
		Key:         KeyMusicxmlPath,
		Kind:        KindPath,
		Description: "MusicXML notation editor",
	},
	KeyPDFPath: {
		Key:         KeyPDFPath,
		Kind:        KindPath,
		Description: "PDF viewer application",
	},
	KeyShowFormat: {
		Key:         KeyShowFormat,
		Kind:        KindEnum,
		Default:     FormatMusicXML,
		Values:      Formats(),
		Description: "default format for showing scores",
	},
	KeyWarnings: {
		Key:         KeyWarnings,
		Kind:        KindBool,
		Default:     "true",
		Description: "emit warnings",
	},
	KeyWriteFormat: {
		Key:         KeyWriteFormat,
		Kind:        KindEnum,
		Default:     FormatMusicXML,
		Values:      Formats(),
		Description: "default format for writing scores",
	},
}

// Lookup returns the table entry for key; ok is false for unknown keys.
func Lookup(key Key) (KeyInfo, bool) {
	info, ok := keyTable[key]
	return info, ok
}

func Known(key Key) bool {
	_, ok := keyTable[key]
	return ok
}

// Keys returns every known key in lexical order.
func Keys() []Key {
	keys := make([]Key, 0, len(keyTable))
	for key := range keyTable {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// PathKeys returns the keys that hold a single application or directory path.
func PathKeys() []Key {
	keys := make([]Key, 0, len(keyTable))
	for key, info := range keyTable {
		if info.Kind == KindPath {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// KeyForFormat maps an output format to the path key of the application
// responsible for it.
func KeyForFormat(format string) (Key, bool) {
	switch format {
	case FormatMusicXML:
		return KeyMusicxmlPath, true
	case FormatMIDI:
		return KeyMidiPath, true
	case FormatLilypond:
		return KeyLilypondPath, true
	case FormatBraille:
		return KeyBraillePath, true
	case "pdf":
		return KeyPDFPath, true
	case "png":
		return KeyMusescoreDirectPNGPath, true
	default:
		return "", false
	}
}
