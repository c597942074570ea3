package services

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"muserc/internal/domain"
	xlog "muserc/internal/log"
)

// probe lists where a helper application for one path key may be found:
// executable names resolved through PATH, plus glob patterns for well-known
// install locations per platform.
type probe struct {
	binaries []string
	globs    map[string][]string
}

var probes = map[domain.Key]probe{
	domain.KeyMusicxmlPath: {
		binaries: []string{"mscore", "musescore", "mscore4", "musescore4", "mscore3", "musescore3"},
		globs: map[string][]string{
			"darwin":  {"/Applications/MuseScore*.app/Contents/MacOS/mscore"},
			"windows": {`C:\Program Files\MuseScore*\bin\MuseScore*.exe`},
		},
	},
	domain.KeyMusescoreDirectPNGPath: {
		binaries: []string{"mscore", "musescore", "mscore4", "musescore4", "mscore3", "musescore3"},
		globs: map[string][]string{
			"darwin":  {"/Applications/MuseScore*.app/Contents/MacOS/mscore"},
			"windows": {`C:\Program Files\MuseScore*\bin\MuseScore*.exe`},
		},
	},
	domain.KeyLilypondPath: {
		binaries: []string{"lilypond"},
		globs: map[string][]string{
			"darwin":  {"/Applications/LilyPond.app/Contents/Resources/bin/lilypond"},
			"windows": {`C:\Program Files*\LilyPond*\usr\bin\lilypond.exe`},
		},
	},
	domain.KeyMidiPath: {
		binaries: []string{"timidity", "fluidsynth", "wildmidi"},
		globs: map[string][]string{
			"darwin": {"/Applications/QuickTime Player.app/Contents/MacOS/QuickTime Player"},
		},
	},
	domain.KeyPDFPath: {
		binaries: []string{"evince", "okular", "mupdf", "zathura", "xpdf"},
		globs: map[string][]string{
			"darwin": {"/System/Applications/Preview.app/Contents/MacOS/Preview"},
		},
	},
	domain.KeyGraphicsPath: {
		binaries: []string{"eog", "feh", "display", "gwenview"},
		globs: map[string][]string{
			"darwin": {"/System/Applications/Preview.app/Contents/MacOS/Preview"},
		},
	},
	domain.KeyBraillePath: {
		binaries: []string{"lou_translate"},
	},
}

// ToolDetector probes the filesystem for helper applications matching the
// path-kind preference keys.
type ToolDetector struct {
	mu          sync.Mutex
	cachePath   string
	cacheLoaded bool
	cached      []Candidate
	cachedAt    time.Time
	lookPath    func(name string) (string, error)
	glob        func(pattern string) ([]string, error)
	logger      zerolog.Logger
}

func NewToolDetector() *ToolDetector {
	path, err := detectCachePath()
	if err != nil {
		path = ""
	}
	return &ToolDetector{
		cachePath: path,
		lookPath:  exec.LookPath,
		glob:      filepath.Glob,
		logger:    xlog.WithComponent("detector"),
	}
}

func (detector *ToolDetector) Detect(ctx context.Context, req DetectRequest) (DetectResult, error) {
	start := time.Now()
	keys := req.Keys
	if len(keys) == 0 {
		keys = domain.PathKeys()
	}

	if !req.SkipCache {
		if candidates, ok := detector.fromCache(keys); ok {
			return DetectResult{
				Candidates: candidates,
				Duration:   time.Since(start),
				FromCache:  true,
			}, nil
		}
	}

	var candidates []Candidate
	for _, key := range keys {
		if err := ctx.Err(); err != nil {
			return DetectResult{}, err
		}
		candidates = append(candidates, detector.probeKey(key)...)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Key != candidates[j].Key {
			return candidates[i].Key < candidates[j].Key
		}
		return candidates[i].Path < candidates[j].Path
	})

	if len(req.Keys) == 0 {
		detector.saveCache(candidates)
	}
	return DetectResult{Candidates: candidates, Duration: time.Since(start)}, nil
}

func (detector *ToolDetector) probeKey(key domain.Key) []Candidate {
	spec, ok := probes[key]
	if !ok {
		return nil
	}
	seen := map[string]bool{}
	var found []Candidate
	for _, name := range spec.binaries {
		resolved, err := detector.lookPath(name)
		if err != nil || seen[resolved] {
			continue
		}
		seen[resolved] = true
		found = append(found, Candidate{Key: key, Path: resolved, Source: "PATH"})
	}
	for _, pattern := range spec.globs[runtime.GOOS] {
		matches, err := detector.glob(pattern)
		if err != nil {
			continue
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			found = append(found, Candidate{Key: key, Path: match, Source: "install dir"})
		}
	}
	return found
}
