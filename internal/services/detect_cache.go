package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"muserc/internal/domain"
)

const detectCacheVersion = 1
const detectCacheTTL = 24 * time.Hour

type detectCacheFile struct {
	Version    int               `json:"version"`
	DetectedAt int64             `json:"detectedAt"`
	Candidates []cachedCandidate `json:"candidates"`
}

type cachedCandidate struct {
	Key    string `json:"key"`
	Path   string `json:"path"`
	Source string `json:"source"`
}

func detectCachePath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "muserc", "detect.json"), nil
}

func (detector *ToolDetector) loadCache() {
	if detector.cacheLoaded || detector.cachePath == "" {
		detector.cacheLoaded = true
		return
	}
	detector.cacheLoaded = true
	data, err := os.ReadFile(detector.cachePath)
	if err != nil {
		return
	}
	var cached detectCacheFile
	if err := json.Unmarshal(data, &cached); err != nil {
		return
	}
	if cached.Version != detectCacheVersion {
		return
	}
	detector.cachedAt = time.Unix(cached.DetectedAt, 0)
	detector.cached = make([]Candidate, 0, len(cached.Candidates))
	for _, entry := range cached.Candidates {
		detector.cached = append(detector.cached, Candidate{
			Key:    domain.Key(entry.Key),
			Path:   entry.Path,
			Source: entry.Source,
		})
	}
}

// fromCache returns cached candidates for the requested keys. Every cached
// path is re-checked against the filesystem; a single stale entry discards
// the cache so the next full detection rebuilds it.
func (detector *ToolDetector) fromCache(keys []domain.Key) ([]Candidate, bool) {
	detector.mu.Lock()
	defer detector.mu.Unlock()

	detector.loadCache()
	if detector.cached == nil || time.Since(detector.cachedAt) > detectCacheTTL {
		return nil, false
	}
	wanted := map[domain.Key]bool{}
	for _, key := range keys {
		wanted[key] = true
	}
	var matched []Candidate
	for _, candidate := range detector.cached {
		if !wanted[candidate.Key] {
			continue
		}
		if _, err := os.Stat(candidate.Path); err != nil {
			detector.cached = nil
			return nil, false
		}
		matched = append(matched, candidate)
	}
	return matched, true
}

func (detector *ToolDetector) saveCache(candidates []Candidate) {
	detector.mu.Lock()
	defer detector.mu.Unlock()

	detector.cached = candidates
	detector.cachedAt = time.Now()
	if detector.cachePath == "" {
		return
	}
	entries := make([]cachedCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		entries = append(entries, cachedCandidate{
			Key:    string(candidate.Key),
			Path:   candidate.Path,
			Source: candidate.Source,
		})
	}
	file := detectCacheFile{
		Version:    detectCacheVersion,
		DetectedAt: detector.cachedAt.Unix(),
		Candidates: entries,
	}
	data, err := json.Marshal(file)
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(detector.cachePath), 0o755)
	_ = os.WriteFile(detector.cachePath, data, 0o600)
}
