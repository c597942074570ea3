package settings

import (
	"errors"
	"fmt"
	"strings"

	"muserc/internal/domain"
)

var (
	ErrUnknownKey   = errors.New("unknown preference key")
	ErrInvalidValue = errors.New("invalid preference value")
)

// Values holds one settings record. Keys that are not explicitly set resolve
// to their table defaults and are not written to disk.
type Values struct {
	scalars map[domain.Key]string
	corpus  []string
}

func NewValues() Values {
	return Values{scalars: map[domain.Key]string{}}
}

// Value resolves key to its explicit value or its default. Unknown keys
// resolve to the empty string; callers that need the distinction use Get.
func (values Values) Value(key domain.Key) string {
	if key == domain.KeyLocalCorpusSettings {
		return strings.Join(values.corpus, ", ")
	}
	if explicit, ok := values.scalars[key]; ok {
		return explicit
	}
	info, ok := domain.Lookup(key)
	if !ok {
		return ""
	}
	return info.Default
}

// Get resolves key like Value but rejects unknown keys.
func (values Values) Get(key domain.Key) (string, error) {
	if !domain.Known(key) {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return values.Value(key), nil
}

// Explicit reports whether key was set by the user rather than defaulted.
func (values Values) Explicit(key domain.Key) bool {
	if key == domain.KeyLocalCorpusSettings {
		return len(values.corpus) > 0
	}
	_, ok := values.scalars[key]
	return ok
}

// Set validates and normalizes value for key and records it.
func (values *Values) Set(key domain.Key, value string) error {
	info, ok := domain.Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if info.Kind == domain.KindPathList {
		values.corpus = splitPathList(value)
		return nil
	}
	normalized, err := normalize(info, value)
	if err != nil {
		return err
	}
	if values.scalars == nil {
		values.scalars = map[domain.Key]string{}
	}
	values.scalars[key] = normalized
	return nil
}

// Unset removes the explicit value for key so it resolves to its default.
func (values *Values) Unset(key domain.Key) error {
	if !domain.Known(key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if key == domain.KeyLocalCorpusSettings {
		values.corpus = nil
		return nil
	}
	delete(values.scalars, key)
	return nil
}

// CorpusPaths returns the local corpus directories.
func (values Values) CorpusPaths() []string {
	return append([]string{}, values.corpus...)
}

func (values Values) Clone() Values {
	scalars := make(map[domain.Key]string, len(values.scalars))
	for key, value := range values.scalars {
		scalars[key] = value
	}
	clone := Values{scalars: scalars}
	if len(values.corpus) > 0 {
		clone.corpus = append([]string{}, values.corpus...)
	}
	return clone
}

func normalize(info domain.KeyInfo, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch info.Kind {
	case domain.KindEnum:
		for _, allowed := range info.Values {
			if value == allowed {
				return value, nil
			}
		}
		return "", fmt.Errorf("%w: %q for %s (expected one of %s)",
			ErrInvalidValue, value, info.Key, strings.Join(info.Values, "|"))
	case domain.KindBool:
		switch strings.ToLower(value) {
		case "true", "yes", "on", "1":
			return "true", nil
		case "false", "no", "off", "0":
			return "false", nil
		}
		return "", fmt.Errorf("%w: %q for %s (expected true or false)",
			ErrInvalidValue, value, info.Key)
	default:
		return value, nil
	}
}

func splitPathList(value string) []string {
	parts := strings.Split(value, ",")
	paths := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	if len(paths) == 0 {
		return nil
	}
	return paths
}
