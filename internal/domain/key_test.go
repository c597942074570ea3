package domain_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"muserc/internal/domain"
)

func TestKeysSortedAndClosed(t *testing.T) {
	keys := domain.Keys()
	require.NotEmpty(t, keys)
	assert.True(t, sort.SliceIsSorted(keys, func(i, j int) bool { return keys[i] < keys[j] }))

	for _, key := range keys {
		info, ok := domain.Lookup(key)
		require.True(t, ok, "key %s missing from table", key)
		assert.Equal(t, key, info.Key)
	}

	_, ok := domain.Lookup("scratchDirectory")
	assert.False(t, ok)
	assert.False(t, domain.Known("nonsense"))
}

func TestEnumKeysCarryValues(t *testing.T) {
	for _, key := range domain.Keys() {
		info, _ := domain.Lookup(key)
		if info.Kind == domain.KindEnum {
			require.NotEmpty(t, info.Values, "enum key %s has no allowed values", key)
			assert.Contains(t, info.Values, info.Default, "enum key %s default outside allowed values", key)
		}
	}
}

func TestAutoDownloadPolicies(t *testing.T) {
	info, ok := domain.Lookup(domain.KeyAutoDownload)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"allow", "deny", "ask"}, info.Values)
	assert.Equal(t, string(domain.PolicyAsk), info.Default)
}

func TestPathKeysAllPathKind(t *testing.T) {
	pathKeys := domain.PathKeys()
	require.NotEmpty(t, pathKeys)
	for _, key := range pathKeys {
		info, _ := domain.Lookup(key)
		assert.Equal(t, domain.KindPath, info.Kind)
	}
	assert.NotContains(t, pathKeys, domain.KeyLocalCorpusSettings)
}

func TestKeyForFormat(t *testing.T) {
	cases := map[string]domain.Key{
		domain.FormatMusicXML: domain.KeyMusicxmlPath,
		domain.FormatMIDI:     domain.KeyMidiPath,
		domain.FormatLilypond: domain.KeyLilypondPath,
		domain.FormatBraille:  domain.KeyBraillePath,
		"pdf":                 domain.KeyPDFPath,
		"png":                 domain.KeyMusescoreDirectPNGPath,
	}
	for format, want := range cases {
		got, ok := domain.KeyForFormat(format)
		require.True(t, ok, "format %s", format)
		assert.Equal(t, want, got)
	}
	_, ok := domain.KeyForFormat("docx")
	assert.False(t, ok)
}
