package settings

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"muserc/internal/domain"
)

func snapshot(values Values) map[domain.Key]string {
	out := map[domain.Key]string{}
	for _, key := range domain.Keys() {
		if values.Explicit(key) {
			out[key] = values.Value(key)
		}
	}
	return out
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	values := NewValues()
	require.NoError(t, values.Set(domain.KeyMusicxmlPath, "/usr/bin/mscore"))
	require.NoError(t, values.Set(domain.KeyAutoDownload, "allow"))
	require.NoError(t, values.Set(domain.KeyDebug, "true"))
	require.NoError(t, values.Set(domain.KeyLocalCorpusSettings, "/scores/a,/scores/b"))

	data, err := encodeXML(values)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<preference name="musicxmlPath" value="/usr/bin/mscore">`+"</preference>")
	assert.Contains(t, string(data), "<localCorpusPath>/scores/a</localCorpusPath>")

	decoded, skipped, err := decodeXML(data)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	if diff := cmp.Diff(snapshot(values), snapshot(decoded)); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, values.CorpusPaths(), decoded.CorpusPaths())
}

func TestEncodeOmitsDefaults(t *testing.T) {
	values := NewValues()
	require.NoError(t, values.Set(domain.KeyPDFPath, "/usr/bin/evince"))

	data, err := encodeXML(values)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "pdfPath")
	assert.NotContains(t, text, "autoDownload")
	assert.NotContains(t, text, "localCorpusSettings")
	assert.True(t, strings.HasPrefix(text, "<?xml"))
}

func TestDecodeSkipsUnknownEntries(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<settings>
  <preference name="midiPath" value="/usr/bin/timidity"/>
  <preference name="flux" value="high"/>
  <preference name="autoDownload" value="whenever"/>
</settings>`
	values, skipped, err := decodeXML([]byte(doc))
	require.NoError(t, err)
	assert.Len(t, skipped, 2)
	assert.Equal(t, "/usr/bin/timidity", values.Value(domain.KeyMidiPath))
	// invalid stored value falls back to the default
	assert.Equal(t, "ask", values.Value(domain.KeyAutoDownload))
	assert.False(t, values.Explicit(domain.KeyAutoDownload))
}

func TestDecodeMalformedDocument(t *testing.T) {
	_, _, err := decodeXML([]byte("<settings><preference"))
	require.Error(t, err)

	_, err = Parse([]byte("not xml at all"))
	require.Error(t, err)
}
