package settings

import (
	"encoding/xml"
	"fmt"
	"sort"

	"muserc/internal/domain"
)

// The on-disk document: a flat <settings> element with one <preference>
// per explicitly set key, plus a nested block for the local corpus list.
//
//	<settings>
//	  <preference name="musicxmlPath" value="/usr/bin/mscore"/>
//	  <localCorpusSettings>
//	    <localCorpusPath>/home/u/scores</localCorpusPath>
//	  </localCorpusSettings>
//	</settings>
type xmlSettings struct {
	XMLName     xml.Name        `xml:"settings"`
	Preferences []xmlPreference `xml:"preference"`
	LocalCorpus *xmlCorpus      `xml:"localCorpusSettings"`
}

type xmlPreference struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlCorpus struct {
	Paths []string `xml:"localCorpusPath"`
}

// Parse decodes a settings document, dropping unrecognized entries. Used to
// validate a file before it replaces the live one.
func Parse(data []byte) (Values, error) {
	values, _, err := decodeXML(data)
	return values, err
}

func encodeXML(values Values) ([]byte, error) {
	doc := xmlSettings{Preferences: []xmlPreference{}}
	keys := make([]domain.Key, 0, len(values.scalars))
	for key := range values.scalars {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, key := range keys {
		doc.Preferences = append(doc.Preferences, xmlPreference{
			Name:  string(key),
			Value: values.scalars[key],
		})
	}
	if len(values.corpus) > 0 {
		doc.LocalCorpus = &xmlCorpus{Paths: append([]string{}, values.corpus...)}
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return append([]byte(xml.Header), append(data, '\n')...), nil
}

// decodeXML parses a settings document into a fresh record. Entries with
// unknown names are reported back so the caller can warn; entries with
// invalid values fall back to the key default.
func decodeXML(data []byte) (Values, []string, error) {
	var doc xmlSettings
	if err := xml.Unmarshal(data, &doc); err != nil {
		return NewValues(), nil, fmt.Errorf("parse settings: %w", err)
	}

	values := NewValues()
	var skipped []string
	for _, pref := range doc.Preferences {
		key := domain.Key(pref.Name)
		if !domain.Known(key) {
			skipped = append(skipped, pref.Name)
			continue
		}
		if err := values.Set(key, pref.Value); err != nil {
			skipped = append(skipped, fmt.Sprintf("%s=%s", pref.Name, pref.Value))
		}
	}
	if doc.LocalCorpus != nil {
		for _, path := range doc.LocalCorpus.Paths {
			if path != "" {
				values.corpus = append(values.corpus, path)
			}
		}
	}
	return values, skipped, nil
}
