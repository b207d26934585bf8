// Package testutil provides shared test helpers for creating config
// files and dataset fixtures.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jfortier/talkingdict/internal/dictionary"
)

// SiteConfig returns a small site configuration with a three-letter
// alphabet in a collation order that differs from byte order.
func SiteConfig() dictionary.SiteConfig {
	return dictionary.SiteConfig{
		L1: dictionary.L1Config{
			Name:              "Michif",
			LettersInLanguage: []string{"a", "b", "sh"},
		},
		L2:    dictionary.L2Config{Name: "English"},
		Build: "test-1",
	}
}

// Entries returns a fixture entry collection covering sources, themes
// and audio coverage.
func Entries() []dictionary.Entry {
	return []dictionary.Entry{
		{
			ID:          "001-001-01",
			Word:        "shiyaen",
			Definition:  "a friend",
			SortingForm: []int{2, 0},
			Source:      "laverdure",
			Theme:       "People",
			Audio:       []dictionary.Clip{{Filename: "shiyaen.mp3", Speaker: "VD", Starts: []int{25, 60}}},
		},
		{
			ID:                        "001-002-01",
			Word:                      "atim",
			Definition:                "a dog",
			SortingForm:               []int{0, 1},
			Source:                    "laverdure",
			Theme:                     "animals",
			ExampleSentence:           []string{"Li shyaen ki-makwamew."},
			ExampleSentenceDefinition: [][]string{{"The", "dog", "bit", "him."}},
		},
		{
			ID:          "002-001-01",
			Word:        "bol",
			Definition:  "a bowl",
			SortingForm: []int{1, 0},
			Source:      "elders",
		},
	}
}

// WriteDataset writes the fixture dataset into dir using the resource
// names the loader expects, and returns the language slug.
func WriteDataset(t *testing.T, dir string, entries []dictionary.Entry, siteConfig dictionary.SiteConfig) string {
	t.Helper()

	slug := dictionary.Slug(siteConfig.L1.Name)

	require.NoError(t, os.MkdirAll(dir, 0o755))

	entryData, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, slug+".json"), entryData, 0o644))

	configData, err := json.Marshal(siteConfig)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config-"+slug+".json"), configData, 0o644))

	return slug
}

// SetupTestConfig creates a minimal config file plus the directories it
// references, returning the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	for _, d := range []string{"data", "cache", "audio", "exports"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0o755))
	}

	configContent := fmt.Sprintf(`data:
  language: Michif
  directory: %s
  cache_directory: %s
  audio_directory: %s
store:
  path: %s
export:
  output_dir: %s
report:
  allowed_origins:
    - https://dictionary.example.org
  maintainer_address: maintainer@example.org
  from_address: noreply@example.org
`,
		filepath.Join(tmpDir, "data"),
		filepath.Join(tmpDir, "cache"),
		filepath.Join(tmpDir, "audio"),
		filepath.Join(tmpDir, "store.db"),
		filepath.Join(tmpDir, "exports"),
	)

	configFile := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0o644))
	return configFile
}
