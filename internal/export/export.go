// Package export writes the sorted entry collection out in tabular and
// document formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jfortier/talkingdict/internal/dictionary"
)

// Format selects an export output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatPDF  Format = "pdf"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format: %s", name)
}

// CSVHeader is the column layout of CSV exports.
var CSVHeader = []string{"id", "word", "definition", "source", "theme", "audio", "examples"}

// WriteCSV writes the entries as CSV with a header row.
func WriteCSV(w io.Writer, entries []dictionary.Entry) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("csv.Write(header) > %w", err)
	}
	for _, entry := range entries {
		record := []string{
			entry.ID,
			entry.Word,
			entry.Definition,
			entry.Source,
			entry.Theme,
			strconv.FormatBool(entry.HasAudio()),
			strings.Join(entry.ExampleSentence, " | "),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("csv.Write(%s) > %w", entry.ID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("csv.Flush > %w", err)
	}
	return nil
}

// WriteJSON writes the entries as an indented JSON array, the same shape
// the pipeline emits.
func WriteJSON(w io.Writer, entries []dictionary.Entry) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("json.Encode(entries) > %w", err)
	}
	return nil
}

// yamlEntry flattens an entry for YAML output.
type yamlEntry struct {
	ID         string   `yaml:"id"`
	Word       string   `yaml:"word"`
	Definition string   `yaml:"definition"`
	Source     string   `yaml:"source,omitempty"`
	Theme      string   `yaml:"theme,omitempty"`
	Audio      []string `yaml:"audio,omitempty"`
	Examples   []string `yaml:"examples,omitempty"`
}

// WriteYAML writes the entries as a YAML sequence.
func WriteYAML(w io.Writer, entries []dictionary.Entry) error {
	flattened := make([]yamlEntry, 0, len(entries))
	for _, entry := range entries {
		var audio []string
		for _, clip := range entry.Audio {
			if clip.Filename != "" {
				audio = append(audio, clip.Filename)
			}
		}
		flattened = append(flattened, yamlEntry{
			ID:         entry.ID,
			Word:       entry.Word,
			Definition: entry.Definition,
			Source:     entry.Source,
			Theme:      entry.Theme,
			Audio:      audio,
			Examples:   entry.ExampleSentence,
		})
	}

	encoder := yaml.NewEncoder(w)
	defer func() {
		_ = encoder.Close()
	}()
	if err := encoder.Encode(flattened); err != nil {
		return fmt.Errorf("yaml.Encode(entries) > %w", err)
	}
	return nil
}
