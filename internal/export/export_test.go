package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jfortier/talkingdict/internal/testutil"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{name: "csv", input: "csv", want: FormatCSV},
		{name: "uppercase", input: "JSON", want: FormatJSON},
		{name: "yaml", input: "yaml", want: FormatYAML},
		{name: "pdf", input: "pdf", want: FormatPDF},
		{name: "unknown", input: "xml", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, format)
		})
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testutil.Entries()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, []string{
		"001-001-01", "shiyaen", "a friend", "laverdure", "People", "true", "",
	}, records[1])
	assert.Equal(t, []string{
		"001-002-01", "atim", "a dog", "laverdure", "animals", "false", "Li shyaen ki-makwamew.",
	}, records[2])
	assert.Equal(t, "002-001-01", records[3][0])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, testutil.Entries()))

	assert.Contains(t, buf.String(), `"word": "shiyaen"`)
	assert.Contains(t, buf.String(), `"sortingForm"`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, testutil.Entries()))

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)

	assert.Equal(t, "shiyaen", decoded[0]["word"])
	assert.Equal(t, []any{"shiyaen.mp3"}, decoded[0]["audio"])
	// Entries without audio or theme omit those keys.
	assert.NotContains(t, decoded[2], "audio")
	assert.NotContains(t, decoded[2], "theme")
}

func TestRenderMarkdown(t *testing.T) {
	siteConfig := testutil.SiteConfig()
	entries := testutil.Entries()

	t.Run("embedded fallback template", func(t *testing.T) {
		content, err := RenderMarkdown("", siteConfig, entries)
		require.NoError(t, err)

		markdown := string(content)
		assert.Contains(t, markdown, "Michif")
		assert.Contains(t, markdown, "shiyaen")
		assert.Contains(t, markdown, "a friend")
	})

	t.Run("custom template file", func(t *testing.T) {
		templatePath := filepath.Join(t.TempDir(), "custom.md.go.tmpl")
		require.NoError(t, os.WriteFile(templatePath,
			[]byte("# {{.L1Name}}\n{{range .Entries}}* {{.Word}}\n{{end}}"), 0o644))

		content, err := RenderMarkdown(templatePath, siteConfig, entries)
		require.NoError(t, err)
		assert.Contains(t, string(content), "# Michif")
		assert.Contains(t, string(content), "* atim")
	})

	t.Run("unreadable template falls back", func(t *testing.T) {
		content, err := RenderMarkdown(filepath.Join(t.TempDir(), "missing.tmpl"), siteConfig, entries)
		require.NoError(t, err)
		assert.Contains(t, string(content), "Michif")
	})
}

func TestWritePDF(t *testing.T) {
	dir := t.TempDir()

	path, err := WritePDF(filepath.Join(dir, "nested", "dictionary"), "", testutil.SiteConfig(), testutil.Entries())
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(path))
	assert.Equal(t, ".pdf", filepath.Ext(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
