package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"

	"github.com/jfortier/talkingdict/internal/assets"
	"github.com/jfortier/talkingdict/internal/dictionary"
)

// markdownData is the payload rendered into the export template.
type markdownData struct {
	L1Name  string
	L2Name  string
	Build   string
	Entries []dictionary.Entry
}

// RenderMarkdown renders the entries through the export template.
func RenderMarkdown(templatePath string, siteConfig dictionary.SiteConfig, entries []dictionary.Entry) ([]byte, error) {
	tmpl, err := assets.ParseDictionaryTemplate(templatePath)
	if err != nil {
		return nil, fmt.Errorf("assets.ParseDictionaryTemplate > %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, markdownData{
		L1Name:  siteConfig.L1.Name,
		L2Name:  siteConfig.L2.Name,
		Build:   siteConfig.Build,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("tmpl.Execute > %w", err)
	}
	return buf.Bytes(), nil
}

// WritePDF renders the entries as markdown and converts the result to a
// PDF file at pdfPath.
func WritePDF(pdfPath, templatePath string, siteConfig dictionary.SiteConfig, entries []dictionary.Entry) (string, error) {
	if !strings.HasSuffix(pdfPath, ".pdf") {
		pdfPath += ".pdf"
	}
	if dir := filepath.Dir(pdfPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}

	content, err := RenderMarkdown(templatePath, siteConfig, entries)
	if err != nil {
		return "", fmt.Errorf("RenderMarkdown > %w", err)
	}

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
