// Package assets embeds the fallback templates used for exports.
package assets

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/dictionary.md.go.tmpl
var fallbackDictionaryTemplate string

// ParseDictionaryTemplate parses the markdown export template at
// templatePath, falling back to the embedded template when the path is
// empty or unreadable.
func ParseDictionaryTemplate(templatePath string) (*template.Template, error) {
	return parseTemplateWithFallback(templatePath, fallbackDictionaryTemplate)
}

func parseTemplateWithFallback(templatePath string, fallbackTemplate string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"join": strings.Join,
	}

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a templatePath",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New("fallback").Funcs(funcMap).Parse(fallbackTemplate)
	if err != nil {
		return nil, fmt.Errorf("template.Parse(fallback) > %w", err)
	}
	return tmpl, nil
}
