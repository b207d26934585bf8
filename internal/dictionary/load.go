package dictionary

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ValidationError describes one malformed entry found at load time.
type ValidationError struct {
	Index   int
	Word    string
	Message string
}

func (e ValidationError) Error() string {
	word := e.Word
	if word == "" {
		word = "(no word)"
	}
	return fmt.Sprintf("entry %d %s: %s", e.Index, word, e.Message)
}

// DecodeEntries parses the entry collection emitted by the pipeline and
// validates every entry against the given site configuration. Malformed
// entries are a hard error, aggregated and surfaced once.
func DecodeEntries(data []byte, siteConfig SiteConfig) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(entries) > %w", err)
	}
	if err := ValidateEntries(entries, siteConfig); err != nil {
		return nil, err
	}
	return entries, nil
}

// ValidateEntries checks the invariants every loaded entry must hold:
// a non-empty word, a sorting form, and sortingForm[0] inside the
// configured alphabet.
func ValidateEntries(entries []Entry, siteConfig SiteConfig) error {
	alphabetSize := len(siteConfig.L1.LettersInLanguage)

	var errs []error
	for i, entry := range entries {
		if entry.Word == "" {
			errs = append(errs, ValidationError{Index: i, Word: entry.Word, Message: "missing word"})
		}
		if len(entry.SortingForm) == 0 {
			errs = append(errs, ValidationError{Index: i, Word: entry.Word, Message: "missing sortingForm"})
			continue
		}
		if first := entry.SortingForm[0]; first < 0 || first >= alphabetSize {
			errs = append(errs, ValidationError{
				Index:   i,
				Word:    entry.Word,
				Message: fmt.Sprintf("sortingForm[0] = %d outside alphabet of %d letters", first, alphabetSize),
			})
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d invalid entries: %w", len(errs), errors.Join(errs...))
	}
	return nil
}

// DecodeSiteConfig parses the configuration object emitted by the pipeline.
func DecodeSiteConfig(data []byte) (SiteConfig, error) {
	var siteConfig SiteConfig
	if err := json.Unmarshal(data, &siteConfig); err != nil {
		return siteConfig, fmt.Errorf("json.Unmarshal(site config) > %w", err)
	}
	if siteConfig.L1.Name == "" {
		return siteConfig, fmt.Errorf("site config is missing the L1 language name")
	}
	if len(siteConfig.L1.LettersInLanguage) == 0 {
		return siteConfig, fmt.Errorf("site config for %s has an empty alphabet", siteConfig.L1.Name)
	}
	return siteConfig, nil
}

// Slug derives the URL-safe identifier the pipeline keys its resources by:
// the L1 language name lowercased, with every run of non-alphanumeric
// characters collapsed to a single hyphen.
func Slug(languageName string) string {
	var b strings.Builder
	hyphen := false
	for _, r := range strings.ToLower(languageName) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if b.Len() > 0 && !hyphen {
			b.WriteRune('-')
			hyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
