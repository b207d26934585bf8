package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"

	"github.com/jfortier/talkingdict/internal/dictionary"
)

// whitespaceFolder trims leading and trailing whitespace and collapses
// every internal whitespace span to a single ASCII space.
type whitespaceFolder struct {
	notStart bool
	wsSpan   bool
}

// Transform implements [transform.Transformer.Transform].
func (w *whitespaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nSrc, nDst int
	for nSrc < len(src) {
		c, size := utf8.DecodeRune(src[nSrc:])
		if c == utf8.RuneError && !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}

		if unicode.IsSpace(c) {
			nSrc += size
			if !w.notStart {
				continue
			}
			w.wsSpan = true
			continue
		}

		pad := 0
		if w.wsSpan {
			pad = 1
		}
		if nDst+pad+utf8.RuneLen(c) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if w.wsSpan {
			dst[nDst] = ' '
			nDst++
			w.wsSpan = false
		}
		w.notStart = true
		nSrc += size
		nDst += utf8.EncodeRune(dst[nDst:], c)
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *whitespaceFolder) Reset() {
	*w = whitespaceFolder{}
}

// Normalizer folds query and headword text into a comparable form:
// whitespace folded, lowercased, and with the site configuration's
// search transducer substitutions applied.
type Normalizer struct {
	rules []dictionary.TransducerRule
}

// searchTransducer is the transducer the site configuration may define
// for neutralizing spelling variants during search.
const searchTransducer = "search"

// NewNormalizer builds a Normalizer from the site configuration.
func NewNormalizer(siteConfig dictionary.SiteConfig) *Normalizer {
	return &Normalizer{rules: siteConfig.L1.Transducers[searchTransducer]}
}

// Normalize returns the folded form of text.
func (n *Normalizer) Normalize(text string) string {
	folded, _, err := transform.String(&whitespaceFolder{}, text)
	if err != nil {
		folded = strings.TrimSpace(text)
	}
	folded = strings.ToLower(folded)
	for _, rule := range n.rules {
		folded = strings.ReplaceAll(folded, rule.From, rule.To)
	}
	return folded
}
