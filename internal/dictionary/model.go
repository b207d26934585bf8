// Package dictionary defines the entry and site configuration models
// produced by the external dictionary-compilation pipeline, plus load-time
// validation of that data.
package dictionary

// clipFrameMillis is the duration of one alignment frame in a Clip.
// The pipeline emits word-start offsets in 10 ms frames.
const clipFrameMillis = 10

// Clip is one audio attachment for a word or example sentence.
type Clip struct {
	Filename string `json:"filename"`
	Speaker  string `json:"speaker,omitempty"`
	// Starts holds word-alignment boundaries in 10 ms frames, beginning
	// with the second word of the recording.
	Starts []int `json:"starts,omitempty"`
}

// StartsMillis returns the alignment boundaries converted to milliseconds.
func (c Clip) StartsMillis() []int {
	if len(c.Starts) == 0 {
		return nil
	}
	millis := make([]int, len(c.Starts))
	for i, frame := range c.Starts {
		millis[i] = frame * clipFrameMillis
	}
	return millis
}

// Entry is one dictionary headword record. Entries are immutable once
// loaded; every field name matches the JSON emitted by the pipeline.
type Entry struct {
	ID         string `json:"id"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
	// SortingForm encodes the word as indexes into the configured
	// alphabet. It is the sort and group key instead of raw string
	// comparison, because the target language's collation order need
	// not match machine string order.
	SortingForm []int  `json:"sortingForm"`
	Source      string `json:"source,omitempty"`
	Theme       string `json:"theme,omitempty"`
	Audio       []Clip `json:"audio,omitempty"`

	// Parallel sequences describing usage examples.
	ExampleSentence           []string   `json:"exampleSentence,omitempty"`
	ExampleSentenceDefinition [][]string `json:"exampleSentenceDefinition,omitempty"`
	ExampleSentenceAudio      [][]Clip   `json:"exampleSentenceAudio,omitempty"`

	// Optional holds additional display fields the pipeline may attach.
	Optional map[string]OptionalValue `json:"optional,omitempty"`
}

// HasAudio reports whether the entry has at least one audio attachment
// with a non-empty filename.
func (e Entry) HasAudio() bool {
	for _, clip := range e.Audio {
		if clip.Filename != "" {
			return true
		}
	}
	return false
}

// TransducerRule is a single substitution applied during search
// normalization, neutralizing spelling variants.
type TransducerRule struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// L1Config describes the target language.
type L1Config struct {
	Name string `json:"name"`
	// LettersInLanguage defines both the alphabet and its collation
	// order; a letter's position in this sequence is its sort key.
	LettersInLanguage []string                    `json:"lettersInLanguage"`
	Transducers       map[string][]TransducerRule `json:"transducers,omitempty"`
}

// L2Config describes the reference language.
type L2Config struct {
	Name string `json:"name"`
}

// SiteConfig is the configuration object produced alongside the entry
// collection.
type SiteConfig struct {
	L1              L1Config `json:"L1"`
	L2              L2Config `json:"L2"`
	Build           string   `json:"build"`
	AudioPathPrefix string   `json:"audioPathPrefix,omitempty"`
}
