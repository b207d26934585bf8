package dictionary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSiteConfig() SiteConfig {
	return SiteConfig{
		L1: L1Config{
			Name:              "Michif",
			LettersInLanguage: []string{"x", "y", "z"},
		},
		L2: L2Config{Name: "English"},
	}
}

func TestDecodeEntries(t *testing.T) {
	tests := []struct {
		name              string
		data              string
		wantWords         []string
		wantErr           bool
		wantErrorContains []string
	}{
		{
			name: "valid entries",
			data: `[
				{"id": "1", "word": "a", "definition": "first", "sortingForm": [2]},
				{"id": "2", "word": "b", "definition": "second", "sortingForm": [0]}
			]`,
			wantWords: []string{"a", "b"},
		},
		{
			name:              "missing sortingForm is a hard error",
			data:              `[{"id": "1", "word": "a", "definition": "first"}]`,
			wantErr:           true,
			wantErrorContains: []string{"missing sortingForm", "entry 0 a"},
		},
		{
			name:              "sortingForm outside the alphabet",
			data:              `[{"id": "1", "word": "a", "definition": "first", "sortingForm": [3]}]`,
			wantErr:           true,
			wantErrorContains: []string{"sortingForm[0] = 3 outside alphabet of 3 letters"},
		},
		{
			name:              "negative sortingForm",
			data:              `[{"id": "1", "word": "a", "definition": "first", "sortingForm": [-1]}]`,
			wantErr:           true,
			wantErrorContains: []string{"sortingForm[0] = -1"},
		},
		{
			name:              "missing word",
			data:              `[{"id": "1", "definition": "first", "sortingForm": [0]}]`,
			wantErr:           true,
			wantErrorContains: []string{"missing word"},
		},
		{
			name: "all problems reported at once",
			data: `[
				{"id": "1", "word": "a", "definition": "first"},
				{"id": "2", "word": "b", "definition": "second", "sortingForm": [9]}
			]`,
			wantErr: true,
			wantErrorContains: []string{
				"2 invalid entries", "missing sortingForm", "sortingForm[0] = 9",
			},
		},
		{
			name:    "invalid JSON",
			data:    `[{`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := DecodeEntries([]byte(tt.data), testSiteConfig())
			if tt.wantErr {
				require.Error(t, err)
				for _, want := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), want)
				}
				return
			}
			require.NoError(t, err)

			var words []string
			for _, entry := range entries {
				words = append(words, entry.Word)
			}
			assert.Equal(t, tt.wantWords, words)
		})
	}
}

func TestDecodeSiteConfig(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "valid config",
			data: `{"L1": {"name": "Michif", "lettersInLanguage": ["a", "b"]}, "L2": {"name": "English"}, "build": "2024-01"}`,
		},
		{
			name:    "missing language name",
			data:    `{"L1": {"lettersInLanguage": ["a"]}, "L2": {"name": "English"}}`,
			wantErr: true,
		},
		{
			name:    "empty alphabet",
			data:    `{"L1": {"name": "Michif", "lettersInLanguage": []}, "L2": {"name": "English"}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			siteConfig, err := DecodeSiteConfig([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Michif", siteConfig.L1.Name)
		})
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple name", in: "Michif", want: "michif"},
		{name: "spaces become hyphens", in: "Turtle Mountain Michif", want: "turtle-mountain-michif"},
		{name: "runs of punctuation collapse", in: "Michif  (TMD)", want: "michif-tmd"},
		{name: "trailing punctuation dropped", in: "Michif!", want: "michif"},
		{name: "empty input", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.in))
		})
	}
}
