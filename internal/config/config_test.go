package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func loadConfig(t *testing.T, contents string) (*Config, error) {
	t.Helper()
	loader, err := NewConfigLoader(writeConfigFile(t, contents))
	require.NoError(t, err)
	return loader.Load()
}

func TestConfigLoader_Load(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig(t, "data:\n  language: Michif\n")
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORS.AllowedOrigins)
		assert.Equal(t, "data", cfg.Data.Directory)
		assert.Equal(t, filepath.Join("data", "cache"), cfg.Data.CacheDirectory)
		assert.Equal(t, 0.75, cfg.Categories.AudioThreshold)
		assert.False(t, cfg.Categories.ForceAudio)
		assert.Equal(t, 2, cfg.Search.MaxEditDistance)
		assert.Equal(t, "localhost", cfg.Report.SMTP.Host)
		assert.Equal(t, 25, cfg.Report.SMTP.Port)
		assert.Equal(t, filepath.Join("data", "talkingdict.db"), cfg.Store.Path)
		assert.Equal(t, "exports", cfg.Export.OutputDir)
	})

	t.Run("custom values", func(t *testing.T) {
		cfg, err := loadConfig(t, `
server:
  port: 9000
data:
  language: Michif
  remote_base_url: https://assets.example.org/data
categories:
  audio_threshold: 0.5
  force_audio: true
search:
  max_edit_distance: 1
report:
  allowed_origins:
    - https://dictionary.example.org
  maintainer_address: maintainer@example.org
  from_address: noreply@example.org
`)
		require.NoError(t, err)

		assert.Equal(t, 9000, cfg.Server.Port)
		assert.Equal(t, "https://assets.example.org/data", cfg.Data.RemoteBaseURL)
		assert.Equal(t, 0.5, cfg.Categories.AudioThreshold)
		assert.True(t, cfg.Categories.ForceAudio)
		assert.Equal(t, 1, cfg.Search.MaxEditDistance)
		assert.Equal(t, []string{"https://dictionary.example.org"}, cfg.Report.AllowedOrigins)
		assert.Equal(t, "maintainer@example.org", cfg.Report.MaintainerAddress)
	})

	t.Run("smtp credentials come from the environment", func(t *testing.T) {
		t.Setenv("SMTP_USERNAME", "relay-user")
		t.Setenv("SMTP_PASSWORD", "relay-secret")

		cfg, err := loadConfig(t, "data:\n  language: Michif\n")
		require.NoError(t, err)
		assert.Equal(t, "relay-user", cfg.Report.SMTP.Username)
		assert.Equal(t, "relay-secret", cfg.Report.SMTP.Password)
	})

	tests := []struct {
		name     string
		contents string
		wantErr  string
	}{
		{
			name:     "missing language",
			contents: "server:\n  port: 9000\n",
			wantErr:  "language",
		},
		{
			name:     "bad remote url",
			contents: "data:\n  language: Michif\n  remote_base_url: not-a-url\n",
			wantErr:  "remote_base_url",
		},
		{
			name:     "threshold above one",
			contents: "data:\n  language: Michif\ncategories:\n  audio_threshold: 1.5\n",
			wantErr:  "audio_threshold",
		},
		{
			name:     "negative edit distance",
			contents: "data:\n  language: Michif\nsearch:\n  max_edit_distance: -1\n",
			wantErr:  "max_edit_distance",
		},
		{
			name:     "report origin with a path",
			contents: "data:\n  language: Michif\nreport:\n  allowed_origins:\n    - https://example.org/app\n",
			wantErr:  "web origin",
		},
		{
			name:     "report origin with a bad scheme",
			contents: "data:\n  language: Michif\nreport:\n  allowed_origins:\n    - ftp://example.org\n",
			wantErr:  "web origin",
		},
		{
			name:     "bad maintainer address",
			contents: "data:\n  language: Michif\nreport:\n  maintainer_address: not-an-email\n",
			wantErr:  "maintainer_address",
		},
		{
			name:     "malformed yaml",
			contents: "data: [unclosed\n",
			wantErr:  "could not be read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(t, tt.contents)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	t.Run("explicit config file must exist", func(t *testing.T) {
		loader, err := NewConfigLoader(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		_, err = loader.Load()
		assert.Error(t, err)
	})
}

func TestIsWebOriginValues(t *testing.T) {
	loader := func(t *testing.T, origin string) error {
		_, err := loadConfig(t, "data:\n  language: Michif\nserver:\n  cors:\n    allowed_origins:\n      - \""+origin+"\"\n")
		return err
	}

	assert.NoError(t, loader(t, "https://example.org"))
	assert.NoError(t, loader(t, "http://localhost:3000"))
	assert.Error(t, loader(t, "https://example.org/path"))
	assert.Error(t, loader(t, "https://example.org?q=1"))
	assert.Error(t, loader(t, "example.org"))
}
