// Package dataset loads dictionary snapshots from the assets the external
// pipeline produces: two resources per language, one holding entry data
// and one holding the site configuration, keyed by the language slug.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"

	"github.com/jfortier/talkingdict/internal/dictionary"
)

// Resource names under the data directory for a given slug.
func entriesResource(slug string) string { return slug }
func configResource(slug string) string  { return "config-" + slug }

// Loader reads snapshots from a local directory, or from a remote base
// URL through a file cache when a directory copy is absent.
type Loader struct {
	directory string
	baseURL   string
	fileCache *FileCache
	client    *resty.Client
}

// NewLoader creates a Loader. directory may be empty when baseURL is set
// and vice versa; with both set the directory wins.
func NewLoader(directory, baseURL, cacheDirectory string) *Loader {
	return &Loader{
		directory: directory,
		baseURL:   baseURL,
		fileCache: NewFileCache(cacheDirectory),
		client:    resty.New(),
	}
}

// Load reads and validates the snapshot for the given language slug.
func (loader *Loader) Load(ctx context.Context, slug string) ([]dictionary.Entry, dictionary.SiteConfig, error) {
	var siteConfig dictionary.SiteConfig

	configData, err := loader.resource(ctx, configResource(slug))
	if err != nil {
		return nil, siteConfig, fmt.Errorf("load site config for %s > %w", slug, err)
	}
	siteConfig, err = dictionary.DecodeSiteConfig(configData)
	if err != nil {
		return nil, siteConfig, fmt.Errorf("decode site config for %s > %w", slug, err)
	}

	entryData, err := loader.resource(ctx, entriesResource(slug))
	if err != nil {
		return nil, siteConfig, fmt.Errorf("load entries for %s > %w", slug, err)
	}
	entries, err := dictionary.DecodeEntries(entryData, siteConfig)
	if err != nil {
		return nil, siteConfig, fmt.Errorf("decode entries for %s > %w", slug, err)
	}
	return entries, siteConfig, nil
}

// Refresh drops any cached copies so the next Load refetches from the
// remote endpoint.
func (loader *Loader) Refresh(slug string) error {
	for _, name := range []string{entriesResource(slug), configResource(slug)} {
		if err := loader.fileCache.invalidate(name); err != nil {
			return fmt.Errorf("invalidate %s > %w", name, err)
		}
	}
	return nil
}

// Reload loads a fresh snapshot and installs it through replace. A failed
// load keeps the last-known snapshot: the error is logged and swallowed.
func (loader *Loader) Reload(ctx context.Context, slug string, replace func([]dictionary.Entry, dictionary.SiteConfig)) {
	entries, siteConfig, err := loader.Load(ctx, slug)
	if err != nil {
		slog.Default().Warn("snapshot reload failed, keeping last-known data",
			slog.String("slug", slug),
			slog.Any("error", err),
		)
		return
	}
	replace(entries, siteConfig)
}

func (loader *Loader) resource(ctx context.Context, name string) ([]byte, error) {
	if loader.directory != "" {
		contents, err := os.ReadFile(filepath.Join(loader.directory, name+".json"))
		if err != nil {
			return nil, fmt.Errorf("os.ReadFile > %w", err)
		}
		return contents, nil
	}
	return loader.fileCache.cache(name, func() ([]byte, error) {
		return loader.fetch(ctx, name)
	})
}

func (loader *Loader) fetch(ctx context.Context, name string) ([]byte, error) {
	if loader.baseURL == "" {
		return nil, fmt.Errorf("no data directory and no remote base URL configured")
	}
	res, err := loader.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/%s.json", loader.baseURL, name))
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	return res.Body(), nil
}
