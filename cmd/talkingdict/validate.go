package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jfortier/talkingdict/internal/dataset"
	"github.com/jfortier/talkingdict/internal/dictionary"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the dataset: every entry must carry a sorting form inside the alphabet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			loader := dataset.NewLoader(cfg.Data.Directory, cfg.Data.RemoteBaseURL, cfg.Data.CacheDirectory)
			entries, siteConfig, err := loader.Load(cmd.Context(), dictionary.Slug(cfg.Data.Language))
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			fmt.Printf("✓ %d entries valid for %s (build %s, %d letters)\n",
				len(entries), siteConfig.L1.Name, siteConfig.Build,
				len(siteConfig.L1.LettersInLanguage))
			return nil
		},
	}
}

func newFetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Refresh the cached dataset from the remote endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			if cfg.Data.RemoteBaseURL == "" {
				return fmt.Errorf("data.remote_base_url is not configured")
			}

			slug := dictionary.Slug(cfg.Data.Language)
			// Fetch into the cache only; an existing data directory
			// would shadow the cached copy.
			loader := dataset.NewLoader("", cfg.Data.RemoteBaseURL, cfg.Data.CacheDirectory)
			if err := loader.Refresh(slug); err != nil {
				return fmt.Errorf("loader.Refresh() > %w", err)
			}
			entries, siteConfig, err := loader.Load(cmd.Context(), slug)
			if err != nil {
				return fmt.Errorf("loader.Load() > %w", err)
			}

			fmt.Printf("fetched %d entries for %s (build %s)\n",
				len(entries), siteConfig.L1.Name, siteConfig.Build)
			return nil
		},
	}
}
