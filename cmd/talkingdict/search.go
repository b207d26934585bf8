package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jfortier/talkingdict/internal/cli"
	"github.com/jfortier/talkingdict/internal/localstore"
	"github.com/jfortier/talkingdict/internal/search"
)

func newSearchCommand() *cobra.Command {
	var maxDistance int

	command := &cobra.Command{
		Use:   "search <query>",
		Short: "Search headwords and definitions, tolerating misspellings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			idx, err := loadIndex(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			if maxDistance < 0 {
				maxDistance = cfg.Search.MaxEditDistance
			}
			matcher := search.NewMatcher(idx.Snapshot().SiteConfig, maxDistance)
			matches := matcher.Search(args[0], idx.SortedEntries())

			cli.NewDisplay(os.Stdout).Matches(args[0], matches)
			return nil
		},
	}
	command.Flags().IntVar(&maxDistance, "max-distance", -1, "maximum edit distance for fuzzy matches")

	return command
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <word>",
		Short: "Show the entries for an exact headword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			idx, err := loadIndex(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			bookmarks := localstore.OpenBookmarks(cfg.Store.Path)

			display := cli.NewDisplay(os.Stdout)
			found := false
			for _, entry := range idx.SortedEntries() {
				if entry.Word != args[0] {
					continue
				}
				found = true
				bookmarked, err := bookmarks.IsBookmarked(cmd.Context(), entry.ID)
				if err != nil {
					return fmt.Errorf("bookmarks.IsBookmarked() > %w", err)
				}
				display.Entry(entry, bookmarked)
			}
			if !found {
				return fmt.Errorf("no entry for %q", args[0])
			}
			return nil
		},
	}
}

func newRandomCommand() *cobra.Command {
	var count int

	command := &cobra.Command{
		Use:   "random",
		Short: "Show a random sample of entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			idx, err := loadIndex(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			display := cli.NewDisplay(os.Stdout)
			for _, entry := range idx.RandomSample(count) {
				display.Entry(entry, false)
			}
			return nil
		},
	}
	command.Flags().IntVar(&count, "count", 10, "number of entries to sample")

	return command
}
