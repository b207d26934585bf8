package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jfortier/talkingdict/internal/cli"
	"github.com/jfortier/talkingdict/internal/dictionary"
	"github.com/jfortier/talkingdict/internal/localstore"
)

func newBookmarkCommand() *cobra.Command {
	bookmarkCmd := &cobra.Command{
		Use:   "bookmark",
		Short: "Manage the local bookmark set",
	}

	bookmarkCmd.AddCommand(
		newBookmarkToggleCommand(),
		newBookmarkListCommand(),
		newBookmarkClearCommand(),
	)

	return bookmarkCmd
}

func newBookmarkToggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <entry-id>",
		Short: "Bookmark an entry, or remove an existing bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			bookmarks := localstore.OpenBookmarks(cfg.Store.Path)
			bookmarked, err := bookmarks.Toggle(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("bookmarks.Toggle() > %w", err)
			}
			if bookmarked {
				fmt.Printf("bookmarked %s\n", args[0])
			} else {
				fmt.Printf("removed bookmark %s\n", args[0])
			}
			return nil
		},
	}
}

func newBookmarkListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bookmarked entries",
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
			saved, err := bookmarks.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("bookmarks.List() > %w", err)
			}

			byID := make(map[string]dictionary.Entry)
			for _, entry := range idx.Snapshot().Entries {
				byID[entry.ID] = entry
			}

			display := cli.NewDisplay(os.Stdout)
			for _, bookmark := range saved {
				entry, ok := byID[bookmark.EntryID]
				if !ok {
					// The dataset may have dropped the entry since it
					// was bookmarked.
					fmt.Printf("  %s (no longer in the dictionary)\n", bookmark.EntryID)
					continue
				}
				display.Entry(entry, true)
			}
			return nil
		},
	}
}

func newBookmarkClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every bookmark",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			bookmarks := localstore.OpenBookmarks(cfg.Store.Path)
			if err := bookmarks.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("bookmarks.Clear() > %w", err)
			}
			fmt.Println("bookmarks cleared")
			return nil
		},
	}
}
