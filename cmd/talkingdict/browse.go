package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jfortier/talkingdict/internal/cli"
	"github.com/jfortier/talkingdict/internal/index"
)

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the browsing categories with entry counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			idx, err := loadIndex(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			categories := idx.Categories()
			names := make([]string, 0, len(categories))
			for name := range categories {
				names = append(names, name)
			}
			sort.Strings(names)

			cli.NewDisplay(os.Stdout).Categories(categories, names)
			return nil
		},
	}
}

func newLettersCommand() *cobra.Command {
	var category string

	command := &cobra.Command{
		Use:   "letters",
		Short: "List the alphabet letters that occur in the dictionary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			idx, err := loadIndex(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			browse := index.NewBrowse(idx, 1)
			browse.SelectCategory(category)

			cli.NewDisplay(os.Stdout).Letters(browse.Anchors())
			return nil
		},
	}
	command.Flags().StringVar(&category, "category", "", "restrict to one category")

	return command
}
