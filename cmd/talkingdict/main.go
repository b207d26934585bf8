package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jfortier/talkingdict/internal/config"
	"github.com/jfortier/talkingdict/internal/dataset"
	"github.com/jfortier/talkingdict/internal/dictionary"
	"github.com/jfortier/talkingdict/internal/index"
)

var (
	configFile string
)

func main() {
	var debugMode bool
	rootCommand := cobra.Command{
		Use:           "talkingdict",
		Short:         "Browse, search and export a compiled dictionary dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	rootCommand.AddCommand(
		newSearchCommand(),
		newShowCommand(),
		newRandomCommand(),
		newCategoriesCommand(),
		newLettersCommand(),
		newBookmarkCommand(),
		newPrefsCommand(),
		newExportCommand(),
		newValidateCommand(),
		newFetchCommand(),
	)
	if err := rootCommand.Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
	os.Exit(0)
}

// setupLogger configures the default logger based on debug mode
func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		})),
	)
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

// loadIndex loads the configured dataset into an index.
func loadIndex(ctx context.Context, cfg *config.Config) (*index.Index, error) {
	loader := dataset.NewLoader(cfg.Data.Directory, cfg.Data.RemoteBaseURL, cfg.Data.CacheDirectory)
	entries, siteConfig, err := loader.Load(ctx, dictionary.Slug(cfg.Data.Language))
	if err != nil {
		return nil, fmt.Errorf("loader.Load() > %w", err)
	}
	return index.New(entries, siteConfig, index.Options{
		AudioCategoryThreshold: cfg.Categories.AudioThreshold,
		ForceAudioCategory:     cfg.Categories.ForceAudio,
	}), nil
}
