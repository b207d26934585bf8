package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/jfortier/talkingdict/internal/bootstrap"
	"github.com/jfortier/talkingdict/internal/config"
	"github.com/jfortier/talkingdict/internal/dataset"
	"github.com/jfortier/talkingdict/internal/dictionary"
	"github.com/jfortier/talkingdict/internal/index"
	"github.com/jfortier/talkingdict/internal/report"
	"github.com/jfortier/talkingdict/internal/server"
)

var configFile string

func main() {
	var debugMode bool
	rootCmd := &cobra.Command{
		Use:           "talkingdict-server",
		Short:         "Dictionary dataset HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

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

func run(ctx context.Context) error {
	lifecycle := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	slug := dictionary.Slug(cfg.Data.Language)
	loader := dataset.NewLoader(cfg.Data.Directory, cfg.Data.RemoteBaseURL, cfg.Data.CacheDirectory)
	entries, siteConfig, err := loader.Load(ctx, slug)
	if err != nil {
		return fmt.Errorf("loader.Load() > %w", err)
	}

	idx := index.New(entries, siteConfig, index.Options{
		AudioCategoryThreshold: cfg.Categories.AudioThreshold,
		ForceAudioCategory:     cfg.Categories.ForceAudio,
	})
	idx.Subscribe(func(snapshot *index.Snapshot) {
		slog.Info("snapshot replaced",
			slog.Int("version", snapshot.Version),
			slog.Int("entries", len(snapshot.Entries)),
		)
	})

	var relay *report.Relay
	if cfg.Report.MaintainerAddress != "" {
		mailer := report.NewSMTPMailer(report.SMTPConfig{
			Host:     cfg.Report.SMTP.Host,
			Port:     cfg.Report.SMTP.Port,
			Username: cfg.Report.SMTP.Username,
			Password: cfg.Report.SMTP.Password,
			From:     cfg.Report.FromAddress,
		})
		relay = report.NewRelay(cfg.Report.AllowedOrigins, cfg.Report.MaintainerAddress, mailer)
	}

	handler := server.NewHandler(idx, cfg.Search.MaxEditDistance, relay, cfg.Data.AudioDirectory)

	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.CORSMiddleware(
			h2c.NewHandler(handler.Mux(), &http2.Server{}),
			cfg.Server.CORS.AllowedOrigins,
		),
	}
	lifecycle.OnShutdown(srv.Shutdown)

	return lifecycle.Run(ctx, func(ctx context.Context) error {
		// SIGHUP re-reads the dataset and installs it as a new snapshot.
		reload := make(chan os.Signal, 1)
		signal.Notify(reload, syscall.SIGHUP)
		defer signal.Stop(reload)
		go func() {
			for range reload {
				loader.Reload(ctx, slug, func(entries []dictionary.Entry, siteConfig dictionary.SiteConfig) {
					idx.Replace(entries, siteConfig)
				})
			}
		}()

		slog.Info("starting server", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
