package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"ginnybot/internal/bootstrap"
	"ginnybot/internal/config"
	"ginnybot/internal/database"
	"ginnybot/internal/inference/openai"
	"ginnybot/internal/line"
	"ginnybot/internal/news"
	_ "ginnybot/internal/news/tagesschau"
	"ginnybot/internal/server"
	"ginnybot/internal/vocabulary"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "ginnybot-server",
		Short:         "LINE bot server for German vocabulary learning",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	app := bootstrap.New(logger)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook(func(ctx context.Context) error {
		return db.Close()
	})

	aiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.Timeout, cfg.OpenAI.MaxRetryAttempts)
	lineClient := line.NewClient(cfg.Line.ChannelToken, cfg.Line.Timeout)
	app.AddShutdownHook(func(ctx context.Context) error {
		return lineClient.Close()
	})

	extractor := vocabulary.NewExtractor(aiClient, logger)
	repository := vocabulary.NewDBRepository(db)
	vocabService := vocabulary.NewService(extractor, repository, logger, vocabulary.ServiceOptions{
		Level:   cfg.Extraction.Level,
		Count:   cfg.Extraction.Count,
		Timeout: cfg.Extraction.Timeout,
	})

	scraper, err := news.New(cfg.News.Scraper, cfg.News.RequestURL)
	if err != nil {
		return fmt.Errorf("news.New() > %w", err)
	}

	router := server.NewRouter(cfg.Analyzer.VocabularyTrigger)
	e := server.New(
		server.NewWebhookHandler(cfg.Line.ChannelSecret, router, vocabService, aiClient, lineClient, logger),
		server.NewAnalyzerHandler(cfg.Analyzer.APIKey, cfg.Extraction.MinWordCount, aiClient, vocabService, logger),
		server.NewNewsHandler(scraper, lineClient, cfg.Line.UserID, logger),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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
