package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/ObiAU/hfnewsgenerator/internal/ai"
	"github.com/ObiAU/hfnewsgenerator/internal/config"
	"github.com/ObiAU/hfnewsgenerator/internal/generator"
	"github.com/ObiAU/hfnewsgenerator/internal/inference"
	"github.com/ObiAU/hfnewsgenerator/internal/logging"
	"github.com/ObiAU/hfnewsgenerator/internal/models"
	"github.com/ObiAU/hfnewsgenerator/internal/sources"
	"github.com/ObiAU/hfnewsgenerator/internal/telegram"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("hfnewsgenerator", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	envFile := fs.String("env-file", ".env", "dotenv file loaded before reading the environment")
	templatePath := fs.String("template", "", "HTML template containing the articles placeholder")
	outputPath := fs.String("output", "", "path of the generated page")
	articles := fs.Int("articles", 0, "number of articles to generate")
	topicSource := fs.String("topic-source", "", "where topics come from (model, trends)")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	showVersion := fs.Bool("version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}
	if *showVersion {
		fmt.Fprintf(stdout, "hfnewsgenerator %s\n", Version)
		return ExitSuccess
	}

	// godotenv never overrides variables already set in the environment.
	envErr := godotenv.Load(*envFile)
	if envErr != nil && fs.Changed("env-file") {
		fmt.Fprintf(stderr, "error: %v: %v\n", ErrEnvFile, envErr)
		return ExitUsage
	}

	cfg := config.Load()
	if fs.Changed("template") {
		cfg.TemplateFilename = *templatePath
	}
	if fs.Changed("output") {
		cfg.OutputFilename = *outputPath
	}
	if fs.Changed("articles") {
		cfg.ArticlesToGenerate = *articles
	}
	if fs.Changed("topic-source") {
		cfg.TopicSource = *topicSource
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}

	logging.Setup(stderr, cfg.LogLevel, cfg.LogFormat, uuid.NewString())
	if envErr != nil {
		log.Debug().Str("file", *envFile).Msg("No dotenv file loaded, using the environment")
	}

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("Invalid configuration")
		return exitCodeFor(err)
	}

	g := newGenerator(cfg)

	log.Info().Str("version", Version).Int("articles", cfg.ArticlesToGenerate).
		Str("backend", cfg.TextBackend).Msg("Starting content generation")

	result, err := g.Run(ctx)
	code := exitCodeFor(err)
	switch {
	case err == nil:
		log.Info().Int("articles", len(result.Articles)).Str("output", result.Output).Msg("Content generation finished")
	case code == ExitSuccess:
		log.Warn().Err(err).Msg("Nothing to publish, no page written")
	case code == ExitInterrupted:
		log.Warn().Msg("Interrupted, no page written")
	default:
		log.Error().Err(err).Msg("Content generation failed")
	}
	return code
}

// newGenerator wires the configured backends into a Generator.
func newGenerator(cfg *config.Config) *generator.Generator {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	client := inference.NewClient(cfg.HuggingFaceToken,
		inference.WithHTTPClient(httpClient),
		inference.WithRetries(cfg.Retries),
		inference.WithWait(cfg.RetryWait),
	)

	var llm models.TextGenerator
	switch cfg.TextBackend {
	case config.BackendOpenAI:
		llm = ai.NewOpenAIClient(cfg.HuggingFaceToken, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.Retries, httpClient)
	default:
		llm = inference.NewTextModel(client, cfg.TextModelURL, cfg.MaxNewTokens)
	}

	var topics models.TopicSource
	switch cfg.TopicSource {
	case config.SourceTrends:
		topics = sources.NewTrendsSource(cfg.TrendsFeedURL, httpClient)
	default:
		topics = sources.NewModelSource(llm)
	}

	images := inference.NewImageModel(client, cfg.ImageModelURL, cfg.PlaceholderImageURL)

	g := generator.New(topics, llm, images, generator.Options{
		Articles:     cfg.ArticlesToGenerate,
		TemplatePath: cfg.TemplateFilename,
		OutputPath:   cfg.OutputFilename,
		ImagePause:   cfg.ImagePause,
	})

	if cfg.TelegramEnabled() {
		chatID, _ := cfg.ChatID()
		publisher, err := telegram.NewPublisher(cfg.TelegramToken, chatID)
		if err != nil {
			log.Warn().Err(err).Msg("Telegram disabled")
		} else {
			g.WithAnnouncer(publisher)
		}
	}

	return g
}
