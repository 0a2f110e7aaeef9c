package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	BackendInference = "inference"
	BackendOpenAI    = "openai"

	SourceModel  = "model"
	SourceTrends = "trends"
)

const DefaultPlaceholderImageURL = "https://placehold.co/600x400/3498db/ffffff?text=Imagem+Indispon%C3%ADvel"

var (
	ErrMissingToken        = errors.New("HUGGINGFACE_API_TOKEN is not set")
	ErrInvalidArticleCount = errors.New("article count must be positive")
	ErrUnknownBackend      = errors.New("unknown text backend")
	ErrUnknownTopicSource  = errors.New("unknown topic source")
	ErrInvalidChatID       = errors.New("invalid telegram chat id")
)

type Config struct {
	HuggingFaceToken string
	TextModelURL     string
	ImageModelURL    string
	TextBackend      string
	OpenAIBaseURL    string
	OpenAIModel      string
	MaxNewTokens     int

	TopicSource   string
	TrendsFeedURL string

	ArticlesToGenerate  int
	TemplateFilename    string
	OutputFilename      string
	PlaceholderImageURL string

	Retries     int
	RetryWait   time.Duration
	ImagePause  time.Duration
	HTTPTimeout time.Duration

	TelegramToken  string
	TelegramChatID string

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	return &Config{
		HuggingFaceToken: getEnv("HUGGINGFACE_API_TOKEN", ""),
		TextModelURL:     getEnv("TEXT_MODEL_API_URL", "https://api-inference.huggingface.co/models/mistralai/Mixtral-8x7B-Instruct-v0.1"),
		ImageModelURL:    getEnv("IMAGE_MODEL_API_URL", "https://api-inference.huggingface.co/models/stabilityai/stable-diffusion-xl-base-1.0"),
		TextBackend:      getEnv("TEXT_BACKEND", BackendInference),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://router.huggingface.co/v1"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "mistralai/Mixtral-8x7B-Instruct-v0.1"),
		MaxNewTokens:     getEnvAsInt("MAX_NEW_TOKENS", 0),

		TopicSource:   getEnv("TOPIC_SOURCE", SourceModel),
		TrendsFeedURL: getEnv("TRENDS_FEED_URL", "https://trends.google.com/trending/rss?geo=BR"),

		ArticlesToGenerate:  getEnvAsInt("ARTICLES_TO_GENERATE", 3),
		TemplateFilename:    getEnv("TEMPLATE_FILENAME", "template.html"),
		OutputFilename:      getEnv("OUTPUT_FILENAME", "index.html"),
		PlaceholderImageURL: getEnv("PLACEHOLDER_IMAGE_URL", DefaultPlaceholderImageURL),

		Retries:     getEnvAsInt("API_RETRIES", 3),
		RetryWait:   getEnvAsDuration("API_RETRY_WAIT", 10*time.Second),
		ImagePause:  getEnvAsDuration("IMAGE_PAUSE", 5*time.Second),
		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", 120*time.Second),

		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID: getEnv("TELEGRAM_CHAT_ID", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
}

// Validate reports the first configuration problem that must stop the run
// before any network call is made.
func (c *Config) Validate() error {
	if c.HuggingFaceToken == "" {
		return ErrMissingToken
	}
	if c.ArticlesToGenerate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidArticleCount, c.ArticlesToGenerate)
	}
	switch c.TextBackend {
	case BackendInference, BackendOpenAI:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.TextBackend)
	}
	switch c.TopicSource {
	case SourceModel, SourceTrends:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTopicSource, c.TopicSource)
	}
	if c.TelegramChatID != "" {
		if _, err := c.ChatID(); err != nil {
			return err
		}
	}
	return nil
}

// ChatID parses TelegramChatID.
func (c *Config) ChatID() (int64, error) {
	id, err := strconv.ParseInt(c.TelegramChatID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChatID, c.TelegramChatID)
	}
	return id, nil
}

// TelegramEnabled reports whether a publication notice should be sent.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
