package main

import (
	"context"
	"errors"

	"github.com/ObiAU/hfnewsgenerator/internal/config"
	"github.com/ObiAU/hfnewsgenerator/internal/generator"
)

// Exit codes follow Unix conventions: 0=success, 1=general, 2=usage,
// 128+SIGINT for an interrupted run.
const (
	ExitSuccess     = 0   // Page written, or nothing to publish
	ExitGeneral     = 1   // Render failure or unexpected error
	ExitUsage       = 2   // Invalid flags or configuration
	ExitInterrupted = 130 // SIGINT or SIGTERM
)

// ErrEnvFile is reported when an explicitly requested dotenv file cannot be
// loaded.
var ErrEnvFile = errors.New("cannot load env file")

// exitCodeFor maps a run error to an exit code. No topics and no articles
// are soft outcomes: nothing is written and the run still succeeds.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}

	if errors.Is(err, generator.ErrNoTopics) ||
		errors.Is(err, generator.ErrNoArticles) {
		return ExitSuccess
	}

	if errors.Is(err, ErrEnvFile) ||
		errors.Is(err, config.ErrMissingToken) ||
		errors.Is(err, config.ErrInvalidArticleCount) ||
		errors.Is(err, config.ErrUnknownBackend) ||
		errors.Is(err, config.ErrUnknownTopicSource) ||
		errors.Is(err, config.ErrInvalidChatID) {
		return ExitUsage
	}

	return ExitGeneral
}
