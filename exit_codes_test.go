package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ObiAU/hfnewsgenerator/internal/config"
	"github.com/ObiAU/hfnewsgenerator/internal/generator"
	"github.com/ObiAU/hfnewsgenerator/internal/inference"
	"github.com/ObiAU/hfnewsgenerator/internal/render"
	"github.com/ObiAU/hfnewsgenerator/internal/sources"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		// Soft outcomes
		{"no articles", generator.ErrNoArticles, ExitSuccess},
		{"no topics", fmt.Errorf("%w from model: %w", generator.ErrNoTopics, sources.ErrNoTopics), ExitSuccess},
		{"topics backend down", fmt.Errorf("%w from model: %w", generator.ErrNoTopics, inference.ErrUnavailable), ExitSuccess},

		// Interrupted
		{"canceled", context.Canceled, ExitInterrupted},
		{"canceled during topics", fmt.Errorf("%w from model: %w", generator.ErrNoTopics, context.Canceled), ExitInterrupted},

		// Usage
		{"env file", fmt.Errorf("%w: open x: no such file", ErrEnvFile), ExitUsage},
		{"missing token", config.ErrMissingToken, ExitUsage},
		{"article count", fmt.Errorf("%w: 0", config.ErrInvalidArticleCount), ExitUsage},
		{"backend", config.ErrUnknownBackend, ExitUsage},
		{"topic source", config.ErrUnknownTopicSource, ExitUsage},
		{"chat id", config.ErrInvalidChatID, ExitUsage},

		// Fatal
		{"template not found", fmt.Errorf("render: %w", render.ErrTemplateNotFound), ExitGeneral},
		{"placeholder missing", render.ErrPlaceholderMissing, ExitGeneral},
		{"write output", render.ErrWriteOutput, ExitGeneral},
		{"unknown", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()
	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("Unix convention codes = %d/%d/%d, want 0/1/2", ExitSuccess, ExitGeneral, ExitUsage)
	}
	if ExitInterrupted != 128+2 {
		t.Errorf("ExitInterrupted = %d, want 128+SIGINT", ExitInterrupted)
	}
}
