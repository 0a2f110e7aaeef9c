package sources

import (
	"context"
	"errors"
	"fmt"

	"github.com/ObiAU/hfnewsgenerator/internal/models"
	"github.com/ObiAU/hfnewsgenerator/internal/parse"
	"github.com/rs/zerolog/log"
)

var ErrNoTopics = errors.New("no topics found")

// topicSlack is how many extra topics are requested beyond what will be
// used, so duplicates and failures still leave enough to work with.
const topicSlack = 2

// ModelSource asks a text model for trending topics.
type ModelSource struct {
	llm models.TextGenerator
}

func NewModelSource(llm models.TextGenerator) *ModelSource {
	return &ModelSource{llm: llm}
}

func TopicsPrompt(count int) string {
	return fmt.Sprintf("Liste %d tópicos de notícias muito populares no Brasil neste momento. "+
		"Retorne apenas os nomes dos tópicos, separados por ponto e vírgula. "+
		"Exemplo: Reforma tributária;Novidades do futebol brasileiro;Lançamentos de tecnologia no Brasil", count)
}

func (s *ModelSource) Topics(ctx context.Context, limit int) ([]models.Topic, error) {
	prompt := TopicsPrompt(limit + topicSlack)

	generated, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate topics: %w", err)
	}

	topics := parse.Topics(generated, prompt)
	if len(topics) == 0 {
		return nil, fmt.Errorf("%w in model output %q", ErrNoTopics, truncate(generated, 200))
	}

	log.Info().Strs("topics", topicStrings(topics)).Msg("Topics found")
	return topics, nil
}

func (s *ModelSource) Name() string {
	return "model"
}

func topicStrings(topics []models.Topic) []string {
	out := make([]string, len(topics))
	for i, t := range topics {
		out[i] = string(t)
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
