package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ObiAU/hfnewsgenerator/internal/models"
	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog/log"
)

// TrendsSource reads topics from a trending-searches RSS feed, one topic
// per item title.
type TrendsSource struct {
	feedURL string
	client  *http.Client
}

func NewTrendsSource(feedURL string, client *http.Client) *TrendsSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &TrendsSource{feedURL: feedURL, client: client}
}

func (s *TrendsSource) Topics(ctx context.Context, limit int) ([]models.Topic, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch trends feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends feed returned status %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse trends feed: %w", err)
	}

	var topics []models.Topic
	for _, item := range feed.Items {
		if len(topics) >= limit+topicSlack {
			break
		}
		if title := strings.TrimSpace(item.Title); title != "" {
			topics = append(topics, models.Topic(title))
		}
	}

	if len(topics) == 0 {
		return nil, fmt.Errorf("%w in feed %s", ErrNoTopics, s.feedURL)
	}

	log.Info().Strs("topics", topicStrings(topics)).Str("feed", s.feedURL).Msg("Topics found")
	return topics, nil
}

func (s *TrendsSource) Name() string {
	return "trends"
}
