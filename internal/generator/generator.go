// Package generator runs one content-generation pass: topics, articles,
// images, page.
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ObiAU/hfnewsgenerator/internal/cache"
	"github.com/ObiAU/hfnewsgenerator/internal/inference"
	"github.com/ObiAU/hfnewsgenerator/internal/models"
	"github.com/ObiAU/hfnewsgenerator/internal/parse"
	"github.com/ObiAU/hfnewsgenerator/internal/render"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNoTopics means the topic source gave nothing to work with.
	ErrNoTopics = errors.New("could not obtain topics")
	// ErrNoArticles means every topic failed; no page was written.
	ErrNoArticles = errors.New("no articles were generated")
)

// ImageGenerator returns an image URL for a title. It must not fail.
type ImageGenerator interface {
	DataURI(ctx context.Context, title string) string
}

// Announcer is notified after the page is written.
type Announcer interface {
	Announce(output string, articles []models.Article) error
}

type Options struct {
	Articles     int
	TemplatePath string
	OutputPath   string
	// ImagePause is waited between an article's text and its image.
	ImagePause time.Duration
}

type Generator struct {
	topics    models.TopicSource
	llm       models.TextGenerator
	images    ImageGenerator
	announcer Announcer
	cache     *cache.Cache
	opts      Options
	sleep     inference.SleepFunc
}

func New(topics models.TopicSource, llm models.TextGenerator, images ImageGenerator, opts Options) *Generator {
	return &Generator{
		topics: topics,
		llm:    llm,
		images: images,
		cache:  cache.New(),
		opts:   opts,
		sleep:  inference.Sleep,
	}
}

// WithAnnouncer sets an optional publication announcer.
func (g *Generator) WithAnnouncer(a Announcer) *Generator {
	g.announcer = a
	return g
}

// Result summarises a finished run.
type Result struct {
	Topics   []models.Topic
	Articles []models.Article
	Output   string
}

// Run executes the pipeline. Per-topic failures are logged and skipped.
// Topic lookup failures and an empty article list are returned as errors
// without writing a page; so are render failures.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	log.Info().Str("source", g.topics.Name()).Msg("Fetching trending topics")

	topics, err := g.topics.Topics(ctx, g.opts.Articles)
	if err != nil {
		return nil, fmt.Errorf("%w from %s: %w", ErrNoTopics, g.topics.Name(), err)
	}

	selected := g.selectTopics(topics)
	result := &Result{Topics: selected}

	for _, topic := range selected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		article, err := g.generateArticle(ctx, topic)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logTopicFailure(topic, err)
			continue
		}

		if err := g.sleep(ctx, g.opts.ImagePause); err != nil {
			return nil, err
		}
		article.ImageURL = g.images.DataURI(ctx, article.Title)

		g.cache.AddArticle(article)
		result.Articles = append(result.Articles, article)
	}

	stats := g.cache.Stats()
	log.Info().Interface("stats", stats).Msg("Topics processed")

	if len(result.Articles) == 0 {
		return result, ErrNoArticles
	}

	log.Info().Int("articles", len(result.Articles)).Str("template", g.opts.TemplatePath).Msg("Assembling page")
	if err := render.Page(g.opts.TemplatePath, g.opts.OutputPath, result.Articles); err != nil {
		return result, err
	}
	result.Output = g.opts.OutputPath
	log.Info().Str("output", result.Output).Msg("Page generated")

	if g.announcer != nil {
		if err := g.announcer.Announce(result.Output, result.Articles); err != nil {
			log.Warn().Err(err).Msg("Publication notice failed")
		}
	}

	return result, nil
}

// selectTopics keeps the first distinct topics, up to the article count.
// Failed topics are not replaced by later ones.
func (g *Generator) selectTopics(topics []models.Topic) []models.Topic {
	selected := make([]models.Topic, 0, g.opts.Articles)
	for _, topic := range topics {
		if len(selected) >= g.opts.Articles {
			break
		}
		if !g.cache.MarkProcessed(topic) {
			log.Info().Str("topic", topic.String()).Msg("Skipping duplicate topic")
			continue
		}
		selected = append(selected, topic)
	}
	return selected
}

func logTopicFailure(topic models.Topic, err error) {
	event := log.Error().Err(err).Str("topic", topic.String())
	switch {
	case errors.Is(err, parse.ErrMalformed), errors.Is(err, inference.ErrMalformedResponse):
		event.Msg("Model returned output in the wrong format, skipping topic")
	case errors.Is(err, inference.ErrUnavailable):
		event.Msg("Text backend unavailable, skipping topic")
	default:
		event.Msg("Article generation failed, skipping topic")
	}
}
