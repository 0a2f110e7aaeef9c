package models

import (
	"context"
	"strings"
)

// Topic is a short phrase naming a news subject.
type Topic string

func (t Topic) String() string {
	return string(t)
}

type Article struct {
	Topic    Topic  `json:"topic"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Meta     string `json:"meta"`
	ImageURL string `json:"image_url"`
}

// Paragraphs returns the non-blank lines of Content, trimmed.
func (a Article) Paragraphs() []string {
	var paragraphs []string
	for _, line := range strings.Split(a.Content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paragraphs = append(paragraphs, line)
		}
	}
	return paragraphs
}

// MaxMetaLength is the intended upper bound for Meta. It is not enforced.
const MaxMetaLength = 150

type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type TopicSource interface {
	Topics(ctx context.Context, limit int) ([]Topic, error)
	Name() string
}
