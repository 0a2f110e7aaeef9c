// Package parse turns raw model output into topics and articles.
//
// Article text is expected in a labelled form:
//
//	TITULO: <title>
//	CONTEUDO: <first paragraph>
//	<more paragraphs>
//	METADESCRIPTION: <meta description>
//
// Labels must start a line (leading whitespace is allowed) and may appear at
// most once. Only content spans several lines; stray lines before the first
// label or after the title and description are ignored.
package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ObiAU/hfnewsgenerator/internal/models"
)

var (
	ErrMalformed      = errors.New("malformed model output")
	ErrMissingTitle   = fmt.Errorf("%w: missing TITULO", ErrMalformed)
	ErrMissingContent = fmt.Errorf("%w: missing CONTEUDO", ErrMalformed)
	ErrDuplicateField = fmt.Errorf("%w: duplicate label", ErrMalformed)
)

const (
	LabelTitle   = "TITULO:"
	LabelContent = "CONTEUDO:"
	LabelMeta    = "METADESCRIPTION:"
)

type field int

const (
	fieldNone field = iota
	fieldTitle
	fieldContent
	fieldMeta
)

var labels = []struct {
	prefix string
	field  field
}{
	{LabelTitle, fieldTitle},
	{LabelContent, fieldContent},
	{LabelMeta, fieldMeta},
}

// StripPrompt removes every echo of prompt from generated and trims the rest.
func StripPrompt(generated, prompt string) string {
	if prompt != "" {
		generated = strings.ReplaceAll(generated, prompt, "")
	}
	return strings.TrimSpace(generated)
}

// Topics splits generated on semicolons after removing the echoed prompt.
// Segments are trimmed and empty ones dropped; the result may be empty.
func Topics(generated, prompt string) []models.Topic {
	var topics []models.Topic
	for _, segment := range strings.Split(StripPrompt(generated, prompt), ";") {
		if segment = strings.TrimSpace(segment); segment != "" {
			topics = append(topics, models.Topic(segment))
		}
	}
	return topics
}

// Article parses labelled model output. Title and content are required; a
// missing description is left empty.
func Article(generated, prompt string) (models.Article, error) {
	var (
		article models.Article
		content []string
		seen    = make(map[field]bool)
		current = fieldNone
	)

	for i, raw := range strings.Split(StripPrompt(generated, prompt), "\n") {
		line := strings.TrimSpace(raw)

		if f, rest, ok := cutLabel(line); ok {
			if seen[f] {
				return models.Article{}, fmt.Errorf("%w on line %d: %q", ErrDuplicateField, i+1, line)
			}
			seen[f] = true
			current = f

			switch f {
			case fieldTitle:
				article.Title = rest
			case fieldContent:
				if rest != "" {
					content = append(content, rest)
				}
			case fieldMeta:
				article.Meta = rest
			}
			continue
		}

		if current == fieldContent && line != "" {
			content = append(content, line)
		}
	}

	article.Content = strings.Join(content, "\n")

	if article.Title == "" {
		return models.Article{}, ErrMissingTitle
	}
	if article.Content == "" {
		return models.Article{}, ErrMissingContent
	}
	return article, nil
}

func cutLabel(line string) (field, string, bool) {
	for _, l := range labels {
		if rest, ok := strings.CutPrefix(line, l.prefix); ok {
			return l.field, strings.TrimSpace(rest), true
		}
	}
	return fieldNone, "", false
}
