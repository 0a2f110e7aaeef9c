package generator

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/ObiAU/hfnewsgenerator/internal/models"
	"github.com/ObiAU/hfnewsgenerator/internal/parse"
	"github.com/rs/zerolog/log"
)

// ArticlePrompt asks for a three-paragraph article in the labelled format
// understood by parse.Article.
func ArticlePrompt(topic models.Topic) string {
	return fmt.Sprintf(`Sua tarefa é escrever um artigo completo sobre o tópico: "%s".
Você é um jornalista digital brasileiro, com um tom descontraído e envolvente.
O artigo deve conter um título de notícia chamativo, o conteúdo com 3 parágrafos, e uma meta description para SEO com no máximo %d caracteres.
Retorne o resultado estritamente no seguinte formato:
%s [Seu título aqui]
%s [Seu conteúdo aqui, com parágrafos separados por quebra de linha]
%s [Sua meta description aqui]
`, topic, models.MaxMetaLength, parse.LabelTitle, parse.LabelContent, parse.LabelMeta)
}

func (g *Generator) generateArticle(ctx context.Context, topic models.Topic) (models.Article, error) {
	log.Info().Str("topic", topic.String()).Msg("Generating article")

	prompt := ArticlePrompt(topic)
	generated, err := g.llm.Generate(ctx, prompt)
	if err != nil {
		return models.Article{}, fmt.Errorf("generate article: %w", err)
	}

	article, err := parse.Article(generated, prompt)
	if err != nil {
		return models.Article{}, fmt.Errorf("parse article: %w", err)
	}
	article.Topic = topic

	if n := utf8.RuneCountInString(article.Meta); n > models.MaxMetaLength {
		log.Warn().Str("title", article.Title).Int("length", n).Msg("Meta description longer than intended")
	}

	log.Info().Str("title", article.Title).Msg("Article generated")
	return article, nil
}
