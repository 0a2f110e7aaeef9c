// Package render assembles the static page from a template file and the
// generated articles.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"strings"

	"github.com/ObiAU/hfnewsgenerator/internal/models"
)

// Placeholder is the marker in the template replaced with the articles.
const Placeholder = "<!-- PLACEHOLDER_ARTICLES -->"

const untitled = "Artigo sem título"

var (
	ErrTemplateNotFound   = errors.New("template file not found")
	ErrPlaceholderMissing = errors.New("template has no placeholder marker")
	ErrReadTemplate       = errors.New("failed to read template")
	ErrWriteOutput        = errors.New("failed to write output file")
)

var articleTemplate = template.Must(template.New("article").Parse(`
        <article class="article-card bg-white rounded-lg shadow-lg overflow-hidden flex flex-col">
            <img src="{{.ImageURL}}" alt="{{.Alt}}" class="w-full h-48 object-cover">
            <div class="p-6 flex flex-col flex-grow">
                <h2 class="text-2xl font-bold mb-2">{{.Title}}</h2>
                <div class="text-gray-700 leading-relaxed flex-grow">{{range .Paragraphs}}<p class="mb-4">{{.}}</p>{{end}}</div>
                <meta name="description" content="{{.Meta}}">
            </div>
        </article>
        `))

type articleParam struct {
	ImageURL   template.URL
	Alt        string
	Title      string
	Paragraphs []string
	Meta       string
}

// Page reads templatePath, substitutes the rendered articles for every
// placeholder marker and writes the result to outputPath, replacing any
// previous file. Nothing is written when the template cannot be used.
func Page(templatePath, outputPath string, articles []models.Article) error {
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrTemplateNotFound, templatePath)
		}
		return fmt.Errorf("%w: %v", ErrReadTemplate, err)
	}

	page, err := Assemble(string(raw), articles)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, []byte(page), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// Assemble substitutes the rendered articles into tmpl.
func Assemble(tmpl string, articles []models.Article) (string, error) {
	if !strings.Contains(tmpl, Placeholder) {
		return "", ErrPlaceholderMissing
	}

	fragments, err := Articles(articles)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(tmpl, Placeholder, fragments), nil
}

// Articles renders the concatenated HTML fragments, in order.
func Articles(articles []models.Article) (string, error) {
	var b bytes.Buffer
	for _, a := range articles {
		if err := articleTemplate.Execute(&b, newArticleParam(a)); err != nil {
			return "", fmt.Errorf("render article %q: %w", a.Title, err)
		}
	}
	return b.String(), nil
}

func newArticleParam(a models.Article) articleParam {
	alt := a.Title
	if alt == "" {
		alt = untitled
	}
	return articleParam{
		ImageURL:   imageURL(a.ImageURL),
		Alt:        alt,
		Title:      a.Title,
		Paragraphs: a.Paragraphs(),
		Meta:       a.Meta,
	}
}

// imageURL trusts generated data URIs and plain web URLs. Anything else is
// replaced with a harmless fragment.
func imageURL(u string) template.URL {
	lower := strings.ToLower(u)
	switch {
	case strings.HasPrefix(lower, "data:image/"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "http://"):
		return template.URL(u)
	default:
		return template.URL("#")
	}
}
