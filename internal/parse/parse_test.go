package parse_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ObiAU/hfnewsgenerator/internal/models"
	"github.com/ObiAU/hfnewsgenerator/internal/parse"
)

// ---------------------------------------------------------------------------
// TestTopics - Semicolon-delimited topic lists
// ---------------------------------------------------------------------------

func TestTopics(t *testing.T) {
	t.Parallel()

	const prompt = "Liste 5 tópicos."

	tests := []struct {
		name      string
		generated string
		want      []models.Topic
	}{
		{
			name:      "echoed prompt removed",
			generated: prompt + " Reforma tributária; Futebol ;Tecnologia",
			want:      []models.Topic{"Reforma tributária", "Futebol", "Tecnologia"},
		},
		{
			name:      "empty segments dropped",
			generated: ";;Eleições;  ; Clima;",
			want:      []models.Topic{"Eleições", "Clima"},
		},
		{
			name:      "no semicolons gives one topic",
			generated: "Apenas um tópico sem separador",
			want:      []models.Topic{"Apenas um tópico sem separador"},
		},
		{
			name:      "only the prompt gives nothing",
			generated: prompt,
			want:      nil,
		},
		{
			name:      "blank output gives nothing",
			generated: "   \n  ",
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parse.Topics(tt.generated, prompt)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Topics(%q) = %q, want %q", tt.generated, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestArticle - Labelled article output
// ---------------------------------------------------------------------------

func TestArticle_WellFormed(t *testing.T) {
	t.Parallel()

	const prompt = "Escreva um artigo."
	generated := prompt + `
TITULO: Brasil vence a Copa
CONTEUDO: Primeiro parágrafo.

Segundo parágrafo.
   Terceiro parágrafo.
METADESCRIPTION: Resumo curto da vitória.`

	got, err := parse.Article(generated, prompt)
	if err != nil {
		t.Fatalf("Article() error = %v", err)
	}

	want := models.Article{
		Title:   "Brasil vence a Copa",
		Content: "Primeiro parágrafo.\nSegundo parágrafo.\nTerceiro parágrafo.",
		Meta:    "Resumo curto da vitória.",
	}
	if got != want {
		t.Errorf("Article() = %+v, want %+v", got, want)
	}
}

func TestArticle_Variants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		generated string
		want      models.Article
		wantErr   error
	}{
		{
			name:      "content on following lines only",
			generated: "TITULO: T\nCONTEUDO:\nLinha um\nLinha dois",
			want:      models.Article{Title: "T", Content: "Linha um\nLinha dois"},
		},
		{
			name:      "indented labels",
			generated: "    TITULO: T\n    CONTEUDO: C\n    METADESCRIPTION: M",
			want:      models.Article{Title: "T", Content: "C", Meta: "M"},
		},
		{
			name:      "preamble and trailing chatter ignored",
			generated: "Claro! Aqui está:\nTITULO: T\ncontinuação ignorada\nCONTEUDO: C\nMETADESCRIPTION: M\nEspero ter ajudado.",
			want:      models.Article{Title: "T", Content: "C", Meta: "M"},
		},
		{
			name:      "meta before content",
			generated: "METADESCRIPTION: M\nTITULO: T\nCONTEUDO: C",
			want:      models.Article{Title: "T", Content: "C", Meta: "M"},
		},
		{
			name:      "missing meta is allowed",
			generated: "TITULO: T\nCONTEUDO: C",
			want:      models.Article{Title: "T", Content: "C"},
		},
		{
			name:      "missing content label",
			generated: "TITULO: T\nUm parágrafo solto.\nMETADESCRIPTION: M",
			wantErr:   parse.ErrMissingContent,
		},
		{
			name:      "empty content",
			generated: "TITULO: T\nCONTEUDO:\n\nMETADESCRIPTION: M",
			wantErr:   parse.ErrMissingContent,
		},
		{
			name:      "missing title",
			generated: "CONTEUDO: C\nMETADESCRIPTION: M",
			wantErr:   parse.ErrMissingTitle,
		},
		{
			name:      "empty title",
			generated: "TITULO:   \nCONTEUDO: C",
			wantErr:   parse.ErrMissingTitle,
		},
		{
			name:      "duplicate label",
			generated: "TITULO: A\nCONTEUDO: C\nTITULO: B",
			wantErr:   parse.ErrDuplicateField,
		},
		{
			name:      "lowercase labels are not labels",
			generated: "titulo: T\nconteudo: C",
			wantErr:   parse.ErrMissingTitle,
		},
		{
			name:      "empty output",
			generated: "",
			wantErr:   parse.ErrMissingTitle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := parse.Article(tt.generated, "")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Article() error = %v, want %v", err, tt.wantErr)
				}
				if !errors.Is(err, parse.ErrMalformed) {
					t.Errorf("Article() error = %v does not wrap ErrMalformed", err)
				}
				if got != (models.Article{}) {
					t.Errorf("Article() returned partial data %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Article() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Article() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStripPrompt(t *testing.T) {
	t.Parallel()

	if got := parse.StripPrompt("  P resposta P  ", "P"); got != "resposta" {
		t.Errorf("StripPrompt() = %q, want %q", got, "resposta")
	}
	if got := parse.StripPrompt(" texto ", ""); got != "texto" {
		t.Errorf("StripPrompt(empty prompt) = %q, want %q", got, "texto")
	}
}
