package inference

import (
	"context"
	"encoding/json"
	"fmt"
)

type textRequest struct {
	Inputs     string          `json:"inputs"`
	Parameters *textParameters `json:"parameters,omitempty"`
}

type textParameters struct {
	MaxNewTokens int `json:"max_new_tokens,omitempty"`
}

type generation struct {
	GeneratedText *string `json:"generated_text"`
}

// TextModel is a text-generation endpoint. The generated text usually
// echoes the prompt; callers strip it.
type TextModel struct {
	client       *Client
	url          string
	maxNewTokens int
}

func NewTextModel(client *Client, url string, maxNewTokens int) *TextModel {
	return &TextModel{client: client, url: url, maxNewTokens: maxNewTokens}
}

func (m *TextModel) Generate(ctx context.Context, prompt string) (string, error) {
	req := textRequest{Inputs: prompt}
	if m.maxNewTokens > 0 {
		req.Parameters = &textParameters{MaxNewTokens: m.maxNewTokens}
	}

	resp, err := m.client.Post(ctx, m.url, req)
	if err != nil {
		return "", err
	}

	return decodeGeneratedText(resp.Body)
}

// decodeGeneratedText accepts the list form [{"generated_text": ...}] and a
// bare object.
func decodeGeneratedText(body []byte) (string, error) {
	var list []generation
	if err := json.Unmarshal(body, &list); err == nil {
		if len(list) == 0 || list[0].GeneratedText == nil {
			return "", fmt.Errorf("%w: no generated_text in %s", ErrMalformedResponse, truncate(body, 200))
		}
		return *list[0].GeneratedText, nil
	}

	var single generation
	if err := json.Unmarshal(body, &single); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if single.GeneratedText == nil {
		return "", fmt.Errorf("%w: no generated_text in %s", ErrMalformedResponse, truncate(body, 200))
	}
	return *single.GeneratedText, nil
}
