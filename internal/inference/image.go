package inference

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	"github.com/rs/zerolog/log"
)

const defaultImageMIME = "image/png"

// ImageModel is an image-generation endpoint answering with raw image bytes.
type ImageModel struct {
	client      *Client
	url         string
	placeholder string
}

func NewImageModel(client *Client, url, placeholder string) *ImageModel {
	return &ImageModel{client: client, url: url, placeholder: placeholder}
}

// ImagePrompt is the prompt sent for an article titled title.
func ImagePrompt(title string) string {
	return fmt.Sprintf("photorealistic, news portal style, high quality photo for an article about: '%s'", title)
}

// DataURI generates an image for title and returns it as a base64 data URI.
// Any failure yields the placeholder URL instead.
func (m *ImageModel) DataURI(ctx context.Context, title string) string {
	log.Info().Str("title", title).Msg("Generating image")

	resp, err := m.client.Post(ctx, m.url, textRequest{Inputs: ImagePrompt(title)})
	if err != nil {
		log.Warn().Err(err).Str("title", title).Msg("Image generation failed, using placeholder")
		return m.placeholder
	}
	if len(resp.Body) == 0 {
		log.Warn().Str("title", title).Msg("Image endpoint returned an empty body, using placeholder")
		return m.placeholder
	}

	return "data:" + imageMIME(resp.Header.Get("Content-Type")) + ";base64," + base64.StdEncoding.EncodeToString(resp.Body)
}

func imageMIME(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return defaultImageMIME
	}
	return mediaType
}
