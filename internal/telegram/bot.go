package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/ObiAU/hfnewsgenerator/internal/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// Publisher announces a freshly generated page to one chat.
type Publisher struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewPublisher(token string, chatID int64) (*Publisher, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Publisher{api: bot, chatID: chatID}, nil
}

// NewPublisherWithClient builds a Publisher against a custom endpoint, in
// the tgbotapi format "https://host/bot%s/%s".
func NewPublisherWithClient(token, endpoint string, client tgbotapi.HTTPClient, chatID int64) (*Publisher, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Publisher{api: bot, chatID: chatID}, nil
}

// Announce sends the list of published titles. Errors are returned for the
// caller to log; a failed notice never affects the page.
func (p *Publisher) Announce(output string, articles []models.Article) error {
	msg := tgbotapi.NewMessage(p.chatID, formatAnnouncement(output, articles))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	if _, err := p.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	log.Info().Int64("chat_id", p.chatID).Int("articles", len(articles)).Msg("Publication announced")
	return nil
}

func formatAnnouncement(output string, articles []models.Article) string {
	var sb strings.Builder
	sb.WriteString("📰 <b>Novas notícias publicadas</b>\n\n")
	for i, a := range articles {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, html.EscapeString(a.Title)))
	}
	sb.WriteString(fmt.Sprintf("\n📄 %s", html.EscapeString(output)))
	return sb.String()
}
