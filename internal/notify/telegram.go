package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/donaldgifford/collectopedia/internal/metrics"
)

// TelegramNotifier implements Notifier by messaging a Telegram chat through
// the Bot API.
type TelegramNotifier struct {
	bot          *tgbotapi.BotAPI
	token        string
	chatID       int64
	failuresOnly bool
}

type telegramSettings struct {
	endpoint     string
	client       *http.Client
	failuresOnly bool
}

// TelegramOption configures a TelegramNotifier.
type TelegramOption func(*telegramSettings)

// WithTelegramEndpoint overrides the Bot API URL format
// (tgbotapi.APIEndpoint, e.g. "https://api.telegram.org/bot%s/%s").
func WithTelegramEndpoint(endpoint string) TelegramOption {
	return func(s *telegramSettings) {
		if endpoint != "" {
			s.endpoint = endpoint
		}
	}
}

// WithTelegramHTTPClient sets a custom HTTP client.
func WithTelegramHTTPClient(c *http.Client) TelegramOption {
	return func(s *telegramSettings) {
		s.client = c
	}
}

// WithTelegramFailuresOnly suppresses summaries for passes with no failures.
func WithTelegramFailuresOnly(on bool) TelegramOption {
	return func(s *telegramSettings) {
		s.failuresOnly = on
	}
}

// NewTelegramNotifier creates a TelegramNotifier. The bot token is checked
// against the Bot API (getMe) before returning.
func NewTelegramNotifier(botToken string, chatID int64, opts ...TelegramOption) (*TelegramNotifier, error) {
	s := telegramSettings{
		endpoint: tgbotapi.APIEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(&s)
	}

	bot, err := tgbotapi.NewBotAPIWithClient(botToken, s.endpoint, s.client)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", scrubToken(err, botToken))
	}

	return &TelegramNotifier{
		bot:          bot,
		token:        botToken,
		chatID:       chatID,
		failuresOnly: s.failuresOnly,
	}, nil
}

// SendRefreshSummary sends the summary as one HTML-formatted message.
func (t *TelegramNotifier) SendRefreshSummary(ctx context.Context, s *RefreshSummary) error {
	if t.failuresOnly && s.Healthy() {
		return nil
	}
	// The Bot API client has no context support.
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(t.chatID, formatTelegramSummary(s))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	start := time.Now()
	_, err := t.bot.Send(msg)
	metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.NotificationFailuresTotal.Inc()
		return fmt.Errorf("sending telegram message: %w", scrubToken(err, t.token))
	}
	return nil
}

func formatTelegramSummary(s *RefreshSummary) string {
	var b strings.Builder

	if s.Err != "" {
		b.WriteString("<b>Catalog refresh aborted</b>\n")
		fmt.Fprintf(&b, "<i>%s</i>\n", html.EscapeString(s.Err))
	} else {
		b.WriteString("<b>Catalog refresh complete</b>\n")
	}

	fmt.Fprintf(&b, "Processed: %d\nUpdated: %d\nSkipped: %d\nFailed: %d\nDuration: %s",
		s.Processed, s.Updated, s.Skipped, s.Failed, s.Duration.Round(time.Second))

	return b.String()
}

// scrubToken removes the bot token from transport errors, which quote the
// request URL.
func scrubToken(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), token, "[REDACTED]"))
}
