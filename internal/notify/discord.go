package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/donaldgifford/collectopedia/internal/metrics"
)

const (
	colorGreen  = 0x2ECC71 // no failures
	colorYellow = 0xF1C40F // some items failed
	colorRed    = 0xE74C3C // pass aborted
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL   string
	client       *http.Client
	failuresOnly bool
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// WithFailuresOnly suppresses summaries for passes with no failures.
func WithFailuresOnly(on bool) DiscordOption {
	return func(d *DiscordNotifier) {
		d.failuresOnly = on
	}
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// SendRefreshSummary posts the summary as a single Discord embed.
func (d *DiscordNotifier) SendRefreshSummary(ctx context.Context, s *RefreshSummary) error {
	if d.failuresOnly && s.Healthy() {
		return nil
	}

	start := time.Now()
	err := d.post(ctx, discordWebhookPayload{Embeds: []discordEmbed{buildEmbed(s)}})
	metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.NotificationFailuresTotal.Inc()
	}
	return err
}

func buildEmbed(s *RefreshSummary) discordEmbed {
	embed := discordEmbed{
		Title: "Catalog refresh complete",
		Color: summaryColor(s),
		Fields: []discordEmbedField{
			{Name: "Processed", Value: strconv.Itoa(s.Processed), Inline: true},
			{Name: "Updated", Value: strconv.Itoa(s.Updated), Inline: true},
			{Name: "Skipped", Value: strconv.Itoa(s.Skipped), Inline: true},
			{Name: "Failed", Value: strconv.Itoa(s.Failed), Inline: true},
			{Name: "Duration", Value: s.Duration.Round(time.Second).String(), Inline: true},
		},
	}
	if s.Err != "" {
		embed.Title = "Catalog refresh aborted"
		embed.Description = s.Err
	}
	return embed
}

func summaryColor(s *RefreshSummary) int {
	switch {
	case s.Err != "":
		return colorRed
	case s.Failed > 0:
		return colorYellow
	default:
		return colorGreen
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
