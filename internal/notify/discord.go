// Package notify sends best-effort game lifecycle notifications to a
// Discord webhook, adapted from the teacher's discord.go/main.go. Unlike the
// teacher, the webhook URL is supplied through internal/config (cmd/server
// fills it from the DISCORD_WEBHOOK_URL environment variable), never fetched
// from Google Secret Manager: that fetch
// served only process startup, which spec.md §1 places outside the core's
// scope.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Notifier posts messages to a configured Discord webhook. The zero value
// with an empty URL is valid and logs instead of sending, matching the
// teacher's "no webhook configured" fallback.
type Notifier struct {
	URL    string
	Logger *slog.Logger
	Client *http.Client
}

// New constructs a Notifier using http.DefaultClient; a nil logger falls
// back to slog.Default().
func New(url string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{URL: url, Logger: logger, Client: http.DefaultClient}
}

// Send posts message with optional embeds. A missing webhook URL is not an
// error: the message is logged instead, per the teacher's fallback.
func (n *Notifier) Send(ctx context.Context, message string, embeds []Embed) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if n.URL == "" {
		logger.Info("no webhook configured, logging message instead", "message", message)
		return nil
	}

	payload := webhookPayload{Content: message, Embeds: embeds}
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to marshal webhook payload", "err", err)
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		logger.Error("failed to send discord webhook", "err", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		logger.Error("webhook returned non-ok status", "code", resp.StatusCode)
		return nil
	}

	logger.Debug("discord message sent")
	return nil
}

// Timestamp returns an RFC3339Nano string suitable for Embed.Timestamp.
func Timestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
