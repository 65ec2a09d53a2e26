// Package notify delivers best-effort sync-run notifications to Slack
// via an incoming webhook.
package notify

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// Slack posts run summaries to a Slack incoming webhook. A zero webhook
// URL disables delivery without erroring, so callers can wire it
// unconditionally.
type Slack struct {
	webhookURL string
	channel    string

	// post abstracts the webhook call, enabling test mocks.
	post func(ctx context.Context, url string, msg *slackapi.WebhookMessage) error
}

// NewSlack creates a Slack notifier. channel may be empty to use the
// webhook's default.
func NewSlack(webhookURL, channel string) *Slack {
	return &Slack{
		webhookURL: webhookURL,
		channel:    channel,
		post:       slackapi.PostWebhookContext,
	}
}

// Notify posts one message. No-op when no webhook is configured.
func (s *Slack) Notify(ctx context.Context, text string) error {
	if s.webhookURL == "" {
		return nil
	}
	msg := &slackapi.WebhookMessage{Text: text, Channel: s.channel}
	if err := s.post(ctx, s.webhookURL, msg); err != nil {
		return fmt.Errorf("notify: slack webhook: %w", err)
	}
	return nil
}
