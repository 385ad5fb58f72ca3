package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"log/slog"
)

// Gateway is the external push notification capability. The production
// implementation talks to Firebase Cloud Messaging; tests and
// credential-less deployments use substitutes.
//
//go:generate moq -rm -out gateway_mock.go . Gateway
type Gateway interface {
	SendToToken(ctx context.Context, token, title, body string, data map[string]string) (string, error)
	SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (string, error)
	SubscribeToTopic(ctx context.Context, tokens []string, topic string) error
	UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) error
}

const alertChannelID = "fire_alert_channel"

type fcmGateway struct {
	client *messaging.Client
	log    *slog.Logger
}

// NewFirebaseGateway creates a Gateway backed by Firebase Cloud
// Messaging, authenticated with a service account credentials file.
func NewFirebaseGateway(ctx context.Context, credentialsFile string, log *slog.Logger) (Gateway, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging client: %w", err)
	}

	return &fcmGateway{client: client, log: log}, nil
}

func (g *fcmGateway) SendToToken(ctx context.Context, token, title, body string, data map[string]string) (string, error) {
	msg := newMessage(title, body, data)
	msg.Token = token
	return g.client.Send(ctx, msg)
}

func (g *fcmGateway) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (string, error) {
	msg := newMessage(title, body, data)
	msg.Topic = topic
	return g.client.Send(ctx, msg)
}

func (g *fcmGateway) SubscribeToTopic(ctx context.Context, tokens []string, topic string) error {
	resp, err := g.client.SubscribeToTopic(ctx, tokens, topic)
	if err != nil {
		return err
	}

	g.log.Debug("subscribed tokens to topic", "topic", topic, "success", resp.SuccessCount, "failure", resp.FailureCount)
	return nil
}

func (g *fcmGateway) UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) error {
	resp, err := g.client.UnsubscribeFromTopic(ctx, tokens, topic)
	if err != nil {
		return err
	}

	g.log.Debug("unsubscribed tokens from topic", "topic", topic, "success", resp.SuccessCount, "failure", resp.FailureCount)
	return nil
}

func newMessage(title, body string, data map[string]string) *messaging.Message {
	if data == nil {
		data = map[string]string{}
	}

	return &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				ChannelID: alertChannelID,
				Priority:  messaging.PriorityMax,
			},
		},
	}
}

type disabledGateway struct {
	log *slog.Logger
}

// NewDisabledGateway returns a Gateway that drops everything. It is
// used when no push credentials are configured, so the rest of the
// pipeline keeps working.
func NewDisabledGateway(log *slog.Logger) Gateway {
	return &disabledGateway{log: log}
}

func (g *disabledGateway) SendToToken(ctx context.Context, token, title, body string, data map[string]string) (string, error) {
	g.log.Debug("push disabled, dropping message", "title", title)
	return "", nil
}

func (g *disabledGateway) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) (string, error) {
	g.log.Debug("push disabled, dropping message", "topic", topic, "title", title)
	return "", nil
}

func (g *disabledGateway) SubscribeToTopic(ctx context.Context, tokens []string, topic string) error {
	return nil
}

func (g *disabledGateway) UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) error {
	return nil
}
