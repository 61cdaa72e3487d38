package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/ports"
)

const (
	TopicLogout     = "campus.logout"
	TopicRegistered = "campus.registered"
)

// LogoutEvent represents a logout event
type LogoutEvent struct {
	Subject   string    `json:"subject"`
	Kind      core.Kind `json:"kind"`
	TokenID   string    `json:"token_id"`
	Digest    string    `json:"digest"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisteredEvent announces a new credential record.
type RegisteredEvent struct {
	ID   string    `json:"id"`
	Kind core.Kind `json:"kind"`
}

// WatermillPublisher implements the EventPublisher interface using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
}

var _ ports.EventPublisher = (*WatermillPublisher)(nil)

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{publisher: publisher}
}

// PublishLogout publishes a logout event
func (p *WatermillPublisher) PublishLogout(ctx context.Context, session *core.Session, digest string) error {
	return p.publish(ctx, TopicLogout, LogoutEvent{
		Subject:   session.Subject,
		Kind:      session.Kind,
		TokenID:   session.ID,
		Digest:    digest,
		ExpiresAt: session.ExpiresAt,
	})
}

// PublishRegistered publishes a registration event
func (p *WatermillPublisher) PublishRegistered(ctx context.Context, kind core.Kind, id string) error {
	return p.publish(ctx, TopicRegistered, RegisteredEvent{ID: id, Kind: kind})
}

func (p *WatermillPublisher) publish(ctx context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// NopPublisher drops every event. It is used when events are disabled.
type NopPublisher struct{}

var _ ports.EventPublisher = NopPublisher{}

func (NopPublisher) PublishLogout(context.Context, *core.Session, string) error { return nil }

func (NopPublisher) PublishRegistered(context.Context, core.Kind, string) error { return nil }
