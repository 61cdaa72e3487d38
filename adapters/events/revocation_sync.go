package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

// DigestRevoker accepts revocations by token digest. Logout events carry
// the digest only, never the raw token.
type DigestRevoker interface {
	RevokeDigest(ctx context.Context, digest string, expiresAt time.Time) error
}

// RevocationSync applies logout events published by any instance to a
// local revocation list.
type RevocationSync struct {
	subscriber message.Subscriber
	revoker    DigestRevoker
	logger     *slog.Logger
}

// NewRevocationSync creates a subscriber-driven revocation sync.
func NewRevocationSync(subscriber message.Subscriber, revoker DigestRevoker, logger *slog.Logger) *RevocationSync {
	return &RevocationSync{
		subscriber: subscriber,
		revoker:    revoker,
		logger:     logger,
	}
}

// Run consumes logout events until ctx is done or the subscription closes.
func (s *RevocationSync) Run(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, TopicLogout)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", TopicLogout, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			s.handle(ctx, msg)
		}
	}
}

func (s *RevocationSync) handle(ctx context.Context, msg *message.Message) {
	var event LogoutEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil || event.Digest == "" {
		// Malformed events never become valid; drop them.
		s.logger.Warn("dropping malformed logout event", "message_uuid", msg.UUID, "error", err)
		msg.Ack()
		return
	}

	if err := s.revoker.RevokeDigest(ctx, event.Digest, event.ExpiresAt); err != nil {
		s.logger.Error("failed to apply logout event", "message_uuid", msg.UUID, "error", err)
		msg.Nack()
		return
	}

	msg.Ack()
}
