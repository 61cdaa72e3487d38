package ports

import (
	"context"

	"github.com/layer-3/campus/core"
)

// EventPublisher publishes events to notify other instances
type EventPublisher interface {
	PublishLogout(ctx context.Context, session *core.Session, digest string) error
	PublishRegistered(ctx context.Context, kind core.Kind, id string) error
}
