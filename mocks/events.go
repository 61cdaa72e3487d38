// Package mocks holds testify mocks of the ports interfaces.
package mocks

import (
	"context"

	"github.com/layer-3/campus/core"
	"github.com/layer-3/campus/ports"
	"github.com/stretchr/testify/mock"
)

var _ ports.EventPublisher = (*EventPublisher)(nil)

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishLogout(ctx context.Context, session *core.Session, digest string) error {
	args := m.Called(ctx, session, digest)
	return args.Error(0)
}

func (m *EventPublisher) PublishRegistered(ctx context.Context, kind core.Kind, id string) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}
