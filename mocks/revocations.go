package mocks

import (
	"context"
	"time"

	"github.com/layer-3/campus/ports"
	"github.com/stretchr/testify/mock"
)

var _ ports.RevocationList = (*RevocationList)(nil)

type RevocationList struct {
	mock.Mock
}

func (m *RevocationList) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	args := m.Called(ctx, token, expiresAt)
	return args.Error(0)
}

func (m *RevocationList) IsRevoked(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}
