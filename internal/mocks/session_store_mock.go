package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type SessionStore struct{ mock.Mock }

func (m *SessionStore) Create(ctx context.Context, userID uint) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *SessionStore) Lookup(ctx context.Context, sid string) (uint, bool, error) {
	args := m.Called(ctx, sid)
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func (m *SessionStore) Destroy(ctx context.Context, sid string) error {
	return m.Called(ctx, sid).Error(0)
}
