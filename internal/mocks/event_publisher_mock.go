package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gopherblog/internal/model"
)

type EventPublisher struct{ mock.Mock }

func (m *EventPublisher) Publish(ctx context.Context, event model.Event) error {
	return m.Called(ctx, event).Error(0)
}
