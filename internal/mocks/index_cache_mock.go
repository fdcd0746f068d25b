package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gopherblog/internal/cache"
)

type IndexCache struct{ mock.Mock }

func (m *IndexCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *IndexCache) GetPage(ctx context.Context, gen int64, page, size int) (*cache.IndexPage, bool, error) {
	args := m.Called(ctx, gen, page, size)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*cache.IndexPage), args.Bool(1), args.Error(2)
}

func (m *IndexCache) SetPage(ctx context.Context, gen int64, page, size int, value *cache.IndexPage) error {
	return m.Called(ctx, gen, page, size, value).Error(0)
}

func (m *IndexCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
