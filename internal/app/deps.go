package app

import (
	"context"

	"gopherblog/internal/cache"
	"gopherblog/internal/model"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
}

type BlogStore interface {
	Create(ctx context.Context, blog *model.Blog) error
	GetByID(ctx context.Context, id uint) (*model.Blog, error)
	ListPublished(ctx context.Context, offset, limit int) ([]model.Blog, int64, error)
	ListByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]model.Blog, int64, error)
	UpdateContent(ctx context.Context, id uint, title, body string, status model.BlogStatus) error
	UpdateStatus(ctx context.Context, id uint, status model.BlogStatus) error
	Delete(ctx context.Context, id uint) error
}

type SessionStore interface {
	Create(ctx context.Context, userID uint) (string, error)
	Lookup(ctx context.Context, sid string) (uint, bool, error)
	Destroy(ctx context.Context, sid string) error
}

type IndexCache interface {
	Generation(ctx context.Context) (int64, error)
	GetPage(ctx context.Context, gen int64, page, size int) (*cache.IndexPage, bool, error)
	SetPage(ctx context.Context, gen int64, page, size int, value *cache.IndexPage) error
	Invalidate(ctx context.Context) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event model.Event) error
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
