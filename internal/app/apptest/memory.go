// Package apptest provides in-memory stores for exercising the services and
// the HTTP layer without MySQL or Redis.
package apptest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"gopherblog/internal/model"
	"gopherblog/internal/repository"
)

type Users struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]model.User
}

func NewUsers() *Users {
	return &Users{rows: map[uint]model.User{}}
}

func (u *Users) Create(_ context.Context, user *model.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, row := range u.rows {
		if row.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	u.nextID++
	user.ID = u.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	u.rows[user.ID] = *user
	return nil
}

func (u *Users) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, row := range u.rows {
		if row.Email == email {
			found := row
			return &found, nil
		}
	}
	return nil, nil
}

func (u *Users) GetByID(_ context.Context, id uint) (*model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	row, ok := u.rows[id]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (u *Users) Count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.rows)
}

// Blogs mirrors BlogRepository, including the author preload.
type Blogs struct {
	mu     sync.Mutex
	users  *Users
	nextID uint
	rows   map[uint]model.Blog
}

func NewBlogs(users *Users) *Blogs {
	return &Blogs{users: users, rows: map[uint]model.Blog{}}
}

func (b *Blogs) Create(_ context.Context, blog *model.Blog) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.users != nil {
		if owner, _ := b.users.GetByID(context.Background(), blog.CreatedBy); owner == nil {
			return fmt.Errorf("create blog failed: unknown owner %d", blog.CreatedBy)
		}
	}
	b.nextID++
	blog.ID = b.nextID
	blog.CreatedAt = time.Now()
	blog.UpdatedAt = blog.CreatedAt
	row := *blog
	row.Author = nil
	b.rows[blog.ID] = row
	return nil
}

func (b *Blogs) GetByID(_ context.Context, id uint) (*model.Blog, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	row, ok := b.rows[id]
	if !ok {
		return nil, nil
	}
	return b.withAuthor(row), nil
}

func (b *Blogs) ListPublished(_ context.Context, offset, limit int) ([]model.Blog, int64, error) {
	return b.list(offset, limit, func(row model.Blog) bool { return row.Status == model.StatusPublished })
}

func (b *Blogs) ListByOwner(_ context.Context, ownerID uint, offset, limit int) ([]model.Blog, int64, error) {
	return b.list(offset, limit, func(row model.Blog) bool { return row.CreatedBy == ownerID })
}

func (b *Blogs) UpdateContent(_ context.Context, id uint, title, body string, status model.BlogStatus) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	row, ok := b.rows[id]
	if !ok {
		return nil
	}
	row.Title, row.Body, row.Status = title, body, status
	row.UpdatedAt = time.Now()
	b.rows[id] = row
	return nil
}

func (b *Blogs) UpdateStatus(_ context.Context, id uint, status model.BlogStatus) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	row, ok := b.rows[id]
	if !ok {
		return nil
	}
	row.Status = status
	row.UpdatedAt = time.Now()
	b.rows[id] = row
	return nil
}

func (b *Blogs) Delete(_ context.Context, id uint) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.rows, id)
	return nil
}

// Get returns the stored row without the author, for assertions.
func (b *Blogs) Get(id uint) (model.Blog, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	row, ok := b.rows[id]
	return row, ok
}

func (b *Blogs) list(offset, limit int, keep func(model.Blog) bool) ([]model.Blog, int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	matched := make([]model.Blog, 0, len(b.rows))
	for _, row := range b.rows {
		if keep(row) {
			matched = append(matched, row)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	out := make([]model.Blog, 0, limit)
	for i := offset; i < len(matched) && len(out) < limit; i++ {
		out = append(out, *b.withAuthor(matched[i]))
	}
	return out, total, nil
}

func (b *Blogs) withAuthor(row model.Blog) *model.Blog {
	if b.users != nil {
		row.Author, _ = b.users.GetByID(context.Background(), row.CreatedBy)
	}
	return &row
}

type Sessions struct {
	mu     sync.Mutex
	nextID int
	rows   map[string]uint
}

func NewSessions() *Sessions {
	return &Sessions{rows: map[string]uint{}}
}

func (s *Sessions) Create(_ context.Context, userID uint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	sid := fmt.Sprintf("sid-%d", s.nextID)
	s.rows[sid] = userID
	return sid, nil
}

func (s *Sessions) Lookup(_ context.Context, sid string) (uint, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.rows[sid]
	return userID, ok, nil
}

func (s *Sessions) Destroy(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, sid)
	return nil
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// Events records published events.
type Events struct {
	mu     sync.Mutex
	events []model.Event
}

func (e *Events) Publish(_ context.Context, event model.Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return nil
}

func (e *Events) Types() []model.EventType {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.EventType, 0, len(e.events))
	for _, event := range e.events {
		out = append(out, event.Type)
	}
	return out
}
