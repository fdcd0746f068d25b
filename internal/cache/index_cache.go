package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"gopherblog/internal/model"
)

const generationKey = "blog:index:gen"

// IndexPage is one cached page of the public index.
type IndexPage struct {
	Blogs []model.Blog `json:"blogs"`
	Total int64        `json:"total"`
}

// IndexCache caches public index pages. Entries are keyed by a generation
// counter; bumping the counter orphans every cached page, which then expires
// on its own TTL.
type IndexCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewIndexCache(client *redisv9.Client, ttl time.Duration) *IndexCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &IndexCache{
		client: client,
		ttl:    ttl,
	}
}

// Generation returns the current index generation. Callers read it once
// before querying the database and pass it to both GetPage and SetPage, so a
// page built from rows that changed mid-query lands under a stale key.
func (c *IndexCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil && !errors.Is(err, redisv9.Nil) {
		return 0, fmt.Errorf("redis get index generation failed: %w", err)
	}
	return gen, nil
}

func (c *IndexCache) GetPage(ctx context.Context, gen int64, page, size int) (*IndexPage, bool, error) {
	raw, err := c.client.Get(ctx, pageKey(gen, page, size)).Bytes()
	if errors.Is(err, redisv9.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get index page failed: %w", err)
	}

	var cached IndexPage
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached index page failed: %w", err)
	}
	return &cached, true, nil
}

func (c *IndexCache) SetPage(ctx context.Context, gen int64, page, size int, value *IndexPage) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal index page failed: %w", err)
	}
	if err := c.client.Set(ctx, pageKey(gen, page, size), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set index page failed: %w", err)
	}
	return nil
}

func (c *IndexCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("redis bump index generation failed: %w", err)
	}
	return nil
}

func pageKey(gen int64, page, size int) string {
	return fmt.Sprintf("blog:index:%d:%d:%d", gen, page, size)
}
