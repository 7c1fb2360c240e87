package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"kanban-api/domain"
)

type backend interface {
	FetchBoardContents(ctx context.Context, boardID string) ([]domain.Column, []domain.Task, error)
	InsertColumn(ctx context.Context, c domain.Column) error
	UpdateColumn(ctx context.Context, c domain.Column) error
	DeleteColumn(ctx context.Context, boardID, columnID string) error
	InsertTask(ctx context.Context, t domain.Task) error
	UpdateTask(ctx context.Context, t domain.Task) error
	DeleteTask(ctx context.Context, boardID, taskID string) error
}

// boardContents is the cached snapshot of a board's columns and tasks.
type boardContents struct {
	Columns []domain.Column `json:"columns"`
	Tasks   []domain.Task   `json:"tasks"`
}

// Cache wraps a Storage instance with Redis-backed caching of board
// contents. Any column or task mutation evicts the board's snapshot.
type Cache struct {
	*Storage
	base  backend
	redis *redis.Client
	ttl   time.Duration
}

// NewCache creates a caching Storage wrapper using the provided Redis
// client and TTL.
func NewCache(base backend, client *redis.Client, ttl time.Duration) *Cache {
	if base == nil {
		panic("storage.NewCache: base storage is nil")
	}
	if ttl < 0 {
		ttl = 0
	}

	c := &Cache{
		base:  base,
		redis: client,
		ttl:   ttl,
	}
	if s, ok := base.(*Storage); ok {
		c.Storage = s
	}
	return c
}

func (c *Cache) FetchBoardContents(ctx context.Context, boardID string) ([]domain.Column, []domain.Task, error) {
	if contents, ok := c.loadFromCache(ctx, boardID); ok {
		return contents.Columns, contents.Tasks, nil
	}

	columns, tasks, err := c.base.FetchBoardContents(ctx, boardID)
	if err != nil {
		return nil, nil, err
	}

	c.store(ctx, boardID, boardContents{Columns: columns, Tasks: tasks})
	return columns, tasks, nil
}

func (c *Cache) InsertColumn(ctx context.Context, col domain.Column) error {
	if err := c.base.InsertColumn(ctx, col); err != nil {
		return err
	}
	c.evict(ctx, col.BoardID)
	return nil
}

func (c *Cache) UpdateColumn(ctx context.Context, col domain.Column) error {
	if err := c.base.UpdateColumn(ctx, col); err != nil {
		return err
	}
	c.evict(ctx, col.BoardID)
	return nil
}

func (c *Cache) DeleteColumn(ctx context.Context, boardID, columnID string) error {
	if err := c.base.DeleteColumn(ctx, boardID, columnID); err != nil {
		return err
	}
	c.evict(ctx, boardID)
	return nil
}

func (c *Cache) InsertTask(ctx context.Context, t domain.Task) error {
	if err := c.base.InsertTask(ctx, t); err != nil {
		return err
	}
	c.evict(ctx, t.BoardID)
	return nil
}

func (c *Cache) UpdateTask(ctx context.Context, t domain.Task) error {
	if err := c.base.UpdateTask(ctx, t); err != nil {
		return err
	}
	c.evict(ctx, t.BoardID)
	return nil
}

func (c *Cache) DeleteTask(ctx context.Context, boardID, taskID string) error {
	if err := c.base.DeleteTask(ctx, boardID, taskID); err != nil {
		return err
	}
	c.evict(ctx, boardID)
	return nil
}

func (c *Cache) loadFromCache(ctx context.Context, boardID string) (boardContents, bool) {
	if c.redis == nil {
		return boardContents{}, false
	}
	data, err := c.redis.Get(ctx, boardCacheKey(boardID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			// On redis errors fall back to the backing storage without failing.
			_ = c.redis.Del(ctx, boardCacheKey(boardID)).Err()
		}
		return boardContents{}, false
	}
	var contents boardContents
	if err := json.Unmarshal(data, &contents); err != nil {
		_ = c.redis.Del(ctx, boardCacheKey(boardID)).Err()
		return boardContents{}, false
	}
	return contents, true
}

func (c *Cache) store(ctx context.Context, boardID string, contents boardContents) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(contents)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, boardCacheKey(boardID), data, c.ttl).Err()
}

func (c *Cache) evict(ctx context.Context, boardID string) {
	if c.redis == nil {
		return
	}
	_, _ = c.redis.Del(ctx, boardCacheKey(boardID)).Result()
}

func boardCacheKey(boardID string) string {
	return "board:" + boardID
}
