package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"bhindi/internal/repositories"
)

// Identifiable is anything a Collection can address by id.
type Identifiable interface {
	GetID() string
}

// Collection is an ordered list of items mirrored into one slot. Every
// mutation rewrites the slot; lookups by a missing id report false.
type Collection[T Identifiable] struct {
	mu     sync.RWMutex
	repo   repositories.SlotRepository
	key    string
	items  []T
	logger *slog.Logger
}

func NewCollection[T Identifiable](repo repositories.SlotRepository, key string, logger *slog.Logger) *Collection[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collection[T]{repo: repo, key: key, logger: logger}
}

// Load replaces the in-memory items with the slot contents.
func (c *Collection[T]) Load(ctx context.Context) error {
	var items []T
	err := LoadJSON(ctx, c.repo, c.key, &items)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("load %s: %w", c.key, err)
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

func (c *Collection[T]) Append(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	return c.saveLocked(ctx)
}

func (c *Collection[T]) Prepend(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T{item}, c.items...)
	return c.saveLocked(ctx)
}

// Update applies fn to the item with the given id and persists the result.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(*T)) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].GetID() == id {
			fn(&c.items[i])
			return c.items[i], true, c.saveLocked(ctx)
		}
	}
	var zero T
	return zero, false, nil
}

func (c *Collection[T]) Remove(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].GetID() == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			return true, c.saveLocked(ctx)
		}
	}
	return false, nil
}

// Reset empties the collection in memory only; the caller owns the slot.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

func (c *Collection[T]) saveLocked(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []T{}
	}
	if err := SaveJSON(ctx, c.repo, c.key, items); err != nil {
		c.logger.Error("persist collection", "key", c.key, "err", err)
		return err
	}
	return nil
}
