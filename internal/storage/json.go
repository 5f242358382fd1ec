package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"bhindi/internal/repositories"
)

var ErrNotFound = errors.New("storage: slot not found")

// LoadJSON decodes the slot into dst. A slot that was never written yields
// ErrNotFound and leaves dst untouched.
func LoadJSON(ctx context.Context, repo repositories.SlotRepository, key string, dst any) error {
	slot, err := repo.Get(ctx, key)
	if err != nil {
		return err
	}
	if slot == nil {
		return ErrNotFound
	}
	if err := json.Unmarshal([]byte(slot.Value), dst); err != nil {
		return fmt.Errorf("decode slot %s: %w", key, err)
	}
	return nil
}

// SaveJSON replaces the slot with the JSON encoding of v.
func SaveJSON(ctx context.Context, repo repositories.SlotRepository, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", key, err)
	}
	return repo.Put(ctx, key, string(data))
}

// Raw returns the stored payload as-is, or nil when the slot is empty.
func Raw(ctx context.Context, repo repositories.SlotRepository, key string) (*string, error) {
	slot, err := repo.Get(ctx, key)
	if err != nil || slot == nil {
		return nil, err
	}
	v := slot.Value
	return &v, nil
}
