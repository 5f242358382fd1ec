package chat

import (
	"context"
	"errors"

	"bhindi/internal/models"
	"bhindi/internal/repositories"
	"bhindi/internal/storage"
)

// Persister saves and restores the durable part of the chat state.
type Persister interface {
	// LoadSnapshot returns nil, nil when nothing was saved yet.
	LoadSnapshot(ctx context.Context) (*models.ChatSnapshot, error)
	SaveSnapshot(ctx context.Context, snap models.ChatSnapshot) error
}

type slotPersister struct {
	repo repositories.SlotRepository
}

// NewSlotPersister keeps the snapshot in the chat storage slot.
func NewSlotPersister(repo repositories.SlotRepository) Persister {
	return &slotPersister{repo: repo}
}

func (p *slotPersister) LoadSnapshot(ctx context.Context) (*models.ChatSnapshot, error) {
	var snap models.ChatSnapshot
	if err := storage.LoadJSON(ctx, p.repo, storage.ChatKey, &snap); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

func (p *slotPersister) SaveSnapshot(ctx context.Context, snap models.ChatSnapshot) error {
	return storage.SaveJSON(ctx, p.repo, storage.ChatKey, snap)
}
