package mocks

import (
	"context"
	"sort"
	"sync"

	"bhindi/internal/models"
)

// SlotRepositoryMock falls back to an in-memory map when a func is unset.
type SlotRepositoryMock struct {
	GetFunc       func(ctx context.Context, key string) (*models.StorageSlot, error)
	PutFunc       func(ctx context.Context, key, value string) error
	DeleteFunc    func(ctx context.Context, key string) error
	DeleteAllFunc func(ctx context.Context) error
	ListFunc      func(ctx context.Context) ([]models.StorageSlot, error)

	mu    sync.Mutex
	Slots map[string]string
	Puts  int
}

func NewSlotRepositoryMock() *SlotRepositoryMock {
	return &SlotRepositoryMock{Slots: map[string]string{}}
}

func (m *SlotRepositoryMock) Get(ctx context.Context, key string) (*models.StorageSlot, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Slots[key]
	if !ok {
		return nil, nil
	}
	return &models.StorageSlot{Key: key, Value: v}, nil
}

func (m *SlotRepositoryMock) Put(ctx context.Context, key, value string) error {
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Slots == nil {
		m.Slots = map[string]string{}
	}
	m.Slots[key] = value
	m.Puts++
	return nil
}

func (m *SlotRepositoryMock) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Slots, key)
	return nil
}

func (m *SlotRepositoryMock) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc != nil {
		return m.DeleteAllFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Slots = map[string]string{}
	return nil
}

func (m *SlotRepositoryMock) List(ctx context.Context) ([]models.StorageSlot, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.StorageSlot, 0, len(m.Slots))
	for k, v := range m.Slots {
		out = append(out, models.StorageSlot{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
