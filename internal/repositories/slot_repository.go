package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bhindi/internal/models"
)

// SlotRepository stores keyed JSON documents, one row per logical table.
type SlotRepository interface {
	// Get returns nil, nil when the slot has never been written.
	Get(ctx context.Context, key string) (*models.StorageSlot, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context) error
	List(ctx context.Context) ([]models.StorageSlot, error)
}

type slotRepository struct {
	db *gorm.DB
}

func NewSlotRepository(db *gorm.DB) SlotRepository {
	return &slotRepository{db: db}
}

func (r *slotRepository) Get(ctx context.Context, key string) (*models.StorageSlot, error) {
	if key == "" {
		return nil, fmt.Errorf("slot key is required")
	}
	var slot models.StorageSlot
	if err := r.db.WithContext(ctx).Where(&models.StorageSlot{Key: key}).Take(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot %s: %w", key, err)
	}
	return &slot, nil
}

func (r *slotRepository) Put(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("slot key is required")
	}
	slot := models.StorageSlot{Key: key, Value: value}
	// Single statement: either the whole document lands or none of it does.
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&slot).Error; err != nil {
		return fmt.Errorf("put slot %s: %w", key, err)
	}
	return nil
}

func (r *slotRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("slot key is required")
	}
	if err := r.db.WithContext(ctx).Where(&models.StorageSlot{Key: key}).Delete(&models.StorageSlot{}).Error; err != nil {
		return fmt.Errorf("delete slot %s: %w", key, err)
	}
	return nil
}

func (r *slotRepository) DeleteAll(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.StorageSlot{}).Error; err != nil {
		return fmt.Errorf("delete all slots: %w", err)
	}
	return nil
}

func (r *slotRepository) List(ctx context.Context) ([]models.StorageSlot, error) {
	var slots []models.StorageSlot
	if err := r.db.WithContext(ctx).Order("key").Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return slots, nil
}
