package models

import "time"

// StorageSlot is one independently keyed durable record. Each logical table
// (chats, schedules, files, settings) owns exactly one slot.
type StorageSlot struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
