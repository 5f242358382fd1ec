package models

import "time"

type ScheduleType string

const (
	ScheduleReminder ScheduleType = "reminder"
	ScheduleTask     ScheduleType = "task"
	ScheduleMeeting  ScheduleType = "meeting"
)

type Recurrence string

const (
	RecurNone    Recurrence = "none"
	RecurDaily   Recurrence = "daily"
	RecurWeekly  Recurrence = "weekly"
	RecurMonthly Recurrence = "monthly"
)

type ScheduleItem struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Datetime    time.Time    `json:"datetime"`
	Type        ScheduleType `json:"type"`
	Completed   bool         `json:"completed"`
	Recurring   Recurrence   `json:"recurring,omitempty"`
}

// ScheduleInput carries the user-editable fields of a schedule item.
type ScheduleInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Datetime    time.Time    `json:"datetime"`
	Type        ScheduleType `json:"type"`
	Recurring   Recurrence   `json:"recurring,omitempty"`
}

// SchedulePatch is a partial update; nil fields are left untouched.
type SchedulePatch struct {
	Title       *string       `json:"title,omitempty"`
	Description *string       `json:"description,omitempty"`
	Datetime    *time.Time    `json:"datetime,omitempty"`
	Type        *ScheduleType `json:"type,omitempty"`
	Completed   *bool         `json:"completed,omitempty"`
	Recurring   *Recurrence   `json:"recurring,omitempty"`
}

type ScheduleFilter string

const (
	FilterAll       ScheduleFilter = "all"
	FilterToday     ScheduleFilter = "today"
	FilterUpcoming  ScheduleFilter = "upcoming"
	FilterCompleted ScheduleFilter = "completed"
)

type ScheduleStatus string

const (
	StatusCompleted ScheduleStatus = "completed"
	StatusOverdue   ScheduleStatus = "overdue"
	StatusToday     ScheduleStatus = "today"
	StatusTomorrow  ScheduleStatus = "tomorrow"
	StatusUpcoming  ScheduleStatus = "upcoming"
)

func (s ScheduleItem) GetID() string { return s.ID }
