package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"bhindi/internal/events"
	"bhindi/internal/models"
	"bhindi/internal/repositories"
	"bhindi/internal/storage"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrScheduleInvalid  = errors.New("schedule title and datetime are required")
)

const scheduleInvalidToast = "Please fill in all required fields"

type ScheduleService interface {
	Startup(ctx context.Context) error
	Create(in models.ScheduleInput) (*models.ScheduleItem, error)
	Update(id string, patch models.SchedulePatch) (*models.ScheduleItem, error)
	Delete(id string) error
	ToggleComplete(id string) (*models.ScheduleItem, error)
	Get(id string) (*models.ScheduleItem, error)
	List(filter models.ScheduleFilter) ([]models.ScheduleItem, error)
	Status(item models.ScheduleItem) models.ScheduleStatus
	Reset()
}

type scheduleService struct {
	ctx    context.Context
	items  *storage.Collection[models.ScheduleItem]
	logger *slog.Logger
	now    func() time.Time
}

func NewScheduleService(repo repositories.SlotRepository, logger *slog.Logger) ScheduleService {
	return newScheduleService(repo, logger, time.Now)
}

func newScheduleService(repo repositories.SlotRepository, logger *slog.Logger, now func() time.Time) *scheduleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &scheduleService{
		items:  storage.NewCollection[models.ScheduleItem](repo, storage.SchedulesKey, logger),
		logger: logger,
		now:    now,
	}
}

func (s *scheduleService) Startup(ctx context.Context) error {
	s.ctx = ctx
	return s.items.Load(contextOrBackground(ctx))
}

func validScheduleType(t models.ScheduleType) bool {
	switch t {
	case models.ScheduleReminder, models.ScheduleTask, models.ScheduleMeeting:
		return true
	}
	return false
}

func validRecurrence(r models.Recurrence) bool {
	switch r {
	case models.RecurNone, models.RecurDaily, models.RecurWeekly, models.RecurMonthly:
		return true
	}
	return false
}

// invalid raises the form toast and returns ErrScheduleInvalid.
func (s *scheduleService) invalid() error {
	events.Emit(contextOrBackground(s.ctx), events.Notify, events.NewError(scheduleInvalidToast))
	return ErrScheduleInvalid
}

func (s *scheduleService) Create(in models.ScheduleInput) (*models.ScheduleItem, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.Datetime.IsZero() {
		return nil, s.invalid()
	}
	if in.Type == "" {
		in.Type = models.ScheduleReminder
	}
	if in.Recurring == "" {
		in.Recurring = models.RecurNone
	}
	if !validScheduleType(in.Type) {
		return nil, fmt.Errorf("invalid schedule type %q", in.Type)
	}
	if !validRecurrence(in.Recurring) {
		return nil, fmt.Errorf("invalid recurrence %q", in.Recurring)
	}

	item := models.ScheduleItem{
		ID:          "schedule_" + ulid.Make().String(),
		Title:       title,
		Description: in.Description,
		Datetime:    in.Datetime,
		Type:        in.Type,
		Completed:   false,
		Recurring:   in.Recurring,
	}
	ctx := contextOrBackground(s.ctx)
	if err := s.items.Append(ctx, item); err != nil {
		return nil, err
	}
	events.Emit(ctx, events.Notify, events.NewSuccess("Schedule created successfully!"))
	return &item, nil
}

func (s *scheduleService) Update(id string, patch models.SchedulePatch) (*models.ScheduleItem, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, s.invalid()
	}
	if patch.Datetime != nil && patch.Datetime.IsZero() {
		return nil, s.invalid()
	}
	if patch.Type != nil && !validScheduleType(*patch.Type) {
		return nil, fmt.Errorf("invalid schedule type %q", *patch.Type)
	}
	if patch.Recurring != nil && !validRecurrence(*patch.Recurring) {
		return nil, fmt.Errorf("invalid recurrence %q", *patch.Recurring)
	}

	ctx := contextOrBackground(s.ctx)
	updated, ok, err := s.items.Update(ctx, id, func(it *models.ScheduleItem) {
		if patch.Title != nil {
			it.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			it.Description = *patch.Description
		}
		if patch.Datetime != nil {
			it.Datetime = *patch.Datetime
		}
		if patch.Type != nil {
			it.Type = *patch.Type
		}
		if patch.Completed != nil {
			it.Completed = *patch.Completed
		}
		if patch.Recurring != nil {
			it.Recurring = *patch.Recurring
		}
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
	}
	events.Emit(ctx, events.Notify, events.NewSuccess("Schedule updated successfully!"))
	return &updated, nil
}

func (s *scheduleService) Delete(id string) error {
	ctx := contextOrBackground(s.ctx)
	removed, err := s.items.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
	}
	events.Emit(ctx, events.Notify, events.NewSuccess("Schedule deleted successfully!"))
	return nil
}

func (s *scheduleService) ToggleComplete(id string) (*models.ScheduleItem, error) {
	updated, ok, err := s.items.Update(contextOrBackground(s.ctx), id, func(it *models.ScheduleItem) {
		it.Completed = !it.Completed
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
	}
	return &updated, nil
}

func (s *scheduleService) Get(id string) (*models.ScheduleItem, error) {
	item, ok := s.items.Find(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
	}
	return &item, nil
}

// List returns the items matching filter, earliest first.
func (s *scheduleService) List(filter models.ScheduleFilter) ([]models.ScheduleItem, error) {
	now := s.now()
	var keep func(models.ScheduleItem) bool
	switch filter {
	case "", models.FilterAll:
		keep = func(models.ScheduleItem) bool { return true }
	case models.FilterToday:
		keep = func(it models.ScheduleItem) bool { return sameDay(it.Datetime, now) }
	case models.FilterUpcoming:
		keep = func(it models.ScheduleItem) bool { return !it.Datetime.Before(now) && !it.Completed }
	case models.FilterCompleted:
		keep = func(it models.ScheduleItem) bool { return it.Completed }
	default:
		return nil, fmt.Errorf("unknown schedule filter %q", filter)
	}

	out := s.items.Filter(keep)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Datetime.Before(out[j].Datetime) })
	return out, nil
}

// Status checks completed, then overdue, then today, then tomorrow.
func (s *scheduleService) Status(item models.ScheduleItem) models.ScheduleStatus {
	now := s.now()
	switch {
	case item.Completed:
		return models.StatusCompleted
	case item.Datetime.Before(now):
		return models.StatusOverdue
	case sameDay(item.Datetime, now):
		return models.StatusToday
	case sameDay(item.Datetime, now.AddDate(0, 0, 1)):
		return models.StatusTomorrow
	default:
		return models.StatusUpcoming
	}
}

func (s *scheduleService) Reset() {
	s.items.Reset()
}

// sameDay compares calendar dates in ref's location.
func sameDay(t, ref time.Time) bool {
	t = t.In(ref.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
