package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"bhindi/internal/chat"
	"bhindi/internal/events"
	"bhindi/internal/models"
	"bhindi/internal/repositories"
	"bhindi/internal/storage"
)

// Resettable drops in-memory state after the backing slots are wiped.
type Resettable interface {
	Reset()
}

type DataService interface {
	Startup(ctx context.Context)
	Export() (*models.DataExport, error)
	ExportJSON() (name string, data []byte, err error)
	ClearAll() error
}

type dataService struct {
	ctx      context.Context
	repo     repositories.SlotRepository
	settings SettingsService
	store    *chat.Store
	keyring  *KeyringService
	panels   []Resettable
	logger   *slog.Logger
	now      func() time.Time
}

func NewDataService(repo repositories.SlotRepository, settings SettingsService, store *chat.Store, keyring *KeyringService, logger *slog.Logger, panels ...Resettable) DataService {
	if logger == nil {
		logger = slog.Default()
	}
	return &dataService{
		repo:     repo,
		settings: settings,
		store:    store,
		keyring:  keyring,
		panels:   panels,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *dataService) Startup(ctx context.Context) {
	s.ctx = ctx
}

// Export gathers the backup document. Chats, schedules and files are the
// raw stored payloads, or null when nothing was saved.
func (s *dataService) Export() (*models.DataExport, error) {
	ctx := contextOrBackground(s.ctx)
	out := &models.DataExport{
		FileName: fmt.Sprintf("bhindi-backup-%s.json", s.now().UTC().Format("2006-01-02")),
		Settings: s.settings.Get(),
	}
	var err error
	if out.Chats, err = storage.Raw(ctx, s.repo, storage.ChatKey); err != nil {
		return nil, fmt.Errorf("export chats: %w", err)
	}
	if out.Schedules, err = storage.Raw(ctx, s.repo, storage.SchedulesKey); err != nil {
		return nil, fmt.Errorf("export schedules: %w", err)
	}
	if out.Files, err = storage.Raw(ctx, s.repo, storage.FilesKey); err != nil {
		return nil, fmt.Errorf("export files: %w", err)
	}
	return out, nil
}

func (s *dataService) ExportJSON() (string, []byte, error) {
	doc, err := s.Export()
	if err != nil {
		return "", nil, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", nil, fmt.Errorf("encode backup: %w", err)
	}
	events.Emit(contextOrBackground(s.ctx), events.Notify, events.NewSuccess("Data exported successfully!"))
	return doc.FileName, data, nil
}

// ClearAll wipes every slot, stored API keys and in-memory state.
func (s *dataService) ClearAll() error {
	ctx := contextOrBackground(s.ctx)
	if err := s.repo.DeleteAll(ctx); err != nil {
		return err
	}
	if s.keyring != nil {
		if err := s.keyring.DeleteAll(); err != nil {
			s.logger.Warn("clear keyring", "err", err)
		}
	}
	s.settings.Reset()
	for _, p := range s.panels {
		p.Reset()
	}
	s.store.Reset()
	// Leave the UI with a usable empty conversation.
	s.store.InitializeChat()

	events.Emit(ctx, events.Notify, events.NewSuccess("All data cleared successfully!"))
	return nil
}
