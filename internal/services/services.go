package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/99designs/keyring"
	"gorm.io/gorm"

	"bhindi/internal/chat"
	"bhindi/internal/dispatch"
	"bhindi/internal/llm/client"
	"bhindi/internal/repositories"
)

type Options struct {
	Dispatch  dispatch.Config
	Endpoints client.Endpoints
	// Registry overrides the built-in completion providers.
	Registry *client.Registry
	// Keyring may be nil when no secure store is available.
	Keyring keyring.Keyring
	Logger  *slog.Logger
}

// Services aggregates every domain service backed by the database.
type Services struct {
	Slots        repositories.SlotRepository
	Store        *chat.Store
	Dispatcher   *dispatch.Dispatcher
	Keyring      *KeyringService
	Models       ModelCatalogService
	Chat         ChatService
	Schedules    ScheduleService
	Files        FileService
	Integrations IntegrationService
	Settings     SettingsService
	Data         DataService
}

// NewServices constructs the service container using repositories backed by db.
func NewServices(db *gorm.DB, opts Options) *Services {
	return newServices(repositories.NewSlotRepository(db), opts)
}

func newServices(slots repositories.SlotRepository, opts Options) *Services {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := opts.Registry
	if registry == nil {
		registry = client.DefaultRegistry(opts.Endpoints)
	}

	var ring *KeyringService
	if opts.Keyring != nil {
		ring = NewKeyringService(opts.Keyring)
	}

	store := chat.NewStore(chat.NewSlotPersister(slots), logger.With("component", "chat"))
	dispatcher := dispatch.New(opts.Dispatch, registry, logger.With("component", "dispatch"))
	catalog := NewModelCatalogService()
	schedules := NewScheduleService(slots, logger)
	files := NewFileService(slots, logger)
	settings := NewSettingsService(slots, ring, dispatcher, catalog, logger)

	return &Services{
		Slots:        slots,
		Store:        store,
		Dispatcher:   dispatcher,
		Keyring:      ring,
		Models:       catalog,
		Chat:         NewChatService(store, dispatcher, logger),
		Schedules:    schedules,
		Files:        files,
		Integrations: NewIntegrationService(),
		Settings:     settings,
		Data:         NewDataService(slots, settings, store, ring, logger, schedules, files),
	}
}

// Startup loads every service. Settings go before chat so a stored API key
// is active for the first exchange.
func (s *Services) Startup(ctx context.Context) error {
	if err := s.Models.Startup(ctx); err != nil {
		return fmt.Errorf("models: %w", err)
	}
	if err := s.Integrations.Startup(ctx); err != nil {
		return fmt.Errorf("integrations: %w", err)
	}
	if err := s.Settings.Startup(ctx); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := s.Schedules.Startup(ctx); err != nil {
		return fmt.Errorf("schedules: %w", err)
	}
	if err := s.Files.Startup(ctx); err != nil {
		return fmt.Errorf("files: %w", err)
	}
	if err := s.Chat.Startup(ctx); err != nil {
		return fmt.Errorf("chat: %w", err)
	}
	s.Data.Startup(ctx)
	return nil
}
