package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"bhindi/internal/events"
	"bhindi/internal/models"
	"bhindi/internal/repositories"
	"bhindi/internal/storage"
)

// AIConfigurer receives the AI settings that affect dispatching.
type AIConfigurer interface {
	SetCredential(key string)
	HasCredential() bool
	SetModel(provider, model string)
	Model() (provider, model string)
	SetSampling(maxTokens int, temperature float32)
}

var themes = []string{"light", "dark", "system"}

type SettingsService interface {
	Startup(ctx context.Context) error
	Get() models.Settings
	UpdateProfile(p models.ProfileSettings) (models.Settings, error)
	UpdatePreferences(p models.PreferenceSettings) (models.Settings, error)
	UpdateAI(ai models.AISettings) (models.Settings, error)
	UpdatePrivacy(p models.PrivacySettings) (models.Settings, error)
	SetTheme(theme string) (models.Settings, error)
	CycleTheme() (models.Settings, error)
	SetAPIKey(key string) (models.Settings, error)
	ClearAPIKey() (models.Settings, error)
	Reset()
}

type settingsService struct {
	ctx     context.Context
	repo    repositories.SlotRepository
	keyring *KeyringService
	ai      AIConfigurer
	catalog ModelCatalogService
	logger  *slog.Logger

	mu       sync.Mutex
	settings models.Settings
}

// NewSettingsService wires settings persistence. keyring and catalog may be
// nil; without a keyring the API key only lives for the process lifetime.
func NewSettingsService(repo repositories.SlotRepository, keyring *KeyringService, ai AIConfigurer, catalog ModelCatalogService, logger *slog.Logger) SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &settingsService{
		repo:     repo,
		keyring:  keyring,
		ai:       ai,
		catalog:  catalog,
		logger:   logger,
		settings: models.DefaultSettings(),
	}
}

// Startup loads saved settings over the defaults, pushes them to the
// dispatcher and restores a stored API key.
func (s *settingsService) Startup(ctx context.Context) error {
	s.ctx = ctx

	loaded := models.DefaultSettings()
	err := storage.LoadJSON(contextOrBackground(ctx), s.repo, storage.SettingsKey, &loaded)
	saved := err == nil
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.logger.Warn("saved settings unreadable, using defaults", "err", err)
		loaded = models.DefaultSettings()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = loaded
	if saved {
		s.applyAI(s.settings.AI)
	} else {
		// Nothing saved yet: the configured provider and model stand.
		s.settings.AI.Provider, s.settings.AI.Model = s.ai.Model()
	}

	if s.keyring != nil {
		key, err := s.keyring.GetApiKey(s.settings.AI.Provider)
		switch {
		case err == nil:
			s.ai.SetCredential(key)
		case errors.Is(err, ErrNoAPIKey):
		default:
			s.logger.Warn("read API key from keyring", "provider", s.settings.AI.Provider, "err", err)
		}
	}
	s.settings.AI.APIKeyConfigured = s.ai.HasCredential()
	return nil
}

func (s *settingsService) Get() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *settingsService) UpdateProfile(p models.ProfileSettings) (models.Settings, error) {
	return s.update(func(st *models.Settings) error {
		st.Profile = models.ProfileSettings{
			Name:   strings.TrimSpace(p.Name),
			Email:  strings.TrimSpace(p.Email),
			Avatar: p.Avatar,
		}
		return nil
	})
}

func (s *settingsService) UpdatePreferences(p models.PreferenceSettings) (models.Settings, error) {
	if err := validateTheme(p.Theme); err != nil {
		return s.Get(), err
	}
	if strings.TrimSpace(p.Language) == "" {
		return s.Get(), errors.New("language is required")
	}
	if _, err := time.LoadLocation(p.Timezone); err != nil || p.Timezone == "" {
		return s.Get(), fmt.Errorf("unknown timezone %q", p.Timezone)
	}
	return s.update(func(st *models.Settings) error {
		st.Preferences = p
		return nil
	})
}

func (s *settingsService) UpdateAI(ai models.AISettings) (models.Settings, error) {
	if ai.Temperature < 0 || ai.Temperature > 2 {
		return s.Get(), errors.New("temperature must be between 0 and 2")
	}
	if ai.MaxTokens < 100 || ai.MaxTokens > 4000 {
		return s.Get(), errors.New("max tokens must be between 100 and 4000")
	}
	if ai.Provider == "" {
		ai.Provider = models.DefaultSettings().AI.Provider
	}
	if s.catalog != nil {
		if _, err := s.catalog.GetModel(ai.Provider, ai.Model); err != nil {
			return s.Get(), err
		}
	}
	var providerChanged bool
	var key string
	return s.update(func(st *models.Settings) error {
		providerChanged = st.AI.Provider != ai.Provider
		configured := st.AI.APIKeyConfigured
		st.AI = ai
		st.AI.APIKeyConfigured = configured
		if providerChanged {
			key, st.AI.APIKeyConfigured = s.storedKey(st.AI.Provider)
		}
		return nil
	}, func(st models.Settings) error {
		s.applyAI(st.AI)
		if providerChanged && s.keyring != nil {
			s.ai.SetCredential(key)
		}
		return nil
	})
}

func (s *settingsService) UpdatePrivacy(p models.PrivacySettings) (models.Settings, error) {
	return s.update(func(st *models.Settings) error {
		st.Privacy = p
		return nil
	})
}

func (s *settingsService) SetTheme(theme string) (models.Settings, error) {
	if err := validateTheme(theme); err != nil {
		return s.Get(), err
	}
	return s.update(func(st *models.Settings) error {
		st.Preferences.Theme = theme
		return nil
	})
}

// CycleTheme steps light, dark, system and back to light.
func (s *settingsService) CycleTheme() (models.Settings, error) {
	return s.update(func(st *models.Settings) error {
		next := 0
		for i, t := range themes {
			if t == st.Preferences.Theme {
				next = (i + 1) % len(themes)
				break
			}
		}
		st.Preferences.Theme = themes[next]
		return nil
	})
}

func (s *settingsService) SetAPIKey(key string) (models.Settings, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return s.Get(), errors.New("API key is empty")
	}
	st, err := s.update(func(st *models.Settings) error {
		st.AI.APIKeyConfigured = true
		return nil
	}, func(st models.Settings) error {
		if s.keyring != nil {
			if err := s.keyring.StoreApiKey(st.AI.Provider, key); err != nil {
				return fmt.Errorf("store API key: %w", err)
			}
		} else {
			s.logger.Warn("no keyring available, API key kept in memory only")
		}
		s.ai.SetCredential(key)
		return nil
	})
	if err == nil {
		events.Emit(contextOrBackground(s.ctx), events.Notify, events.NewSuccess("API key updated successfully!"))
	}
	return st, err
}

func (s *settingsService) ClearAPIKey() (models.Settings, error) {
	return s.update(func(st *models.Settings) error {
		st.AI.APIKeyConfigured = false
		return nil
	}, func(st models.Settings) error {
		if s.keyring != nil {
			if err := s.keyring.DeleteApiKey(st.AI.Provider); err != nil {
				return fmt.Errorf("delete API key: %w", err)
			}
		}
		s.ai.SetCredential("")
		return nil
	})
}

// Reset returns to defaults in memory; the caller owns the slot.
func (s *settingsService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = models.DefaultSettings()
	s.ai.SetCredential("")
	s.applyAI(s.settings.AI)
}

// update mutates a copy and saves it. Keyring and dispatcher effects go in
// apply, which runs only after a successful save; a failed apply restores
// the previous slot.
func (s *settingsService) update(mutate func(*models.Settings) error, apply ...func(models.Settings) error) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := contextOrBackground(s.ctx)
	next := s.settings
	if err := mutate(&next); err != nil {
		return s.settings, err
	}
	if err := storage.SaveJSON(ctx, s.repo, storage.SettingsKey, next); err != nil {
		return s.settings, fmt.Errorf("save settings: %w", err)
	}
	for _, fn := range apply {
		if err := fn(next); err != nil {
			if rerr := storage.SaveJSON(ctx, s.repo, storage.SettingsKey, s.settings); rerr != nil {
				s.logger.Warn("restore settings slot", "err", rerr)
			}
			return s.settings, err
		}
	}
	s.settings = next
	return next, nil
}

func (s *settingsService) applyAI(ai models.AISettings) {
	s.ai.SetModel(ai.Provider, ai.Model)
	s.ai.SetSampling(ai.MaxTokens, float32(ai.Temperature))
}

// storedKey reads the key kept for provider without touching the dispatcher.
// Without a keyring the in-memory credential carries over.
func (s *settingsService) storedKey(provider string) (string, bool) {
	if s.keyring == nil {
		return "", s.ai.HasCredential()
	}
	key, err := s.keyring.GetApiKey(provider)
	if err != nil {
		return "", false
	}
	return key, key != ""
}

func validateTheme(theme string) error {
	for _, t := range themes {
		if t == theme {
			return nil
		}
	}
	return errors.New("theme must be 'light', 'dark', or 'system'")
}
