package services

import (
	"context"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bhindi/internal/models"
	"bhindi/internal/storage"
	"bhindi/internal/tests/mocks"
)

type settingsFixture struct {
	svc  SettingsService
	repo *mocks.SlotRepositoryMock
	ring *KeyringService
	ai   *mocks.AIConfigurerMock
}

func newSettingsFixture(t *testing.T, repo *mocks.SlotRepositoryMock, ring *KeyringService) settingsFixture {
	t.Helper()
	if repo == nil {
		repo = mocks.NewSlotRepositoryMock()
	}
	if ring == nil {
		ring = NewKeyringService(keyring.NewArrayKeyring(nil))
	}
	catalog := NewModelCatalogService()
	require.NoError(t, catalog.Startup(context.Background()))
	ai := &mocks.AIConfigurerMock{Provider: "openai", ModelName: "gpt-3.5-turbo"}
	svc := NewSettingsService(repo, ring, ai, catalog, nil)
	require.NoError(t, svc.Startup(context.Background()))
	return settingsFixture{svc: svc, repo: repo, ring: ring, ai: ai}
}

func TestSettingsService_Defaults(t *testing.T) {
	f := newSettingsFixture(t, nil, nil)

	got := f.svc.Get()
	want := models.DefaultSettings()
	assert.Equal(t, want, got)
	assert.False(t, got.AI.APIKeyConfigured)
	_, saved := f.repo.Slots[storage.SettingsKey]
	assert.False(t, saved)
}

func TestSettingsService_StartupAdoptsConfiguredModel(t *testing.T) {
	repo := mocks.NewSlotRepositoryMock()
	catalog := NewModelCatalogService()
	require.NoError(t, catalog.Startup(context.Background()))
	ai := &mocks.AIConfigurerMock{Provider: "anthropic", ModelName: "claude-3-5-haiku-latest"}

	svc := NewSettingsService(repo, nil, ai, catalog, nil)
	require.NoError(t, svc.Startup(context.Background()))

	assert.Equal(t, "anthropic", svc.Get().AI.Provider)
	assert.Equal(t, "claude-3-5-haiku-latest", svc.Get().AI.Model)
}

func TestSettingsService_UpdatePreferencesValidation(t *testing.T) {
	f := newSettingsFixture(t, nil, nil)
	prefs := f.svc.Get().Preferences

	bad := prefs
	bad.Theme = "neon"
	_, err := f.svc.UpdatePreferences(bad)
	assert.Error(t, err)

	bad = prefs
	bad.Timezone = "Mars/Olympus"
	_, err = f.svc.UpdatePreferences(bad)
	assert.Error(t, err)

	good := prefs
	good.Theme = "dark"
	good.Timezone = "Europe/Berlin"
	good.SoundEnabled = false
	st, err := f.svc.UpdatePreferences(good)
	require.NoError(t, err)
	assert.Equal(t, good, st.Preferences)
	assert.Contains(t, f.repo.Slots[storage.SettingsKey], `"timezone":"Europe/Berlin"`)
}

func TestSettingsService_CycleTheme(t *testing.T) {
	f := newSettingsFixture(t, nil, nil)

	st, err := f.svc.SetTheme("light")
	require.NoError(t, err)
	assert.Equal(t, "light", st.Preferences.Theme)

	for _, want := range []string{"dark", "system", "light"} {
		st, err = f.svc.CycleTheme()
		require.NoError(t, err)
		assert.Equal(t, want, st.Preferences.Theme)
	}

	_, err = f.svc.SetTheme("sepia")
	assert.Error(t, err)
}

func TestSettingsService_UpdateAI(t *testing.T) {
	f := newSettingsFixture(t, nil, nil)
	ai := f.svc.Get().AI

	bad := ai
	bad.Temperature = 2.5
	_, err := f.svc.UpdateAI(bad)
	assert.Error(t, err)

	bad = ai
	bad.MaxTokens = 50
	_, err = f.svc.UpdateAI(bad)
	assert.Error(t, err)

	bad = ai
	bad.Model = "gpt-2"
	_, err = f.svc.UpdateAI(bad)
	assert.Error(t, err)

	good := ai
	good.Model = "gpt-4"
	good.Temperature = 1.2
	good.MaxTokens = 2000
	st, err := f.svc.UpdateAI(good)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4", st.AI.Model)
	assert.Equal(t, "gpt-4", f.ai.ModelName)
	assert.Equal(t, 2000, f.ai.MaxTokens)
	assert.InDelta(t, 1.2, f.ai.Temperature, 0.0001)
}

func TestSettingsService_APIKeyLivesInKeyring(t *testing.T) {
	notes := captureEvents(t)
	f := newSettingsFixture(t, nil, nil)

	_, err := f.svc.SetAPIKey("  ")
	assert.Error(t, err)

	st, err := f.svc.SetAPIKey(" sk-live ")
	require.NoError(t, err)
	assert.True(t, st.AI.APIKeyConfigured)
	assert.Equal(t, "sk-live", f.ai.Credential)
	assert.NotContains(t, f.repo.Slots[storage.SettingsKey], "sk-live")

	key, err := f.ring.GetApiKey("openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-live", key)
	require.Len(t, notes(), 1)

	st, err = f.svc.ClearAPIKey()
	require.NoError(t, err)
	assert.False(t, st.AI.APIKeyConfigured)
	assert.Empty(t, f.ai.Credential)
	_, err = f.ring.GetApiKey("openai")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestSettingsService_ProviderSwitchRestoresKey(t *testing.T) {
	f := newSettingsFixture(t, nil, nil)
	require.NoError(t, f.ring.StoreApiKey("anthropic", "sk-ant"))
	_, err := f.svc.SetAPIKey("sk-openai")
	require.NoError(t, err)

	ai := f.svc.Get().AI
	ai.Provider = "anthropic"
	ai.Model = "claude-3-5-haiku-latest"
	st, err := f.svc.UpdateAI(ai)
	require.NoError(t, err)
	assert.True(t, st.AI.APIKeyConfigured)
	assert.Equal(t, "sk-ant", f.ai.Credential)
	assert.Equal(t, "anthropic", f.ai.Provider)

	ai.Provider = "gemini"
	ai.Model = "gemini-2.0-flash"
	st, err = f.svc.UpdateAI(ai)
	require.NoError(t, err)
	assert.False(t, st.AI.APIKeyConfigured)
	assert.Empty(t, f.ai.Credential)
}

func TestSettingsService_StartupRestoresSaved(t *testing.T) {
	first := newSettingsFixture(t, nil, nil)
	_, err := first.svc.UpdateProfile(models.ProfileSettings{Name: " Ada ", Email: "ada@example.com"})
	require.NoError(t, err)
	_, err = first.svc.SetAPIKey("sk-saved")
	require.NoError(t, err)

	second := newSettingsFixture(t, first.repo, first.ring)
	st := second.svc.Get()
	assert.Equal(t, "Ada", st.Profile.Name)
	assert.True(t, st.AI.APIKeyConfigured)
	assert.Equal(t, "sk-saved", second.ai.Credential)
}

func TestSettingsService_CorruptSlotFallsBack(t *testing.T) {
	repo := mocks.NewSlotRepositoryMock()
	repo.Slots[storage.SettingsKey] = "{not json"
	f := newSettingsFixture(t, repo, nil)
	assert.Equal(t, models.DefaultSettings().Profile, f.svc.Get().Profile)
}

func TestSettingsService_Reset(t *testing.T) {
	f := newSettingsFixture(t, nil, nil)
	_, err := f.svc.SetTheme("dark")
	require.NoError(t, err)
	_, err = f.svc.SetAPIKey("sk")
	require.NoError(t, err)

	f.svc.Reset()
	assert.Equal(t, models.DefaultSettings(), f.svc.Get())
	assert.Empty(t, f.ai.Credential)
}

func TestSettingsService_FailedSaveLeavesKeyAndModel(t *testing.T) {
	f := newSettingsFixture(t, nil, nil)
	f.repo.PutFunc = func(ctx context.Context, key, value string) error { return assert.AnError }

	st, err := f.svc.SetAPIKey("sk-new")
	assert.ErrorIs(t, err, assert.AnError)
	assert.False(t, st.AI.APIKeyConfigured)
	assert.False(t, f.ai.HasCredential())
	_, err = f.ring.GetApiKey("openai")
	assert.ErrorIs(t, err, ErrNoAPIKey)

	ai := f.svc.Get().AI
	ai.Model = "gpt-4"
	ai.MaxTokens = 2000
	_, err = f.svc.UpdateAI(ai)
	assert.Error(t, err)
	assert.Equal(t, "gpt-3.5-turbo", f.ai.ModelName)
	assert.Equal(t, "gpt-3.5-turbo", f.svc.Get().AI.Model)
	assert.NotEqual(t, 2000, f.ai.MaxTokens)
}

func TestSettingsService_FailedClearKeepsKey(t *testing.T) {
	f := newSettingsFixture(t, nil, nil)
	_, err := f.svc.SetAPIKey("sk-kept")
	require.NoError(t, err)
	f.repo.PutFunc = func(ctx context.Context, key, value string) error { return assert.AnError }

	st, err := f.svc.ClearAPIKey()
	assert.Error(t, err)
	assert.True(t, st.AI.APIKeyConfigured)
	assert.Equal(t, "sk-kept", f.ai.Credential)
	key, err := f.ring.GetApiKey("openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-kept", key)
}
