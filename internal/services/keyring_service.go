package services

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/99designs/keyring"

	"bhindi/internal/utils"
)

const serviceName = "bhindi"

var ErrNoAPIKey = errors.New("no API key stored")

func GetOS() string {
	return runtime.GOOS
}

type KeyringConfig struct {
	// Backend forces a single keyring backend (e.g. "file", "keychain").
	Backend string
	// Dir is used by the file backend.
	Dir string
	// Password unlocks the file backend.
	Password string
}

// OpenKeyring opens the OS keyring, or the configured backend.
func OpenKeyring(cfg KeyringConfig) (keyring.Keyring, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "~/.bhindi/keyring"
	}
	kcfg := keyring.Config{
		ServiceName:      serviceName,
		FileDir:          utils.ExpandHome(dir),
		FilePasswordFunc: keyring.FixedStringPrompt(cfg.Password),
		KeychainName:     serviceName,
	}
	if cfg.Backend != "" {
		kcfg.AllowedBackends = []keyring.BackendType{keyring.BackendType(cfg.Backend)}
	}
	ring, err := keyring.Open(kcfg)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return ring, nil
}

// KeyringService keeps provider API keys out of the database.
type KeyringService struct {
	ring keyring.Keyring
}

func NewKeyringService(ring keyring.Keyring) *KeyringService {
	return &KeyringService{ring: ring}
}

func (s *KeyringService) StoreApiKey(provider string, apiKey string) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return errors.New("API key is empty")
	}
	if provider == "" {
		return errors.New("provider is required")
	}
	return s.ring.Set(keyring.Item{
		Key:         provider,
		Data:        []byte(apiKey),
		Label:       provider + " API key",
		Description: "API key for " + provider + " used by Bhindi",
	})
}

func (s *KeyringService) GetApiKey(provider string) (string, error) {
	if provider == "" {
		return "", errors.New("provider is required")
	}
	item, err := s.ring.Get(provider)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", fmt.Errorf("%w for %s", ErrNoAPIKey, provider)
		}
		return "", err
	}
	return string(item.Data), nil
}

func (s *KeyringService) DeleteApiKey(provider string) error {
	if provider == "" {
		return errors.New("provider is required")
	}
	if err := s.ring.Remove(provider); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

func (s *KeyringService) ListApiKeys() ([]map[string]string, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)

	results := make([]map[string]string, 0, len(keys))
	for _, provider := range keys {
		results = append(results, map[string]string{
			"provider":    provider,
			"label":       provider + " API key",
			"description": "API key for " + provider + " used by Bhindi",
		})
	}
	return results, nil
}

// DeleteAll removes every stored key.
func (s *KeyringService) DeleteAll() error {
	keys, err := s.ring.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := s.DeleteApiKey(k); err != nil {
			return err
		}
	}
	return nil
}
