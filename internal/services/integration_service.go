package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"bhindi/internal/assets"
	"bhindi/internal/events"
	"bhindi/internal/models"
)

var ErrIntegrationNotFound = errors.New("integration not found")

// ConnectResult mirrors the toast the gallery shows after a connect attempt.
type ConnectResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type IntegrationService interface {
	Startup(ctx context.Context) error
	List(category, query string) []models.Integration
	Categories() []models.IntegrationCategoryOption
	Stats() models.IntegrationStats
	ComingSoonCount() int
	Connect(id string) (ConnectResult, error)
}

type integrationService struct {
	ctx context.Context

	mu           sync.RWMutex
	categories   []models.IntegrationCategoryOption
	integrations []models.Integration
}

type rawIntegrationFile struct {
	Categories   []models.IntegrationCategoryOption `json:"categories"`
	Integrations []models.Integration               `json:"integrations"`
}

func NewIntegrationService() IntegrationService {
	return &integrationService{}
}

func (s *integrationService) Startup(ctx context.Context) error {
	s.ctx = ctx

	var parsed rawIntegrationFile
	if err := json.Unmarshal(assets.IntegrationsData, &parsed); err != nil {
		return fmt.Errorf("parse integrations asset: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = parsed.Categories
	s.integrations = parsed.Integrations
	return nil
}

// List filters by category ("" or "all" for every category) and by a
// case-insensitive match on name or description.
func (s *integrationService) List(category, query string) []models.Integration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Integration, 0, len(s.integrations))
	for _, in := range s.integrations {
		if category != "" && category != "all" && string(in.Category) != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(in.Name), q) &&
			!strings.Contains(strings.ToLower(in.Description), q) {
			continue
		}
		out = append(out, in)
	}
	return out
}

func (s *integrationService) Categories() []models.IntegrationCategoryOption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.IntegrationCategoryOption, len(s.categories))
	copy(out, s.categories)
	return out
}

func (s *integrationService) Stats() models.IntegrationStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stats := models.IntegrationStats{Total: len(s.integrations)}
	for _, in := range s.integrations {
		if in.Connected {
			stats.Connected++
		}
		if in.Free {
			stats.Free++
		}
	}
	return stats
}

func (s *integrationService) ComingSoonCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, in := range s.integrations {
		if in.ComingSoon {
			n++
		}
	}
	return n
}

func (s *integrationService) Connect(id string) (ConnectResult, error) {
	s.mu.RLock()
	var found *models.Integration
	for i := range s.integrations {
		if s.integrations[i].ID == id {
			in := s.integrations[i]
			found = &in
			break
		}
	}
	s.mu.RUnlock()
	if found == nil {
		return ConnectResult{}, fmt.Errorf("%w: %s", ErrIntegrationNotFound, id)
	}

	var res ConnectResult
	switch {
	case found.ComingSoon:
		res = ConnectResult{Message: "This integration is coming soon!"}
	case found.Connected:
		res = ConnectResult{Success: true, Message: found.Name + " is already connected!"}
	default:
		res = ConnectResult{Message: "Premium integrations require a paid plan"}
	}

	evt := events.NewError(res.Message)
	if res.Success {
		evt = events.NewSuccess(res.Message)
	}
	events.Emit(contextOrBackground(s.ctx), events.Notify, evt)
	return res, nil
}
