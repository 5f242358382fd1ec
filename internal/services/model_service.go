package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"bhindi/internal/assets"
	"bhindi/internal/models"
)

type ModelCatalogService interface {
	Startup(ctx context.Context) error
	ListModelGroups() ([]models.LLMModelGroup, error)
	GetModel(provider, apiName string) (*models.LLMModel, error)
}

type modelCatalogService struct {
	ctx context.Context

	mu            sync.RWMutex
	providerOrder []string
	providerNames map[string]string
	models        map[string][]models.LLMModel
}

type rawModelFile struct {
	Providers []rawProvider `json:"providers"`
}

type rawProvider struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Models      []rawModel `json:"models"`
}

type rawModel struct {
	DisplayName string `json:"displayName"`
	APIName     string `json:"apiName"`
	Recommended bool   `json:"recommended,omitempty"`
	Premium     bool   `json:"premium,omitempty"`
}

func NewModelCatalogService() ModelCatalogService {
	return &modelCatalogService{
		providerNames: make(map[string]string),
		models:        make(map[string][]models.LLMModel),
	}
}

func (s *modelCatalogService) Startup(ctx context.Context) error {
	s.ctx = ctx

	var parsed rawModelFile
	if err := json.Unmarshal(assets.ModelsData, &parsed); err != nil {
		return fmt.Errorf("parse models asset: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.providerOrder = make([]string, 0, len(parsed.Providers))
	for _, provider := range parsed.Providers {
		providerID := strings.TrimSpace(provider.ID)
		if providerID == "" {
			continue
		}
		providerName := strings.TrimSpace(provider.DisplayName)
		if providerName == "" {
			providerName = providerID
		}
		s.providerNames[providerID] = providerName
		s.providerOrder = append(s.providerOrder, providerID)

		list := make([]models.LLMModel, 0, len(provider.Models))
		for _, mdl := range provider.Models {
			apiName := strings.TrimSpace(mdl.APIName)
			if apiName == "" {
				continue
			}
			list = append(list, models.LLMModel{
				Key:          computeModelKey(providerID, apiName),
				DisplayName:  strings.TrimSpace(mdl.DisplayName),
				APIName:      apiName,
				ProviderID:   providerID,
				ProviderName: providerName,
				Recommended:  mdl.Recommended,
				Premium:      mdl.Premium,
			})
		}
		s.models[providerID] = list
	}
	return nil
}

func (s *modelCatalogService) ListModelGroups() ([]models.LLMModelGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]models.LLMModelGroup, 0, len(s.providerOrder))
	for _, providerID := range s.providerOrder {
		list := make([]models.LLMModel, len(s.models[providerID]))
		copy(list, s.models[providerID])
		groups = append(groups, models.LLMModelGroup{
			ProviderID:   providerID,
			ProviderName: s.providerNames[providerID],
			Models:       list,
		})
	}
	return groups, nil
}

func (s *modelCatalogService) GetModel(provider, apiName string) (*models.LLMModel, error) {
	provider = strings.TrimSpace(provider)
	apiName = strings.TrimSpace(apiName)
	if provider == "" || apiName == "" {
		return nil, fmt.Errorf("provider and model are required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, mdl := range s.models[provider] {
		if mdl.APIName == apiName {
			out := mdl
			return &out, nil
		}
	}
	return nil, fmt.Errorf("model %s not found for provider %s", apiName, provider)
}

func computeModelKey(providerID, apiName string) string {
	return providerID + "|" + apiName
}
