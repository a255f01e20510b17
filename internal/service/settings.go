package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/agenthub/agenthub/internal/domain"
	"github.com/agenthub/agenthub/internal/domain/settings"
	"github.com/agenthub/agenthub/internal/port/database"
)

// maskedValue replaces secret setting values on the read path.
var maskedValue = json.RawMessage(`"********"`)

// SettingsService handles settings CRUD and the LLM model catalog.
type SettingsService struct {
	store database.Store
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(store database.Store) *SettingsService {
	return &SettingsService{store: store}
}

// List returns all settings. Secret values are masked.
func (s *SettingsService) List(ctx context.Context) ([]settings.Setting, error) {
	items, err := s.store.ListSettings(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].IsSecret {
			items[i].Value = maskedValue
		}
	}
	return items, nil
}

// Get returns one setting by key. Secret values are masked.
func (s *SettingsService) Get(ctx context.Context, key string) (*settings.Setting, error) {
	st, err := s.store.GetSetting(ctx, key)
	if err != nil {
		return nil, err
	}
	if st.IsSecret {
		st.Value = maskedValue
	}
	return st, nil
}

// Upsert creates or replaces a setting.
func (s *SettingsService) Upsert(ctx context.Context, key string, req settings.UpsertRequest) (*settings.Setting, error) {
	if key == "" {
		return nil, validationErrorf("key is required")
	}
	if len(req.Value) == 0 || !json.Valid(req.Value) {
		return nil, validationErrorf("value must be valid JSON")
	}
	return s.store.UpsertSetting(ctx, key, req)
}

// Delete removes a setting.
func (s *SettingsService) Delete(ctx context.Context, key string) error {
	return s.store.DeleteSetting(ctx, key)
}

// LLMModels returns the model catalog, seeding the default catalog on first
// read. api_key_available is computed from the environment on every read and
// never persisted as truth.
func (s *SettingsService) LLMModels(ctx context.Context) (map[string]settings.LLMModelConfig, error) {
	models, err := s.loadLLMModels(ctx)
	if err != nil {
		return nil, err
	}
	for key, m := range models {
		m.APIKeyAvailable = apiKeyAvailable(m.APIKeyEnvVar)
		models[key] = m
	}
	return models, nil
}

// ActivateLLMModel makes the given provider the single active one.
func (s *SettingsService) ActivateLLMModel(ctx context.Context, key string) (map[string]settings.LLMModelConfig, error) {
	models, err := s.loadLLMModels(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := models[key]; !ok {
		return nil, fmt.Errorf("llm model %q: %w", key, domain.ErrNotFound)
	}

	for k, m := range models {
		m.IsActive = k == key
		m.APIKeyAvailable = false // computed on read, not stored
		models[k] = m
	}

	value, err := json.Marshal(models)
	if err != nil {
		return nil, fmt.Errorf("marshal llm models: %w", err)
	}
	if err := s.store.UpdateSettingValue(ctx, settings.KeyLLMModels, value); err != nil {
		return nil, err
	}

	for k, m := range models {
		m.APIKeyAvailable = apiKeyAvailable(m.APIKeyEnvVar)
		models[k] = m
	}
	return models, nil
}

// ActiveLLMModel returns the currently active provider and its config.
func (s *SettingsService) ActiveLLMModel(ctx context.Context) (string, *settings.LLMModelConfig, error) {
	models, err := s.LLMModels(ctx)
	if err != nil {
		return "", nil, err
	}
	for key, m := range models {
		if m.IsActive {
			return key, &m, nil
		}
	}
	return "", nil, fmt.Errorf("active llm model: %w", domain.ErrNotFound)
}

// loadLLMModels reads the llm_models setting, creating it with the default
// catalog when missing.
func (s *SettingsService) loadLLMModels(ctx context.Context) (map[string]settings.LLMModelConfig, error) {
	st, err := s.store.GetSetting(ctx, settings.KeyLLMModels)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		defaults := settings.DefaultLLMModels()
		value, mErr := json.Marshal(defaults)
		if mErr != nil {
			return nil, fmt.Errorf("marshal default llm models: %w", mErr)
		}
		if _, uErr := s.store.UpsertSetting(ctx, settings.KeyLLMModels, settings.UpsertRequest{
			Value:       value,
			Description: "LLM provider model catalog",
		}); uErr != nil {
			return nil, uErr
		}
		return defaults, nil
	}

	var models map[string]settings.LLMModelConfig
	if err := json.Unmarshal(st.Value, &models); err != nil {
		return nil, fmt.Errorf("parse llm models setting: %w", err)
	}
	return models, nil
}

// apiKeyAvailable reports whether the env var holds a usable API key.
// Common placeholder values count as absent.
func apiKeyAvailable(envVar string) bool {
	if envVar == "" {
		return false
	}
	v := strings.TrimSpace(os.Getenv(envVar))
	if v == "" {
		return false
	}
	lower := strings.ToLower(v)
	if strings.HasPrefix(lower, "your_") || strings.Contains(lower, "placeholder") || lower == "changeme" {
		return false
	}
	return true
}
