package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/agenthub/agenthub/internal/domain"
	"github.com/agenthub/agenthub/internal/domain/settings"
	"github.com/agenthub/agenthub/internal/port/database"
)

type settingsStore struct {
	database.Store
	items   map[string]*settings.Setting
	upserts int
}

func newSettingsStore() *settingsStore {
	return &settingsStore{items: map[string]*settings.Setting{}}
}

func (s *settingsStore) ListSettings(_ context.Context) ([]settings.Setting, error) {
	out := make([]settings.Setting, 0, len(s.items))
	for _, st := range s.items {
		out = append(out, *st)
	}
	return out, nil
}

func (s *settingsStore) GetSetting(_ context.Context, key string) (*settings.Setting, error) {
	st, ok := s.items[key]
	if !ok {
		return nil, fmt.Errorf("setting %q: %w", key, domain.ErrNotFound)
	}
	cp := *st
	return &cp, nil
}

func (s *settingsStore) UpsertSetting(_ context.Context, key string, req settings.UpsertRequest) (*settings.Setting, error) {
	s.upserts++
	st := &settings.Setting{
		Key:         key,
		Value:       req.Value,
		Description: req.Description,
		IsSecret:    req.IsSecret,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	s.items[key] = st
	cp := *st
	return &cp, nil
}

func (s *settingsStore) DeleteSetting(_ context.Context, key string) error {
	if _, ok := s.items[key]; !ok {
		return fmt.Errorf("setting %q: %w", key, domain.ErrNotFound)
	}
	delete(s.items, key)
	return nil
}

func (s *settingsStore) UpdateSettingValue(_ context.Context, key string, value json.RawMessage) error {
	st, ok := s.items[key]
	if !ok {
		return fmt.Errorf("setting %q: %w", key, domain.ErrNotFound)
	}
	st.Value = value
	st.UpdatedAt = time.Now()
	return nil
}

func TestSettingsGetMasksSecrets(t *testing.T) {
	store := newSettingsStore()
	store.items["api_token"] = &settings.Setting{
		Key:      "api_token",
		Value:    json.RawMessage(`"super-secret"`),
		IsSecret: true,
	}
	svc := NewSettingsService(store)

	st, err := svc.Get(context.Background(), "api_token")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(st.Value) != `"********"` {
		t.Errorf("value = %s, want masked", st.Value)
	}
	// The stored value is untouched.
	if string(store.items["api_token"].Value) != `"super-secret"` {
		t.Errorf("stored value mutated: %s", store.items["api_token"].Value)
	}
}

func TestSettingsListMasksOnlySecrets(t *testing.T) {
	store := newSettingsStore()
	store.items["theme"] = &settings.Setting{Key: "theme", Value: json.RawMessage(`"dark"`)}
	store.items["token"] = &settings.Setting{Key: "token", Value: json.RawMessage(`"t"`), IsSecret: true}
	svc := NewSettingsService(store)

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, st := range items {
		switch st.Key {
		case "theme":
			if string(st.Value) != `"dark"` {
				t.Errorf("theme = %s", st.Value)
			}
		case "token":
			if string(st.Value) != `"********"` {
				t.Errorf("token = %s, want masked", st.Value)
			}
		}
	}
}

func TestSettingsUpsertValidation(t *testing.T) {
	svc := NewSettingsService(newSettingsStore())
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, "", settings.UpsertRequest{Value: json.RawMessage(`1`)}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty key: err = %v", err)
	}
	if _, err := svc.Upsert(ctx, "k", settings.UpsertRequest{Value: json.RawMessage(`{not json`)}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("invalid json: err = %v", err)
	}
	if _, err := svc.Upsert(ctx, "k", settings.UpsertRequest{}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty value: err = %v", err)
	}
	if _, err := svc.Upsert(ctx, "k", settings.UpsertRequest{Value: json.RawMessage(`{"a":1}`)}); err != nil {
		t.Errorf("valid upsert: err = %v", err)
	}
}

func TestLLMModelsSeedsDefaultsOnFirstRead(t *testing.T) {
	store := newSettingsStore()
	svc := NewSettingsService(store)

	models, err := svc.LLMModels(context.Background())
	if err != nil {
		t.Fatalf("LLMModels: %v", err)
	}
	if len(models) != 3 {
		t.Fatalf("len(models) = %d", len(models))
	}
	if !models["groq"].IsActive {
		t.Error("groq should be active by default")
	}
	if models["openai"].IsActive || models["anthropic"].IsActive {
		t.Error("only groq should be active")
	}
	if store.upserts != 1 {
		t.Errorf("upserts = %d, want the catalog persisted once", store.upserts)
	}
	if _, ok := store.items[settings.KeyLLMModels]; !ok {
		t.Error("llm_models setting not persisted")
	}

	// Second read comes from the store, no extra writes.
	if _, err := svc.LLMModels(context.Background()); err != nil {
		t.Fatalf("second LLMModels: %v", err)
	}
	if store.upserts != 1 {
		t.Errorf("upserts after second read = %d", store.upserts)
	}
}

func TestActivateLLMModel(t *testing.T) {
	store := newSettingsStore()
	svc := NewSettingsService(store)
	ctx := context.Background()

	models, err := svc.ActivateLLMModel(ctx, "anthropic")
	if err != nil {
		t.Fatalf("ActivateLLMModel: %v", err)
	}
	if !models["anthropic"].IsActive {
		t.Error("anthropic should be active")
	}
	if models["groq"].IsActive || models["openai"].IsActive {
		t.Error("exactly one model should be active")
	}

	// The stored value reflects the switch and never records availability.
	var stored map[string]settings.LLMModelConfig
	if err := json.Unmarshal(store.items[settings.KeyLLMModels].Value, &stored); err != nil {
		t.Fatalf("unmarshal stored catalog: %v", err)
	}
	if !stored["anthropic"].IsActive || stored["groq"].IsActive {
		t.Errorf("stored catalog = %+v", stored)
	}
	for key, m := range stored {
		if m.APIKeyAvailable {
			t.Errorf("stored %s has api_key_available persisted", key)
		}
	}

	key, cfg, err := svc.ActiveLLMModel(ctx)
	if err != nil {
		t.Fatalf("ActiveLLMModel: %v", err)
	}
	if key != "anthropic" || cfg.ModelName != "claude-3-haiku-20240307" {
		t.Errorf("active = %s %+v", key, cfg)
	}
}

func TestActivateLLMModelUnknown(t *testing.T) {
	svc := NewSettingsService(newSettingsStore())

	_, err := svc.ActivateLLMModel(context.Background(), "cohere")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestAPIKeyAvailability(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_real_key")
	t.Setenv("OPENAI_API_KEY", "your_openai_key_here")
	t.Setenv("ANTHROPIC_API_KEY", "")

	svc := NewSettingsService(newSettingsStore())
	models, err := svc.LLMModels(context.Background())
	if err != nil {
		t.Fatalf("LLMModels: %v", err)
	}
	if !models["groq"].APIKeyAvailable {
		t.Error("groq key should be available")
	}
	if models["openai"].APIKeyAvailable {
		t.Error("placeholder openai key should count as absent")
	}
	if models["anthropic"].APIKeyAvailable {
		t.Error("empty anthropic key should count as absent")
	}
}
