// Package settings defines the domain types for application settings.
package settings

import (
	"encoding/json"
	"time"
)

// KeyLLMModels is the setting that holds the per-provider LLM model configs.
const KeyLLMModels = "llm_models"

// Setting represents a key-value configuration setting.
type Setting struct {
	Key         string          `json:"key"`
	Value       json.RawMessage `json:"value"`
	Description string          `json:"description,omitempty"`
	IsSecret    bool            `json:"is_secret"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// UpsertRequest holds the fields to create or update a setting.
type UpsertRequest struct {
	Value       json.RawMessage `json:"value"`
	Description string          `json:"description,omitempty"`
	IsSecret    bool            `json:"is_secret"`
}

// LLMModelConfig describes one selectable LLM backend.
// API keys are never stored; only the env var name that holds them.
type LLMModelConfig struct {
	Provider        string         `json:"provider"`
	ModelName       string         `json:"model_name"`
	APIKeyEnvVar    string         `json:"api_key_env_var"`
	Parameters      map[string]any `json:"parameters,omitempty"`
	IsActive        bool           `json:"is_active"`
	APIKeyAvailable bool           `json:"api_key_available"` // computed at read time, never persisted as truth
}

// DefaultLLMModels returns the built-in model catalog with groq active.
func DefaultLLMModels() map[string]LLMModelConfig {
	params := map[string]any{"temperature": 0.1, "max_tokens": 1000}
	return map[string]LLMModelConfig{
		"groq": {
			Provider:     "groq",
			ModelName:    "llama-3.3-70b-versatile",
			APIKeyEnvVar: "GROQ_API_KEY",
			Parameters:   params,
			IsActive:     true,
		},
		"openai": {
			Provider:     "openai",
			ModelName:    "gpt-4o",
			APIKeyEnvVar: "OPENAI_API_KEY",
			Parameters:   params,
		},
		"anthropic": {
			Provider:     "anthropic",
			ModelName:    "claude-3-haiku-20240307",
			APIKeyEnvVar: "ANTHROPIC_API_KEY",
			Parameters:   params,
		},
	}
}
