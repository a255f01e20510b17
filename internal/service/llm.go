package service

import (
	"fmt"
	"os"

	"github.com/agenthub/agenthub/internal/adapter/groq"
	"github.com/agenthub/agenthub/internal/adapter/openai"
	"github.com/agenthub/agenthub/internal/domain/settings"
	"github.com/agenthub/agenthub/internal/port/llm"
)

// anthropicBaseURL is Anthropic's OpenAI-compatible endpoint.
const anthropicBaseURL = "https://api.anthropic.com/v1"

// LLMClientFactory builds a completion client for a provider config.
// Swapped out in tests.
type LLMClientFactory func(provider string, cfg settings.LLMModelConfig) (llm.Client, error)

// NewLLMClient builds the completion client for the given provider. The API
// key is read from the config's env var at call time and never stored.
func NewLLMClient(provider string, cfg settings.LLMModelConfig) (llm.Client, error) {
	apiKey := os.Getenv(cfg.APIKeyEnvVar)
	if apiKey == "" {
		return nil, fmt.Errorf("llm provider %s: %s is not set", provider, cfg.APIKeyEnvVar)
	}

	temperature := paramFloat(cfg.Parameters, "temperature", 0.1)
	maxTokens := paramInt(cfg.Parameters, "max_tokens", 1000)

	switch provider {
	case "groq":
		return groq.NewClient(apiKey, cfg.ModelName, groq.WithParams(temperature, maxTokens)), nil
	case "openai":
		return openai.NewClient(openai.Config{
			Name:        "openai",
			APIKey:      apiKey,
			Model:       cfg.ModelName,
			Temperature: temperature,
			MaxTokens:   maxTokens,
		}), nil
	case "anthropic":
		return openai.NewClient(openai.Config{
			Name:        "anthropic",
			BaseURL:     anthropicBaseURL,
			APIKey:      apiKey,
			Model:       cfg.ModelName,
			Temperature: temperature,
			MaxTokens:   maxTokens,
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", provider)
	}
}

func paramFloat(params map[string]any, key string, fallback float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return fallback
}

func paramInt(params map[string]any, key string, fallback int) int {
	switch v := params[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return fallback
}
