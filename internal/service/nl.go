package service

import (
	"context"
	"fmt"

	"github.com/agenthub/agenthub/internal/dispatch"
	"github.com/agenthub/agenthub/internal/dispatch/nlroute"
	"github.com/agenthub/agenthub/internal/port/llm"
)

// NLResult is the response of one natural-language query. Exactly one of
// Dispatch or Response is set: Dispatch when a pattern matched and an action
// ran, Response when the query fell through to the LLM.
type NLResult struct {
	Matched  bool             `json:"matched"`
	Action   string           `json:"action,omitempty"`
	Dispatch *dispatch.Result `json:"dispatch,omitempty"`
	Response string           `json:"response,omitempty"`
	Provider string           `json:"provider,omitempty"`
	Model    string           `json:"model,omitempty"`
}

// NLService routes free-text queries: pattern match to a dispatched action,
// or fall back to the active LLM provider.
type NLService struct {
	dispatcher *dispatch.Dispatcher
	settings   *SettingsService
	newClient  LLMClientFactory
}

// NewNLService creates a new NLService.
func NewNLService(dispatcher *dispatch.Dispatcher, settings *SettingsService) *NLService {
	return &NLService{
		dispatcher: dispatcher,
		settings:   settings,
		newClient:  NewLLMClient,
	}
}

// SetClientFactory replaces the LLM client constructor. Used by tests.
func (s *NLService) SetClientFactory(f LLMClientFactory) {
	s.newClient = f
}

// Query classifies and answers one free-text query on behalf of an agent.
func (s *NLService) Query(ctx context.Context, agentID int64, query string) (*NLResult, error) {
	if query == "" {
		return nil, validationErrorf("query is required")
	}

	if req, ok := nlroute.Route(query); ok {
		res, err := s.dispatcher.Dispatch(ctx, agentID, req.Action, req.Parameters)
		if err != nil {
			return nil, err
		}
		return &NLResult{Matched: true, Action: req.Action, Dispatch: res}, nil
	}

	return s.complete(ctx, query)
}

// complete sends the raw query to the active LLM provider.
func (s *NLService) complete(ctx context.Context, query string) (*NLResult, error) {
	provider, cfg, err := s.settings.ActiveLLMModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("no active llm provider: %w", err)
	}

	client, err := s.newClient(provider, *cfg)
	if err != nil {
		return nil, err
	}

	completion, err := client.Complete(ctx, []llm.Message{
		{Role: "system", Content: "You are a helpful assistant for a developer tools dashboard. Answer concisely."},
		{Role: "user", Content: query},
	})
	if err != nil {
		return nil, fmt.Errorf("llm completion: %w", err)
	}

	return &NLResult{
		Response: completion.Content,
		Provider: provider,
		Model:    completion.Model,
	}, nil
}
