package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/agenthub/agenthub/internal/domain/chat"
	"github.com/agenthub/agenthub/internal/port/database"
)

// ChatService persists chat messages and serves session history.
type ChatService struct {
	store database.Store
}

// NewChatService creates a new ChatService.
func NewChatService(store database.Store) *ChatService {
	return &ChatService{store: store}
}

// SaveMessage stores one chat message. An empty session id starts a new
// session with a generated UUID.
func (s *ChatService) SaveMessage(ctx context.Context, req chat.SaveRequest) (*chat.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}
	return s.store.SaveChatMessage(ctx, req)
}

// History returns the messages of a session in chronological order. An empty
// session id means the most recently active session; no history yields an
// empty slice.
func (s *ChatService) History(ctx context.Context, sessionID string, limit int) ([]chat.Message, error) {
	if sessionID == "" {
		latest, err := s.store.LatestChatSession(ctx)
		if err != nil {
			return nil, err
		}
		if latest == "" {
			return []chat.Message{}, nil
		}
		sessionID = latest
	}
	return s.store.ListChatMessages(ctx, sessionID, normalizeLimit(limit))
}

// Sessions returns the most recently active sessions.
func (s *ChatService) Sessions(ctx context.Context, limit int) ([]chat.SessionSummary, error) {
	return s.store.ListChatSessions(ctx, normalizeLimit(limit))
}

// DeleteSession removes all messages of a session and reports how many were
// deleted.
func (s *ChatService) DeleteSession(ctx context.Context, sessionID string) (int64, error) {
	if sessionID == "" {
		return 0, validationErrorf("session id is required")
	}
	return s.store.DeleteChatSession(ctx, sessionID)
}
