// Package chat defines the chat message history types.
package chat

import (
	"encoding/json"
	"errors"
	"time"
)

// Sender values for a chat message.
const (
	SenderUser   = "user"
	SenderAgent  = "agent"
	SenderSystem = "system"
)

// Message represents one message in a chat session.
type Message struct {
	ID          int64           `json:"id"`
	SessionID   string          `json:"session_id"`
	Content     string          `json:"content"`
	Sender      string          `json:"sender"`
	MessageType string          `json:"message_type"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SaveRequest is the request body for saving a chat message.
// SessionID is optional; a new session is started when it is empty.
type SaveRequest struct {
	SessionID   string          `json:"session_id,omitempty"`
	Content     string          `json:"content"`
	Sender      string          `json:"sender"`
	MessageType string          `json:"message_type,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

// Validate checks that a SaveRequest is well-formed.
func (r *SaveRequest) Validate() error {
	if r.Content == "" {
		return errors.New("content is required")
	}
	switch r.Sender {
	case SenderUser, SenderAgent, SenderSystem:
		return nil
	}
	return errors.New("sender must be one of: user, agent, system")
}

// SessionSummary is one session with its latest message, for session listings.
type SessionSummary struct {
	SessionID   string    `json:"session_id"`
	LastMessage Message   `json:"last_message"`
	Timestamp   time.Time `json:"timestamp"`
}
