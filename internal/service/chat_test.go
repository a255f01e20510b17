package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/agenthub/agenthub/internal/domain"
	"github.com/agenthub/agenthub/internal/domain/chat"
	"github.com/agenthub/agenthub/internal/port/database"
)

type chatStore struct {
	database.Store
	messages []chat.Message
	nextID   int64
}

func (s *chatStore) SaveChatMessage(_ context.Context, req chat.SaveRequest) (*chat.Message, error) {
	s.nextID++
	msgType := req.MessageType
	if msgType == "" {
		msgType = "text"
	}
	msg := chat.Message{
		ID:          s.nextID,
		SessionID:   req.SessionID,
		Content:     req.Content,
		Sender:      req.Sender,
		MessageType: msgType,
		Metadata:    req.Metadata,
		CreatedAt:   time.Now(),
	}
	s.messages = append(s.messages, msg)
	return &msg, nil
}

func (s *chatStore) ListChatMessages(_ context.Context, sessionID string, limit int) ([]chat.Message, error) {
	var out []chat.Message
	for _, m := range s.messages {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *chatStore) LatestChatSession(_ context.Context) (string, error) {
	if len(s.messages) == 0 {
		return "", nil
	}
	return s.messages[len(s.messages)-1].SessionID, nil
}

func (s *chatStore) DeleteChatSession(_ context.Context, sessionID string) (int64, error) {
	var kept []chat.Message
	var deleted int64
	for _, m := range s.messages {
		if m.SessionID == sessionID {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	s.messages = kept
	return deleted, nil
}

func TestSaveMessageGeneratesSessionID(t *testing.T) {
	store := &chatStore{}
	svc := NewChatService(store)

	msg, err := svc.SaveMessage(context.Background(), chat.SaveRequest{
		Content: "hello",
		Sender:  chat.SenderUser,
	})
	if err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}
	if msg.SessionID == "" {
		t.Fatal("expected a generated session id")
	}
	if len(msg.SessionID) != 36 {
		t.Errorf("session id %q is not a UUID", msg.SessionID)
	}
	if msg.MessageType != "text" {
		t.Errorf("message type = %q, want text default", msg.MessageType)
	}
}

func TestSaveMessageKeepsSessionID(t *testing.T) {
	store := &chatStore{}
	svc := NewChatService(store)

	msg, err := svc.SaveMessage(context.Background(), chat.SaveRequest{
		SessionID: "session-1",
		Content:   "hi",
		Sender:    chat.SenderAgent,
	})
	if err != nil {
		t.Fatalf("SaveMessage: %v", err)
	}
	if msg.SessionID != "session-1" {
		t.Errorf("session id = %q", msg.SessionID)
	}
}

func TestSaveMessageValidation(t *testing.T) {
	svc := NewChatService(&chatStore{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  chat.SaveRequest
	}{
		{"empty content", chat.SaveRequest{Sender: chat.SenderUser}},
		{"unknown sender", chat.SaveRequest{Content: "hi", Sender: "robot"}},
		{"empty sender", chat.SaveRequest{Content: "hi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SaveMessage(ctx, tt.req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestHistoryFallsBackToLatestSession(t *testing.T) {
	store := &chatStore{}
	svc := NewChatService(store)
	ctx := context.Background()

	for i, sid := range []string{"old", "old", "recent"} {
		if _, err := svc.SaveMessage(ctx, chat.SaveRequest{
			SessionID: sid,
			Content:   fmt.Sprintf("msg %d", i),
			Sender:    chat.SenderUser,
		}); err != nil {
			t.Fatalf("SaveMessage: %v", err)
		}
	}

	msgs, err := svc.History(ctx, "", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(msgs) != 1 || msgs[0].SessionID != "recent" {
		t.Fatalf("messages = %+v, want the latest session only", msgs)
	}
}

func TestHistoryEmptyStore(t *testing.T) {
	svc := NewChatService(&chatStore{})

	msgs, err := svc.History(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if msgs == nil || len(msgs) != 0 {
		t.Fatalf("messages = %#v, want empty non-nil slice", msgs)
	}
}

func TestDeleteSession(t *testing.T) {
	store := &chatStore{}
	svc := NewChatService(store)
	ctx := context.Background()

	for range 3 {
		if _, err := svc.SaveMessage(ctx, chat.SaveRequest{
			SessionID: "doomed", Content: "x", Sender: chat.SenderUser,
		}); err != nil {
			t.Fatalf("SaveMessage: %v", err)
		}
	}

	n, err := svc.DeleteSession(ctx, "doomed")
	if err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if n != 3 {
		t.Errorf("deleted = %d, want 3", n)
	}

	if _, err := svc.DeleteSession(ctx, ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty session id: err = %v", err)
	}
}
