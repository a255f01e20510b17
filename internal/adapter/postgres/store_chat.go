package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"

	"github.com/agenthub/agenthub/internal/domain/chat"
)

const chatColumns = `id, session_id, content, sender, message_type, metadata, created_at`

func scanChatMessage(row pgx.Row) (chat.Message, error) {
	var m chat.Message
	err := row.Scan(&m.ID, &m.SessionID, &m.Content, &m.Sender, &m.MessageType, &m.Metadata, &m.CreatedAt)
	if err != nil {
		return m, err
	}
	return m, nil
}

// SaveChatMessage inserts one chat message. The caller is responsible for
// assigning a session id.
func (s *Store) SaveChatMessage(ctx context.Context, req chat.SaveRequest) (*chat.Message, error) {
	messageType := req.MessageType
	if messageType == "" {
		messageType = "text"
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO chat_messages (session_id, content, sender, message_type, metadata)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+chatColumns,
		req.SessionID, req.Content, req.Sender, messageType, req.Metadata)

	m, err := scanChatMessage(row)
	if err != nil {
		return nil, fmt.Errorf("save chat message: %w", err)
	}
	return &m, nil
}

// ListChatMessages returns the messages of one session in chronological order.
func (s *Store) ListChatMessages(ctx context.Context, sessionID string, limit int) ([]chat.Message, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+chatColumns+` FROM chat_messages WHERE session_id = $1 ORDER BY created_at, id LIMIT $2`,
		sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}
	defer rows.Close()

	messages := []chat.Message{}
	for rows.Next() {
		m, err := scanChatMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// LatestChatSession returns the session id of the most recent message, or ""
// when there is no chat history.
func (s *Store) LatestChatSession(ctx context.Context) (string, error) {
	var sessionID string
	err := s.pool.QueryRow(ctx,
		`SELECT session_id FROM chat_messages ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&sessionID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("latest chat session: %w", err)
	}
	return sessionID, nil
}

// ListChatSessions returns the most recently active sessions, each with its
// latest message.
func (s *Store) ListChatSessions(ctx context.Context, limit int) ([]chat.SessionSummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT ON (session_id) `+chatColumns+`
		 FROM chat_messages
		 ORDER BY session_id, created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list chat sessions: %w", err)
	}
	defer rows.Close()

	var sessions []chat.SessionSummary
	for rows.Next() {
		m, err := scanChatMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chat session: %w", err)
		}
		sessions = append(sessions, chat.SessionSummary{
			SessionID:   m.SessionID,
			LastMessage: m,
			Timestamp:   m.CreatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// DISTINCT ON orders by session id; re-sort by recency and trim.
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Timestamp.After(sessions[j].Timestamp)
	})
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

// DeleteChatSession removes all messages of one session and reports how many
// were deleted.
func (s *Store) DeleteChatSession(ctx context.Context, sessionID string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM chat_messages WHERE session_id = $1`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("delete chat session %s: %w", sessionID, err)
	}
	return tag.RowsAffected(), nil
}
