package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agenthub/agenthub/internal/domain/chat"
)

// --- Chat endpoints ---

// SaveChatMessage handles POST /api/v1/chat/messages
func (h *Handlers) SaveChatMessage(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[chat.SaveRequest](w, r)
	if !ok {
		return
	}

	m, err := h.Chat.SaveMessage(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, "chat message")
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

// ListChatMessages handles GET /api/v1/chat/messages?session_id&limit
func (h *Handlers) ListChatMessages(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	messages, err := h.Chat.History(r.Context(), sessionID, queryInt(r, "limit", 0))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if messages == nil {
		messages = []chat.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

// ListChatSessions handles GET /api/v1/chat/sessions
func (h *Handlers) ListChatSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.Chat.Sessions(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if sessions == nil {
		sessions = []chat.SessionSummary{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

// DeleteChatSession handles DELETE /api/v1/chat/sessions/{id}
func (h *Handlers) DeleteChatSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	deleted, err := h.Chat.DeleteSession(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, err, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// --- NL endpoint ---

type nlQueryRequest struct {
	AgentID int64  `json:"agent_id"`
	Query   string `json:"query"`
}

// NLQuery handles POST /api/v1/nl/query
func (h *Handlers) NLQuery(w http.ResponseWriter, r *http.Request) {
	req, ok := readJSON[nlQueryRequest](w, r)
	if !ok {
		return
	}

	res, err := h.NL.Query(r.Context(), req.AgentID, req.Query)
	if err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
