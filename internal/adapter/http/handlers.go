package http

import (
	"net/http"

	"github.com/agenthub/agenthub/internal/domain/agent"
	"github.com/agenthub/agenthub/internal/service"
)

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	Agents    *service.AgentService
	Tools     *service.ToolService
	Execution *service.ExecutionService
	Settings  *service.SettingsService
	Chat      *service.ChatService
	NL        *service.NLService
}

// --- Agent endpoints ---

// ExecuteAgent handles POST /api/v1/agents/{id}/execute
func (h *Handlers) ExecuteAgent(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	req, ok := readJSON[agent.ExecuteRequest](w, r)
	if !ok {
		return
	}

	res, err := h.Execution.Execute(r.Context(), id, req.Action, req.Parameters)
	if err != nil {
		writeDomainError(w, err, "agent not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// BindAgentTool handles POST /api/v1/agents/{id}/tools/{toolID}
func (h *Handlers) BindAgentTool(w http.ResponseWriter, r *http.Request) {
	agentID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	toolID, ok := urlID(w, r, "toolID")
	if !ok {
		return
	}

	if err := h.Agents.BindTool(r.Context(), agentID, toolID); err != nil {
		writeDomainError(w, err, "agent or tool not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnbindAgentTool handles DELETE /api/v1/agents/{id}/tools/{toolID}
func (h *Handlers) UnbindAgentTool(w http.ResponseWriter, r *http.Request) {
	agentID, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	toolID, ok := urlID(w, r, "toolID")
	if !ok {
		return
	}

	if err := h.Agents.UnbindTool(r.Context(), agentID, toolID); err != nil {
		writeDomainError(w, err, "binding not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Execution log endpoints ---

// ListLogs handles GET /api/v1/logs
func (h *Handlers) ListLogs(w http.ResponseWriter, r *http.Request) {
	page, err := h.Execution.ListLogs(r.Context(), queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// ListToolLogs handles GET /api/v1/tools/{id}/logs
func (h *Handlers) ListToolLogs(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}

	entries, err := h.Execution.ListToolLogs(r.Context(), id, queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		writeDomainError(w, err, "tool not found")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// DeleteLog handles DELETE /api/v1/logs/{id}
func (h *Handlers) DeleteLog(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Execution.DeleteLog(r.Context(), id); err != nil {
		writeDomainError(w, err, "log entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
