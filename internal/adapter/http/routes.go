package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes registers all API routes on the given chi router.
func MountRoutes(r chi.Router, h *Handlers) {
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Agents
		r.Get("/agents", handleList(h.Agents.List))
		r.Post("/agents", handleCreate(h.Agents.Create))
		r.Get("/agents/{id}", handleGet(h.Agents.Get, "agent not found"))
		r.Put("/agents/{id}", handleUpdate(h.Agents.Update, "agent not found"))
		r.Delete("/agents/{id}", handleDelete(h.Agents.Delete, "agent not found"))
		r.Post("/agents/{id}/execute", h.ExecuteAgent)
		r.Post("/agents/{id}/tools/{toolID}", h.BindAgentTool)
		r.Delete("/agents/{id}/tools/{toolID}", h.UnbindAgentTool)

		// Tools
		r.Get("/tools", handleList(h.Tools.List))
		r.Post("/tools", handleCreate(h.Tools.Create))
		r.Get("/tools/{id}", handleGet(h.Tools.Get, "tool not found"))
		r.Put("/tools/{id}", handleUpdate(h.Tools.Update, "tool not found"))
		r.Delete("/tools/{id}", handleDelete(h.Tools.Delete, "tool not found"))
		r.Get("/tools/{id}/logs", h.ListToolLogs)

		// Execution logs
		r.Get("/logs", h.ListLogs)
		r.Delete("/logs/{id}", h.DeleteLog)

		// Settings
		r.Get("/settings", h.ListSettings)
		r.Get("/settings/llm/models", h.ListLLMModels)
		r.Post("/settings/llm/models/{key}/activate", h.ActivateLLMModel)
		r.Get("/settings/{key}", h.GetSetting)
		r.Put("/settings/{key}", h.UpsertSetting)
		r.Delete("/settings/{key}", h.DeleteSetting)

		// Chat
		r.Post("/chat/messages", h.SaveChatMessage)
		r.Get("/chat/messages", h.ListChatMessages)
		r.Get("/chat/sessions", h.ListChatSessions)
		r.Delete("/chat/sessions/{id}", h.DeleteChatSession)

		// Natural language
		r.Post("/nl/query", h.NLQuery)
	})
}
