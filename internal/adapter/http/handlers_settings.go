package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agenthub/agenthub/internal/domain/settings"
)

// --- Settings endpoints ---

// ListSettings handles GET /api/v1/settings
func (h *Handlers) ListSettings(w http.ResponseWriter, r *http.Request) {
	items, err := h.Settings.List(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	if items == nil {
		items = []settings.Setting{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetSetting handles GET /api/v1/settings/{key}
func (h *Handlers) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	st, err := h.Settings.Get(r.Context(), key)
	if err != nil {
		writeDomainError(w, err, "setting not found")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// UpsertSetting handles PUT /api/v1/settings/{key}
func (h *Handlers) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	req, ok := readJSON[settings.UpsertRequest](w, r)
	if !ok {
		return
	}

	st, err := h.Settings.Upsert(r.Context(), key, req)
	if err != nil {
		writeDomainError(w, err, "setting not found")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// DeleteSetting handles DELETE /api/v1/settings/{key}
func (h *Handlers) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if err := h.Settings.Delete(r.Context(), key); err != nil {
		writeDomainError(w, err, "setting not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListLLMModels handles GET /api/v1/settings/llm/models
func (h *Handlers) ListLLMModels(w http.ResponseWriter, r *http.Request) {
	models, err := h.Settings.LLMModels(r.Context())
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models)
}

// ActivateLLMModel handles POST /api/v1/settings/llm/models/{key}/activate
func (h *Handlers) ActivateLLMModel(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	models, err := h.Settings.ActivateLLMModel(r.Context(), key)
	if err != nil {
		writeDomainError(w, err, "llm model not found")
		return
	}
	writeJSON(w, http.StatusOK, models)
}
