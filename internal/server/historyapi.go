package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// historyModule resolves the path parameter to a known module name. Unknown
// names are rejected before they reach the store.
func (h *handler) historyModule(w http.ResponseWriter, r *http.Request, op string) (string, bool) {
	module := chi.URLParam(r, "module")
	if !knownModule(module) {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown history module %q", module), op)
		return "", false
	}
	if h.store == nil {
		h.respondError(w, http.StatusServiceUnavailable, "history is not enabled", op)
		return "", false
	}
	return module, true
}

func (h *handler) handleHistoryRecent(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleHistoryRecent"
	module, ok := h.historyModule(w, r, op)
	if !ok {
		return
	}

	limit := h.recentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", raw), op)
			return
		}
		limit = parsed
	}

	entries, err := h.store.Recent(module, limit)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to load history: %v", err), op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"module":  module,
		"entries": entries,
	})
}

func (h *handler) handleHistorySummary(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleHistorySummary"
	module, ok := h.historyModule(w, r, op)
	if !ok {
		return
	}

	summary, err := h.store.Summarize(module, summaryFields[module])
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to summarize history: %v", err), op)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *handler) handleHistoryClear(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleHistoryClear"
	module, ok := h.historyModule(w, r, op)
	if !ok {
		return
	}

	if err := h.store.Clear(module); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to clear history: %v", err), op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "cleared", "module": module})
}
