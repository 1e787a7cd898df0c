package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"emoji-panel/metrics"
)

type recentResponse struct {
	Items []string `json:"items"`
}

func (h *handler) getRecent(w http.ResponseWriter, r *http.Request) {
	items, err := h.panels.Store().List(r.Context())
	if err != nil {
		metrics.StorageFailures.WithLabelValues("list").Inc()
		h.log.Error("list recent", zap.Error(err))
		http.Error(w, "recent list unavailable", http.StatusServiceUnavailable)
		return
	}
	writeRecent(w, items)
}

// promoteRecent records a selection made outside a panel. It does not touch
// the clipboard.
func (h *handler) promoteRecent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Item string `json:"item"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	// An empty item is a no-op that returns the current list and never fails.
	items, err := h.panels.Store().Promote(r.Context(), req.Item)
	if err != nil {
		metrics.StorageFailures.WithLabelValues("promote").Inc()
		h.log.Error("promote recent", zap.String("item", req.Item), zap.Error(err))
		http.Error(w, "recent list unavailable", http.StatusServiceUnavailable)
		return
	}
	if req.Item != "" {
		metrics.Promotions.WithLabelValues("api").Inc()
	}
	writeRecent(w, items)
}

func (h *handler) clearRecent(w http.ResponseWriter, r *http.Request) {
	if err := h.panels.Store().Clear(r.Context()); err != nil {
		metrics.StorageFailures.WithLabelValues("clear").Inc()
		h.log.Error("clear recent", zap.Error(err))
		http.Error(w, "recent list unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeRecent(w http.ResponseWriter, items []string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(recentResponse{Items: items})
}
