package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"emoji-panel/panel"
)

func (h *handler) listPanels(w http.ResponseWriter, r *http.Request) {
	panels := h.panels.List()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(panels)
}

func (h *handler) createPanel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	p, err := h.panels.Create(req.Name)
	if err != nil {
		if errors.Is(err, panel.ErrNameTaken) {
			http.Error(w, "panel name already in use", http.StatusConflict)
			return
		}
		http.Error(w, "failed to create panel", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

func (h *handler) closePanel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.panels.Close(id); err != nil {
		if errors.Is(err, panel.ErrNotFound) {
			http.Error(w, "panel not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to close panel", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
