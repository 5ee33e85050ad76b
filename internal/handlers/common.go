package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/blink-new/overlay-composer/internal/catalog"
	"github.com/blink-new/overlay-composer/internal/compositor"
	"github.com/blink-new/overlay-composer/internal/images"
	"github.com/blink-new/overlay-composer/internal/models"
	"github.com/blink-new/overlay-composer/internal/storage"
)

type Handler struct {
	store   *storage.Store
	catalog *catalog.Client
	fetcher *images.Fetcher
	stamper *compositor.Stamper
}

func New() *Handler {
	fetcher := images.NewFetcher()
	return &Handler{
		store:   storage.New(),
		catalog: catalog.NewClient(),
		fetcher: fetcher,
		stamper: compositor.NewStamper(fetcher.Resolve),
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Composition helpers
func (h *Handler) getCompositionOrError(w http.ResponseWriter, id string) (models.Composition, bool) {
	comp, exists := h.store.Get(id)
	if !exists {
		h.writeError(w, "Composition not found", http.StatusNotFound)
		return models.Composition{}, false
	}
	return comp, true
}
